// 23 July 2026

/*
fqstat prints summary statistics for a fastq file.

	fqstat [options] infile [outfile]

The summary is one csv row with the number of reads, total bases,
shortest, mean and longest read length and the GC fraction. It goes
to stdout unless a second filename is given.

Options

	-c	only count the records and print the number. This uses
		a line count over a memory map, so it is quick even for
		big files.
	-e	add the mean per read k-mer entropy to the summary.
	-k n	k-mer length used for the entropy, 5 by default. The
		entropy is normalised, so 1 means all k-mers equally
		used and 0 means one k-mer only.
	-p file	write a per site base usage profile as csv. Needs a
		second pass over the input.
	-H file	write a read length histogram as a png.
	-b n	number of histogram bins, 30 by default.
	-t	print timing to stderr when finished.

Examples

Count reads in a file that fastqgen made:

	fqstat -c reads.fastq

Summary with entropy, plus a length histogram:

	fqstat -e -H lens.png reads.fastq summary.csv
*/
package main

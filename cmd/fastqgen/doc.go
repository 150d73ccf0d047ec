// 30 June 2026

/*

Fastqgen writes a synthetic fastq file with a known mixture of read
complexities, meant as benchmark input for programs that mask or
filter low-complexity sequence.
Usage:
	fastqgen -o outfile.fastq [options]

Flags:
	-n, -num-reads
		total number of reads (default 10000)
	-l, -read-length
		nominal read length. Each read is wobbled by up to ten percent
		either way, so the file looks a bit like real data (default 1000)
	-o, -output
		output file name. This one is required.
	-low-complexity
		fraction of reads that are homopolymers or two or three base
		repeats (default 0.3)
	-medium-complexity
		fraction of reads built from a repeated unit of four to eight
		bases (default 0.3). Whatever fraction is left over comes out
		as uniform random sequence.
	-r, -seed
		random number seed. The default of 0 seeds from the clock, so
		two runs differ. Give a seed when you want the same file twice.

The two fractions may not add up to more than 1. Every base gets a
constant quality of Q30, written as '?', so the complexity signal
lives in the sequences alone. Reads are written grouped by class, low
complexity first, then medium, then high, with ids read_0, read_1 and
so on straight through the file.

Examples:
	fastqgen -n 10000 -l 150 -o illumina_test.fastq
	fastqgen -n 1000 -l 50000 -o ont_test.fastq
	fastqgen -n 100 -l 200000 -o ont_long_test.fastq

*/
package main

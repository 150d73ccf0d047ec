// 23 July 2026
// Read a fastq file and print out summary statistics, maybe with
// entropy, a site profile or a length histogram.

package main

import (
	"flag"
	"fmt"
	"os"
	"path"

	. "github.com/securebio/nao-rustmask/pkg/common"
	"github.com/securebio/nao-rustmask/pkg/fqstat"
)

func usage() {
	fmt.Fprintln(os.Stderr, "usage:", path.Base(os.Args[0]), "[options] infile [outfile]")
	long := `The input file is not optional. The second pass for profiles and the
record counting both want a real file, not a pipe.
Given one filename, write the summary to stdout.
Given two, write the summary to the second file. "-" also means stdout.`
	fmt.Fprintln(os.Stderr, long)
	flag.PrintDefaults()
}

func main() {
	var flags fqstat.CmdFlag
	var infile, outfile string

	flag.BoolVar(&flags.CountOnly, "c", false, "only count the records and print the number")
	flag.BoolVar(&flags.Entropy, "e", false, "add mean per read k-mer entropy to the summary")
	flag.IntVar(&flags.K, "k", fqstat.DefaultK, "k-mer length used for entropy")
	flag.StringVar(&flags.Profile, "p", "", "filename to write a per site base usage profile to")
	flag.StringVar(&flags.Hist, "H", "", "filename to write a length histogram png to")
	flag.IntVar(&flags.NBin, "b", fqstat.DefaultNBin, "number of histogram bins")
	flag.BoolVar(&flags.Time, "t", false, "print out timing information")
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() < 1 {
		usage()
		os.Exit(ExitUsageError)
	}
	infile = flag.Arg(0)
	if flag.NArg() > 1 {
		outfile = flag.Arg(1)
	}

	if err := fqstat.Mymain(&flags, infile, outfile); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(ExitFailure)
	}
	os.Exit(ExitSuccess)
}

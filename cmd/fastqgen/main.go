// 30 June 2026

package main

import (
	"flag"
	"fmt"
	"os"

	. "github.com/securebio/nao-rustmask/pkg/common"
	"github.com/securebio/nao-rustmask/pkg/fastqgen"
)

func main() {
	f := flag.NewFlagSet("fastqgen", flag.ExitOnError)
	var args fastqgen.GenArgs
	var outfile string

	f.IntVar(&args.NReads, "n", 10000, "number of reads to generate")
	f.IntVar(&args.NReads, "num-reads", 10000, "number of reads to generate")
	f.IntVar(&args.ReadLen, "l", 1000, "average read length in bases")
	f.IntVar(&args.ReadLen, "read-length", 1000, "average read length in bases")
	f.StringVar(&outfile, "o", "", "output fastq file (required)")
	f.StringVar(&outfile, "output", "", "output fastq file (required)")
	f.Float64Var(&args.LowFrac, "low-complexity", 0.3, "fraction of low complexity reads")
	f.Float64Var(&args.MedFrac, "medium-complexity", 0.3, "fraction of medium complexity reads")
	f.Int64Var(&args.Seed, "r", 0, "random number seed, 0 means use the clock")
	f.Int64Var(&args.Seed, "seed", 0, "random number seed, 0 means use the clock")
	if err := f.Parse(os.Args[1:]); err != nil {
		fmt.Fprintln(f.Output(), err)
		os.Exit(ExitUsageError)
	}
	if outfile == "" {
		fmt.Fprintln(f.Output(), "An output file (-o) is required")
		f.Usage()
		os.Exit(ExitUsageError)
	}

	args.Report = os.Stdout
	if err := fastqgen.GenMain(&args, outfile); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(ExitFailure)
	}
	os.Exit(ExitSuccess)
}

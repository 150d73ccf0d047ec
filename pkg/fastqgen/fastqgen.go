// 24 June 2026

// Package fastqgen writes synthetic fastq files with a controlled
// mixture of read complexities. The point of the files is benchmark
// fodder for low-complexity maskers, so a known share of the reads
// is trivially repetitive, a share is short tandem repeats and the
// rest is uniform random. Reads are written grouped by class, low
// first, then medium, then high, with sequential ids throughout.
package fastqgen

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/securebio/nao-rustmask/pkg/fastq"
	"github.com/securebio/nao-rustmask/pkg/synth"
)

// GenArgs is the set of arguments passed to the main function.
type GenArgs struct {
	NReads  int       // total number of reads
	ReadLen int       // nominal read length, before the per read wobble
	LowFrac float64   // fraction of low complexity reads
	MedFrac float64   // fraction of medium complexity reads
	Seed    int64     // random number seed, 0 means seed from the clock
	Report  io.Writer // where the console summary goes, nil for nowhere
}

// A ConfigError means the arguments ask for something impossible.
// The command prints it after "Error:" and exits with a failure.
type ConfigError struct {
	msg string
}

func (e *ConfigError) Error() string { return e.msg }

// checkFracs rejects class fractions that claim more than the whole
// file. Anything else, including negative counts and lengths, falls
// through and gives degenerate but harmless output.
func checkFracs(args *GenArgs) error {
	if args.LowFrac+args.MedFrac > 1.0 {
		return &ConfigError{"low_complexity + medium_complexity must be <= 1.0"}
	}
	return nil
}

// partition splits n reads between the three classes. The low and
// medium counts are rounded down, so the high class picks up
// whatever is left over and the three always add up to n.
func partition(n int, lowfrac, medfrac float64) (nlow, nmed, nhigh int) {
	nlow = int(float64(n) * lowfrac)
	nmed = int(float64(n) * medfrac)
	nhigh = n - nlow - nmed
	return
}

// addCommas puts thousands separators into n, so 1234567 becomes
// "1,234,567".
func addCommas(n int64) string {
	s := strconv.FormatInt(n, 10)
	start := 0
	if s[0] == '-' {
		start = 1
	}
	for i := len(s) - 3; i > start; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	return s
}

// report gives us somewhere to print even when the caller does not
// want the summary.
func report(args *GenArgs) io.Writer {
	if args.Report == nil {
		return io.Discard
	}
	return args.Report
}

// writeClass writes n reads of one class, using gen to make each
// sequence. id is the number of the next read. It returns the next
// free id, so the classes stay sequential across calls.
func writeClass(wrtr io.Writer, args *GenArgs, src *synth.Source,
	gen func(int) []byte, n, id int) (int, error) {
	for i := 0; i < n; i++ {
		length := src.Jitter(args.ReadLen)
		seq := gen(length)
		qual := synth.Qual(length, synth.DefaultQual)
		name := "read_" + strconv.Itoa(id)
		if err := fastq.WriteRecord(wrtr, name, seq, qual); err != nil {
			return id, fmt.Errorf("writing read %d: %w", id, err)
		}
		id++
	}
	return id, nil
}

// Generate writes all the reads to wrtr and the partition summary to
// args.Report. The classes come out grouped, low, medium then high,
// and the ids run from 0 to NReads-1 across the groups. On a write
// error it stops at once, leaving whatever was already written.
func Generate(wrtr io.Writer, args *GenArgs) error {
	if err := checkFracs(args); err != nil {
		return err
	}
	rep := report(args)
	nlow, nmed, nhigh := partition(args.NReads, args.LowFrac, args.MedFrac)
	fmt.Fprintf(rep, "Generating %d reads of length %d:\n", args.NReads, args.ReadLen)
	fmt.Fprintf(rep, "  - Low complexity: %d (%.1f%%)\n", nlow, args.LowFrac*100)
	fmt.Fprintf(rep, "  - Medium complexity: %d (%.1f%%)\n", nmed, args.MedFrac*100)
	fmt.Fprintf(rep, "  - High complexity: %d (%.1f%%)\n", nhigh,
		(1-args.LowFrac-args.MedFrac)*100)

	src := synth.New(args.Seed)
	id, err := writeClass(wrtr, args, src, src.Low, nlow, 0)
	if err != nil {
		return err
	}
	if id, err = writeClass(wrtr, args, src, src.Medium, nmed, id); err != nil {
		return err
	}
	_, err = writeClass(wrtr, args, src, src.High, nhigh, id)
	return err
}

// GenMain generates a fastq file. It is the function behind the
// fastqgen command. The fraction check comes before the filesystem
// is touched, so a bad configuration never leaves a file behind. A
// failure during writing does leave the truncated file, there is no
// cleanup.
func GenMain(args *GenArgs, outfile string) error {
	if err := checkFracs(args); err != nil {
		return err
	}
	fp, err := os.Create(outfile)
	if err != nil {
		return fmt.Errorf("output file %v: %w", outfile, err)
	}
	defer fp.Close()
	wrtr := bufio.NewWriter(fp)
	if err := Generate(wrtr, args); err != nil {
		return err
	}
	if err := wrtr.Flush(); err != nil {
		return fmt.Errorf("output file %v: %w", outfile, err)
	}
	if err := fp.Close(); err != nil {
		return fmt.Errorf("output file %v: %w", outfile, err)
	}
	fi, err := os.Stat(outfile)
	if err != nil {
		return fmt.Errorf("sizing %v: %w", outfile, err)
	}
	rep := report(args)
	fmt.Fprintf(rep, "\nGenerated %s (%.2f MB)\n", outfile,
		float64(fi.Size())/(1024*1024))
	fmt.Fprintf(rep, "Total bases: %s\n",
		addCommas(int64(args.NReads)*int64(args.ReadLen)))
	return nil
}

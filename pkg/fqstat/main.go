// 21 July 2026

// Package fqstat is the working part of the fqstat command. It reads
// a fastq file and reports how the reads look: how many, how long,
// base composition and, on request, per read entropy, a per position
// usage profile and a length histogram.
package fqstat

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/securebio/nao-rustmask/pkg/entropy"
	"github.com/securebio/nao-rustmask/pkg/fastq"
	"github.com/securebio/nao-rustmask/pkg/lenhist"
	"github.com/securebio/nao-rustmask/pkg/numrec"
)

const (
	DefaultK    = 5  // k-mer length the maskers default to
	DefaultNBin = 30 // histogram bins
)

type CmdFlag struct {
	CountOnly bool   // just count records and print the number
	Entropy   bool   // mean per read k-mer entropy
	K         int    // k-mer length for the entropy
	Profile   string // write per position base usage to this file
	Hist      string // write a read length histogram png to this file
	NBin      int    // number of histogram bins
	Time      bool   // do we want to print out run time ?
}

// warnExists checks if a filename exists and prints a warning
// if we will trash a file. It does not return an error.
func warnExists(fname string) {
	if _, err := os.Stat(fname); err == nil {
		fmt.Fprintln(os.Stderr, "Warning, trashing old version of", fname)
	}
}

// stats is what one pass over the file accumulates.
type stats struct {
	nrec   int
	nbase  int64
	minlen int
	maxlen int
	gc     int64
	entsum float64
}

// gatherStats makes the single pass over the reads. The histogram is
// filled on the way through when the caller wants one.
func gatherStats(fname string, flags *CmdFlag, hist *lenhist.Hist) (*stats, error) {
	fp, err := os.Open(fname)
	if err != nil {
		return nil, fmt.Errorf("input file %v: %w", fname, err)
	}
	defer fp.Close()
	var cntr *entropy.Counter
	if flags.Entropy {
		if cntr, err = entropy.NewCounter(flags.K); err != nil {
			return nil, err
		}
	}
	st := &stats{}
	rdr := fastq.NewReader(fp)
	for rdr.Next() {
		st.nrec++
		n := len(rdr.Seq)
		st.nbase += int64(n)
		if st.nrec == 1 || n < st.minlen {
			st.minlen = n
		}
		if n > st.maxlen {
			st.maxlen = n
		}
		for _, c := range rdr.Seq {
			switch c {
			case 'G', 'C', 'g', 'c':
				st.gc++
			}
		}
		if cntr != nil {
			st.entsum += cntr.Entropy(rdr.Seq)
		}
		if hist != nil {
			hist.Add(n)
		}
	}
	if err := rdr.Err(); err != nil {
		return nil, fmt.Errorf("reading %v: %w", fname, err)
	}
	return st, nil
}

// writeSummary writes the one row summary in csv form.
func writeSummary(w io.Writer, st *stats, wantEnt bool) error {
	head := `"reads","bases","min len","mean len","max len","gc frac"`
	if wantEnt {
		head += `,"mean entropy"`
	}
	if _, err := fmt.Fprintln(w, head); err != nil {
		return err
	}
	var meanlen, gcfrac, meanent float64
	if st.nrec > 0 {
		meanlen = float64(st.nbase) / float64(st.nrec)
		meanent = st.entsum / float64(st.nrec)
	}
	if st.nbase > 0 {
		gcfrac = float64(st.gc) / float64(st.nbase)
	}
	if _, err := fmt.Fprintf(w, "%d,%d,%d,%.2f,%d,%.4f",
		st.nrec, st.nbase, st.minlen, meanlen, st.maxlen, gcfrac); err != nil {
		return err
	}
	if wantEnt {
		if _, err := fmt.Fprintf(w, ",%.4f", meanent); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w)
	return err
}

// writeProfile is the second pass over the file. The usage matrix
// wants the longest read up front, which the stats pass found.
func writeProfile(fname, outfile string, maxlen int) error {
	fp, err := os.Open(fname)
	if err != nil {
		return fmt.Errorf("input file %v: %w", fname, err)
	}
	defer fp.Close()
	prof := entropy.NewProfile(maxlen)
	rdr := fastq.NewReader(fp)
	for rdr.Next() {
		prof.Add(rdr.Seq)
	}
	if err := rdr.Err(); err != nil {
		return fmt.Errorf("rereading %v: %w", fname, err)
	}
	warnExists(outfile)
	fOut, err := os.Create(outfile)
	if err != nil {
		return fmt.Errorf("profile file %v: %w", outfile, err)
	}
	defer fOut.Close()
	return prof.WriteCSV(fOut)
}

// writeHist draws the length histogram into a png file.
func writeHist(hist *lenhist.Hist, outfile string, nbin int) error {
	warnExists(outfile)
	fp, err := os.Create(outfile)
	if err != nil {
		return fmt.Errorf("histogram file %v: %w", outfile, err)
	}
	if err := hist.WritePNG(fp, nbin, "read lengths"); err != nil {
		fp.Close()
		return err
	}
	return fp.Close()
}

// Mymain is the function behind the fqstat command. The summary goes
// to outfile, or to standard output when outfile is "" or "-".
func Mymain(flags *CmdFlag, infile, outfile string) error {
	if flags.Time {
		startTime := time.Now()
		end := func() { // Wrapping in a closure is helpful. Gives the right time.
			fmt.Fprintln(os.Stderr, "finished after",
				time.Since(startTime).Milliseconds(), "ms")
		}
		defer end()
	}
	var fOut io.Writer = os.Stdout
	if outfile != "" && outfile != "-" {
		warnExists(outfile)
		fp, err := os.Create(outfile)
		if err != nil {
			return fmt.Errorf("output file %v: %w", outfile, err)
		}
		defer fp.Close()
		fOut = fp
	}
	if flags.CountOnly {
		n, err := numrec.NumRec(infile)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(fOut, n)
		return err
	}
	var hist *lenhist.Hist
	if flags.Hist != "" {
		hist = &lenhist.Hist{}
	}
	st, err := gatherStats(infile, flags, hist)
	if err != nil {
		return err
	}
	if err := writeSummary(fOut, st, flags.Entropy); err != nil {
		return err
	}
	if flags.Profile != "" {
		if st.nrec == 0 {
			return fmt.Errorf("no reads in %v, nothing to profile", infile)
		}
		if err := writeProfile(infile, flags.Profile, st.maxlen); err != nil {
			return err
		}
	}
	if flags.Hist != "" {
		if err := writeHist(hist, flags.Hist, flags.NBin); err != nil {
			return err
		}
	}
	return nil
}

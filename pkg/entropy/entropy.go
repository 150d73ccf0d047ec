// 7 July 2026

// Package entropy measures sequence complexity the way the masking
// tools do. There are two views. A Counter gives the Shannon entropy
// of the k-mers within one read, so a homopolymer scores 0 and a
// random read scores near 1, and it can mask the stretches that
// score too low. A Profile tallies base usage per position across a
// whole set of reads.
package entropy

import (
	"fmt"
	"io"
	"math"

	"github.com/andrew-torda/matrix"
)

// MaxK is the largest k-mer length we accept. Two bits per base in a
// 64 bit word would allow more, but nothing past 15 is any use for
// complexity work and the tally tables get silly.
const MaxK = 15

// For k up to 7 a flat table of 4^k counts is small enough to win.
// Past that we tally in a map.
const arrayMaxK = 7

const badCode = 255

// code2bit maps a base to a 2 bit code, upper or lower case. 255
// marks anything that is not ACGT.
var code2bit [256]byte

func init() {
	for i := range code2bit {
		code2bit[i] = badCode
	}
	code2bit['A'], code2bit['a'] = 0, 0
	code2bit['C'], code2bit['c'] = 1, 1
	code2bit['G'], code2bit['g'] = 2, 2
	code2bit['T'], code2bit['t'] = 3, 3
}

// A Counter tallies the k-mers of one read at a time. It can be
// reused across reads, which matters when there are millions of
// them. It is not safe to share between goroutines.
type Counter struct {
	k      int
	mask   uint64
	counts []int          // flat tally for small k
	m      map[uint64]int // map tally for big k
}

// NewCounter returns a Counter for k-mers of length k.
func NewCounter(k int) (*Counter, error) {
	if k < 1 || k > MaxK {
		return nil, fmt.Errorf("k-mer length %d out of range 1 to %d", k, MaxK)
	}
	c := &Counter{k: k, mask: uint64(1)<<(2*uint(k)) - 1}
	if k <= arrayMaxK {
		c.counts = make([]int, 1<<(2*uint(k)))
	} else {
		c.m = make(map[uint64]int)
	}
	return c, nil
}

func (c *Counter) reset() {
	if c.counts != nil {
		for i := range c.counts {
			c.counts[i] = 0
		}
		return
	}
	for kmer := range c.m {
		delete(c.m, kmer)
	}
}

// fill tallies every k-mer of seq, rolling the 2 bit codes along and
// restarting the run whenever a byte outside ACGT turns up, so such
// k-mers are skipped rather than counted as their own symbol. It
// returns how many k-mers went into the tally.
func (c *Counter) fill(seq []byte) int {
	var kmer uint64
	run, total := 0, 0
	for _, b := range seq {
		code := code2bit[b]
		if code == badCode {
			run = 0
			continue
		}
		kmer = (kmer<<2 | uint64(code)) & c.mask
		if run++; run < c.k {
			continue
		}
		if c.counts != nil {
			c.counts[kmer]++
		} else {
			c.m[kmer]++
		}
		total++
	}
	return total
}

// tallyEntropy is the Shannon entropy of the current tally with both
// the probabilities and the normalisation taken against capacity
// k-mers. When fewer were actually counted the probabilities sum to
// less than one and the entropy sinks, which is how the masking tools
// treat windows full of junk bases.
func (c *Counter) tallyEntropy(capacity int) float64 {
	if capacity == 0 {
		return 0
	}
	ftot := float64(capacity)
	var h float64
	if c.counts != nil {
		for _, n := range c.counts {
			if n != 0 {
				p := float64(n) / ftot
				h -= p * math.Log2(p)
			}
		}
	} else {
		for _, n := range c.m {
			p := float64(n) / ftot
			h -= p * math.Log2(p)
		}
	}
	if max := math.Log2(ftot); max > 0 {
		return h / max
	}
	return h
}

// Entropy returns the Shannon entropy of the k-mer distribution of
// seq, normalised to lie between 0 and 1 by dividing by log2 of the
// number of k-mers counted. A read shorter than k gives 0, as does a
// read where every k-mer is the same. K-mers containing anything
// outside ACGT are skipped, not counted as their own symbol.
func (c *Counter) Entropy(seq []byte) float64 {
	c.reset()
	total := c.fill(seq)
	if total < 2 { // one k-mer has no spread to measure
		return 0
	}
	return c.tallyEntropy(total)
}

// kmerAt encodes the k bases starting at j. The second return is
// false when the k-mer would run off either end of seq or touches a
// byte outside ACGT.
func (c *Counter) kmerAt(seq []byte, j int) (uint64, bool) {
	if j < 0 || j+c.k > len(seq) {
		return 0, false
	}
	var kmer uint64
	for _, b := range seq[j : j+c.k] {
		code := code2bit[b]
		if code == badCode {
			return 0, false
		}
		kmer = kmer<<2 | uint64(code)
	}
	return kmer, true
}

func (c *Counter) add(kmer uint64) {
	if c.counts != nil {
		c.counts[kmer]++
	} else {
		c.m[kmer]++
	}
}

func (c *Counter) remove(kmer uint64) {
	if c.counts != nil {
		if c.counts[kmer] > 0 {
			c.counts[kmer]--
		}
		return
	}
	if c.m[kmer] > 0 {
		if c.m[kmer]--; c.m[kmer] == 0 {
			delete(c.m, kmer)
		}
	}
}

// Mask replaces low complexity stretches of a read with 'N' and the
// matching quality bytes with '#'. A window slides one base at a time
// along the read and whenever the k-mer entropy of a full window
// falls below threshold the whole window is masked, so neighbouring
// low windows merge into one masked run. The window entropy is
// normalised against the window's k-mer capacity rather than the
// k-mers counted, see tallyEntropy. A read shorter than the window is
// judged once as a whole. seq and qual must be the same length, that
// is the caller's job. The inputs are left alone and masked copies
// come back.
func (c *Counter) Mask(seq, qual []byte, window int, threshold float64) ([]byte, []byte) {
	mseq := append([]byte(nil), seq...)
	mqual := append([]byte(nil), qual...)
	n := len(seq)
	if n < window {
		c.reset()
		c.fill(seq)
		capacity := 0
		if n >= c.k {
			capacity = n - c.k + 1
		}
		if c.tallyEntropy(capacity) < threshold {
			for i := 0; i < n; i++ {
				mseq[i] = 'N'
				mqual[i] = '#'
			}
		}
		return mseq, mqual
	}
	capacity := 0
	if window >= c.k {
		capacity = window - c.k + 1
	}
	c.reset()
	for start := 0; start+window <= n; start++ {
		end := start + window
		if start == 0 {
			for j := 0; j+c.k <= end; j++ {
				if kmer, ok := c.kmerAt(seq, j); ok {
					c.add(kmer)
				}
			}
		} else {
			if kmer, ok := c.kmerAt(seq, start-1); ok {
				c.remove(kmer)
			}
			if kmer, ok := c.kmerAt(seq, end-c.k); ok {
				c.add(kmer)
			}
		}
		if c.tallyEntropy(capacity) < threshold {
			for p := start; p < end; p++ {
				mseq[p] = 'N'
				mqual[p] = '#'
			}
		}
	}
	return mseq, mqual
}

// Rows in the usage matrix. Anything outside ACGT lands in otherRow.
const (
	rowA = iota
	rowC
	rowG
	rowT
	otherRow
	nRow
)

// A Profile counts base usage per position over a set of reads.
// Counts live in a float32 matrix so they can be normalised without
// another allocation, the same trick as alignment column statistics.
type Profile struct {
	counts *matrix.FMatrix2d
	maxlen int
	nseq   int
}

// NewProfile makes a Profile for reads up to maxlen long.
func NewProfile(maxlen int) *Profile {
	if maxlen < 0 {
		maxlen = 0
	}
	return &Profile{counts: matrix.NewFMatrix2d(nRow, maxlen), maxlen: maxlen}
}

// Add tallies one read. Positions beyond the profile length are
// quietly dropped, so a caller with a low length estimate loses tail
// positions rather than crashing.
func (p *Profile) Add(seq []byte) {
	for i, b := range seq {
		if i >= p.maxlen {
			break
		}
		row := otherRow
		switch b {
		case 'A', 'a':
			row = rowA
		case 'C', 'c':
			row = rowC
		case 'G', 'g':
			row = rowG
		case 'T', 't':
			row = rowT
		}
		p.counts.Mat[row][i]++
	}
	p.nseq++
}

// NSeq returns how many reads have been added.
func (p *Profile) NSeq() int { return p.nseq }

// Coverage returns how many reads reached each position.
func (p *Profile) Coverage() []int {
	cov := make([]int, p.maxlen)
	for i := 0; i < p.maxlen; i++ {
		var tot float32
		for r := 0; r < nRow; r++ {
			tot += p.counts.Mat[r][i]
		}
		cov[i] = int(tot)
	}
	return cov
}

// SiteEntropy returns the entropy of base usage at each position,
// with log base 4 so four equally common bases give 1. Bases outside
// ACGT are left out, the way gaps are left out of alignment columns.
// A position no read reaches gets 0.
func (p *Profile) SiteEntropy() []float32 {
	ent := make([]float32, p.maxlen)
	logfac := 1.0 / math.Log(4)
	for i := 0; i < p.maxlen; i++ {
		var tot float64
		for r := rowA; r <= rowT; r++ {
			tot += float64(p.counts.Mat[r][i])
		}
		if tot == 0 {
			continue
		}
		var h float64
		for r := rowA; r <= rowT; r++ {
			f := float64(p.counts.Mat[r][i]) / tot
			if f == 0 {
				continue
			}
			h -= f * math.Log(f) * logfac
		}
		ent[i] = float32(h)
	}
	return ent
}

// WriteCSV writes the per position entropy and coverage in a form a
// spreadsheet will read without complaint.
func (p *Profile) WriteCSV(w io.Writer) error {
	if _, err := fmt.Fprintln(w, `"pos","entropy","coverage"`); err != nil {
		return err
	}
	ent := p.SiteEntropy()
	cov := p.Coverage()
	for i := range ent {
		if _, err := fmt.Fprintf(w, "%d,%.4f,%d\n", i+1, ent[i], cov[i]); err != nil {
			return err
		}
	}
	return nil
}

// 8 July 2026

package entropy_test

import (
	"bytes"
	"math"
	"strings"
	"testing"

	. "github.com/securebio/nao-rustmask/pkg/entropy"
	"github.com/securebio/nao-rustmask/pkg/synth"
)

// approxEqual
func approxEqual(x, y float64) bool {
	const eps = 0.000001
	d := x - y
	if d > eps || d < -eps {
		return false
	}
	return true
}

func mustCounter(t *testing.T, k int) *Counter {
	t.Helper()
	c, err := NewCounter(k)
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func TestBadK(t *testing.T) {
	for _, k := range []int{0, -1, 16} {
		if _, err := NewCounter(k); err == nil {
			t.Fatal("k =", k, "should be refused")
		}
	}
}

func TestHomopolymerZero(t *testing.T) {
	c := mustCounter(t, 5)
	if e := c.Entropy([]byte(strings.Repeat("A", 100))); e != 0 {
		t.Fatal("homopolymer entropy should be 0, got", e)
	}
}

func TestShortSeqZero(t *testing.T) {
	c := mustCounter(t, 5)
	for _, s := range []string{"", "ACG", "ACGT", "ACGTA"} {
		if e := c.Entropy([]byte(s)); e != 0 {
			t.Fatalf("%q with k=5 should give 0, got %v", s, e)
		}
	}
}

// An alternating dinucleotide has exactly two distinct k-mers in
// equal numbers: one bit of entropy, normalised by log2 of the
// number of k-mers in the read.
func TestDinucleotide(t *testing.T) {
	c := mustCounter(t, 5)
	seq := []byte(strings.Repeat("AT", 50))
	nkmer := float64(len(seq) - 5 + 1)
	want := 1 / math.Log2(nkmer)
	if got := c.Entropy(seq); !approxEqual(got, want) {
		t.Fatal("got", got, "want", want)
	}
}

// The normalisation divides by log2 of the number of k-mers counted,
// so "near 1" only holds while that number stays below 4^k. 800
// bases with k=5 is comfortably inside.
func TestRandomNearOne(t *testing.T) {
	c := mustCounter(t, 5)
	seq := synth.New(1).High(800)
	if got := c.Entropy(seq); got < 0.9 || got > 1.0 {
		t.Fatal("random read entropy out of range:", got)
	}
}

// k = 9 exercises the map tally rather than the flat table.
func TestBigKMapPath(t *testing.T) {
	c := mustCounter(t, 9)
	seq := []byte(strings.Repeat("AT", 50))
	nkmer := float64(len(seq) - 9 + 1)
	want := 1 / math.Log2(nkmer)
	if got := c.Entropy(seq); !approxEqual(got, want) {
		t.Fatal("got", got, "want", want)
	}
	if e := c.Entropy([]byte(strings.Repeat("G", 100))); e != 0 {
		t.Fatal("homopolymer entropy should be 0 with the map tally, got", e)
	}
}

// Anything outside ACGT kills the k-mers it touches. Only the runs
// of clean bases count.
func TestSkipNonACGT(t *testing.T) {
	c := mustCounter(t, 3)
	if e := c.Entropy([]byte("AAANAAA")); e != 0 {
		t.Fatal("only AAA survives the N, entropy should be 0, got", e)
	}
	if e := c.Entropy([]byte("NNNNNNNN")); e != 0 {
		t.Fatal("all N should give 0, got", e)
	}
}

func TestLowerCase(t *testing.T) {
	c := mustCounter(t, 4)
	a := c.Entropy([]byte("acgtacgtacgt"))
	b := c.Entropy([]byte("ACGTACGTACGT"))
	if !approxEqual(a, b) {
		t.Fatal("case should not matter:", a, "vs", b)
	}
}

// Counter reuse must not leak counts from the previous read.
func TestCounterReuse(t *testing.T) {
	c := mustCounter(t, 5)
	c.Entropy(synth.New(3).High(500))
	if e := c.Entropy([]byte(strings.Repeat("T", 60))); e != 0 {
		t.Fatal("stale counts leaked into the second read:", e)
	}
}

func TestMaskHomopolymer(t *testing.T) {
	c := mustCounter(t, 3)
	seq := []byte("AAAAAAAAAA")
	qual := []byte("IIIIIIIIII")
	mseq, mqual := c.Mask(seq, qual, 5, 0.55)
	if string(mseq) != "NNNNNNNNNN" {
		t.Fatalf("homopolymer should be fully masked, got %q", mseq)
	}
	if string(mqual) != "##########" {
		t.Fatalf("qualities should be masked in step, got %q", mqual)
	}
	if string(seq) != "AAAAAAAAAA" || string(qual) != "IIIIIIIIII" {
		t.Fatal("the inputs should come back untouched")
	}
}

func TestMaskKeepsVaried(t *testing.T) {
	c := mustCounter(t, 3)
	seq := []byte("ACGTACGTAGCTAGCT")
	qual := bytes.Repeat([]byte{'I'}, len(seq))
	mseq, mqual := c.Mask(seq, qual, 5, 0.55)
	if !bytes.Equal(mseq, seq) || !bytes.Equal(mqual, qual) {
		t.Fatalf("nothing should be masked, got %q", mseq)
	}
}

// A dinucleotide repeat longer than the window: every window sees two
// k-mers over and over and the whole read goes.
func TestMaskDinucleotideRun(t *testing.T) {
	c := mustCounter(t, 5)
	seq := []byte(strings.Repeat("GC", 13))
	qual := bytes.Repeat([]byte{'I'}, len(seq))
	mseq, _ := c.Mask(seq, qual, 25, 0.55)
	if got := bytes.Count(mseq, []byte{'N'}); got != len(seq) {
		t.Fatal("want all", len(seq), "bases masked, got", got)
	}
}

// Reads shorter than the window are judged once as a whole, and a
// read too short for even one k-mer counts as having no entropy.
func TestMaskShortRead(t *testing.T) {
	c := mustCounter(t, 3)
	mseq, _ := c.Mask([]byte("ACGTACGT"), []byte("IIIIIIII"), 25, 0.55)
	if n := bytes.Count(mseq, []byte{'N'}); n != 0 {
		t.Fatal("varied short read should be left alone,", n, "bases masked")
	}
	mseq, mqual := c.Mask([]byte("AAAAAAAA"), []byte("IIIIIIII"), 25, 0.55)
	if string(mseq) != "NNNNNNNN" || string(mqual) != "########" {
		t.Fatalf("uniform short read should be fully masked, got %q %q",
			mseq, mqual)
	}
	mseq, _ = c.Mask([]byte("AC"), []byte("II"), 25, 0.55)
	if string(mseq) != "NN" {
		t.Fatalf("read shorter than k should be fully masked, got %q", mseq)
	}
}

// A repeat buried in otherwise random sequence: the repeat goes, the
// far ends of the clean flanks stay, and the sequence and quality
// masks agree base for base.
func TestMaskMixedRead(t *testing.T) {
	c := mustCounter(t, 5)
	src := synth.New(11)
	seq := append([]byte{}, src.High(30)...)
	runStart := len(seq)
	seq = append(seq, bytes.Repeat([]byte{'A'}, 40)...)
	runEnd := len(seq)
	seq = append(seq, src.High(30)...)
	qual := bytes.Repeat([]byte{'?'}, len(seq))
	mseq, mqual := c.Mask(seq, qual, 20, 0.55)
	for i := runStart; i < runEnd; i++ {
		if mseq[i] != 'N' {
			t.Fatal("position", i, "inside the repeat should be masked")
		}
	}
	if mseq[0] != seq[0] || mseq[len(seq)-1] != seq[len(seq)-1] {
		t.Fatal("the ends of the read are random and should survive")
	}
	for i := range mseq {
		if (mseq[i] == 'N') != (mqual[i] == '#') {
			t.Fatal("sequence and quality masks disagree at", i)
		}
	}
}

func TestProfile(t *testing.T) {
	p := NewProfile(4)
	for _, s := range []string{"AAAA", "CCCC", "GGGG"} {
		p.Add([]byte(s))
	}
	want := math.Log(3) / math.Log(4) // three bases, equally common
	for i, e := range p.SiteEntropy() {
		if !approxEqual(float64(e), want) {
			t.Fatal("site", i, "entropy", e, "want", want)
		}
	}
	for i, cov := range p.Coverage() {
		if cov != 3 {
			t.Fatal("site", i, "coverage", cov, "want 3")
		}
	}
	if p.NSeq() != 3 {
		t.Fatal("NSeq: got", p.NSeq())
	}
}

func TestProfileRagged(t *testing.T) {
	p := NewProfile(4)
	p.Add([]byte("ACGT"))
	p.Add([]byte("AC"))
	wantCov := []int{2, 2, 1, 1}
	for i, cov := range p.Coverage() {
		if cov != wantCov[i] {
			t.Fatal("site", i, "coverage", cov, "want", wantCov[i])
		}
	}
	ent := p.SiteEntropy()
	if ent[2] != 0 || ent[3] != 0 {
		t.Fatal("a single read gives no spread, want 0, got", ent[2], ent[3])
	}
}

func TestProfileCSV(t *testing.T) {
	p := NewProfile(2)
	p.Add([]byte("AT"))
	p.Add([]byte("CG"))
	var b bytes.Buffer
	if err := p.WriteCSV(&b); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(b.String()), "\n")
	if len(lines) != 3 {
		t.Fatal("want a header and two rows, got", len(lines))
	}
	if lines[0] != `"pos","entropy","coverage"` {
		t.Fatal("header:", lines[0])
	}
	if !strings.HasPrefix(lines[1], "1,") || !strings.HasSuffix(lines[1], ",2") {
		t.Fatal("first row looks wrong:", lines[1])
	}
}

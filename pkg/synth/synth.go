// 5 June 2026

// Package synth makes synthetic DNA reads for exercising programs
// that hunt for low-complexity regions. Reads come in three flavours.
// Low complexity is a homopolymer or a repeated two or three base
// motif. Medium complexity is a repeated unit of four to eight bases.
// High complexity draws every base independently.
package synth

import (
	"math"
	"math/rand"
	"time"
)

const bases = "ACGT"

// DefaultQual is the quality score the generator writes. Phred 30
// encodes as '?' after the usual offset of 33.
const DefaultQual = 30

// dinucs are the two base motifs we pick from. Only pairs of
// different bases are any use here. "AA" would be a homopolymer.
var dinucs = []string{"AT", "CG", "AC", "GT", "AG", "CT"}

// A Source makes random reads. It carries its own rand.Rand, so two
// Sources built with the same seed give the same reads and a Source
// must not be shared between goroutines.
type Source struct {
	rnd *rand.Rand
}

// New returns a Source seeded with iseed. A seed of 0 means take the
// seed from the clock, which is what you want for bulk data and not
// what you want in a test.
func New(iseed int64) *Source {
	if iseed == 0 {
		iseed = time.Now().UnixNano()
	}
	return &Source{rnd: rand.New(rand.NewSource(iseed))}
}

// tile fills a slice of length n by repeating motif and truncating
// the last copy, so ret[i] is always motif[i mod len(motif)].
func tile(motif []byte, n int) []byte {
	if n < 0 {
		n = 0
	}
	ret := make([]byte, n)
	for i := range ret {
		ret[i] = motif[i%len(motif)]
	}
	return ret
}

// randMotif returns n bases drawn with replacement, so a degenerate
// motif like "AAA" is possible and allowed.
func (src *Source) randMotif(n int) []byte {
	motif := make([]byte, n)
	for i := range motif {
		motif[i] = bases[src.rnd.Intn(len(bases))]
	}
	return motif
}

// Low returns a low-complexity read of length n. One of three forms
// is chosen uniformly: a homopolymer, a dinucleotide repeat from the
// fixed motif set, or a repeat of three random bases.
func (src *Source) Low(n int) []byte {
	switch src.rnd.Intn(3) {
	case 0:
		return tile([]byte{bases[src.rnd.Intn(len(bases))]}, n)
	case 1:
		return tile([]byte(dinucs[src.rnd.Intn(len(dinucs))]), n)
	default:
		return tile(src.randMotif(3), n)
	}
}

// Medium returns a read of length n built by tiling a random unit of
// four to eight bases.
func (src *Source) Medium(n int) []byte {
	unitlen := 4 + src.rnd.Intn(5) // 4 up to and including 8
	return tile(src.randMotif(unitlen), n)
}

// High returns a read of length n where every base is drawn
// uniformly and independently.
func (src *Source) High(n int) []byte {
	if n < 0 {
		n = 0
	}
	ret := make([]byte, n)
	for i := range ret {
		ret[i] = bases[src.rnd.Intn(len(bases))]
	}
	return ret
}

// Jitter wobbles a nominal read length by up to ten percent either
// way and rounds to the nearest whole base.
func (src *Source) Jitter(n int) int {
	u := 0.9 + 0.2*src.rnd.Float64()
	return int(math.Round(float64(n) * u))
}

// Qual returns a quality string of length n at a constant score,
// encoded as printable ascii by adding 33.
func Qual(n, score int) []byte {
	if n < 0 {
		n = 0
	}
	q := byte(33 + score)
	ret := make([]byte, n)
	for i := range ret {
		ret[i] = q
	}
	return ret
}

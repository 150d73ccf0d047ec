// 18 June 2026

// brokenio wraps an io.Writer and makes it fail on purpose. The
// generator's promise is that a write error part way through leaves
// a truncated file and a visible error, and the only way to test
// that promise is a writer which breaks on schedule.
// Typical use: you have a buffer or a file pointer. You write
// w = brokenio.NewWriter(w, n) to wrap the old writer. Everything
// functions as before until n bytes have gone through.

package brokenio

import (
	"errors"
	"io"
)

// ErrBroken is returned by every write once the limit is reached.
var ErrBroken = errors.New("deliberate write failure")

// A BrknWrtr passes bytes through to the wrapped writer until nmax
// bytes have been written. After that, every call fails.
type BrknWrtr struct {
	wrtr io.Writer
	nmax int // fail once this many bytes have been written
	n    int // bytes written so far
}

// NewWriter wraps wrtr so that it breaks after nmax bytes.
func NewWriter(wrtr io.Writer, nmax int) *BrknWrtr {
	return &BrknWrtr{wrtr: wrtr, nmax: nmax}
}

// NByte returns how many bytes made it through before the breakage.
func (b *BrknWrtr) NByte() int { return b.n }

// Write sends p through until the limit. A write which would cross
// the limit is cut short, like a device that ran out of room.
func (b *BrknWrtr) Write(p []byte) (int, error) {
	if b.n >= b.nmax {
		return 0, ErrBroken
	}
	if room := b.nmax - b.n; len(p) > room {
		n, err := b.wrtr.Write(p[:room])
		b.n += n
		if err != nil {
			return n, err
		}
		return n, ErrBroken
	}
	n, err := b.wrtr.Write(p)
	b.n += n
	return n, err
}

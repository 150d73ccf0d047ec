// 11 June 2026

// Package fastq writes and reads four line fastq records. It is not
// a general purpose fastq library. Sequences sit on one line, the
// separator line is a bare "+" and nobody wraps anything.
package fastq

import (
	"bufio"
	"fmt"
	"io"
)

// Reads of 200000 bases are an advertised use, so the scanner must
// be allowed a big line before it gives up.
const maxLine = 64 * 1024 * 1024

// WriteRecord writes one read as four lines. name goes after the "@"
// on the title line. We do not check that seq and qual are the same
// length. That is the caller's job. An error part way through leaves
// a partial record behind, which the caller also has to live with.
func WriteRecord(w io.Writer, name string, seq, qual []byte) error {
	if _, err := fmt.Fprintf(w, "@%s\n", name); err != nil {
		return err
	}
	if _, err := w.Write(seq); err != nil {
		return err
	}
	if _, err := w.Write([]byte("\n+\n")); err != nil {
		return err
	}
	if _, err := w.Write(qual); err != nil {
		return err
	}
	_, err := w.Write([]byte{'\n'})
	return err
}

// A Reader steps through records. After Next returns true, Name, Seq
// and Qual hold the current record. The slices are reused, so they
// are only good until the next call to Next.
type Reader struct {
	Name string
	Seq  []byte
	Qual []byte
	scn  *bufio.Scanner
	sep  []byte
	err  error
	nrec int
}

// NewReader returns a Reader which will pull records from rdr.
func NewReader(rdr io.Reader) *Reader {
	scn := bufio.NewScanner(rdr)
	scn.Buffer(make([]byte, 0, 64*1024), maxLine)
	return &Reader{scn: scn}
}

// getline reads one more line into dst, reusing its backing store.
// Running out of input here means the record was cut off.
func (r *Reader) getline(dst *[]byte, what string) bool {
	if !r.scn.Scan() {
		if err := r.scn.Err(); err != nil {
			r.err = err
		} else {
			r.err = fmt.Errorf("record %d: input ends before the %s line", r.nrec+1, what)
		}
		return false
	}
	*dst = append((*dst)[:0], r.scn.Bytes()...)
	return true
}

// Next advances to the next record. It returns false at the end of
// input or on an error. Check Err afterwards to tell the two apart.
func (r *Reader) Next() bool {
	if r.err != nil {
		return false
	}
	if !r.scn.Scan() {
		r.err = r.scn.Err() // nil on a clean end of input
		return false
	}
	title := r.scn.Bytes()
	if len(title) == 0 || title[0] != '@' {
		r.err = fmt.Errorf("record %d: title line does not start with \"@\"", r.nrec+1)
		return false
	}
	r.Name = string(title[1:])
	if !r.getline(&r.Seq, "sequence") {
		return false
	}
	if !r.getline(&r.sep, "separator") {
		return false
	}
	if len(r.sep) == 0 || r.sep[0] != '+' {
		r.err = fmt.Errorf("record %d: separator line does not start with \"+\"", r.nrec+1)
		return false
	}
	if !r.getline(&r.Qual, "quality") {
		return false
	}
	r.nrec++
	return true
}

// Err returns the first error met while reading. It is nil after a
// clean end of input.
func (r *Reader) Err() error { return r.err }

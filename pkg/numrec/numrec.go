// 12 July 2026

// Package numrec counts the records in a fastq file without parsing
// it. Four lines per record, so counting newlines and dividing by
// four is enough, and on a multi gigabyte benchmark file it had
// better be quick. The file is mapped rather than read.
package numrec

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/edsrzf/mmap-go"
)

// byMmap maps the file and counts newlines in one pass. Mapping a
// zero length file fails on most systems, so that case is answered
// without a map.
func byMmap(fname string) (int, error) {
	var fp *os.File
	var err error
	var mm mmap.MMap
	if fp, err = os.Open(fname); err != nil {
		return 0, err
	}
	defer fp.Close()
	if fi, err := fp.Stat(); err != nil {
		return 0, err
	} else if fi.Size() == 0 {
		return 0, nil
	}
	if mm, err = mmap.Map(fp, mmap.RDONLY, 0); err != nil {
		return 0, err
	}
	defer mm.Unmap()
	return bytes.Count(mm, []byte{'\n'}), nil
}

// byReading counts newlines through a fixed buffer. It is the
// portable fallback and the thing byMmap gets benchmarked against.
func byReading(fname string) (int, error) {
	const bsize = 64 * 1024
	var buf [bsize]byte
	fp, err := os.Open(fname)
	if err != nil {
		return 0, err
	}
	defer fp.Close()
	count := 0
	for {
		n, err := fp.Read(buf[:])
		count += bytes.Count(buf[:n], []byte{'\n'})
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, err
		}
	}
	return count, nil
}

// NumRec returns the number of records in a fastq file. The records
// must be newline terminated. A file which does not hold a whole
// number of four line records gives an error, which is how truncated
// files from killed runs get noticed.
func NumRec(fname string) (int, error) {
	nline, err := byMmap(fname)
	if err != nil {
		return 0, err
	}
	if nline%4 != 0 {
		return 0, fmt.Errorf("%s: %d lines is not a whole number of fastq records",
			fname, nline)
	}
	return nline / 4, nil
}

// 16 July 2026

// Package lenhist collects read lengths and turns them into a
// histogram, either as numbers for a spreadsheet or as a picture.
// Generated lengths wobble around the nominal value and a plot is
// the quickest way to see whether the wobble looks right.
package lenhist

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"sort"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font/gofont/goregular"
)

// A Bin is one histogram bar. Lo and Hi are both inclusive.
type Bin struct {
	Lo, Hi int
	Count  int
}

// A Hist accumulates lengths. The zero value is ready to use.
type Hist struct {
	lens []int
}

// Add puts one length into the histogram.
func (h *Hist) Add(n int) { h.lens = append(h.lens, n) }

// N returns how many lengths have been added.
func (h *Hist) N() int { return len(h.lens) }

// Bins splits the collected lengths into nbin bins of roughly equal
// width covering the whole range. Lengths are whole numbers, so nbin
// is clamped to the number of values the range holds and every bin
// spans at least one. With no data it returns nil.
func (h *Hist) Bins(nbin int) []Bin {
	if len(h.lens) == 0 {
		return nil
	}
	min, max := h.lens[0], h.lens[0]
	for _, v := range h.lens {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	if span := max - min + 1; nbin > span {
		nbin = span
	}
	if nbin < 1 {
		nbin = 1
	}
	// One set of integer edges serves both the bin bounds and the
	// counting, so Count is exactly the lengths inside [Lo,Hi].
	width := float64(max-min+1) / float64(nbin)
	edges := make([]int, nbin+1)
	for i := range edges {
		edges[i] = min + int(float64(i)*width)
	}
	edges[nbin] = max + 1
	bins := make([]Bin, nbin)
	for i := range bins {
		bins[i].Lo = edges[i]
		bins[i].Hi = edges[i+1] - 1
	}
	for _, v := range h.lens {
		bins[sort.SearchInts(edges, v+1)-1].Count++
	}
	return bins
}

// WriteCSV writes the bins as three columns with a quoted header.
func (h *Hist) WriteCSV(w io.Writer, nbin int) error {
	bins := h.Bins(nbin)
	if bins == nil {
		return fmt.Errorf("no lengths collected")
	}
	if _, err := fmt.Fprintln(w, `"bin low","bin high","count"`); err != nil {
		return err
	}
	for _, b := range bins {
		if _, err := fmt.Fprintf(w, "%d,%d,%d\n", b.Lo, b.Hi, b.Count); err != nil {
			return err
		}
	}
	return nil
}

// Picture geometry. A fixed size keeps the code short and the output
// predictable.
const (
	imgW    = 640
	imgH    = 480
	marginL = 60
	marginR = 20
	marginT = 30
	marginB = 40
)

// WritePNG draws the histogram as a bar chart and writes it out as a
// png. Labels are set in the Go regular face via freetype.
func (h *Hist) WritePNG(w io.Writer, nbin int, title string) error {
	bins := h.Bins(nbin)
	if bins == nil {
		return fmt.Errorf("no lengths collected")
	}
	maxCount := 0
	for _, b := range bins {
		if b.Count > maxCount {
			maxCount = b.Count
		}
	}
	img := image.NewRGBA(image.Rect(0, 0, imgW, imgH))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	barCol := &image.Uniform{color.RGBA{105, 105, 105, 255}}
	plotW := imgW - marginL - marginR
	plotH := imgH - marginT - marginB
	for i, b := range bins {
		x0 := marginL + i*plotW/len(bins)
		x1 := marginL + (i+1)*plotW/len(bins) - 1
		bh := 0
		if maxCount > 0 {
			bh = b.Count * plotH / maxCount
		}
		r := image.Rect(x0, marginT+plotH-bh, x1, marginT+plotH)
		draw.Draw(img, r, barCol, image.Point{}, draw.Src)
	}
	draw.Draw(img, image.Rect(marginL-1, marginT, marginL, marginT+plotH),
		image.Black, image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(marginL-1, marginT+plotH, imgW-marginR, marginT+plotH+1),
		image.Black, image.Point{}, draw.Src)

	fnt, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return fmt.Errorf("parsing the builtin font: %w", err)
	}
	ctx := freetype.NewContext()
	ctx.SetDPI(72)
	ctx.SetFont(fnt)
	ctx.SetFontSize(12)
	ctx.SetClip(img.Bounds())
	ctx.SetDst(img)
	ctx.SetSrc(image.Black)
	labels := []struct {
		s    string
		x, y int
	}{
		{title, marginL, marginT - 10},
		{fmt.Sprint(bins[0].Lo), marginL, imgH - marginB + 18},
		{fmt.Sprint(bins[len(bins)-1].Hi), imgW - marginR - 45, imgH - marginB + 18},
		{fmt.Sprint(maxCount), 5, marginT + 12},
		{"0", 5, marginT + plotH},
	}
	for _, l := range labels {
		if _, err := ctx.DrawString(l.s, freetype.Pt(l.x, l.y)); err != nil {
			return fmt.Errorf("drawing label %q: %w", l.s, err)
		}
	}
	return png.Encode(w, img)
}

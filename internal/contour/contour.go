// Package contour extracts threshold iso-lines from a height field with
// marching squares.
package contour

import (
	"math"

	"noise-contours/internal/field"
)

// Point is a position in grid or pixel space.
type Point struct {
	X, Y float64
}

// Pixel rounds the point to the nearest integer pixel.
func (p Point) Pixel() (int, int) {
	return int(math.Round(p.X)), int(math.Round(p.Y))
}

// Segment is one line piece of a contour.
type Segment struct {
	A, B Point
}

// Scale maps a grid-space segment into output pixels: each coordinate is
// multiplied by (sx, sy) and shifted by (ox, oy).
func (s Segment) Scale(sx, sy, ox, oy float64) Segment {
	return Segment{
		A: Point{s.A.X*sx + ox, s.A.Y*sy + oy},
		B: Point{s.B.X*sx + ox, s.B.Y*sy + oy},
	}
}

// Corners are the four samples around one cell.
type Corners struct {
	TL, TR, BR, BL float64
}

// CornersAt reads the corners of cell (x, y); (x+1, y+1) must be in range.
func CornersAt(h *field.Grid, x, y int) Corners {
	return Corners{
		TL: h.At(x, y),
		TR: h.At(x+1, y),
		BR: h.At(x+1, y+1),
		BL: h.At(x, y+1),
	}
}

// CaseIndex packs the above-threshold test of each corner into a 4-bit index.
func CaseIndex(c Corners, threshold float64) uint8 {
	var idx uint8
	if c.TL > threshold {
		idx |= BitTL
	}
	if c.TR > threshold {
		idx |= BitTR
	}
	if c.BR > threshold {
		idx |= BitBR
	}
	if c.BL > threshold {
		idx |= BitBL
	}
	return idx
}

// Cell classifies cell (x, y) and returns its case index with the segments
// it emits, appended to dst.
func Cell(dst []Segment, h *field.Grid, x, y int, threshold float64) (uint8, []Segment) {
	idx := CaseIndex(CornersAt(h, x, y), threshold)
	c := Table[idx]
	for i := 0; i < c.Segments(); i++ {
		p := c.Pairs[i]
		dst = append(dst, Segment{A: p[0].Midpoint(x, y), B: p[1].Midpoint(x, y)})
	}
	return idx, dst
}

// Walk visits every cell in row-major order with its case index and the
// segments it emits. segs is reused between calls.
func Walk(h *field.Grid, threshold float64, fn func(x, y int, idx uint8, segs []Segment)) {
	if h.Width < 2 || h.Height < 2 {
		return
	}
	buf := make([]Segment, 0, 2)
	for y := 0; y < h.Height-1; y++ {
		for x := 0; x < h.Width-1; x++ {
			var idx uint8
			idx, buf = Cell(buf[:0], h, x, y, threshold)
			fn(x, y, idx, buf)
		}
	}
}

// Extract returns the contour segments of h at threshold in grid space.
// Grids narrower or shorter than two samples produce no segments.
func Extract(h *field.Grid, threshold float64) []Segment {
	if h.Width < 2 || h.Height < 2 {
		return nil
	}
	var out []Segment
	for y := 0; y < h.Height-1; y++ {
		for x := 0; x < h.Width-1; x++ {
			_, out = Cell(out, h, x, y, threshold)
		}
	}
	return out
}

// MaxSegments is the upper bound on Extract's output for a w x h grid.
func MaxSegments(w, h int) int {
	if w < 2 || h < 2 {
		return 0
	}
	return 2 * (w - 1) * (h - 1)
}

// Histogram counts how many cells fall into each case.
func Histogram(h *field.Grid, threshold float64) [16]int {
	var counts [16]int
	Walk(h, threshold, func(_, _ int, idx uint8, _ []Segment) {
		counts[idx]++
	})
	return counts
}

package render

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/mazznoer/colorgrad"

	"noise-contours/internal/contour"
	"noise-contours/internal/field"
)

// Palette maps a height in [0, 1] to a color.
type Palette interface {
	Color(v float64) Pixel
}

// Grayscale shades heights from black to white.
type Grayscale struct{}

func (Grayscale) Color(v float64) Pixel {
	s := uint8(0xff * clamp01(v))
	return Pixel{s, s, s}
}

// GradientPalette samples a color gradient.
type GradientPalette struct {
	grad colorgrad.Gradient
}

// TerrainPalette ramps from deep water through sand and grass to snow.
func TerrainPalette() (*GradientPalette, error) {
	grad, err := colorgrad.NewGradient().
		Colors(
			color.RGBA{10, 30, 110, 255},
			color.RGBA{40, 110, 200, 255},
			color.RGBA{220, 205, 140, 255},
			color.RGBA{70, 150, 60, 255},
			color.RGBA{40, 95, 40, 255},
			color.RGBA{120, 110, 100, 255},
			color.RGBA{245, 245, 250, 255},
		).
		Domain(0, 1).
		Build()
	if err != nil {
		return nil, fmt.Errorf("build terrain gradient: %w", err)
	}
	return &GradientPalette{grad: grad}, nil
}

func (g *GradientPalette) Color(v float64) Pixel {
	r, gr, b := g.grad.At(clamp01(v)).RGB255()
	return Pixel{r, gr, b}
}

// PaletteByName returns "grayscale" or "terrain".
func PaletteByName(name string) (Palette, error) {
	switch strings.ToLower(name) {
	case "", "grayscale", "gray", "grey":
		return Grayscale{}, nil
	case "terrain":
		return TerrainPalette()
	}
	return nil, fmt.Errorf("unknown palette %q (available: grayscale, terrain)", name)
}

// ShadeField paints each height sample as a cell x cell block.
func ShadeField(f *Frame, h *field.Grid, cell int, pal Palette) {
	for y := 0; y < h.Height; y++ {
		for x := 0; x < h.Width; x++ {
			f.FillRect(x*cell, y*cell, cell, cell, pal.Color(h.At(x, y)))
		}
	}
}

// DrawSegments rasterises grid-space segments onto a frame shaded with
// ShadeField. Grid sample (x, y) maps to the centre of its block.
func DrawSegments(f *Frame, segs []contour.Segment, cell int, p Pixel) {
	c := float64(cell)
	off := c / 2
	for _, s := range segs {
		ps := s.Scale(c, c, off, off)
		x0, y0 := ps.A.Pixel()
		x1, y1 := ps.B.Pixel()
		f.DrawLine(x0, y0, x1, y1, p)
	}
}

// DrawProfile plots a 1D height row across the frame: samples are spread
// over the width with height 1 at the top row, and consecutive samples are
// joined with lines. Columns under the curve are filled with pal.
func DrawProfile(f *Frame, row []float64, pal Palette, line Pixel) {
	n := len(row)
	if n == 0 || f.Width == 0 || f.Height == 0 {
		return
	}
	px := func(i int) int {
		if n == 1 {
			return f.Width / 2
		}
		return i * (f.Width - 1) / (n - 1)
	}
	py := func(v float64) int {
		return int((1 - clamp01(v)) * float64(f.Height-1))
	}

	for i := 0; i < n; i++ {
		x0 := px(i)
		x1 := x0
		if i+1 < n {
			x1 = px(i + 1)
		}
		for x := x0; x <= x1; x++ {
			f.FillRect(x, py(row[i]), 1, f.Height, pal.Color(row[i]))
		}
	}
	for i := 0; i+1 < n; i++ {
		f.DrawLine(px(i), py(row[i]), px(i+1), py(row[i+1]), line)
	}
	if n == 1 {
		f.Set(px(0), py(row[0]), line)
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

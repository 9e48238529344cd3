package field

// Grid is a fixed-size row-major array of scalar samples addressed by (x, y).
type Grid struct {
	Width  int
	Height int
	Cells  []float64 // [y*Width+x]
}

// New allocates a zeroed grid. Both dimensions must be at least 1.
func New(width, height int) (*Grid, error) {
	if width < 1 {
		return nil, &ConfigError{Param: "width", Value: width, Reason: "must be at least 1"}
	}
	if height < 1 {
		return nil, &ConfigError{Param: "height", Value: height, Reason: "must be at least 1"}
	}
	return &Grid{
		Width:  width,
		Height: height,
		Cells:  make([]float64, width*height),
	}, nil
}

// Index returns the offset of (x, y) in Cells.
func (g *Grid) Index(x, y int) int {
	return y*g.Width + x
}

// At returns the sample at (x, y). Coordinates must be in range.
func (g *Grid) At(x, y int) float64 {
	return g.Cells[y*g.Width+x]
}

// Set writes the sample at (x, y). Coordinates must be in range.
func (g *Grid) Set(x, y int, v float64) {
	g.Cells[y*g.Width+x] = v
}

// Wrap samples the grid as a torus: any coordinate, including negative
// ones, is reduced modulo the grid dimensions.
func (g *Grid) Wrap(x, y int) float64 {
	return g.Cells[mod(y, g.Height)*g.Width+mod(x, g.Width)]
}

// Row returns row y as a slice sharing the grid's storage.
func (g *Grid) Row(y int) []float64 {
	return g.Cells[y*g.Width : (y+1)*g.Width]
}

// Fill sets every sample to v.
func (g *Grid) Fill(v float64) {
	for i := range g.Cells {
		g.Cells[i] = v
	}
}

// Clone returns a deep copy.
func (g *Grid) Clone() *Grid {
	c := &Grid{Width: g.Width, Height: g.Height, Cells: make([]float64, len(g.Cells))}
	copy(c.Cells, g.Cells)
	return c
}

// SameSize reports whether both grids have identical dimensions.
func (g *Grid) SameSize(o *Grid) bool {
	return g.Width == o.Width && g.Height == o.Height
}

// MinMax returns the smallest and largest sample.
func (g *Grid) MinMax() (lo, hi float64) {
	if len(g.Cells) == 0 {
		return 0, 0
	}
	lo, hi = g.Cells[0], g.Cells[0]
	for _, v := range g.Cells[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}

func mod(a, n int) int {
	a %= n
	if a < 0 {
		a += n
	}
	return a
}

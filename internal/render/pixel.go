package render

// Pixel is an opaque RGB color.
type Pixel struct {
	R, G, B uint8
}

// P is a shorthand to create a pixel.
func P(r, g, b uint8) Pixel {
	return Pixel{R: r, G: g, B: b}
}

// Frame is a row-major pixel buffer.
type Frame struct {
	Width, Height int
	Pix           []Pixel // [y*Width+x]
}

// NewFrame creates a black frame. Negative sizes are treated as zero.
func NewFrame(width, height int) *Frame {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Frame{Width: width, Height: height, Pix: make([]Pixel, width*height)}
}

// In reports whether (x, y) lies inside the frame.
func (f *Frame) In(x, y int) bool {
	return x >= 0 && x < f.Width && y >= 0 && y < f.Height
}

// Set writes a pixel; points outside the frame are ignored.
func (f *Frame) Set(x, y int, p Pixel) {
	if !f.In(x, y) {
		return
	}
	f.Pix[y*f.Width+x] = p
}

// At returns the pixel at (x, y), or black outside the frame.
func (f *Frame) At(x, y int) Pixel {
	if !f.In(x, y) {
		return Pixel{}
	}
	return f.Pix[y*f.Width+x]
}

// Fill paints the whole frame.
func (f *Frame) Fill(p Pixel) {
	for i := range f.Pix {
		f.Pix[i] = p
	}
}

// FillRect paints a w x h block at (x, y), clipped to the frame.
func (f *Frame) FillRect(x, y, w, h int, p Pixel) {
	for py := y; py < y+h; py++ {
		if py < 0 || py >= f.Height {
			continue
		}
		for px := x; px < x+w; px++ {
			if px < 0 || px >= f.Width {
				continue
			}
			f.Pix[py*f.Width+px] = p
		}
	}
}

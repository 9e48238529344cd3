package render

import (
	"image"
	"image/color"

	xdraw "golang.org/x/image/draw"
)

// ToImage copies the frame into an RGBA image.
func (f *Frame) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			p := f.Pix[y*f.Width+x]
			img.SetRGBA(x, y, color.RGBA{p.R, p.G, p.B, 0xff})
		}
	}
	return img
}

// ScaleImage enlarges src by an integer factor without smoothing, keeping
// block edges and contour lines crisp.
func ScaleImage(src image.Image, factor int) *image.RGBA {
	if factor < 1 {
		factor = 1
	}
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), src, b, xdraw.Src, nil)
	return dst
}

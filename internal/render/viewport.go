package render

// Viewport places a pixel frame on the terminal. Each terminal cell shows one
// pixel column and two pixel rows.
type Viewport struct {
	SrcX, SrcY       int // top-left frame pixel shown
	OffsetX, OffsetY int // top-left screen cell (0-based)
	ViewW, ViewH     int // visible area in cells
}

// NewViewport centres the frame in the terminal area above the HUD. Frames
// larger than the area are cropped around their centre.
func NewViewport(frameW, frameH, termW, termH, hudRows int) Viewport {
	areaW := termW
	areaH := termH - hudRows
	if areaW < 0 {
		areaW = 0
	}
	if areaH < 0 {
		areaH = 0
	}

	var vp Viewport
	vp.SrcX, vp.OffsetX, vp.ViewW = fit(frameW, areaW)

	rows := (frameH + 1) / 2
	srcRow, offY, viewH := fit(rows, areaH)
	vp.SrcY = srcRow * 2
	vp.OffsetY = offY
	vp.ViewH = viewH

	return vp
}

// fit centres size units inside an area of avail units and returns the first
// visible unit, the screen offset and the visible length.
func fit(size, avail int) (src, off, n int) {
	if size <= avail {
		return 0, (avail - size) / 2, size
	}
	return (size - avail) / 2, 0, avail
}

// FrameToScreen converts a frame pixel to a 0-based screen cell.
// Returns -1,-1 if the pixel is not visible.
func (v Viewport) FrameToScreen(px, py int) (int, int) {
	cx := px - v.SrcX
	cy := py - v.SrcY
	if cx < 0 || cx >= v.ViewW || cy < 0 || cy >= v.ViewH*2 {
		return -1, -1
	}
	return v.OffsetX + cx, v.OffsetY + cy/2
}

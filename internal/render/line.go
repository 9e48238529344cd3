package render

// Line visits every point of the 8-connected Bresenham line from (x0, y0) to
// (x1, y1), both endpoints included.
func Line(x0, y0, x1, y1 int, visit func(x, y int)) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}

	err := dx + dy
	for {
		visit(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// DrawLine rasterises a line into the frame. Points outside it are dropped.
func (f *Frame) DrawLine(x0, y0, x1, y1 int, p Pixel) {
	Line(x0, y0, x1, y1, func(x, y int) {
		f.Set(x, y, p)
	})
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

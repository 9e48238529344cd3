package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pt struct{ x, y int }

func collect(x0, y0, x1, y1 int) []pt {
	var pts []pt
	Line(x0, y0, x1, y1, func(x, y int) { pts = append(pts, pt{x, y}) })
	return pts
}

// TestLineShapes checks endpoints, length and 8-connectivity for lines in
// every octant.
func TestLineShapes(t *testing.T) {
	tests := []struct {
		name           string
		x0, y0, x1, y1 int
		wantLen        int
	}{
		{"single point", 3, 3, 3, 3, 1},
		{"horizontal right", 0, 0, 5, 0, 6},
		{"horizontal left", 5, 2, 0, 2, 6},
		{"vertical down", 1, 0, 1, 4, 5},
		{"vertical up", 1, 4, 1, 0, 5},
		{"diagonal", 0, 0, 4, 4, 5},
		{"anti-diagonal", 4, 0, 0, 4, 5},
		{"shallow", 0, 0, 7, 2, 8},
		{"steep", 0, 0, 2, 7, 8},
		{"steep negative", 2, 7, 0, 0, 8},
		{"shallow negative", 7, 2, 0, 0, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pts := collect(tt.x0, tt.y0, tt.x1, tt.y1)
			require.Len(t, pts, tt.wantLen)
			assert.Equal(t, pt{tt.x0, tt.y0}, pts[0])
			assert.Equal(t, pt{tt.x1, tt.y1}, pts[len(pts)-1])
			for i := 1; i < len(pts); i++ {
				dx := abs(pts[i].x - pts[i-1].x)
				dy := abs(pts[i].y - pts[i-1].y)
				if dx > 1 || dy > 1 || (dx == 0 && dy == 0) {
					t.Fatalf("step %d not 8-connected: %v -> %v", i, pts[i-1], pts[i])
				}
			}
		})
	}
}

func TestDrawLineClips(t *testing.T) {
	f := NewFrame(4, 4)
	white := P(255, 255, 255)

	assert.NotPanics(t, func() {
		f.DrawLine(-10, -10, 10, 10, white)
		f.DrawLine(100, 100, 200, 300, white)
	})
	for i := 0; i < 4; i++ {
		assert.Equal(t, white, f.At(i, i))
	}
	assert.Equal(t, Pixel{}, f.At(1, 0))
	assert.Equal(t, Pixel{}, f.At(-1, 0))
}

func TestFrameFillRect(t *testing.T) {
	f := NewFrame(3, 3)
	red := P(255, 0, 0)
	f.FillRect(1, 1, 5, 5, red)
	assert.Equal(t, Pixel{}, f.At(0, 0))
	assert.Equal(t, red, f.At(1, 1))
	assert.Equal(t, red, f.At(2, 2))

	f.Fill(red)
	for _, p := range f.Pix {
		assert.Equal(t, red, p)
	}
}

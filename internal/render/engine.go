package render

import (
	"strings"
)

const HUDRows = 3

// Controls is the key help shown on the last HUD row.
const Controls = "Space Regen │ R Resmooth │ [ ] Octaves │ , . Persist │ +/- Threshold │ I Interp │ Tab 1D/2D │ C Contours │ Q Quit"

// Cell is one terminal character with 24-bit foreground and background.
type Cell struct {
	Ch     rune
	Fg, Bg Pixel
	Bold   bool
}

// blank never matches a drawn cell, forcing a full repaint.
var blank = Cell{Ch: '\x00', Fg: Pixel{R: 255}, Bg: Pixel{B: 255}, Bold: true}

var (
	bgPixel    = Pixel{10, 10, 15}
	hudBg      = Pixel{15, 18, 30}
	infoFg     = Pixel{180, 180, 195}
	helpFg     = Pixel{130, 130, 145}
	statusFg   = Pixel{100, 220, 220}
	alertFg    = Pixel{255, 110, 90}
	emptyCell  = Cell{Ch: ' ', Bg: bgPixel}
	hudSpacing = Cell{Ch: ' ', Bg: hudBg}
)

// HUD is the text shown below the field.
type HUD struct {
	Info   string // settings summary
	Status string // transient message; replaces Controls when set
	Alert  bool   // Status reports a rejected action
}

// Engine redraws a terminal from frames, writing only the cells that differ
// from the previous call. One Engine serves one session.
type Engine struct {
	cols, rows int
	shown      [][]Cell
	pending    [][]Cell
	repaint    bool
}

func NewEngine(width, height int) *Engine {
	e := &Engine{}
	e.Resize(width, height)
	return e
}

// Resize reallocates both screens and forces a full repaint.
func (e *Engine) Resize(width, height int) {
	e.cols, e.rows = max(width, 0), max(height, 0)
	e.shown = newScreen(e.cols, e.rows, blank)
	e.pending = newScreen(e.cols, e.rows, Cell{})
	e.repaint = true
}

func newScreen(cols, rows int, fill Cell) [][]Cell {
	scr := make([][]Cell, rows)
	for r := range scr {
		line := make([]Cell, cols)
		for c := range line {
			line[c] = fill
		}
		scr[r] = line
	}
	return scr
}

// Render composes frame and hud for a termW x termH terminal and returns the
// escape sequences that bring the screen up to date. A nil frame draws only
// the HUD.
func (e *Engine) Render(frame *Frame, hud HUD, termW, termH int) string {
	if termW != e.cols || termH != e.rows {
		e.Resize(termW, termH)
	}

	for _, line := range e.pending {
		for c := range line {
			line[c] = emptyCell
		}
	}
	if frame != nil {
		e.stamp(frame, NewViewport(frame.Width, frame.Height, termW, termH, HUDRows))
	}
	e.drawHUD(hud)

	out := e.diff()
	e.shown, e.pending = e.pending, e.shown
	e.repaint = false
	return out
}

// stamp copies the visible part of frame into the pending screen, two pixel
// rows per cell.
func (e *Engine) stamp(frame *Frame, vp Viewport) {
	for cy := 0; cy < vp.ViewH && vp.OffsetY+cy < e.rows; cy++ {
		line := e.pending[vp.OffsetY+cy]
		top := vp.SrcY + 2*cy
		for cx := 0; cx < vp.ViewW && vp.OffsetX+cx < e.cols; cx++ {
			px := vp.SrcX + cx
			bottom := bgPixel
			if top+1 < frame.Height {
				bottom = frame.At(px, top+1)
			}
			line[vp.OffsetX+cx] = PixelPair(frame.At(px, top), bottom)
		}
	}
}

// diff emits changed cells, skipping the cursor move when a run continues on
// the same row.
func (e *Engine) diff() string {
	var sb strings.Builder
	sb.Grow(16384)

	curRow, curCol := -1, -1
	for r, line := range e.pending {
		for c, cell := range line {
			if !e.repaint && cell == e.shown[r][c] {
				continue
			}
			if r != curRow || c != curCol {
				sb.WriteString(MoveTo(r+1, c+1))
			}
			WriteCellSGR(&sb, cell)
			curRow, curCol = r, c+1
		}
	}
	if sb.Len() > 0 {
		sb.WriteString(Reset)
	}
	return sb.String()
}

func (e *Engine) drawHUD(hud HUD) {
	top := e.rows - HUDRows
	if top < 0 {
		return
	}

	sep := e.pending[top]
	for c := range sep {
		shade := uint8(60 - c*40/max(e.cols, 1))
		sep[c] = Cell{Ch: '━', Fg: Pixel{40 + shade, 70 + shade, 90 + shade}, Bg: hudBg}
	}
	for r := top + 1; r < e.rows; r++ {
		for c := range e.pending[r] {
			e.pending[r][c] = hudSpacing
		}
	}

	e.print(top+1, 1, hud.Info, infoFg, false)
	switch {
	case hud.Status == "":
		e.print(top+2, 1, Controls, helpFg, false)
	case hud.Alert:
		e.print(top+2, 1, hud.Status, alertFg, true)
	default:
		e.print(top+2, 1, hud.Status, statusFg, true)
	}
}

// print writes text on the HUD background starting at (row, col), truncated
// at the right edge.
func (e *Engine) print(row, col int, text string, fg Pixel, bold bool) {
	if row < 0 || row >= e.rows {
		return
	}
	line := e.pending[row]
	for _, ch := range text {
		if col >= e.cols {
			return
		}
		line[col] = Cell{Ch: ch, Fg: fg, Bg: hudBg, Bold: bold}
		col++
	}
}

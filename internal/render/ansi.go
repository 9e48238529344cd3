package render

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	ESC   = "\x1b"
	CSI   = ESC + "["
	Reset = CSI + "0m"

	// HalfBlock shows two vertically stacked pixels in one terminal cell:
	// the foreground paints the top pixel, the background the bottom one.
	HalfBlock = '▀'
)

// MoveTo positions the cursor at row, col (1-based).
func MoveTo(row, col int) string {
	return fmt.Sprintf("%s%d;%dH", CSI, row, col)
}

// ClearScreen clears the entire screen.
func ClearScreen() string {
	return CSI + "2J"
}

// HideCursor hides the terminal cursor.
func HideCursor() string {
	return CSI + "?25l"
}

// ShowCursor shows the terminal cursor.
func ShowCursor() string {
	return CSI + "?25h"
}

// EnableAltScreen switches to the alternate screen buffer.
func EnableAltScreen() string {
	return CSI + "?1049h"
}

// DisableAltScreen switches back from the alternate screen buffer.
func DisableAltScreen() string {
	return CSI + "?1049l"
}

// WriteCellSGR appends c with a full SGR reset so no attribute carries over
// from the previous cell.
func WriteCellSGR(sb *strings.Builder, c Cell) {
	sb.WriteString(CSI + "0")
	if c.Bold {
		sb.WriteString(";1")
	}
	writeColor(sb, ";38;2;", c.Fg)
	writeColor(sb, ";48;2;", c.Bg)
	sb.WriteByte('m')
	sb.WriteRune(c.Ch)
}

func writeColor(sb *strings.Builder, prefix string, p Pixel) {
	sb.WriteString(prefix)
	sb.WriteString(strconv.Itoa(int(p.R)))
	sb.WriteByte(';')
	sb.WriteString(strconv.Itoa(int(p.G)))
	sb.WriteByte(';')
	sb.WriteString(strconv.Itoa(int(p.B)))
}

// PixelPair builds the half-block cell for a top and bottom pixel.
func PixelPair(top, bottom Pixel) Cell {
	return Cell{Ch: HalfBlock, Fg: top, Bg: bottom}
}

// HalfBlocks renders a whole frame as newline-separated half-block rows, for
// printing to a plain terminal rather than through an Engine.
func HalfBlocks(f *Frame) string {
	var sb strings.Builder
	sb.Grow(f.Width * (f.Height + 1) / 2 * 40)
	for y := 0; y < f.Height; y += 2 {
		for x := 0; x < f.Width; x++ {
			WriteCellSGR(&sb, PixelPair(f.At(x, y), f.At(x, y+1)))
		}
		sb.WriteString(Reset)
		sb.WriteByte('\n')
	}
	return sb.String()
}

package contour

import "fmt"

// Edge names the midpoint of one side of a contour cell.
type Edge uint8

const (
	Top Edge = iota
	Right
	Bottom
	Left
)

func (e Edge) String() string {
	switch e {
	case Top:
		return "top"
	case Right:
		return "right"
	case Bottom:
		return "bottom"
	case Left:
		return "left"
	default:
		return fmt.Sprintf("Edge(%d)", uint8(e))
	}
}

// Midpoint returns the edge midpoint of cell (x, y) in grid space, where
// corner (x, y) is the cell's top-left sample.
func (e Edge) Midpoint(x, y int) Point {
	fx, fy := float64(x), float64(y)
	switch e {
	case Top:
		return Point{fx + 0.5, fy}
	case Right:
		return Point{fx + 1, fy + 0.5}
	case Bottom:
		return Point{fx + 0.5, fy + 1}
	default:
		return Point{fx, fy + 0.5}
	}
}

// Kind is the variant tag of a Case.
type Kind uint8

const (
	NoSegment Kind = iota
	OneSegment
	TwoSegments
)

// Case is one entry of the marching-squares table. Pairs[:n] are used, where
// n is 0, 1 or 2 according to Kind.
type Case struct {
	Kind  Kind
	Pairs [2][2]Edge
}

// Segments returns the number of segments the case emits.
func (c Case) Segments() int {
	return int(c.Kind)
}

// Saddle reports whether the case is one of the two diagonal configurations.
func (c Case) Saddle() bool {
	return c.Kind == TwoSegments
}

func none() Case {
	return Case{Kind: NoSegment}
}

func one(a, b Edge) Case {
	return Case{Kind: OneSegment, Pairs: [2][2]Edge{{a, b}}}
}

func two(a, b, c, d Edge) Case {
	return Case{Kind: TwoSegments, Pairs: [2][2]Edge{{a, b}, {c, d}}}
}

// Corner bits of a case index. A bit is set when that corner lies above the
// threshold.
const (
	BitBL uint8 = 1 << iota
	BitBR
	BitTR
	BitTL
)

// Saddle case indices: only the diagonal corners tr+bl, or tl+br, are above.
const (
	SaddleTRBL uint8 = BitTR | BitBL // 5
	SaddleTLBR uint8 = BitTL | BitBR // 10
)

// Table maps every case index to the segments it draws. The saddles are
// resolved the same way every time, without sampling the cell centre.
var Table = [16]Case{
	0:  none(),
	1:  one(Bottom, Left),
	2:  one(Right, Bottom),
	3:  one(Right, Left),
	4:  one(Top, Right),
	5:  two(Top, Left, Right, Bottom),
	6:  one(Top, Bottom),
	7:  one(Top, Left),
	8:  one(Top, Left),
	9:  one(Top, Bottom),
	10: two(Top, Right, Bottom, Left),
	11: one(Top, Right),
	12: one(Right, Left),
	13: one(Right, Bottom),
	14: one(Bottom, Left),
	15: none(),
}

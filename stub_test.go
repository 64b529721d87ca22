package wagyan

import (
	"github.com/unixpickle/model3d/model2d"
)

// stubSource is a synthetic OutlineSource with fixed metrics: most
// runes map to an 8x8 square glyph with advance 10, 'o' to a square
// with a square hole, and ' ' to an empty glyph. Runes in missing have
// no glyph at all.
type stubSource struct {
	missing map[rune]bool
	kern    map[[2]rune]float64
}

func newStubSource() *stubSource {
	return &stubSource{
		missing: map[rune]bool{},
		kern:    map[[2]rune]float64{},
	}
}

func lineContour(pts ...model2d.Coord) Contour {
	c := make(Contour, 0, len(pts))
	for i, p := range pts {
		q := pts[(i+1)%len(pts)]
		c = append(c, CurveSegment{Kind: LineSegment, P0: p, P1: q})
	}
	return c
}

func squareContour(x0, y0, x1, y1 float64) Contour {
	return lineContour(
		model2d.XY(x0, y0),
		model2d.XY(x1, y0),
		model2d.XY(x1, y1),
		model2d.XY(x0, y1),
	)
}

func (s *stubSource) Glyph(r rune) (Outline, float64, bool) {
	if s.missing[r] {
		return Outline{}, 0, false
	}
	switch r {
	case ' ':
		return Outline{}, 10, true
	case 'o':
		return Outline{Contours: []Contour{
			squareContour(0, 0, 8, 8),
			squareContour(2, 2, 6, 6),
		}}, 10, true
	default:
		return Outline{Contours: []Contour{squareContour(0, 0, 8, 8)}}, 10, true
	}
}

func (s *stubSource) Kern(prev, cur rune) float64 {
	return s.kern[[2]rune{prev, cur}]
}

func (s *stubSource) Ascent() float64 { return 8 }

func (s *stubSource) LineHeight() float64 { return 12 }

package wagyan

import (
	"github.com/unixpickle/model3d/model2d"
)

const (
	// defaultToleranceRatio maps a font size to a flattening tolerance.
	// At size 72 the default tolerance is 0.01 model units.
	defaultToleranceRatio = 0.01 / 72.0

	// MinTolerance and MaxTolerance bound the flattening tolerance.
	// Values outside this range are clamped, including explicit ones.
	MinTolerance = 0.0005
	MaxTolerance = 0.2

	// maxSubdivDepth caps recursive curve subdivision so that
	// degenerate or self-tangent curves cannot recurse forever.
	maxSubdivDepth = 16
)

// SegmentKind identifies the shape of a CurveSegment.
type SegmentKind int

const (
	LineSegment SegmentKind = iota
	QuadSegment
	CubicSegment
)

// CurveSegment is one piece of a glyph contour. P0 and P1 are the
// endpoints; C1 is the control point of a quadratic, C1 and C2 the
// control points of a cubic. Unused control points are zero.
type CurveSegment struct {
	Kind SegmentKind
	P0   model2d.Coord
	C1   model2d.Coord
	C2   model2d.Coord
	P1   model2d.Coord
}

// Contour is a closed loop of curve segments: each segment starts where
// the previous one ended, and the last segment ends at the first start.
type Contour []CurveSegment

// Outline is the full set of closed contours for one glyph.
type Outline struct {
	Contours []Contour
}

// Polyline is a closed polygon approximating a Contour. The closing
// edge from the last point back to the first is implicit.
type Polyline []model2d.Coord

// ResolveTolerance picks the flattening tolerance for a font size.
// A positive override wins over the size-proportional default; either
// way the result is clamped to [MinTolerance, MaxTolerance].
func ResolveTolerance(size, override float64) float64 {
	tol := override
	if tol <= 0 {
		tol = size * defaultToleranceRatio
	}
	if tol < MinTolerance {
		return MinTolerance
	}
	if tol > MaxTolerance {
		return MaxTolerance
	}
	return tol
}

// Flatten approximates a contour with a closed polyline whose maximum
// deviation from the true curve is at most tol. Degenerate segments
// collapse to a point and are dropped. Returns nil if fewer than three
// distinct points remain.
func Flatten(c Contour, tol float64) Polyline {
	if len(c) == 0 {
		return nil
	}
	pts := make(Polyline, 0, len(c)*4)
	pts = append(pts, c[0].P0)
	for _, seg := range c {
		switch seg.Kind {
		case LineSegment:
			pts = appendPoint(pts, seg.P1)
		case QuadSegment:
			pts = appendQuad(pts, seg.P0, seg.C1, seg.P1, tol, 0)
		case CubicSegment:
			pts = appendCubic(pts, seg.P0, seg.C1, seg.C2, seg.P1, tol, 0)
		}
	}
	// Drop the explicit closing point; closure is implicit.
	if len(pts) > 1 && pts[len(pts)-1] == pts[0] {
		pts = pts[:len(pts)-1]
	}
	if len(pts) < 3 {
		return nil
	}
	return pts
}

// appendPoint appends p unless it coincides with the previous point.
func appendPoint(dst Polyline, p model2d.Coord) Polyline {
	if len(dst) > 0 && dst[len(dst)-1] == p {
		return dst
	}
	return append(dst, p)
}

// quadFlat reports whether the chord p0-p1 deviates from the quadratic
// by at most tol. The maximum deviation of a quadratic from its chord
// is |2c - p0 - p1| / 4, attained at t = 1/2.
func quadFlat(p0, c, p1 model2d.Coord, tol float64) bool {
	d := c.Scale(2).Sub(p0).Sub(p1)
	return d.Norm() <= 4*tol
}

func appendQuad(dst Polyline, p0, c, p1 model2d.Coord, tol float64, depth int) Polyline {
	if depth >= maxSubdivDepth || quadFlat(p0, c, p1, tol) {
		return appendPoint(dst, p1)
	}
	c0 := p0.Mid(c)
	c1 := c.Mid(p1)
	m := c0.Mid(c1)
	dst = appendQuad(dst, p0, c0, m, tol, depth+1)
	return appendQuad(dst, m, c1, p1, tol, depth+1)
}

// cubicFlat uses the standard flatness criterion: with
// u = 3c1 - 2p0 - p1 and v = 3c2 - 2p1 - p0, the deviation from the
// chord is bounded by sqrt(max(ux^2,vx^2)+max(uy^2,vy^2)) / 4.
func cubicFlat(p0, c1, c2, p1 model2d.Coord, tol float64) bool {
	ux := 3*c1.X - 2*p0.X - p1.X
	uy := 3*c1.Y - 2*p0.Y - p1.Y
	vx := 3*c2.X - 2*p1.X - p0.X
	vy := 3*c2.Y - 2*p1.Y - p0.Y
	ux *= ux
	uy *= uy
	vx *= vx
	vy *= vy
	if vx > ux {
		ux = vx
	}
	if vy > uy {
		uy = vy
	}
	return ux+uy <= 16*tol*tol
}

func appendCubic(dst Polyline, p0, c1, c2, p1 model2d.Coord, tol float64, depth int) Polyline {
	if depth >= maxSubdivDepth || cubicFlat(p0, c1, c2, p1, tol) {
		return appendPoint(dst, p1)
	}
	ab := p0.Mid(c1)
	bc := c1.Mid(c2)
	cd := c2.Mid(p1)
	abc := ab.Mid(bc)
	bcd := bc.Mid(cd)
	m := abc.Mid(bcd)
	dst = appendCubic(dst, p0, ab, abc, m, tol, depth+1)
	return appendCubic(dst, m, bcd, cd, p1, tol, depth+1)
}

package wagyan

import (
	"math"

	"github.com/unixpickle/model3d/model2d"
)

// FillRegion is a 2D area to be solidified: one outer boundary plus the
// holes nested inside it. The outer boundary is wound counter-clockwise
// and every hole clockwise, so their signed areas have opposite signs.
type FillRegion struct {
	Outer Polyline
	Holes []Polyline
}

// Area returns the filled area: the outer area minus the hole areas.
func (f FillRegion) Area() float64 {
	a := math.Abs(SignedArea(f.Outer))
	for _, h := range f.Holes {
		a -= math.Abs(SignedArea(h))
	}
	return a
}

// SignedArea computes the shoelace area of a closed polyline.
// Counter-clockwise polylines have positive area in the y-up frame.
func SignedArea(p Polyline) float64 {
	var sum float64
	for i, a := range p {
		b := p[(i+1)%len(p)]
		sum += a.X*b.Y - b.X*a.Y
	}
	return sum / 2
}

// ContainsPoint reports whether c is inside the polyline using even-odd
// ray casting. Points exactly on an edge may land on either side.
func (p Polyline) ContainsPoint(c model2d.Coord) bool {
	inside := false
	for i, a := range p {
		b := p[(i+1)%len(p)]
		if (a.Y > c.Y) == (b.Y > c.Y) {
			continue
		}
		t := (c.Y - a.Y) / (b.Y - a.Y)
		if a.X+t*(b.X-a.X) > c.X {
			inside = !inside
		}
	}
	return inside
}

// reversed returns a copy of p with the opposite winding.
func (p Polyline) reversed() Polyline {
	out := make(Polyline, len(p))
	for i, c := range p {
		out[len(p)-1-i] = c
	}
	return out
}

// ResolveRegions groups the flattened contours of one glyph into fill
// regions. Outer-vs-hole classification uses containment parity (a
// contour nested inside an even number of others is an outer), which is
// stable across the opposite absolute winding conventions of TrueType
// and CFF outlines. Windings are then normalized: outers
// counter-clockwise, holes clockwise. Each hole is attached to the
// smallest outer that contains it. A glyph with no outers (such as a
// space) yields no regions.
func ResolveRegions(polys []Polyline) []FillRegion {
	type ring struct {
		pts   Polyline
		area  float64 // absolute
		depth int
	}

	rings := make([]ring, 0, len(polys))
	for _, p := range polys {
		if len(p) < 3 {
			continue
		}
		area := math.Abs(SignedArea(p))
		if area == 0 {
			continue
		}
		rings = append(rings, ring{pts: p, area: area})
	}

	for i := range rings {
		probe := rings[i].pts[0]
		for j := range rings {
			if i == j {
				continue
			}
			if rings[j].pts.ContainsPoint(probe) {
				rings[i].depth++
			}
		}
	}

	var regions []FillRegion
	outerOf := make([]int, len(rings)) // ring index -> region index
	for i, r := range rings {
		if r.depth%2 != 0 {
			continue
		}
		outer := r.pts
		if SignedArea(outer) < 0 {
			outer = outer.reversed()
		}
		outerOf[i] = len(regions)
		regions = append(regions, FillRegion{Outer: outer})
	}
	if len(regions) == 0 {
		return nil
	}

	for i, r := range rings {
		if r.depth%2 == 0 {
			continue
		}
		// Attach to the smallest enclosing outer.
		best := -1
		bestArea := math.Inf(1)
		probe := r.pts[0]
		for j, other := range rings {
			if other.depth%2 != 0 || other.area >= bestArea {
				continue
			}
			if other.pts.ContainsPoint(probe) {
				best = j
				bestArea = other.area
			}
		}
		if best < 0 {
			continue // stray hole with no enclosing outer
		}
		hole := rings[i].pts
		if SignedArea(hole) > 0 {
			hole = hole.reversed()
		}
		ri := outerOf[best]
		regions[ri].Holes = append(regions[ri].Holes, hole)
	}

	return regions
}

package wagyan

import (
	"math"
	"sort"

	"github.com/unixpickle/model3d/model2d"
)

// triNode is a vertex in the circular polygon ring used for ear
// clipping. Bridge splices duplicate nodes but keep the original vertex
// index, so duplicated nodes share exact coordinates.
type triNode struct {
	idx        int
	pt         model2d.Coord
	prev, next *triNode
}

// Triangulate triangulates a polygon with holes. The outer ring should
// be counter-clockwise and holes clockwise (ResolveRegions output);
// other windings are normalized on copies. It returns the combined
// vertex list (outer vertices followed by each hole's vertices, in
// input order) and triangles as index triples wound counter-clockwise.
//
// The triangulation keeps every input vertex on the region boundary, so
// cap triangles share edges exactly with side walls built from the same
// rings. Self-intersecting input is not detected: the clipper
// force-clips rather than aborting, and the caller gets whatever
// triangles that produces.
func Triangulate(outer Polyline, holes []Polyline) ([]model2d.Coord, [][3]int) {
	if len(outer) < 3 {
		return nil, nil
	}
	if SignedArea(outer) < 0 {
		outer = outer.reversed()
	}

	verts := make([]model2d.Coord, 0, len(outer))
	verts = append(verts, outer...)
	ring := makeRing(outer, 0)

	// Merge holes right-to-left so each bridge is cast into a ring that
	// already contains any hole further right.
	type holeRing struct {
		start *triNode
		maxX  float64
	}
	hrs := make([]holeRing, 0, len(holes))
	for _, h := range holes {
		if len(h) < 3 {
			continue
		}
		if SignedArea(h) > 0 {
			h = h.reversed()
		}
		hr := holeRing{start: makeRing(h, len(verts)), maxX: math.Inf(-1)}
		verts = append(verts, h...)
		n := hr.start
		for range h {
			if n.pt.X > hr.maxX {
				hr.maxX = n.pt.X
			}
			n = n.next
		}
		hrs = append(hrs, hr)
	}
	sort.SliceStable(hrs, func(i, j int) bool {
		return hrs[i].maxX > hrs[j].maxX
	})
	for _, hr := range hrs {
		ring = spliceHole(ring, hr.start)
	}

	return verts, clipEars(ring)
}

func makeRing(p Polyline, base int) *triNode {
	nodes := make([]triNode, len(p))
	for i, c := range p {
		nodes[i] = triNode{idx: base + i, pt: c}
	}
	for i := range nodes {
		nodes[i].next = &nodes[(i+1)%len(nodes)]
		nodes[i].prev = &nodes[(i+len(nodes)-1)%len(nodes)]
	}
	return &nodes[0]
}

func cross(a, b, c model2d.Coord) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}

// inTriangle reports whether p lies inside or on the CCW triangle abc.
func inTriangle(a, b, c, p model2d.Coord) bool {
	return cross(a, b, p) >= 0 && cross(b, c, p) >= 0 && cross(c, a, p) >= 0
}

// spliceHole connects a hole ring into the outer ring with a bridge
// from the hole's rightmost vertex to a visible outer vertex. The two
// bridge endpoints are duplicated so the merged ring stays a simple
// cycle.
func spliceHole(ring, hole *triNode) *triNode {
	// Rightmost hole vertex.
	m := hole
	for n := hole.next; n != hole; n = n.next {
		if n.pt.X > m.pt.X || (n.pt.X == m.pt.X && n.pt.Y < m.pt.Y) {
			m = n
		}
	}

	bridge := findBridge(ring, m.pt)
	if bridge == nil {
		// No visible vertex: degenerate geometry past repair here.
		return ring
	}

	// ... -> bridge -> m -> hole... -> m2 -> bridge2 -> bridge.next -> ...
	m2 := &triNode{idx: m.idx, pt: m.pt}
	b2 := &triNode{idx: bridge.idx, pt: bridge.pt}

	b2.next = bridge.next
	bridge.next.prev = b2
	m2.next = b2
	b2.prev = m2
	m2.prev = m.prev
	m.prev.next = m2
	bridge.next = m
	m.prev = bridge

	return ring
}

// findBridge locates an outer-ring vertex visible from hole point hp by
// casting a ray in +X, taking the nearest intersected edge, and then
// falling back to the reflex vertex inside the candidate triangle that
// is angularly closest to the ray, per the usual ear-clipping hole
// elimination.
func findBridge(ring *triNode, hp model2d.Coord) *triNode {
	var hit *triNode // edge hit.pt -> hit.next.pt
	hitX := math.Inf(1)
	n := ring
	for {
		a, b := n.pt, n.next.pt
		if (a.Y > hp.Y) != (b.Y > hp.Y) {
			t := (hp.Y - a.Y) / (b.Y - a.Y)
			x := a.X + t*(b.X-a.X)
			if x >= hp.X && x < hitX {
				hitX = x
				hit = n
			}
		}
		n = n.next
		if n == ring {
			break
		}
	}
	if hit == nil {
		return nil
	}

	// Endpoint of the hit edge with the larger X is the candidate.
	cand := hit
	if hit.next.pt.X > hit.pt.X {
		cand = hit.next
	}
	if cand.pt == hp {
		return cand
	}

	// Any reflex vertex inside triangle (hp, intersection, candidate)
	// would block the bridge; pick the one closest in angle to the ray.
	ip := model2d.XY(hitX, hp.Y)
	best := cand
	bestTan := math.Inf(1)
	n = ring
	for {
		p := n.pt
		if p != cand.pt && p != hp && cross(n.prev.pt, p, n.next.pt) < 0 &&
			pointInBridgeTriangle(hp, ip, cand.pt, p) {
			dx := p.X - hp.X
			dy := math.Abs(p.Y - hp.Y)
			if dx > 0 {
				tan := dy / dx
				if tan < bestTan || (tan == bestTan && p.X > best.pt.X) {
					bestTan = tan
					best = n
				}
			}
		}
		n = n.next
		if n == ring {
			break
		}
	}
	return best
}

// pointInBridgeTriangle tests containment in the triangle spanned by
// the hole point, the ray intersection, and the candidate vertex,
// regardless of that triangle's winding.
func pointInBridgeTriangle(hp, ip, cp, p model2d.Coord) bool {
	if cross(hp, ip, cp) >= 0 {
		return inTriangle(hp, ip, cp, p)
	}
	return inTriangle(hp, cp, ip, p)
}

// clipEars runs ear clipping over a simple CCW ring. When no ear exists
// (self-intersecting input) it force-clips the least reflex vertex so
// the walk always terminates.
func clipEars(ring *triNode) [][3]int {
	count := 1
	for n := ring.next; n != ring; n = n.next {
		count++
	}
	if count < 3 {
		return nil
	}

	var tris [][3]int
	ear := ring
	stuck := 0
	for count > 3 {
		if isEar(ear, count) {
			tris = append(tris, [3]int{ear.prev.idx, ear.idx, ear.next.idx})
			ear.prev.next = ear.next
			ear.next.prev = ear.prev
			ear = ear.next
			count--
			stuck = 0
			continue
		}
		ear = ear.next
		stuck++
		if stuck > count {
			// No ear found in a full pass: force-clip the vertex with
			// the largest convexity (least negative cross product).
			best := ear
			bestCross := math.Inf(-1)
			n := ear
			for i := 0; i < count; i++ {
				if c := cross(n.prev.pt, n.pt, n.next.pt); c > bestCross {
					bestCross = c
					best = n
				}
				n = n.next
			}
			tris = append(tris, [3]int{best.prev.idx, best.idx, best.next.idx})
			best.prev.next = best.next
			best.next.prev = best.prev
			ear = best.next
			count--
			stuck = 0
		}
	}
	tris = append(tris, [3]int{ear.prev.idx, ear.idx, ear.next.idx})
	return tris
}

// isEar reports whether the vertex is convex and its triangle contains
// no other ring vertex. Vertices sharing coordinates with the triangle
// corners (bridge duplicates) do not block the ear.
func isEar(v *triNode, count int) bool {
	a, b, c := v.prev.pt, v.pt, v.next.pt
	if cross(a, b, c) <= 0 {
		return false
	}
	n := v.next.next
	for i := 0; i < count-3; i++ {
		p := n.pt
		if p != a && p != b && p != c && inTriangle(a, b, c, p) {
			return false
		}
		n = n.next
	}
	return true
}

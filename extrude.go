package wagyan

import (
	"github.com/unixpickle/model3d/model2d"
	"github.com/unixpickle/model3d/model3d"
)

// ExtrudeRegion lifts a fill region into a closed solid of the given
// depth, centered on z=zOffset and translated by offset in the plane.
// The caps are triangulations of the region at zOffset±depth/2; every
// boundary edge gains two wall triangles on a consistent diagonal.
// With ResolveRegions windings (outer CCW, holes CW) all normals face
// out of the occupied volume: outer walls outward, hole walls into the
// cavity, caps along -z and +z.
func ExtrudeRegion(region FillRegion, offset model2d.Coord, depth, zOffset float64) []*model3d.Triangle {
	verts, capTris := Triangulate(region.Outer, region.Holes)
	if len(capTris) == 0 {
		return nil
	}
	z0 := zOffset - depth/2
	z1 := zOffset + depth/2

	at := func(c model2d.Coord, z float64) model3d.Coord3D {
		return model3d.XYZ(c.X+offset.X, c.Y+offset.Y, z)
	}

	edgeCount := len(region.Outer)
	for _, h := range region.Holes {
		edgeCount += len(h)
	}
	tris := make([]*model3d.Triangle, 0, 2*len(capTris)+2*edgeCount)

	// Caps: triangulation is CCW, so the top keeps its winding and the
	// bottom is reversed.
	for _, t := range capTris {
		a, b, c := verts[t[0]], verts[t[1]], verts[t[2]]
		tris = append(tris,
			&model3d.Triangle{at(a, z1), at(b, z1), at(c, z1)},
			&model3d.Triangle{at(c, z0), at(b, z0), at(a, z0)},
		)
	}

	wall := func(ring Polyline) {
		for i, a := range ring {
			b := ring[(i+1)%len(ring)]
			tris = append(tris,
				&model3d.Triangle{at(a, z0), at(b, z0), at(b, z1)},
				&model3d.Triangle{at(a, z0), at(b, z1), at(a, z1)},
			)
		}
	}
	wall(region.Outer)
	for _, h := range region.Holes {
		wall(h)
	}

	return tris
}

// BuildPlate extrudes a backing slab behind the text: the bounding box
// [min, max] expanded by margin on every side, with the given
// thickness, its front face flush against the text's back face at
// z = -depth/2.
func BuildPlate(min, max model2d.Coord, margin, thickness, depth float64) []*model3d.Triangle {
	rect := Polyline{
		model2d.XY(min.X-margin, min.Y-margin),
		model2d.XY(max.X+margin, min.Y-margin),
		model2d.XY(max.X+margin, max.Y+margin),
		model2d.XY(min.X-margin, max.Y+margin),
	}
	zOffset := -(depth + thickness) / 2
	return ExtrudeRegion(FillRegion{Outer: rect}, model2d.Coord{}, thickness, zOffset)
}

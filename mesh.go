package wagyan

import (
	"math"

	"github.com/pkg/errors"
	"github.com/unixpickle/model3d/model3d"
)

// Orientation selects the plane the finished mesh lies in.
type Orientation int

const (
	// OrientFlat keeps the text in the XY plane with depth along Z.
	OrientFlat Orientation = iota

	// OrientFront stands the text up: the text plane becomes XZ with
	// depth along Y, facing the viewer.
	OrientFront
)

// ParseOrientation parses the --orient flag value.
func ParseOrientation(s string) (Orientation, error) {
	switch s {
	case "flat":
		return OrientFlat, nil
	case "front":
		return OrientFront, nil
	}
	return 0, errors.Errorf("unknown orientation %q (expected flat or front)", s)
}

func (o Orientation) String() string {
	if o == OrientFront {
		return "front"
	}
	return "flat"
}

// mapPoint applies the orientation transform to a build-space point.
// Front keeps X, rotates +Z to up and faces +Y toward the viewer.
func (o Orientation) mapPoint(c model3d.Coord3D) model3d.Coord3D {
	if o == OrientFront {
		return model3d.XYZ(c.X, -c.Z, c.Y)
	}
	return c
}

// Assemble merges per-solid triangle lists into one mesh, applies the
// orientation transform, and (when center is set) translates the mesh
// so its bounding box is centered at the origin in the two in-plane
// axes. The depth axis is already centered by extrusion. Triangle
// order is preserved, so output bytes are deterministic.
func Assemble(solids [][]*model3d.Triangle, orient Orientation, center bool) []*model3d.Triangle {
	var total int
	for _, s := range solids {
		total += len(s)
	}
	out := make([]*model3d.Triangle, 0, total)
	for _, s := range solids {
		for _, t := range s {
			out = append(out, &model3d.Triangle{
				orient.mapPoint(t[0]),
				orient.mapPoint(t[1]),
				orient.mapPoint(t[2]),
			})
		}
	}
	if !center || len(out) == 0 {
		return out
	}
	return translate(out, centeringOffset(out, orient))
}

// centeringOffset computes the translation that centers the mesh in
// the orientation's in-plane axes: X/Y for flat, X/Z for front.
func centeringOffset(tris []*model3d.Triangle, orient Orientation) model3d.Coord3D {
	min := model3d.XYZ(math.Inf(1), math.Inf(1), math.Inf(1))
	max := min.Scale(-1)
	for _, t := range tris {
		for _, c := range t {
			min = min.Min(c)
			max = max.Max(c)
		}
	}
	mid := min.Mid(max)
	if orient == OrientFront {
		return model3d.XYZ(-mid.X, 0, -mid.Z)
	}
	return model3d.XYZ(-mid.X, -mid.Y, 0)
}

func translate(tris []*model3d.Triangle, delta model3d.Coord3D) []*model3d.Triangle {
	out := make([]*model3d.Triangle, len(tris))
	for i, t := range tris {
		out[i] = &model3d.Triangle{
			t[0].Add(delta),
			t[1].Add(delta),
			t[2].Add(delta),
		}
	}
	return out
}

package wagyan

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/unixpickle/model3d/model2d"
	"github.com/unixpickle/model3d/model3d"
)

func parseSTL(t *testing.T, data string) (name string, normals, verts [][3]float64) {
	t.Helper()
	lines := strings.Split(strings.TrimSpace(data), "\n")
	if len(lines) == 0 || !strings.HasPrefix(lines[0], "solid ") {
		t.Fatalf("missing STL header: %q", lines[0])
	}
	name = strings.TrimPrefix(lines[0], "solid ")
	if last := lines[len(lines)-1]; last != "endsolid "+name {
		t.Fatalf("missing STL footer: %q", last)
	}
	parse3 := func(fields []string) [3]float64 {
		var out [3]float64
		for i, f := range fields {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				t.Fatalf("bad float %q: %v", f, err)
			}
			out[i] = v
		}
		return out
	}
	for _, line := range lines[1 : len(lines)-1] {
		fields := strings.Fields(line)
		switch {
		case len(fields) == 5 && fields[0] == "facet" && fields[1] == "normal":
			normals = append(normals, parse3(fields[2:]))
		case len(fields) == 4 && fields[0] == "vertex":
			verts = append(verts, parse3(fields[1:]))
		}
	}
	return
}

func TestEncodeSTL(t *testing.T) {
	region := FillRegion{Outer: squarePolyline(0, 0, 2, 2)}
	tris := ExtrudeRegion(region, model2d.Coord{}, 2, 0)

	var buf bytes.Buffer
	if err := EncodeSTL(&buf, "mesh", tris); err != nil {
		t.Fatal(err)
	}
	name, normals, verts := parseSTL(t, buf.String())
	if name != "mesh" {
		t.Errorf("solid name = %q", name)
	}
	if len(normals) != len(tris) {
		t.Errorf("got %d facets, want %d", len(normals), len(tris))
	}
	if len(verts) != 3*len(tris) {
		t.Errorf("got %d vertices, want %d", len(verts), 3*len(tris))
	}
	for _, n := range normals {
		length := math.Sqrt(n[0]*n[0] + n[1]*n[1] + n[2]*n[2])
		if math.Abs(length-1) > 1e-6 {
			t.Errorf("normal %v is not unit length", n)
		}
	}
	var minZ, maxZ = math.Inf(1), math.Inf(-1)
	for _, v := range verts {
		minZ = math.Min(minZ, v[2])
		maxZ = math.Max(maxZ, v[2])
	}
	if minZ != -1 || maxZ != 1 {
		t.Errorf("z range [%v, %v], want [-1, 1]", minZ, maxZ)
	}
}

func TestEncodeSTLSkipsDegenerateTriangles(t *testing.T) {
	good := &model3d.Triangle{
		model3d.XYZ(0, 0, 0), model3d.XYZ(1, 0, 0), model3d.XYZ(0, 1, 0),
	}
	degenerate := &model3d.Triangle{
		model3d.XYZ(0, 0, 0), model3d.XYZ(1, 1, 1), model3d.XYZ(2, 2, 2),
	}
	var buf bytes.Buffer
	if err := EncodeSTL(&buf, "mesh", []*model3d.Triangle{good, degenerate}); err != nil {
		t.Fatal(err)
	}
	_, normals, _ := parseSTL(t, buf.String())
	if len(normals) != 1 {
		t.Errorf("got %d facets, want 1 (degenerate skipped)", len(normals))
	}
	if strings.Contains(buf.String(), "NaN") {
		t.Error("output contains NaN")
	}
}

func TestWriteSTLFileNamesSolidAfterStem(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "badge.stl")
	tris := []*model3d.Triangle{{
		model3d.XYZ(0, 0, 0), model3d.XYZ(1, 0, 0), model3d.XYZ(0, 1, 0),
	}}
	if err := WriteSTLFile(path, tris); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	name, _, _ := parseSTL(t, string(data))
	if name != "badge" {
		t.Errorf("solid name = %q, want badge", name)
	}

	// No temp files left behind.
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("unexpected leftover files: %v", entries)
	}
}

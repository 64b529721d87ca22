package wagyan

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/unixpickle/model3d/model3d"
)

// EncodeSTL writes the triangles as an ASCII STL solid. Each facet
// carries a unit normal computed from the stored vertex winding.
// Zero-area triangles are skipped rather than emitting a NaN normal.
func EncodeSTL(w io.Writer, name string, tris []*model3d.Triangle) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "solid %s\n", name); err != nil {
		return err
	}
	for _, t := range tris {
		if t.Area() == 0 {
			continue
		}
		n := t.Normal()
		if _, err := fmt.Fprintf(bw, "  facet normal %g %g %g\n", n.X, n.Y, n.Z); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(bw, "    outer loop\n"); err != nil {
			return err
		}
		for _, v := range t {
			if _, err := fmt.Fprintf(bw, "      vertex %g %g %g\n", v.X, v.Y, v.Z); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(bw, "    endloop\n  endfacet\n"); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(bw, "endsolid %s\n", name); err != nil {
		return err
	}
	return bw.Flush()
}

// WriteSTLFile atomically writes an ASCII STL file: the mesh is encoded
// to a temporary file in the destination directory and renamed into
// place, so a failed run never leaves a truncated output. The solid is
// named after the file stem.
func WriteSTLFile(path string, tris []*model3d.Triangle) error {
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if name == "" {
		name = "mesh"
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".wagyan-*.stl")
	if err != nil {
		return errors.Wrap(err, "create temp file")
	}
	if err := EncodeSTL(tmp, name, tris); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return errors.Wrap(err, "encode STL")
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return errors.Wrap(err, "close temp file")
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return errors.Wrap(err, "rename into place")
	}
	return nil
}

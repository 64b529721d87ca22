// Package wagyan extrudes Unicode text into watertight 3D solids.
//
// The pipeline flattens glyph outline curves into polygons, resolves
// fill regions (outer boundaries and their holes), lays glyphs out on
// lines, extrudes each region into a capped prism, optionally adds a
// backing plate, and assembles everything into one triangle mesh ready
// for ASCII STL serialization.
package wagyan

import (
	"runtime"
	"sync"

	"github.com/pkg/errors"
	"github.com/unixpickle/model3d/model3d"
)

// Options configures a Render run.
type Options struct {
	// Size is the font size in model units per em.
	Size float64

	// Tolerance is the curve flattening tolerance; zero derives it
	// from Size. Either way it is clamped to
	// [MinTolerance, MaxTolerance].
	Tolerance float64

	// Depth is the extrusion depth, centered on the text plane.
	Depth float64

	// Spacing is extra distance added between glyphs.
	Spacing float64

	// Kerning applies pairwise kerning adjustments.
	Kerning bool

	// Plate is the thickness of the backing slab; zero disables it.
	Plate float64

	// PlateMargin expands the plate beyond the text bounding box.
	PlateMargin float64

	// Orient selects the output plane.
	Orient Orientation

	// Center translates the mesh so its in-plane bounding box is
	// centered at the origin.
	Center bool
}

// Render runs the whole pipeline over text and returns the assembled
// triangle mesh along with the code points that had no glyph in the
// font. Newlines in text must already be real newline runes.
func Render(src OutlineSource, text string, opts Options) ([]*model3d.Triangle, []rune, error) {
	if opts.Depth <= 0 {
		return nil, nil, errors.New("depth must be positive")
	}
	if opts.Plate < 0 {
		return nil, nil, errors.New("plate thickness must not be negative")
	}

	layout := LayoutText(src, text, LayoutOptions{
		Tolerance: ResolveTolerance(opts.Size, opts.Tolerance),
		Spacing:   opts.Spacing,
		Kerning:   opts.Kerning,
	})

	// Glyphs share no mutable state, so extrusion fans out across
	// workers and reduces back by index to keep output deterministic.
	solids := make([][]*model3d.Triangle, len(layout.Instances))
	var wg sync.WaitGroup
	sem := make(chan struct{}, runtime.GOMAXPROCS(0))
	for i, inst := range layout.Instances {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, inst GlyphInstance) {
			defer wg.Done()
			defer func() { <-sem }()
			var tris []*model3d.Triangle
			for _, region := range inst.Regions {
				tris = append(tris, ExtrudeRegion(region, inst.Offset, opts.Depth, 0)...)
			}
			solids[i] = tris
		}(i, inst)
	}
	wg.Wait()

	var all [][]*model3d.Triangle
	if opts.Plate > 0 {
		if min, max, ok := layout.Bounds(); ok {
			all = append(all, BuildPlate(min, max, opts.PlateMargin, opts.Plate, opts.Depth))
		}
	}
	all = append(all, solids...)

	return Assemble(all, opts.Orient, opts.Center), layout.Missing, nil
}

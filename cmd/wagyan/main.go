// Command wagyan extrudes text into an ASCII STL mesh.
package main

import (
	"flag"
	"fmt"
	"math"
	"os"

	"github.com/dlwr/wagyan"
	"github.com/unixpickle/essentials"
)

func main() {
	fontPath := flag.String("font", "", "path to TTF/OTF/TTC font file (required)")
	faceIndex := flag.Int("face-index", 0, "face index for font collections (.ttc), 0-based")
	size := flag.Float64("size", 72.0, "font size in model units")
	tolerance := flag.Float64("tolerance", 0, "flattening tolerance (smaller = finer); default scales with -size")
	depth := flag.Float64("depth", 10.0, "extrusion depth in model units")
	spacing := flag.Float64("spacing", 0, "additional spacing between glyphs")
	kerning := flag.Bool("kerning", true, "apply kerning when available")
	noKerning := flag.Bool("no-kerning", false, "disable kerning adjustments")
	plate := flag.Float64("plate", 0, "back plate thickness (0 disables)")
	plateMargin := flag.Float64("plate-margin", 2.0, "margin to expand the plate")
	orientStr := flag.String("orient", "front", "plane orientation: flat (XY floor) or front (facing viewer)")
	noEscape := flag.Bool("no-escape", false, "keep literal \\n instead of converting to newline")
	noCenter := flag.Bool("no-center", false, "disable auto-centering at the origin")
	output := flag.String("output", "", "output file (stdout by default)")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] TEXT\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	text := flag.Arg(0)

	if *fontPath == "" {
		essentials.Die("missing required -font flag")
	}
	for _, v := range []struct {
		name  string
		value float64
	}{
		{"size", *size},
		{"tolerance", *tolerance},
		{"depth", *depth},
		{"spacing", *spacing},
		{"plate", *plate},
		{"plate-margin", *plateMargin},
	} {
		if math.IsNaN(v.value) || math.IsInf(v.value, 0) {
			essentials.Die("invalid -" + v.name + " value")
		}
	}
	if *size <= 0 {
		essentials.Die("-size must be positive")
	}
	if *depth <= 0 {
		essentials.Die("-depth must be positive")
	}
	if *plate < 0 || *plateMargin < 0 {
		essentials.Die("-plate and -plate-margin must not be negative")
	}

	orient, err := wagyan.ParseOrientation(*orientStr)
	if err != nil {
		essentials.Die(err)
	}

	fontData, err := os.ReadFile(*fontPath)
	if err != nil {
		essentials.Die("read font:", err)
	}
	face, err := wagyan.ParseFont(fontData, *faceIndex, *size)
	if err != nil {
		essentials.Die("parse font:", err)
	}

	if !*noEscape {
		text = wagyan.ReplaceEscapedNewlines(text)
	}

	tris, missing, err := wagyan.Render(face, text, wagyan.Options{
		Size:        *size,
		Tolerance:   *tolerance,
		Depth:       *depth,
		Spacing:     *spacing,
		Kerning:     *kerning && !*noKerning,
		Plate:       *plate,
		PlateMargin: *plateMargin,
		Orient:      orient,
		Center:      !*noCenter,
	})
	if err != nil {
		essentials.Die(err)
	}

	if *output != "" {
		if err := wagyan.WriteSTLFile(*output, tris); err != nil {
			essentials.Die("write STL:", err)
		}
		fmt.Printf("wrote %s\n", *output)
	} else {
		if err := wagyan.EncodeSTL(os.Stdout, "mesh", tris); err != nil {
			essentials.Die("write STL:", err)
		}
	}

	for _, r := range missing {
		fmt.Fprintf(os.Stderr, "warning: no glyph for U+%04X %q\n", r, string(r))
	}
}

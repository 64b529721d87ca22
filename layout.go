package wagyan

import (
	"math"
	"strings"

	"github.com/unixpickle/model3d/model2d"
)

// OutlineSource provides glyph outlines and metrics, already scaled to
// model units. Face implements it for real fonts; tests substitute
// synthetic sources.
type OutlineSource interface {
	// Glyph returns the outline and advance width for a rune, or
	// ok=false if the font has no glyph for it. An empty outline with
	// ok=true is valid (e.g. a space).
	Glyph(r rune) (Outline, float64, bool)

	// Kern returns the horizontal adjustment for a glyph pair, zero
	// when the font has none.
	Kern(prev, cur rune) float64

	// Ascent is the baseline-to-top distance of the first line.
	Ascent() float64

	// LineHeight is the baseline-to-baseline distance between lines.
	LineHeight() float64
}

// GlyphInstance is one placed character: its fill regions in glyph-local
// coordinates plus the pen offset they are placed at.
type GlyphInstance struct {
	Rune    rune
	Regions []FillRegion
	Offset  model2d.Coord
	Advance float64
}

// TextLayout is the result of laying out a block of text.
type TextLayout struct {
	Instances []GlyphInstance

	// Missing lists code points the font had no glyph for, in input
	// order, deduplicated.
	Missing []rune

	min, max model2d.Coord
	hasBound bool
}

// Bounds returns the bounding box of all placed fill regions. ok is
// false when the layout produced no geometry.
func (t *TextLayout) Bounds() (min, max model2d.Coord, ok bool) {
	return t.min, t.max, t.hasBound
}

type LayoutOptions struct {
	// Tolerance is the curve flattening tolerance in model units.
	Tolerance float64

	// Spacing is added to every glyph advance.
	Spacing float64

	// Kerning enables pairwise kerning adjustments.
	Kerning bool
}

// ReplaceEscapedNewlines converts literal backslash-n sequences into
// line breaks. The CLI applies it before layout unless --no-escape.
func ReplaceEscapedNewlines(s string) string {
	return strings.ReplaceAll(s, `\n`, "\n")
}

// LayoutText places each character of text on a left-to-right,
// top-to-bottom grid of lines. Characters without a glyph are skipped
// and recorded in Missing; the cursor does not advance for them. The
// text must already have real newline runes (see
// ReplaceEscapedNewlines).
func LayoutText(src OutlineSource, text string, opts LayoutOptions) *TextLayout {
	type cachedGlyph struct {
		regions []FillRegion
		advance float64
		ok      bool
	}
	cache := map[rune]cachedGlyph{}

	layout := &TextLayout{
		min: model2d.XY(math.Inf(1), math.Inf(1)),
		max: model2d.XY(math.Inf(-1), math.Inf(-1)),
	}
	seenMissing := map[rune]bool{}

	penX := 0.0
	baseline := src.Ascent()
	var prev rune
	hasPrev := false

	for _, r := range text {
		if r == '\n' {
			penX = 0
			baseline -= src.LineHeight()
			hasPrev = false
			continue
		}

		g, cached := cache[r]
		if !cached {
			outline, advance, ok := src.Glyph(r)
			g = cachedGlyph{advance: advance, ok: ok}
			if ok {
				polys := make([]Polyline, 0, len(outline.Contours))
				for _, c := range outline.Contours {
					if p := Flatten(c, opts.Tolerance); p != nil {
						polys = append(polys, p)
					}
				}
				g.regions = ResolveRegions(polys)
			}
			cache[r] = g
		}
		if !g.ok {
			if !seenMissing[r] {
				seenMissing[r] = true
				layout.Missing = append(layout.Missing, r)
			}
			continue
		}

		if opts.Kerning && hasPrev {
			penX += src.Kern(prev, r)
		}

		offset := model2d.XY(penX, baseline)
		layout.Instances = append(layout.Instances, GlyphInstance{
			Rune:    r,
			Regions: g.regions,
			Offset:  offset,
			Advance: g.advance,
		})
		layout.expand(g.regions, offset)

		penX += g.advance + opts.Spacing
		prev, hasPrev = r, true
	}

	return layout
}

func (t *TextLayout) expand(regions []FillRegion, offset model2d.Coord) {
	grow := func(p Polyline) {
		for _, c := range p {
			c = c.Add(offset)
			t.min = t.min.Min(c)
			t.max = t.max.Max(c)
			t.hasBound = true
		}
	}
	for _, region := range regions {
		grow(region.Outer)
		for _, h := range region.Holes {
			grow(h)
		}
	}
}

package wagyan

import (
	"bytes"

	"github.com/go-text/typesetting/di"
	gotextfont "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/shaping"
	"github.com/pkg/errors"
	"github.com/unixpickle/model3d/model2d"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// Face is an OutlineSource backed by a parsed TTF/OTF/TTC font. All
// returned coordinates and widths are in model units (font units scaled
// so that one em equals the requested size), with Y up.
//
// Face keeps mutable sfnt scratch buffers and is not safe for
// concurrent use; the layout stage is the only consumer.
type Face struct {
	fnt     *sfnt.Font
	buf     sfnt.Buffer
	ppem    fixed.Int26_6
	scale   float64
	metrics xfont.Metrics

	// hb is the same font parsed by go-text/typesetting, used to
	// recover GPOS kerning through shaping when the kern table has no
	// entry. Nil when typesetting cannot read the font.
	hb        *gotextfont.Face
	shaper    shaping.HarfbuzzShaper
	kernCache map[[2]rune]float64
}

// ParseFont parses a font blob and selects a face from it. faceIndex is
// only meaningful for collections (.ttc); single fonts have exactly one
// face at index 0. The returned Face scales everything to size model
// units per em.
func ParseFont(data []byte, faceIndex int, size float64) (*Face, error) {
	if size <= 0 {
		return nil, errors.New("font size must be positive")
	}
	col, err := sfnt.ParseCollection(data)
	if err != nil {
		return nil, errors.Wrap(err, "parse font")
	}
	if faceIndex < 0 || faceIndex >= col.NumFonts() {
		return nil, errors.Errorf("face index %d out of range: font has %d face(s)",
			faceIndex, col.NumFonts())
	}
	fnt, err := col.Font(faceIndex)
	if err != nil {
		return nil, errors.Wrapf(err, "parse face %d", faceIndex)
	}

	f := &Face{
		fnt:       fnt,
		kernCache: map[[2]rune]float64{},
	}
	upem := fnt.UnitsPerEm()
	if upem == 0 {
		return nil, errors.New("font has zero units per em")
	}
	// Load glyphs at ppem == upem so coordinates come out in font
	// units (as 26.6 fixed point), then apply our own float scale.
	f.ppem = fixed.I(int(upem))
	f.scale = size / float64(upem)

	f.metrics, err = fnt.Metrics(&f.buf, f.ppem, xfont.HintingNone)
	if err != nil {
		return nil, errors.Wrap(err, "read font metrics")
	}

	if faces, err := gotextfont.ParseTTC(bytes.NewReader(data)); err == nil && faceIndex < len(faces) {
		f.hb = faces[faceIndex]
	} else if hb, err := gotextfont.ParseTTF(bytes.NewReader(data)); err == nil && faceIndex == 0 {
		f.hb = hb
	}

	return f, nil
}

// Glyph returns the outline contours and advance width for a rune.
// ok is false when the font's character map has no entry for it.
func (f *Face) Glyph(r rune) (Outline, float64, bool) {
	idx, err := f.fnt.GlyphIndex(&f.buf, r)
	if err != nil || idx == 0 {
		return Outline{}, 0, false
	}
	segs, err := f.fnt.LoadGlyph(&f.buf, idx, f.ppem, nil)
	if err != nil {
		return Outline{}, 0, false
	}

	var advance float64
	if adv, err := f.fnt.GlyphAdvance(&f.buf, idx, f.ppem, xfont.HintingNone); err == nil {
		advance = float64(adv) / 64 * f.scale
	}

	return Outline{Contours: f.segmentsToContours(segs)}, advance, true
}

// segmentsToContours converts an sfnt segment stream into closed
// contours. sfnt's Y axis grows downward; it is flipped here so the
// rest of the pipeline works Y-up. Contours left open by the font are
// closed with a line back to their start.
func (f *Face) segmentsToContours(segs sfnt.Segments) []Contour {
	pt := func(p fixed.Point26_6) model2d.Coord {
		return model2d.XY(
			float64(p.X)/64*f.scale,
			-float64(p.Y)/64*f.scale,
		)
	}

	var contours []Contour
	var cur Contour
	var pen, start model2d.Coord
	closeCur := func() {
		if len(cur) == 0 {
			return
		}
		if pen != start {
			cur = append(cur, CurveSegment{Kind: LineSegment, P0: pen, P1: start})
		}
		contours = append(contours, cur)
		cur = nil
	}

	for _, s := range segs {
		switch s.Op {
		case sfnt.SegmentOpMoveTo:
			closeCur()
			pen = pt(s.Args[0])
			start = pen
		case sfnt.SegmentOpLineTo:
			p1 := pt(s.Args[0])
			if p1 != pen {
				cur = append(cur, CurveSegment{Kind: LineSegment, P0: pen, P1: p1})
			}
			pen = p1
		case sfnt.SegmentOpQuadTo:
			c1, p1 := pt(s.Args[0]), pt(s.Args[1])
			cur = append(cur, CurveSegment{Kind: QuadSegment, P0: pen, C1: c1, P1: p1})
			pen = p1
		case sfnt.SegmentOpCubeTo:
			c1, c2, p1 := pt(s.Args[0]), pt(s.Args[1]), pt(s.Args[2])
			cur = append(cur, CurveSegment{Kind: CubicSegment, P0: pen, C1: c1, C2: c2, P1: p1})
			pen = p1
		}
	}
	closeCur()
	return contours
}

// Kern returns the kerning adjustment between two runes in model
// units. The kern table is consulted first; when the font has none,
// the pair is shaped with HarfBuzz and the adjustment recovered from
// the shaped advance. Results are cached per pair.
func (f *Face) Kern(prev, cur rune) float64 {
	key := [2]rune{prev, cur}
	if v, ok := f.kernCache[key]; ok {
		return v
	}
	v := f.lookupKern(prev, cur)
	f.kernCache[key] = v
	return v
}

func (f *Face) lookupKern(prev, cur rune) float64 {
	pi, err := f.fnt.GlyphIndex(&f.buf, prev)
	if err != nil || pi == 0 {
		return 0
	}
	ci, err := f.fnt.GlyphIndex(&f.buf, cur)
	if err != nil || ci == 0 {
		return 0
	}
	if k, err := f.fnt.Kern(&f.buf, pi, ci, f.ppem, xfont.HintingNone); err == nil {
		return float64(k) / 64 * f.scale
	}
	return f.shapedKern(prev, cur, pi)
}

// shapedKern recovers a pair adjustment from HarfBuzz: the pair is
// shaped at upem size and the first glyph's shaped advance compared to
// its nominal advance. Pairs that shape into anything other than the
// two expected glyphs (ligatures, substitutions) contribute nothing.
func (f *Face) shapedKern(prev, cur rune, prevIdx sfnt.GlyphIndex) float64 {
	if f.hb == nil {
		return 0
	}
	runes := []rune{prev, cur}
	out := f.shaper.Shape(shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: di.DirectionLTR,
		Face:      f.hb,
		Size:      f.ppem,
	})
	if len(out.Glyphs) != 2 || uint32(out.Glyphs[0].GlyphID) != uint32(prevIdx) {
		return 0
	}
	shaped := float64(out.ToFontUnit(out.Glyphs[0].XAdvance))
	adv, err := f.fnt.GlyphAdvance(&f.buf, prevIdx, f.ppem, xfont.HintingNone)
	if err != nil {
		return 0
	}
	return (shaped - float64(adv)/64) * f.scale
}

// Ascent is the baseline-to-top distance in model units.
func (f *Face) Ascent() float64 {
	return float64(f.metrics.Ascent) / 64 * f.scale
}

// LineHeight is the baseline-to-baseline line advance in model units.
func (f *Face) LineHeight() float64 {
	return float64(f.metrics.Height) / 64 * f.scale
}

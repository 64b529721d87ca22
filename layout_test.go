package wagyan

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/unixpickle/model3d/model2d"
)

func TestReplaceEscapedNewlines(t *testing.T) {
	if got := ReplaceEscapedNewlines(`A\nB`); got != "A\nB" {
		t.Errorf("got %q", got)
	}
	if got := ReplaceEscapedNewlines("plain"); got != "plain" {
		t.Errorf("got %q", got)
	}
}

func layoutOffsets(l *TextLayout) []model2d.Coord {
	out := make([]model2d.Coord, len(l.Instances))
	for i, inst := range l.Instances {
		out[i] = inst.Offset
	}
	return out
}

func TestLayoutAdvanceAndSpacing(t *testing.T) {
	src := newStubSource()
	l := LayoutText(src, "ABC", LayoutOptions{Tolerance: 0.01, Spacing: 1})
	want := []model2d.Coord{
		model2d.XY(0, 8),
		model2d.XY(11, 8),
		model2d.XY(22, 8),
	}
	if diff := cmp.Diff(want, layoutOffsets(l)); diff != "" {
		t.Errorf("offsets mismatch (-want +got):\n%s", diff)
	}
}

func TestLayoutKerning(t *testing.T) {
	src := newStubSource()
	src.kern[[2]rune{'A', 'V'}] = -2

	with := LayoutText(src, "AV", LayoutOptions{Tolerance: 0.01, Kerning: true})
	if got := with.Instances[1].Offset.X; got != 8 {
		t.Errorf("kerned offset = %v, want 8", got)
	}

	without := LayoutText(src, "AV", LayoutOptions{Tolerance: 0.01, Kerning: false})
	if got := without.Instances[1].Offset.X; got != 10 {
		t.Errorf("unkerned offset = %v, want 10", got)
	}
}

func TestLayoutNewline(t *testing.T) {
	src := newStubSource()
	l := LayoutText(src, "A\nB", LayoutOptions{Tolerance: 0.01})
	if len(l.Instances) != 2 {
		t.Fatalf("got %d instances, want 2", len(l.Instances))
	}
	a, b := l.Instances[0], l.Instances[1]
	if a.Offset != model2d.XY(0, 8) {
		t.Errorf("line 1 offset = %v", a.Offset)
	}
	// Line 2 restarts at x=0, exactly one line height below.
	if b.Offset.X != 0 {
		t.Errorf("line 2 should restart at x=0, got %v", b.Offset.X)
	}
	if got := a.Offset.Y - b.Offset.Y; got != src.LineHeight() {
		t.Errorf("line spacing = %v, want %v", got, src.LineHeight())
	}
}

func TestLayoutNewlineResetsKerning(t *testing.T) {
	src := newStubSource()
	src.kern[[2]rune{'A', 'V'}] = -2
	l := LayoutText(src, "A\nV", LayoutOptions{Tolerance: 0.01, Kerning: true})
	if got := l.Instances[1].Offset.X; got != 0 {
		t.Errorf("kerning should not apply across lines, offset = %v", got)
	}
}

func TestLayoutMissingGlyph(t *testing.T) {
	src := newStubSource()
	src.missing['Q'] = true

	l := LayoutText(src, "AQB", LayoutOptions{Tolerance: 0.01})
	if diff := cmp.Diff([]rune{'Q'}, l.Missing); diff != "" {
		t.Errorf("missing mismatch (-want +got):\n%s", diff)
	}
	if len(l.Instances) != 2 {
		t.Fatalf("got %d instances, want 2", len(l.Instances))
	}
	// The cursor does not advance for the skipped glyph.
	if got := l.Instances[1].Offset.X; got != 10 {
		t.Errorf("offset after skip = %v, want 10", got)
	}
}

func TestLayoutSpaceIsEmptyNotMissing(t *testing.T) {
	src := newStubSource()
	l := LayoutText(src, "A B", LayoutOptions{Tolerance: 0.01})
	if len(l.Missing) != 0 {
		t.Errorf("space should not be missing: %v", l.Missing)
	}
	if len(l.Instances) != 3 {
		t.Fatalf("got %d instances, want 3", len(l.Instances))
	}
	if len(l.Instances[1].Regions) != 0 {
		t.Errorf("space should have no fill regions")
	}
	// The space still advances the cursor.
	if got := l.Instances[2].Offset.X; got != 20 {
		t.Errorf("offset after space = %v, want 20", got)
	}
}

func TestLayoutBounds(t *testing.T) {
	src := newStubSource()
	l := LayoutText(src, "AB", LayoutOptions{Tolerance: 0.01})
	min, max, ok := l.Bounds()
	if !ok {
		t.Fatal("expected bounds")
	}
	if min != model2d.XY(0, 8) || max != model2d.XY(18, 16) {
		t.Errorf("bounds [%v, %v] unexpected", min, max)
	}

	empty := LayoutText(src, "", LayoutOptions{Tolerance: 0.01})
	if _, _, ok := empty.Bounds(); ok {
		t.Error("empty layout should have no bounds")
	}
}

func TestLayoutHoleGlyph(t *testing.T) {
	src := newStubSource()
	l := LayoutText(src, "o", LayoutOptions{Tolerance: 0.01})
	if len(l.Instances) != 1 {
		t.Fatalf("got %d instances", len(l.Instances))
	}
	regions := l.Instances[0].Regions
	if len(regions) != 1 || len(regions[0].Holes) != 1 {
		t.Fatalf("expected one region with one hole, got %+v", regions)
	}
	if got := regions[0].Area(); math.Abs(got-48) > 1e-9 {
		t.Errorf("region area = %v, want 48", got)
	}
}

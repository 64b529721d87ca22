package wagyan

import (
	"testing"
)

func TestParseFontRejectsGarbage(t *testing.T) {
	if _, err := ParseFont([]byte("definitely not a font"), 0, 72); err == nil {
		t.Error("expected error for garbage font data")
	}
	if _, err := ParseFont(nil, 0, 72); err == nil {
		t.Error("expected error for empty font data")
	}
}

func TestParseFontRejectsBadSize(t *testing.T) {
	if _, err := ParseFont([]byte("irrelevant"), 0, 0); err == nil {
		t.Error("expected error for zero size")
	}
	if _, err := ParseFont([]byte("irrelevant"), 0, -5); err == nil {
		t.Error("expected error for negative size")
	}
}

package theme

import (
	"os"
	"path/filepath"
	"testing"

	"hopkinsville/lcd"
)

func TestLoadGPL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.gpl")
	data := "GIMP Palette\nName: test\nColumns: 2\n# comment\n0 0 0\tblack\n255 255 255\twhite\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
	p, err := LoadGPL(path)
	if err != nil {
		t.Fatalf("LoadGPL failed: %v", err)
	}
	if p.Name != "test" || len(p.Colors) != 2 {
		t.Fatalf("unexpected palette %+v", p)
	}
	if mid := p.Lookup(0.5); mid != (RGB{127, 127, 127}) {
		t.Errorf("unexpected midpoint %v", mid)
	}
}

func TestLoadOrDefault(t *testing.T) {
	p, err := LoadOrDefault("")
	if err != nil || p.Name != "lcd" {
		t.Errorf("expected default palette, got %v %v", p, err)
	}
	p, err = LoadOrDefault(filepath.Join(t.TempDir(), "missing.gpl"))
	if err == nil {
		t.Errorf("expected error for missing file")
	}
	if p == nil || len(p.Colors) == 0 {
		t.Errorf("expected fallback palette")
	}
}

func TestGlyphRunes(t *testing.T) {
	th := New(nil)
	if th.Glyph(lcd.GlyphUpArrow) != '↑' {
		t.Errorf("unexpected up arrow rune")
	}
	if th.Glyph(8+lcd.GlyphDownArrow) != '↓' {
		t.Errorf("slot should wrap like the hardware")
	}
}

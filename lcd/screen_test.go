package lcd

import (
	"strings"
	"testing"

	"hopkinsville/nav"
)

var _ nav.Display = (*Screen)(nil)

func TestPrintAtCursor(t *testing.T) {
	s := New(16, 2)
	s.SetCursor(3, 1)
	s.Print("Eb")
	if got := string(s.Line(1)); got != "   Eb           " {
		t.Errorf("unexpected line %q", got)
	}
	if col, row := s.Cursor(); col != 5 || row != 1 {
		t.Errorf("cursor should advance to (5,1), got (%d,%d)", col, row)
	}
}

func TestPrintClipsAtLineEnd(t *testing.T) {
	s := New(16, 2)
	s.SetCursor(14, 0)
	s.Print("abcd")
	if got := string(s.Line(0)); !strings.HasSuffix(got, "ab") {
		t.Errorf("expected clipped write, got %q", got)
	}
	if got := string(s.Line(1)); strings.TrimSpace(got) != "" {
		t.Errorf("write spilled into the next row: %q", got)
	}
}

func TestSetCursorClamps(t *testing.T) {
	s := New(16, 2)
	s.SetCursor(-3, 9)
	if col, row := s.Cursor(); col != 0 || row != 1 {
		t.Errorf("expected (0,1), got (%d,%d)", col, row)
	}
}

func TestDefineGlyph(t *testing.T) {
	s := New(16, 2)
	DefineInstrumentGlyphs(s)
	for slot := range InstrumentGlyphs {
		g, ok := s.Glyph(uint8(slot))
		if !ok {
			t.Fatalf("slot %d not defined", slot)
		}
		if g != InstrumentGlyphs[slot] {
			t.Errorf("slot %d mismatch", slot)
		}
	}
	if _, ok := s.Glyph(7); ok {
		t.Errorf("slot 7 should be free")
	}

	s.DefineGlyph(9, Glyph{0xff})
	g, ok := s.Glyph(1)
	if !ok || g[0] != 0x1f {
		t.Errorf("slot 9 should alias slot 1 with pixels masked, got %v", g)
	}
}

func TestStringShowsGlyphSlots(t *testing.T) {
	s := New(4, 1)
	s.Print("A" + Char(GlyphUpArrow))
	if got := s.String(); got != "A2  " {
		t.Errorf("unexpected render %q", got)
	}
}

func TestGlyphArt(t *testing.T) {
	art := InstrumentGlyphs[GlyphUpArrow].Art()
	lines := strings.Split(art, "\n")
	if len(lines) != 8 {
		t.Fatalf("expected 8 rows, got %d", len(lines))
	}
	if lines[1] != "##.##" {
		t.Errorf("unexpected row 1 %q", lines[1])
	}
}

func TestRefreshWritesEveryField(t *testing.T) {
	s := New(Columns, Rows)
	n := nav.New()
	nav.NewItem(0, 0, 9, 1, " ", n, nil)
	nav.NewItem(1, 3, 9, 2, " ", n, nil)
	n.BindDisplay(s)

	n.RefreshAll()
	if s.Writes() != 2 {
		t.Errorf("expected 2 writes, got %d", s.Writes())
	}
	if got := s.String(); got != "1               \n   2            " {
		t.Errorf("unexpected screen %q", got)
	}
}

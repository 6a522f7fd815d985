// Package lcd emulates a character LCD such as the 16x2 HD44780 module the
// instrument's front panel uses: a grid of byte cells, a write head and eight
// user-definable 5x8 glyphs addressed as bytes 0..7.
package lcd

const (
	Columns    = 16
	Rows       = 2
	GlyphSlots = 8
)

// Glyph is a 5x8 bitmap, one byte per pixel row (low five bits used).
type Glyph [8]byte

// Screen is an in-memory character display. It implements nav.Display.
type Screen struct {
	cols, rows int
	cells      [][]byte
	col, row   int

	glyphs  [GlyphSlots]Glyph
	defined [GlyphSlots]bool

	writes int
}

// New returns a blank screen of the given size.
func New(cols, rows int) *Screen {
	if cols < 1 {
		cols = Columns
	}
	if rows < 1 {
		rows = Rows
	}
	s := &Screen{cols: cols, rows: rows}
	s.cells = make([][]byte, rows)
	for r := range s.cells {
		s.cells[r] = make([]byte, cols)
	}
	s.Clear()
	return s
}

// Clear blanks every cell and homes the write head.
func (s *Screen) Clear() {
	for _, line := range s.cells {
		for c := range line {
			line[c] = ' '
		}
	}
	s.col, s.row = 0, 0
}

// SetCursor moves the write head. Coordinates are clamped to the screen.
func (s *Screen) SetCursor(col, row int) {
	s.col = clampInt(col, 0, s.cols)
	s.row = clampInt(row, 0, s.rows-1)
}

// Print writes text byte by byte from the write head, advancing it. Bytes
// past the end of the line are dropped.
func (s *Screen) Print(text string) {
	line := s.cells[s.row]
	for i := 0; i < len(text); i++ {
		if s.col >= s.cols {
			break
		}
		line[s.col] = text[i]
		s.col++
	}
	s.writes++
}

// DefineGlyph stores a custom glyph. Like the hardware, only the low three
// bits of slot are used.
func (s *Screen) DefineGlyph(slot uint8, g Glyph) {
	slot &= GlyphSlots - 1
	for i := range g {
		g[i] &= 0x1f
	}
	s.glyphs[slot] = g
	s.defined[slot] = true
}

// Glyph returns the glyph in slot and whether one was defined.
func (s *Screen) Glyph(slot uint8) (Glyph, bool) {
	slot &= GlyphSlots - 1
	return s.glyphs[slot], s.defined[slot]
}

// Cursor returns the write head position.
func (s *Screen) Cursor() (col, row int) { return s.col, s.row }

func (s *Screen) Size() (cols, rows int) { return s.cols, s.rows }

// Writes counts Print calls.
func (s *Screen) Writes() int { return s.writes }

// Line returns a copy of one row of cells.
func (s *Screen) Line(row int) []byte {
	if row < 0 || row >= s.rows {
		return nil
	}
	out := make([]byte, s.cols)
	copy(out, s.cells[row])
	return out
}

// String renders the screen as text, one line per row, with glyph cells
// shown as their slot digit.
func (s *Screen) String() string {
	out := make([]byte, 0, (s.cols+1)*s.rows)
	for r, line := range s.cells {
		if r > 0 {
			out = append(out, '\n')
		}
		for _, b := range line {
			if b < GlyphSlots {
				b = '0' + b
			}
			out = append(out, b)
		}
	}
	return string(out)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

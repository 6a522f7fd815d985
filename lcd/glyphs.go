package lcd

import "strings"

// Glyph slots used by the instrument.
const (
	GlyphRoot uint8 = iota
	GlyphDrone
	GlyphUpArrow
	GlyphDownArrow
	GlyphUpDownArrow
	GlyphOctave
	GlyphBank
)

// GlyphDefiner is the part of a display that accepts custom glyphs.
type GlyphDefiner interface {
	DefineGlyph(slot uint8, g Glyph)
}

// InstrumentGlyphs are the inverted front-panel icons, indexed by slot.
var InstrumentGlyphs = []Glyph{
	GlyphRoot: {
		0b11111,
		0b10011,
		0b10101,
		0b10101,
		0b10011,
		0b10101,
		0b10101,
		0b11111,
	},
	GlyphDrone: {
		0b11111,
		0b10011,
		0b10101,
		0b10101,
		0b10101,
		0b10101,
		0b10011,
		0b11111,
	},
	GlyphUpArrow: {
		0b11111,
		0b11011,
		0b10001,
		0b01010,
		0b11011,
		0b11011,
		0b11011,
		0b11111,
	},
	GlyphDownArrow: {
		0b11111,
		0b11011,
		0b11011,
		0b11011,
		0b01010,
		0b10001,
		0b11011,
		0b11111,
	},
	GlyphUpDownArrow: {
		0b11111,
		0b10111,
		0b10111,
		0b01010,
		0b01010,
		0b11101,
		0b11101,
		0b11111,
	},
	GlyphOctave: {
		0b11111,
		0b10001,
		0b10101,
		0b10101,
		0b10101,
		0b10101,
		0b10001,
		0b11111,
	},
	GlyphBank: {
		0b11111,
		0b10101,
		0b10001,
		0b10001,
		0b10001,
		0b10001,
		0b10001,
		0b11111,
	},
}

// DefineInstrumentGlyphs loads InstrumentGlyphs into d.
func DefineInstrumentGlyphs(d GlyphDefiner) {
	for slot, g := range InstrumentGlyphs {
		d.DefineGlyph(uint8(slot), g)
	}
}

// Char returns the one-byte string that prints the glyph in slot.
func Char(slot uint8) string {
	return string([]byte{slot & (GlyphSlots - 1)})
}

// Art draws g as eight lines of '#' and '.' pixels.
func (g Glyph) Art() string {
	var sb strings.Builder
	for i, row := range g {
		if i > 0 {
			sb.WriteByte('\n')
		}
		for bit := 4; bit >= 0; bit-- {
			if row&(1<<bit) != 0 {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
	}
	return sb.String()
}

package theme

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"hopkinsville/lcd"
)

type Theme struct {
	Palette *Palette
	Symbols Symbols
}

type Symbols struct {
	// Custom LCD glyphs, indexed by slot
	Glyphs [lcd.GlyphSlots]rune

	LampOn  rune // ● lit lamp
	LampOff rune // ○ dark lamp
	Focus   rune // ▲ marks the focused field under the LCD
}

func New(palette *Palette) *Theme {
	if palette == nil {
		palette = DefaultPalette()
	}
	return &Theme{
		Palette: palette,
		Symbols: Symbols{
			Glyphs: [lcd.GlyphSlots]rune{
				lcd.GlyphRoot:        '◧',
				lcd.GlyphDrone:       '◨',
				lcd.GlyphUpArrow:     '↑',
				lcd.GlyphDownArrow:   '↓',
				lcd.GlyphUpDownArrow: '↕',
				lcd.GlyphOctave:      '▯',
				lcd.GlyphBank:        '▤',
				7:                    '▒',
			},
			LampOn:  '●',
			LampOff: '○',
			Focus:   '▲',
		},
	}
}

// Color roles mapped to palette positions (0-1)
const (
	RoleBG      = 0.0 // panel black
	RoleSurface = 0.1 // LCD background green
	RoleMuted   = 0.3 // dim text
	RoleFG      = 0.5 // LCD pixels
	RoleAccent  = 0.6 // glyphs and header
	RoleActive  = 0.8 // lit lamp
	RoleWarning = 1.0 // errors
)

// Style helpers

func (t *Theme) BG() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleBG))
}

func (t *Theme) Surface() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleSurface))
}

func (t *Theme) FG() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleFG))
}

func (t *Theme) Accent() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleAccent))
}

func (t *Theme) Muted() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleMuted))
}

func (t *Theme) Active() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleActive))
}

func (t *Theme) Warning() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleWarning))
}

// Glyph returns the rune drawn for an LCD glyph slot.
func (t *Theme) Glyph(slot byte) rune {
	return t.Symbols.Glyphs[slot&(lcd.GlyphSlots-1)]
}

func rgbToLipgloss(c RGB) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c[0], c[1], c[2]))
}

package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"hopkinsville/instrument"
	"hopkinsville/lcd"
	"hopkinsville/theme"
)

// renderLCD draws the character screen with a marker row under the field
// that has edit focus.
func renderLCD(panel *instrument.Instrument, th *theme.Theme) string {
	cellStyle := lipgloss.NewStyle().Foreground(th.FG())
	glyphStyle := lipgloss.NewStyle().Foreground(th.Accent())
	markStyle := lipgloss.NewStyle().Foreground(th.Muted())

	cols, rows := panel.Screen.Size()
	focused := panel.Focused()

	var lines []string
	for r := 0; r < rows; r++ {
		var line strings.Builder
		for _, b := range panel.Screen.Line(r) {
			if b < lcd.GlyphSlots {
				line.WriteString(glyphStyle.Render(string(th.Glyph(b))))
				continue
			}
			line.WriteString(cellStyle.Render(string(rune(b))))
		}
		lines = append(lines, line.String())

		marker := []rune(strings.Repeat(" ", cols))
		if focused != nil && focused.Row() == r && focused.Column() < cols {
			marker[focused.Column()] = th.Symbols.Focus
		}
		lines = append(lines, markStyle.Render(string(marker)))
	}

	frame := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(th.Muted()).
		Background(th.Surface()).
		Padding(0, 1)
	return frame.Render(strings.Join(lines, "\n"))
}

var lampNames = []struct {
	lamp instrument.Lamp
	name string
}{
	{instrument.LampDownbeat, "DOWNBEAT"},
	{instrument.LampAudition, "AUDITION"},
	{instrument.LampWrite, "WRITE"},
}

func renderLamps(panel *instrument.Instrument, th *theme.Theme) string {
	onStyle := lipgloss.NewStyle().Foreground(th.Active())
	offStyle := lipgloss.NewStyle().Foreground(th.Muted())

	var parts []string
	for _, l := range lampNames {
		if panel.Lamp(l.lamp) {
			parts = append(parts, onStyle.Render(string(th.Symbols.LampOn)+" "+l.name))
		} else {
			parts = append(parts, offStyle.Render(string(th.Symbols.LampOff)+" "+l.name))
		}
	}
	return strings.Join(parts, "  ")
}

// Package instrument wires the field registry, the clock divider, the LCD
// and the MIDI output into the front panel of the arpeggiator controller.
// It is the single context object handed to the scheduler; every method is
// expected to run on the scheduler's goroutine and returns without blocking
// on anything but the MIDI output.
package instrument

import (
	"time"

	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fmsg"

	"hopkinsville/clock"
	"hopkinsville/config"
	"hopkinsville/debug"
	"hopkinsville/lcd"
	"hopkinsville/midi"
	"hopkinsville/nav"
	"hopkinsville/params"
)

// Lamp identifies a front-panel lamp.
type Lamp int

const (
	LampDownbeat Lamp = iota
	LampAudition
	LampWrite
	numLamps
)

// Instrument is the front panel state.
type Instrument struct {
	cfg *config.Config
	out *midi.Output

	Nav     *nav.Navigation
	Screen  *lcd.Screen
	Divider *clock.Divider
	Gen     *clock.Generator
	meter   clock.Meter

	Root      *nav.Item
	Mode      *nav.Item
	Direction *nav.Item
	Range     *nav.Item
	Degree    *nav.Item

	lamps       [numLamps]bool
	blanked     bool
	auditioning bool
	sounding    int // note currently held by audition, -1 when none

	now func() time.Time
}

// New builds the panel from cfg. out may have no port attached yet.
func New(cfg *config.Config, out *midi.Output) *Instrument {
	in := &Instrument{
		cfg:      cfg,
		out:      out,
		Nav:      nav.New(),
		Screen:   lcd.New(lcd.Columns, lcd.Rows),
		Divider:  clock.NewDivider(),
		Gen:      clock.NewGenerator(cfg.Clock.Tempo),
		sounding: -1,
		now:      time.Now,
	}

	f := cfg.Fields
	in.Root = nav.NewItem(0, 1, params.MaxNote, f.Root, "  ", in.Nav, params.NoteName)
	in.Mode = nav.NewItem(0, 4, params.MaxMode, f.Mode, " ", in.Nav, params.ModeName)
	in.Direction = nav.NewItem(0, 7, params.MaxDirection, f.Direction, " ", in.Nav, params.DirectionName)
	in.Range = nav.NewItem(0, 10, params.MaxRange, f.Range, " ", in.Nav, params.Range)
	in.Degree = nav.NewItem(1, 1, params.MaxDegree, f.Degree, " ", in.Nav, params.Degree)

	lcd.DefineInstrumentGlyphs(in.Screen)
	in.drawLabels()
	in.Nav.BindDisplay(in.Screen)

	in.Divider.SetOnQuarterNote(in.quarterNote)
	in.Divider.SetOnTransport(in.transport)

	in.Nav.RefreshAll()
	return in
}

// drawLabels paints the fixed icons next to each field. It runs once before
// the scheduler starts; afterwards only the navigation writes to the screen.
func (in *Instrument) drawLabels() {
	labels := []struct {
		col, row int
		glyph    uint8
	}{
		{0, 0, lcd.GlyphRoot},
		{9, 0, lcd.GlyphOctave},
		{0, 1, lcd.GlyphDrone},
	}
	for _, l := range labels {
		in.Screen.SetCursor(l.col, l.row)
		in.Screen.Print(lcd.Char(l.glyph))
	}
}

// Encoder applies a detent of the rotary encoder to the focused field and
// repaints it at once.
func (in *Instrument) Encoder(delta int) {
	for ; delta > 0; delta-- {
		in.Nav.IncrementFocusedValue()
	}
	for ; delta < 0; delta++ {
		in.Nav.DecrementFocusedValue()
	}
	in.lamps[LampWrite] = false
	in.blanked = false
	in.Nav.RepaintFocused()
}

// Next moves the edit focus forward. The field being left is repainted so
// it is not stuck blanked.
func (in *Instrument) Next() {
	in.Nav.RepaintFocused()
	in.Nav.FocusNext()
	in.blanked = false
}

// Previous moves the edit focus backward.
func (in *Instrument) Previous() {
	in.Nav.RepaintFocused()
	in.Nav.FocusPrevious()
	in.blanked = false
}

// Refresh repaints every field. Called on the display poll period.
func (in *Instrument) Refresh() {
	in.Nav.RefreshAll()
	if in.blanked {
		in.Nav.BlankFocused()
	}
}

// Blink alternates the focused field between blank and painted. Called on
// the editable update period.
func (in *Instrument) Blink() {
	in.blanked = !in.blanked
	if in.blanked {
		in.Nav.BlankFocused()
	} else {
		in.Nav.RepaintFocused()
	}
}

// Focused returns the field under edit.
func (in *Instrument) Focused() *nav.Item {
	return in.Nav.Focused()
}

// Lamp reports whether l is lit.
func (in *Instrument) Lamp(l Lamp) bool {
	if l < 0 || l >= numLamps {
		return false
	}
	return in.lamps[l]
}

// DownbeatOff ends the downbeat flash.
func (in *Instrument) DownbeatOff() {
	in.lamps[LampDownbeat] = false
}

// Tempo returns the measured tempo of the external clock, or the generator
// tempo when the internal clock runs.
func (in *Instrument) Tempo() int {
	if in.cfg.Internal() {
		return in.Gen.Tempo()
	}
	return in.meter.Tempo()
}

// Beat returns the position in a four-beat bar, 1..4, or 0 before the first
// quarter note.
func (in *Instrument) Beat() int {
	q := in.Divider.QuarterNotes()
	if q == 0 {
		return 0
	}
	return (q-1)%4 + 1
}

// Internal reports whether the internal clock drives the divider.
func (in *Instrument) Internal() bool {
	return in.cfg.Internal()
}

// NudgeTempo changes the internal clock tempo by delta BPM.
func (in *Instrument) NudgeTempo(delta int) {
	in.Gen.SetTempo(in.Gen.Tempo() + delta)
	in.cfg.Clock.Tempo = in.Gen.Tempo()
}

// Values captures the field values in config form.
func (in *Instrument) Values() config.FieldsConfig {
	return config.FieldsConfig{
		Root:      in.Root.Value(),
		Mode:      in.Mode.Value(),
		Direction: in.Direction.Value(),
		Range:     in.Range.Value(),
		Degree:    in.Degree.Value(),
	}
}

func (in *Instrument) channel() uint8 {
	return in.cfg.ChannelIndex()
}

func (in *Instrument) sendErr(err error, what string) error {
	if err == nil {
		return nil
	}
	debug.Log("panel", "%s: %v", what, err)
	return fault.Wrap(err, fmsg.WithDesc(what, "Could not reach the synth: "+what))
}

// Package clock turns a MIDI-style pulse stream into quarter-note events and
// tracks the start/stop/continue transport state that governs it.
package clock

// PulsesPerQuarterNote is the MIDI clock resolution.
const PulsesPerQuarterNote = 24

// Event is one transport input.
type Event int

const (
	Pulse Event = iota
	Start
	Stop
	Continue
)

func (e Event) String() string {
	switch e {
	case Pulse:
		return "pulse"
	case Start:
		return "start"
	case Stop:
		return "stop"
	case Continue:
		return "continue"
	}
	return "unknown"
}

// Divider counts pulses and reports every 24th one as a quarter-note
// boundary.
//
// After Start the next pulse is pulse 1 of the quarter note, so the 24th
// pulse is the boundary. Stop leaves the counters alone, which lets Continue
// resume mid-beat. Pulses that arrive before the first Start or Continue are
// ignored so an uninitialised counter never emits a boundary.
type Divider struct {
	clocks       int // ordinal of the next pulse, 1..PulsesPerQuarterNote
	quarterNotes int
	armed        bool
	playing      bool

	onQuarterNote func(count int)
	onTransport   func(e Event)
}

// NewDivider returns a divider waiting for its first Start.
func NewDivider() *Divider {
	return &Divider{clocks: 1}
}

// SetOnQuarterNote sets the callback run on every boundary with the number
// of quarter notes since Start.
func (d *Divider) SetOnQuarterNote(fn func(count int)) {
	d.onQuarterNote = fn
}

// SetOnTransport sets the callback run for Start, Stop and Continue so they
// can be passed downstream.
func (d *Divider) SetOnTransport(fn func(e Event)) {
	d.onTransport = fn
}

// Handle dispatches e to the matching transition. It reports whether a
// quarter-note boundary was crossed.
func (d *Divider) Handle(e Event) bool {
	switch e {
	case Pulse:
		return d.OnPulse()
	case Start:
		d.OnStart()
	case Stop:
		d.OnStop()
	case Continue:
		d.OnContinue()
	}
	return false
}

// OnStart resets both counters and emits Start.
func (d *Divider) OnStart() {
	d.quarterNotes = 0
	d.clocks = 1
	d.armed = true
	d.playing = true
	d.emit(Start)
}

// OnStop emits Stop. Counters are untouched.
func (d *Divider) OnStop() {
	d.playing = false
	d.emit(Stop)
}

// OnContinue emits Continue. Counters are untouched.
func (d *Divider) OnContinue() {
	d.armed = true
	d.playing = true
	d.emit(Continue)
}

// OnPulse advances the count by one pulse and reports whether that pulse
// closed a quarter note.
func (d *Divider) OnPulse() bool {
	if !d.armed {
		return false
	}
	if d.clocks%PulsesPerQuarterNote != 0 {
		d.clocks++
		return false
	}
	d.clocks = 1
	d.quarterNotes++
	if d.onQuarterNote != nil {
		d.onQuarterNote(d.quarterNotes)
	}
	return true
}

// Position returns how many pulses have passed since the last boundary,
// always in 0..PulsesPerQuarterNote-1.
func (d *Divider) Position() int { return d.clocks - 1 }

// QuarterNotes returns the number of boundaries since Start.
func (d *Divider) QuarterNotes() int { return d.quarterNotes }

// Playing reports whether the last transport event was Start or Continue.
func (d *Divider) Playing() bool { return d.playing }

func (d *Divider) emit(e Event) {
	if d.onTransport != nil {
		d.onTransport(e)
	}
}

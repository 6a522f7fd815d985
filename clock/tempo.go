package clock

import "time"

const microsecondsPerMinute = 60_000_000

// Tempo limits accepted by Generator.
const (
	MinTempo = 20
	MaxTempo = 300
)

// QuarterNoteDuration returns the length of one quarter note in microseconds
// at bpm. The remainder of the division is discarded to match the
// microsecond timer the pulses are scheduled on. A non-positive bpm yields 0.
func QuarterNoteDuration(bpm int) int64 {
	if bpm <= 0 {
		return 0
	}
	return microsecondsPerMinute / int64(bpm)
}

// PulseDuration returns the length of one clock pulse in microseconds given
// a quarter-note duration, again discarding the remainder.
func PulseDuration(quarterNote int64) int64 {
	return quarterNote / PulsesPerQuarterNote
}

// PulseInterval is PulseDuration for bpm as a time.Duration.
func PulseInterval(bpm int) time.Duration {
	return time.Duration(PulseDuration(QuarterNoteDuration(bpm))) * time.Microsecond
}

// Generator is the internal clock source used when no external transport is
// connected. It computes absolute pulse deadlines from an anchor time so a
// late timer never delays the pulses after it; the scheduler owns the timer.
type Generator struct {
	tempo int

	anchor time.Time // deadline of pulse 0
	pulses int       // pulses issued since anchor
}

// NewGenerator returns a generator at bpm, clamped to MinTempo..MaxTempo.
func NewGenerator(bpm int) *Generator {
	g := &Generator{}
	g.SetTempo(bpm)
	return g
}

// SetTempo changes the tempo, clamped to MinTempo..MaxTempo. A running
// cadence is re-anchored at its last issued deadline so no pulse moves.
func (g *Generator) SetTempo(bpm int) {
	if bpm < MinTempo {
		bpm = MinTempo
	}
	if bpm > MaxTempo {
		bpm = MaxTempo
	}
	if !g.anchor.IsZero() {
		g.anchor = g.deadline(g.pulses)
		g.pulses = 0
	}
	g.tempo = bpm
}

// Begin anchors the cadence at now. The first pulse is due one interval
// later.
func (g *Generator) Begin(now time.Time) {
	g.anchor = now
	g.pulses = 0
}

// Next returns the deadline of the next pulse: anchor + n*interval.
func (g *Generator) Next() time.Time {
	g.pulses++
	return g.deadline(g.pulses)
}

func (g *Generator) deadline(n int) time.Time {
	return g.anchor.Add(time.Duration(n) * g.Interval())
}

func (g *Generator) Tempo() int { return g.tempo }

// Interval returns the time between two pulses at the current tempo.
func (g *Generator) Interval() time.Duration {
	return PulseInterval(g.tempo)
}

// Meter estimates the incoming tempo from the spacing of quarter-note
// boundaries, using integer microseconds throughout.
type Meter struct {
	last  int64
	tempo int
}

// Reset forgets the previous boundary, e.g. after a transport Start.
func (m *Meter) Reset() {
	m.last = 0
}

// Boundary records a quarter-note boundary observed at now (microseconds)
// and returns the tempo estimate, or 0 until two boundaries were seen.
func (m *Meter) Boundary(now int64) int {
	if m.last != 0 && now > m.last {
		m.tempo = int(microsecondsPerMinute / (now - m.last))
	}
	m.last = now
	return m.tempo
}

// Tempo returns the latest estimate.
func (m *Meter) Tempo() int { return m.tempo }

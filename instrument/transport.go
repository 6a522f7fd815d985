package instrument

import (
	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fmsg"

	"hopkinsville/clock"
	"hopkinsville/debug"
	"hopkinsville/params"
)

const auditionVelocity = 100

// Transport feeds one transport event to the divider and reports whether it
// closed a quarter note, in which case the downbeat lamp is lit and the
// caller should schedule DownbeatOff.
func (in *Instrument) Transport(e clock.Event) bool {
	if e == clock.Pulse && in.forwarding() {
		in.forward(e)
	}
	return in.Divider.Handle(e)
}

// Play starts the internal clock from the top. Pulse deadlines are counted
// from this moment.
func (in *Instrument) Play() {
	in.Gen.Begin(in.now())
	in.Divider.OnStart()
}

// Pause stops the internal clock; Resume picks up from the same pulse with
// a fresh anchor.
func (in *Instrument) Pause() {
	in.Divider.OnStop()
}

func (in *Instrument) Resume() {
	in.Gen.Begin(in.now())
	in.Divider.OnContinue()
}

func (in *Instrument) forwarding() bool {
	return in.cfg.MIDI.Thru || in.cfg.Internal()
}

func (in *Instrument) forward(e clock.Event) {
	if !in.out.Connected() {
		return
	}
	if err := in.out.Transport(e); err != nil {
		debug.Log("panel", "forward %s: %v", e, err)
	}
}

// transport runs for Start, Stop and Continue.
func (in *Instrument) transport(e clock.Event) {
	debug.Log("panel", "transport %s", e)
	if e == clock.Start {
		in.meter.Reset()
	}
	if e == clock.Stop {
		in.lamps[LampDownbeat] = false
		in.releaseAudition()
	}
	if in.forwarding() {
		in.forward(e)
	}
}

// quarterNote runs on every quarter-note boundary.
func (in *Instrument) quarterNote(count int) {
	in.lamps[LampDownbeat] = true
	tempo := in.meter.Boundary(in.now().UnixMicro())
	debug.LogEvery(4, "panel", "quarter=%d tempo=%d", count, tempo)

	if in.auditioning {
		in.releaseAudition()
		in.strikeAudition()
	}
}

// AuditionNote returns the note the audition plays for the current fields.
func (in *Instrument) AuditionNote() uint8 {
	return params.ScaleNote(in.Root.Value(), in.Mode.Value(), in.Degree.Value(), in.Range.Value())
}

// ToggleAudition switches the audition on or off. While on, the selected
// scale degree is played on every quarter note.
func (in *Instrument) ToggleAudition() {
	in.auditioning = !in.auditioning
	in.lamps[LampAudition] = in.auditioning
	if !in.auditioning {
		in.releaseAudition()
	}
}

func (in *Instrument) strikeAudition() {
	if !in.out.Connected() {
		return
	}
	note := in.AuditionNote()
	if err := in.out.NoteOn(in.channel(), note, auditionVelocity); err != nil {
		debug.Log("panel", "audition: %v", err)
		return
	}
	in.sounding = int(note)
}

func (in *Instrument) releaseAudition() {
	if in.sounding < 0 {
		return
	}
	if in.out.Connected() {
		in.out.NoteOff(in.channel(), uint8(in.sounding))
	}
	in.sounding = -1
}

// Write sends the arpeggiator settings to the synth as NRPNs and lights the
// write lamp until the next edit.
func (in *Instrument) Write() error {
	if !in.out.Connected() {
		return fault.New("no output port", fmsg.WithDesc("no output port", "No MIDI output is connected"))
	}
	for _, p := range params.DirectionPatch(in.Direction.Value()) {
		if err := in.out.NRPN(in.channel(), p.Param, p.Value); err != nil {
			return in.sendErr(err, "write arpeggiator")
		}
	}
	in.lamps[LampWrite] = true
	return nil
}

// SendClockMode tells the synth to follow the clock this panel forwards, or
// to run on its own when nothing is forwarded.
func (in *Instrument) SendClockMode() error {
	if !in.out.Connected() {
		return nil
	}
	for _, p := range params.ClockModePatch(in.forwarding()) {
		if err := in.out.NRPN(in.channel(), p.Param, p.Value); err != nil {
			return in.sendErr(err, "set clock mode")
		}
	}
	return nil
}

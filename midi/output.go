package midi

import (
	"errors"
	"fmt"
	"sync"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"

	"hopkinsville/clock"
	"hopkinsville/debug"
)

// ErrNoOutput is returned when sending with no output port attached.
var ErrNoOutput = errors.New("no midi output")

// NRPN controller numbers.
const (
	ccNRPNMSB      uint8 = 99
	ccNRPNLSB      uint8 = 98
	ccDataEntryMSB uint8 = 6
	ccDataEntryLSB uint8 = 38
)

// Output sends transport, note and NRPN messages to the synth.
type Output struct {
	mu   sync.RWMutex
	port string
	send func(msg gomidi.Message) error
}

// NewOutput returns an output with no port attached.
func NewOutput() *Output {
	return &Output{}
}

// Attach opens out for sending.
func (o *Output) Attach(out drivers.Out) error {
	send, err := gomidi.SendTo(out)
	if err != nil {
		return fmt.Errorf("open output %s: %w", out.String(), err)
	}
	o.AttachSender(out.String(), send)
	return nil
}

// AttachSender installs send under the given port name.
func (o *Output) AttachSender(port string, send func(msg gomidi.Message) error) {
	o.mu.Lock()
	o.port = port
	o.send = send
	o.mu.Unlock()
	debug.Log("output", "attached %s", port)
}

// Detach drops the current port.
func (o *Output) Detach() {
	o.mu.Lock()
	o.port = ""
	o.send = nil
	o.mu.Unlock()
}

// Port returns the attached output port name, or "".
func (o *Output) Port() string {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.port
}

// Connected reports whether a port is attached.
func (o *Output) Connected() bool {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.send != nil
}

// Send writes one message.
func (o *Output) Send(msg gomidi.Message) error {
	o.mu.RLock()
	send := o.send
	o.mu.RUnlock()
	if send == nil {
		return ErrNoOutput
	}
	return send(msg)
}

// Transport forwards a transport event (including pulses) downstream.
func (o *Output) Transport(e clock.Event) error {
	return o.Send(Realtime(e))
}

// NRPN sets a 14-bit parameter to a 14-bit value on channel (0-based).
func (o *Output) NRPN(channel uint8, param, value uint16) error {
	msgs := []gomidi.Message{
		gomidi.ControlChange(channel, ccNRPNMSB, uint8(param>>7)&0x7f),
		gomidi.ControlChange(channel, ccNRPNLSB, uint8(param)&0x7f),
		gomidi.ControlChange(channel, ccDataEntryMSB, uint8(value>>7)&0x7f),
		gomidi.ControlChange(channel, ccDataEntryLSB, uint8(value)&0x7f),
	}
	for _, msg := range msgs {
		if err := o.Send(msg); err != nil {
			return fmt.Errorf("nrpn %d: %w", param, err)
		}
	}
	debug.Log("output", "nrpn ch=%d param=%d value=%d", channel+1, param, value)
	return nil
}

// NoteOn starts a note on channel (0-based).
func (o *Output) NoteOn(channel, note, velocity uint8) error {
	return o.Send(gomidi.NoteOn(channel, note, velocity))
}

// NoteOff ends a note on channel (0-based).
func (o *Output) NoteOff(channel, note uint8) error {
	return o.Send(gomidi.NoteOff(channel, note))
}

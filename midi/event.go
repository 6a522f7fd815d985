package midi

import (
	gomidi "gitlab.com/gomidi/midi/v2"

	"hopkinsville/clock"
)

// Realtime status bytes of the transport messages.
const (
	StatusTimingClock uint8 = 0xF8
	StatusStart       uint8 = 0xFA
	StatusContinue    uint8 = 0xFB
	StatusStop        uint8 = 0xFC
)

// Classify maps a realtime MIDI message to its transport event. Every other
// message reports false.
func Classify(msg gomidi.Message) (clock.Event, bool) {
	if len(msg) == 0 {
		return 0, false
	}
	switch msg[0] {
	case StatusTimingClock:
		return clock.Pulse, true
	case StatusStart:
		return clock.Start, true
	case StatusContinue:
		return clock.Continue, true
	case StatusStop:
		return clock.Stop, true
	}
	return 0, false
}

// Realtime returns the MIDI message for a transport event.
func Realtime(e clock.Event) gomidi.Message {
	switch e {
	case clock.Start:
		return gomidi.Start()
	case clock.Stop:
		return gomidi.Stop()
	case clock.Continue:
		return gomidi.Continue()
	}
	return gomidi.TimingClock()
}

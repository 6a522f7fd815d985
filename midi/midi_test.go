package midi

import (
	"bytes"
	"errors"
	"testing"
	"time"

	gomidi "gitlab.com/gomidi/midi/v2"

	"hopkinsville/clock"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		msg  gomidi.Message
		want clock.Event
		ok   bool
	}{
		{"clock", gomidi.TimingClock(), clock.Pulse, true},
		{"start", gomidi.Start(), clock.Start, true},
		{"stop", gomidi.Stop(), clock.Stop, true},
		{"continue", gomidi.Continue(), clock.Continue, true},
		{"note", gomidi.NoteOn(0, 60, 100), 0, false},
		{"empty", nil, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Classify(tt.msg)
			if ok != tt.ok || (ok && got != tt.want) {
				t.Errorf("Classify = (%v, %v), want (%v, %v)", got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestRealtimeRoundTrip(t *testing.T) {
	for _, e := range []clock.Event{clock.Pulse, clock.Start, clock.Stop, clock.Continue} {
		got, ok := Classify(Realtime(e))
		if !ok || got != e {
			t.Errorf("%v: round trip gave (%v, %v)", e, got, ok)
		}
	}
}

func TestTransportPreservesOrder(t *testing.T) {
	tr := NewTransport(8)
	defer tr.Close()

	in := []gomidi.Message{
		gomidi.Start(),
		gomidi.TimingClock(),
		gomidi.NoteOn(0, 60, 1),
		gomidi.TimingClock(),
		gomidi.Stop(),
		gomidi.Continue(),
	}
	for _, msg := range in {
		tr.Dispatch(msg)
	}

	want := []clock.Event{clock.Start, clock.Pulse, clock.Pulse, clock.Stop, clock.Continue}
	for i, w := range want {
		select {
		case got := <-tr.Events():
			if got != w {
				t.Errorf("event %d: got %v, want %v", i, got, w)
			}
		default:
			t.Fatalf("event %d missing", i)
		}
	}
}

func TestTransportDispatchAfterClose(t *testing.T) {
	tr := NewTransport(1)
	tr.Close()
	if tr.Dispatch(gomidi.TimingClock()) {
		t.Errorf("dispatch should fail on a closed transport")
	}
	select {
	case <-tr.Done():
	default:
		t.Errorf("Done should be closed")
	}
}

func TestOutputWithoutPort(t *testing.T) {
	o := NewOutput()
	if err := o.Transport(clock.Start); !errors.Is(err, ErrNoOutput) {
		t.Errorf("expected ErrNoOutput, got %v", err)
	}
	if err := o.NRPN(0, 97, 1); !errors.Is(err, ErrNoOutput) {
		t.Errorf("expected wrapped ErrNoOutput, got %v", err)
	}
}

func TestOutputNRPN(t *testing.T) {
	var sent []gomidi.Message
	o := NewOutput()
	o.AttachSender("test", func(msg gomidi.Message) error {
		sent = append(sent, msg)
		return nil
	})

	if err := o.NRPN(0, 388, 3); err != nil {
		t.Fatalf("NRPN failed: %v", err)
	}
	want := []gomidi.Message{
		gomidi.ControlChange(0, 99, 3),
		gomidi.ControlChange(0, 98, 4),
		gomidi.ControlChange(0, 6, 0),
		gomidi.ControlChange(0, 38, 3),
	}
	if len(sent) != len(want) {
		t.Fatalf("expected %d messages, got %d", len(want), len(sent))
	}
	for i := range want {
		if !bytes.Equal(sent[i], want[i]) {
			t.Errorf("message %d: got % X, want % X", i, sent[i], want[i])
		}
	}
	if !o.Connected() || o.Port() != "test" {
		t.Errorf("expected attached port")
	}
	o.Detach()
	if o.Connected() {
		t.Errorf("expected detached")
	}
}

func TestMatchName(t *testing.T) {
	if !MatchName("Prophet 08 MIDI 1", "prophet") {
		t.Errorf("expected case-insensitive match")
	}
	if MatchName("Prophet 08", "") {
		t.Errorf("empty name must not match")
	}
}

func stubPorts(t *testing.T, read func() portList, timeout time.Duration) {
	t.Helper()
	oldRead, oldTimeout := readPorts, scanTimeout
	readPorts, scanTimeout = read, timeout
	t.Cleanup(func() { readPorts, scanTimeout = oldRead, oldTimeout })
}

func TestFindReportsScanTimeout(t *testing.T) {
	hung := make(chan struct{})
	t.Cleanup(func() { close(hung) })
	stubPorts(t, func() portList { <-hung; return portList{} }, 10*time.Millisecond)

	if _, err := FindIn("clock"); !errors.Is(err, ErrScanTimeout) {
		t.Errorf("FindIn: expected scan timeout, got %v", err)
	}
	if _, err := FindOut("synth"); !errors.Is(err, ErrScanTimeout) {
		t.Errorf("FindOut: expected scan timeout, got %v", err)
	}
	if _, _, err := PortNames(); !errors.Is(err, ErrScanTimeout) {
		t.Errorf("PortNames: expected scan timeout, got %v", err)
	}
}

func TestFindWithNoMatch(t *testing.T) {
	stubPorts(t, func() portList { return portList{} }, time.Second)

	if _, err := FindIn("clock"); !errors.Is(err, ErrPortNotFound) {
		t.Errorf("FindIn: expected not found, got %v", err)
	}
	if _, err := FindOut("synth"); !errors.Is(err, ErrPortNotFound) {
		t.Errorf("FindOut: expected not found, got %v", err)
	}
}

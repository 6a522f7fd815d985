package midi

import (
	"fmt"
	"sync"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"

	"hopkinsville/clock"
	"hopkinsville/debug"
)

// Transport receives realtime messages from an input port and hands them to
// the scheduler in arrival order. The input port may be swapped while the
// consumer keeps reading the same Events channel.
type Transport struct {
	events chan clock.Event
	done   chan struct{}
	once   sync.Once

	mu   sync.Mutex
	port string
	stop func()
}

// NewTransport creates a transport with room for buffer pending events.
func NewTransport(buffer int) *Transport {
	return &Transport{
		events: make(chan clock.Event, buffer),
		done:   make(chan struct{}),
	}
}

// Events returns the ordered stream of transport events.
func (t *Transport) Events() <-chan clock.Event {
	return t.events
}

// Done is closed once the transport is closed.
func (t *Transport) Done() <-chan struct{} {
	return t.done
}

// Dispatch queues msg if it is a transport message. When the queue is full
// it waits rather than drop a pulse, unless the transport is closed.
func (t *Transport) Dispatch(msg gomidi.Message) bool {
	e, ok := Classify(msg)
	if !ok {
		return false
	}
	select {
	case <-t.done:
		return false
	default:
	}
	select {
	case t.events <- e:
		if e == clock.Pulse {
			debug.LogEvery(96, "transport", "pulse")
		} else {
			debug.Log("transport", "%s", e)
		}
		return true
	case <-t.done:
		return false
	}
}

// Attach starts listening on in, replacing any previous port.
func (t *Transport) Attach(in drivers.In) error {
	t.Detach()

	stop, err := gomidi.ListenTo(in, func(msg gomidi.Message, timestampms int32) {
		t.Dispatch(msg)
	})
	if err != nil {
		return fmt.Errorf("listen on %s: %w", in.String(), err)
	}

	t.mu.Lock()
	t.port = in.String()
	t.stop = stop
	t.mu.Unlock()
	debug.Log("transport", "attached %s", in.String())
	return nil
}

// Detach stops listening. Queued events stay readable.
func (t *Transport) Detach() {
	t.mu.Lock()
	stop := t.stop
	port := t.port
	t.stop = nil
	t.port = ""
	t.mu.Unlock()

	if stop != nil {
		stop()
		debug.Log("transport", "detached %s", port)
	}
}

// Port returns the attached input port name, or "".
func (t *Transport) Port() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.port
}

// Close detaches and closes Done. Events is left open so a late driver
// callback can never send on a closed channel.
func (t *Transport) Close() {
	t.once.Do(func() {
		t.Detach()
		close(t.done)
	})
}

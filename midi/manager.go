package midi

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // Register MIDI driver

	"hopkinsville/debug"
)

var (
	// ErrPortNotFound is returned when no port matches a name.
	ErrPortNotFound = errors.New("midi port not found")
	// ErrScanTimeout is returned when the driver did not list its ports in time.
	ErrScanTimeout = errors.New("port scan timed out")
)

// PortKind tells input from output ports.
type PortKind int

const (
	PortInput PortKind = iota
	PortOutput
)

func (k PortKind) String() string {
	if k == PortOutput {
		return "out"
	}
	return "in"
}

// DeviceEvent is emitted when a configured port appears or disappears.
type DeviceEvent struct {
	Type DeviceEventType
	Kind PortKind
	Name string
	Err  error
}

type DeviceEventType int

const (
	DeviceConnected DeviceEventType = iota
	DeviceDisconnected
	DeviceFailed
)

// DeviceManager keeps the Transport and Output attached to the configured
// ports, reconnecting when they are unplugged and plugged back in.
type DeviceManager struct {
	inName, outName string

	transport *Transport
	output    *Output

	mu       sync.Mutex
	events   chan DeviceEvent
	pollRate time.Duration
}

// NewDeviceManager watches for ports whose names contain inName and outName
// (case-insensitive). An empty name disables that side.
func NewDeviceManager(inName, outName string, t *Transport, o *Output) *DeviceManager {
	return &DeviceManager{
		inName:    inName,
		outName:   outName,
		transport: t,
		output:    o,
		events:    make(chan DeviceEvent, 16),
		pollRate:  time.Second,
	}
}

// Events returns a channel of connect/disconnect events.
func (dm *DeviceManager) Events() <-chan DeviceEvent {
	return dm.events
}

// Run polls the port list until ctx is done (blocking - run in goroutine).
func (dm *DeviceManager) Run(ctx context.Context) {
	ticker := time.NewTicker(dm.pollRate)
	defer ticker.Stop()

	dm.scan()

	for {
		select {
		case <-ctx.Done():
			dm.transport.Detach()
			dm.output.Detach()
			close(dm.events)
			return
		case <-ticker.C:
			dm.scan()
		}
	}
}

type portList struct {
	ins  []drivers.In
	outs []drivers.Out
}

// scanTimeout bounds every port listing.
var scanTimeout = 3 * time.Second

var readPorts = func() portList {
	return portList{ins: gomidi.GetInPorts(), outs: gomidi.GetOutPorts()}
}

// listPorts reads the port list, giving up after timeout (CoreMIDI can hang).
func listPorts(timeout time.Duration) (portList, bool) {
	read := readPorts
	ch := make(chan portList, 1)
	go func() {
		ch <- read()
	}()
	select {
	case r := <-ch:
		return r, true
	case <-time.After(timeout):
		return portList{}, false
	}
}

func (dm *DeviceManager) scan() {
	ports, ok := listPorts(scanTimeout)
	if !ok {
		debug.Log("ports", "port scan timed out")
		return
	}

	dm.mu.Lock()
	defer dm.mu.Unlock()

	if dm.inName != "" {
		in := matchIn(ports.ins, dm.inName)
		current := dm.transport.Port()
		switch {
		case in == nil && current != "":
			dm.transport.Detach()
			dm.emit(DeviceEvent{Type: DeviceDisconnected, Kind: PortInput, Name: current})
		case in != nil && current == "":
			if err := dm.transport.Attach(in); err != nil {
				dm.emit(DeviceEvent{Type: DeviceFailed, Kind: PortInput, Name: in.String(), Err: err})
			} else {
				dm.emit(DeviceEvent{Type: DeviceConnected, Kind: PortInput, Name: in.String()})
			}
		}
	}

	if dm.outName != "" {
		out := matchOut(ports.outs, dm.outName)
		current := dm.output.Port()
		switch {
		case out == nil && current != "":
			dm.output.Detach()
			dm.emit(DeviceEvent{Type: DeviceDisconnected, Kind: PortOutput, Name: current})
		case out != nil && current == "":
			if err := dm.output.Attach(out); err != nil {
				dm.emit(DeviceEvent{Type: DeviceFailed, Kind: PortOutput, Name: out.String(), Err: err})
			} else {
				dm.emit(DeviceEvent{Type: DeviceConnected, Kind: PortOutput, Name: out.String()})
			}
		}
	}
}

func (dm *DeviceManager) emit(e DeviceEvent) {
	debug.Log("ports", "%s %s type=%d err=%v", e.Kind, e.Name, e.Type, e.Err)
	select {
	case dm.events <- e:
	default:
	}
}

// PortNames returns the names of all input and output ports.
func PortNames() (ins, outs []string, err error) {
	ports, ok := listPorts(scanTimeout)
	if !ok {
		return nil, nil, ErrScanTimeout
	}
	for _, p := range ports.ins {
		ins = append(ins, p.String())
	}
	for _, p := range ports.outs {
		outs = append(outs, p.String())
	}
	return ins, outs, nil
}

// FindIn returns the first input port whose name contains name.
func FindIn(name string) (drivers.In, error) {
	ports, ok := listPorts(scanTimeout)
	if !ok {
		return nil, ErrScanTimeout
	}
	if in := matchIn(ports.ins, name); in != nil {
		return in, nil
	}
	return nil, ErrPortNotFound
}

// FindOut returns the first output port whose name contains name.
func FindOut(name string) (drivers.Out, error) {
	ports, ok := listPorts(scanTimeout)
	if !ok {
		return nil, ErrScanTimeout
	}
	if out := matchOut(ports.outs, name); out != nil {
		return out, nil
	}
	return nil, ErrPortNotFound
}

func matchIn(ins []drivers.In, name string) drivers.In {
	for _, p := range ins {
		if MatchName(p.String(), name) {
			return p
		}
	}
	return nil
}

func matchOut(outs []drivers.Out, name string) drivers.Out {
	for _, p := range outs {
		if MatchName(p.String(), name) {
			return p
		}
	}
	return nil
}

// MatchName reports whether a port name contains want, ignoring case.
func MatchName(port, want string) bool {
	if want == "" {
		return false
	}
	return strings.Contains(strings.ToLower(port), strings.ToLower(want))
}

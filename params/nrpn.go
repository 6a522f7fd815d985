package params

// NRPN parameters of the target synth. The A/B pairs address the two layers.
const (
	DirectionNRPNA = 97
	DirectionNRPNB = 297

	ArpeggiatorNRPNA = 100
	ArpeggiatorNRPNB = 300
	ArpeggiatorOff   = 0
	ArpeggiatorOn    = 1

	ClockModeNRPN = 388
	ClockExternal = 1
	ClockInternal = 3
)

// ProgramChannel is the 1-based MIDI channel program NRPNs are sent on.
const ProgramChannel = 1

// NRPN is one parameter assignment.
type NRPN struct {
	Param uint16
	Value uint16
}

// DirectionPatch sets the arpeggiator direction on both layers and turns
// the arpeggiator on.
func DirectionPatch(direction int) []NRPN {
	return []NRPN{
		{Param: DirectionNRPNA, Value: uint16(direction)},
		{Param: DirectionNRPNB, Value: uint16(direction)},
		{Param: ArpeggiatorNRPNA, Value: ArpeggiatorOn},
		{Param: ArpeggiatorNRPNB, Value: ArpeggiatorOn},
	}
}

// ClockModePatch selects external or internal clock on the synth.
func ClockModePatch(external bool) []NRPN {
	v := uint16(ClockInternal)
	if external {
		v = ClockExternal
	}
	return []NRPN{{Param: ClockModeNRPN, Value: v}}
}

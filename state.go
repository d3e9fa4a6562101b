package vt102

import "fmt"

// State is a state of the parser's escape-sequence state machine.
//
// The VT102 command set only needs Ground/Escape/CSI*/OSCString, but DCS and
// SOS/PM/APC are kept as recognized states so the machine stays total: a
// byte stream that happens to contain one never desyncs the parser. A DCS is
// passed through the Performer's Hook/Put/Unhook (which the Processor
// forwards to the Handler's methods of the same names); an SOS/PM/APC string
// is swallowed without any callback.
type State uint8

const (
	StateGround State = iota
	StateEscape
	StateEscapeIntermediate
	StateCSIEntry
	StateCSIParam
	StateCSIIntermediate
	StateCSIIgnore
	StateOSCString
	StateDCSEntry
	StateDCSParam
	StateDCSIntermediate
	StateDCSPassthrough
	StateDCSIgnore
	StateSOSPMApcString
)

func (s State) String() string {
	names := []string{
		"Ground",
		"Escape",
		"EscapeIntermediate",
		"CSIEntry",
		"CSIParam",
		"CSIIntermediate",
		"CSIIgnore",
		"OSCString",
		"DCSEntry",
		"DCSParam",
		"DCSIntermediate",
		"DCSPassthrough",
		"DCSIgnore",
		"SOSPMApcString",
	}
	if int(s) < len(names) {
		return names[s]
	}
	return fmt.Sprintf("Unknown(%d)", s)
}

// IsValid reports whether s is one of the defined states.
func (s State) IsValid() bool {
	return s <= StateSOSPMApcString
}

package domain

import (
	"fmt"
	"strings"
)

// RigMode is the operating mode reported by the rig control library.
type RigMode int

const (
	RigModeNone RigMode = iota
	RigModeUSB
	RigModeLSB
	RigModeCW
	RigModeCWR
	RigModeAM
	RigModeFM
	RigModeRTTY
	RigModeRTTYR
	RigModePKTUSB
	RigModePKTLSB
)

var rigModeNames = map[RigMode]string{
	RigModeNone:   "NONE",
	RigModeUSB:    "USB",
	RigModeLSB:    "LSB",
	RigModeCW:     "CW",
	RigModeCWR:    "CWR",
	RigModeAM:     "AM",
	RigModeFM:     "FM",
	RigModeRTTY:   "RTTY",
	RigModeRTTYR:  "RTTYR",
	RigModePKTUSB: "PKTUSB",
	RigModePKTLSB: "PKTLSB",
}

// String returns the hamlib name of the mode.
func (m RigMode) String() string {
	if name, ok := rigModeNames[m]; ok {
		return name
	}
	return "UNKNOWN"
}

// IsRTTY reports whether the mode is a shift-keyed RTTY mode (normal or reverse).
func (m RigMode) IsRTTY() bool {
	return m == RigModeRTTY || m == RigModeRTTYR
}

// ParseRigMode parses a hamlib mode name. Matching is case-insensitive and
// the empty string maps to RigModeNone.
func ParseRigMode(s string) (RigMode, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	switch name {
	case "":
		return RigModeNone, nil
	case "RTTY-R", "RTTY_R", "RTTYREV":
		return RigModeRTTYR, nil
	}
	for mode, n := range rigModeNames {
		if n == name {
			return mode, nil
		}
	}
	return RigModeNone, fmt.Errorf("unknown rig mode %q", s)
}

// RigContext is a snapshot of the rig state.
// Active is false when rig control is disabled altogether; Mode is then
// meaningless.
type RigContext struct {
	Mode   RigMode
	Active bool
}

package fldigi

import "github.com/tlf-contrib/fldigilink/internal/domain"

// Re-export domain types so callers outside this module can use them.
type (
	Argument   = domain.Argument
	Result     = domain.Result
	ResultKind = domain.ResultKind
	RigMode    = domain.RigMode
	RigContext = domain.RigContext
)

// Argument constructors.
var (
	Int  = domain.Int
	Text = domain.Text
)

// Rig modes.
const (
	RigModeNone   = domain.RigModeNone
	RigModeUSB    = domain.RigModeUSB
	RigModeLSB    = domain.RigModeLSB
	RigModeCW     = domain.RigModeCW
	RigModeCWR    = domain.RigModeCWR
	RigModeAM     = domain.RigModeAM
	RigModeFM     = domain.RigModeFM
	RigModeRTTY   = domain.RigModeRTTY
	RigModeRTTYR  = domain.RigModeRTTYR
	RigModePKTUSB = domain.RigModePKTUSB
	RigModePKTLSB = domain.RigModePKTLSB
)

// ParseRigMode parses a hamlib-style mode name.
func ParseRigMode(s string) (RigMode, error) { return domain.ParseRigMode(s) }

// Errors returned by queries. Test with errors.Is.
var (
	ErrNotInitialized         = domain.ErrNotInitialized
	ErrArgMarshal             = domain.ErrArgMarshal
	ErrFault                  = domain.ErrFault
	ErrCircuitOpen            = domain.ErrCircuitOpen
	ErrDecodeTypeUnrecognized = domain.ErrDecodeTypeUnrecognized
)

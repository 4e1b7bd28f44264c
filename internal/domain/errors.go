package domain

import "errors"

// Query errors. Every failure of a remote query wraps exactly one of these,
// so callers can tell them apart with errors.Is.
var (
	// ErrNotInitialized is returned when the session never became ready
	// (or has been closed).
	ErrNotInitialized = errors.New("fldigi: session not initialized")

	// ErrArgMarshal is returned when an argument cannot be encoded for the
	// wire. No network activity happens in that case.
	ErrArgMarshal = errors.New("fldigi: argument marshal error")

	// ErrFault is returned when the transport call itself failed. It trips
	// the circuit breaker.
	ErrFault = errors.New("fldigi: transport fault")

	// ErrCircuitOpen is returned while the breaker is tripped and the call
	// was skipped without touching the transport.
	ErrCircuitOpen = errors.New("fldigi: circuit open")

	// ErrDecodeTypeUnrecognized is returned when the remote result is not an
	// integer, a string or a byte buffer.
	ErrDecodeTypeUnrecognized = errors.New("fldigi: unrecognized result type")
)

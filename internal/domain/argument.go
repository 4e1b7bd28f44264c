package domain

import (
	"fmt"
	"strconv"
)

// ArgKind tags the value carried by an Argument.
type ArgKind uint8

const (
	// ArgInvalid is the zero kind; an Argument of this kind cannot be marshaled.
	ArgInvalid ArgKind = iota
	ArgInt
	ArgText
)

// String returns a human-readable representation of the kind.
func (k ArgKind) String() string {
	switch k {
	case ArgInt:
		return "int"
	case ArgText:
		return "text"
	default:
		return "invalid"
	}
}

// Argument is one positional parameter of a remote call.
type Argument struct {
	kind ArgKind
	i    int
	s    string
}

// Int creates an integer argument.
func Int(v int) Argument {
	return Argument{kind: ArgInt, i: v}
}

// Text creates a string argument.
func Text(v string) Argument {
	return Argument{kind: ArgText, s: v}
}

// Kind reports which value the argument carries.
func (a Argument) Kind() ArgKind { return a.kind }

// IntValue returns the integer value. Only meaningful for ArgInt.
func (a Argument) IntValue() int { return a.i }

// TextValue returns the string value. Only meaningful for ArgText.
func (a Argument) TextValue() string { return a.s }

// String formats the argument for logs.
func (a Argument) String() string {
	switch a.kind {
	case ArgInt:
		return strconv.Itoa(a.i)
	case ArgText:
		return strconv.Quote(a.s)
	default:
		return fmt.Sprintf("<%s>", a.kind)
	}
}

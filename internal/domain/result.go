package domain

// ResultKind tags the payload of a Result.
type ResultKind uint8

const (
	// ResultNone means the remote method returned no value (main.rx, text.add_tx, ...).
	ResultNone ResultKind = iota
	ResultInt
	ResultText
	ResultBytes
)

// String returns a human-readable representation of the kind.
func (k ResultKind) String() string {
	switch k {
	case ResultNone:
		return "none"
	case ResultInt:
		return "int"
	case ResultText:
		return "text"
	case ResultBytes:
		return "bytes"
	default:
		return "unknown"
	}
}

// Result is the decoded value of a successful remote query.
// At most one of Int, Text and Bytes is populated, selected by Kind.
// Text and Bytes belong to the caller, who should call Release once the
// payload has been inspected or copied.
type Result struct {
	Kind  ResultKind
	Int   int
	Text  string
	Bytes []byte
}

// IntResult creates an integer result.
func IntResult(v int) Result { return Result{Kind: ResultInt, Int: v} }

// TextResult creates a string result.
func TextResult(v string) Result { return Result{Kind: ResultText, Text: v} }

// BytesResult creates a byte buffer result.
func BytesResult(v []byte) Result { return Result{Kind: ResultBytes, Bytes: v} }

// Len returns the byte length of a Text or Bytes payload, zero otherwise.
func (r *Result) Len() int {
	switch r.Kind {
	case ResultText:
		return len(r.Text)
	case ResultBytes:
		return len(r.Bytes)
	default:
		return 0
	}
}

// Payload returns the Text or Bytes payload as a byte slice.
// It returns nil for integer and empty results.
func (r *Result) Payload() []byte {
	switch r.Kind {
	case ResultText:
		return []byte(r.Text)
	case ResultBytes:
		return r.Bytes
	default:
		return nil
	}
}

// Release drops the payload so the buffer can be collected.
// It is safe to call more than once.
func (r *Result) Release() {
	r.Text = ""
	r.Bytes = nil
}

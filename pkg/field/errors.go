package field

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// Kind classifies a field decode failure.
type Kind int

const (
	// KindMalformed means the cell is present but does not have the expected shape.
	KindMalformed Kind = iota + 1
	// KindMissing means a required cell is empty.
	KindMissing
)

func (k Kind) String() string {
	switch k {
	case KindMalformed:
		return "malformed field"
	case KindMissing:
		return "missing field"
	default:
		return "field error"
	}
}

var (
	ErrMalformed = errors.New("malformed field")
	ErrMissing   = errors.New("missing field")
)

// Error describes a failure to decode one cell. Index and Name are set once the
// error has been attributed to a column; decoders alone leave Index at -1.
type Error struct {
	Kind  Kind
	Index int
	Name  string
	Raw   string
	Err   error
}

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Name != "" {
		msg = fmt.Sprintf("%s %q (column %d)", msg, e.Name, e.Index)
	} else if e.Index >= 0 {
		msg = fmt.Sprintf("%s (column %d)", msg, e.Index)
	}
	if e.Raw != "" {
		msg = fmt.Sprintf("%s: raw %q", msg, truncate(e.Raw, 64))
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is the sentinel for this error's kind.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrMalformed:
		return e.Kind == KindMalformed
	case ErrMissing:
		return e.Kind == KindMissing
	}
	return false
}

// WithPosition returns a copy of e attributed to the given column.
func (e *Error) WithPosition(index int, name string) *Error {
	cp := *e
	cp.Index = index
	cp.Name = name
	return &cp
}

// Malformedf builds an unattributed ErrMalformed error for raw.
func Malformedf(raw string, format string, args ...any) *Error {
	return malformed(raw, format, args...)
}

func malformed(raw string, format string, args ...any) *Error {
	return &Error{Kind: KindMalformed, Index: -1, Raw: raw, Err: fmt.Errorf(format, args...)}
}

func missing() *Error {
	return &Error{Kind: KindMissing, Index: -1}
}

// AsError extracts a *Error from err, wrapping anything else as malformed.
func AsError(err error, raw string) *Error {
	var fe *Error
	if errors.As(err, &fe) {
		return fe
	}
	return &Error{Kind: KindMalformed, Index: -1, Raw: raw, Err: err}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "..."
}

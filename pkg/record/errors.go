package record

import (
	"errors"
	"fmt"

	"github.com/newsnet-africa/gdelt-fetcher-sub001/pkg/field"
)

var (
	// ErrFieldCount means a row does not have the column count of its kind.
	ErrFieldCount = errors.New("wrong field count")
	// ErrPrimaryKey means the primary key column failed to decode.
	ErrPrimaryKey = errors.New("primary key decode failure")
	// ErrRejected is matched by every *RejectError.
	ErrRejected = errors.New("record rejected")
)

// SchemaError reports a row whose column count is outside what its kind
// accepts. It is a caller error, not a data-quality one.
type SchemaError struct {
	Kind Kind
	Got  int
	Min  int
	Max  int
}

func (e *SchemaError) Error() string {
	if e.Min == e.Max {
		return fmt.Sprintf("%s row: %v: got %d columns, want %d", e.Kind, ErrFieldCount, e.Got, e.Max)
	}
	return fmt.Sprintf("%s row: %v: got %d columns, want %d-%d", e.Kind, ErrFieldCount, e.Got, e.Min, e.Max)
}

func (e *SchemaError) Unwrap() error { return ErrFieldCount }

// RejectError is returned when the primary key or a required column fails.
// It wraps the field error, so errors.Is(err, field.ErrMissing) works.
type RejectError struct {
	Kind       Kind
	PrimaryKey bool
	Field      *field.Error
}

func (e *RejectError) Error() string {
	if e.PrimaryKey {
		return fmt.Sprintf("%s rejected: %v: %v", e.Kind, ErrPrimaryKey, e.Field)
	}
	return fmt.Sprintf("%s rejected: %v", e.Kind, e.Field)
}

func (e *RejectError) Unwrap() error { return e.Field }

// Is matches ErrRejected always, and ErrPrimaryKey for key failures.
func (e *RejectError) Is(target error) bool {
	switch target {
	case ErrRejected:
		return true
	case ErrPrimaryKey:
		return e.PrimaryKey
	}
	return false
}

// Reason is a short label for metrics and rejection rows.
func (e *RejectError) Reason() string {
	switch {
	case e.PrimaryKey:
		return "primary_key"
	case e.Field != nil && e.Field.Kind == field.KindMissing:
		return "missing"
	}
	return "malformed"
}

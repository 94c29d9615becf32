// Package field decodes single GDELT cells into typed values.
//
// Every decoder is fallible. Optional decoders report an empty cell as an
// absent Opt; Required variants report it as ErrMissing. Shape violations are
// always ErrMalformed. Decoders never panic on input data.
package field

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
)

// Opt holds a value that may be absent.
type Opt[T any] struct {
	Value T
	Valid bool
}

// Some wraps v as a present value.
func Some[T any](v T) Opt[T] { return Opt[T]{Value: v, Valid: true} }

// None returns an absent value.
func None[T any]() Opt[T] { return Opt[T]{} }

// Get returns the value and whether it is present.
func (o Opt[T]) Get() (T, bool) { return o.Value, o.Valid }

// Or returns the value, or def when absent.
func (o Opt[T]) Or(def T) T {
	if o.Valid {
		return o.Value
	}
	return def
}

// Ptr returns a pointer to the value, or nil when absent.
func (o Opt[T]) Ptr() *T {
	if !o.Valid {
		return nil
	}
	v := o.Value
	return &v
}

// MarshalJSON encodes an absent value as null.
func (o Opt[T]) MarshalJSON() ([]byte, error) {
	if !o.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// UnmarshalJSON decodes null as absent.
func (o *Opt[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*o = Opt[T]{}
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*o = Some(v)
	return nil
}

// IsEmpty reports whether raw holds no data.
func IsEmpty(raw string) bool {
	return strings.TrimSpace(raw) == ""
}

// Text returns the trimmed cell, absent when empty.
func Text(raw string) Opt[string] {
	s := strings.TrimSpace(raw)
	if s == "" {
		return None[string]()
	}
	return Some(s)
}

// RequiredText returns the trimmed cell or ErrMissing.
func RequiredText(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", missing()
	}
	return s, nil
}

// Code decodes a fixed-length code of exactly n bytes.
func Code(raw string, n int) (Opt[string], error) {
	return CodeRange(raw, n, n)
}

// RequiredCode is Code for a column that must be present.
func RequiredCode(raw string, n int) (string, error) {
	c, err := Code(raw, n)
	if err != nil {
		return "", err
	}
	if !c.Valid {
		return "", missing()
	}
	return c.Value, nil
}

// CodeRange decodes a code whose byte length lies in [min, max].
func CodeRange(raw string, min, max int) (Opt[string], error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return None[string](), nil
	}
	if len(s) < min || len(s) > max {
		if min == max {
			return None[string](), malformed(raw, "want %d bytes, got %d", min, len(s))
		}
		return None[string](), malformed(raw, "want %d-%d bytes, got %d", min, max, len(s))
	}
	return Some(s), nil
}

// Digits decodes a numeric code of min to max ASCII digits, keeping leading zeros.
func Digits(raw string, min, max int) (Opt[string], error) {
	c, err := CodeRange(raw, min, max)
	if err != nil || !c.Valid {
		return c, err
	}
	if !allDigits(c.Value) {
		return None[string](), malformed(raw, "want digits")
	}
	return c, nil
}

// RequiredDigits is Digits for a column that must be present.
func RequiredDigits(raw string, min, max int) (string, error) {
	return required(Digits(raw, min, max))
}

// Int decodes a signed decimal integer.
func Int(raw string) (Opt[int64], error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return None[int64](), nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return None[int64](), malformed(raw, "not an integer")
	}
	return Some(v), nil
}

// RequiredInt is Int for a column that must be present.
func RequiredInt(raw string) (int64, error) {
	v, err := Int(raw)
	if err != nil {
		return 0, err
	}
	if !v.Valid {
		return 0, missing()
	}
	return v.Value, nil
}

// Uint8 decodes an unsigned integer in [0, 255].
func Uint8(raw string) (Opt[uint8], error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return None[uint8](), nil
	}
	v, err := strconv.ParseUint(s, 10, 8)
	if err != nil {
		return None[uint8](), malformed(raw, "not an integer in 0-255")
	}
	return Some(uint8(v)), nil
}

// Float decodes a decimal number. NaN and infinities are rejected.
func Float(raw string) (Opt[float64], error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return None[float64](), nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return None[float64](), malformed(raw, "not a number")
	}
	return Some(v), nil
}

// RequiredFloat is Float for a column that must be present.
func RequiredFloat(raw string) (float64, error) {
	v, err := Float(raw)
	if err != nil {
		return 0, err
	}
	if !v.Valid {
		return 0, missing()
	}
	return v.Value, nil
}

// Bool decodes a flag from 1/0, T/F or true/false.
func Bool(raw string) (Opt[bool], error) {
	s := strings.TrimSpace(raw)
	switch {
	case s == "":
		return None[bool](), nil
	case s == "1", strings.EqualFold(s, "t"), strings.EqualFold(s, "true"):
		return Some(true), nil
	case s == "0", strings.EqualFold(s, "f"), strings.EqualFold(s, "false"):
		return Some(false), nil
	}
	return None[bool](), malformed(raw, "not a flag")
}

const (
	dateLayout     = "20060102"
	dateTimeLayout = "20060102150405"
)

// Date decodes a YYYYMMDD date in UTC.
func Date(raw string) (Opt[time.Time], error) {
	return fixedTime(raw, dateLayout)
}

// RequiredDate is Date for a column that must be present.
func RequiredDate(raw string) (time.Time, error) {
	return required(Date(raw))
}

// DateTime decodes a YYYYMMDDHHMMSS timestamp in UTC.
func DateTime(raw string) (Opt[time.Time], error) {
	return fixedTime(raw, dateTimeLayout)
}

// RequiredDateTime is DateTime for a column that must be present.
func RequiredDateTime(raw string) (time.Time, error) {
	return required(DateTime(raw))
}

// Timestamp accepts either YYYYMMDDHHMMSS or YYYYMMDD.
func Timestamp(raw string) (Opt[time.Time], error) {
	if len(strings.TrimSpace(raw)) == len(dateLayout) {
		return Date(raw)
	}
	return DateTime(raw)
}

// RequiredTimestamp is Timestamp for a column that must be present.
func RequiredTimestamp(raw string) (time.Time, error) {
	return required(Timestamp(raw))
}

func fixedTime(raw, layout string) (Opt[time.Time], error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return None[time.Time](), nil
	}
	if len(s) != len(layout) || !allDigits(s) {
		return None[time.Time](), malformed(raw, "want %d digits", len(layout))
	}
	t, err := time.ParseInLocation(layout, s, time.UTC)
	if err != nil {
		return None[time.Time](), malformed(raw, "invalid calendar value")
	}
	return Some(t), nil
}

func required[T any](v Opt[T], err error) (T, error) {
	var zero T
	if err != nil {
		return zero, err
	}
	if !v.Valid {
		return zero, missing()
	}
	return v.Value, nil
}

// Point is a latitude/longitude pair. Range is not validated on decode.
type Point struct {
	Lat  float64
	Long float64
}

// InRange reports whether the point lies within valid WGS84 bounds.
func (p Point) InRange() bool {
	return p.Lat >= -90 && p.Lat <= 90 && p.Long >= -180 && p.Long <= 180
}

// Coordinate decodes a lat/long pair held in two cells.
func Coordinate(lat, long string) (Opt[Point], error) {
	la, err := Float(lat)
	if err != nil {
		return None[Point](), err
	}
	lo, err := Float(long)
	if err != nil {
		return None[Point](), err
	}
	switch {
	case !la.Valid && !lo.Valid:
		return None[Point](), nil
	case !la.Valid:
		return None[Point](), malformed(lat, "latitude missing for longitude %q", long)
	case !lo.Valid:
		return None[Point](), malformed(long, "longitude missing for latitude %q", lat)
	}
	return Some(Point{Lat: la.Value, Long: lo.Value}), nil
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

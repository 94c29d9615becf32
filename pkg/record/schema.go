// Package record assembles GDELT rows into typed Event, Mention and GKG
// records.
//
// Each kind is described by one position-keyed column table. The table is
// both the decoder and the schema documentation: Schema returns the column
// names straight from it. A failure in the primary key or a required
// column rejects the row; any other column failure is recorded in the
// Report and the field is left absent.
package record

import (
	"fmt"
	"strings"

	"github.com/newsnet-africa/gdelt-fetcher-sub001/pkg/field"
)

// Kind identifies a record kind.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindEvent
	KindMention
	KindGKG
)

func (k Kind) String() string {
	switch k {
	case KindEvent:
		return "event"
	case KindMention:
		return "mention"
	case KindGKG:
		return "gkg"
	}
	return "unknown"
}

// ParseKind accepts the String forms and the upstream file names
// ("export", "mentions", "gkg").
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "event", "events", "export":
		return KindEvent, nil
	case "mention", "mentions":
		return KindMention, nil
	case "gkg":
		return KindGKG, nil
	}
	return KindUnknown, fmt.Errorf("unknown record kind %q", s)
}

// Kinds lists the decodable kinds.
var Kinds = []Kind{KindEvent, KindMention, KindGKG}

// Report collects the non-fatal problems found while assembling one row.
type Report struct {
	Kind     Kind
	Optional []*field.Error
	// Skipped counts malformed items dropped from list-valued columns.
	Skipped int
	// GCAM counts for GKG rows.
	GCAMHits    int
	GCAMMisses  int
	GCAMSkipped int
}

// Clean reports whether nothing went wrong.
func (r *Report) Clean() bool {
	return len(r.Optional) == 0 && r.Skipped == 0 && r.GCAMSkipped == 0
}

// column decodes one cell into the row builder R. decode stores nothing
// decoded when it returns an error.
type column[R any] struct {
	name     string
	required bool
	decode   func(raw string, r *R) error
}

type table[R any] struct {
	kind Kind
	key  int
	min  int
	cols []column[R]
}

func (t *table[R]) names() []string {
	out := make([]string, len(t.cols))
	for i, c := range t.cols {
		out[i] = c.name
	}
	return out
}

// assemble runs every column decoder over fields. Missing trailing columns
// (allowed when t.min < len(t.cols)) decode as empty cells.
func (t *table[R]) assemble(fields []string, r *R, rep *Report) error {
	if len(fields) < t.min || len(fields) > len(t.cols) {
		return &SchemaError{Kind: t.kind, Got: len(fields), Min: t.min, Max: len(t.cols)}
	}
	rep.Kind = t.kind
	for i, c := range t.cols {
		raw := ""
		if i < len(fields) {
			raw = fields[i]
		}
		err := c.decode(raw, r)
		if err == nil {
			continue
		}
		fe := field.AsError(err, raw).WithPosition(i, c.name)
		switch {
		case i == t.key:
			return &RejectError{Kind: t.kind, PrimaryKey: true, Field: fe}
		case c.required:
			return &RejectError{Kind: t.kind, Field: fe}
		}
		rep.Optional = append(rep.Optional, fe)
	}
	return nil
}

// Schema returns the column names of kind in position order.
func Schema(k Kind) []string {
	switch k {
	case KindEvent:
		return eventTable.names()
	case KindMention:
		return mentionTable.names()
	case KindGKG:
		return gkgTable.names()
	}
	return nil
}

// Column describes one schema position.
type Column struct {
	Index    int    `json:"index"`
	Name     string `json:"name"`
	Required bool   `json:"required"`
	Key      bool   `json:"primary_key"`
}

// Columns returns the full column table of kind.
func Columns(k Kind) []Column {
	switch k {
	case KindEvent:
		return describe(eventTable)
	case KindMention:
		return describe(mentionTable)
	case KindGKG:
		return describe(gkgTable)
	}
	return nil
}

func describe[R any](t *table[R]) []Column {
	out := make([]Column, len(t.cols))
	for i, c := range t.cols {
		out[i] = Column{Index: i, Name: c.name, Required: c.required || i == t.key, Key: i == t.key}
	}
	return out
}

// FieldRange returns the accepted column counts for kind.
func FieldRange(k Kind) (min, max int) {
	switch k {
	case KindEvent:
		return eventTable.min, len(eventTable.cols)
	case KindMention:
		return mentionTable.min, len(mentionTable.cols)
	case KindGKG:
		return gkgTable.min, len(gkgTable.cols)
	}
	return 0, 0
}

// Decoded is the result of Decode: exactly one of the record pointers is set.
type Decoded struct {
	Kind    Kind
	Event   *Event
	Mention *Mention
	GKG     *GKG
	Report  Report
}

// Decode dispatches on kind. The lookup is only used for GKG rows and may be
// nil.
func Decode(k Kind, fields []string, lookup Lookup) (Decoded, error) {
	d := Decoded{Kind: k}
	var err error
	switch k {
	case KindEvent:
		d.Event, d.Report, err = DecodeEvent(fields)
	case KindMention:
		d.Mention, d.Report, err = DecodeMention(fields)
	case KindGKG:
		d.GKG, d.Report, err = DecodeGKG(fields, lookup)
	default:
		err = fmt.Errorf("decode: unknown record kind %d", k)
	}
	return d, err
}

// PrimaryKey returns the decoded record's key as text.
func (d Decoded) PrimaryKey() string {
	switch {
	case d.Event != nil:
		return fmt.Sprint(d.Event.GlobalEventID)
	case d.Mention != nil:
		return d.Mention.Identifier
	case d.GKG != nil:
		return d.GKG.RecordID.String()
	}
	return ""
}

// set is a shorthand for column decoders that store a decoded value.
func set[T any, R any](dec func(string) (T, error), store func(*R, T)) func(string, *R) error {
	return func(raw string, r *R) error {
		v, err := dec(raw)
		if err != nil {
			return err
		}
		store(r, v)
		return nil
	}
}

func text(raw string) (string, error) { return field.Text(raw).Or(""), nil }

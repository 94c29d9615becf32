package record

import (
	"time"

	"github.com/newsnet-africa/gdelt-fetcher-sub001/pkg/field"
	"github.com/newsnet-africa/gdelt-fetcher-sub001/pkg/taxonomy"
)

// Mention is one row of a GDELT 2.0 mentions file: a single article that
// mentions an event.
type Mention struct {
	GlobalEventID int64                `json:"global_event_id"`
	EventTime     field.Opt[time.Time] `json:"event_time"`
	MentionTime   time.Time            `json:"mention_time"`
	Type          taxonomy.SourceType  `json:"mention_type"`
	SourceName    string               `json:"source_name,omitempty"`
	Identifier    string               `json:"identifier"`
	SentenceID    field.Opt[int64]     `json:"sentence_id"`
	Actor1Offset  field.Opt[int64]     `json:"actor1_char_offset"`
	Actor2Offset  field.Opt[int64]     `json:"actor2_char_offset"`
	ActionOffset  field.Opt[int64]     `json:"action_char_offset"`
	InRawText     field.Opt[bool]      `json:"in_raw_text"`
	Confidence    field.Opt[uint8]     `json:"confidence"`
	DocLength     field.Opt[int64]     `json:"doc_length"`
	DocTone       field.Opt[float64]   `json:"doc_tone"`
	Translation   *TranslationInfo     `json:"translation,omitempty"`
	Extras        string               `json:"extras,omitempty"`
}

type mentionRow struct {
	Mention
}

var mentionTable = newMentionTable()

func newMentionTable() *table[mentionRow] {
	cols := []column[mentionRow]{
		{name: "GLOBALEVENTID", required: true, decode: set(field.RequiredInt, func(r *mentionRow, v int64) { r.GlobalEventID = v })},
		{name: "EventTimeDate", decode: set(field.Timestamp, func(r *mentionRow, v field.Opt[time.Time]) { r.EventTime = v })},
		{name: "MentionTimeDate", required: true, decode: set(field.RequiredTimestamp, func(r *mentionRow, v time.Time) { r.MentionTime = v })},
		{name: "MentionType", required: true, decode: set(mentionType, func(r *mentionRow, v taxonomy.SourceType) { r.Type = v })},
		{name: "MentionSourceName", decode: set(text, func(r *mentionRow, v string) { r.SourceName = v })},
		{name: "MentionIdentifier", required: true, decode: set(field.RequiredText, func(r *mentionRow, v string) { r.Identifier = v })},
		{name: "SentenceID", decode: set(field.Int, func(r *mentionRow, v field.Opt[int64]) { r.SentenceID = v })},
		{name: "Actor1CharOffset", decode: set(charOffset, func(r *mentionRow, v field.Opt[int64]) { r.Actor1Offset = v })},
		{name: "Actor2CharOffset", decode: set(charOffset, func(r *mentionRow, v field.Opt[int64]) { r.Actor2Offset = v })},
		{name: "ActionCharOffset", decode: set(charOffset, func(r *mentionRow, v field.Opt[int64]) { r.ActionOffset = v })},
		{name: "InRawText", decode: set(field.Bool, func(r *mentionRow, v field.Opt[bool]) { r.InRawText = v })},
		{name: "Confidence", decode: set(confidence, func(r *mentionRow, v field.Opt[uint8]) { r.Confidence = v })},
		{name: "MentionDocLen", decode: set(field.Int, func(r *mentionRow, v field.Opt[int64]) { r.DocLength = v })},
		{name: "MentionDocTone", decode: set(field.Float, func(r *mentionRow, v field.Opt[float64]) { r.DocTone = v })},
		{name: "MentionDocTranslationInfo", decode: set(parseTranslationInfo, func(r *mentionRow, v *TranslationInfo) { r.Translation = v })},
		{name: "Extras", decode: set(text, func(r *mentionRow, v string) { r.Extras = v })},
	}
	// Older mention files end at MentionDocTranslationInfo.
	return &table[mentionRow]{kind: KindMention, key: 5, min: len(cols) - 1, cols: cols}
}

func mentionType(raw string) (taxonomy.SourceType, error) {
	d, err := field.RequiredDigits(raw, 1, 1)
	if err != nil {
		return taxonomy.SourceUnknown, err
	}
	return taxonomy.ParseSourceType(d), nil
}

// charOffset decodes a character offset where -1 means the item was not
// found in the article.
func charOffset(raw string) (field.Opt[int64], error) {
	v, err := field.Int(raw)
	if err != nil || !v.Valid {
		return v, err
	}
	if v.Value == -1 {
		return field.None[int64](), nil
	}
	if v.Value < -1 {
		return field.None[int64](), field.Malformedf(raw, "negative offset %d", v.Value)
	}
	return v, nil
}

func confidence(raw string) (field.Opt[uint8], error) {
	v, err := field.Uint8(raw)
	if err != nil || !v.Valid {
		return v, err
	}
	if v.Value > 100 {
		return field.None[uint8](), field.Malformedf(raw, "confidence %d above 100", v.Value)
	}
	return v, nil
}

// DecodeMention assembles one mentions row of 15 or 16 columns.
func DecodeMention(fields []string) (*Mention, Report, error) {
	var row mentionRow
	var rep Report
	if err := mentionTable.assemble(fields, &row, &rep); err != nil {
		return nil, rep, err
	}
	m := row.Mention
	return &m, rep, nil
}

package db

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/newsnet-africa/gdelt-fetcher-sub001/pkg/field"
	"github.com/newsnet-africa/gdelt-fetcher-sub001/pkg/record"
)

// ErrNotFound is returned by getters when no row matches.
var ErrNotFound = errors.New("not found")

// DBExecutor is an interface that allows methods to accept either *sql.DB or *sql.Tx
type DBExecutor interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
	Query(query string, args ...interface{}) (*sql.Rows, error)
	QueryRow(query string, args ...interface{}) *sql.Row
}

const dayLayout = "2006-01-02"

// opt returns nil for an absent value so it is stored as NULL.
func opt[T any](o field.Opt[T]) interface{} {
	if !o.Valid {
		return nil
	}
	return o.Value
}

// nullableString returns nil for "" else the value.
func nullableString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func nullableInt(v int) interface{} {
	if v < 0 {
		return nil
	}
	return v
}

// UpsertEvent inserts or replaces an event keyed by its global event id.
func UpsertEvent(db DBExecutor, ev *record.Event) error {
	if ev == nil {
		return fmt.Errorf("upsert event: nil event")
	}
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("encode event %d: %w", ev.GlobalEventID, err)
	}

	var a1code, a1name, a1country, a2code, a2name, a2country interface{}
	if a := ev.Actor1; a != nil {
		a1code, a1name, a1country = a.Code.Code, nullableString(a.Name), nullableString(string(a.Country))
	}
	if a := ev.Actor2; a != nil {
		a2code, a2name, a2country = a.Code.Code, nullableString(a.Name), nullableString(string(a.Country))
	}
	var geoType, geoName, geoCountry, geoLat, geoLong interface{}
	if g := ev.ActionGeo; g != nil {
		geoType, geoName, geoCountry = int(g.Type), nullableString(g.FullName), nullableString(g.CountryCode)
		if p, ok := g.Point.Get(); ok {
			geoLat, geoLong = p.Lat, p.Long
		}
	}

	_, err = db.Exec(`INSERT INTO events (
			global_event_id, day, actor1_code, actor1_name, actor1_country,
			actor2_code, actor2_name, actor2_country, is_root_event, event_code,
			event_root_code, quad_class, goldstein, num_mentions, num_sources,
			num_articles, avg_tone, action_geo_type, action_geo_name, action_geo_country,
			action_geo_lat, action_geo_long, date_added, source_url, record_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(global_event_id) DO UPDATE SET
			day = excluded.day,
			actor1_code = excluded.actor1_code,
			actor1_name = excluded.actor1_name,
			actor1_country = excluded.actor1_country,
			actor2_code = excluded.actor2_code,
			actor2_name = excluded.actor2_name,
			actor2_country = excluded.actor2_country,
			is_root_event = excluded.is_root_event,
			event_code = excluded.event_code,
			event_root_code = excluded.event_root_code,
			quad_class = excluded.quad_class,
			goldstein = excluded.goldstein,
			num_mentions = excluded.num_mentions,
			num_sources = excluded.num_sources,
			num_articles = excluded.num_articles,
			avg_tone = excluded.avg_tone,
			action_geo_type = excluded.action_geo_type,
			action_geo_name = excluded.action_geo_name,
			action_geo_country = excluded.action_geo_country,
			action_geo_lat = excluded.action_geo_lat,
			action_geo_long = excluded.action_geo_long,
			date_added = excluded.date_added,
			source_url = excluded.source_url,
			record_json = excluded.record_json,
			updated_at = CURRENT_TIMESTAMP`,
		ev.GlobalEventID, ev.Day.Format(dayLayout), a1code, a1name, a1country,
		a2code, a2name, a2country, opt(ev.IsRootEvent), ev.Action.Code,
		nullableString(ev.RootCode), int(ev.QuadClass), opt(ev.Goldstein), opt(ev.NumMentions), opt(ev.NumSources),
		opt(ev.NumArticles), opt(ev.AvgTone), geoType, geoName, geoCountry,
		geoLat, geoLong, ev.DateAdded.Format(time.RFC3339), nullableString(ev.SourceURL), string(body),
	)
	if err != nil {
		return fmt.Errorf("upsert event %d: %w", ev.GlobalEventID, err)
	}
	return nil
}

// GetEvent loads an event stored by UpsertEvent.
func GetEvent(db DBExecutor, id int64) (*record.Event, error) {
	var body string
	err := db.QueryRow(`SELECT record_json FROM events WHERE global_event_id = ?`, id).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("event %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	var ev record.Event
	if err := json.Unmarshal([]byte(body), &ev); err != nil {
		return nil, fmt.Errorf("decode event %d: %w", id, err)
	}
	return &ev, nil
}

// UpsertMention inserts or updates a mention keyed by (event, identifier)
// and returns its row id.
func UpsertMention(db DBExecutor, m *record.Mention) (int64, error) {
	if m == nil {
		return 0, fmt.Errorf("upsert mention: nil mention")
	}
	identifier := strings.TrimSpace(m.Identifier)
	if identifier == "" {
		return 0, fmt.Errorf("mention identifier must be non-empty")
	}
	body, err := json.Marshal(m)
	if err != nil {
		return 0, fmt.Errorf("encode mention: %w", err)
	}
	var id int64
	err = db.QueryRow(`INSERT INTO mentions (global_event_id, mention_identifier, mention_time, mention_type, source_name, confidence, doc_tone, record_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(global_event_id, mention_identifier) DO UPDATE SET
			mention_time = excluded.mention_time,
			mention_type = excluded.mention_type,
			source_name = COALESCE(excluded.source_name, mentions.source_name),
			confidence = excluded.confidence,
			doc_tone = excluded.doc_tone,
			record_json = excluded.record_json
		RETURNING id`,
		m.GlobalEventID, identifier, m.MentionTime.Format(time.RFC3339), int(m.Type), nullableString(m.SourceName),
		opt(m.Confidence), opt(m.DocTone), string(body),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("upsert mention: %w", err)
	}
	return id, nil
}

// UpsertGKG inserts or replaces a GKG record and rewrites its GCAM rows.
func UpsertGKG(db DBExecutor, g *record.GKG) error {
	if g == nil {
		return fmt.Errorf("upsert gkg: nil record")
	}
	id := g.RecordID.String()
	if id == "" {
		return fmt.Errorf("gkg record id must be set")
	}
	body, err := json.Marshal(g)
	if err != nil {
		return fmt.Errorf("encode gkg %s: %w", id, err)
	}
	var tone interface{}
	if g.Tone != nil {
		tone = g.Tone.Tone
	}
	_, err = db.Exec(`INSERT INTO gkg (record_id, date, translated, source_collection, source_common_name, document_identifier, tone, record_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(record_id) DO UPDATE SET
			date = excluded.date,
			translated = excluded.translated,
			source_collection = excluded.source_collection,
			source_common_name = excluded.source_common_name,
			document_identifier = excluded.document_identifier,
			tone = excluded.tone,
			record_json = excluded.record_json`,
		id, g.Date.Format(time.RFC3339), g.RecordID.Translated, int(g.SourceCollection), nullableString(g.SourceCommonName),
		g.DocumentID, tone, string(body),
	)
	if err != nil {
		return fmt.Errorf("upsert gkg %s: %w", id, err)
	}

	if _, err := db.Exec(`DELETE FROM gkg_gcam WHERE record_id = ?`, id); err != nil {
		return fmt.Errorf("clear gcam for %s: %w", id, err)
	}
	for i, m := range g.GCAM {
		var dict, dim interface{}
		if m.Entry != nil {
			dict, dim = string(m.Entry.Dictionary), nullableString(m.Entry.DimensionName)
		}
		if _, err := db.Exec(`INSERT INTO gkg_gcam (record_id, position, variable, value, dictionary, dimension) VALUES (?, ?, ?, ?, ?, ?)`,
			id, i, m.Key, m.Value, dict, dim); err != nil {
			return fmt.Errorf("insert gcam %s for %s: %w", m.Key, id, err)
		}
	}
	return nil
}

// CreateOrGetSourceFile returns the id of the named source file, creating it
// on first use.
func CreateOrGetSourceFile(db DBExecutor, name, kind string) (int64, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return 0, fmt.Errorf("source file name must be non-empty")
	}
	var id int64
	err := db.QueryRow(`INSERT INTO source_files (name, kind) VALUES (?, ?)
		ON CONFLICT(name) DO UPDATE SET kind = excluded.kind
		RETURNING id`, trimmed, kind).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("upsert source file: %w", err)
	}
	return id, nil
}

// GetSourceFile loads a source file by id.
func GetSourceFile(db DBExecutor, id int64) (SourceFile, error) {
	var sf SourceFile
	var added sql.NullTime
	err := db.QueryRow(`SELECT id, name, kind, last_processed_row, added_at FROM source_files WHERE id = ?`, id).
		Scan(&sf.ID, &sf.Name, &sf.Kind, &sf.LastProcessedRow, &added)
	if errors.Is(err, sql.ErrNoRows) {
		return sf, fmt.Errorf("source file %d: %w", id, ErrNotFound)
	}
	if added.Valid {
		sf.AddedAt = added.Time
	}
	return sf, err
}

// GetFileProgress returns the last processed row index for a file, or -1.
func GetFileProgress(db DBExecutor, fileID int64) (int, error) {
	var index int
	err := db.QueryRow("SELECT last_processed_row FROM source_files WHERE id = ?", fileID).Scan(&index)
	if err != nil {
		return 0, err
	}
	return index, nil
}

// UpdateFileProgress updates the last processed row index.
func UpdateFileProgress(db DBExecutor, fileID int64, index int) error {
	_, err := db.Exec("UPDATE source_files SET last_processed_row = ? WHERE id = ?", index, fileID)
	return err
}

// StartRun records the start of an ingest run.
func StartRun(db DBExecutor, runID string, fileID int64, started time.Time) error {
	if runID == "" {
		return fmt.Errorf("run id must be non-empty")
	}
	_, err := db.Exec(`INSERT INTO runs (id, source_file_id, started_at) VALUES (?, ?, ?)`, runID, fileID, started.UTC())
	if err != nil {
		return fmt.Errorf("start run: %w", err)
	}
	return nil
}

// FinishRun stores the totals of a run. errMsg is empty for a clean finish.
func FinishRun(db DBExecutor, runID string, c RunCounts, finished time.Time, errMsg string) error {
	res, err := db.Exec(`UPDATE runs SET finished_at = ?, rows_read = ?, decoded = ?, rejected = ?,
			optional_failures = ?, skipped_items = ?, error = ?
		WHERE id = ?`,
		finished.UTC(), c.Rows, c.Decoded, c.Rejected, c.OptionalFailures, c.Skipped, nullableString(errMsg), runID)
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("finish run %s: %w", runID, ErrNotFound)
	}
	return nil
}

// GetRun loads a run by id.
func GetRun(db DBExecutor, runID string) (Run, error) {
	r := Run{ID: runID}
	var finished sql.NullTime
	var errMsg sql.NullString
	err := db.QueryRow(`SELECT source_file_id, started_at, finished_at, rows_read, decoded, rejected, optional_failures, skipped_items, error
		FROM runs WHERE id = ?`, runID).Scan(&r.SourceFileID, &r.StartedAt, &finished,
		&r.Counts.Rows, &r.Counts.Decoded, &r.Counts.Rejected, &r.Counts.OptionalFailures, &r.Counts.Skipped, &errMsg)
	if errors.Is(err, sql.ErrNoRows) {
		return r, fmt.Errorf("run %s: %w", runID, ErrNotFound)
	}
	if err != nil {
		return r, err
	}
	if finished.Valid {
		t := finished.Time
		r.FinishedAt = &t
	}
	r.Error = errMsg.String
	return r, nil
}

// RecordRejection stores one rejected row.
func RecordRejection(db DBExecutor, rj Rejection) error {
	if rj.RunID == "" {
		return fmt.Errorf("rejection run id must be non-empty")
	}
	_, err := db.Exec(`INSERT INTO rejections (run_id, row_index, reason, field_index, field_name, message) VALUES (?, ?, ?, ?, ?, ?)`,
		rj.RunID, rj.RowIndex, rj.Reason, nullableInt(rj.FieldIndex), nullableString(rj.FieldName), rj.Message)
	if err != nil {
		return fmt.Errorf("record rejection: %w", err)
	}
	return nil
}

// ListRejections returns the rejections of a run in row order.
func ListRejections(db DBExecutor, runID string) ([]Rejection, error) {
	rows, err := db.Query(`SELECT row_index, reason, field_index, field_name, message FROM rejections WHERE run_id = ? ORDER BY row_index, id`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Rejection
	for rows.Next() {
		rj := Rejection{RunID: runID}
		var idx sql.NullInt64
		var name sql.NullString
		if err := rows.Scan(&rj.RowIndex, &rj.Reason, &idx, &name, &rj.Message); err != nil {
			return nil, err
		}
		rj.FieldIndex = -1
		if idx.Valid {
			rj.FieldIndex = int(idx.Int64)
		}
		rj.FieldName = name.String
		out = append(out, rj)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

var countable = map[string]bool{
	"events": true, "mentions": true, "gkg": true, "gkg_gcam": true,
	"source_files": true, "runs": true, "rejections": true,
}

// CountRows returns the number of rows in one of the schema's tables.
func CountRows(db DBExecutor, table string) (int, error) {
	if !countable[table] {
		return 0, fmt.Errorf("unknown table %q", table)
	}
	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM ` + table).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// TableForKind names the table a record kind is stored in.
func TableForKind(k record.Kind) string {
	switch k {
	case record.KindEvent:
		return "events"
	case record.KindMention:
		return "mentions"
	case record.KindGKG:
		return "gkg"
	}
	return ""
}

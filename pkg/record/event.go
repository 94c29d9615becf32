package record

import (
	"time"

	"github.com/newsnet-africa/gdelt-fetcher-sub001/pkg/field"
	"github.com/newsnet-africa/gdelt-fetcher-sub001/pkg/taxonomy"
)

// Event is one row of a GDELT 2.0 events export.
type Event struct {
	GlobalEventID int64                `json:"global_event_id"`
	Day           time.Time            `json:"day"`
	MonthYear     field.Opt[int64]     `json:"month_year"`
	Year          field.Opt[int64]     `json:"year"`
	FractionDate  field.Opt[float64]   `json:"fraction_date"`
	Actor1        *Actor               `json:"actor1,omitempty"`
	Actor2        *Actor               `json:"actor2,omitempty"`
	IsRootEvent   field.Opt[bool]      `json:"is_root_event"`
	Action        taxonomy.EventAction `json:"action"`
	BaseCode      string               `json:"event_base_code,omitempty"`
	RootCode      string               `json:"event_root_code,omitempty"`
	QuadClass     taxonomy.QuadClass   `json:"quad_class"`
	Goldstein     field.Opt[float64]   `json:"goldstein_scale"`
	NumMentions   field.Opt[int64]     `json:"num_mentions"`
	NumSources    field.Opt[int64]     `json:"num_sources"`
	NumArticles   field.Opt[int64]     `json:"num_articles"`
	AvgTone       field.Opt[float64]   `json:"avg_tone"`
	Actor1Geo     *Location            `json:"actor1_geo,omitempty"`
	Actor2Geo     *Location            `json:"actor2_geo,omitempty"`
	ActionGeo     *Location            `json:"action_geo,omitempty"`
	DateAdded     time.Time            `json:"date_added"`
	SourceURL     string               `json:"source_url,omitempty"`
}

// Actor is one participant of an event.
type Actor struct {
	Code       taxonomy.ActorCode  `json:"code"`
	Name       string              `json:"name,omitempty"`
	Country    taxonomy.Country    `json:"country,omitempty"`
	KnownGroup taxonomy.KnownGroup `json:"known_group,omitempty"`
	Ethnicity  taxonomy.Ethnicity  `json:"ethnicity,omitempty"`
	Religion1  taxonomy.Religion   `json:"religion1,omitempty"`
	Religion2  taxonomy.Religion   `json:"religion2,omitempty"`
	Types      [3]taxonomy.Role    `json:"types"`
}

// Roles returns the specified type codes in column order.
func (a *Actor) Roles() []taxonomy.Role {
	var out []taxonomy.Role
	for _, r := range a.Types {
		if r != "" {
			out = append(out, r)
		}
	}
	return out
}

// Location is a geographic match. Point is absent when the row carried no
// coordinates.
type Location struct {
	Type        taxonomy.GeoType       `json:"type"`
	FullName    string                 `json:"full_name,omitempty"`
	CountryCode string                 `json:"country_code,omitempty"`
	ADM1Code    string                 `json:"adm1_code,omitempty"`
	ADM2Code    string                 `json:"adm2_code,omitempty"`
	Point       field.Opt[field.Point] `json:"point"`
	FeatureID   string                 `json:"feature_id,omitempty"`
}

type actorCells struct {
	present bool
	Actor
}

type geoCells struct {
	typeSet bool
	latRaw  string
	latBad  bool
	Location
}

// eventRow is the builder the event columns decode into.
type eventRow struct {
	Event
	actors [2]actorCells
	geos   [3]geoCells
}

func actorColumns(prefix string, n int) []column[eventRow] {
	a := func(r *eventRow) *actorCells { return &r.actors[n] }
	return []column[eventRow]{
		{name: prefix + "Code", decode: func(raw string, r *eventRow) error {
			c, err := actorCode(raw)
			if err != nil || !c.Valid {
				return err
			}
			a(r).present = true
			a(r).Code = taxonomy.DecodeActorCode(c.Value)
			return nil
		}},
		{name: prefix + "Name", decode: set(text, func(r *eventRow, v string) { a(r).Name = v })},
		{name: prefix + "CountryCode", decode: code3(func(r *eventRow, v string) { a(r).Country = taxonomy.ParseCountry(v) })},
		{name: prefix + "KnownGroupCode", decode: code3(func(r *eventRow, v string) { a(r).KnownGroup = taxonomy.ParseKnownGroup(v) })},
		{name: prefix + "EthnicCode", decode: func(raw string, r *eventRow) error {
			c, err := field.CodeRange(raw, 3, 16)
			if err != nil {
				return err
			}
			a(r).Ethnicity = taxonomy.ParseEthnicity(c.Value)
			return nil
		}},
		{name: prefix + "Religion1Code", decode: code3(func(r *eventRow, v string) { a(r).Religion1 = taxonomy.ParseReligion(v) })},
		{name: prefix + "Religion2Code", decode: code3(func(r *eventRow, v string) { a(r).Religion2 = taxonomy.ParseReligion(v) })},
		{name: prefix + "Type1Code", decode: code3(func(r *eventRow, v string) { a(r).Types[0] = taxonomy.ParseRole(v) })},
		{name: prefix + "Type2Code", decode: code3(func(r *eventRow, v string) { a(r).Types[1] = taxonomy.ParseRole(v) })},
		{name: prefix + "Type3Code", decode: code3(func(r *eventRow, v string) { a(r).Types[2] = taxonomy.ParseRole(v) })},
	}
}

// actorCode accepts 3 to 15 bytes in whole three-byte segments.
func actorCode(raw string) (field.Opt[string], error) {
	c, err := field.CodeRange(raw, 3, 15)
	if err != nil || !c.Valid {
		return c, err
	}
	if len(c.Value)%3 != 0 {
		return field.None[string](), field.Malformedf(raw, "want a multiple of 3 bytes, got %d", len(c.Value))
	}
	return c, nil
}

func code3(store func(*eventRow, string)) func(string, *eventRow) error {
	return func(raw string, r *eventRow) error {
		c, err := field.Code(raw, 3)
		if err != nil {
			return err
		}
		if c.Valid {
			store(r, c.Value)
		}
		return nil
	}
}

func geoColumns(prefix string, n int) []column[eventRow] {
	g := func(r *eventRow) *geoCells { return &r.geos[n] }
	return []column[eventRow]{
		{name: prefix + "Type", decode: func(raw string, r *eventRow) error {
			d, err := field.Digits(raw, 1, 1)
			if err != nil || !d.Valid {
				return err
			}
			g(r).typeSet = true
			g(r).Type = taxonomy.ParseGeoType(d.Value)
			return nil
		}},
		{name: prefix + "FullName", decode: set(text, func(r *eventRow, v string) { g(r).FullName = v })},
		{name: prefix + "CountryCode", decode: func(raw string, r *eventRow) error {
			c, err := field.Code(raw, 2)
			if err != nil {
				return err
			}
			g(r).CountryCode = c.Value
			return nil
		}},
		{name: prefix + "ADM1Code", decode: set(text, func(r *eventRow, v string) { g(r).ADM1Code = v })},
		{name: prefix + "ADM2Code", decode: set(text, func(r *eventRow, v string) { g(r).ADM2Code = v })},
		{name: prefix + "Lat", decode: func(raw string, r *eventRow) error {
			if _, err := field.Float(raw); err != nil {
				g(r).latBad = true
				return err
			}
			g(r).latRaw = raw
			return nil
		}},
		{name: prefix + "Long", decode: func(raw string, r *eventRow) error {
			if g(r).latBad {
				return nil
			}
			p, err := field.Coordinate(g(r).latRaw, raw)
			if err != nil {
				return err
			}
			g(r).Point = p
			return nil
		}},
		{name: prefix + "FeatureID", decode: set(text, func(r *eventRow, v string) { g(r).FeatureID = v })},
	}
}

var eventTable = newEventTable()

func newEventTable() *table[eventRow] {
	cols := []column[eventRow]{
		{name: "GLOBALEVENTID", required: true, decode: set(field.RequiredInt, func(r *eventRow, v int64) { r.GlobalEventID = v })},
		{name: "SQLDATE", required: true, decode: set(field.RequiredDate, func(r *eventRow, v time.Time) { r.Day = v })},
		{name: "MonthYear", decode: set(field.Int, func(r *eventRow, v field.Opt[int64]) { r.MonthYear = v })},
		{name: "Year", decode: set(field.Int, func(r *eventRow, v field.Opt[int64]) { r.Year = v })},
		{name: "FractionDate", decode: set(field.Float, func(r *eventRow, v field.Opt[float64]) { r.FractionDate = v })},
	}
	cols = append(cols, actorColumns("Actor1", 0)...)
	cols = append(cols, actorColumns("Actor2", 1)...)
	cols = append(cols,
		column[eventRow]{name: "IsRootEvent", decode: set(field.Bool, func(r *eventRow, v field.Opt[bool]) { r.IsRootEvent = v })},
		column[eventRow]{name: "EventCode", required: true, decode: set(eventCode, func(r *eventRow, v string) {
			r.Action = taxonomy.DecodeEventCode(v)
		})},
		column[eventRow]{name: "EventBaseCode", decode: digits(2, 3, func(r *eventRow, v string) { r.BaseCode = v })},
		column[eventRow]{name: "EventRootCode", decode: digits(2, 2, func(r *eventRow, v string) { r.RootCode = v })},
		column[eventRow]{name: "QuadClass", decode: digits(1, 1, func(r *eventRow, v string) { r.QuadClass = taxonomy.ParseQuadClass(v) })},
		column[eventRow]{name: "GoldsteinScale", decode: set(field.Float, func(r *eventRow, v field.Opt[float64]) { r.Goldstein = v })},
		column[eventRow]{name: "NumMentions", decode: set(field.Int, func(r *eventRow, v field.Opt[int64]) { r.NumMentions = v })},
		column[eventRow]{name: "NumSources", decode: set(field.Int, func(r *eventRow, v field.Opt[int64]) { r.NumSources = v })},
		column[eventRow]{name: "NumArticles", decode: set(field.Int, func(r *eventRow, v field.Opt[int64]) { r.NumArticles = v })},
		column[eventRow]{name: "AvgTone", decode: set(field.Float, func(r *eventRow, v field.Opt[float64]) { r.AvgTone = v })},
	)
	cols = append(cols, geoColumns("Actor1Geo_", 0)...)
	cols = append(cols, geoColumns("Actor2Geo_", 1)...)
	cols = append(cols, geoColumns("ActionGeo_", 2)...)
	cols = append(cols,
		column[eventRow]{name: "DATEADDED", required: true, decode: set(field.RequiredDateTime, func(r *eventRow, v time.Time) { r.DateAdded = v })},
		column[eventRow]{name: "SOURCEURL", decode: set(text, func(r *eventRow, v string) { r.SourceURL = v })},
	)
	return &table[eventRow]{kind: KindEvent, key: 0, min: len(cols), cols: cols}
}

func eventCode(raw string) (string, error) { return field.RequiredDigits(raw, 2, 4) }

func digits(min, max int, store func(*eventRow, string)) func(string, *eventRow) error {
	return func(raw string, r *eventRow) error {
		d, err := field.Digits(raw, min, max)
		if err != nil {
			return err
		}
		if d.Valid {
			store(r, d.Value)
		}
		return nil
	}
}

// DecodeEvent assembles one events row of exactly 61 columns.
func DecodeEvent(fields []string) (*Event, Report, error) {
	var row eventRow
	var rep Report
	if err := eventTable.assemble(fields, &row, &rep); err != nil {
		return nil, rep, err
	}
	ev := row.Event
	ev.Actor1 = row.actors[0].actor()
	ev.Actor2 = row.actors[1].actor()
	ev.Actor1Geo = row.geos[0].location()
	ev.Actor2Geo = row.geos[1].location()
	ev.ActionGeo = row.geos[2].location()
	return &ev, rep, nil
}

func (c *actorCells) actor() *Actor {
	if !c.present {
		return nil
	}
	a := c.Actor
	return &a
}

func (c *geoCells) location() *Location {
	if !c.typeSet && c.FullName == "" {
		return nil
	}
	l := c.Location
	return &l
}

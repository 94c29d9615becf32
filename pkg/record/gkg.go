package record

import (
	"strconv"
	"strings"
	"time"

	"github.com/newsnet-africa/gdelt-fetcher-sub001/pkg/enrich"
	"github.com/newsnet-africa/gdelt-fetcher-sub001/pkg/field"
	"github.com/newsnet-africa/gdelt-fetcher-sub001/pkg/taxonomy"
)

// Lookup resolves GCAM variables to codebook entries.
type Lookup = enrich.Lookup

// RecordID is a GKG record id: the 15-minute update it was published in, a
// sequence number inside that update, and whether it came from the
// translated stream.
type RecordID struct {
	Date       time.Time `json:"date"`
	Sequence   int64     `json:"sequence"`
	Translated bool      `json:"translated"`
}

// ParseRecordID decodes "YYYYMMDDHHMMSS-N" or "YYYYMMDDHHMMSS-TN".
func ParseRecordID(raw string) (RecordID, error) {
	s, err := field.RequiredText(raw)
	if err != nil {
		return RecordID{}, err
	}
	date, seq, ok := strings.Cut(s, "-")
	if !ok {
		return RecordID{}, field.Malformedf(raw, "no '-' separator")
	}
	t, err := field.RequiredDateTime(date)
	if err != nil {
		return RecordID{}, field.Malformedf(raw, "bad date part %q", date)
	}
	id := RecordID{Date: t}
	if rest, found := strings.CutPrefix(seq, "T"); found {
		id.Translated = true
		seq = rest
	}
	n, err := strconv.ParseInt(seq, 10, 64)
	if err != nil || n < 0 {
		return RecordID{}, field.Malformedf(raw, "bad sequence %q", seq)
	}
	id.Sequence = n
	return id, nil
}

func (id RecordID) String() string {
	if id.Date.IsZero() {
		return ""
	}
	t := ""
	if id.Translated {
		t = "T"
	}
	return id.Date.Format("20060102150405") + "-" + t + strconv.FormatInt(id.Sequence, 10)
}

// GKG is one row of a GDELT 2.1 Global Knowledge Graph file.
type GKG struct {
	RecordID          RecordID             `json:"record_id"`
	Date              time.Time            `json:"date"`
	SourceCollection  taxonomy.SourceType  `json:"source_collection"`
	SourceCommonName  string               `json:"source_common_name,omitempty"`
	DocumentID        string               `json:"document_identifier"`
	V1Counts          []Count              `json:"v1_counts,omitempty"`
	V21Counts         []Count              `json:"v21_counts,omitempty"`
	V1Themes          []string             `json:"v1_themes,omitempty"`
	Themes            []ThemeMention       `json:"themes,omitempty"`
	V1Locations       []GKGLocation        `json:"v1_locations,omitempty"`
	Locations         []GKGLocation        `json:"locations,omitempty"`
	V1Persons         []string             `json:"v1_persons,omitempty"`
	Persons           []NameOffset         `json:"persons,omitempty"`
	V1Organizations   []string             `json:"v1_organizations,omitempty"`
	Organizations     []NameOffset         `json:"organizations,omitempty"`
	Tone              *Tone                `json:"tone,omitempty"`
	Dates             []EnhancedDate       `json:"dates,omitempty"`
	GCAMRaw           string               `json:"-"`
	GCAM              []enrich.Measurement `json:"gcam,omitempty"`
	SharingImage      string               `json:"sharing_image,omitempty"`
	RelatedImages     []string             `json:"related_images,omitempty"`
	SocialImageEmbeds []string             `json:"social_image_embeds,omitempty"`
	SocialVideoEmbeds []string             `json:"social_video_embeds,omitempty"`
	Quotations        []Quotation          `json:"quotations,omitempty"`
	AllNames          []NameOffset         `json:"all_names,omitempty"`
	Amounts           []Amount             `json:"amounts,omitempty"`
	Translation       *TranslationInfo     `json:"translation,omitempty"`
	Extras            string               `json:"extras,omitempty"`
}

type gkgRow struct {
	GKG
	skipped int
}

// list adapts an (items, skipped) parser into a column decoder.
func list[T any](parse func(string) ([]T, int), store func(*gkgRow, []T)) func(string, *gkgRow) error {
	return func(raw string, r *gkgRow) error {
		items, skipped := parse(raw)
		r.skipped += skipped
		store(r, items)
		return nil
	}
}

func plain(store func(*gkgRow, []string)) func(string, *gkgRow) error {
	return func(raw string, r *gkgRow) error {
		store(r, ParseList(raw))
		return nil
	}
}

var gkgTable = newGKGTable()

func newGKGTable() *table[gkgRow] {
	cols := []column[gkgRow]{
		{name: "GKGRECORDID", required: true, decode: set(ParseRecordID, func(r *gkgRow, v RecordID) { r.RecordID = v })},
		{name: "V2.1DATE", required: true, decode: set(field.RequiredDateTime, func(r *gkgRow, v time.Time) { r.Date = v })},
		{name: "V2SourceCollectionIdentifier", decode: func(raw string, r *gkgRow) error {
			d, err := field.Digits(raw, 1, 1)
			if err != nil {
				return err
			}
			if d.Valid {
				r.SourceCollection = taxonomy.ParseSourceType(d.Value)
			}
			return nil
		}},
		{name: "V2SourceCommonName", decode: set(text, func(r *gkgRow, v string) { r.SourceCommonName = v })},
		{name: "V2DocumentIdentifier", required: true, decode: set(field.RequiredText, func(r *gkgRow, v string) { r.DocumentID = v })},
		{name: "V1Counts", decode: list(ParseCounts, func(r *gkgRow, v []Count) { r.V1Counts = v })},
		{name: "V2.1Counts", decode: list(ParseCounts, func(r *gkgRow, v []Count) { r.V21Counts = v })},
		{name: "V1Themes", decode: plain(func(r *gkgRow, v []string) { r.V1Themes = v })},
		{name: "V2EnhancedThemes", decode: list(ParseThemes, func(r *gkgRow, v []ThemeMention) { r.Themes = v })},
		{name: "V1Locations", decode: list(ParseV1Locations, func(r *gkgRow, v []GKGLocation) { r.V1Locations = v })},
		{name: "V2EnhancedLocations", decode: list(ParseV2Locations, func(r *gkgRow, v []GKGLocation) { r.Locations = v })},
		{name: "V1Persons", decode: plain(func(r *gkgRow, v []string) { r.V1Persons = v })},
		{name: "V2EnhancedPersons", decode: list(ParseNameOffsets, func(r *gkgRow, v []NameOffset) { r.Persons = v })},
		{name: "V1Organizations", decode: plain(func(r *gkgRow, v []string) { r.V1Organizations = v })},
		{name: "V2EnhancedOrganizations", decode: list(ParseNameOffsets, func(r *gkgRow, v []NameOffset) { r.Organizations = v })},
		{name: "V1.5Tone", decode: set(ParseTone, func(r *gkgRow, v *Tone) { r.Tone = v })},
		{name: "V2.1EnhancedDates", decode: list(ParseEnhancedDates, func(r *gkgRow, v []EnhancedDate) { r.Dates = v })},
		{name: "V2GCAM", decode: set(text, func(r *gkgRow, v string) { r.GCAMRaw = v })},
		{name: "V2.1SharingImage", decode: set(text, func(r *gkgRow, v string) { r.SharingImage = v })},
		{name: "V2.1RelatedImages", decode: plain(func(r *gkgRow, v []string) { r.RelatedImages = v })},
		{name: "V2.1SocialImageEmbeds", decode: plain(func(r *gkgRow, v []string) { r.SocialImageEmbeds = v })},
		{name: "V2.1SocialVideoEmbeds", decode: plain(func(r *gkgRow, v []string) { r.SocialVideoEmbeds = v })},
		{name: "V2.1Quotations", decode: list(ParseQuotations, func(r *gkgRow, v []Quotation) { r.Quotations = v })},
		{name: "V2.1AllNames", decode: list(ParseNameOffsets, func(r *gkgRow, v []NameOffset) { r.AllNames = v })},
		{name: "V2.1Amounts", decode: list(ParseAmounts, func(r *gkgRow, v []Amount) { r.Amounts = v })},
		{name: "V2.1TranslationInfo", decode: set(parseTranslationInfo, func(r *gkgRow, v *TranslationInfo) { r.Translation = v })},
		{name: "V2ExtrasXML", decode: func(raw string, r *gkgRow) error {
			r.Extras = raw
			return nil
		}},
	}
	// Short rows that end after V1.5Tone are accepted.
	return &table[gkgRow]{kind: KindGKG, key: 0, min: 16, cols: cols}
}

// DecodeGKG assembles one GKG row of 16 to 27 columns and enriches its GCAM
// column through lookup, which may be nil.
func DecodeGKG(fields []string, lookup Lookup) (*GKG, Report, error) {
	var row gkgRow
	var rep Report
	if err := gkgTable.assemble(fields, &row, &rep); err != nil {
		return nil, rep, err
	}
	g := row.GKG
	rep.Skipped = row.skipped
	if g.GCAMRaw != "" {
		res := enrich.Enrich(lookup, g.GCAMRaw)
		g.GCAM = res.Measurements
		rep.GCAMHits = res.Hits
		rep.GCAMMisses = res.Misses
		rep.GCAMSkipped = res.Skipped
	}
	return &g, rep, nil
}

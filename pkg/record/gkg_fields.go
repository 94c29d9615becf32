package record

import (
	"strconv"
	"strings"

	"github.com/newsnet-africa/gdelt-fetcher-sub001/pkg/field"
	"github.com/newsnet-africa/gdelt-fetcher-sub001/pkg/taxonomy"
)

// The parsers in this file handle the list-valued GKG columns. A malformed
// item is dropped and counted; it never fails the column.

// Count is one V1/V2.1 count: a number of objects of some type, optionally
// tied to a location.
type Count struct {
	Type       string           `json:"type"`
	Count      int64            `json:"count"`
	ObjectType string           `json:"object_type,omitempty"`
	Location   *GKGLocation     `json:"location,omitempty"`
	Offset     field.Opt[int64] `json:"offset"`
}

// GKGLocation is a location mention. V1 locations have no ADM2 code or
// offset.
type GKGLocation struct {
	Location
	Offset field.Opt[int64] `json:"offset"`
}

// ThemeMention is a V2 enhanced theme with its character offset.
type ThemeMention struct {
	Theme  string `json:"theme"`
	Offset int64  `json:"offset"`
}

// NameOffset is a name with its character offset, used for persons,
// organizations and all-names.
type NameOffset struct {
	Name   string `json:"name"`
	Offset int64  `json:"offset"`
}

// Tone is the V1.5 tone block.
type Tone struct {
	Tone             float64          `json:"tone"`
	Positive         float64          `json:"positive"`
	Negative         float64          `json:"negative"`
	Polarity         float64          `json:"polarity"`
	ActivityDensity  float64          `json:"activity_density"`
	SelfGroupDensity float64          `json:"self_group_density"`
	WordCount        field.Opt[int64] `json:"word_count"`
}

// EnhancedDate is a date found in the document text. Resolution is 1 for a
// year only, 2 for month and day without a year, 3 for a full date and 4 for
// month and year.
type EnhancedDate struct {
	Resolution int   `json:"resolution"`
	Month      int   `json:"month"`
	Day        int   `json:"day"`
	Year       int   `json:"year"`
	Offset     int64 `json:"offset"`
}

// Quotation is a quoted statement found in the document.
type Quotation struct {
	Offset int64  `json:"offset"`
	Length int64  `json:"length"`
	Verb   string `json:"verb,omitempty"`
	Quote  string `json:"quote"`
}

// Amount is a numeric amount of some object.
type Amount struct {
	Amount float64 `json:"amount"`
	Object string  `json:"object"`
	Offset int64   `json:"offset"`
}

// TranslationInfo says which language a translated document came from and
// which engine translated it.
type TranslationInfo struct {
	SourceLanguage string `json:"source_language"`
	Engine         string `json:"engine,omitempty"`
}

func splitItems(raw string, sep string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, sep)
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseInt(s string) (int64, bool) {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	return v, err == nil
}

func parseFloat(s string) (float64, bool) {
	v, err := field.Float(s)
	return v.Value, err == nil && v.Valid
}

// ParseCounts decodes "type#count#object#loctype#name#country#adm1#lat#long#featureid[#offset]"
// items separated by ';'.
func ParseCounts(raw string) (out []Count, skipped int) {
	for _, item := range splitItems(raw, ";") {
		f := strings.Split(item, "#")
		if len(f) < 10 || len(f) > 11 || strings.TrimSpace(f[0]) == "" {
			skipped++
			continue
		}
		n, ok := parseInt(f[1])
		if !ok {
			skipped++
			continue
		}
		c := Count{Type: strings.TrimSpace(f[0]), Count: n, ObjectType: strings.TrimSpace(f[2])}
		loc, ok := v1Location(f[3:10])
		if !ok {
			skipped++
			continue
		}
		c.Location = loc
		if len(f) == 11 {
			if off, ok := parseInt(f[10]); ok {
				c.Offset = field.Some(off)
			}
		}
		out = append(out, c)
	}
	return out, skipped
}

// v1Location decodes type#name#country#adm1#lat#long#featureid. An all-empty
// location is nil.
func v1Location(f []string) (*GKGLocation, bool) {
	if allBlank(f) {
		return nil, true
	}
	p, err := field.Coordinate(f[4], f[5])
	if err != nil {
		return nil, false
	}
	return &GKGLocation{Location: Location{
		Type:        taxonomy.ParseGeoType(f[0]),
		FullName:    strings.TrimSpace(f[1]),
		CountryCode: strings.TrimSpace(f[2]),
		ADM1Code:    strings.TrimSpace(f[3]),
		Point:       p,
		FeatureID:   strings.TrimSpace(f[6]),
	}}, true
}

func allBlank(f []string) bool {
	for _, s := range f {
		if strings.TrimSpace(s) != "" {
			return false
		}
	}
	return true
}

// ParseV1Locations decodes type#name#country#adm1#lat#long#featureid items.
func ParseV1Locations(raw string) (out []GKGLocation, skipped int) {
	for _, item := range splitItems(raw, ";") {
		f := strings.Split(item, "#")
		if len(f) != 7 {
			skipped++
			continue
		}
		loc, ok := v1Location(f)
		if !ok || loc == nil {
			skipped++
			continue
		}
		out = append(out, *loc)
	}
	return out, skipped
}

// ParseV2Locations decodes type#name#country#adm1#adm2#lat#long#featureid#offset
// items.
func ParseV2Locations(raw string) (out []GKGLocation, skipped int) {
	for _, item := range splitItems(raw, ";") {
		f := strings.Split(item, "#")
		if len(f) != 9 {
			skipped++
			continue
		}
		p, err := field.Coordinate(f[5], f[6])
		if err != nil {
			skipped++
			continue
		}
		loc := GKGLocation{Location: Location{
			Type:        taxonomy.ParseGeoType(f[0]),
			FullName:    strings.TrimSpace(f[1]),
			CountryCode: strings.TrimSpace(f[2]),
			ADM1Code:    strings.TrimSpace(f[3]),
			ADM2Code:    strings.TrimSpace(f[4]),
			Point:       p,
			FeatureID:   strings.TrimSpace(f[7]),
		}}
		if off, ok := parseInt(f[8]); ok {
			loc.Offset = field.Some(off)
		}
		out = append(out, loc)
	}
	return out, skipped
}

// ParseList decodes a ';'-separated list such as V1 themes or persons.
func ParseList(raw string) []string { return splitItems(raw, ";") }

// ParseThemes decodes V2 "theme,offset" items.
func ParseThemes(raw string) (out []ThemeMention, skipped int) {
	for _, n := range parseNameOffsets(raw, &skipped) {
		out = append(out, ThemeMention{Theme: n.Name, Offset: n.Offset})
	}
	return out, skipped
}

// ParseNameOffsets decodes "name,offset" items. The split is on the last
// comma, since names may contain commas.
func ParseNameOffsets(raw string) (out []NameOffset, skipped int) {
	out = parseNameOffsets(raw, &skipped)
	return out, skipped
}

func parseNameOffsets(raw string, skipped *int) []NameOffset {
	var out []NameOffset
	for _, item := range splitItems(raw, ";") {
		i := strings.LastIndexByte(item, ',')
		if i <= 0 {
			*skipped++
			continue
		}
		off, ok := parseInt(item[i+1:])
		name := strings.TrimSpace(item[:i])
		if !ok || name == "" {
			*skipped++
			continue
		}
		out = append(out, NameOffset{Name: name, Offset: off})
	}
	return out
}

// ParseTone decodes the seven comma-separated tone values. The word count
// is absent in some older rows.
func ParseTone(raw string) (*Tone, error) {
	if field.IsEmpty(raw) {
		return nil, nil
	}
	f := strings.Split(strings.TrimSpace(raw), ",")
	if len(f) < 6 || len(f) > 7 {
		return nil, field.Malformedf(raw, "want 6 or 7 tone values, got %d", len(f))
	}
	var vals [6]float64
	for i := range vals {
		v, ok := parseFloat(f[i])
		if !ok {
			return nil, field.Malformedf(raw, "tone value %d is not a number", i)
		}
		vals[i] = v
	}
	t := &Tone{
		Tone:             vals[0],
		Positive:         vals[1],
		Negative:         vals[2],
		Polarity:         vals[3],
		ActivityDensity:  vals[4],
		SelfGroupDensity: vals[5],
	}
	if len(f) == 7 {
		wc, err := field.Int(f[6])
		if err != nil {
			return nil, field.Malformedf(raw, "word count is not an integer")
		}
		t.WordCount = wc
	}
	return t, nil
}

// ParseEnhancedDates decodes "resolution#month#day#year#offset" items.
func ParseEnhancedDates(raw string) (out []EnhancedDate, skipped int) {
	for _, item := range splitItems(raw, ";") {
		f := strings.Split(item, "#")
		if len(f) != 5 {
			skipped++
			continue
		}
		var n [5]int64
		ok := true
		for i := range n {
			if n[i], ok = parseInt(f[i]); !ok {
				break
			}
		}
		if !ok || n[0] < 1 || n[0] > 4 || n[1] < 0 || n[1] > 12 || n[2] < 0 || n[2] > 31 {
			skipped++
			continue
		}
		out = append(out, EnhancedDate{
			Resolution: int(n[0]),
			Month:      int(n[1]),
			Day:        int(n[2]),
			Year:       int(n[3]),
			Offset:     n[4],
		})
	}
	return out, skipped
}

// ParseQuotations decodes '#'-separated "offset|length|verb|quote" blocks.
func ParseQuotations(raw string) (out []Quotation, skipped int) {
	for _, item := range splitItems(raw, "#") {
		f := strings.SplitN(item, "|", 4)
		if len(f) != 4 {
			skipped++
			continue
		}
		off, ok1 := parseInt(f[0])
		length, ok2 := parseInt(f[1])
		quote := strings.TrimSpace(f[3])
		if !ok1 || !ok2 || quote == "" {
			skipped++
			continue
		}
		out = append(out, Quotation{Offset: off, Length: length, Verb: strings.TrimSpace(f[2]), Quote: quote})
	}
	return out, skipped
}

// ParseAmounts decodes "amount,object,offset" items.
func ParseAmounts(raw string) (out []Amount, skipped int) {
	for _, item := range splitItems(raw, ";") {
		first := strings.IndexByte(item, ',')
		last := strings.LastIndexByte(item, ',')
		if first < 0 || first == last {
			skipped++
			continue
		}
		amt, ok1 := parseFloat(item[:first])
		off, ok2 := parseInt(item[last+1:])
		obj := strings.TrimSpace(item[first+1 : last])
		if !ok1 || !ok2 || obj == "" {
			skipped++
			continue
		}
		out = append(out, Amount{Amount: amt, Object: obj, Offset: off})
	}
	return out, skipped
}

// parseTranslationInfo decodes "srclc:fra;eng:GT-FRA 1.0". Empty is nil.
func parseTranslationInfo(raw string) (*TranslationInfo, error) {
	if field.IsEmpty(raw) {
		return nil, nil
	}
	var ti TranslationInfo
	for _, part := range splitItems(raw, ";") {
		k, v, ok := strings.Cut(part, ":")
		if !ok {
			continue
		}
		switch strings.ToLower(strings.TrimSpace(k)) {
		case "srclc":
			ti.SourceLanguage = strings.TrimSpace(v)
		case "eng":
			ti.Engine = strings.TrimSpace(v)
		}
	}
	if ti.SourceLanguage == "" {
		return nil, field.Malformedf(raw, "no srclc entry")
	}
	return &ti, nil
}

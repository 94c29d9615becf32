// Package codebook loads the GCAM master codebook into an immutable,
// case-insensitive index.
//
// A *Codebook is fully built by Load before it is returned and is never
// mutated afterwards, so it may be shared by any number of goroutines.
package codebook

import (
	"bufio"
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
)

//go:embed data/gcam_codebook.tsv
var embedded []byte

// ErrLoadFailure is returned when the codebook source is absent, empty or
// has the wrong header. Individual bad rows never cause it.
var ErrLoadFailure = errors.New("codebook load failure")

// Header lists the required columns, in order.
var Header = []string{
	"Variable",
	"DictionaryID",
	"DimensionID",
	"Type",
	"LanguageCode",
	"DictionaryHumanName",
	"DimensionHumanName",
	"DictionaryCitation",
}

const maxLine = 1 << 20

// Codebook is a read-only GCAM variable index.
type Codebook struct {
	entries  []*Entry
	byKey    map[string]*Entry
	byDictID map[uint32][]*Entry
	skipped  int
}

// Default loads the codebook compiled into the binary.
func Default() (*Codebook, error) {
	return Load(bytes.NewReader(embedded))
}

// Load parses a tab-separated codebook with a header row.
func Load(r io.Reader) (*Codebook, error) {
	if r == nil {
		return nil, fmt.Errorf("%w: no source", ErrLoadFailure)
	}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLine)

	cb := &Codebook{
		byKey:    make(map[string]*Entry),
		byDictID: make(map[uint32][]*Entry),
	}
	sawHeader := false
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		if !sawHeader {
			if err := checkHeader(fields); err != nil {
				return nil, err
			}
			sawHeader = true
			continue
		}
		e, ok := parseRow(fields)
		if !ok {
			cb.skipped++
			continue
		}
		cb.add(e)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadFailure, err)
	}
	if !sawHeader {
		return nil, fmt.Errorf("%w: empty source", ErrLoadFailure)
	}

	cb.entries = make([]*Entry, 0, len(cb.byKey))
	for _, e := range cb.byKey {
		cb.entries = append(cb.entries, e)
	}
	sort.Slice(cb.entries, func(i, j int) bool {
		return cb.entries[i].Variable < cb.entries[j].Variable
	})
	for _, list := range cb.byDictID {
		sort.Slice(list, func(i, j int) bool { return list[i].DimensionID < list[j].DimensionID })
	}
	return cb, nil
}

func checkHeader(fields []string) error {
	if len(fields) != len(Header) {
		return fmt.Errorf("%w: header has %d columns, want %d", ErrLoadFailure, len(fields), len(Header))
	}
	for i, want := range Header {
		if got := unquote(fields[i]); got != want {
			return fmt.Errorf("%w: header column %d is %q, want %q", ErrLoadFailure, i, got, want)
		}
	}
	return nil
}

func parseRow(fields []string) (*Entry, bool) {
	if len(fields) < len(Header) {
		return nil, false
	}
	variable := unquote(fields[0])
	if variable == "" {
		return nil, false
	}
	dictID, err := strconv.ParseUint(unquote(fields[1]), 10, 32)
	if err != nil {
		return nil, false
	}
	dimID, err := strconv.ParseUint(unquote(fields[2]), 10, 32)
	if err != nil {
		dimID = 0
	}
	return &Entry{
		Variable:        variable,
		DictionaryID:    uint32(dictID),
		DimensionID:     uint32(dimID),
		MeasurementType: MeasurementType(unquote(fields[3])),
		Language:        Language(unquote(fields[4])),
		Dictionary:      ParseDictionary(unquote(fields[5])),
		DimensionName:   unquote(fields[6]),
		Citation:        unquote(fields[7]),
	}, true
}

// add replaces any earlier entry with the same folded key.
func (cb *Codebook) add(e *Entry) {
	key := normalize(e.Variable)
	if old, ok := cb.byKey[key]; ok {
		list := cb.byDictID[old.DictionaryID]
		for i, x := range list {
			if x == old {
				list = append(list[:i], list[i+1:]...)
				break
			}
		}
		if len(list) == 0 {
			delete(cb.byDictID, old.DictionaryID)
		} else {
			cb.byDictID[old.DictionaryID] = list
		}
	}
	cb.byKey[key] = e
	cb.byDictID[e.DictionaryID] = append(cb.byDictID[e.DictionaryID], e)
}

func unquote(s string) string {
	return strings.Trim(strings.TrimSpace(s), `"`)
}

// normalize folds case. ASCII keys, which is every real GCAM variable, skip
// the Unicode folder.
func normalize(key string) string {
	key = strings.TrimSpace(key)
	for i := 0; i < len(key); i++ {
		if key[i] >= utf8.RuneSelf {
			return cases.Fold().String(key)
		}
	}
	return strings.ToLower(key)
}

// HasVariable reports whether key is in the codebook, ignoring case.
func (cb *Codebook) HasVariable(key string) bool {
	_, ok := cb.byKey[normalize(key)]
	return ok
}

// GetByVariable returns the entry for key, ignoring case.
func (cb *Codebook) GetByVariable(key string) (*Entry, bool) {
	e, ok := cb.byKey[normalize(key)]
	return e, ok
}

// GetByDictionaryID returns the entries of one dictionary ordered by
// dimension id. The slice must not be modified.
func (cb *Codebook) GetByDictionaryID(id uint32) []*Entry {
	return cb.byDictID[id]
}

// GetByDictionary returns the entries of the named dictionary ordered by
// variable.
func (cb *Codebook) GetByDictionary(d Dictionary) []*Entry {
	var out []*Entry
	for _, e := range cb.entries {
		if e.Dictionary == d {
			out = append(out, e)
		}
	}
	return out
}

// Entries returns every entry ordered by variable. The slice must not be
// modified.
func (cb *Codebook) Entries() []*Entry { return cb.entries }

// Count returns the number of distinct variables.
func (cb *Codebook) Count() int { return len(cb.entries) }

// Skipped returns the number of data rows that could not be parsed.
func (cb *Codebook) Skipped() int { return cb.skipped }

// ListVariables returns the variables in sorted order. A limit of zero or
// less returns all of them.
func (cb *Codebook) ListVariables(limit int) []string {
	n := len(cb.entries)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]string, n)
	for i := 0; i < n; i++ {
		out[i] = cb.entries[i].Variable
	}
	return out
}

// DictionaryStats counts entries per dictionary.
func (cb *Codebook) DictionaryStats() map[Dictionary]int {
	stats := make(map[Dictionary]int)
	for _, e := range cb.entries {
		stats[e.Dictionary]++
	}
	return stats
}

// DictionaryCount is one row of SortedStats.
type DictionaryCount struct {
	Dictionary Dictionary `json:"dictionary"`
	Count      int        `json:"count"`
}

// SortedStats returns DictionaryStats ordered by descending count, then name.
func (cb *Codebook) SortedStats() []DictionaryCount {
	stats := cb.DictionaryStats()
	out := make([]DictionaryCount, 0, len(stats))
	for d, n := range stats {
		out = append(out, DictionaryCount{Dictionary: d, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Dictionary < out[j].Dictionary
	})
	return out
}

// Diagnostics summarises the index for humans.
func (cb *Codebook) Diagnostics() string {
	var b strings.Builder
	fmt.Fprintf(&b, "GCAM codebook: %d variables, %d dictionary ids, %d rows skipped\n",
		cb.Count(), len(cb.byDictID), cb.skipped)
	for _, s := range cb.SortedStats() {
		fmt.Fprintf(&b, "  %6d  %s\n", s.Count, s.Dictionary)
	}
	return b.String()
}

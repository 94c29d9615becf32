// Package enrich joins GCAM measurement blobs against the codebook.
package enrich

import (
	"sort"
	"strconv"
	"strings"

	"github.com/newsnet-africa/gdelt-fetcher-sub001/pkg/codebook"
)

// Lookup is the read side of a codebook.
type Lookup interface {
	GetByVariable(key string) (*codebook.Entry, bool)
}

// Pair is one parsed key:value segment.
type Pair struct {
	Key   string
	Value float64
}

// Measurement is a GCAM value with its codebook entry, if any. A nil Entry
// is a lookup miss.
type Measurement struct {
	Key   string          `json:"key"`
	Value float64         `json:"value"`
	Entry *codebook.Entry `json:"entry,omitempty"`
}

// HasMetadata reports whether the key was found in the codebook.
func (m Measurement) HasMetadata() bool { return m.Entry != nil }

// Result is the outcome of enriching one blob.
type Result struct {
	Measurements []Measurement `json:"measurements"`
	Skipped      int           `json:"skipped"`
	Hits         int           `json:"hits"`
	Misses       int           `json:"misses"`
}

// Parse splits a GCAM blob on ',' or ';' and each segment on its first ':'.
// Segments without a separator, with an empty key or with a non-numeric
// value are skipped and counted. Empty segments are ignored.
func Parse(blob string) (pairs []Pair, skipped int) {
	segments := strings.FieldsFunc(blob, func(r rune) bool { return r == ',' || r == ';' })
	for _, seg := range segments {
		seg = strings.TrimSpace(seg)
		if seg == "" {
			continue
		}
		key, raw, ok := strings.Cut(seg, ":")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			skipped++
			continue
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			skipped++
			continue
		}
		pairs = append(pairs, Pair{Key: key, Value: v})
	}
	return pairs, skipped
}

// Enrich parses blob and looks up every key. A nil lookup treats every key
// as a miss.
func Enrich(lookup Lookup, blob string) Result {
	pairs, skipped := Parse(blob)
	res := Result{Skipped: skipped, Measurements: make([]Measurement, 0, len(pairs))}
	for _, p := range pairs {
		m := Measurement{Key: p.Key, Value: p.Value}
		if lookup != nil {
			if e, ok := lookup.GetByVariable(p.Key); ok {
				m.Entry = e
			}
		}
		if m.Entry != nil {
			res.Hits++
		} else {
			res.Misses++
		}
		res.Measurements = append(res.Measurements, m)
	}
	return res
}

// WithMetadata returns the measurements that hit the codebook.
func (r Result) WithMetadata() []Measurement {
	var out []Measurement
	for _, m := range r.Measurements {
		if m.Entry != nil {
			out = append(out, m)
		}
	}
	return out
}

// WithoutMetadata returns the lookup misses.
func (r Result) WithoutMetadata() []Measurement {
	var out []Measurement
	for _, m := range r.Measurements {
		if m.Entry == nil {
			out = append(out, m)
		}
	}
	return out
}

// ByDictionary groups hits by their dictionary, each group in blob order.
func (r Result) ByDictionary() map[codebook.Dictionary][]Measurement {
	out := make(map[codebook.Dictionary][]Measurement)
	for _, m := range r.Measurements {
		if m.Entry != nil {
			out[m.Entry.Dictionary] = append(out[m.Entry.Dictionary], m)
		}
	}
	return out
}

// Dictionaries returns the distinct dictionaries among the hits, sorted.
func (r Result) Dictionaries() []codebook.Dictionary {
	groups := r.ByDictionary()
	out := make([]codebook.Dictionary, 0, len(groups))
	for d := range groups {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// WordCount returns the "wc" measurement, which GCAM emits once per document.
func (r Result) WordCount() (float64, bool) {
	for _, m := range r.Measurements {
		if strings.EqualFold(m.Key, "wc") {
			return m.Value, true
		}
	}
	return 0, false
}

package enrich

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/newsnet-africa/gdelt-fetcher-sub001/pkg/codebook"
)

type mapLookup map[string]*codebook.Entry

func (m mapLookup) GetByVariable(key string) (*codebook.Entry, bool) {
	e, ok := m[key]
	return e, ok
}

func TestParseBlobExample(t *testing.T) {
	pairs, skipped := Parse("c1.1:3,wc:120,bad_segment,c1.2:x")
	assert.Equal(t, []Pair{{Key: "c1.1", Value: 3}, {Key: "wc", Value: 120}}, pairs)
	assert.Equal(t, 2, skipped)
}

func TestParseEdgeCases(t *testing.T) {
	pairs, skipped := Parse("")
	assert.Empty(t, pairs)
	assert.Zero(t, skipped)

	pairs, skipped = Parse(" wc:10 ;; c2.1 : 0.25 ,:5, v10.1:-1.5e-1,")
	assert.Equal(t, []Pair{{"wc", 10}, {"c2.1", 0.25}, {"v10.1", -0.15}}, pairs)
	assert.Equal(t, 1, skipped)

	// Only the first colon separates key from value.
	pairs, skipped = Parse("a:1:2")
	assert.Empty(t, pairs)
	assert.Equal(t, 1, skipped)
}

func TestEnrichHitAndMiss(t *testing.T) {
	cb, err := codebook.Default()
	require.NoError(t, err)

	res := Enrich(cb, "wc:120,c1.1:3,C12.1:2,zz9.9:4,nope")
	require.Len(t, res.Measurements, 4)
	assert.Equal(t, 3, res.Hits)
	assert.Equal(t, 1, res.Misses)
	assert.Equal(t, 1, res.Skipped)

	assert.True(t, res.Measurements[1].HasMetadata())
	assert.Equal(t, "AESTHETIC", res.Measurements[1].Entry.DimensionName)
	assert.True(t, res.Measurements[2].HasMetadata(), "lookup ignores case")
	assert.False(t, res.Measurements[3].HasMetadata())

	assert.Len(t, res.WithMetadata(), 3)
	miss := res.WithoutMetadata()
	require.Len(t, miss, 1)
	assert.Equal(t, "zz9.9", miss[0].Key)

	wc, ok := res.WordCount()
	assert.True(t, ok)
	assert.Equal(t, 120.0, wc)

	groups := res.ByDictionary()
	assert.Len(t, groups[codebook.ForestValues], 1)
	assert.Len(t, groups[codebook.SubjectivityLexicon], 1)
	assert.Len(t, res.Dictionaries(), 3)

	cov := res.Coverage()
	assert.Equal(t, Coverage{Total: 4, With: 3, Without: 1, Percentage: 75}, cov)
	assert.Contains(t, cov.String(), "3/4 (75.0%)")
}

func TestEnrichNilLookup(t *testing.T) {
	res := Enrich(nil, "c1.1:3")
	assert.Equal(t, 1, res.Misses)
	assert.Zero(t, res.Coverage().Percentage)
}

func TestEnrichDoesNotMutateLookup(t *testing.T) {
	e := &codebook.Entry{Variable: "c1.1", DimensionName: "AESTHETIC"}
	lk := mapLookup{"c1.1": e}
	res := Enrich(lk, "c1.1:3,c1.1:4")
	assert.Equal(t, 2, res.Hits)
	assert.Same(t, e, res.Measurements[0].Entry)
	assert.Len(t, lk, 1)
	assert.Equal(t, "AESTHETIC", e.DimensionName)
}

func TestCoverageAdd(t *testing.T) {
	var total Coverage
	total.Add(Coverage{Total: 2, With: 1, Without: 1})
	total.Add(Coverage{Total: 2, With: 2})
	assert.Equal(t, Coverage{Total: 4, With: 3, Without: 1, Percentage: 75}, total)
}

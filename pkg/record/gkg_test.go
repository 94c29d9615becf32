package record

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/newsnet-africa/gdelt-fetcher-sub001/pkg/codebook"
	"github.com/newsnet-africa/gdelt-fetcher-sub001/pkg/field"
	"github.com/newsnet-africa/gdelt-fetcher-sub001/pkg/taxonomy"
)

func TestParseRecordID(t *testing.T) {
	id, err := ParseRecordID("20250322180000-12")
	require.NoError(t, err)
	assert.Equal(t, RecordID{Date: time.Date(2025, 3, 22, 18, 0, 0, 0, time.UTC), Sequence: 12}, id)
	assert.Equal(t, "20250322180000-12", id.String())

	id, err = ParseRecordID("20250322180000-T3")
	require.NoError(t, err)
	assert.True(t, id.Translated)
	assert.EqualValues(t, 3, id.Sequence)
	assert.Equal(t, "20250322180000-T3", id.String())

	for _, bad := range []string{"20250322180000", "2025-1", "20250322180000-x", "20250322180000-T", "20250322180000--1"} {
		_, err := ParseRecordID(bad)
		assert.ErrorIs(t, err, field.ErrMalformed, bad)
	}
	_, err = ParseRecordID("")
	assert.ErrorIs(t, err, field.ErrMissing)

	assert.Empty(t, RecordID{}.String())
}

func gkgFields() []string {
	f := make([]string, 27)
	f[0] = "20250322180000-7"
	f[1] = "20250322180000"
	f[2] = "1"
	f[3] = "yakimaherald.com"
	f[4] = "https://www.yakimaherald.com/news/northwest/sample-story.html"
	f[5] = "KILL#12#soldiers#1#Syria#SY#SY#35#38#SY"
	f[6] = "KILL#12#soldiers#1#Syria#SY#SY#35#38#SY#140"
	f[7] = "TAX_FNCACT;ARMEDCONFLICT"
	f[8] = "TAX_FNCACT,1062;ARMEDCONFLICT,88"
	f[9] = "2#Washington, United States#US#USWA#47.3917#-121.571#WA"
	f[10] = "2#Washington, United States#US#USWA##47.3917#-121.571#WA#310"
	f[11] = "john smith"
	f[12] = "John Smith,412"
	f[13] = "united nations"
	f[14] = "United Nations,530"
	f[15] = "-3.7,1.2,4.9,6.1,22.5,0.4,870"
	f[16] = "3#3#22#2025#10"
	f[17] = "wc:870,c1.1:3,zz9.9:1,bad"
	f[18] = "https://www.yakimaherald.com/image.jpg"
	f[19] = "https://a.example/1.jpg;https://a.example/2.jpg"
	f[22] = "495|53|said|We will not stop"
	f[23] = "John Smith,412;United Nations,530"
	f[24] = "12,soldiers,130"
	f[26] = "<PAGE_TITLE>Sample</PAGE_TITLE>"
	return f
}

func TestDecodeGKG(t *testing.T) {
	cb, err := codebook.Default()
	require.NoError(t, err)

	g, rep, err := DecodeGKG(gkgFields(), cb)
	require.NoError(t, err)
	assert.Empty(t, rep.Optional)
	assert.Zero(t, rep.Skipped)
	assert.Equal(t, KindGKG, rep.Kind)

	assert.Equal(t, "20250322180000-7", g.RecordID.String())
	assert.Equal(t, taxonomy.SourceWeb, g.SourceCollection)
	assert.Equal(t, "yakimaherald.com", g.SourceCommonName)

	require.Len(t, g.V21Counts, 1)
	c := g.V21Counts[0]
	assert.Equal(t, "KILL", c.Type)
	assert.EqualValues(t, 12, c.Count)
	assert.Equal(t, field.Some[int64](140), c.Offset)
	require.NotNil(t, c.Location)
	assert.Equal(t, taxonomy.GeoCountry, c.Location.Type)
	assert.False(t, g.V1Counts[0].Offset.Valid)

	assert.Equal(t, []string{"TAX_FNCACT", "ARMEDCONFLICT"}, g.V1Themes)
	assert.Equal(t, []ThemeMention{{"TAX_FNCACT", 1062}, {"ARMEDCONFLICT", 88}}, g.Themes)

	require.Len(t, g.Locations, 1)
	assert.Equal(t, field.Some[int64](310), g.Locations[0].Offset)
	assert.Equal(t, g.V1Locations[0].Point, g.Locations[0].Point)

	assert.Equal(t, []NameOffset{{"John Smith", 412}}, g.Persons)
	assert.Equal(t, []NameOffset{{"United Nations", 530}}, g.Organizations)
	require.NotNil(t, g.Tone)
	assert.Equal(t, field.Some[int64](870), g.Tone.WordCount)
	assert.Equal(t, []EnhancedDate{{Resolution: 3, Month: 3, Day: 22, Year: 2025, Offset: 10}}, g.Dates)
	assert.Len(t, g.RelatedImages, 2)
	assert.Equal(t, []Quotation{{Offset: 495, Length: 53, Verb: "said", Quote: "We will not stop"}}, g.Quotations)
	assert.Len(t, g.AllNames, 2)
	assert.Equal(t, []Amount{{Amount: 12, Object: "soldiers", Offset: 130}}, g.Amounts)
	assert.Nil(t, g.Translation)
	assert.Equal(t, "<PAGE_TITLE>Sample</PAGE_TITLE>", g.Extras)

	require.Len(t, g.GCAM, 3)
	assert.Equal(t, 2, rep.GCAMHits)
	assert.Equal(t, 1, rep.GCAMMisses)
	assert.Equal(t, 1, rep.GCAMSkipped)
	assert.Equal(t, "AESTHETIC", g.GCAM[1].Entry.DimensionName)
	assert.Nil(t, g.GCAM[2].Entry, "a miss never rejects")
}

func TestDecodeGKGShortAndBroken(t *testing.T) {
	t.Run("sixteen columns", func(t *testing.T) {
		g, _, err := DecodeGKG(gkgFields()[:16], nil)
		require.NoError(t, err)
		assert.Empty(t, g.GCAM)
		assert.Empty(t, g.Extras)
	})

	t.Run("fifteen columns", func(t *testing.T) {
		_, _, err := DecodeGKG(gkgFields()[:15], nil)
		assert.ErrorIs(t, err, ErrFieldCount)
	})

	t.Run("nil lookup", func(t *testing.T) {
		_, rep, err := DecodeGKG(gkgFields(), nil)
		require.NoError(t, err)
		assert.Zero(t, rep.GCAMHits)
		assert.Equal(t, 3, rep.GCAMMisses)
	})

	t.Run("bad record id", func(t *testing.T) {
		f := gkgFields()
		f[0] = "yesterday-1"
		_, _, err := DecodeGKG(f, nil)
		assert.ErrorIs(t, err, ErrPrimaryKey)
	})

	t.Run("missing document", func(t *testing.T) {
		f := gkgFields()
		f[4] = ""
		_, _, err := DecodeGKG(f, nil)
		assert.ErrorIs(t, err, ErrRejected)
		assert.NotErrorIs(t, err, ErrPrimaryKey)
	})

	t.Run("skipped items", func(t *testing.T) {
		f := gkgFields()
		f[8] = "GOOD,1;BAD"
		f[24] = "x,y,1"
		f[15] = "not,a,tone"
		g, rep, err := DecodeGKG(f, nil)
		require.NoError(t, err)
		assert.Equal(t, 2, rep.Skipped)
		assert.Len(t, g.Themes, 1)
		assert.Nil(t, g.Tone)
		require.Len(t, rep.Optional, 1)
		assert.Equal(t, "V1.5Tone", rep.Optional[0].Name)
	})
}

func TestSubfieldParsers(t *testing.T) {
	t.Run("counts", func(t *testing.T) {
		out, skipped := ParseCounts("KILL#12#soldiers#1#Syria#SY#SY#35#38#SY;bad#x#y;AFFECT#3#people#######")
		assert.Equal(t, 1, skipped)
		require.Len(t, out, 2)
		assert.Nil(t, out[1].Location, "blank location")
		assert.Equal(t, "people", out[1].ObjectType)
	})

	t.Run("v1 locations", func(t *testing.T) {
		out, skipped := ParseV1Locations("1#Syria#SY#SY#35#38#SY;4#Paris, Paris, France#FR#FRA8#48.8667#2.33333#-1456928;broken")
		assert.Equal(t, 1, skipped)
		require.Len(t, out, 2)
		assert.Equal(t, taxonomy.GeoCity, out[1].Type)
		assert.Equal(t, field.Some(field.Point{Lat: 48.8667, Long: 2.33333}), out[1].Point)
		assert.False(t, out[1].Offset.Valid)
	})

	t.Run("v2 locations", func(t *testing.T) {
		out, skipped := ParseV2Locations("4#Paris, Paris, France#FR#FRA8#75056#48.8667#2.33333#-1456928#210;4#x#FR#FRA8#75056#north#2#1#5")
		assert.Equal(t, 1, skipped)
		require.Len(t, out, 1)
		assert.Equal(t, "75056", out[0].ADM2Code)
		assert.Equal(t, field.Some[int64](210), out[0].Offset)
	})

	t.Run("themes and names", func(t *testing.T) {
		themes, skipped := ParseThemes("TAX_FNCACT_PRESIDENT,1062;ARMEDCONFLICT,x;NO_OFFSET")
		assert.Equal(t, []ThemeMention{{"TAX_FNCACT_PRESIDENT", 1062}}, themes)
		assert.Equal(t, 2, skipped)

		names, skipped := ParseNameOffsets("Smith, John,55;,3")
		assert.Equal(t, []NameOffset{{"Smith, John", 55}}, names)
		assert.Equal(t, 1, skipped)

		assert.Equal(t, []string{"a", "b"}, ParseList(" a ;; b ;"))
		assert.Nil(t, ParseList(""))
	})

	t.Run("tone", func(t *testing.T) {
		tone, err := ParseTone("-3.7,1.2,4.9,6.1,22.5,0.4")
		require.NoError(t, err)
		assert.Equal(t, -3.7, tone.Tone)
		assert.False(t, tone.WordCount.Valid)

		tone, err = ParseTone("")
		assert.NoError(t, err)
		assert.Nil(t, tone)

		for _, bad := range []string{"1,2", "a,b,c,d,e,f", "1,2,3,4,5,6,many", "1,2,3,4,5,6,7,8"} {
			_, err := ParseTone(bad)
			assert.ErrorIs(t, err, field.ErrMalformed, bad)
		}
	})

	t.Run("dates", func(t *testing.T) {
		out, skipped := ParseEnhancedDates("1#0#0#2024#88;3#3#22#2025#10;9#1#1#2024#1;bad")
		assert.Equal(t, 2, skipped)
		require.Len(t, out, 2)
		assert.Equal(t, EnhancedDate{Resolution: 1, Year: 2024, Offset: 88}, out[0])
	})

	t.Run("quotations", func(t *testing.T) {
		out, skipped := ParseQuotations("495|53|said|We will not stop#1200|20||Short quote#oops")
		assert.Equal(t, 1, skipped)
		require.Len(t, out, 2)
		assert.Empty(t, out[1].Verb)
		assert.Equal(t, "Short quote", out[1].Quote)
	})

	t.Run("amounts", func(t *testing.T) {
		out, skipped := ParseAmounts("3,soldiers,120;1.5,million dollars,300;x,y,1;nope")
		assert.Equal(t, 2, skipped)
		assert.Equal(t, []Amount{{3, "soldiers", 120}, {1.5, "million dollars", 300}}, out)
	})

	t.Run("translation info", func(t *testing.T) {
		ti, err := parseTranslationInfo("srclc:spa; eng:Moses 2.1.1 / MosesCore Europarl fr-en / GT-SPA 1.0")
		require.NoError(t, err)
		assert.Equal(t, "spa", ti.SourceLanguage)
		assert.True(t, strings.HasPrefix(ti.Engine, "Moses"))

		ti, err = parseTranslationInfo("")
		assert.NoError(t, err)
		assert.Nil(t, ti)

		_, err = parseTranslationInfo("eng:GT")
		assert.ErrorIs(t, err, field.ErrMalformed)
	})
}

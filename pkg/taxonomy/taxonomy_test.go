package taxonomy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuadClass(t *testing.T) {
	assert.Equal(t, VerbalCooperation, ParseQuadClass("1"))
	assert.Equal(t, MaterialConflict, ParseQuadClass(" 4 "))
	for _, code := range []string{"", "0", "5", "x", "11"} {
		assert.Equal(t, QuadClassUnspecified, ParseQuadClass(code), code)
	}
	assert.True(t, MaterialCooperation.Cooperative())
	assert.False(t, VerbalConflict.Cooperative())
}

func TestGeoTypeIsLossy(t *testing.T) {
	assert.Equal(t, GeoProvince, ParseGeoType("2"))
	assert.Equal(t, GeoProvince, ParseGeoType("5"))
	assert.Equal(t, GeoCity, ParseGeoType("3"))
	assert.Equal(t, GeoCity, ParseGeoType("4"))

	// 5 WORLDSTATE comes back as the canonical 2.
	assert.Equal(t, "2", ParseGeoType("5").Code())
	assert.Equal(t, "3", ParseGeoType("4").Code())
	assert.Equal(t, "", ParseGeoType("9").Code())
}

func TestSourceType(t *testing.T) {
	assert.Equal(t, SourceWeb, ParseSourceType("1"))
	assert.Equal(t, "NONTEXTUALSOURCE", ParseSourceType("6").String())
	assert.Equal(t, SourceUnknown, ParseSourceType("7"))
	assert.True(t, SourceWeb.IsURL())
	assert.False(t, SourceJSTOR.IsURL())
}

// Every decoder returns a value for arbitrary input and decoding its own
// canonical code again yields the same value.
func TestDecodersTotalAndIdempotent(t *testing.T) {
	inputs := []string{"", "1", "2", "3", "4", "5", "6", "99", "abc", "USA", "GOV", "\x00\xff", "  "}
	for _, in := range inputs {
		q := ParseQuadClass(in)
		if q != QuadClassUnspecified {
			assert.Equal(t, q, ParseQuadClass(string(rune('0'+q))))
		}
		g := ParseGeoType(in)
		assert.Equal(t, g, ParseGeoType(g.Code()), in)

		r := ParseRole(in)
		assert.Equal(t, r, ParseRole(string(r)), in)
		rel := ParseReligion(in)
		assert.Equal(t, rel, ParseReligion(string(rel)), in)
		c := ParseCountry(in)
		assert.Equal(t, c, ParseCountry(string(c)), in)
		kg := ParseKnownGroup(in)
		assert.Equal(t, kg, ParseKnownGroup(string(kg)), in)
		e := ParseEthnicity(in)
		assert.Equal(t, e, ParseEthnicity(string(e)), in)

		root := ParseEventRoot(in)
		assert.Equal(t, root, ParseEventRoot(root.Code()), in)
	}
}

func TestCodeTables(t *testing.T) {
	assert.Len(t, roleNames, 39)
	assert.Len(t, religionNames, 31)
	assert.Equal(t, "Government", ParseRole("gov").Name())
	assert.Equal(t, "Sunni", ParseReligion("SUN").String())
	assert.Equal(t, "Hamas", ParseKnownGroup("HMS").Name())
	assert.Equal(t, "Unspecified", ParseKnownGroup("ZZZ").Name())
	assert.Equal(t, "United States", ParseCountry("USA").Name())
	assert.True(t, ParseCountry("WAF").IsRegion())
	assert.False(t, ParseCountry("KEN").IsRegion())
}

func TestEthnicity(t *testing.T) {
	e := ParseEthnicity("KUR")
	assert.Equal(t, Ethnicity("kur"), e)
	assert.True(t, e.Listed())
	assert.Equal(t, "Kurd", e.Name())

	other := ParseEthnicity("xhosa")
	assert.Equal(t, Ethnicity("xhosa"), other)
	assert.False(t, other.Listed())
	assert.Equal(t, "Other", other.Name())

	assert.Equal(t, Ethnicity(""), ParseEthnicity("k1r"))
	assert.Equal(t, "Unspecified", ParseEthnicity("").Name())
}

func TestEventRoot(t *testing.T) {
	assert.Equal(t, RootDiplomaticCooperation, ParseEventRoot("05"))
	assert.Equal(t, "05", RootDiplomaticCooperation.Code())
	assert.Equal(t, RootUnconventionalMassViolence, ParseEventRoot("20"))
	assert.Equal(t, RootUnspecified, ParseEventRoot("21"))
	assert.Equal(t, RootUnspecified, ParseEventRoot("00"))

	assert.Equal(t, VerbalCooperation, ParseEventRoot("01").QuadClass())
	assert.Equal(t, VerbalCooperation, ParseEventRoot("05").QuadClass())
	assert.Equal(t, MaterialCooperation, ParseEventRoot("06").QuadClass())
	assert.Equal(t, MaterialCooperation, ParseEventRoot("08").QuadClass())
	assert.Equal(t, VerbalConflict, ParseEventRoot("09").QuadClass())
	assert.Equal(t, VerbalConflict, ParseEventRoot("13").QuadClass())
	assert.Equal(t, MaterialConflict, ParseEventRoot("14").QuadClass())
	assert.Equal(t, MaterialConflict, ParseEventRoot("20").QuadClass())
	assert.Equal(t, QuadClassUnspecified, RootUnspecified.QuadClass())
}

func TestDecodeEventCode(t *testing.T) {
	tests := []struct {
		code   string
		root   EventRoot
		base   string
		detail string
		desc   string
		quad   QuadClass
	}{
		{code: "050", root: RootDiplomaticCooperation, base: "050", desc: "Engage in diplomatic cooperation", quad: VerbalCooperation},
		{code: "0211", root: RootAppeal, base: "021", detail: "0211", desc: "Appeal for economic cooperation", quad: VerbalCooperation},
		{code: "04", root: RootConsult, desc: "Consult", quad: VerbalCooperation},
		{code: "193", root: RootFight, base: "193", desc: "Fight with small arms and light weapons", quad: MaterialConflict},
		{code: "0290", root: RootAppeal, desc: "Appeal", quad: VerbalCooperation},
		{code: "1389", root: RootThreaten, base: "138", desc: "Threaten with military force", quad: VerbalConflict},
		{code: "9", desc: "Unspecified"},
		{code: "", desc: "Unspecified"},
		{code: "991", desc: "Unspecified"},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			a := DecodeEventCode(tt.code)
			assert.Equal(t, tt.root, a.Root)
			assert.Equal(t, tt.base, a.Base.Code)
			assert.Equal(t, tt.detail, a.Detail.Code)
			assert.Equal(t, tt.desc, a.Description())
			assert.Equal(t, tt.quad, a.QuadClass())
		})
	}
}

func TestVerbTableConsistency(t *testing.T) {
	for code := range verbNames {
		require.Contains(t, []int{3, 4}, len(code), code)
		root := ParseEventRoot(code[:2])
		require.NotEqual(t, RootUnspecified, root, code)
		if len(code) == 4 {
			_, ok := verbNames[code[:3]]
			require.True(t, ok, "detail %s has no base", code)
		}
	}
}

func TestDecodeActorCode(t *testing.T) {
	a := DecodeActorCode("USAGOV")
	assert.Equal(t, Country("USA"), a.Country)
	assert.Equal(t, []Role{"GOV"}, a.Roles)
	assert.Empty(t, a.Unrecognised)
	assert.True(t, a.Specified())

	a = DecodeActorCode("IGOUNO")
	assert.Equal(t, Country(""), a.Country)
	assert.Equal(t, []Role{"IGO", "UNO"}, a.Roles)

	a = DecodeActorCode("PSEHMSMIL")
	assert.Equal(t, Country("PSE"), a.Country)
	assert.Equal(t, KnownGroup("HMS"), a.KnownGroup)
	assert.True(t, a.HasRole("MIL"))

	a = DecodeActorCode("HMS")
	assert.Equal(t, KnownGroup("HMS"), a.KnownGroup)

	a = DecodeActorCode("NGACHRREB")
	assert.Equal(t, Country("NGA"), a.Country)
	assert.Equal(t, Religion("CHR"), a.Religion)
	assert.Equal(t, []Role{"REB"}, a.Roles)

	a = DecodeActorCode("ZZZCVLQ")
	assert.Equal(t, []Role{"CVL"}, a.Roles)
	assert.Equal(t, []string{"ZZZ", "Q"}, a.Unrecognised)

	a = DecodeActorCode("")
	assert.False(t, a.Specified())
}

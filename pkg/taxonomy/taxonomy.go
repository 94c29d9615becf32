// Package taxonomy decodes short GDELT and CAMEO codes into categorical values.
//
// Every decoder here is total: an unknown or empty code yields the zero value
// of its type, which is the explicit unspecified member. Length checks belong
// to the field layer and are assumed to have happened already.
package taxonomy

import "strings"

// QuadClass is the four-way verbal/material by cooperation/conflict split.
type QuadClass uint8

const (
	QuadClassUnspecified QuadClass = iota
	VerbalCooperation
	MaterialCooperation
	VerbalConflict
	MaterialConflict
)

// ParseQuadClass maps the digits 1-4; anything else is unspecified.
func ParseQuadClass(code string) QuadClass {
	switch strings.TrimSpace(code) {
	case "1":
		return VerbalCooperation
	case "2":
		return MaterialCooperation
	case "3":
		return VerbalConflict
	case "4":
		return MaterialConflict
	}
	return QuadClassUnspecified
}

func (q QuadClass) String() string {
	switch q {
	case VerbalCooperation:
		return "Verbal Cooperation"
	case MaterialCooperation:
		return "Material Cooperation"
	case VerbalConflict:
		return "Verbal Conflict"
	case MaterialConflict:
		return "Material Conflict"
	}
	return "Unspecified"
}

// Cooperative reports whether q is one of the two cooperation classes.
func (q QuadClass) Cooperative() bool {
	return q == VerbalCooperation || q == MaterialCooperation
}

// GeoType is the resolution of a GDELT geographic match.
//
// The upstream codes are 1 COUNTRY, 2 USSTATE, 3 USCITY, 4 WORLDCITY and
// 5 WORLDSTATE. States and cities are merged regardless of country, so the
// mapping is many-to-one and Code does not always return the original digit.
type GeoType uint8

const (
	GeoUnknown GeoType = iota
	GeoCountry
	GeoProvince
	GeoCity
)

// ParseGeoType decodes a location type digit.
func ParseGeoType(code string) GeoType {
	switch strings.TrimSpace(code) {
	case "1":
		return GeoCountry
	case "2", "5":
		return GeoProvince
	case "3", "4":
		return GeoCity
	}
	return GeoUnknown
}

// Code returns the canonical digit for g, or "" when unknown.
func (g GeoType) Code() string {
	switch g {
	case GeoCountry:
		return "1"
	case GeoProvince:
		return "2"
	case GeoCity:
		return "3"
	}
	return ""
}

func (g GeoType) String() string {
	switch g {
	case GeoCountry:
		return "Country"
	case GeoProvince:
		return "Province"
	case GeoCity:
		return "City"
	}
	return "Unknown"
}

// SourceType identifies where a document came from. Mentions call it the
// mention type; GKG rows call it the source collection identifier.
type SourceType uint8

const (
	SourceUnknown SourceType = iota
	SourceWeb
	SourceCitationOnly
	SourceCore
	SourceDTIC
	SourceJSTOR
	SourceNonTextual
)

// ParseSourceType decodes the digits 1-6.
func ParseSourceType(code string) SourceType {
	switch strings.TrimSpace(code) {
	case "1":
		return SourceWeb
	case "2":
		return SourceCitationOnly
	case "3":
		return SourceCore
	case "4":
		return SourceDTIC
	case "5":
		return SourceJSTOR
	case "6":
		return SourceNonTextual
	}
	return SourceUnknown
}

func (s SourceType) String() string {
	switch s {
	case SourceWeb:
		return "WEB"
	case SourceCitationOnly:
		return "CITATIONONLY"
	case SourceCore:
		return "CORE"
	case SourceDTIC:
		return "DTIC"
	case SourceJSTOR:
		return "JSTOR"
	case SourceNonTextual:
		return "NONTEXTUALSOURCE"
	}
	return "UNKNOWN"
}

// IsURL reports whether identifiers of this type are URLs.
func (s SourceType) IsURL() bool {
	return s == SourceWeb || s == SourceNonTextual
}

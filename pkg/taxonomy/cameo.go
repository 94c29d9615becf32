package taxonomy

import "strings"

// EventRoot is one of the twenty top-level CAMEO verb categories.
type EventRoot uint8

const (
	RootUnspecified EventRoot = iota
	RootMakePublicStatement
	RootAppeal
	RootExpressIntentToCooperate
	RootConsult
	RootDiplomaticCooperation
	RootMaterialCooperation
	RootProvideAid
	RootYield
	RootInvestigate
	RootDemand
	RootDisapprove
	RootReject
	RootThreaten
	RootProtest
	RootExhibitForcePosture
	RootReduceRelations
	RootCoerce
	RootAssault
	RootFight
	RootUnconventionalMassViolence
)

var rootNames = [...]string{
	RootUnspecified:                "Unspecified",
	RootMakePublicStatement:        "Make public statement",
	RootAppeal:                     "Appeal",
	RootExpressIntentToCooperate:   "Express intent to cooperate",
	RootConsult:                    "Consult",
	RootDiplomaticCooperation:      "Engage in diplomatic cooperation",
	RootMaterialCooperation:        "Engage in material cooperation",
	RootProvideAid:                 "Provide aid",
	RootYield:                      "Yield",
	RootInvestigate:                "Investigate",
	RootDemand:                     "Demand",
	RootDisapprove:                 "Disapprove",
	RootReject:                     "Reject",
	RootThreaten:                   "Threaten",
	RootProtest:                    "Protest",
	RootExhibitForcePosture:        "Exhibit force posture",
	RootReduceRelations:            "Reduce relations",
	RootCoerce:                     "Coerce",
	RootAssault:                    "Assault",
	RootFight:                      "Fight",
	RootUnconventionalMassViolence: "Use unconventional mass violence",
}

// ParseEventRoot decodes a two-digit root code such as "05".
func ParseEventRoot(code string) EventRoot {
	code = strings.TrimSpace(code)
	if len(code) != 2 || code[0] < '0' || code[0] > '2' || code[1] < '0' || code[1] > '9' {
		return RootUnspecified
	}
	n := int(code[0]-'0')*10 + int(code[1]-'0')
	if n < 1 || n > int(RootUnconventionalMassViolence) {
		return RootUnspecified
	}
	return EventRoot(n)
}

// Code returns the two-digit form of r, or "" when unspecified.
func (r EventRoot) Code() string {
	if r == RootUnspecified || int(r) >= len(rootNames) {
		return ""
	}
	return string([]byte{'0' + byte(r/10), '0' + byte(r%10)})
}

func (r EventRoot) String() string {
	if int(r) >= len(rootNames) {
		return rootNames[RootUnspecified]
	}
	return rootNames[r]
}

// QuadClass returns the conventional quad class of events under r.
func (r EventRoot) QuadClass() QuadClass {
	switch {
	case r == RootUnspecified:
		return QuadClassUnspecified
	case r <= RootDiplomaticCooperation:
		return VerbalCooperation
	case r <= RootYield:
		return MaterialCooperation
	case r <= RootThreaten:
		return VerbalConflict
	case r <= RootUnconventionalMassViolence:
		return MaterialConflict
	}
	return QuadClassUnspecified
}

// Verb is one node of the CAMEO verb tree below the root. The zero Verb is
// the unspecified member.
type Verb struct {
	Code string
	Name string
}

// Specified reports whether v names a known CAMEO verb.
func (v Verb) Specified() bool { return v.Code != "" }

func (v Verb) String() string {
	if !v.Specified() {
		return "Unspecified"
	}
	return v.Name
}

// LookupVerb returns the verb for a three or four digit code.
func LookupVerb(code string) Verb {
	code = strings.TrimSpace(code)
	if name, ok := verbNames[code]; ok {
		return Verb{Code: code, Name: name}
	}
	return Verb{}
}

// EventAction is a CAMEO event code decomposed by position: characters
// [0:2] give the root, [0:3] the base verb and [0:4] the detailed verb.
type EventAction struct {
	Code   string
	Root   EventRoot
	Base   Verb
	Detail Verb
}

// DecodeEventCode decomposes a CAMEO event code. Short codes leave the
// deeper levels unspecified; unknown segments degrade the same way.
func DecodeEventCode(code string) EventAction {
	code = strings.TrimSpace(code)
	a := EventAction{Code: code}
	if len(code) < 2 {
		return a
	}
	a.Root = ParseEventRoot(code[:2])
	if a.Root == RootUnspecified {
		return a
	}
	if len(code) >= 3 {
		a.Base = LookupVerb(code[:3])
	}
	if len(code) >= 4 && a.Base.Specified() {
		a.Detail = LookupVerb(code[:4])
	}
	return a
}

// Description returns the most specific known name for the action.
func (a EventAction) Description() string {
	switch {
	case a.Detail.Specified():
		return a.Detail.Name
	case a.Base.Specified():
		return a.Base.Name
	}
	return a.Root.String()
}

// QuadClass derives the quad class from the root category.
func (a EventAction) QuadClass() QuadClass { return a.Root.QuadClass() }

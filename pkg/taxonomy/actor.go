package taxonomy

import "strings"

// Role is a CAMEO actor role or type code, e.g. "GOV" or "MIL".
type Role string

// ParseRole returns the role for code, or "" if it is not listed.
func ParseRole(code string) Role {
	code = upper3(code)
	if _, ok := roleNames[code]; ok {
		return Role(code)
	}
	return ""
}

// Name returns the role description, or "Unspecified".
func (r Role) Name() string {
	if n, ok := roleNames[string(r)]; ok {
		return n
	}
	return "Unspecified"
}

func (r Role) String() string { return r.Name() }

var roleNames = map[string]string{
	"COP": "Police forces",
	"GOV": "Government",
	"INS": "Insurgents",
	"JUD": "Judiciary",
	"MIL": "Military",
	"OPP": "Political opposition",
	"REB": "Rebels",
	"SEP": "Separatist rebels",
	"SPY": "State intelligence",
	"UAF": "Unaligned armed forces",
	"AGR": "Agriculture",
	"BUS": "Business",
	"CRM": "Criminal",
	"CVL": "Civilian",
	"DEV": "Development",
	"EDU": "Education",
	"ELI": "Elites",
	"ENV": "Environmental",
	"HLH": "Health",
	"HRI": "Human rights",
	"LAB": "Labor",
	"LEG": "Legislature",
	"MED": "Media",
	"REF": "Refugees",
	"MOD": "Moderate",
	"RAD": "Radical",
	"AMN": "Amnesty International",
	"IRC": "Red Cross",
	"GRP": "Greenpeace",
	"UNO": "United Nations",
	"PKO": "Peacekeepers",
	"IGO": "Inter-governmental organization",
	"IMG": "International militarized group",
	"INT": "International/transnational",
	"MNC": "Multinational corporation",
	"NGM": "Non-governmental movement",
	"NGO": "Non-governmental organization",
	"UIS": "Unidentified state actor",
	"SET": "Settlers",
}

// Religion is a CAMEO religion code, e.g. "CHR" or "SUN".
type Religion string

// ParseReligion returns the religion for code, or "" if it is not listed.
func ParseReligion(code string) Religion {
	code = upper3(code)
	if _, ok := religionNames[code]; ok {
		return Religion(code)
	}
	return ""
}

// Name returns the religion name, or "Unspecified".
func (r Religion) Name() string {
	if n, ok := religionNames[string(r)]; ok {
		return n
	}
	return "Unspecified"
}

func (r Religion) String() string { return r.Name() }

var religionNames = map[string]string{
	"ADR": "African diasporic religion",
	"ALE": "Alewi",
	"ATH": "Agnostic/Atheist",
	"BAH": "Bahai Faith",
	"BUD": "Buddhism",
	"CHR": "Christianity",
	"CON": "Confucianism",
	"CPT": "Coptic",
	"CTH": "Catholic",
	"DOX": "Orthodox",
	"DRZ": "Druze",
	"HIN": "Hinduism",
	"HSD": "Hasidic",
	"ITR": "Indigenous tribal religion",
	"JAN": "Jainism",
	"JEW": "Judaism",
	"JHW": "Jehovah's Witness",
	"LDS": "Latter Day Saints",
	"MOS": "Muslim",
	"MRN": "Maronite",
	"NRM": "New religious movement",
	"PAG": "Pagan",
	"PRO": "Protestant",
	"SFI": "Sufi",
	"SHI": "Shia",
	"SHN": "Old Shinto School",
	"SIK": "Sikh",
	"SUN": "Sunni",
	"TAO": "Taoist",
	"UDX": "Ultra-Orthodox",
	"ZRO": "Zoroastrianism",
}

// Ethnicity is a CAMEO ethnic code. The upstream list runs to several
// hundred entries, so any well-formed code is kept (lowercased) and only a
// common subset carries a name.
type Ethnicity string

// ParseEthnicity normalizes code; an empty or non-alphabetic code is
// unspecified.
func ParseEthnicity(code string) Ethnicity {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return ""
	}
	for i := 0; i < len(code); i++ {
		if code[i] < 'a' || code[i] > 'z' {
			return ""
		}
	}
	return Ethnicity(code)
}

// Listed reports whether e has a known name.
func (e Ethnicity) Listed() bool {
	_, ok := ethnicityNames[string(e)]
	return ok
}

// Name returns the ethnic group name, "Other" for unlisted codes, or
// "Unspecified" for the empty code.
func (e Ethnicity) Name() string {
	if e == "" {
		return "Unspecified"
	}
	if n, ok := ethnicityNames[string(e)]; ok {
		return n
	}
	return "Other"
}

func (e Ethnicity) String() string { return e.Name() }

var ethnicityNames = map[string]string{
	"afr":  "African",
	"ara":  "Arab",
	"arm":  "Armenian",
	"asi":  "Asian",
	"bal":  "Baluchi",
	"ber":  "Berber",
	"bla":  "Black",
	"chn":  "Han Chinese",
	"fula": "Fulani",
	"hau":  "Hausa",
	"hisp": "Hispanic",
	"hutu": "Hutu",
	"igb":  "Igbo",
	"jew":  "Jewish",
	"kur":  "Kurd",
	"mal":  "Malay",
	"mao":  "Maori",
	"nat":  "Native American",
	"pas":  "Pashtun",
	"pun":  "Punjabi",
	"rom":  "Roma",
	"rus":  "Russian",
	"tam":  "Tamil",
	"taj":  "Tajik",
	"tut":  "Tutsi",
	"uig":  "Uighur",
	"whi":  "White",
	"yor":  "Yoruba",
	"zul":  "Zulu",
}

// ActorCode is a compound CAMEO actor code broken into its three-byte
// segments. "USAGOV" is a United States government actor; "IGOUNO" is a
// United Nations inter-governmental actor.
type ActorCode struct {
	Code         string
	Country      Country
	KnownGroup   KnownGroup
	Religion     Religion
	Roles        []Role
	Unrecognised []string
}

// DecodeActorCode classifies each three-byte segment of code. A country is
// only taken from the first segment; later segments prefer known groups over
// religions over roles. A trailing partial segment is kept as unrecognised.
func DecodeActorCode(code string) ActorCode {
	code = strings.ToUpper(strings.TrimSpace(code))
	a := ActorCode{Code: code}
	for i := 0; i < len(code); i += 3 {
		end := i + 3
		if end > len(code) {
			a.Unrecognised = append(a.Unrecognised, code[i:])
			break
		}
		seg := code[i:end]
		first := i == 0
		switch {
		case first && ParseCountry(seg) != "":
			a.Country = ParseCountry(seg)
		case !first && a.KnownGroup == "" && ParseKnownGroup(seg) != "" && ParseRole(seg) == "":
			a.KnownGroup = ParseKnownGroup(seg)
		case a.Religion == "" && ParseReligion(seg) != "":
			a.Religion = ParseReligion(seg)
		case ParseRole(seg) != "":
			a.Roles = append(a.Roles, ParseRole(seg))
		case a.KnownGroup == "" && ParseKnownGroup(seg) != "":
			a.KnownGroup = ParseKnownGroup(seg)
		default:
			a.Unrecognised = append(a.Unrecognised, seg)
		}
	}
	return a
}

// Specified reports whether any segment was recognised.
func (a ActorCode) Specified() bool {
	return a.Country != "" || a.KnownGroup != "" || a.Religion != "" || len(a.Roles) > 0
}

// HasRole reports whether r is among the decoded roles.
func (a ActorCode) HasRole(r Role) bool {
	for _, x := range a.Roles {
		if x == r {
			return true
		}
	}
	return false
}

func upper3(code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if len(code) != 3 {
		return ""
	}
	return code
}

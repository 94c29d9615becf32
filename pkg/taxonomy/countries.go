package taxonomy

// Country is a CAMEO country or region code. CAMEO uses ISO 3166-1 alpha-3
// for states and a set of three-letter region codes for groupings.
type Country string

// ParseCountry returns the country for code, or "" if it is not listed.
func ParseCountry(code string) Country {
	code = upper3(code)
	if _, ok := countryNames[code]; ok {
		return Country(code)
	}
	return ""
}

// Name returns the country or region name, or "Unspecified".
func (c Country) Name() string {
	if n, ok := countryNames[string(c)]; ok {
		return n
	}
	return "Unspecified"
}

func (c Country) String() string { return c.Name() }

// IsRegion reports whether c names a multi-country region rather than a state.
func (c Country) IsRegion() bool {
	_, ok := regionCodes[string(c)]
	return ok
}

var regionCodes = map[string]struct{}{
	"AFR": {}, "ASA": {}, "BLK": {}, "CRB": {}, "CAU": {}, "CFR": {}, "CAS": {},
	"CEU": {}, "EIN": {}, "EAF": {}, "EEU": {}, "EUR": {}, "LAM": {}, "MEA": {},
	"MDT": {}, "NAF": {}, "NMR": {}, "PGS": {}, "SCN": {}, "SAM": {}, "SAS": {},
	"SEA": {}, "SAF": {}, "WAF": {}, "WST": {},
}

var countryNames = map[string]string{
	// regions
	"AFR": "Africa",
	"ASA": "Asia",
	"BLK": "Balkans",
	"CRB": "Caribbean",
	"CAU": "Caucasus",
	"CFR": "Central Africa",
	"CAS": "Central Asia",
	"CEU": "Central Europe",
	"EIN": "East Indies",
	"EAF": "Eastern Africa",
	"EEU": "Eastern Europe",
	"EUR": "Europe",
	"LAM": "Latin America",
	"MEA": "Middle East",
	"MDT": "Mediterranean",
	"NAF": "North Africa",
	"NMR": "North America",
	"PGS": "Persian Gulf",
	"SCN": "Scandinavia",
	"SAM": "South America",
	"SAS": "South Asia",
	"SEA": "Southeast Asia",
	"SAF": "Southern Africa",
	"WAF": "West Africa",
	"WST": "The West",

	"AFG": "Afghanistan",
	"ALA": "Aland Islands",
	"ALB": "Albania",
	"DZA": "Algeria",
	"ASM": "American Samoa",
	"AND": "Andorra",
	"AGO": "Angola",
	"AIA": "Anguilla",
	"ATG": "Antigua and Barbuda",
	"ARG": "Argentina",
	"ARM": "Armenia",
	"ABW": "Aruba",
	"AUS": "Australia",
	"AUT": "Austria",
	"AZE": "Azerbaijan",
	"BHS": "Bahamas",
	"BHR": "Bahrain",
	"BGD": "Bangladesh",
	"BRB": "Barbados",
	"BLR": "Belarus",
	"BEL": "Belgium",
	"BLZ": "Belize",
	"BEN": "Benin",
	"BMU": "Bermuda",
	"BTN": "Bhutan",
	"BOL": "Bolivia",
	"BIH": "Bosnia and Herzegovina",
	"BWA": "Botswana",
	"BRA": "Brazil",
	"VGB": "British Virgin Islands",
	"BRN": "Brunei",
	"BGR": "Bulgaria",
	"BFA": "Burkina Faso",
	"BDI": "Burundi",
	"KHM": "Cambodia",
	"CMR": "Cameroon",
	"CAN": "Canada",
	"CPV": "Cape Verde",
	"CYM": "Cayman Islands",
	"CAF": "Central African Republic",
	"TCD": "Chad",
	"CHL": "Chile",
	"CHN": "China",
	"COL": "Colombia",
	"COM": "Comoros",
	"COD": "Democratic Republic of the Congo",
	"COG": "Republic of the Congo",
	"COK": "Cook Islands",
	"CRI": "Costa Rica",
	"CIV": "Ivory Coast",
	"HRV": "Croatia",
	"CUB": "Cuba",
	"CYP": "Cyprus",
	"CZE": "Czech Republic",
	"DNK": "Denmark",
	"DJI": "Djibouti",
	"DMA": "Dominica",
	"DOM": "Dominican Republic",
	"TMP": "East Timor",
	"ECU": "Ecuador",
	"EGY": "Egypt",
	"SLV": "El Salvador",
	"GNQ": "Equatorial Guinea",
	"ERI": "Eritrea",
	"EST": "Estonia",
	"ETH": "Ethiopia",
	"FLK": "Falkland Islands",
	"FRO": "Faroe Islands",
	"FJI": "Fiji",
	"FIN": "Finland",
	"FRA": "France",
	"GUF": "French Guiana",
	"PYF": "French Polynesia",
	"GAB": "Gabon",
	"GMB": "Gambia",
	"GEO": "Georgia",
	"DEU": "Germany",
	"GHA": "Ghana",
	"GIB": "Gibraltar",
	"GRC": "Greece",
	"GRL": "Greenland",
	"GRD": "Grenada",
	"GLP": "Guadeloupe",
	"GUM": "Guam",
	"GTM": "Guatemala",
	"GIN": "Guinea",
	"GNB": "Guinea-Bissau",
	"GUY": "Guyana",
	"HTI": "Haiti",
	"VAT": "Vatican City",
	"HND": "Honduras",
	"HKG": "Hong Kong",
	"HUN": "Hungary",
	"ISL": "Iceland",
	"IND": "India",
	"IDN": "Indonesia",
	"IRN": "Iran",
	"IRQ": "Iraq",
	"IRL": "Ireland",
	"IMN": "Isle of Man",
	"ISR": "Israel",
	"ITA": "Italy",
	"JAM": "Jamaica",
	"JPN": "Japan",
	"JOR": "Jordan",
	"KAZ": "Kazakhstan",
	"KEN": "Kenya",
	"KIR": "Kiribati",
	"PRK": "North Korea",
	"KOR": "South Korea",
	"KOS": "Kosovo",
	"KWT": "Kuwait",
	"KGZ": "Kyrgyzstan",
	"LAO": "Laos",
	"LVA": "Latvia",
	"LBN": "Lebanon",
	"LSO": "Lesotho",
	"LBR": "Liberia",
	"LBY": "Libya",
	"LIE": "Liechtenstein",
	"LTU": "Lithuania",
	"LUX": "Luxembourg",
	"MAC": "Macao",
	"MKD": "North Macedonia",
	"MDG": "Madagascar",
	"MWI": "Malawi",
	"MYS": "Malaysia",
	"MDV": "Maldives",
	"MLI": "Mali",
	"MLT": "Malta",
	"MHL": "Marshall Islands",
	"MTQ": "Martinique",
	"MRT": "Mauritania",
	"MUS": "Mauritius",
	"MYT": "Mayotte",
	"MEX": "Mexico",
	"FSM": "Micronesia",
	"MDA": "Moldova",
	"MCO": "Monaco",
	"MNG": "Mongolia",
	"MNE": "Montenegro",
	"MSR": "Montserrat",
	"MAR": "Morocco",
	"MOZ": "Mozambique",
	"MMR": "Myanmar",
	"NAM": "Namibia",
	"NRU": "Nauru",
	"NPL": "Nepal",
	"NLD": "Netherlands",
	"ANT": "Netherlands Antilles",
	"NCL": "New Caledonia",
	"NZL": "New Zealand",
	"NIC": "Nicaragua",
	"NER": "Niger",
	"NGA": "Nigeria",
	"NIU": "Niue",
	"NOR": "Norway",
	"OMN": "Oman",
	"PAK": "Pakistan",
	"PLW": "Palau",
	"PSE": "Occupied Palestinian Territory",
	"PAN": "Panama",
	"PNG": "Papua New Guinea",
	"PRY": "Paraguay",
	"PER": "Peru",
	"PHL": "Philippines",
	"PCN": "Pitcairn",
	"POL": "Poland",
	"PRT": "Portugal",
	"PRI": "Puerto Rico",
	"QAT": "Qatar",
	"REU": "Reunion",
	"ROU": "Romania",
	"RUS": "Russia",
	"RWA": "Rwanda",
	"SHN": "Saint Helena",
	"KNA": "Saint Kitts and Nevis",
	"LCA": "Saint Lucia",
	"SPM": "Saint Pierre and Miquelon",
	"VCT": "Saint Vincent and the Grenadines",
	"WSM": "Samoa",
	"SMR": "San Marino",
	"STP": "Sao Tome and Principe",
	"SAU": "Saudi Arabia",
	"SEN": "Senegal",
	"SRB": "Serbia",
	"SYC": "Seychelles",
	"SLE": "Sierra Leone",
	"SGP": "Singapore",
	"SVK": "Slovakia",
	"SVN": "Slovenia",
	"SLB": "Solomon Islands",
	"SOM": "Somalia",
	"ZAF": "South Africa",
	"SSD": "South Sudan",
	"ESP": "Spain",
	"LKA": "Sri Lanka",
	"SDN": "Sudan",
	"SUR": "Suriname",
	"SWZ": "Eswatini",
	"SWE": "Sweden",
	"CHE": "Switzerland",
	"SYR": "Syria",
	"TWN": "Taiwan",
	"TJK": "Tajikistan",
	"TZA": "Tanzania",
	"THA": "Thailand",
	"TGO": "Togo",
	"TKL": "Tokelau",
	"TON": "Tonga",
	"TTO": "Trinidad and Tobago",
	"TUN": "Tunisia",
	"TUR": "Turkey",
	"TKM": "Turkmenistan",
	"TCA": "Turks and Caicos Islands",
	"TUV": "Tuvalu",
	"UGA": "Uganda",
	"UKR": "Ukraine",
	"ARE": "United Arab Emirates",
	"GBR": "United Kingdom",
	"USA": "United States",
	"VIR": "United States Virgin Islands",
	"URY": "Uruguay",
	"UZB": "Uzbekistan",
	"VUT": "Vanuatu",
	"VEN": "Venezuela",
	"VNM": "Vietnam",
	"WLF": "Wallis and Futuna",
	"ESH": "Western Sahara",
	"YEM": "Yemen",
	"ZMB": "Zambia",
	"ZWE": "Zimbabwe",
}

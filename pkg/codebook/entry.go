package codebook

import "strings"

// Entry is one row of the GCAM master codebook.
type Entry struct {
	Variable        string          `json:"variable"`
	DictionaryID    uint32          `json:"dictionary_id"`
	DimensionID     uint32          `json:"dimension_id"`
	MeasurementType MeasurementType `json:"measurement_type"`
	Language        Language        `json:"language"`
	Dictionary      Dictionary      `json:"dictionary"`
	DimensionName   string          `json:"dimension_name"`
	Citation        string          `json:"citation"`
}

// Language is the ISO 639-2 code of the text a dimension was computed on.
// Unlisted codes are kept verbatim.
type Language string

const (
	English    Language = "eng"
	Arabic     Language = "ara"
	Chinese    Language = "chi"
	French     Language = "fra"
	German     Language = "ger"
	Hindi      Language = "hin"
	Japanese   Language = "jpn"
	Portuguese Language = "por"
	Russian    Language = "rus"
	Spanish    Language = "spa"
)

var languages = map[Language]bool{
	English: true, Arabic: true, Chinese: true, French: true, German: true,
	Hindi: true, Japanese: true, Portuguese: true, Russian: true, Spanish: true,
}

// Known reports whether l is one of the listed GCAM languages.
func (l Language) Known() bool { return languages[l] }

func (l Language) String() string { return string(l) }

// MeasurementType says how a GCAM value should be read.
type MeasurementType string

const (
	WordCount MeasurementType = "WORDCOUNT"
	Ratio     MeasurementType = "RATIO"
	Score     MeasurementType = "SCORE"
)

// Known reports whether m is WORDCOUNT, RATIO or SCORE.
func (m MeasurementType) Known() bool {
	return m == WordCount || m == Ratio || m == Score
}

func (m MeasurementType) String() string { return string(m) }

// Dictionary is the source lexicon of a GCAM dimension, identified by its
// canonical human-readable name. Names outside the listed set are kept as
// they appear in the codebook.
type Dictionary string

const (
	ForestValues                    Dictionary = "Forest Values"
	GDELTGlobalKnowledgeGraphThemes Dictionary = "GDELT Global Knowledge Graph Themes"
	GDELTGKGThemes                  Dictionary = "GDELT GKG Themes"
	GeneralInquirer                 Dictionary = "General Inquirer V1.02 (Harvard IV-4 Psychosocial Dictionary / NamenWirth & Weber's Lasswell Dictionary)"
	LexicoderSentiment              Dictionary = "Lexicoder Sentiment Dictionary"
	LexicoderTopics                 Dictionary = "Lexicoder Topic Dictionaries"
	LIWC                            Dictionary = "Linguistic Inquiry and Word Count (LIWC)"
	LoughranMcDonald                Dictionary = "Loughran and McDonald Financial Sentiment Dictionaries"
	OpinionObserver                 Dictionary = "Opinion Observer"
	RegressiveImagery               Dictionary = "Regressive Imagery Dictionary"
	RogetsThesaurus                 Dictionary = "Roget's Thesaurus 1911 Edition"
	SentiWordNet                    Dictionary = "SentiWordNet 3.0"
	SentiWords                      Dictionary = "SentiWords"
	SubjectivityLexicon             Dictionary = "Subjectivity Lexicon"
	BodyBoundary                    Dictionary = "Body Boundary Dictionary"
	WordNetAffect10                 Dictionary = "WordNet Affect 1.0"
	WordNetAffect11                 Dictionary = "WordNet Affect 1.1"
	WordNetDomains                  Dictionary = "WordNet Domains 3.2"
	WordNetLexicalCategories        Dictionary = "WordNet 3.1 Lexical Categories"
)

const generalInquirerPrefix = "General Inquirer V1.02"

const gkgCitation = "Kalev Hannes Leetaru. (2013). 'The GDELT Global Knowledge Graph (GKG)'. Available http://gdeltproject.org/"

const wordNetAffectCitation = "Carlo Strapparava and Alessandro Valitutti. \"WordNet-Affect: an Affective Extension of WordNet\", in Proceedings of the 4th International Conference on Language Resources and Evaluation (LREC 2004), Lisbon, May 2004, pp. 1083-1086."

var citations = map[Dictionary]string{
	ForestValues:                    "Bengston, D, & Xu, Z. (1995). Changing national forest values: A content analysis. St. Paul, Minn.: North Central Forest Experiment Station, Forest Service, U.S. Dept. of Agriculture.",
	GDELTGlobalKnowledgeGraphThemes: gkgCitation,
	GDELTGKGThemes:                  gkgCitation,
	GeneralInquirer:                 "Philip J. Stone, Robert F. Bales, Zvi Namenwirth, & Daniel M. Ogilvie (1962). The General Inquirer: A computer system for content analysis and retrieval based on the sentence as a unit of information. Behavioral Science, 7(4), 484-498",
	LexicoderSentiment:              "Lori Young and Stuart Soroka. 2012. Affective News: The Automated Coding of Sentiment in Political Texts, Political Communication 29: 205-231. Available at http://lexicoder.com/",
	LexicoderTopics:                 "Albugh, Quinn, Julie Sevenans and Stuart Soroka. 2013. Lexicoder Topic Dictionaries, June 2013 versions, McGill University, Montreal, Canada. Available at http://lexicoder.com/",
	LIWC:                            "Pennebaker, J. W., Booth, R. J., & Francis, M. E. (2007). Linguistic Inquiry and Word Count: LIWC [Computer software]. Austin, TX. Available at http://www.liwc.net/",
	LoughranMcDonald:                "Tim Loughran and Bill McDonald, 2011, \"When is a Liability not a Liability,\" Journal of Finance, V66, pp. 35-65.",
	OpinionObserver:                 "Bing Liu, Minqing Hu and Junsheng Cheng. \"Opinion Observer: Analyzing and Comparing Opinions on the Web.\" Proceedings of the 14th International World Wide Web conference (WWW-2005), May 10-14, 2005, Chiba, Japan.",
	RegressiveImagery:               "Martindale C. (1987). Narrative pattern analysis: A quantitative method for inferring the symbolic meaning of narratives. In Literary discourse: Aspects of cognitive and social psychological approaches Halasz L. (ed) pp167-181, Berlin: de Gruyter",
	RogetsThesaurus:                 "Peter Mark Roget. (1911). Roget's Thesaurus of English Words and Phrases. New York: TY Crowell Company.",
	SentiWordNet:                    "Andrea Esuli Stefano Baccianella and Fabrizio Sebastiani. (2010). Sentiwordnet 3.0: An enhanced lexical resource for sentiment analysis and opinion mining. In LREC.",
	SentiWords:                      "Guerini M., Gatti L. & Turchi M. \"Sentiment Analysis: How to Derive Prior Polarities from SentiWordNet\". In Proceedings of the 2013 Conference on Empirical Methods in Natural Language Processing (EMNLP'13), pp 1259-1269. Seattle, Washington, USA. 2013.",
	SubjectivityLexicon:             "Theresa Wilson, Janyce Wiebe, and Paul Hoffmann (2005). Recognizing Contextual Polarity in Phrase-Level Sentiment Analysis. Proc. of HLT-EMNLP-2005.",
	BodyBoundary:                    "Andrew Wilson. (2006). Development and application of a content analysis dictionary for body boundary research. Literary and Linguistic Computing, 21, 105-110.",
	WordNetAffect10:                 wordNetAffectCitation,
	WordNetAffect11:                 wordNetAffectCitation,
	WordNetDomains:                  "Bernardo Magnini and Gabriela Cavaglia. \"Integrating Subject Field Codes into WordNet\". In Gavrilidou M., Crayannis G., Markantonatu S., Piperidis S. and Stainhaouer G. (Eds.) Proceedings of LREC-2000, Second International Conference on Language Resources and Evaluation, Athens, Greece, 31 May - 2 June, 2000, pp. 1413-1418.",
	WordNetLexicalCategories:        "George A. Miller (1995). WordNet: A Lexical Database for English. Communications of the ACM Vol. 38, No. 11: 39-41.",
}

// ParseDictionary maps a codebook DictionaryHumanName to its Dictionary.
// General Inquirer rows carry a long parenthetical that varies, so that one
// matches by prefix.
func ParseDictionary(name string) Dictionary {
	name = strings.TrimSpace(name)
	if strings.HasPrefix(name, generalInquirerPrefix) {
		return GeneralInquirer
	}
	return Dictionary(name)
}

// Known reports whether d is one of the listed lexicons.
func (d Dictionary) Known() bool {
	_, ok := citations[d]
	return ok
}

func (d Dictionary) String() string {
	if d == "" {
		return "Other"
	}
	return string(d)
}

// Citation returns the bibliographic reference for d.
func (d Dictionary) Citation() string {
	if c, ok := citations[d]; ok {
		return c
	}
	return "Citation not available for this dictionary."
}

package language

import (
	"strings"

	xlanguage "golang.org/x/text/language"
)

// Undetermined is the code Matroska uses for tracks without a language.
const Undetermined = "und"

type entry struct {
	code2   string   // ISO 639-1 (2-letter)
	code3   string   // canonical ISO 639-2 code
	alt3    []string // other ISO 639-2 spellings
	display string   // track title
	words   []string // full word forms
}

var languages = []entry{
	{"en", "eng", nil, "English", []string{"english"}},
	{"es", "spa", nil, "Spanish", []string{"spanish"}},
	{"de", "ger", []string{"deu"}, "German", []string{"german"}},
	{"fr", "fre", []string{"fra"}, "French", []string{"french"}},
	{"it", "ita", nil, "Italian", []string{"italian"}},
	{"pt", "por", nil, "Portuguese", []string{"portuguese"}},
	{"ru", "rus", nil, "Russian", []string{"russian"}},
	{"ja", "jpn", nil, "Japanese", []string{"japanese"}},
	{"ko", "kor", nil, "Korean", []string{"korean"}},
	{"zh", "zho", []string{"chi"}, "Chinese", []string{"chinese"}},
	{"ar", "ara", nil, "Arabic", []string{"arabic"}},
	{"hi", "hin", nil, "Hindi", []string{"hindi"}},
	{"tr", "tur", nil, "Turkish", []string{"turkish"}},
	{"nl", "nld", []string{"dut"}, "Dutch", []string{"dutch"}},
	{"th", "tha", nil, "Thai", []string{"thai"}},
	{"vi", "vie", nil, "Vietnamese", []string{"vietnamese"}},
	{"pl", "pol", nil, "Polish", []string{"polish"}},
	{"sv", "swe", nil, "Swedish", []string{"swedish"}},
	{"da", "dan", nil, "Danish", []string{"danish"}},
	{"no", "nor", []string{"nob", "nno"}, "Norwegian", []string{"norwegian"}},
	{"fi", "fin", nil, "Finnish", []string{"finnish"}},
	{"el", "gre", []string{"ell"}, "Greek", []string{"greek"}},
	{"he", "heb", nil, "Hebrew", []string{"hebrew"}},
	{"cs", "cze", []string{"ces"}, "Czech", []string{"czech"}},
	{"hu", "hun", nil, "Hungarian", []string{"hungarian"}},
	{"ro", "rou", []string{"ron", "rum"}, "Romanian", []string{"romanian"}},
	{"bg", "bul", nil, "Bulgarian", []string{"bulgarian"}},
	{"uk", "ukr", nil, "Ukrainian", []string{"ukrainian"}},
	{"mr", "mar", nil, "Marathi", []string{"marathi"}},
	{"fa", "fas", []string{"per"}, "Persian", []string{"persian", "farsi"}},
	{"ur", "urd", nil, "Urdu", []string{"urdu"}},
	{"id", "ind", nil, "Indonesian", []string{"indonesian"}},
	{"ms", "may", []string{"msa"}, "Malay", []string{"malay"}},
	{"kn", "kan", nil, "Kannada", []string{"kannada"}},
	{"ta", "tam", nil, "Tamil", []string{"tamil"}},
	{"te", "tel", nil, "Telugu", []string{"telugu"}},
	{"gu", "guj", nil, "Gujarati", []string{"gujarati"}},
	{"ml", "mal", nil, "Malayalam", []string{"malayalam"}},
	{"pa", "pan", nil, "Punjabi", []string{"punjabi"}},
	{"bn", "ben", nil, "Bengali", []string{"bengali"}},
	{"sr", "srp", nil, "Serbian", []string{"serbian"}},
	{"sk", "slk", []string{"slo"}, "Slovak", []string{"slovak"}},
	{"sl", "slv", nil, "Slovenian", []string{"slovenian"}},
	{"hr", "hrv", nil, "Croatian", []string{"croatian"}},
	{"ca", "cat", nil, "Catalan", []string{"catalan"}},
	{"lt", "lit", nil, "Lithuanian", []string{"lithuanian"}},
	{"lv", "lav", nil, "Latvian", []string{"latvian"}},
	{"et", "est", nil, "Estonian", []string{"estonian"}},
	{"gl", "glg", nil, "Galician", []string{"galician"}},
	{"ne", "nep", nil, "Nepali", []string{"nepali"}},
}

// Index maps built at init time.
var (
	byCode2 map[string]*entry
	byCode3 map[string]*entry
	byWord  map[string]*entry
)

func init() {
	byCode2 = make(map[string]*entry, len(languages))
	byCode3 = make(map[string]*entry, len(languages)*2)
	byWord = make(map[string]*entry, len(languages))
	for i := range languages {
		e := &languages[i]
		byCode2[e.code2] = e
		byCode3[e.code3] = e
		for _, alt := range e.alt3 {
			byCode3[alt] = e
		}
		for _, w := range e.words {
			byWord[w] = e
		}
	}
}

func lookup(code string) *entry {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return nil
	}
	if e, ok := byCode3[code]; ok {
		return e
	}
	if e, ok := byCode2[code]; ok {
		return e
	}
	if e, ok := byWord[code]; ok {
		return e
	}
	return nil
}

// Normalize returns the canonical three-letter code for any recognized
// code, word form, or BCP 47 tag. Empty input yields "und". Unrecognized
// three-letter codes pass through lowercased.
func Normalize(code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" || code == Undetermined {
		return Undetermined
	}
	if e := lookup(code); e != nil {
		return e.code3
	}
	if iso3, ok := parseISO3(code); ok {
		if e := lookup(iso3); e != nil {
			return e.code3
		}
		return iso3
	}
	if len(code) == 3 {
		return code
	}
	return Undetermined
}

func parseISO3(code string) (string, bool) {
	tag, err := xlanguage.Parse(code)
	if err != nil {
		return "", false
	}
	base, confidence := tag.Base()
	if confidence == xlanguage.No {
		return "", false
	}
	iso3 := base.ISO3()
	if iso3 == "" || iso3 == Undetermined {
		return "", false
	}
	return iso3, true
}

// NormalizeList normalizes and deduplicates codes, preserving first-seen
// order. Entries that resolve to "und" are dropped.
func NormalizeList(codes []string) []string {
	if len(codes) == 0 {
		return nil
	}
	normalized := make([]string, 0, len(codes))
	seen := make(map[string]struct{}, len(codes))
	for _, code := range codes {
		canonical := Normalize(code)
		if canonical == Undetermined {
			continue
		}
		if _, ok := seen[canonical]; ok {
			continue
		}
		seen[canonical] = struct{}{}
		normalized = append(normalized, canonical)
	}
	return normalized
}

// DisplayName returns the track title for a language code. "und" and empty
// input map to an empty title; unknown codes are returned unchanged.
func DisplayName(code string) string {
	trimmed := strings.TrimSpace(code)
	if trimmed == "" || strings.EqualFold(trimmed, Undetermined) {
		return ""
	}
	if e := lookup(trimmed); e != nil {
		return e.display
	}
	return trimmed
}

// Known reports whether the code is part of the built-in title table.
func Known(code string) bool {
	return lookup(code) != nil
}

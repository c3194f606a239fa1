package language

import "strings"

type entry struct {
	code    string
	display string
}

var languages = []entry{
	{"en", "English"},
	{"zh", "Chinese"},
	{"ja", "Japanese"},
	{"ko", "Korean"},
	{"es", "Spanish"},
	{"fr", "French"},
	{"de", "German"},
	{"it", "Italian"},
	{"pt", "Portuguese"},
	{"ru", "Russian"},
	{"ar", "Arabic"},
	{"hi", "Hindi"},
	{"th", "Thai"},
	{"vi", "Vietnamese"},
	{"id", "Indonesian"},
}

// Script variants that platforms commonly attach to Chinese tracks.
var scriptNames = map[string]string{
	"hans": "Simplified",
	"hant": "Traditional",
}

var byCode = func() map[string]*entry {
	m := make(map[string]*entry, len(languages))
	for i := range languages {
		m[languages[i].code] = &languages[i]
	}
	return m
}()

// Base returns the lowercased primary subtag of a track language tag:
// "zh-Hans" yields "zh", "en-US" yields "en".
func Base(tag string) string {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if i := strings.IndexAny(tag, "-_"); i >= 0 {
		tag = tag[:i]
	}
	return tag
}

// SpeechCode converts a track language tag to the two-letter code the speech
// recognizer accepts. Unrecognized or empty tags yield the empty string,
// which means auto-detect.
func SpeechCode(tag string) string {
	base := Base(tag)
	if _, ok := byCode[base]; ok {
		return base
	}
	return ""
}

// DisplayName renders a human-readable name for a track language tag,
// including the script variant when recognized: "zh-Hans" becomes
// "Chinese (Simplified)". Unrecognized tags come back uppercased.
func DisplayName(tag string) string {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return "Unknown"
	}
	e, ok := byCode[Base(tag)]
	if !ok {
		return strings.ToUpper(tag)
	}
	parts := strings.FieldsFunc(strings.ToLower(tag), func(r rune) bool { return r == '-' || r == '_' })
	for _, part := range parts[1:] {
		if script, ok := scriptNames[part]; ok {
			return e.display + " (" + script + ")"
		}
	}
	return e.display
}

// NormalizeList trims and deduplicates language tags, preserving order.
func NormalizeList(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		key := strings.ToLower(tag)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, tag)
	}
	return out
}

package subtitle

import (
	"regexp"
	"strings"
)

var (
	markupTagRe    = regexp.MustCompile(`<[^>]+>`)
	speakerLatinRe = regexp.MustCompile(`^\[.*?\]:\s*`)
	speakerWideRe  = regexp.MustCompile(`^【.*?】：\s*`)

	entityReplacer = strings.NewReplacer(
		"&nbsp;", " ",
		"&amp;", "&",
		"&lt;", "<",
		"&gt;", ">",
		"&quot;", `"`,
	)
)

// Normalize cleans a segment sequence for transcript output: markup tags and
// a single leading speaker label are stripped, common HTML entities are
// unescaped, segments left empty are dropped, and consecutive segments with
// identical text collapse into the first occurrence. The input is not
// modified; running Normalize on its own output is a no-op.
func Normalize(segments []Segment) []Segment {
	cleaned := make([]Segment, 0, len(segments))
	for _, seg := range segments {
		text := markupTagRe.ReplaceAllString(seg.Text, "")
		text = speakerLatinRe.ReplaceAllString(text, "")
		text = speakerWideRe.ReplaceAllString(text, "")
		text = entityReplacer.Replace(text)
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		if n := len(cleaned); n > 0 && cleaned[n-1].Text == text {
			continue
		}
		cleaned = append(cleaned, Segment{Start: seg.Start, End: seg.End, Text: text})
	}
	return cleaned
}

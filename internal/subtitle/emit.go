package subtitle

import (
	"fmt"
	"regexp"
	"strings"

	"vidscribe/internal/timecode"
)

// DefaultParagraphGap is the silence, in seconds, after which plain-text
// output starts a new paragraph.
const DefaultParagraphGap = 5.0

// TextOptions controls plain-text rendering.
type TextOptions struct {
	// WithTimestamps prefixes every line with "[start -> end]".
	WithTimestamps bool
	// ParagraphGap is the gap threshold in seconds; values <= 0 use
	// DefaultParagraphGap.
	ParagraphGap float64
}

var (
	runSpacesRe   = regexp.MustCompile(` {2,}`)
	runNewlinesRe = regexp.MustCompile(`\n{3,}`)
)

// ToText renders segments as plain text, one line per segment. A blank line is
// inserted whenever the gap between a segment's start and the previous
// segment's end exceeds the paragraph threshold. Runs of interior spaces
// collapse to one and runs of blank lines to a single blank line.
func ToText(segments []Segment, opts TextOptions) string {
	if len(segments) == 0 {
		return ""
	}
	gap := opts.ParagraphGap
	if gap <= 0 {
		gap = DefaultParagraphGap
	}

	lines := make([]string, 0, len(segments))
	prevEnd := 0.0
	for _, seg := range segments {
		if seg.Start-prevEnd > gap && len(lines) > 0 {
			lines = append(lines, "")
		}
		if opts.WithTimestamps {
			start := timecode.Format(seg.Start, timecode.SeparatorDot)
			end := timecode.Format(seg.End, timecode.SeparatorDot)
			lines = append(lines, fmt.Sprintf("[%s -> %s] %s", start, end, seg.Text))
		} else {
			lines = append(lines, seg.Text)
		}
		prevEnd = seg.End
	}

	text := strings.Join(lines, "\n")
	text = runSpacesRe.ReplaceAllString(text, " ")
	text = runNewlinesRe.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

// ToSRT renders segments as SubRip with 1-based contiguous cue indexes and
// comma-style timestamps. Paragraph gaps are a display concern and do not
// affect numbering. Zero segments yield an empty string.
func ToSRT(segments []Segment) string {
	if len(segments) == 0 {
		return ""
	}
	var b strings.Builder
	for i, seg := range segments {
		start := timecode.Format(seg.Start, timecode.SeparatorComma)
		end := timecode.Format(seg.End, timecode.SeparatorComma)
		fmt.Fprintf(&b, "%d\n%s --> %s\n%s\n", i+1, start, end, seg.Text)
		if i < len(segments)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// ToVTT renders segments as WebVTT with dot-style timestamps. Zero segments
// yield the bare header.
func ToVTT(segments []Segment) string {
	var b strings.Builder
	b.WriteString("WEBVTT\n\n")
	for i, seg := range segments {
		start := timecode.Format(seg.Start, timecode.SeparatorDot)
		end := timecode.Format(seg.End, timecode.SeparatorDot)
		fmt.Fprintf(&b, "%s --> %s\n%s\n", start, end, seg.Text)
		if i < len(segments)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

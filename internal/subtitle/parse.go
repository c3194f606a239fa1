package subtitle

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"vidscribe/internal/timecode"
)

const arrowToken = "-->"

var (
	vttCueRe   = regexp.MustCompile(`^\s*([\d:.]+)\s*-->\s*([\d:.]+)`)
	srtCueRe   = regexp.MustCompile(`^\s*([\d:,.]+)\s*-->\s*([\d:,.]+)`)
	blockSplit = regexp.MustCompile(`\n\s*\n`)
)

// Parse decodes raw subtitle bytes and parses them according to the detected
// format. Detection is a one-shot sniff: content starting with "WEBVTT" is
// WebVTT, a purely numeric first line means SubRip, anything else runs the
// generic fallback. Parse never fails; unusable input yields an empty segment
// list which callers must treat as "no usable subtitle".
func Parse(data []byte) Document {
	content := decode(data)
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return Document{Format: FormatGeneric}
	}
	switch {
	case strings.HasPrefix(trimmed, "WEBVTT"):
		return Document{Format: FormatVTT, Segments: parseVTT(trimmed)}
	case isNumericLine(firstLine(trimmed)):
		return Document{Format: FormatSRT, Segments: parseSRT(trimmed)}
	default:
		return Document{Format: FormatGeneric, Segments: parseGeneric(trimmed)}
	}
}

func firstLine(content string) string {
	if idx := strings.IndexByte(content, '\n'); idx >= 0 {
		return content[:idx]
	}
	return content
}

func isNumericLine(line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}
	_, err := strconv.Atoi(line)
	return err == nil
}

// parseVTT scans line by line. Blank lines, the header, and NOTE comment
// blocks are skipped; a line containing the arrow token opens a cue whose text
// is every following non-blank line up to the next blank line or cue boundary.
// Cues without text lines are dropped.
func parseVTT(content string) []Segment {
	var segments []Segment
	lines := strings.Split(content, "\n")

	i := 0
	for i < len(lines) {
		line := strings.TrimSpace(lines[i])
		if line == "" || strings.HasPrefix(line, "WEBVTT") || strings.HasPrefix(line, "NOTE") {
			i++
			continue
		}
		if !strings.Contains(line, arrowToken) {
			i++
			continue
		}
		match := vttCueRe.FindStringSubmatch(line)
		if match == nil {
			i++
			continue
		}
		i++
		var textLines []string
		for i < len(lines) && strings.TrimSpace(lines[i]) != "" && !strings.Contains(lines[i], arrowToken) {
			textLines = append(textLines, strings.TrimSpace(lines[i]))
			i++
		}
		if len(textLines) == 0 {
			continue
		}
		segments = append(segments, Segment{
			Start: timecode.Parse(match[1]),
			End:   timecode.Parse(match[2]),
			Text:  strings.Join(textLines, " "),
		})
	}
	return segments
}

// parseSRT splits the document into blank-line-delimited blocks. Within each
// block the first arrow line carries the timing (the numeric index line and
// anything before the arrow is ignored) and every later line is cue text.
// Blocks without a valid arrow line are dropped.
func parseSRT(content string) []Segment {
	var segments []Segment
	for _, block := range blockSplit.Split(content, -1) {
		lines := strings.Split(strings.TrimSpace(block), "\n")
		if len(lines) < 2 {
			continue
		}
		arrowIdx := -1
		for idx, line := range lines {
			if strings.Contains(line, arrowToken) {
				arrowIdx = idx
				break
			}
		}
		if arrowIdx < 0 || arrowIdx == len(lines)-1 {
			continue
		}
		match := srtCueRe.FindStringSubmatch(lines[arrowIdx])
		if match == nil {
			continue
		}
		var textParts []string
		for _, line := range lines[arrowIdx+1:] {
			if trimmed := strings.TrimSpace(line); trimmed != "" {
				textParts = append(textParts, trimmed)
			}
		}
		if len(textParts) == 0 {
			continue
		}
		segments = append(segments, Segment{
			Start: timecode.Parse(strings.ReplaceAll(match[1], ",", ".")),
			End:   timecode.Parse(strings.ReplaceAll(match[2], ",", ".")),
			Text:  strings.Join(textParts, " "),
		})
	}
	return segments
}

// parseGeneric is the last-resort parser for unidentified formats: every
// non-blank line that is not an index, arrow line, or header token becomes a
// zero-duration segment. The output carries no usable timing.
func parseGeneric(content string) []Segment {
	var segments []Segment
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" ||
			strings.Contains(line, arrowToken) ||
			isNumericLine(line) ||
			strings.HasPrefix(line, "WEBVTT") ||
			strings.HasPrefix(line, "NOTE") {
			continue
		}
		if utf8.RuneCountInString(line) <= 2 {
			continue
		}
		segments = append(segments, Segment{Text: line})
	}
	return segments
}

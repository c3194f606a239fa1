package subtitle

import (
	"fmt"
	"strings"
)

// OutputFormat is the closed set of transcript encodings the emitter can
// produce.
type OutputFormat string

const (
	OutputText OutputFormat = "text"
	OutputSRT  OutputFormat = "srt"
	OutputVTT  OutputFormat = "vtt"
)

// ParseOutputFormat validates a user-supplied format string.
func ParseOutputFormat(value string) (OutputFormat, error) {
	switch OutputFormat(strings.ToLower(strings.TrimSpace(value))) {
	case OutputText:
		return OutputText, nil
	case OutputSRT:
		return OutputSRT, nil
	case OutputVTT:
		return OutputVTT, nil
	default:
		return "", fmt.Errorf("output format: unsupported value %q (want text, srt, or vtt)", value)
	}
}

// Ext returns the artifact file extension for the format.
func (f OutputFormat) Ext() string {
	switch f {
	case OutputSRT:
		return "srt"
	case OutputVTT:
		return "vtt"
	default:
		return "txt"
	}
}

// Render emits segments in the chosen format.
func (f OutputFormat) Render(segments []Segment, opts TextOptions) string {
	switch f {
	case OutputSRT:
		return ToSRT(segments)
	case OutputVTT:
		return ToVTT(segments)
	default:
		return ToText(segments, opts)
	}
}

package timecode

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Separator selects the fractional separator used when rendering timestamps.
type Separator string

const (
	// SeparatorDot renders "HH:MM:SS.mmm" (WebVTT and plain text).
	SeparatorDot Separator = "."
	// SeparatorComma renders "HH:MM:SS,mmm" (SubRip).
	SeparatorComma Separator = ","
)

// Parse converts a timestamp string to fractional seconds. Accepted shapes are
// "HH:MM:SS.mmm", "MM:SS.mmm", and "SS.mmm" with a dot fractional separator;
// SubRip comma timestamps must be normalized to dots before calling Parse.
// Malformed input yields 0 rather than an error so that a single bad cue never
// aborts parsing of the surrounding file.
func Parse(value string) float64 {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0
	}
	parts := strings.Split(value, ":")
	switch len(parts) {
	case 3:
		hours, errH := strconv.Atoi(parts[0])
		minutes, errM := strconv.Atoi(parts[1])
		seconds, errS := strconv.ParseFloat(parts[2], 64)
		if errH != nil || errM != nil || errS != nil {
			return 0
		}
		return float64(hours)*3600 + float64(minutes)*60 + seconds
	case 2:
		minutes, errM := strconv.Atoi(parts[0])
		seconds, errS := strconv.ParseFloat(parts[1], 64)
		if errM != nil || errS != nil {
			return 0
		}
		return float64(minutes)*60 + seconds
	case 1:
		seconds, err := strconv.ParseFloat(parts[0], 64)
		if err != nil {
			return 0
		}
		return seconds
	default:
		return 0
	}
}

// Format renders fractional seconds as a zero-padded "HH:MM:SS" timestamp with
// three millisecond digits. Hours are not wrapped; values past 99 hours simply
// widen the field. Negative input clamps to zero.
func Format(seconds float64, sep Separator) string {
	if seconds < 0 || math.IsNaN(seconds) {
		seconds = 0
	}
	if sep != SeparatorComma {
		sep = SeparatorDot
	}
	whole := int64(seconds)
	millis := int64(math.Round((seconds - float64(whole)) * 1000))
	if millis >= 1000 {
		whole++
		millis -= 1000
	}
	hours := whole / 3600
	minutes := (whole % 3600) / 60
	secs := whole % 60
	return fmt.Sprintf("%02d:%02d:%02d%s%03d", hours, minutes, secs, sep, millis)
}

package subtitle

// Segment is one timed cue. Start and End are fractional seconds with
// End >= Start >= 0. Segments are value types; normalization builds new
// slices rather than mutating input.
type Segment struct {
	Start float64
	End   float64
	Text  string
}

// Format identifies the detected source dialect of a parsed document.
type Format string

const (
	FormatVTT     Format = "vtt"
	FormatSRT     Format = "srt"
	FormatGeneric Format = "generic"
)

// Document is the result of parsing one subtitle file.
type Document struct {
	Format   Format
	Segments []Segment
}

// Timed reports whether the document carries usable timing. Generic parses
// emit zero-duration segments and should be treated as lower confidence.
func (d Document) Timed() bool {
	return d.Format != FormatGeneric
}

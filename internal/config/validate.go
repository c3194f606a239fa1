package config

import (
	"fmt"

	"vidscribe/internal/services/whisper"
	"vidscribe/internal/subtitle"
)

// Validate checks field values after normalization. Error messages name the
// offending field path.
func (c *Config) Validate() error {
	if c.Output.Dir == "" {
		return fmt.Errorf("output.dir: must not be empty")
	}
	if _, err := subtitle.ParseOutputFormat(c.Output.Format); err != nil {
		return fmt.Errorf("output.format: %w", err)
	}
	if c.Subtitles.ParagraphGapSecs <= 0 {
		return fmt.Errorf("subtitles.paragraph_gap_seconds: must be positive, got %v", c.Subtitles.ParagraphGapSecs)
	}
	if c.Subtitles.MinFileBytes < 0 {
		return fmt.Errorf("subtitles.min_file_bytes: must not be negative")
	}
	if c.Subtitles.MinTranscriptChars < 0 {
		return fmt.Errorf("subtitles.min_transcript_chars: must not be negative")
	}
	if !whisper.KnownModel(c.Whisper.Model) {
		return fmt.Errorf("whisper.model: unknown model %q", c.Whisper.Model)
	}
	switch c.Whisper.Device {
	case "auto", "cpu", "cuda":
	default:
		return fmt.Errorf("whisper.device: unknown device %q (want auto, cpu, or cuda)", c.Whisper.Device)
	}
	if c.Whisper.BeamSize <= 0 {
		return fmt.Errorf("whisper.beam_size: must be positive")
	}
	switch c.Logging.Format {
	case "", "console", "json":
	default:
		return fmt.Errorf("logging.format: unknown format %q", c.Logging.Format)
	}
	return nil
}

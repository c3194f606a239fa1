package config

const (
	defaultOutputDir          = "~/Downloads/vidscribe"
	defaultOutputFormat       = "text"
	defaultParagraphGapSecs   = 5.0
	defaultMinFileBytes       = 10
	defaultMinTranscriptChars = 20
	defaultWhisperModel       = "medium"
	defaultWhisperDevice      = "auto"
	defaultWhisperBeamSize    = 5
	defaultCookieBrowser      = "chrome"
	defaultLogLevel           = "info"
	defaultLogFormat          = "console"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Output: Output{
			Dir:    expandHome(defaultOutputDir),
			Format: defaultOutputFormat,
		},
		Subtitles: Subtitles{
			ParagraphGapSecs:   defaultParagraphGapSecs,
			MinFileBytes:       defaultMinFileBytes,
			MinTranscriptChars: defaultMinTranscriptChars,
		},
		Whisper: Whisper{
			Model:    defaultWhisperModel,
			Device:   defaultWhisperDevice,
			BeamSize: defaultWhisperBeamSize,
		},
		Network: Network{
			UseCookies:    true,
			CookieBrowser: defaultCookieBrowser,
		},
		Logging: Logging{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
	}
}

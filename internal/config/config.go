package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"vidscribe/internal/language"
)

//go:embed sample_config.toml
var sampleConfig string

// Output controls where and how transcripts are written.
type Output struct {
	Dir            string `toml:"dir"`
	Format         string `toml:"format"`
	WithTimestamps bool   `toml:"with_timestamps"`
}

// Subtitles controls subtitle selection and the fallback thresholds.
type Subtitles struct {
	Language           string   `toml:"language"`
	LanguagePriority   []string `toml:"language_priority"`
	ParagraphGapSecs   float64  `toml:"paragraph_gap_seconds"`
	MinFileBytes       int64    `toml:"min_file_bytes"`
	MinTranscriptChars int      `toml:"min_transcript_chars"`
}

// Whisper controls the transcription engine.
type Whisper struct {
	Model    string `toml:"model"`
	Device   string `toml:"device"`
	BeamSize int    `toml:"beam_size"`
}

// Network controls how the fetcher reaches the platform.
type Network struct {
	Proxy         string `toml:"proxy"`
	UseCookies    bool   `toml:"use_cookies"`
	CookieBrowser string `toml:"cookie_browser"`
}

// Logging controls log output.
type Logging struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Config is the root configuration document.
type Config struct {
	Output    Output    `toml:"output"`
	Subtitles Subtitles `toml:"subtitles"`
	Whisper   Whisper   `toml:"whisper"`
	Network   Network   `toml:"network"`
	Logging   Logging   `toml:"logging"`
}

// DefaultPath returns the conventional config file location.
func DefaultPath() string {
	return expandHome("~/.config/vidscribe/config.toml")
}

// Load reads the config at path, applying defaults for absent fields. A
// missing file yields the defaults without error; a malformed file fails.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		path = DefaultPath()
	}
	data, err := os.ReadFile(expandHome(path))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// WriteSample writes the embedded sample configuration to path, refusing to
// overwrite an existing file.
func WriteSample(path string) error {
	path = expandHome(path)
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists: %s", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("ensure config directory: %w", err)
	}
	return os.WriteFile(path, []byte(sampleConfig), 0o644)
}

// EnsureOutputDir creates the configured output directory if needed.
func (c *Config) EnsureOutputDir() error {
	if err := os.MkdirAll(c.Output.Dir, 0o755); err != nil {
		return fmt.Errorf("ensure output directory: %w", err)
	}
	return nil
}

func (c *Config) normalize() {
	c.Output.Dir = expandHome(strings.TrimSpace(c.Output.Dir))
	c.Output.Format = strings.ToLower(strings.TrimSpace(c.Output.Format))
	c.Subtitles.Language = strings.TrimSpace(c.Subtitles.Language)
	c.Subtitles.LanguagePriority = language.NormalizeList(c.Subtitles.LanguagePriority)
	c.Whisper.Model = strings.TrimSpace(c.Whisper.Model)
	c.Whisper.Device = strings.ToLower(strings.TrimSpace(c.Whisper.Device))
	c.Network.CookieBrowser = strings.ToLower(strings.TrimSpace(c.Network.CookieBrowser))
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}

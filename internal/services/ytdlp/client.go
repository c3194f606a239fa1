package ytdlp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"vidscribe/internal/logging"
	"vidscribe/internal/media"
	"vidscribe/internal/services"
	"vidscribe/internal/tracks"
	"vidscribe/internal/videourl"
)

// DefaultBinary is the yt-dlp executable resolved from PATH.
const DefaultBinary = "yt-dlp"

// Options configures the fetcher.
type Options struct {
	Binary        string
	Proxy         string
	UseCookies    bool
	CookieBrowser string
}

// Client implements media.Fetcher on top of the yt-dlp command line tool.
type Client struct {
	opts   Options
	logger *slog.Logger
	runner runnerFunc
}

// NewClient builds a fetcher. A nil logger disables logging.
func NewClient(opts Options, logger *slog.Logger) *Client {
	if opts.Binary == "" {
		opts.Binary = DefaultBinary
	}
	if opts.CookieBrowser == "" {
		opts.CookieBrowser = "chrome"
	}
	return &Client{
		opts:   opts,
		logger: logging.NewComponentLogger(logger, "ytdlp"),
		runner: runCommand,
	}
}

// WithRunner replaces the command runner (used in tests).
func (c *Client) WithRunner(runner runnerFunc) *Client {
	c.runner = runner
	return c
}

type metadataPayload struct {
	Title             string                     `json:"title"`
	Duration          float64                    `json:"duration"`
	Subtitles         map[string]json.RawMessage `json:"subtitles"`
	AutomaticCaptions map[string]json.RawMessage `json:"automatic_captions"`
}

// Metadata probes the video without downloading anything.
func (c *Client) Metadata(ctx context.Context, url string) (media.Info, error) {
	args := c.commonArgs()
	args = append(args, "--dump-json", "--skip-download", url)

	var payload strings.Builder
	err := c.runner(ctx, func(line string) { payload.WriteString(line) }, c.opts.Binary, args...)
	if err != nil {
		return media.Info{}, services.Wrap(services.ErrExternalTool, "fetching_info", "probe video", "metadata unavailable", err)
	}

	var meta metadataPayload
	if err := json.Unmarshal([]byte(payload.String()), &meta); err != nil {
		return media.Info{}, services.Wrap(services.ErrExternalTool, "fetching_info", "decode metadata", "unexpected yt-dlp output", err)
	}

	info := media.Info{
		Title:           meta.Title,
		DurationSeconds: meta.Duration,
		Platform:        videourl.Detect(url),
		ManualSubtitles: sortedKeys(meta.Subtitles),
		AutoSubtitles:   sortedKeys(meta.AutomaticCaptions),
	}
	if info.Title == "" {
		info.Title = "Unknown"
	}
	return info, nil
}

var downloadProgressRe = regexp.MustCompile(`^\[download\]\s+([\d.]+)%`)

// DownloadAudio downloads the best audio stream as mp3 into destDir and
// reports 0-100 percent progress parsed from tool output.
func (c *Client) DownloadAudio(ctx context.Context, url, destDir string, progress func(float64)) (string, error) {
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", services.Wrap(services.ErrConfiguration, "downloading_audio", "ensure directory", destDir, err)
	}

	args := c.commonArgs()
	args = append(args,
		"-f", "bestaudio/best",
		"--extract-audio",
		"--audio-format", "mp3",
		"--audio-quality", "192K",
		"--newline",
		"-o", filepath.Join(destDir, "audio.%(ext)s"),
		url,
	)

	onLine := func(line string) {
		if progress == nil {
			return
		}
		if m := downloadProgressRe.FindStringSubmatch(strings.TrimSpace(line)); m != nil {
			if pct, err := strconv.ParseFloat(m[1], 64); err == nil {
				progress(pct)
			}
		}
	}
	if err := c.runner(ctx, onLine, c.opts.Binary, args...); err != nil {
		return "", services.Wrap(services.ErrExternalTool, "downloading_audio", "run yt-dlp", "audio download failed", err)
	}

	path := filepath.Join(destDir, "audio.mp3")
	if _, err := os.Stat(path); err != nil {
		return "", services.Wrap(services.ErrExternalTool, "downloading_audio", "locate output", "download finished but audio file is missing", err)
	}
	if progress != nil {
		progress(100)
	}
	return path, nil
}

// DownloadSubtitle downloads one subtitle track into destDir and returns the
// resulting file. yt-dlp appends the language and extension to the template.
func (c *Client) DownloadSubtitle(ctx context.Context, url, destDir string, selection tracks.Selection) (media.SubtitleFile, error) {
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return media.SubtitleFile{}, services.Wrap(services.ErrConfiguration, "downloading_subtitle", "ensure directory", destDir, err)
	}

	args := c.commonArgs()
	args = append(args, "--skip-download")
	if selection.Automatic {
		args = append(args, "--write-auto-subs")
	} else {
		args = append(args, "--write-subs")
	}
	args = append(args,
		"--sub-langs", selection.Language,
		"--sub-format", "vtt/srt",
		"-o", filepath.Join(destDir, "subtitle.%(ext)s"),
		url,
	)
	if err := c.runner(ctx, nil, c.opts.Binary, args...); err != nil {
		return media.SubtitleFile{}, services.Wrap(services.ErrExternalTool, "downloading_subtitle", "run yt-dlp", "subtitle download failed", err)
	}

	path, err := findSubtitleFile(destDir, selection.Language)
	if err != nil {
		return media.SubtitleFile{}, err
	}
	return media.SubtitleFile{
		Path:      path,
		Language:  selection.Language,
		Automatic: selection.Automatic,
	}, nil
}

func (c *Client) commonArgs() []string {
	args := []string{"--quiet", "--no-warnings"}
	if c.opts.Proxy != "" {
		args = append(args, "--proxy", c.opts.Proxy)
	}
	if c.opts.UseCookies {
		args = append(args, "--cookies-from-browser", c.opts.CookieBrowser)
	}
	return args
}

// findSubtitleFile locates the downloaded track. yt-dlp names files
// "subtitle.<lang>.<ext>"; a looser glob catches variants like "zh_Hans".
func findSubtitleFile(destDir, language string) (string, error) {
	candidates := []string{
		"subtitle." + language + ".*",
		"subtitle." + strings.ReplaceAll(language, "-", "_") + ".*",
		"subtitle.*",
	}
	for _, pattern := range candidates {
		matches, err := filepath.Glob(filepath.Join(destDir, pattern))
		if err != nil {
			continue
		}
		for _, match := range matches {
			switch strings.ToLower(filepath.Ext(match)) {
			case ".vtt", ".srt":
				return match, nil
			}
		}
	}
	return "", services.Wrap(services.ErrNotFound, "downloading_subtitle", "locate output",
		fmt.Sprintf("no subtitle file for language %q in %s", language, destDir), nil)
}

func sortedKeys(m map[string]json.RawMessage) []string {
	if len(m) == 0 {
		return nil
	}
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

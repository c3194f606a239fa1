package media

import (
	"context"

	"vidscribe/internal/subtitle"
	"vidscribe/internal/tracks"
	"vidscribe/internal/videourl"
)

// Info is the metadata the orchestrator needs before choosing a strategy.
type Info struct {
	Title           string
	DurationSeconds float64
	Platform        videourl.Platform
	ManualSubtitles []string
	AutoSubtitles   []string
}

// Tracks converts the subtitle listings to a selector catalog.
func (i Info) Tracks() tracks.Catalog {
	return tracks.Catalog{Manual: i.ManualSubtitles, Auto: i.AutoSubtitles}
}

// SubtitleFile describes a downloaded subtitle track on disk.
type SubtitleFile struct {
	Path      string
	Language  string
	Automatic bool
}

// Fetcher retrieves video metadata and media bytes from a remote platform.
// Implementations must honor context cancellation at every network boundary.
type Fetcher interface {
	// Metadata fetches title, duration, and the subtitle track catalog
	// without downloading media.
	Metadata(ctx context.Context, url string) (Info, error)

	// DownloadAudio downloads the best audio stream into destDir and returns
	// the file path. The progress callback, when non-nil, receives 0-100
	// percent values.
	DownloadAudio(ctx context.Context, url, destDir string, progress func(percent float64)) (string, error)

	// DownloadSubtitle downloads the selected subtitle track into destDir.
	DownloadSubtitle(ctx context.Context, url, destDir string, selection tracks.Selection) (SubtitleFile, error)
}

// TranscribeRequest carries one transcription job.
type TranscribeRequest struct {
	AudioPath string
	Model     string
	// Language pins the spoken language; empty means auto-detect.
	Language string
	// Progress, when non-nil, receives (processed, estimatedTotal) segment
	// counts as transcription advances.
	Progress func(processed, estimatedTotal int)
}

// Transcriber runs speech recognition over a downloaded audio file.
// Implementations may keep a warm model between calls: a request for the same
// model size and device reuses the loaded model without reinitialization.
type Transcriber interface {
	Transcribe(ctx context.Context, req TranscribeRequest) ([]subtitle.Segment, error)
}

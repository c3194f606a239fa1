package task

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"vidscribe/internal/language"
	"vidscribe/internal/logging"
	"vidscribe/internal/media"
	"vidscribe/internal/services"
	"vidscribe/internal/subtitle"
	"vidscribe/internal/tracks"
	"vidscribe/internal/videourl"
)

// ErrBusy is returned by Start while another task is still running.
var ErrBusy = errors.New("task: another task is active")

// Source identifies where the transcript text came from.
type Source string

const (
	SourceSubtitle      Source = "subtitle"
	SourceTranscription Source = "transcription"
)

// Request describes one transcript job.
type Request struct {
	URL            string
	OutputDir      string
	Format         subtitle.OutputFormat
	WithTimestamps bool
	// Language pins subtitle selection and the transcription language.
	Language string
	// Model overrides the configured transcription model size.
	Model string
	// ForceFallback skips the subtitle stages and transcribes directly.
	ForceFallback bool
}

// Result is the outcome of a completed task.
type Result struct {
	Title        string
	OutputPath   string
	Source       Source
	Language     string
	Automatic    bool
	SegmentCount int
}

// Options tune pipeline thresholds. Zero values select the defaults.
type Options struct {
	// ParagraphGap is the silence, in seconds, that starts a new paragraph
	// in text output.
	ParagraphGap float64
	// MinSubtitleFileBytes is the smallest downloaded subtitle file worth
	// parsing; anything below falls back to transcription.
	MinSubtitleFileBytes int64
	// MinTranscriptChars is the smallest normalized transcript accepted
	// from the subtitle path.
	MinTranscriptChars int
	// LanguagePriority overrides the per-platform subtitle preference list.
	LanguagePriority []string
}

func (o Options) withDefaults() Options {
	if o.ParagraphGap <= 0 {
		o.ParagraphGap = subtitle.DefaultParagraphGap
	}
	if o.MinSubtitleFileBytes <= 0 {
		o.MinSubtitleFileBytes = 10
	}
	if o.MinTranscriptChars <= 0 {
		o.MinTranscriptChars = 20
	}
	return o
}

// Task is one in-flight or finished transcript job. Status and Result are
// safe to read from any goroutine; Result is meaningful once Done is closed.
type Task struct {
	ID uuid.UUID

	mu     sync.Mutex
	status Status

	cancel    context.CancelFunc
	cancelled atomic.Bool
	done      chan struct{}

	result Result
	err    error
}

// Status returns the current lifecycle state.
func (t *Task) Status() Status {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.status
}

// Cancel requests cancellation. The task settles in StatusCancelled; stages
// already past their cancellation check finish their current call first.
func (t *Task) Cancel() {
	t.cancelled.Store(true)
	t.cancel()
}

// Done is closed when the task reaches a terminal status.
func (t *Task) Done() <-chan struct{} {
	return t.done
}

// Result returns the outcome. Valid after Done is closed; the error is nil
// only for a completed task.
func (t *Task) Result() (Result, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.result, t.err
}

func (t *Task) interrupted(ctx context.Context) bool {
	return t.cancelled.Load() || ctx.Err() != nil
}

// Orchestrator runs transcript tasks one at a time.
type Orchestrator struct {
	fetcher     media.Fetcher
	transcriber media.Transcriber
	opts        Options
	logger      *slog.Logger
	sink        Sink

	mu     sync.Mutex
	active *Task
}

// NewOrchestrator wires the pipeline. A nil sink drops events; a nil logger
// disables logging.
func NewOrchestrator(fetcher media.Fetcher, transcriber media.Transcriber, opts Options, logger *slog.Logger, sink Sink) *Orchestrator {
	return &Orchestrator{
		fetcher:     fetcher,
		transcriber: transcriber,
		opts:        opts.withDefaults(),
		logger:      logging.NewComponentLogger(logger, "task"),
		sink:        sink,
	}
}

// Active returns the most recently started task, which may be terminal.
func (o *Orchestrator) Active() *Task {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.active
}

// Start launches a task and returns immediately. Only one task runs at a
// time; Start fails with ErrBusy while a previous task is still working.
func (o *Orchestrator) Start(ctx context.Context, req Request) (*Task, error) {
	req.URL = videourl.Clean(req.URL)
	if req.URL == "" {
		return nil, services.Wrap(services.ErrValidation, "fetching_info", "validate request", "url required", nil)
	}
	if req.Format == "" {
		req.Format = subtitle.OutputText
	}
	if req.OutputDir == "" {
		return nil, services.Wrap(services.ErrValidation, "fetching_info", "validate request", "output directory required", nil)
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	if o.active != nil && !o.active.Status().IsTerminal() {
		return nil, ErrBusy
	}

	runCtx, cancel := context.WithCancel(ctx)
	t := &Task{
		ID:     uuid.New(),
		status: StatusIdle,
		cancel: cancel,
		done:   make(chan struct{}),
	}
	o.active = t

	runCtx = services.WithTaskID(runCtx, t.ID.String())
	go o.run(runCtx, t, req)
	return t, nil
}

func (o *Orchestrator) run(ctx context.Context, t *Task, req Request) {
	defer t.cancel()
	defer close(t.done)
	defer func() {
		if r := recover(); r != nil {
			logging.WithContext(ctx, o.logger).Error("task panicked",
				logging.Any("panic", r),
				logging.String("stack", string(debug.Stack())),
			)
			o.fail(ctx, t, fmt.Errorf("task panicked: %v", r))
		}
	}()

	logger := logging.WithContext(ctx, o.logger)

	o.setStatus(ctx, t, StatusFetchingInfo)
	o.progress(t, 5, "fetching video info")
	info, err := o.fetcher.Metadata(ctx, req.URL)
	if err != nil {
		o.fail(ctx, t, err)
		return
	}
	logger.Info("video resolved",
		logging.String("title", info.Title),
		logging.Float64("duration_seconds", info.DurationSeconds),
		logging.String("platform", string(info.Platform)),
	)
	if t.interrupted(ctx) {
		o.fail(ctx, t, context.Canceled)
		return
	}

	paths, err := CreateRunDir(req.OutputDir, info.Title, time.Now())
	if err != nil {
		o.fail(ctx, t, err)
		return
	}

	var (
		segments  []subtitle.Segment
		source    Source
		language  string
		automatic bool
		saveAt    float64
	)

	if !req.ForceFallback {
		subSegments, selection, subErr := o.trySubtitle(ctx, t, req, info, paths)
		if subErr != nil {
			o.fail(ctx, t, subErr)
			return
		}
		if subSegments != nil {
			segments = subSegments
			source = SourceSubtitle
			language = selection.Language
			automatic = selection.Automatic
			saveAt = 80
		}
	}

	if segments == nil {
		fallbackSegments, fallbackErr := o.transcribe(ctx, t, req, paths)
		if fallbackErr != nil {
			o.fail(ctx, t, fallbackErr)
			return
		}
		segments = fallbackSegments
		source = SourceTranscription
		language = req.Language
		saveAt = 95
	}

	if t.interrupted(ctx) {
		o.fail(ctx, t, context.Canceled)
		return
	}

	o.progress(t, saveAt, "saving transcript")
	outputPath := paths.TranscriptPath(info.Title, req.Format.Ext())
	content := req.Format.Render(segments, subtitle.TextOptions{
		WithTimestamps: req.WithTimestamps,
		ParagraphGap:   o.opts.ParagraphGap,
	})
	if err := os.WriteFile(outputPath, []byte(content), 0o644); err != nil {
		o.fail(ctx, t, fmt.Errorf("write transcript: %w", err))
		return
	}

	result := Result{
		Title:        info.Title,
		OutputPath:   outputPath,
		Source:       source,
		Language:     language,
		Automatic:    automatic,
		SegmentCount: len(segments),
	}
	t.mu.Lock()
	t.result = result
	t.mu.Unlock()

	o.setStatus(ctx, t, StatusCompleted)
	o.progress(t, 100, "done")
	o.publish(Event{TaskID: t.ID, Type: EventCompletion, Result: &result})
	logger.Info("task completed",
		logging.String("output", outputPath),
		logging.String("source", string(source)),
		logging.Int("segments", len(segments)),
	)
}

// trySubtitle attempts the subtitle path. It returns nil segments with a nil
// error when the task should fall back to transcription; a non-nil error is
// fatal (currently only cancellation).
func (o *Orchestrator) trySubtitle(ctx context.Context, t *Task, req Request, info media.Info, paths RunPaths) ([]subtitle.Segment, tracks.Selection, error) {
	logger := logging.WithContext(ctx, o.logger)

	o.setStatus(ctx, t, StatusCheckingSubtitle)
	o.progress(t, 10, "checking subtitle availability")

	catalog := info.Tracks()
	if req.Language != "" && !catalog.Contains(req.Language) {
		o.log(t, fmt.Sprintf("requested language %q has no subtitle track, selecting automatically", req.Language))
		logger.Warn("pinned language unavailable", logging.String("language", req.Language))
	}
	priority := o.opts.LanguagePriority
	if len(priority) == 0 {
		priority = tracks.Priority(info.Platform)
	}
	selection, ok := tracks.Select(catalog, req.Language, priority)
	if !ok {
		o.log(t, "no subtitle tracks available, falling back to transcription")
		return nil, tracks.Selection{}, nil
	}

	o.setStatus(ctx, t, StatusDownloadingSubtitle)
	o.progress(t, 20, fmt.Sprintf("downloading subtitle (%s)", selection.Language))
	file, err := o.fetcher.DownloadSubtitle(ctx, req.URL, paths.Intermediate, selection)
	if err != nil {
		if t.interrupted(ctx) {
			return nil, tracks.Selection{}, context.Canceled
		}
		o.log(t, "subtitle download failed, falling back to transcription")
		logger.Warn("subtitle download failed", logging.Error(err))
		return nil, tracks.Selection{}, nil
	}

	if stat, statErr := os.Stat(file.Path); statErr != nil || stat.Size() < o.opts.MinSubtitleFileBytes {
		o.log(t, "subtitle file unusable, falling back to transcription")
		return nil, tracks.Selection{}, nil
	}

	o.setStatus(ctx, t, StatusParsingSubtitle)
	o.progress(t, 60, "parsing subtitle")
	data, err := os.ReadFile(file.Path)
	if err != nil {
		o.log(t, "subtitle file unreadable, falling back to transcription")
		return nil, tracks.Selection{}, nil
	}
	doc := subtitle.Parse(data)
	segments := subtitle.Normalize(doc.Segments)
	if transcriptChars(segments) < o.opts.MinTranscriptChars {
		o.log(t, "subtitle transcript too short, falling back to transcription")
		logger.Warn("degenerate subtitle transcript",
			logging.String("language", selection.Language),
			logging.Int("segments", len(segments)),
		)
		return nil, tracks.Selection{}, nil
	}
	return segments, selection, nil
}

// transcribe runs the audio fallback. Download progress maps to the 20-50
// band and transcription progress to 55-95.
func (o *Orchestrator) transcribe(ctx context.Context, t *Task, req Request, paths RunPaths) ([]subtitle.Segment, error) {
	o.setStatus(ctx, t, StatusDownloadingAudio)
	o.progress(t, 20, "downloading audio")
	audioPath, err := o.fetcher.DownloadAudio(ctx, req.URL, paths.Intermediate, func(percent float64) {
		o.progress(t, 20+percent*0.30, "downloading audio")
	})
	if err != nil {
		return nil, err
	}
	if t.interrupted(ctx) {
		return nil, context.Canceled
	}

	o.setStatus(ctx, t, StatusTranscribing)
	o.progress(t, 55, "transcribing audio")
	raw, err := o.transcriber.Transcribe(ctx, media.TranscribeRequest{
		AudioPath: audioPath,
		Model:     req.Model,
		Language:  language.SpeechCode(req.Language),
		Progress: func(processed, estimatedTotal int) {
			if estimatedTotal <= 0 {
				return
			}
			fraction := float64(processed) / float64(estimatedTotal)
			if fraction > 1 {
				fraction = 1
			}
			o.progress(t, 55+fraction*40, fmt.Sprintf("transcribing (%d/%d segments)", processed, estimatedTotal))
		},
	})
	if err != nil {
		return nil, err
	}
	segments := subtitle.Normalize(raw)
	if len(segments) == 0 {
		return nil, services.Wrap(services.ErrValidation, "transcribing", "inspect result", "no speech recognized", nil)
	}
	return segments, nil
}

func (o *Orchestrator) fail(ctx context.Context, t *Task, err error) {
	if t.interrupted(ctx) || errors.Is(err, context.Canceled) {
		o.setStatus(ctx, t, StatusCancelled)
		t.mu.Lock()
		t.err = context.Canceled
		t.mu.Unlock()
		o.publish(Event{TaskID: t.ID, Type: EventCompletion, Reason: "cancelled"})
		logging.WithContext(ctx, o.logger).Info("task cancelled")
		return
	}

	o.setStatus(ctx, t, StatusError)
	t.mu.Lock()
	t.err = err
	t.mu.Unlock()
	o.publish(Event{TaskID: t.ID, Type: EventCompletion, Reason: services.Reason(err)})
	logging.WithContext(ctx, o.logger).Error("task failed", logging.Error(err))
}

func (o *Orchestrator) setStatus(ctx context.Context, t *Task, next Status) {
	t.mu.Lock()
	if !t.status.CanTransition(next) {
		t.mu.Unlock()
		return
	}
	t.status = next
	t.mu.Unlock()

	logging.WithContext(services.WithStage(ctx, string(next)), o.logger).Debug("status changed",
		logging.String("status", string(next)),
	)
	o.publish(Event{TaskID: t.ID, Type: EventStatus, Status: next})
}

func (o *Orchestrator) progress(t *Task, percent float64, message string) {
	o.publish(Event{TaskID: t.ID, Type: EventProgress, Percent: percent, Message: message})
}

func (o *Orchestrator) log(t *Task, message string) {
	o.publish(Event{TaskID: t.ID, Type: EventLog, Message: message})
}

func (o *Orchestrator) publish(event Event) {
	if o.sink == nil {
		return
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	o.sink.Publish(event)
}

func transcriptChars(segments []subtitle.Segment) int {
	total := 0
	for _, segment := range segments {
		total += len([]rune(segment.Text))
	}
	return total
}

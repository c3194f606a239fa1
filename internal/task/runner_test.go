package task

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"vidscribe/internal/media"
	"vidscribe/internal/subtitle"
	"vidscribe/internal/tracks"
)

const sampleVTT = "WEBVTT\n\n" +
	"00:00:01.000 --> 00:00:03.000\nHello there friends of the show\n\n" +
	"00:00:04.000 --> 00:00:06.000\nWelcome back again today\n"

type fakeFetcher struct {
	info        media.Info
	metadataErr error

	subtitleData []byte
	subtitleErr  error

	audioStarted chan struct{}
	startedOnce  sync.Once
	audioBlocks  bool
	audioErr     error

	mu                sync.Mutex
	subtitleRequested bool
	audioRequested    bool
}

func (f *fakeFetcher) Metadata(ctx context.Context, url string) (media.Info, error) {
	if f.metadataErr != nil {
		return media.Info{}, f.metadataErr
	}
	return f.info, nil
}

func (f *fakeFetcher) DownloadAudio(ctx context.Context, url, destDir string, progress func(float64)) (string, error) {
	f.mu.Lock()
	f.audioRequested = true
	f.mu.Unlock()
	if f.audioStarted != nil {
		f.startedOnce.Do(func() { close(f.audioStarted) })
	}
	if f.audioBlocks {
		<-ctx.Done()
		return "", ctx.Err()
	}
	if f.audioErr != nil {
		return "", f.audioErr
	}
	if progress != nil {
		progress(50)
		progress(100)
	}
	path := filepath.Join(destDir, "audio.mp3")
	if err := os.WriteFile(path, []byte("mp3"), 0o644); err != nil {
		return "", err
	}
	return path, nil
}

func (f *fakeFetcher) DownloadSubtitle(ctx context.Context, url, destDir string, selection tracks.Selection) (media.SubtitleFile, error) {
	f.mu.Lock()
	f.subtitleRequested = true
	f.mu.Unlock()
	if f.subtitleErr != nil {
		return media.SubtitleFile{}, f.subtitleErr
	}
	path := filepath.Join(destDir, "subtitle."+selection.Language+".vtt")
	if err := os.WriteFile(path, f.subtitleData, 0o644); err != nil {
		return media.SubtitleFile{}, err
	}
	return media.SubtitleFile{Path: path, Language: selection.Language, Automatic: selection.Automatic}, nil
}

type fakeTranscriber struct {
	segments []subtitle.Segment
	err      error

	mu     sync.Mutex
	called bool
}

func (f *fakeTranscriber) Transcribe(ctx context.Context, req media.TranscribeRequest) ([]subtitle.Segment, error) {
	f.mu.Lock()
	f.called = true
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	if req.Progress != nil {
		req.Progress(5, 10)
	}
	return f.segments, nil
}

func (f *fakeTranscriber) wasCalled() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.called
}

type recordSink struct {
	mu     sync.Mutex
	events []Event
}

func (r *recordSink) Publish(event Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *recordSink) statuses() []Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Status
	for _, event := range r.events {
		if event.Type == EventStatus {
			out = append(out, event.Status)
		}
	}
	return out
}

func (r *recordSink) completion() (Event, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, event := range r.events {
		if event.Type == EventCompletion {
			return event, true
		}
	}
	return Event{}, false
}

func (r *recordSink) progressValues() []float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []float64
	for _, event := range r.events {
		if event.Type == EventProgress {
			out = append(out, event.Percent)
		}
	}
	return out
}

func containsStatus(statuses []Status, want Status) bool {
	for _, status := range statuses {
		if status == want {
			return true
		}
	}
	return false
}

func waitDone(t *testing.T, task *Task) {
	t.Helper()
	select {
	case <-task.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("task did not finish")
	}
}

func speechSegments() []subtitle.Segment {
	return []subtitle.Segment{
		{Start: 0, End: 2, Text: "Recognized speech segment one"},
		{Start: 2, End: 4, Text: "Recognized speech segment two"},
	}
}

func TestSubtitlePathProducesArtifact(t *testing.T) {
	fetcher := &fakeFetcher{
		info: media.Info{
			Title:           "Demo Video",
			DurationSeconds: 60,
			ManualSubtitles: []string{"en"},
		},
		subtitleData: []byte(sampleVTT),
	}
	transcriber := &fakeTranscriber{}
	sink := &recordSink{}
	orch := NewOrchestrator(fetcher, transcriber, Options{}, nil, sink)

	task, err := orch.Start(context.Background(), Request{
		URL:       "https://www.youtube.com/watch?v=abc",
		OutputDir: t.TempDir(),
	})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	waitDone(t, task)

	result, err := task.Result()
	if err != nil {
		t.Fatalf("task failed: %v", err)
	}
	if result.Source != SourceSubtitle || result.Language != "en" || result.Automatic {
		t.Fatalf("result = %+v", result)
	}
	data, err := os.ReadFile(result.OutputPath)
	if err != nil {
		t.Fatalf("read artifact: %v", err)
	}
	if !strings.Contains(string(data), "Hello there friends of the show") {
		t.Fatalf("artifact content = %q", data)
	}
	if transcriber.wasCalled() {
		t.Fatal("transcription should not run when subtitles succeed")
	}

	statuses := sink.statuses()
	for _, want := range []Status{StatusFetchingInfo, StatusCheckingSubtitle, StatusDownloadingSubtitle, StatusParsingSubtitle, StatusCompleted} {
		if !containsStatus(statuses, want) {
			t.Fatalf("missing status %s in %v", want, statuses)
		}
	}
	for _, banned := range []Status{StatusDownloadingAudio, StatusTranscribing} {
		if containsStatus(statuses, banned) {
			t.Fatalf("unexpected status %s in %v", banned, statuses)
		}
	}

	progress := sink.progressValues()
	for i := 1; i < len(progress); i++ {
		if progress[i] < progress[i-1] {
			t.Fatalf("progress went backward: %v", progress)
		}
	}
	if progress[len(progress)-1] != 100 {
		t.Fatalf("final progress = %v", progress[len(progress)-1])
	}
}

func TestForceFallbackSkipsSubtitleStages(t *testing.T) {
	fetcher := &fakeFetcher{
		info: media.Info{Title: "Demo", ManualSubtitles: []string{"en"}},
	}
	transcriber := &fakeTranscriber{segments: speechSegments()}
	sink := &recordSink{}
	orch := NewOrchestrator(fetcher, transcriber, Options{}, nil, sink)

	task, err := orch.Start(context.Background(), Request{
		URL:           "url",
		OutputDir:     t.TempDir(),
		ForceFallback: true,
	})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	waitDone(t, task)

	result, err := task.Result()
	if err != nil {
		t.Fatalf("task failed: %v", err)
	}
	if result.Source != SourceTranscription {
		t.Fatalf("source = %s", result.Source)
	}
	if fetcher.subtitleRequested {
		t.Fatal("subtitle download must not run under forced fallback")
	}
	statuses := sink.statuses()
	for _, banned := range []Status{StatusCheckingSubtitle, StatusDownloadingSubtitle, StatusParsingSubtitle} {
		if containsStatus(statuses, banned) {
			t.Fatalf("unexpected status %s in %v", banned, statuses)
		}
	}
}

func TestEmptyCatalogFallsBackToTranscription(t *testing.T) {
	fetcher := &fakeFetcher{info: media.Info{Title: "Silent"}}
	transcriber := &fakeTranscriber{segments: speechSegments()}
	sink := &recordSink{}
	orch := NewOrchestrator(fetcher, transcriber, Options{}, nil, sink)

	task, err := orch.Start(context.Background(), Request{URL: "url", OutputDir: t.TempDir()})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	waitDone(t, task)

	result, err := task.Result()
	if err != nil {
		t.Fatalf("task failed: %v", err)
	}
	if result.Source != SourceTranscription {
		t.Fatalf("source = %s", result.Source)
	}
	if fetcher.subtitleRequested {
		t.Fatal("no subtitle download expected for an empty catalog")
	}
	if !containsStatus(sink.statuses(), StatusCheckingSubtitle) {
		t.Fatal("catalog check stage should still run")
	}
}

func TestDegenerateSubtitleFallsBack(t *testing.T) {
	fetcher := &fakeFetcher{
		info:         media.Info{Title: "Short", ManualSubtitles: []string{"en"}},
		subtitleData: []byte("WEBVTT\n\n00:00:01.000 --> 00:00:02.000\nHi there\n"),
	}
	transcriber := &fakeTranscriber{segments: speechSegments()}
	orch := NewOrchestrator(fetcher, transcriber, Options{MinTranscriptChars: 20}, nil, &recordSink{})

	task, err := orch.Start(context.Background(), Request{URL: "url", OutputDir: t.TempDir()})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	waitDone(t, task)

	result, err := task.Result()
	if err != nil {
		t.Fatalf("task failed: %v", err)
	}
	if result.Source != SourceTranscription {
		t.Fatalf("degenerate subtitle should fall back, got %s", result.Source)
	}
	if !transcriber.wasCalled() {
		t.Fatal("transcriber should have run")
	}
}

func TestSubtitleDownloadFailureFallsBack(t *testing.T) {
	fetcher := &fakeFetcher{
		info:        media.Info{Title: "Flaky", ManualSubtitles: []string{"en"}},
		subtitleErr: errors.New("network reset"),
	}
	transcriber := &fakeTranscriber{segments: speechSegments()}
	orch := NewOrchestrator(fetcher, transcriber, Options{}, nil, &recordSink{})

	task, err := orch.Start(context.Background(), Request{URL: "url", OutputDir: t.TempDir()})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	waitDone(t, task)

	result, err := task.Result()
	if err != nil {
		t.Fatalf("task failed: %v", err)
	}
	if result.Source != SourceTranscription {
		t.Fatalf("source = %s", result.Source)
	}
}

func TestCancelDuringAudioDownload(t *testing.T) {
	fetcher := &fakeFetcher{
		info:         media.Info{Title: "Long"},
		audioStarted: make(chan struct{}),
		audioBlocks:  true,
	}
	sink := &recordSink{}
	orch := NewOrchestrator(fetcher, &fakeTranscriber{}, Options{}, nil, sink)

	outputDir := t.TempDir()
	task, err := orch.Start(context.Background(), Request{URL: "url", OutputDir: outputDir})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}

	select {
	case <-fetcher.audioStarted:
	case <-time.After(5 * time.Second):
		t.Fatal("audio download never started")
	}
	task.Cancel()
	waitDone(t, task)

	if status := task.Status(); status != StatusCancelled {
		t.Fatalf("status = %s", status)
	}
	if _, err := task.Result(); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v", err)
	}
	event, ok := sink.completion()
	if !ok || event.Reason != "cancelled" {
		t.Fatalf("completion = %+v ok=%v", event, ok)
	}

	matches, _ := filepath.Glob(filepath.Join(outputDir, "*", "*.txt"))
	if len(matches) != 0 {
		t.Fatalf("cancelled task must not write an artifact: %v", matches)
	}
}

func TestMetadataFailureEndsInError(t *testing.T) {
	fetcher := &fakeFetcher{metadataErr: errors.New("video unavailable")}
	sink := &recordSink{}
	orch := NewOrchestrator(fetcher, &fakeTranscriber{}, Options{}, nil, sink)

	task, err := orch.Start(context.Background(), Request{URL: "url", OutputDir: t.TempDir()})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	waitDone(t, task)

	if status := task.Status(); status != StatusError {
		t.Fatalf("status = %s", status)
	}
	if _, err := task.Result(); err == nil {
		t.Fatal("expected task error")
	}
	event, ok := sink.completion()
	if !ok || event.Reason == "" {
		t.Fatalf("completion = %+v ok=%v", event, ok)
	}
}

func TestStartRejectsConcurrentTasks(t *testing.T) {
	fetcher := &fakeFetcher{
		info:         media.Info{Title: "Busy"},
		audioStarted: make(chan struct{}),
		audioBlocks:  true,
	}
	orch := NewOrchestrator(fetcher, &fakeTranscriber{}, Options{}, nil, nil)

	first, err := orch.Start(context.Background(), Request{URL: "url", OutputDir: t.TempDir()})
	if err != nil {
		t.Fatalf("first Start: %v", err)
	}
	select {
	case <-fetcher.audioStarted:
	case <-time.After(5 * time.Second):
		t.Fatal("first task never reached audio download")
	}

	if _, err := orch.Start(context.Background(), Request{URL: "url", OutputDir: t.TempDir()}); !errors.Is(err, ErrBusy) {
		t.Fatalf("expected ErrBusy, got %v", err)
	}

	first.Cancel()
	waitDone(t, first)

	second, err := orch.Start(context.Background(), Request{URL: "url", OutputDir: t.TempDir()})
	if err != nil {
		t.Fatalf("Start after terminal task: %v", err)
	}
	second.Cancel()
	waitDone(t, second)
}

func TestStartValidatesRequest(t *testing.T) {
	orch := NewOrchestrator(&fakeFetcher{}, &fakeTranscriber{}, Options{}, nil, nil)
	if _, err := orch.Start(context.Background(), Request{OutputDir: t.TempDir()}); err == nil {
		t.Fatal("missing URL should be rejected")
	}
	if _, err := orch.Start(context.Background(), Request{URL: "url"}); err == nil {
		t.Fatal("missing output directory should be rejected")
	}
}

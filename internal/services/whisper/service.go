package whisper

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	"vidscribe/internal/logging"
	"vidscribe/internal/media"
	"vidscribe/internal/services"
	"vidscribe/internal/subtitle"
	"vidscribe/internal/timecode"
)

// UVXCommand launches the bundled transcription tool without a local install.
const UVXCommand = "uvx"

// toolName is the faster-whisper command line frontend.
const toolName = "whisper-ctranslate2"

// Config controls model selection and decoding.
type Config struct {
	Model    string
	Device   string // auto, cpu, or cuda
	BeamSize int
}

// Service implements media.Transcriber on top of faster-whisper. It keeps
// warm-model state: consecutive requests for the same model size and device
// reuse the cached model weights without revalidation.
type Service struct {
	cfg    Config
	logger *slog.Logger
	runner runnerFunc

	mu         sync.Mutex
	warmModel  string
	warmDevice string
}

// NewService builds a transcription service. A nil logger disables logging.
func NewService(cfg Config, logger *slog.Logger) *Service {
	if cfg.Model == "" {
		cfg.Model = "medium"
	}
	if cfg.Device == "" {
		cfg.Device = "auto"
	}
	if cfg.BeamSize <= 0 {
		cfg.BeamSize = 5
	}
	return &Service{
		cfg:    cfg,
		logger: logging.NewComponentLogger(logger, "whisper"),
		runner: runCommand,
	}
}

// WithRunner replaces the command runner (used in tests).
func (s *Service) WithRunner(runner runnerFunc) *Service {
	s.runner = runner
	return s
}

// Model returns the configured model size.
func (s *Service) Model() string {
	return s.cfg.Model
}

// segmentLineRe matches the per-segment lines the tool prints while decoding,
// e.g. "[00:12.340 --> 00:15.000] some text".
var segmentLineRe = regexp.MustCompile(`^\[\s*([\d:.]+)\s*-->\s*([\d:.]+)\]`)

// progressEvery is the segment cadence for progress callbacks.
const progressEvery = 5

type resultPayload struct {
	Language string `json:"language"`
	Segments []struct {
		Start float64 `json:"start"`
		End   float64 `json:"end"`
		Text  string  `json:"text"`
	} `json:"segments"`
}

// Transcribe runs speech recognition over an audio file and returns the timed
// segments. Progress callbacks carry (processed, estimatedTotal) counts; the
// total is estimated from elapsed audio time until decoding finishes.
func (s *Service) Transcribe(ctx context.Context, req media.TranscribeRequest) ([]subtitle.Segment, error) {
	logger := logging.WithContext(ctx, s.logger)

	if req.AudioPath == "" {
		return nil, services.Wrap(services.ErrValidation, "transcribing", "validate inputs", "audio path required", nil)
	}
	if _, err := os.Stat(req.AudioPath); err != nil {
		return nil, services.Wrap(services.ErrNotFound, "transcribing", "validate inputs", "audio file missing", err)
	}

	model := req.Model
	if model == "" {
		model = s.cfg.Model
	}
	device := s.cfg.Device

	s.noteModelUse(logger, model, device)

	outputDir := filepath.Dir(req.AudioPath)
	args := s.buildArgs(req.AudioPath, outputDir, model, device, req.Language)

	processed := 0
	lastEnd := 0.0
	onLine := func(line string) {
		m := segmentLineRe.FindStringSubmatch(strings.TrimSpace(line))
		if m == nil {
			return
		}
		processed++
		lastEnd = timecode.Parse(m[2])
		if req.Progress != nil && processed%progressEvery == 0 {
			req.Progress(processed, estimateTotal(processed, lastEnd))
		}
	}

	if err := s.runner(ctx, onLine, UVXCommand, args...); err != nil {
		s.forgetModel()
		return nil, services.Wrap(services.ErrExternalTool, "transcribing", "run whisper", "transcription failed", err)
	}

	segments, language, err := loadResult(resultPath(req.AudioPath, outputDir))
	if err != nil {
		return nil, err
	}
	if language != "" {
		logger.Info("language detected", logging.String("language", language))
	}
	if req.Progress != nil {
		req.Progress(len(segments), len(segments))
	}
	return segments, nil
}

// noteModelUse records warm-model state and logs whether the cached weights
// can be reused for this request.
func (s *Service) noteModelUse(logger *slog.Logger, model, device string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.warmModel == model && s.warmDevice == device {
		logger.Info("reusing warm model",
			logging.String("model", model),
			logging.String("device", device),
		)
		return
	}
	logger.Info("loading model",
		logging.String("model", model),
		logging.String("device", device),
		logging.String("compute_type", computeType(device)),
	)
	s.warmModel = model
	s.warmDevice = device
}

func (s *Service) forgetModel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.warmModel = ""
	s.warmDevice = ""
}

func (s *Service) buildArgs(audioPath, outputDir, model, device, language string) []string {
	args := []string{
		toolName,
		audioPath,
		"--model", model,
		"--device", device,
		"--compute_type", computeType(device),
		"--beam_size", fmt.Sprintf("%d", s.cfg.BeamSize),
		"--output_format", "json",
		"--output_dir", outputDir,
	}
	if language != "" {
		args = append(args, "--language", language)
	}
	return args
}

// computeType picks the decode precision per device: float16 on CUDA, int8 on
// CPU, and the tool default when the device is auto-selected.
func computeType(device string) string {
	switch device {
	case "cuda":
		return "float16"
	case "cpu":
		return "int8"
	default:
		return "default"
	}
}

// estimateTotal guesses the final segment count while decoding is underway,
// assuming roughly one segment per three seconds of audio.
func estimateTotal(processed int, lastEnd float64) int {
	estimated := int(lastEnd / 3)
	if processed > estimated {
		return processed
	}
	return estimated
}

func resultPath(audioPath, outputDir string) string {
	base := strings.TrimSuffix(filepath.Base(audioPath), filepath.Ext(audioPath))
	return filepath.Join(outputDir, base+".json")
}

func loadResult(path string) ([]subtitle.Segment, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", services.Wrap(services.ErrExternalTool, "transcribing", "read result", "transcription output missing", err)
	}
	var payload resultPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, "", services.Wrap(services.ErrExternalTool, "transcribing", "decode result", "unexpected transcription output", err)
	}
	segments := make([]subtitle.Segment, 0, len(payload.Segments))
	for _, seg := range payload.Segments {
		text := strings.TrimSpace(seg.Text)
		if text == "" {
			continue
		}
		segments = append(segments, subtitle.Segment{Start: seg.Start, End: seg.End, Text: text})
	}
	return segments, payload.Language, nil
}

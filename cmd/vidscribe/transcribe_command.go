package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"vidscribe/internal/logging"
	"vidscribe/internal/services/whisper"
	"vidscribe/internal/services/ytdlp"
	"vidscribe/internal/subtitle"
	"vidscribe/internal/task"
)

func newTranscribeCommand(ctx *commandContext) *cobra.Command {
	var (
		outputDir    string
		format       string
		timestamps   bool
		language     string
		model        string
		forceWhisper bool
		proxy        string
		noCookies    bool
	)

	cmd := &cobra.Command{
		Use:   "transcribe <url>",
		Short: "Produce a transcript for one video",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("output-dir") {
				cfg.Output.Dir = outputDir
			}
			if cmd.Flags().Changed("format") {
				cfg.Output.Format = format
			}
			if cmd.Flags().Changed("timestamps") {
				cfg.Output.WithTimestamps = timestamps
			}
			if cmd.Flags().Changed("language") {
				cfg.Subtitles.Language = language
			}
			if cmd.Flags().Changed("model") {
				cfg.Whisper.Model = model
			}
			if cmd.Flags().Changed("proxy") {
				cfg.Network.Proxy = proxy
			}
			if cmd.Flags().Changed("no-cookies") {
				cfg.Network.UseCookies = !noCookies
			}

			outputFormat, err := subtitle.ParseOutputFormat(cfg.Output.Format)
			if err != nil {
				return err
			}
			if err := cfg.EnsureOutputDir(); err != nil {
				return err
			}

			logger, err := newLogger(cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			fetcher := ytdlp.NewClient(ytdlp.Options{
				Proxy:         cfg.Network.Proxy,
				UseCookies:    cfg.Network.UseCookies,
				CookieBrowser: cfg.Network.CookieBrowser,
			}, logger)
			transcriber := whisper.NewService(whisper.Config{
				Model:    cfg.Whisper.Model,
				Device:   cfg.Whisper.Device,
				BeamSize: cfg.Whisper.BeamSize,
			}, logger)

			out := cmd.OutOrStdout()
			sampler := logging.NewProgressSampler(0)
			var currentStage task.Status
			sink := task.Callbacks{
				OnStatus: func(_ uuid.UUID, status task.Status) {
					currentStage = status
					if status.IsWorking() {
						fmt.Fprintf(out, "-> %s\n", status)
					}
				},
				OnProgress: func(_ uuid.UUID, percent float64, message string) {
					if sampler.ShouldLog(percent, string(currentStage)) {
						fmt.Fprintf(out, "   %3.0f%% %s\n", percent, message)
					}
				},
				OnLog: func(_ uuid.UUID, message string) {
					fmt.Fprintf(out, "   %s\n", message)
				},
			}

			orch := task.NewOrchestrator(fetcher, transcriber, task.Options{
				ParagraphGap:         cfg.Subtitles.ParagraphGapSecs,
				MinSubtitleFileBytes: cfg.Subtitles.MinFileBytes,
				MinTranscriptChars:   cfg.Subtitles.MinTranscriptChars,
				LanguagePriority:     cfg.Subtitles.LanguagePriority,
			}, logger, sink)

			t, err := orch.Start(context.Background(), task.Request{
				URL:            args[0],
				OutputDir:      cfg.Output.Dir,
				Format:         outputFormat,
				WithTimestamps: cfg.Output.WithTimestamps,
				Language:       cfg.Subtitles.Language,
				Model:          cfg.Whisper.Model,
				ForceFallback:  forceWhisper,
			})
			if err != nil {
				return err
			}

			sigCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			go func() {
				select {
				case <-sigCtx.Done():
					fmt.Fprintln(out, "cancelling (interrupt again to abort)")
					t.Cancel()
					// A second interrupt falls through to the default handler.
					stop()
				case <-t.Done():
				}
			}()

			<-t.Done()
			result, err := t.Result()
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Transcript written to %s (%s, %d segments)\n",
				result.OutputPath, result.Source, result.SegmentCount)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "Directory for the transcript run folder")
	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format: text, srt, or vtt")
	cmd.Flags().BoolVar(&timestamps, "timestamps", false, "Prefix each line with its time range (text format)")
	cmd.Flags().StringVarP(&language, "language", "l", "", "Preferred subtitle and speech language")
	cmd.Flags().StringVarP(&model, "model", "m", "", "Speech recognition model size")
	cmd.Flags().BoolVar(&forceWhisper, "force-whisper", false, "Skip subtitles and transcribe the audio directly")
	cmd.Flags().StringVar(&proxy, "proxy", "", "HTTP proxy for downloads")
	cmd.Flags().BoolVar(&noCookies, "no-cookies", false, "Do not read browser cookies")

	return cmd
}

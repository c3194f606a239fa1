package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"vidscribe/internal/language"
	"vidscribe/internal/services/ytdlp"
	"vidscribe/internal/tracks"
	"vidscribe/internal/videourl"
)

func newTracksCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tracks <url>",
		Short: "List the subtitle tracks a video exposes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := newLogger(cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			url := videourl.Clean(args[0])
			fetcher := ytdlp.NewClient(ytdlp.Options{
				Proxy:         cfg.Network.Proxy,
				UseCookies:    cfg.Network.UseCookies,
				CookieBrowser: cfg.Network.CookieBrowser,
			}, logger)

			info, err := fetcher.Metadata(cmd.Context(), url)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s (%s)\n", info.Title, info.Platform)

			catalog := info.Tracks()
			if catalog.Empty() {
				fmt.Fprintln(out, "No subtitle tracks; transcription fallback would be used.")
				return nil
			}

			priority := cfg.Subtitles.LanguagePriority
			if len(priority) == 0 {
				priority = tracks.Priority(info.Platform)
			}
			selection, _ := tracks.Select(catalog, cfg.Subtitles.Language, priority)

			rows := make([][]string, 0, len(catalog.Manual)+len(catalog.Auto))
			for _, language := range catalog.Manual {
				rows = append(rows, trackRow(language, "manual", selection, false))
			}
			for _, language := range catalog.Auto {
				rows = append(rows, trackRow(language, "auto", selection, true))
			}
			fmt.Fprintln(out, renderTable(
				[]string{"LANGUAGE", "NAME", "TIER", "SELECTED"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft},
			))
			return nil
		},
	}
	return cmd
}

func trackRow(tag, tier string, selection tracks.Selection, automatic bool) []string {
	selected := ""
	if selection.Language == tag && selection.Automatic == automatic {
		selected = "*"
	}
	return []string{tag, language.DisplayName(tag), tier, selected}
}

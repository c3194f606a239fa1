package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"vidscribe/internal/services/whisper"
)

func newModelsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List the available speech recognition model sizes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rows := make([][]string, 0, 8)
			for _, model := range whisper.Catalog() {
				rows = append(rows, []string{
					model.Name,
					model.Description,
					fmt.Sprintf("%d MB", model.DownloadMB),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"MODEL", "DESCRIPTION", "DOWNLOAD"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignRight},
			))
			return nil
		},
	}
}

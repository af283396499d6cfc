package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"rascan/internal/history"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent scan runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			store, err := history.Open(cfg.Paths.OutputDir)
			if err != nil {
				return fmt.Errorf("open run history: %w", err)
			}
			defer store.Close()

			runs, err := store.RecentRuns(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No recorded runs")
				return nil
			}

			headers := []string{"Started", "Run", "Platforms", "ROMs", "Matched", "Missing only"}
			rows := make([][]string, 0, len(runs))
			for _, run := range runs {
				rows = append(rows, []string{
					run.StartedAt.Local().Format(time.RFC3339),
					run.ID,
					strconv.Itoa(run.PlatformCount),
					strconv.Itoa(run.RomCount),
					strconv.Itoa(run.MatchedCount),
					yesNo(run.MissingOnly),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderRows(headers, rows, []columnAlignment{
				alignLeft, alignLeft, alignRight, alignRight, alignRight, alignLeft,
			}))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Number of runs to show")
	return cmd
}

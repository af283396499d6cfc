package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"rascan/internal/history"
	"rascan/internal/logging"
	"rascan/internal/match"
	"rascan/internal/pipeline"
	"rascan/internal/preflight"
)

const timeRounding = 100 * time.Millisecond

func newScanCommand(ctx *commandContext) *cobra.Command {
	var missingOnly bool
	var skipPreflight bool

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Hash the library and write the RetroAchievements report",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("missing-only") {
				cfg.Report.MissingOnly = missingOnly
			}

			logger := ctx.logger(cfg)
			catalog := ctx.catalog(cfg)
			bootstrap := ctx.hasherBootstrap(cfg, logger)

			if !skipPreflight {
				results := preflight.RunAll(cmd.Context(), cfg, catalog, bootstrap)
				if !preflight.Passed(results) {
					fmt.Fprintln(cmd.OutOrStdout(), renderPreflight(results))
					return fmt.Errorf("preflight checks failed; fix the issues above and retry")
				}
			} else if err := bootstrap.EnsureTool(cmd.Context()); err != nil {
				return err
			}

			hasher, err := ctx.hasher(cfg)
			if err != nil {
				return err
			}
			engine := match.NewEngine(hasher, logging.NewComponentLogger(logger, "match"))

			store, err := history.Open(cfg.Paths.OutputDir)
			if err != nil {
				logger.Warn("run history unavailable", logging.Error(err))
				store = nil
			}
			if store != nil {
				defer store.Close()
			}

			p := pipeline.New(cfg, logging.NewComponentLogger(logger, "pipeline"), catalog, engine, store)
			summary, err := p.Run(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderSummary(summary, cfg.Report.MissingOnly))
			fmt.Fprintf(out, "Report written to %s\n", summary.ReportPath)
			return nil
		},
	}

	cmd.Flags().BoolVar(&missingOnly, "missing-only", false, "Report only ROMs without a RetroAchievements match")
	cmd.Flags().BoolVar(&skipPreflight, "skip-preflight", false, "Skip environment checks before scanning")
	return cmd
}

func renderSummary(summary *pipeline.Summary, missingOnly bool) string {
	headers := []string{"Metric", "Value"}
	rows := [][]string{
		{"Run", summary.RunID},
		{"Platforms scanned", strconv.Itoa(summary.PlatformCount)},
		{"ROMs hashed", strconv.Itoa(summary.RomCount)},
		{"Matched", strconv.Itoa(summary.MatchedCount)},
		{"Report rows", strconv.Itoa(summary.ReportedRows)},
		{"Missing only", yesNo(missingOnly)},
		{"Duration", summary.FinishedAt.Sub(summary.StartedAt).Round(timeRounding).String()},
	}
	if len(summary.SkippedDirs) > 0 {
		rows = append(rows, []string{"Skipped folders", strings.Join(summary.SkippedDirs, ", ")})
	}
	return renderRows(headers, rows, []columnAlignment{alignLeft, alignRight})
}

func renderPreflight(results []preflight.Result) string {
	headers := []string{"Check", "Status", "Detail"}
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		status := "FAIL"
		if r.Passed {
			status = "PASS"
		}
		rows = append(rows, []string{r.Name, status, r.Detail})
	}
	return renderRows(headers, rows, nil)
}

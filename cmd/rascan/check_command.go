package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"rascan/internal/preflight"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Run environment checks without scanning",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			logger := ctx.logger(cfg)
			results := preflight.RunAll(cmd.Context(), cfg, ctx.catalog(cfg), ctx.hasherBootstrap(cfg, logger))
			fmt.Fprintln(cmd.OutOrStdout(), renderPreflight(results))
			if !preflight.Passed(results) {
				return fmt.Errorf("one or more checks failed")
			}
			return nil
		},
	}
}

package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"rascan/internal/platform"
	"rascan/internal/scanner"
)

// platforms is the dry run: it shows how library folders would resolve
// without hashing anything or touching the report.
func newPlatformsCommand(ctx *commandContext) *cobra.Command {
	var remote bool

	cmd := &cobra.Command{
		Use:   "platforms",
		Short: "Show how library folders resolve to RetroAchievements systems",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			dirs, err := scanner.PlatformDirs(cfg.Paths.LibraryDir)
			if err != nil {
				return err
			}

			var remoteIDs map[string]int
			if remote {
				systems, err := ctx.catalog(cfg).ListActivePlatforms(cmd.Context())
				if err != nil {
					return err
				}
				remoteIDs = make(map[string]int, len(systems))
				for _, sys := range systems {
					remoteIDs[sys.Name] = sys.ID
				}
			}

			resolver := platform.NewResolver(platform.FromConfig(cfg.Platforms))
			headers := []string{"Folder", "System", "Resolved"}
			if remote {
				headers = append(headers, "RA System ID")
			}

			rows := make([][]string, 0, len(dirs))
			for _, dir := range dirs {
				system, ok := resolver.Resolve(dir.Name)
				row := []string{dir.Name, system, yesNo(ok)}
				if remote {
					id := ""
					if sysID, found := remoteIDs[system]; ok && found {
						id = strconv.Itoa(sysID)
					}
					row = append(row, id)
				}
				rows = append(rows, row)
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderRows(headers, rows, nil))
			return nil
		},
	}

	cmd.Flags().BoolVar(&remote, "remote", false, "Look up RetroAchievements system IDs for resolved platforms")
	return cmd
}

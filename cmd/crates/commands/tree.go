package commands

import (
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"go.trai.ch/crates/internal/app"
	"go.trai.ch/crates/internal/core/domain"
	"go.trai.ch/zerr"
)

func (c *CLI) newTreeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Resolve per-platform features and dependencies and write metadata.json",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			starlark, _ := cmd.Flags().GetBool("starlark")
			jobs, _ := cmd.Flags().GetInt("jobs")
			progress, _ := cmd.Flags().GetString("progress")
			if !slices.Contains(app.ProgressModes, progress) {
				return zerr.With(zerr.Wrap(domain.ErrInvalidProgressMode, "expected one of "+strings.Join(app.ProgressModes, ", ")),
					"progress", progress)
			}
			return c.app.Tree(cmd.Context(), app.TreeOptions{
				ConfigPath:  configPath(cmd),
				Starlark:    starlark,
				Parallelism: jobs,
				Progress:    progress,
			})
		},
	}
	cmd.Flags().Bool("starlark", false, "Print the resolved metadata as a Starlark TREE_METADATA dict")
	cmd.Flags().IntP("jobs", "j", 0, "Maximum number of concurrent cargo tree processes (0 runs all platforms at once)")
	cmd.Flags().String("progress", "auto", "Progress output: auto, tui or plain")
	return cmd
}

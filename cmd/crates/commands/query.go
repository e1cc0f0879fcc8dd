package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/crates/internal/app"
)

func (c *CLI) newQueryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "query",
		Short: "Check whether metadata.json is up to date",
		Long: "Recomputes the digest of the configuration, the cargo version and Cargo.lock " +
			"and compares it with the one stored in metadata.json. Exits non-zero when a repin is required.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Query(cmd.Context(), app.QueryOptions{
				ConfigPath: configPath(cmd),
			})
		},
	}
}

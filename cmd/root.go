package cmd

import (
	"github.com/spf13/cobra"

	"github.com/arantir/favorcalc/internal/config"
	"github.com/arantir/favorcalc/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "favorcalc",
	Short: "Student favor level calculator",
	Long:  "Favorcalc projects a student's favor level from a gift inventory and per-student preference settings.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCompute(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides FAVORCALC_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")

	rootCmd.AddCommand(computeCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(giftCmd)
	rootCmd.AddCommand(linkedCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then the config file, then FAVORCALC_DB / the default XDG path.
func resolveDBPath(cmd *cobra.Command, cfg config.Config) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if cfg.Database != "" {
		return cfg.Database, store.EnsureDir(cfg.Database)
	}
	return store.DefaultDBPath()
}

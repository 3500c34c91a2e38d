package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/valbot/valstats/internal/config"
)

var (
	cfg     config.Config
	logger  *zap.SugaredLogger
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "valstats",
	Short: "Valorant match analytics bot and CLI",
	Long: `Pulls Valorant competitive matches from the HenrikDev API, computes
per-player and per-server performance metrics (ACS, KAST, economy,
clutches), and serves them as Discord slash commands or terminal tables.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg = config.Load()
		if f := cmd.Flags().Lookup("logs-dir"); f != nil && f.Changed {
			cfg.LogsDir = f.Value.String()
		}
		if f := cmd.Flags().Lookup("links-db"); f != nil && f.Changed {
			cfg.LinksDB = f.Value.String()
		}

		zcfg := zap.NewProductionConfig()
		if verbose {
			zcfg = zap.NewDevelopmentConfig()
		}
		zl, err := zcfg.Build()
		if err != nil {
			return fmt.Errorf("build logger: %w", err)
		}
		logger = zl.Sugar()
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("logs-dir", "match_logs", "directory for daily match log files")
	rootCmd.PersistentFlags().String("links-db", "links.db", "path to the account-link SQLite database")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(botCmd)
	rootCmd.AddCommand(matchCmd)
	rootCmd.AddCommand(pullCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(serverStatsCmd)
	rootCmd.AddCommand(economyCmd)
	rootCmd.AddCommand(linkCmd)
}

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/valbot/valstats/internal/analytics"
	"github.com/valbot/valstats/internal/report"
)

var statsDays int

var statsCmd = &cobra.Command{
	Use:   "stats <name#tag>",
	Short: "Aggregate performance, clutches, and first bloods from logged matches",
	Args:  cobra.ExactArgs(1),
	RunE:  runStats,
}

func init() {
	statsCmd.Flags().IntVar(&statsDays, "days", 0, "limit to the most recent N day files (0 = all)")
}

func runStats(cmd *cobra.Command, args []string) error {
	name, tag, err := parseRiotID(args[0])
	if err != nil {
		return err
	}
	logs, err := openMatchLog()
	if err != nil {
		return err
	}
	matches, err := logs.LoadMatches(statsDays)
	if err != nil {
		return err
	}
	puuid, err := findPlayerID(matches, name, tag)
	if err != nil {
		return err
	}

	acc := analytics.NewAccumulator()
	for _, m := range matches {
		acc.Add(m, puuid)
	}
	report.PrintServerReport(os.Stdout, acc.Report(1))

	fmt.Println()
	report.PrintClutches(os.Stdout, analytics.DetectClutches(matches, puuid))
	return nil
}

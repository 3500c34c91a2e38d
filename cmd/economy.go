package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/valbot/valstats/internal/analytics"
	"github.com/valbot/valstats/internal/report"
)

var economyCmd = &cobra.Command{
	Use:   "economy <name#tag>",
	Short: "Round-economy win rates and most effective loadouts",
	Args:  cobra.ExactArgs(1),
	RunE:  runEconomy,
}

func runEconomy(cmd *cobra.Command, args []string) error {
	name, tag, err := parseRiotID(args[0])
	if err != nil {
		return err
	}
	logs, err := openMatchLog()
	if err != nil {
		return err
	}
	matches, err := logs.LoadMatches(0)
	if err != nil {
		return err
	}
	puuid, err := findPlayerID(matches, name, tag)
	if err != nil {
		return err
	}

	report.PrintEconomy(os.Stdout, analytics.EconomyBreakdown(matches, puuid))
	fmt.Println()
	report.PrintLoadouts(os.Stdout, analytics.EffectiveLoadouts(matches))
	return nil
}

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/valbot/valstats/internal/analytics"
	"github.com/valbot/valstats/internal/links"
	"github.com/valbot/valstats/internal/report"
)

var serverStatsGuild string

var serverStatsCmd = &cobra.Command{
	Use:   "serverstats",
	Short: "Leaderboards across every linked player of a guild",
	RunE:  runServerStats,
}

func init() {
	serverStatsCmd.Flags().StringVar(&serverStatsGuild, "guild", "", "Discord guild id (required)")
	_ = serverStatsCmd.MarkFlagRequired("guild")
}

func runServerStats(cmd *cobra.Command, args []string) error {
	ldb, err := links.Open(cfg.LinksDB)
	if err != nil {
		return err
	}
	defer ldb.Close()

	linked, err := ldb.ListGuild(serverStatsGuild)
	if err != nil {
		return err
	}
	if len(linked) == 0 {
		return fmt.Errorf("no linked accounts in guild %s", serverStatsGuild)
	}

	logs, err := openMatchLog()
	if err != nil {
		return err
	}
	matches, err := logs.LoadMatches(0)
	if err != nil {
		return err
	}

	acc := analytics.NewAccumulator()
	for _, l := range linked {
		puuid, err := findPlayerID(matches, l.RiotName, l.RiotTag)
		if err != nil {
			logger.Debugw("no logged matches for linked player", "player", l.RiotID())
			continue
		}
		for _, m := range matches {
			acc.Add(m, puuid)
		}
	}
	rep := acc.Report(3)
	if len(rep.Players) == 0 {
		return fmt.Errorf("not enough logged matches; players need at least 3")
	}
	report.PrintServerReport(os.Stdout, rep)

	fmt.Println()
	report.PrintFirstBlood(os.Stdout, analytics.FirstBloodWinRate(matches))
	return nil
}

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/valbot/valstats/internal/analytics"
	"github.com/valbot/valstats/internal/matchlog"
	"github.com/valbot/valstats/internal/report"
)

var matchCmd = &cobra.Command{
	Use:   "match <name#tag>",
	Short: "Show the scoreboard of a player's latest competitive match",
	Args:  cobra.ExactArgs(1),
	RunE:  runMatch,
}

func runMatch(cmd *cobra.Command, args []string) error {
	name, tag, err := parseRiotID(args[0])
	if err != nil {
		return err
	}

	client := newHenrikClient()
	ctx := cmd.Context()

	history, err := client.MatchHistory(ctx, cfg.Region, name, tag, 1)
	if err != nil {
		return fmt.Errorf("match history for %s#%s: %w", name, tag, err)
	}
	if len(history) == 0 {
		return fmt.Errorf("%s#%s has no recent competitive matches", name, tag)
	}

	m, err := client.Match(ctx, history[0].ID)
	if err != nil {
		return fmt.Errorf("fetch match %s: %w", history[0].ID, err)
	}
	rows := analytics.Scoreboard(m)

	if logs, err := openMatchLog(); err == nil {
		if _, err := logs.Append(matchlog.Entry{MatchID: m.MatchID, Match: m, Players: rows}); err != nil {
			logger.Warnw("failed to log match", "match", m.MatchID, "err", err)
		}
	}

	focus := ""
	if p := m.PlayerByRiotID(name, tag); p != nil {
		focus = p.ID
	}
	report.PrintMatchSummary(os.Stdout, m)
	report.PrintScoreboard(os.Stdout, rows, focus)
	return nil
}

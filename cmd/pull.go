package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/valbot/valstats/internal/analytics"
	"github.com/valbot/valstats/internal/matchlog"
)

var pullCount int

var pullCmd = &cobra.Command{
	Use:   "pull <name#tag>",
	Short: "Fetch and log a player's recent competitive matches",
	Long: `Fetches the player's recent competitive history, downloads each match
that is not yet logged, and appends it to the daily match log. Matches
already logged are skipped, so pulling is safe to repeat.`,
	Args: cobra.ExactArgs(1),
	RunE: runPull,
}

func init() {
	pullCmd.Flags().IntVar(&pullCount, "count", 10, "number of matches to pull")
}

func runPull(cmd *cobra.Command, args []string) error {
	name, tag, err := parseRiotID(args[0])
	if err != nil {
		return err
	}

	logs, err := openMatchLog()
	if err != nil {
		return err
	}
	client := newHenrikClient()
	ctx := cmd.Context()

	history, err := client.MatchHistory(ctx, cfg.Region, name, tag, pullCount)
	if err != nil {
		return fmt.Errorf("match history for %s#%s: %w", name, tag, err)
	}
	logger.Infow("pulling matches", "player", name+"#"+tag, "candidates", len(history))

	// Fetches run in a bounded pool; the client's rate limiter keeps the
	// API happy regardless of pool width. Appends are serialized by the
	// store's own lock.
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.PullWorkers)

	for _, meta := range history {
		meta := meta
		if ok, err := logs.Has(meta.ID); err != nil {
			return err
		} else if ok {
			logger.Debugw("already logged", "match", meta.ID)
			continue
		}
		g.Go(func() error {
			m, err := client.Match(gctx, meta.ID)
			if err != nil {
				// One bad match should not sink the batch.
				logger.Warnw("fetch failed", "match", meta.ID, "err", err)
				return nil
			}
			added, err := logs.Append(matchlog.Entry{
				MatchID: m.MatchID,
				Match:   m,
				Players: analytics.Scoreboard(m),
			})
			if err != nil {
				return fmt.Errorf("log match %s: %w", m.MatchID, err)
			}
			if added {
				logger.Infow("logged", "match", m.MatchID, "map", m.Map)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	fmt.Printf("Done pulling matches for %s#%s.\n", name, tag)
	return nil
}

package cmd

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/valbot/valstats/internal/bot"
	"github.com/valbot/valstats/internal/links"
)

var botCmd = &cobra.Command{
	Use:   "bot",
	Short: "Run the Discord bot and the keep-alive web server",
	RunE:  runBot,
}

func runBot(cmd *cobra.Command, args []string) error {
	if cfg.DiscordToken == "" {
		return fmt.Errorf("DISCORD_TOKEN is not set")
	}

	logs, err := openMatchLog()
	if err != nil {
		return err
	}
	ldb, err := links.Open(cfg.LinksDB)
	if err != nil {
		return err
	}
	defer ldb.Close()

	b, err := bot.New(cfg, newHenrikClient(), logs, ldb, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return b.Run(gctx) })
	g.Go(func() error { return newWebServer().Run(gctx) })
	return g.Wait()
}

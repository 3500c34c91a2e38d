// Package bot wires the Discord slash-command surface to the analytics,
// API, and storage layers.
package bot

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/valbot/valstats/internal/config"
	"github.com/valbot/valstats/internal/henrik"
	"github.com/valbot/valstats/internal/links"
	"github.com/valbot/valstats/internal/matchlog"
)

// Bot is the running Discord bot.
type Bot struct {
	session *discordgo.Session
	henrik  *henrik.Client
	logs    *matchlog.Store
	links   *links.DB
	cfg     config.Config
	log     *zap.SugaredLogger

	registered []*discordgo.ApplicationCommand
}

// New builds a Bot from its collaborators. The session is created but not
// opened.
func New(cfg config.Config, hc *henrik.Client, logs *matchlog.Store, ldb *links.DB, log *zap.SugaredLogger) (*Bot, error) {
	session, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		return nil, fmt.Errorf("bot: create session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentsGuilds

	return &Bot{
		session: session,
		henrik:  hc,
		logs:    logs,
		links:   ldb,
		cfg:     cfg,
		log:     log,
	}, nil
}

// Run opens the gateway connection, registers the slash commands, and
// blocks until the context is cancelled.
func (b *Bot) Run(ctx context.Context) error {
	b.session.AddHandler(func(_ *discordgo.Session, r *discordgo.Ready) {
		b.log.Infow("discord gateway ready", "user", r.User.Username)
	})
	b.session.AddHandler(b.handleInteraction)

	if err := b.session.Open(); err != nil {
		return fmt.Errorf("bot: open gateway: %w", err)
	}
	defer b.session.Close()

	if err := b.registerCommands(); err != nil {
		return err
	}
	defer b.unregisterCommands()

	b.log.Info("bot is up")
	<-ctx.Done()
	return nil
}

func (b *Bot) registerCommands() error {
	appID := b.session.State.User.ID
	for _, cmd := range commandDefinitions() {
		created, err := b.session.ApplicationCommandCreate(appID, "", cmd)
		if err != nil {
			return fmt.Errorf("bot: register /%s: %w", cmd.Name, err)
		}
		b.registered = append(b.registered, created)
	}
	b.log.Infow("slash commands registered", "count", len(b.registered))
	return nil
}

func (b *Bot) unregisterCommands() {
	appID := b.session.State.User.ID
	for _, cmd := range b.registered {
		if err := b.session.ApplicationCommandDelete(appID, "", cmd.ID); err != nil {
			b.log.Warnw("failed to delete command", "name", cmd.Name, "err", err)
		}
	}
}

func (b *Bot) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}
	name := i.ApplicationCommandData().Name
	handler, ok := b.handlers()[name]
	if !ok {
		return
	}

	// All commands may hit the API or the log files; acknowledge first and
	// edit the reply when the work is done.
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	})
	if err != nil {
		b.log.Warnw("failed to defer interaction", "command", name, "err", err)
		return
	}

	content := handler(context.Background(), i)
	if content == "" {
		content = "Something went wrong; try again later."
	}
	_, err = s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Content: &content,
	})
	if err != nil {
		b.log.Warnw("failed to edit interaction response", "command", name, "err", err)
	}
}

package bot

import (
	"context"

	"github.com/bwmarrin/discordgo"
)

// handlerFunc computes the final reply content for one slash command.
type handlerFunc func(ctx context.Context, i *discordgo.InteractionCreate) string

func riotIDOption() *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        "player",
		Description: "Riot ID as name#tag; defaults to your linked account",
	}
}

func commandDefinitions() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:        "fullmatch",
			Description: "Full scoreboard of your latest competitive match",
			Options:     []*discordgo.ApplicationCommandOption{riotIDOption()},
		},
		{
			Name:        "stats",
			Description: "Your aggregate performance across logged matches",
			Options:     []*discordgo.ApplicationCommandOption{riotIDOption()},
		},
		{
			Name:        "serverstats",
			Description: "Leaderboards across every linked player in this server",
		},
		{
			Name:        "economy",
			Description: "Round-economy win rates and most effective loadouts",
			Options:     []*discordgo.ApplicationCommandOption{riotIDOption()},
		},
		{
			Name:        "firstblood",
			Description: "How often the first-blood team wins the round",
		},
		{
			Name:        "clutches",
			Description: "Inferred clutch attempts and conversions",
			Options:     []*discordgo.ApplicationCommandOption{riotIDOption()},
		},
		{
			Name:        "kastdebug",
			Description: "Per-round K/A/S/T trace for your latest logged match",
			Options:     []*discordgo.ApplicationCommandOption{riotIDOption()},
		},
		{
			Name:        "pullgames",
			Description: "Fetch and log your recent competitive matches",
			Options: []*discordgo.ApplicationCommandOption{
				riotIDOption(),
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "count",
					Description: "How many matches to pull (default 5, max 20)",
				},
			},
		},
		{
			Name:        "link",
			Description: "Link your Discord account to a Riot ID",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "riot_id",
					Description: "Riot ID as name#tag",
					Required:    true,
				},
			},
		},
		{
			Name:        "unlink",
			Description: "Remove your Riot account link",
		},
		{
			Name:        "linked",
			Description: "List the linked accounts in this server",
		},
	}
}

func (b *Bot) handlers() map[string]handlerFunc {
	return map[string]handlerFunc{
		"fullmatch":   b.cmdFullMatch,
		"stats":       b.cmdStats,
		"serverstats": b.cmdServerStats,
		"economy":     b.cmdEconomy,
		"firstblood":  b.cmdFirstBlood,
		"clutches":    b.cmdClutches,
		"kastdebug":   b.cmdKASTDebug,
		"pullgames":   b.cmdPullGames,
		"link":        b.cmdLink,
		"unlink":      b.cmdUnlink,
		"linked":      b.cmdLinked,
	}
}

func optionString(i *discordgo.InteractionCreate, name string) string {
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == name && opt.Type == discordgo.ApplicationCommandOptionString {
			return opt.StringValue()
		}
	}
	return ""
}

func optionInt(i *discordgo.InteractionCreate, name string) int {
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == name && opt.Type == discordgo.ApplicationCommandOptionInteger {
			return int(opt.IntValue())
		}
	}
	return 0
}

func interactionUserID(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}

package bot

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/valbot/valstats/internal/analytics"
	"github.com/valbot/valstats/internal/henrik"
	"github.com/valbot/valstats/internal/links"
	"github.com/valbot/valstats/internal/matchlog"
	"github.com/valbot/valstats/internal/model"
	"github.com/valbot/valstats/internal/report"
)

const (
	defaultPull = 5
	maxPull     = 20
)

func codeBlock(buf *bytes.Buffer) string {
	return "```\n" + buf.String() + "```"
}

// splitRiotID parses "name#tag". Names may themselves contain '#' only in
// theory; the last separator wins.
func splitRiotID(id string) (name, tag string, ok bool) {
	idx := strings.LastIndex(id, "#")
	if idx <= 0 || idx == len(id)-1 {
		return "", "", false
	}
	return id[:idx], id[idx+1:], true
}

// resolvePlayer picks the target account: the explicit player option if
// given, otherwise the caller's linked account.
func (b *Bot) resolvePlayer(i *discordgo.InteractionCreate) (name, tag string, errMsg string) {
	if opt := optionString(i, "player"); opt != "" {
		n, t, ok := splitRiotID(opt)
		if !ok {
			return "", "", "That doesn't look like a Riot ID. Use `name#tag`."
		}
		return n, t, ""
	}
	l, err := b.links.Get(interactionUserID(i), i.GuildID)
	if errors.Is(err, links.ErrNotLinked) {
		return "", "", "You haven't linked an account. Use `/link name#tag` or pass a player."
	}
	if err != nil {
		b.log.Errorw("link lookup failed", "err", err)
		return "", "", "Couldn't look up your linked account."
	}
	return l.RiotName, l.RiotTag, ""
}

func (b *Bot) loggedMatches() []*model.MatchRecord {
	matches, err := b.logs.LoadMatches(0)
	if err != nil {
		b.log.Errorw("failed to load match logs", "err", err)
		return nil
	}
	return matches
}

// puuidFor finds the account's id by scanning logged matches for the
// name#tag. Returns "" when the player never appears.
func puuidFor(matches []*model.MatchRecord, name, tag string) string {
	for _, m := range matches {
		if p := m.PlayerByRiotID(name, tag); p != nil {
			return p.ID
		}
	}
	return ""
}

func apiErrorMessage(err error, name, tag string) string {
	switch {
	case errors.Is(err, henrik.ErrNotFound):
		return fmt.Sprintf("No data found for %s#%s. Check the Riot ID and region.", name, tag)
	case errors.Is(err, henrik.ErrRateLimited):
		return "The stats API is rate limiting us; try again in a minute."
	default:
		return "The stats API is unavailable right now."
	}
}

func (b *Bot) cmdFullMatch(ctx context.Context, i *discordgo.InteractionCreate) string {
	name, tag, msg := b.resolvePlayer(i)
	if msg != "" {
		return msg
	}

	history, err := b.henrik.MatchHistory(ctx, b.cfg.Region, name, tag, 1)
	if err != nil {
		b.log.Warnw("match history fetch failed", "player", name, "err", err)
		return apiErrorMessage(err, name, tag)
	}
	if len(history) == 0 {
		return fmt.Sprintf("%s#%s has no recent competitive matches.", name, tag)
	}

	m, err := b.henrik.Match(ctx, history[0].ID)
	if err != nil {
		b.log.Warnw("match fetch failed", "match", history[0].ID, "err", err)
		return apiErrorMessage(err, name, tag)
	}
	rows := analytics.Scoreboard(m)
	b.logMatch(m, rows)

	focus := ""
	if p := m.PlayerByRiotID(name, tag); p != nil {
		focus = p.ID
	}
	var buf bytes.Buffer
	report.PrintMatchSummary(&buf, m)
	report.PrintScoreboard(&buf, rows, focus)
	return codeBlock(&buf)
}

func (b *Bot) cmdStats(ctx context.Context, i *discordgo.InteractionCreate) string {
	name, tag, msg := b.resolvePlayer(i)
	if msg != "" {
		return msg
	}
	matches := b.loggedMatches()
	puuid := puuidFor(matches, name, tag)
	if puuid == "" {
		return fmt.Sprintf("No logged matches for %s#%s yet. Run `/pullgames` first.", name, tag)
	}

	acc := analytics.NewAccumulator()
	for _, m := range matches {
		acc.Add(m, puuid)
	}
	var buf bytes.Buffer
	report.PrintServerReport(&buf, acc.Report(1))
	return codeBlock(&buf)
}

func (b *Bot) cmdServerStats(ctx context.Context, i *discordgo.InteractionCreate) string {
	linked, err := b.links.ListGuild(i.GuildID)
	if err != nil {
		b.log.Errorw("guild link listing failed", "err", err)
		return "Couldn't read the linked accounts."
	}
	if len(linked) == 0 {
		return "Nobody in this server has linked an account yet."
	}

	matches := b.loggedMatches()
	acc := analytics.NewAccumulator()
	for _, l := range linked {
		puuid := puuidFor(matches, l.RiotName, l.RiotTag)
		if puuid == "" {
			continue
		}
		for _, m := range matches {
			acc.Add(m, puuid)
		}
	}
	rep := acc.Report(3)
	if len(rep.Players) == 0 {
		return "Not enough logged matches yet; players need at least 3."
	}
	var buf bytes.Buffer
	report.PrintServerReport(&buf, rep)
	return codeBlock(&buf)
}

func (b *Bot) cmdEconomy(ctx context.Context, i *discordgo.InteractionCreate) string {
	name, tag, msg := b.resolvePlayer(i)
	if msg != "" {
		return msg
	}
	matches := b.loggedMatches()
	puuid := puuidFor(matches, name, tag)
	if puuid == "" {
		return fmt.Sprintf("No logged matches for %s#%s yet. Run `/pullgames` first.", name, tag)
	}

	var buf bytes.Buffer
	report.PrintEconomy(&buf, analytics.EconomyBreakdown(matches, puuid))
	buf.WriteString("\n")
	report.PrintLoadouts(&buf, analytics.EffectiveLoadouts(matches))
	return codeBlock(&buf)
}

func (b *Bot) cmdFirstBlood(ctx context.Context, i *discordgo.InteractionCreate) string {
	matches := b.loggedMatches()
	if len(matches) == 0 {
		return "No logged matches yet. Run `/pullgames` first."
	}
	var buf bytes.Buffer
	report.PrintFirstBlood(&buf, analytics.FirstBloodWinRate(matches))
	return codeBlock(&buf)
}

func (b *Bot) cmdClutches(ctx context.Context, i *discordgo.InteractionCreate) string {
	name, tag, msg := b.resolvePlayer(i)
	if msg != "" {
		return msg
	}
	matches := b.loggedMatches()
	puuid := puuidFor(matches, name, tag)
	if puuid == "" {
		return fmt.Sprintf("No logged matches for %s#%s yet. Run `/pullgames` first.", name, tag)
	}
	var buf bytes.Buffer
	report.PrintClutches(&buf, analytics.DetectClutches(matches, puuid))
	return codeBlock(&buf)
}

func (b *Bot) cmdKASTDebug(ctx context.Context, i *discordgo.InteractionCreate) string {
	name, tag, msg := b.resolvePlayer(i)
	if msg != "" {
		return msg
	}
	matches := b.loggedMatches()

	// Latest logged match the player appears in.
	var m *model.MatchRecord
	var puuid string
	for idx := len(matches) - 1; idx >= 0; idx-- {
		if p := matches[idx].PlayerByRiotID(name, tag); p != nil {
			m, puuid = matches[idx], p.ID
			break
		}
	}
	if m == nil {
		return fmt.Sprintf("No logged matches for %s#%s yet. Run `/pullgames` first.", name, tag)
	}

	ix := analytics.IndexKillsByRound(m.Kills)
	flags := analytics.KASTBreakdown(m, ix, puuid)
	pct := analytics.KASTPercent(m, ix, puuid)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%s on %s\n\n", m.MatchID, m.Map)
	report.PrintKASTBreakdown(&buf, flags, pct)
	return codeBlock(&buf)
}

func (b *Bot) cmdPullGames(ctx context.Context, i *discordgo.InteractionCreate) string {
	name, tag, msg := b.resolvePlayer(i)
	if msg != "" {
		return msg
	}
	count := optionInt(i, "count")
	if count <= 0 {
		count = defaultPull
	}
	if count > maxPull {
		count = maxPull
	}

	history, err := b.henrik.MatchHistory(ctx, b.cfg.Region, name, tag, count)
	if err != nil {
		b.log.Warnw("match history fetch failed", "player", name, "err", err)
		return apiErrorMessage(err, name, tag)
	}

	added, skipped, failed := 0, 0, 0
	for _, meta := range history {
		if ok, err := b.logs.Has(meta.ID); err == nil && ok {
			skipped++
			continue
		}
		m, err := b.henrik.Match(ctx, meta.ID)
		if err != nil {
			b.log.Warnw("match fetch failed", "match", meta.ID, "err", err)
			failed++
			continue
		}
		if b.logMatch(m, analytics.Scoreboard(m)) {
			added++
		} else {
			skipped++
		}
	}

	out := fmt.Sprintf("Pulled %d new match(es) for %s#%s (%d already logged).", added, name, tag, skipped)
	if failed > 0 {
		out += fmt.Sprintf(" %d fetch(es) failed.", failed)
	}
	return out
}

func (b *Bot) cmdLink(ctx context.Context, i *discordgo.InteractionCreate) string {
	name, tag, ok := splitRiotID(optionString(i, "riot_id"))
	if !ok {
		return "That doesn't look like a Riot ID. Use `name#tag`."
	}

	// A history probe both validates the account and warms the log.
	if _, err := b.henrik.MatchHistory(ctx, b.cfg.Region, name, tag, 1); err != nil {
		if errors.Is(err, henrik.ErrNotFound) {
			return fmt.Sprintf("Couldn't find %s#%s in region %s.", name, tag, b.cfg.Region)
		}
		b.log.Warnw("link validation failed", "player", name, "err", err)
	}

	err := b.links.Set(links.Link{
		DiscordID: interactionUserID(i),
		GuildID:   i.GuildID,
		RiotName:  name,
		RiotTag:   tag,
		Region:    b.cfg.Region,
	})
	if err != nil {
		b.log.Errorw("link insert failed", "err", err)
		return "Couldn't save the link."
	}
	return fmt.Sprintf("Linked you to **%s#%s**.", name, tag)
}

func (b *Bot) cmdUnlink(_ context.Context, i *discordgo.InteractionCreate) string {
	err := b.links.Delete(interactionUserID(i), i.GuildID)
	if errors.Is(err, links.ErrNotLinked) {
		return "You don't have a linked account in this server."
	}
	if err != nil {
		b.log.Errorw("link delete failed", "err", err)
		return "Couldn't remove the link."
	}
	return "Unlinked."
}

func (b *Bot) cmdLinked(_ context.Context, i *discordgo.InteractionCreate) string {
	linked, err := b.links.ListGuild(i.GuildID)
	if err != nil {
		b.log.Errorw("guild link listing failed", "err", err)
		return "Couldn't read the linked accounts."
	}
	if len(linked) == 0 {
		return "Nobody in this server has linked an account yet."
	}
	var sb strings.Builder
	sb.WriteString("Linked accounts:\n")
	for _, l := range linked {
		fmt.Fprintf(&sb, "- <@%s> → %s\n", l.DiscordID, l.RiotID())
	}
	return sb.String()
}

// logMatch appends the match to the daily log, reporting whether it was
// new. Log failures are reported as not-added but never surface to Discord.
func (b *Bot) logMatch(m *model.MatchRecord, rows []*model.PlayerMatchStats) bool {
	added, err := b.logs.Append(matchlog.Entry{
		MatchID: m.MatchID,
		Match:   m,
		Players: rows,
	})
	if err != nil {
		b.log.Errorw("failed to log match", "match", m.MatchID, "err", err)
		return false
	}
	return added
}

package cmd

import (
	"fmt"
	"strings"

	"github.com/valbot/valstats/internal/henrik"
	"github.com/valbot/valstats/internal/matchlog"
	"github.com/valbot/valstats/internal/model"
	"github.com/valbot/valstats/internal/web"
)

func newWebServer() *web.Server {
	return web.New(cfg.Port, logger)
}

func newHenrikClient() *henrik.Client {
	c := henrik.NewClient(cfg.HenrikAPIKey)
	c.SetRateLimit(cfg.HenrikRPM)
	return c
}

func openMatchLog() (*matchlog.Store, error) {
	s, err := matchlog.Open(cfg.LogsDir)
	if err != nil {
		return nil, fmt.Errorf("open match log: %w", err)
	}
	return s, nil
}

// parseRiotID splits a "name#tag" argument.
func parseRiotID(arg string) (name, tag string, err error) {
	idx := strings.LastIndex(arg, "#")
	if idx <= 0 || idx == len(arg)-1 {
		return "", "", fmt.Errorf("invalid riot id %q: use name#tag", arg)
	}
	return arg[:idx], arg[idx+1:], nil
}

// findPlayerID resolves a riot id to a puuid by scanning logged matches.
func findPlayerID(matches []*model.MatchRecord, name, tag string) (string, error) {
	for _, m := range matches {
		if p := m.PlayerByRiotID(name, tag); p != nil {
			return p.ID, nil
		}
	}
	return "", fmt.Errorf("no logged matches for %s#%s; run `valstats pull` first", name, tag)
}

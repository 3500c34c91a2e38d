package analytics

import (
	"fmt"

	"github.com/valbot/valstats/internal/model"
)

// DetectClutches infers clutch situations for a player across matches.
//
// The data carries no players-alive state, so this is a kill-density proxy:
// any round where the player records two or more kills is treated as a 1vN
// attempt with N equal to the kill count, capped at five. A single kill is
// never a clutch. The attempt counts as won when the player either never
// died in the round or died after landing every one of their kills.
func DetectClutches(matches []*model.MatchRecord, playerID string) model.ClutchReport {
	rep := model.ClutchReport{
		Situations: make(map[string]model.ClutchRecord),
		ByMap:      make(map[string]model.ClutchRecord),
		ByAgent:    make(map[string]model.ClutchRecord),
	}
	bestN := 0
	for _, m := range matches {
		p := m.PlayerByID(playerID)
		if p == nil {
			continue
		}
		ix := IndexKillsByRound(m.Kills)
		for _, rnd := range m.Rounds {
			n, won := clutchInRound(ix.RoundKills(rnd.Number), playerID)
			if n < 2 {
				continue
			}
			if n > 5 {
				n = 5
			}
			key := fmt.Sprintf("1v%d", n)
			bump(rep.Situations, key, won)
			bump(rep.ByMap, m.Map, won)
			bump(rep.ByAgent, p.Agent, won)
			if won && n > bestN {
				bestN = n
			}
		}
	}
	if bestN > 0 {
		rep.Best = fmt.Sprintf("1v%d", bestN)
	}
	return rep
}

// clutchInRound returns the player's kill count in the round and whether
// their death, if any, came after all of their kills.
func clutchInRound(kills []model.KillEvent, playerID string) (n int, won bool) {
	lastKill := -1
	deathAt := -1
	for _, k := range kills {
		if k.KillerID == playerID && k.VictimID != playerID {
			n++
			if k.TimeInRoundMs > lastKill {
				lastKill = k.TimeInRoundMs
			}
		}
		if k.VictimID == playerID {
			deathAt = k.TimeInRoundMs
		}
	}
	won = deathAt < 0 || deathAt > lastKill
	return n, won
}

func bump(m map[string]model.ClutchRecord, key string, won bool) {
	rec := m[key]
	rec.Attempts++
	if won {
		rec.Wins++
	}
	m[key] = rec
}

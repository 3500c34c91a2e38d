package analytics

import "github.com/valbot/valstats/internal/model"

// tradeWindowMs is the maximum gap between a player's death and the death of
// their killer for the round to count as a trade.
const tradeWindowMs = 5000

// KASTFlags are the per-round contribution flags for one player.
type KASTFlags struct {
	Round    int
	Kill     bool
	Assist   bool
	Survived bool
	Traded   bool
	HasData  bool // the player appears in the round's player stats
}

// Earned reports whether any of the four conditions held.
func (f KASTFlags) Earned() bool {
	return f.Kill || f.Assist || f.Survived || f.Traded
}

// KASTBreakdown evaluates every round of the match for the given player and
// returns the per-round flags. Rounds are walked in recorded order; kill
// lookups go through the index so round-number skew in the kill feed is
// absorbed. Rounds with no stat entry for the player earn nothing.
func KASTBreakdown(m *model.MatchRecord, ix KillIndex, playerID string) []KASTFlags {
	out := make([]KASTFlags, 0, len(m.Rounds))
	for _, rnd := range m.Rounds {
		out = append(out, evalRound(rnd, ix.RoundKills(rnd.Number), playerID))
	}
	return out
}

// KASTPercent computes the player's KAST percentage across the match,
// rounded to one decimal place. A match with no rounds played or no round
// data yields 0.0. Every walked round counts toward the denominator,
// stat-less ones included; the recorded rounds-played total wins when it is
// larger, so a padded total never inflates the score.
func KASTPercent(m *model.MatchRecord, ix KillIndex, playerID string) float64 {
	if m.RoundsPlayed == 0 || len(m.Rounds) == 0 {
		return 0
	}
	flags := KASTBreakdown(m, ix, playerID)
	earned := 0
	for _, f := range flags {
		if f.Earned() {
			earned++
		}
	}
	denom := len(flags)
	if m.RoundsPlayed > denom {
		denom = m.RoundsPlayed
	}
	return model.Round1(100 * float64(earned) / float64(denom))
}

func evalRound(rnd model.RoundRecord, kills []model.KillEvent, playerID string) KASTFlags {
	f := KASTFlags{Round: rnd.Number}

	var rs *model.PlayerRoundStat
	for i := range rnd.PlayerStats {
		if rnd.PlayerStats[i].PlayerID == playerID {
			rs = &rnd.PlayerStats[i]
			break
		}
	}
	if rs == nil {
		// The round stats say nothing about this player; skip the round.
		return f
	}
	f.HasData = true
	f.Kill = rs.Kills > 0
	f.Assist = rs.Assists > 0
	f.Survived = rs.Survived

	// The kill feed is a second source for assists only, and carries the
	// death needed for the survival fallback and the trade check.
	var death *model.KillEvent
	for i := range kills {
		k := &kills[i]
		if k.VictimID == playerID {
			if death == nil || k.TimeInRoundMs < death.TimeInRoundMs {
				death = k
			}
		}
		for _, a := range k.AssistantIDs {
			if a == playerID {
				f.Assist = true
				break
			}
		}
	}

	// No recorded death counts as survival; the stats payload frequently
	// drops the survival field even for players who lived.
	if death == nil {
		f.Survived = true
	} else {
		// Traded: the player's killer died to someone else within the
		// trade window, on either side of the player's death.
		for i := range kills {
			k := &kills[i]
			if k.VictimID != death.KillerID || k.KillerID == playerID {
				continue
			}
			dt := k.TimeInRoundMs - death.TimeInRoundMs
			if dt < 0 {
				dt = -dt
			}
			if dt <= tradeWindowMs {
				f.Traded = true
				break
			}
		}
	}
	return f
}

package analytics

import (
	"math"

	"github.com/valbot/valstats/internal/model"
)

// KDA returns (kills+assists)/deaths rounded to two decimals. With zero
// deaths the ratio is +Inf when the numerator is positive, otherwise 0.
func KDA(kills, deaths, assists int) float64 {
	if deaths == 0 {
		if kills+assists > 0 {
			return math.Inf(1)
		}
		return 0
	}
	return model.Round2(float64(kills+assists) / float64(deaths))
}

// ADR is average damage per round, one decimal place, 0 with no rounds.
func ADR(damage, rounds int) float64 {
	if rounds == 0 {
		return 0
	}
	return model.Round1(float64(damage) / float64(rounds))
}

// HeadshotPercent is headshots over all hits, one decimal place, 0 with no
// hits recorded.
func HeadshotPercent(head, body, leg int) float64 {
	total := head + body + leg
	if total == 0 {
		return 0
	}
	return model.Round1(100 * float64(head) / float64(total))
}

// ACS is combat score per round, truncated toward zero, 0 with no rounds.
func ACS(score, rounds int) int {
	if rounds == 0 {
		return 0
	}
	return int(float64(score) / float64(rounds))
}

// ClampACS applies the 0-1000 sanity band to a reported ACS value. Out of
// band, it is recomputed from score and rounds; if that is still out of
// band the value is zeroed rather than propagated.
func ClampACS(reported, score, rounds int) int {
	if reported >= 0 && reported <= 1000 {
		return reported
	}
	recomputed := ACS(score, rounds)
	if recomputed >= 0 && recomputed <= 1000 {
		return recomputed
	}
	return 0
}

// FirstBloods counts the rounds a player drew first blood and the rounds
// they died first. Rounds are walked in recorded order with kill lookups
// going through the index, so skewed feed rounds resolve the same way they
// do everywhere else. Only the earliest kill of a round counts; the index
// already has kills time-sorted.
func FirstBloods(m *model.MatchRecord, ix KillIndex, playerID string) (bloods, deaths int) {
	for _, rnd := range m.Rounds {
		ks := ix.RoundKills(rnd.Number)
		if len(ks) == 0 {
			continue
		}
		first := ks[0]
		if first.KillerID == playerID && first.VictimID != playerID {
			bloods++
		}
		if first.VictimID == playerID {
			deaths++
		}
	}
	return bloods, deaths
}

// Multikills buckets the player's rounds by the per-round kill stat. The
// round stats are the authoritative count; the kill feed can run short of
// them. Rounds with five or more kills land in the 5K bucket.
func Multikills(m *model.MatchRecord, playerID string) model.MultikillCounts {
	var mk model.MultikillCounts
	for _, rnd := range m.Rounds {
		for _, ps := range rnd.PlayerStats {
			if ps.PlayerID != playerID {
				continue
			}
			switch n := ps.Kills; {
			case n >= 5:
				mk.FiveK++
			case n == 4:
				mk.FourK++
			case n == 3:
				mk.ThreeK++
			case n == 2:
				mk.TwoK++
			}
			break
		}
	}
	return mk
}

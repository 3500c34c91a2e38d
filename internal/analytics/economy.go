package analytics

import (
	"fmt"
	"sort"
	"strings"

	"github.com/valbot/valstats/internal/model"
)

// Loadout-mean thresholds for the credit-based classification.
const (
	ecoThreshold   = 1000
	forceThreshold = 2500
)

func isPistolRound(n int) bool { return n == 1 || n == 13 }

func isPostPistol(n int) bool { return n == 2 || n == 14 }

func isEarlyHalf(n int) bool {
	return n == 2 || n == 3 || n == 14 || n == 15
}

// ClassifyBuy decides a team's buy type for one round. The rules are
// ordered; the first that applies wins:
//
//  1. rounds 1 and 13 are pistols, regardless of loadout data
//  2. rounds 2 and 14 after a won pistol are anti-ecos
//  3. with loadout data, the mean of non-zero loadout values decides:
//     under 1000 eco, under 2500 force-buy, otherwise full-buy
//  4. without loadout data, two straight losses mean eco, the early rounds
//     of a half mean force-buy, and anything else is a full-buy
func ClassifyBuy(round int, loadoutValues []int, wonPrev, lostPrevTwo bool) model.BuyType {
	if isPistolRound(round) {
		return model.BuyPistol
	}
	if isPostPistol(round) && wonPrev {
		return model.BuyAntiEco
	}

	sum, n := 0, 0
	for _, v := range loadoutValues {
		if v > 0 {
			sum += v
			n++
		}
	}
	if n > 0 {
		mean := float64(sum) / float64(n)
		switch {
		case mean < ecoThreshold:
			return model.BuyEco
		case mean < forceThreshold:
			return model.BuyForce
		default:
			return model.BuyFull
		}
	}

	if lostPrevTwo {
		return model.BuyEco
	}
	if isEarlyHalf(round) {
		return model.BuyForce
	}
	return model.BuyFull
}

// EconomyBreakdown classifies every round of every match from the given
// player's team's perspective and tallies attempts and wins per buy type.
// Matches the player did not take part in are skipped.
func EconomyBreakdown(matches []*model.MatchRecord, playerID string) map[model.BuyType]model.EconomyRecord {
	out := make(map[model.BuyType]model.EconomyRecord, len(model.BuyTypes))
	for _, m := range matches {
		p := m.PlayerByID(playerID)
		if p == nil || p.Team == model.TeamUnknown {
			continue
		}
		tallyTeamEconomy(out, m, p.Team)
	}
	return out
}

func tallyTeamEconomy(out map[model.BuyType]model.EconomyRecord, m *model.MatchRecord, team model.Team) {
	wonPrev := false
	lostStreak := 0
	for _, rnd := range m.Rounds {
		var values []int
		for _, ps := range rnd.PlayerStats {
			if ps.Team == team {
				values = append(values, ps.Economy.LoadoutValue)
			}
		}
		bt := ClassifyBuy(rnd.Number, values, wonPrev, lostStreak >= 2)

		won := rnd.WinningTeam == team
		rec := out[bt]
		rec.Attempts++
		if won {
			rec.Wins++
		}
		out[bt] = rec

		wonPrev = won
		if won {
			lostStreak = 0
		} else {
			lostStreak++
		}
	}
}

// minSignatureRounds is the sample floor below which a loadout signature is
// too noisy to report.
const minSignatureRounds = 5

// EffectiveLoadouts finds the team loadout signatures with the best win
// rate per credit spent. Pistol and post-pistol rounds (1, 2, 13, 14) are
// excluded, as are rounds where a team does not have exactly five players
// reporting economy data. Signatures seen fewer than five times are
// discarded; the top ten by efficiency are returned.
func EffectiveLoadouts(matches []*model.MatchRecord) []*model.LoadoutStats {
	bySig := make(map[string]*model.LoadoutStats)
	for _, m := range matches {
		for _, rnd := range m.Rounds {
			if rnd.Number == 1 || rnd.Number == 2 || rnd.Number == 13 || rnd.Number == 14 {
				continue
			}
			for _, team := range []model.Team{model.TeamRed, model.TeamBlue} {
				stats, ok := teamLoadout(rnd, team)
				if !ok {
					continue
				}
				ls, seen := bySig[stats.Signature]
				if !seen {
					ls = stats
					bySig[stats.Signature] = ls
				}
				ls.TotalRounds++
				if rnd.WinningTeam == team {
					ls.Wins++
				}
			}
		}
	}

	var out []*model.LoadoutStats
	for _, ls := range bySig {
		if ls.TotalRounds >= minSignatureRounds {
			out = append(out, ls)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Efficiency() != out[j].Efficiency() {
			return out[i].Efficiency() > out[j].Efficiency()
		}
		return out[i].Signature < out[j].Signature
	})
	if len(out) > 10 {
		out = out[:10]
	}
	return out
}

// teamLoadout builds the signature for one team in one round: the three
// most common weapons (sorted), the armor count, and the summed loadout
// value. Requires exactly five players with economy data.
func teamLoadout(rnd model.RoundRecord, team model.Team) (*model.LoadoutStats, bool) {
	weaponCount := make(map[string]int)
	armor, total, players := 0, 0, 0
	for _, ps := range rnd.PlayerStats {
		if ps.Team != team {
			continue
		}
		players++
		eco := ps.Economy
		if w := eco.Weapon; w != "" {
			weaponCount[w]++
		}
		if eco.Armor != "" && eco.Armor != "None" {
			armor++
		}
		total += eco.LoadoutValue
	}
	if players != 5 || len(weaponCount) == 0 {
		return nil, false
	}

	type wc struct {
		name  string
		count int
	}
	ranked := make([]wc, 0, len(weaponCount))
	for w, c := range weaponCount {
		ranked = append(ranked, wc{w, c})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].count != ranked[j].count {
			return ranked[i].count > ranked[j].count
		}
		return ranked[i].name < ranked[j].name
	})
	if len(ranked) > 3 {
		ranked = ranked[:3]
	}
	top := make([]string, len(ranked))
	for i, r := range ranked {
		top[i] = r.name
	}
	sort.Strings(top)

	return &model.LoadoutStats{
		Signature:      fmt.Sprintf("%s|A%d|$%d", strings.Join(top, "-"), armor, total),
		PrimaryWeapons: top,
		ArmorCount:     armor,
		TotalValue:     total,
	}, true
}

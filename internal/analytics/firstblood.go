package analytics

import "github.com/valbot/valstats/internal/model"

// FirstBloodWinRate measures how often the team that draws first blood goes
// on to win the round, across all given matches. Rounds without kills or
// without a known winner are excluded from the sample.
func FirstBloodWinRate(matches []*model.MatchRecord) model.FirstBloodStats {
	var out model.FirstBloodStats
	for _, m := range matches {
		ix := IndexKillsByRound(m.Kills)
		for _, rnd := range m.Rounds {
			out.TotalRounds++
			if rnd.WinningTeam == model.TeamUnknown {
				continue
			}
			ks := ix.RoundKills(rnd.Number)
			if len(ks) == 0 {
				continue
			}
			fbTeam := ks[0].KillerTeam
			if fbTeam == model.TeamUnknown {
				continue
			}
			out.FirstBloodRounds++
			if fbTeam == rnd.WinningTeam {
				out.Wins++
			} else {
				out.Losses++
			}
		}
	}
	return out
}

package analytics

import (
	"sort"

	"github.com/valbot/valstats/internal/model"
)

// KillIndex groups a match's kill feed by round number, each round's kills
// sorted by time into the round. Kill events occasionally carry a round
// number shifted by one relative to the round sequence, so lookups fall back
// to the adjacent rounds.
type KillIndex struct {
	byRound map[int][]model.KillEvent
}

// IndexKillsByRound builds a KillIndex from the raw kill feed. The input
// slice is not modified.
func IndexKillsByRound(kills []model.KillEvent) KillIndex {
	byRound := make(map[int][]model.KillEvent)
	for _, k := range kills {
		byRound[k.Round] = append(byRound[k.Round], k)
	}
	for r := range byRound {
		ks := byRound[r]
		sort.SliceStable(ks, func(i, j int) bool {
			return ks[i].TimeInRoundMs < ks[j].TimeInRoundMs
		})
	}
	return KillIndex{byRound: byRound}
}

// RoundKills returns the kills recorded for round n, trying n, then n+1,
// then n-1. Every consumer of the index goes through this method so the
// skew is resolved the same way everywhere.
func (ix KillIndex) RoundKills(n int) []model.KillEvent {
	if ks, ok := ix.byRound[n]; ok && len(ks) > 0 {
		return ks
	}
	if ks, ok := ix.byRound[n+1]; ok && len(ks) > 0 {
		return ks
	}
	if ks, ok := ix.byRound[n-1]; ok && len(ks) > 0 {
		return ks
	}
	return nil
}

package analytics

import "github.com/valbot/valstats/internal/model"

// Shared test roster. hero and mate play Red, the foes play Blue.
const (
	hero = "puuid-hero"
	mate = "puuid-mate"
	foeA = "puuid-foe-a"
	foeB = "puuid-foe-b"
)

var teamOf = map[string]model.Team{
	hero: model.TeamRed,
	mate: model.TeamRed,
	foeA: model.TeamBlue,
	foeB: model.TeamBlue,
}

func kill(round, timeMs int, killer, victim string, assistants ...string) model.KillEvent {
	return model.KillEvent{
		Round:         round,
		TimeInRoundMs: timeMs,
		KillerID:      killer,
		VictimID:      victim,
		KillerTeam:    teamOf[killer],
		VictimTeam:    teamOf[victim],
		AssistantIDs:  assistants,
	}
}

func roundStat(playerID string, kills, assists int, survived bool) model.PlayerRoundStat {
	return model.PlayerRoundStat{
		PlayerID: playerID,
		Team:     teamOf[playerID],
		Kills:    kills,
		Assists:  assists,
		Survived: survived,
	}
}

func round(number int, winner model.Team, stats ...model.PlayerRoundStat) model.RoundRecord {
	return model.RoundRecord{Number: number, WinningTeam: winner, PlayerStats: stats}
}

func buildMatch(rounds []model.RoundRecord, kills []model.KillEvent) *model.MatchRecord {
	m := &model.MatchRecord{
		MatchID:      "test-match",
		Map:          "Ascent",
		RoundsPlayed: len(rounds),
		Rounds:       rounds,
		Kills:        kills,
	}
	for id, team := range teamOf {
		m.Players = append(m.Players, model.PlayerRecord{ID: id, Name: id, Tag: "NA1", Team: team})
	}
	for _, r := range rounds {
		switch r.WinningTeam {
		case model.TeamRed:
			m.RedRounds++
		case model.TeamBlue:
			m.BlueRounds++
		}
	}
	return m
}

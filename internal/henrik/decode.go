package henrik

import "github.com/valbot/valstats/internal/model"

// Wire types mirror the API payloads loosely. The upstream is not
// consistent about field names between versions, so anything that has been
// observed under more than one name carries every spelling and is resolved
// in the decode step.

type wireLifetimeMatch struct {
	Meta struct {
		ID  string `json:"id"`
		Map struct {
			Name string `json:"name"`
		} `json:"map"`
		Mode      string `json:"mode"`
		StartedAt string `json:"started_at"`
	} `json:"meta"`
}

type wireMatch struct {
	Metadata struct {
		MatchID      string `json:"matchid"`
		Map          string `json:"map"`
		Mode         string `json:"mode"`
		GameStart    string `json:"game_start_patched"`
		RoundsPlayed int    `json:"rounds_played"`
	} `json:"metadata"`
	Players struct {
		All []wirePlayer `json:"all_players"`
	} `json:"players"`
	Teams struct {
		Red  wireTeam `json:"red"`
		Blue wireTeam `json:"blue"`
	} `json:"teams"`
	Rounds []wireRound `json:"rounds"`
	Kills  []wireKill  `json:"kills"`
}

type wireTeam struct {
	RoundsWon int `json:"rounds_won"`
}

type wirePlayer struct {
	PUUID     string `json:"puuid"`
	Name      string `json:"name"`
	Tag       string `json:"tag"`
	Team      string `json:"team"`
	Character string `json:"character"`
	Tier      string `json:"currenttier_patched"`
	Stats     struct {
		Score     int `json:"score"`
		Kills     int `json:"kills"`
		Deaths    int `json:"deaths"`
		Assists   int `json:"assists"`
		Headshots int `json:"headshots"`
		Bodyshots int `json:"bodyshots"`
		Legshots  int `json:"legshots"`
	} `json:"stats"`
	DamageMade int `json:"damage_made"`
}

type wireRound struct {
	// Round numbers appear under three names, or not at all; decodeMatch
	// falls back to the position in the array.
	Round       *int `json:"round"`
	RoundNum    *int `json:"round_num"`
	RoundNumber *int `json:"round_number"`

	WinningTeam string          `json:"winning_team"`
	PlayerStats []wireRoundStat `json:"player_stats"`
}

type wireRoundStat struct {
	PUUID   string `json:"player_puuid"`
	Team    string `json:"player_team"`
	Kills   int    `json:"kills"`
	Assists int    `json:"assists"`

	// Survival shows up under four spellings depending on source version.
	Alive       *bool `json:"alive"`
	WasAlive    *bool `json:"was_alive"`
	SurvivedRaw *bool `json:"survived"`
	DiedInRound *bool `json:"died_in_round"`

	Economy struct {
		LoadoutValue int `json:"loadout_value"`
		Weapon       struct {
			Name string `json:"name"`
		} `json:"weapon"`
		Armor struct {
			Name string `json:"name"`
		} `json:"armor"`
	} `json:"economy"`
}

type wireKill struct {
	Round       *int `json:"round"`
	RoundNum    *int `json:"round_num"`
	RoundNumber *int `json:"round_number"`

	TimeInRound int    `json:"kill_time_in_round"`
	KillerPUUID string `json:"killer_puuid"`
	KillerTeam  string `json:"killer_team"`
	VictimPUUID string `json:"victim_puuid"`
	VictimTeam  string `json:"victim_team"`
	Assistants  []struct {
		PUUID string `json:"assistant_puuid"`
	} `json:"assistants"`
}

func pickRound(candidates ...*int) (int, bool) {
	for _, c := range candidates {
		if c != nil {
			return *c, true
		}
	}
	return 0, false
}

func (rs *wireRoundStat) survived() bool {
	for _, b := range []*bool{rs.Alive, rs.WasAlive, rs.SurvivedRaw} {
		if b != nil && *b {
			return true
		}
	}
	if rs.DiedInRound != nil && !*rs.DiedInRound {
		return true
	}
	return false
}

func decodeMatch(w *wireMatch) *model.MatchRecord {
	m := &model.MatchRecord{
		MatchID:      w.Metadata.MatchID,
		Map:          w.Metadata.Map,
		Mode:         w.Metadata.Mode,
		StartedAt:    w.Metadata.GameStart,
		RoundsPlayed: w.Metadata.RoundsPlayed,
		RedRounds:    w.Teams.Red.RoundsWon,
		BlueRounds:   w.Teams.Blue.RoundsWon,
	}
	if m.RoundsPlayed == 0 {
		m.RoundsPlayed = len(w.Rounds)
	}

	for _, p := range w.Players.All {
		m.Players = append(m.Players, model.PlayerRecord{
			ID:    p.PUUID,
			Name:  p.Name,
			Tag:   p.Tag,
			Team:  model.ParseTeam(p.Team),
			Agent: p.Character,
			Rank:  p.Tier,
			Stats: model.AggregateStats{
				Kills:     p.Stats.Kills,
				Deaths:    p.Stats.Deaths,
				Assists:   p.Stats.Assists,
				Score:     p.Stats.Score,
				Damage:    p.DamageMade,
				Headshots: p.Stats.Headshots,
				Bodyshots: p.Stats.Bodyshots,
				Legshots:  p.Stats.Legshots,
			},
		})
	}

	for i, r := range w.Rounds {
		n, ok := pickRound(r.RoundNum, r.Round, r.RoundNumber)
		if !ok {
			n = i + 1
		}
		rr := model.RoundRecord{
			Number:      n,
			WinningTeam: model.ParseTeam(r.WinningTeam),
		}
		for _, ps := range r.PlayerStats {
			rr.PlayerStats = append(rr.PlayerStats, model.PlayerRoundStat{
				PlayerID: ps.PUUID,
				Team:     model.ParseTeam(ps.Team),
				Kills:    ps.Kills,
				Assists:  ps.Assists,
				Survived: ps.survived(),
				Economy: model.EconomySnapshot{
					LoadoutValue: ps.Economy.LoadoutValue,
					Weapon:       ps.Economy.Weapon.Name,
					Armor:        ps.Economy.Armor.Name,
				},
			})
		}
		m.Rounds = append(m.Rounds, rr)
	}

	for _, k := range w.Kills {
		n, _ := pickRound(k.RoundNum, k.Round, k.RoundNumber)
		var assists []string
		for _, a := range k.Assistants {
			if a.PUUID != "" {
				assists = append(assists, a.PUUID)
			}
		}
		m.Kills = append(m.Kills, model.KillEvent{
			Round:         n,
			TimeInRoundMs: k.TimeInRound,
			KillerID:      k.KillerPUUID,
			KillerTeam:    model.ParseTeam(k.KillerTeam),
			VictimID:      k.VictimPUUID,
			VictimTeam:    model.ParseTeam(k.VictimTeam),
			AssistantIDs:  assists,
		})
	}
	return m
}

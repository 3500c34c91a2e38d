package analytics

import (
	"sort"

	"github.com/valbot/valstats/internal/model"
)

// Scoreboard computes the full stat line for every participant of a match,
// sorted by ACS descending.
func Scoreboard(m *model.MatchRecord) []*model.PlayerMatchStats {
	ix := IndexKillsByRound(m.Kills)
	rows := make([]*model.PlayerMatchStats, 0, len(m.Players))
	for i := range m.Players {
		p := &m.Players[i]
		s := p.Stats
		fb, fd := FirstBloods(m, ix, p.ID)
		row := &model.PlayerMatchStats{
			MatchID: m.MatchID,
			ID:      p.ID,
			Name:    p.Name,
			Tag:     p.Tag,
			Team:    p.Team,
			Agent:   p.Agent,
			Rank:    p.Rank,

			Kills:   s.Kills,
			Deaths:  s.Deaths,
			Assists: s.Assists,
			Score:   s.Score,
			Damage:  s.Damage,

			ACS:         ClampACS(ACS(s.Score, m.RoundsPlayed), s.Score, m.RoundsPlayed),
			ADR:         ADR(s.Damage, m.RoundsPlayed),
			KDA:         model.Ratio(KDA(s.Kills, s.Deaths, s.Assists)),
			HeadshotPct: HeadshotPercent(s.Headshots, s.Bodyshots, s.Legshots),
			KASTPct:     KASTPercent(m, ix, p.ID),

			FirstBloods: fb,
			FirstDeaths: fd,
			Multikills:  Multikills(m, p.ID),
		}
		rows = append(rows, row)
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].ACS > rows[j].ACS })
	return rows
}

// AgentAggregate accumulates a tracked player's outings on one agent.
type AgentAggregate struct {
	Agent   string
	Matches int
	Wins    int
	ACSSum  int
}

// AvgACS is the agent's mean combat score, truncated.
func (a *AgentAggregate) AvgACS() int {
	if a.Matches == 0 {
		return 0
	}
	return a.ACSSum / a.Matches
}

// BestGame is a tracked player's single strongest outing by ACS.
type BestGame struct {
	MatchID string
	Map     string
	Agent   string
	ACS     int
	Kills   int
	Deaths  int
	Assists int
}

// PlayerAggregate is one tracked player's running totals across matches.
type PlayerAggregate struct {
	ID      string
	Name    string
	Tag     string
	Matches int
	Wins    int
	Kills   int
	Deaths  int
	Assists int

	ACSSum  int
	ADRSum  float64
	HSSum   float64
	KASTSum float64

	Agents map[string]*AgentAggregate
	Best   BestGame
}

// AvgACS is the mean combat score across counted matches, truncated.
func (p *PlayerAggregate) AvgACS() int {
	if p.Matches == 0 {
		return 0
	}
	return p.ACSSum / p.Matches
}

// AvgADR is the mean damage per round across counted matches.
func (p *PlayerAggregate) AvgADR() float64 {
	if p.Matches == 0 {
		return 0
	}
	return model.Round1(p.ADRSum / float64(p.Matches))
}

// AvgHS is the mean headshot percentage across counted matches.
func (p *PlayerAggregate) AvgHS() float64 {
	if p.Matches == 0 {
		return 0
	}
	return model.Round1(p.HSSum / float64(p.Matches))
}

// AvgKAST is the mean KAST percentage across counted matches.
func (p *PlayerAggregate) AvgKAST() float64 {
	if p.Matches == 0 {
		return 0
	}
	return model.Round1(p.KASTSum / float64(p.Matches))
}

// KD is total kills over total deaths, two decimals.
func (p *PlayerAggregate) KD() float64 {
	if p.Deaths == 0 {
		if p.Kills > 0 {
			return model.Round2(float64(p.Kills))
		}
		return 0
	}
	return model.Round2(float64(p.Kills) / float64(p.Deaths))
}

// WinRate is the player's match win percentage.
func (p *PlayerAggregate) WinRate() float64 {
	if p.Matches == 0 {
		return 0
	}
	return model.Round1(100 * float64(p.Wins) / float64(p.Matches))
}

// BestAgent returns the player's strongest agent by average ACS among
// agents with at least minMatches outings, or nil.
func (p *PlayerAggregate) BestAgent(minMatches int) *AgentAggregate {
	var best *AgentAggregate
	for _, a := range p.Agents {
		if a.Matches < minMatches {
			continue
		}
		if best == nil || a.AvgACS() > best.AvgACS() ||
			(a.AvgACS() == best.AvgACS() && a.Agent < best.Agent) {
			best = a
		}
	}
	return best
}

// MapAggregate counts tracked-player outings on one map.
type MapAggregate struct {
	Map   string
	Plays int
	Wins  int
}

// WinRate is the tracked players' match win percentage on the map.
func (m *MapAggregate) WinRate() float64 {
	if m.Plays == 0 {
		return 0
	}
	return model.Round1(100 * float64(m.Wins) / float64(m.Plays))
}

// Accumulator folds per-match scoreboards into a server-wide summary. It is
// a plain value holding its own state; callers create one per report run,
// feed it and read the result, so concurrent report runs never share
// anything.
type Accumulator struct {
	players map[string]*PlayerAggregate
	maps    map[string]*MapAggregate
}

// NewAccumulator returns an empty fold.
func NewAccumulator() *Accumulator {
	return &Accumulator{
		players: make(map[string]*PlayerAggregate),
		maps:    make(map[string]*MapAggregate),
	}
}

// Add folds one tracked player's appearance in one match. Matches where the
// player is absent are ignored. Out-of-band ACS values are repaired or
// dropped before they can poison the averages.
func (a *Accumulator) Add(m *model.MatchRecord, playerID string) {
	p := m.PlayerByID(playerID)
	if p == nil {
		return
	}

	ix := IndexKillsByRound(m.Kills)
	acs := ClampACS(ACS(p.Stats.Score, m.RoundsPlayed), p.Stats.Score, m.RoundsPlayed)
	won := p.Team != model.TeamUnknown && m.Winner() == p.Team

	pa := a.players[playerID]
	if pa == nil {
		pa = &PlayerAggregate{
			ID:     playerID,
			Name:   p.Name,
			Tag:    p.Tag,
			Agents: make(map[string]*AgentAggregate),
		}
		a.players[playerID] = pa
	}
	pa.Matches++
	if won {
		pa.Wins++
	}
	pa.Kills += p.Stats.Kills
	pa.Deaths += p.Stats.Deaths
	pa.Assists += p.Stats.Assists
	pa.ACSSum += acs
	pa.ADRSum += ADR(p.Stats.Damage, m.RoundsPlayed)
	pa.HSSum += HeadshotPercent(p.Stats.Headshots, p.Stats.Bodyshots, p.Stats.Legshots)
	pa.KASTSum += KASTPercent(m, ix, playerID)

	ag := pa.Agents[p.Agent]
	if ag == nil {
		ag = &AgentAggregate{Agent: p.Agent}
		pa.Agents[p.Agent] = ag
	}
	ag.Matches++
	if won {
		ag.Wins++
	}
	ag.ACSSum += acs

	if acs > pa.Best.ACS {
		pa.Best = BestGame{
			MatchID: m.MatchID,
			Map:     m.Map,
			Agent:   p.Agent,
			ACS:     acs,
			Kills:   p.Stats.Kills,
			Deaths:  p.Stats.Deaths,
			Assists: p.Stats.Assists,
		}
	}

	ma := a.maps[m.Map]
	if ma == nil {
		ma = &MapAggregate{Map: m.Map}
		a.maps[m.Map] = ma
	}
	ma.Plays++
	if won {
		ma.Wins++
	}
}

// ServerReport is the finished server-wide summary.
type ServerReport struct {
	Players []*PlayerAggregate // leaderboard order: avg ACS desc
	Maps    []*MapAggregate    // plays desc
}

// Report closes the fold. Players with fewer than minMatches counted
// matches are excluded from the leaderboard.
func (a *Accumulator) Report(minMatches int) *ServerReport {
	rep := &ServerReport{}
	for _, pa := range a.players {
		if pa.Matches < minMatches {
			continue
		}
		rep.Players = append(rep.Players, pa)
	}
	sort.Slice(rep.Players, func(i, j int) bool {
		if rep.Players[i].AvgACS() != rep.Players[j].AvgACS() {
			return rep.Players[i].AvgACS() > rep.Players[j].AvgACS()
		}
		return rep.Players[i].Name < rep.Players[j].Name
	})
	for _, ma := range a.maps {
		rep.Maps = append(rep.Maps, ma)
	}
	sort.Slice(rep.Maps, func(i, j int) bool {
		if rep.Maps[i].Plays != rep.Maps[j].Plays {
			return rep.Maps[i].Plays > rep.Maps[j].Plays
		}
		return rep.Maps[i].Map < rep.Maps[j].Map
	})
	return rep
}

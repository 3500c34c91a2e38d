package model

// Team represents which side a player is on.
type Team int

const (
	TeamUnknown Team = 0
	TeamRed     Team = 1
	TeamBlue    Team = 2
)

func (t Team) String() string {
	switch t {
	case TeamRed:
		return "Red"
	case TeamBlue:
		return "Blue"
	default:
		return "?"
	}
}

// ParseTeam maps the API's team strings ("Red"/"Blue", any casing) to a Team.
func ParseTeam(s string) Team {
	switch s {
	case "Red", "red", "RED":
		return TeamRed
	case "Blue", "blue", "BLUE":
		return TeamBlue
	default:
		return TeamUnknown
	}
}

// ---- Raw match data as fetched from the stats API ----

// KillEvent is one elimination, tagged with the round number reported by the
// API. Kill-event round numbers can be off by one relative to the round
// sequence; consumers resolve that through analytics.KillIndex.
type KillEvent struct {
	Round         int
	TimeInRoundMs int
	KillerID      string
	VictimID      string
	KillerTeam    Team
	VictimTeam    Team
	AssistantIDs  []string
}

// EconomySnapshot is a player's buy for one round.
type EconomySnapshot struct {
	LoadoutValue int
	Weapon       string
	Armor        string // "None" or empty when no armor was bought
}

// PlayerRoundStat is one player's state within one round.
type PlayerRoundStat struct {
	PlayerID string
	Team     Team
	Kills    int
	Assists  int
	// Survived is the union of the API's survival spellings (alive,
	// was_alive, survived, !died_in_round). When false it may simply mean
	// the field was absent; KAST falls back to the kill feed.
	Survived bool
	Economy  EconomySnapshot
}

// RoundRecord is one round of a match.
type RoundRecord struct {
	Number      int // 1-based, normalized during decoding
	WinningTeam Team
	PlayerStats []PlayerRoundStat
}

// AggregateStats are the API's match-scoped totals for one player.
type AggregateStats struct {
	Kills     int
	Deaths    int
	Assists   int
	Score     int
	Damage    int
	Headshots int
	Bodyshots int
	Legshots  int
}

// PlayerRecord is one participant of a match.
type PlayerRecord struct {
	ID    string // puuid, stable within the match
	Name  string
	Tag   string
	Team  Team
	Agent string
	Rank  string
	Stats AggregateStats
}

// RiotID returns the player's external identifier, e.g. "TenZ#0505".
func (p *PlayerRecord) RiotID() string {
	return p.Name + "#" + p.Tag
}

// MatchRecord is an immutable snapshot of one completed match. The analytics
// package only ever reads it.
type MatchRecord struct {
	MatchID      string
	Map          string
	Mode         string
	StartedAt    string
	RoundsPlayed int
	RedRounds    int // rounds won by Red
	BlueRounds   int // rounds won by Blue
	Rounds       []RoundRecord
	Kills        []KillEvent
	Players      []PlayerRecord
}

// PlayerByRiotID finds a participant by name#tag. Name comparison is
// case-insensitive to match the lookup behavior of the commands; tag is exact.
func (m *MatchRecord) PlayerByRiotID(name, tag string) *PlayerRecord {
	for i := range m.Players {
		p := &m.Players[i]
		if equalFold(p.Name, name) && p.Tag == tag {
			return p
		}
	}
	return nil
}

// PlayerByID finds a participant by puuid.
func (m *MatchRecord) PlayerByID(id string) *PlayerRecord {
	for i := range m.Players {
		if m.Players[i].ID == id {
			return &m.Players[i]
		}
	}
	return nil
}

// Winner returns the team that won the match, or TeamUnknown on a draw.
func (m *MatchRecord) Winner() Team {
	switch {
	case m.RedRounds > m.BlueRounds:
		return TeamRed
	case m.BlueRounds > m.RedRounds:
		return TeamBlue
	default:
		return TeamUnknown
	}
}

// equalFold is an ASCII case-insensitive compare; player names are matched
// the way the commands match them, tags exactly.
func equalFold(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		ca, cb := a[i], b[i]
		if 'A' <= ca && ca <= 'Z' {
			ca += 'a' - 'A'
		}
		if 'A' <= cb && cb <= 'Z' {
			cb += 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}

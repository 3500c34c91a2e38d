package model

import (
	"encoding/json"
	"math"
	"testing"
)

func TestRatioJSONRoundTrip(t *testing.T) {
	cases := []Ratio{0, 2.5, Ratio(math.Inf(1))}
	for _, r := range cases {
		data, err := json.Marshal(r)
		if err != nil {
			t.Fatalf("marshal %v: %v", r, err)
		}
		var back Ratio
		if err := json.Unmarshal(data, &back); err != nil {
			t.Fatalf("unmarshal %s: %v", data, err)
		}
		if back != r {
			t.Errorf("round trip %v -> %s -> %v", r, data, back)
		}
	}
}

func TestMultikillCounters(t *testing.T) {
	mk := MultikillCounts{TwoK: 2, ThreeK: 1, FourK: 0, FiveK: 3}
	if mk.ThreePlus() != 4 {
		t.Errorf("ThreePlus = %d", mk.ThreePlus())
	}
	if mk.Total() != 6 {
		t.Errorf("Total = %d", mk.Total())
	}
}

func TestEconomyRecordWinRate(t *testing.T) {
	if got := (EconomyRecord{}).WinRate(); got != 0 {
		t.Errorf("empty record win rate = %v", got)
	}
	if got := (EconomyRecord{Attempts: 3, Wins: 2}).WinRate(); got != 66.7 {
		t.Errorf("win rate = %v, expected 66.7", got)
	}
}

func TestMatchRecordLookups(t *testing.T) {
	m := MatchRecord{
		RedRounds:  13,
		BlueRounds: 7,
		Players: []PlayerRecord{
			{ID: "p1", Name: "Hero", Tag: "NA1", Team: TeamRed},
			{ID: "p2", Name: "Villain", Tag: "EU1", Team: TeamBlue},
		},
	}
	if m.Winner() != TeamRed {
		t.Errorf("winner = %v", m.Winner())
	}
	if p := m.PlayerByRiotID("hero", "NA1"); p == nil || p.ID != "p1" {
		t.Error("name lookup should be case-insensitive")
	}
	if p := m.PlayerByRiotID("Hero", "na1"); p != nil {
		t.Error("tag lookup must be exact")
	}
	if p := m.PlayerByID("p2"); p == nil || p.Name != "Villain" {
		t.Error("id lookup failed")
	}
}

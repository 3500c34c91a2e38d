package henrik

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/valbot/valstats/internal/model"
)

const matchBody = `{
  "data": {
    "metadata": {
      "matchid": "abc-123",
      "map": "Ascent",
      "mode": "Competitive",
      "game_start_patched": "Friday, August 28, 2026 9:14 PM",
      "rounds_played": 2
    },
    "players": {
      "all_players": [
        {
          "puuid": "p1", "name": "Hero", "tag": "NA1",
          "team": "Red", "character": "Jett", "currenttier_patched": "Diamond 2",
          "stats": {"score": 620, "kills": 3, "deaths": 1, "assists": 1,
                    "headshots": 3, "bodyshots": 5, "legshots": 2},
          "damage_made": 410
        },
        {
          "puuid": "p2", "name": "Villain", "tag": "EU1",
          "team": "Blue", "character": "Sova", "currenttier_patched": "Diamond 1",
          "stats": {"score": 80, "kills": 0, "deaths": 2, "assists": 0,
                    "headshots": 0, "bodyshots": 1, "legshots": 0},
          "damage_made": 40
        }
      ]
    },
    "teams": {"red": {"rounds_won": 2}, "blue": {"rounds_won": 0}},
    "rounds": [
      {
        "winning_team": "Red",
        "player_stats": [
          {"player_puuid": "p1", "player_team": "Red", "kills": 2, "alive": true,
           "economy": {"loadout_value": 3900, "weapon": {"name": "Vandal"}, "armor": {"name": "Heavy"}}},
          {"player_puuid": "p2", "player_team": "Blue", "kills": 0, "died_in_round": true}
        ]
      },
      {
        "round_num": 2,
        "winning_team": "Red",
        "player_stats": [
          {"player_puuid": "p1", "player_team": "Red", "kills": 1, "died_in_round": false},
          {"player_puuid": "p2", "player_team": "Blue", "kills": 0, "was_alive": false}
        ]
      }
    ],
    "kills": [
      {"round": 1, "kill_time_in_round": 12000, "killer_puuid": "p1", "killer_team": "Red",
       "victim_puuid": "p2", "victim_team": "Blue",
       "assistants": [{"assistant_puuid": "p3"}]},
      {"round_num": 2, "kill_time_in_round": 8000, "killer_puuid": "p1", "killer_team": "Red",
       "victim_puuid": "p2", "victim_team": "Blue"}
    ]
  }
}`

const historyBody = `{
  "data": [
    {"meta": {"id": "abc-123", "map": {"name": "Ascent"}, "mode": "Competitive",
     "started_at": "2026-08-28T21:14:00Z"}},
    {"meta": {"id": "def-456", "map": {"name": "Bind"}, "mode": "Competitive",
     "started_at": "2026-08-27T20:02:00Z"}}
  ]
}`

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c := NewClient("test-key")
	c.BaseURL = srv.URL
	c.SetRateLimit(60000) // don't throttle tests
	return c
}

func TestMatchDecoding(t *testing.T) {
	var gotAuth string
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(matchBody))
	})

	m, err := c.Match(context.Background(), "abc-123")
	if err != nil {
		t.Fatalf("Match: %v", err)
	}
	if gotAuth != "test-key" {
		t.Errorf("Authorization = %q, expected the api key", gotAuth)
	}
	if m.MatchID != "abc-123" || m.Map != "Ascent" || m.RoundsPlayed != 2 {
		t.Errorf("metadata = %q/%q/%d", m.MatchID, m.Map, m.RoundsPlayed)
	}
	if m.RedRounds != 2 || m.BlueRounds != 0 || m.Winner() != model.TeamRed {
		t.Errorf("team rounds = %d/%d", m.RedRounds, m.BlueRounds)
	}

	p1 := m.PlayerByID("p1")
	if p1 == nil || p1.Agent != "Jett" || p1.Stats.Damage != 410 || p1.Team != model.TeamRed {
		t.Fatalf("p1 = %+v", p1)
	}
	if p1.RiotID() != "Hero#NA1" {
		t.Errorf("riot id = %q", p1.RiotID())
	}

	// Round 1 carries no number field; position fills it in. Round 2 uses
	// round_num.
	if m.Rounds[0].Number != 1 || m.Rounds[1].Number != 2 {
		t.Errorf("round numbers = %d/%d", m.Rounds[0].Number, m.Rounds[1].Number)
	}

	// Survival comes from whichever spelling the payload used.
	r1 := m.Rounds[0].PlayerStats
	if !r1[0].Survived { // alive: true
		t.Error("p1 round 1: alive=true should mean survived")
	}
	if r1[1].Survived { // died_in_round: true
		t.Error("p2 round 1: died_in_round=true should mean dead")
	}
	r2 := m.Rounds[1].PlayerStats
	if !r2[0].Survived { // died_in_round: false
		t.Error("p1 round 2: died_in_round=false should mean survived")
	}
	if r2[1].Survived { // was_alive: false
		t.Error("p2 round 2: was_alive=false with no other field should mean dead")
	}

	if r1[0].Economy.Weapon != "Vandal" || r1[0].Economy.LoadoutValue != 3900 {
		t.Errorf("economy = %+v", r1[0].Economy)
	}

	if len(m.Kills) != 2 {
		t.Fatalf("expected 2 kills, got %d", len(m.Kills))
	}
	if m.Kills[0].Round != 1 || m.Kills[1].Round != 2 {
		t.Errorf("kill rounds = %d/%d", m.Kills[0].Round, m.Kills[1].Round)
	}
	if len(m.Kills[0].AssistantIDs) != 1 || m.Kills[0].AssistantIDs[0] != "p3" {
		t.Errorf("assistants = %v", m.Kills[0].AssistantIDs)
	}
}

func TestMatchHistory(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(historyBody))
	})
	got, err := c.MatchHistory(context.Background(), "na", "Hero", "NA1", 5)
	if err != nil {
		t.Fatalf("MatchHistory: %v", err)
	}
	if len(got) != 2 || got[0].ID != "abc-123" || got[1].Map != "Bind" {
		t.Errorf("history = %+v", got)
	}
}

func TestErrorMapping(t *testing.T) {
	cases := []struct {
		status int
		want   error
	}{
		{http.StatusNotFound, ErrNotFound},
		{http.StatusTooManyRequests, ErrRateLimited},
	}
	for _, tc := range cases {
		c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tc.status)
		})
		_, err := c.Match(context.Background(), "nope")
		if !errors.Is(err, tc.want) {
			t.Errorf("status %d: got %v, expected %v", tc.status, err, tc.want)
		}
	}
}

func TestMalformedResponse(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data": [not json`))
	})
	_, err := c.Match(context.Background(), "abc")
	if err == nil {
		t.Fatal("expected a decode error")
	}
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrRateLimited) {
		t.Errorf("decode failure must not map to a sentinel: %v", err)
	}
}

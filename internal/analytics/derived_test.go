package analytics

import (
	"math"
	"testing"

	"github.com/valbot/valstats/internal/model"
)

func TestKDA(t *testing.T) {
	cases := []struct {
		kills, deaths, assists int
		want                   float64
	}{
		{20, 10, 5, 2.5},
		{7, 3, 0, 2.33},
		{0, 0, 0, 0},
		{12, 0, 3, math.Inf(1)},
	}
	for _, tc := range cases {
		if got := KDA(tc.kills, tc.deaths, tc.assists); got != tc.want {
			t.Errorf("KDA(%d,%d,%d) = %v, expected %v", tc.kills, tc.deaths, tc.assists, got, tc.want)
		}
	}
}

func TestADRAndHeadshots(t *testing.T) {
	if got := ADR(3125, 24); got != 130.2 {
		t.Errorf("ADR = %v, expected 130.2", got)
	}
	if got := ADR(500, 0); got != 0 {
		t.Errorf("ADR with no rounds = %v, expected 0", got)
	}
	if got := HeadshotPercent(25, 60, 15); got != 25.0 {
		t.Errorf("HS%% = %v, expected 25.0", got)
	}
	if got := HeadshotPercent(0, 0, 0); got != 0 {
		t.Errorf("HS%% with no hits = %v, expected 0", got)
	}
}

func TestACSTruncates(t *testing.T) {
	// 6398/24 = 266.58; ACS truncates toward zero.
	if got := ACS(6398, 24); got != 266 {
		t.Errorf("ACS = %d, expected 266", got)
	}
	if got := ACS(6398, 0); got != 0 {
		t.Errorf("ACS with no rounds = %d, expected 0", got)
	}
}

func TestClampACS(t *testing.T) {
	if got := ClampACS(250, 0, 0); got != 250 {
		t.Errorf("in-band ACS should pass through, got %d", got)
	}
	// Reported garbage, recomputable: 4800/24 = 200.
	if got := ClampACS(99999, 4800, 24); got != 200 {
		t.Errorf("expected recomputed 200, got %d", got)
	}
	// Reported garbage and the recompute is garbage too.
	if got := ClampACS(99999, 999999, 1); got != 0 {
		t.Errorf("unrecoverable ACS should zero out, got %d", got)
	}
}

func TestFirstBloods(t *testing.T) {
	rounds := []model.RoundRecord{
		round(1, model.TeamRed),
		round(2, model.TeamBlue),
		round(3, model.TeamRed),
	}
	kills := []model.KillEvent{
		kill(1, 4000, hero, foeA), // hero opens round 1
		kill(1, 9000, foeB, hero),
		kill(2, 3000, foeA, hero), // hero dies first in round 2
		kill(2, 8000, mate, foeA),
		kill(3, 2000, mate, foeB), // hero uninvolved in the opener
		kill(3, 6000, hero, foeA),
	}
	m := buildMatch(rounds, kills)
	fb, fd := FirstBloods(m, IndexKillsByRound(kills), hero)
	if fb != 1 || fd != 1 {
		t.Errorf("first bloods/deaths = %d/%d, expected 1/1", fb, fd)
	}
}

func TestFirstBloodsResolveSkewedRounds(t *testing.T) {
	// The round record says 1 but the feed labels the opener round 2; the
	// fallback must still find it.
	rounds := []model.RoundRecord{round(1, model.TeamRed)}
	kills := []model.KillEvent{kill(2, 3000, hero, foeA)}
	m := buildMatch(rounds, kills)
	fb, fd := FirstBloods(m, IndexKillsByRound(kills), hero)
	if fb != 1 || fd != 0 {
		t.Errorf("first bloods/deaths = %d/%d, expected 1/0", fb, fd)
	}
}

func multikillMatch(killCounts ...int) *model.MatchRecord {
	var rounds []model.RoundRecord
	for i, n := range killCounts {
		rounds = append(rounds, round(i+1, model.TeamRed, roundStat(hero, n, 0, true)))
	}
	return buildMatch(rounds, nil)
}

func TestMultikillBuckets(t *testing.T) {
	// 1 kill is not a multikill; 6 kills still land in the 5K bucket.
	mk := Multikills(multikillMatch(1, 2, 3, 4, 5, 6), hero)
	if mk.TwoK != 1 || mk.ThreeK != 1 || mk.FourK != 1 || mk.FiveK != 2 {
		t.Errorf("buckets = %+v, expected 2K:1 3K:1 4K:1 5K:2", mk)
	}
	if got := mk.ThreePlus(); got != 4 {
		t.Errorf("ThreePlus = %d, expected 4", got)
	}
}

func TestMultikillsIgnoreKillFeedGaps(t *testing.T) {
	// The round stat is authoritative: three kills recorded there count
	// even when the kill feed is empty.
	m := multikillMatch(3)
	mk := Multikills(m, hero)
	if mk.ThreeK != 1 {
		t.Errorf("buckets = %+v, expected ThreeK:1 from the round stat", mk)
	}
}

func TestMultikillMonotonicity(t *testing.T) {
	// Raising a round's kill stat never lowers the total multikill count.
	before := Multikills(multikillMatch(2), hero).Total()
	after := Multikills(multikillMatch(3), hero).Total()
	if after < before {
		t.Errorf("multikill total dropped from %d to %d after an extra kill", before, after)
	}
}

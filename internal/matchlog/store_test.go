package matchlog

import (
	"testing"
	"time"

	"github.com/valbot/valstats/internal/model"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return s
}

func entry(id string) Entry {
	return Entry{
		MatchID: id,
		Match:   &model.MatchRecord{MatchID: id, Map: "Ascent", RoundsPlayed: 20},
	}
}

func TestAppendAndLoad(t *testing.T) {
	s := testStore(t)

	added, err := s.Append(entry("m1"))
	if err != nil || !added {
		t.Fatalf("first append: added=%v err=%v", added, err)
	}
	if _, err := s.Append(entry("m2")); err != nil {
		t.Fatalf("second append: %v", err)
	}

	entries, err := s.LoadDays(0)
	if err != nil {
		t.Fatalf("LoadDays: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].MatchID != "m1" || entries[0].LoggedAt == "" {
		t.Errorf("entry 0 = %+v", entries[0])
	}

	matches, err := s.LoadMatches(0)
	if err != nil {
		t.Fatalf("LoadMatches: %v", err)
	}
	if len(matches) != 2 || matches[1].Map != "Ascent" {
		t.Errorf("matches = %+v", matches)
	}
}

func TestAppendDeduplicates(t *testing.T) {
	s := testStore(t)
	if added, _ := s.Append(entry("m1")); !added {
		t.Fatal("first append should add")
	}
	added, err := s.Append(entry("m1"))
	if err != nil {
		t.Fatalf("duplicate append: %v", err)
	}
	if added {
		t.Error("duplicate match id should be a no-op")
	}
	entries, _ := s.LoadDays(0)
	if len(entries) != 1 {
		t.Errorf("expected 1 entry after duplicate append, got %d", len(entries))
	}
}

func TestDedupeSpansDays(t *testing.T) {
	s := testStore(t)
	day1 := time.Date(2026, 8, 27, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return day1 }
	if added, _ := s.Append(entry("m1")); !added {
		t.Fatal("day-1 append should add")
	}

	s.now = func() time.Time { return day1.Add(24 * time.Hour) }
	added, err := s.Append(entry("m1"))
	if err != nil {
		t.Fatalf("day-2 append: %v", err)
	}
	if added {
		t.Error("match logged yesterday should still dedupe today")
	}

	if ok, _ := s.Has("m1"); !ok {
		t.Error("Has should see matches from prior days")
	}
}

func TestLoadDaysWindow(t *testing.T) {
	s := testStore(t)
	base := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		day := base.Add(time.Duration(i) * 24 * time.Hour)
		s.now = func() time.Time { return day }
		if _, err := s.Append(entry("m" + day.Format("02"))); err != nil {
			t.Fatalf("append day %d: %v", i, err)
		}
	}

	entries, err := s.LoadDays(2)
	if err != nil {
		t.Fatalf("LoadDays: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected the 2 newest days, got %d entries", len(entries))
	}
	if entries[0].MatchID != "m26" || entries[1].MatchID != "m27" {
		t.Errorf("window = %s, %s", entries[0].MatchID, entries[1].MatchID)
	}
}

package links

import (
	"errors"
	"path/filepath"
	"testing"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "links.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSetGetDelete(t *testing.T) {
	db := testDB(t)

	l := Link{DiscordID: "u1", GuildID: "g1", RiotName: "Hero", RiotTag: "NA1", Region: "na"}
	if err := db.Set(l); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, err := db.Get("u1", "g1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.RiotID() != "Hero#NA1" || got.Region != "na" {
		t.Errorf("got %+v", got)
	}
	if got.LinkedAt.IsZero() {
		t.Error("LinkedAt should be stamped on insert")
	}

	if err := db.Delete("u1", "g1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := db.Get("u1", "g1"); !errors.Is(err, ErrNotLinked) {
		t.Errorf("after delete: expected ErrNotLinked, got %v", err)
	}
}

func TestSetReplacesExistingLink(t *testing.T) {
	db := testDB(t)
	db.Set(Link{DiscordID: "u1", GuildID: "g1", RiotName: "Old", RiotTag: "NA1"})
	db.Set(Link{DiscordID: "u1", GuildID: "g1", RiotName: "New", RiotTag: "EU1"})

	got, err := db.Get("u1", "g1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.RiotID() != "New#EU1" {
		t.Errorf("expected the replacement link, got %s", got.RiotID())
	}

	all, err := db.ListGuild("g1")
	if err != nil {
		t.Fatalf("ListGuild: %v", err)
	}
	if len(all) != 1 {
		t.Errorf("expected 1 link after replace, got %d", len(all))
	}
}

func TestLinksAreScopedToGuild(t *testing.T) {
	db := testDB(t)
	db.Set(Link{DiscordID: "u1", GuildID: "g1", RiotName: "Hero", RiotTag: "NA1"})
	db.Set(Link{DiscordID: "u1", GuildID: "g2", RiotName: "Alt", RiotTag: "EU1"})
	db.Set(Link{DiscordID: "u2", GuildID: "g1", RiotName: "Mate", RiotTag: "NA1"})

	g1, err := db.ListGuild("g1")
	if err != nil {
		t.Fatalf("ListGuild: %v", err)
	}
	if len(g1) != 2 {
		t.Errorf("g1 should have 2 links, got %d", len(g1))
	}
	if _, err := db.Get("u2", "g2"); !errors.Is(err, ErrNotLinked) {
		t.Errorf("u2 in g2: expected ErrNotLinked, got %v", err)
	}
}

func TestDeleteMissingLink(t *testing.T) {
	db := testDB(t)
	if err := db.Delete("nobody", "nowhere"); !errors.Is(err, ErrNotLinked) {
		t.Errorf("expected ErrNotLinked, got %v", err)
	}
}

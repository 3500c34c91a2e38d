// Package links stores which Riot account each Discord user has claimed,
// per guild.
package links

import (
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// ErrNotLinked means the Discord user has no account link in the guild.
var ErrNotLinked = errors.New("links: account not linked")

// Link is one Discord user to Riot account mapping within a guild.
type Link struct {
	DiscordID string
	GuildID   string
	RiotName  string
	RiotTag   string
	Region    string
	LinkedAt  time.Time
}

// RiotID returns the linked account as "name#tag".
func (l Link) RiotID() string {
	return l.RiotName + "#" + l.RiotTag
}

// DB wraps a sql.DB for the link store.
type DB struct {
	conn *sql.DB
}

// Open opens (or creates) the SQLite database at the given path and applies
// the schema.
func Open(path string) (*DB, error) {
	dsn := fmt.Sprintf("file:%s?_foreign_keys=on&_journal_mode=WAL", path)
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := conn.Exec(schemaSQL); err != nil {
		conn.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &DB{conn: conn}, nil
}

// Close closes the underlying connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Set links a Discord user to a Riot account, replacing any previous link
// for the user in that guild.
func (db *DB) Set(l Link) error {
	if l.LinkedAt.IsZero() {
		l.LinkedAt = time.Now().UTC()
	}
	_, err := db.conn.Exec(`
		INSERT OR REPLACE INTO account_links
			(discord_id, guild_id, riot_name, riot_tag, region, linked_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		l.DiscordID, l.GuildID, l.RiotName, l.RiotTag, l.Region,
		l.LinkedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("insert link: %w", err)
	}
	return nil
}

// Get returns the user's link in the guild, or ErrNotLinked.
func (db *DB) Get(discordID, guildID string) (Link, error) {
	row := db.conn.QueryRow(`
		SELECT discord_id, guild_id, riot_name, riot_tag, region, linked_at
		FROM account_links WHERE discord_id = ? AND guild_id = ?`,
		discordID, guildID)
	l, err := scanLink(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Link{}, ErrNotLinked
	}
	return l, err
}

// Delete removes the user's link in the guild. Removing a missing link
// reports ErrNotLinked.
func (db *DB) Delete(discordID, guildID string) error {
	res, err := db.conn.Exec(
		`DELETE FROM account_links WHERE discord_id = ? AND guild_id = ?`,
		discordID, guildID)
	if err != nil {
		return fmt.Errorf("delete link: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotLinked
	}
	return nil
}

// ListGuild returns every link in a guild, ordered by link time.
func (db *DB) ListGuild(guildID string) ([]Link, error) {
	rows, err := db.conn.Query(`
		SELECT discord_id, guild_id, riot_name, riot_tag, region, linked_at
		FROM account_links WHERE guild_id = ? ORDER BY linked_at`,
		guildID)
	if err != nil {
		return nil, fmt.Errorf("list links: %w", err)
	}
	defer rows.Close()

	var out []Link
	for rows.Next() {
		l, err := scanLink(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanLink(s scanner) (Link, error) {
	var l Link
	var linkedAt string
	if err := s.Scan(&l.DiscordID, &l.GuildID, &l.RiotName, &l.RiotTag, &l.Region, &linkedAt); err != nil {
		return Link{}, err
	}
	if t, err := time.Parse(time.RFC3339, linkedAt); err == nil {
		l.LinkedAt = t
	}
	return l, nil
}

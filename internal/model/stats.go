package model

import (
	"fmt"
	"math"
	"strconv"
)

// ---- Per-match computed records ----

// Ratio is a float that may legitimately be +Inf (a deathless KDA). JSON
// has no infinity literal, so it round-trips as the string "inf".
type Ratio float64

func (r Ratio) MarshalJSON() ([]byte, error) {
	if math.IsInf(float64(r), 1) {
		return []byte(`"inf"`), nil
	}
	return strconv.AppendFloat(nil, float64(r), 'g', -1, 64), nil
}

func (r *Ratio) UnmarshalJSON(b []byte) error {
	if string(b) == `"inf"` {
		*r = Ratio(math.Inf(1))
		return nil
	}
	v, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		return fmt.Errorf("parse ratio %q: %w", b, err)
	}
	*r = Ratio(v)
	return nil
}

// IsInf reports whether the ratio is the deathless +Inf case.
func (r Ratio) IsInf() bool {
	return math.IsInf(float64(r), 1)
}

// MultikillCounts buckets a player's multi-kill rounds by exact per-round
// kill count. Five or more kills land in FiveK.
type MultikillCounts struct {
	TwoK   int
	ThreeK int
	FourK  int
	FiveK  int
}

// ThreePlus is the canonical multi-kill counter used in reports: rounds with
// three or more kills.
func (m MultikillCounts) ThreePlus() int {
	return m.ThreeK + m.FourK + m.FiveK
}

// Total counts every multi-kill round (two or more kills).
func (m MultikillCounts) Total() int {
	return m.TwoK + m.ThreePlus()
}

// PlayerMatchStats is one scoreboard row: the API's aggregate totals plus
// every derived metric for one player in one match.
type PlayerMatchStats struct {
	MatchID string
	ID      string
	Name    string
	Tag     string
	Team    Team
	Agent   string
	Rank    string

	Kills   int
	Deaths  int
	Assists int
	Score   int
	Damage  int

	ACS         int
	ADR         float64
	KDA         Ratio
	HeadshotPct float64
	KASTPct     float64

	FirstBloods int
	FirstDeaths int
	Multikills  MultikillCounts
}

// PlusMinus is the kill/death differential.
func (s *PlayerMatchStats) PlusMinus() int {
	return s.Kills - s.Deaths
}

// ---- Economy ----

// BuyType labels a round's economic archetype.
type BuyType string

const (
	BuyPistol  BuyType = "pistol"
	BuyAntiEco BuyType = "anti-eco"
	BuyEco     BuyType = "eco"
	BuyForce   BuyType = "force-buy"
	BuyFull    BuyType = "full-buy"
)

// BuyTypes lists all archetypes in presentation order.
var BuyTypes = []BuyType{BuyPistol, BuyAntiEco, BuyEco, BuyForce, BuyFull}

// EconomyRecord accumulates round outcomes for one buy type.
type EconomyRecord struct {
	Attempts int
	Wins     int
}

// WinRate returns the win percentage, 0 when no rounds were observed.
func (r EconomyRecord) WinRate() float64 {
	if r.Attempts == 0 {
		return 0
	}
	return Round1(float64(r.Wins) / float64(r.Attempts) * 100)
}

// LoadoutStats is the aggregate for one team-loadout signature.
type LoadoutStats struct {
	Signature      string
	PrimaryWeapons []string
	ArmorCount     int
	TotalValue     int
	TotalRounds    int
	Wins           int
}

// WinRate returns the signature's win percentage.
func (l *LoadoutStats) WinRate() float64 {
	if l.TotalRounds == 0 {
		return 0
	}
	return Round1(float64(l.Wins) / float64(l.TotalRounds) * 100)
}

// Efficiency ranks signatures by value for money: win rate per credit spent.
func (l *LoadoutStats) Efficiency() float64 {
	v := l.TotalValue
	if v < 1 {
		v = 1
	}
	return l.WinRate() / float64(v)
}

// ---- Clutches ----

// ClutchRecord accumulates attempts and wins for one clutch situation.
type ClutchRecord struct {
	Attempts int
	Wins     int
}

// ClutchReport summarizes a player's inferred clutch situations. Situations
// are keyed "1v2".."1v5". The detection is a kill-density proxy: the source
// data carries no players-alive state, so a multi-kill round with teammates
// still up is indistinguishable from a genuine clutch.
type ClutchReport struct {
	Situations map[string]ClutchRecord
	Best       string // highest situation won, "" if none
	ByMap      map[string]ClutchRecord
	ByAgent    map[string]ClutchRecord
}

// ---- First blood ----

// FirstBloodStats is the win-rate table for rounds opened by a kill.
type FirstBloodStats struct {
	TotalRounds      int
	FirstBloodRounds int
	Wins             int
	Losses           int
}

// WinRate returns the first-blood team's round win percentage.
func (s FirstBloodStats) WinRate() float64 {
	if s.FirstBloodRounds == 0 {
		return 0
	}
	return Round1(float64(s.Wins) / float64(s.FirstBloodRounds) * 100)
}

// ---- Rounding helpers shared by model and analytics ----

// Round1 rounds to one decimal place.
func Round1(x float64) float64 {
	return math.Round(x*10) / 10
}

// Round2 rounds to two decimal places.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}

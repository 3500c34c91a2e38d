package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/valbot/valstats/internal/analytics"
	"github.com/valbot/valstats/internal/model"
)

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignRight},
		},
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
	}))
}

// PrintMatchSummary prints a one-line header for the match.
func PrintMatchSummary(w io.Writer, m *model.MatchRecord) {
	fmt.Fprintf(w, "\nMap: %s  |  Mode: %s  |  Date: %s  |  Score: Red %d – Blue %d\n\n",
		m.Map, m.Mode, m.StartedAt, m.RedRounds, m.BlueRounds)
}

// PrintScoreboard writes the per-player match table. If focusID is
// non-empty, that player's row is marked with ">".
func PrintScoreboard(w io.Writer, rows []*model.PlayerMatchStats, focusID string) {
	table := newTable(w)
	table.Header(" ", "PLAYER", "AGENT", "TEAM", "ACS", "K", "D", "A", "+/-",
		"KDA", "ADR", "HS%", "KAST%", "FB", "FD", "MK")

	for _, s := range rows {
		marker := " "
		if focusID != "" && s.ID == focusID {
			marker = ">"
		}
		table.Append(
			marker,
			s.Name+"#"+s.Tag,
			s.Agent,
			s.Team.String(),
			strconv.Itoa(s.ACS),
			strconv.Itoa(s.Kills),
			strconv.Itoa(s.Deaths),
			strconv.Itoa(s.Assists),
			fmt.Sprintf("%+d", s.PlusMinus()),
			fmtKDA(s.KDA),
			fmt.Sprintf("%.1f", s.ADR),
			fmt.Sprintf("%.1f%%", s.HeadshotPct),
			fmt.Sprintf("%.1f%%", s.KASTPct),
			strconv.Itoa(s.FirstBloods),
			strconv.Itoa(s.FirstDeaths),
			strconv.Itoa(s.Multikills.ThreePlus()),
		)
	}
	table.Render()
}

func fmtKDA(v model.Ratio) string {
	if v.IsInf() {
		return "∞"
	}
	return fmt.Sprintf("%.2f", float64(v))
}

// PrintServerReport writes the server-wide player and map tables.
func PrintServerReport(w io.Writer, rep *analytics.ServerReport) {
	table := newTable(w)
	table.Header("PLAYER", "MATCHES", "WIN%", "K", "D", "A", "K/D",
		"AVG_ACS", "AVG_ADR", "AVG_HS%", "AVG_KAST%", "BEST_AGENT", "BEST_GAME")

	for _, p := range rep.Players {
		bestAgent := "—"
		if ba := p.BestAgent(2); ba != nil {
			bestAgent = fmt.Sprintf("%s (%d ACS)", ba.Agent, ba.AvgACS())
		}
		bestGame := "—"
		if p.Best.ACS > 0 {
			bestGame = fmt.Sprintf("%d ACS on %s", p.Best.ACS, p.Best.Map)
		}
		table.Append(
			p.Name+"#"+p.Tag,
			strconv.Itoa(p.Matches),
			fmt.Sprintf("%.1f%%", p.WinRate()),
			strconv.Itoa(p.Kills),
			strconv.Itoa(p.Deaths),
			strconv.Itoa(p.Assists),
			fmt.Sprintf("%.2f", p.KD()),
			strconv.Itoa(p.AvgACS()),
			fmt.Sprintf("%.1f", p.AvgADR()),
			fmt.Sprintf("%.1f%%", p.AvgHS()),
			fmt.Sprintf("%.1f%%", p.AvgKAST()),
			bestAgent,
			bestGame,
		)
	}
	table.Render()

	if len(rep.Maps) == 0 {
		return
	}
	fmt.Fprintln(w)
	maps := newTable(w)
	maps.Header("MAP", "PLAYS", "WINS", "WIN%")
	for _, m := range rep.Maps {
		maps.Append(m.Map, strconv.Itoa(m.Plays), strconv.Itoa(m.Wins),
			fmt.Sprintf("%.1f%%", m.WinRate()))
	}
	maps.Render()
}

// PrintEconomy writes the per-buy-type win-rate table.
func PrintEconomy(w io.Writer, breakdown map[model.BuyType]model.EconomyRecord) {
	table := newTable(w)
	table.Header("BUY", "ROUNDS", "WINS", "WIN%")
	for _, bt := range model.BuyTypes {
		rec, ok := breakdown[bt]
		if !ok {
			continue
		}
		table.Append(string(bt), strconv.Itoa(rec.Attempts), strconv.Itoa(rec.Wins),
			fmt.Sprintf("%.1f%%", rec.WinRate()))
	}
	table.Render()
}

// PrintLoadouts writes the effective-loadout ranking.
func PrintLoadouts(w io.Writer, loadouts []*model.LoadoutStats) {
	if len(loadouts) == 0 {
		fmt.Fprintln(w, "Not enough loadout data yet.")
		return
	}
	table := newTable(w)
	table.Header("#", "LOADOUT", "VALUE", "ROUNDS", "WIN%")
	for i, l := range loadouts {
		table.Append(
			strconv.Itoa(i+1),
			l.Signature,
			fmt.Sprintf("$%d", l.TotalValue),
			strconv.Itoa(l.TotalRounds),
			fmt.Sprintf("%.1f%%", l.WinRate()),
		)
	}
	table.Render()
}

// PrintClutches writes the inferred clutch table plus map and agent splits.
func PrintClutches(w io.Writer, rep model.ClutchReport) {
	if len(rep.Situations) == 0 {
		fmt.Fprintln(w, "No clutch situations found.")
		return
	}
	table := newTable(w)
	table.Header("SITUATION", "ATTEMPTS", "WINS", "WIN%")
	for _, key := range []string{"1v2", "1v3", "1v4", "1v5"} {
		rec, ok := rep.Situations[key]
		if !ok {
			continue
		}
		pct := "—"
		if rec.Attempts > 0 {
			pct = fmt.Sprintf("%.1f%%", 100*float64(rec.Wins)/float64(rec.Attempts))
		}
		table.Append(key, strconv.Itoa(rec.Attempts), strconv.Itoa(rec.Wins), pct)
	}
	table.Render()
	if rep.Best != "" {
		fmt.Fprintf(w, "\nBest clutch won: %s\n", rep.Best)
	}
}

// PrintFirstBlood writes the first-blood conversion summary.
func PrintFirstBlood(w io.Writer, s model.FirstBloodStats) {
	fmt.Fprintf(w, "Rounds analyzed: %d (%d with a first blood)\n",
		s.TotalRounds, s.FirstBloodRounds)
	fmt.Fprintf(w, "First-blood team won %d, lost %d (%.1f%%)\n",
		s.Wins, s.Losses, s.WinRate())
}

// PrintKASTBreakdown writes the per-round flag trace behind a KAST figure.
func PrintKASTBreakdown(w io.Writer, flags []analytics.KASTFlags, pct float64) {
	table := newTable(w)
	table.Header("ROUND", "K", "A", "S", "T", "KAST")
	mark := func(b bool) string {
		if b {
			return "x"
		}
		return ""
	}
	for _, f := range flags {
		earned := ""
		if f.Earned() {
			earned = "yes"
		}
		table.Append(strconv.Itoa(f.Round), mark(f.Kill), mark(f.Assist),
			mark(f.Survived), mark(f.Traded), earned)
	}
	table.Render()
	fmt.Fprintf(w, "\nKAST: %.1f%%\n", pct)
}

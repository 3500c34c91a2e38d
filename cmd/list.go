package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"
)

var listDays int

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List logged matches",
	RunE:  runList,
}

func init() {
	listCmd.Flags().IntVar(&listDays, "days", 0, "limit to the most recent N day files (0 = all)")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	logs, err := openMatchLog()
	if err != nil {
		return err
	}
	entries, err := logs.LoadDays(listDays)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("No logged matches.")
		return nil
	}

	table := tablewriter.NewTable(os.Stdout, tablewriter.WithConfig(tablewriter.Config{
		Row:    tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignRight}},
		Header: tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignCenter}},
	}))
	table.Header("LOGGED", "MATCH", "MAP", "MODE", "SCORE", "ROUNDS")
	for _, e := range entries {
		if e.Match == nil {
			continue
		}
		m := e.Match
		table.Append(
			e.LoggedAt,
			m.MatchID,
			m.Map,
			m.Mode,
			fmt.Sprintf("%d–%d", m.RedRounds, m.BlueRounds),
			strconv.Itoa(m.RoundsPlayed),
		)
	}
	table.Render()
	return nil
}

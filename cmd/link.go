package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/valbot/valstats/internal/links"
)

var (
	linkGuild   string
	linkDiscord string
)

var linkCmd = &cobra.Command{
	Use:   "link",
	Short: "Manage Discord-to-Riot account links",
}

var linkSetCmd = &cobra.Command{
	Use:   "set <name#tag>",
	Short: "Link a Discord user to a Riot account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, tag, err := parseRiotID(args[0])
		if err != nil {
			return err
		}
		ldb, err := links.Open(cfg.LinksDB)
		if err != nil {
			return err
		}
		defer ldb.Close()

		err = ldb.Set(links.Link{
			DiscordID: linkDiscord,
			GuildID:   linkGuild,
			RiotName:  name,
			RiotTag:   tag,
			Region:    cfg.Region,
		})
		if err != nil {
			return err
		}
		fmt.Printf("Linked %s to %s#%s in guild %s.\n", linkDiscord, name, tag, linkGuild)
		return nil
	},
}

var linkListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the links of a guild",
	RunE: func(cmd *cobra.Command, args []string) error {
		ldb, err := links.Open(cfg.LinksDB)
		if err != nil {
			return err
		}
		defer ldb.Close()

		linked, err := ldb.ListGuild(linkGuild)
		if err != nil {
			return err
		}
		if len(linked) == 0 {
			fmt.Println("No links.")
			return nil
		}
		for _, l := range linked {
			fmt.Printf("%s  %s  (linked %s)\n", l.DiscordID, l.RiotID(), l.LinkedAt.Format("2006-01-02"))
		}
		return nil
	},
}

var linkRemoveCmd = &cobra.Command{
	Use:   "remove",
	Short: "Remove a Discord user's link",
	RunE: func(cmd *cobra.Command, args []string) error {
		ldb, err := links.Open(cfg.LinksDB)
		if err != nil {
			return err
		}
		defer ldb.Close()
		if err := ldb.Delete(linkDiscord, linkGuild); err != nil {
			return err
		}
		fmt.Println("Removed.")
		return nil
	},
}

func init() {
	linkCmd.PersistentFlags().StringVar(&linkGuild, "guild", "", "Discord guild id (required)")
	linkCmd.PersistentFlags().StringVar(&linkDiscord, "discord", "", "Discord user id")
	_ = linkCmd.MarkPersistentFlagRequired("guild")

	linkCmd.AddCommand(linkSetCmd)
	linkCmd.AddCommand(linkListCmd)
	linkCmd.AddCommand(linkRemoveCmd)
}

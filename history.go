package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"journal2ebook/internal/container"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent conversions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := container.New(loadConfig())
		if err != nil {
			return err
		}
		defer c.Close()

		history := c.GetHistoryService()
		if wipe, _ := cmd.Flags().GetBool("clear"); wipe {
			return history.Clear()
		}

		limit, _ := cmd.Flags().GetInt("limit")
		records, err := history.Recent(limit)
		if err != nil {
			return err
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(records)
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "WHEN\tSTATUS\tINPUT\tOUTPUT\tPROFILE")
		for _, r := range records {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
				r.CreatedAt.Local().Format("2006-01-02 15:04"), r.Status, r.Input, r.Output, r.Profile)
		}
		return tw.Flush()
	},
}

func init() {
	historyCmd.Flags().Int("limit", 20, "number of conversions to show")
	historyCmd.Flags().Bool("json", false, "output as JSON")
	historyCmd.Flags().Bool("clear", false, "delete all history")

	rootCmd.AddCommand(historyCmd)
}

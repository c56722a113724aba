package commands

import (
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"tripfund/lib/cliutil"
)

func init() {
	rootCmd.AddCommand(searchCmd)
}

var searchCmd = &cobra.Command{
	Use:   "search <keyword>",
	Short: "Searches the site and prints the result categories.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		client, err := newClient()
		if err != nil {
			cliutil.Fatal("failed to initialize client", err)
		}

		tabs, err := client.Search(cmd.Context(), args[0])
		if err != nil {
			cliutil.Fatal("search failed", err)
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Category", "Results", "Entry"})
		for _, tab := range tabs {
			t.AppendRow(table.Row{tab.Label, tab.ResultCount, tab.EntryUrl})
		}
		t.SetStyle(table.StyleRounded)
		t.Render()
	},
}

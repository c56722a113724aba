package commands

import (
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"tripfund/lib/cliutil"
)

func init() {
	rootCmd.AddCommand(codesCmd)
}

var codesCmd = &cobra.Command{
	Use:   "codes",
	Short: "Prints the fund master list.",
	Run: func(cmd *cobra.Command, args []string) {
		client, cfg, err := newClient()
		if err != nil {
			cliutil.Fatal("failed to initialize client", err)
		}

		codeList, err := client.Codes(cmd.Context(), cfg.ListUrl)
		if err != nil {
			cliutil.Fatal("failed to fetch master list", err)
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Code", "Feed Code"})
		for _, code := range codeList {
			t.AppendRow(table.Row{code.Code, code.FeedCode})
		}
		t.SetStyle(table.StyleRounded)
		t.Render()
	},
}

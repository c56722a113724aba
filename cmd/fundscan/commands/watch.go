package commands

import (
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"tripfund/lib/cliutil"
	"tripfund/lib/sqliteutil"
	"tripfund/services/fundwatch"
	"tripfund/services/fundwatch/db"
)

var watchBelow *float64
var watchDb *string

func init() {
	watchBelow = watchCmd.Flags().Float64("below", 0, "Mean percent change at or under which a fund is flagged.")
	watchDb = watchCmd.Flags().String("db", "history.db", "Valuation history database; empty disables history.")
	rootCmd.AddCommand(watchCmd)
}

var watchCmd = &cobra.Command{
	Use:   "watch --below <percent> [--db <path/to/history.db>]",
	Short: "Flags funds whose mean intraday change sits at or under a threshold.",
	Run: func(cmd *cobra.Command, args []string) {
		client, cfg, err := newClient()
		if err != nil {
			cliutil.Fatal("failed to initialize client", err)
		}

		service := fundwatch.NewService(client, cfg.ListUrl, nil)
		if *watchDb != "" {
			sqldb, err := sqliteutil.OpenDB(db.Schema, *watchDb)
			if err != nil {
				cliutil.Fatal("failed to open history db", err)
			}
			defer sqldb.Close()
			service = fundwatch.NewService(client, cfg.ListUrl, sqldb)
		}

		alerts, err := service.Watch(cmd.Context(), *watchBelow)
		if err != nil {
			cliutil.Fatal("watch failed", err)
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Code", "Feed Code", "Mean Change %"})
		for _, alert := range alerts {
			t.AppendRow(table.Row{alert.Code.Code, alert.Code.FeedCode, alert.MeanChange})
		}
		t.SetStyle(table.StyleRounded)
		t.Render()
	},
}

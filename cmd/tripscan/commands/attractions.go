package commands

import (
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"tripfund/lib/cliutil"
	"tripfund/lib/export"
	"tripfund/lib/scrapers/trip"
)

var attractionsPages *int
var attractionsOut *string
var attractionsFormat *string
var attractionsAppend *bool

func init() {
	attractionsPages = attractionsCmd.Flags().Int("pages", 1, "How many result pages to fetch.")
	attractionsOut = attractionsCmd.Flags().String("out", "", "Export artifact base name; prints a table when unset.")
	attractionsFormat = attractionsCmd.Flags().String("format", "csv", "Export format: csv, xls or xlsx.")
	attractionsAppend = attractionsCmd.Flags().Bool("append", false, "Append to an existing artifact instead of overwriting.")
	rootCmd.AddCommand(attractionsCmd)
}

var attractionsCmd = &cobra.Command{
	Use:   "attractions <keyword>",
	Short: "Scrapes the attraction listing for a keyword.",
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
		tab, err := trip.SelectTab(tabs, trip.TabAttractions)
		if err != nil {
			cliutil.Fatal("no attraction results", err)
		}

		page, err := client.OpenAttractions(cmd.Context(), tab)
		if err != nil {
			cliutil.Fatal("failed to open attraction listing", err)
		}

		var attractions []trip.Attraction
		for {
			attractions = append(attractions, page.Records...)
			if page.Page >= *attractionsPages || len(page.Records) == 0 {
				break
			}
			page, err = page.Next(cmd.Context())
			if err != nil {
				cliutil.Fatal("failed to fetch next page", err)
			}
		}

		if *attractionsOut == "" {
			t := table.NewWriter()
			t.SetOutputMirror(os.Stdout)
			t.AppendHeader(table.Row{"Name", "Url"})
			for _, a := range attractions {
				t.AppendRow(table.Row{a.Name, a.Url})
			}
			t.SetStyle(table.StyleRounded)
			t.Render()
			return
		}

		out := newExportWriter(*attractionsOut, *attractionsFormat, *attractionsAppend)
		defer out.Close()
		for _, a := range attractions {
			if err := out.WriteRow([]string{a.Name, a.Url}); err != nil {
				cliutil.Fatal("export write failed", err)
			}
		}
		if err := out.Close(); err != nil {
			cliutil.Fatal("export close failed", err)
		}
	},
}

func newExportWriter(base string, format string, appendMode bool) *export.Writer {
	mode := export.Overwrite
	if appendMode {
		mode = export.Append
	}
	return export.NewWriter(base, export.Options{
		Format: export.Format(format),
		Mode:   mode,
	})
}

package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tripfund/lib/cliutil"
	"tripfund/lib/export"
)

var commentsPages *int
var commentsOut *string
var commentsFormat *string
var commentsAppend *bool

func init() {
	commentsPages = commentsCmd.Flags().Int("pages", 1, "How many comment pages to fetch.")
	commentsOut = commentsCmd.Flags().String("out", "", "Export artifact base name; prints to stdout when unset.")
	commentsFormat = commentsCmd.Flags().String("format", "csv", "Export format: csv, xls or xlsx.")
	commentsAppend = commentsCmd.Flags().Bool("append", false, "Append to an existing artifact instead of overwriting.")
	rootCmd.AddCommand(commentsCmd)
}

var commentsCmd = &cobra.Command{
	Use:   "comments <sight-url>",
	Short: "Scrapes visitor comments from a sight detail-page URL.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		client, err := newClient()
		if err != nil {
			cliutil.Fatal("failed to initialize client", err)
		}

		page, err := client.OpenComments(cmd.Context(), args[0])
		if err != nil {
			cliutil.Fatal("failed to open comment view", err)
		}

		var out *export.Writer
		if *commentsOut != "" {
			out = newExportWriter(*commentsOut, *commentsFormat, *commentsAppend)
			defer out.Close()
		}

		for {
			for _, c := range page.Records {
				if out == nil {
					fmt.Fprintf(os.Stdout, "%s\t%.1f\t%s\t%s\n", c.Author, c.Star, c.DatePublished, c.Text)
					continue
				}
				row := []string{c.Author, fmt.Sprintf("%.1f", c.Star), c.DatePublished, c.Text}
				if err := out.WriteRow(row); err != nil {
					cliutil.Fatal("export write failed", err)
				}
			}
			if page.Page >= *commentsPages || len(page.Records) == 0 {
				break
			}
			page, err = page.Next(cmd.Context())
			if err != nil {
				cliutil.Fatal("failed to fetch next page", err)
			}
		}

		if out != nil {
			if err := out.Close(); err != nil {
				cliutil.Fatal("export close failed", err)
			}
		}
	},
}

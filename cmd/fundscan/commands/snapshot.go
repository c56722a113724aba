package commands

import (
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"tripfund/lib/cliutil"
	"tripfund/lib/export"
	"tripfund/services/fundwatch"
)

var snapshotOut *string
var snapshotFormat *string
var snapshotAppend *bool

func init() {
	snapshotOut = snapshotCmd.Flags().String("out", "funds", "Export artifact base name.")
	snapshotFormat = snapshotCmd.Flags().String("format", "xlsx", "Export format: csv, xls or xlsx.")
	snapshotAppend = snapshotCmd.Flags().Bool("append", false, "Append to an existing artifact instead of overwriting.")
	rootCmd.AddCommand(snapshotCmd)
}

var snapshotCmd = &cobra.Command{
	Use:   "snapshot [--out <base>] [--format xlsx]",
	Short: "Exports one profile row per fund in the master list.",
	Run: func(cmd *cobra.Command, args []string) {
		client, cfg, err := newClient()
		if err != nil {
			cliutil.Fatal("failed to initialize client", err)
		}

		mode := export.Overwrite
		if *snapshotAppend {
			mode = export.Append
		}
		out := export.NewWriter(*snapshotOut, export.Options{
			Format: export.Format(*snapshotFormat),
			Mode:   mode,
		})
		defer out.Close()

		service := fundwatch.NewService(client, cfg.ListUrl, nil)

		t1 := time.Now()
		written, err := service.SnapshotAll(cmd.Context(), out)
		if err != nil {
			cliutil.Fatal("snapshot failed", err)
		}
		if err := out.Close(); err != nil {
			cliutil.Fatal("export close failed", err)
		}

		slog.Info("snapshot complete",
			"rows", written,
			"artifact", out.Path(),
			"seconds", time.Since(t1).Seconds(),
		)
	},
}

package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tripfund/lib/configutil"
	"tripfund/lib/restyutil"
	"tripfund/lib/scrapers/trip"
	"tripfund/lib/telemetry"
)

type Config struct {
	BaseUrl   string `json:"base_url"`
	UserAgent string `json:"user_agent"`
	Cookie    string `json:"cookie"`
}

var verbose *bool

var rootCmd = &cobra.Command{
	Use:   "tripscan",
	Short: "tripscan scrapes attraction listings and visitor comments from the destination-review site.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		telemetry.InitSlog(*verbose)
		if *verbose {
			trip.SetRestyDumpOutput(restyutil.NewFilesystemOutput(".dev/resty/tripscan"))
		}
	},
}

func init() {
	verbose = rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging and http exchange dumps.")
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newClient builds a trip client from config.json5, tolerating a
// missing file.
func newClient() (*trip.Client, error) {
	cfg, err := configutil.ReadConfig[Config]("config.json5")
	if err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	return trip.NewClient(trip.ClientOptions{
		BaseUrl:   cfg.BaseUrl,
		UserAgent: cfg.UserAgent,
		Cookie:    cfg.Cookie,
	})
}

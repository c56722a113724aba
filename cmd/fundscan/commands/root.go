package commands

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tripfund/lib/configutil"
	"tripfund/lib/restyutil"
	"tripfund/lib/scrapers/fund"
	"tripfund/lib/telemetry"
)

type Config struct {
	UserAgent string `json:"user_agent"`
	// ListUrl locates the fund master list ("var hqjson=" body).
	ListUrl      string `json:"list_url"`
	DetailUrl    string `json:"detail_url"`
	ValuationUrl string `json:"valuation_url"`
}

var verbose *bool

var rootCmd = &cobra.Command{
	Use:   "fundscan",
	Short: "fundscan scrapes fund profiles and intraday valuations from the fund information site.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		telemetry.InitSlog(*verbose)
		if *verbose {
			fund.SetRestyDumpOutput(restyutil.NewFilesystemOutput(".dev/resty/fundscan"))
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

func newClient() (*fund.Client, Config, error) {
	cfg, err := configutil.ReadConfig[Config]("config.json5")
	if err != nil && !os.IsNotExist(err) {
		return nil, cfg, err
	}
	if cfg.ListUrl == "" {
		return nil, cfg, errors.New("config.json5 must set list_url")
	}
	client := fund.NewClient(fund.ClientOptions{
		UserAgent:    cfg.UserAgent,
		DetailUrl:    cfg.DetailUrl,
		ValuationUrl: cfg.ValuationUrl,
	})
	return client, cfg, nil
}

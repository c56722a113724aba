package fund

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"tripfund/lib/restyutil"
	"tripfund/lib/telemetry"
)

const defaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_13_6) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/69.0.3497.100 Safari/537.36"

// ErrNoData covers every "the upstream answered but carries no
// usable payload" case: non-200 status, missing data marker,
// empty result list.
var ErrNoData = errors.New("fund: no data in upstream response")

type Client struct {
	Http *resty.Client

	// DetailUrl and ValuationUrl exist so tests can point the
	// client at a fixture server.
	DetailUrl    string
	ValuationUrl string
}

type ClientOptions struct {
	UserAgent    string
	DetailUrl    string
	ValuationUrl string
}

func NewClient(opts ClientOptions) *Client {
	if opts.UserAgent == "" {
		opts.UserAgent = defaultUserAgent
	}
	if opts.DetailUrl == "" {
		opts.DetailUrl = "http://fund.10jqka.com.cn/data/client/myfund/"
	}
	if opts.ValuationUrl == "" {
		opts.ValuationUrl = "http://gz-fund.10jqka.com.cn/"
	}

	client := resty.New()
	client.SetHeader("User-Agent", opts.UserAgent)
	client.SetTimeout(time.Second * 30)

	telemetry.InstrumentResty(client, "scrapers/fund/http")
	restyutil.InstrumentClient(client, restyDumpOutput)

	return &Client{
		Http:         client,
		DetailUrl:    opts.DetailUrl,
		ValuationUrl: opts.ValuationUrl,
	}
}

func noData(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNoData, fmt.Sprintf(format, args...))
}

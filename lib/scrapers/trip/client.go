package trip

import (
	"errors"
	"fmt"
	"net/http/cookiejar"
	"net/url"
	"time"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"

	"tripfund/lib/restyutil"
	"tripfund/lib/telemetry"
)

const defaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_13_6) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/69.0.3497.100 Safari/537.36"

var ErrMalformedSeed = errors.New("trip: required identifier missing from seed page")
var ErrUnparseableRating = errors.New("trip: no numeral in star rating style")
var ErrNoRecordContainer = errors.New("trip: record container missing from response")
var ErrUpstreamStatus = errors.New("trip: unexpected upstream status")

type Client struct {
	BaseUrl *url.URL
	Http    *resty.Client
}

type ClientOptions struct {
	// BaseUrl defaults to the public site.
	BaseUrl   string
	UserAgent string
	Cookie    string
}

func NewClient(opts ClientOptions) (*Client, error) {
	if opts.BaseUrl == "" {
		opts.BaseUrl = "https://you.ctrip.com"
	}
	if opts.UserAgent == "" {
		opts.UserAgent = defaultUserAgent
	}

	baseUrl, err := url.Parse(opts.BaseUrl)
	if err != nil {
		return nil, err
	}

	client := resty.New()
	client.SetBaseURL(opts.BaseUrl)
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	client.SetCookieJar(jar)
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)

	client.SetHeader("user-agent", opts.UserAgent)
	if opts.Cookie != "" {
		client.SetHeader("cookie", opts.Cookie)
	}
	client.SetRedirectPolicy(resty.DomainCheckRedirectPolicy(baseUrl.Hostname()))
	client.SetTimeout(time.Second * 30)

	telemetry.InstrumentResty(client, "scrapers/trip/http")
	restyutil.InstrumentClient(client, restyDumpOutput)

	return &Client{
		BaseUrl: baseUrl,
		Http:    client,
	}, nil
}

func badStatus(res *resty.Response) error {
	return fmt.Errorf("%w: %d fetching %s", ErrUpstreamStatus, res.StatusCode(), res.Request.URL)
}

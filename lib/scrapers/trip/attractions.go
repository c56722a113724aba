package trip

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"tripfund/lib/htmlutil"
	"tripfund/lib/pageview"
)

// attractionSeed is the fixed query of an attraction listing:
// the listing endpoint plus the search keyword. Only the page
// number varies between fetches.
type attractionSeed struct {
	RequestUrl string
	Keyword    string
}

func seedFromTab(tab Tab) (attractionSeed, error) {
	entry, err := url.Parse(tab.EntryUrl)
	if err != nil {
		return attractionSeed{}, fmt.Errorf("%w: bad entry url: %v", ErrMalformedSeed, err)
	}
	keyword := entry.Query().Get("query")
	if keyword == "" {
		return attractionSeed{}, fmt.Errorf("%w: entry url carries no keyword query", ErrMalformedSeed)
	}

	request := url.URL{
		Scheme: entry.Scheme,
		Host:   entry.Host,
		Path:   entry.Path,
	}
	return attractionSeed{
		RequestUrl: request.String(),
		Keyword:    keyword,
	}, nil
}

// OpenAttractions seeds an attraction listing view from a search
// result tab and fetches its first page.
func (c *Client) OpenAttractions(ctx context.Context, tab Tab) (pageview.State[Attraction], error) {
	ctx, span := tracer.Start(ctx, "client:OpenAttractions")
	defer span.End()
	span.SetAttributes(attribute.String("entry", tab.EntryUrl))

	seed, err := seedFromTab(tab)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "malformed tab entry")
		return pageview.State[Attraction]{}, err
	}

	return pageview.Open(ctx, c.attractionFetcher(seed))
}

func (c *Client) attractionFetcher(seed attractionSeed) pageview.FetchFunc[Attraction] {
	return func(ctx context.Context, page int) ([]Attraction, error) {
		res, err := c.Http.R().
			SetContext(ctx).
			SetQueryParams(map[string]string{
				"query":         seed.Keyword,
				"isAnswered":    "",
				"isRecommended": "",
				"publishDate":   "",
				"PageNo":        strconv.Itoa(page),
			}).
			Get(seed.RequestUrl)
		if err != nil {
			return nil, err
		}
		if res.StatusCode() != 200 {
			return nil, badStatus(res)
		}

		doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(res.Body()))
		if err != nil {
			return nil, err
		}

		container := doc.Find("ul.jingdian-ul").First()
		if container.Length() == 0 {
			return nil, fmt.Errorf("%w: ul.jingdian-ul", ErrNoRecordContainer)
		}

		finalUrl := res.RawResponse.Request.URL
		base := &url.URL{Scheme: finalUrl.Scheme, Host: finalUrl.Host}

		var attractions []Attraction
		container.Children().Each(func(_ int, item *goquery.Selection) {
			if htmlutil.ChildNodeCount(item.Nodes[0]) <= 1 {
				return
			}
			attraction, err := extractAttraction(base, item)
			if err != nil {
				slog.WarnContext(ctx, "skipping unextractable attraction", "page", page, "err", err)
				return
			}
			attractions = append(attractions, attraction)
		})
		return attractions, nil
	}
}

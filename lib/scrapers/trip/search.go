package trip

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/PuerkitoBio/goquery"
	"github.com/antzucaro/matchr"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"tripfund/lib/htmlutil"
	"tripfund/lib/textutil"
)

// TabAttractions is the site's label for the attraction results
// category.
const TabAttractions = "景点"

var ErrTabNotFound = errors.New("trip: no such result category")

// A Tab is one result category of a keyword search.
type Tab struct {
	Label string
	// EntryUrl is the absolute link into this category's results.
	EntryUrl    string
	ResultCount int
}

// Search issues one keyword search and resolves the result
// category navigation into a label-keyed tab map.
func (c *Client) Search(ctx context.Context, keyword string) (map[string]Tab, error) {
	ctx, span := tracer.Start(ctx, "client:Search")
	defer span.End()
	span.SetAttributes(attribute.String("keyword", keyword))

	res, err := c.Http.R().
		SetContext(ctx).
		SetQueryParam("query", keyword).
		Get("/SearchSite/")
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "search request failed")
		return nil, err
	}
	if res.StatusCode() != 200 {
		span.SetStatus(codes.Error, "bad search status")
		return nil, badStatus(res)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(res.Body()))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse search page")
		return nil, err
	}

	// redirects may have moved us to a regional host; resolve
	// entry links against where the response actually came from
	finalUrl := res.RawResponse.Request.URL

	container := doc.Find("ul.list-tabs").First()
	if container.Length() == 0 {
		span.SetStatus(codes.Error, ErrNoRecordContainer.Error())
		return nil, fmt.Errorf("%w: ul.list-tabs", ErrNoRecordContainer)
	}

	tabs := map[string]Tab{}
	container.Children().Each(func(_ int, li *goquery.Selection) {
		// entries with a single child node are spacer noise
		if htmlutil.ChildNodeCount(li.Nodes[0]) <= 1 {
			return
		}
		anchor := li.Find("a").First()
		if anchor.Length() == 0 {
			return
		}

		text := textutil.StripWhitespace(anchor.Text())
		label, digits, ok := textutil.SplitLabelCount(text)
		if !ok {
			slog.WarnContext(ctx, "skipping unparseable tab", "text", text)
			return
		}
		count, err := strconv.Atoi(digits)
		if err != nil {
			slog.WarnContext(ctx, "skipping unparseable tab count", "text", text)
			return
		}

		tabs[label] = Tab{
			Label:       label,
			EntryUrl:    htmlutil.AbsoluteHref(finalUrl, anchor.AttrOr("href", "")),
			ResultCount: count,
		}
	})

	span.SetAttributes(attribute.Int("tabs", len(tabs)))
	return tabs, nil
}

// SelectTab picks a category by label. The not-found error names
// the closest known label as a hint.
func SelectTab(tabs map[string]Tab, label string) (Tab, error) {
	if tab, ok := tabs[label]; ok {
		return tab, nil
	}

	closest := ""
	best := -1
	for known := range tabs {
		d := matchr.Levenshtein(label, known)
		if best < 0 || d < best {
			best = d
			closest = known
		}
	}
	if closest != "" {
		return Tab{}, fmt.Errorf("%w: %q (closest match %q)", ErrTabNotFound, label, closest)
	}
	return Tab{}, fmt.Errorf("%w: %q", ErrTabNotFound, label)
}

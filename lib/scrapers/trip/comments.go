package trip

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"tripfund/lib/htmlutil"
	"tripfund/lib/pageview"
)

const commentViewPath = "/destinationsite/TTDSecond/SharedView/AsynCommentView"

// commentSeed holds the fixed parameters of one sight's comment
// listing, recovered from its detail page.
type commentSeed struct {
	PoiId        int
	DistrictId   int
	DistrictName string
	ResourceId   int
}

// the form endpoint wants the district pinyin capitalized, e.g.
// "Guangzhou", while the seed URL carries it lowercased
func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}

var poiIdRegex = regexp.MustCompile(`poiid\D+(\d+)"`)
var districtNameRegex = regexp.MustCompile(`sight/([a-zA-Z]+)\d`)
var districtIdRegex = regexp.MustCompile(`sight/[a-zA-Z]+(\d+)\D`)
var resourceIdRegex = regexp.MustCompile(`\d+/(\d+)\.html`)

func seedFromDetailPage(seedUrl string, body string) (commentSeed, error) {
	seed := commentSeed{}

	groups := poiIdRegex.FindStringSubmatch(body)
	if len(groups) < 2 {
		return seed, fmt.Errorf("%w: poi id", ErrMalformedSeed)
	}
	seed.PoiId, _ = strconv.Atoi(groups[1])

	groups = districtNameRegex.FindStringSubmatch(seedUrl)
	if len(groups) < 2 {
		return seed, fmt.Errorf("%w: district name", ErrMalformedSeed)
	}
	seed.DistrictName = capitalize(groups[1])

	groups = districtIdRegex.FindStringSubmatch(seedUrl)
	if len(groups) < 2 {
		return seed, fmt.Errorf("%w: district id", ErrMalformedSeed)
	}
	seed.DistrictId, _ = strconv.Atoi(groups[1])

	groups = resourceIdRegex.FindStringSubmatch(seedUrl)
	if len(groups) < 2 {
		return seed, fmt.Errorf("%w: resource id", ErrMalformedSeed)
	}
	seed.ResourceId, _ = strconv.Atoi(groups[1])

	return seed, nil
}

// OpenComments resolves a sight detail-page URL into a comment
// view and fetches its first page. The detail page embeds the
// poi id; district and resource ids live in the URL itself.
func (c *Client) OpenComments(ctx context.Context, seedUrl string) (pageview.State[Comment], error) {
	ctx, span := tracer.Start(ctx, "client:OpenComments")
	defer span.End()
	span.SetAttributes(attribute.String("seed", seedUrl))

	res, err := c.Http.R().
		SetContext(ctx).
		Get(seedUrl)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch seed page")
		return pageview.State[Comment]{}, err
	}
	if res.StatusCode() != 200 {
		span.SetStatus(codes.Error, "bad seed status")
		return pageview.State[Comment]{}, badStatus(res)
	}

	seed, err := seedFromDetailPage(seedUrl, res.String())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "malformed seed")
		return pageview.State[Comment]{}, err
	}

	return pageview.Open(ctx, c.commentFetcher(seed))
}

func (c *Client) commentFetcher(seed commentSeed) pageview.FetchFunc[Comment] {
	return func(ctx context.Context, page int) ([]Comment, error) {
		res, err := c.Http.R().
			SetContext(ctx).
			SetFormData(map[string]string{
				"poiID":         strconv.Itoa(seed.PoiId),
				"districtId":    strconv.Itoa(seed.DistrictId),
				"districtEName": seed.DistrictName,
				"pagenow":       strconv.Itoa(page),
				"resourceId":    strconv.Itoa(seed.ResourceId),
			}).
			Post(commentViewPath)
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

		container := doc.Find("div.comment_ctrip").First()
		if container.Length() == 0 {
			return nil, fmt.Errorf("%w: div.comment_ctrip", ErrNoRecordContainer)
		}

		// records materialize per page; a bad item is skipped,
		// not fatal to its page
		var comments []Comment
		container.Children().Each(func(_ int, item *goquery.Selection) {
			if htmlutil.ChildNodeCount(item.Nodes[0]) <= 2 {
				return
			}
			comment, err := extractComment(item)
			if err != nil {
				slog.WarnContext(ctx, "skipping unextractable comment", "page", page, "err", err)
				return
			}
			comments = append(comments, comment)
		})
		return comments, nil
	}
}

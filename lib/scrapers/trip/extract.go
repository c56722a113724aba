package trip

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"tripfund/lib/htmlutil"
	"tripfund/lib/textutil"
)

// A Comment is one visitor review of an attraction.
type Comment struct {
	Author string
	// Star is the 0-5 rating derived from the style width.
	Star          float64
	Text          string
	DatePublished string
}

// An Attraction is one entry of an attraction listing page.
type Attraction struct {
	// Url is the absolute link to the attraction's detail page.
	Url string
	// Name concatenates region and attraction name,
	// most-specific-last, e.g. "GuangzhouBaiyunMountain".
	Name string
}

var starWidthRegex = regexp.MustCompile(`^\D+(\d+)`)

// the star rating renders as a pixel width on a 100px scale;
// 20px per star
const starWidthUnit = 20

func parseStarWidth(style string) (float64, error) {
	groups := starWidthRegex.FindStringSubmatch(style)
	if len(groups) < 2 {
		return 0, fmt.Errorf("%w: %q", ErrUnparseableRating, style)
	}
	width, err := strconv.Atoi(groups[1])
	if err != nil || width > 100 {
		return 0, fmt.Errorf("%w: %q", ErrUnparseableRating, style)
	}
	return float64(width) / starWidthUnit, nil
}

// requiredText returns the whitespace-stripped text of the first
// match of selector under item, or an error naming the selector.
func requiredText(item *goquery.Selection, selector string) (string, error) {
	sub := item.Find(selector).First()
	if sub.Length() == 0 {
		return "", fmt.Errorf("missing %q", selector)
	}
	return textutil.StripWhitespace(sub.Text()), nil
}

func extractComment(item *goquery.Selection) (Comment, error) {
	author, err := requiredText(item, `a[itemprop="author"]`)
	if err != nil {
		return Comment{}, err
	}
	text, err := requiredText(item, "span.heightbox")
	if err != nil {
		return Comment{}, err
	}
	date, err := requiredText(item, `em[itemprop="datePublished"]`)
	if err != nil {
		return Comment{}, err
	}

	starStyle := item.Find("span.starlist span").First().AttrOr("style", "")
	star, err := parseStarWidth(starStyle)
	if err != nil {
		return Comment{}, err
	}

	return Comment{
		Author:        author,
		Star:          star,
		Text:          text,
		DatePublished: date,
	}, nil
}

func extractAttraction(base *url.URL, item *goquery.Selection) (Attraction, error) {
	pic := item.Find("a.pic").First()
	href, ok := pic.Attr("href")
	if !ok {
		return Attraction{}, fmt.Errorf(`missing "a.pic" href`)
	}
	link := htmlutil.AbsoluteHref(base, href)
	if link == "" {
		return Attraction{}, fmt.Errorf("unresolvable href %q", href)
	}

	title := item.Find("dt").First()
	if title.Length() == 0 {
		return Attraction{}, fmt.Errorf(`missing "dt" title cell`)
	}
	// the title cell lists its anchors in the opposite order of
	// the exported name, so reverse before concatenating
	parts := htmlutil.AnchorTexts(title)
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}

	return Attraction{Url: link, Name: strings.Join(parts, "")}, nil
}

package trip

import (
	"net/url"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

func selection(t *testing.T, fragment, selector string) *goquery.Selection {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	require.NoError(t, err)
	sel := doc.Find(selector).First()
	require.Equal(t, 1, sel.Length())
	return sel
}

func TestParseStarWidth(t *testing.T) {
	star, err := parseStarWidth("width:100px")
	require.NoError(t, err)
	require.Equal(t, 5.0, star)

	star, err = parseStarWidth("width:90px")
	require.NoError(t, err)
	require.Equal(t, 4.5, star)

	star, err = parseStarWidth("width: 60px;")
	require.NoError(t, err)
	require.Equal(t, 3.0, star)

	_, err = parseStarWidth("")
	require.ErrorIs(t, err, ErrUnparseableRating)

	_, err = parseStarWidth("width:unset")
	require.ErrorIs(t, err, ErrUnparseableRating)

	// the scale tops out at 100px / 5 stars
	_, err = parseStarWidth("width:140px")
	require.ErrorIs(t, err, ErrUnparseableRating)
}

const commentItem = `<div class="comment_single">
	<a itemprop="author" href="/member/1"> 游客小王 </a>
	<span class="starlist">
		<span style="width:80px"></span>
	</span>
	<span class="heightbox">
		白云山很值得一去，山顶视野开阔。
	</span>
	<em itemprop="datePublished">2018-09-20</em>
</div>`

func TestExtractComment(t *testing.T) {
	comment, err := extractComment(selection(t, commentItem, "div.comment_single"))
	require.NoError(t, err)
	require.Equal(t, Comment{
		Author:        "游客小王",
		Star:          4.0,
		Text:          "白云山很值得一去，山顶视野开阔。",
		DatePublished: "2018-09-20",
	}, comment)
}

func TestExtractCommentMissingAuthor(t *testing.T) {
	item := selection(t, `<div class="comment_single">
		<span class="heightbox">text</span>
		<em itemprop="datePublished">2018-09-20</em>
	</div>`, "div.comment_single")

	_, err := extractComment(item)
	require.Error(t, err)
	require.Contains(t, err.Error(), "author")
}

const attractionItem = `<li>
	<a class="pic" href="/sight/guangzhou152/107540.html"><img src="x.jpg"></a>
	<dl>
		<dt>
			<a href="/sight/guangzhou152/107540.html">白云山</a>
			<a href="/sight/guangzhou152.html">广州</a>
		</dt>
	</dl>
</li>`

func TestExtractAttraction(t *testing.T) {
	base, err := url.Parse("https://you.ctrip.com")
	require.NoError(t, err)

	attraction, err := extractAttraction(base, selection(t, attractionItem, "li"))
	require.NoError(t, err)
	require.Equal(t, Attraction{
		Url: "https://you.ctrip.com/sight/guangzhou152/107540.html",
		// title anchors run most-specific-first; the name reverses them
		Name: "广州白云山",
	}, attraction)
}

func TestExtractAttractionMissingLink(t *testing.T) {
	base, err := url.Parse("https://you.ctrip.com")
	require.NoError(t, err)

	_, err = extractAttraction(base, selection(t, `<li><dl><dt>
		<a href="/x">白云山</a>
	</dt></dl></li>`, "li"))
	require.Error(t, err)
}

package htmlutil

import (
	"bytes"
	"strings"
	"unicode"

	"net/url"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"tripfund/lib/textutil"
)

func GetText(node *html.Node) string {
	var buffer bytes.Buffer
	getTextRecursive(node, &buffer)
	return buffer.String()
}

func getTextRecursive(node *html.Node, buffer *bytes.Buffer) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		buffer.WriteString(node.Data)
		return
	}
	child := node.FirstChild
	for child != nil {
		getTextRecursive(child, buffer)
		child = child.NextSibling
	}
}

func removeNonPrintable(s string) string {
	newStr := strings.Builder{}
	for _, c := range s {
		if unicode.IsPrint(c) {
			newStr.WriteRune(c)
		}
	}
	return newStr.String()
}

// CleanText returns the printable text content of sel with
// whitespace collapsed.
func CleanText(sel *goquery.Selection) string {
	var text strings.Builder
	for _, node := range sel.Nodes {
		text.WriteString(GetText(node))
	}
	return textutil.CollapseWhitespace(removeNonPrintable(text.String()))
}

// AnchorTexts collects the whitespace-stripped text of every
// anchor under sel, in document order.
func AnchorTexts(sel *goquery.Selection) []string {
	var texts []string
	sel.Find("a").Each(func(_ int, a *goquery.Selection) {
		texts = append(texts, textutil.StripWhitespace(GetText(a.Nodes[0])))
	})
	return texts
}

// AbsoluteHref resolves href against base. It returns ""
// when either side fails to parse.
func AbsoluteHref(base *url.URL, href string) string {
	link, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return base.ResolveReference(link).String()
}

// ChildNodeCount counts the direct children of node, text
// nodes included. Listing containers separate real items from
// spacer noise by child count: noise entries hold at most one
// node.
func ChildNodeCount(node *html.Node) int {
	count := 0
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		count++
	}
	return count
}

package trip

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func attractionHTML(region, name, href string) string {
	return fmt.Sprintf(`<li>
		<a class="pic" href="%s"><img src="x.jpg"></a>
		<dl><dt>
			<a href="%s">%s</a>
			<a href="/region">%s</a>
		</dt></dl>
	</li>`, href, href, name, region)
}

func attractionsPage(items ...string) string {
	page := `<html><body><ul class="jingdian-ul">`
	page += `<li> </li>`
	for _, item := range items {
		page += item
	}
	page += `</ul></body></html>`
	return page
}

func TestOpenAttractionsAndPaginate(t *testing.T) {
	pages := map[string]string{
		"1": attractionsPage(
			attractionHTML("广州", "白云山", "/sight/guangzhou152/107540.html"),
			attractionHTML("广州", "长隆旅游度假区", "/sight/guangzhou152/122004.html"),
		),
		"2": attractionsPage(
			attractionHTML("广州", "沙面", "/sight/guangzhou152/107545.html"),
		),
		"3": attractionsPage(),
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/SearchSite/Attractions/", r.URL.Path)
		require.Equal(t, "广州", r.URL.Query().Get("query"))
		fmt.Fprint(w, pages[r.URL.Query().Get("PageNo")])
	}))
	defer server.Close()

	ctx := context.Background()
	tab := Tab{
		Label:       TabAttractions,
		EntryUrl:    server.URL + "/SearchSite/Attractions/?query=%E5%B9%BF%E5%B7%9E",
		ResultCount: 3,
	}

	view, err := testClient(t, server).OpenAttractions(ctx, tab)
	require.NoError(t, err)
	require.Equal(t, 1, view.Page)
	require.Equal(t, []Attraction{
		{Url: server.URL + "/sight/guangzhou152/107540.html", Name: "广州白云山"},
		{Url: server.URL + "/sight/guangzhou152/122004.html", Name: "广州长隆旅游度假区"},
	}, view.Records)

	view, err = view.Next(ctx)
	require.NoError(t, err)
	require.Len(t, view.Records, 1)
	require.Equal(t, "广州沙面", view.Records[0].Name)

	view, err = view.Next(ctx)
	require.NoError(t, err)
	require.Empty(t, view.Records)
}

func TestOpenAttractionsWithoutKeyword(t *testing.T) {
	_, err := (&Client{}).OpenAttractions(context.Background(), Tab{
		EntryUrl: "https://you.ctrip.com/SearchSite/Attractions/",
	})
	require.ErrorIs(t, err, ErrMalformedSeed)
}

func TestOpenAttractionsMissingContainer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html><body><p>redesigned page</p></body></html>")
	}))
	defer server.Close()

	tab := Tab{EntryUrl: server.URL + "/SearchSite/Attractions/?query=x"}
	_, err := testClient(t, server).OpenAttractions(context.Background(), tab)
	require.ErrorIs(t, err, ErrNoRecordContainer)
}

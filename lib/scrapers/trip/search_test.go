package trip

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

const searchPage = `<html><body>
<ul class="list-tabs">
	<li><a href="/SearchSite/Attractions/?query=%E5%B9%BF%E5%B7%9E">景点33</a> <span class="arrow"></span></li>
	<li> </li>
	<li><a href="/SearchSite/Hotels/?query=%E5%B9%BF%E5%B7%9E">酒店128</a> <span class="arrow"></span></li>
	<li><a href="/SearchSite/All/">全部</a> <span class="arrow"></span></li>
</ul>
</body></html>`

func testClient(t *testing.T, server *httptest.Server) *Client {
	client, err := NewClient(ClientOptions{BaseUrl: server.URL})
	require.NoError(t, err)
	return client
}

func TestSearch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/SearchSite/", r.URL.Path)
		require.Equal(t, "广州", r.URL.Query().Get("query"))
		fmt.Fprint(w, searchPage)
	}))
	defer server.Close()

	tabs, err := testClient(t, server).Search(context.Background(), "广州")
	require.NoError(t, err)

	// the spacer entry and the countless "全部" tab are skipped
	require.Len(t, tabs, 2)

	attractions, ok := tabs[TabAttractions]
	require.True(t, ok)
	require.Equal(t, TabAttractions, attractions.Label)
	require.Equal(t, 33, attractions.ResultCount)
	require.Equal(
		t,
		server.URL+"/SearchSite/Attractions/?query=%E5%B9%BF%E5%B7%9E",
		attractions.EntryUrl,
	)

	require.Equal(t, 128, tabs["酒店"].ResultCount)
}

func TestSearchWithoutTabContainer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html><body><p>nothing here</p></body></html>")
	}))
	defer server.Close()

	_, err := testClient(t, server).Search(context.Background(), "广州")
	require.ErrorIs(t, err, ErrNoRecordContainer)
}

func TestSearchBadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	_, err := testClient(t, server).Search(context.Background(), "广州")
	require.ErrorIs(t, err, ErrUpstreamStatus)
}

func TestSelectTab(t *testing.T) {
	tabs := map[string]Tab{
		"景点": {Label: "景点", ResultCount: 10},
		"酒店": {Label: "酒店", ResultCount: 3},
	}

	tab, err := SelectTab(tabs, "景点")
	require.NoError(t, err)
	require.Equal(t, 10, tab.ResultCount)

	_, err = SelectTab(tabs, "景")
	require.ErrorIs(t, err, ErrTabNotFound)
	require.Contains(t, err.Error(), "景点")

	_, err = SelectTab(map[string]Tab{}, "景点")
	require.ErrorIs(t, err, ErrTabNotFound)
}

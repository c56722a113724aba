package fundwatch

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"tripfund/lib/export"
	"tripfund/lib/scrapers/fund"
	"tripfund/lib/testutil"
	"tripfund/services/fundwatch/db"
)

// fixtureServer serves a two-fund master list, both details and
// one valuation feed. 510500 has no valuation data.
func fixtureServer(t *testing.T) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/list":
			fmt.Fprint(w, `var hqjson={"510300":"1B0300","510500":"1B0905"}`)
		case strings.HasPrefix(r.URL.Path, "/detail/"):
			code := strings.TrimPrefix(r.URL.Path, "/detail/")
			fmt.Fprintf(w, `{"data":[{
				"name":"fund %s",
				"hqcode":"feed-%s",
				"fundtype":"指数型",
				"levelOfRisk":"中风险",
				"themeList":[{"field_name":"宽基指数"}]
			}]}`, code, code)
		case r.URL.Path == "/valuation":
			if r.URL.Query().Get("info") == "vm_fd_1B0300" {
				fmt.Fprint(w, `~0930,98,100;0931,99,100`)
				return
			}
			fmt.Fprint(w, `feed offline`)
		default:
			http.NotFound(w, r)
		}
	}))
}

func fixtureClient(server *httptest.Server) *fund.Client {
	return fund.NewClient(fund.ClientOptions{
		DetailUrl:    server.URL + "/detail/",
		ValuationUrl: server.URL + "/valuation",
	})
}

func TestSnapshotAll(t *testing.T) {
	server := fixtureServer(t)
	defer server.Close()

	service := NewService(fixtureClient(server), server.URL+"/list", nil)

	out := export.NewWriter(
		filepath.Join(t.TempDir(), "funds"),
		export.Options{Format: export.FormatXLSX, Mode: export.Overwrite},
	)
	written, err := service.SnapshotAll(context.Background(), out)
	require.NoError(t, err)
	require.Equal(t, 2, written)
	require.NoError(t, out.Close())

	rows, err := export.NewWriter(
		strings.TrimSuffix(out.Path(), ".xlsx"),
		export.Options{Format: export.FormatXLSX, Mode: export.Append},
	).ReadRows(0, -1, "")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(
		t,
		[]string{"fund 510300", "510300", "feed-510300", "指数型", "中风险", "宽基指数"},
		rows[0],
	)
}

func TestSnapshotAllSkipsFundsWithoutDetail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/list":
			fmt.Fprint(w, `var hqjson={"510300":"1B0300","999999":"1B9999"}`)
		case r.URL.Path == "/detail/510300":
			fmt.Fprint(w, `{"data":[{"name":"fund","hqcode":"feed","fundtype":"t","levelOfRisk":"r"}]}`)
		default:
			fmt.Fprint(w, `{"data":[]}`)
		}
	}))
	defer server.Close()

	service := NewService(fixtureClient(server), server.URL+"/list", nil)

	out := export.NewWriter(
		filepath.Join(t.TempDir(), "funds"),
		export.Options{Format: export.FormatCSV, Mode: export.Overwrite},
	)
	written, err := service.SnapshotAll(context.Background(), out)
	require.NoError(t, err)
	require.Equal(t, 1, written)
	require.NoError(t, out.Close())
}

func TestWatch(t *testing.T) {
	server := fixtureServer(t)
	defer server.Close()

	env, cleanup := testutil.SetupService(t, testutil.ServiceParams{
		Name:     "fundwatch",
		DbSchema: db.Schema,
	})
	defer cleanup()
	defer env.DB.Close()

	service := NewService(fixtureClient(server), server.URL+"/list", env.DB)

	ctx := context.Background()
	alerts, err := service.Watch(ctx, 0)
	require.NoError(t, err)

	// 510300 averages -1.5%; 510500 has no feed and is skipped
	require.Len(t, alerts, 1)
	require.Equal(t, "510300", alerts[0].Code.Code)
	require.InDelta(t, -1.5, alerts[0].MeanChange, 1e-9)

	entry, err := db.New(env.DB).LatestHistory(ctx, "1B0300")
	require.NoError(t, err)
	require.InDelta(t, -1.5, entry.MeanChange, 1e-9)
	require.Equal(t, 2, entry.Samples)
	require.NotZero(t, entry.TakenAt)
}

func TestWatchThresholdExcludes(t *testing.T) {
	server := fixtureServer(t)
	defer server.Close()

	service := NewService(fixtureClient(server), server.URL+"/list", nil)

	alerts, err := service.Watch(context.Background(), -2)
	require.NoError(t, err)
	require.Empty(t, alerts)
}

package pageview

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

// listingFetch simulates a remote with 3 pages of two records each.
func listingFetch(ctx context.Context, page int) ([]string, error) {
	if page > 3 {
		return nil, nil
	}
	return []string{
		fmt.Sprintf("record %d-1", page),
		fmt.Sprintf("record %d-2", page),
	}, nil
}

func TestOpenAndNavigate(t *testing.T) {
	ctx := context.Background()

	view, err := Open(ctx, listingFetch)
	require.NoError(t, err)
	require.Equal(t, 1, view.Page)
	require.Equal(t, []string{"record 1-1", "record 1-2"}, view.Records)

	next, err := view.Next(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, next.Page)
	require.Equal(t, []string{"record 2-1", "record 2-2"}, next.Records)

	// navigation never mutates the state it was called on
	require.Equal(t, 1, view.Page)
	require.Equal(t, []string{"record 1-1", "record 1-2"}, view.Records)

	back, err := next.Prev(ctx)
	require.NoError(t, err)
	require.Equal(t, view.Page, back.Page)
	require.Equal(t, view.Records, back.Records)
}

func TestPrevClampsAtFirstPage(t *testing.T) {
	ctx := context.Background()

	view, err := Open(ctx, listingFetch)
	require.NoError(t, err)

	back, err := view.Prev(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, back.Page)
	require.Equal(t, view.Records, back.Records)
}

func TestPastLastPageIsEmpty(t *testing.T) {
	ctx := context.Background()

	view, err := Open(ctx, listingFetch)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		view, err = view.Next(ctx)
		require.NoError(t, err)
	}
	require.Equal(t, 4, view.Page)
	require.Empty(t, view.Records)

	// an empty page still navigates
	view, err = view.Next(ctx)
	require.NoError(t, err)
	require.Equal(t, 5, view.Page)
}

func TestFetchErrorPropagates(t *testing.T) {
	ctx := context.Background()

	fetchErr := fmt.Errorf("upstream went away")
	_, err := Open(ctx, func(ctx context.Context, page int) ([]int, error) {
		return nil, fetchErr
	})
	require.ErrorIs(t, err, fetchErr)
}

func TestPrevRefetches(t *testing.T) {
	ctx := context.Background()

	calls := map[int]int{}
	fetch := func(ctx context.Context, page int) ([]int, error) {
		calls[page]++
		return []int{page}, nil
	}

	view, err := Open(ctx, fetch)
	require.NoError(t, err)
	next, err := view.Next(ctx)
	require.NoError(t, err)
	_, err = next.Prev(ctx)
	require.NoError(t, err)

	// going back re-reads the page instead of serving a stale copy
	require.Equal(t, 2, calls[1])
	require.Equal(t, 1, calls[2])
}

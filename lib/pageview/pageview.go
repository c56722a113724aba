// Package pageview models "the current page of results for a remote
// query" as an immutable value.
//
// A remote listing is fully described by its fixed query parameters
// (resource ids, the search keyword) plus a page number. The fixed
// parameters are captured in a fetch closure when a view is opened;
// navigation only ever varies the page number. Each navigation call
// refetches and returns a fresh State rather than mutating the old
// one, so a caller can hold two pages at once and pagination is safe
// to exercise from tests without shared-state surprises.
//
// Records are materialized per page. Remote pages are small, and a
// concrete slice avoids the use-after-invalidate bugs that come with
// lazy sequences tied to a mutable view.
package pageview

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("lib/pageview")

// FetchFunc fetches one page of records. The closure owns the
// fixed query parameters; page is the only variable. An empty
// remote container must yield an empty slice, not an error:
// there is no upper page bound.
type FetchFunc[T any] func(ctx context.Context, page int) ([]T, error)

// State is one fetched page of a paginated remote view.
type State[T any] struct {
	// Page is 1-based and never below 1.
	Page    int
	Records []T

	fetch FetchFunc[T]
}

// Open fetches page 1 of the view described by fetch.
func Open[T any](ctx context.Context, fetch FetchFunc[T]) (State[T], error) {
	return fetchPage(ctx, fetch, 1)
}

// Next fetches the following page.
func (s State[T]) Next(ctx context.Context) (State[T], error) {
	return fetchPage(ctx, s.fetch, s.Page+1)
}

// Prev fetches the preceding page, clamping at page 1. The
// remote's behavior below page 1 is undefined, so it is never
// asked.
func (s State[T]) Prev(ctx context.Context) (State[T], error) {
	page := s.Page - 1
	if page < 1 {
		page = 1
	}
	return fetchPage(ctx, s.fetch, page)
}

func fetchPage[T any](ctx context.Context, fetch FetchFunc[T], page int) (State[T], error) {
	ctx, span := tracer.Start(ctx, "fetchPage")
	defer span.End()
	span.SetAttributes(attribute.Int("page", page))

	records, err := fetch(ctx, page)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch page")
		return State[T]{}, err
	}
	span.SetAttributes(attribute.Int("records", len(records)))

	return State[T]{
		Page:    page,
		Records: records,
		fetch:   fetch,
	}, nil
}

package fund

import (
	"context"
	"encoding/json"
	"sort"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// A Code pairs a fund's exchange code with the code its
// valuation feed uses internally.
type Code struct {
	Code     string
	FeedCode string
}

const masterListPrefix = "var hqjson="

// Codes fetches the fund master list. The upstream serves it as
// a javascript assignment whose right hand side is a JSON object
// mapping exchange code to feed code.
func (c *Client) Codes(ctx context.Context, listUrl string) ([]Code, error) {
	ctx, span := tracer.Start(ctx, "client:Codes")
	defer span.End()

	res, err := c.Http.R().
		SetContext(ctx).
		Get(listUrl)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "master list request failed")
		return nil, err
	}
	if res.StatusCode() != 200 {
		span.SetStatus(codes.Error, "bad master list status")
		return nil, noData("status %d from master list", res.StatusCode())
	}

	body := strings.Replace(res.String(), masterListPrefix, "", 1)
	var codeMap map[string]string
	err = json.Unmarshal([]byte(body), &codeMap)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "unparseable master list")
		return nil, noData("unparseable master list: %v", err)
	}

	list := make([]Code, 0, len(codeMap))
	for code, feedCode := range codeMap {
		list = append(list, Code{Code: code, FeedCode: feedCode})
	}
	// map order is random; keep runs comparable
	sort.Slice(list, func(i, j int) bool { return list[i].Code < list[j].Code })

	span.SetAttributes(attribute.Int("funds", len(list)))
	return list, nil
}

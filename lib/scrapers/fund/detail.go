package fund

import (
	"context"
	"encoding/json"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// Detail is one fund's profile from the keyed detail response.
type Detail struct {
	Name      string
	Code      string
	FeedCode  string
	FundType  string
	RiskLevel string
	// Themes holds the fund's investment theme names in response
	// order; the list length varies per fund.
	Themes []string
}

// Row flattens the detail into one export row, themes last.
func (d Detail) Row() []string {
	row := []string{d.Name, d.Code, d.FeedCode, d.FundType, d.RiskLevel}
	return append(row, d.Themes...)
}

type detailResponse struct {
	Data []struct {
		Name        string `json:"name"`
		Hqcode      string `json:"hqcode"`
		Fundtype    string `json:"fundtype"`
		LevelOfRisk string `json:"levelOfRisk"`
		ThemeList   []struct {
			FieldName string `json:"field_name"`
		} `json:"themeList"`
	} `json:"data"`
}

// Detail fetches one fund's profile by exchange code.
func (c *Client) Detail(ctx context.Context, code string) (Detail, error) {
	ctx, span := tracer.Start(ctx, "client:Detail")
	defer span.End()
	span.SetAttributes(attribute.String("code", code))

	res, err := c.Http.R().
		SetContext(ctx).
		Get(c.DetailUrl + code)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "detail request failed")
		return Detail{}, err
	}
	if res.StatusCode() != 200 {
		span.SetStatus(codes.Error, "bad detail status")
		return Detail{}, noData("status %d for fund %s", res.StatusCode(), code)
	}

	var decoded detailResponse
	err = json.Unmarshal(res.Body(), &decoded)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "unparseable detail")
		return Detail{}, noData("unparseable detail for fund %s: %v", code, err)
	}
	if len(decoded.Data) == 0 {
		span.SetStatus(codes.Error, "empty detail")
		return Detail{}, noData("empty detail for fund %s", code)
	}

	data := decoded.Data[0]
	detail := Detail{
		Name:      data.Name,
		Code:      code,
		FeedCode:  data.Hqcode,
		FundType:  data.Fundtype,
		RiskLevel: data.LevelOfRisk,
	}
	for _, theme := range data.ThemeList {
		detail.Themes = append(detail.Themes, theme.FieldName)
	}
	return detail, nil
}

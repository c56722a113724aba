package fund

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"tripfund/lib/timezone"
)

// A Sample is one intraday valuation reading.
type Sample struct {
	// Timestamp is the raw clock string, e.g. "0930".
	Timestamp string
	Current   float64
	Previous  float64
}

// Time resolves the sample's clock string against day. The feed
// emits Beijing wall time.
func (s Sample) Time(day time.Time) (time.Time, error) {
	return timezone.ParseClock(s.Timestamp, day)
}

// PercentChange is the sample's change against the previous
// close, in percent.
func (s Sample) PercentChange() float64 {
	return (s.Current - s.Previous) / s.Previous * 100
}

// Valuation aggregates one fund's intraday samples.
type Valuation struct {
	FeedCode string
	Samples  []Sample
	// MeanChange is the arithmetic mean of the samples' percent
	// changes.
	MeanChange float64
}

// MeanBelow reports whether the mean change sits at or under
// threshold.
func (v Valuation) MeanBelow(threshold float64) bool {
	return v.MeanChange <= threshold
}

// WithinBand reports whether the mean change lies in [lo, hi).
func (v Valuation) WithinBand(lo, hi float64) bool {
	return v.MeanChange >= lo && v.MeanChange < hi
}

// the sample block begins at a tilde followed by a clock value
var sampleBlockRegex = regexp.MustCompile(`~(\d{4}.*)`)

// parseSamples parses the chart payload: the marked block splits
// on ";" into samples, each sample on "," into timestamp,
// current and previous values. A short or unparseable sample is
// skipped, not fatal.
func parseSamples(body string) ([]Sample, error) {
	groups := sampleBlockRegex.FindStringSubmatch(body)
	if len(groups) < 2 {
		return nil, noData("sample block marker absent")
	}

	var samples []Sample
	for _, block := range strings.Split(groups[1], ";") {
		parts := strings.Split(block, ",")
		if len(parts) < 3 {
			slog.Warn("skipping short valuation sample", "sample", block)
			continue
		}
		current, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			slog.Warn("skipping unparseable valuation sample", "sample", block)
			continue
		}
		previous, err := strconv.ParseFloat(parts[2], 64)
		if err != nil || previous == 0 {
			slog.Warn("skipping unparseable valuation sample", "sample", block)
			continue
		}
		samples = append(samples, Sample{
			Timestamp: parts[0],
			Current:   current,
			Previous:  previous,
		})
	}
	if len(samples) == 0 {
		return nil, noData("no usable samples in block")
	}
	return samples, nil
}

// Valuation fetches a fund's intraday valuation chart by feed
// code and aggregates it.
func (c *Client) Valuation(ctx context.Context, feedCode string) (Valuation, error) {
	ctx, span := tracer.Start(ctx, "client:Valuation")
	defer span.End()
	span.SetAttributes(attribute.String("feed_code", feedCode))

	res, err := c.Http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"module":     "api",
			"controller": "index",
			"action":     "chart",
			"info":       fmt.Sprintf("vm_fd_%s", feedCode),
			"start":      "0930",
		}).
		Get(c.ValuationUrl)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "valuation request failed")
		return Valuation{}, err
	}
	if res.StatusCode() != 200 {
		span.SetStatus(codes.Error, "bad valuation status")
		return Valuation{}, noData("status %d for feed %s", res.StatusCode(), feedCode)
	}

	samples, err := parseSamples(res.String())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "no valuation data")
		return Valuation{}, err
	}

	sum := 0.0
	for _, sample := range samples {
		sum += sample.PercentChange()
	}

	valuation := Valuation{
		FeedCode:   feedCode,
		Samples:    samples,
		MeanChange: sum / float64(len(samples)),
	}
	span.SetAttributes(
		attribute.Int("samples", len(samples)),
		attribute.Float64("mean_change", valuation.MeanChange),
	)
	return valuation, nil
}

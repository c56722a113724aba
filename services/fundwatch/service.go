// Package fundwatch drives the fund vertical end to end: master
// list to details to valuations, exporting rows and keeping a
// sqlite history of valuation aggregates between runs.
package fundwatch

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"tripfund/lib/export"
	"tripfund/lib/scrapers/fund"
	"tripfund/lib/timezone"
	"tripfund/services/fundwatch/db"
)

var tracer = otel.Tracer("services/fundwatch")

// saveEvery bounds how many rows may sit unsaved in the export
// workbook during a long snapshot.
const saveEvery = 40

type Service struct {
	client *fund.Client
	// ListUrl locates the fund master list.
	ListUrl string
	qry     *db.Queries
}

// NewService wires a fund client to an optional history
// database. database may be nil; history is then skipped.
func NewService(client *fund.Client, listUrl string, database *sql.DB) Service {
	s := Service{client: client, ListUrl: listUrl}
	if database != nil {
		s.qry = db.New(database)
	}
	return s
}

// SnapshotAll exports one row per fund in the master list. Funds
// whose detail cannot be fetched are skipped with a warning; the
// writer is saved every saveEvery rows and once at the end.
func (s Service) SnapshotAll(ctx context.Context, out *export.Writer) (int, error) {
	ctx, span := tracer.Start(ctx, "SnapshotAll")
	defer span.End()

	codeList, err := s.client.Codes(ctx, s.ListUrl)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch master list")
		return 0, err
	}

	written := 0
	for _, code := range codeList {
		detail, err := s.client.Detail(ctx, code.Code)
		if err != nil {
			slog.WarnContext(ctx, "skipping fund without detail", "code", code.Code, "err", err)
			continue
		}
		if err := out.WriteRow(detail.Row()); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "export write failed")
			return written, err
		}
		written++
		if written%saveEvery == 0 {
			if err := out.Save(); err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, "export save failed")
				return written, err
			}
		}
	}

	err = out.Save()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "export save failed")
		return written, err
	}
	span.SetAttributes(attribute.Int("rows", written))
	return written, nil
}

// An Alert flags a fund whose mean intraday change sits at or
// under the watch threshold.
type Alert struct {
	Code       fund.Code
	MeanChange float64
}

// Watch pulls every fund's valuation, records it to history and
// returns the funds at or under threshold. Funds without
// valuation data are skipped.
func (s Service) Watch(ctx context.Context, threshold float64) ([]Alert, error) {
	ctx, span := tracer.Start(ctx, "Watch")
	defer span.End()
	span.SetAttributes(attribute.Float64("threshold", threshold))

	codeList, err := s.client.Codes(ctx, s.ListUrl)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch master list")
		return nil, err
	}

	var alerts []Alert
	for _, code := range codeList {
		valuation, err := s.client.Valuation(ctx, code.FeedCode)
		if errors.Is(err, fund.ErrNoData) {
			slog.DebugContext(ctx, "fund without valuation data", "feed_code", code.FeedCode)
			continue
		}
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "valuation fetch failed")
			return alerts, err
		}

		s.record(ctx, valuation)
		if valuation.MeanBelow(threshold) {
			alerts = append(alerts, Alert{Code: code, MeanChange: valuation.MeanChange})
		}
	}

	span.SetAttributes(attribute.Int("alerts", len(alerts)))
	return alerts, nil
}

func (s Service) record(ctx context.Context, valuation fund.Valuation) {
	if s.qry == nil {
		return
	}
	err := s.qry.InsertHistory(ctx, db.HistoryEntry{
		FeedCode:   valuation.FeedCode,
		TakenAt:    timezone.Now().Unix(),
		MeanChange: valuation.MeanChange,
		Samples:    len(valuation.Samples),
	})
	if err != nil {
		slog.WarnContext(ctx, "failed to record valuation history", "feed_code", valuation.FeedCode, "err", err)
	}
}

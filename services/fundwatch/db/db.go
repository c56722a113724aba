package db

import (
	"context"
	"database/sql"

	_ "embed"
)

//go:embed schema.sql
var Schema string

// A HistoryEntry is one recorded valuation aggregate.
type HistoryEntry struct {
	FeedCode   string
	TakenAt    int64
	MeanChange float64
	Samples    int
}

type Queries struct {
	db *sql.DB
}

func New(database *sql.DB) *Queries {
	return &Queries{db: database}
}

func (q *Queries) InsertHistory(ctx context.Context, entry HistoryEntry) error {
	_, err := q.db.ExecContext(
		ctx,
		`INSERT INTO valuation_history (feed_code, taken_at, mean_change, samples)
		 VALUES (?, ?, ?, ?)`,
		entry.FeedCode, entry.TakenAt, entry.MeanChange, entry.Samples,
	)
	return err
}

// LatestHistory returns the most recent entry for a feed code.
// sql.ErrNoRows when the fund was never recorded.
func (q *Queries) LatestHistory(ctx context.Context, feedCode string) (HistoryEntry, error) {
	row := q.db.QueryRowContext(
		ctx,
		`SELECT feed_code, taken_at, mean_change, samples
		 FROM valuation_history
		 WHERE feed_code = ?
		 ORDER BY taken_at DESC
		 LIMIT 1`,
		feedCode,
	)
	var entry HistoryEntry
	err := row.Scan(&entry.FeedCode, &entry.TakenAt, &entry.MeanChange, &entry.Samples)
	return entry, err
}

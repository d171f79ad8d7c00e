// Package runlog records bulk analysis runs in clickhouse
package runlog

import (
	"context"
	"time"

	perr "lookalike/internal/platform/errors"
	"lookalike/internal/platform/store"
)

// Table is the clickhouse table holding one row per run
const Table = "dedupe_runs"

// Entry is one bulk analysis run
type Entry struct {
	ID         string
	StartedAt  time.Time
	Duration   time.Duration
	Role       string
	Threshold  float64
	Records    int
	Processed  int
	Clusters   int
	Duplicates int
	Status     string
	Error      string
}

// Recorder stores and lists runs
type Recorder interface {
	Record(ctx context.Context, e Entry) error
	Recent(ctx context.Context, limit int) ([]Entry, error)
}

// CH is a Recorder backed by clickhouse
type CH struct{ db store.Clickhouse }

// NewCH returns a clickhouse recorder; a nil db yields a Nop recorder
func NewCH(db store.Clickhouse) Recorder {
	if db == nil {
		return Nop{}
	}
	return &CH{db: db}
}

const ddl = `
CREATE TABLE IF NOT EXISTS dedupe_runs (
  id          UUID,
  started_at  DateTime64(3, 'UTC'),
  duration_ms UInt64,
  role        LowCardinality(String),
  threshold   Float64,
  records     UInt32,
  processed   UInt32,
  clusters    UInt32,
  duplicates  UInt32,
  status      LowCardinality(String),
  error       String
) ENGINE = MergeTree
ORDER BY (started_at, id)
TTL toDateTime(started_at) + INTERVAL 90 DAY
`

// Ensure creates the runs table when missing
func Ensure(ctx context.Context, db store.Clickhouse) error {
	if db == nil {
		return nil
	}
	if err := db.Exec(ctx, ddl); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnavailable, "create %s", Table)
	}
	return nil
}

// Record appends e to the runs table
func (c *CH) Record(ctx context.Context, e Entry) error {
	row := []any{
		e.ID,
		e.StartedAt.UTC(),
		uint64(e.Duration.Milliseconds()),
		e.Role,
		e.Threshold,
		uint32(e.Records),
		uint32(e.Processed),
		uint32(e.Clusters),
		uint32(e.Duplicates),
		e.Status,
		e.Error,
	}
	if err := c.db.Insert(ctx, Table, [][]any{row}); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnavailable, "record run %s", e.ID)
	}
	return nil
}

// Recent lists the newest runs first
func (c *CH) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	const q = `
SELECT toString(id), started_at, duration_ms, role, threshold,
       records, processed, clusters, duplicates, status, error
FROM dedupe_runs
ORDER BY started_at DESC
LIMIT ?
`
	rows, err := c.db.Query(ctx, q, limit)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeUnavailable, "list runs")
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var (
			e                                       Entry
			durMs                                   uint64
			records, processed, clusters, duplicate uint32
		)
		if err := rows.Scan(&e.ID, &e.StartedAt, &durMs, &e.Role, &e.Threshold,
			&records, &processed, &clusters, &duplicate, &e.Status, &e.Error); err != nil {
			return nil, perr.Wrap(err, perr.ErrorCodeUnavailable, "scan run")
		}
		e.Duration = time.Duration(durMs) * time.Millisecond
		e.Records, e.Processed = int(records), int(processed)
		e.Clusters, e.Duplicates = int(clusters), int(duplicate)
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeUnavailable, "iterate runs")
	}
	return out, nil
}

// Nop drops runs and lists nothing
type Nop struct{}

// Record implements Recorder
func (Nop) Record(context.Context, Entry) error { return nil }

// Recent implements Recorder
func (Nop) Recent(context.Context, int) ([]Entry, error) { return nil, nil }

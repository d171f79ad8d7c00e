package store

import (
	"context"

	chx "lookalike/internal/platform/store/ch"
)

// chAdapter exposes *ch.CH as a Clickhouse. Insert, Exec, Ping and Close
// come straight from the client; only Query needs its rows rewrapped.
type chAdapter struct{ *chx.CH }

var (
	_ Clickhouse = chAdapter{}
	_ Pinger     = chAdapter{}
)

func (a chAdapter) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	r, err := a.CH.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return chRows{r}, nil
}

// chRows drops the error from Close so ch rows satisfy Rows
type chRows struct{ chx.Rows }

func (r chRows) Close() { _ = r.Rows.Close() }

package store

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"lookalike/internal/platform/store/pg"
)

type recTracer struct{ events []pg.QueryEvent }

func (r *recTracer) OnQuery(_ context.Context, ev pg.QueryEvent) { r.events = append(r.events, ev) }

type fakeRow struct{ err error }

func (f fakeRow) Scan(dst ...any) error {
	if f.err != nil {
		return f.err
	}
	*(dst[0].(*int)) = 1
	return nil
}

type fakeRows struct {
	pgx.Rows
	n int
}

func (f *fakeRows) Next() bool { f.n--; return f.n >= 0 }
func (f *fakeRows) Scan(dst ...any) error {
	*(dst[0].(*string)) = "c-1"
	return nil
}
func (f *fakeRows) Err() error { return nil }
func (f *fakeRows) Close()     {}
func (f *fakeRows) FieldDescriptions() []pgconn.FieldDescription {
	return []pgconn.FieldDescription{{Name: "id"}}
}

type fakeQuerier struct {
	execErr error
	rowErr  error
	rows    int
}

func (f fakeQuerier) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	return pgconn.NewCommandTag("UPDATE 2"), f.execErr
}
func (f fakeQuerier) Query(context.Context, string, ...any) (pgx.Rows, error) {
	return &fakeRows{n: f.rows}, nil
}
func (f fakeQuerier) QueryRow(context.Context, string, ...any) pgx.Row { return fakeRow{err: f.rowErr} }

func TestTraced_ReportsEveryStatement(t *testing.T) {
	tr := &recTracer{}
	q := traced{q: fakeQuerier{rows: 2}, tracer: tr, slowMs: 0}
	ctx := context.Background()

	tag, err := q.Exec(ctx, "update customers set deleted_at = now()")
	if err != nil || tag.RowsAffected() != 2 {
		t.Fatalf("Exec tag=%v err=%v", tag, err)
	}

	ids, err := Many(ctx, q, func(r Row) (string, error) {
		var id string
		return id, r.Scan(&id)
	}, "select id from customers")
	if err != nil || len(ids) != 2 || ids[0] != "c-1" {
		t.Fatalf("Many = %v, %v", ids, err)
	}

	var one int
	if err := q.QueryRow(ctx, "select 1").Scan(&one); err != nil || one != 1 {
		t.Fatalf("QueryRow = %d, %v", one, err)
	}

	if len(tr.events) != 3 {
		t.Fatalf("events = %d", len(tr.events))
	}
	for _, ev := range tr.events {
		if !ev.Slow {
			t.Fatalf("slowMs=0 marks every query slow: %+v", ev)
		}
	}
}

func TestTraced_ScanErrorReachesTracer(t *testing.T) {
	tr := &recTracer{}
	boom := errors.New("no rows")
	q := traced{q: fakeQuerier{rowErr: boom}, tracer: tr, slowMs: -1}

	var one int
	if err := q.QueryRow(context.Background(), "select 1").Scan(&one); !errors.Is(err, boom) {
		t.Fatalf("err = %v", err)
	}
	if len(tr.events) != 1 || !errors.Is(tr.events[0].Err, boom) || tr.events[0].Slow {
		t.Fatalf("events = %+v", tr.events)
	}
}

func TestTraced_NoTracerIsSilent(t *testing.T) {
	q := traced{q: fakeQuerier{execErr: errors.New("x")}}
	if _, err := q.Exec(context.Background(), "select 1"); err == nil {
		t.Fatal("expected exec error to pass through")
	}
}

type fakePgxTx struct {
	pgx.Tx
	fakeQuerier
	committed, rolledBack bool
}

func (f *fakePgxTx) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return f.fakeQuerier.Exec(ctx, sql, args...)
}
func (f *fakePgxTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return f.fakeQuerier.Query(ctx, sql, args...)
}
func (f *fakePgxTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return f.fakeQuerier.QueryRow(ctx, sql, args...)
}
func (f *fakePgxTx) Commit(context.Context) error   { f.committed = true; return nil }
func (f *fakePgxTx) Rollback(context.Context) error { f.rolledBack = true; return nil }

func TestRunTx_CommitAndRollback(t *testing.T) {
	ctx := context.Background()

	ok := &fakePgxTx{}
	if err := runTx(ctx, ok, traced{}, func(q RowQuerier) error {
		_, err := q.Exec(ctx, "update customers set merged_into = $1", "p")
		return err
	}); err != nil || !ok.committed || ok.rolledBack {
		t.Fatalf("commit path err=%v tx=%+v", err, ok)
	}

	bad := &fakePgxTx{}
	boom := errors.New("boom")
	if err := runTx(ctx, bad, traced{}, func(RowQuerier) error { return boom }); !errors.Is(err, boom) || bad.committed || !bad.rolledBack {
		t.Fatalf("rollback path err=%v tx=%+v", err, bad)
	}
}

func TestPGAdapter_NilPing(t *testing.T) {
	var a *pgAdapter
	if err := a.Ping(context.Background()); err == nil {
		t.Fatal("expected error on nil adapter")
	}
}

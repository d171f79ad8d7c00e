package store

import (
	"context"
	"testing"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"

	chx "lookalike/internal/platform/store/ch"
)

type fakeCHConn struct {
	driver.Conn
	rows   *fakeDriverRows
	pinged bool
	closed bool
}

func (f *fakeCHConn) Ping(context.Context) error { f.pinged = true; return nil }
func (f *fakeCHConn) Close() error               { f.closed = true; return nil }
func (f *fakeCHConn) Query(context.Context, string, ...any) (driver.Rows, error) {
	return f.rows, nil
}

type fakeDriverRows struct {
	driver.Rows
	closed bool
}

func (r *fakeDriverRows) Close() error { r.closed = true; return nil }

func TestCHAdapter_Delegates(t *testing.T) {
	fr := &fakeDriverRows{}
	fc := &fakeCHConn{rows: fr}
	var a Clickhouse = chAdapter{chx.New(fc)}

	rows, err := a.Query(context.Background(), "SELECT 1")
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	rows.Close()
	if !fr.closed {
		t.Fatal("rows close should reach the driver")
	}

	if err := a.(Pinger).Ping(context.Background()); err != nil || !fc.pinged {
		t.Fatalf("Ping = %v, pinged = %v", err, fc.pinged)
	}
	if err := a.Close(); err != nil || !fc.closed {
		t.Fatalf("Close = %v, closed = %v", err, fc.closed)
	}
}

func TestCHAdapter_NilClient(t *testing.T) {
	a := chAdapter{}
	if err := a.Ping(context.Background()); err == nil {
		t.Fatal("expected error on nil client")
	}
	if _, err := a.Query(context.Background(), "SELECT 1"); err == nil {
		t.Fatal("expected error on nil client")
	}
}

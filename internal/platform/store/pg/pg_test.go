package pg

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"

	"lookalike/internal/platform/testkit"
)

func TestOpen(t *testing.T) {
	testkit.Serial(t)

	if _, err := Open(context.Background(), Config{URL: "://bad"}, nil); err == nil {
		t.Fatal("expected parse error")
	}

	var got *pgxpool.Config
	fake := &pgxpool.Pool{} // zero value; never closed
	testkit.Swap(t, &newPool, func(_ context.Context, c *pgxpool.Config) (*pgxpool.Pool, error) {
		got = c
		return fake, nil
	})

	p, err := Open(context.Background(), Config{
		URL:      "postgres://u:p@h:5432/customers?sslmode=disable",
		AppName:  "lookalike-api",
		MaxConns: 7,
		SlowMs:   250,
	}, nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if got.MaxConns != 7 || got.ConnConfig.RuntimeParams["application_name"] != "lookalike-api" {
		t.Fatalf("pool config = max %d params %v", got.MaxConns, got.ConnConfig.RuntimeParams)
	}
	if p.Pool != fake || p.SlowMs != 250 {
		t.Fatalf("PG = %+v", p)
	}

	testkit.Swap(t, &newPool, func(context.Context, *pgxpool.Config) (*pgxpool.Pool, error) {
		return nil, errors.New("boom")
	})
	if _, err := Open(context.Background(), Config{URL: "postgres://h/db"}, nil); err == nil {
		t.Fatal("expected pool error")
	}
}

func TestClose_NilSafe(t *testing.T) {
	var p *PG
	p.Close()
	(&PG{}).Close()
}

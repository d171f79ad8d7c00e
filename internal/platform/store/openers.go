package store

import (
	"context"
	"fmt"
	"time"

	"lookalike/internal/platform/logger"
	chx "lookalike/internal/platform/store/ch"
	"lookalike/internal/platform/store/pg"
)

const (
	defaultConnectRetries = 20
	defaultPingTimeout    = 3 * time.Second

	firstBackoff = 150 * time.Millisecond
	maxBackoff   = 2 * time.Second
)

// openPG builds the pool then waits for postgres to answer.
// The adapter is returned only once a ping succeeds.
func openPG(ctx context.Context, cfg Config, log logger.Logger) (*pgAdapter, error) {
	var tracer pg.QueryTracer
	if cfg.PG.LogSQL {
		tracer = pg.Tracer(log)
	}

	p, err := pg.Open(ctx, pg.Config{
		URL:      cfg.PG.URL,
		AppName:  cfg.AppName,
		MaxConns: cfg.PG.MaxConns,
		SlowMs:   cfg.PG.SlowQueryMs,
	}, tracer)
	if err != nil {
		return nil, err
	}

	attempts := cfg.PG.ConnectRetries
	if attempts <= 0 {
		attempts = defaultConnectRetries
	}
	timeout := cfg.PG.PingTimeout
	if timeout <= 0 {
		timeout = defaultPingTimeout
	}

	if err := waitReady(ctx, attempts, timeout, p.Pool.Ping, log); err != nil {
		p.Close()
		return nil, fmt.Errorf("postgres: %w", err)
	}
	return newPGAdapter(p), nil
}

// waitReady calls ping until it succeeds, backing off between attempts.
// It gives up early when ctx ends.
func waitReady(ctx context.Context, attempts int, timeout time.Duration, ping func(context.Context) error, log logger.Logger) error {
	wait := firstBackoff
	var last error
	for i := 1; i <= attempts; i++ {
		pctx, cancel := context.WithTimeout(ctx, timeout)
		last = ping(pctx)
		cancel()
		if last == nil {
			return nil
		}
		if i == attempts {
			break
		}
		log.Debug().Err(last).Int("attempt", i).Dur("wait", wait).Msg("backend not ready")

		t := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
		wait = min(wait*2, maxBackoff)
	}
	return fmt.Errorf("not ready after %d attempts: %w", attempts, last)
}

func openCH(ctx context.Context, cfg Config) (Clickhouse, error) {
	c, err := chx.Open(ctx, chx.Config{URL: cfg.CH.URL, Role: cfg.CH.Role, Tag: cfg.CH.Tag})
	if err != nil {
		return nil, err
	}
	return chAdapter{c}, nil
}

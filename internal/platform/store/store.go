// Package store owns the database handles the services share.
// Postgres holds customer records and merge state, clickhouse holds the
// dedupe run log. Either may be switched off; its field stays nil.
package store

import (
	"context"
	"errors"
	"fmt"

	"lookalike/internal/platform/logger"
)

// Store bundles the opened backends
type Store struct {
	Log logger.Logger

	PG TxRunner
	CH Clickhouse
}

// Option tweaks a Store before any backend is dialled
type Option func(*Store) error

// WithLogger routes sql tracing and boot messages to log
func WithLogger(log logger.Logger) Option {
	return func(s *Store) error {
		s.Log = log
		return nil
	}
}

// Open dials every enabled backend in order, pg first.
// A failure closes whatever was already opened.
func Open(ctx context.Context, cfg Config, opts ...Option) (*Store, error) {
	s := &Store{}
	for _, o := range opts {
		if err := o(s); err != nil {
			return nil, err
		}
	}
	s.Log = s.Log.With().Logger()

	if cfg.PG.Enabled {
		pg, err := openPG(ctx, cfg, s.Log)
		if err != nil {
			return nil, err
		}
		s.PG = pg
	}
	if cfg.CH.Enabled {
		ch, err := openCH(ctx, cfg)
		if err != nil {
			_ = s.Close(ctx)
			return nil, err
		}
		s.CH = ch
	}

	s.Log.Debug().
		Bool("pg", s.PG != nil).
		Bool("ch", s.CH != nil).
		Msg("store opened")
	return s, nil
}

type backend struct {
	name string
	h    any
}

// backends lists the opened handles in open order
func (s *Store) backends() []backend {
	var out []backend
	if s.PG != nil {
		out = append(out, backend{"pg", s.PG})
	}
	if s.CH != nil {
		out = append(out, backend{"ch", s.CH})
	}
	return out
}

// Guard pings every opened backend that supports it and joins the failures
func (s *Store) Guard(ctx context.Context) error {
	if s == nil {
		return errors.New("store: nil")
	}
	var errs []error
	for _, b := range s.backends() {
		p, ok := b.h.(Pinger)
		if !ok {
			continue
		}
		if err := p.Ping(ctx); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", b.name, err))
		}
	}
	return errors.Join(errs...)
}

// Close releases backends in reverse open order
func (s *Store) Close(context.Context) error {
	if s == nil {
		return nil
	}
	var errs []error
	bs := s.backends()
	for i := len(bs) - 1; i >= 0; i-- {
		c, ok := bs[i].h.(interface{ Close() error })
		if !ok {
			continue
		}
		if err := c.Close(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", bs[i].name, err))
		}
	}
	return errors.Join(errs...)
}

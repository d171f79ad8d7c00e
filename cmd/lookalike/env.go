package main

import (
	"context"

	"lookalike/internal/platform/config"
	"lookalike/internal/platform/events"
	"lookalike/internal/platform/logger"
	"lookalike/internal/platform/store"
	dedupemod "lookalike/internal/services/dedupe/module"
	deduperepo "lookalike/internal/services/dedupe/repo"
	"lookalike/internal/services/dedupe/runlog"
	dedupesvc "lookalike/internal/services/dedupe/service"
)

// backend is the database side of the CLI, opened from the environment
type backend struct {
	svc   *dedupesvc.Svc
	store *store.Store
	pub   events.Publisher
}

func (b *backend) Close() {
	l := logger.Get()
	if err := b.pub.Close(); err != nil {
		l.Error().Err(err).Msg("failed to close event publisher")
	}
	if err := b.store.Close(context.Background()); err != nil {
		l.Error().Err(err).Msg("failed to close store")
	}
}

func openBackend(ctx context.Context) (*backend, error) {
	root := config.New()
	pgCfg := root.Prefix("SERVICE_PGSQL_")
	chCfg := root.Prefix("SERVICE_CLICKHOUSE_")
	l := logger.Get()

	chOn := chCfg.MayBool("ENABLED", false)
	chURL := ""
	if chOn {
		chURL = chCfg.MustString("DBURL")
	}
	st, err := store.Open(ctx, store.Config{
		AppName: "lookalike-cli",
		PG: store.PGConfig{
			Enabled:        true,
			URL:            pgCfg.MustString("DBURL"),
			MaxConns:       int32(pgCfg.MayInt("MAX_CONNS", 2)),
			SlowQueryMs:    pgCfg.MayInt("SLOW_MS", 500),
			LogSQL:         pgCfg.MayBool("LOG_SQL", false),
			ConnectRetries: 3,
		},
		CH: store.CHConfig{Enabled: chOn, URL: chURL, Role: "cli"},
	}, store.WithLogger(*l))
	if err != nil {
		return nil, err
	}

	opts := dedupemod.FromConfig(root)
	refs, err := deduperepo.ParseReferences(opts.MergeRefs)
	if err != nil {
		_ = st.Close(ctx)
		return nil, err
	}
	if err := runlog.Ensure(ctx, st.CH); err != nil {
		l.Warn().Err(err).Msg("run ledger unavailable")
	}
	pub := events.NewKafka(opts.Kafka, *l)
	svc := dedupesvc.New(st.PG, deduperepo.NewPG(refs...),
		dedupesvc.WithConfig(opts.Service),
		dedupesvc.WithPublisher(pub),
		dedupesvc.WithRunLog(runlog.NewCH(st.CH)),
	)
	return &backend{svc: svc, store: st, pub: pub}, nil
}

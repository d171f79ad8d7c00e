// @title         Lookalike API
// @version       0.1.0
// @description   Duplicate customer detection: live checks while editing, bulk clustering and merges

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"lookalike/internal/modkit/repokit"
	"lookalike/internal/platform/config"
	"lookalike/internal/platform/events"
	"lookalike/internal/platform/logger"
	"lookalike/internal/platform/metrics"
	phttp "lookalike/internal/platform/net/http"
	"lookalike/internal/platform/store"
	"lookalike/internal/platform/store/schema"

	"lookalike/internal/services/api"
	dedupemod "lookalike/internal/services/dedupe/module"
	deduperepo "lookalike/internal/services/dedupe/repo"
	"lookalike/internal/services/dedupe/runlog"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// service-scoped config for HTTP etc (CORE_API_*)
	root := config.New()
	apiCfg := root.Prefix("CORE_API_")

	pgCfg := root.Prefix("SERVICE_PGSQL_")      // pgCfg lives under SERVICE_PGSQL_*
	chCfg := root.Prefix("SERVICE_CLICKHOUSE_") // chCfg lives under SERVICE_CLICKHOUSE_*
	// bring up logging early
	l := logger.Get()

	pgURL := pgCfg.MustString("DBURL")
	if pgCfg.MayBool("MIGRATE", false) {
		res, err := schema.Up(schema.Config{URL: pgURL, FS: deduperepo.Migrations, Dir: deduperepo.MigrationsDir}, *l)
		if err != nil {
			l.Panic().Err(err).Msg("schema.Up failed")
		}
		l.Info().Uint("from", res.From).Uint("to", res.To).Bool("changed", res.Changed).Msg("schema ready")
	}

	chOn := chCfg.MayBool("ENABLED", false)
	chURL := ""
	if chOn {
		chURL = chCfg.MustString("DBURL")
	}

	// open the platform store (postgres + optional CH run ledger)
	st, err := store.Open(
		ctx,
		store.Config{
			AppName: "lookalike-api",
			PG: store.PGConfig{
				Enabled:     true,
				URL:         pgURL,
				MaxConns:    int32(pgCfg.MayInt("MAX_CONNS", 4)),
				SlowQueryMs: pgCfg.MayInt("SLOW_MS", 500),
				LogSQL:      pgCfg.MayBool("LOG_SQL", false),
			},
			CH: store.CHConfig{
				Enabled: chOn,
				URL:     chURL,
				Role:    "api",
				Tag:     chCfg.MayString("TAG", ""),
			},
		},
		store.WithLogger(*logger.Get()),
	)
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	repokit.MustGuard(ctx, st)

	if err := runlog.Ensure(ctx, st.CH); err != nil {
		l.Warn().Err(err).Msg("run ledger unavailable")
	}

	var reg *metrics.Registry
	if apiCfg.MayBool("METRICS", true) {
		reg = metrics.New()
	}

	pub := events.NewKafka(dedupemod.FromConfig(root).Kafka, *l)
	defer func() {
		if err := pub.Close(); err != nil {
			l.Error().Err(err).Msg("failed to close event publisher")
		}
	}()

	// http server (reads CORE_API_PORT / CORE_API_SHUTDOWN_GRACE)
	srv := phttp.NewServer(apiCfg)

	// mount our API
	api.Mount(
		srv.Router(),
		api.Options{
			Config:         root,
			Store:          st,
			Logger:         l,
			EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
			EnableProfiler: apiCfg.MayBool("PROFILER", false),
			Metrics:        reg,
			Events:         pub,
		},
	)

	// run until SIGINT/SIGTERM, then drain
	if err := srv.Run(ctx); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}

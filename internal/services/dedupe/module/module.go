// Package module wires dedupe into the API using modkit
package module

import (
	"lookalike/internal/core/version"
	modkit "lookalike/internal/modkit"
	"lookalike/internal/modkit/httpkit"
	"lookalike/internal/modkit/repokit"
	"lookalike/internal/platform/logger"
	"lookalike/internal/services/dedupe/guardrails"
	dedupehttp "lookalike/internal/services/dedupe/http"
	deduperepo "lookalike/internal/services/dedupe/repo"
	"lookalike/internal/services/dedupe/runlog"
	dedupesvc "lookalike/internal/services/dedupe/service"
)

// Module mounts the dedupe endpoints under /customers
type Module struct {
	modkit.Base
	svc dedupesvc.Service
}

// New builds the dedupe service from deps and the DEDUPE_* config
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	cfg := FromConfig(deps.Cfg)

	refs, err := deduperepo.ParseReferences(cfg.MergeRefs)
	if err != nil {
		logger.Get().Panic().Err(err).Msg("dedupe: invalid DEDUPE_MERGE_REFS")
	}

	var db repokit.TxRunner
	if deps.PG != nil {
		db = repokit.WithBeginHooks(deps.PG, guardrails.LockTimeout(cfg.LockTimeout))
	}
	m := &Module{}
	m.svc = dedupesvc.New(db, deduperepo.NewPG(refs...),
		dedupesvc.WithConfig(cfg.Service),
		dedupesvc.WithLease(guardrails.MakeLease(db, version.Service, cfg.LeaseTTL)),
		dedupesvc.WithPublisher(deps.Events),
		dedupesvc.WithRunLog(runlog.NewCH(deps.CH)),
		dedupesvc.WithMetrics(deps.Metrics),
	)
	m.Base = modkit.Build(
		func(r httpkit.Router) { dedupehttp.Register(r, m.svc) },
		[]modkit.Option{modkit.WithName("dedupe"), modkit.WithPrefix("/customers")},
		opts...,
	)
	return m
}

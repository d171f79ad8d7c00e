// Package module mounts the meta endpoints: health, version and matching settings
package module

import (
	"time"

	"lookalike/internal/core/version"
	modkit "lookalike/internal/modkit"
	"lookalike/internal/modkit/httpkit"

	metahttp "lookalike/internal/services/api/meta/http"
	dedupemod "lookalike/internal/services/dedupe/module"
	dedupesvc "lookalike/internal/services/dedupe/service"
)

// New builds the meta module under /meta
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	probes := map[string]metahttp.Pinger{"pg": nil, "ch": nil}
	if p, ok := deps.PG.(metahttp.Pinger); ok {
		probes["pg"] = p
	}
	if p, ok := deps.CH.(metahttp.Pinger); ok {
		probes["ch"] = p
	}
	d := metahttp.Deps{
		ServiceName: version.Service + "-api",
		StartedAt:   time.Now(),
		Deps:        probes,
		MaxMatches:  dedupesvc.MaxMatches,
		Threshold:   dedupemod.FromConfig(deps.Cfg).Service.Threshold,
	}
	return modkit.Build(
		func(r httpkit.Router) { metahttp.Register(r, d) },
		[]modkit.Option{modkit.WithName("meta"), modkit.WithPrefix("/meta")},
		opts...,
	)
}

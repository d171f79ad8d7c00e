// Package api assembles the HTTP surface: operational endpoints at the root,
// business modules under /api/v1.
package api

import (
	"lookalike/internal/modkit"
	"lookalike/internal/modkit/httpkit"
	"lookalike/internal/modkit/swaggerkit"
	"lookalike/internal/platform/config"
	"lookalike/internal/platform/events"
	"lookalike/internal/platform/logger"
	"lookalike/internal/platform/metrics"
	phttp "lookalike/internal/platform/net/http"
	"lookalike/internal/platform/store"

	metamod "lookalike/internal/services/api/meta/module"
	dedupemod "lookalike/internal/services/dedupe/module"
)

// Options wires the API to its backends
type Options struct {
	Config         config.Conf
	Store          *store.Store
	Logger         *logger.Logger
	EnableSwagger  bool
	EnableProfiler bool

	// Metrics, when set, is served at /metrics and fed by the dedupe module
	Metrics *metrics.Registry
	// Events receives merge events; nil disables publishing
	Events events.Publisher
}

// Mount registers every route on r
func Mount(r phttp.Router, opt Options) {
	log := opt.Logger
	if log == nil {
		log = logger.Named("api")
	}

	deps := modkit.Deps{
		Cfg:     opt.Config,
		PG:      opt.Store.PG,
		CH:      opt.Store.CH,
		Metrics: opt.Metrics,
		Events:  opt.Events,
	}
	mods := []modkit.Module{metamod.New(deps), dedupemod.New(deps)}

	if opt.Metrics != nil {
		r.Handle("/metrics", opt.Metrics.Handler())
	}
	swaggerkit.Mount(r, opt.EnableSwagger)
	phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

	httpkit.MountAPIV1(r, httpkit.CommonStack(), func(v1 httpkit.Router) {
		for _, m := range mods {
			log.Debug().Str("module", m.Name()).Msg("mounting module")
			m.MountRoutes(v1)
		}
	})
}

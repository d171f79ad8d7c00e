// Package modkit wires API modules: shared dependencies and a mountable base
package modkit

import (
	"lookalike/internal/modkit/repokit"
	"lookalike/internal/platform/config"
	"lookalike/internal/platform/events"
	"lookalike/internal/platform/metrics"
	"lookalike/internal/platform/store"
)

// Deps holds what every module may draw on. PG and CH are nil when not configured.
type Deps struct {
	Cfg config.Conf
	PG  repokit.TxRunner
	CH  store.Clickhouse

	// Metrics is nil when /metrics is disabled
	Metrics *metrics.Registry
	// Events defaults to a no op publisher when nil
	Events events.Publisher
}

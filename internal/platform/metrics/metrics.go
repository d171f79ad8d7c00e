// Package metrics owns the prometheus registry the service exposes on /metrics
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Namespace prefixes every metric this service registers
const Namespace = "lookalike"

// Registry wraps a prometheus registry with runtime collectors attached
type Registry struct {
	reg *prometheus.Registry
}

// New returns a registry preloaded with go and process collectors
func New() *Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return &Registry{reg: reg}
}

// Bare returns a registry with no collectors, handy in tests
func Bare() *Registry { return &Registry{reg: prometheus.NewRegistry()} }

// Registerer exposes the registry for collectors owned by services
func (r *Registry) Registerer() prometheus.Registerer { return r.reg }

// Gatherer exposes the registry for scraping
func (r *Registry) Gatherer() prometheus.Gatherer { return r.reg }

// Handler serves the registry in the prometheus exposition format
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{Registry: r.reg})
}

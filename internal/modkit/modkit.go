package modkit

import (
	"net/http"

	str "lookalike/internal/platform/strings"

	"lookalike/internal/modkit/httpkit"
)

// Module is what the API mounts: a named set of routes under one prefix
type Module interface {
	Name() string
	MountRoutes(r httpkit.Router)
}

// Option tunes a Base before the module finishes building it
type Option func(*Base)

func WithName(name string) Option     { return func(b *Base) { b.name = name } }
func WithPrefix(prefix string) Option { return func(b *Base) { b.prefix = prefix } }

// WithMiddlewares appends per-module middleware, applied in order
func WithMiddlewares(mw ...func(http.Handler) http.Handler) Option {
	return func(b *Base) { b.mws = append(b.mws, mw...) }
}

// WithRegister adds routes next to the module's own, useful for tests and extensions
func WithRegister(fn func(httpkit.Router)) Option {
	return func(b *Base) { b.extra = append(b.extra, fn) }
}

// Base carries the name, prefix and middleware every module shares.
// Modules embed it and hand their route registration to Build.
type Base struct {
	name   string
	prefix string
	mws    []func(http.Handler) http.Handler
	routes func(httpkit.Router)
	extra  []func(httpkit.Router)
}

// Build applies defaults first, then caller opts, so callers can override either
func Build(routes func(httpkit.Router), defaults []Option, opts ...Option) Base {
	b := Base{routes: routes}
	for _, o := range append(defaults, opts...) {
		o(&b)
	}
	return b
}

func (b Base) Name() string                                   { return str.MustString(b.name, "module name") }
func (b Base) Prefix() string                                 { return str.MustPrefix(b.prefix) }
func (b Base) Middlewares() []func(http.Handler) http.Handler { return b.mws }

// MountRoutes mounts the module's routes, then any extras, under Prefix
func (b Base) MountRoutes(r httpkit.Router) {
	r.Route(b.Prefix(), func(rr httpkit.Router) {
		if len(b.mws) > 0 {
			rr.Use(b.mws...)
		}
		if b.routes != nil {
			b.routes(rr)
		}
		for _, fn := range b.extra {
			fn(rr)
		}
	})
}

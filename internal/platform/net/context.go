// Package net holds the transport neutral parts of a request: the id it
// travels under and the envelope it is answered with.
package net

import (
	"context"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// WithRequestID stores id under chi's request id key, so RequestID and
// chimw.GetReqID agree whether or not the middleware ran. Empty ids are ignored.
func WithRequestID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, chimw.RequestIDKey, id)
}

// RequestID returns the id chi assigned or WithRequestID stored
func RequestID(ctx context.Context) string { return chimw.GetReqID(ctx) }

// Package middleware exposes the chi and cors middlewares the API mounts,
// plus the two it writes itself: AccessLog and RecoverJSON.
package middleware

import (
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Middleware is the plain net/http decorator shape
type Middleware = func(http.Handler) http.Handler

func RequestID() Middleware              { return chimw.RequestID }
func RealIP() Middleware                 { return chimw.RealIP }
func NoCache() Middleware                { return chimw.NoCache }
func StripSlashes() Middleware           { return chimw.StripSlashes }
func Timeout(d time.Duration) Middleware { return chimw.Timeout(d) }
func Heartbeat(path string) Middleware   { return chimw.Heartbeat(path) }
func Compress(level int) Middleware      { return chimw.Compress(level) }

// CORSOptions is the subset of cors.Options the API sets
type CORSOptions struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	AllowCredentials bool
	MaxAge           int
}

var (
	defaultMethods = []string{http.MethodGet, http.MethodPost, http.MethodOptions}
	defaultHeaders = []string{"Accept", "Content-Type", chimw.RequestIDHeader}
)

// CORS lets browser forms call the matcher; the request id header is exposed
// so a client can quote it back.
func CORS(o CORSOptions) Middleware {
	if len(o.AllowedMethods) == 0 {
		o.AllowedMethods = defaultMethods
	}
	if len(o.AllowedHeaders) == 0 {
		o.AllowedHeaders = defaultHeaders
	}
	return cors.Handler(cors.Options{
		AllowedOrigins:   o.AllowedOrigins,
		AllowedMethods:   o.AllowedMethods,
		AllowedHeaders:   o.AllowedHeaders,
		ExposedHeaders:   []string{chimw.RequestIDHeader},
		AllowCredentials: o.AllowCredentials,
		MaxAge:           o.MaxAge,
	})
}

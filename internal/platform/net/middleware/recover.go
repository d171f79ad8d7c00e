package middleware

import (
	"encoding/json"
	"net/http"
	"runtime/debug"

	chimw "github.com/go-chi/chi/v5/middleware"

	perr "lookalike/internal/platform/errors"
	"lookalike/internal/platform/logger"
	pnet "lookalike/internal/platform/net"
)

// RecoverJSON turns a handler panic into a 500 error envelope and logs
// the panic value with its stack. http.ErrAbortHandler is re-raised.
func RecoverJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			v := recover()
			if v == nil {
				return
			}
			if v == http.ErrAbortHandler {
				panic(v)
			}

			id := pnet.RequestID(r.Context())
			logger.C(r.Context()).Error().
				Str("request_id", id).
				Interface("panic", v).
				Bytes("stack", debug.Stack()).
				Msg("panic recovered")

			status, body := pnet.Error(perr.PanicErrf("panic recovered"), id)
			if id != "" {
				w.Header().Set(chimw.RequestIDHeader, id)
			}
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			w.WriteHeader(status)
			_ = json.NewEncoder(w).Encode(body)
		}()
		next.ServeHTTP(w, r)
	})
}

package middleware

import (
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"lookalike/internal/platform/logger"
	pnet "lookalike/internal/platform/net"
)

// AccessLogOptions tunes AccessLog
type AccessLogOptions struct {
	// Slow promotes requests at or above this duration to warn; zero turns it off
	Slow time.Duration
}

// AccessLog puts the request id into the logger context for everything
// downstream, then writes one line per request once it completes.
// 5xx log at error. Mount it after RequestID.
func AccessLog(opt AccessLogOptions) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := logger.WithRequest(r.Context(), pnet.RequestID(r.Context()), "")
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r.WithContext(ctx))

			took := time.Since(start)
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			line(logger.C(ctx), status, took, opt.Slow).
				Int("status", status).
				Dur("elapsed", took).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("bytes", ww.BytesWritten()).
				Msg("request done")
		})
	}
}

func line(log *logger.Logger, status int, took, slow time.Duration) *zerolog.Event {
	switch {
	case status >= http.StatusInternalServerError:
		return log.Error()
	case slow > 0 && took >= slow:
		return log.Warn()
	}
	return log.Info()
}

package pg

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"lookalike/internal/platform/logger"
)

// QueryEvent describes one finished statement
type QueryEvent struct {
	SQL       string
	Args      any
	ElapsedUS int64
	Err       error
	Slow      bool
}

type QueryTracer interface {
	OnQuery(ctx context.Context, ev QueryEvent)
}

// Tracer logs every statement through root, regardless of the process-wide level.
// Slow or failed statements log at warn.
func Tracer(root logger.Logger) QueryTracer {
	return logTracer{log: root.Level(zerolog.DebugLevel).With().Str("component", "pg").Logger()}
}

type logTracer struct{ log logger.Logger }

func (l logTracer) OnQuery(ctx context.Context, ev QueryEvent) {
	evt := l.log.Info()
	if ev.Slow || ev.Err != nil {
		evt = l.log.Warn()
	}
	if reqID := logger.RequestIDFrom(ctx); reqID != "" {
		evt = evt.Str("request_id", reqID)
	}
	evt.Float64("elapsed_ms", float64(ev.ElapsedUS)/1000).
		Bool("slow", ev.Slow).
		Str("sql", oneLine(ev.SQL)).
		Interface("args", ev.Args).
		Err(ev.Err).
		Msg("pg query")
}

// oneLine collapses all whitespace runs to single spaces and trims the ends
func oneLine(s string) string { return strings.Join(strings.Fields(s), " ") }

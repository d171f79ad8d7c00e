package logger

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"

	kit "lookalike/internal/platform/testkit"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"trace":       zerolog.TraceLevel,
		"INFO":        zerolog.InfoLevel,
		" warning ":   zerolog.WarnLevel,
		"error":       zerolog.ErrorLevel,
		"":            zerolog.DebugLevel,
		"nonsense":    zerolog.DebugLevel,
	}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Fatalf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

// Init only takes effect once per process, so every root logger assertion lives here
func TestInit_ContextFields(t *testing.T) {
	var buf bytes.Buffer
	Init(Options{
		Level:        "info",
		Format:       "console",
		Service:      "lookalike-test",
		Writer:       &buf,
		SampleEvery:  2,
		StaticFields: map[string]string{"build": "test"},
	})

	always := func(l *Logger) *Logger {
		s := l.Sample(&zerolog.BasicSampler{N: 1})
		return &s
	}

	always(Get()).Info().Msg("root-msg")
	always(Named("matcher")).Info().Msg("named-msg")
	ctx := WithRequest(context.Background(), "req-123", "sess-abc")
	always(C(ctx)).Info().Msg("ctx-msg")
	always(C(context.Background())).Debug().Msg("below-level")

	out := buf.String()
	for _, want := range []string{"root-msg", "named-msg", "matcher", "ctx-msg", "req-123", "sess-abc", "session_id=", "build=", "lookalike-test"} {
		kit.MustContain(t, out, want)
	}
	if bytes.Contains(buf.Bytes(), []byte("below-level")) {
		t.Fatal("debug line leaked past info level")
	}

	// a second Init is ignored
	Init(Options{Writer: &bytes.Buffer{}, Level: "error"})
	if Get().GetLevel() != zerolog.InfoLevel {
		t.Fatalf("root level changed to %v", Get().GetLevel())
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("LOG_FORMAT", "JSON")
	t.Setenv("LOG_COMPONENT", "cli")
	t.Setenv("LOG_CALLER", "yes")
	t.Setenv("LOG_SAMPLE_EVERY", "5")

	opt := FromEnv()
	if opt.Level != "warn" || opt.Format != "json" || opt.Service != "lookalike" || opt.Component != "cli" {
		t.Fatalf("FromEnv = %+v", opt)
	}
	if !opt.WithCaller || opt.SampleEvery != 5 {
		t.Fatalf("FromEnv caller/sample = %+v", opt)
	}
}

func TestRequestIDFrom(t *testing.T) {
	if got := RequestIDFrom(context.Background()); got != "" {
		t.Fatalf("empty ctx = %q", got)
	}
	if got := RequestIDFrom(WithRequest(context.Background(), "req-9", "")); got != "req-9" {
		t.Fatalf("RequestIDFrom = %q", got)
	}
}

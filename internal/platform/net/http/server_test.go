package http

import (
	"context"
	"io"
	"net"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"lookalike/internal/platform/config"
)

func TestAdaptChi_RoutesAndSubrouters(t *testing.T) {
	srv := NewServer(config.New().Prefix("LOOKALIKE_TEST_"))
	if srv.Addr() != ":4000" {
		t.Fatalf("addr = %q", srv.Addr())
	}
	r := srv.Router()
	r.Route("/customers", func(c Router) {
		c.Get("/{id}", func(w stdhttp.ResponseWriter, _ *stdhttp.Request) { _, _ = io.WriteString(w, "one") })
		c.Post("/duplicates/check", func(w stdhttp.ResponseWriter, _ *stdhttp.Request) { w.WriteHeader(stdhttp.StatusAccepted) })
	})

	cases := []struct {
		method, path string
		want         int
	}{
		{stdhttp.MethodGet, "/customers/abc", stdhttp.StatusOK},
		{stdhttp.MethodPost, "/customers/duplicates/check", stdhttp.StatusAccepted},
		{stdhttp.MethodGet, "/customers/duplicates/check", stdhttp.StatusMethodNotAllowed},
		{stdhttp.MethodGet, "/nope", stdhttp.StatusNotFound},
	}
	for _, tc := range cases {
		rr := httptest.NewRecorder()
		r.Mux().ServeHTTP(rr, httptest.NewRequest(tc.method, tc.path, nil))
		if rr.Code != tc.want {
			t.Fatalf("%s %s = %d want %d", tc.method, tc.path, rr.Code, tc.want)
		}
	}
}

func TestMountProfiler(t *testing.T) {
	for _, enabled := range []bool{true, false} {
		srv := NewServer(config.New())
		MountProfiler(srv.Router(), "/debug", enabled)

		rr := httptest.NewRecorder()
		srv.Router().Mux().ServeHTTP(rr, httptest.NewRequest(stdhttp.MethodGet, "/debug/pprof/", nil))
		if enabled && rr.Code != stdhttp.StatusOK {
			t.Fatalf("enabled profiler = %d", rr.Code)
		}
		if !enabled && rr.Code != stdhttp.StatusNotFound {
			t.Fatalf("disabled profiler = %d", rr.Code)
		}
	}
}

func TestServer_ServeStopsOnCancel(t *testing.T) {
	srv := NewServer(config.New())
	srv.Router().Get("/ping", func(w stdhttp.ResponseWriter, _ *stdhttp.Request) { _, _ = io.WriteString(w, "pong") })

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.serve(ctx, ln) }()

	resp, err := stdhttp.Get("http://" + ln.Addr().String() + "/ping")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if string(body) != "pong" {
		t.Fatalf("body = %q", body)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("serve returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestServer_RunListenError(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()

	t.Setenv("LOOKALIKE_BUSY_PORT", ln.Addr().String())
	srv := NewServer(config.New().Prefix("LOOKALIKE_BUSY_"))
	if err := srv.Run(context.Background()); err == nil {
		t.Fatal("expected listen error on a bound port")
	}
}

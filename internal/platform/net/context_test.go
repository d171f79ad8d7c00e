package net_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	chimw "github.com/go-chi/chi/v5/middleware"

	pnet "lookalike/internal/platform/net"
)

func TestWithRequestID(t *testing.T) {
	base := context.Background()

	if ctx := pnet.WithRequestID(base, ""); ctx != base {
		t.Fatal("empty id should leave ctx untouched")
	}
	if got := pnet.RequestID(base); got != "" {
		t.Fatalf("RequestID(empty ctx) = %q", got)
	}
	if got := pnet.RequestID(pnet.WithRequestID(base, "req-123")); got != "req-123" {
		t.Fatalf("RequestID = %q, want req-123", got)
	}
}

func TestRequestID_FromChiMiddleware(t *testing.T) {
	var seen string
	h := chimw.RequestID(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = pnet.RequestID(r.Context())
	}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(chimw.RequestIDHeader, "upstream-7")
	h.ServeHTTP(httptest.NewRecorder(), req)

	if seen != "upstream-7" {
		t.Fatalf("RequestID = %q, want upstream-7", seen)
	}
}

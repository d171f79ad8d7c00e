package swaggerkit

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	phttp "lookalike/internal/platform/net/http"
	"lookalike/internal/platform/testkit"
)

func TestDecorate(t *testing.T) {
	spec := map[string]any{
		"swagger": "2.0",
		"paths": map[string]any{
			"/customers/merge": map[string]any{
				"post": map[string]any{"responses": map[string]any{"400": "custom"}},
			},
		},
	}
	decorate(spec, "/api/v1")

	if spec["openapi"] != "3.0.3" || spec["swagger"] != nil {
		t.Fatalf("version = %v / %v", spec["openapi"], spec["swagger"])
	}
	servers := spec["servers"].([]any)
	if servers[0].(map[string]any)["url"] != "/api/v1" {
		t.Fatalf("servers = %v", servers)
	}
	if _, ok := spec["components"].(map[string]any)["schemas"].(map[string]any)["ErrorResponse"]; !ok {
		t.Fatal("error schema missing")
	}
	resps := spec["paths"].(map[string]any)["/customers/merge"].(map[string]any)["post"].(map[string]any)["responses"].(map[string]any)
	if resps["400"] != "custom" || resps["500"] == nil {
		t.Fatalf("responses = %v", resps)
	}
}

func TestMount(t *testing.T) {
	mux := chi.NewRouter()
	Mount(phttp.AdaptChi(mux), true)

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/docs/doc.json", nil))
	var spec map[string]any
	if rr.Code != http.StatusOK || json.Unmarshal(rr.Body.Bytes(), &spec) != nil || spec["openapi"] != "3.0.3" {
		t.Fatalf("doc.json = %d %s", rr.Code, rr.Body.String())
	}

	testkit.Serial(t)
	testkit.Swap(t, &docReader, func() string { return "{" })
	rr = httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/docs/doc.json", nil))
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("bad spec = %d", rr.Code)
	}

	off := chi.NewRouter()
	Mount(phttp.AdaptChi(off), false)
	rr = httptest.NewRecorder()
	off.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/docs/doc.json", nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("disabled = %d", rr.Code)
	}
}

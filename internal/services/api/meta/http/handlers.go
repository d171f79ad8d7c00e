// Package http serves /meta: liveness, readiness against the stores, build info
// and the matching rules in force.
package http

import (
	"context"
	"net/http"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"lookalike/internal/core/cluster"
	"lookalike/internal/core/match"
	"lookalike/internal/core/version"
	"lookalike/internal/modkit/httpkit"
)

// Pinger is a dependency /meta/ready can probe
type Pinger interface {
	Ping(context.Context) error
}

type Deps struct {
	ServiceName string
	StartedAt   time.Time
	// Deps are probed by /meta/ready; a nil entry is reported as skipped
	Deps map[string]Pinger

	MaxMatches int
	// Threshold is the configured bulk name threshold; zero means the default
	Threshold float64
}

type handlers struct{ d Deps }

func Register(r httpkit.Router, d Deps) {
	h := handlers{d: d}
	httpkit.Get(r, "/health", h.health)
	httpkit.Get(r, "/ready", h.ready)
	httpkit.Get(r, "/version", h.version)
	httpkit.Get(r, "/matching", h.matching)
}

// HealthResponse is the liveness payload
type HealthResponse struct {
	OK      bool   `json:"ok"      example:"true"`
	Service string `json:"service" example:"lookalike-api"`
	Started string `json:"started" example:"2026-01-12T09:00:00Z"`
	Uptime  int64  `json:"uptime"  example:"300"`
}

// ReadyCheck is one probed dependency; Status is ok, fail or skipped
type ReadyCheck struct {
	Name   string `json:"name"   example:"pg"`
	Status string `json:"status" example:"ok"`
	Error  string `json:"error,omitempty" example:"dial tcp 127.0.0.1:5432: connect: connection refused"`
}

// ReadyResponse is ok when every dependency answered, degraded when some were
// skipped and fail when any ping failed
type ReadyResponse struct {
	Status string       `json:"status" example:"ok"`
	Checks []ReadyCheck `json:"checks"`
}

// ReasonInfo is one reason tag with its stable code and label
type ReasonInfo struct {
	Code  string `json:"code"  example:"exact_phone"`
	Label string `json:"label" example:"Exact phone number match"`
}

// MatchingResponse reports the matching rules in force
type MatchingResponse struct {
	Reasons       []ReasonInfo      `json:"reasons"`
	MaxMatches    int               `json:"max_matches"    example:"5"`
	NameThreshold float64           `json:"name_threshold" example:"0.7"`
	BulkThreshold float64           `json:"bulk_threshold" example:"0.7"`
	Build         version.BuildInfo `json:"build"`
}

// @Summary Liveness and uptime
// @Tags Meta
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /meta/health [get]
func (h handlers) health(_ *http.Request) (any, error) {
	return HealthResponse{
		OK:      true,
		Service: h.d.ServiceName,
		Started: h.d.StartedAt.UTC().Format(time.RFC3339),
		Uptime:  int64(time.Since(h.d.StartedAt) / time.Second),
	}, nil
}

// @Summary Readiness probe with dependency checks
// @Tags Meta
// @Produce json
// @Success 200 {object} ReadyResponse
// @Failure 503 {object} ReadyResponse
// @Router /meta/ready [get]
func (h handlers) ready(r *http.Request) (any, error) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	names := make([]string, 0, len(h.d.Deps))
	for n := range h.d.Deps {
		names = append(names, n)
	}
	sort.Strings(names)

	checks := make([]ReadyCheck, len(names))
	var g errgroup.Group
	for i, n := range names {
		i, n := i, n
		g.Go(func() error {
			checks[i] = probe(ctx, n, h.d.Deps[n])
			return nil
		})
	}
	_ = g.Wait()

	out := ReadyResponse{Status: "ok", Checks: checks}
	for _, c := range checks {
		switch {
		case c.Status == "fail":
			out.Status = "fail"
		case c.Status == "skipped" && out.Status == "ok":
			out.Status = "degraded"
		}
	}
	if out.Status == "fail" {
		return httpkit.Response{Status: http.StatusServiceUnavailable, Body: out}, nil
	}
	return out, nil
}

func probe(ctx context.Context, name string, p Pinger) ReadyCheck {
	if p == nil {
		return ReadyCheck{Name: name, Status: "skipped"}
	}
	if err := p.Ping(ctx); err != nil {
		return ReadyCheck{Name: name, Status: "fail", Error: err.Error()}
	}
	return ReadyCheck{Name: name, Status: "ok"}
}

// @Summary Build and version info
// @Tags Meta
// @Produce json
// @Success 200 {object} version.BuildInfo
// @Router /meta/version [get]
func (h handlers) version(_ *http.Request) (any, error) {
	return version.Info(), nil
}

// @Summary Reason tags and thresholds used by the matchers
// @Tags Meta
// @Produce json
// @Success 200 {object} MatchingResponse
// @Router /meta/matching [get]
func (h handlers) matching(_ *http.Request) (any, error) {
	all := match.AllReasons()
	reasons := make([]ReasonInfo, 0, len(all))
	for _, r := range all {
		reasons = append(reasons, ReasonInfo{Code: r.Code(), Label: r.String()})
	}
	bulk := h.d.Threshold
	if bulk <= 0 {
		bulk = cluster.DefaultThreshold
	}
	return MatchingResponse{
		Reasons:       reasons,
		MaxMatches:    h.d.MaxMatches,
		NameThreshold: match.NamePartsThreshold,
		BulkThreshold: bulk,
		Build:         version.Info(),
	}, nil
}

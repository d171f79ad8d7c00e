// Package http provides http transport for dedupe
package http

import (
	stdhttp "net/http"
	"strconv"

	"lookalike/internal/modkit/httpkit"
	perr "lookalike/internal/platform/errors"
	"lookalike/internal/platform/logger"
	pnet "lookalike/internal/platform/net"
	"lookalike/internal/services/dedupe/domain"
	svc "lookalike/internal/services/dedupe/service"
)

// Register mounts dedupe endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	httpkit.PostJSON[domain.CheckInput](r, "/duplicates/check", h.check)
	httpkit.PostJSON[domain.AnalyzeInput](r, "/duplicates/analyze", h.analyze)
	httpkit.Get(r, "/duplicates/runs", h.runs)
	httpkit.PostJSON[domain.MergeInput](r, "/merge", h.merge)
}

type handlers struct{ svc svc.Service }

// swagger:route POST /customers/duplicates/check Dedupe dedupeCheck
// @Summary Likely duplicates of a record being edited
// @Description A failed lookup is reported as status "unknown" with no matches so that data entry is never blocked
// @Tags Dedupe
// @Accept json
// @Produce json
// @Param payload body domain.CheckInput true "Record being edited"
// @Success 200 {object} domain.CheckResult "ok"
// @Router /customers/duplicates/check [post]
func (h *handlers) check(r *stdhttp.Request, in domain.CheckInput) (any, error) {
	ctx := logger.WithRequest(r.Context(), pnet.RequestID(r.Context()), in.SessionID)
	res, err := h.svc.Check(ctx, in)
	if err != nil {
		logger.C(ctx).Warn().Err(err).Msg("dedupe: check failed")
		return domain.CheckResult{Status: domain.StatusUnknown, Matches: []domain.Match{}}, nil
	}
	return res, nil
}

// swagger:route POST /customers/duplicates/analyze Dedupe dedupeAnalyze
// @Summary Cluster every live customer into duplicate groups
// @Tags Dedupe
// @Accept json
// @Produce json
// @Param payload body domain.AnalyzeInput true "Filters, {} for all"
// @Success 200 {object} domain.AnalyzeResult "ok"
// @Failure 409 {object} httpkit.Envelope "another analysis is running"
// @Failure 503 {object} httpkit.Envelope "store unavailable"
// @Router /customers/duplicates/analyze [post]
func (h *handlers) analyze(r *stdhttp.Request, in domain.AnalyzeInput) (any, error) {
	return h.svc.Analyze(r.Context(), in)
}

// swagger:route GET /customers/duplicates/runs Dedupe dedupeRuns
// @Summary Recent bulk analysis runs
// @Tags Dedupe
// @Produce json
// @Param limit query int false "max rows (1-500)"
// @Success 200 {array} domain.Run "ok"
// @Failure 422 {object} httpkit.Envelope "bad limit"
// @Router /customers/duplicates/runs [get]
func (h *handlers) runs(r *stdhttp.Request) (any, error) {
	limit := 50
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 || n > 500 {
			return nil, perr.InvalidArgf("limit must be between 1 and 500")
		}
		limit = n
	}
	return h.svc.Runs(r.Context(), limit)
}

// swagger:route POST /customers/merge Dedupe dedupeMerge
// @Summary Merge duplicate customers into a primary record
// @Tags Dedupe
// @Accept json
// @Produce json
// @Param payload body domain.MergeInput true "Primary and duplicates"
// @Success 200 {object} domain.MergeResult "ok"
// @Failure 400 {object} httpkit.Envelope "invalid body"
// @Failure 422 {object} httpkit.Envelope "primary listed as a duplicate"
// @Failure 404 {object} httpkit.Envelope "no live duplicates"
// @Router /customers/merge [post]
func (h *handlers) merge(r *stdhttp.Request, in domain.MergeInput) (any, error) {
	return h.svc.Merge(r.Context(), in)
}

package api

import (
	"net/http"
	"time"

	"github.com/ignite/creative-engine/internal/domain"
	"github.com/ignite/creative-engine/internal/pkg/httputil"
	"github.com/ignite/creative-engine/internal/pkg/logger"
)

// RunAnalysis fetches the current creative set from the ingest source,
// analyzes the batch and returns the results. The report is archived when
// a report cache is configured.
//
//	POST /api/analysis/run
func (h *Handlers) RunAnalysis(w http.ResponseWriter, r *http.Request) {
	if h.Source == nil {
		httputil.Error(w, http.StatusServiceUnavailable, "no ingest source configured")
		return
	}

	records, err := h.Source.Fetch(r.Context())
	if err != nil {
		logger.Error("analysis run fetch failed", "error", err)
		httputil.Error(w, http.StatusBadGateway, "failed to fetch creatives from source")
		return
	}

	results := h.Analyzer.AnalyzeBatch(r.Context(), records)

	if h.Reports != nil {
		if err := h.Reports.Save(r.Context(), h.AccountID, time.Now(), results); err != nil {
			logger.Warn("report archive failed", "error", err)
		}
	}

	httputil.OK(w, map[string]any{
		"analyzed": len(results),
		"results":  results,
	})
}

// AnalyzeCreative analyzes a single creative supplied in the request body.
// Peers for the comparison may be supplied alongside; without them the
// peer comparison is empty.
//
//	POST /api/analysis/creative
func (h *Handlers) AnalyzeCreative(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Creative domain.CreativeRecord   `json:"creative"`
		Peers    []domain.CreativeRecord `json:"peers"`
	}
	if !httputil.Decode(w, r, &req) {
		return
	}
	if req.Creative.ID == "" {
		httputil.BadRequest(w, "creative.id is required")
		return
	}

	all := append(req.Peers, req.Creative)
	result, err := h.Analyzer.AnalyzeOne(r.Context(), req.Creative, all)
	if err != nil {
		logger.Error("creative analysis failed", "creative_id", req.Creative.ID, "error", err)
		httputil.InternalError(w, err)
		return
	}
	httputil.OK(w, result)
}

// GetReport returns the archived batch report for a given date
// (YYYY-MM-DD, default today).
//
//	GET /api/analysis/report?date=2026-08-30
func (h *Handlers) GetReport(w http.ResponseWriter, r *http.Request) {
	if h.Reports == nil {
		httputil.Error(w, http.StatusServiceUnavailable, "no report cache configured")
		return
	}

	day := time.Now()
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			httputil.BadRequest(w, "date must be YYYY-MM-DD")
			return
		}
		day = parsed
	}

	report, err := h.Reports.Load(r.Context(), h.AccountID, day)
	if err != nil {
		httputil.InternalError(w, err)
		return
	}
	if report == nil {
		httputil.NotFound(w, "no report for that date")
		return
	}
	httputil.OK(w, report)
}

package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ignite/creative-engine/internal/domain"
	"github.com/ignite/creative-engine/internal/lifecycle"
	"github.com/ignite/creative-engine/internal/pkg/httputil"
	"github.com/ignite/creative-engine/internal/pkg/logger"
)

// GetCreativeHistory returns a creative with its action log and recent
// metric snapshots.
//
//	GET /api/creatives/{id}/history
func (h *Handlers) GetCreativeHistory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	history, err := h.Lifecycle.CreativeHistory(r.Context(), id)
	if err != nil {
		if errors.Is(err, lifecycle.ErrCreativeNotFound) {
			httputil.NotFound(w, "creative not found")
			return
		}
		httputil.InternalError(w, err)
		return
	}
	httputil.OK(w, history)
}

// LogCreativeAction records a manual lifecycle decision against a creative.
//
//	POST /api/creatives/{id}/actions
func (h *Handlers) LogCreativeAction(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req struct {
		Type   domain.ActionType     `json:"type"`
		Reason string                `json:"reason"`
		Detail string                `json:"detail"`
		Source domain.DecisionSource `json:"source"`
		Inputs map[string]any        `json:"inputs"`
	}
	if !httputil.Decode(w, r, &req) {
		return
	}

	switch req.Type {
	case domain.ActionTested, domain.ActionScaled, domain.ActionPaused:
	default:
		httputil.BadRequest(w, "type must be tested, scaled or paused")
		return
	}
	if req.Reason == "" {
		httputil.BadRequest(w, "reason is required")
		return
	}
	source := req.Source
	if source == "" {
		source = domain.SourceHuman
	}

	actionID, err := h.Lifecycle.LogAction(r.Context(), lifecycle.ActionInput{
		CreativeID: id,
		Type:       req.Type,
		Reason:     req.Reason,
		Detail:     req.Detail,
		Source:     source,
		Inputs:     req.Inputs,
	})
	if err != nil {
		logger.Error("log action failed", "creative_id", id, "error", err)
		httputil.InternalError(w, err)
		return
	}
	httputil.Created(w, map[string]string{"id": actionID})
}

// GetRecentActions returns the global action feed, most recent first.
//
//	GET /api/lifecycle/actions?limit=20
func (h *Handlers) GetRecentActions(w http.ResponseWriter, r *http.Request) {
	limit := httputil.QueryInt(r, "limit", 20)

	feed, err := h.Lifecycle.RecentActions(r.Context(), limit)
	if err != nil {
		httputil.InternalError(w, err)
		return
	}
	httputil.OK(w, map[string]any{"actions": feed})
}

// GetOutcomes returns the outcome analysis from the most recent worker run,
// or computes one on demand when no worker is attached.
//
//	GET /api/lifecycle/outcomes?lookback_days=30
func (h *Handlers) GetOutcomes(w http.ResponseWriter, r *http.Request) {
	if h.Worker != nil {
		httputil.OK(w, map[string]any{"outcomes": h.Worker.LastOutcomes()})
		return
	}

	lookback := httputil.QueryInt(r, "lookback_days", 30)
	outcomes, err := h.Lifecycle.AnalyzeOutcomes(r.Context(), lookback)
	if err != nil {
		httputil.InternalError(w, err)
		return
	}
	httputil.OK(w, map[string]any{"outcomes": outcomes})
}

// GetLearningInsights returns mined decision patterns from the most recent
// worker run, or mines them on demand when no worker is attached.
//
//	GET /api/lifecycle/insights
func (h *Handlers) GetLearningInsights(w http.ResponseWriter, r *http.Request) {
	if h.Worker != nil {
		httputil.OK(w, map[string]any{"insights": h.Worker.LastInsights()})
		return
	}

	insights, err := h.Lifecycle.GenerateLearningInsights(r.Context())
	if err != nil {
		httputil.InternalError(w, err)
		return
	}
	httputil.OK(w, map[string]any{"insights": insights})
}

// GetActionRecommendations returns rule-based lifecycle proposals for every
// active creative.
//
//	GET /api/lifecycle/recommendations
func (h *Handlers) GetActionRecommendations(w http.ResponseWriter, r *http.Request) {
	recs, err := h.Lifecycle.GenerateActionRecommendations(r.Context(), h.AccountID)
	if err != nil {
		httputil.InternalError(w, err)
		return
	}
	httputil.OK(w, map[string]any{"recommendations": recs})
}

// GetLearningConfig returns the account's thresholds, creating defaults on
// first read.
//
//	GET /api/lifecycle/config
func (h *Handlers) GetLearningConfig(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.Lifecycle.GetLearningConfig(r.Context(), h.AccountID)
	if err != nil {
		httputil.InternalError(w, err)
		return
	}
	httputil.OK(w, cfg)
}

// UpdateLearningConfig applies a partial update to the account's thresholds.
//
//	PUT /api/lifecycle/config
func (h *Handlers) UpdateLearningConfig(w http.ResponseWriter, r *http.Request) {
	var req lifecycle.ConfigUpdate
	if !httputil.Decode(w, r, &req) {
		return
	}

	if req.TargetCPA != nil && *req.TargetCPA <= 0 {
		httputil.BadRequest(w, "target_cpa must be positive")
		return
	}
	if req.TargetROAS != nil && *req.TargetROAS <= 0 {
		httputil.BadRequest(w, "target_roas must be positive")
		return
	}
	if req.MinSpend != nil && *req.MinSpend < 0 {
		httputil.BadRequest(w, "min_spend must not be negative")
		return
	}

	cfg, err := h.Lifecycle.UpdateLearningConfig(r.Context(), h.AccountID, req)
	if err != nil {
		httputil.InternalError(w, err)
		return
	}
	httputil.OK(w, cfg)
}

package api

import (
	"net/http"

	"github.com/ignite/creative-engine/internal/pkg/httputil"
)

// GetCurrentSpecs returns the active platform policy snapshot.
//
//	GET /api/specs/current
func (h *Handlers) GetCurrentSpecs(w http.ResponseWriter, r *http.Request) {
	httputil.OK(w, h.Specs.Current(r.Context()))
}

// ValidateHeadline checks a headline against the current policy.
//
//	POST /api/specs/validate/headline
func (h *Handlers) ValidateHeadline(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
	}
	if !httputil.Decode(w, r, &req) {
		return
	}
	if req.Text == "" {
		httputil.BadRequest(w, "text is required")
		return
	}
	httputil.OK(w, h.Specs.ValidateHeadline(r.Context(), req.Text))
}

// ValidateImage checks a hosted image against the current policy. The
// image is probed with a HEAD request; unreachable images fail validation.
//
//	POST /api/specs/validate/image
func (h *Handlers) ValidateImage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		URL string `json:"url"`
	}
	if !httputil.Decode(w, r, &req) {
		return
	}
	if req.URL == "" {
		httputil.BadRequest(w, "url is required")
		return
	}
	httputil.OK(w, h.Specs.ValidateImageURL(r.Context(), req.URL))
}

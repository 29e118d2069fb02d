package lifecycle

import (
	"context"
	"errors"
	"time"

	"github.com/ignite/creative-engine/internal/domain"
)

// Outcome classification thresholds (relative deltas).
const (
	scaleImprovedCTRDelta  = 0.10
	scaleImprovedROASDelta = 0.15
	scaleDeclinedCTRDelta  = -0.15
	scaleDeclinedROASDelta = -0.25

	pausePreCTRFloor  = 0.5 // percent
	pausePreCPACeil   = 30.0
	improvedScaleConf = 80
	declinedScaleConf = 75
	improvedPauseConf = 70
	neutralConf       = 50
)

// AnalyzeOutcomes classifies every action decided within the lookback
// window by comparing the metric snapshot immediately before the decision
// with the one immediately after. Actions missing either snapshot are
// skipped entirely. "tested" actions are returned unclassified by design:
// no outcome rule is defined for them yet, so they are skipped as well.
//
// This scans the action and snapshot tables without pagination; run it
// from the background worker, never inside a request path.
func (s *Service) AnalyzeOutcomes(ctx context.Context, lookbackDays int) ([]domain.OutcomeAnalysis, error) {
	if lookbackDays <= 0 {
		lookbackDays = 30
	}
	since := time.Now().UTC().AddDate(0, 0, -lookbackDays)

	actions, err := s.actions.DecidedSince(ctx, since)
	if err != nil {
		return nil, err
	}

	var out []domain.OutcomeAnalysis
	for _, a := range actions {
		if a.Type == domain.ActionTested {
			continue
		}

		pre, err := s.snapshots.LastBefore(ctx, a.CreativeID, a.DecidedAt)
		if errors.Is(err, ErrSnapshotNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		post, err := s.snapshots.FirstAfter(ctx, a.CreativeID, a.DecidedAt)
		if errors.Is(err, ErrSnapshotNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}

		oa := domain.OutcomeAnalysis{
			ActionID:   a.ID,
			CreativeID: a.CreativeID,
			ActionType: a.Type,
			PrePerformance: domain.PerformanceSnapshot{
				CapturedAt: pre.CapturedAt, CTR: pre.CTR, CPA: pre.CPA, ROAS: pre.ROAS,
			},
			PostPerformance: domain.PerformanceSnapshot{
				CapturedAt: post.CapturedAt, CTR: post.CTR, CPA: post.CPA, ROAS: post.ROAS,
			},
		}

		switch a.Type {
		case domain.ActionScaled:
			oa.Outcome, oa.OutcomeConfidence = classifyScale(pre, post)
		case domain.ActionPaused:
			oa.Outcome, oa.OutcomeConfidence = classifyPause(pre)
		}
		out = append(out, oa)
	}
	return out, nil
}

func classifyScale(pre, post *domain.MetricSnapshot) (string, int) {
	ctrDelta, ctrOK := relativeDelta(pre.CTR, post.CTR)
	roasDelta, roasOK := 0.0, false
	if pre.ROAS != nil && post.ROAS != nil {
		roasDelta, roasOK = relativeDelta(*pre.ROAS, *post.ROAS)
	}

	if (ctrOK && ctrDelta > scaleImprovedCTRDelta) || (roasOK && roasDelta > scaleImprovedROASDelta) {
		return "improved", improvedScaleConf
	}
	if (ctrOK && ctrDelta < scaleDeclinedCTRDelta) || (roasOK && roasDelta < scaleDeclinedROASDelta) {
		return "declined", declinedScaleConf
	}
	return "neutral", neutralConf
}

// classifyPause judges the pause retroactively correct when the pre-action
// performance was already below the floor.
func classifyPause(pre *domain.MetricSnapshot) (string, int) {
	if pre.CTR < pausePreCTRFloor || (pre.CPA != nil && *pre.CPA > pausePreCPACeil) {
		return "improved", improvedPauseConf
	}
	return "neutral", neutralConf
}

func relativeDelta(pre, post float64) (float64, bool) {
	if pre == 0 {
		return 0, false
	}
	return (post - pre) / pre, true
}

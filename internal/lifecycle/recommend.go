package lifecycle

import (
	"context"
	"sort"

	"github.com/ignite/creative-engine/internal/domain"
)

// Rule thresholds for automated action recommendations. All rates are
// percentage points (2.0 means 2%).
const (
	cpaPauseMult    = 1.5
	cpaSeverePause  = 2.0
	roasPauseMult   = 0.7
	ctrPauseFloor   = 0.5
	ctrSeverePause  = 0.3
	ctrScaleBonus   = 2.0
	testImpressions = 1000

	scaleAutoThreshold = 90
	pauseAutoThreshold = 85
)

// GenerateActionRecommendations evaluates every active creative against the
// account's learning config and returns recommended actions sorted by
// confidence, highest first. Rules fire in scale, pause, test order; the
// first match wins.
func (s *Service) GenerateActionRecommendations(ctx context.Context, accountID string) ([]domain.ActionRecommendation, error) {
	cfg, err := s.GetLearningConfig(ctx, accountID)
	if err != nil {
		return nil, err
	}
	creatives, err := s.creatives.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	var recs []domain.ActionRecommendation
	for _, c := range creatives {
		if c.Status != domain.CreativeActive {
			continue
		}
		if rec, ok := s.evaluateCreative(c, cfg); ok {
			recs = append(recs, rec)
		}
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Confidence > recs[j].Confidence
	})
	return recs, nil
}

func (s *Service) evaluateCreative(c domain.Creative, cfg *domain.LearningConfig) (domain.ActionRecommendation, bool) {
	metrics := domain.RecMetrics{
		Spend:       c.Spend,
		Impressions: c.Impressions,
		Clicks:      c.Clicks,
		CTR:         c.CTR(),
		Conversions: c.Conversions,
		CPA:         c.CPA,
		ROAS:        c.ROAS,
	}

	if rec, ok := s.scaleRule(c, cfg, metrics); ok {
		return rec, true
	}
	if rec, ok := pauseRule(c, cfg, metrics); ok {
		return rec, true
	}
	if rec, ok := testRule(c, cfg, metrics); ok {
		return rec, true
	}
	return domain.ActionRecommendation{}, false
}

func (s *Service) scaleRule(c domain.Creative, cfg *domain.LearningConfig, m domain.RecMetrics) (domain.ActionRecommendation, bool) {
	if c.Spend < cfg.MinSpend || c.Conversions < cfg.MinConversions {
		return domain.ActionRecommendation{}, false
	}
	cpaOK := c.CPA != nil && *c.CPA <= cfg.TargetCPA
	roasOK := c.ROAS != nil && *c.ROAS >= cfg.TargetROAS
	if !cpaOK && !roasOK {
		return domain.ActionRecommendation{}, false
	}

	conf := 85
	reason := "meets efficiency targets with sufficient volume"
	f := s.featuresOf(c)
	if f.Image.HasFace {
		conf += 5
	}
	if f.Headline.HasNumerals {
		conf += 5
	}
	if m.CTR > ctrScaleBonus {
		conf += 10
	}
	if conf > 100 {
		conf = 100
	}

	return domain.ActionRecommendation{
		CreativeID:  c.ID,
		Action:      domain.ActionScaled,
		Reason:      reason,
		Confidence:  conf,
		AutoExecute: conf >= scaleAutoThreshold,
		Metrics:     m,
	}, true
}

func pauseRule(c domain.Creative, cfg *domain.LearningConfig, m domain.RecMetrics) (domain.ActionRecommendation, bool) {
	if c.Spend < cfg.MinSpend {
		return domain.ActionRecommendation{}, false
	}
	cpaBad := c.CPA != nil && *c.CPA > cpaPauseMult*cfg.TargetCPA
	roasBad := c.ROAS != nil && *c.ROAS < roasPauseMult*cfg.TargetROAS
	ctrBad := m.CTR < ctrPauseFloor
	if !cpaBad && !roasBad && !ctrBad {
		return domain.ActionRecommendation{}, false
	}

	conf := 75
	reason := "underperforming against account targets"
	if c.CPA != nil && *c.CPA > cpaSeverePause*cfg.TargetCPA {
		conf += 15
		reason = "cost per acquisition far above target"
	}
	if m.CTR < ctrSeverePause {
		conf += 10
	}
	if conf > 100 {
		conf = 100
	}

	return domain.ActionRecommendation{
		CreativeID:  c.ID,
		Action:      domain.ActionPaused,
		Reason:      reason,
		Confidence:  conf,
		AutoExecute: conf >= pauseAutoThreshold,
		Metrics:     m,
	}, true
}

func testRule(c domain.Creative, cfg *domain.LearningConfig, m domain.RecMetrics) (domain.ActionRecommendation, bool) {
	if c.Spend >= cfg.MinSpend || c.Impressions <= testImpressions {
		return domain.ActionRecommendation{}, false
	}
	return domain.ActionRecommendation{
		CreativeID:  c.ID,
		Action:      domain.ActionTested,
		Reason:      "has delivery but not enough spend to judge; keep testing",
		Confidence:  60,
		AutoExecute: false,
		Metrics:     m,
	}, true
}

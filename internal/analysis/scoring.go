package analysis

import "github.com/ignite/creative-engine/internal/domain"

// Score combines raw metrics, features, and insights into a single 0-100
// composite. The function is monotonic in each individual positive signal:
// enabling any one positive flag, holding everything else fixed, never
// lowers the score.
func Score(rec domain.CreativeRecord, f domain.FeatureBundle, insights []domain.Insight) int {
	score := 50

	if rec.CTR > 1.0 {
		score += 15
	}
	if rec.CTR > 2.0 {
		score += 10
	}
	if rec.ConversionRate() > 2.0 {
		score += 10
	}
	if rec.CPA != nil && *rec.CPA < 20 {
		score += 5
	}

	if f.Headline.HasNumerals {
		score += 5
	}
	if f.Image.HasFace {
		score += 8
	}
	if f.Image.HasEyeContact {
		score += 5
	}
	if len(f.Headline.BenefitKeywords) > 0 {
		score += 3
	}
	if len(f.Headline.CTAKeywords) > 0 {
		score += 3
	}

	for _, in := range insights {
		switch in.Type {
		case domain.InsightPositive:
			score += 8
		case domain.InsightNegative:
			score -= 5
		}
	}

	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

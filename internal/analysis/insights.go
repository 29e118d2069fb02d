package analysis

import (
	"fmt"
	"strings"

	"github.com/ignite/creative-engine/internal/domain"
)

// Uplift thresholds for insight emission.
const (
	ctrUpliftStrong  = 0.15
	ctrUpliftWeak    = -0.25
	cpaUpliftStrong  = -0.20
	roasUpliftStrong = 0.25
)

// GenerateInsights turns peer uplift plus features into qualitative
// positive/negative insights. Missing data simply yields no insight for
// the corresponding branch; this never errors.
func GenerateInsights(rec domain.CreativeRecord, f domain.FeatureBundle, peers domain.PeerComparison) []domain.Insight {
	var out []domain.Insight

	if peers.SampleSize > 0 && peers.CTRUplift > ctrUpliftStrong {
		var reasons []string
		if f.Headline.HasNumerals {
			reasons = append(reasons, "numeral in headline")
		}
		if f.Image.HasFace {
			reasons = append(reasons, "face present")
		}
		if f.Image.HasEyeContact {
			reasons = append(reasons, "eye contact")
		}
		if f.Headline.Format == "question" {
			reasons = append(reasons, "question format")
		}
		conf := 60 + 10*len(reasons)
		if conf > 95 {
			conf = 95
		}
		out = append(out, domain.Insight{
			Type:       domain.InsightPositive,
			Feature:    "ctr",
			Impact:     fmt.Sprintf("CTR %.0f%% above peer average", peers.CTRUplift*100),
			Confidence: conf,
			Evidence:   evidenceLine(reasons, "no single feature stands out"),
		})
	}

	if peers.SampleSize > 0 && rec.CPA != nil && peers.CPAUplift < cpaUpliftStrong {
		out = append(out, domain.Insight{
			Type:       domain.InsightPositive,
			Feature:    "cpa",
			Impact:     fmt.Sprintf("CPA %.0f%% below peer average", -peers.CPAUplift*100),
			Confidence: 85,
			Evidence:   "acquisition cost is materially cheaper than the cohort",
		})
	}

	if peers.SampleSize > 0 && rec.ROAS != nil && peers.ROASUplift > roasUpliftStrong {
		out = append(out, domain.Insight{
			Type:       domain.InsightPositive,
			Feature:    "roas",
			Impact:     fmt.Sprintf("ROAS %.0f%% above peer average", peers.ROASUplift*100),
			Confidence: 90,
			Evidence:   "return on spend outperforms the cohort",
		})
	}

	if peers.SampleSize > 0 && peers.CTRUplift < ctrUpliftWeak {
		var issues []string
		if f.Headline.Length > 50 {
			issues = append(issues, "headline exceeds 50 characters")
		}
		if !f.Image.HasFace {
			issues = append(issues, "no face in image")
		}
		if !f.Headline.HasNumerals {
			issues = append(issues, "no numeral hook")
		}
		out = append(out, domain.Insight{
			Type:       domain.InsightNegative,
			Feature:    "ctr",
			Impact:     fmt.Sprintf("CTR %.0f%% below peer average", -peers.CTRUplift*100),
			Confidence: 75,
			Evidence:   evidenceLine(issues, "underperformance has no obvious feature cause"),
		})
	}

	return out
}

func evidenceLine(parts []string, empty string) string {
	if len(parts) == 0 {
		return empty
	}
	return strings.Join(parts, "; ")
}

package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/ignite/creative-engine/internal/domain"
)

// Learning-pattern thresholds.
const (
	minPatternSample   = 3
	successfulScaleCTR = 1.5 // percent, latest snapshot
	faceFractionFloor  = 0.7
	numeralFracFloor   = 0.6
	pausedCPAFloor     = 25.0
)

// GenerateLearningInsights mines the full creative/action/snapshot tables
// for recurring patterns among past decisions. Full-table scan; background
// worker only.
func (s *Service) GenerateLearningInsights(ctx context.Context) ([]domain.LearningInsight, error) {
	creatives, err := s.creatives.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	var successfulScales []domain.Creative
	var pausedHighCPA []domain.Creative

	for _, c := range creatives {
		actions, err := s.actions.ByCreative(ctx, c.ID)
		if err != nil {
			return nil, err
		}
		scaled, paused := false, false
		for _, a := range actions {
			switch a.Type {
			case domain.ActionScaled:
				scaled = true
			case domain.ActionPaused:
				paused = true
			}
		}

		if scaled {
			latest, err := s.snapshots.Latest(ctx, c.ID)
			if err != nil && !errors.Is(err, ErrSnapshotNotFound) {
				return nil, err
			}
			if err == nil && latest.CTR > successfulScaleCTR {
				successfulScales = append(successfulScales, c)
			}
		}
		if paused && c.CPA != nil && *c.CPA > pausedCPAFloor {
			pausedHighCPA = append(pausedHighCPA, c)
		}
	}

	var out []domain.LearningInsight

	if len(successfulScales) >= minPatternSample {
		faceN, numeralN := 0, 0
		for _, c := range successfulScales {
			f := s.featuresOf(c)
			if f.Image.HasFace {
				faceN++
			}
			if f.Headline.HasNumerals {
				numeralN++
			}
		}
		total := len(successfulScales)

		if frac := float64(faceN) / float64(total); frac > faceFractionFloor {
			out = append(out, domain.LearningInsight{
				Pattern:    "face_presence_in_winning_scales",
				Confidence: int(math.Round(frac * 100)),
				Evidence: []string{
					fmt.Sprintf("%d of %d successfully scaled creatives feature a face", faceN, total),
				},
				Recommendation: "face plus eye contact correlates with higher CTR; prioritize creatives with faces when testing",
			})
		}
		if frac := float64(numeralN) / float64(total); frac > numeralFracFloor {
			out = append(out, domain.LearningInsight{
				Pattern:    "numerals_in_winning_scales",
				Confidence: int(math.Round(frac * 100)),
				Evidence: []string{
					fmt.Sprintf("%d of %d successfully scaled creatives use a numeral in the headline", numeralN, total),
				},
				Recommendation: "numeric hooks correlate with successful scaling; include them in new headline variants",
			})
		}
	}

	if len(pausedHighCPA) >= minPatternSample {
		out = append(out, domain.LearningInsight{
			Pattern:    "pause_threshold_accuracy",
			Confidence: 85,
			Evidence: []string{
				fmt.Sprintf("%d paused creatives had aggregate CPA above %.0f", len(pausedHighCPA), pausedCPAFloor),
			},
			Recommendation: "current pause thresholds are catching expensive creatives; keep the CPA ceiling where it is",
		})
	}

	return out, nil
}

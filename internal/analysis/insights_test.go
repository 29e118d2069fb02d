package analysis

import (
	"testing"

	"github.com/ignite/creative-engine/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateInsightsStrongCTR(t *testing.T) {
	f := domain.FeatureBundle{
		Headline: domain.HeadlineFeatures{HasNumerals: true, Format: "question"},
		Image:    domain.ImageFeatures{HasFace: true, HasEyeContact: true},
	}
	peers := domain.PeerComparison{SampleSize: 4, CTRUplift: 0.30}

	insights := GenerateInsights(domain.CreativeRecord{}, f, peers)

	require.Len(t, insights, 1)
	assert.Equal(t, domain.InsightPositive, insights[0].Type)
	assert.Equal(t, "ctr", insights[0].Feature)
	// 60 + 10*4 reasons, capped at 95
	assert.Equal(t, 95, insights[0].Confidence)
}

func TestGenerateInsightsCTRConfidenceScalesWithReasons(t *testing.T) {
	f := domain.FeatureBundle{Headline: domain.HeadlineFeatures{HasNumerals: true}}
	peers := domain.PeerComparison{SampleSize: 2, CTRUplift: 0.20}

	insights := GenerateInsights(domain.CreativeRecord{}, f, peers)

	require.Len(t, insights, 1)
	assert.Equal(t, 70, insights[0].Confidence) // 60 + 10*1
}

func TestGenerateInsightsCPAAndROAS(t *testing.T) {
	rec := domain.CreativeRecord{CPA: fptr(8), ROAS: fptr(4)}
	peers := domain.PeerComparison{SampleSize: 3, CPAUplift: -0.40, ROASUplift: 0.50}

	insights := GenerateInsights(rec, domain.FeatureBundle{}, peers)

	require.Len(t, insights, 2)
	assert.Equal(t, "cpa", insights[0].Feature)
	assert.Equal(t, 85, insights[0].Confidence)
	assert.Equal(t, "roas", insights[1].Feature)
	assert.Equal(t, 90, insights[1].Confidence)
}

func TestGenerateInsightsWeakCTR(t *testing.T) {
	f := domain.FeatureBundle{
		Headline: domain.HeadlineFeatures{Length: 72},
	}
	peers := domain.PeerComparison{SampleSize: 5, CTRUplift: -0.40}

	insights := GenerateInsights(domain.CreativeRecord{}, f, peers)

	require.Len(t, insights, 1)
	assert.Equal(t, domain.InsightNegative, insights[0].Type)
	assert.Equal(t, 75, insights[0].Confidence)
	assert.Contains(t, insights[0].Evidence, "headline exceeds 50 characters")
	assert.Contains(t, insights[0].Evidence, "no face in image")
	assert.Contains(t, insights[0].Evidence, "no numeral hook")
}

func TestGenerateInsightsNoPeersNoInsights(t *testing.T) {
	// Without a cohort there is no uplift evidence to cite.
	insights := GenerateInsights(domain.CreativeRecord{}, domain.FeatureBundle{}, domain.PeerComparison{})
	assert.Empty(t, insights)
}

func TestGenerateInsightsMissingMetricsYieldNoBranch(t *testing.T) {
	// Large CPA/ROAS uplifts are ignored when the subject doesn't report them.
	peers := domain.PeerComparison{SampleSize: 3, CPAUplift: -0.9, ROASUplift: 0.9}
	insights := GenerateInsights(domain.CreativeRecord{}, domain.FeatureBundle{}, peers)
	assert.Empty(t, insights)
}

package analysis

import (
	"context"
	"testing"
	"time"

	"github.com/ignite/creative-engine/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubSpecs returns a fixed policy snapshot.
type stubSpecs struct {
	maxChars int
}

func (s *stubSpecs) Current(_ context.Context) *domain.SpecSnapshot {
	return &domain.SpecSnapshot{
		Version:   "test",
		FetchedAt: time.Now(),
		Policy: domain.PlatformPolicy{
			Headline: domain.HeadlinePolicy{MaxChars: s.maxChars, WarnChars: s.maxChars - 10},
		},
	}
}

func TestHeadlineRecommendationsRespectMaxChars(t *testing.T) {
	r, err := NewRecommender(&stubSpecs{maxChars: 60})
	require.NoError(t, err)

	rec := domain.CreativeRecord{Headline: "Premium Running Shoes"}
	out := r.HeadlineRecommendations(context.Background(), rec, domain.FeatureBundle{})

	require.NotEmpty(t, out)
	for _, rc := range out {
		assert.LessOrEqual(t, len(rc.Content), 60, "content %q", rc.Content)
		assert.Equal(t, "headline", rc.Type)
		assert.Contains(t, rc.Content, "Premium Running Shoes")
	}
}

func TestHeadlineRecommendationsSortedAndCapped(t *testing.T) {
	r, err := NewRecommender(&stubSpecs{maxChars: 200})
	require.NoError(t, err)

	out := r.HeadlineRecommendations(context.Background(),
		domain.CreativeRecord{Headline: "Fresh Coffee Delivered"}, domain.FeatureBundle{})

	require.NotEmpty(t, out)
	assert.LessOrEqual(t, len(out), 12)
	for i := 1; i < len(out); i++ {
		assert.GreaterOrEqual(t, out[i-1].Confidence, out[i].Confidence)
	}
}

func TestHeadlineRecommendationsTightLimitFiltersAll(t *testing.T) {
	r, err := NewRecommender(&stubSpecs{maxChars: 12})
	require.NoError(t, err)

	out := r.HeadlineRecommendations(context.Background(),
		domain.CreativeRecord{Headline: "A Very Long Headline About Nothing In Particular"},
		domain.FeatureBundle{})

	assert.Empty(t, out)
}

func TestHeadlineRecommendationsSkipQuestionWhenAlreadyQuestion(t *testing.T) {
	r, err := NewRecommender(&stubSpecs{maxChars: 200})
	require.NoError(t, err)

	f := domain.FeatureBundle{Headline: domain.HeadlineFeatures{Format: "question"}}
	out := r.HeadlineRecommendations(context.Background(),
		domain.CreativeRecord{Headline: "Want Better Sleep?"}, f)

	for _, rc := range out {
		assert.NotEqual(t, "headline:question", rc.BasedOn)
	}
}

func TestImageRecommendationsNoFace(t *testing.T) {
	r, err := NewRecommender(&stubSpecs{maxChars: 100})
	require.NoError(t, err)

	out := r.ImageRecommendations(domain.FeatureBundle{
		Image: domain.ImageFeatures{Contrast: "low"},
	})

	require.Len(t, out, 2)
	assert.Equal(t, 90, out[0].Confidence) // add a face first
	assert.Equal(t, 75, out[1].Confidence) // then fix contrast
}

func TestImageRecommendationsEcommerceRule(t *testing.T) {
	r, err := NewRecommender(&stubSpecs{maxChars: 100})
	require.NoError(t, err)

	out := r.ImageRecommendations(domain.FeatureBundle{
		Image:       domain.ImageFeatures{HasFace: true, HasEyeContact: true, Contrast: "high", Complexity: "moderate"},
		Destination: domain.DestinationFeatures{Parsed: true, IsEcommerce: true},
	})

	require.Len(t, out, 1)
	assert.Equal(t, 70, out[0].Confidence)
	assert.Equal(t, "image:ecommerce_without_product_shot", out[0].BasedOn)
}

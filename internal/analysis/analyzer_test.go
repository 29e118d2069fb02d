package analysis

import (
	"context"
	"errors"
	"testing"

	"github.com/ignite/creative-engine/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRecorder struct {
	calls  int
	failOn string
}

func (s *stubRecorder) UpdateCreativeMetrics(_ context.Context, rec domain.CreativeRecord, _ domain.FeatureBundle) error {
	s.calls++
	if rec.ID == s.failOn {
		return errors.New("db unavailable")
	}
	return nil
}

func TestAnalyzeBatchProducesResults(t *testing.T) {
	rec, err := NewRecommender(&stubSpecs{maxChars: 100})
	require.NoError(t, err)
	recorder := &stubRecorder{}
	a := NewAnalyzer(rec, recorder)

	batch := []domain.CreativeRecord{
		{ID: "c1", CampaignID: "camp", Headline: "Get 5 Tips", ThumbnailURL: "https://cdn/face.jpg", CTR: 2.0, Spend: 100},
		{ID: "c2", CampaignID: "camp", Headline: "Plain", CTR: 1.0, Spend: 110},
	}
	results := a.AnalyzeBatch(context.Background(), batch)

	require.Len(t, results, 2)
	assert.Equal(t, 2, recorder.calls)
	assert.Equal(t, "c1", results[0].Creative.ID)
	assert.NotEmpty(t, results[0].Recommendations)
	assert.Equal(t, 1, results[0].PeerComparison.SampleSize)
	assert.InDelta(t, 1.0, results[0].PeerComparison.CTRUplift, 1e-9)
}

func TestAnalyzeBatchContinuesPastFailures(t *testing.T) {
	rec, err := NewRecommender(&stubSpecs{maxChars: 100})
	require.NoError(t, err)
	a := NewAnalyzer(rec, &stubRecorder{failOn: "bad"})

	batch := []domain.CreativeRecord{
		{ID: "good-1", CampaignID: "camp", Headline: "One", Spend: 100},
		{ID: "bad", CampaignID: "camp", Headline: "Two", Spend: 100},
		{ID: "good-2", CampaignID: "camp", Headline: "Three", Spend: 100},
	}
	results := a.AnalyzeBatch(context.Background(), batch)

	require.Len(t, results, 2)
	assert.Equal(t, "good-1", results[0].Creative.ID)
	assert.Equal(t, "good-2", results[1].Creative.ID)
}

func TestAnalyzeBatchDryRunSkipsPersistence(t *testing.T) {
	rec, err := NewRecommender(&stubSpecs{maxChars: 100})
	require.NoError(t, err)
	a := NewAnalyzer(rec, nil)

	results := a.AnalyzeBatch(context.Background(), []domain.CreativeRecord{
		{ID: "c1", Headline: "Solo", Spend: 50},
	})

	require.Len(t, results, 1)
	assert.Equal(t, 0, results[0].PeerComparison.SampleSize)
}

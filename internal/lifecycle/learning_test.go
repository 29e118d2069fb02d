package lifecycle

import (
	"context"
	"testing"
	"time"

	"github.com/ignite/creative-engine/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedScaledWinner(store *memStore, id string, face, numerals bool) {
	store.creatives[id] = domain.Creative{
		ID:       id,
		Features: featuresJSON(face, face, numerals),
		Status:   domain.CreativeActive,
	}
	store.actions = append(store.actions, domain.Action{
		ID: id + "-scale", CreativeID: id, Type: domain.ActionScaled,
		DecidedAt: time.Now().Add(-72 * time.Hour),
	})
	store.snapshots = append(store.snapshots, domain.MetricSnapshot{
		CreativeID: id, CapturedAt: time.Now().Add(-time.Hour), CTR: 2.1,
	})
}

func TestGenerateLearningInsightsFacePattern(t *testing.T) {
	svc, store := newTestService()

	seedScaledWinner(store, "cr-1", true, false)
	seedScaledWinner(store, "cr-2", true, false)
	seedScaledWinner(store, "cr-3", true, false)
	seedScaledWinner(store, "cr-4", false, false)

	insights, err := svc.GenerateLearningInsights(context.Background())
	require.NoError(t, err)
	require.Len(t, insights, 1)

	in := insights[0]
	assert.Equal(t, "face_presence_in_winning_scales", in.Pattern)
	assert.Equal(t, 75, in.Confidence)
	require.Len(t, in.Evidence, 1)
	assert.Contains(t, in.Evidence[0], "3 of 4")
}

func TestGenerateLearningInsightsNumeralPattern(t *testing.T) {
	svc, store := newTestService()

	seedScaledWinner(store, "cr-1", false, true)
	seedScaledWinner(store, "cr-2", false, true)
	seedScaledWinner(store, "cr-3", false, true)

	insights, err := svc.GenerateLearningInsights(context.Background())
	require.NoError(t, err)
	require.Len(t, insights, 1)
	assert.Equal(t, "numerals_in_winning_scales", insights[0].Pattern)
	assert.Equal(t, 100, insights[0].Confidence)
}

func TestGenerateLearningInsightsRequiresMinimumSample(t *testing.T) {
	svc, store := newTestService()

	seedScaledWinner(store, "cr-1", true, true)
	seedScaledWinner(store, "cr-2", true, true)

	insights, err := svc.GenerateLearningInsights(context.Background())
	require.NoError(t, err)
	assert.Empty(t, insights)
}

func TestGenerateLearningInsightsIgnoresLowCTRScales(t *testing.T) {
	svc, store := newTestService()

	for _, id := range []string{"cr-1", "cr-2", "cr-3"} {
		store.creatives[id] = domain.Creative{ID: id, Features: featuresJSON(true, true, true)}
		store.actions = append(store.actions, domain.Action{
			ID: id + "-scale", CreativeID: id, Type: domain.ActionScaled,
			DecidedAt: time.Now().Add(-72 * time.Hour),
		})
		// Latest CTR below the success bar.
		store.snapshots = append(store.snapshots, domain.MetricSnapshot{
			CreativeID: id, CapturedAt: time.Now().Add(-time.Hour), CTR: 1.0,
		})
	}

	insights, err := svc.GenerateLearningInsights(context.Background())
	require.NoError(t, err)
	assert.Empty(t, insights)
}

func TestGenerateLearningInsightsPausePattern(t *testing.T) {
	svc, store := newTestService()

	for _, id := range []string{"cr-1", "cr-2", "cr-3"} {
		store.creatives[id] = domain.Creative{
			ID: id, CPA: float64Ptr(40), Status: domain.CreativePaused,
		}
		store.actions = append(store.actions, domain.Action{
			ID: id + "-pause", CreativeID: id, Type: domain.ActionPaused,
			DecidedAt: time.Now().Add(-24 * time.Hour),
		})
	}

	insights, err := svc.GenerateLearningInsights(context.Background())
	require.NoError(t, err)
	require.Len(t, insights, 1)
	assert.Equal(t, "pause_threshold_accuracy", insights[0].Pattern)
	assert.Equal(t, 85, insights[0].Confidence)
	assert.Contains(t, insights[0].Evidence[0], "3 paused")
}

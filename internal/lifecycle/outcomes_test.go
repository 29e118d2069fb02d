package lifecycle

import (
	"context"
	"testing"
	"time"

	"github.com/ignite/creative-engine/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func snap(creativeID string, at time.Time, ctr float64, cpa, roas *float64) domain.MetricSnapshot {
	return domain.MetricSnapshot{CreativeID: creativeID, CapturedAt: at, CTR: ctr, CPA: cpa, ROAS: roas}
}

func TestAnalyzeOutcomesScaleImproved(t *testing.T) {
	svc, store := newTestService()
	decided := time.Now().Add(-48 * time.Hour)

	store.actions = append(store.actions, domain.Action{
		ID: "a-1", CreativeID: "cr-1", Type: domain.ActionScaled, DecidedAt: decided,
	})
	store.snapshots = append(store.snapshots,
		snap("cr-1", decided.Add(-time.Hour), 1.0, nil, nil),
		snap("cr-1", decided.Add(time.Hour), 1.2, nil, nil),
	)

	out, err := svc.AnalyzeOutcomes(context.Background(), 30)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "improved", out[0].Outcome)
	assert.Equal(t, improvedScaleConf, out[0].OutcomeConfidence)
	assert.InDelta(t, 1.0, out[0].PrePerformance.CTR, 0.001)
	assert.InDelta(t, 1.2, out[0].PostPerformance.CTR, 0.001)
}

func TestAnalyzeOutcomesScaleDeclinedOnROAS(t *testing.T) {
	svc, store := newTestService()
	decided := time.Now().Add(-24 * time.Hour)

	store.actions = append(store.actions, domain.Action{
		ID: "a-1", CreativeID: "cr-1", Type: domain.ActionScaled, DecidedAt: decided,
	})
	store.snapshots = append(store.snapshots,
		snap("cr-1", decided.Add(-time.Hour), 1.0, nil, float64Ptr(2.0)),
		snap("cr-1", decided.Add(time.Hour), 1.0, nil, float64Ptr(1.2)),
	)

	out, err := svc.AnalyzeOutcomes(context.Background(), 30)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "declined", out[0].Outcome)
	assert.Equal(t, declinedScaleConf, out[0].OutcomeConfidence)
}

func TestAnalyzeOutcomesScaleNeutral(t *testing.T) {
	svc, store := newTestService()
	decided := time.Now().Add(-24 * time.Hour)

	store.actions = append(store.actions, domain.Action{
		ID: "a-1", CreativeID: "cr-1", Type: domain.ActionScaled, DecidedAt: decided,
	})
	store.snapshots = append(store.snapshots,
		snap("cr-1", decided.Add(-time.Hour), 1.0, nil, nil),
		snap("cr-1", decided.Add(time.Hour), 1.05, nil, nil),
	)

	out, err := svc.AnalyzeOutcomes(context.Background(), 30)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "neutral", out[0].Outcome)
	assert.Equal(t, neutralConf, out[0].OutcomeConfidence)
}

func TestAnalyzeOutcomesPauseJudgedOnPreSnapshot(t *testing.T) {
	svc, store := newTestService()
	decided := time.Now().Add(-24 * time.Hour)

	store.actions = append(store.actions,
		domain.Action{ID: "a-1", CreativeID: "cr-low", Type: domain.ActionPaused, DecidedAt: decided},
		domain.Action{ID: "a-2", CreativeID: "cr-ok", Type: domain.ActionPaused, DecidedAt: decided},
	)
	store.snapshots = append(store.snapshots,
		snap("cr-low", decided.Add(-time.Hour), 0.3, nil, nil),
		snap("cr-low", decided.Add(time.Hour), 0.3, nil, nil),
		snap("cr-ok", decided.Add(-time.Hour), 1.4, float64Ptr(12), nil),
		snap("cr-ok", decided.Add(time.Hour), 1.4, float64Ptr(12), nil),
	)

	out, err := svc.AnalyzeOutcomes(context.Background(), 30)
	require.NoError(t, err)
	require.Len(t, out, 2)

	byCreative := map[string]domain.OutcomeAnalysis{}
	for _, oa := range out {
		byCreative[oa.CreativeID] = oa
	}
	assert.Equal(t, "improved", byCreative["cr-low"].Outcome)
	assert.Equal(t, improvedPauseConf, byCreative["cr-low"].OutcomeConfidence)
	assert.Equal(t, "neutral", byCreative["cr-ok"].Outcome)
}

func TestAnalyzeOutcomesSkipsTestedAndIncomplete(t *testing.T) {
	svc, store := newTestService()
	decided := time.Now().Add(-24 * time.Hour)

	store.actions = append(store.actions,
		// No outcome rule exists for tested actions.
		domain.Action{ID: "a-1", CreativeID: "cr-1", Type: domain.ActionTested, DecidedAt: decided},
		// Missing the post-action snapshot.
		domain.Action{ID: "a-2", CreativeID: "cr-2", Type: domain.ActionScaled, DecidedAt: decided},
		// Missing the pre-action snapshot.
		domain.Action{ID: "a-3", CreativeID: "cr-3", Type: domain.ActionScaled, DecidedAt: decided},
	)
	store.snapshots = append(store.snapshots,
		snap("cr-2", decided.Add(-time.Hour), 1.0, nil, nil),
		snap("cr-3", decided.Add(time.Hour), 1.0, nil, nil),
	)

	out, err := svc.AnalyzeOutcomes(context.Background(), 30)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestAnalyzeOutcomesLookbackWindow(t *testing.T) {
	svc, store := newTestService()
	old := time.Now().AddDate(0, 0, -45)

	store.actions = append(store.actions, domain.Action{
		ID: "a-1", CreativeID: "cr-1", Type: domain.ActionScaled, DecidedAt: old,
	})
	store.snapshots = append(store.snapshots,
		snap("cr-1", old.Add(-time.Hour), 1.0, nil, nil),
		snap("cr-1", old.Add(time.Hour), 2.0, nil, nil),
	)

	out, err := svc.AnalyzeOutcomes(context.Background(), 30)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestClassifyScaleZeroPreCTR(t *testing.T) {
	pre := &domain.MetricSnapshot{CTR: 0}
	post := &domain.MetricSnapshot{CTR: 2.0}
	outcome, conf := classifyScale(pre, post)
	assert.Equal(t, "neutral", outcome)
	assert.Equal(t, neutralConf, conf)
}

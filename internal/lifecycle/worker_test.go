package lifecycle

import (
	"context"
	"testing"
	"time"

	"github.com/ignite/creative-engine/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLock struct {
	grant    bool
	acquires int
	releases int
}

func (l *fakeLock) Acquire(context.Context) (bool, error) {
	l.acquires++
	return l.grant, nil
}

func (l *fakeLock) Release(context.Context) error {
	l.releases++
	return nil
}

func TestWorkerRunCachesResults(t *testing.T) {
	svc, store := newTestService()

	store.creatives["cr-1"] = domain.Creative{
		ID: "cr-1", Status: domain.CreativeActive,
		Spend: 150, Impressions: 10000, Clicks: 120, Conversions: 2,
		CPA: float64Ptr(75),
	}

	lock := &fakeLock{grant: true}
	w := NewWorker(svc, lock, "acct-1", WithInterval(time.Hour))
	w.ctx, w.cancel = context.WithCancel(context.Background())
	defer w.cancel()

	w.runOnce()

	assert.True(t, w.IsHealthy())
	assert.WithinDuration(t, time.Now(), w.LastRunAt(), 5*time.Second)
	assert.Equal(t, 1, lock.acquires)
	assert.Equal(t, 1, lock.releases)

	recs := w.LastRecommendations()
	require.Len(t, recs, 1)
	assert.Equal(t, domain.ActionPaused, recs[0].Action)

	// Auto execution is off by default, so nothing was logged.
	assert.Empty(t, store.actions)
}

func TestWorkerSkipsWhenLockHeldElsewhere(t *testing.T) {
	svc, _ := newTestService()

	lock := &fakeLock{grant: false}
	w := NewWorker(svc, lock, "acct-1")
	w.ctx, w.cancel = context.WithCancel(context.Background())
	defer w.cancel()

	w.runOnce()

	assert.Equal(t, 1, lock.acquires)
	assert.Equal(t, 0, lock.releases)
	assert.True(t, w.LastRunAt().IsZero())
}

func TestWorkerAutoExecutesHighConfidenceRecs(t *testing.T) {
	svc, store := newTestService()

	store.creatives["cr-pause"] = domain.Creative{
		ID: "cr-pause", Status: domain.CreativeActive,
		Spend: 150, Impressions: 10000, Clicks: 120, Conversions: 2,
		CPA: float64Ptr(75),
	}
	store.creatives["cr-test"] = domain.Creative{
		ID: "cr-test", Status: domain.CreativeActive, Spend: 10, Impressions: 5000, Clicks: 60,
	}

	w := NewWorker(svc, &fakeLock{grant: true}, "acct-1", WithAutoExecute(true))
	w.ctx, w.cancel = context.WithCancel(context.Background())
	defer w.cancel()

	w.runOnce()

	// Only the auto-executable pause was logged, with rule provenance.
	require.Len(t, store.actions, 1)
	assert.Equal(t, "cr-pause", store.actions[0].CreativeID)
	assert.Equal(t, domain.ActionPaused, store.actions[0].Type)
	assert.Equal(t, domain.SourceRule, store.actions[0].Source)
}

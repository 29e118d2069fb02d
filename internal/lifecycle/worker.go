package lifecycle

import (
	"context"
	"sync"
	"time"

	"github.com/ignite/creative-engine/internal/domain"
	"github.com/ignite/creative-engine/internal/pkg/distlock"
	"github.com/ignite/creative-engine/internal/pkg/logger"
)

// Worker periodically runs outcome analysis, learning-insight mining and
// action recommendations for an account. A distributed lock keeps multiple
// instances from doing the same full-table scans at once.
type Worker struct {
	service      *Service
	lock         distlock.DistLock
	accountID    string
	interval     time.Duration
	lookbackDays int
	autoExecute  bool

	ctx    context.Context
	cancel context.CancelFunc

	mu           sync.RWMutex
	lastRunAt    time.Time
	healthy      bool
	lastOutcomes []domain.OutcomeAnalysis
	lastInsights []domain.LearningInsight
	lastRecs     []domain.ActionRecommendation
}

// WorkerOption configures a Worker.
type WorkerOption func(*Worker)

// WithInterval overrides the default run interval.
func WithInterval(d time.Duration) WorkerOption {
	return func(w *Worker) { w.interval = d }
}

// WithAutoExecute enables logging of auto-executable recommendations as
// rule-sourced actions.
func WithAutoExecute(on bool) WorkerOption {
	return func(w *Worker) { w.autoExecute = on }
}

// WithLookbackDays overrides the outcome-analysis window.
func WithLookbackDays(days int) WorkerOption {
	return func(w *Worker) { w.lookbackDays = days }
}

func NewWorker(service *Service, lock distlock.DistLock, accountID string, opts ...WorkerOption) *Worker {
	w := &Worker{
		service:      service,
		lock:         lock,
		accountID:    accountID,
		interval:     time.Hour,
		lookbackDays: 30,
		healthy:      true,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func (w *Worker) Start() {
	w.ctx, w.cancel = context.WithCancel(context.Background())
	go func() {
		logger.Info("lifecycle worker starting", "account_id", w.accountID, "interval", w.interval.String())
		w.runOnce()

		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()
		for {
			select {
			case <-w.ctx.Done():
				logger.Info("lifecycle worker stopped", "account_id", w.accountID)
				return
			case <-ticker.C:
				w.runOnce()
			}
		}
	}()
}

func (w *Worker) Stop() {
	if w.cancel != nil {
		w.cancel()
	}
}

func (w *Worker) IsHealthy() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.healthy
}

func (w *Worker) LastRunAt() time.Time {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.lastRunAt
}

// LastOutcomes returns the results of the most recent outcome analysis.
func (w *Worker) LastOutcomes() []domain.OutcomeAnalysis {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.lastOutcomes
}

// LastInsights returns the learning insights from the most recent run.
func (w *Worker) LastInsights() []domain.LearningInsight {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.lastInsights
}

// LastRecommendations returns the action recommendations from the most
// recent run.
func (w *Worker) LastRecommendations() []domain.ActionRecommendation {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.lastRecs
}

func (w *Worker) runOnce() {
	ctx, cancel := context.WithTimeout(w.ctx, 10*time.Minute)
	defer cancel()

	acquired, err := w.lock.Acquire(ctx)
	if err != nil {
		logger.Error("lifecycle worker lock error", "error", err)
		w.setHealthy(false)
		return
	}
	if !acquired {
		logger.Debug("lifecycle worker lock held elsewhere, skipping run")
		return
	}
	defer func() {
		if err := w.lock.Release(ctx); err != nil {
			logger.Warn("lifecycle worker lock release failed", "error", err)
		}
	}()

	w.mu.Lock()
	w.lastRunAt = time.Now()
	w.mu.Unlock()

	ok := true

	outcomes, err := w.service.AnalyzeOutcomes(ctx, w.lookbackDays)
	if err != nil {
		logger.Error("outcome analysis failed", "error", err)
		ok = false
	} else {
		w.mu.Lock()
		w.lastOutcomes = outcomes
		w.mu.Unlock()
	}

	insights, err := w.service.GenerateLearningInsights(ctx)
	if err != nil {
		logger.Error("learning insight mining failed", "error", err)
		ok = false
	} else {
		w.mu.Lock()
		w.lastInsights = insights
		w.mu.Unlock()
	}

	recs, err := w.service.GenerateActionRecommendations(ctx, w.accountID)
	if err != nil {
		logger.Error("action recommendation failed", "error", err)
		ok = false
	} else {
		w.mu.Lock()
		w.lastRecs = recs
		w.mu.Unlock()

		if w.autoExecute {
			w.executeAutoRecs(ctx, recs)
		}
	}

	w.setHealthy(ok)
	logger.Info("lifecycle worker run complete",
		"outcomes", len(outcomes), "insights", len(insights), "recommendations", len(recs))
}

func (w *Worker) executeAutoRecs(ctx context.Context, recs []domain.ActionRecommendation) {
	for _, rec := range recs {
		if !rec.AutoExecute {
			continue
		}
		if _, err := w.service.ExecuteAutomatedAction(ctx, rec); err != nil {
			logger.Error("auto action failed", "creative_id", rec.CreativeID, "action", string(rec.Action), "error", err)
		} else {
			logger.Info("auto action logged", "creative_id", rec.CreativeID, "action", string(rec.Action), "confidence", rec.Confidence)
		}
	}
}

func (w *Worker) setHealthy(ok bool) {
	w.mu.Lock()
	w.healthy = ok
	w.mu.Unlock()
}

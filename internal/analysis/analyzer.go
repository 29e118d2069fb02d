// Package analysis implements the creative analysis pipeline: peer
// comparison, insight generation, composite scoring, variation
// recommendations, and the batch analyzer that ties them together.
package analysis

import (
	"context"
	"fmt"

	"github.com/ignite/creative-engine/internal/domain"
	"github.com/ignite/creative-engine/internal/features"
	"github.com/ignite/creative-engine/internal/pkg/logger"
)

// MetricsRecorder persists creative aggregates and snapshots as part of an
// analysis run. Implemented by lifecycle.Service.
type MetricsRecorder interface {
	UpdateCreativeMetrics(ctx context.Context, rec domain.CreativeRecord, f domain.FeatureBundle) error
}

// Analyzer runs the full pipeline over a batch of upstream creative
// records. Each batch is processed sequentially; a failure on one creative
// is logged and does not abort the rest of the run.
type Analyzer struct {
	recommender *Recommender
	recorder    MetricsRecorder // nil disables persistence (dry runs)
}

// NewAnalyzer creates a batch analyzer. recorder may be nil for dry-run
// analysis that should not touch the store.
func NewAnalyzer(recommender *Recommender, recorder MetricsRecorder) *Analyzer {
	return &Analyzer{recommender: recommender, recorder: recorder}
}

// AnalyzeBatch analyzes every record in the batch, returning one result per
// creative that succeeded. Partial failures are tolerated.
func (a *Analyzer) AnalyzeBatch(ctx context.Context, records []domain.CreativeRecord) []domain.AnalysisResult {
	results := make([]domain.AnalysisResult, 0, len(records))
	for _, rec := range records {
		res, err := a.analyzeOne(ctx, rec, records)
		if err != nil {
			analysisFailures.Inc()
			logger.Error("creative analysis failed", "creative_id", rec.ID, "error", err.Error())
			continue
		}
		creativesAnalyzed.Inc()
		scoreHistogram.Observe(float64(res.Score))
		results = append(results, *res)
	}
	return results
}

// AnalyzeOne runs the pipeline for a single creative against a peer set.
func (a *Analyzer) AnalyzeOne(ctx context.Context, rec domain.CreativeRecord, all []domain.CreativeRecord) (*domain.AnalysisResult, error) {
	return a.analyzeOne(ctx, rec, all)
}

func (a *Analyzer) analyzeOne(ctx context.Context, rec domain.CreativeRecord, all []domain.CreativeRecord) (res *domain.AnalysisResult, err error) {
	// A bad record must never abort the batch.
	defer func() {
		if p := recover(); p != nil {
			res = nil
			err = fmt.Errorf("panic analyzing creative %s: %v", rec.ID, p)
		}
	}()

	bundle := features.Extract(rec)
	peers := CompareToPeers(rec, all)
	insights := GenerateInsights(rec, bundle, peers)
	score := Score(rec, bundle, insights)

	recs := a.recommender.HeadlineRecommendations(ctx, rec, bundle)
	recs = append(recs, a.recommender.ImageRecommendations(bundle)...)

	if a.recorder != nil {
		if err := a.recorder.UpdateCreativeMetrics(ctx, rec, bundle); err != nil {
			return nil, fmt.Errorf("persist metrics for %s: %w", rec.ID, err)
		}
	}

	return &domain.AnalysisResult{
		Creative:        rec,
		Features:        bundle,
		Insights:        insights,
		Recommendations: recs,
		Score:           score,
		PeerComparison:  peers,
	}, nil
}

package domain

import "time"

// InsightType classifies an insight as favorable, unfavorable, or neither.
type InsightType string

const (
	InsightPositive InsightType = "positive"
	InsightNegative InsightType = "negative"
	InsightNeutral  InsightType = "neutral"
)

// Insight is one qualitative observation about a creative's performance.
type Insight struct {
	Type       InsightType `json:"type"`
	Feature    string      `json:"feature"`
	Impact     string      `json:"impact"`
	Confidence int         `json:"confidence"`
	Evidence   string      `json:"evidence"`
}

// PeerComparison holds a creative's relative performance uplift against its
// peer cohort. Uplift = (subject - peer average) / peer average. Positive
// CTR/ROAS uplift is favorable; negative CPA uplift (cheaper) is favorable.
type PeerComparison struct {
	SampleSize  int     `json:"sample_size"`
	PeerAvgCTR  float64 `json:"peer_avg_ctr"`
	PeerAvgCPA  float64 `json:"peer_avg_cpa"`
	PeerAvgROAS float64 `json:"peer_avg_roas"`
	CTRUplift   float64 `json:"ctr_uplift"`
	CPAUplift   float64 `json:"cpa_uplift"`
	ROASUplift  float64 `json:"roas_uplift"`
}

// Recommendation is one concrete creative variation proposal.
type Recommendation struct {
	Type       string `json:"type"`
	Content    string `json:"content"`
	Reason     string `json:"reason"`
	Confidence int    `json:"confidence"`
	BasedOn    string `json:"based_on"`
}

// AnalysisResult is the full output contract for one analyzed creative,
// consumed by the presentation layer.
type AnalysisResult struct {
	Creative        CreativeRecord   `json:"creative"`
	Features        FeatureBundle    `json:"features"`
	Insights        []Insight        `json:"insights"`
	Recommendations []Recommendation `json:"recommendations"`
	Score           int              `json:"score"`
	PeerComparison  PeerComparison   `json:"peer_comparison"`
}

// PerformanceSnapshot is the pre/post metric pair member of an outcome.
type PerformanceSnapshot struct {
	CapturedAt time.Time `json:"captured_at"`
	CTR        float64   `json:"ctr"`
	CPA        *float64  `json:"cpa"`
	ROAS       *float64  `json:"roas"`
}

// OutcomeAnalysis is the retrospective classification of one lifecycle
// action, comparing performance immediately before vs. after the decision.
type OutcomeAnalysis struct {
	ActionID          string              `json:"action_id"`
	CreativeID        string              `json:"creative_id"`
	ActionType        ActionType          `json:"action_type"`
	PrePerformance    PerformanceSnapshot `json:"pre_performance"`
	PostPerformance   PerformanceSnapshot `json:"post_performance"`
	Outcome           string              `json:"outcome"` // improved, declined, neutral
	OutcomeConfidence int                 `json:"outcome_confidence"`
}

// LearningInsight is one pattern mined from historical action outcomes.
type LearningInsight struct {
	Pattern        string   `json:"pattern"`
	Confidence     int      `json:"confidence"`
	Evidence       []string `json:"evidence"`
	Recommendation string   `json:"recommendation"`
}

// ActionRecommendation is one rule-based lifecycle proposal for a creative.
type ActionRecommendation struct {
	CreativeID  string     `json:"creative_id"`
	Action      ActionType `json:"action"`
	Reason      string     `json:"reason"`
	Confidence  int        `json:"confidence"`
	AutoExecute bool       `json:"auto_execute"`
	Metrics     RecMetrics `json:"metrics"`
}

// RecMetrics captures the aggregates that triggered a recommendation.
type RecMetrics struct {
	Spend       float64  `json:"spend"`
	Impressions int64    `json:"impressions"`
	Clicks      int64    `json:"clicks"`
	CTR         float64  `json:"ctr"`
	Conversions int64    `json:"conversions"`
	CPA         *float64 `json:"cpa"`
	ROAS        *float64 `json:"roas"`
}

// CreativeHistory bundles a creative with its action log and recent
// snapshots, both most-recent-first.
type CreativeHistory struct {
	Creative  Creative         `json:"creative"`
	Actions   []Action         `json:"actions"`
	Snapshots []MetricSnapshot `json:"snapshots"`
}

package lifecycle

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ignite/creative-engine/internal/domain"
)

const historySnapshotLimit = 30

// Service implements lifecycle business logic over the repository
// interfaces. Construct one at process start and share it; all methods are
// safe for concurrent use if the repositories are.
type Service struct {
	creatives CreativeRepo
	snapshots SnapshotRepo
	actions   ActionRepo
	configs   ConfigRepo
}

// NewService creates a lifecycle service backed by the given repositories.
func NewService(creatives CreativeRepo, snapshots SnapshotRepo, actions ActionRepo, configs ConfigRepo) *Service {
	return &Service{creatives: creatives, snapshots: snapshots, actions: actions, configs: configs}
}

// ActionInput holds the fields for logging a lifecycle action. The caller
// is responsible for the creative's referential existence.
type ActionInput struct {
	CreativeID string                `json:"creative_id"`
	Type       domain.ActionType     `json:"type"`
	Reason     string                `json:"reason"`
	Detail     string                `json:"detail"`
	Source     domain.DecisionSource `json:"source"`
	DecidedAt  time.Time             `json:"decided_at"` // zero means now
	Inputs     any                   `json:"inputs"`     // metrics that triggered the decision
}

// LogAction appends one action row and returns its id.
func (s *Service) LogAction(ctx context.Context, in ActionInput) (string, error) {
	decidedAt := in.DecidedAt
	if decidedAt.IsZero() {
		decidedAt = time.Now().UTC()
	}

	var inputs json.RawMessage
	if in.Inputs != nil {
		data, err := json.Marshal(in.Inputs)
		if err != nil {
			return "", fmt.Errorf("marshal action inputs: %w", err)
		}
		inputs = data
	}

	a := &domain.Action{
		ID:         uuid.New().String(),
		CreativeID: in.CreativeID,
		Type:       in.Type,
		Reason:     in.Reason,
		Detail:     in.Detail,
		Source:     in.Source,
		DecidedAt:  decidedAt,
		Inputs:     inputs,
	}
	return s.actions.Insert(ctx, a)
}

// UpdateCreativeMetrics upserts the creative aggregate row with the latest
// metrics and serialized features, then appends one metric snapshot. Each
// call is one ingestion event; snapshots are never mutated or deleted.
func (s *Service) UpdateCreativeMetrics(ctx context.Context, rec domain.CreativeRecord, f domain.FeatureBundle) error {
	featJSON, err := json.Marshal(f)
	if err != nil {
		return fmt.Errorf("marshal features: %w", err)
	}

	now := time.Now().UTC()
	c := &domain.Creative{
		ID:             rec.ID,
		CampaignID:     rec.CampaignID,
		Headline:       rec.Headline,
		ThumbnailURL:   rec.ThumbnailURL,
		DestinationURL: rec.DestinationURL,
		Spend:          rec.Spend,
		Impressions:    rec.Impressions,
		Clicks:         rec.Clicks,
		Conversions:    rec.Conversions,
		CPA:            rec.CPA,
		ROAS:           rec.ROAS,
		Features:       featJSON,
		Status:         domain.CreativeActive,
		LastMetricsAt:  now,
	}
	if err := s.creatives.Upsert(ctx, c); err != nil {
		return fmt.Errorf("upsert creative %s: %w", rec.ID, err)
	}

	// Some report sources omit derived rate fields. Snapshot CTR and CPC
	// feed outcome classification, so recompute them from the raw counts
	// whenever the upstream value is missing.
	ctr := rec.CTR
	if ctr == 0 && rec.Impressions > 0 && rec.Clicks > 0 {
		ctr = float64(rec.Clicks) / float64(rec.Impressions) * 100
	}
	cpc := rec.CPC
	if cpc == 0 && rec.Clicks > 0 && rec.Spend > 0 {
		cpc = rec.Spend / float64(rec.Clicks)
	}
	snap := &domain.MetricSnapshot{
		ID:          uuid.New().String(),
		CreativeID:  rec.ID,
		CapturedAt:  now,
		Spend:       rec.Spend,
		Impressions: rec.Impressions,
		Clicks:      rec.Clicks,
		CTR:         ctr,
		CPC:         cpc,
		Conversions: rec.Conversions,
		CPA:         rec.CPA,
		ROAS:        rec.ROAS,
	}
	if err := s.snapshots.Append(ctx, snap); err != nil {
		return fmt.Errorf("append snapshot for %s: %w", rec.ID, err)
	}
	return nil
}

// CreativeHistory returns the creative with its action log and its most
// recent 30 snapshots, both most-recent-first. Errors if the creative
// does not exist.
func (s *Service) CreativeHistory(ctx context.Context, id string) (*domain.CreativeHistory, error) {
	c, err := s.creatives.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	actions, err := s.actions.ByCreative(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load actions for %s: %w", id, err)
	}
	snaps, err := s.snapshots.Recent(ctx, id, historySnapshotLimit)
	if err != nil {
		return nil, fmt.Errorf("load snapshots for %s: %w", id, err)
	}
	return &domain.CreativeHistory{Creative: *c, Actions: actions, Snapshots: snaps}, nil
}

// RecentActions returns the global most-recent-first action feed.
func (s *Service) RecentActions(ctx context.Context, limit int) ([]domain.ActionWithCreative, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.actions.Recent(ctx, limit)
}

// GetLearningConfig returns the account's config, lazily creating it with
// defaults on first access.
func (s *Service) GetLearningConfig(ctx context.Context, accountID string) (*domain.LearningConfig, error) {
	cfg, err := s.configs.Get(ctx, accountID)
	if err == nil {
		return cfg, nil
	}
	if err != ErrConfigNotFound {
		return nil, err
	}

	def := domain.DefaultLearningConfig(accountID)
	def.UpdatedAt = time.Now().UTC()
	if err := s.configs.Upsert(ctx, &def); err != nil {
		return nil, fmt.Errorf("create default config for %s: %w", accountID, err)
	}
	return &def, nil
}

// ConfigUpdate holds the mutable learning-config fields. Nil fields are
// not applied.
type ConfigUpdate struct {
	TargetCPA       *float64 `json:"target_cpa"`
	TargetROAS      *float64 `json:"target_roas"`
	MinSpend        *float64 `json:"min_spend"`
	MinConversions  *int64   `json:"min_conversions"`
	PauseWindowDays *int     `json:"pause_window_days"`
	ScaleWindowDays *int     `json:"scale_window_days"`
}

// UpdateLearningConfig applies a partial update to the account's config,
// creating it with defaults first if needed.
func (s *Service) UpdateLearningConfig(ctx context.Context, accountID string, u ConfigUpdate) (*domain.LearningConfig, error) {
	cfg, err := s.GetLearningConfig(ctx, accountID)
	if err != nil {
		return nil, err
	}

	if u.TargetCPA != nil {
		cfg.TargetCPA = *u.TargetCPA
	}
	if u.TargetROAS != nil {
		cfg.TargetROAS = *u.TargetROAS
	}
	if u.MinSpend != nil {
		cfg.MinSpend = *u.MinSpend
	}
	if u.MinConversions != nil {
		cfg.MinConversions = *u.MinConversions
	}
	if u.PauseWindowDays != nil {
		cfg.PauseWindowDays = *u.PauseWindowDays
	}
	if u.ScaleWindowDays != nil {
		cfg.ScaleWindowDays = *u.ScaleWindowDays
	}
	cfg.UpdatedAt = time.Now().UTC()

	if err := s.configs.Upsert(ctx, cfg); err != nil {
		return nil, fmt.Errorf("update config for %s: %w", accountID, err)
	}
	return cfg, nil
}

// ExecuteAutomatedAction logs a recommendation as a rule-sourced action,
// embedding the triggering metrics and confidence in the action inputs.
func (s *Service) ExecuteAutomatedAction(ctx context.Context, rec domain.ActionRecommendation) (string, error) {
	return s.LogAction(ctx, ActionInput{
		CreativeID: rec.CreativeID,
		Type:       rec.Action,
		Reason:     rec.Reason,
		Detail:     fmt.Sprintf("automated %s at confidence %d", rec.Action, rec.Confidence),
		Source:     domain.SourceRule,
		Inputs: map[string]any{
			"metrics":    rec.Metrics,
			"confidence": rec.Confidence,
		},
	})
}

func (s *Service) featuresOf(c domain.Creative) domain.FeatureBundle {
	var f domain.FeatureBundle
	if len(c.Features) > 0 {
		// Unparseable stored features degrade to a zero bundle.
		_ = json.Unmarshal(c.Features, &f)
	}
	return f
}

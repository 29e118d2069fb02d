package domain

import (
	"encoding/json"
	"time"
)

// ActionType enumerates lifecycle decisions taken on a creative.
type ActionType string

const (
	ActionTested ActionType = "tested"
	ActionScaled ActionType = "scaled"
	ActionPaused ActionType = "paused"
)

// DecisionSource records who or what made a lifecycle decision.
type DecisionSource string

const (
	SourceRule  DecisionSource = "rule"
	SourceHuman DecisionSource = "human"
	SourceModel DecisionSource = "model"
)

// Action is one immutable lifecycle decision logged against a creative.
// There is deliberately no state machine constraining the sequence of
// actions per creative; the log is append-only and unguarded.
type Action struct {
	ID         string          `json:"id" db:"id"`
	CreativeID string          `json:"creative_id" db:"creative_id"`
	Type       ActionType      `json:"type" db:"action_type"`
	Reason     string          `json:"reason" db:"reason"`
	Detail     string          `json:"detail" db:"detail"`
	Source     DecisionSource  `json:"source" db:"decision_source"`
	DecidedAt  time.Time       `json:"decided_at" db:"decided_at"`
	Inputs     json.RawMessage `json:"inputs" db:"inputs"`
}

// ActionWithCreative joins an action with minimal creative identity fields
// for feed-style listings.
type ActionWithCreative struct {
	Action
	CampaignID string `json:"campaign_id"`
	Headline   string `json:"headline"`
}

// LearningConfig holds per-account adaptive thresholds that drive
// rule-based scale/pause/test recommendations. One row per account,
// created lazily with defaults on first access.
type LearningConfig struct {
	AccountID       string    `json:"account_id" db:"account_id"`
	TargetCPA       float64   `json:"target_cpa" db:"target_cpa"`
	TargetROAS      float64   `json:"target_roas" db:"target_roas"`
	MinSpend        float64   `json:"min_spend" db:"min_spend"`
	MinConversions  int64     `json:"min_conversions" db:"min_conversions"`
	PauseWindowDays int       `json:"pause_window_days" db:"pause_window_days"`
	ScaleWindowDays int       `json:"scale_window_days" db:"scale_window_days"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}

// DefaultLearningConfig returns the thresholds used until an account is
// explicitly configured.
func DefaultLearningConfig(accountID string) LearningConfig {
	return LearningConfig{
		AccountID:       accountID,
		TargetCPA:       25.0,
		TargetROAS:      2.0,
		MinSpend:        50.0,
		MinConversions:  3,
		PauseWindowDays: 3,
		ScaleWindowDays: 7,
	}
}

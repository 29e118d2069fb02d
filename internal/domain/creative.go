package domain

import (
	"encoding/json"
	"time"
)

// CreativeStatus enumerates the delivery states of a creative.
type CreativeStatus string

const (
	CreativeActive CreativeStatus = "active"
	CreativePaused CreativeStatus = "paused"
)

// CreativeRecord is a raw creative+metrics row as supplied by an upstream
// ad-platform source. The engine does not fetch these itself; they arrive
// through the ingest collector.
type CreativeRecord struct {
	ID             string   `json:"id"`
	CampaignID     string   `json:"campaign_id"`
	Headline       string   `json:"headline"`
	ThumbnailURL   string   `json:"thumbnail_url"`
	DestinationURL string   `json:"destination_url"`
	Spend          float64  `json:"spend"`
	Impressions    int64    `json:"impressions"`
	Clicks         int64    `json:"clicks"`
	CTR            float64  `json:"ctr"`
	CPC            float64  `json:"cpc"`
	Conversions    int64    `json:"conversions"`
	CPA            *float64 `json:"cpa,omitempty"`
	ROAS           *float64 `json:"roas,omitempty"`
}

// ConversionRate returns conversions/clicks in percent, 0 when no clicks.
func (r CreativeRecord) ConversionRate() float64 {
	if r.Clicks == 0 {
		return 0
	}
	return float64(r.Conversions) / float64(r.Clicks) * 100
}

// Creative is the persisted aggregate row for a creative. Created on first
// ingestion, updated on every metrics refresh, never deleted.
type Creative struct {
	ID             string          `json:"id" db:"id"`
	CampaignID     string          `json:"campaign_id" db:"campaign_id"`
	Headline       string          `json:"headline" db:"headline"`
	ThumbnailURL   string          `json:"thumbnail_url" db:"thumbnail_url"`
	DestinationURL string          `json:"destination_url" db:"destination_url"`
	Spend          float64         `json:"spend" db:"spend"`
	Impressions    int64           `json:"impressions" db:"impressions"`
	Clicks         int64           `json:"clicks" db:"clicks"`
	Conversions    int64           `json:"conversions" db:"conversions"`
	CPA            *float64        `json:"cpa" db:"cpa"`
	ROAS           *float64        `json:"roas" db:"roas"`
	Features       json.RawMessage `json:"features" db:"features"`
	Status         CreativeStatus  `json:"status" db:"status"`
	LastMetricsAt  time.Time       `json:"last_metrics_at" db:"last_metrics_at"`
	CreatedAt      time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at" db:"updated_at"`
}

// CTR returns clicks/impressions in percent, 0 when no impressions.
func (c Creative) CTR() float64 {
	if c.Impressions == 0 {
		return 0
	}
	return float64(c.Clicks) / float64(c.Impressions) * 100
}

// MetricSnapshot is one append-only performance observation for a creative.
// Snapshots are immutable once written and ordered by CapturedAt per creative.
type MetricSnapshot struct {
	ID          string    `json:"id" db:"id"`
	CreativeID  string    `json:"creative_id" db:"creative_id"`
	CapturedAt  time.Time `json:"captured_at" db:"captured_at"`
	Spend       float64   `json:"spend" db:"spend"`
	Impressions int64     `json:"impressions" db:"impressions"`
	Clicks      int64     `json:"clicks" db:"clicks"`
	CTR         float64   `json:"ctr" db:"ctr"`
	CPC         float64   `json:"cpc" db:"cpc"`
	Conversions int64     `json:"conversions" db:"conversions"`
	CPA         *float64  `json:"cpa" db:"cpa"`
	ROAS        *float64  `json:"roas" db:"roas"`
}

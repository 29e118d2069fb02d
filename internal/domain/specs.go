package domain

import (
	"encoding/json"
	"time"
)

// HeadlinePolicy holds platform limits for headline text.
type HeadlinePolicy struct {
	MaxChars    int      `json:"max_chars"`
	WarnChars   int      `json:"warn_chars"`
	BannedWords []string `json:"banned_words"`
}

// ImagePolicy holds platform limits for creative images.
type ImagePolicy struct {
	AllowedFormats  []string `json:"allowed_formats"`
	MaxBytes        int64    `json:"max_bytes"`
	MinWidth        int      `json:"min_width"`
	MinHeight       int      `json:"min_height"`
	TargetAspect    float64  `json:"target_aspect"`
	AspectTolerance float64  `json:"aspect_tolerance"`
}

// PlatformPolicy is one versioned statement of creative-policy constraints.
type PlatformPolicy struct {
	Headline HeadlinePolicy `json:"headline"`
	Image    ImagePolicy    `json:"image"`
}

// SpecSnapshot is one row in the append-only policy snapshot log. Only the
// most recent fresh row is "current"; older rows are retained for audit.
type SpecSnapshot struct {
	ID        string          `json:"id" db:"id"`
	Version   string          `json:"version" db:"version"`
	FetchedAt time.Time       `json:"fetched_at" db:"fetched_at"`
	Policy    PlatformPolicy  `json:"policy"`
	Raw       json.RawMessage `json:"-" db:"policy"`
}

// HeadlineValidation is the result of checking a headline against policy.
// Warnings never invalidate; only hard errors do.
type HeadlineValidation struct {
	IsValid         bool     `json:"is_valid"`
	Score           int      `json:"score"`
	Errors          []string `json:"errors"`
	Warnings        []string `json:"warnings"`
	HasDigits       bool     `json:"has_digits"`
	HasSpecialChars bool     `json:"has_special_chars"`
	HasCTA          bool     `json:"has_cta"`
	Sentiment       string   `json:"sentiment"`
}

// ImageValidation is the result of checking an image URL against policy.
// Dimensions are estimated from size hints in the URL string, not fetched.
type ImageValidation struct {
	IsValid         bool     `json:"is_valid"`
	Score           int      `json:"score"`
	Format          string   `json:"format"`
	Bytes           int64    `json:"bytes"`
	EstimatedWidth  int      `json:"estimated_width"`
	EstimatedHeight int      `json:"estimated_height"`
	AspectRatio     float64  `json:"aspect_ratio"`
	Errors          []string `json:"errors"`
	Warnings        []string `json:"warnings"`
}

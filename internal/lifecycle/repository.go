package lifecycle

import (
	"context"
	"time"

	"github.com/ignite/creative-engine/internal/domain"
)

// CreativeRepo defines the data access contract for creative aggregates.
// Implementations must be safe for concurrent use.
type CreativeRepo interface {
	// Upsert inserts the creative or refreshes its aggregates in place.
	// Creatives are never deleted.
	Upsert(ctx context.Context, c *domain.Creative) error

	// Get returns a single creative. Returns ErrCreativeNotFound if it
	// doesn't exist.
	Get(ctx context.Context, id string) (*domain.Creative, error)

	// ListAll returns every creative. Batch-scan use only; callers must
	// not invoke this inside a user-facing request path.
	ListAll(ctx context.Context) ([]domain.Creative, error)
}

// SnapshotRepo defines the append-only metric snapshot series contract.
type SnapshotRepo interface {
	// Append inserts one snapshot. Snapshots are immutable once written.
	Append(ctx context.Context, s *domain.MetricSnapshot) error

	// Recent returns up to limit snapshots for a creative, most-recent-first.
	Recent(ctx context.Context, creativeID string, limit int) ([]domain.MetricSnapshot, error)

	// LastBefore returns the snapshot immediately preceding t for the
	// creative, or ErrSnapshotNotFound.
	LastBefore(ctx context.Context, creativeID string, t time.Time) (*domain.MetricSnapshot, error)

	// FirstAfter returns the snapshot immediately following t for the
	// creative, or ErrSnapshotNotFound.
	FirstAfter(ctx context.Context, creativeID string, t time.Time) (*domain.MetricSnapshot, error)

	// Latest returns the most recent snapshot for the creative, or
	// ErrSnapshotNotFound.
	Latest(ctx context.Context, creativeID string) (*domain.MetricSnapshot, error)
}

// ActionRepo defines the append-only action log contract.
type ActionRepo interface {
	// Insert appends one action and returns its id.
	Insert(ctx context.Context, a *domain.Action) (string, error)

	// ByCreative returns all actions for a creative, most-recent-first.
	ByCreative(ctx context.Context, creativeID string) ([]domain.Action, error)

	// Recent returns the global action feed joined with minimal creative
	// identity fields, most-recent-first.
	Recent(ctx context.Context, limit int) ([]domain.ActionWithCreative, error)

	// DecidedSince returns actions decided at or after the given time.
	DecidedSince(ctx context.Context, since time.Time) ([]domain.Action, error)
}

// ConfigRepo defines per-account learning config persistence.
type ConfigRepo interface {
	// Get returns the account's config, or ErrConfigNotFound.
	Get(ctx context.Context, accountID string) (*domain.LearningConfig, error)

	// Upsert creates or replaces the account's config.
	Upsert(ctx context.Context, cfg *domain.LearningConfig) error
}

package specs

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/ignite/creative-engine/internal/domain"
	"github.com/ignite/creative-engine/internal/pkg/httpretry"
	"github.com/ignite/creative-engine/internal/pkg/logger"
)

// ErrNoSnapshot is returned by SnapshotRepo.Latest when the log is empty.
var ErrNoSnapshot = errors.New("no spec snapshot stored")

// SnapshotRepo is the append-only persistence contract for policy
// snapshots. Implementations must be safe for concurrent use.
type SnapshotRepo interface {
	// Append inserts a new snapshot row. Rows are never updated or deleted.
	Append(ctx context.Context, snap *domain.SpecSnapshot) error

	// Latest returns the most recently fetched snapshot, or ErrNoSnapshot.
	Latest(ctx context.Context) (*domain.SpecSnapshot, error)
}

// Client maintains the process-local policy cache and exposes validation.
// One Client is constructed at process start and shared; all methods are
// safe for concurrent use.
type Client struct {
	repo        SnapshotRepo
	fetcher     PolicyFetcher
	ttl         time.Duration
	headClient  httpretry.HTTPDoer
	headTimeout time.Duration

	mu     sync.Mutex
	cached *domain.SpecSnapshot
}

// Option tweaks Client construction.
type Option func(*Client)

// WithTTL overrides the 24h snapshot freshness window.
func WithTTL(ttl time.Duration) Option {
	return func(c *Client) { c.ttl = ttl }
}

// WithHeadClient replaces the HTTP client used for image HEAD probes.
func WithHeadClient(doer httpretry.HTTPDoer) Option {
	return func(c *Client) { c.headClient = doer }
}

// NewClient creates the shared specs client. repo may be nil (cache-only
// operation, e.g. in tests); fetcher must not be nil.
func NewClient(repo SnapshotRepo, fetcher PolicyFetcher, opts ...Option) *Client {
	c := &Client{
		repo:        repo,
		fetcher:     fetcher,
		ttl:         snapshotTTL,
		headTimeout: 5 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.headClient == nil {
		// Image probes use a fixed timeout and deliberately no retries.
		c.headClient = &http.Client{Timeout: c.headTimeout}
	}
	return c
}

// Current returns the current policy snapshot. It never returns nil:
// failures degrade through fresh cache -> fresh persisted row -> fetch ->
// stale cache -> stale persisted row -> hardcoded default.
func (c *Client) Current(ctx context.Context) *domain.SpecSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cached != nil && time.Since(c.cached.FetchedAt) < c.ttl {
		return c.cached
	}

	// A fresh row persisted by another instance beats refetching.
	if c.cached == nil && c.repo != nil {
		if snap, err := c.repo.Latest(ctx); err == nil && time.Since(snap.FetchedAt) < c.ttl {
			c.cached = snap
			return c.cached
		}
	}

	snap, err := c.fetcher.Fetch(ctx)
	if err == nil {
		if c.repo != nil {
			if perr := c.repo.Append(ctx, snap); perr != nil {
				// Persisting is best effort; the fetched snapshot still serves.
				logger.Warn("persist spec snapshot failed", "version", snap.Version, "error", perr.Error())
			}
		}
		c.cached = snap
		return c.cached
	}
	logger.Warn("policy fetch failed, falling back", "error", err.Error())

	if c.cached != nil {
		return c.cached // stale but usable
	}
	if c.repo != nil {
		if snap, rerr := c.repo.Latest(ctx); rerr == nil {
			c.cached = snap
			return c.cached
		}
	}
	return defaultSnapshot()
}

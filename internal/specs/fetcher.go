package specs

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/ignite/creative-engine/internal/domain"
	"github.com/ignite/creative-engine/internal/pkg/httpretry"
)

// PolicyFetcher obtains a fresh policy snapshot from upstream.
type PolicyFetcher interface {
	Fetch(ctx context.Context) (*domain.SpecSnapshot, error)
}

// HTTPFetcher pulls the policy document from a configured URL. Responses
// are retried with backoff since policy endpoints are rate limited.
type HTTPFetcher struct {
	url    string
	client httpretry.HTTPDoer
}

// NewHTTPFetcher creates a fetcher against the given policy URL.
func NewHTTPFetcher(url string) *HTTPFetcher {
	return &HTTPFetcher{
		url:    url,
		client: httpretry.NewRetryClient(&http.Client{Timeout: 15 * time.Second}, 2),
	}
}

// Fetch downloads and decodes the policy document.
func (f *HTTPFetcher) Fetch(ctx context.Context) (*domain.SpecSnapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build policy request: %w", err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch policy: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("fetch policy: unexpected status %d", resp.StatusCode)
	}

	var policy domain.PlatformPolicy
	if err := json.NewDecoder(resp.Body).Decode(&policy); err != nil {
		return nil, fmt.Errorf("decode policy: %w", err)
	}

	now := time.Now().UTC()
	return &domain.SpecSnapshot{
		ID:        uuid.New().String(),
		Version:   "remote-" + now.Format("2006.01.02-150405"),
		FetchedAt: now,
		Policy:    policy,
	}, nil
}

// Synthesizer stands in for a genuine upstream policy API: it returns a
// new versioned snapshot of the baseline policy stamped with the current
// time. Used when no policy URL is configured.
type Synthesizer struct{}

// Fetch synthesizes a fresh snapshot.
func (Synthesizer) Fetch(_ context.Context) (*domain.SpecSnapshot, error) {
	now := time.Now().UTC()
	return &domain.SpecSnapshot{
		ID:        uuid.New().String(),
		Version:   "v" + now.Format("2006.01.02-150405"),
		FetchedAt: now,
		Policy:    DefaultPolicy(),
	}, nil
}

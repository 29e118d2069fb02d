package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"github.com/ignite/creative-engine/internal/domain"
	"github.com/ignite/creative-engine/internal/pkg/httpretry"
)

// HTTPSource fetches creative rows from a JSON reporting endpoint. The
// endpoint returns an array of creative performance objects.
type HTTPSource struct {
	client httpretry.HTTPDoer
	url    string
	apiKey string
}

func NewHTTPSource(url, apiKey string) *HTTPSource {
	return &HTTPSource{
		client: httpretry.NewRetryClient(nil, 3),
		url:    url,
		apiKey: apiKey,
	}
}

func (s *HTTPSource) Fetch(ctx context.Context) ([]domain.CreativeRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build report request: %w", err)
	}
	if s.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch creative report: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("creative report returned status %d", resp.StatusCode)
	}

	var records []domain.CreativeRecord
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode creative report: %w", err)
	}
	return records, nil
}

// FileSource reads creative rows from a local JSON file. Useful for
// development and backfills from report exports.
type FileSource struct{ path string }

func NewFileSource(path string) *FileSource { return &FileSource{path: path} }

func (s *FileSource) Fetch(_ context.Context) ([]domain.CreativeRecord, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read creative file: %w", err)
	}
	var records []domain.CreativeRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse creative file: %w", err)
	}
	return records, nil
}

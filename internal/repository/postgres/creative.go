package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ignite/creative-engine/internal/domain"
	"github.com/ignite/creative-engine/internal/lifecycle"
)

// CreativeRepo implements lifecycle.CreativeRepo against PostgreSQL.
type CreativeRepo struct{ db *sql.DB }

// NewCreativeRepo creates a Postgres-backed creative repository.
func NewCreativeRepo(db *sql.DB) *CreativeRepo { return &CreativeRepo{db: db} }

const creativeColumns = `id, campaign_id, headline, thumbnail_url, destination_url,
	       spend, impressions, clicks, conversions, cpa, roas,
	       COALESCE(features, '{}'), status, last_metrics_at, created_at, updated_at`

func (r *CreativeRepo) Upsert(ctx context.Context, c *domain.Creative) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO creatives
			(id, campaign_id, headline, thumbnail_url, destination_url,
			 spend, impressions, clicks, conversions, cpa, roas,
			 features, status, last_metrics_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, NOW(), NOW())
		ON CONFLICT (id) DO UPDATE SET
			campaign_id     = EXCLUDED.campaign_id,
			headline        = EXCLUDED.headline,
			thumbnail_url   = EXCLUDED.thumbnail_url,
			destination_url = EXCLUDED.destination_url,
			spend           = EXCLUDED.spend,
			impressions     = EXCLUDED.impressions,
			clicks          = EXCLUDED.clicks,
			conversions     = EXCLUDED.conversions,
			cpa             = EXCLUDED.cpa,
			roas            = EXCLUDED.roas,
			features        = EXCLUDED.features,
			status          = EXCLUDED.status,
			last_metrics_at = EXCLUDED.last_metrics_at,
			updated_at      = NOW()
	`, c.ID, c.CampaignID, c.Headline, c.ThumbnailURL, c.DestinationURL,
		c.Spend, c.Impressions, c.Clicks, c.Conversions, c.CPA, c.ROAS,
		[]byte(c.Features), c.Status, c.LastMetricsAt)
	if err != nil {
		return fmt.Errorf("upsert creative: %w", err)
	}
	return nil
}

func (r *CreativeRepo) Get(ctx context.Context, id string) (*domain.Creative, error) {
	c := &domain.Creative{}
	var features []byte
	err := r.db.QueryRowContext(ctx, `
		SELECT `+creativeColumns+`
		FROM creatives
		WHERE id = $1
	`, id).Scan(
		&c.ID, &c.CampaignID, &c.Headline, &c.ThumbnailURL, &c.DestinationURL,
		&c.Spend, &c.Impressions, &c.Clicks, &c.Conversions, &c.CPA, &c.ROAS,
		&features, &c.Status, &c.LastMetricsAt, &c.CreatedAt, &c.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, lifecycle.ErrCreativeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get creative: %w", err)
	}
	c.Features = features
	return c, nil
}

func (r *CreativeRepo) ListAll(ctx context.Context) ([]domain.Creative, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+creativeColumns+`
		FROM creatives
		ORDER BY created_at
	`)
	if err != nil {
		return nil, fmt.Errorf("list creatives: %w", err)
	}
	defer rows.Close()

	var out []domain.Creative
	for rows.Next() {
		var c domain.Creative
		var features []byte
		if err := rows.Scan(
			&c.ID, &c.CampaignID, &c.Headline, &c.ThumbnailURL, &c.DestinationURL,
			&c.Spend, &c.Impressions, &c.Clicks, &c.Conversions, &c.CPA, &c.ROAS,
			&features, &c.Status, &c.LastMetricsAt, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan creative: %w", err)
		}
		c.Features = features
		out = append(out, c)
	}
	return out, rows.Err()
}

package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/ignite/creative-engine/internal/domain"
	"github.com/ignite/creative-engine/internal/lifecycle"
)

// SnapshotRepo implements lifecycle.SnapshotRepo against PostgreSQL.
// The metric_snapshots table is append-only.
type SnapshotRepo struct{ db *sql.DB }

// NewSnapshotRepo creates a Postgres-backed metric snapshot repository.
func NewSnapshotRepo(db *sql.DB) *SnapshotRepo { return &SnapshotRepo{db: db} }

const snapshotColumns = `id, creative_id, captured_at, spend, impressions, clicks,
	       ctr, cpc, conversions, cpa, roas`

func (r *SnapshotRepo) Append(ctx context.Context, s *domain.MetricSnapshot) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO metric_snapshots
			(id, creative_id, captured_at, spend, impressions, clicks,
			 ctr, cpc, conversions, cpa, roas)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, s.ID, s.CreativeID, s.CapturedAt, s.Spend, s.Impressions, s.Clicks,
		s.CTR, s.CPC, s.Conversions, s.CPA, s.ROAS)
	if err != nil {
		return fmt.Errorf("append snapshot: %w", err)
	}
	return nil
}

func (r *SnapshotRepo) Recent(ctx context.Context, creativeID string, limit int) ([]domain.MetricSnapshot, error) {
	if limit <= 0 {
		limit = 30
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+snapshotColumns+`
		FROM metric_snapshots
		WHERE creative_id = $1
		ORDER BY captured_at DESC
		LIMIT $2
	`, creativeID, limit)
	if err != nil {
		return nil, fmt.Errorf("recent snapshots: %w", err)
	}
	defer rows.Close()

	var out []domain.MetricSnapshot
	for rows.Next() {
		var s domain.MetricSnapshot
		if err := scanSnapshot(rows, &s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *SnapshotRepo) LastBefore(ctx context.Context, creativeID string, t time.Time) (*domain.MetricSnapshot, error) {
	return r.one(ctx, `
		SELECT `+snapshotColumns+`
		FROM metric_snapshots
		WHERE creative_id = $1 AND captured_at < $2
		ORDER BY captured_at DESC
		LIMIT 1
	`, creativeID, t)
}

func (r *SnapshotRepo) FirstAfter(ctx context.Context, creativeID string, t time.Time) (*domain.MetricSnapshot, error) {
	return r.one(ctx, `
		SELECT `+snapshotColumns+`
		FROM metric_snapshots
		WHERE creative_id = $1 AND captured_at > $2
		ORDER BY captured_at ASC
		LIMIT 1
	`, creativeID, t)
}

func (r *SnapshotRepo) Latest(ctx context.Context, creativeID string) (*domain.MetricSnapshot, error) {
	return r.one(ctx, `
		SELECT `+snapshotColumns+`
		FROM metric_snapshots
		WHERE creative_id = $1
		ORDER BY captured_at DESC
		LIMIT 1
	`, creativeID)
}

func (r *SnapshotRepo) one(ctx context.Context, q string, args ...interface{}) (*domain.MetricSnapshot, error) {
	s := &domain.MetricSnapshot{}
	err := r.db.QueryRowContext(ctx, q, args...).Scan(
		&s.ID, &s.CreativeID, &s.CapturedAt, &s.Spend, &s.Impressions, &s.Clicks,
		&s.CTR, &s.CPC, &s.Conversions, &s.CPA, &s.ROAS,
	)
	if err == sql.ErrNoRows {
		return nil, lifecycle.ErrSnapshotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get snapshot: %w", err)
	}
	return s, nil
}

func scanSnapshot(rows *sql.Rows, s *domain.MetricSnapshot) error {
	if err := rows.Scan(
		&s.ID, &s.CreativeID, &s.CapturedAt, &s.Spend, &s.Impressions, &s.Clicks,
		&s.CTR, &s.CPC, &s.Conversions, &s.CPA, &s.ROAS,
	); err != nil {
		return fmt.Errorf("scan snapshot: %w", err)
	}
	return nil
}

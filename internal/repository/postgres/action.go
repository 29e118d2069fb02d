package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/ignite/creative-engine/internal/domain"
)

// ActionRepo implements lifecycle.ActionRepo against PostgreSQL.
// The creative_actions table is an append-only decision log.
type ActionRepo struct{ db *sql.DB }

// NewActionRepo creates a Postgres-backed action log repository.
func NewActionRepo(db *sql.DB) *ActionRepo { return &ActionRepo{db: db} }

const actionColumns = `id, creative_id, action_type, reason, COALESCE(detail,''),
	       decision_source, decided_at, COALESCE(inputs, '{}')`

func (r *ActionRepo) Insert(ctx context.Context, a *domain.Action) (string, error) {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO creative_actions
			(id, creative_id, action_type, reason, detail, decision_source, decided_at, inputs)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, a.ID, a.CreativeID, a.Type, a.Reason, a.Detail, a.Source, a.DecidedAt, []byte(a.Inputs))
	if err != nil {
		return "", fmt.Errorf("insert action: %w", err)
	}
	return a.ID, nil
}

func (r *ActionRepo) ByCreative(ctx context.Context, creativeID string) ([]domain.Action, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+actionColumns+`
		FROM creative_actions
		WHERE creative_id = $1
		ORDER BY decided_at DESC
	`, creativeID)
	if err != nil {
		return nil, fmt.Errorf("actions by creative: %w", err)
	}
	defer rows.Close()
	return collectActions(rows)
}

func (r *ActionRepo) Recent(ctx context.Context, limit int) ([]domain.ActionWithCreative, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT a.id, a.creative_id, a.action_type, a.reason, COALESCE(a.detail,''),
		       a.decision_source, a.decided_at, COALESCE(a.inputs, '{}'),
		       COALESCE(c.campaign_id,''), COALESCE(c.headline,'')
		FROM creative_actions a
		LEFT JOIN creatives c ON c.id = a.creative_id
		ORDER BY a.decided_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("recent actions: %w", err)
	}
	defer rows.Close()

	var out []domain.ActionWithCreative
	for rows.Next() {
		var a domain.ActionWithCreative
		var inputs []byte
		if err := rows.Scan(
			&a.ID, &a.CreativeID, &a.Type, &a.Reason, &a.Detail,
			&a.Source, &a.DecidedAt, &inputs,
			&a.CampaignID, &a.Headline,
		); err != nil {
			return nil, fmt.Errorf("scan action feed: %w", err)
		}
		a.Inputs = inputs
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *ActionRepo) DecidedSince(ctx context.Context, since time.Time) ([]domain.Action, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+actionColumns+`
		FROM creative_actions
		WHERE decided_at >= $1
		ORDER BY decided_at
	`, since)
	if err != nil {
		return nil, fmt.Errorf("actions since: %w", err)
	}
	defer rows.Close()
	return collectActions(rows)
}

func collectActions(rows *sql.Rows) ([]domain.Action, error) {
	var out []domain.Action
	for rows.Next() {
		var a domain.Action
		var inputs []byte
		if err := rows.Scan(
			&a.ID, &a.CreativeID, &a.Type, &a.Reason, &a.Detail,
			&a.Source, &a.DecidedAt, &inputs,
		); err != nil {
			return nil, fmt.Errorf("scan action: %w", err)
		}
		a.Inputs = inputs
		out = append(out, a)
	}
	return out, rows.Err()
}

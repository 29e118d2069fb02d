package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/ignite/creative-engine/internal/domain"
	"github.com/ignite/creative-engine/internal/specs"
)

// SpecSnapshotRepo implements specs.SnapshotRepo against PostgreSQL.
// Every fetched policy version is kept as an audit trail.
type SpecSnapshotRepo struct{ db *sql.DB }

// NewSpecSnapshotRepo creates a Postgres-backed spec snapshot repository.
func NewSpecSnapshotRepo(db *sql.DB) *SpecSnapshotRepo { return &SpecSnapshotRepo{db: db} }

func (r *SpecSnapshotRepo) Append(ctx context.Context, snap *domain.SpecSnapshot) error {
	if snap.ID == "" {
		snap.ID = uuid.New().String()
	}
	policy, err := json.Marshal(snap.Policy)
	if err != nil {
		return fmt.Errorf("marshal policy: %w", err)
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO spec_snapshots (id, version, fetched_at, policy)
		VALUES ($1, $2, $3, $4)
	`, snap.ID, snap.Version, snap.FetchedAt, policy)
	if err != nil {
		return fmt.Errorf("append spec snapshot: %w", err)
	}
	return nil
}

func (r *SpecSnapshotRepo) Latest(ctx context.Context) (*domain.SpecSnapshot, error) {
	snap := &domain.SpecSnapshot{}
	var policy []byte
	err := r.db.QueryRowContext(ctx, `
		SELECT id, version, fetched_at, policy
		FROM spec_snapshots
		ORDER BY fetched_at DESC
		LIMIT 1
	`).Scan(&snap.ID, &snap.Version, &snap.FetchedAt, &policy)
	if err == sql.ErrNoRows {
		return nil, specs.ErrNoSnapshot
	}
	if err != nil {
		return nil, fmt.Errorf("latest spec snapshot: %w", err)
	}
	if err := json.Unmarshal(policy, &snap.Policy); err != nil {
		return nil, fmt.Errorf("unmarshal policy: %w", err)
	}
	snap.Raw = policy
	return snap, nil
}

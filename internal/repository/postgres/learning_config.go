package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ignite/creative-engine/internal/domain"
	"github.com/ignite/creative-engine/internal/lifecycle"
)

// LearningConfigRepo implements lifecycle.ConfigRepo against PostgreSQL.
type LearningConfigRepo struct{ db *sql.DB }

// NewLearningConfigRepo creates a Postgres-backed learning config repository.
func NewLearningConfigRepo(db *sql.DB) *LearningConfigRepo { return &LearningConfigRepo{db: db} }

func (r *LearningConfigRepo) Get(ctx context.Context, accountID string) (*domain.LearningConfig, error) {
	cfg := &domain.LearningConfig{}
	err := r.db.QueryRowContext(ctx, `
		SELECT account_id, target_cpa, target_roas, min_spend, min_conversions,
		       pause_window_days, scale_window_days, updated_at
		FROM learning_configs
		WHERE account_id = $1
	`, accountID).Scan(
		&cfg.AccountID, &cfg.TargetCPA, &cfg.TargetROAS, &cfg.MinSpend, &cfg.MinConversions,
		&cfg.PauseWindowDays, &cfg.ScaleWindowDays, &cfg.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, lifecycle.ErrConfigNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get learning config: %w", err)
	}
	return cfg, nil
}

func (r *LearningConfigRepo) Upsert(ctx context.Context, cfg *domain.LearningConfig) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO learning_configs
			(account_id, target_cpa, target_roas, min_spend, min_conversions,
			 pause_window_days, scale_window_days, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		ON CONFLICT (account_id) DO UPDATE SET
			target_cpa        = EXCLUDED.target_cpa,
			target_roas       = EXCLUDED.target_roas,
			min_spend         = EXCLUDED.min_spend,
			min_conversions   = EXCLUDED.min_conversions,
			pause_window_days = EXCLUDED.pause_window_days,
			scale_window_days = EXCLUDED.scale_window_days,
			updated_at        = NOW()
	`, cfg.AccountID, cfg.TargetCPA, cfg.TargetROAS, cfg.MinSpend, cfg.MinConversions,
		cfg.PauseWindowDays, cfg.ScaleWindowDays)
	if err != nil {
		return fmt.Errorf("upsert learning config: %w", err)
	}
	return nil
}

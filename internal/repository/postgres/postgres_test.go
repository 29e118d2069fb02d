package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignite/creative-engine/internal/domain"
	"github.com/ignite/creative-engine/internal/lifecycle"
	"github.com/ignite/creative-engine/internal/specs"
)

func setupTestDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	return db, mock, func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	}
}

func TestCreativeRepoUpsert(t *testing.T) {
	db, mock, cleanup := setupTestDB(t)
	defer cleanup()

	mock.ExpectExec("INSERT INTO creatives").
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewCreativeRepo(db)
	err := repo.Upsert(context.Background(), &domain.Creative{
		ID:         "cr-1",
		CampaignID: "camp-1",
		Headline:   "5 Ways to Save",
		Features:   []byte(`{}`),
		Status:     domain.CreativeActive,
	})
	require.NoError(t, err)
}

func TestCreativeRepoGetNotFound(t *testing.T) {
	db, mock, cleanup := setupTestDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT (.+) FROM creatives").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	repo := NewCreativeRepo(db)
	_, err := repo.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, lifecycle.ErrCreativeNotFound)
}

func TestCreativeRepoGet(t *testing.T) {
	db, mock, cleanup := setupTestDB(t)
	defer cleanup()

	now := time.Now()
	cpa := 15.0
	rows := sqlmock.NewRows([]string{
		"id", "campaign_id", "headline", "thumbnail_url", "destination_url",
		"spend", "impressions", "clicks", "conversions", "cpa", "roas",
		"features", "status", "last_metrics_at", "created_at", "updated_at",
	}).AddRow(
		"cr-1", "camp-1", "5 Ways to Save", "", "https://shop.example.com",
		120.0, int64(10000), int64(200), int64(8), cpa, nil,
		[]byte(`{"headline":{"has_numerals":true}}`), "active", now, now, now,
	)
	mock.ExpectQuery("SELECT (.+) FROM creatives").
		WithArgs("cr-1").
		WillReturnRows(rows)

	repo := NewCreativeRepo(db)
	c, err := repo.Get(context.Background(), "cr-1")
	require.NoError(t, err)
	assert.Equal(t, "cr-1", c.ID)
	assert.InDelta(t, 2.0, c.CTR(), 0.001)
	require.NotNil(t, c.CPA)
	assert.InDelta(t, 15.0, *c.CPA, 0.001)
	assert.Nil(t, c.ROAS)
	assert.Contains(t, string(c.Features), "has_numerals")
}

func TestSnapshotRepoAppendAssignsID(t *testing.T) {
	db, mock, cleanup := setupTestDB(t)
	defer cleanup()

	mock.ExpectExec("INSERT INTO metric_snapshots").
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewSnapshotRepo(db)
	snap := &domain.MetricSnapshot{CreativeID: "cr-1", CapturedAt: time.Now(), CTR: 1.5}
	require.NoError(t, repo.Append(context.Background(), snap))
	assert.NotEmpty(t, snap.ID)
}

func TestSnapshotRepoLastBeforeNotFound(t *testing.T) {
	db, mock, cleanup := setupTestDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT (.+) FROM metric_snapshots").
		WillReturnError(sql.ErrNoRows)

	repo := NewSnapshotRepo(db)
	_, err := repo.LastBefore(context.Background(), "cr-1", time.Now())
	assert.ErrorIs(t, err, lifecycle.ErrSnapshotNotFound)
}

func TestSnapshotRepoRecent(t *testing.T) {
	db, mock, cleanup := setupTestDB(t)
	defer cleanup()

	now := time.Now()
	rows := sqlmock.NewRows([]string{
		"id", "creative_id", "captured_at", "spend", "impressions", "clicks",
		"ctr", "cpc", "conversions", "cpa", "roas",
	}).
		AddRow("s-2", "cr-1", now, 60.0, int64(5000), int64(110), 2.2, 0.55, int64(4), nil, nil).
		AddRow("s-1", "cr-1", now.Add(-time.Hour), 50.0, int64(4000), int64(80), 2.0, 0.62, int64(3), nil, nil)
	mock.ExpectQuery("SELECT (.+) FROM metric_snapshots").
		WithArgs("cr-1", 30).
		WillReturnRows(rows)

	repo := NewSnapshotRepo(db)
	out, err := repo.Recent(context.Background(), "cr-1", 0)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "s-2", out[0].ID)
	assert.InDelta(t, 2.2, out[0].CTR, 0.001)
}

func TestActionRepoInsertAssignsID(t *testing.T) {
	db, mock, cleanup := setupTestDB(t)
	defer cleanup()

	mock.ExpectExec("INSERT INTO creative_actions").
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewActionRepo(db)
	id, err := repo.Insert(context.Background(), &domain.Action{
		CreativeID: "cr-1",
		Type:       domain.ActionPaused,
		Reason:     "cpa above target",
		Source:     domain.SourceRule,
		DecidedAt:  time.Now(),
		Inputs:     []byte(`{"cpa":42}`),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, id)
}

func TestActionRepoRecentJoinsCreative(t *testing.T) {
	db, mock, cleanup := setupTestDB(t)
	defer cleanup()

	now := time.Now()
	rows := sqlmock.NewRows([]string{
		"id", "creative_id", "action_type", "reason", "detail",
		"decision_source", "decided_at", "inputs", "campaign_id", "headline",
	}).AddRow(
		"a-1", "cr-1", "scaled", "meets targets", "",
		"rule", now, []byte(`{}`), "camp-1", "5 Ways to Save",
	)
	mock.ExpectQuery("SELECT (.+) FROM creative_actions a").
		WithArgs(20).
		WillReturnRows(rows)

	repo := NewActionRepo(db)
	out, err := repo.Recent(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, domain.ActionScaled, out[0].Type)
	assert.Equal(t, "camp-1", out[0].CampaignID)
	assert.Equal(t, "5 Ways to Save", out[0].Headline)
}

func TestLearningConfigRepoGetNotFound(t *testing.T) {
	db, mock, cleanup := setupTestDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT (.+) FROM learning_configs").
		WithArgs("acct-1").
		WillReturnError(sql.ErrNoRows)

	repo := NewLearningConfigRepo(db)
	_, err := repo.Get(context.Background(), "acct-1")
	assert.ErrorIs(t, err, lifecycle.ErrConfigNotFound)
}

func TestLearningConfigRepoUpsert(t *testing.T) {
	db, mock, cleanup := setupTestDB(t)
	defer cleanup()

	mock.ExpectExec("INSERT INTO learning_configs").
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewLearningConfigRepo(db)
	cfg := domain.DefaultLearningConfig("acct-1")
	require.NoError(t, repo.Upsert(context.Background(), &cfg))
}

func TestSpecSnapshotRepoRoundTrip(t *testing.T) {
	db, mock, cleanup := setupTestDB(t)
	defer cleanup()

	mock.ExpectExec("INSERT INTO spec_snapshots").
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewSpecSnapshotRepo(db)
	snap := &domain.SpecSnapshot{
		Version:   "v2026-01-01",
		FetchedAt: time.Now(),
		Policy:    specs.DefaultPolicy(),
	}
	require.NoError(t, repo.Append(context.Background(), snap))
	assert.NotEmpty(t, snap.ID)

	rows := sqlmock.NewRows([]string{"id", "version", "fetched_at", "policy"}).
		AddRow(snap.ID, snap.Version, snap.FetchedAt, []byte(`{"headline":{"max_chars":60}}`))
	mock.ExpectQuery("SELECT (.+) FROM spec_snapshots").
		WillReturnRows(rows)

	got, err := repo.Latest(context.Background())
	require.NoError(t, err)
	assert.Equal(t, snap.Version, got.Version)
	assert.Equal(t, 60, got.Policy.Headline.MaxChars)
}

func TestSpecSnapshotRepoLatestEmpty(t *testing.T) {
	db, mock, cleanup := setupTestDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT (.+) FROM spec_snapshots").
		WillReturnError(sql.ErrNoRows)

	repo := NewSpecSnapshotRepo(db)
	_, err := repo.Latest(context.Background())
	assert.ErrorIs(t, err, specs.ErrNoSnapshot)
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9090
database:
  url: postgres://localhost/creative_engine
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "localhost", cfg.Server.Host)
	assert.Equal(t, "postgres://localhost/creative_engine", cfg.Database.URL)
	assert.Equal(t, 20, cfg.Database.MaxOpenConns)
	assert.Equal(t, 24, cfg.Specs.TTLHours)
	assert.Equal(t, 30, cfg.Ingest.IntervalMinutes)
	assert.Equal(t, "default", cfg.Ingest.AccountID)
	assert.Equal(t, 60, cfg.Lifecycle.IntervalMinutes)
	assert.Equal(t, 30, cfg.Lifecycle.LookbackDays)
	assert.Equal(t, "us-west-2", cfg.Storage.S3Region)
}

func TestLoadFullConfig(t *testing.T) {
	path := writeConfig(t, `
server:
  host: 0.0.0.0
  port: 8081
  allowed_origins:
    - https://creative.example.com
specs:
  policy_url: https://policy.example.com/specs.json
  ttl_hours: 6
ingest:
  enabled: true
  report_url: https://reports.example.com/creatives
  api_key_env: REPORT_API_KEY
  interval_minutes: 15
  account_id: acct-7
lifecycle:
  enabled: true
  interval_minutes: 45
  auto_execute: true
storage:
  enabled: true
  s3_bucket: creative-reports
  s3_region: eu-west-1
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"https://creative.example.com"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, 6*time.Hour, cfg.Specs.SpecsTTL())
	assert.Equal(t, 15*time.Minute, cfg.Ingest.IngestInterval())
	assert.Equal(t, "acct-7", cfg.Ingest.AccountID)
	assert.True(t, cfg.Lifecycle.AutoExecute)
	assert.Equal(t, 45*time.Minute, cfg.Lifecycle.WorkerInterval())
	assert.True(t, cfg.Storage.Enabled)
	assert.Equal(t, "eu-west-1", cfg.Storage.S3Region)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadFromEnvOverrides(t *testing.T) {
	path := writeConfig(t, `
database:
  url: postgres://file/db
`)

	t.Setenv("DATABASE_URL", "postgres://env/db")
	t.Setenv("REPORTS_S3_BUCKET", "env-bucket")

	cfg, err := LoadFromEnv(path)
	require.NoError(t, err)
	assert.Equal(t, "postgres://env/db", cfg.Database.URL)
	assert.Equal(t, "env-bucket", cfg.Storage.S3Bucket)
	assert.True(t, cfg.Storage.Enabled)
}

func TestIngestAPIKeyResolution(t *testing.T) {
	c := IngestConfig{APIKeyEnv: "TEST_REPORT_KEY"}
	t.Setenv("TEST_REPORT_KEY", "secret-key")
	assert.Equal(t, "secret-key", c.IngestAPIKey())

	assert.Empty(t, IngestConfig{}.IngestAPIKey())
}

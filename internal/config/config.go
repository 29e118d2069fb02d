package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Redis     RedisConfig     `yaml:"redis"`
	Specs     SpecsConfig     `yaml:"specs"`
	Ingest    IngestConfig    `yaml:"ingest"`
	Lifecycle LifecycleConfig `yaml:"lifecycle"`
	Storage   StorageConfig   `yaml:"storage"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host           string   `yaml:"host"`
	Port           int      `yaml:"port"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	URL          string `yaml:"url"`
	MaxOpenConns int    `yaml:"max_open_conns"`
	MaxIdleConns int    `yaml:"max_idle_conns"`
}

// RedisConfig holds Redis settings used for distributed locking. Optional;
// without it the worker falls back to PostgreSQL advisory locks.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// SpecsConfig holds platform policy fetch settings.
type SpecsConfig struct {
	PolicyURL string `yaml:"policy_url"` // empty means synthesize defaults
	TTLHours  int    `yaml:"ttl_hours"`
}

// IngestConfig holds upstream creative report settings.
type IngestConfig struct {
	Enabled         bool   `yaml:"enabled"`
	ReportURL       string `yaml:"report_url"`
	APIKeyEnv       string `yaml:"api_key_env"`
	FilePath        string `yaml:"file_path"` // fixture source, used when report_url is empty
	IntervalMinutes int    `yaml:"interval_minutes"`
	AccountID       string `yaml:"account_id"`
}

// LifecycleConfig holds background lifecycle worker settings.
type LifecycleConfig struct {
	Enabled         bool `yaml:"enabled"`
	IntervalMinutes int  `yaml:"interval_minutes"`
	LookbackDays    int  `yaml:"lookback_days"`
	AutoExecute     bool `yaml:"auto_execute"`
}

// StorageConfig holds S3 report archive settings. Optional.
type StorageConfig struct {
	Enabled  bool   `yaml:"enabled"`
	S3Bucket string `yaml:"s3_bucket"`
	S3Region string `yaml:"s3_region"`
}

// SpecsTTL returns the policy cache TTL as a duration.
func (c SpecsConfig) SpecsTTL() time.Duration {
	return time.Duration(c.TTLHours) * time.Hour
}

// IngestInterval returns the collector poll interval as a duration.
func (c IngestConfig) IngestInterval() time.Duration {
	return time.Duration(c.IntervalMinutes) * time.Minute
}

// WorkerInterval returns the lifecycle worker interval as a duration.
func (c LifecycleConfig) WorkerInterval() time.Duration {
	return time.Duration(c.IntervalMinutes) * time.Minute
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	// Set defaults
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 20
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Specs.TTLHours == 0 {
		cfg.Specs.TTLHours = 24
	}
	if cfg.Ingest.IntervalMinutes == 0 {
		cfg.Ingest.IntervalMinutes = 30
	}
	if cfg.Ingest.AccountID == "" {
		cfg.Ingest.AccountID = "default"
	}
	if cfg.Lifecycle.IntervalMinutes == 0 {
		cfg.Lifecycle.IntervalMinutes = 60
	}
	if cfg.Lifecycle.LookbackDays == 0 {
		cfg.Lifecycle.LookbackDays = 30
	}
	if cfg.Storage.S3Region == "" {
		cfg.Storage.S3Region = "us-west-2"
	}

	return &cfg, nil
}

// LoadFromEnv loads config from file and overrides with environment variables
func LoadFromEnv(path string) (*Config, error) {
	// Load .env file if it exists (no error if missing)
	_ = godotenv.Load()

	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}

	// Override with environment variables if present
	if url := os.Getenv("DATABASE_URL"); url != "" {
		cfg.Database.URL = url
	}
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		cfg.Redis.Addr = addr
	}
	if pw := os.Getenv("REDIS_PASSWORD"); pw != "" {
		cfg.Redis.Password = pw
	}
	if url := os.Getenv("SPECS_POLICY_URL"); url != "" {
		cfg.Specs.PolicyURL = url
	}
	if url := os.Getenv("INGEST_REPORT_URL"); url != "" {
		cfg.Ingest.ReportURL = url
	}
	if bucket := os.Getenv("REPORTS_S3_BUCKET"); bucket != "" {
		cfg.Storage.S3Bucket = bucket
		cfg.Storage.Enabled = true
	}

	return cfg, nil
}

// IngestAPIKey resolves the upstream report API key from the environment
// variable named in the config.
func (c IngestConfig) IngestAPIKey() string {
	if c.APIKeyEnv == "" {
		return ""
	}
	return os.Getenv(c.APIKeyEnv)
}

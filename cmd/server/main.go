package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver
	"github.com/redis/go-redis/v9"

	"github.com/ignite/creative-engine/internal/analysis"
	"github.com/ignite/creative-engine/internal/api"
	"github.com/ignite/creative-engine/internal/config"
	"github.com/ignite/creative-engine/internal/ingest"
	"github.com/ignite/creative-engine/internal/lifecycle"
	"github.com/ignite/creative-engine/internal/pkg/distlock"
	"github.com/ignite/creative-engine/internal/repository/postgres"
	"github.com/ignite/creative-engine/internal/specs"
	"github.com/ignite/creative-engine/internal/storage"
)

func main() {
	log.Println("creative-engine server starting")

	cfg, err := config.LoadFromEnv("config/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.Database.URL == "" {
		log.Fatal("database.url (or DATABASE_URL) is required")
	}

	db, err := sql.Open("postgres", cfg.Database.URL)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}
	log.Println("Connected to database")

	// Redis is optional; without it the worker lock falls back to a PG
	// advisory lock.
	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Printf("Redis unavailable, using PG advisory locks: %v", err)
			redisClient = nil
		}
	}

	// Repositories
	creativeRepo := postgres.NewCreativeRepo(db)
	snapshotRepo := postgres.NewSnapshotRepo(db)
	actionRepo := postgres.NewActionRepo(db)
	configRepo := postgres.NewLearningConfigRepo(db)
	specRepo := postgres.NewSpecSnapshotRepo(db)

	// Platform policy client
	var fetcher specs.PolicyFetcher = specs.Synthesizer{}
	if cfg.Specs.PolicyURL != "" {
		fetcher = specs.NewHTTPFetcher(cfg.Specs.PolicyURL)
	}
	specsClient := specs.NewClient(specRepo, fetcher, specs.WithTTL(cfg.Specs.SpecsTTL()))

	// Services
	lifecycleSvc := lifecycle.NewService(creativeRepo, snapshotRepo, actionRepo, configRepo)

	recommender, err := analysis.NewRecommender(specsClient)
	if err != nil {
		log.Fatalf("Failed to build recommender: %v", err)
	}
	analyzer := analysis.NewAnalyzer(recommender, lifecycleSvc)

	// Optional S3 report archive
	var reports *storage.ReportCache
	if cfg.Storage.Enabled && cfg.Storage.S3Bucket != "" {
		reports, err = storage.NewReportCache(context.Background(), cfg.Storage.S3Bucket, cfg.Storage.S3Region)
		if err != nil {
			log.Printf("Report cache disabled: %v", err)
			reports = nil
		} else {
			log.Printf("Report archive enabled: s3://%s", cfg.Storage.S3Bucket)
		}
	}

	// Ingest collector
	var source ingest.Source
	var collector *ingest.Collector
	if cfg.Ingest.ReportURL != "" {
		source = ingest.NewHTTPSource(cfg.Ingest.ReportURL, cfg.Ingest.IngestAPIKey())
	} else if cfg.Ingest.FilePath != "" {
		source = ingest.NewFileSource(cfg.Ingest.FilePath)
	}
	if cfg.Ingest.Enabled && source != nil {
		opts := []ingest.CollectorOption{ingest.WithInterval(cfg.Ingest.IngestInterval())}
		if reports != nil {
			opts = append(opts, ingest.WithArchiver(reports))
		}
		collector = ingest.NewCollector(source, analyzer, cfg.Ingest.AccountID, opts...)
		collector.Start()
		defer collector.Stop()
		log.Printf("Ingest collector started (every %s)", cfg.Ingest.IngestInterval())
	}

	// Lifecycle worker
	var worker *lifecycle.Worker
	if cfg.Lifecycle.Enabled {
		lock := distlock.NewLock(redisClient, db, "creative-engine:lifecycle-worker", 15*time.Minute)
		worker = lifecycle.NewWorker(lifecycleSvc, lock, cfg.Ingest.AccountID,
			lifecycle.WithInterval(cfg.Lifecycle.WorkerInterval()),
			lifecycle.WithLookbackDays(cfg.Lifecycle.LookbackDays),
			lifecycle.WithAutoExecute(cfg.Lifecycle.AutoExecute),
		)
		worker.Start()
		defer worker.Stop()
		log.Printf("Lifecycle worker started (every %s, auto_execute=%v)",
			cfg.Lifecycle.WorkerInterval(), cfg.Lifecycle.AutoExecute)
	}

	handlers := &api.Handlers{
		Analyzer:  analyzer,
		Lifecycle: lifecycleSvc,
		Specs:     specsClient,
		Source:    source,
		Reports:   reports,
		Worker:    worker,
		DB:        db,
		AccountID: cfg.Ingest.AccountID,
	}
	router := api.SetupRoutes(handlers, cfg.Server.AllowedOrigins)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := api.NewServer(addr, router)

	go func() {
		log.Printf("HTTP server listening on %s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	<-done
	log.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped")
}

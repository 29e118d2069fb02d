package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/ignite/creative-engine/internal/domain"
	"github.com/ignite/creative-engine/internal/pkg/logger"
)

// S3API is the subset of the S3 client used by the report cache.
type S3API interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput, opts ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, in *s3.PutObjectInput, opts ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// ReportCache archives analysis batch reports to S3 so a run's output
// survives restarts and stays queryable without re-analyzing.
type ReportCache struct {
	client S3API
	bucket string
}

// Report is the JSON document stored per batch run.
type Report struct {
	AccountID   string                  `json:"account_id"`
	RunDate     string                  `json:"run_date"`
	GeneratedAt time.Time               `json:"generated_at"`
	Results     []domain.AnalysisResult `json:"results"`
}

// NewReportCache creates an S3-backed report cache using the default AWS
// credential chain.
func NewReportCache(ctx context.Context, bucket, region string) (*ReportCache, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config for report cache: %w", err)
	}
	return &ReportCache{client: s3.NewFromConfig(cfg), bucket: bucket}, nil
}

// NewReportCacheWithClient creates a report cache with an injected client.
func NewReportCacheWithClient(client S3API, bucket string) *ReportCache {
	return &ReportCache{client: client, bucket: bucket}
}

func (rc *ReportCache) key(accountID, runDate string) string {
	return fmt.Sprintf("analysis-reports/%s/%s.json", accountID, runDate)
}

// Save writes a batch report to S3 keyed by account and run date. A rerun
// on the same date overwrites the earlier report.
func (rc *ReportCache) Save(ctx context.Context, accountID string, runDate time.Time, results []domain.AnalysisResult) error {
	day := runDate.Format("2006-01-02")
	report := Report{
		AccountID:   accountID,
		RunDate:     day,
		GeneratedAt: time.Now().UTC(),
		Results:     results,
	}

	body, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}

	key := rc.key(accountID, day)
	contentType := "application/json"
	_, err = rc.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(rc.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: &contentType,
	})
	if err != nil {
		return fmt.Errorf("S3 PutObject %s/%s: %w", rc.bucket, key, err)
	}

	logger.Info("report archived", "bucket", rc.bucket, "key", key, "results", len(results), "bytes", len(body))
	return nil
}

// Load retrieves a batch report from S3. A missing object is a cache miss,
// not an error; the report pointer is nil in that case.
func (rc *ReportCache) Load(ctx context.Context, accountID string, runDate time.Time) (*Report, error) {
	key := rc.key(accountID, runDate.Format("2006-01-02"))

	resp, err := rc.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(rc.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("S3 GetObject %s/%s: %w", rc.bucket, key, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading report body: %w", err)
	}

	var report Report
	if err := json.Unmarshal(body, &report); err != nil {
		return nil, fmt.Errorf("unmarshaling report: %w", err)
	}
	return &report, nil
}

// isNotFound reports whether an S3 error indicates a missing object. The
// SDK surfaces these as NoSuchKey or NotFound depending on the call.
func isNotFound(err error) bool {
	s := err.Error()
	for _, keyword := range []string{"NoSuchKey", "NotFound", "404"} {
		if strings.Contains(s, keyword) {
			return true
		}
	}
	return false
}

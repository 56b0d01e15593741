// Package pipeline runs the background backfill worker: any stored issue
// missing its insight bundle (imported data, partial writes) gets scored
// against the current corpus on a fixed interval.
package pipeline

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"

	"github.com/janmarg/civicreport/config"
	"github.com/janmarg/civicreport/internal/insights"
	"github.com/janmarg/civicreport/internal/logger"
	"github.com/janmarg/civicreport/internal/metrics"
	"github.com/janmarg/civicreport/internal/models"
)

// Store interface for issue access
type Store interface {
	QueryIssues(ctx context.Context, q models.IssueQuery) ([]models.Issue, error)
	UpsertIssues(ctx context.Context, issues []models.Issue) error
}

// Geocoder interface for filling missing coordinates
type Geocoder interface {
	Geocode(loc *models.Location) error
}

// Pipeline coordinates the concurrent backfill of missing insight bundles
type Pipeline struct {
	store    Store
	geocoder Geocoder
	limiter  *rate.Limiter
	cfg      config.BackfillConfig
	sem      *semaphore.Weighted
	now      func() time.Time
	mu       sync.RWMutex
	running  bool
}

// New creates a new pipeline instance
func New(store Store, geocoder Geocoder, cfg config.BackfillConfig) *Pipeline {
	p := &Pipeline{
		store:    store,
		geocoder: geocoder,
		cfg:      cfg,
		limiter:  rate.NewLimiter(rate.Limit(cfg.RateLimit), int(cfg.RateLimit)),
		sem:      semaphore.NewWeighted(int64(cfg.WorkerCount)),
		now:      time.Now,
	}

	logger.Info("Backfill pipeline initialized",
		"interval", cfg.Interval,
		"rate_limit", cfg.RateLimit,
		"workers", cfg.WorkerCount,
	)

	return p
}

// Run starts the backfill loop and runs until the context is cancelled
func (p *Pipeline) Run(ctx context.Context) error {
	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return fmt.Errorf("pipeline already running")
	}
	p.running = true
	p.mu.Unlock()

	defer func() {
		p.mu.Lock()
		p.running = false
		p.mu.Unlock()
	}()

	logger.Info("Starting backfill pipeline")

	ticker := time.NewTicker(p.cfg.Interval)
	defer ticker.Stop()

	// Initial immediate run
	if err := p.RunOnce(ctx); err != nil {
		logger.Error("Initial backfill run failed", "error", err)
	}

	for {
		select {
		case <-ctx.Done():
			logger.Info("Backfill pipeline stopping")
			return ctx.Err()
		case <-ticker.C:
			if err := p.RunOnce(ctx); err != nil {
				logger.Error("Backfill run failed", "error", err)

				select {
				case <-ctx.Done():
					return ctx.Err()
				case <-time.After(p.cfg.RetryDelay):
					// Continue after delay
				}
			}
		}
	}
}

// RunOnce executes a single backfill pass
func (p *Pipeline) RunOnce(ctx context.Context) error {
	start := time.Now()

	issues, err := p.loadIssues(ctx)
	if err != nil {
		return err
	}

	var unscored []models.Issue
	for _, issue := range issues {
		if issue.Insights == nil {
			unscored = append(unscored, issue)
		}
	}

	if len(unscored) == 0 {
		logger.Debug("No unscored issues found")
		return nil
	}

	logger.Debug("Backfilling insights", "count", len(unscored))

	// Process in batches so a large import does not hold the store lock
	batchSize := p.cfg.BatchSize
	if batchSize <= 0 {
		batchSize = len(unscored)
	}

	scored := 0
	for i := 0; i < len(unscored); i += batchSize {
		end := i + batchSize
		if end > len(unscored) {
			end = len(unscored)
		}

		batch := unscored[i:end]
		if err := p.processBatch(ctx, batch, issues); err != nil {
			logger.Error("Batch backfill failed",
				"batch_start", i,
				"batch_size", len(batch),
				"error", err,
			)
			return err
		}
		scored += len(batch)
	}

	duration := time.Since(start)
	metrics.RecordBackfillRun(scored, duration)
	logger.Info("Backfill pass completed",
		"scored", scored,
		"duration_ms", duration.Milliseconds(),
	)

	return nil
}

// loadIssues fetches the corpus with retry logic
func (p *Pipeline) loadIssues(ctx context.Context) ([]models.Issue, error) {
	var issues []models.Issue
	var err error

	for attempt := 0; attempt <= p.cfg.RetryAttempts; attempt++ {
		if attempt > 0 {
			delay := time.Duration(attempt) * p.cfg.RetryDelay
			logger.Debug("Retrying corpus load", "attempt", attempt, "delay", delay)

			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
		}

		issues, err = p.store.QueryIssues(ctx, models.IssueQuery{})
		if err == nil {
			return issues, nil
		}

		logger.Warn("Corpus load attempt failed", "attempt", attempt+1, "error", err)
	}

	return nil, fmt.Errorf("corpus load failed after %d attempts: %w", p.cfg.RetryAttempts+1, err)
}

// processBatch scores a batch of unscored issues concurrently
func (p *Pipeline) processBatch(ctx context.Context, batch, corpus []models.Issue) error {
	results := make([]models.Issue, len(batch))
	var wg sync.WaitGroup
	errChan := make(chan error, len(batch))

	for i := range batch {
		i := i
		wg.Add(1)

		go func() {
			defer wg.Done()

			if err := p.sem.Acquire(ctx, 1); err != nil {
				errChan <- fmt.Errorf("acquire semaphore: %w", err)
				return
			}
			defer p.sem.Release(1)

			if err := p.limiter.Wait(ctx); err != nil {
				errChan <- fmt.Errorf("rate limit: %w", err)
				return
			}

			issue := batch[i]

			if issue.Location.Lat == 0 && issue.Location.Lng == 0 {
				if err := p.geocoder.Geocode(&issue.Location); err != nil {
					logger.Warn("Geocoding failed", "issue_id", issue.ID, "error", err)
				}
			}

			scoreStart := time.Now()
			bundle := insights.Generate(issue, corpus, p.now())
			issue.Insights = &bundle
			issue.Priority = insights.CalculatePriority(issue)
			metrics.RecordIssueScored(string(issue.Category), time.Since(scoreStart))

			results[i] = issue
		}()
	}

	wg.Wait()
	close(errChan)

	for err := range errChan {
		return err
	}

	return p.store.UpsertIssues(ctx, results)
}

// IsRunning returns whether the pipeline is currently running
func (p *Pipeline) IsRunning() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.running
}

package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"ReviewScanner/internal/classify"
	"ReviewScanner/internal/dedup"
	"ReviewScanner/internal/domain"
	"ReviewScanner/internal/insights"
	"ReviewScanner/internal/normalize"
	"ReviewScanner/internal/ports"
	"ReviewScanner/internal/validate"
)

const defaultWorkers = 4

// AnalyzerDeps wires all driven adapters into the analysis orchestrator.
type AnalyzerDeps struct {
	Source   ports.ReviewSource
	Store    ports.JobStore
	Model    ports.SentimentModel
	Notifier ports.Notifier
	Logger   *slog.Logger
	Now      func() time.Time
	Workers  int
}

// Analyzer sequences the pipeline stages for one job and manages the job
// lifecycle: running → completed | failed. Each job owns exclusive write
// access to its own artifacts, so no cross-job locking is needed.
type Analyzer struct {
	source      ports.ReviewSource
	store       ports.JobStore
	sentiment   *classify.SentimentClassifier
	fake        *classify.FakeReviewClassifier
	interesting *classify.InterestingReviewClassifier
	normalizer  *normalize.Normalizer
	notifier    ports.Notifier
	logger      *slog.Logger
	now         func() time.Time
	workers     int

	running sync.WaitGroup
}

// NewAnalyzer constructs the orchestration component.
func NewAnalyzer(deps AnalyzerDeps) *Analyzer {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	now := deps.Now
	if now == nil {
		now = time.Now
	}

	workers := deps.Workers
	if workers <= 0 {
		workers = defaultWorkers
	}

	return &Analyzer{
		source:      deps.Source,
		store:       deps.Store,
		sentiment:   classify.NewSentimentClassifier(deps.Model, logger.With("component", "classify.sentiment")),
		fake:        classify.NewFakeReviewClassifier(logger.With("component", "classify.fake")),
		interesting: classify.NewInterestingReviewClassifier(logger.With("component", "classify.interesting")),
		normalizer:  normalize.New(logger.With("component", "normalize")),
		notifier:    deps.Notifier,
		logger:      logger,
		now:         now,
		workers:     workers,
	}
}

// Submit validates the request, writes the initial running summary, and
// starts the job in the background. The caller polls with Result. Jobs are
// not cancellable once started.
func (a *Analyzer) Submit(ctx context.Context, req domain.AnalysisRequest) (string, error) {
	if err := validate.Request(req); err != nil {
		return "", fmt.Errorf("invalid analysis request: %w", err)
	}

	createdAt := a.now()
	jobID := domain.JobID(req.AppID, createdAt)

	initial := domain.JobResult{
		JobID:     jobID,
		Status:    domain.JobRunning,
		AppInfo:   domain.AppInfo{AppID: req.AppID, Title: "Unknown"},
		CreatedAt: createdAt,
	}

	if err := a.store.SaveSummary(ctx, initial); err != nil {
		return "", fmt.Errorf("persist initial job state: %w", err)
	}

	a.running.Add(1)
	go a.run(context.Background(), initial, req)

	return jobID, nil
}

// Result returns the job summary for the given id.
func (a *Analyzer) Result(ctx context.Context, jobID string) (domain.JobResult, error) {
	return a.store.Summary(ctx, jobID)
}

// ReviewArtifact returns the full enriched review list for a completed job.
func (a *Analyzer) ReviewArtifact(ctx context.Context, jobID string) ([]domain.AnalyzedReview, error) {
	return a.store.Reviews(ctx, jobID)
}

// Jobs lists every stored job summary.
func (a *Analyzer) Jobs(ctx context.Context) ([]domain.JobResult, error) {
	return a.store.ListSummaries(ctx)
}

// Wait blocks until all in-flight jobs finish. Used on shutdown and in tests.
func (a *Analyzer) Wait() {
	a.running.Wait()
}

func (a *Analyzer) run(ctx context.Context, initial domain.JobResult, req domain.AnalysisRequest) {
	defer a.running.Done()

	jobID := initial.JobID
	logger := a.logger.With("job_id", jobID)
	logger.Info("analysis started", "app_id", req.AppID, "count", req.Count)

	collected, err := a.collect(ctx, req, logger)
	if err != nil {
		a.fail(ctx, initial, domain.ErrIngestion, err)
		return
	}
	initial.AppInfo = collected.App

	processed := a.normalizeBatch(collected.Reviews)
	surviving := dedup.New(logger.With("component", "dedup")).Filter(processed)
	logger.Debug("preprocessing done",
		"raw", len(collected.Reviews), "processed", len(processed), "surviving", len(surviving))

	outcomes := a.sentiment.ClassifyBatch(ctx, surviving)
	fakeFlags := a.fake.DetectBatch(surviving)
	interestingFlags := a.interesting.DetectBatch(surviving)

	final := a.merge(initial, len(collected.Reviews), surviving, outcomes, fakeFlags, interestingFlags)

	analyzed := make([]domain.AnalyzedReview, len(surviving))
	for i, review := range surviving {
		analyzed[i] = domain.AnalyzedReview{
			ProcessedReview: review,
			Sentiment:       outcomes[i].Label,
			IsFake:          fakeFlags[i],
			IsInteresting:   interestingFlags[i],
		}
	}

	if err := a.store.SaveReviews(ctx, jobID, analyzed); err != nil {
		a.fail(ctx, initial, domain.ErrPersistence, fmt.Errorf("persist review artifact: %w", err))
		return
	}
	if err := a.store.SaveSummary(ctx, final); err != nil {
		a.fail(ctx, initial, domain.ErrPersistence, fmt.Errorf("persist job summary: %w", err))
		return
	}

	logger.Info("analysis completed",
		"total", final.TotalReviews,
		"processed", final.ProcessedReviews,
		"fake", final.FakeReviewsCount,
		"interesting", final.InterestingCount,
		"seconds", final.ProcessingTime)

	a.notify(ctx, final, surviving)
}

// collect fetches the first page and follows the continuation token until
// the requested count is reached. Pagination failures after the first page
// degrade to partial results instead of failing the job.
func (a *Analyzer) collect(ctx context.Context, req domain.AnalysisRequest, logger *slog.Logger) (domain.CollectResult, error) {
	result, err := a.source.Collect(ctx, req)
	if err != nil {
		return domain.CollectResult{}, fmt.Errorf("collect reviews for %s: %w", req.AppID, err)
	}

	token := result.Continuation
	for token != "" && len(result.Reviews) < req.Count {
		page, err := a.source.CollectMore(ctx, req.AppID, token, req.Count-len(result.Reviews))
		if err != nil {
			logger.Warn("continuation fetch failed, keeping partial batch",
				"collected", len(result.Reviews), "error", err)
			break
		}
		if len(page.Reviews) == 0 {
			break
		}
		result.Reviews = append(result.Reviews, page.Reviews...)
		token = page.Continuation
	}

	if len(result.Reviews) > req.Count {
		result.Reviews = result.Reviews[:req.Count]
	}
	return result, nil
}

// normalizeBatch fans normalization out over a bounded worker set. Results
// land in input order; failed reviews are dropped.
func (a *Analyzer) normalizeBatch(raws []domain.RawReview) []domain.ProcessedReview {
	slots := make([]*domain.ProcessedReview, len(raws))
	sem := make(chan struct{}, a.workers)

	var wg sync.WaitGroup
	for i := range raws {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()

			p, err := a.normalizer.Process(raws[i])
			if err != nil {
				a.logger.Warn("drop review", "review_id", raws[i].ID, "error", err)
				return
			}
			slots[i] = &p
		}(i)
	}
	wg.Wait()

	processed := make([]domain.ProcessedReview, 0, len(raws))
	for _, slot := range slots {
		if slot != nil {
			processed = append(processed, *slot)
		}
	}
	return processed
}

// merge folds the three label streams into the final job summary in one pass.
func (a *Analyzer) merge(
	initial domain.JobResult,
	totalReviews int,
	reviews []domain.ProcessedReview,
	outcomes []classify.SentimentOutcome,
	fakeFlags, interestingFlags []bool,
) domain.JobResult {
	final := initial
	final.Status = domain.JobCompleted
	final.TotalReviews = totalReviews
	final.ProcessedReviews = len(reviews)

	for i := range reviews {
		final.SentimentDistribution.Add(outcomes[i].Label)
		if fakeFlags[i] {
			final.FakeReviewsCount++
		}
		if interestingFlags[i] {
			final.InterestingCount++
		}
	}

	completedAt := a.now()
	final.CompletedAt = &completedAt
	final.ProcessingTime = completedAt.Sub(initial.CreatedAt).Seconds()
	return final
}

func (a *Analyzer) fail(ctx context.Context, initial domain.JobResult, category domain.ErrorCategory, cause error) {
	a.logger.Error("analysis failed", "job_id", initial.JobID, "category", category, "error", cause)

	failed := initial
	failed.Status = domain.JobFailed
	failed.Error = cause.Error()
	failed.ErrorType = category
	completedAt := a.now()
	failed.CompletedAt = &completedAt
	failed.ProcessingTime = completedAt.Sub(initial.CreatedAt).Seconds()

	if err := a.store.SaveSummary(ctx, failed); err != nil {
		a.logger.Error("persist failure artifact", "job_id", initial.JobID, "error", err)
	}
}

func (a *Analyzer) notify(ctx context.Context, result domain.JobResult, reviews []domain.ProcessedReview) {
	if a.notifier == nil {
		return
	}

	digest := buildDigest(result, insights.Compute(reviews))
	if err := a.notifier.PublishDigest(ctx, digest); err != nil {
		a.logger.Warn("publish digest", "job_id", result.JobID, "error", err)
	}
}

func buildDigest(result domain.JobResult, batch insights.BatchInsights) string {
	return fmt.Sprintf(
		"Analysis %s finished for %s\n"+
			"Reviews: %d collected, %d processed\n"+
			"Sentiment: %d positive / %d neutral / %d negative\n"+
			"Fake: %d, Interesting: %d\n"+
			"Avg rating %.2f (σ %.2f), avg length %.1f words\n"+
			"Took %.1fs",
		result.JobID,
		result.AppInfo.Title,
		result.TotalReviews,
		result.ProcessedReviews,
		result.SentimentDistribution.Positive,
		result.SentimentDistribution.Neutral,
		result.SentimentDistribution.Negative,
		result.FakeReviewsCount,
		result.InterestingCount,
		batch.AverageRating,
		batch.RatingStdDev,
		batch.AverageWordCount,
		result.ProcessingTime,
	)
}

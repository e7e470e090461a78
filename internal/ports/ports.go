package ports

import (
	"context"
	"time"

	"ReviewScanner/internal/domain"
)

// ReviewSource pulls app metadata and raw reviews from the review platform.
// Partial success (fewer reviews than requested, with a continuation token)
// is returned rather than failed.
type ReviewSource interface {
	Collect(ctx context.Context, req domain.AnalysisRequest) (domain.CollectResult, error)
	CollectMore(ctx context.Context, appID, continuation string, count int) (domain.ReviewPage, error)
}

// JobStore persists job artifacts as JSON-shaped documents keyed by job id.
// Writes must be durable before returning nil.
type JobStore interface {
	SaveSummary(ctx context.Context, result domain.JobResult) error
	Summary(ctx context.Context, jobID string) (domain.JobResult, error)
	SaveReviews(ctx context.Context, jobID string, reviews []domain.AnalyzedReview) error
	Reviews(ctx context.Context, jobID string) ([]domain.AnalyzedReview, error)
	ListSummaries(ctx context.Context) ([]domain.JobResult, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int, error)
}

// SentimentModel is the model-backed inference capability. Init is invoked
// lazily exactly once per process; implementations must be safe for
// concurrent Classify calls.
type SentimentModel interface {
	Init(ctx context.Context) error
	Classify(ctx context.Context, text string) (domain.Sentiment, error)
}

// Notifier publishes job digests to an outbound channel.
type Notifier interface {
	PublishDigest(ctx context.Context, digest string) error
}

// Scheduler controls when recurring maintenance runs.
type Scheduler interface {
	Start(ctx context.Context, job func(time.Time)) error
	Stop(ctx context.Context) error
}

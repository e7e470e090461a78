package domain

import (
	"fmt"
	"strings"
	"time"
)

// JobStatus enumerates the job state machine. A job is created already
// running; the only transitions are running→completed and running→failed.
type JobStatus string

const (
	JobRunning   JobStatus = "running"
	JobCompleted JobStatus = "completed"
	JobFailed    JobStatus = "failed"
)

// ErrorCategory is the coarse failure classification stored on failed jobs.
type ErrorCategory string

const (
	ErrIngestion   ErrorCategory = "ingestion"
	ErrPersistence ErrorCategory = "persistence"
	ErrInternal    ErrorCategory = "internal"
)

// AppInfo is the app metadata snapshot captured at job start.
type AppInfo struct {
	AppID       string  `json:"appId"`
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	Summary     string  `json:"summary,omitempty"`
	Installs    string  `json:"installs,omitempty"`
	Score       float64 `json:"score,omitempty"`
	Ratings     int     `json:"ratings,omitempty"`
	Reviews     int     `json:"reviews,omitempty"`
	Price       string  `json:"price,omitempty"`
	Free        bool    `json:"free"`
	Currency    string  `json:"currency,omitempty"`
	Developer   string  `json:"developer,omitempty"`
	Genre       string  `json:"genre,omitempty"`
	Icon        string  `json:"icon,omitempty"`
	Version     string  `json:"version,omitempty"`
	Updated     string  `json:"updated,omitempty"`
}

// SentimentDistribution counts labels per polarity. The three values always
// sum to the processed review count of a completed job.
type SentimentDistribution struct {
	Positive int `json:"positive"`
	Neutral  int `json:"neutral"`
	Negative int `json:"negative"`
}

// Total returns the sum across all three polarities.
func (d SentimentDistribution) Total() int {
	return d.Positive + d.Neutral + d.Negative
}

// Add increments the bucket for the given label.
func (d *SentimentDistribution) Add(s Sentiment) {
	switch s {
	case SentimentPositive:
		d.Positive++
	case SentimentNegative:
		d.Negative++
	default:
		d.Neutral++
	}
}

// JobResult is the job summary artifact exposed to export and presentation.
type JobResult struct {
	JobID                 string                `json:"job_id"`
	Status                JobStatus             `json:"status"`
	AppInfo               AppInfo               `json:"app_info"`
	TotalReviews          int                   `json:"total_reviews"`
	ProcessedReviews      int                   `json:"processed_reviews"`
	SentimentDistribution SentimentDistribution `json:"sentiment_distribution"`
	FakeReviewsCount      int                   `json:"fake_reviews_count"`
	InterestingCount      int                   `json:"interesting_reviews_count"`
	ProcessingTime        float64               `json:"processing_time"`
	CreatedAt             time.Time             `json:"created_at"`
	CompletedAt           *time.Time            `json:"completed_at,omitempty"`
	Error                 string                `json:"error,omitempty"`
	ErrorType             ErrorCategory         `json:"error_type,omitempty"`
}

// AnalysisRequest carries the parameters of one analysis job.
type AnalysisRequest struct {
	AppID    string `json:"app_id"`
	Country  string `json:"country"`
	Language string `json:"language"`
	Count    int    `json:"count"`
	Sort     string `json:"sort"`
}

// JobID derives the deterministic job identifier from an app id and the
// job creation time.
func JobID(appID string, createdAt time.Time) string {
	return fmt.Sprintf("analysis_%s_%d", appID, createdAt.Unix())
}

// Fingerprint case-folds and trims content into the batch-scoped duplicate key.
func Fingerprint(content string) string {
	return strings.ToLower(strings.TrimSpace(content))
}

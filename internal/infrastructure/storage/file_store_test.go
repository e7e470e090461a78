package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"ReviewScanner/internal/domain"
)

func newTestStore(t *testing.T) *FileStore {
	t.Helper()

	store, err := NewFileStore(t.TempDir(), nil)
	if err != nil {
		t.Fatalf("NewFileStore error: %v", err)
	}
	return store
}

func sampleResult(jobID string) domain.JobResult {
	return domain.JobResult{
		JobID:            jobID,
		Status:           domain.JobCompleted,
		AppInfo:          domain.AppInfo{AppID: "com.demo.app", Title: "Demo"},
		TotalReviews:     10,
		ProcessedReviews: 8,
		CreatedAt:        time.Now().UTC().Truncate(time.Second),
	}
}

func TestSummaryRoundtrip(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()

	want := sampleResult("analysis_com.demo.app_100")
	if err := store.SaveSummary(ctx, want); err != nil {
		t.Fatalf("SaveSummary error: %v", err)
	}

	got, err := store.Summary(ctx, want.JobID)
	if err != nil {
		t.Fatalf("Summary error: %v", err)
	}

	if got.JobID != want.JobID || got.Status != want.Status {
		t.Fatalf("roundtrip mismatch: %+v", got)
	}
	if got.AppInfo.Title != "Demo" || got.ProcessedReviews != 8 {
		t.Fatalf("roundtrip mismatch: %+v", got)
	}
}

func TestSummaryNotFound(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)

	_, err := store.Summary(context.Background(), "analysis_missing_1")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestReviewsRoundtrip(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()

	reviews := []domain.AnalyzedReview{
		{
			ProcessedReview: domain.ProcessedReview{
				RawReview:      domain.RawReview{ID: "r1", Rating: 5},
				CleanedContent: "harika bir uygulama",
			},
			Sentiment:     domain.SentimentPositive,
			IsInteresting: true,
		},
	}

	if err := store.SaveReviews(ctx, "analysis_com.demo.app_100", reviews); err != nil {
		t.Fatalf("SaveReviews error: %v", err)
	}

	got, err := store.Reviews(ctx, "analysis_com.demo.app_100")
	if err != nil {
		t.Fatalf("Reviews error: %v", err)
	}

	if len(got) != 1 {
		t.Fatalf("expected 1 review, got %d", len(got))
	}
	if got[0].ID != "r1" || got[0].Sentiment != domain.SentimentPositive || !got[0].IsInteresting {
		t.Fatalf("roundtrip mismatch: %+v", got[0])
	}

	if _, err := store.Reviews(ctx, "analysis_other_1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListSummaries(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()

	for _, jobID := range []string{"analysis_a_1", "analysis_b_2"} {
		if err := store.SaveSummary(ctx, sampleResult(jobID)); err != nil {
			t.Fatalf("SaveSummary error: %v", err)
		}
	}

	results, err := store.ListSummaries(ctx)
	if err != nil {
		t.Fatalf("ListSummaries error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 summaries, got %d", len(results))
	}
}

func TestDeleteOlderThan(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()

	jobID := "analysis_com.demo.app_100"
	if err := store.SaveSummary(ctx, sampleResult(jobID)); err != nil {
		t.Fatalf("SaveSummary error: %v", err)
	}
	if err := store.SaveReviews(ctx, jobID, nil); err != nil {
		t.Fatalf("SaveReviews error: %v", err)
	}

	// Cutoff before all writes removes nothing.
	deleted, err := store.DeleteOlderThan(ctx, time.Now().Add(-time.Hour))
	if err != nil {
		t.Fatalf("DeleteOlderThan error: %v", err)
	}
	if deleted != 0 {
		t.Fatalf("expected no deletions, got %d", deleted)
	}

	// Cutoff in the future removes both artifacts.
	deleted, err = store.DeleteOlderThan(ctx, time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("DeleteOlderThan error: %v", err)
	}
	if deleted != 2 {
		t.Fatalf("expected 2 deletions, got %d", deleted)
	}

	if _, err := store.Summary(ctx, jobID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after cleanup, got %v", err)
	}
}

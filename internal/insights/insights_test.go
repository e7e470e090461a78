package insights

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ReviewScanner/internal/domain"
)

func TestCountFlags(t *testing.T) {
	t.Parallel()

	stats := CountFlags([]bool{true, false, true, false})
	assert.Equal(t, 4, stats.Total)
	assert.Equal(t, 2, stats.Flagged)
	assert.InDelta(t, 0.5, stats.Ratio, 1e-9)

	empty := CountFlags(nil)
	assert.Equal(t, 0, empty.Total)
	assert.Equal(t, 0.0, empty.Ratio)
}

func TestComputeEmptyBatch(t *testing.T) {
	t.Parallel()

	assert.Equal(t, BatchInsights{}, Compute(nil))
}

func TestComputeAggregates(t *testing.T) {
	t.Parallel()

	reviews := []domain.ProcessedReview{
		{
			RawReview:        domain.RawReview{Rating: 4},
			CleanedContent:   "battery life improved significantly after update",
			DetectedLanguage: "en",
			WordCount:        6,
		},
		{
			RawReview:        domain.RawReview{Rating: 2},
			CleanedContent:   "battery drains overnight constantly",
			DetectedLanguage: "en",
			WordCount:        4,
		},
	}

	got := Compute(reviews)

	assert.InDelta(t, 3.0, got.AverageRating, 1e-9)
	assert.InDelta(t, 1.4142, got.RatingStdDev, 1e-3)
	assert.InDelta(t, 5.0, got.AverageWordCount, 1e-9)

	// Shared tokens collapse; stopword stripping can only shrink the set.
	assert.Greater(t, got.VocabularySize, 0)
	assert.LessOrEqual(t, got.VocabularySize, 9)
}

func TestComputeUnknownLanguageFallsBackToEnglish(t *testing.T) {
	t.Parallel()

	reviews := []domain.ProcessedReview{
		{
			RawReview:        domain.RawReview{Rating: 5},
			CleanedContent:   "kamera kalitesi gündüz çekimlerinde gayet net",
			DetectedLanguage: "unknown",
			WordCount:        6,
		},
	}

	got := Compute(reviews)
	assert.Greater(t, got.VocabularySize, 0)
}

package classify

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ReviewScanner/internal/domain"
)

func fakeReview(id, author, content string, rating int) domain.ProcessedReview {
	return domain.ProcessedReview{
		RawReview: domain.RawReview{
			ID:      id,
			Author:  author,
			Rating:  rating,
			Content: content,
		},
		OriginalContent: content,
		CleanedContent:  content,
		CleanedLength:   len([]rune(content)),
	}
}

func TestDetectBatchFlagsFloodedDuplicates(t *testing.T) {
	t.Parallel()

	var reviews []domain.ProcessedReview
	for i := 0; i < 11; i++ {
		reviews = append(reviews, fakeReview(fmt.Sprintf("r%d", i), "spammer", "bad app", 5))
	}

	flags := NewFakeReviewClassifier(nil).DetectBatch(reviews)
	require.Len(t, flags, 11)
	for i, flag := range flags {
		assert.True(t, flag, "review %d should be flagged", i)
	}
}

func TestDetectBatchKeepsGenuineReview(t *testing.T) {
	t.Parallel()

	reviews := []domain.ProcessedReview{
		fakeReview("r1", "ayşe", "Uygulama genel olarak beklentimi karşıladı, arayüz sade ve anlaşılır.", 4),
		fakeReview("r2", "mehmet", "Son güncellemeden sonra açılış biraz yavaşladı ama hala işimi görüyor.", 3),
	}

	flags := NewFakeReviewClassifier(nil).DetectBatch(reviews)
	require.Len(t, flags, 2)
	assert.False(t, flags[0])
	assert.False(t, flags[1])
}

func TestScoreSuspiciousShapes(t *testing.T) {
	t.Parallel()

	c := NewFakeReviewClassifier(nil)

	tests := []struct {
		name    string
		content string
		rating  int
		want    int
	}{
		// All-caps shout: suspicious pattern only.
		{"all caps shout", "WOW NICE ONE HERE", 3, 2},
		// Leading repeated run plus short-content penalty.
		{"repeated run", "aaaaaaaa", 3, 4},
		// Leading score fraction plus short-content penalty.
		{"score fraction", "10/10 ok", 3, 4},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			review := fakeReview("r1", "", tc.content, tc.rating)
			stats := BuildBatchStatistics([]domain.ProcessedReview{review})
			assert.Equal(t, tc.want, c.Score(review, stats))
		})
	}
}

func TestScoreRatingContentMismatch(t *testing.T) {
	t.Parallel()

	c := NewFakeReviewClassifier(nil)

	review := fakeReview("r1", "", "berbat uygulama gerçekten kötü çalışıyor", 5)
	stats := BuildBatchStatistics([]domain.ProcessedReview{review})

	assert.Equal(t, 2, c.Score(review, stats))
}

func TestScoreSpamKeywordsPerLanguage(t *testing.T) {
	t.Parallel()

	c := NewFakeReviewClassifier(nil)

	review := fakeReview("r1", "", "hemen tıkla ve linke gir, bonus hediye seni bekliyor kampanya var", 3)
	review.DetectedLanguage = "tr"
	stats := BuildBatchStatistics([]domain.ProcessedReview{review})

	// Five spam hits cap out at four points.
	assert.Equal(t, 4, c.Score(review, stats))

	// Unknown language has no spam lexicon.
	review.DetectedLanguage = "unknown"
	assert.Equal(t, 0, c.Score(review, stats))
}

func TestScoreFeatureAnomalies(t *testing.T) {
	t.Parallel()

	c := NewFakeReviewClassifier(nil)

	review := fakeReview("r1", "", "normal length content right here okay", 3)
	review.Features.UppercaseRatio = 0.9
	review.Features.SpecialCharRatio = 0.5
	review.Markers.URLCount = 3
	stats := BuildBatchStatistics([]domain.ProcessedReview{review})

	// Anomaly contributions cap at three.
	assert.Equal(t, 3, c.Score(review, stats))
}

func TestBuildBatchStatistics(t *testing.T) {
	t.Parallel()

	reviews := []domain.ProcessedReview{
		fakeReview("r1", "alice", "same duplicated content", 4),
		fakeReview("r2", "alice", "same duplicated content", 4),
		fakeReview("r3", "bob", "something else entirely", 2),
		fakeReview("r4", "", "anonymous review content", 3),
	}

	stats := BuildBatchStatistics(reviews)

	assert.Equal(t, 2, stats.AuthorCounts["alice"])
	assert.Equal(t, 1, stats.AuthorCounts["bob"])
	assert.NotContains(t, stats.AuthorCounts, "")
	assert.Len(t, stats.FingerprintIDs[domain.Fingerprint("same duplicated content")], 2)
}

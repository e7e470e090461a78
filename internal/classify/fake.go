package classify

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"ReviewScanner/internal/domain"
)

const (
	fakeMaxScore  = 10
	fakeThreshold = 6 // 60% of the ceiling

	shortContentLength = 10
	longContentLength  = 1000
	repeatedRunLength  = 6
	authorFloodCount   = 10
	urlFloodCount      = 2

	spamHitWeight       = 2
	spamScoreCap        = 4
	featureAnomalyCap   = 3
	duplicateScore      = 3
	sentimentGapLimit   = 2
	emojiDensityLimit   = 0.1
	uppercaseRatioLimit = 0.5
	specialRatioLimit   = 0.3
)

// suspiciousExprs match low-effort spam shapes. The repeated-character run
// is checked separately because RE2 has no backreferences.
var suspiciousExprs = []*regexp.Regexp{
	regexp.MustCompile(`^[A-Z\s!]{10,}$`),
	regexp.MustCompile(`^\d+\s*/\s*\d+`),
	regexp.MustCompile(`^[^\w\s]{5,}`),
}

// BatchStatistics are corpus-level signals derived once per job from the
// full processed batch. Recomputed per job, never persisted.
type BatchStatistics struct {
	// FingerprintIDs maps a content fingerprint to the ids sharing it.
	FingerprintIDs map[string][]string
	// AuthorCounts maps an author name to their review count in the batch.
	AuthorCounts map[string]int
}

// BuildBatchStatistics is the first pass of fake detection.
func BuildBatchStatistics(reviews []domain.ProcessedReview) BatchStatistics {
	stats := BatchStatistics{
		FingerprintIDs: make(map[string][]string),
		AuthorCounts:   make(map[string]int),
	}
	for _, review := range reviews {
		if review.Author != "" {
			stats.AuthorCounts[review.Author]++
		}
		if fp := review.Fingerprint(); fp != "" {
			stats.FingerprintIDs[fp] = append(stats.FingerprintIDs[fp], review.ID)
		}
	}
	return stats
}

// FakeReviewClassifier is a corpus-aware weighted heuristic scorer.
type FakeReviewClassifier struct {
	logger *slog.Logger
}

// NewFakeReviewClassifier builds the classifier; a nil logger disables logging.
func NewFakeReviewClassifier(logger *slog.Logger) *FakeReviewClassifier {
	return &FakeReviewClassifier{logger: logger}
}

// DetectBatch runs both passes and returns one flag per review, in order.
// Per-review failures fail open: the review is marked genuine and logged.
func (c *FakeReviewClassifier) DetectBatch(reviews []domain.ProcessedReview) []bool {
	stats := BuildBatchStatistics(reviews)

	flags := make([]bool, len(reviews))
	for i, review := range reviews {
		fake, err := c.analyze(review, stats)
		if err != nil {
			if c.logger != nil {
				c.logger.Warn("fake detection failed, marking genuine",
					"review_id", review.ID, "error", err)
			}
			continue
		}
		flags[i] = fake
	}
	return flags
}

// Score exposes the raw suspicion score for one review against prebuilt
// batch statistics.
func (c *FakeReviewClassifier) Score(review domain.ProcessedReview, stats BatchStatistics) int {
	content := review.CleanedContent
	lower := strings.ToLower(content)
	score := 0

	// Content length
	length := len([]rune(content))
	if length < shortContentLength {
		score += 2
	} else if length > longContentLength {
		score++
	}

	// Suspicious pattern shapes, first match only
	if matchesSuspiciousPattern(content) {
		score += 2
	}

	// Spam lexicon for the detected language
	if hits := countContained(lower, spamKeywords[review.DetectedLanguage]); hits > 0 {
		score += min(hits*spamHitWeight, spamScoreCap)
	}

	// Generic boilerplate, uncapped
	score += countContained(lower, genericTemplates)

	// Author flooding the batch
	if stats.AuthorCounts[review.Author] > authorFloodCount {
		score += 2
	}

	// Rating vs content mismatch
	contentEstimate := estimateContentSentiment(lower)
	ratingEstimate := clampRating(review.Rating)
	if abs(contentEstimate-ratingEstimate) > sentimentGapLimit {
		score += 2
	}

	// Duplicate content within the batch
	if ids := stats.FingerprintIDs[review.Fingerprint()]; len(ids) > 1 {
		score += duplicateScore
	}

	// Text feature anomalies
	score += featureAnomalyScore(review)

	return score
}

func (c *FakeReviewClassifier) analyze(review domain.ProcessedReview, stats BatchStatistics) (fake bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			fake = false
			err = fmt.Errorf("scoring panic: %v", r)
		}
	}()

	return c.Score(review, stats) >= fakeThreshold, nil
}

func matchesSuspiciousPattern(content string) bool {
	if hasLeadingRepeatedRun(content, repeatedRunLength) {
		return true
	}
	for _, expr := range suspiciousExprs {
		if expr.MatchString(content) {
			return true
		}
	}
	return false
}

// hasLeadingRepeatedRun reports whether the content starts with the same
// rune repeated at least n times.
func hasLeadingRepeatedRun(content string, n int) bool {
	runes := []rune(content)
	if len(runes) < n {
		return false
	}
	for i := 1; i < n; i++ {
		if runes[i] != runes[0] {
			return false
		}
	}
	return true
}

// estimateContentSentiment maps lexicon hits onto the 1–5 rating scale.
func estimateContentSentiment(lower string) int {
	pos := countContained(lower, positiveWords)
	neg := countContained(lower, negativeWords)

	switch {
	case pos > neg:
		return 4 + min(pos-neg, 1)
	case neg > pos:
		return 2 - min(neg-pos, 1)
	default:
		return 3
	}
}

func featureAnomalyScore(review domain.ProcessedReview) int {
	score := 0
	if review.Features.UppercaseRatio > uppercaseRatioLimit {
		score++
	}
	if review.Features.SpecialCharRatio > specialRatioLimit {
		score++
	}
	if length := review.CleanedLength; length > 0 && review.Markers.EmojiCount > 0 {
		if float64(review.Markers.EmojiCount)/float64(length) > emojiDensityLimit {
			score++
		}
	}
	if review.Markers.URLCount > urlFloodCount {
		score += 2
	}
	return min(score, featureAnomalyCap)
}

func clampRating(rating int) int {
	return max(1, min(5, rating))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

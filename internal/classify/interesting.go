package classify

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"ReviewScanner/internal/domain"
)

const (
	interestingMaxScore = 15
	// Threshold is 50% of the ceiling; integer scores flag at >= 8.
	interestingThreshold = 7.5

	minInterestingLength = 20

	humorPatternWeight = 2
	solutionWeight     = 2

	humorCap        = 4
	creativityCap   = 3
	constructiveCap = 4
	emotionalCap    = 2
	detailCap       = 3

	diversityHigh = 0.8
	diversityLow  = 0.6
	minDiverseLen = 10
)

var humorExprs = []*regexp.Regexp{
	regexp.MustCompile(`😂|😄|😆|🤣|😁`),
	regexp.MustCompile(`(?i)haha|ahaha|lol|:D|xD`),
	regexp.MustCompile(`(?i)komik|eğlenceli|gülmek|kahkaha`),
}

var emotionalExprs = []*regexp.Regexp{
	regexp.MustCompile(`!{2,}`),
	regexp.MustCompile(`\?{2,}`),
	regexp.MustCompile(`[A-Z]{3,}`),
	regexp.MustCompile(`❤️|💕|💖|😍|🥰`),
	regexp.MustCompile(`😢|😭|💔|😞|😔`),
}

var numericDataExpr = regexp.MustCompile(`\d+\.\d+|\d+%|\d+/\d+|\d+ (gün|saat|dakika|day|hour|minute)`)

// InterestingCategory partitions interesting reviews into overlapping buckets.
type InterestingCategory string

const (
	CategoryHumorous     InterestingCategory = "humorous"
	CategoryCreative     InterestingCategory = "creative"
	CategoryConstructive InterestingCategory = "constructive"
	CategoryDetailed     InterestingCategory = "detailed"
	CategoryEmotional    InterestingCategory = "emotional"
)

// InterestingReviewClassifier is a multi-factor weighted heuristic scorer.
// Humor and emotional intensity are measured on the original content, the
// remaining signals on the cleaned content.
type InterestingReviewClassifier struct {
	logger *slog.Logger
}

// NewInterestingReviewClassifier builds the classifier.
func NewInterestingReviewClassifier(logger *slog.Logger) *InterestingReviewClassifier {
	return &InterestingReviewClassifier{logger: logger}
}

// DetectBatch flags each review in order, failing open on per-review errors.
func (c *InterestingReviewClassifier) DetectBatch(reviews []domain.ProcessedReview) []bool {
	flags := make([]bool, len(reviews))
	for i, review := range reviews {
		interesting, err := c.analyze(review)
		if err != nil {
			if c.logger != nil {
				c.logger.Warn("interest detection failed, marking uninteresting",
					"review_id", review.ID, "error", err)
			}
			continue
		}
		flags[i] = interesting
	}
	return flags
}

// Detect flags a single review. Reviews with cleaned content shorter than
// twenty characters short-circuit to false.
func (c *InterestingReviewClassifier) Detect(review domain.ProcessedReview) bool {
	interesting, err := c.analyze(review)
	if err != nil {
		return false
	}
	return interesting
}

// Score exposes the raw interest score for one review.
func (c *InterestingReviewClassifier) Score(review domain.ProcessedReview) int {
	content := review.CleanedContent
	if content == "" || len([]rune(content)) < minInterestingLength {
		return 0
	}

	score := lengthScore(content)
	score += humorScore(review.OriginalContent)
	score += creativityScore(content, review.DetectedLanguage)
	score += constructiveScore(content, review.DetectedLanguage)
	score += emotionalScore(review.OriginalContent)
	score += detailScore(content)
	score += uniquenessScore(content)
	score += engagementScore(review.ThumbsUp)
	return score
}

// Categorize partitions the interesting subset into the five overlapping
// buckets by re-running the relevant sub-scores; a review joins every bucket
// whose sub-score is positive.
func (c *InterestingReviewClassifier) Categorize(reviews []domain.ProcessedReview, flags []bool) map[InterestingCategory][]domain.ProcessedReview {
	categories := map[InterestingCategory][]domain.ProcessedReview{
		CategoryHumorous:     {},
		CategoryCreative:     {},
		CategoryConstructive: {},
		CategoryDetailed:     {},
		CategoryEmotional:    {},
	}

	for i, review := range reviews {
		if i >= len(flags) || !flags[i] {
			continue
		}

		content := review.CleanedContent
		if humorScore(review.OriginalContent) > 0 {
			categories[CategoryHumorous] = append(categories[CategoryHumorous], review)
		}
		if creativityScore(content, review.DetectedLanguage) > 0 {
			categories[CategoryCreative] = append(categories[CategoryCreative], review)
		}
		if constructiveScore(content, review.DetectedLanguage) > 0 {
			categories[CategoryConstructive] = append(categories[CategoryConstructive], review)
		}
		if detailScore(content) > 0 {
			categories[CategoryDetailed] = append(categories[CategoryDetailed], review)
		}
		if emotionalScore(review.OriginalContent) > 0 {
			categories[CategoryEmotional] = append(categories[CategoryEmotional], review)
		}
	}

	return categories
}

func (c *InterestingReviewClassifier) analyze(review domain.ProcessedReview) (interesting bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			interesting = false
			err = fmt.Errorf("scoring panic: %v", r)
		}
	}()

	return float64(c.Score(review)) >= interestingThreshold, nil
}

func lengthScore(content string) int {
	switch words := len(strings.Fields(content)); {
	case words >= 50:
		return 3
	case words >= 25:
		return 2
	case words >= 15:
		return 1
	default:
		return 0
	}
}

func humorScore(original string) int {
	score := 0
	for _, expr := range humorExprs {
		if expr.MatchString(original) {
			score += humorPatternWeight
		}
	}
	score += countContained(strings.ToLower(original), humorWords)
	return min(score, humorCap)
}

func creativityScore(content, lang string) int {
	lower := strings.ToLower(content)
	keywords, ok := creativeKeywords[lang]
	if !ok {
		keywords = creativeKeywords["tr"]
	}
	score := countContained(lower, keywords)
	score += countContained(lower, metaphorMarkers)
	return min(score, creativityCap)
}

func constructiveScore(content, lang string) int {
	lower := strings.ToLower(content)
	keywords, ok := constructiveKeywords[lang]
	if !ok {
		keywords = constructiveKeywords["tr"]
	}
	score := countContained(lower, keywords)
	score += countContained(lower, solutionPhrases) * solutionWeight
	return min(score, constructiveCap)
}

func emotionalScore(original string) int {
	score := 0
	for _, expr := range emotionalExprs {
		score += len(expr.FindAllString(original, -1))
	}
	return min(score, emotionalCap)
}

func detailScore(content string) int {
	lower := strings.ToLower(content)
	score := countContained(lower, detailedKeywords)

	if numericDataExpr.MatchString(content) {
		score++
	}
	for _, word := range comparisonWords {
		if strings.Contains(lower, word) {
			score++
			break
		}
	}
	return min(score, detailCap)
}

// uniquenessScore is the type/token ratio over words: 0 below ten words.
func uniquenessScore(content string) int {
	words := strings.Fields(strings.ToLower(content))
	if len(words) < minDiverseLen {
		return 0
	}

	unique := make(map[string]struct{}, len(words))
	for _, w := range words {
		unique[w] = struct{}{}
	}

	switch diversity := float64(len(unique)) / float64(len(words)); {
	case diversity > diversityHigh:
		return 2
	case diversity > diversityLow:
		return 1
	default:
		return 0
	}
}

func engagementScore(thumbsUp int) int {
	switch {
	case thumbsUp >= 10:
		return 2
	case thumbsUp >= 5:
		return 1
	default:
		return 0
	}
}

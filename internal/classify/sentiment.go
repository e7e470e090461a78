package classify

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"ReviewScanner/internal/domain"
	"ReviewScanner/internal/ports"
)

const (
	// Content beyond this many runes is truncated before model inference.
	maxModelChars = 512

	// Content below this many runes is always neutral, no model call.
	minSentimentLength = 5

	positiveThreshold = 0.1
	negativeThreshold = -0.1
)

// SentimentSource records which path produced a label, so fallbacks stay
// observable instead of silent.
type SentimentSource string

const (
	SourceModel   SentimentSource = "model"
	SourceLexicon SentimentSource = "lexicon"
	SourceRule    SentimentSource = "rule"
	SourceDefault SentimentSource = "default"
)

// SentimentOutcome is the per-review result: a label plus how it was reached.
type SentimentOutcome struct {
	Label  domain.Sentiment
	Source SentimentSource
	Reason string
}

// SentimentClassifier labels reviews via a model-backed path with a lexical
// polarity fallback and a final rule-based fallback. The model is lazily
// initialized exactly once and reused across the batch.
type SentimentClassifier struct {
	model  ports.SentimentModel
	logger *slog.Logger

	initOnce sync.Once
	initErr  error
}

// NewSentimentClassifier wires the injected model; nil disables the model path.
func NewSentimentClassifier(model ports.SentimentModel, logger *slog.Logger) *SentimentClassifier {
	return &SentimentClassifier{model: model, logger: logger}
}

// Classify labels one processed review. It never returns an error: every
// failure falls through to the next estimator.
func (c *SentimentClassifier) Classify(ctx context.Context, review domain.ProcessedReview) SentimentOutcome {
	content := review.CleanedContent
	if len([]rune(content)) < minSentimentLength {
		return SentimentOutcome{
			Label:  domain.SentimentNeutral,
			Source: SourceDefault,
			Reason: "content below minimum length",
		}
	}

	if c.model != nil {
		c.initOnce.Do(func() {
			c.initErr = c.model.Init(ctx)
			if c.initErr != nil && c.logger != nil {
				c.logger.Warn("sentiment model unavailable, using fallbacks", "error", c.initErr)
			}
		})

		if c.initErr == nil {
			label, err := c.model.Classify(ctx, truncateRunes(content, maxModelChars))
			if err == nil {
				return SentimentOutcome{Label: label, Source: SourceModel}
			}
			if c.logger != nil {
				c.logger.Warn("model inference failed, using lexical fallback",
					"review_id", review.ID, "error", err)
			}
		}
	}

	if label, ok := lexicalPolarity(content); ok {
		return SentimentOutcome{Label: label, Source: SourceLexicon}
	}

	return SentimentOutcome{
		Label:  ruleBasedSentiment(review),
		Source: SourceRule,
		Reason: "no lexicon signal",
	}
}

// ClassifyBatch labels every review in order.
func (c *SentimentClassifier) ClassifyBatch(ctx context.Context, reviews []domain.ProcessedReview) []SentimentOutcome {
	outcomes := make([]SentimentOutcome, len(reviews))
	for i, review := range reviews {
		outcomes[i] = c.Classify(ctx, review)
	}
	return outcomes
}

// lexicalPolarity estimates polarity from positive/negative word-list hits.
// It declines (ok=false) when the lexicons produce no signal at all.
func lexicalPolarity(content string) (domain.Sentiment, bool) {
	lower := strings.ToLower(content)
	pos := countContained(lower, positiveWords)
	neg := countContained(lower, negativeWords)
	if pos+neg == 0 {
		return domain.SentimentNeutral, false
	}

	polarity := float64(pos-neg) / float64(pos+neg)
	switch {
	case polarity > positiveThreshold:
		return domain.SentimentPositive, true
	case polarity < negativeThreshold:
		return domain.SentimentNegative, true
	default:
		return domain.SentimentNeutral, true
	}
}

// ruleBasedSentiment combines the star rating with keyword lexicons. It is
// the last line of defense and cannot fail.
func ruleBasedSentiment(review domain.ProcessedReview) domain.Sentiment {
	base := domain.SentimentNeutral
	switch {
	case review.Rating >= 4:
		base = domain.SentimentPositive
	case review.Rating <= 2 && review.Rating >= 1:
		base = domain.SentimentNegative
	}

	lower := strings.ToLower(review.CleanedContent)
	pos := countContained(lower, rulePositiveKeywords)
	neg := countContained(lower, ruleNegativeKeywords)

	switch {
	case pos > neg && pos > 0:
		return domain.SentimentPositive
	case neg > pos && neg > 0:
		return domain.SentimentNegative
	default:
		return base
	}
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

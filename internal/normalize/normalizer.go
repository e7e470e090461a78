package normalize

import (
	"fmt"
	"html"
	"log/slog"
	"regexp"
	"strings"
	"unicode"

	"github.com/abadojack/whatlanggo"

	"ReviewScanner/internal/domain"
)

const (
	// Cleaned content shorter than this is treated as empty.
	minCleanedLength = 5
	// Language detection is skipped below this cleaned length.
	minDetectLength = 10

	// LanguageUnknown is reported when detection is skipped or fails.
	LanguageUnknown = "unknown"
)

var (
	whitespaceExpr = regexp.MustCompile(`\s+`)
	sentenceExpr   = regexp.MustCompile(`[.!?]+`)

	emojiExpr   = regexp.MustCompile(`[\x{1F600}-\x{1F64F}\x{1F300}-\x{1F5FF}\x{1F680}-\x{1F6FF}\x{1F1E0}-\x{1F1FF}]+`)
	urlExpr     = regexp.MustCompile(`https?://(?:[a-zA-Z]|[0-9]|[$-_@.&+]|[!*\(\),]|(?:%[0-9a-fA-F][0-9a-fA-F]))+`)
	mentionExpr = regexp.MustCompile(`@[A-Za-z0-9_]+`)
	hashtagExpr = regexp.MustCompile(`#[A-Za-z0-9_]+`)
)

// Normalizer converts raw reviews into processed reviews: content cleanup,
// language detection, lexical features, and fixed-pattern markers.
type Normalizer struct {
	logger *slog.Logger
}

// New builds a normalizer; a nil logger disables logging.
func New(logger *slog.Logger) *Normalizer {
	return &Normalizer{logger: logger}
}

// Process derives a ProcessedReview from one raw review. A processing error
// signals the caller to drop the review; it is never fatal to the batch.
func (n *Normalizer) Process(raw domain.RawReview) (domain.ProcessedReview, error) {
	if raw.Rating < 0 || raw.Rating > 5 {
		return domain.ProcessedReview{}, fmt.Errorf("review %s: rating %d out of range", raw.ID, raw.Rating)
	}

	content := html.UnescapeString(raw.Content)
	cleaned := CleanText(content)

	processed := domain.ProcessedReview{
		RawReview:        raw,
		OriginalContent:  content,
		CleanedContent:   cleaned,
		DetectedLanguage: n.detectLanguage(cleaned),
		TextLength:       len([]rune(content)),
		CleanedLength:    len([]rune(cleaned)),
		WordCount:        len(strings.Fields(cleaned)),
		Features:         ExtractFeatures(content, cleaned),
		Markers:          ExtractMarkers(content),
	}

	return processed, nil
}

// ProcessBatch normalizes a full batch, dropping reviews that fail with a
// warning instead of aborting.
func (n *Normalizer) ProcessBatch(raws []domain.RawReview) []domain.ProcessedReview {
	processed := make([]domain.ProcessedReview, 0, len(raws))
	for _, raw := range raws {
		p, err := n.Process(raw)
		if err != nil {
			if n.logger != nil {
				n.logger.Warn("drop review", "review_id", raw.ID, "error", err)
			}
			continue
		}
		processed = append(processed, p)
	}
	return processed
}

// CleanText collapses whitespace runs and trims. Results shorter than five
// characters collapse to the empty string.
func CleanText(text string) string {
	if text == "" {
		return ""
	}

	text = whitespaceExpr.ReplaceAllString(text, " ")
	text = strings.TrimSpace(text)

	if len([]rune(text)) < minCleanedLength {
		return ""
	}
	return text
}

// detectLanguage is best-effort: short content and any detector failure
// yield "unknown", never an error.
func (n *Normalizer) detectLanguage(cleaned string) string {
	if len([]rune(cleaned)) < minDetectLength {
		return LanguageUnknown
	}

	info := whatlanggo.Detect(cleaned)
	code := info.Lang.Iso6391()
	if code == "" {
		return LanguageUnknown
	}
	return code
}

// ExtractFeatures computes lexical features over the cleaned content.
// Exclamation and question counts are taken from the original content.
func ExtractFeatures(original, cleaned string) domain.TextFeatures {
	if cleaned == "" {
		return domain.TextFeatures{}
	}

	runes := []rune(cleaned)
	total := float64(len(runes))

	var upper, punct, digit, special int
	for _, r := range runes {
		if unicode.IsUpper(r) {
			upper++
		}
		if unicode.IsDigit(r) {
			digit++
		}
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && !unicode.IsSpace(r) {
			punct++
			if !strings.ContainsRune(".,!?;:", r) {
				special++
			}
		}
	}

	words := strings.Fields(cleaned)
	var avgWordLength float64
	if len(words) > 0 {
		var sum int
		for _, w := range words {
			sum += len([]rune(w))
		}
		avgWordLength = float64(sum) / float64(len(words))
	}

	return domain.TextFeatures{
		UppercaseRatio:   float64(upper) / total,
		PunctuationRatio: float64(punct) / total,
		DigitRatio:       float64(digit) / total,
		SpecialCharRatio: float64(special) / total,
		AvgWordLength:    avgWordLength,
		SentenceCount:    len(sentenceExpr.Split(cleaned, -1)),
		ExclamationCount: strings.Count(original, "!"),
		QuestionCount:    strings.Count(original, "?"),
	}
}

// ExtractMarkers counts emoji runs, URLs, mentions, and hashtags in the
// original (non-cleaned) content.
func ExtractMarkers(original string) domain.ContentMarkers {
	return domain.ContentMarkers{
		EmojiCount:   len(emojiExpr.FindAllString(original, -1)),
		URLCount:     len(urlExpr.FindAllString(original, -1)),
		MentionCount: len(mentionExpr.FindAllString(original, -1)),
		HashtagCount: len(hashtagExpr.FindAllString(original, -1)),
	}
}

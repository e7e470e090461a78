package domain

import "time"

// RawReview is a platform-supplied review record. It is immutable once fetched.
type RawReview struct {
	ID           string     `json:"reviewId"`
	Author       string     `json:"userName"`
	AuthorAvatar string     `json:"userImage,omitempty"`
	Content      string     `json:"content"`
	Rating       int        `json:"score"`
	ThumbsUp     int        `json:"thumbsUpCount"`
	AppVersion   string     `json:"appVersion,omitempty"`
	CreatedAt    time.Time  `json:"at"`
	ReplyContent string     `json:"replyContent,omitempty"`
	RepliedAt    *time.Time `json:"repliedAt,omitempty"`
}

// TextFeatures are lexical measurements over the cleaned content.
// All ratios are 0.0 and all counts are 0 when the cleaned content is empty.
type TextFeatures struct {
	UppercaseRatio   float64 `json:"uppercase_ratio"`
	PunctuationRatio float64 `json:"punctuation_ratio"`
	DigitRatio       float64 `json:"digit_ratio"`
	SpecialCharRatio float64 `json:"special_char_ratio"`
	AvgWordLength    float64 `json:"avg_word_length"`
	SentenceCount    int     `json:"sentence_count"`
	ExclamationCount int     `json:"exclamation_count"`
	QuestionCount    int     `json:"question_count"`
}

// ContentMarkers count fixed-pattern matches against the original
// (non-cleaned) content.
type ContentMarkers struct {
	EmojiCount   int `json:"emoji_count"`
	URLCount     int `json:"url_count"`
	MentionCount int `json:"mention_count"`
	HashtagCount int `json:"hashtag_count"`
}

// HasEmojis reports whether any emoji run was found.
func (m ContentMarkers) HasEmojis() bool { return m.EmojiCount > 0 }

// HasURLs reports whether any URL was found.
func (m ContentMarkers) HasURLs() bool { return m.URLCount > 0 }

// ProcessedReview is a RawReview enriched with derived fields. It is created
// once per surviving raw review and never mutated afterwards.
type ProcessedReview struct {
	RawReview
	OriginalContent  string         `json:"original_content"`
	CleanedContent   string         `json:"cleaned_content"`
	DetectedLanguage string         `json:"detected_language"`
	TextLength       int            `json:"text_length"`
	CleanedLength    int            `json:"cleaned_length"`
	WordCount        int            `json:"word_count"`
	Features         TextFeatures   `json:"features"`
	Markers          ContentMarkers `json:"markers"`
}

// Fingerprint is the batch-scoped duplicate key: case-folded, trimmed
// cleaned content.
func (p ProcessedReview) Fingerprint() string {
	return Fingerprint(p.CleanedContent)
}

// Sentiment is one of the three polarity labels.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

// ClassificationResult carries the three independent labels for one review.
type ClassificationResult struct {
	Sentiment     Sentiment `json:"sentiment"`
	IsFake        bool      `json:"is_fake"`
	IsInteresting bool      `json:"is_interesting"`
}

// AnalyzedReview is the final enriched record exposed to export and
// presentation layers.
type AnalyzedReview struct {
	ProcessedReview
	Sentiment     Sentiment `json:"sentiment"`
	IsFake        bool      `json:"is_fake"`
	IsInteresting bool      `json:"is_interesting"`
}

// ReviewPage is one chunk of a paginated review fetch. Continuation is empty
// when the feed is exhausted.
type ReviewPage struct {
	Reviews      []RawReview `json:"reviews"`
	Continuation string      `json:"continuation_token,omitempty"`
}

// CollectResult bundles app metadata with the first review page.
type CollectResult struct {
	App          AppInfo     `json:"app_info"`
	Reviews      []RawReview `json:"reviews"`
	Continuation string      `json:"continuation_token,omitempty"`
}

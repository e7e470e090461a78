package normalize

import (
	"math"
	"testing"

	"ReviewScanner/internal/domain"
)

func TestCleanText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"collapses whitespace", "  hello    world  ", "hello world"},
		{"keeps plain text", "works fine", "works fine"},
		{"too short collapses to empty", "hi", ""},
		{"whitespace only", " \t \n ", ""},
		{"short after trim", "\t a b \n", ""},
		{"empty", "", ""},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if got := CleanText(tc.in); got != tc.want {
				t.Fatalf("CleanText(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestProcessRejectsOutOfRangeRating(t *testing.T) {
	t.Parallel()

	n := New(nil)

	for _, rating := range []int{-1, 6} {
		raw := domain.RawReview{ID: "r1", Content: "decent app overall", Rating: rating}
		if _, err := n.Process(raw); err == nil {
			t.Fatalf("expected error for rating %d", rating)
		}
	}
}

func TestProcessUnescapesHTMLEntities(t *testing.T) {
	t.Parallel()

	n := New(nil)

	raw := domain.RawReview{ID: "r1", Content: "fast &amp; reliable", Rating: 5}
	p, err := n.Process(raw)
	if err != nil {
		t.Fatalf("Process error: %v", err)
	}

	if p.OriginalContent != "fast & reliable" {
		t.Fatalf("unexpected original content: %q", p.OriginalContent)
	}
	if p.CleanedContent != "fast & reliable" {
		t.Fatalf("unexpected cleaned content: %q", p.CleanedContent)
	}
}

func TestProcessDerivedCounts(t *testing.T) {
	t.Parallel()

	n := New(nil)

	raw := domain.RawReview{ID: "r1", Content: "one two three", Rating: 3}
	p, err := n.Process(raw)
	if err != nil {
		t.Fatalf("Process error: %v", err)
	}

	if p.WordCount != 3 {
		t.Fatalf("word count = %d, want 3", p.WordCount)
	}
	if p.TextLength != 13 || p.CleanedLength != 13 {
		t.Fatalf("lengths = %d/%d, want 13/13", p.TextLength, p.CleanedLength)
	}
}

func TestExtractFeatures(t *testing.T) {
	t.Parallel()

	original := "Hello world! Are you ok?"
	f := ExtractFeatures(original, original)

	if f.ExclamationCount != 1 || f.QuestionCount != 1 {
		t.Fatalf("punctuation counts = %d/%d, want 1/1", f.ExclamationCount, f.QuestionCount)
	}
	if f.SentenceCount != 3 {
		t.Fatalf("sentence count = %d, want 3", f.SentenceCount)
	}
	if math.Abs(f.AvgWordLength-4.0) > 1e-9 {
		t.Fatalf("avg word length = %f, want 4.0", f.AvgWordLength)
	}
	if math.Abs(f.UppercaseRatio-2.0/24.0) > 1e-9 {
		t.Fatalf("uppercase ratio = %f, want %f", f.UppercaseRatio, 2.0/24.0)
	}
}

func TestExtractFeaturesEmptyContent(t *testing.T) {
	t.Parallel()

	f := ExtractFeatures("hi", "")
	if f != (domain.TextFeatures{}) {
		t.Fatalf("expected zero features, got %+v", f)
	}
}

func TestExtractMarkers(t *testing.T) {
	t.Parallel()

	m := ExtractMarkers("Check https://example.com 😂😂 @user #tag")

	if m.URLCount != 1 {
		t.Fatalf("url count = %d, want 1", m.URLCount)
	}
	// Adjacent emoji form a single run.
	if m.EmojiCount != 1 {
		t.Fatalf("emoji count = %d, want 1", m.EmojiCount)
	}
	if m.MentionCount != 1 || m.HashtagCount != 1 {
		t.Fatalf("mention/hashtag = %d/%d, want 1/1", m.MentionCount, m.HashtagCount)
	}
	if !m.HasEmojis() || !m.HasURLs() {
		t.Fatal("expected emoji and URL flags set")
	}
}

func TestDetectLanguage(t *testing.T) {
	t.Parallel()

	n := New(nil)

	raw := domain.RawReview{
		ID:      "r1",
		Content: "This application works really well and I use it every single day",
		Rating:  5,
	}
	p, err := n.Process(raw)
	if err != nil {
		t.Fatalf("Process error: %v", err)
	}
	if p.DetectedLanguage != "en" {
		t.Fatalf("detected language = %q, want en", p.DetectedLanguage)
	}

	short := domain.RawReview{ID: "r2", Content: "short one", Rating: 3}
	p, err = n.Process(short)
	if err != nil {
		t.Fatalf("Process error: %v", err)
	}
	if p.DetectedLanguage != LanguageUnknown {
		t.Fatalf("detected language = %q, want %q", p.DetectedLanguage, LanguageUnknown)
	}
}

func TestProcessBatchDropsInvalid(t *testing.T) {
	t.Parallel()

	n := New(nil)

	raws := []domain.RawReview{
		{ID: "ok", Content: "perfectly fine review", Rating: 4},
		{ID: "bad", Content: "rating out of range", Rating: 9},
	}

	processed := n.ProcessBatch(raws)
	if len(processed) != 1 {
		t.Fatalf("expected 1 processed review, got %d", len(processed))
	}
	if processed[0].ID != "ok" {
		t.Fatalf("unexpected survivor: %s", processed[0].ID)
	}
}

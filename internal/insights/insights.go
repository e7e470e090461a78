// Package insights derives descriptive statistics over a finished batch for
// digests and dashboards. Nothing here feeds back into classification.
package insights

import (
	"strings"

	"github.com/bbalet/stopwords"
	"gonum.org/v1/gonum/stat"

	"ReviewScanner/internal/domain"
)

// FlagStatistics summarizes one boolean label stream.
type FlagStatistics struct {
	Total   int     `json:"total_reviews"`
	Flagged int     `json:"flagged"`
	Ratio   float64 `json:"ratio"`
}

// CountFlags tallies a flag stream.
func CountFlags(flags []bool) FlagStatistics {
	stats := FlagStatistics{Total: len(flags)}
	for _, f := range flags {
		if f {
			stats.Flagged++
		}
	}
	if stats.Total > 0 {
		stats.Ratio = float64(stats.Flagged) / float64(stats.Total)
	}
	return stats
}

// BatchInsights are numeric aggregates over the processed batch.
type BatchInsights struct {
	AverageRating    float64 `json:"average_rating"`
	RatingStdDev     float64 `json:"rating_std_dev"`
	AverageWordCount float64 `json:"average_word_count"`
	VocabularySize   int     `json:"vocabulary_size"`
}

// Compute derives batch insights. Vocabulary size counts distinct
// non-stopword tokens across the whole batch, using each review's detected
// language for stopword stripping.
func Compute(reviews []domain.ProcessedReview) BatchInsights {
	if len(reviews) == 0 {
		return BatchInsights{}
	}

	ratings := make([]float64, len(reviews))
	wordCounts := make([]float64, len(reviews))
	vocabulary := make(map[string]struct{})

	for i, review := range reviews {
		ratings[i] = float64(review.Rating)
		wordCounts[i] = float64(review.WordCount)

		lang := review.DetectedLanguage
		if lang == "" || lang == "unknown" {
			lang = "en"
		}
		cleaned := stopwords.CleanString(review.CleanedContent, lang, false)
		for _, token := range strings.Fields(strings.ToLower(cleaned)) {
			vocabulary[token] = struct{}{}
		}
	}

	return BatchInsights{
		AverageRating:    stat.Mean(ratings, nil),
		RatingStdDev:     stat.StdDev(ratings, nil),
		AverageWordCount: stat.Mean(wordCounts, nil),
		VocabularySize:   len(vocabulary),
	}
}

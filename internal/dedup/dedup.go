package dedup

import (
	"log/slog"

	mapset "github.com/deckarep/golang-set/v2"

	"ReviewScanner/internal/domain"
)

// Fingerprints at or below this length are dropped outright: too short to
// carry a meaningful duplicate signal.
const minFingerprintLength = 10

// Deduplicator is a streaming, order-sensitive, batch-scoped filter. It has
// no cross-job memory; build a fresh one per batch.
type Deduplicator struct {
	seen   mapset.Set[string]
	logger *slog.Logger
}

// New builds an empty deduplicator; a nil logger disables logging.
func New(logger *slog.Logger) *Deduplicator {
	return &Deduplicator{
		seen:   mapset.NewSet[string](),
		logger: logger,
	}
}

// Keep reports whether a single review survives: its fingerprint must be
// non-empty, longer than ten characters, and unseen so far in this batch.
// First-seen reviews win.
func (d *Deduplicator) Keep(review domain.ProcessedReview) bool {
	fp := review.Fingerprint()
	if fp == "" || len([]rune(fp)) <= minFingerprintLength {
		return false
	}
	if d.seen.Contains(fp) {
		if d.logger != nil {
			d.logger.Debug("drop duplicate review", "review_id", review.ID)
		}
		return false
	}
	d.seen.Add(fp)
	return true
}

// Filter applies Keep over an ordered batch, preserving first-seen order.
func (d *Deduplicator) Filter(reviews []domain.ProcessedReview) []domain.ProcessedReview {
	kept := make([]domain.ProcessedReview, 0, len(reviews))
	for _, review := range reviews {
		if d.Keep(review) {
			kept = append(kept, review)
		}
	}
	return kept
}

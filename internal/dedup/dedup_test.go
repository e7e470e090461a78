package dedup

import (
	"testing"

	"ReviewScanner/internal/domain"
)

func processed(id, content string) domain.ProcessedReview {
	return domain.ProcessedReview{
		RawReview:      domain.RawReview{ID: id},
		CleanedContent: content,
	}
}

func TestFilterDropsDuplicatesKeepsFirst(t *testing.T) {
	t.Parallel()

	reviews := []domain.ProcessedReview{
		processed("a", "this app works very well"),
		processed("b", "THIS APP WORKS VERY WELL"),
		processed("c", "a completely different opinion"),
	}

	kept := New(nil).Filter(reviews)

	if len(kept) != 2 {
		t.Fatalf("expected 2 survivors, got %d", len(kept))
	}
	if kept[0].ID != "a" || kept[1].ID != "c" {
		t.Fatalf("unexpected survivors: %s, %s", kept[0].ID, kept[1].ID)
	}
}

func TestFilterDropsShortFingerprints(t *testing.T) {
	t.Parallel()

	reviews := []domain.ProcessedReview{
		processed("short", "ten chars!"),
		processed("empty", ""),
		processed("long", "eleven chars"),
	}

	kept := New(nil).Filter(reviews)

	if len(kept) != 1 {
		t.Fatalf("expected 1 survivor, got %d", len(kept))
	}
	if kept[0].ID != "long" {
		t.Fatalf("unexpected survivor: %s", kept[0].ID)
	}
}

func TestKeepIsBatchScoped(t *testing.T) {
	t.Parallel()

	review := processed("a", "same content either way")

	first := New(nil)
	if !first.Keep(review) {
		t.Fatal("first batch should keep the review")
	}
	if first.Keep(review) {
		t.Fatal("same batch should drop the repeat")
	}

	if !New(nil).Keep(review) {
		t.Fatal("fresh batch should keep the review again")
	}
}

package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"

	"ReviewScanner/internal/domain"
	"ReviewScanner/internal/ports"
)

const (
	kindSummary = "summary"
	kindReviews = "reviews"
)

// Schema creates the artifact table. Applied once at startup.
const Schema = `CREATE TABLE IF NOT EXISTS review_artifacts (
    job_id     TEXT        NOT NULL,
    kind       TEXT        NOT NULL,
    document   JSONB       NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL,
    PRIMARY KEY (job_id, kind)
)`

// PostgresStore persists job artifacts as JSONB documents keyed by
// (job id, kind).
type PostgresStore struct {
	db      *sql.DB
	builder sq.StatementBuilderType
}

var _ ports.JobStore = (*PostgresStore)(nil)

// NewPostgresStore wires a sql.DB implementation.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{
		db:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// EnsureSchema applies the artifact table schema.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// SaveSummary upserts the job summary document.
func (s *PostgresStore) SaveSummary(ctx context.Context, result domain.JobResult) error {
	return s.upsert(ctx, result.JobID, kindSummary, result)
}

// Summary loads the job summary for the given id.
func (s *PostgresStore) Summary(ctx context.Context, jobID string) (domain.JobResult, error) {
	var result domain.JobResult
	err := s.get(ctx, jobID, kindSummary, &result)
	return result, err
}

// SaveReviews upserts the enriched review list document.
func (s *PostgresStore) SaveReviews(ctx context.Context, jobID string, reviews []domain.AnalyzedReview) error {
	return s.upsert(ctx, jobID, kindReviews, reviews)
}

// Reviews loads the enriched review list for the given id.
func (s *PostgresStore) Reviews(ctx context.Context, jobID string) ([]domain.AnalyzedReview, error) {
	var reviews []domain.AnalyzedReview
	err := s.get(ctx, jobID, kindReviews, &reviews)
	return reviews, err
}

// ListSummaries returns every stored job summary.
func (s *PostgresStore) ListSummaries(ctx context.Context) ([]domain.JobResult, error) {
	query, args, err := s.builder.
		Select("document").
		From("review_artifacts").
		Where(sq.Eq{"kind": kindSummary}).
		OrderBy("updated_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query summaries: %w", err)
	}
	defer rows.Close()

	var results []domain.JobResult
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan summary: %w", err)
		}
		var result domain.JobResult
		if err := json.Unmarshal(raw, &result); err != nil {
			return nil, fmt.Errorf("decode summary: %w", err)
		}
		results = append(results, result)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return results, nil
}

// DeleteOlderThan removes artifacts last written before the cutoff.
func (s *PostgresStore) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int, error) {
	query, args, err := s.builder.
		Delete("review_artifacts").
		Where(sq.Lt{"updated_at": cutoff}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build delete query: %w", err)
	}

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("delete artifacts: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("count deleted: %w", err)
	}
	return int(affected), nil
}

func (s *PostgresStore) upsert(ctx context.Context, jobID, kind string, document any) error {
	raw, err := json.Marshal(document)
	if err != nil {
		return fmt.Errorf("marshal %s document: %w", kind, err)
	}

	query, args, err := s.builder.
		Insert("review_artifacts").
		Columns("job_id", "kind", "document", "updated_at").
		Values(jobID, kind, raw, time.Now().UTC()).
		Suffix(`ON CONFLICT (job_id, kind) DO UPDATE
                SET document = EXCLUDED.document,
                    updated_at = EXCLUDED.updated_at`).
		ToSql()
	if err != nil {
		return fmt.Errorf("build upsert query: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert %s for %s: %w", kind, jobID, err)
	}
	return nil
}

func (s *PostgresStore) get(ctx context.Context, jobID, kind string, v any) error {
	query, args, err := s.builder.
		Select("document").
		From("review_artifacts").
		Where(sq.Eq{"job_id": jobID, "kind": kind}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build get query: %w", err)
	}

	var raw []byte
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&raw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%s for %s: %w", kind, jobID, ErrNotFound)
		}
		return fmt.Errorf("query %s for %s: %w", kind, jobID, err)
	}

	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decode %s for %s: %w", kind, jobID, err)
	}
	return nil
}

package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"ReviewScanner/internal/domain"
	"ReviewScanner/internal/ports"
)

// ErrNotFound is returned when no artifact exists for a job id.
var ErrNotFound = errors.New("job artifact not found")

const (
	summaryPrefix = "results_"
	reviewsPrefix = "reviews_"
)

// FileStore persists job artifacts as JSON files under one directory.
// Writes go through a temp file plus rename so a crash never leaves a
// half-written artifact behind.
type FileStore struct {
	dir    string
	logger *slog.Logger
}

var _ ports.JobStore = (*FileStore)(nil)

// NewFileStore creates the directory if needed.
func NewFileStore(dir string, logger *slog.Logger) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create artifact dir %s: %w", dir, err)
	}
	return &FileStore{dir: dir, logger: logger}, nil
}

// SaveSummary durably writes the job summary document.
func (s *FileStore) SaveSummary(_ context.Context, result domain.JobResult) error {
	return s.writeJSON(summaryPrefix+result.JobID+".json", result)
}

// Summary reads the job summary for the given id.
func (s *FileStore) Summary(_ context.Context, jobID string) (domain.JobResult, error) {
	var result domain.JobResult
	err := s.readJSON(summaryPrefix+jobID+".json", &result)
	return result, err
}

// SaveReviews durably writes the enriched review list.
func (s *FileStore) SaveReviews(_ context.Context, jobID string, reviews []domain.AnalyzedReview) error {
	return s.writeJSON(reviewsPrefix+jobID+".json", reviews)
}

// Reviews reads the enriched review list for the given id.
func (s *FileStore) Reviews(_ context.Context, jobID string) ([]domain.AnalyzedReview, error) {
	var reviews []domain.AnalyzedReview
	err := s.readJSON(reviewsPrefix+jobID+".json", &reviews)
	return reviews, err
}

// ListSummaries returns every stored job summary; corrupt files are skipped
// with a warning.
func (s *FileStore) ListSummaries(_ context.Context) ([]domain.JobResult, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read artifact dir: %w", err)
	}

	var results []domain.JobResult
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, summaryPrefix) || !strings.HasSuffix(name, ".json") {
			continue
		}

		var result domain.JobResult
		if err := s.readJSON(name, &result); err != nil {
			if s.logger != nil {
				s.logger.Warn("skip unreadable summary", "file", name, "error", err)
			}
			continue
		}
		results = append(results, result)
	}
	return results, nil
}

// DeleteOlderThan removes artifacts last written before the cutoff and
// returns the number of files deleted.
func (s *FileStore) DeleteOlderThan(_ context.Context, cutoff time.Time) (int, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return 0, fmt.Errorf("read artifact dir: %w", err)
	}

	deleted := 0
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		if !strings.HasPrefix(name, summaryPrefix) && !strings.HasPrefix(name, reviewsPrefix) {
			continue
		}

		info, err := entry.Info()
		if err != nil || !info.ModTime().Before(cutoff) {
			continue
		}
		if err := os.Remove(filepath.Join(s.dir, name)); err != nil {
			return deleted, fmt.Errorf("remove %s: %w", name, err)
		}
		deleted++
	}
	return deleted, nil
}

func (s *FileStore) writeJSON(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", name, err)
	}

	tmp, err := os.CreateTemp(s.dir, name+".tmp-")
	if err != nil {
		return fmt.Errorf("create temp for %s: %w", name, err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("sync %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close %s: %w", name, err)
	}

	if err := os.Rename(tmp.Name(), filepath.Join(s.dir, name)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("rename %s: %w", name, err)
	}
	return nil
}

func (s *FileStore) readJSON(name string, v any) error {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%s: %w", name, ErrNotFound)
		}
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	return nil
}

// Package app contains application services that orchestrate use cases.
// This is the application layer in Clean Architecture - it coordinates
// domain logic and infrastructure through ports.
package app

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/battulga/wordwall/internal/domain"
	"github.com/battulga/wordwall/internal/platform/metrics"
	"github.com/battulga/wordwall/internal/ports"
)

// WordService owns the word set. It validates and normalizes candidate
// words, enforces the batch cap, and delegates durable mutation to the
// configured repository. After every mutation it reads the set back from the
// store so responses carry ground truth even under concurrent writers, never
// a count computed in memory.
type WordService struct {
	repo     ports.WordRepository
	logger   *slog.Logger
	metrics  *metrics.Metrics
	maxLen   int
	maxBatch int
}

// WordServiceConfig contains configuration for the word service.
type WordServiceConfig struct {
	Repository ports.WordRepository
	Logger     *slog.Logger
	Metrics    *metrics.Metrics

	// MaxWordLength is the maximum word length in code points.
	// Defaults to domain.DefaultMaxWordLength when zero.
	MaxWordLength int

	// MaxBatchSize is the maximum number of words per request.
	// Defaults to domain.DefaultMaxBatchSize when zero.
	MaxBatchSize int
}

// NewWordService creates a new word service with the provided dependencies.
func NewWordService(cfg WordServiceConfig) *WordService {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	maxLen := cfg.MaxWordLength
	if maxLen <= 0 {
		maxLen = domain.DefaultMaxWordLength
	}

	maxBatch := cfg.MaxBatchSize
	if maxBatch <= 0 {
		maxBatch = domain.DefaultMaxBatchSize
	}

	return &WordService{
		repo:     cfg.Repository,
		logger:   logger,
		metrics:  cfg.Metrics,
		maxLen:   maxLen,
		maxBatch: maxBatch,
	}
}

// AddResult is the outcome of an AddBatch call.
type AddResult struct {
	// Words is the full updated set, most recently inserted first,
	// read back from the store after the write committed.
	Words []string

	// WordCount is len(Words), the post-commit total.
	WordCount int

	// AddedWords are the words actually inserted by this batch. Words that
	// were already present are skipped and do not appear here.
	AddedWords []string

	// AddedCount is len(AddedWords).
	AddedCount int
}

// RemoveResult is the outcome of a RemoveBatch call.
type RemoveResult struct {
	// Words is the full updated set after the removal committed.
	Words []string

	// WordCount is len(Words), the post-commit total.
	WordCount int

	// DeletedCount is the number of words that existed and were removed.
	// Requesting removal of an absent word does not contribute.
	DeletedCount int
}

// observe records one store call when metrics are configured.
func (s *WordService) observe(operation string, start time.Time, err error) {
	if s.metrics != nil {
		s.metrics.ObserveStoreOperation(operation, start)(err)
	}
}

// ListWords returns every stored word, most recently inserted first.
func (s *WordService) ListWords(ctx context.Context) ([]string, error) {
	start := time.Now()
	words, err := s.repo.ListWords(ctx)
	s.observe("list", start, err)

	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list words", slog.Any("error", err))
		return nil, err
	}

	return words, nil
}

// AddBatch validates, normalizes, and durably inserts a batch of candidate
// words. The whole batch is rejected before any durable mutation when it
// exceeds the batch cap or when any candidate fails validation; there is no
// partial application. Words already present are silently skipped.
func (s *WordService) AddBatch(ctx context.Context, candidates []string) (*AddResult, error) {
	if len(candidates) > s.maxBatch {
		return nil, domain.NewLimitExceededError(s.maxBatch, len(candidates))
	}

	valid, invalid := domain.CleanBatch(candidates, s.maxLen)
	if len(invalid) > 0 {
		s.logger.WarnContext(ctx, "rejected word batch",
			slog.Int("invalid", len(invalid)),
			slog.Int("batch_size", len(candidates)),
		)

		return nil, domain.NewInvalidWordsError(
			"words must contain only letters and fit the length limit", invalid)
	}

	valid = domain.Dedupe(valid)

	var added []string
	if len(valid) > 0 {
		var err error

		start := time.Now()
		added, err = s.repo.AddWords(ctx, valid)
		s.observe("add", start, err)

		if err != nil {
			s.logger.ErrorContext(ctx, "failed to add words",
				slog.Int("batch_size", len(valid)),
				slog.Any("error", err),
			)

			return nil, err
		}
	}

	// Read back post-commit so the response reflects durable state.
	words, err := s.repo.ListWords(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to read words back", slog.Any("error", err))
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.WordsAdded.Add(float64(len(added)))
	}

	s.logger.InfoContext(ctx, "added words",
		slog.Int("requested", len(candidates)),
		slog.Int("added", len(added)),
		slog.Int("total", len(words)),
	)

	return &AddResult{
		Words:      words,
		WordCount:  len(words),
		AddedWords: added,
		AddedCount: len(added),
	}, nil
}

// RemoveBatch removes each listed word if present. Targets are trimmed the
// same way added words are, so the surface form a client sends addresses the
// stored canonical word. Entries that could never have been stored (empty or
// failing validation) are no-ops, not errors.
func (s *WordService) RemoveBatch(ctx context.Context, candidates []string) (*RemoveResult, error) {
	targets := make([]string, 0, len(candidates))
	for _, raw := range candidates {
		word := strings.TrimSpace(raw)
		if word == "" || !domain.IsValid(word, s.maxLen) {
			continue
		}

		targets = append(targets, word)
	}

	targets = domain.Dedupe(targets)

	var removed int
	if len(targets) > 0 {
		var err error

		start := time.Now()
		removed, err = s.repo.RemoveWords(ctx, targets)
		s.observe("remove", start, err)

		if err != nil {
			s.logger.ErrorContext(ctx, "failed to remove words",
				slog.Int("batch_size", len(targets)),
				slog.Any("error", err),
			)

			return nil, err
		}
	}

	words, err := s.repo.ListWords(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to read words back", slog.Any("error", err))
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.WordsRemoved.Add(float64(removed))
	}

	s.logger.InfoContext(ctx, "removed words",
		slog.Int("requested", len(candidates)),
		slog.Int("removed", removed),
		slog.Int("total", len(words)),
	)

	return &RemoveResult{
		Words:        words,
		WordCount:    len(words),
		DeletedCount: removed,
	}, nil
}

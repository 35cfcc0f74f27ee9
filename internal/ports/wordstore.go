// Package ports defines interfaces for external dependencies.
// Ports are contracts that adapters implement, allowing the application layer
// to depend on abstractions rather than concrete implementations.
//
// Port Design Principles:
//   - Context as first parameter (always) for cancellation and deadlines
//   - Return domain types, never external DTOs or infrastructure types
//   - Error returns use domain error types (ErrUnavailable, ErrConflict, etc.)
//   - Keep interfaces small and focused (Interface Segregation Principle)
package ports

import (
	"context"
)

// WordRepository is the durability contract for the word set. The two
// shipped implementations have materially different consistency guarantees:
//
//   - sqlite: every batch runs in a single transaction. Duplicates are
//     rejected by the storage layer's uniqueness constraint and swallowed;
//     a reader never observes a partial batch.
//   - blob: the whole set is one document rewritten via read-modify-write.
//     Without conditional writes, concurrent batches can lose updates; with
//     them, the loser gets domain.ErrConflict and may retry.
//
// All inputs are canonical words; validation happens before the port.
type WordRepository interface {
	// ListWords returns every stored word, most recently inserted first.
	// The result reflects the adapter's most recent durable state; no
	// implementation may serve a cached copy.
	// Returns domain.ErrUnavailable if the store cannot be reached.
	ListWords(ctx context.Context) ([]string, error)

	// AddWords durably inserts the words that are not already present and
	// returns them in input order. Words already in the set are silently
	// skipped. The batch is applied atomically per the adapter's guarantee:
	// either all new words are recorded or none are.
	// Returns domain.ErrUnavailable on storage failure and
	// domain.ErrConflict when a conditional write loses a race.
	AddWords(ctx context.Context, words []string) (added []string, err error)

	// RemoveWords deletes each listed word if present and returns how many
	// actually existed and were removed. Absent words are no-ops, never
	// errors. Atomicity follows the same policy as AddWords.
	RemoveWords(ctx context.Context, words []string) (removed int, err error)
}

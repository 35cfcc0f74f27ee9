// Package domain contains business logic types and errors.
// Domain errors represent business-level failures, NOT HTTP errors.
// They are infrastructure-agnostic and can be mapped to HTTP/gRPC/etc by adapters.
package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for use with errors.Is().
var (
	// ErrInvalidInput indicates the request shape or content failed validation.
	ErrInvalidInput = errors.New("invalid input")

	// ErrLimitExceeded indicates a batch was larger than the configured cap.
	ErrLimitExceeded = errors.New("limit exceeded")

	// ErrConflict indicates a concurrent writer modified the word set between
	// read and write (conditional blob writes only).
	ErrConflict = errors.New("conflict")

	// ErrUnavailable indicates the backing store is unavailable.
	ErrUnavailable = errors.New("store unavailable")
)

// InvalidInputError provides context for validation failures.
// Words holds the offending entries when the failure is content-level.
type InvalidInputError struct {
	Reason string
	Words  []string
}

// Error implements the error interface.
func (e *InvalidInputError) Error() string {
	if len(e.Words) > 0 {
		return fmt.Sprintf("%s: %q", e.Reason, strings.Join(e.Words, ", "))
	}

	return e.Reason
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *InvalidInputError) Unwrap() error {
	return ErrInvalidInput
}

// NewInvalidInputError creates an invalid input error for a request shape problem.
func NewInvalidInputError(reason string) error {
	return &InvalidInputError{Reason: reason}
}

// NewInvalidWordsError creates an invalid input error naming the rejected words.
func NewInvalidWordsError(reason string, words []string) error {
	return &InvalidInputError{Reason: reason, Words: words}
}

// LimitExceededError provides context for batch cap violations.
type LimitExceededError struct {
	Limit int
	Count int
}

// Error implements the error interface.
func (e *LimitExceededError) Error() string {
	return fmt.Sprintf("too many words: got %d, at most %d allowed per request", e.Count, e.Limit)
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *LimitExceededError) Unwrap() error {
	return ErrLimitExceeded
}

// NewLimitExceededError creates a limit exceeded error with context.
func NewLimitExceededError(limit, count int) error {
	return &LimitExceededError{Limit: limit, Count: count}
}

// ConflictError provides context for lost-update conflicts surfaced by
// conditional writes. Callers may retry the whole read-modify-write cycle.
type ConflictError struct {
	Store  string
	Reason string
}

// Error implements the error interface.
func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s conflict: %s", e.Store, e.Reason)
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *ConflictError) Unwrap() error {
	return ErrConflict
}

// NewConflictError creates a conflict error with context.
func NewConflictError(store, reason string) error {
	return &ConflictError{Store: store, Reason: reason}
}

// UnavailableError provides context for store unavailability.
type UnavailableError struct {
	Store  string
	Reason string
}

// Error implements the error interface.
func (e *UnavailableError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("store %q unavailable: %s", e.Store, e.Reason)
	}

	return fmt.Sprintf("store %q unavailable", e.Store)
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *UnavailableError) Unwrap() error {
	return ErrUnavailable
}

// NewUnavailableError creates an unavailable error with context.
func NewUnavailableError(store, reason string) error {
	return &UnavailableError{Store: store, Reason: reason}
}

// IsInvalidInput checks if an error is an invalid input error.
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsLimitExceeded checks if an error is a limit exceeded error.
func IsLimitExceeded(err error) bool {
	return errors.Is(err, ErrLimitExceeded)
}

// IsConflict checks if an error is a conflict error.
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}

// IsUnavailable checks if an error is an unavailable error.
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrUnavailable)
}

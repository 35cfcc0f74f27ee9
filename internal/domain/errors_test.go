package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvalidInputError(t *testing.T) {
	t.Run("shape error carries reason only", func(t *testing.T) {
		err := NewInvalidInputError("request body must be a JSON array of strings")

		assert.Equal(t, "request body must be a JSON array of strings", err.Error())
		assert.True(t, IsInvalidInput(err))
		assert.True(t, errors.Is(err, ErrInvalidInput))
	})

	t.Run("content error names offending words", func(t *testing.T) {
		err := NewInvalidWordsError("words must contain only letters", []string{"wrong1", "bad!"})

		assert.Contains(t, err.Error(), "wrong1")
		assert.Contains(t, err.Error(), "bad!")
		assert.True(t, IsInvalidInput(err))
	})

	t.Run("typed error accessible via errors.As", func(t *testing.T) {
		err := NewInvalidWordsError("rejected", []string{"wrong1"})

		var invalidErr *InvalidInputError
		require.ErrorAs(t, err, &invalidErr)
		assert.Equal(t, []string{"wrong1"}, invalidErr.Words)
	})
}

func TestLimitExceededError(t *testing.T) {
	err := NewLimitExceededError(100, 150)

	assert.True(t, IsLimitExceeded(err))
	assert.Contains(t, err.Error(), "150")
	assert.Contains(t, err.Error(), "100")

	var limitErr *LimitExceededError
	require.ErrorAs(t, err, &limitErr)
	assert.Equal(t, 100, limitErr.Limit)
	assert.Equal(t, 150, limitErr.Count)
}

func TestConflictError(t *testing.T) {
	err := NewConflictError("blob", "document changed since read")

	assert.True(t, IsConflict(err))
	assert.False(t, IsUnavailable(err))
	assert.Contains(t, err.Error(), "blob")
}

func TestUnavailableError(t *testing.T) {
	t.Run("with reason", func(t *testing.T) {
		err := NewUnavailableError("sqlite", "begin transaction: database is locked")

		assert.True(t, IsUnavailable(err))
		assert.Contains(t, err.Error(), "sqlite")
		assert.Contains(t, err.Error(), "database is locked")
	})

	t.Run("without reason", func(t *testing.T) {
		err := NewUnavailableError("blob", "")

		assert.True(t, IsUnavailable(err))
		assert.Equal(t, `store "blob" unavailable`, err.Error())
	})
}

func TestErrorChecks_Wrapped(t *testing.T) {
	// Classification must survive wrapping with additional context.
	wrapped := fmt.Errorf("adding words: %w", NewLimitExceededError(100, 101))

	assert.True(t, IsLimitExceeded(wrapped))
	assert.False(t, IsInvalidInput(wrapped))
}

func TestErrorChecks_Unrelated(t *testing.T) {
	err := errors.New("boom")

	assert.False(t, IsInvalidInput(err))
	assert.False(t, IsLimitExceeded(err))
	assert.False(t, IsConflict(err))
	assert.False(t, IsUnavailable(err))
}

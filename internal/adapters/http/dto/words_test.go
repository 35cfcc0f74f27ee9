package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/battulga/wordwall/internal/app"
	"github.com/battulga/wordwall/internal/domain"
)

func TestDecodeWordArray(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		expected []string
		wantErr  bool
	}{
		{name: "array of strings", body: `["сайн","уу"]`, expected: []string{"сайн", "уу"}},
		{name: "empty array", body: `[]`, expected: []string{}},
		{name: "surrounding whitespace tolerated", body: "\n  [\"сайн\"]  \n", expected: []string{"сайн"}},
		{name: "null rejected", body: `null`, wantErr: true},
		{name: "object rejected", body: `{"words":["сайн"]}`, wantErr: true},
		{name: "bare string rejected", body: `"сайн"`, wantErr: true},
		{name: "numbers rejected", body: `[1,2]`, wantErr: true},
		{name: "mixed array rejected", body: `["сайн",1]`, wantErr: true},
		{name: "garbage rejected", body: `not json`, wantErr: true},
		{name: "empty body rejected", body: ``, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			words, err := DecodeWordArray([]byte(tt.body))

			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, domain.IsInvalidInput(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, words)
		})
	}
}

func TestDecodeRemoveRequest(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		expected []string
		wantErr  bool
	}{
		{name: "object with words array", body: `{"words":["сайн"]}`, expected: []string{"сайн"}},
		{name: "empty words array", body: `{"words":[]}`, expected: []string{}},
		{name: "extra fields ignored", body: `{"words":["сайн"],"force":true}`, expected: []string{"сайн"}},
		{name: "missing words rejected", body: `{}`, wantErr: true},
		{name: "null words rejected", body: `{"words":null}`, wantErr: true},
		{name: "non-array words rejected", body: `{"words":"сайн"}`, wantErr: true},
		{name: "bare array rejected", body: `["сайн"]`, wantErr: true},
		{name: "garbage rejected", body: `not json`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			words, err := DecodeRemoveRequest([]byte(tt.body))

			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, domain.IsInvalidInput(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, words)
		})
	}
}

func TestNewAddWordsResponse_NilSlicesBecomeEmpty(t *testing.T) {
	resp := NewAddWordsResponse(&app.AddResult{})

	assert.True(t, resp.Success)
	assert.NotNil(t, resp.Words)
	assert.NotNil(t, resp.AddedWords)
}

func TestNewRemoveWordsResponse_NilSliceBecomesEmpty(t *testing.T) {
	resp := NewRemoveWordsResponse(&app.RemoveResult{})

	assert.True(t, resp.Success)
	assert.NotNil(t, resp.Words)
}

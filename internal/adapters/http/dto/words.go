// Package dto provides Data Transfer Objects for HTTP request/response
// handling. The response shapes here are the API contract the word wall UI
// was built against; field names and nesting must not change.
package dto

import (
	"bytes"
	"encoding/json"

	"github.com/battulga/wordwall/internal/app"
	"github.com/battulga/wordwall/internal/domain"
)

// ErrorResponse is the error envelope for mutation endpoints and generic
// failures: {"success": false, "error": "..."}.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// NewErrorResponse creates an error response with the given message.
func NewErrorResponse(message string) *ErrorResponse {
	return &ErrorResponse{Success: false, Error: message}
}

// ListErrorResponse is the error envelope for the list endpoint: {"error": "..."}.
type ListErrorResponse struct {
	Error string `json:"error"`
}

// NewListErrorResponse creates a list error response with the given message.
func NewListErrorResponse(message string) *ListErrorResponse {
	return &ListErrorResponse{Error: message}
}

// AddWordsResponse is the success body for POST /api/words.
type AddWordsResponse struct {
	Success    bool     `json:"success"`
	WordCount  int      `json:"wordCount"`
	Words      []string `json:"words"`
	AddedWords []string `json:"addedWords"`
	AddedCount int      `json:"addedCount"`
}

// NewAddWordsResponse converts an application AddResult to the wire shape.
func NewAddWordsResponse(result *app.AddResult) *AddWordsResponse {
	return &AddWordsResponse{
		Success:    true,
		WordCount:  result.WordCount,
		Words:      emptyNotNull(result.Words),
		AddedWords: emptyNotNull(result.AddedWords),
		AddedCount: result.AddedCount,
	}
}

// RemoveWordsResponse is the success body for DELETE /api/words.
type RemoveWordsResponse struct {
	Success      bool     `json:"success"`
	WordCount    int      `json:"wordCount"`
	Words        []string `json:"words"`
	DeletedCount int      `json:"deletedCount"`
}

// NewRemoveWordsResponse converts an application RemoveResult to the wire shape.
func NewRemoveWordsResponse(result *app.RemoveResult) *RemoveWordsResponse {
	return &RemoveWordsResponse{
		Success:      true,
		WordCount:    result.WordCount,
		Words:        emptyNotNull(result.Words),
		DeletedCount: result.DeletedCount,
	}
}

// DecodeWordArray parses a request body that must be exactly a JSON array
// of strings. Anything else - null, an object, numbers in the array - fails
// closed with domain.ErrInvalidInput. No implicit coercion.
func DecodeWordArray(body []byte) ([]string, error) {
	var words []string
	if err := json.Unmarshal(bytes.TrimSpace(body), &words); err != nil {
		return nil, domain.NewInvalidInputError("expected a JSON array of words")
	}

	// json.Unmarshal leaves the slice nil for a JSON null.
	if words == nil {
		return nil, domain.NewInvalidInputError("expected a JSON array of words")
	}

	return words, nil
}

// removeRequest is the DELETE body: an object carrying a words array.
type removeRequest struct {
	Words *[]string `json:"words"`
}

// DecodeRemoveRequest parses a request body that must be a JSON object with
// a "words" array of strings. Extra fields are ignored; a missing, null, or
// non-array words field fails closed with domain.ErrInvalidInput.
func DecodeRemoveRequest(body []byte) ([]string, error) {
	var req removeRequest
	if err := json.Unmarshal(bytes.TrimSpace(body), &req); err != nil {
		return nil, domain.NewInvalidInputError("expected an object with a words array")
	}

	if req.Words == nil {
		return nil, domain.NewInvalidInputError("expected an object with a words array")
	}

	return *req.Words, nil
}

// emptyNotNull keeps JSON arrays as [] instead of null for nil slices.
func emptyNotNull(words []string) []string {
	if words == nil {
		return []string{}
	}

	return words
}

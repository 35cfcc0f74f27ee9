// Package handlers provides HTTP request handlers for the service.
package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/battulga/wordwall/internal/adapters/http/dto"
	"github.com/battulga/wordwall/internal/app"
	"github.com/battulga/wordwall/internal/domain"
)

// WordHandler handles the word set HTTP endpoints.
type WordHandler struct {
	service *app.WordService
}

// NewWordHandler creates a new word handler.
func NewWordHandler(service *app.WordService) *WordHandler {
	return &WordHandler{service: service}
}

// ListWords handles GET /api/words.
// Responds with a bare JSON array of words, most recently inserted first.
func (h *WordHandler) ListWords(c *gin.Context) {
	words, err := h.service.ListWords(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError,
			dto.NewListErrorResponse("failed to fetch words"))
		return
	}

	if words == nil {
		words = []string{}
	}

	c.JSON(http.StatusOK, words)
}

// AddWords handles POST /api/words.
// The body must be a JSON array of candidate words. The whole batch is
// rejected when any candidate is invalid or the batch exceeds the cap.
func (h *WordHandler) AddWords(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		respondError(c, domain.NewInvalidInputError("unable to read request body"))
		return
	}

	candidates, err := dto.DecodeWordArray(body)
	if err != nil {
		respondError(c, err)
		return
	}

	result, err := h.service.AddBatch(c.Request.Context(), candidates)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewAddWordsResponse(result))
}

// RemoveWords handles DELETE /api/words.
// The body must be a JSON object with a words array. Absent words are
// no-ops, not errors.
func (h *WordHandler) RemoveWords(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		respondError(c, domain.NewInvalidInputError("unable to read request body"))
		return
	}

	words, err := dto.DecodeRemoveRequest(body)
	if err != nil {
		respondError(c, err)
		return
	}

	result, err := h.service.RemoveBatch(c.Request.Context(), words)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewRemoveWordsResponse(result))
}

// RegisterWordRoutes registers the word routes on the given router group.
func (h *WordHandler) RegisterWordRoutes(rg *gin.RouterGroup) {
	rg.GET("/words", h.ListWords)
	rg.POST("/words", h.AddWords)
	rg.DELETE("/words", h.RemoveWords)
}

// respondError maps a domain error to the mutation endpoints' error shape.
// Validation and cap violations carry their message through (they name the
// offending entries); storage failures get a generic message so internals
// do not leak to clients.
func respondError(c *gin.Context, err error) {
	switch {
	case domain.IsInvalidInput(err), domain.IsLimitExceeded(err):
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(err.Error()))
	case domain.IsConflict(err):
		c.JSON(http.StatusConflict, dto.NewErrorResponse(err.Error()))
	default:
		c.JSON(http.StatusInternalServerError,
			dto.NewErrorResponse("failed to update words"))
	}
}

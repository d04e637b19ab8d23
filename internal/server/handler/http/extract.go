package http

import (
	"context"
	"net/http"

	"github.com/atinyakov/notekeeper/internal/middleware"
	"github.com/atinyakov/notekeeper/internal/models"
	"go.uber.org/zap"
)

// WebSearchExtractor builds and stores a web-search entry from a page URL.
type WebSearchExtractor interface {
	Extract(ctx context.Context, ownerID string, in models.WebSearchExtractInput) (*models.WebSearch, error)
}

// ExtractHandler serves POST /api/websearch/extract.
type ExtractHandler struct {
	Extractor WebSearchExtractor
	Logger    *zap.Logger
}

// NewExtractHandler returns an ExtractHandler backed by e.
func NewExtractHandler(e WebSearchExtractor, log *zap.Logger) *ExtractHandler {
	return &ExtractHandler{Extractor: e, Logger: log}
}

// Extract expects {"title", "url"} and responds with the stored entry.
func (h *ExtractHandler) Extract(w http.ResponseWriter, r *http.Request) {
	var in models.WebSearchExtractInput
	if !decodeBody(w, r, &in) {
		return
	}

	ws, err := h.Extractor.Extract(r.Context(), middleware.GetUserIDFromContext(r.Context()), in)
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, ws)
}

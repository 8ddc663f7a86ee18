package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/ternarybob/arbor"

	"github.com/seftonlabs/dealtriage/internal/interfaces"
	"github.com/seftonlabs/dealtriage/internal/services/pipeline"
)

// ClassifyRequest is the inbound payload for a classification call. Title
// is optional and, when present, is analyzed ahead of the body text, as
// announcement headlines frequently carry the strongest signal.
type ClassifyRequest struct {
	Title  string `json:"title"`
	Text   string `json:"text" validate:"required"`
	Source string `json:"source"`
}

// ClassifyHandler exposes the classification pipeline over HTTP.
type ClassifyHandler struct {
	classifier interfaces.Classifier
	validate   *validator.Validate
	logger     arbor.ILogger
	maxBytes   int64
}

// NewClassifyHandler creates the handler. maxBytes bounds the request
// body; the pipeline applies its own character limit on the text itself.
func NewClassifyHandler(classifier interfaces.Classifier, maxBytes int64, logger arbor.ILogger) *ClassifyHandler {
	return &ClassifyHandler{
		classifier: classifier,
		validate:   validator.New(),
		logger:     logger,
		maxBytes:   maxBytes,
	}
}

// ClassifyHandler handles POST /api/classify.
func (h *ClassifyHandler) ClassifyHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "POST") {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)

	var req ClassifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			WriteError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		WriteError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if err := h.validate.Struct(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "text is required")
		return
	}

	text := req.Text
	if req.Title != "" {
		text = req.Title + "\n\n" + text
	}

	result, err := h.classifier.Classify(r.Context(), text, req.Source)
	if err != nil {
		switch {
		case errors.Is(err, pipeline.ErrEmptyInput):
			WriteError(w, http.StatusBadRequest, "announcement text is empty")
		case errors.Is(err, pipeline.ErrInputTooLarge):
			WriteError(w, http.StatusRequestEntityTooLarge, "announcement text exceeds the maximum size")
		default:
			h.logger.Error().Err(err).Msg("Classification failed")
			WriteError(w, http.StatusInternalServerError, "classification failed")
		}
		return
	}

	h.logger.Debug().
		Str("request_id", result.RequestID).
		Str("source", req.Source).
		Int("title_chars", len(req.Title)).
		Int("text_chars", len(strings.TrimSpace(req.Text))).
		Msg("Classify request completed")

	WriteJSON(w, http.StatusOK, result)
}

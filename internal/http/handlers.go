package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"review-analyzer/internal/services/llm"
	"review-analyzer/internal/services/review"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// AnalyzerService is the slice of the review service the handlers need.
type AnalyzerService interface {
	Analyze(ctx context.Context, reviewText string) (*review.Result, error)
}

// ReviewHandler handles review analysis HTTP requests.
type ReviewHandler struct {
	svc AnalyzerService
}

func NewReviewHandler(svc AnalyzerService) *ReviewHandler {
	return &ReviewHandler{svc: svc}
}

// RegisterRoutes registers all review routes.
func (h *ReviewHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1/reviews", func(r chi.Router) {
		r.Post("/analyze", h.Analyze)
		r.Post("/report", h.Report)
		r.Get("/examples", h.Examples)
	})
}

// Analyze runs one structured extraction over the submitted review text.
func (h *ReviewHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req review.AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, review.ErrCodeValidation, "invalid request body")
		return
	}

	result, err := h.svc.Analyze(r.Context(), req.Review)
	if err != nil {
		status, code, message := mapAnalysisError(err)
		respondError(w, status, code, message)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// Report renders an analysis as the downloadable plain-text report.
func (h *ReviewHandler) Report(w http.ResponseWriter, r *http.Request) {
	var body llm.Analysis
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, review.ErrCodeValidation, "invalid request body")
		return
	}

	// Client-supplied analyses go through the same boundary normalization as
	// provider output, so the report invariants hold either way.
	report := review.Report(llm.Normalize(body))

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%s", review.ReportFilename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(report)); err != nil {
		log.Error().Err(err).Msg("Failed to write report")
	}
}

// Examples returns the canned example reviews for the UI picker.
func (h *ReviewHandler) Examples(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, review.Examples())
}

// mapAnalysisError translates a service failure into a status code and the
// error envelope. Every outbound failure degrades to "no result": nothing is
// retried server-side, the user retries manually.
func mapAnalysisError(err error) (int, string, string) {
	switch {
	case errors.Is(err, review.ErrEmptyReview):
		return http.StatusBadRequest, review.ErrCodeValidation,
			"Please enter a review to analyze."
	case errors.Is(err, review.ErrNotConfigured):
		return http.StatusServiceUnavailable, review.ErrCodeNotConfigured,
			"No API key configured. Add one to the secrets file or the environment."
	}

	switch llm.KindOf(err) {
	case llm.KindQuotaExceeded:
		return http.StatusTooManyRequests, review.ErrCodeQuota,
			"The provider's quota is exhausted. Please try again later."
	case llm.KindInvalidCredential:
		return http.StatusBadGateway, review.ErrCodeCredential,
			"The configured API key was rejected by the provider."
	case llm.KindMalformedResponse:
		return http.StatusBadGateway, review.ErrCodeUpstream,
			"The model returned an unusable response. Please try again."
	default:
		return http.StatusBadGateway, review.ErrCodeUpstream,
			"Analysis failed. Please try again."
	}
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, review.NewErrorResponse(code, message))
}

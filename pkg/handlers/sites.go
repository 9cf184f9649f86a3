package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/sitesmith-inc/sitesmith-engine/pkg/apperrors"
	"github.com/sitesmith-inc/sitesmith-engine/pkg/auth"
	"github.com/sitesmith-inc/sitesmith-engine/pkg/logging"
	"github.com/sitesmith-inc/sitesmith-engine/pkg/services"
	"github.com/sitesmith-inc/sitesmith-engine/pkg/sitespec"
)

// SitesHandler handles site generation HTTP requests.
type SitesHandler struct {
	pipeline services.SitePipeline
	logger   *zap.Logger
}

// NewSitesHandler creates a new sites handler.
func NewSitesHandler(pipeline services.SitePipeline, logger *zap.Logger) *SitesHandler {
	return &SitesHandler{
		pipeline: pipeline,
		logger:   logger,
	}
}

// RegisterRoutes registers the sites handler's routes on the given mux.
func (h *SitesHandler) RegisterRoutes(mux *http.ServeMux, authMiddleware *auth.Middleware) {
	mux.HandleFunc("POST /api/sites/generate", authMiddleware.RequireAuth(h.GenerateSite))
}

type generateSiteRequest struct {
	Prompt string `json:"prompt"`
}

// GenerateSite handles POST /api/sites/generate
func (h *SitesHandler) GenerateSite(w http.ResponseWriter, r *http.Request) {
	var req generateSiteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	result, err := h.pipeline.GenerateSite(r.Context(), req.Prompt)
	if err != nil {
		h.writePipelineError(w, err)
		return
	}

	if err := WriteJSON(w, http.StatusCreated, ApiResponse{
		Success: true,
		Data:    result,
	}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// writePipelineError maps pipeline failures to HTTP statuses. Upstream
// provider detail and datastore errors never reach the response body.
func (h *SitesHandler) writePipelineError(w http.ResponseWriter, err error) {
	var fieldErr *sitespec.FieldError
	var parseErr *sitespec.ParseError

	var status int
	var code, message string

	switch {
	case errors.Is(err, apperrors.ErrUnauthorized):
		status, code, message = http.StatusUnauthorized, "unauthorized", "Authentication required"

	case errors.Is(err, apperrors.ErrGenerationUnavailable):
		status, code, message = http.StatusServiceUnavailable, "generation_unavailable",
			"The generation provider is unavailable; try again later"

	case errors.Is(err, apperrors.ErrNoJSONBoundary):
		status, code, message = http.StatusBadGateway, "generation_unusable",
			"The generation provider returned an unusable response"

	case errors.As(err, &parseErr):
		status, code, message = http.StatusBadGateway, "generation_unusable",
			"The generation provider returned an unusable response"

	case errors.As(err, &fieldErr):
		status, code = http.StatusUnprocessableEntity, "invalid_document"
		message = fieldErr.Error()

	case errors.Is(err, apperrors.ErrMissingComponents),
		errors.Is(err, apperrors.ErrInvalidComponentsType),
		errors.Is(err, apperrors.ErrMissingHero):
		status, code, message = http.StatusUnprocessableEntity, "invalid_document", err.Error()

	case errors.Is(err, apperrors.ErrUnsafeContent):
		status, code, message = http.StatusUnprocessableEntity, "unsafe_content",
			"Generated content failed safety screening"

	case errors.Is(err, apperrors.ErrSubdomainExhausted):
		status, code, message = http.StatusConflict, "subdomain_exhausted",
			"No free subdomain could be found; try a different site name"

	default:
		h.logger.Error("Site generation failed", zap.String("error", logging.SanitizeError(err)))
		status, code, message = http.StatusInternalServerError, "generation_failed",
			"Site generation failed"
	}

	if err := ErrorResponse(w, status, code, message); err != nil {
		h.logger.Error("Failed to write error response", zap.Error(err))
	}
}

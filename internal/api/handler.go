package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	apperrors "github.com/janmarg/civicreport/internal/errors"
	"github.com/janmarg/civicreport/internal/analytics"
	"github.com/janmarg/civicreport/internal/database"
	"github.com/janmarg/civicreport/internal/ratelimit"
	"github.com/janmarg/civicreport/internal/service"
	"github.com/janmarg/civicreport/internal/store"
	middlewares "github.com/janmarg/civicreport/internal/middleware"
)

// Handler handles HTTP requests for the API
type Handler struct {
	svc       *service.Service
	analytics *analytics.Analytics
	store     store.Store
	db        *database.DB
	limiter   *ratelimit.Manager
	version   string
	buildTime string
	gitCommit string
	startTime time.Time
}

// NewHandler creates a new API handler
func NewHandler(svc *service.Service, an *analytics.Analytics, st store.Store, db *database.DB, limiter *ratelimit.Manager, version, buildTime, gitCommit string) *Handler {
	return &Handler{
		svc:       svc,
		analytics: an,
		store:     st,
		db:        db,
		limiter:   limiter,
		version:   version,
		buildTime: buildTime,
		gitCommit: gitCommit,
		startTime: time.Now(),
	}
}

// RegisterRoutes registers all API routes
func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/v1", func(r chi.Router) {
		// Health check endpoints
		r.Get("/health", h.healthHandler)
		r.Get("/health/ready", h.readinessHandler)
		r.Get("/health/live", h.livenessHandler)

		// Issues
		r.With(middlewares.SubmissionLimiter(h.limiter)).Post("/issues", h.submitIssueHandler)
		r.Get("/issues", h.listIssuesHandler)
		r.Get("/issues/{id}", h.getIssueHandler)
		r.Post("/issues/{id}/vote", h.voteHandler)
		r.Post("/issues/{id}/comments", h.addCommentHandler)
		r.Post("/issues/{id}/view", h.recordViewHandler)
		r.Post("/issues/{id}/status", h.updateStatusHandler)

		// Bids
		r.Get("/issues/{id}/bids", h.listIssueBidsHandler)
		r.Get("/issues/{id}/bid-range", h.bidRangeHandler)
		r.Post("/issues/{id}/bids", h.placeBidHandler)
		r.Post("/issues/{id}/bids/{bidID}/accept", h.acceptBidHandler)
		r.Get("/bids", h.listBidsHandler)

		// Insights preview for the reporting form
		r.Post("/insights/preview", h.previewInsightsHandler)

		// NGOs, assistance requests and donations
		r.Post("/ngos", h.registerNGOHandler)
		r.Get("/ngos", h.listNGOsHandler)
		r.Get("/ngos/{id}", h.getNGOHandler)
		r.Post("/ngo-requests", h.createNGORequestHandler)
		r.Get("/ngo-requests", h.listNGORequestsHandler)
		r.Post("/ngo-requests/{id}/review", h.reviewNGORequestHandler)
		r.Post("/donations", h.donateHandler)
		r.Get("/donations", h.listDonationsHandler)

		// Analytics
		r.Get("/analytics/summary", h.analyticsSummaryHandler)
		r.Get("/analytics/departments", h.analyticsDepartmentsHandler)
		r.Get("/analytics/states", h.analyticsStatesHandler)
		r.Get("/analytics/hotspots", h.analyticsHotspotsHandler)

		// System info
		r.Get("/version", h.versionHandler)
	})

	// Root health check
	r.Get("/health", h.healthHandler)
}

// healthHandler provides basic health check
func (h *Handler) healthHandler(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().UTC(),
		"version":   h.version,
	}

	h.writeJSONResponse(w, http.StatusOK, response)
}

// readinessHandler checks if the application is ready to serve traffic
func (h *Handler) readinessHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	checks := map[string]string{
		"store": "ok",
	}

	statusCode := http.StatusOK

	// Check store health
	if err := h.store.Health(ctx); err != nil {
		checks["store"] = "error: " + err.Error()
		statusCode = http.StatusServiceUnavailable
	}

	response := map[string]interface{}{
		"status":    "ready",
		"timestamp": time.Now().UTC(),
		"checks":    checks,
	}

	h.writeJSONResponse(w, statusCode, response)
}

// livenessHandler checks if the application is alive
func (h *Handler) livenessHandler(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":    "alive",
		"timestamp": time.Now().UTC(),
		"uptime":    time.Since(h.startTime).String(),
	}

	h.writeJSONResponse(w, http.StatusOK, response)
}

// versionHandler returns version information
func (h *Handler) versionHandler(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"version":    h.version,
		"build_time": h.buildTime,
		"git_commit": h.gitCommit,
	}

	h.writeJSONResponse(w, http.StatusOK, response)
}

// decodeJSON decodes a request body, rejecting unknown garbage early
func decodeJSON(r *http.Request, dst interface{}) error {
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	return dec.Decode(dst)
}

// writeServiceError maps service errors onto HTTP status codes
func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var verr apperrors.ValidationError
	var terr apperrors.TransitionError

	switch {
	case errors.As(err, &verr):
		h.writeErrorResponse(w, r, http.StatusBadRequest, verr.Error())
	case errors.As(err, &terr):
		h.writeErrorResponse(w, r, http.StatusConflict, terr.Error())
	case errors.Is(err, apperrors.ErrNotFound):
		h.writeErrorResponse(w, r, http.StatusNotFound, "Resource not found")
	case errors.Is(err, apperrors.ErrConflict):
		h.writeErrorResponse(w, r, http.StatusConflict, err.Error())
	case errors.Is(err, apperrors.ErrInvalidInput):
		h.writeErrorResponse(w, r, http.StatusBadRequest, err.Error())
	default:
		h.writeErrorResponse(w, r, http.StatusInternalServerError, "Internal server error")
	}
}

// writeJSONResponse writes a JSON response
func (h *Handler) writeJSONResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// writeListResponse writes the standard data/count/timestamp envelope
func (h *Handler) writeListResponse(w http.ResponseWriter, count int, data interface{}) {
	response := map[string]interface{}{
		"data":      data,
		"count":     count,
		"timestamp": time.Now().UTC(),
	}
	h.writeJSONResponse(w, http.StatusOK, response)
}

// writeErrorResponse writes a standardized error response
func (h *Handler) writeErrorResponse(w http.ResponseWriter, r *http.Request, statusCode int, message string) {
	response := ErrorResponse{
		Error:     http.StatusText(statusCode),
		Message:   message,
		Timestamp: time.Now().UTC(),
		RequestID: r.Header.Get("X-Request-ID"),
	}

	h.writeJSONResponse(w, statusCode, response)
}

// ErrorResponse represents an API error response
type ErrorResponse struct {
	Error     string    `json:"error"`
	Message   string    `json:"message,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	RequestID string    `json:"request_id,omitempty"`
}

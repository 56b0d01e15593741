package api

import (
	"net/http"
	"strconv"

	"github.com/janmarg/civicreport/internal/logger"
)

// analyticsSummaryHandler handles GET /analytics/summary
func (h *Handler) analyticsSummaryHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	summary, err := h.analytics.Overview(ctx)
	if err != nil {
		logger.WithContext(ctx).Error("Failed to compute summary", "error", err)
		h.writeErrorResponse(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}

	w.Header().Set("Cache-Control", "public, max-age=60")
	h.writeJSONResponse(w, http.StatusOK, summary)
}

// analyticsDepartmentsHandler handles GET /analytics/departments
func (h *Handler) analyticsDepartmentsHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	stats, err := h.analytics.ByDepartment(ctx)
	if err != nil {
		logger.WithContext(ctx).Error("Failed to compute department stats", "error", err)
		h.writeErrorResponse(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}

	w.Header().Set("Cache-Control", "public, max-age=60")
	h.writeListResponse(w, len(stats), stats)
}

// analyticsStatesHandler handles GET /analytics/states
func (h *Handler) analyticsStatesHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	stats, err := h.analytics.ByState(ctx)
	if err != nil {
		logger.WithContext(ctx).Error("Failed to compute state stats", "error", err)
		h.writeErrorResponse(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}

	w.Header().Set("Cache-Control", "public, max-age=60")
	h.writeListResponse(w, len(stats), stats)
}

// analyticsHotspotsHandler handles GET /analytics/hotspots
func (h *Handler) analyticsHotspotsHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	minIssues := 2
	if v := r.URL.Query().Get("min"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			h.writeErrorResponse(w, r, http.StatusBadRequest, "invalid min: "+v)
			return
		}
		minIssues = parsed
	}

	spots, err := h.analytics.Hotspots(ctx, minIssues)
	if err != nil {
		logger.WithContext(ctx).Error("Failed to compute hotspots", "error", err)
		h.writeErrorResponse(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}

	w.Header().Set("Cache-Control", "public, max-age=60")
	h.writeListResponse(w, len(spots), spots)
}

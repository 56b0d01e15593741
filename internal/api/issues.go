package api

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/janmarg/civicreport/internal/logger"
	"github.com/janmarg/civicreport/internal/models"
	"github.com/janmarg/civicreport/internal/service"
)

// submitIssueHandler handles POST /issues
func (h *Handler) submitIssueHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var input service.SubmitIssueInput
	if err := decodeJSON(r, &input); err != nil {
		h.writeErrorResponse(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	issue, err := h.svc.SubmitIssue(ctx, input)
	if err != nil {
		logger.WithContext(ctx).Error("Failed to submit issue", "error", err)
		h.writeServiceError(w, r, err)
		return
	}

	h.writeJSONResponse(w, http.StatusCreated, issue)
}

// listIssuesHandler handles GET /issues
func (h *Handler) listIssuesHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	q, err := h.parseIssueQuery(r)
	if err != nil {
		h.writeErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	issues, err := h.svc.ListIssues(ctx, q)
	if err != nil {
		logger.WithContext(ctx).Error("Failed to query issues", "error", err)
		h.writeErrorResponse(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}

	w.Header().Set("Cache-Control", "public, max-age=60")
	h.writeListResponse(w, len(issues), issues)
}

// getIssueHandler handles GET /issues/{id}
func (h *Handler) getIssueHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	issueID := chi.URLParam(r, "id")

	if issueID == "" {
		h.writeErrorResponse(w, r, http.StatusBadRequest, "issue ID is required")
		return
	}

	issue, err := h.svc.GetIssue(ctx, issueID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	w.Header().Set("Cache-Control", "public, max-age=30")
	h.writeJSONResponse(w, http.StatusOK, issue)
}

// voteHandler handles POST /issues/{id}/vote
func (h *Handler) voteHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	issueID := chi.URLParam(r, "id")

	var body struct {
		UserID string `json:"userId"`
		Upvote bool   `json:"upvote"`
	}
	if err := decodeJSON(r, &body); err != nil {
		h.writeErrorResponse(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	issue, err := h.svc.Vote(ctx, issueID, body.UserID, body.Upvote)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	h.writeJSONResponse(w, http.StatusOK, issue)
}

// addCommentHandler handles POST /issues/{id}/comments
func (h *Handler) addCommentHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	issueID := chi.URLParam(r, "id")

	var body struct {
		UserID     string `json:"userId"`
		UserName   string `json:"userName"`
		Text       string `json:"text"`
		IsOfficial bool   `json:"isOfficial"`
	}
	if err := decodeJSON(r, &body); err != nil {
		h.writeErrorResponse(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	comment, err := h.svc.AddComment(ctx, issueID, body.UserID, body.UserName, body.Text, body.IsOfficial)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	h.writeJSONResponse(w, http.StatusCreated, comment)
}

// recordViewHandler handles POST /issues/{id}/view
func (h *Handler) recordViewHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	issueID := chi.URLParam(r, "id")

	if err := h.svc.RecordView(ctx, issueID); err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// updateStatusHandler handles POST /issues/{id}/status
func (h *Handler) updateStatusHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	issueID := chi.URLParam(r, "id")

	var body struct {
		Status   models.IssueStatus `json:"status"`
		UserID   string             `json:"userId"`
		UserName string             `json:"userName"`
	}
	if err := decodeJSON(r, &body); err != nil {
		h.writeErrorResponse(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	issue, err := h.svc.UpdateStatus(ctx, issueID, body.Status, body.UserID, body.UserName)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	h.writeJSONResponse(w, http.StatusOK, issue)
}

// placeBidHandler handles POST /issues/{id}/bids
func (h *Handler) placeBidHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	issueID := chi.URLParam(r, "id")

	var input service.PlaceBidInput
	if err := decodeJSON(r, &input); err != nil {
		h.writeErrorResponse(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	input.IssueID = issueID

	bid, err := h.svc.PlaceBid(ctx, input)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	h.writeJSONResponse(w, http.StatusCreated, bid)
}

// acceptBidHandler handles POST /issues/{id}/bids/{bidID}/accept
func (h *Handler) acceptBidHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	issueID := chi.URLParam(r, "id")
	bidID := chi.URLParam(r, "bidID")

	issue, err := h.svc.AcceptBid(ctx, issueID, bidID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	h.writeJSONResponse(w, http.StatusOK, issue)
}

// listIssueBidsHandler handles GET /issues/{id}/bids
func (h *Handler) listIssueBidsHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	issueID := chi.URLParam(r, "id")

	bids, err := h.svc.ListBids(ctx, models.BidQuery{IssueID: issueID})
	if err != nil {
		h.writeErrorResponse(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.writeListResponse(w, len(bids), bids)
}

// bidRangeHandler handles GET /issues/{id}/bid-range
func (h *Handler) bidRangeHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	issueID := chi.URLParam(r, "id")

	bidRange, err := h.svc.RecommendedBidRange(ctx, issueID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	w.Header().Set("Cache-Control", "public, max-age=300")
	h.writeJSONResponse(w, http.StatusOK, bidRange)
}

// listBidsHandler handles GET /bids (filter by collaborator)
func (h *Handler) listBidsHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	q := models.BidQuery{
		CollaboratorID: r.URL.Query().Get("collaborator"),
	}
	for _, s := range r.URL.Query()["status"] {
		q.Statuses = append(q.Statuses, models.BidStatus(s))
	}

	bids, err := h.svc.ListBids(ctx, q)
	if err != nil {
		h.writeErrorResponse(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.writeListResponse(w, len(bids), bids)
}

// previewInsightsHandler handles POST /insights/preview
func (h *Handler) previewInsightsHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var draft models.Issue
	if err := decodeJSON(r, &draft); err != nil {
		h.writeErrorResponse(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	bundle, err := h.svc.PreviewInsights(ctx, draft)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	h.writeJSONResponse(w, http.StatusOK, bundle)
}

// parseIssueQuery parses query parameters into IssueQuery
func (h *Handler) parseIssueQuery(r *http.Request) (models.IssueQuery, error) {
	q := models.IssueQuery{}

	// Parse limit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil {
			return q, fmt.Errorf("invalid limit: %s", limitStr)
		}
		if limit < 0 || limit > 1000 {
			return q, fmt.Errorf("limit must be between 0 and 1000")
		}
		q.Limit = limit
	}

	// Parse offset
	if offsetStr := r.URL.Query().Get("offset"); offsetStr != "" {
		offset, err := strconv.Atoi(offsetStr)
		if err != nil {
			return q, fmt.Errorf("invalid offset: %s", offsetStr)
		}
		if offset < 0 {
			return q, fmt.Errorf("offset must be non-negative")
		}
		q.Offset = offset
	}

	// Parse time filters (RFC 3339 in, epoch milliseconds internally)
	if sinceStr := r.URL.Query().Get("since"); sinceStr != "" {
		since, err := time.Parse(time.RFC3339, sinceStr)
		if err != nil {
			return q, fmt.Errorf("invalid since format: %s", sinceStr)
		}
		q.Since = since.UnixMilli()
	}

	if untilStr := r.URL.Query().Get("until"); untilStr != "" {
		until, err := time.Parse(time.RFC3339, untilStr)
		if err != nil {
			return q, fmt.Errorf("invalid until format: %s", untilStr)
		}
		q.Until = until.UnixMilli()
	}

	// Parse array filters
	for _, c := range r.URL.Query()["category"] {
		q.Categories = append(q.Categories, models.Category(c))
	}
	for _, s := range r.URL.Query()["status"] {
		q.Statuses = append(q.Statuses, models.IssueStatus(s))
	}
	q.Departments = r.URL.Query()["department"]
	q.Cities = r.URL.Query()["city"]
	q.States = r.URL.Query()["state"]

	return q, nil
}

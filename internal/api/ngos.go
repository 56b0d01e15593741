package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/janmarg/civicreport/internal/models"
	"github.com/janmarg/civicreport/internal/service"
)

// registerNGOHandler handles POST /ngos
func (h *Handler) registerNGOHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var input service.RegisterNGOInput
	if err := decodeJSON(r, &input); err != nil {
		h.writeErrorResponse(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	ngo, err := h.svc.RegisterNGO(ctx, input)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	h.writeJSONResponse(w, http.StatusCreated, ngo)
}

// listNGOsHandler handles GET /ngos
func (h *Handler) listNGOsHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	ngos, err := h.svc.ListNGOs(ctx)
	if err != nil {
		h.writeErrorResponse(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}

	w.Header().Set("Cache-Control", "public, max-age=60")
	h.writeListResponse(w, len(ngos), ngos)
}

// getNGOHandler handles GET /ngos/{id}
func (h *Handler) getNGOHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ngoID := chi.URLParam(r, "id")

	ngo, err := h.svc.GetNGO(ctx, ngoID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	h.writeJSONResponse(w, http.StatusOK, ngo)
}

// createNGORequestHandler handles POST /ngo-requests
func (h *Handler) createNGORequestHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var body struct {
		NGOID   string `json:"ngoId"`
		IssueID string `json:"issueId"`
		Message string `json:"message"`
	}
	if err := decodeJSON(r, &body); err != nil {
		h.writeErrorResponse(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	req, err := h.svc.CreateNGORequest(ctx, body.NGOID, body.IssueID, body.Message)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	h.writeJSONResponse(w, http.StatusCreated, req)
}

// listNGORequestsHandler handles GET /ngo-requests
func (h *Handler) listNGORequestsHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	q := models.NGORequestQuery{
		NGOID:   r.URL.Query().Get("ngo"),
		IssueID: r.URL.Query().Get("issue"),
	}
	for _, s := range r.URL.Query()["status"] {
		q.Statuses = append(q.Statuses, models.NGORequestStatus(s))
	}

	reqs, err := h.svc.ListNGORequests(ctx, q)
	if err != nil {
		h.writeErrorResponse(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.writeListResponse(w, len(reqs), reqs)
}

// reviewNGORequestHandler handles POST /ngo-requests/{id}/review
func (h *Handler) reviewNGORequestHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := chi.URLParam(r, "id")

	var body struct {
		Approve  bool   `json:"approve"`
		Reviewer string `json:"reviewer"`
		Notes    string `json:"notes"`
	}
	if err := decodeJSON(r, &body); err != nil {
		h.writeErrorResponse(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	req, err := h.svc.ReviewNGORequest(ctx, requestID, body.Approve, body.Reviewer, body.Notes)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	h.writeJSONResponse(w, http.StatusOK, req)
}

// donateHandler handles POST /donations
func (h *Handler) donateHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var input service.DonateInput
	if err := decodeJSON(r, &input); err != nil {
		h.writeErrorResponse(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	donation, err := h.svc.Donate(ctx, input)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	h.writeJSONResponse(w, http.StatusCreated, donation)
}

// listDonationsHandler handles GET /donations
func (h *Handler) listDonationsHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	q := models.DonationQuery{
		NGOID:   r.URL.Query().Get("ngo"),
		DonorID: r.URL.Query().Get("donor"),
	}

	donations, err := h.svc.ListDonations(ctx, q)
	if err != nil {
		h.writeErrorResponse(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.writeListResponse(w, len(donations), donations)
}

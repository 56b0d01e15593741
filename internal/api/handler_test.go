package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/janmarg/civicreport/internal/analytics"
	"github.com/janmarg/civicreport/internal/geocoder"
	"github.com/janmarg/civicreport/internal/models"
	"github.com/janmarg/civicreport/internal/service"
	"github.com/janmarg/civicreport/internal/store"
)

func newTestHandler() (*Handler, *chi.Mux) {
	st := store.NewInMemoryStore()
	svc := service.New(st, geocoder.New())
	an := analytics.New(st)
	h := NewHandler(svc, an, st, nil, nil, "test", "now", "abc123")

	r := chi.NewRouter()
	h.RegisterRoutes(r)
	return h, r
}

func doJSON(t *testing.T, r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func submitTestIssue(t *testing.T, r http.Handler) models.Issue {
	t.Helper()

	rec := doJSON(t, r, "POST", "/v1/issues", service.SubmitIssueInput{
		Title:       "Dangerous pothole causing accidents",
		Description: "Large pothole on the main road near the market",
		Category:    models.CategoryRoads,
		Location:    models.Location{City: "Delhi", State: "Delhi"},
		UserID:      "u1",
		UserName:    "Asha",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var issue models.Issue
	if err := json.Unmarshal(rec.Body.Bytes(), &issue); err != nil {
		t.Fatalf("decode issue: %v", err)
	}
	return issue
}

func TestHealthEndpoints(t *testing.T) {
	_, r := newTestHandler()

	for _, path := range []string{"/health", "/v1/health", "/v1/health/ready", "/v1/health/live"} {
		rec := doJSON(t, r, "GET", path, nil)
		if rec.Code != http.StatusOK {
			t.Errorf("%s: expected 200, got %d", path, rec.Code)
		}
	}

	rec := doJSON(t, r, "GET", "/v1/version", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	var body map[string]interface{}
	json.Unmarshal(rec.Body.Bytes(), &body)
	if body["version"] != "test" {
		t.Errorf("Expected version 'test', got %v", body["version"])
	}
}

func TestSubmitIssue(t *testing.T) {
	_, r := newTestHandler()

	issue := submitTestIssue(t, r)
	if issue.ID == "" {
		t.Error("Expected generated ID")
	}
	if issue.Insights == nil {
		t.Error("Expected insights attached")
	}
	if issue.Status != models.StatusSubmitted {
		t.Errorf("Expected submitted, got %s", issue.Status)
	}

	t.Run("Missing title rejected", func(t *testing.T) {
		rec := doJSON(t, r, "POST", "/v1/issues", map[string]string{"description": "d"})
		if rec.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", rec.Code)
		}
	})

	t.Run("Invalid body rejected", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/v1/issues", bytes.NewBufferString("{"))
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", rec.Code)
		}
	})
}

func TestListAndGetIssues(t *testing.T) {
	_, r := newTestHandler()
	issue := submitTestIssue(t, r)

	rec := doJSON(t, r, "GET", "/v1/issues?category=roads", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	var envelope struct {
		Data  []models.Issue `json:"data"`
		Count int            `json:"count"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if envelope.Count != 1 || len(envelope.Data) != 1 {
		t.Errorf("Expected 1 issue, got %+v", envelope)
	}
	if rec.Header().Get("Cache-Control") == "" {
		t.Error("Expected Cache-Control header")
	}

	rec = doJSON(t, r, "GET", "/v1/issues?category=water", nil)
	json.Unmarshal(rec.Body.Bytes(), &envelope)
	if envelope.Count != 0 {
		t.Errorf("Expected empty filter result, got %d", envelope.Count)
	}

	rec = doJSON(t, r, "GET", "/v1/issues/"+issue.ID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	rec = doJSON(t, r, "GET", "/v1/issues/missing", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", rec.Code)
	}

	rec = doJSON(t, r, "GET", "/v1/issues?limit=nope", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for bad limit, got %d", rec.Code)
	}
}

func TestVoteAndComment(t *testing.T) {
	_, r := newTestHandler()
	issue := submitTestIssue(t, r)

	rec := doJSON(t, r, "POST", "/v1/issues/"+issue.ID+"/vote", map[string]interface{}{"userId": "u2", "upvote": true})
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	// Second vote from the same user conflicts
	rec = doJSON(t, r, "POST", "/v1/issues/"+issue.ID+"/vote", map[string]interface{}{"userId": "u2", "upvote": true})
	if rec.Code != http.StatusConflict {
		t.Errorf("Expected 409, got %d", rec.Code)
	}

	rec = doJSON(t, r, "POST", "/v1/issues/"+issue.ID+"/comments", map[string]interface{}{
		"userId": "u2", "userName": "Ravi", "text": "Please fix soon",
	})
	if rec.Code != http.StatusCreated {
		t.Errorf("Expected 201, got %d", rec.Code)
	}

	rec = doJSON(t, r, "POST", "/v1/issues/"+issue.ID+"/view", nil)
	if rec.Code != http.StatusNoContent {
		t.Errorf("Expected 204, got %d", rec.Code)
	}
}

func TestBidFlow(t *testing.T) {
	_, r := newTestHandler()
	issue := submitTestIssue(t, r)

	rec := doJSON(t, r, "POST", "/v1/issues/"+issue.ID+"/bids", service.PlaceBidInput{
		CollaboratorID:   "c1",
		CollaboratorName: "BuildCo",
		Amount:           45000,
		Duration:         10,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var bid models.Bid
	json.Unmarshal(rec.Body.Bytes(), &bid)

	rec = doJSON(t, r, "GET", "/v1/issues/"+issue.ID+"/bids", nil)
	var envelope struct {
		Count int `json:"count"`
	}
	json.Unmarshal(rec.Body.Bytes(), &envelope)
	if envelope.Count != 1 {
		t.Errorf("Expected 1 bid, got %d", envelope.Count)
	}

	rec = doJSON(t, r, "GET", "/v1/issues/"+issue.ID+"/bid-range", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	var bidRange models.BidRange
	json.Unmarshal(rec.Body.Bytes(), &bidRange)
	if bidRange.Recommended <= 0 {
		t.Errorf("Expected positive recommendation, got %+v", bidRange)
	}

	rec = doJSON(t, r, "POST", fmt.Sprintf("/v1/issues/%s/bids/%s/accept", issue.ID, bid.ID), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var updated models.Issue
	json.Unmarshal(rec.Body.Bytes(), &updated)
	if updated.Status != models.StatusAssigned {
		t.Errorf("Expected assigned, got %s", updated.Status)
	}

	// Accepting again conflicts
	rec = doJSON(t, r, "POST", fmt.Sprintf("/v1/issues/%s/bids/%s/accept", issue.ID, bid.ID), nil)
	if rec.Code != http.StatusConflict {
		t.Errorf("Expected 409, got %d", rec.Code)
	}

	rec = doJSON(t, r, "GET", "/v1/bids?collaborator=c1", nil)
	json.Unmarshal(rec.Body.Bytes(), &envelope)
	if envelope.Count != 1 {
		t.Errorf("Expected 1 bid for collaborator, got %d", envelope.Count)
	}
}

func TestStatusTransitions(t *testing.T) {
	_, r := newTestHandler()
	issue := submitTestIssue(t, r)

	rec := doJSON(t, r, "POST", "/v1/issues/"+issue.ID+"/status", map[string]string{
		"status": "in-progress", "userId": "o1", "userName": "Officer",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	// Jumping straight to closed is allowed; jumping backwards is not
	rec = doJSON(t, r, "POST", "/v1/issues/"+issue.ID+"/status", map[string]string{"status": "submitted"})
	if rec.Code != http.StatusConflict {
		t.Errorf("Expected 409 for backwards transition, got %d", rec.Code)
	}
}

func TestPreviewInsights(t *testing.T) {
	_, r := newTestHandler()

	rec := doJSON(t, r, "POST", "/v1/insights/preview", map[string]interface{}{
		"title":       "Streetlight not working",
		"description": "The lamp near the park has been dark for a week",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var bundle models.Insights
	json.Unmarshal(rec.Body.Bytes(), &bundle)
	if bundle.PredictedCategory != models.CategoryStreetLights {
		t.Errorf("Expected street-lights, got %s", bundle.PredictedCategory)
	}

	rec = doJSON(t, r, "POST", "/v1/insights/preview", map[string]string{})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for empty draft, got %d", rec.Code)
	}
}

func TestNGOEndpoints(t *testing.T) {
	_, r := newTestHandler()
	issue := submitTestIssue(t, r)

	rec := doJSON(t, r, "POST", "/v1/ngos", service.RegisterNGOInput{Name: "Swachh Seva"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d", rec.Code)
	}
	var ngo models.NGO
	json.Unmarshal(rec.Body.Bytes(), &ngo)

	rec = doJSON(t, r, "GET", "/v1/ngos", nil)
	var envelope struct {
		Count int `json:"count"`
	}
	json.Unmarshal(rec.Body.Bytes(), &envelope)
	if envelope.Count != 1 {
		t.Errorf("Expected 1 NGO, got %d", envelope.Count)
	}

	rec = doJSON(t, r, "POST", "/v1/ngo-requests", map[string]string{
		"ngoId": ngo.ID, "issueId": issue.ID, "message": "We can help",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var req models.NGORequest
	json.Unmarshal(rec.Body.Bytes(), &req)

	rec = doJSON(t, r, "POST", "/v1/ngo-requests/"+req.ID+"/review", map[string]interface{}{
		"approve": true, "reviewer": "official-1",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, r, "POST", "/v1/donations", service.DonateInput{
		NGOID: ngo.ID, DonorID: "u1", Amount: 500,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, r, "GET", "/v1/donations?ngo="+ngo.ID, nil)
	json.Unmarshal(rec.Body.Bytes(), &envelope)
	if envelope.Count != 1 {
		t.Errorf("Expected 1 donation, got %d", envelope.Count)
	}
}

func TestAnalyticsEndpoints(t *testing.T) {
	_, r := newTestHandler()
	submitTestIssue(t, r)

	rec := doJSON(t, r, "GET", "/v1/analytics/summary", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	var summary analytics.Summary
	json.Unmarshal(rec.Body.Bytes(), &summary)
	if summary.TotalIssues != 1 {
		t.Errorf("Expected 1 issue in summary, got %d", summary.TotalIssues)
	}

	for _, path := range []string{"/v1/analytics/departments", "/v1/analytics/states", "/v1/analytics/hotspots"} {
		rec := doJSON(t, r, "GET", path, nil)
		if rec.Code != http.StatusOK {
			t.Errorf("%s: expected 200, got %d", path, rec.Code)
		}
	}

	rec = doJSON(t, r, "GET", "/v1/analytics/hotspots?min=bad", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for bad min, got %d", rec.Code)
	}
}

func TestErrorResponseShape(t *testing.T) {
	_, r := newTestHandler()

	req := httptest.NewRequest("GET", "/v1/issues/missing", nil)
	req.Header.Set("X-Request-ID", "req-42")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	var errResp ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &errResp); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	if errResp.Error != http.StatusText(http.StatusNotFound) {
		t.Errorf("Expected Not Found, got %s", errResp.Error)
	}
	if errResp.RequestID != "req-42" {
		t.Errorf("Expected request id echoed, got %s", errResp.RequestID)
	}
}

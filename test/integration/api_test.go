package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	chi "github.com/go-chi/chi/v5"
	"github.com/janmarg/civicreport/internal/analytics"
	"github.com/janmarg/civicreport/internal/api"
	"github.com/janmarg/civicreport/internal/geocoder"
	"github.com/janmarg/civicreport/internal/models"
	"github.com/janmarg/civicreport/internal/service"
	"github.com/janmarg/civicreport/internal/store"
)

func newRouter() *chi.Mux {
	st := store.NewInMemoryStore()
	svc := service.New(st, geocoder.New())
	handler := api.NewHandler(svc, analytics.New(st), st, nil, nil, "test", "test-time", "test-commit")

	r := chi.NewRouter()
	handler.RegisterRoutes(r)
	return r
}

func post(t *testing.T, r http.Handler, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	b, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	req := httptest.NewRequest("POST", path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHealthEndpoints(t *testing.T) {
	r := newRouter()

	tests := []struct {
		name           string
		endpoint       string
		expectedStatus int
	}{
		{"Health Check", "/health", http.StatusOK},
		{"Readiness Check", "/v1/health/ready", http.StatusOK},
		{"Liveness Check", "/v1/health/live", http.StatusOK},
		{"Version Info", "/v1/version", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", tt.endpoint, nil)
			w := httptest.NewRecorder()

			r.ServeHTTP(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d", tt.expectedStatus, w.Code)
			}
			if w.Header().Get("Content-Type") != "application/json" {
				t.Errorf("Expected Content-Type application/json, got %s", w.Header().Get("Content-Type"))
			}
		})
	}
}

// TestIssueLifecycle drives an issue from report to resolution over HTTP.
func TestIssueLifecycle(t *testing.T) {
	r := newRouter()

	rec := post(t, r, "/v1/issues", map[string]interface{}{
		"title":       "Overflowing garbage near the bus stand",
		"description": "Trash has not been collected for a week and is piling up",
		"location":    map[string]string{"city": "Pune", "state": "Maharashtra"},
		"userId":      "reporter-1",
		"userName":    "Meera",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("submit: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var issue models.Issue
	if err := json.Unmarshal(rec.Body.Bytes(), &issue); err != nil {
		t.Fatalf("decode issue: %v", err)
	}
	if issue.Category != models.CategorySanitation {
		t.Errorf("Expected sanitation classification, got %s", issue.Category)
	}
	if issue.Insights == nil || issue.Insights.UrgencyScore <= 0 {
		t.Errorf("Expected scored issue, got %+v", issue.Insights)
	}

	// A second reporter upvotes and comments
	if rec := post(t, r, "/v1/issues/"+issue.ID+"/vote", map[string]interface{}{"userId": "reporter-2", "upvote": true}); rec.Code != http.StatusOK {
		t.Fatalf("vote: expected 200, got %d", rec.Code)
	}
	if rec := post(t, r, "/v1/issues/"+issue.ID+"/comments", map[string]interface{}{"userId": "reporter-2", "userName": "Dev", "text": "Same here"}); rec.Code != http.StatusCreated {
		t.Fatalf("comment: expected 201, got %d", rec.Code)
	}

	// A collaborator bids and wins
	rec = post(t, r, "/v1/issues/"+issue.ID+"/bids", map[string]interface{}{
		"collaboratorId":   "contractor-1",
		"collaboratorName": "CleanCity Services",
		"amount":           15000,
		"duration":         3,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("bid: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var bid models.Bid
	json.Unmarshal(rec.Body.Bytes(), &bid)

	rec = post(t, r, fmt.Sprintf("/v1/issues/%s/bids/%s/accept", issue.ID, bid.ID), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("accept: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	// Work proceeds to resolution
	for _, status := range []string{"in-progress", "resolved"} {
		rec = post(t, r, "/v1/issues/"+issue.ID+"/status", map[string]string{"status": status, "userId": "official-1", "userName": "Officer"})
		if rec.Code != http.StatusOK {
			t.Fatalf("status %s: expected 200, got %d: %s", status, rec.Code, rec.Body.String())
		}
	}

	// The resolved issue shows up in analytics
	req := httptest.NewRequest("GET", "/v1/analytics/summary", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("summary: expected 200, got %d", w.Code)
	}
	var summary analytics.Summary
	json.Unmarshal(w.Body.Bytes(), &summary)
	if summary.TotalIssues != 1 || summary.ResolutionRate != 1 {
		t.Errorf("Expected fully resolved summary, got %+v", summary)
	}

	// The final issue state carries the full timeline
	req = httptest.NewRequest("GET", "/v1/issues/"+issue.ID, nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	var final models.Issue
	json.Unmarshal(w.Body.Bytes(), &final)
	if final.Status != models.StatusResolved {
		t.Errorf("Expected resolved, got %s", final.Status)
	}
	if final.Upvotes != 1 {
		t.Errorf("Expected 1 upvote, got %d", final.Upvotes)
	}
	if len(final.Timeline) < 4 {
		t.Errorf("Expected timeline events for each step, got %d", len(final.Timeline))
	}
}

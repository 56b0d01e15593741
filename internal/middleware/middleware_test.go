package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestSecurity(t *testing.T) {
	h := Security(okHandler())

	req := httptest.NewRequest("GET", "/v1/issues", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	headers := map[string]string{
		"X-Content-Type-Options": "nosniff",
		"X-Frame-Options":        "DENY",
		"Referrer-Policy":        "strict-origin-when-cross-origin",
	}
	for key, want := range headers {
		if got := rec.Header().Get(key); got != want {
			t.Errorf("Expected %s=%s, got %s", key, want, got)
		}
	}
}

func TestCORS(t *testing.T) {
	t.Run("Wildcard allows any origin", func(t *testing.T) {
		h := CORS([]string{"*"})(okHandler())

		req := httptest.NewRequest("GET", "/v1/issues", nil)
		req.Header.Set("Origin", "https://example.com")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://example.com" {
			t.Errorf("Expected origin echoed, got %q", got)
		}
	})

	t.Run("Unlisted origin not echoed", func(t *testing.T) {
		h := CORS([]string{"https://allowed.example"})(okHandler())

		req := httptest.NewRequest("GET", "/v1/issues", nil)
		req.Header.Set("Origin", "https://evil.example")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
			t.Errorf("Expected no allow-origin header, got %q", got)
		}
	})

	t.Run("Preflight short-circuits", func(t *testing.T) {
		called := false
		h := CORS([]string{"*"})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
		}))

		req := httptest.NewRequest("OPTIONS", "/v1/issues", nil)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("Expected 200 for preflight, got %d", rec.Code)
		}
		if called {
			t.Error("Expected preflight to stop before the handler")
		}
	})
}

func TestRateLimit(t *testing.T) {
	h := RateLimit(2)(okHandler())

	var last int
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest("GET", "/v1/issues", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		last = rec.Code
	}
	if last != http.StatusTooManyRequests {
		t.Errorf("Expected 429 after limit, got %d", last)
	}

	// Different client has its own bucket
	req := httptest.NewRequest("GET", "/v1/issues", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("Expected 200 for different client, got %d", rec.Code)
	}
}

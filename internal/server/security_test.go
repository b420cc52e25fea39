package server

import (
	"net/http"
	"net/http/httptest"
	"slices"
	"testing"
)

func TestDefaultSecurityConfig(t *testing.T) {
	t.Parallel()
	cfg := DefaultSecurityConfig()
	if !cfg.EnableCORS {
		t.Error("CORS should be enabled so browser dashboards can scrape /metrics")
	}
	if !slices.Contains(cfg.AllowedOrigins, "*") {
		t.Errorf("AllowedOrigins = %v, want a wildcard", cfg.AllowedOrigins)
	}
	for _, m := range []string{http.MethodGet, http.MethodOptions} {
		if !slices.Contains(cfg.AllowedMethods, m) {
			t.Errorf("AllowedMethods = %v, missing %s", cfg.AllowedMethods, m)
		}
	}
}

// serve runs one request through SecurityMiddleware and reports whether the
// wrapped handler was reached.
func serve(cfg SecurityConfig, method, origin string) (*httptest.ResponseRecorder, bool) {
	called := false
	h := SecurityMiddleware(cfg, func(w http.ResponseWriter, _ *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	})
	req := httptest.NewRequest(method, "/metrics", nil)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec, called
}

func TestSecurityMiddleware_Headers(t *testing.T) {
	t.Parallel()
	rec, _ := serve(DefaultSecurityConfig(), http.MethodGet, "")
	want := map[string]string{
		"X-Content-Type-Options":  "nosniff",
		"X-Frame-Options":         "DENY",
		"X-XSS-Protection":        "1; mode=block",
		"Referrer-Policy":         "strict-origin-when-cross-origin",
		"Content-Security-Policy": "default-src 'none'; frame-ancestors 'none'",
	}
	for header, value := range want {
		if got := rec.Header().Get(header); got != value {
			t.Errorf("%s = %q, want %q", header, got, value)
		}
	}
}

func TestSecurityMiddleware_CORS(t *testing.T) {
	t.Parallel()
	restricted := SecurityConfig{
		EnableCORS:     true,
		AllowedOrigins: []string{"https://grafana.example"},
		AllowedMethods: []string{http.MethodGet},
	}
	tests := []struct {
		name       string
		cfg        SecurityConfig
		origin     string
		wantOrigin string
	}{
		{"wildcard without origin", DefaultSecurityConfig(), "", "*"},
		{"wildcard with origin", DefaultSecurityConfig(), "https://any.example", "*"},
		{"listed origin echoed", restricted, "https://grafana.example", "https://grafana.example"},
		{"unlisted origin", restricted, "https://evil.example", ""},
		{"no origin header", restricted, "", ""},
		{"CORS disabled", SecurityConfig{AllowedOrigins: []string{"*"}}, "https://any.example", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec, called := serve(tt.cfg, http.MethodGet, tt.origin)
			if !called {
				t.Error("GET should reach the handler")
			}
			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != tt.wantOrigin {
				t.Errorf("Access-Control-Allow-Origin = %q, want %q", got, tt.wantOrigin)
			}
			hasMethods := rec.Header().Get("Access-Control-Allow-Methods") != ""
			if hasMethods != (tt.wantOrigin != "") {
				t.Errorf("Access-Control-Allow-Methods present = %v, want %v", hasMethods, tt.wantOrigin != "")
			}
		})
	}
}

func TestSecurityMiddleware_Methods(t *testing.T) {
	t.Parallel()
	tests := []struct {
		method     string
		wantCalled bool
		wantStatus int
	}{
		{http.MethodGet, true, http.StatusOK},
		{http.MethodHead, true, http.StatusOK},
		{http.MethodPost, true, http.StatusOK},
		{http.MethodOptions, false, http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			t.Parallel()
			rec, called := serve(DefaultSecurityConfig(), tt.method, "https://any.example")
			if called != tt.wantCalled {
				t.Errorf("handler called = %v, want %v", called, tt.wantCalled)
			}
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if rec.Header().Get("X-Content-Type-Options") != "nosniff" {
				t.Error("security headers must be set for every method")
			}
		})
	}
}

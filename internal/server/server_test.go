package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"atscore/internal/config"
	"atscore/internal/engine"
	"atscore/internal/errors"
	"atscore/internal/observability"
	"atscore/internal/taxonomy"
)

func newTestServer(t *testing.T, apiKeys []string) *Server {
	t.Helper()

	tax, err := taxonomy.Default()
	if err != nil {
		t.Fatalf("taxonomy.Default() error = %v", err)
	}
	eng := engine.New(tax, engine.WithLinguisticBackend(false))

	logger, err := errors.New("error")
	if err != nil {
		t.Fatalf("errors.New() error = %v", err)
	}

	cfg := &config.Config{}
	cfg.Engine.LinguisticExtraction = false

	return NewServer(cfg, ServerConfig{
		Host:           "localhost",
		Port:           "0",
		Version:        "test",
		APIKeys:        apiKeys,
		MaxRequestSize: 1 << 20,
	}, eng, logger)
}

func newTestObservability(t *testing.T) *observability.ObservabilityManager {
	t.Helper()

	om, err := observability.NewObservabilityManager(observability.ObservabilityConfig{Enabled: false}, nil)
	if err != nil {
		t.Fatalf("NewObservabilityManager() error = %v", err)
	}
	return om
}

func postJSON(t *testing.T, handler http.HandlerFunc, body any) *httptest.ResponseRecorder {
	t.Helper()

	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestScoreHandler(t *testing.T) {
	s := newTestServer(t, nil)
	handler := s.createScoreHandler(newTestObservability(t))

	resume := `Senior Engineer
Experience: 6 years of experience building services in python and go.
Education: BS Computer Science
Skills: python, docker, kubernetes
Contact: dev@example.com`

	rec := postJSON(t, handler, ScoreRequest{
		ResumeText:     resume,
		JobDescription: "We need a developer with python and docker experience.",
		JobTitle:       "Senior Engineer",
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d, body: %s", rec.Code, http.StatusOK, rec.Body.String())
	}

	var result map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	overall, ok := result["overall_score"].(float64)
	if !ok {
		t.Fatalf("overall_score missing or not a number: %v", result["overall_score"])
	}
	if overall < 0 || overall > 100 {
		t.Errorf("overall_score = %v, want within [0,100]", overall)
	}
	for _, key := range []string{"keyword_score", "semantic_score", "format_score", "experience_score", "confidence", "keyword_analysis", "suggestions"} {
		if _, ok := result[key]; !ok {
			t.Errorf("response missing %q field", key)
		}
	}
}

func TestScoreHandlerValidation(t *testing.T) {
	s := newTestServer(t, nil)
	handler := s.createScoreHandler(newTestObservability(t))

	tests := []struct {
		name string
		req  ScoreRequest
	}{
		{"missing resume", ScoreRequest{JobDescription: "python developer"}},
		{"missing job description", ScoreRequest{ResumeText: "python developer resume"}},
		{"blank resume", ScoreRequest{ResumeText: "   ", JobDescription: "python"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postJSON(t, handler, tt.req)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
			}
		})
	}
}

func TestScoreHandlerRejectsWrongContentType(t *testing.T) {
	s := newTestServer(t, nil)
	handler := s.createScoreHandler(newTestObservability(t))

	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "text/plain")
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestAnalyzeHandler(t *testing.T) {
	s := newTestServer(t, nil)
	handler := s.createAnalyzeHandler(newTestObservability(t))

	rec := postJSON(t, handler, AnalyzeRequest{
		ResumeText: "Experienced developer with 3 years of experience in programming and development.",
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d, body: %s", rec.Code, http.StatusOK, rec.Body.String())
	}

	var result map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if _, ok := result["overall_score"]; !ok {
		t.Error("response missing overall_score field")
	}

	rec = postJSON(t, handler, AnalyzeRequest{})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("empty resume: status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestAuthMiddleware(t *testing.T) {
	okHandler := func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}

	t.Run("no keys configured passes through", func(t *testing.T) {
		s := newTestServer(t, nil)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/score", nil)
		rec := httptest.NewRecorder()
		s.authMiddleware(okHandler)(rec, req)
		if rec.Code != http.StatusOK {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
		}
	})

	s := newTestServer(t, []string{"secret-key-123456"})

	tests := []struct {
		name   string
		header func(*http.Request)
		want   int
	}{
		{"missing key", func(r *http.Request) {}, http.StatusUnauthorized},
		{"invalid key", func(r *http.Request) { r.Header.Set("X-API-Key", "wrong") }, http.StatusUnauthorized},
		{"valid header key", func(r *http.Request) { r.Header.Set("X-API-Key", "secret-key-123456") }, http.StatusOK},
		{"valid bearer token", func(r *http.Request) { r.Header.Set("Authorization", "Bearer secret-key-123456") }, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/score", nil)
			tt.header(req)
			rec := httptest.NewRecorder()
			s.authMiddleware(okHandler)(rec, req)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestHealthHandler(t *testing.T) {
	s := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	s.healthHandler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var response map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if response["status"] != "healthy" {
		t.Errorf("status = %v, want healthy", response["status"])
	}
	eng, ok := response["engine"].(map[string]any)
	if !ok {
		t.Fatalf("engine section missing: %v", response)
	}
	if eng["available"] != true {
		t.Errorf("engine.available = %v, want true", eng["available"])
	}
}

func TestHealthHandlerRejectsPost(t *testing.T) {
	s := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/health", nil)
	rec := httptest.NewRecorder()
	s.healthHandler(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusMethodNotAllowed)
	}
}

func TestStatsHandler(t *testing.T) {
	s := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/stats", nil)
	rec := httptest.NewRecorder()
	s.statsHandler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var response map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if response["service"] != "atscore" {
		t.Errorf("service = %v, want atscore", response["service"])
	}
}

func TestMaskAPIKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"short", "****"},
		{"12345678", "****"},
		{"123456789abc", "12345678****"},
	}
	for _, tt := range tests {
		if got := maskAPIKey(tt.in); got != tt.want {
			t.Errorf("maskAPIKey(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestGetRateLimitKey(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/score", nil)
	req.Header.Set("X-API-Key", "abc")
	req.RemoteAddr = "10.0.0.1:1234"

	if got := getRateLimitKey(req, true, true); got != "api:abc" {
		t.Errorf("key = %q, want api:abc", got)
	}
	if got := getRateLimitKey(req, false, true); got != "ip:10.0.0.1" {
		t.Errorf("key = %q, want ip:10.0.0.1", got)
	}
	if got := getRateLimitKey(req, false, false); got != "" {
		t.Errorf("key = %q, want empty", got)
	}
}

func TestParseFirstIP(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"203.0.113.5, 10.0.0.1", "203.0.113.5"},
		{"not-an-ip, 10.0.0.1", "10.0.0.1"},
		{"not-an-ip", ""},
	}
	for _, tt := range tests {
		if got := parseFirstIP(tt.in); got != tt.want {
			t.Errorf("parseFirstIP(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRateLimiterAllow(t *testing.T) {
	logger, err := errors.New("error")
	if err != nil {
		t.Fatalf("errors.New() error = %v", err)
	}

	rl := NewRateLimiter(60, 2, logger)
	defer rl.Close()

	if !rl.Allow("client") {
		t.Error("first request should be allowed")
	}
	if !rl.Allow("client") {
		t.Error("second request within burst should be allowed")
	}
	if rl.Allow("client") {
		t.Error("third request should exceed burst capacity")
	}
	if !rl.Allow("other") {
		t.Error("different key should have its own limiter")
	}

	stats := rl.GetStats()
	if stats["active_limiters"].(int) != 2 {
		t.Errorf("active_limiters = %v, want 2", stats["active_limiters"])
	}
}

func TestNewTaxonomyWatcherRequiresFile(t *testing.T) {
	logger, err := errors.New("error")
	if err != nil {
		t.Fatalf("errors.New() error = %v", err)
	}

	if _, err := NewTaxonomyWatcher("", time.Second, func() error { return nil }, logger); err == nil {
		t.Error("expected error for empty taxonomy file path")
	}
}

func TestTaxonomyWatcherLifecycle(t *testing.T) {
	logger, err := errors.New("error")
	if err != nil {
		t.Fatalf("errors.New() error = %v", err)
	}

	dir := t.TempDir()
	file := filepath.Join(dir, "taxonomy.yaml")
	if err := os.WriteFile(file, []byte("technical: {}\n"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	tw, err := NewTaxonomyWatcher(file, 10*time.Millisecond, func() error { return nil }, logger)
	if err != nil {
		t.Fatalf("NewTaxonomyWatcher() error = %v", err)
	}

	if tw.IsRunning() {
		t.Error("watcher should not be running before Start")
	}
	if err := tw.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if !tw.IsRunning() {
		t.Error("watcher should be running after Start")
	}
	if err := tw.Start(); err == nil {
		t.Error("second Start should fail")
	}
	if err := tw.Stop(); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}
	if tw.IsRunning() {
		t.Error("watcher should not be running after Stop")
	}
}

func TestTaxonomyWatcherReloadMetrics(t *testing.T) {
	logger, err := errors.New("error")
	if err != nil {
		t.Fatalf("errors.New() error = %v", err)
	}

	calls := 0
	tw, err := NewTaxonomyWatcher("taxonomy.yaml", time.Second, func() error {
		calls++
		if calls == 1 {
			return os.ErrNotExist
		}
		return nil
	}, logger)
	if err != nil {
		t.Fatalf("NewTaxonomyWatcher() error = %v", err)
	}

	tw.runReload()
	tw.runReload()

	metrics := tw.GetMetrics()
	if metrics.ReloadCount != 2 {
		t.Errorf("ReloadCount = %d, want 2", metrics.ReloadCount)
	}
	if metrics.ReloadFailureCount != 1 {
		t.Errorf("ReloadFailureCount = %d, want 1", metrics.ReloadFailureCount)
	}
	if metrics.ReloadSuccessCount != 1 {
		t.Errorf("ReloadSuccessCount = %d, want 1", metrics.ReloadSuccessCount)
	}
	if metrics.LastReloadError != "" {
		t.Errorf("LastReloadError = %q, want empty after success", metrics.LastReloadError)
	}
}

func TestSwapEngine(t *testing.T) {
	s := newTestServer(t, nil)
	old := s.Engine()

	tax, err := taxonomy.Default()
	if err != nil {
		t.Fatalf("taxonomy.Default() error = %v", err)
	}
	replacement := engine.New(tax, engine.WithLinguisticBackend(false))

	s.SwapEngine(replacement)
	if s.Engine() == old {
		t.Error("engine should have been replaced")
	}
	if s.Engine() != replacement {
		t.Error("Engine() should return the swapped engine")
	}
}

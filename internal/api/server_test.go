package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	configapp "kestrel-v0/internal/config/application"
	heartbeatapp "kestrel-v0/internal/heartbeat/application"
	heartbeatdomain "kestrel-v0/internal/heartbeat/domain"
	"kestrel-v0/internal/infrastructure/logger"
)

func setupTestServer(t *testing.T) *Server {
	t.Helper()

	cfg := &configapp.RuntimeConfig{
		IntervalSeconds: 60,
		AllowedMisses:   3,
		APIKey:          "test-api-key",
		APIPort:         "8080",
	}

	detector, err := heartbeatdomain.NewDetector(cfg.IntervalSeconds, cfg.AllowedMisses)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	appLogger := logger.DefaultLogger()
	monitorService := heartbeatapp.NewService(appLogger, detector, nil)

	server, err := NewServer(appLogger, cfg, monitorService, nil)
	if err != nil {
		t.Fatalf("Failed to create server: %v", err)
	}

	return server
}

func TestNewServer_RequiresAPIKey(t *testing.T) {
	cfg := &configapp.RuntimeConfig{
		IntervalSeconds: 60,
		AllowedMisses:   3,
		APIPort:         "8080",
	}

	detector, err := heartbeatdomain.NewDetector(cfg.IntervalSeconds, cfg.AllowedMisses)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	appLogger := logger.DefaultLogger()
	monitorService := heartbeatapp.NewService(appLogger, detector, nil)

	_, err = NewServer(appLogger, cfg, monitorService, nil)
	if err == nil {
		t.Error("expected error when API key is missing")
	}
}

func TestServer_Routes(t *testing.T) {
	server := setupTestServer(t)
	handler := server.httpServer.Handler

	tests := []struct {
		name           string
		method         string
		path           string
		body           string
		apiKey         string
		expectedStatus int
	}{
		{
			name:           "config without key",
			method:         http.MethodGet,
			path:           "/api/v1/config",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "config with key",
			method:         http.MethodGet,
			path:           "/api/v1/config",
			apiKey:         "test-api-key",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "monitor with key",
			method:         http.MethodPost,
			path:           "/api/v1/monitor",
			body:           `[{"service": "email", "timestamp": "2025-08-04T10:00:00Z"}]`,
			apiKey:         "test-api-key",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "runs without audit store",
			method:         http.MethodGet,
			path:           "/api/v1/runs",
			apiKey:         "test-api-key",
			expectedStatus: http.StatusServiceUnavailable,
		},
		{
			name:           "alerts without audit store",
			method:         http.MethodGet,
			path:           "/api/v1/alerts",
			apiKey:         "test-api-key",
			expectedStatus: http.StatusServiceUnavailable,
		},
		{
			name:           "wrong key",
			method:         http.MethodPost,
			path:           "/api/v1/monitor",
			body:           `[]`,
			apiKey:         "wrong",
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req *http.Request
			if tt.body != "" {
				req = httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			} else {
				req = httptest.NewRequest(tt.method, tt.path, nil)
			}
			if tt.apiKey != "" {
				req.Header.Set("X-API-Key", tt.apiKey)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			if rec.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d: %s", tt.expectedStatus, rec.Code, rec.Body.String())
			}
		})
	}
}

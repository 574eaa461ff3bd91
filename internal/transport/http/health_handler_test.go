package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	"invsummary/internal/config"
	"invsummary/internal/services"
	"invsummary/internal/shared/testutil"
)

func newHealthRouter(t *testing.T, exportsDir string) http.Handler {
	t.Helper()
	logger, _ := testutil.NewTestLogger(t)
	store := services.NewSessionStore(config.SessionConfig{TTL: time.Hour}, nil, logger)
	store.Create(context.Background())

	handler := NewHealthHandler(services.NewHealthService("v1.0.0-test", "", exportsDir, store, logger), logger)
	r := chi.NewRouter()
	r.Mount("/api/health", handler.Routes())
	r.Get("/api/version", handler.Version)
	return r
}

func TestHealthHandler_Endpoints(t *testing.T) {
	router := newHealthRouter(t, t.TempDir())

	tests := []struct {
		path       string
		wantStatus int
		wantBody   string
	}{
		{path: "/api/health", wantStatus: http.StatusOK, wantBody: `"status":"ok"`},
		{path: "/api/health/live", wantStatus: http.StatusOK, wantBody: `"status":"alive"`},
		{path: "/api/health/ready", wantStatus: http.StatusOK, wantBody: `"1 active sessions"`},
		{path: "/api/version", wantStatus: http.StatusOK, wantBody: `"version":"v1.0.0-test"`},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
		})
	}
}

func TestHealthHandler_NotReady(t *testing.T) {
	router := newHealthRouter(t, filepath.Join(t.TempDir(), "missing"))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health/ready", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"not_ready"`)
}

package app

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/InQaaaaGit/yt_transcript.git/internal/config"
	"github.com/InQaaaaGit/yt_transcript.git/internal/middleware"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>index</html>"), 0o600))

	cfg := config.Default()
	cfg.StaticDir = dir
	cfg.EnableTitleLookup = false
	return cfg
}

func TestNewApp(t *testing.T) {
	app, err := NewApp(testConfig(t), zap.NewNop())
	require.NoError(t, err)
	assert.NotNil(t, app.router)
	assert.NotNil(t, app.logger)
	assert.NotNil(t, app.handler)
	assert.NotNil(t, app.Handler())
}

func TestNewAppWithTitleLookup(t *testing.T) {
	cfg := testConfig(t)
	cfg.EnableTitleLookup = true
	cfg.WorkerURL = "https://worker.example.com"

	_, err := NewApp(cfg, zap.NewNop())
	require.NoError(t, err)
}

func TestNewAppInvalidNetworkSettings(t *testing.T) {
	cfg := testConfig(t)
	cfg.WorkerURL = "worker-without-scheme"

	_, err := NewApp(cfg, zap.NewNop())
	assert.Error(t, err)

	cfg = testConfig(t)
	cfg.CookiesFile = filepath.Join(t.TempDir(), "missing.txt")
	_, err = NewApp(cfg, zap.NewNop())
	assert.Error(t, err)
}

func TestGetServer(t *testing.T) {
	cfg := testConfig(t)
	app, err := NewApp(cfg, zap.NewNop())
	require.NoError(t, err)

	server := app.GetServer()
	assert.Equal(t, cfg.ServerAddress, server.Addr)
	assert.NotNil(t, server.Handler)
	assert.Equal(t, writeTimeout, server.WriteTimeout)
}

func TestAppRoutes(t *testing.T) {
	app, err := NewApp(testConfig(t), zap.NewNop())
	require.NoError(t, err)

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		wantStatus int
	}{
		{"GET /", http.MethodGet, "/", "", http.StatusOK},
		{"GET /ping", http.MethodGet, "/ping", "", http.StatusOK},
		{"POST /api/transcripts malformed", http.MethodPost, "/api/transcripts", "{", http.StatusBadRequest},
		{"POST /api/transcripts empty", http.MethodPost, "/api/transcripts", `{"urls":[]}`, http.StatusBadRequest},
		{"GET /api/transcripts", http.MethodGet, "/api/transcripts", "", http.StatusMethodNotAllowed},
		{"Unknown route", http.MethodGet, "/unknown", "", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			rr := httptest.NewRecorder()
			app.router.ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.NotEmpty(t, rr.Header().Get(middleware.RequestIDHeader))
			assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}

func TestAppInvalidURLDoesNotTouchNetwork(t *testing.T) {
	app, err := NewApp(testConfig(t), zap.NewNop())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/transcripts", strings.NewReader(`{"urls":["https://example.com/video"]}`))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	app.router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"error_count":1`)
	assert.Contains(t, rr.Body.String(), "유효하지 않은 YouTube URL입니다.")
}

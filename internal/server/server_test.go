package server

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"product-catalog/internal/config"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testConfig(t *testing.T) *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Port: "0", Env: "development"},
		Store:  config.StoreConfig{Path: filepath.Join(t.TempDir(), "products.json")},
		RateLimit: config.RateLimitConfig{
			Enabled:  true,
			Requests: 2,
			Window:   time.Minute,
		},
	}
}

func TestServer_HealthAndRoutes(t *testing.T) {
	srv := NewServer(testConfig(t), zap.NewNop(), nil)

	w := httptest.NewRecorder()
	srv.Handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Request-Id"))

	body := []byte(`{"articles":[{"name":"Bola","brand":"Nike","price":"45.90","quantity":3}]}`)
	w = httptest.NewRecorder()
	srv.Handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/insert-articles-request", bytes.NewReader(body)))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = httptest.NewRecorder()
	srv.Handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/articles?name=Bola", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"productId":1`)

	require.NoError(t, srv.Close())
}

func TestServer_RateLimitsCatalogRoutes(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	srv := NewServer(testConfig(t), zap.NewNop(), redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	defer srv.Close()

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		srv.Handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/articles", nil))
		codes = append(codes, w.Code)
	}
	// the store file does not exist yet, so allowed requests fail with 500
	assert.Equal(t, []int{http.StatusInternalServerError, http.StatusInternalServerError, http.StatusTooManyRequests}, codes)

	// health checks are not limited
	w := httptest.NewRecorder()
	srv.Handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

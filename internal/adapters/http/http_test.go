package http

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/battulga/wordwall/internal/adapters/http/handlers"
	"github.com/battulga/wordwall/internal/adapters/storage/memory"
	"github.com/battulga/wordwall/internal/app"
	"github.com/battulga/wordwall/internal/platform/config"
	"github.com/battulga/wordwall/internal/platform/metrics"
	"github.com/battulga/wordwall/internal/ports"
)

func testServerConfig() *config.ServerConfig {
	return &config.ServerConfig{
		Port:            0,
		Host:            "127.0.0.1",
		ReadTimeout:     5 * time.Second,
		WriteTimeout:    5 * time.Second,
		IdleTimeout:     10 * time.Second,
		ShutdownTimeout: time.Second,
		MaxRequestSize:  1 << 20,
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newFullEngine assembles the engine the way main does: server, router,
// middleware, health routes, and word routes over the in-memory store.
func newFullEngine(t *testing.T) (*gin.Engine, *metrics.Metrics) {
	t.Helper()

	gin.SetMode(gin.TestMode)

	store := memory.New()
	registry := ports.NewHealthRegistry()
	require.NoError(t, registry.Register(store))

	service := app.NewWordService(app.WordServiceConfig{
		Repository: store,
		Logger:     discardLogger(),
	})

	m := metrics.New(prometheus.NewRegistry())
	server := New(testServerConfig(), discardLogger())

	SetupRouter(server.Engine(), RouterConfig{
		Logger:        discardLogger(),
		Metrics:       m,
		HealthHandler: handlers.NewHealthHandler(registry, handlers.NewBuildInfo("test", "none", "now")),
		WordHandler:   handlers.NewWordHandler(service),
		Timeout:       DefaultRequestTimeout,
	})

	return server.Engine(), m
}

func TestSetupRouter_EndToEnd(t *testing.T) {
	engine, m := newFullEngine(t)

	do := func(method, path, body string) *httptest.ResponseRecorder {
		var reader io.Reader
		if body != "" {
			reader = strings.NewReader(body)
		}

		req := httptest.NewRequest(method, path, reader)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		return w
	}

	// Add, list, remove through the full middleware chain.
	w := do(http.MethodPost, "/api/words", `["сайн","уу"]`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w = do(http.MethodGet, "/api/words", "")
	require.Equal(t, http.StatusOK, w.Code)

	var words []string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &words))
	assert.Equal(t, []string{"уу", "сайн"}, words)

	w = do(http.MethodDelete, "/api/words", `{"words":["сайн"]}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"deletedCount":1`)

	// Operational endpoints are mounted.
	w = do(http.MethodGet, "/-/live", "")
	require.Equal(t, http.StatusOK, w.Code)

	w = do(http.MethodGet, "/-/ready", "")
	require.Equal(t, http.StatusOK, w.Code)

	// API traffic gets counted, operational traffic does not.
	count := testutil.ToFloat64(m.HTTPRequests.WithLabelValues("GET", "/api/words", "200"))
	assert.InDelta(t, 1, count, 0.001)
}

func TestSetupRouter_PanicContained(t *testing.T) {
	engine, _ := newFullEngine(t)

	engine.GET("/explode", func(*gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/explode", nil))

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), `"success":false`)
}

func TestServer_MaxBodySize(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cfg := testServerConfig()
	cfg.MaxRequestSize = 16

	server := New(cfg, discardLogger())

	service := app.NewWordService(app.WordServiceConfig{
		Repository: memory.New(),
		Logger:     discardLogger(),
	})

	SetupRouter(server.Engine(), RouterConfig{
		Logger:      discardLogger(),
		WordHandler: handlers.NewWordHandler(service),
	})

	body := strings.NewReader(`["сайн","уу","нэг","хоёр","гурав"]`)
	req := httptest.NewRequest(http.MethodPost, "/api/words", body)

	w := httptest.NewRecorder()
	server.Engine().ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestServer_StartAndShutdown(t *testing.T) {
	server := New(testServerConfig(), discardLogger())

	errCh := server.Start()

	// Give the listener a moment, then stop it.
	time.Sleep(50 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	require.NoError(t, server.Shutdown(ctx))

	select {
	case err, ok := <-errCh:
		if ok {
			require.NoError(t, err)
		}
	case <-time.After(time.Second):
		t.Fatal("server did not stop")
	}
}

package internal

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"westwind-inventory/internal/config"
	"westwind-inventory/internal/testutil"
)

func TestMetricsMiddlewareRecordsRoutePattern(t *testing.T) {
	m := NewMetrics()

	r := chi.NewRouter()
	r.Use(m.Middleware())
	r.Get("/inventory/device/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	req := httptest.NewRequest("GET", "/inventory/device/42", nil)
	r.ServeHTTP(httptest.NewRecorder(), req)

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Contains(t, body, `inventory_http_requests_total{method="GET",route="/inventory/device/{id}",status="404"} 1`)
	assert.Contains(t, body, "inventory_http_request_duration_seconds_bucket")
	assert.NotContains(t, body, "/inventory/device/42", "ids must not become label values")
}

func TestMetricsEndpointGatedByConfig(t *testing.T) {
	off := NewServer(testutil.NewTestStore(t), &config.Config{})
	w := get(off, "/metrics")
	assert.Equal(t, http.StatusNotFound, w.Code)

	on := NewServer(testutil.NewTestStore(t), &config.Config{EnableMetrics: true})
	get(on, "/health")
	w = get(on, "/metrics")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "inventory_http_requests_total")
}

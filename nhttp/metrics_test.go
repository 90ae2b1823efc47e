package nhttp

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/muir/nroute"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsCountByStatus(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := NewMetrics(MetricsConfig{Registry: registry})
	router := nroute.Must(nroute.New[struct{}, interface{}](
		nroute.WithRoutes(
			nroute.GET("/ok", func() (interface{}, error) { return "ok", nil }),
		),
	))
	h := Handler(router, func(*http.Request) (struct{}, error) {
		return struct{}{}, nil
	}, WithMetrics(m))

	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ok", nil))
		require.Equal(t, http.StatusOK, rec.Code)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)

	assert.Equal(t, 3.0, testutil.ToFloat64(m.requestsTotal.WithLabelValues("GET", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requestsTotal.WithLabelValues("GET", "404")))
}

func TestMetricsNames(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := NewMetrics(MetricsConfig{Registry: registry})
	m.observe(http.MethodGet, 200, time.Millisecond)
	families, err := registry.Gather()
	require.NoError(t, err)
	var names []string
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "nroute_http_requests_total")
	assert.Contains(t, names, "nroute_http_request_duration_seconds")
}

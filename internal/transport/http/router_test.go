package httptransport

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"mrzgate/internal/platform/metrics"
	"mrzgate/pkg/platform/middleware/requestid"
	"mrzgate/pkg/requestcontext"
)

type echoModule struct{}

func (echoModule) Register(r chi.Router) {
	r.Get("/echo", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(requestcontext.RequestID(r.Context())))
	})
}

func TestNewRouter(t *testing.T) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(prometheus.NewCounter(prometheus.CounterOpts{Name: "mrzgate_test_total", Help: "test"}))

	m := metrics.New(reg)

	healthy := true
	router := NewRouter(RouterConfig{
		Gatherer: reg,
		Metrics:  m,
		Health: map[string]HealthCheck{
			"store": func(context.Context) error {
				if healthy {
					return nil
				}
				return errors.New("down")
			},
		},
		Modules: []Registrar{echoModule{}},
	})

	t.Run("modules get a request ID", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/echo", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.NotEmpty(t, rec.Body.String())
		assert.Equal(t, rec.Body.String(), rec.Header().Get(requestid.Header))
	})

	t.Run("caller request ID is reused", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/echo", nil)
		req.Header.Set(requestid.Header, "abc-123")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, "abc-123", rec.Body.String())
	})

	t.Run("requests are counted by route", func(t *testing.T) {
		before := promtest.ToFloat64(m.HTTPRequests.WithLabelValues("GET", "/echo", "200"))
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/echo", nil))
		assert.Equal(t, before+1, promtest.ToFloat64(m.HTTPRequests.WithLabelValues("GET", "/echo", "200")))
	})

	t.Run("metrics are exposed", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "mrzgate_test_total")
	})

	t.Run("health reports failing checks", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		assert.Equal(t, http.StatusOK, rec.Code)

		healthy = false
		rec = httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Contains(t, rec.Body.String(), "down")
	})
}

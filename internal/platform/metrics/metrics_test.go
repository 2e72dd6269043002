package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveRequest(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveRequest("POST", "/mrz/parse", 200, 5*time.Millisecond)
	m.ObserveRequest("POST", "/mrz/parse", 200, 7*time.Millisecond)
	m.ObserveRequest("GET", "", 404, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.HTTPRequests.WithLabelValues("POST", "/mrz/parse", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequests.WithLabelValues("GET", "unmatched", "404")))
}

func TestObserveRequestNilSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() { m.ObserveRequest("GET", "/healthz", 200, time.Millisecond) })
}

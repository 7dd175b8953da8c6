package metrics

import (
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Counters(t *testing.T) {
	m := NewWithRegisterer(prometheus.NewRegistry())

	m.IncrementDepartementsCreated()
	m.AddVillesCreated(3)
	m.IncrementSyncRuns("success")
	m.IncrementExports("pdf")
	m.IncrementExports("pdf")
	m.ObserveRequest(http.MethodGet, "/api/v0/villes/{id}", 404, 15*time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.DepartementsCreated))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.VillesCreated))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SyncRuns.WithLabelValues("success")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Exports.WithLabelValues("pdf")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequests.WithLabelValues("GET", "/api/v0/villes/{id}", "404")))
}

func TestMetrics_NilIsSafe(t *testing.T) {
	var m *Metrics
	m.IncrementDepartementsCreated()
	m.AddVillesCreated(1)
	m.IncrementSyncRuns("failure")
	m.IncrementExports("csv")
	m.ObserveRequest("GET", "/", 200, time.Millisecond)
}

package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

// createTestMetrics creates metrics with plain constructors so tests do not
// collide with the default registry.
func createTestMetrics() *Metrics {
	return &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "test_http_requests_total"},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{Name: "test_http_request_duration_seconds"},
			[]string{"method", "path"},
		),
		HTTPRequestsInFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{Name: "test_http_requests_in_flight"},
		),
		UploadsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "test_upload_files_total"},
			[]string{"mode", "status"},
		),
		UploadBytesTotal: prometheus.NewCounter(
			prometheus.CounterOpts{Name: "test_upload_bytes_total"},
		),
		TokensIssued: prometheus.NewCounter(
			prometheus.CounterOpts{Name: "test_upload_tokens_issued_total"},
		),
		StorageOpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{Name: "test_storage_operation_duration_seconds"},
			[]string{"operation"},
		),
		StorageErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "test_storage_errors_total"},
			[]string{"operation"},
		),
		CacheHitsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "test_cache_hits_total"},
			[]string{"cache"},
		),
		CacheMissesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "test_cache_misses_total"},
			[]string{"cache"},
		),
	}
}

func TestMetrics_UploadCounters(t *testing.T) {
	m := createTestMetrics()

	m.UploadsTotal.WithLabelValues("form", "success").Inc()
	m.UploadsTotal.WithLabelValues("form", "success").Inc()
	m.UploadsTotal.WithLabelValues("direct", "failed").Inc()
	m.UploadBytesTotal.Add(2048)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.UploadsTotal.WithLabelValues("form", "success")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.UploadsTotal.WithLabelValues("direct", "failed")))
	assert.Equal(t, float64(2048), testutil.ToFloat64(m.UploadBytesTotal))
}

func TestMetrics_ObserveStorageOp(t *testing.T) {
	m := createTestMetrics()

	m.ObserveStorageOp("put_object", time.Now().Add(-10*time.Millisecond), nil)
	m.ObserveStorageOp("put_object", time.Now(), errors.New("boom"))

	assert.Equal(t, float64(1), testutil.ToFloat64(m.StorageErrors.WithLabelValues("put_object")))
}

func TestMetrics_CacheCounters(t *testing.T) {
	m := createTestMetrics()

	m.CacheHitsTotal.WithLabelValues("identity").Inc()
	m.CacheMissesTotal.WithLabelValues("identity").Inc()
	m.CacheMissesTotal.WithLabelValues("identity").Inc()

	assert.Equal(t, float64(1), testutil.ToFloat64(m.CacheHitsTotal.WithLabelValues("identity")))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.CacheMissesTotal.WithLabelValues("identity")))
}

package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveDecoded("gkg", 2, 3, 1, 1, 4)
	m.ObserveDecoded("gkg", 0, 1, 0, 0, 0)
	m.ObserveDecoded("event", 1, 0, 0, 0, 0)
	m.IncrementRejected("event", "primary_key")
	m.IncrementDownload("cached")
	m.ObserveIngest(1500 * time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Decoded.WithLabelValues("gkg")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Decoded.WithLabelValues("event")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.OptionalFailures.WithLabelValues("gkg")))
	assert.Equal(t, 4.0, testutil.ToFloat64(m.GCAMLookups.WithLabelValues("hit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.GCAMLookups.WithLabelValues("miss")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.GCAMSkipped))
	assert.Equal(t, 4.0, testutil.ToFloat64(m.ItemsSkipped))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Rejected.WithLabelValues("event", "primary_key")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Downloads.WithLabelValues("cached")))

	n, err := testutil.GatherAndCount(reg, "gdelt_ingest_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestSeparateRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		New(prometheus.NewRegistry())
		New(prometheus.NewRegistry())
	})
	assert.Panics(t, func() {
		reg := prometheus.NewRegistry()
		New(reg)
		New(reg)
	}, "duplicate registration on one registry")
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveDecoded("event", 1, 1, 1, 1, 1)
		m.IncrementRejected("event", "missing")
		m.IncrementDownload("ok")
		m.ObserveGCAM(1, 1, 1)
		m.ObserveIngest(time.Second)
	})
}

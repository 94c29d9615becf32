// Package metrics holds the Prometheus instruments of the decode pipeline.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for decoding, enrichment and ingest. A nil
// *Metrics is valid and records nothing.
type Metrics struct {
	// Records assembled by kind
	Decoded *prometheus.CounterVec

	// Records rejected by kind and reason ("primary_key", "missing", "malformed", "schema")
	Rejected *prometheus.CounterVec

	// Optional field failures by kind
	OptionalFailures *prometheus.CounterVec

	// GCAM lookups by result ("hit", "miss")
	GCAMLookups *prometheus.CounterVec

	// Malformed GCAM segments
	GCAMSkipped prometheus.Counter

	// Malformed list items dropped from GKG columns
	ItemsSkipped prometheus.Counter

	// Archives downloaded by result ("ok", "cached", "error")
	Downloads *prometheus.CounterVec

	// Duration of a full ingest run
	IngestDuration prometheus.Histogram
}

// New registers every instrument with reg. Pass prometheus.NewRegistry()
// in tests so runs do not collide.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Decoded: f.NewCounterVec(prometheus.CounterOpts{
			Name: "gdelt_records_decoded_total",
			Help: "Total records assembled by kind",
		}, []string{"kind"}),

		Rejected: f.NewCounterVec(prometheus.CounterOpts{
			Name: "gdelt_records_rejected_total",
			Help: "Total records rejected by kind and reason",
		}, []string{"kind", "reason"}),

		OptionalFailures: f.NewCounterVec(prometheus.CounterOpts{
			Name: "gdelt_optional_field_failures_total",
			Help: "Total optional field decode failures by kind",
		}, []string{"kind"}),

		GCAMLookups: f.NewCounterVec(prometheus.CounterOpts{
			Name: "gdelt_gcam_lookups_total",
			Help: "Total GCAM codebook lookups by result",
		}, []string{"result"}),

		GCAMSkipped: f.NewCounter(prometheus.CounterOpts{
			Name: "gdelt_gcam_segments_skipped_total",
			Help: "Total malformed GCAM segments skipped",
		}),

		ItemsSkipped: f.NewCounter(prometheus.CounterOpts{
			Name: "gdelt_gkg_items_skipped_total",
			Help: "Total malformed GKG list items skipped",
		}),

		Downloads: f.NewCounterVec(prometheus.CounterOpts{
			Name: "gdelt_archive_downloads_total",
			Help: "Total archive downloads by result",
		}, []string{"result"}),

		IngestDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "gdelt_ingest_duration_seconds",
			Help:    "Duration of ingest runs",
			Buckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120, 300},
		}),
	}
}

// ObserveDecoded records one assembled record and its report counters.
func (m *Metrics) ObserveDecoded(kind string, optional, gcamHits, gcamMisses, gcamSkipped, itemsSkipped int) {
	if m == nil {
		return
	}
	m.Decoded.WithLabelValues(kind).Inc()
	if optional > 0 {
		m.OptionalFailures.WithLabelValues(kind).Add(float64(optional))
	}
	m.ObserveGCAM(gcamHits, gcamMisses, gcamSkipped)
	if itemsSkipped > 0 {
		m.ItemsSkipped.Add(float64(itemsSkipped))
	}
}

// ObserveGCAM records the lookup outcome of one enriched blob.
func (m *Metrics) ObserveGCAM(hits, misses, skipped int) {
	if m == nil {
		return
	}
	if hits > 0 {
		m.GCAMLookups.WithLabelValues("hit").Add(float64(hits))
	}
	if misses > 0 {
		m.GCAMLookups.WithLabelValues("miss").Add(float64(misses))
	}
	if skipped > 0 {
		m.GCAMSkipped.Add(float64(skipped))
	}
}

// IncrementRejected records a rejected record.
func (m *Metrics) IncrementRejected(kind, reason string) {
	if m != nil {
		m.Rejected.WithLabelValues(kind, reason).Inc()
	}
}

// IncrementDownload records an archive download outcome.
func (m *Metrics) IncrementDownload(result string) {
	if m != nil {
		m.Downloads.WithLabelValues(result).Inc()
	}
}

// ObserveIngest records the duration of an ingest run.
func (m *Metrics) ObserveIngest(d time.Duration) {
	if m != nil {
		m.IngestDuration.Observe(d.Seconds())
	}
}

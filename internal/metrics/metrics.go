package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"channel_ranker/internal/domain"
)

// Metrics holds the Prometheus collectors of the tracker.
type Metrics struct {
	CollectionsTotal   *prometheus.CounterVec
	CollectionDuration *prometheus.HistogramVec
	VideosRefreshed    prometheus.Counter
	FetchErrors        prometheus.Counter
	QuotaUsed          prometheus.Gauge
	RequestDuration    *prometheus.HistogramVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		CollectionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "channel_ranker_collections_total",
				Help: "Channel collection cycles, by mode and outcome.",
			},
			[]string{"mode", "outcome"},
		),
		CollectionDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "channel_ranker_collection_duration_seconds",
				Help:    "Duration of channel collection cycles.",
				Buckets: []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120, 300, 600},
			},
			[]string{"mode"},
		),
		VideosRefreshed: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "channel_ranker_videos_refreshed_total",
				Help: "Videos whose view counts were refreshed.",
			},
		),
		FetchErrors: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "channel_ranker_fetch_errors_total",
				Help: "Videos whose statistics could not be fetched.",
			},
		),
		QuotaUsed: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "channel_ranker_quota_used_units",
				Help: "Upstream quota units consumed by the last run.",
			},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "channel_ranker_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds, by route, method and status.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route", "method", "status"},
		),
	}

	reg.MustRegister(
		m.CollectionsTotal,
		m.CollectionDuration,
		m.VideosRefreshed,
		m.FetchErrors,
		m.QuotaUsed,
		m.RequestDuration,
	)
	return m
}

func (m *Metrics) ObserveCollection(mode domain.Mode, outcome domain.Outcome, d time.Duration) {
	m.CollectionsTotal.WithLabelValues(string(mode), string(outcome)).Inc()
	m.CollectionDuration.WithLabelValues(string(mode)).Observe(d.Seconds())
}

func (m *Metrics) AddVideosRefreshed(n int) {
	m.VideosRefreshed.Add(float64(n))
}

func (m *Metrics) AddFetchErrors(n int) {
	m.FetchErrors.Add(float64(n))
}

func (m *Metrics) SetQuotaUsed(units int64) {
	m.QuotaUsed.Set(float64(units))
}

func (m *Metrics) ObserveRequest(route, method string, status int, d time.Duration) {
	m.RequestDuration.WithLabelValues(route, method, statusLabel(status)).Observe(d.Seconds())
}

func statusLabel(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}

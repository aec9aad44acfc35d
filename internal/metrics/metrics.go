package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Unlock Metrics
var (
	UnlocksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameUnlocksTotal,
			Help: HelpTextUnlocksTotal,
		},
		[]string{LabelTier, LabelSpecial},
	)

	UnlockVerificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameUnlockVerifyTotal,
			Help: HelpTextUnlockVerifyTotal,
		},
		[]string{LabelOutcome},
	)

	OddsCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameOddsCacheLookups,
			Help: HelpTextOddsCacheLookups,
		},
		[]string{LabelResult},
	)

	AttributeRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameAttributeRejection,
			Help: HelpTextAttributeRejection,
		},
		[]string{LabelKind},
	)
)

// Inventory Metrics
var (
	InventoryOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameInventoryOperations,
			Help: HelpTextInventoryOperations,
		},
		[]string{LabelOperation, LabelOutcome},
	)

	InventoryVersionConflicts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameInventoryConflicts,
			Help: HelpTextInventoryConflicts,
		},
	)

	InventoryCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameInventoryCache,
			Help: HelpTextInventoryCache,
		},
		[]string{LabelResult},
	)
)

var (
	SecurityEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameSecurityEvents,
			Help: HelpTextSecurityEvents,
		},
		[]string{LabelKind},
	)
)

// RecordUnlock counts one container unlock
func RecordUnlock(tier string, special bool) {
	UnlocksTotal.WithLabelValues(tier, strconv.FormatBool(special)).Inc()
}

// RecordCacheLookup counts a cache hit or miss on the given vector
func RecordCacheLookup(vec *prometheus.CounterVec, hit bool) {
	if hit {
		vec.WithLabelValues(ResultHit).Inc()
		return
	}
	vec.WithLabelValues(ResultMiss).Inc()
}

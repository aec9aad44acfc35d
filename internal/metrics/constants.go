package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Unlock metric names
const (
	MetricNameUnlocksTotal       = "container_unlocks_total"
	MetricNameUnlockVerifyTotal  = "container_unlock_verifications_total"
	MetricNameOddsCacheLookups   = "container_odds_cache_lookups_total"
	MetricNameAttributeRejection = "attribute_rejections_total"
)

// Inventory metric names
const (
	MetricNameInventoryOperations = "inventory_operations_total"
	MetricNameInventoryConflicts  = "inventory_version_conflicts_total"
	MetricNameInventoryCache      = "inventory_cache_lookups_total"
)

// Security metric names
const (
	MetricNameSecurityEvents = "http_security_events_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Unlock metric help text
const (
	HelpTextUnlocksTotal       = "Total number of containers unlocked, by drawn tier"
	HelpTextUnlockVerifyTotal  = "Total number of unlock results verified, by outcome"
	HelpTextOddsCacheLookups   = "Container odds table cache lookups, by result"
	HelpTextAttributeRejection = "Item attributes rejected by validation, by error kind"
)

// Inventory metric help text
const (
	HelpTextInventoryOperations = "Inventory operations, by operation and outcome"
	HelpTextInventoryConflicts  = "Optimistic inventory saves that hit a version conflict"
	HelpTextInventoryCache      = "Inventory snapshot cache lookups, by result"
)

const (
	HelpTextSecurityEvents = "Rejected or suspicious HTTP requests, by kind"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod    = "method"
	LabelPath      = "path"
	LabelStatus    = "status"
	LabelTier      = "tier"
	LabelSpecial   = "special"
	LabelOutcome   = "outcome"
	LabelKind      = "kind"
	LabelOperation = "operation"
	LabelResult    = "result"
)

// Label values
const (
	OutcomeOK     = "ok"
	OutcomeNoop   = "noop"
	ResultHit     = "hit"
	ResultMiss    = "miss"
	PathUnmatched = "unmatched"

	SecurityEventAuthFailed  = "auth_failed"
	SecurityEventRateLimited = "rate_limited"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds, from 1ms to 10s
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

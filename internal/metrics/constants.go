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

// Event metric names
const (
	MetricNameEventsPublished    = "events_published_total"
	MetricNameEventHandlerErrors = "event_handler_errors_total"
)

// Draft metric names
const (
	MetricNameThresholdCrossings = "level_threshold_crossings_total"
	MetricNameDraftsStarted      = "drafts_started_total"
	MetricNameDraftOffers        = "draft_offers"
	MetricNameDraftChoices       = "draft_choices_total"
	MetricNameDraftsAbandoned    = "drafts_abandoned_total"
	MetricNameDraftRejections    = "draft_rejections_total"
	MetricNameWeightFallbacks    = "draft_weight_walk_fallbacks_total"
	MetricNameCurrencySpent      = "currency_spent_total"
	MetricNameWagesPaid          = "wages_paid_total"
	MetricNameActivePlayers      = "active_players"
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

// Event metric help text
const (
	HelpTextEventsPublished    = "Total number of events published"
	HelpTextEventHandlerErrors = "Total number of event handler errors"
)

// Draft metric help text
const (
	HelpTextThresholdCrossings = "Total number of experience thresholds crossed"
	HelpTextDraftsStarted      = "Total number of drafts that reached awaiting choice"
	HelpTextDraftOffers        = "Number of offers presented per draft"
	HelpTextDraftChoices       = "Total number of confirmed choices by option"
	HelpTextDraftsAbandoned    = "Total number of drafts abandoned without a purchase"
	HelpTextDraftRejections    = "Total number of refused draft requests by reason"
	HelpTextWeightFallbacks    = "Total number of weighted walks resolved by the last-eligible fallback"
	HelpTextCurrencySpent      = "Total currency spent on upgrades"
	HelpTextWagesPaid          = "Total currency deposited as level-up wages"
	HelpTextActivePlayers      = "Current number of registered players held in memory"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod = "method"
	LabelPath   = "path"
	LabelStatus = "status"
	LabelType   = "type"
	LabelOption = "option"
	LabelReason = "reason"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds, from 1ms to 10s
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// DraftOfferBuckets covers offer counts from an empty draft to the largest slot count
var DraftOfferBuckets = []float64{0, 1, 2, 3, 4, 5, 6, 8, 10}

// UnmatchedRoute labels requests that did not hit a registered route
const UnmatchedRoute = "unmatched"

// ============================================================================
// Log Messages
// ============================================================================

// Debug log messages
const (
	LogMsgEventPayloadDecodeFailed = "Event payload could not be decoded"
	LogMsgMetricsRecorded          = "Metrics recorded for event"
)

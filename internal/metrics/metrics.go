package metrics

import (
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

// Event Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsPublished,
			Help: HelpTextEventsPublished,
		},
		[]string{LabelType},
	)

	EventHandlerErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventHandlerErrors,
			Help: HelpTextEventHandlerErrors,
		},
		[]string{LabelType},
	)
)

// Draft Metrics
var (
	ThresholdCrossings = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameThresholdCrossings,
			Help: HelpTextThresholdCrossings,
		},
	)

	DraftsStarted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameDraftsStarted,
			Help: HelpTextDraftsStarted,
		},
	)

	DraftOffers = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    MetricNameDraftOffers,
			Help:    HelpTextDraftOffers,
			Buckets: DraftOfferBuckets,
		},
	)

	DraftChoices = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameDraftChoices,
			Help: HelpTextDraftChoices,
		},
		[]string{LabelOption},
	)

	DraftsAbandoned = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameDraftsAbandoned,
			Help: HelpTextDraftsAbandoned,
		},
	)

	DraftRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameDraftRejections,
			Help: HelpTextDraftRejections,
		},
		[]string{LabelReason},
	)

	WeightFallbacks = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameWeightFallbacks,
			Help: HelpTextWeightFallbacks,
		},
	)

	CurrencySpent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameCurrencySpent,
			Help: HelpTextCurrencySpent,
		},
	)

	WagesPaid = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameWagesPaid,
			Help: HelpTextWagesPaid,
		},
	)

	ActivePlayers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameActivePlayers,
			Help: HelpTextActivePlayers,
		},
	)
)

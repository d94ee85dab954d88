package metrics

import (
	"context"

	"github.com/osse101/UpgradeDraft_Go/internal/event"
	"github.com/osse101/UpgradeDraft_Go/internal/logger"
)

// EventMetricsCollector subscribes to draft events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all draft lifecycle events
func (e *EventMetricsCollector) Register(bus event.Bus) error {
	for _, eventType := range event.AllTypes {
		bus.Subscribe(eventType, e.HandleEvent)
	}
	return nil
}

// HandleEvent processes events and updates metrics
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	var err error
	switch evt.Type {
	case event.ThresholdCrossed:
		var p event.ThresholdCrossedPayloadV1
		if p, err = event.DecodePayload[event.ThresholdCrossedPayloadV1](evt.Payload); err == nil {
			ThresholdCrossings.Add(float64(p.Crossings))
		}

	case event.DraftStarted:
		var p event.DraftStartedPayloadV1
		if p, err = event.DecodePayload[event.DraftStartedPayloadV1](evt.Payload); err == nil {
			DraftsStarted.Inc()
			DraftOffers.Observe(float64(len(p.Offers)))
			if p.Wage > 0 {
				WagesPaid.Add(float64(p.Wage))
			}
		}

	case event.DraftResolved:
		var p event.DraftResolvedPayloadV1
		if p, err = event.DecodePayload[event.DraftResolvedPayloadV1](evt.Payload); err == nil {
			DraftChoices.WithLabelValues(p.OptionKey).Inc()
			CurrencySpent.Add(float64(p.Cost))
		}

	case event.DraftAbandoned:
		DraftsAbandoned.Inc()

	case event.DraftRejected:
		var p event.DraftRejectedPayloadV1
		if p, err = event.DecodePayload[event.DraftRejectedPayloadV1](evt.Payload); err == nil {
			DraftRejections.WithLabelValues(p.Reason).Inc()
		}
	}

	if err != nil {
		// Metrics never fail the publisher
		log.Debug(LogMsgEventPayloadDecodeFailed, "type", evt.Type, "error", err)
		return nil
	}

	log.Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}

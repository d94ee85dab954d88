package eventlog

import (
	"context"
	"fmt"
	"time"

	"github.com/osse101/UpgradeDraft_Go/internal/event"
	"github.com/osse101/UpgradeDraft_Go/internal/logger"
)

// Service handles event logging business logic
type Service interface {
	// Subscribe registers the event logger to listen to all draft events
	Subscribe(bus event.Bus) error

	// GetEvents returns logged events matching the filter
	GetEvents(ctx context.Context, filter EventFilter) ([]Event, error)

	// CleanupOldEvents archives then removes events older than retention
	CleanupOldEvents(ctx context.Context, retention time.Duration) (int64, error)
}

// Archiver stores events before they are deleted
type Archiver interface {
	Archive(ctx context.Context, events []Event) error
}

// Option configures the service
type Option func(*service)

// WithArchiver archives events before cleanup deletes them
func WithArchiver(a Archiver) Option {
	return func(s *service) { s.archiver = a }
}

// WithCleanupBatch sets how many events are archived and deleted per round
func WithCleanupBatch(n int) Option {
	return func(s *service) {
		if n > 0 {
			s.batchSize = n
		}
	}
}

// WithClock replaces time.Now
func WithClock(now func() time.Time) Option {
	return func(s *service) { s.now = now }
}

type service struct {
	repo      Repository
	archiver  Archiver
	batchSize int
	now       func() time.Time
}

// NewService creates a new event logging service
func NewService(repo Repository, opts ...Option) Service {
	s := &service{
		repo:      repo,
		batchSize: DefaultCleanupBatch,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Subscribe registers event handlers for all event types
func (s *service) Subscribe(bus event.Bus) error {
	for _, eventType := range event.AllTypes {
		bus.Subscribe(eventType, s.handleEvent)
	}
	return nil
}

// handleEvent stores one event. Typed payloads are flattened to maps.
func (s *service) handleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	payload, err := event.DecodePayload[map[string]interface{}](evt.Payload)
	if err != nil {
		log.Debug(LogMsgEventPayloadUnreadable, LogFieldType, evt.Type, LogFieldError, err)
		return nil
	}

	var metadata map[string]interface{}
	if evt.Metadata != nil {
		metadata, _ = event.DecodePayload[map[string]interface{}](evt.Metadata)
	}

	var playerID *string
	if id := evt.PlayerID(); id != "" {
		playerID = &id
	} else if id, ok := payload[PayloadKeyPlayerID].(string); ok && id != "" {
		playerID = &id
	}

	if err := s.repo.LogEvent(ctx, string(evt.Type), playerID, payload, metadata); err != nil {
		log.Error(LogMsgFailedToLogEvent, LogFieldError, err, LogFieldType, evt.Type)
		return err
	}

	log.Debug(LogMsgEventLogged, LogFieldType, evt.Type, LogFieldPlayerID, playerID)
	return nil
}

// GetEvents returns logged events, newest first. The limit is clamped.
func (s *service) GetEvents(ctx context.Context, filter EventFilter) ([]Event, error) {
	switch {
	case filter.Limit <= 0:
		filter.Limit = DefaultQueryLimit
	case filter.Limit > MaxQueryLimit:
		filter.Limit = MaxQueryLimit
	}
	return s.repo.GetEvents(ctx, filter)
}

// CleanupOldEvents works in batches, oldest first. A batch is deleted only
// after it has been archived.
func (s *service) CleanupOldEvents(ctx context.Context, retention time.Duration) (int64, error) {
	cutoff := s.now().Add(-retention)

	var total int64
	for {
		batch, err := s.repo.EventsBefore(ctx, cutoff, s.batchSize)
		if err != nil {
			return total, fmt.Errorf("failed to read events before %s: %w", cutoff.Format(time.RFC3339), err)
		}
		if len(batch) == 0 {
			return total, nil
		}

		if s.archiver != nil {
			if err := s.archiver.Archive(ctx, batch); err != nil {
				return total, fmt.Errorf("failed to archive events: %w", err)
			}
			logger.FromContext(ctx).Debug(LogMsgEventsArchived, LogFieldArchived, len(batch))
		}

		deleted, err := s.repo.CleanupOldEvents(ctx, cutoff, batch[len(batch)-1].ID)
		if err != nil {
			return total, fmt.Errorf("failed to delete archived events: %w", err)
		}
		total += deleted

		if deleted == 0 || len(batch) < s.batchSize {
			return total, nil
		}
	}
}

package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/UpgradeDraft_Go/internal/eventlog"
)

type eventLogRepository struct {
	db *pgxpool.Pool
}

// NewEventLogRepository creates a new PostgreSQL event log repository
func NewEventLogRepository(db *pgxpool.Pool) eventlog.Repository {
	return &eventLogRepository{db: db}
}

// LogEvent stores an event in the database
func (r *eventLogRepository) LogEvent(ctx context.Context, eventType string, playerID *string, payload, metadata map[string]interface{}) error {
	query := `
		INSERT INTO events (event_type, player_id, payload, metadata)
		VALUES ($1, $2, $3, $4)
	`

	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToMarshalPayload, err)
	}

	var metadataJSON []byte
	if metadata != nil {
		metadataJSON, err = json.Marshal(metadata)
		if err != nil {
			return fmt.Errorf("%s: %w", ErrMsgFailedToMarshalMetadata, err)
		}
	}

	_, err = r.db.Exec(ctx, query, eventType, playerID, payloadJSON, metadataJSON)
	return err
}

// GetEvents retrieves events based on filter criteria
func (r *eventLogRepository) GetEvents(ctx context.Context, filter eventlog.EventFilter) ([]eventlog.Event, error) {
	var qb strings.Builder
	qb.WriteString("SELECT " + selectEventColumns + " FROM events WHERE 1=1")

	args := []interface{}{}
	add := func(clause string, v interface{}) {
		args = append(args, v)
		fmt.Fprintf(&qb, clause, len(args))
	}

	if filter.PlayerID != nil {
		add(" AND player_id = $%d", *filter.PlayerID)
	}
	if filter.EventType != nil {
		add(" AND event_type = $%d", *filter.EventType)
	}
	if filter.Since != nil {
		add(" AND created_at >= $%d", *filter.Since)
	}
	if filter.Until != nil {
		add(" AND created_at <= $%d", *filter.Until)
	}

	qb.WriteString(" ORDER BY created_at DESC, id DESC")

	if filter.Limit > 0 {
		add(" LIMIT $%d", filter.Limit)
	}

	rows, err := r.db.Query(ctx, qb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEvents(rows)
}

// GetEventsByPlayer retrieves events for a specific player
func (r *eventLogRepository) GetEventsByPlayer(ctx context.Context, playerID string, limit int) ([]eventlog.Event, error) {
	return r.GetEvents(ctx, eventlog.EventFilter{PlayerID: &playerID, Limit: limit})
}

// GetEventsByType retrieves events of a specific type
func (r *eventLogRepository) GetEventsByType(ctx context.Context, eventType string, limit int) ([]eventlog.Event, error) {
	return r.GetEvents(ctx, eventlog.EventFilter{EventType: &eventType, Limit: limit})
}

// EventsBefore returns the oldest events created before cutoff
func (r *eventLogRepository) EventsBefore(ctx context.Context, cutoff time.Time, limit int) ([]eventlog.Event, error) {
	query := `SELECT ` + selectEventColumns + `
		FROM events
		WHERE created_at < $1
		ORDER BY id ASC
		LIMIT $2
	`

	rows, err := r.db.Query(ctx, query, cutoff, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEvents(rows)
}

// CleanupOldEvents removes events older than cutoff up to and including maxID
func (r *eventLogRepository) CleanupOldEvents(ctx context.Context, cutoff time.Time, maxID int64) (int64, error) {
	query := `
		DELETE FROM events
		WHERE created_at < $1 AND id <= $2
	`

	result, err := r.db.Exec(ctx, query, cutoff, maxID)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected(), nil
}

func scanEvents(rows pgx.Rows) ([]eventlog.Event, error) {
	var events []eventlog.Event

	for rows.Next() {
		var evt eventlog.Event
		var payloadJSON, metadataJSON []byte

		err := rows.Scan(
			&evt.ID,
			&evt.EventType,
			&evt.PlayerID,
			&payloadJSON,
			&metadataJSON,
			&evt.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToScanEvent, err)
		}

		if err := json.Unmarshal(payloadJSON, &evt.Payload); err != nil {
			return nil, err
		}

		if len(metadataJSON) > 0 {
			if err := json.Unmarshal(metadataJSON, &evt.Metadata); err != nil {
				return nil, err
			}
		}

		events = append(events, evt)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}

// Package sqlite provides a SQLite-backed event log for single-node deployments.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/osse101/UpgradeDraft_Go/internal/eventlog"
)

const selectEventColumns = "id, event_type, player_id, payload, metadata, created_at"

type eventLogRepository struct {
	db  *sql.DB
	now func() time.Time
}

// NewEventLogRepository creates a SQLite event log repository.
// The schema must already be migrated with database.MigrateSQLite.
func NewEventLogRepository(db *sql.DB) eventlog.Repository {
	return &eventLogRepository{db: db, now: time.Now}
}

func toNanos(t time.Time) int64 { return t.UTC().UnixNano() }

func fromNanos(v int64) time.Time { return time.Unix(0, v).UTC() }

func (r *eventLogRepository) LogEvent(ctx context.Context, eventType string, playerID *string, payload, metadata map[string]interface{}) error {
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	var metadataJSON sql.NullString
	if metadata != nil {
		b, err := json.Marshal(metadata)
		if err != nil {
			return fmt.Errorf("marshal metadata: %w", err)
		}
		metadataJSON = sql.NullString{String: string(b), Valid: true}
	}

	var pid sql.NullString
	if playerID != nil {
		pid = sql.NullString{String: *playerID, Valid: true}
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO events (event_type, player_id, payload, metadata, created_at) VALUES (?, ?, ?, ?, ?)`,
		eventType, pid, string(payloadJSON), metadataJSON, toNanos(r.now()),
	)
	return err
}

func (r *eventLogRepository) GetEvents(ctx context.Context, filter eventlog.EventFilter) ([]eventlog.Event, error) {
	var qb strings.Builder
	qb.WriteString("SELECT " + selectEventColumns + " FROM events WHERE 1=1")

	var args []interface{}
	if filter.PlayerID != nil {
		qb.WriteString(" AND player_id = ?")
		args = append(args, *filter.PlayerID)
	}
	if filter.EventType != nil {
		qb.WriteString(" AND event_type = ?")
		args = append(args, *filter.EventType)
	}
	if filter.Since != nil {
		qb.WriteString(" AND created_at >= ?")
		args = append(args, toNanos(*filter.Since))
	}
	if filter.Until != nil {
		qb.WriteString(" AND created_at <= ?")
		args = append(args, toNanos(*filter.Until))
	}
	qb.WriteString(" ORDER BY created_at DESC, id DESC")
	if filter.Limit > 0 {
		qb.WriteString(" LIMIT ?")
		args = append(args, filter.Limit)
	}

	return r.query(ctx, qb.String(), args...)
}

func (r *eventLogRepository) GetEventsByPlayer(ctx context.Context, playerID string, limit int) ([]eventlog.Event, error) {
	return r.GetEvents(ctx, eventlog.EventFilter{PlayerID: &playerID, Limit: limit})
}

func (r *eventLogRepository) GetEventsByType(ctx context.Context, eventType string, limit int) ([]eventlog.Event, error) {
	return r.GetEvents(ctx, eventlog.EventFilter{EventType: &eventType, Limit: limit})
}

func (r *eventLogRepository) EventsBefore(ctx context.Context, cutoff time.Time, limit int) ([]eventlog.Event, error) {
	return r.query(ctx,
		"SELECT "+selectEventColumns+" FROM events WHERE created_at < ? ORDER BY id ASC LIMIT ?",
		toNanos(cutoff), limit,
	)
}

func (r *eventLogRepository) CleanupOldEvents(ctx context.Context, cutoff time.Time, maxID int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE created_at < ? AND id <= ?`, toNanos(cutoff), maxID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *eventLogRepository) query(ctx context.Context, q string, args ...interface{}) ([]eventlog.Event, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []eventlog.Event
	for rows.Next() {
		var (
			evt       eventlog.Event
			playerID  sql.NullString
			payload   string
			metadata  sql.NullString
			createdAt int64
		)
		if err := rows.Scan(&evt.ID, &evt.EventType, &playerID, &payload, &metadata, &createdAt); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		if playerID.Valid {
			id := playerID.String
			evt.PlayerID = &id
		}
		if err := json.Unmarshal([]byte(payload), &evt.Payload); err != nil {
			return nil, err
		}
		if metadata.Valid && metadata.String != "" && metadata.String != "null" {
			if err := json.Unmarshal([]byte(metadata.String), &evt.Metadata); err != nil {
				return nil, err
			}
		}
		evt.CreatedAt = fromNanos(createdAt)
		events = append(events, evt)
	}
	return events, rows.Err()
}

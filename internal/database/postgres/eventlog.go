package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/SpiritForge_Go/internal/eventlog"
)

// EventLogRepository persists domain events for auditing
type EventLogRepository struct {
	db *pgxpool.Pool
}

// NewEventLogRepository creates a new EventLogRepository
func NewEventLogRepository(db *pgxpool.Pool) *EventLogRepository {
	return &EventLogRepository{db: db}
}

// LogEvent stores one event
func (r *EventLogRepository) LogEvent(ctx context.Context, eventType string, actorID *string, payload, metadata map[string]interface{}) error {
	if payload == nil {
		payload = map[string]interface{}{}
	}
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToMarshalEvent, err)
	}
	var metadataJSON []byte
	if metadata != nil {
		if metadataJSON, err = json.Marshal(metadata); err != nil {
			return fmt.Errorf("%s: %w", ErrMsgFailedToMarshalEvent, err)
		}
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO events (event_type, actor_id, payload, metadata)
		VALUES ($1, $2, $3, $4)`,
		eventType, actorID, payloadJSON, metadataJSON)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToLogEvent, err)
	}
	return nil
}

// GetEvents returns events matching filter, newest first
func (r *EventLogRepository) GetEvents(ctx context.Context, filter eventlog.EventFilter) ([]eventlog.Event, error) {
	var (
		where []string
		args  []any
	)
	add := func(clause string, v any) {
		args = append(args, v)
		where = append(where, fmt.Sprintf(clause, len(args)))
	}
	if filter.ActorID != nil {
		add("actor_id = $%d", *filter.ActorID)
	}
	if filter.EventType != nil {
		add("event_type = $%d", *filter.EventType)
	}
	if filter.Since != nil {
		add("created_at >= $%d", *filter.Since)
	}
	if filter.Until != nil {
		add("created_at < $%d", *filter.Until)
	}

	query := `SELECT id, event_type, actor_id, payload, metadata, created_at FROM events`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	args = append(args, clampLimit(filter.Limit))
	query += fmt.Sprintf(" ORDER BY created_at DESC, id DESC LIMIT $%d", len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryEvents, err)
	}
	events, err := pgx.CollectRows(rows, scanEvent)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryEvents, err)
	}
	return events, nil
}

// GetEventsByActor returns the newest events of one actor
func (r *EventLogRepository) GetEventsByActor(ctx context.Context, actorID string, limit int) ([]eventlog.Event, error) {
	return r.GetEvents(ctx, eventlog.EventFilter{ActorID: &actorID, Limit: limit})
}

// GetEventsByType returns the newest events of one type
func (r *EventLogRepository) GetEventsByType(ctx context.Context, eventType string, limit int) ([]eventlog.Event, error) {
	return r.GetEvents(ctx, eventlog.EventFilter{EventType: &eventType, Limit: limit})
}

// CleanupOldEvents deletes events older than retentionDays
func (r *EventLogRepository) CleanupOldEvents(ctx context.Context, retentionDays int) (int64, error) {
	cutoff := time.Now().Add(-time.Duration(retentionDays) * 24 * time.Hour)
	tag, err := r.db.Exec(ctx, `DELETE FROM events WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToCleanupEvents, err)
	}
	return tag.RowsAffected(), nil
}

func scanEvent(row pgx.CollectableRow) (eventlog.Event, error) {
	var (
		evt          eventlog.Event
		payloadJSON  []byte
		metadataJSON []byte
	)
	if err := row.Scan(&evt.ID, &evt.EventType, &evt.ActorID, &payloadJSON, &metadataJSON, &evt.CreatedAt); err != nil {
		return evt, err
	}
	if err := json.Unmarshal(payloadJSON, &evt.Payload); err != nil {
		return evt, fmt.Errorf("%s: %w", ErrMsgFailedToUnmarshalEvent, err)
	}
	if len(metadataJSON) > 0 {
		if err := json.Unmarshal(metadataJSON, &evt.Metadata); err != nil {
			return evt, fmt.Errorf("%s: %w", ErrMsgFailedToUnmarshalEvent, err)
		}
	}
	return evt, nil
}

func clampLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultEventQueryLimit
	case limit > MaxEventQueryLimit:
		return MaxEventQueryLimit
	}
	return limit
}

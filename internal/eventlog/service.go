package eventlog

import (
	"context"

	"github.com/osse101/SpiritForge_Go/internal/event"
	"github.com/osse101/SpiritForge_Go/internal/logger"
)

// Service records crafting events and serves the audit history
type Service interface {
	// Subscribe registers the event logger for every logged event type
	Subscribe(bus event.Bus) error

	// GetActorEvents returns an actor's newest events, optionally of one type
	GetActorEvents(ctx context.Context, actorID string, eventType string, limit int) ([]Event, error)

	// CleanupOldEvents removes events older than retention period
	CleanupOldEvents(ctx context.Context, retentionDays int) (int64, error)
}

type service struct {
	repo Repository
}

// NewService creates a new event logging service
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// Subscribe registers event handlers for all event types
func (s *service) Subscribe(bus event.Bus) error {
	for _, eventType := range LoggedEventTypes {
		bus.Subscribe(eventType, s.handleEvent)
	}
	return nil
}

// handleEvent flattens the typed payload into a JSON object and stores it.
// Undecodable payloads are skipped so one bad publisher cannot wedge the bus.
func (s *service) handleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	payload, err := event.DecodePayload[map[string]interface{}](evt.Payload)
	if err != nil || payload == nil {
		log.Debug(LogMsgEventPayloadInvalid, LogFieldType, evt.Type, LogFieldError, err)
		return nil
	}

	var actorID *string
	if id, ok := payload[PayloadKeyActorID].(string); ok && id != "" {
		actorID = &id
	}

	if err := s.repo.LogEvent(ctx, string(evt.Type), actorID, payload, evt.Metadata); err != nil {
		log.Error(LogMsgFailedToLogEvent, LogFieldError, err, LogFieldType, evt.Type)
		return err
	}

	log.Debug(LogMsgEventLogged, LogFieldType, evt.Type, LogFieldActorID, actorID)
	return nil
}

func (s *service) GetActorEvents(ctx context.Context, actorID string, eventType string, limit int) ([]Event, error) {
	filter := EventFilter{ActorID: &actorID, Limit: limit}
	if eventType != "" {
		filter.EventType = &eventType
	}
	return s.repo.GetEvents(ctx, filter)
}

// CleanupOldEvents removes events older than the retention period
func (s *service) CleanupOldEvents(ctx context.Context, retentionDays int) (int64, error) {
	return s.repo.CleanupOldEvents(ctx, retentionDays)
}

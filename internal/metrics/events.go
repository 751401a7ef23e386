package metrics

import (
	"context"
	"strconv"

	"github.com/osse101/SpiritForge_Go/internal/event"
	"github.com/osse101/SpiritForge_Go/internal/logger"
)

// EventMetricsCollector subscribes to events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all crafting events
func (e *EventMetricsCollector) Register(bus event.Bus) error {
	eventTypes := []event.Type{
		event.RecipeLearned,
		event.RecipeUnlearned,
		event.RecipeTypeSet,
		event.ItemCrafted,
		event.CraftRejected,
		event.SpiritBound,
	}

	for _, eventType := range eventTypes {
		bus.Subscribe(eventType, e.HandleEvent)
	}

	return nil
}

// HandleEvent processes events and updates metrics. Undecodable payloads
// are counted as handler errors but never fail the publisher.
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	var err error
	switch evt.Type {
	case event.ItemCrafted:
		var p event.ItemCraftedPayloadV1
		if p, err = event.DecodePayload[event.ItemCraftedPayloadV1](evt.Payload); err == nil {
			CraftsTotal.WithLabelValues(p.RecipeType).Inc()
			ItemsConsumed.WithLabelValues(p.RecipeType).Add(float64(p.ItemsConsumed))
			ItemsCreated.WithLabelValues(p.RecipeType).Add(float64(p.OutputQuantity))
			if p.Grade != nil {
				SpiritGrade.Observe(float64(*p.Grade))
			}
		}

	case event.CraftRejected:
		var p event.CraftRejectedPayloadV1
		if p, err = event.DecodePayload[event.CraftRejectedPayloadV1](evt.Payload); err == nil {
			CraftRejectionsTotal.WithLabelValues(p.RecipeType, p.Reason).Inc()
		}

	case event.RecipeLearned:
		RecipesLearned.Inc()

	case event.RecipeUnlearned:
		RecipesUnlearned.Inc()

	case event.RecipeTypeSet:
		var p event.RecipeTypeSetPayloadV1
		if p, err = event.DecodePayload[event.RecipeTypeSetPayloadV1](evt.Payload); err == nil {
			RecipeTypeToggles.WithLabelValues(p.RecipeType, strconv.FormatBool(p.Enabled)).Inc()
		}

	case event.SpiritBound:
		SpiritsBound.Inc()
	}

	if err != nil {
		EventHandlerErrors.WithLabelValues(string(evt.Type)).Inc()
		log.Debug(LogMsgEventPayloadInvalid, "type", evt.Type, "error", err)
		return nil
	}

	log.Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}

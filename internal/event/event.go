package event

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Type represents the type of an event
type Type string

// Event represents a generic event in the system
type Event struct {
	Version  string                 `json:"version"`
	Type     Type                   `json:"type"`
	Payload  interface{}            `json:"payload"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// GetMetadataValue extracts a value from the event metadata safely
func (e Event) GetMetadataValue(key string) interface{} {
	if e.Metadata == nil {
		return nil
	}
	return e.Metadata[key]
}

// Crafting event types
const (
	RecipeLearned   Type = "recipe.learned"
	RecipeUnlearned Type = "recipe.unlearned"
	RecipeTypeSet   Type = "recipe_type.set"
	ItemCrafted     Type = "item.crafted"
	CraftRejected   Type = "item.craft_rejected"
	SpiritBound     Type = "spirit.bound"
)

// Metadata keys
const (
	MetadataKeyActorID    = "actor_id"
	MetadataKeyRecipeID   = "recipe_id"
	MetadataKeyRecipeType = "recipe_type"
	MetadataKeySource     = "source"
)

// RecipeKnowledgePayloadV1 is the payload of learn/unlearn events
type RecipeKnowledgePayloadV1 struct {
	ActorID   string `json:"actor_id"`
	RecipeID  string `json:"recipe_id"`
	Timestamp int64  `json:"timestamp"`
}

// RecipeTypeSetPayloadV1 is the payload of recipe-type opt-in changes
type RecipeTypeSetPayloadV1 struct {
	ActorID    string `json:"actor_id"`
	RecipeType string `json:"recipe_type"`
	Enabled    bool   `json:"enabled"`
	Timestamp  int64  `json:"timestamp"`
}

// ItemCraftedPayloadV1 is the payload of a successful craft
type ItemCraftedPayloadV1 struct {
	ActorID        string `json:"actor_id"`
	RecipeID       string `json:"recipe_id"`
	RecipeType     string `json:"recipe_type"`
	OutputQuantity int    `json:"output_quantity"`
	ItemsConsumed  int    `json:"items_consumed"`
	ItemsDeleted   int    `json:"items_deleted"`
	Grade          *int   `json:"grade,omitempty"`
	Timestamp      int64  `json:"timestamp"`
}

// CraftRejectedPayloadV1 is the payload of a failed craft execution
type CraftRejectedPayloadV1 struct {
	ActorID    string `json:"actor_id"`
	RecipeID   string `json:"recipe_id"`
	RecipeType string `json:"recipe_type"`
	Reason     string `json:"reason"`
	Timestamp  int64  `json:"timestamp"`
}

// SpiritBoundPayloadV1 is the payload of a spirit binding redemption
type SpiritBoundPayloadV1 struct {
	ActorID     string `json:"actor_id"`
	SpiritID    string `json:"spirit_id"`
	BoundItemID string `json:"bound_item_id"`
	TargetUUID  string `json:"target_uuid"`
	Grade       int    `json:"grade"`
	Timestamp   int64  `json:"timestamp"`
}

// NewRecipeLearnedEvent creates a recipe learned event
func NewRecipeLearnedEvent(actorID, recipeID string) Event {
	return newRecipeKnowledgeEvent(RecipeLearned, actorID, recipeID)
}

// NewRecipeUnlearnedEvent creates a recipe unlearned event
func NewRecipeUnlearnedEvent(actorID, recipeID string) Event {
	return newRecipeKnowledgeEvent(RecipeUnlearned, actorID, recipeID)
}

func newRecipeKnowledgeEvent(t Type, actorID, recipeID string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    t,
		Payload: RecipeKnowledgePayloadV1{
			ActorID:   actorID,
			RecipeID:  recipeID,
			Timestamp: time.Now().Unix(),
		},
		Metadata: map[string]interface{}{
			MetadataKeyActorID:  actorID,
			MetadataKeyRecipeID: recipeID,
		},
	}
}

// NewRecipeTypeSetEvent creates a recipe-type opt-in event
func NewRecipeTypeSetEvent(actorID, recipeType string, enabled bool) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    RecipeTypeSet,
		Payload: RecipeTypeSetPayloadV1{
			ActorID:    actorID,
			RecipeType: recipeType,
			Enabled:    enabled,
			Timestamp:  time.Now().Unix(),
		},
		Metadata: map[string]interface{}{
			MetadataKeyActorID:    actorID,
			MetadataKeyRecipeType: recipeType,
		},
	}
}

// NewItemCraftedEvent creates an item crafted event
func NewItemCraftedEvent(payload ItemCraftedPayloadV1) Event {
	payload.Timestamp = time.Now().Unix()
	return Event{
		Version: EventSchemaVersion,
		Type:    ItemCrafted,
		Payload: payload,
		Metadata: map[string]interface{}{
			MetadataKeyActorID:    payload.ActorID,
			MetadataKeyRecipeID:   payload.RecipeID,
			MetadataKeyRecipeType: payload.RecipeType,
			MetadataKeySource:     "crafting",
		},
	}
}

// NewCraftRejectedEvent creates a craft rejected event
func NewCraftRejectedEvent(actorID, recipeID, recipeType, reason string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    CraftRejected,
		Payload: CraftRejectedPayloadV1{
			ActorID:    actorID,
			RecipeID:   recipeID,
			RecipeType: recipeType,
			Reason:     reason,
			Timestamp:  time.Now().Unix(),
		},
		Metadata: map[string]interface{}{
			MetadataKeyActorID:    actorID,
			MetadataKeyRecipeID:   recipeID,
			MetadataKeyRecipeType: recipeType,
		},
	}
}

// NewSpiritBoundEvent creates a spirit bound event
func NewSpiritBoundEvent(actorID, spiritID, boundItemID, targetUUID string, grade int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    SpiritBound,
		Payload: SpiritBoundPayloadV1{
			ActorID:     actorID,
			SpiritID:    spiritID,
			BoundItemID: boundItemID,
			TargetUUID:  targetUUID,
			Grade:       grade,
			Timestamp:   time.Now().Unix(),
		},
		Metadata: map[string]interface{}{
			MetadataKeyActorID: actorID,
			MetadataKeySource:  "binding",
		},
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// DeliveryError reports the subscribers that failed to handle an event, so a
// retry can target them without re-delivering to the ones that succeeded.
type DeliveryError struct {
	EventType Type
	Failed    []Handler
	Errs      []error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf(LogMsgHandlerErrorFormat, len(e.Errs), e.EventType, e.Errs)
}

func (e *DeliveryError) Unwrap() []error {
	return e.Errs
}

// Publish runs every subscriber synchronously. Failures are returned as a
// *DeliveryError.
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers := b.handlers[event.Type]
	b.mu.RUnlock()

	return deliver(ctx, event, handlers)
}

func deliver(ctx context.Context, event Event, handlers []Handler) error {
	var failed *DeliveryError
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			if failed == nil {
				failed = &DeliveryError{EventType: event.Type}
			}
			failed.Failed = append(failed.Failed, handler)
			failed.Errs = append(failed.Errs, err)
		}
	}

	if failed != nil {
		return failed
	}
	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}

package eventlog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/SpiritForge_Go/internal/event"
)

// MockEventBus is a mock implementation of event.Bus
type MockEventBus struct {
	mock.Mock
}

func (m *MockEventBus) Publish(ctx context.Context, evt event.Event) error {
	args := m.Called(ctx, evt)
	return args.Error(0)
}

func (m *MockEventBus) Subscribe(eventType event.Type, handler event.Handler) {
	m.Called(eventType, handler)
}

func TestService_Subscribe(t *testing.T) {
	mockBus := new(MockEventBus)
	for _, et := range LoggedEventTypes {
		mockBus.On("Subscribe", et, mock.Anything).Return()
	}

	require.NoError(t, NewService(new(MockRepository)).Subscribe(mockBus))
	mockBus.AssertExpectations(t)
}

func TestService_HandleEvent_TypedPayload(t *testing.T) {
	mockRepo := new(MockRepository)
	svc := NewService(mockRepo).(*service)
	ctx := context.Background()

	evt := event.NewRecipeLearnedEvent("actor-1", "recipe-charm")
	actorID := "actor-1"
	mockRepo.On("LogEvent", ctx, string(event.RecipeLearned), &actorID,
		mock.MatchedBy(func(p map[string]interface{}) bool {
			return p["actor_id"] == "actor-1" && p["recipe_id"] == "recipe-charm"
		}), evt.Metadata).Return(nil)

	require.NoError(t, svc.handleEvent(ctx, evt))
	mockRepo.AssertExpectations(t)
}

func TestService_HandleEvent_ThroughBus(t *testing.T) {
	mockRepo := new(MockRepository)
	bus := event.NewMemoryBus()
	require.NoError(t, NewService(mockRepo).Subscribe(bus))

	mockRepo.On("LogEvent", mock.Anything, string(event.CraftRejected), mock.Anything, mock.Anything, mock.Anything).
		Return(nil).Once()

	require.NoError(t, bus.Publish(context.Background(),
		event.NewCraftRejectedEvent("actor-1", "recipe-charm", "monster", "insufficient_resources")))
	mockRepo.AssertExpectations(t)
}

func TestService_HandleEvent_UndecodablePayloadSkipped(t *testing.T) {
	mockRepo := new(MockRepository)
	svc := NewService(mockRepo).(*service)

	err := svc.handleEvent(context.Background(), event.Event{Type: event.ItemCrafted, Payload: "not an object"})

	assert.NoError(t, err)
	mockRepo.AssertNotCalled(t, "LogEvent")
}

func TestService_HandleEvent_RepositoryError(t *testing.T) {
	mockRepo := new(MockRepository)
	svc := NewService(mockRepo).(*service)

	mockRepo.On("LogEvent", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(assert.AnError)

	err := svc.handleEvent(context.Background(), event.NewSpiritBoundEvent("a1", "s1", "b1", "t1", 3))
	assert.ErrorIs(t, err, assert.AnError)
}

func TestService_GetActorEvents(t *testing.T) {
	mockRepo := new(MockRepository)
	svc := NewService(mockRepo)
	ctx := context.Background()

	want := []Event{{ID: 1, EventType: "item.crafted"}}
	mockRepo.On("GetEvents", ctx, mock.MatchedBy(func(f EventFilter) bool {
		return *f.ActorID == "actor-1" && f.EventType != nil && *f.EventType == "item.crafted" && f.Limit == 5
	})).Return(want, nil)
	mockRepo.On("GetEvents", ctx, mock.MatchedBy(func(f EventFilter) bool {
		return *f.ActorID == "actor-2" && f.EventType == nil
	})).Return([]Event{}, nil)

	got, err := svc.GetActorEvents(ctx, "actor-1", "item.crafted", 5)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	got, err = svc.GetActorEvents(ctx, "actor-2", "", 0)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestService_CleanupOldEvents(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo)
	ctx := context.Background()

	mockRepo.On("CleanupOldEvents", ctx, 10).Return(int64(5), nil)

	count, err := service.CleanupOldEvents(ctx, 10)
	assert.NoError(t, err)
	assert.Equal(t, int64(5), count)
	mockRepo.AssertExpectations(t)
}

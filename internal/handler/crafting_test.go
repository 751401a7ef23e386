package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/SpiritForge_Go/internal/crafting"
	"github.com/osse101/SpiritForge_Go/internal/domain"
	"github.com/osse101/SpiritForge_Go/mocks"
)

// withURLParams attaches chi route params so handlers can be called directly
func withURLParams(req *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func jsonBody(t *testing.T, v interface{}) *bytes.Buffer {
	t.Helper()
	body, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(body)
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Error
}

func TestHandleListRecipes(t *testing.T) {
	views := []crafting.RecipeView{{
		ID:         "recipe-charm",
		Name:       "Charm",
		RecipeType: domain.RecipeTypeMonster,
		State:      domain.RecipeKnown,
		Components: []crafting.ComponentView{{Identifier: "monster.*.eye", Label: "Eye (any creature)", Required: 2, Available: 3}},
		Craftable:  true,
	}}

	tests := []struct {
		name           string
		query          string
		mockSetup      func(*mocks.MockCraftingService)
		expectedStatus int
		expectedCount  int
		expectedError  string
	}{
		{
			name:  "All types",
			query: "",
			mockSetup: func(m *mocks.MockCraftingService) {
				m.On("ListAvailableRecipes", mock.Anything, "actor-1", domain.RecipeType("")).Return(views, nil)
			},
			expectedStatus: http.StatusOK,
			expectedCount:  1,
		},
		{
			name:  "Type filter is lowercased",
			query: "?type=MONSTER",
			mockSetup: func(m *mocks.MockCraftingService) {
				m.On("ListAvailableRecipes", mock.Anything, "actor-1", domain.RecipeTypeMonster).Return(views, nil)
			},
			expectedStatus: http.StatusOK,
			expectedCount:  1,
		},
		{
			name:  "Nil result becomes empty list",
			query: "?type=rune",
			mockSetup: func(m *mocks.MockCraftingService) {
				m.On("ListAvailableRecipes", mock.Anything, "actor-1", domain.RecipeTypeRune).Return(nil, nil)
			},
			expectedStatus: http.StatusOK,
			expectedCount:  0,
		},
		{
			name:           "Invalid type",
			query:          "?type=alchemy",
			mockSetup:      func(m *mocks.MockCraftingService) {},
			expectedStatus: http.StatusBadRequest,
			expectedError:  fmt.Sprintf(ErrMsgInvalidRecipeType, "alchemy"),
		},
		{
			name:  "Actor not found",
			query: "",
			mockSetup: func(m *mocks.MockCraftingService) {
				m.On("ListAvailableRecipes", mock.Anything, "actor-1", domain.RecipeType("")).
					Return(nil, fmt.Errorf("lookup: %w", domain.ErrActorNotFound))
			},
			expectedStatus: http.StatusNotFound,
			expectedError:  ErrMsgActorNotFoundError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := mocks.NewMockCraftingService(t)
			tt.mockSetup(svc)

			req := withURLParams(httptest.NewRequest(http.MethodGet, "/actors/actor-1/recipes"+tt.query, nil),
				map[string]string{"actorID": "actor-1"})
			rec := httptest.NewRecorder()

			HandleListRecipes(svc).ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedError != "" {
				assert.Equal(t, tt.expectedError, decodeError(t, rec))
				return
			}
			var resp RecipeListResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, "actor-1", resp.ActorID)
			assert.NotNil(t, resp.Recipes)
			assert.Len(t, resp.Recipes, tt.expectedCount)
		})
	}
}

func TestHandleListRecipes_ViewShape(t *testing.T) {
	svc := mocks.NewMockCraftingService(t)
	svc.On("ListAvailableRecipes", mock.Anything, "actor-1", domain.RecipeType("")).Return([]crafting.RecipeView{{
		ID:         "recipe-charm",
		Components: []crafting.ComponentView{{Identifier: "monster.*.eye", Label: "Eye (any creature)", Required: 2}},
	}}, nil)

	req := withURLParams(httptest.NewRequest(http.MethodGet, "/", nil), map[string]string{"actorID": "actor-1"})
	rec := httptest.NewRecorder()
	HandleListRecipes(svc).ServeHTTP(rec, req)

	assert.Contains(t, rec.Body.String(), `"label":"Eye (any creature)"`)
	assert.Contains(t, rec.Body.String(), `"identifier":"monster.*.eye"`)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
}

func TestHandleCanCraft(t *testing.T) {
	t.Run("Known and affordable", func(t *testing.T) {
		svc := mocks.NewMockCraftingService(t)
		svc.On("GetRecipeState", mock.Anything, "actor-1", "recipe-charm").Return(domain.RecipeKnown, nil)
		svc.On("CanCraft", mock.Anything, "actor-1", "recipe-charm").Return(true, nil)

		req := withURLParams(httptest.NewRequest(http.MethodGet, "/", nil),
			map[string]string{"actorID": "actor-1", "recipeID": "recipe-charm"})
		rec := httptest.NewRecorder()
		HandleCanCraft(svc).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		var resp CraftableResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, CraftableResponse{ActorID: "actor-1", RecipeID: "recipe-charm", State: domain.RecipeKnown, Craftable: true}, resp)
	})

	t.Run("Recipe not found", func(t *testing.T) {
		svc := mocks.NewMockCraftingService(t)
		svc.On("GetRecipeState", mock.Anything, "actor-1", "nope").Return(domain.RecipeState(""), domain.ErrRecipeNotFound)

		req := withURLParams(httptest.NewRequest(http.MethodGet, "/", nil),
			map[string]string{"actorID": "actor-1", "recipeID": "nope"})
		rec := httptest.NewRecorder()
		HandleCanCraft(svc).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, ErrMsgRecipeNotFoundError, decodeError(t, rec))
	})
}

func TestHandleLearnAndUnlearn(t *testing.T) {
	params := map[string]string{"actorID": "actor-1", "recipeID": "recipe-stew"}

	t.Run("Learn", func(t *testing.T) {
		svc := mocks.NewMockCraftingService(t)
		svc.On("LearnRecipe", mock.Anything, "actor-1", "recipe-stew").Return(nil)

		rec := httptest.NewRecorder()
		HandleLearnRecipe(svc).ServeHTTP(rec, withURLParams(httptest.NewRequest(http.MethodPost, "/", nil), params))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), MsgRecipeLearnedSuccess)
	})

	t.Run("Learn by ineligible actor", func(t *testing.T) {
		svc := mocks.NewMockCraftingService(t)
		svc.On("LearnRecipe", mock.Anything, "actor-1", "recipe-stew").Return(domain.ErrActorIneligible)

		rec := httptest.NewRecorder()
		HandleLearnRecipe(svc).ServeHTTP(rec, withURLParams(httptest.NewRequest(http.MethodPost, "/", nil), params))

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Equal(t, ErrMsgActorIneligibleError, decodeError(t, rec))
	})

	t.Run("Unlearn", func(t *testing.T) {
		svc := mocks.NewMockCraftingService(t)
		svc.On("UnlearnRecipe", mock.Anything, "actor-1", "recipe-stew").Return(nil)

		rec := httptest.NewRecorder()
		HandleUnlearnRecipe(svc).ServeHTTP(rec, withURLParams(httptest.NewRequest(http.MethodDelete, "/", nil), params))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), MsgRecipeUnlearnedSuccess)
	})
}

func TestHandleSetRecipeType(t *testing.T) {
	enabled := true

	tests := []struct {
		name           string
		recipeType     string
		body           interface{}
		mockSetup      func(*mocks.MockCraftingService)
		expectedStatus int
	}{
		{
			name:       "Enable",
			recipeType: "Spirit",
			body:       SetRecipeTypeRequest{Enabled: &enabled},
			mockSetup: func(m *mocks.MockCraftingService) {
				m.On("SetRecipeTypeEnabled", mock.Anything, "actor-1", domain.RecipeTypeSpirit, true).Return(nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Unknown type",
			recipeType:     "alchemy",
			body:           SetRecipeTypeRequest{Enabled: &enabled},
			mockSetup:      func(m *mocks.MockCraftingService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Missing enabled flag",
			recipeType:     "rune",
			body:           map[string]string{},
			mockSetup:      func(m *mocks.MockCraftingService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:       "Storage failure",
			recipeType: "rune",
			body:       SetRecipeTypeRequest{Enabled: &enabled},
			mockSetup: func(m *mocks.MockCraftingService) {
				m.On("SetRecipeTypeEnabled", mock.Anything, "actor-1", domain.RecipeTypeRune, true).Return(assert.AnError)
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := mocks.NewMockCraftingService(t)
			tt.mockSetup(svc)

			req := withURLParams(httptest.NewRequest(http.MethodPut, "/", jsonBody(t, tt.body)),
				map[string]string{"actorID": "actor-1", "recipeType": tt.recipeType})
			rec := httptest.NewRecorder()
			HandleSetRecipeType(svc).ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
		})
	}
}

func TestHandleSetRecipeType_ResponseBody(t *testing.T) {
	disabled := false
	svc := mocks.NewMockCraftingService(t)
	svc.On("SetRecipeTypeEnabled", mock.Anything, "actor-1", domain.RecipeTypeCooking, false).Return(nil)

	req := withURLParams(httptest.NewRequest(http.MethodPut, "/", jsonBody(t, SetRecipeTypeRequest{Enabled: &disabled})),
		map[string]string{"actorID": "actor-1", "recipeType": "cooking"})
	rec := httptest.NewRecorder()
	HandleSetRecipeType(svc).ServeHTTP(rec, req)

	var resp RecipeTypeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, RecipeTypeResponse{
		Message: MsgRecipeTypeDisabledSuccess, ActorID: "actor-1", RecipeType: domain.RecipeTypeCooking, Enabled: false,
	}, resp)
}

func TestHandleBindSpirit(t *testing.T) {
	params := map[string]string{"actorID": "actor-1", "itemID": "spirit-1"}

	t.Run("Success", func(t *testing.T) {
		svc := mocks.NewMockCraftingService(t)
		svc.On("BindSpirit", mock.Anything, "actor-1", "spirit-1").
			Return(&domain.InventoryItem{ID: "blade-1", Name: "Flame Blade", Quantity: 1}, nil)

		rec := httptest.NewRecorder()
		HandleBindSpirit(svc).ServeHTTP(rec, withURLParams(httptest.NewRequest(http.MethodPost, "/", nil), params))

		assert.Equal(t, http.StatusCreated, rec.Code)
		var resp BindSpiritResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "Bound spirit into Flame Blade", resp.Message)
		assert.Equal(t, "blade-1", resp.Item.ID)
	})

	t.Run("Not a spirit", func(t *testing.T) {
		svc := mocks.NewMockCraftingService(t)
		svc.On("BindSpirit", mock.Anything, "actor-1", "spirit-1").Return(nil, domain.ErrNotSpiritItem)

		rec := httptest.NewRecorder()
		HandleBindSpirit(svc).ServeHTTP(rec, withURLParams(httptest.NewRequest(http.MethodPost, "/", nil), params))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, ErrMsgNotSpiritItemError, decodeError(t, rec))
	})
}

func TestHandleStartCrafting(t *testing.T) {
	tests := []struct {
		name           string
		body           interface{}
		mockSetup      func(*mocks.MockCraftingService)
		expectedStatus int
	}{
		{
			name: "Success",
			body: StartCraftingRequest{ActorID: "actor-1", RecipeID: "recipe-charm"},
			mockSetup: func(m *mocks.MockCraftingService) {
				m.On("StartCrafting", mock.Anything, "actor-1", "recipe-charm").
					Return(&domain.Assignment{ID: "session-1", ActorID: "actor-1", RecipeID: "recipe-charm", Slots: map[string]string{}}, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "Recipe locked",
			body: StartCraftingRequest{ActorID: "actor-1", RecipeID: "recipe-stew"},
			mockSetup: func(m *mocks.MockCraftingService) {
				m.On("StartCrafting", mock.Anything, "actor-1", "recipe-stew").
					Return(nil, fmt.Errorf("%w: recipe-stew is learnable", domain.ErrRecipeLocked))
			},
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "Missing fields",
			body:           StartCraftingRequest{ActorID: "actor-1"},
			mockSetup:      func(m *mocks.MockCraftingService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Malformed JSON",
			body:           "not json",
			mockSetup:      func(m *mocks.MockCraftingService) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := mocks.NewMockCraftingService(t)
			tt.mockSetup(svc)

			rec := httptest.NewRecorder()
			HandleStartCrafting(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/crafting/sessions", jsonBody(t, tt.body)))

			assert.Equal(t, tt.expectedStatus, rec.Code)
		})
	}
}

func TestHandleSessionLifecycle(t *testing.T) {
	session := &domain.Assignment{ID: "session-1", ActorID: "actor-1", RecipeID: "recipe-charm",
		Slots: map[string]string{"monster.*.eye": "eye-1"}}

	t.Run("Get", func(t *testing.T) {
		svc := mocks.NewMockCraftingService(t)
		svc.On("GetSession", mock.Anything, "session-1").Return(session, nil)

		rec := httptest.NewRecorder()
		HandleGetSession(svc).ServeHTTP(rec, withURLParams(httptest.NewRequest(http.MethodGet, "/", nil),
			map[string]string{"sessionID": "session-1"}))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"monster.*.eye":"eye-1"`)
	})

	t.Run("Get expired", func(t *testing.T) {
		svc := mocks.NewMockCraftingService(t)
		svc.On("GetSession", mock.Anything, "gone").Return(nil, domain.ErrSessionNotFound)

		rec := httptest.NewRecorder()
		HandleGetSession(svc).ServeHTTP(rec, withURLParams(httptest.NewRequest(http.MethodGet, "/", nil),
			map[string]string{"sessionID": "gone"}))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, ErrMsgSessionNotFoundError, decodeError(t, rec))
	})

	t.Run("Assign", func(t *testing.T) {
		svc := mocks.NewMockCraftingService(t)
		svc.On("Assign", mock.Anything, "session-1", "monster.*.eye", "eye-1").Return(session, nil)

		body := jsonBody(t, AssignComponentRequest{Component: "monster.*.eye", ItemID: "eye-1"})
		rec := httptest.NewRecorder()
		HandleAssignComponent(svc).ServeHTTP(rec, withURLParams(httptest.NewRequest(http.MethodPut, "/", body),
			map[string]string{"sessionID": "session-1"}))

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("Assign mismatched item", func(t *testing.T) {
		svc := mocks.NewMockCraftingService(t)
		svc.On("Assign", mock.Anything, "session-1", "gem.ruby", "eye-1").Return(nil, domain.ErrResourceMismatch)

		body := jsonBody(t, AssignComponentRequest{Component: "gem.ruby", ItemID: "eye-1"})
		rec := httptest.NewRecorder()
		HandleAssignComponent(svc).ServeHTTP(rec, withURLParams(httptest.NewRequest(http.MethodPut, "/", body),
			map[string]string{"sessionID": "session-1"}))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, ErrMsgResourceMismatchError, decodeError(t, rec))
	})

	t.Run("Unassign", func(t *testing.T) {
		svc := mocks.NewMockCraftingService(t)
		svc.On("Unassign", mock.Anything, "session-1", "monster.*.eye").
			Return(&domain.Assignment{ID: "session-1", Slots: map[string]string{}}, nil)

		rec := httptest.NewRecorder()
		HandleUnassignComponent(svc).ServeHTTP(rec, withURLParams(httptest.NewRequest(http.MethodDelete, "/", nil),
			map[string]string{"sessionID": "session-1", "component": "monster.*.eye"}))

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("Cancel", func(t *testing.T) {
		svc := mocks.NewMockCraftingService(t)
		svc.On("CancelCrafting", mock.Anything, "session-1").Return(nil)

		rec := httptest.NewRecorder()
		HandleCancelCrafting(svc).ServeHTTP(rec, withURLParams(httptest.NewRequest(http.MethodDelete, "/", nil),
			map[string]string{"sessionID": "session-1"}))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), MsgSessionCancelledSuccess)
	})
}

func TestHandleExecuteCrafting(t *testing.T) {
	tests := []struct {
		name           string
		mockSetup      func(*mocks.MockCraftingService)
		expectedStatus int
		expectedMsg    string
	}{
		{
			name: "Success",
			mockSetup: func(m *mocks.MockCraftingService) {
				m.On("Execute", mock.Anything, "session-1").Return(&crafting.CraftPlan{
					ActorID: "actor-1", RecipeID: "recipe-charm", OutputQuantity: 2,
					Creations: []crafting.Creation{{Item: domain.InventoryItem{Name: "Eye Charm", Quantity: 1}, Added: 1}},
				}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedMsg:    "Crafted 2x Eye Charm",
		},
		{
			name: "Insufficient resources",
			mockSetup: func(m *mocks.MockCraftingService) {
				m.On("Execute", mock.Anything, "session-1").
					Return(nil, fmt.Errorf("%w: monster.*.eye needs 2", domain.ErrInsufficientResources))
			},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedMsg:    ErrMsgInsufficientResourceErr,
		},
		{
			name: "Incomplete assignment",
			mockSetup: func(m *mocks.MockCraftingService) {
				m.On("Execute", mock.Anything, "session-1").Return(nil, domain.ErrIncompleteAssignment)
			},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedMsg:    ErrMsgIncompleteAssignmentErr,
		},
		{
			name: "No eligible grade",
			mockSetup: func(m *mocks.MockCraftingService) {
				m.On("Execute", mock.Anything, "session-1").Return(nil, domain.ErrNoEligibleGrade)
			},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedMsg:    ErrMsgNoEligibleGradeError,
		},
		{
			name: "Storage failure does not leak",
			mockSetup: func(m *mocks.MockCraftingService) {
				m.On("Execute", mock.Anything, "session-1").Return(nil, fmt.Errorf("apply plan: connection reset"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedMsg:    ErrMsgGenericServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := mocks.NewMockCraftingService(t)
			tt.mockSetup(svc)

			rec := httptest.NewRecorder()
			HandleExecuteCrafting(svc).ServeHTTP(rec, withURLParams(httptest.NewRequest(http.MethodPost, "/", nil),
				map[string]string{"sessionID": "session-1"}))

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.expectedMsg)
			assert.NotContains(t, rec.Body.String(), "connection reset")
		})
	}
}

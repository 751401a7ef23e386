package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/osse101/SpiritForge_Go/internal/crafting"
	"github.com/osse101/SpiritForge_Go/internal/domain"
	"github.com/osse101/SpiritForge_Go/internal/logger"
)

// StartCraftingRequest opens a crafting session
type StartCraftingRequest struct {
	ActorID  string `json:"actor_id" validate:"required,max=100,excludesall=\x00\n\r\t"`
	RecipeID string `json:"recipe_id" validate:"required,max=100,excludesall=\x00\n\r\t"`
}

// AssignComponentRequest puts an inventory item into a component slot
type AssignComponentRequest struct {
	Component string `json:"component" validate:"required,max=100"`
	ItemID    string `json:"item_id" validate:"required,max=100,excludesall=\x00\n\r\t"`
}

// SetRecipeTypeRequest toggles a recipe type for an actor
type SetRecipeTypeRequest struct {
	Enabled *bool `json:"enabled" validate:"required"`
}

// RecipeListResponse lists the recipes visible to an actor
type RecipeListResponse struct {
	ActorID    string                `json:"actor_id"`
	RecipeType domain.RecipeType     `json:"recipe_type,omitempty"`
	Recipes    []crafting.RecipeView `json:"recipes"`
}

// CraftableResponse reports the state and affordability of one recipe
type CraftableResponse struct {
	ActorID   string             `json:"actor_id"`
	RecipeID  string             `json:"recipe_id"`
	State     domain.RecipeState `json:"state"`
	Craftable bool               `json:"craftable"`
}

// RecipeTypeResponse reports a recipe type toggle
type RecipeTypeResponse struct {
	Message    string            `json:"message"`
	ActorID    string            `json:"actor_id"`
	RecipeType domain.RecipeType `json:"recipe_type"`
	Enabled    bool              `json:"enabled"`
}

// BindSpiritResponse carries the item produced by a spirit binding
type BindSpiritResponse struct {
	Message string                `json:"message"`
	Item    *domain.InventoryItem `json:"item"`
}

// ExecuteResponse carries the applied craft plan
type ExecuteResponse struct {
	Message string              `json:"message"`
	Plan    *crafting.CraftPlan `json:"plan"`
}

// parseRecipeType lowercases and validates a recipe type. Empty is allowed
// when optional is set.
func parseRecipeType(raw string, optional bool) (domain.RecipeType, bool) {
	t := domain.RecipeType(strings.ToLower(strings.TrimSpace(raw)))
	if t == "" {
		return t, optional
	}
	return t, t.IsValid()
}

// HandleListRecipes lists the recipes an actor knows or can learn
// @Summary List available recipes
// @Description Lists known and learnable recipes with their aggregated components and craftability
// @Tags crafting
// @Produce json
// @Param actorID path string true "Actor ID"
// @Param type query string false "Recipe type filter (rune, spirit, monster, cooking)"
// @Success 200 {object} RecipeListResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /actors/{actorID}/recipes [get]
func HandleListRecipes(svc crafting.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())
		actorID := chi.URLParam(r, "actorID")

		recipeType, ok := parseRecipeType(r.URL.Query().Get("type"), true)
		if !ok {
			respondError(w, http.StatusBadRequest, fmt.Sprintf(ErrMsgInvalidRecipeType, recipeType))
			return
		}

		recipes, err := svc.ListAvailableRecipes(r.Context(), actorID, recipeType)
		if err != nil {
			log.Error(LogMsgListRecipesFailed, "error", err, "actor_id", actorID)
			respondServiceError(w, err)
			return
		}
		if recipes == nil {
			recipes = []crafting.RecipeView{}
		}

		log.Info("Recipes listed", "actor_id", actorID, "recipe_type", recipeType, "count", len(recipes))
		respondJSON(w, http.StatusOK, RecipeListResponse{
			ActorID:    actorID,
			RecipeType: recipeType,
			Recipes:    recipes,
		})
	}
}

// HandleCanCraft reports whether an actor can craft a recipe now
// @Summary Check craftability
// @Description Returns the recipe state for the actor and whether the inventory affords it
// @Tags crafting
// @Produce json
// @Param actorID path string true "Actor ID"
// @Param recipeID path string true "Recipe ID"
// @Success 200 {object} CraftableResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /actors/{actorID}/recipes/{recipeID}/craftable [get]
func HandleCanCraft(svc crafting.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())
		actorID := chi.URLParam(r, "actorID")
		recipeID := chi.URLParam(r, "recipeID")

		state, err := svc.GetRecipeState(r.Context(), actorID, recipeID)
		if err != nil {
			log.Error(LogMsgCanCraftFailed, "error", err, "actor_id", actorID, "recipe_id", recipeID)
			respondServiceError(w, err)
			return
		}
		craftable, err := svc.CanCraft(r.Context(), actorID, recipeID)
		if err != nil {
			log.Error(LogMsgCanCraftFailed, "error", err, "actor_id", actorID, "recipe_id", recipeID)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, CraftableResponse{
			ActorID:   actorID,
			RecipeID:  recipeID,
			State:     state,
			Craftable: craftable,
		})
	}
}

// HandleLearnRecipe adds a recipe to an actor's learned set
// @Summary Learn recipe
// @Tags knowledge
// @Produce json
// @Param actorID path string true "Actor ID"
// @Param recipeID path string true "Recipe ID"
// @Success 200 {object} SuccessResponse
// @Failure 403 {object} ErrorResponse "Actor cannot hold recipes"
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /actors/{actorID}/recipes/{recipeID}/learn [post]
func HandleLearnRecipe(svc crafting.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())
		actorID := chi.URLParam(r, "actorID")
		recipeID := chi.URLParam(r, "recipeID")

		if err := svc.LearnRecipe(r.Context(), actorID, recipeID); err != nil {
			log.Error(LogMsgLearnFailed, "error", err, "actor_id", actorID, "recipe_id", recipeID)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgRecipeLearnedSuccess})
	}
}

// HandleUnlearnRecipe removes a recipe from an actor's learned set
// @Summary Unlearn recipe
// @Tags knowledge
// @Produce json
// @Param actorID path string true "Actor ID"
// @Param recipeID path string true "Recipe ID"
// @Success 200 {object} SuccessResponse
// @Failure 403 {object} ErrorResponse "Actor cannot hold recipes"
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /actors/{actorID}/recipes/{recipeID}/learn [delete]
func HandleUnlearnRecipe(svc crafting.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())
		actorID := chi.URLParam(r, "actorID")
		recipeID := chi.URLParam(r, "recipeID")

		if err := svc.UnlearnRecipe(r.Context(), actorID, recipeID); err != nil {
			log.Error(LogMsgUnlearnFailed, "error", err, "actor_id", actorID, "recipe_id", recipeID)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgRecipeUnlearnedSuccess})
	}
}

// HandleSetRecipeType enables or disables a recipe type for an actor
// @Summary Toggle recipe type
// @Tags knowledge
// @Accept json
// @Produce json
// @Param actorID path string true "Actor ID"
// @Param recipeType path string true "Recipe type"
// @Param request body SetRecipeTypeRequest true "Toggle"
// @Success 200 {object} RecipeTypeResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /actors/{actorID}/recipe-types/{recipeType} [put]
func HandleSetRecipeType(svc crafting.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())
		actorID := chi.URLParam(r, "actorID")

		recipeType, ok := parseRecipeType(chi.URLParam(r, "recipeType"), false)
		if !ok {
			respondError(w, http.StatusBadRequest, fmt.Sprintf(ErrMsgInvalidRecipeType, recipeType))
			return
		}

		var req SetRecipeTypeRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Set recipe type"); err != nil {
			return
		}

		if err := svc.SetRecipeTypeEnabled(r.Context(), actorID, recipeType, *req.Enabled); err != nil {
			log.Error(LogMsgSetRecipeTypeFailed, "error", err, "actor_id", actorID, "recipe_type", recipeType)
			respondServiceError(w, err)
			return
		}

		msg := MsgRecipeTypeDisabledSuccess
		if *req.Enabled {
			msg = MsgRecipeTypeEnabledSuccess
		}
		respondJSON(w, http.StatusOK, RecipeTypeResponse{
			Message:    msg,
			ActorID:    actorID,
			RecipeType: recipeType,
			Enabled:    *req.Enabled,
		})
	}
}

// HandleBindSpirit redeems a spirit item into its bound item
// @Summary Bind spirit
// @Description Consumes a spirit and creates the target item scaled by the spirit's grade
// @Tags crafting
// @Produce json
// @Param actorID path string true "Actor ID"
// @Param itemID path string true "Spirit item ID"
// @Success 201 {object} BindSpiritResponse
// @Failure 400 {object} ErrorResponse "Item is not a spirit"
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse "Target unavailable"
// @Failure 500 {object} ErrorResponse
// @Router /actors/{actorID}/items/{itemID}/bind [post]
func HandleBindSpirit(svc crafting.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())
		actorID := chi.URLParam(r, "actorID")
		itemID := chi.URLParam(r, "itemID")

		item, err := svc.BindSpirit(r.Context(), actorID, itemID)
		if err != nil {
			log.Error(LogMsgBindFailed, "error", err, "actor_id", actorID, "item_id", itemID)
			respondServiceError(w, err)
			return
		}

		log.Info("Spirit bound", "actor_id", actorID, "spirit_id", itemID, "bound_item_id", item.ID)
		respondJSON(w, http.StatusCreated, BindSpiritResponse{
			Message: fmt.Sprintf(MsgSpiritBoundFormat, item.Name),
			Item:    item,
		})
	}
}

// HandleStartCrafting opens a crafting session
// @Summary Start crafting
// @Tags sessions
// @Accept json
// @Produce json
// @Param request body StartCraftingRequest true "Session details"
// @Success 201 {object} domain.Assignment
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse "Recipe not known"
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse "Target unavailable"
// @Failure 500 {object} ErrorResponse
// @Router /crafting/sessions [post]
func HandleStartCrafting(svc crafting.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req StartCraftingRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Start crafting"); err != nil {
			return
		}

		session, err := svc.StartCrafting(r.Context(), req.ActorID, req.RecipeID)
		if err != nil {
			log.Error(LogMsgStartFailed, "error", err, "actor_id", req.ActorID, "recipe_id", req.RecipeID)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusCreated, session)
	}
}

// HandleGetSession returns a live crafting session
// @Summary Get crafting session
// @Tags sessions
// @Produce json
// @Param sessionID path string true "Session ID"
// @Success 200 {object} domain.Assignment
// @Failure 404 {object} ErrorResponse
// @Router /crafting/sessions/{sessionID} [get]
func HandleGetSession(svc crafting.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := chi.URLParam(r, "sessionID")

		session, err := svc.GetSession(r.Context(), sessionID)
		if err != nil {
			logger.FromContext(r.Context()).Debug(LogMsgGetSessionFailed, "error", err, "session_id", sessionID)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, session)
	}
}

// HandleAssignComponent assigns an inventory item to a component slot
// @Summary Assign component
// @Tags sessions
// @Accept json
// @Produce json
// @Param sessionID path string true "Session ID"
// @Param request body AssignComponentRequest true "Assignment"
// @Success 200 {object} domain.Assignment
// @Failure 400 {object} ErrorResponse "Unknown component or mismatched item"
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /crafting/sessions/{sessionID}/components [put]
func HandleAssignComponent(svc crafting.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())
		sessionID := chi.URLParam(r, "sessionID")

		var req AssignComponentRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Assign component"); err != nil {
			return
		}

		session, err := svc.Assign(r.Context(), sessionID, req.Component, req.ItemID)
		if err != nil {
			log.Warn(LogMsgAssignFailed, "error", err, "session_id", sessionID, "component", req.Component, "item_id", req.ItemID)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, session)
	}
}

// HandleUnassignComponent clears a component slot
// @Summary Unassign component
// @Tags sessions
// @Produce json
// @Param sessionID path string true "Session ID"
// @Param component path string true "Component identifier"
// @Success 200 {object} domain.Assignment
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /crafting/sessions/{sessionID}/components/{component} [delete]
func HandleUnassignComponent(svc crafting.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := chi.URLParam(r, "sessionID")
		component := chi.URLParam(r, "component")

		session, err := svc.Unassign(r.Context(), sessionID, component)
		if err != nil {
			logger.FromContext(r.Context()).Warn(LogMsgUnassignFailed, "error", err, "session_id", sessionID, "component", component)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, session)
	}
}

// HandleExecuteCrafting applies a crafting session
// @Summary Execute craft
// @Description Consumes the assigned items and creates the recipe output atomically. A failed execution keeps the session.
// @Tags sessions
// @Produce json
// @Param sessionID path string true "Session ID"
// @Success 200 {object} ExecuteResponse
// @Failure 403 {object} ErrorResponse "Recipe not known"
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse "Incomplete assignment or insufficient resources"
// @Failure 500 {object} ErrorResponse
// @Router /crafting/sessions/{sessionID}/execute [post]
func HandleExecuteCrafting(svc crafting.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())
		sessionID := chi.URLParam(r, "sessionID")

		plan, err := svc.Execute(r.Context(), sessionID)
		if err != nil {
			log.Warn(LogMsgExecuteFailed, "error", err, "session_id", sessionID)
			respondServiceError(w, err)
			return
		}

		name := plan.RecipeID
		if len(plan.Creations) > 0 {
			name = plan.Creations[0].Item.Name
		}
		respondJSON(w, http.StatusOK, ExecuteResponse{
			Message: fmt.Sprintf(MsgCraftSuccessFormat, plan.OutputQuantity, name),
			Plan:    plan,
		})
	}
}

// HandleCancelCrafting discards a crafting session
// @Summary Cancel crafting
// @Tags sessions
// @Produce json
// @Param sessionID path string true "Session ID"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Router /crafting/sessions/{sessionID} [delete]
func HandleCancelCrafting(svc crafting.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := chi.URLParam(r, "sessionID")

		if err := svc.CancelCrafting(r.Context(), sessionID); err != nil {
			logger.FromContext(r.Context()).Warn(LogMsgCancelFailed, "error", err, "session_id", sessionID)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgSessionCancelledSuccess})
	}
}

package crafting

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/SpiritForge_Go/internal/concurrency"
	"github.com/osse101/SpiritForge_Go/internal/domain"
	"github.com/osse101/SpiritForge_Go/internal/event"
	"github.com/osse101/SpiritForge_Go/internal/identifier"
	"github.com/osse101/SpiritForge_Go/internal/logger"
	"github.com/osse101/SpiritForge_Go/internal/repository"
)

// ComponentView is one aggregated component as shown to a crafter
type ComponentView struct {
	Identifier string `json:"identifier"`
	Label      string `json:"label"`
	Required   int    `json:"required"`
	Available  int    `json:"available"`
}

// RecipeView is a recipe visible to an actor
type RecipeView struct {
	ID             string             `json:"id"`
	Name           string             `json:"name"`
	RecipeType     domain.RecipeType  `json:"recipe_type"`
	IsBasic        bool               `json:"is_basic"`
	State          domain.RecipeState `json:"state"`
	TargetUUID     string             `json:"target_uuid"`
	TargetName     string             `json:"target_name"`
	OutputQuantity int                `json:"output_quantity"`
	Components     []ComponentView    `json:"components"`
	Craftable      bool               `json:"craftable"`
}

// Config tunes the crafting service
type Config struct {
	SessionTTL       time.Duration
	SessionCacheSize int
}

// Service defines the interface for crafting operations
type Service interface {
	ListAvailableRecipes(ctx context.Context, actorID string, recipeType domain.RecipeType) ([]RecipeView, error)
	GetRecipeState(ctx context.Context, actorID, recipeID string) (domain.RecipeState, error)
	CanCraft(ctx context.Context, actorID, recipeID string) (bool, error)

	StartCrafting(ctx context.Context, actorID, recipeID string) (*domain.Assignment, error)
	GetSession(ctx context.Context, sessionID string) (*domain.Assignment, error)
	Assign(ctx context.Context, sessionID, component, itemID string) (*domain.Assignment, error)
	Unassign(ctx context.Context, sessionID, component string) (*domain.Assignment, error)
	CancelCrafting(ctx context.Context, sessionID string) error
	Execute(ctx context.Context, sessionID string) (*CraftPlan, error)

	LearnRecipe(ctx context.Context, actorID, recipeID string) error
	UnlearnRecipe(ctx context.Context, actorID, recipeID string) error
	SetRecipeTypeEnabled(ctx context.Context, actorID string, recipeType domain.RecipeType, enabled bool) error

	BindSpirit(ctx context.Context, actorID, itemID string) (*domain.InventoryItem, error)
}

type service struct {
	repo        Repository
	codec       *identifier.Codec
	lockManager *concurrency.LockManager
	bus         event.Bus
	sessions    *sessionStore
	planner     *planner
	newID       func() string
	now         func() time.Time
}

// NewService creates a new crafting service. bus may be nil.
func NewService(repo Repository, codec *identifier.Codec, lockManager *concurrency.LockManager, bus event.Bus, cfg Config) Service {
	newID := uuid.NewString
	return &service{
		repo:        repo,
		codec:       codec,
		lockManager: lockManager,
		bus:         bus,
		sessions:    newSessionStore(cfg.SessionCacheSize, cfg.SessionTTL),
		planner:     &planner{codec: codec, newID: newID},
		newID:       newID,
		now:         time.Now,
	}
}

// ==================== Lookups ====================

func (s *service) getActor(ctx context.Context, actorID string) (*domain.Actor, error) {
	actor, err := s.repo.GetActor(ctx, actorID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgGetActorFailed, err)
	}
	if actor == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrActorNotFound, actorID)
	}
	return actor, nil
}

func (s *service) getEligibleActor(ctx context.Context, actorID string) (*domain.Actor, error) {
	actor, err := s.getActor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if !actor.Type.CanHoldRecipes() {
		return nil, fmt.Errorf("%w: %s is a %s", domain.ErrActorIneligible, actorID, actor.Type)
	}
	return actor, nil
}

func (s *service) getRecipe(ctx context.Context, recipeID string) (*domain.Recipe, error) {
	recipe, err := s.repo.GetRecipe(ctx, recipeID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgGetRecipeFailed, err)
	}
	if recipe == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrRecipeNotFound, recipeID)
	}
	return recipe, nil
}

func (s *service) getKnowledge(ctx context.Context, actorID string) (*domain.RecipeKnowledge, error) {
	knowledge, err := s.repo.GetRecipeKnowledge(ctx, actorID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgGetKnowledgeFailed, err)
	}
	if knowledge == nil {
		knowledge = domain.NewRecipeKnowledge(actorID)
	}
	return knowledge, nil
}

func (s *service) getInventory(ctx context.Context, actorID string) ([]domain.InventoryItem, error) {
	items, err := s.repo.GetInventory(ctx, actorID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgGetInventoryFailed, err)
	}
	s.annotate(ctx, items)
	return items, nil
}

// annotate parses each item's resource descriptor once. Invalid resources
// are logged and left without an identifier so they never match.
func (s *service) annotate(ctx context.Context, items []domain.InventoryItem) {
	for i := range items {
		id, err := s.codec.FromDescriptor(items[i].Resource)
		if err != nil {
			logger.FromContext(ctx).Debug(LogMsgInvalidItemResource, "item_id", items[i].ID, "error", err)
		}
		items[i].Identifier = id
	}
}

// usableTarget resolves a recipe's target, returning nil when it does not
// resolve or has a type recipes may not produce.
func (s *service) usableTarget(ctx context.Context, recipe *domain.Recipe, cache map[string]*domain.ItemTemplate) (*domain.ItemTemplate, error) {
	if tmpl, ok := cache[recipe.Target.UUID]; ok {
		return tmpl, nil
	}
	tmpl, err := s.repo.GetItemTemplate(ctx, recipe.Target.UUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgGetTemplateFailed, err)
	}
	if tmpl != nil && !domain.AllowedTargetTypes[tmpl.ItemType] {
		tmpl = nil
	}
	if cache != nil {
		cache[recipe.Target.UUID] = tmpl
	}
	return tmpl, nil
}

// ==================== Listing ====================

// ListAvailableRecipes returns known and learnable recipes with a usable
// target and at least one valid component. An empty recipeType lists all.
func (s *service) ListAvailableRecipes(ctx context.Context, actorID string, recipeType domain.RecipeType) ([]RecipeView, error) {
	log := logger.FromContext(ctx)
	log.Info("ListAvailableRecipes called", "actor_id", actorID, "recipe_type", recipeType)

	if recipeType != "" && !recipeType.IsValid() {
		return nil, fmt.Errorf("%w: unknown recipe type %q", domain.ErrInvalidInput, recipeType)
	}

	actor, err := s.getActor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	views := make([]RecipeView, 0)
	if !actor.Type.CanHoldRecipes() {
		return views, nil
	}

	knowledge, err := s.getKnowledge(ctx, actorID)
	if err != nil {
		return nil, err
	}

	var recipes []domain.Recipe
	if recipeType == "" {
		recipes, err = s.repo.GetAllRecipes(ctx)
	} else {
		recipes, err = s.repo.GetRecipesByType(ctx, recipeType)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgGetRecipesFailed, err)
	}

	inventory, err := s.getInventory(ctx, actorID)
	if err != nil {
		return nil, err
	}

	templates := make(map[string]*domain.ItemTemplate)
	for i := range recipes {
		recipe := &recipes[i]
		state := Resolve(actor, recipe, knowledge)
		if state == domain.RecipeUnavailable {
			continue
		}

		target, err := s.usableTarget(ctx, recipe, templates)
		if err != nil {
			return nil, err
		}
		if target == nil || !HasValidComponents(s.codec, recipe.Components) {
			log.Debug(LogMsgRecipeSkipped, "recipe_id", recipe.ID)
			continue
		}

		views = append(views, s.view(ctx, recipe, target, state, inventory))
	}

	log.Info("ListAvailableRecipes completed", "actor_id", actorID, "count", len(views))
	return views, nil
}

func (s *service) view(ctx context.Context, recipe *domain.Recipe, target *domain.ItemTemplate, state domain.RecipeState, inventory []domain.InventoryItem) RecipeView {
	reqs := Aggregate(ctx, s.codec, recipe.Components)
	components := make([]ComponentView, 0, len(reqs))
	for _, req := range reqs.Sorted() {
		components = append(components, ComponentView{
			Identifier: req.Identifier.String(),
			Label:      s.codec.Format(req.Identifier),
			Required:   req.Quantity,
			Available:  MaxAvailable(inventory, req.Identifier),
		})
	}

	output := recipe.Target.Quantity
	if output <= 0 || recipe.RecipeType == domain.RecipeTypeSpirit {
		output = 1
	}

	return RecipeView{
		ID:             recipe.ID,
		Name:           recipe.Name,
		RecipeType:     recipe.RecipeType,
		IsBasic:        recipe.IsBasic,
		State:          state,
		TargetUUID:     target.UUID,
		TargetName:     target.Name,
		OutputQuantity: output,
		Components:     components,
		Craftable:      state == domain.RecipeKnown && CanAfford(reqs, inventory),
	}
}

// GetRecipeState classifies a single (actor, recipe) pair
func (s *service) GetRecipeState(ctx context.Context, actorID, recipeID string) (domain.RecipeState, error) {
	actor, err := s.getActor(ctx, actorID)
	if err != nil {
		return "", err
	}
	recipe, err := s.getRecipe(ctx, recipeID)
	if err != nil {
		return "", err
	}
	knowledge, err := s.getKnowledge(ctx, actorID)
	if err != nil {
		return "", err
	}
	return Resolve(actor, recipe, knowledge), nil
}

// CanCraft reports whether the actor's inventory affords the recipe. Recipes
// without a usable target or valid components are never craftable.
func (s *service) CanCraft(ctx context.Context, actorID, recipeID string) (bool, error) {
	if _, err := s.getActor(ctx, actorID); err != nil {
		return false, err
	}
	recipe, err := s.getRecipe(ctx, recipeID)
	if err != nil {
		return false, err
	}
	target, err := s.usableTarget(ctx, recipe, nil)
	if err != nil {
		return false, err
	}
	reqs := Aggregate(ctx, s.codec, recipe.Components)
	if target == nil || len(reqs) == 0 {
		return false, nil
	}
	inventory, err := s.getInventory(ctx, actorID)
	if err != nil {
		return false, err
	}
	return CanAfford(reqs, inventory), nil
}

// ==================== Sessions ====================

// StartCrafting opens a session for a known, usable recipe
func (s *service) StartCrafting(ctx context.Context, actorID, recipeID string) (*domain.Assignment, error) {
	log := logger.FromContext(ctx)
	log.Info("StartCrafting called", "actor_id", actorID, "recipe_id", recipeID)

	actor, err := s.getEligibleActor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	recipe, err := s.getRecipe(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	knowledge, err := s.getKnowledge(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if state := Resolve(actor, recipe, knowledge); state != domain.RecipeKnown {
		return nil, fmt.Errorf("%w: %s is %s", domain.ErrRecipeLocked, recipeID, state)
	}
	target, err := s.usableTarget(ctx, recipe, nil)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidTarget, recipe.Target.UUID)
	}
	if !HasValidComponents(s.codec, recipe.Components) {
		return nil, fmt.Errorf("%w: recipe %s has no valid components", domain.ErrInvalidInput, recipeID)
	}

	session := &domain.Assignment{
		ID:        s.newID(),
		ActorID:   actorID,
		RecipeID:  recipeID,
		Slots:     make(map[string]string),
		CreatedAt: s.now(),
	}
	s.sessions.Put(session)

	log.Info("Crafting session started", "session_id", session.ID, "actor_id", actorID, "recipe_id", recipeID)
	return session, nil
}

// GetSession returns a copy of a live session
func (s *service) GetSession(_ context.Context, sessionID string) (*domain.Assignment, error) {
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrSessionNotFound, sessionID)
	}
	return session, nil
}

// Assign puts an inventory item into a component slot. The item must be
// owned by the session's actor and match the slot identifier.
func (s *service) Assign(ctx context.Context, sessionID, component, itemID string) (*domain.Assignment, error) {
	release, err := s.lockManager.Acquire(ctx, lockKeySessionPrefix+sessionID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgAcquireLockFailed, err)
	}
	defer release()

	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	recipe, err := s.getRecipe(ctx, session.RecipeID)
	if err != nil {
		return nil, err
	}

	slot, err := s.codec.Parse(component, true)
	if err != nil {
		return nil, err
	}
	if _, ok := Aggregate(ctx, s.codec, recipe.Components)[slot]; !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownComponent, slot)
	}

	inventory, err := s.getInventory(ctx, session.ActorID)
	if err != nil {
		return nil, err
	}
	var item *domain.InventoryItem
	for i := range inventory {
		if inventory[i].ID == itemID {
			item = &inventory[i]
			break
		}
	}
	if item == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrItemNotFound, itemID)
	}
	if item.Identifier == nil || !Matches(*item.Identifier, slot) {
		return nil, fmt.Errorf("%w: %s for %s", domain.ErrResourceMismatch, itemID, slot)
	}

	session.Slots[slot.String()] = itemID
	if !s.sessions.Update(session) {
		return nil, fmt.Errorf("%w: %s", domain.ErrSessionNotFound, sessionID)
	}
	return session, nil
}

// Unassign clears a component slot. Clearing an empty slot is a no-op.
func (s *service) Unassign(ctx context.Context, sessionID, component string) (*domain.Assignment, error) {
	release, err := s.lockManager.Acquire(ctx, lockKeySessionPrefix+sessionID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgAcquireLockFailed, err)
	}
	defer release()

	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	slot, err := s.codec.Parse(component, true)
	if err != nil {
		return nil, err
	}

	delete(session.Slots, slot.String())
	if !s.sessions.Update(session) {
		return nil, fmt.Errorf("%w: %s", domain.ErrSessionNotFound, sessionID)
	}
	return session, nil
}

// CancelCrafting discards a session
func (s *service) CancelCrafting(ctx context.Context, sessionID string) error {
	release, err := s.lockManager.Acquire(ctx, lockKeySessionPrefix+sessionID)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgAcquireLockFailed, err)
	}
	defer release()

	if !s.sessions.Remove(sessionID) {
		return fmt.Errorf("%w: %s", domain.ErrSessionNotFound, sessionID)
	}
	logger.FromContext(ctx).Info("Crafting session cancelled", "session_id", sessionID)
	return nil
}

// ==================== Execution ====================

// Execute applies a session under the session lock and then the actor's
// inventory lock, always in that order. The plan is computed in full before
// any mutation; a failed execution keeps the session so the caller can fix
// it and retry.
func (s *service) Execute(ctx context.Context, sessionID string) (*CraftPlan, error) {
	log := logger.FromContext(ctx)
	log.Info("Execute called", "session_id", sessionID)

	releaseSession, err := s.lockManager.Acquire(ctx, lockKeySessionPrefix+sessionID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgAcquireLockFailed, err)
	}
	defer releaseSession()

	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	release, err := s.lockManager.Acquire(ctx, lockKeyActorPrefix+session.ActorID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgAcquireLockFailed, err)
	}
	defer release()

	// Re-read under the actor lock: the session may have expired while waiting.
	session, err = s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	recipe, err := s.getRecipe(ctx, session.RecipeID)
	if err != nil {
		return nil, err
	}

	plan, err := s.execute(ctx, session, recipe)
	if err != nil {
		log.Warn(LogMsgCraftRejected, "session_id", sessionID, "recipe_id", recipe.ID, "error", err)
		s.publish(ctx, event.NewCraftRejectedEvent(session.ActorID, recipe.ID, string(recipe.RecipeType), rejectionReason(err)))
		return nil, err
	}

	s.sessions.Remove(sessionID)

	deleted := 0
	for _, c := range plan.Consumptions {
		if c.Delete {
			deleted++
		}
	}
	s.publish(ctx, event.NewItemCraftedEvent(event.ItemCraftedPayloadV1{
		ActorID:        plan.ActorID,
		RecipeID:       plan.RecipeID,
		RecipeType:     string(plan.RecipeType),
		OutputQuantity: plan.OutputQuantity,
		ItemsConsumed:  len(plan.Consumptions),
		ItemsDeleted:   deleted,
		Grade:          plan.Grade,
	}))

	log.Info(LogMsgCraftCompleted, "session_id", sessionID, "recipe_id", recipe.ID, "output", plan.OutputQuantity)
	return plan, nil
}

func (s *service) execute(ctx context.Context, session *domain.Assignment, recipe *domain.Recipe) (*CraftPlan, error) {
	actor, err := s.getEligibleActor(ctx, session.ActorID)
	if err != nil {
		return nil, err
	}
	knowledge, err := s.getKnowledge(ctx, session.ActorID)
	if err != nil {
		return nil, err
	}
	if state := Resolve(actor, recipe, knowledge); state != domain.RecipeKnown {
		return nil, fmt.Errorf("%w: %s is %s", domain.ErrRecipeLocked, recipe.ID, state)
	}

	target, err := s.repo.GetItemTemplate(ctx, recipe.Target.UUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgGetTemplateFailed, err)
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgBeginTxFailed, err)
	}
	defer repository.SafeRollback(ctx, tx)

	inventory, err := tx.GetInventoryForUpdate(ctx, session.ActorID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgGetInventoryFailed, err)
	}
	s.annotate(ctx, inventory)

	plan, err := s.planner.Plan(ctx, session.ActorID, recipe, target, session.Slots, inventory)
	if err != nil {
		return nil, err
	}

	if err := applyPlan(ctx, tx, plan); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgCommitFailed, err)
	}
	return plan, nil
}

// applyPlan issues consumptions then creations. Each failure names the step
// so a partial application can be diagnosed.
func applyPlan(ctx context.Context, tx repository.CraftingTx, plan *CraftPlan) error {
	for _, c := range plan.Consumptions {
		var err error
		if c.Delete {
			err = tx.DeleteItem(ctx, c.ItemID)
		} else {
			err = tx.UpdateItemQuantity(ctx, c.ItemID, c.NewQuantity)
		}
		if err != nil {
			return fmt.Errorf(ErrMsgApplyConsumptionFmt, c.ItemID, err)
		}
	}
	for _, c := range plan.Creations {
		var err error
		if c.StackID != "" {
			err = tx.UpdateItemQuantity(ctx, c.StackID, c.Item.Quantity)
		} else {
			err = tx.CreateItem(ctx, c.Item)
		}
		if err != nil {
			return fmt.Errorf(ErrMsgApplyCreationFmt, c.Item.Name, err)
		}
	}
	return nil
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrIncompleteAssignment):
		return ReasonIncompleteAssignment
	case errors.Is(err, domain.ErrInsufficientResources):
		return ReasonInsufficientResources
	case errors.Is(err, domain.ErrInvalidTarget):
		return ReasonInvalidTarget
	case errors.Is(err, domain.ErrNoEligibleGrade):
		return ReasonNoEligibleGrade
	case errors.Is(err, domain.ErrRecipeLocked):
		return ReasonRecipeLocked
	case errors.Is(err, domain.ErrResourceMismatch):
		return ReasonResourceMismatch
	default:
		return ReasonStorage
	}
}

// ==================== Knowledge ====================

// LearnRecipe adds a recipe to the actor's learned set. Idempotent.
func (s *service) LearnRecipe(ctx context.Context, actorID, recipeID string) error {
	log := logger.FromContext(ctx)
	log.Info("LearnRecipe called", "actor_id", actorID, "recipe_id", recipeID)

	if _, err := s.getEligibleActor(ctx, actorID); err != nil {
		return err
	}
	if _, err := s.getRecipe(ctx, recipeID); err != nil {
		return err
	}
	if err := s.repo.LearnRecipe(ctx, actorID, recipeID); err != nil {
		return fmt.Errorf("failed to learn recipe: %w", err)
	}

	s.publish(ctx, event.NewRecipeLearnedEvent(actorID, recipeID))
	return nil
}

// UnlearnRecipe removes a recipe from the actor's learned set. Idempotent.
func (s *service) UnlearnRecipe(ctx context.Context, actorID, recipeID string) error {
	log := logger.FromContext(ctx)
	log.Info("UnlearnRecipe called", "actor_id", actorID, "recipe_id", recipeID)

	if _, err := s.getEligibleActor(ctx, actorID); err != nil {
		return err
	}
	if _, err := s.getRecipe(ctx, recipeID); err != nil {
		return err
	}
	if err := s.repo.UnlearnRecipe(ctx, actorID, recipeID); err != nil {
		return fmt.Errorf("failed to unlearn recipe: %w", err)
	}

	s.publish(ctx, event.NewRecipeUnlearnedEvent(actorID, recipeID))
	return nil
}

// SetRecipeTypeEnabled sets the actor's opt-in flag for a recipe type
func (s *service) SetRecipeTypeEnabled(ctx context.Context, actorID string, recipeType domain.RecipeType, enabled bool) error {
	logger.FromContext(ctx).Info("SetRecipeTypeEnabled called", "actor_id", actorID, "recipe_type", recipeType, "enabled", enabled)

	if !recipeType.IsValid() {
		return fmt.Errorf("%w: unknown recipe type %q", domain.ErrInvalidInput, recipeType)
	}
	if _, err := s.getEligibleActor(ctx, actorID); err != nil {
		return err
	}
	if err := s.repo.SetRecipeTypeEnabled(ctx, actorID, recipeType, enabled); err != nil {
		return fmt.Errorf("failed to set recipe type: %w", err)
	}

	s.publish(ctx, event.NewRecipeTypeSetEvent(actorID, string(recipeType), enabled))
	return nil
}

// ==================== Binding ====================

// BindSpirit consumes one spirit item and creates the grade-scaled copy of
// its target in the same transaction.
func (s *service) BindSpirit(ctx context.Context, actorID, itemID string) (*domain.InventoryItem, error) {
	log := logger.FromContext(ctx)
	log.Info("BindSpirit called", "actor_id", actorID, "item_id", itemID)

	if _, err := s.getEligibleActor(ctx, actorID); err != nil {
		return nil, err
	}

	release, err := s.lockManager.Acquire(ctx, lockKeyActorPrefix+actorID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgAcquireLockFailed, err)
	}
	defer release()

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgBeginTxFailed, err)
	}
	defer repository.SafeRollback(ctx, tx)

	inventory, err := tx.GetInventoryForUpdate(ctx, actorID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgGetInventoryFailed, err)
	}
	var spirit *domain.InventoryItem
	for i := range inventory {
		if inventory[i].ID == itemID {
			spirit = &inventory[i]
			break
		}
	}
	if spirit == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrItemNotFound, itemID)
	}
	if spirit.Spirit == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotSpiritItem, itemID)
	}

	target, err := s.repo.GetItemTemplate(ctx, spirit.Spirit.TargetUUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgGetTemplateFailed, err)
	}
	if target == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidTarget, spirit.Spirit.TargetUUID)
	}

	if spirit.Quantity > 1 {
		err = tx.UpdateItemQuantity(ctx, spirit.ID, spirit.Quantity-1)
	} else {
		err = tx.DeleteItem(ctx, spirit.ID)
	}
	if err != nil {
		return nil, fmt.Errorf(ErrMsgApplyConsumptionFmt, spirit.ID, err)
	}

	bound := boundItem(s.newID(), actorID, spirit.Spirit, target)
	if err := tx.CreateItem(ctx, bound); err != nil {
		return nil, fmt.Errorf(ErrMsgApplyCreationFmt, bound.Name, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgCommitFailed, err)
	}

	s.publish(ctx, event.NewSpiritBoundEvent(actorID, spirit.ID, bound.ID, target.UUID, spirit.Spirit.Grade))
	log.Info(LogMsgSpiritBound, "actor_id", actorID, "spirit_id", spirit.ID, "bound_item_id", bound.ID, "grade", spirit.Spirit.Grade)
	return &bound, nil
}

func (s *service) publish(ctx context.Context, evt event.Event) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Publish(ctx, evt); err != nil {
		logger.FromContext(ctx).Warn(LogMsgPublishFailed, "event_type", evt.Type, "error", err)
	}
}

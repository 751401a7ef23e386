package repository

import (
	"context"

	"github.com/osse101/SpiritForge_Go/internal/domain"
)

// Crafting defines the persistence the crafting core consumes. Lookups
// return (nil, nil) when the row does not exist.
type Crafting interface {
	GetActor(ctx context.Context, actorID string) (*domain.Actor, error)
	GetInventory(ctx context.Context, actorID string) ([]domain.InventoryItem, error)
	GetItemTemplate(ctx context.Context, uuid string) (*domain.ItemTemplate, error)
	GetRecipe(ctx context.Context, recipeID string) (*domain.Recipe, error)
	GetRecipesByType(ctx context.Context, recipeType domain.RecipeType) ([]domain.Recipe, error)
	GetAllRecipes(ctx context.Context) ([]domain.Recipe, error)

	// GetRecipeKnowledge never returns nil for an existing actor; knowledge
	// is created lazily.
	GetRecipeKnowledge(ctx context.Context, actorID string) (*domain.RecipeKnowledge, error)
	LearnRecipe(ctx context.Context, actorID, recipeID string) error
	UnlearnRecipe(ctx context.Context, actorID, recipeID string) error
	SetRecipeTypeEnabled(ctx context.Context, actorID string, recipeType domain.RecipeType, enabled bool) error

	// BeginTx starts a transaction for inventory mutation
	BeginTx(ctx context.Context) (CraftingTx, error)
}

// CraftingTx is an inventory transaction. GetInventoryForUpdate locks the
// actor's item rows until commit or rollback.
type CraftingTx interface {
	Tx
	GetInventoryForUpdate(ctx context.Context, actorID string) ([]domain.InventoryItem, error)
	UpdateItemQuantity(ctx context.Context, itemID string, quantity int) error
	DeleteItem(ctx context.Context, itemID string) error
	CreateItem(ctx context.Context, item domain.InventoryItem) error
}

// Catalog defines persistence for syncing the recipe catalog file
type Catalog interface {
	UpsertItemTemplate(ctx context.Context, tmpl domain.ItemTemplate) error
	UpsertRecipe(ctx context.Context, recipe domain.Recipe) error
	GetAllRecipes(ctx context.Context) ([]domain.Recipe, error)
	GetSyncMetadata(ctx context.Context, configName string) (*domain.SyncMetadata, error)
	UpsertSyncMetadata(ctx context.Context, metadata *domain.SyncMetadata) error
}

// Actors defines persistence for actor registration and inventory seeding
type Actors interface {
	UpsertActor(ctx context.Context, actor domain.Actor) error
	AddItem(ctx context.Context, item domain.InventoryItem) error
}

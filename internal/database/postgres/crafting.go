package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/SpiritForge_Go/internal/domain"
	"github.com/osse101/SpiritForge_Go/internal/repository"
)

const itemColumns = `item_id, actor_id, name, item_type, subtype, quantity, description, rarity,
	resource, origin_recipe_id, uses, spirit, stats`

const recipeColumns = `recipe_id, name, recipe_type, is_basic, target_uuid, target_quantity, components, created_at`

// CraftingRepository implements the crafting, catalog and actor repositories for PostgreSQL
type CraftingRepository struct {
	db *pgxpool.Pool
}

// NewCraftingRepository creates a new CraftingRepository
func NewCraftingRepository(db *pgxpool.Pool) *CraftingRepository {
	return &CraftingRepository{db: db}
}

// CraftingTx implements repository.CraftingTx
type CraftingTx struct {
	tx pgx.Tx
}

// BeginTx starts a new transaction
func (r *CraftingRepository) BeginTx(ctx context.Context) (repository.CraftingTx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	return &CraftingTx{tx: tx}, nil
}

// Commit commits the transaction
func (t *CraftingTx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

// Rollback rolls back the transaction
func (t *CraftingTx) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}

// ==================== Actors ====================

// GetActor retrieves an actor, or nil when it does not exist
func (r *CraftingRepository) GetActor(ctx context.Context, actorID string) (*domain.Actor, error) {
	var actor domain.Actor
	err := r.db.QueryRow(ctx,
		`SELECT actor_id, name, actor_type, created_at FROM actors WHERE actor_id = $1`, actorID,
	).Scan(&actor.ID, &actor.Name, &actor.Type, &actor.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetActor, err)
	}
	return &actor, nil
}

// ==================== Inventory ====================

// GetInventory returns every item owned by an actor
func (r *CraftingRepository) GetInventory(ctx context.Context, actorID string) ([]domain.InventoryItem, error) {
	items, err := queryItems(ctx, r.db, `SELECT `+itemColumns+` FROM actor_items WHERE actor_id = $1 ORDER BY created_at, item_id`, actorID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetInventory, err)
	}
	return items, nil
}

// GetInventoryForUpdate locks the actor row and its items until the
// transaction ends. Locking the actor also serializes item inserts.
func (t *CraftingTx) GetInventoryForUpdate(ctx context.Context, actorID string) ([]domain.InventoryItem, error) {
	var locked string
	err := t.tx.QueryRow(ctx, `SELECT actor_id FROM actors WHERE actor_id = $1 FOR UPDATE`, actorID).Scan(&locked)
	if err != nil && !isNoRows(err) {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToLockActor, err)
	}

	items, err := queryItems(ctx, t.tx, `SELECT `+itemColumns+` FROM actor_items WHERE actor_id = $1 ORDER BY created_at, item_id FOR UPDATE`, actorID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetInventoryForUpdate, err)
	}
	return items, nil
}

// UpdateItemQuantity sets an item's quantity
func (t *CraftingTx) UpdateItemQuantity(ctx context.Context, itemID string, quantity int) error {
	tag, err := t.tx.Exec(ctx, `UPDATE actor_items SET quantity = $2 WHERE item_id = $1`, itemID, quantity)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToUpdateItemQuantity, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", domain.ErrItemNotFound, itemID)
	}
	return nil
}

// DeleteItem removes an item
func (t *CraftingTx) DeleteItem(ctx context.Context, itemID string) error {
	tag, err := t.tx.Exec(ctx, `DELETE FROM actor_items WHERE item_id = $1`, itemID)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToDeleteItem, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", domain.ErrItemNotFound, itemID)
	}
	return nil
}

// CreateItem inserts a new item
func (t *CraftingTx) CreateItem(ctx context.Context, item domain.InventoryItem) error {
	return insertItem(ctx, t.tx, item)
}

func insertItem(ctx context.Context, q querier, item domain.InventoryItem) error {
	resource, err := nullableJSON(item.Resource)
	if err != nil {
		return err
	}
	uses, err := nullableJSON(item.Uses)
	if err != nil {
		return err
	}
	spirit, err := nullableJSON(item.Spirit)
	if err != nil {
		return err
	}
	stats, err := nullableJSON(item.Stats)
	if err != nil {
		return err
	}

	_, err = q.Exec(ctx, `
		INSERT INTO actor_items (`+itemColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		item.ID, item.ActorID, item.Name, item.ItemType, item.Subtype, item.Quantity, item.Description,
		item.Rarity, resource, item.OriginRecipeID, uses, spirit, stats)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToInsertItem, err)
	}
	return nil
}

func queryItems(ctx context.Context, q querier, sql string, args ...any) ([]domain.InventoryItem, error) {
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, scanItem)
}

func scanItem(row pgx.CollectableRow) (domain.InventoryItem, error) {
	var item domain.InventoryItem
	var resource, uses, spirit, stats []byte
	if err := row.Scan(&item.ID, &item.ActorID, &item.Name, &item.ItemType, &item.Subtype, &item.Quantity,
		&item.Description, &item.Rarity, &resource, &item.OriginRecipeID, &uses, &spirit, &stats); err != nil {
		return item, fmt.Errorf("%s: %w", ErrMsgFailedToScanItem, err)
	}

	var err error
	if item.Resource, err = scanNullableJSON[domain.ResourceDescriptor](resource); err != nil {
		return item, err
	}
	if item.Uses, err = scanNullableJSON[domain.ItemUses](uses); err != nil {
		return item, err
	}
	if item.Spirit, err = scanNullableJSON[domain.SpiritData](spirit); err != nil {
		return item, err
	}
	if item.Stats, err = scanNullableJSON[domain.StatBlock](stats); err != nil {
		return item, err
	}
	return item, nil
}

// ==================== Templates & Recipes ====================

// GetItemTemplate resolves a target uuid, or nil when it does not exist
func (r *CraftingRepository) GetItemTemplate(ctx context.Context, uuid string) (*domain.ItemTemplate, error) {
	var tmpl domain.ItemTemplate
	var stats []byte
	err := r.db.QueryRow(ctx, `
		SELECT template_uuid, name, description, item_type, rarity, stats
		FROM item_templates WHERE template_uuid = $1`, uuid,
	).Scan(&tmpl.UUID, &tmpl.Name, &tmpl.Description, &tmpl.ItemType, &tmpl.Rarity, &stats)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetTemplate, err)
	}
	if len(stats) > 0 {
		if err := json.Unmarshal(stats, &tmpl.Stats); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToUnmarshalStats, err)
		}
	}
	return &tmpl, nil
}

// GetRecipe retrieves a recipe, or nil when it does not exist
func (r *CraftingRepository) GetRecipe(ctx context.Context, recipeID string) (*domain.Recipe, error) {
	recipes, err := r.queryRecipes(ctx, `SELECT `+recipeColumns+` FROM recipes WHERE recipe_id = $1`, recipeID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetRecipe, err)
	}
	if len(recipes) == 0 {
		return nil, nil
	}
	return &recipes[0], nil
}

// GetRecipesByType returns all recipes of one type
func (r *CraftingRepository) GetRecipesByType(ctx context.Context, recipeType domain.RecipeType) ([]domain.Recipe, error) {
	recipes, err := r.queryRecipes(ctx, `SELECT `+recipeColumns+` FROM recipes WHERE recipe_type = $1 ORDER BY recipe_id`, recipeType)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryRecipes, err)
	}
	return recipes, nil
}

// GetAllRecipes returns every recipe
func (r *CraftingRepository) GetAllRecipes(ctx context.Context) ([]domain.Recipe, error) {
	recipes, err := r.queryRecipes(ctx, `SELECT `+recipeColumns+` FROM recipes ORDER BY recipe_id`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryRecipes, err)
	}
	return recipes, nil
}

func (r *CraftingRepository) queryRecipes(ctx context.Context, sql string, args ...any) ([]domain.Recipe, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Recipe, error) {
		var recipe domain.Recipe
		var components []byte
		if err := row.Scan(&recipe.ID, &recipe.Name, &recipe.RecipeType, &recipe.IsBasic,
			&recipe.Target.UUID, &recipe.Target.Quantity, &components, &recipe.CreatedAt); err != nil {
			return recipe, err
		}
		if err := json.Unmarshal(components, &recipe.Components); err != nil {
			return recipe, fmt.Errorf("%s: %w", ErrMsgFailedToUnmarshalComponents, err)
		}
		return recipe, nil
	})
}

// ==================== Knowledge ====================

// GetRecipeKnowledge returns the learned set and type flags of an actor
func (r *CraftingRepository) GetRecipeKnowledge(ctx context.Context, actorID string) (*domain.RecipeKnowledge, error) {
	knowledge := domain.NewRecipeKnowledge(actorID)

	rows, err := r.db.Query(ctx, `SELECT recipe_id FROM actor_recipe_knowledge WHERE actor_id = $1`, actorID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryLearnedRecipes, err)
	}
	learned, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryLearnedRecipes, err)
	}
	for _, id := range learned {
		knowledge.Learn(id)
	}

	rows, err = r.db.Query(ctx, `SELECT recipe_type, enabled FROM actor_recipe_settings WHERE actor_id = $1`, actorID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryRecipeSettings, err)
	}
	defer rows.Close()
	for rows.Next() {
		var recipeType domain.RecipeType
		var enabled bool
		if err := rows.Scan(&recipeType, &enabled); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryRecipeSettings, err)
		}
		knowledge.SetEnabled(recipeType, enabled)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryRecipeSettings, err)
	}
	return knowledge, nil
}

// LearnRecipe adds a recipe to the learned set. Idempotent.
func (r *CraftingRepository) LearnRecipe(ctx context.Context, actorID, recipeID string) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO actor_recipe_knowledge (actor_id, recipe_id) VALUES ($1, $2)
		ON CONFLICT (actor_id, recipe_id) DO NOTHING`, actorID, recipeID)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToLearnRecipe, err)
	}
	return nil
}

// UnlearnRecipe removes a recipe from the learned set. Idempotent.
func (r *CraftingRepository) UnlearnRecipe(ctx context.Context, actorID, recipeID string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM actor_recipe_knowledge WHERE actor_id = $1 AND recipe_id = $2`, actorID, recipeID)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToUnlearnRecipe, err)
	}
	return nil
}

// SetRecipeTypeEnabled upserts the opt-in flag of a recipe type
func (r *CraftingRepository) SetRecipeTypeEnabled(ctx context.Context, actorID string, recipeType domain.RecipeType, enabled bool) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO actor_recipe_settings (actor_id, recipe_type, enabled) VALUES ($1, $2, $3)
		ON CONFLICT (actor_id, recipe_type) DO UPDATE SET enabled = EXCLUDED.enabled`,
		actorID, recipeType, enabled)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToSetRecipeType, err)
	}
	return nil
}

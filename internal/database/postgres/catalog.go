package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/osse101/SpiritForge_Go/internal/domain"
)

// UpsertItemTemplate inserts or replaces a recipe target template
func (r *CraftingRepository) UpsertItemTemplate(ctx context.Context, tmpl domain.ItemTemplate) error {
	stats, err := json.Marshal(tmpl.Stats)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToMarshalStats, err)
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO item_templates (template_uuid, name, description, item_type, rarity, stats)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (template_uuid) DO UPDATE SET
			name = EXCLUDED.name,
			description = EXCLUDED.description,
			item_type = EXCLUDED.item_type,
			rarity = EXCLUDED.rarity,
			stats = EXCLUDED.stats,
			updated_at = NOW()`,
		tmpl.UUID, tmpl.Name, tmpl.Description, tmpl.ItemType, tmpl.Rarity, stats)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToUpsertTemplate, err)
	}
	return nil
}

// UpsertRecipe inserts or replaces a recipe. Components are stored as given.
func (r *CraftingRepository) UpsertRecipe(ctx context.Context, recipe domain.Recipe) error {
	components := recipe.Components
	if components == nil {
		components = []domain.RecipeComponent{}
	}
	data, err := json.Marshal(components)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToMarshalComponents, err)
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO recipes (recipe_id, name, recipe_type, is_basic, target_uuid, target_quantity, components)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (recipe_id) DO UPDATE SET
			name = EXCLUDED.name,
			recipe_type = EXCLUDED.recipe_type,
			is_basic = EXCLUDED.is_basic,
			target_uuid = EXCLUDED.target_uuid,
			target_quantity = EXCLUDED.target_quantity,
			components = EXCLUDED.components,
			updated_at = NOW()`,
		recipe.ID, recipe.Name, recipe.RecipeType, recipe.IsBasic, recipe.Target.UUID, recipe.Target.Quantity, data)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToUpsertRecipe, err)
	}
	return nil
}

// GetSyncMetadata retrieves sync metadata for a config file, or nil if never synced
func (r *CraftingRepository) GetSyncMetadata(ctx context.Context, configName string) (*domain.SyncMetadata, error) {
	var meta domain.SyncMetadata
	err := r.db.QueryRow(ctx, `
		SELECT config_name, last_sync_time, file_hash, file_mod_time
		FROM sync_metadata WHERE config_name = $1`, configName,
	).Scan(&meta.ConfigName, &meta.LastSyncTime, &meta.FileHash, &meta.FileModTime)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetSyncMetadata, err)
	}
	return &meta, nil
}

// UpsertSyncMetadata records the last sync of a config file
func (r *CraftingRepository) UpsertSyncMetadata(ctx context.Context, metadata *domain.SyncMetadata) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO sync_metadata (config_name, last_sync_time, file_hash, file_mod_time)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (config_name) DO UPDATE SET
			last_sync_time = EXCLUDED.last_sync_time,
			file_hash = EXCLUDED.file_hash,
			file_mod_time = EXCLUDED.file_mod_time`,
		metadata.ConfigName, metadata.LastSyncTime, metadata.FileHash, metadata.FileModTime)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToUpsertSyncMetadata, err)
	}
	return nil
}

package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/osse101/SpiritForge_Go/internal/config"
	"github.com/osse101/SpiritForge_Go/internal/crafting"
	"github.com/osse101/SpiritForge_Go/internal/identifier"
	"github.com/osse101/SpiritForge_Go/internal/metrics"
	"github.com/osse101/SpiritForge_Go/internal/repository"
	"github.com/osse101/SpiritForge_Go/internal/validation"
)

// LoadCodec builds the identifier codec from the resource vocabulary file.
// A missing file falls back to the built-in vocabulary; a malformed one is an error.
func LoadCodec(cfg *config.Config) (*identifier.Codec, error) {
	slog.Info(LogMsgLoadingResourceSchema, "path", cfg.ResourceSchemaPath)

	schema, err := identifier.LoadSchema(cfg.ResourceSchemaPath)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		slog.Warn(LogMsgResourceSchemaFallback, "path", cfg.ResourceSchemaPath)
		schema = identifier.DefaultSchema()
	case err != nil:
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedLoadResourceSchema, err)
	}

	slog.Info(LogMsgResourceSchemaLoaded,
		"creature_types", len(schema.CreatureTypes),
		"gems", len(schema.Gems),
		"essences", len(schema.Essences),
		"monster_parts", len(schema.MonsterParts))

	return identifier.NewCodec(schema), nil
}

// SyncCatalog loads, validates, and syncs the recipe catalog to the database.
// Unchanged files are detected by hash and skipped.
func SyncCatalog(ctx context.Context, cfg *config.Config, codec *identifier.Codec, repo repository.Catalog) (*crafting.SyncResult, error) {
	slog.Info(LogMsgSyncingCatalog, "path", cfg.CatalogPath)
	loader := crafting.NewCatalogLoader(codec, validation.NewSchemaValidator(), cfg.CatalogSchemaPath)

	catalog, err := loader.Load(cfg.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedLoadCatalog, err)
	}

	warnings, err := loader.Validate(catalog)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgInvalidCatalog, err)
	}
	for _, w := range warnings {
		slog.Warn(LogMsgCatalogWarning, "recipe_id", w.RecipeID, "message", w.Message)
	}

	result, err := loader.SyncToDatabase(ctx, catalog, repo, cfg.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedSyncCatalog, err)
	}

	metrics.CatalogRecipes.Set(float64(len(catalog.Recipes)))

	if result.Skipped {
		slog.Info(LogMsgCatalogUnchanged)
	} else {
		slog.Info(LogMsgCatalogSynced,
			"templates", result.TemplatesUpserted,
			"inserted", result.RecipesInserted,
			"updated", result.RecipesUpdated,
			"skipped", result.RecipesSkipped)
	}
	if len(result.OrphanedRecipes) > 0 {
		slog.Warn(LogMsgOrphanedRecipes, "recipe_ids", result.OrphanedRecipes)
	}

	return result, nil
}

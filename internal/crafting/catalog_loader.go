package crafting

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"reflect"
	"sort"
	"time"

	"github.com/osse101/SpiritForge_Go/internal/domain"
	"github.com/osse101/SpiritForge_Go/internal/identifier"
	"github.com/osse101/SpiritForge_Go/internal/logger"
	"github.com/osse101/SpiritForge_Go/internal/repository"
	"github.com/osse101/SpiritForge_Go/internal/validation"
)

// Sentinel errors for the catalog loader
var (
	ErrDuplicateRecipeID   = errors.New("duplicate recipe id")
	ErrDuplicateTemplateID = errors.New("duplicate template uuid")
	ErrInvalidConfig       = errors.New("invalid configuration")
)

// Catalog is the on-disk recipe catalog
type Catalog struct {
	Version     string                `json:"version"`
	Description string                `json:"description"`
	Templates   []domain.ItemTemplate `json:"templates"`
	Recipes     []domain.Recipe       `json:"recipes"`
}

// CatalogWarning is a non-fatal catalog problem. Such recipes are still
// synced but are filtered out of listings.
type CatalogWarning struct {
	RecipeID string `json:"recipe_id"`
	Message  string `json:"message"`
}

// SyncResult contains the result of syncing the catalog to the store
type SyncResult struct {
	TemplatesUpserted int
	RecipesInserted   int
	RecipesUpdated    int
	RecipesSkipped    int
	OrphanedRecipes   []string
	Skipped           bool
}

// CatalogLoader loads, validates and syncs the recipe catalog
type CatalogLoader interface {
	Load(path string) (*Catalog, error)
	Validate(catalog *Catalog) ([]CatalogWarning, error)
	SyncToDatabase(ctx context.Context, catalog *Catalog, repo repository.Catalog, path string) (*SyncResult, error)
}

type catalogLoader struct {
	codec      *identifier.Codec
	validator  validation.SchemaValidator
	schemaPath string
}

// NewCatalogLoader creates a loader. schemaPath may be empty to skip JSON
// schema validation.
func NewCatalogLoader(codec *identifier.Codec, validator validation.SchemaValidator, schemaPath string) CatalogLoader {
	return &catalogLoader{
		codec:      codec,
		validator:  validator,
		schemaPath: schemaPath,
	}
}

// Load reads the catalog file, checks it against the JSON schema, and parses it
func (l *catalogLoader) Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	if l.validator != nil && l.schemaPath != "" {
		if err := l.validator.ValidateBytes(data, l.schemaPath); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	}

	var catalog Catalog
	if err := json.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	return &catalog, nil
}

// Validate rejects duplicate ids and reports recipes that cannot be listed
func (l *catalogLoader) Validate(catalog *Catalog) ([]CatalogWarning, error) {
	if catalog == nil {
		return nil, fmt.Errorf("%w: catalog is nil", ErrInvalidConfig)
	}

	templates := make(map[string]domain.ItemTemplate, len(catalog.Templates))
	for i, tmpl := range catalog.Templates {
		if tmpl.UUID == "" {
			return nil, fmt.Errorf("%w: template at index %d has empty uuid", ErrInvalidConfig, i)
		}
		if _, dup := templates[tmpl.UUID]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateTemplateID, tmpl.UUID)
		}
		templates[tmpl.UUID] = tmpl
	}

	var warnings []CatalogWarning
	seen := make(map[string]bool, len(catalog.Recipes))
	for i, recipe := range catalog.Recipes {
		if recipe.ID == "" {
			return nil, fmt.Errorf("%w: recipe at index %d has empty id", ErrInvalidConfig, i)
		}
		if seen[recipe.ID] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateRecipeID, recipe.ID)
		}
		seen[recipe.ID] = true

		if !recipe.RecipeType.IsValid() {
			return nil, fmt.Errorf("%w: recipe %s has unknown type %q", ErrInvalidConfig, recipe.ID, recipe.RecipeType)
		}

		tmpl, ok := templates[recipe.Target.UUID]
		switch {
		case !ok:
			warnings = append(warnings, CatalogWarning{RecipeID: recipe.ID, Message: "target " + recipe.Target.UUID + " is not a catalog template"})
		case !domain.AllowedTargetTypes[tmpl.ItemType]:
			warnings = append(warnings, CatalogWarning{RecipeID: recipe.ID, Message: "target type " + string(tmpl.ItemType) + " is not craftable"})
		}

		for _, c := range recipe.Components {
			if _, err := l.codec.Parse(c.Identifier, true); err != nil {
				msg := "invalid component " + c.Identifier
				if suggestion, ok := l.codec.Suggest(c.Identifier); ok {
					msg += " (did you mean " + suggestion + "?)"
				}
				warnings = append(warnings, CatalogWarning{RecipeID: recipe.ID, Message: msg})
			}
		}
		if !HasValidComponents(l.codec, recipe.Components) {
			warnings = append(warnings, CatalogWarning{RecipeID: recipe.ID, Message: "no valid components"})
		}
	}
	return warnings, nil
}

// SyncToDatabase upserts templates and recipes when the file changed since
// the last recorded sync.
func (l *catalogLoader) SyncToDatabase(ctx context.Context, catalog *Catalog, repo repository.Catalog, path string) (*SyncResult, error) {
	log := logger.FromContext(ctx)

	changed, err := hasFileChanged(ctx, repo, path, MetadataNameCatalog)
	if err != nil {
		return nil, fmt.Errorf("failed to check catalog file change: %w", err)
	}
	if !changed {
		log.Info("Catalog file unchanged, skipping sync")
		return &SyncResult{Skipped: true}, nil
	}

	result := &SyncResult{OrphanedRecipes: make([]string, 0)}

	for _, tmpl := range catalog.Templates {
		if err := repo.UpsertItemTemplate(ctx, tmpl); err != nil {
			return nil, fmt.Errorf("failed to upsert template '%s': %w", tmpl.UUID, err)
		}
		result.TemplatesUpserted++
	}

	existing, err := repo.GetAllRecipes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get existing recipes: %w", err)
	}
	existingByID := make(map[string]domain.Recipe, len(existing))
	for _, r := range existing {
		existingByID[r.ID] = r
	}

	seen := make(map[string]bool, len(catalog.Recipes))
	for _, recipe := range catalog.Recipes {
		seen[recipe.ID] = true
		current, ok := existingByID[recipe.ID]
		if ok && recipesEqual(current, recipe) {
			result.RecipesSkipped++
			continue
		}
		if err := repo.UpsertRecipe(ctx, recipe); err != nil {
			return nil, fmt.Errorf("failed to upsert recipe '%s': %w", recipe.ID, err)
		}
		if ok {
			result.RecipesUpdated++
			log.Info("Updated recipe", "recipe_id", recipe.ID)
		} else {
			result.RecipesInserted++
			log.Info("Inserted recipe", "recipe_id", recipe.ID)
		}
	}

	for id := range existingByID {
		if !seen[id] {
			result.OrphanedRecipes = append(result.OrphanedRecipes, id)
		}
	}
	sort.Strings(result.OrphanedRecipes)
	if len(result.OrphanedRecipes) > 0 {
		log.Warn("Found orphaned recipes in database (in DB but not in catalog)", "count", len(result.OrphanedRecipes), "recipes", result.OrphanedRecipes)
	}

	if err := updateSyncMetadata(ctx, repo, path, MetadataNameCatalog); err != nil {
		log.Warn("Failed to update catalog sync metadata", "error", err)
	}

	log.Info("Catalog sync completed",
		"templates_upserted", result.TemplatesUpserted,
		"recipes_inserted", result.RecipesInserted,
		"recipes_updated", result.RecipesUpdated,
		"recipes_skipped", result.RecipesSkipped)
	return result, nil
}

func recipesEqual(a, b domain.Recipe) bool {
	a.CreatedAt, b.CreatedAt = time.Time{}, time.Time{}
	return reflect.DeepEqual(a, b)
}

func fileFingerprint(path string) (string, time.Time, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to stat config file: %w", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to read config file: %w", err)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), info.ModTime(), nil
}

func hasFileChanged(ctx context.Context, repo repository.Catalog, path, metadataName string) (bool, error) {
	hash, _, err := fileFingerprint(path)
	if err != nil {
		return false, err
	}
	meta, err := repo.GetSyncMetadata(ctx, metadataName)
	if err != nil {
		return false, err
	}
	if meta == nil {
		return true, nil
	}
	return meta.FileHash != hash, nil
}

func updateSyncMetadata(ctx context.Context, repo repository.Catalog, path, metadataName string) error {
	hash, modTime, err := fileFingerprint(path)
	if err != nil {
		return err
	}
	return repo.UpsertSyncMetadata(ctx, &domain.SyncMetadata{
		ConfigName:   metadataName,
		LastSyncTime: time.Now(),
		FileHash:     hash,
		FileModTime:  modTime,
	})
}

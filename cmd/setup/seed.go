package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/osse101/SpiritForge_Go/internal/domain"
	"github.com/osse101/SpiritForge_Go/internal/identifier"
)

// seedFile is the on-disk layout of configs/seed.yaml
type seedFile struct {
	Actors []seedActor `yaml:"actors"`
}

type seedActor struct {
	ID           string     `yaml:"id"`
	Name         string     `yaml:"name"`
	Type         string     `yaml:"type"`
	KnownRecipes []string   `yaml:"known_recipes"`
	Items        []seedItem `yaml:"items"`
}

type seedItem struct {
	Name     string        `yaml:"name"`
	ItemType string        `yaml:"item_type"`
	Quantity int           `yaml:"quantity"`
	Resource *seedResource `yaml:"resource"`
}

type seedResource struct {
	Type    string `yaml:"type"`
	Subtype string `yaml:"subtype"`
	Part    string `yaml:"part"`
}

// seedStore is the persistence the seeder writes through
type seedStore interface {
	UpsertActor(ctx context.Context, actor domain.Actor) error
	AddItem(ctx context.Context, item domain.InventoryItem) error
	LearnRecipe(ctx context.Context, actorID, recipeID string) error
}

func loadSeed(path string) (*seedFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	var seed seedFile
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}
	return &seed, nil
}

// validate rejects unknown actor types and resources the codec cannot parse
func (s *seedFile) validate(codec *identifier.Codec) error {
	seen := make(map[string]bool, len(s.Actors))
	for _, a := range s.Actors {
		if a.ID == "" {
			return fmt.Errorf("%w: actor with empty id", domain.ErrInvalidInput)
		}
		if seen[a.ID] {
			return fmt.Errorf("%w: duplicate actor %s", domain.ErrInvalidInput, a.ID)
		}
		seen[a.ID] = true

		switch domain.ActorType(a.Type) {
		case domain.ActorTypeCharacter, domain.ActorTypeNPC, domain.ActorTypeVehicle, domain.ActorTypeGroup:
		default:
			return fmt.Errorf("%w: actor %s has unknown type %q", domain.ErrInvalidInput, a.ID, a.Type)
		}

		for _, item := range a.Items {
			if item.Quantity <= 0 {
				return fmt.Errorf("%w: item %q of %s has non-positive quantity", domain.ErrInvalidInput, item.Name, a.ID)
			}
			if item.Resource == nil {
				continue
			}
			if _, err := codec.FromDescriptor(item.Resource.descriptor()); err != nil {
				return fmt.Errorf("item %q of %s: %w", item.Name, a.ID, err)
			}
		}
	}
	return nil
}

func (r *seedResource) descriptor() *domain.ResourceDescriptor {
	return &domain.ResourceDescriptor{
		Type:    domain.ResourceType(r.Type),
		Subtype: r.Subtype,
		Part:    r.Part,
	}
}

// apply writes every actor, item and known recipe. Items get fresh ids, so
// reseeding adds to existing stacks rather than replacing them.
func (s *seedFile) apply(ctx context.Context, store seedStore) (actors, items int, err error) {
	for _, a := range s.Actors {
		if err := store.UpsertActor(ctx, domain.Actor{ID: a.ID, Name: a.Name, Type: domain.ActorType(a.Type)}); err != nil {
			return actors, items, err
		}
		actors++

		for _, item := range a.Items {
			inv := domain.InventoryItem{
				ID:       uuid.NewString(),
				ActorID:  a.ID,
				Name:     item.Name,
				ItemType: domain.ItemType(item.ItemType),
				Quantity: item.Quantity,
			}
			if item.Resource != nil {
				inv.Resource = item.Resource.descriptor()
			}
			if err := store.AddItem(ctx, inv); err != nil {
				return actors, items, err
			}
			items++
		}

		for _, recipeID := range a.KnownRecipes {
			if err := store.LearnRecipe(ctx, a.ID, recipeID); err != nil {
				return actors, items, fmt.Errorf("failed to teach %s to %s: %w", recipeID, a.ID, err)
			}
		}
	}
	return actors, items, nil
}

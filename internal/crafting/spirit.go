package crafting

import (
	"fmt"

	"github.com/osse101/SpiritForge_Go/internal/domain"
	"github.com/osse101/SpiritForge_Go/internal/identifier"
)

// SpiritGrade returns the highest grade among essence items whose subtype is
// a creature type, or nil when there is none. A missing or non-positive
// grade counts as 1.
func SpiritGrade(codec *identifier.Codec, items []domain.InventoryItem) *int {
	var best *int
	for i := range items {
		item := &items[i]
		if item.Identifier == nil || item.Identifier.Type != domain.ResourceEssence {
			continue
		}
		if !codec.IsCreatureType(item.Identifier.Subtype) {
			continue
		}
		grade := 1
		if item.Resource != nil && item.Resource.Grade != nil && *item.Resource.Grade > 0 {
			grade = *item.Resource.Grade
		}
		if best == nil || grade > *best {
			g := grade
			best = &g
		}
	}
	return best
}

// synthesizeSpirit builds the single-use intermediate item of a spirit craft
func synthesizeSpirit(id, actorID string, recipe *domain.Recipe, target *domain.ItemTemplate, grade int) domain.InventoryItem {
	return domain.InventoryItem{
		ID:             id,
		ActorID:        actorID,
		Name:           fmt.Sprintf(spiritNameFormat, target.Name),
		ItemType:       domain.ItemTypeConsumable,
		Subtype:        domain.ConsumableSubtypeSpirit,
		Quantity:       1,
		Description:    fmt.Sprintf(spiritDescriptionFormat, grade, target.Description),
		Rarity:         domain.RarityForGrade(grade),
		OriginRecipeID: recipe.ID,
		Uses: &domain.ItemUses{
			Value:       spiritUses,
			Max:         spiritUses,
			AutoDestroy: true,
		},
		Spirit: &domain.SpiritData{
			RecipeID:   recipe.ID,
			TargetUUID: target.UUID,
			Grade:      grade,
		},
	}
}

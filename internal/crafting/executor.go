package crafting

import (
	"context"
	"fmt"
	"strings"

	"github.com/osse101/SpiritForge_Go/internal/domain"
	"github.com/osse101/SpiritForge_Go/internal/identifier"
)

// Consumption is the planned change to one input item
type Consumption struct {
	ItemID      string `json:"item_id"`
	ItemName    string `json:"item_name"`
	Previous    int    `json:"previous"`
	Required    int    `json:"required"`
	NewQuantity int    `json:"new_quantity"`
	Delete      bool   `json:"delete"`
}

// Creation is a planned output. When StackID is set the existing stack is
// raised to Item.Quantity instead of inserting a new item.
type Creation struct {
	Item    domain.InventoryItem `json:"item"`
	StackID string               `json:"stack_id,omitempty"`
	Added   int                  `json:"added"`
}

// CraftPlan is the full mutation set of one craft, computed before any
// mutation is issued.
type CraftPlan struct {
	ActorID        string            `json:"actor_id"`
	RecipeID       string            `json:"recipe_id"`
	RecipeType     domain.RecipeType `json:"recipe_type"`
	OutputQuantity int               `json:"output_quantity"`
	Grade          *int              `json:"grade,omitempty"`
	Consumptions   []Consumption     `json:"consumptions"`
	Creations      []Creation        `json:"creations"`
}

// planner turns a recipe and an assignment into a CraftPlan
type planner struct {
	codec *identifier.Codec
	newID func() string
}

// Plan re-validates the assignment against the current inventory and
// computes consumptions and creations. Items filling several slots have
// their requirements summed.
func (p *planner) Plan(ctx context.Context, actorID string, recipe *domain.Recipe, target *domain.ItemTemplate,
	slots map[string]string, inventory []domain.InventoryItem) (*CraftPlan, error) {
	if target == nil {
		return nil, fmt.Errorf("%w: target %s does not resolve", domain.ErrInvalidTarget, recipe.Target.UUID)
	}
	if !domain.AllowedTargetTypes[target.ItemType] {
		return nil, fmt.Errorf("%w: target %s has type %q", domain.ErrInvalidTarget, target.UUID, target.ItemType)
	}

	reqs := Aggregate(ctx, p.codec, recipe.Components)
	if len(reqs) == 0 {
		return nil, fmt.Errorf("%w: recipe %s has no valid components", domain.ErrInvalidInput, recipe.ID)
	}

	byID := make(map[string]*domain.InventoryItem, len(inventory))
	for i := range inventory {
		byID[inventory[i].ID] = &inventory[i]
	}

	var missing []string
	required := make(map[string]int)
	var order []string
	for _, req := range reqs.Sorted() {
		key := req.Identifier.String()
		itemID, ok := slots[key]
		if !ok {
			missing = append(missing, key)
			continue
		}
		item, ok := byID[itemID]
		if !ok {
			return nil, fmt.Errorf("%w: item %s is no longer in the inventory", domain.ErrInsufficientResources, itemID)
		}
		if item.Identifier == nil || !Matches(*item.Identifier, req.Identifier) {
			return nil, fmt.Errorf("%w: item %s for %s", domain.ErrResourceMismatch, itemID, key)
		}
		if _, seen := required[itemID]; !seen {
			order = append(order, itemID)
		}
		required[itemID] += req.Quantity
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf(ErrMsgMissingComponentsFmt, domain.ErrIncompleteAssignment, strings.Join(missing, ", "))
	}

	plan := &CraftPlan{
		ActorID:    actorID,
		RecipeID:   recipe.ID,
		RecipeType: recipe.RecipeType,
	}

	assigned := make([]domain.InventoryItem, 0, len(order))
	for _, itemID := range order {
		item := byID[itemID]
		need := required[itemID]
		if item.Quantity < need {
			return nil, fmt.Errorf("%w: item %s has %d, needs %d", domain.ErrInsufficientResources, itemID, item.Quantity, need)
		}
		newQty := item.Quantity - need
		if newQty < 0 {
			newQty = 0
		}
		plan.Consumptions = append(plan.Consumptions, Consumption{
			ItemID:      itemID,
			ItemName:    item.Name,
			Previous:    item.Quantity,
			Required:    need,
			NewQuantity: newQty,
			Delete:      newQty == 0,
		})
		assigned = append(assigned, *item)
	}

	if recipe.RecipeType == domain.RecipeTypeSpirit {
		grade := SpiritGrade(p.codec, assigned)
		if grade == nil {
			return nil, fmt.Errorf("%w: recipe %s", domain.ErrNoEligibleGrade, recipe.ID)
		}
		plan.Grade = grade
		plan.OutputQuantity = 1
		plan.Creations = []Creation{{
			Item:  synthesizeSpirit(p.newID(), actorID, recipe, target, *grade),
			Added: 1,
		}}
		return plan, nil
	}

	plan.OutputQuantity = recipe.Target.Quantity
	if plan.OutputQuantity <= 0 {
		plan.OutputQuantity = 1
	}
	plan.Creations = p.outputs(actorID, recipe, target, plan.OutputQuantity, inventory, required)
	return plan, nil
}

// outputs creates discrete items, or one stack for stackable types. An
// existing stack from the same recipe is topped up instead.
func (p *planner) outputs(actorID string, recipe *domain.Recipe, target *domain.ItemTemplate, qty int,
	inventory []domain.InventoryItem, consumed map[string]int) []Creation {
	if !target.ItemType.IsStackable() {
		out := make([]Creation, 0, qty)
		for i := 0; i < qty; i++ {
			out = append(out, Creation{Item: itemFromTemplate(p.newID(), actorID, recipe, target, 1), Added: 1})
		}
		return out
	}

	for i := range inventory {
		stack := inventory[i]
		if stack.OriginRecipeID != recipe.ID || stack.Spirit != nil {
			continue
		}
		remaining := stack.Quantity - consumed[stack.ID]
		if remaining <= 0 {
			continue
		}
		stack.Quantity = remaining + qty
		return []Creation{{Item: stack, StackID: stack.ID, Added: qty}}
	}
	return []Creation{{Item: itemFromTemplate(p.newID(), actorID, recipe, target, qty), Added: qty}}
}

func itemFromTemplate(id, actorID string, recipe *domain.Recipe, target *domain.ItemTemplate, qty int) domain.InventoryItem {
	stats := target.Stats.Clone()
	return domain.InventoryItem{
		ID:             id,
		ActorID:        actorID,
		Name:           target.Name,
		ItemType:       target.ItemType,
		Quantity:       qty,
		Description:    target.Description,
		Rarity:         target.Rarity,
		OriginRecipeID: recipe.ID,
		Stats:          &stats,
	}
}

package crafting

import "github.com/osse101/SpiritForge_Go/internal/domain"

// Matches reports whether a concrete item identifier fills a component slot
func Matches(item, component domain.ResourceIdentifier) bool {
	if !component.IsWildcard() {
		return item == component
	}
	if item.Type != component.Type {
		return false
	}
	if component.Subtype != domain.Wildcard && component.Subtype != item.Subtype {
		return false
	}
	if component.Type == domain.ResourceMonster {
		return component.Part == domain.Wildcard || component.Part == item.Part
	}
	return true
}

// MaxAvailable returns the largest single matching stack in the inventory.
// Stacks are not summed: a slot is filled from exactly one item.
func MaxAvailable(inventory []domain.InventoryItem, component domain.ResourceIdentifier) int {
	best := 0
	for i := range inventory {
		item := &inventory[i]
		if item.Identifier == nil || !Matches(*item.Identifier, component) {
			continue
		}
		if item.Quantity > best {
			best = item.Quantity
		}
	}
	return best
}

// CanAfford reports whether every requirement has a large enough stack
func CanAfford(reqs Requirements, inventory []domain.InventoryItem) bool {
	for id, qty := range reqs {
		if MaxAvailable(inventory, id) < qty {
			return false
		}
	}
	return true
}

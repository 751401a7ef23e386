package crafting

import (
	"context"
	"sort"

	"github.com/osse101/SpiritForge_Go/internal/domain"
	"github.com/osse101/SpiritForge_Go/internal/identifier"
	"github.com/osse101/SpiritForge_Go/internal/logger"
)

// Requirement is one aggregated component of a recipe
type Requirement struct {
	Identifier domain.ResourceIdentifier `json:"identifier"`
	Quantity   int                       `json:"quantity"`
}

// Requirements maps each component identifier to its total quantity
type Requirements map[domain.ResourceIdentifier]int

// Sorted returns the requirements ordered by identifier text
func (r Requirements) Sorted() []Requirement {
	out := make([]Requirement, 0, len(r))
	for id, qty := range r {
		out = append(out, Requirement{Identifier: id, Quantity: qty})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Identifier.String() < out[j].Identifier.String()
	})
	return out
}

// Aggregate reduces raw components to identifier totals. Invalid identifiers
// are logged and dropped; non-positive quantities count as 1.
func Aggregate(ctx context.Context, codec *identifier.Codec, components []domain.RecipeComponent) Requirements {
	reqs := make(Requirements, len(components))
	for _, c := range components {
		id, err := codec.Parse(c.Identifier, true)
		if err != nil {
			logger.FromContext(ctx).Debug(LogMsgInvalidComponentSkipped, "identifier", c.Identifier, "error", err)
			continue
		}
		qty := c.Quantity
		if qty <= 0 {
			qty = 1
		}
		reqs[id] += qty
	}
	return reqs
}

// HasValidComponents reports whether at least one component validates
func HasValidComponents(codec *identifier.Codec, components []domain.RecipeComponent) bool {
	for _, c := range components {
		if codec.ValidateString(c.Identifier, true) {
			return true
		}
	}
	return false
}

package domain

import "time"

// RecipeType groups recipes that an actor opts into together
type RecipeType string

const (
	RecipeTypeRune    RecipeType = "rune"
	RecipeTypeSpirit  RecipeType = "spirit"
	RecipeTypeMonster RecipeType = "monster"
	RecipeTypeCooking RecipeType = "cooking"
)

// RecipeTypes lists every recipe type in display order
var RecipeTypes = []RecipeType{RecipeTypeRune, RecipeTypeSpirit, RecipeTypeMonster, RecipeTypeCooking}

// IsValid reports whether t is a known recipe type
func (t RecipeType) IsValid() bool {
	for _, rt := range RecipeTypes {
		if rt == t {
			return true
		}
	}
	return false
}

// RecipeTarget references the item template a recipe produces
type RecipeTarget struct {
	UUID     string `json:"uuid"`
	Quantity int    `json:"quantity"`
}

// RecipeComponent is one raw component entry. Identifier may be malformed;
// it is validated during aggregation.
type RecipeComponent struct {
	Identifier string `json:"identifier"`
	Quantity   int    `json:"quantity"`
}

// Recipe is a crafting recipe
type Recipe struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	RecipeType RecipeType        `json:"recipe_type"`
	IsBasic    bool              `json:"is_basic"`
	Target     RecipeTarget      `json:"target"`
	Components []RecipeComponent `json:"components"`
	CreatedAt  time.Time         `json:"created_at,omitempty"`
}

// RecipeState classifies an (actor, recipe) pair
type RecipeState string

const (
	RecipeKnown       RecipeState = "known"
	RecipeLearnable   RecipeState = "learnable"
	RecipeUnavailable RecipeState = "unavailable"
)

// RecipeKnowledge is the per-actor learned set and recipe-type opt-in flags
type RecipeKnowledge struct {
	ActorID string              `json:"actor_id"`
	Learned map[string]struct{} `json:"learned"`
	Enabled map[RecipeType]bool `json:"enabled"`
}

// NewRecipeKnowledge returns empty knowledge for an actor
func NewRecipeKnowledge(actorID string) *RecipeKnowledge {
	return &RecipeKnowledge{
		ActorID: actorID,
		Learned: make(map[string]struct{}),
		Enabled: make(map[RecipeType]bool),
	}
}

// HasLearned reports whether recipeID is in the learned set
func (k *RecipeKnowledge) HasLearned(recipeID string) bool {
	if k == nil {
		return false
	}
	_, ok := k.Learned[recipeID]
	return ok
}

// IsEnabled reports the opt-in flag for a recipe type
func (k *RecipeKnowledge) IsEnabled(t RecipeType) bool {
	if k == nil {
		return false
	}
	return k.Enabled[t]
}

// Learn adds recipeID. Repeated calls are no-ops.
func (k *RecipeKnowledge) Learn(recipeID string) {
	if k.Learned == nil {
		k.Learned = make(map[string]struct{})
	}
	k.Learned[recipeID] = struct{}{}
}

// Unlearn removes recipeID. Removing an absent id is a no-op.
func (k *RecipeKnowledge) Unlearn(recipeID string) {
	delete(k.Learned, recipeID)
}

// SetEnabled sets the opt-in flag for a recipe type
func (k *RecipeKnowledge) SetEnabled(t RecipeType, enabled bool) {
	if k.Enabled == nil {
		k.Enabled = make(map[RecipeType]bool)
	}
	k.Enabled[t] = enabled
}

// Clone returns a deep copy
func (k *RecipeKnowledge) Clone() *RecipeKnowledge {
	out := NewRecipeKnowledge(k.ActorID)
	for id := range k.Learned {
		out.Learned[id] = struct{}{}
	}
	for t, v := range k.Enabled {
		out.Enabled[t] = v
	}
	return out
}

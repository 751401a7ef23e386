package crafting

import "github.com/osse101/SpiritForge_Go/internal/domain"

// Resolve classifies an (actor, recipe) pair. Actors that cannot hold
// recipes are always unavailable.
func Resolve(actor *domain.Actor, recipe *domain.Recipe, knowledge *domain.RecipeKnowledge) domain.RecipeState {
	if actor == nil || recipe == nil || !actor.Type.CanHoldRecipes() {
		return domain.RecipeUnavailable
	}
	if !knowledge.IsEnabled(recipe.RecipeType) {
		return domain.RecipeUnavailable
	}
	if recipe.IsBasic || knowledge.HasLearned(recipe.ID) {
		return domain.RecipeKnown
	}
	return domain.RecipeLearnable
}

package domain

import "time"

// Assignment is a transient crafting session: the concrete inventory item
// chosen for each component slot, keyed by the slot's identifier text.
type Assignment struct {
	ID        string            `json:"id"`
	ActorID   string            `json:"actor_id"`
	RecipeID  string            `json:"recipe_id"`
	Slots     map[string]string `json:"slots"`
	CreatedAt time.Time         `json:"created_at"`
}

// Clone returns a deep copy
func (a *Assignment) Clone() *Assignment {
	out := *a
	out.Slots = make(map[string]string, len(a.Slots))
	for k, v := range a.Slots {
		out.Slots[k] = v
	}
	return &out
}

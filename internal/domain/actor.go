package domain

import "time"

// ActorType is the host document type of an actor
type ActorType string

const (
	ActorTypeCharacter ActorType = "character"
	ActorTypeNPC       ActorType = "npc"
	ActorTypeVehicle   ActorType = "vehicle"
	ActorTypeGroup     ActorType = "group"
)

// CanHoldRecipes reports whether actors of this type may know recipes
func (t ActorType) CanHoldRecipes() bool {
	return t == ActorTypeCharacter
}

// Actor is a crafting participant
type Actor struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Type      ActorType `json:"type"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

package postgres

import (
	"context"
	"fmt"

	"github.com/osse101/SpiritForge_Go/internal/domain"
)

// UpsertActor registers an actor or updates its name and type
func (r *CraftingRepository) UpsertActor(ctx context.Context, actor domain.Actor) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO actors (actor_id, name, actor_type) VALUES ($1, $2, $3)
		ON CONFLICT (actor_id) DO UPDATE SET name = EXCLUDED.name, actor_type = EXCLUDED.actor_type`,
		actor.ID, actor.Name, actor.Type)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToUpsertActor, err)
	}
	return nil
}

// AddItem inserts an item outside of a crafting transaction. A missing
// actor is reported as domain.ErrActorNotFound.
func (r *CraftingRepository) AddItem(ctx context.Context, item domain.InventoryItem) error {
	err := insertItem(ctx, r.db, item)
	if err != nil && isPgError(err, PgErrorCodeForeignKeyViolation) {
		return fmt.Errorf("%w: %s", domain.ErrActorNotFound, item.ActorID)
	}
	return err
}

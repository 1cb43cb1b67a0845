package persistence

import (
	"context"
	"slices"

	"github.com/google/uuid"

	"github.com/flowgate/flowgate/modules/approvals/domain/entities/actor"
)

// InmemDirectory is a fixed actor catalog loaded once at startup.
// It is never mutated afterwards, so reads need no locking.
type InmemDirectory struct {
	actors []actor.Actor
	byID   map[uuid.UUID]actor.Actor
}

func NewInmemDirectory(actors []actor.Actor) *InmemDirectory {
	byID := make(map[uuid.UUID]actor.Actor, len(actors))
	for _, a := range actors {
		byID[a.ID()] = a
	}
	return &InmemDirectory{
		actors: slices.Clone(actors),
		byID:   byID,
	}
}

func (d *InmemDirectory) ResolveActor(_ context.Context, id uuid.UUID) (actor.Actor, error) {
	a, found := d.byID[id]
	if !found {
		return actor.Actor{}, actor.ErrActorNotFound
	}
	return a, nil
}

func (d *InmemDirectory) All(_ context.Context) ([]actor.Actor, error) {
	return slices.Clone(d.actors), nil
}

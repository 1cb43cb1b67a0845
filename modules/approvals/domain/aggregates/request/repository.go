package request

import (
	"context"

	"github.com/google/uuid"
)

type FindParams struct {
	Statuses []Status
	Types    []Type
}

// Repository owns the request collection. All returns newest-first:
// Create prepends, Update keeps position.
type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (Request, error)
	All(ctx context.Context) ([]Request, error)
	Find(ctx context.Context, params *FindParams) ([]Request, error)
	Count(ctx context.Context) (int64, error)
	Create(ctx context.Context, r Request) (Request, error)
	Update(ctx context.Context, r Request) (Request, error)
}

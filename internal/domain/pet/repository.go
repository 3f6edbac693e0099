package pet

import (
	"context"

	"github.com/google/uuid"
)

// PetRepository defines persistence operations for pets.
type PetRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Pet, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*Pet, error)
	FindByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]*Pet, error)
	List(ctx context.Context, page, limit int) ([]*Pet, int64, error)
	Save(ctx context.Context, pet *Pet) error
	Update(ctx context.Context, pet *Pet) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
}

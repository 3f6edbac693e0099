package owner

import (
	"context"

	"github.com/google/uuid"
)

// OwnerRepository defines persistence operations for owner profiles.
type OwnerRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Owner, error)
	Save(ctx context.Context, owner *Owner) error
	// SaveIfAbsent inserts owner unless a row with its id exists and reports
	// whether it inserted.
	SaveIfAbsent(ctx context.Context, owner *Owner) (bool, error)
	Update(ctx context.Context, owner *Owner) error
	Count(ctx context.Context) (int64, error)
}

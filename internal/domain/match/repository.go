package match

import (
	"context"

	"github.com/google/uuid"
)

// MatchRepository defines persistence operations for matches.
type MatchRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Match, error)
	// Upsert inserts m unless the unordered pet pair is already matched.
	// It returns the stored match and whether this call created it.
	Upsert(ctx context.Context, m *Match) (*Match, bool, error)
	FindByPetID(ctx context.Context, petID uuid.UUID) ([]*Match, error)
	LatestForPet(ctx context.Context, petID uuid.UUID) (*Match, error)
	// Acknowledge clears the notification flag and touches nothing else.
	Acknowledge(ctx context.Context, id uuid.UUID) error
	// UpdateContractLink writes the contract reference of m.
	UpdateContractLink(ctx context.Context, m *Match) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
}

package likee

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/furrymatch/service-matching/internal/platform/domain"
)

// Likee records that the first pet liked the second pet. The pair is
// immutable; only the like-state flag changes.
type Likee struct {
	id          uuid.UUID
	firstPetID  uuid.UUID
	secondPetID uuid.UUID
	likeState   bool
	createdAt   time.Time
}

// NewLikee creates a like from firstPetID to secondPetID.
func NewLikee(firstPetID, secondPetID uuid.UUID) (*Likee, error) {
	if firstPetID == uuid.Nil || secondPetID == uuid.Nil {
		return nil, domain.NewValidationError("both pet IDs are required")
	}
	if firstPetID == secondPetID {
		return nil, domain.NewValidationError("a pet cannot like itself")
	}
	return &Likee{
		id:          uuid.New(),
		firstPetID:  firstPetID,
		secondPetID: secondPetID,
		likeState:   true,
		createdAt:   time.Now().UTC(),
	}, nil
}

// Reconstruct rebuilds a Likee from persistence.
func Reconstruct(id, firstPetID, secondPetID uuid.UUID, likeState bool, createdAt time.Time) *Likee {
	return &Likee{
		id:          id,
		firstPetID:  firstPetID,
		secondPetID: secondPetID,
		likeState:   likeState,
		createdAt:   createdAt,
	}
}

func (l *Likee) ID() uuid.UUID          { return l.id }
func (l *Likee) FirstPetID() uuid.UUID  { return l.firstPetID }
func (l *Likee) SecondPetID() uuid.UUID { return l.secondPetID }
func (l *Likee) LikeState() bool        { return l.likeState }
func (l *Likee) CreatedAt() time.Time   { return l.createdAt }

// SetLikeState toggles the flag.
func (l *Likee) SetLikeState(state bool) {
	l.likeState = state
}

// IsInverseOf reports whether other is the like in the opposite direction.
func (l *Likee) IsInverseOf(other *Likee) bool {
	return l.firstPetID == other.secondPetID && l.secondPetID == other.firstPetID
}

// LikeeRepository defines persistence operations for likes.
type LikeeRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Likee, error)
	// FindByPair returns the like from firstPetID to secondPetID, or a
	// NotFoundError.
	FindByPair(ctx context.Context, firstPetID, secondPetID uuid.UUID) (*Likee, error)
	// SaveIfAbsent inserts l unless the ordered pair already exists and
	// returns the stored row either way.
	SaveIfAbsent(ctx context.Context, l *Likee) (*Likee, error)
	// LockPair blocks other like/match work on the unordered pair {a, b}
	// until the current transaction ends.
	LockPair(ctx context.Context, a, b uuid.UUID) error
	FindByFirstPetID(ctx context.Context, petID uuid.UUID, page, limit int) ([]*Likee, int64, error)
	UpdateState(ctx context.Context, l *Likee) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
}

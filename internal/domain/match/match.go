package match

import (
	"time"

	"github.com/google/uuid"

	"github.com/furrymatch/service-matching/internal/domain/likee"
	"github.com/furrymatch/service-matching/internal/platform/domain"
)

// Match links two mutually inverse likes. FirstLiked is the like that
// completed the pair; SecondLiked is the earlier reverse like.
type Match struct {
	id            uuid.UUID
	firstLikedID  uuid.UUID
	secondLikedID uuid.UUID
	firstPetID    uuid.UUID
	secondPetID   uuid.UUID
	notifyMatch   bool
	matchDate     time.Time
	contractID    *uuid.UUID
	createdAt     time.Time
}

// NewMatch creates a match from the new like and its reverse.
func NewMatch(firstLiked, secondLiked *likee.Likee, now time.Time) (*Match, error) {
	if firstLiked == nil || secondLiked == nil {
		return nil, domain.NewValidationError("both likes are required")
	}
	if !firstLiked.IsInverseOf(secondLiked) {
		return nil, domain.NewValidationError("likes are not mutual inverses")
	}
	now = now.UTC()
	return &Match{
		id:            uuid.New(),
		firstLikedID:  firstLiked.ID(),
		secondLikedID: secondLiked.ID(),
		firstPetID:    firstLiked.FirstPetID(),
		secondPetID:   firstLiked.SecondPetID(),
		notifyMatch:   true,
		matchDate:     now.Truncate(24 * time.Hour),
		createdAt:     now,
	}, nil
}

// Reconstruct rebuilds a Match from persistence.
func Reconstruct(
	id, firstLikedID, secondLikedID, firstPetID, secondPetID uuid.UUID,
	notifyMatch bool,
	matchDate time.Time,
	contractID *uuid.UUID,
	createdAt time.Time,
) *Match {
	return &Match{
		id:            id,
		firstLikedID:  firstLikedID,
		secondLikedID: secondLikedID,
		firstPetID:    firstPetID,
		secondPetID:   secondPetID,
		notifyMatch:   notifyMatch,
		matchDate:     matchDate,
		contractID:    contractID,
		createdAt:     createdAt,
	}
}

func (m *Match) ID() uuid.UUID            { return m.id }
func (m *Match) FirstLikedID() uuid.UUID  { return m.firstLikedID }
func (m *Match) SecondLikedID() uuid.UUID { return m.secondLikedID }
func (m *Match) FirstPetID() uuid.UUID    { return m.firstPetID }
func (m *Match) SecondPetID() uuid.UUID   { return m.secondPetID }
func (m *Match) NotifyMatch() bool        { return m.notifyMatch }
func (m *Match) MatchDate() time.Time     { return m.matchDate }
func (m *Match) ContractID() *uuid.UUID   { return m.contractID }
func (m *Match) CreatedAt() time.Time     { return m.createdAt }

// Involves reports whether petID is one of the matched pets.
func (m *Match) Involves(petID uuid.UUID) bool {
	return m.firstPetID == petID || m.secondPetID == petID
}

// OtherPet returns the matched pet that is not petID.
func (m *Match) OtherPet(petID uuid.UUID) (uuid.UUID, bool) {
	switch petID {
	case m.firstPetID:
		return m.secondPetID, true
	case m.secondPetID:
		return m.firstPetID, true
	}
	return uuid.Nil, false
}

// Acknowledge clears the new-match notification.
func (m *Match) Acknowledge() {
	m.notifyMatch = false
}

// LinkContract attaches a contract.
func (m *Match) LinkContract(contractID uuid.UUID) error {
	if m.contractID != nil && *m.contractID != contractID {
		return domain.NewConflictError("match already has a contract")
	}
	m.contractID = &contractID
	return nil
}

// UnlinkContract detaches the contract.
func (m *Match) UnlinkContract() {
	m.contractID = nil
}

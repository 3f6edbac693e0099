package match

import (
	"github.com/google/uuid"

	"github.com/furrymatch/service-matching/internal/platform/domain"
)

// Participant is one side of a match.
type Participant struct {
	PetID   uuid.UUID
	OwnerID uuid.UUID
}

// Participants are both sides of a match.
type Participants struct {
	MatchID uuid.UUID
	First   Participant
	Second  Participant
}

// Includes reports whether ownerID owns one of the matched pets.
func (p Participants) Includes(ownerID uuid.UUID) bool {
	return p.First.OwnerID == ownerID || p.Second.OwnerID == ownerID
}

// CounterpartOf returns the side opposite to ownerID.
func (p Participants) CounterpartOf(ownerID uuid.UUID) (Participant, bool) {
	switch ownerID {
	case p.First.OwnerID:
		return p.Second, true
	case p.Second.OwnerID:
		return p.First, true
	}
	return Participant{}, false
}

// RequireParticipant returns a ForbiddenError unless ownerID is on the match.
func (p Participants) RequireParticipant(ownerID uuid.UUID) error {
	if !p.Includes(ownerID) {
		return domain.NewForbiddenError("you are not a participant of this match")
	}
	return nil
}

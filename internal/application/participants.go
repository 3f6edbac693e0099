package application

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	matchDomain "github.com/furrymatch/service-matching/internal/domain/match"
	petDomain "github.com/furrymatch/service-matching/internal/domain/pet"
)

// participantResolver loads a match together with the owners of both pets.
type participantResolver struct {
	matches matchDomain.MatchRepository
	pets    petDomain.PetRepository
}

func newParticipantResolver(matches matchDomain.MatchRepository, pets petDomain.PetRepository) *participantResolver {
	return &participantResolver{matches: matches, pets: pets}
}

func (r *participantResolver) Resolve(ctx context.Context, matchID uuid.UUID) (*matchDomain.Match, matchDomain.Participants, error) {
	m, err := r.matches.FindByID(ctx, matchID)
	if err != nil {
		return nil, matchDomain.Participants{}, err
	}
	p, err := r.participantsOf(ctx, m)
	if err != nil {
		return nil, matchDomain.Participants{}, err
	}
	return m, p, nil
}

func (r *participantResolver) participantsOf(ctx context.Context, m *matchDomain.Match) (matchDomain.Participants, error) {
	first, err := r.pets.FindByID(ctx, m.FirstPetID())
	if err != nil {
		return matchDomain.Participants{}, fmt.Errorf("failed to load first matched pet: %w", err)
	}
	second, err := r.pets.FindByID(ctx, m.SecondPetID())
	if err != nil {
		return matchDomain.Participants{}, fmt.Errorf("failed to load second matched pet: %w", err)
	}
	return matchDomain.Participants{
		MatchID: m.ID(),
		First:   matchDomain.Participant{PetID: first.ID(), OwnerID: first.OwnerID()},
		Second:  matchDomain.Participant{PetID: second.ID(), OwnerID: second.OwnerID()},
	}, nil
}

// ResolveFor is Resolve plus a participant check for ownerID.
func (r *participantResolver) ResolveFor(ctx context.Context, ownerID, matchID uuid.UUID) (*matchDomain.Match, matchDomain.Participants, error) {
	m, p, err := r.Resolve(ctx, matchID)
	if err != nil {
		return nil, p, err
	}
	if err := p.RequireParticipant(ownerID); err != nil {
		return nil, p, err
	}
	return m, p, nil
}

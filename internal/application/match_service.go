package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	matchDomain "github.com/furrymatch/service-matching/internal/domain/match"
	petDomain "github.com/furrymatch/service-matching/internal/domain/pet"
	"github.com/furrymatch/service-matching/internal/platform/domain"
)

// MatchDTO is the API response representation of a match.
type MatchDTO struct {
	ID            uuid.UUID  `json:"id"`
	FirstLikedID  uuid.UUID  `json:"first_liked_id"`
	SecondLikedID uuid.UUID  `json:"second_liked_id"`
	FirstPetID    uuid.UUID  `json:"first_pet_id"`
	SecondPetID   uuid.UUID  `json:"second_pet_id"`
	NotifyMatch   bool       `json:"notify_match"`
	MatchDate     time.Time  `json:"match_date"`
	ContractID    *uuid.UUID `json:"contract_id,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

// MatchIDDTO is the result of a match-by-pet lookup.
type MatchIDDTO struct {
	MatchID uuid.UUID `json:"match_id"`
}

// MatchService implements read and housekeeping use cases for matches.
type MatchService struct {
	matches      matchDomain.MatchRepository
	pets         petDomain.PetRepository
	participants *participantResolver
	logger       *zap.Logger
}

// NewMatchService creates a new MatchService.
func NewMatchService(
	matches matchDomain.MatchRepository,
	pets petDomain.PetRepository,
	logger *zap.Logger,
) *MatchService {
	return &MatchService{
		matches:      matches,
		pets:         pets,
		participants: newParticipantResolver(matches, pets),
		logger:       logger,
	}
}

// Get returns a match the caller participates in.
func (s *MatchService) Get(ctx context.Context, ownerID, matchID uuid.UUID) (*MatchDTO, error) {
	m, _, err := s.participants.ResolveFor(ctx, ownerID, matchID)
	if err != nil {
		return nil, err
	}
	result := toMatchDTO(m)
	return &result, nil
}

// Participants returns both sides of a match after checking that ownerID is one of them.
func (s *MatchService) Participants(ctx context.Context, ownerID, matchID uuid.UUID) (matchDomain.Participants, error) {
	_, p, err := s.participants.ResolveFor(ctx, ownerID, matchID)
	return p, err
}

// ListForPet returns the matches of one of the caller's pets, newest first.
func (s *MatchService) ListForPet(ctx context.Context, ownerID, petID uuid.UUID) ([]MatchDTO, error) {
	if err := requireOwnedPet(ctx, s.pets, ownerID, petID); err != nil {
		return nil, err
	}
	matches, err := s.matches.FindByPetID(ctx, petID)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	dtos := make([]MatchDTO, len(matches))
	for i, m := range matches {
		dtos[i] = toMatchDTO(m)
	}
	return dtos, nil
}

// MatchForPet returns the id of the most recent match of one of the caller's pets.
func (s *MatchService) MatchForPet(ctx context.Context, ownerID, petID uuid.UUID) (*MatchIDDTO, error) {
	if err := requireOwnedPet(ctx, s.pets, ownerID, petID); err != nil {
		return nil, err
	}
	m, err := s.matches.LatestForPet(ctx, petID)
	if err != nil {
		return nil, err
	}
	return &MatchIDDTO{MatchID: m.ID()}, nil
}

// Acknowledge clears the new-match notification.
func (s *MatchService) Acknowledge(ctx context.Context, ownerID, matchID uuid.UUID) (*MatchDTO, error) {
	m, _, err := s.participants.ResolveFor(ctx, ownerID, matchID)
	if err != nil {
		return nil, err
	}
	if m.NotifyMatch() {
		if err := s.matches.Acknowledge(ctx, matchID); err != nil {
			s.logger.Error("failed to acknowledge match", zap.String("match_id", matchID.String()), zap.Error(err))
			return nil, fmt.Errorf("failed to acknowledge match: %w", err)
		}
		m.Acknowledge()
		s.logger.Info("match acknowledged", zap.String("match_id", matchID.String()))
	}
	result := toMatchDTO(m)
	return &result, nil
}

// Delete removes a match the caller participates in, with its chats.
func (s *MatchService) Delete(ctx context.Context, ownerID, matchID uuid.UUID) error {
	if _, _, err := s.participants.ResolveFor(ctx, ownerID, matchID); err != nil {
		return err
	}
	if err := s.matches.Delete(ctx, matchID); err != nil {
		s.logger.Error("failed to delete match", zap.String("match_id", matchID.String()), zap.Error(err))
		return fmt.Errorf("failed to delete match: %w", err)
	}
	s.logger.Info("match deleted",
		zap.String("match_id", matchID.String()),
		zap.String("owner_id", ownerID.String()),
	)
	return nil
}

func requireOwnedPet(ctx context.Context, pets petDomain.PetRepository, ownerID, petID uuid.UUID) error {
	pet, err := pets.FindByID(ctx, petID)
	if err != nil {
		return err
	}
	if !pet.IsOwnedBy(ownerID) {
		return domain.NewForbiddenError("you do not own this pet")
	}
	return nil
}

func toMatchDTO(m *matchDomain.Match) MatchDTO {
	return MatchDTO{
		ID:            m.ID(),
		FirstLikedID:  m.FirstLikedID(),
		SecondLikedID: m.SecondLikedID(),
		FirstPetID:    m.FirstPetID(),
		SecondPetID:   m.SecondPetID(),
		NotifyMatch:   m.NotifyMatch(),
		MatchDate:     m.MatchDate(),
		ContractID:    m.ContractID(),
		CreatedAt:     m.CreatedAt(),
	}
}

package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	matchDomain "github.com/furrymatch/service-matching/internal/domain/match"
	ownerDomain "github.com/furrymatch/service-matching/internal/domain/owner"
	petDomain "github.com/furrymatch/service-matching/internal/domain/pet"
	"github.com/furrymatch/service-matching/internal/platform/domain"
)

// UpsertProfileRequest carries the editable owner profile.
type UpsertProfileRequest struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
	PhotoURL  string `json:"photo_url"`
	Province  string `json:"province"`
	Canton    string `json:"canton"`
	District  string `json:"district"`
}

// OwnerDTO is the API response representation of an owner profile.
type OwnerDTO struct {
	ID               uuid.UUID  `json:"id"`
	FirstName        string     `json:"first_name"`
	LastName         string     `json:"last_name"`
	Phone            string     `json:"phone,omitempty"`
	PhotoURL         string     `json:"photo_url,omitempty"`
	Province         string     `json:"province,omitempty"`
	Canton           string     `json:"canton,omitempty"`
	District         string     `json:"district,omitempty"`
	SelectedPetID    *uuid.UUID `json:"selected_pet_id,omitempty"`
	ActiveMatchID    *uuid.UUID `json:"active_match_id,omitempty"`
	ActiveMatchPetID *uuid.UUID `json:"active_match_pet_id,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// CurrentPetDTO is the pet an owner is browsing as.
type CurrentPetDTO struct {
	PetID uuid.UUID `json:"pet_id"`
}

// OwnerService implements use cases for the caller's own profile.
type OwnerService struct {
	repo         ownerDomain.OwnerRepository
	pets         petDomain.PetRepository
	participants *participantResolver
	logger       *zap.Logger
}

// NewOwnerService creates a new OwnerService.
func NewOwnerService(
	repo ownerDomain.OwnerRepository,
	pets petDomain.PetRepository,
	matches matchDomain.MatchRepository,
	logger *zap.Logger,
) *OwnerService {
	return &OwnerService{
		repo:         repo,
		pets:         pets,
		participants: newParticipantResolver(matches, pets),
		logger:       logger,
	}
}

// GetProfile returns the caller's profile.
func (s *OwnerService) GetProfile(ctx context.Context, ownerID uuid.UUID) (*OwnerDTO, error) {
	o, err := s.repo.FindByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	result := toOwnerDTO(o)
	return &result, nil
}

// UpsertProfile creates the caller's profile on first use and replaces it afterwards.
func (s *OwnerService) UpsertProfile(ctx context.Context, ownerID uuid.UUID, req UpsertProfileRequest) (*OwnerDTO, error) {
	profile := ownerDomain.Profile{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		PhotoURL:  req.PhotoURL,
		Province:  req.Province,
		Canton:    req.Canton,
		District:  req.District,
	}

	o, created, err := s.loadOrNew(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	o.UpdateProfile(profile)

	if err := s.store(ctx, o, created); err != nil {
		return nil, err
	}

	s.logger.Info("owner profile saved",
		zap.String("owner_id", ownerID.String()),
		zap.Bool("created", created),
	)
	result := toOwnerDTO(o)
	return &result, nil
}

// SelectPet makes one of the caller's pets the pet they browse as.
func (s *OwnerService) SelectPet(ctx context.Context, ownerID, petID uuid.UUID) (*OwnerDTO, error) {
	pet, err := s.pets.FindByID(ctx, petID)
	if err != nil {
		return nil, err
	}
	if !pet.IsOwnedBy(ownerID) {
		return nil, domain.NewForbiddenError("you do not own this pet")
	}

	o, created, err := s.loadOrNew(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	o.SelectPet(petID)
	if err := s.store(ctx, o, created); err != nil {
		return nil, err
	}

	s.logger.Info("pet selected",
		zap.String("owner_id", ownerID.String()),
		zap.String("pet_id", petID.String()),
	)
	result := toOwnerDTO(o)
	return &result, nil
}

// SetActiveMatch records the conversation the caller has open. The active
// match pet is the counterpart's pet.
func (s *OwnerService) SetActiveMatch(ctx context.Context, ownerID, matchID uuid.UUID) (*OwnerDTO, error) {
	_, p, err := s.participants.ResolveFor(ctx, ownerID, matchID)
	if err != nil {
		return nil, err
	}
	counterpart, _ := p.CounterpartOf(ownerID)

	o, created, err := s.loadOrNew(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	o.SetActiveMatch(matchID, counterpart.PetID)
	if err := s.store(ctx, o, created); err != nil {
		return nil, err
	}

	s.logger.Info("active match set",
		zap.String("owner_id", ownerID.String()),
		zap.String("match_id", matchID.String()),
	)
	result := toOwnerDTO(o)
	return &result, nil
}

// CurrentPet returns the caller's selected pet or a NotFoundError.
func (s *OwnerService) CurrentPet(ctx context.Context, ownerID uuid.UUID) (*CurrentPetDTO, error) {
	o, err := s.repo.FindByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	petID, ok := o.CurrentPet()
	if !ok {
		return nil, domain.NewNotFoundError("SelectedPet", ownerID.String())
	}
	return &CurrentPetDTO{PetID: petID}, nil
}

func (s *OwnerService) loadOrNew(ctx context.Context, ownerID uuid.UUID) (*ownerDomain.Owner, bool, error) {
	o, err := s.repo.FindByID(ctx, ownerID)
	if err == nil {
		return o, false, nil
	}
	var nf *domain.NotFoundError
	if !errors.As(err, &nf) {
		return nil, false, err
	}
	o, err = ownerDomain.NewOwner(ownerID, ownerDomain.Profile{})
	if err != nil {
		return nil, false, err
	}
	return o, true, nil
}

func (s *OwnerService) store(ctx context.Context, o *ownerDomain.Owner, created bool) error {
	var err error
	if created {
		err = s.repo.Save(ctx, o)
	} else {
		err = s.repo.Update(ctx, o)
	}
	if err != nil {
		s.logger.Error("failed to save owner", zap.String("owner_id", o.ID().String()), zap.Error(err))
		return fmt.Errorf("failed to save owner: %w", err)
	}
	return nil
}

func toOwnerDTO(o *ownerDomain.Owner) OwnerDTO {
	return OwnerDTO{
		ID:               o.ID(),
		FirstName:        o.FirstName(),
		LastName:         o.LastName(),
		Phone:            o.Phone(),
		PhotoURL:         o.PhotoURL(),
		Province:         o.Province(),
		Canton:           o.Canton(),
		District:         o.District(),
		SelectedPetID:    o.SelectedPetID(),
		ActiveMatchID:    o.ActiveMatchID(),
		ActiveMatchPetID: o.ActiveMatchPetID(),
		CreatedAt:        o.CreatedAt(),
		UpdatedAt:        o.UpdatedAt(),
	}
}

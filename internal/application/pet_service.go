package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	breedDomain "github.com/furrymatch/service-matching/internal/domain/breed"
	ownerDomain "github.com/furrymatch/service-matching/internal/domain/owner"
	petDomain "github.com/furrymatch/service-matching/internal/domain/pet"
	"github.com/furrymatch/service-matching/internal/domain/searchcriteria"
	"github.com/furrymatch/service-matching/internal/platform/domain"
)

// CreatePetRequest is the request DTO for registering a pet. ID must be
// absent; the server assigns it.
type CreatePetRequest struct {
	ID          *uuid.UUID `json:"id"`
	Name        string     `json:"name" binding:"required"`
	PetType     string     `json:"pet_type" binding:"required"`
	Sex         string     `json:"sex" binding:"required"`
	BreedID     *int64     `json:"breed_id"`
	Description string     `json:"description"`
	TradePups   bool       `json:"trade_pups"`
	TradeMoney  bool       `json:"trade_money"`
	Pedigree    bool       `json:"pedigree"`
	Booklet     bool       `json:"booklet"`
}

// UpdatePetRequest replaces a pet. ID must equal the id in the path.
type UpdatePetRequest struct {
	ID          *uuid.UUID `json:"id"`
	Name        string     `json:"name" binding:"required"`
	PetType     string     `json:"pet_type" binding:"required"`
	Sex         string     `json:"sex" binding:"required"`
	BreedID     *int64     `json:"breed_id"`
	Description string     `json:"description"`
	TradePups   bool       `json:"trade_pups"`
	TradeMoney  bool       `json:"trade_money"`
	Pedigree    bool       `json:"pedigree"`
	Booklet     bool       `json:"booklet"`
}

// PetDTO is the API response representation of a pet.
type PetDTO struct {
	ID          uuid.UUID `json:"id"`
	OwnerID     uuid.UUID `json:"owner_id"`
	Name        string    `json:"name"`
	PetType     string    `json:"pet_type"`
	Sex         string    `json:"sex"`
	BreedID     *int64    `json:"breed_id,omitempty"`
	Description string    `json:"description,omitempty"`
	TradePups   bool      `json:"trade_pups"`
	TradeMoney  bool      `json:"trade_money"`
	Pedigree    bool      `json:"pedigree"`
	Booklet     bool      `json:"booklet"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// PetService implements use cases for pet profiles and pet search.
type PetService struct {
	repo     petDomain.PetRepository
	breeds   breedDomain.BreedRepository
	criteria searchcriteria.Repository
	searcher searchcriteria.PetSearcher
	owners   ownerDomain.OwnerRepository
	logger   *zap.Logger
}

// NewPetService creates a new PetService.
func NewPetService(
	repo petDomain.PetRepository,
	breeds breedDomain.BreedRepository,
	criteria searchcriteria.Repository,
	searcher searchcriteria.PetSearcher,
	owners ownerDomain.OwnerRepository,
	logger *zap.Logger,
) *PetService {
	return &PetService{
		repo:     repo,
		breeds:   breeds,
		criteria: criteria,
		searcher: searcher,
		owners:   owners,
		logger:   logger,
	}
}

// CreatePet registers a pet for the given owner.
func (s *PetService) CreatePet(ctx context.Context, ownerID uuid.UUID, req CreatePetRequest) (*PetDTO, error) {
	if req.ID != nil {
		return nil, domain.NewValidationError("a new pet cannot already have an ID")
	}
	petType, sex, err := parseTypeAndSex(req.PetType, req.Sex)
	if err != nil {
		return nil, err
	}
	if err := s.checkBreed(ctx, req.BreedID, petType); err != nil {
		return nil, err
	}

	pet, err := petDomain.NewPet(ownerID, req.Name, petType, sex, req.BreedID, req.Description, petDomain.Traits{
		TradePups:  req.TradePups,
		TradeMoney: req.TradeMoney,
		Pedigree:   req.Pedigree,
		Booklet:    req.Booklet,
	})
	if err != nil {
		return nil, err
	}

	if err := s.ensureOwner(ctx, ownerID); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, pet); err != nil {
		s.logger.Error("failed to create pet", zap.Error(err))
		return nil, fmt.Errorf("failed to create pet: %w", err)
	}

	s.logger.Info("pet created",
		zap.String("pet_id", pet.ID().String()),
		zap.String("owner_id", ownerID.String()),
	)
	result := toPetDTO(pet)
	return &result, nil
}

// ensureOwner creates an empty profile for a user who registers a pet
// before filling in their account.
func (s *PetService) ensureOwner(ctx context.Context, ownerID uuid.UUID) error {
	o, err := ownerDomain.NewOwner(ownerID, ownerDomain.Profile{})
	if err != nil {
		return err
	}
	created, err := s.owners.SaveIfAbsent(ctx, o)
	if err != nil {
		s.logger.Error("failed to create owner profile", zap.String("owner_id", ownerID.String()), zap.Error(err))
		return fmt.Errorf("failed to create owner profile: %w", err)
	}
	if created {
		s.logger.Info("owner profile created on first pet", zap.String("owner_id", ownerID.String()))
	}
	return nil
}

// GetPet returns any pet by ID.
func (s *PetService) GetPet(ctx context.Context, petID uuid.UUID) (*PetDTO, error) {
	pet, err := s.repo.FindByID(ctx, petID)
	if err != nil {
		return nil, err
	}
	result := toPetDTO(pet)
	return &result, nil
}

// ListPets returns one page of every registered pet.
func (s *PetService) ListPets(ctx context.Context, page, limit int) ([]PetDTO, int64, error) {
	pets, total, err := s.repo.List(ctx, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list pets: %w", err)
	}
	return toPetDTOs(pets), total, nil
}

// GetMyPets returns the pets of the given owner.
func (s *PetService) GetMyPets(ctx context.Context, ownerID uuid.UUID) ([]PetDTO, error) {
	pets, err := s.repo.FindByOwnerID(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get pets: %w", err)
	}
	return toPetDTOs(pets), nil
}

// UpdatePet replaces a pet, verifying the id in the body and ownership.
func (s *PetService) UpdatePet(ctx context.Context, ownerID, petID uuid.UUID, req UpdatePetRequest) (*PetDTO, error) {
	if req.ID == nil {
		return nil, domain.NewValidationError("pet ID is required in the body")
	}
	if *req.ID != petID {
		return nil, domain.NewValidationError("pet ID in the body does not match the path")
	}
	petType, sex, err := parseTypeAndSex(req.PetType, req.Sex)
	if err != nil {
		return nil, err
	}

	pet, err := s.ownedPet(ctx, ownerID, petID)
	if err != nil {
		return nil, err
	}
	if err := s.checkBreed(ctx, req.BreedID, petType); err != nil {
		return nil, err
	}

	err = pet.Update(req.Name, petType, sex, req.BreedID, req.Description, petDomain.Traits{
		TradePups:  req.TradePups,
		TradeMoney: req.TradeMoney,
		Pedigree:   req.Pedigree,
		Booklet:    req.Booklet,
	})
	if err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, pet); err != nil {
		s.logger.Error("failed to update pet", zap.Error(err))
		return nil, fmt.Errorf("failed to update pet: %w", err)
	}

	s.logger.Info("pet updated", zap.String("pet_id", petID.String()))
	result := toPetDTO(pet)
	return &result, nil
}

// DeletePet removes a pet and everything hanging off it.
func (s *PetService) DeletePet(ctx context.Context, ownerID, petID uuid.UUID) error {
	if _, err := s.ownedPet(ctx, ownerID, petID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, petID); err != nil {
		s.logger.Error("failed to delete pet", zap.Error(err))
		return fmt.Errorf("failed to delete pet: %w", err)
	}
	s.logger.Info("pet deleted", zap.String("pet_id", petID.String()))
	return nil
}

func (s *PetService) ownedPet(ctx context.Context, ownerID, petID uuid.UUID) (*petDomain.Pet, error) {
	pet, err := s.repo.FindByID(ctx, petID)
	if err != nil {
		return nil, err
	}
	if !pet.IsOwnedBy(ownerID) {
		return nil, domain.NewForbiddenError("you do not own this pet")
	}
	return pet, nil
}

func (s *PetService) checkBreed(ctx context.Context, breedID *int64, petType petDomain.PetType) error {
	if breedID == nil {
		return nil
	}
	b, err := s.breeds.FindByID(ctx, *breedID)
	if err != nil {
		return err
	}
	if b.PetType != petType {
		return domain.NewValidationError(fmt.Sprintf("breed %s is not a %s breed", b.Name, petType))
	}
	return nil
}

func parseTypeAndSex(petType, sex string) (petDomain.PetType, petDomain.Sex, error) {
	t, err := petDomain.ParsePetType(petType)
	if err != nil {
		return "", "", err
	}
	sx, err := petDomain.ParseSex(sex)
	if err != nil {
		return "", "", err
	}
	return t, sx, nil
}

func toPetDTO(p *petDomain.Pet) PetDTO {
	t := p.Traits()
	return PetDTO{
		ID:          p.ID(),
		OwnerID:     p.OwnerID(),
		Name:        p.Name(),
		PetType:     string(p.PetType()),
		Sex:         string(p.Sex()),
		BreedID:     p.BreedID(),
		Description: p.Description(),
		TradePups:   t.TradePups,
		TradeMoney:  t.TradeMoney,
		Pedigree:    t.Pedigree,
		Booklet:     t.Booklet,
		CreatedAt:   p.CreatedAt(),
		UpdatedAt:   p.UpdatedAt(),
	}
}

func toPetDTOs(pets []*petDomain.Pet) []PetDTO {
	dtos := make([]PetDTO, len(pets))
	for i, p := range pets {
		dtos[i] = toPetDTO(p)
	}
	return dtos
}

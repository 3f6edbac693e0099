package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	petDomain "github.com/furrymatch/service-matching/internal/domain/pet"
	"github.com/furrymatch/service-matching/internal/domain/searchcriteria"
	"github.com/furrymatch/service-matching/internal/platform/domain"
)

// CriteriaInput carries search preferences as sent by clients. Enum fields
// are strings and are parsed before any query runs.
type CriteriaInput struct {
	Objective  string `json:"objective"`
	PetType    string `json:"pet_type"`
	Sex        string `json:"sex"`
	BreedID    *int64 `json:"breed_id"`
	TradePups  *bool  `json:"trade_pups"`
	TradeMoney *bool  `json:"trade_money"`
	Pedigree   *bool  `json:"pedigree"`
	Province   string `json:"province"`
	Canton     string `json:"canton"`
	District   string `json:"district"`
}

// SearchPetsRequest is a pet search. ActivePetID defaults to the owner's
// selected pet.
type SearchPetsRequest struct {
	CriteriaInput
	ActivePetID *uuid.UUID `json:"active_pet_id"`
}

// SearchCriteriaDTO is the saved criteria of a pet.
type SearchCriteriaDTO struct {
	PetID      uuid.UUID `json:"pet_id"`
	Objective  string    `json:"objective,omitempty"`
	PetType    string    `json:"pet_type,omitempty"`
	Sex        string    `json:"sex,omitempty"`
	BreedID    *int64    `json:"breed_id,omitempty"`
	TradePups  *bool     `json:"trade_pups,omitempty"`
	TradeMoney *bool     `json:"trade_money,omitempty"`
	Pedigree   *bool     `json:"pedigree,omitempty"`
	Province   string    `json:"province,omitempty"`
	Canton     string    `json:"canton,omitempty"`
	District   string    `json:"district,omitempty"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Criteria parses the input into typed criteria.
func (in CriteriaInput) Criteria() (searchcriteria.Criteria, error) {
	c := searchcriteria.Criteria{
		BreedID:    in.BreedID,
		TradePups:  in.TradePups,
		TradeMoney: in.TradeMoney,
		Pedigree:   in.Pedigree,
		Province:   in.Province,
		Canton:     in.Canton,
		District:   in.District,
	}
	if in.Objective != "" {
		o, err := searchcriteria.ParseObjective(in.Objective)
		if err != nil {
			return c, err
		}
		c.Objective = &o
	}
	if in.PetType != "" {
		t, err := petDomain.ParsePetType(in.PetType)
		if err != nil {
			return c, err
		}
		c.PetType = &t
	}
	if in.Sex != "" {
		sx, err := petDomain.ParseSex(in.Sex)
		if err != nil {
			return c, err
		}
		c.Sex = &sx
	}
	return c, nil
}

// Search returns pets matching req for an owner browsing as their active pet.
// The owner's own pets and pets the active pet already liked never appear.
func (s *PetService) Search(ctx context.Context, ownerID uuid.UUID, req SearchPetsRequest, page, limit int) ([]PetDTO, int64, error) {
	criteria, err := req.Criteria()
	if err != nil {
		return nil, 0, err
	}

	activePetID, err := s.activePet(ctx, ownerID, req.ActivePetID)
	if err != nil {
		return nil, 0, err
	}
	if _, err := s.ownedPet(ctx, ownerID, activePetID); err != nil {
		return nil, 0, err
	}

	filter, err := searchcriteria.NewFilter(ownerID, activePetID, criteria)
	if err != nil {
		return nil, 0, err
	}

	pets, total, err := s.searcher.Search(ctx, filter, page, limit)
	if err != nil {
		s.logger.Error("pet search failed", zap.String("owner_id", ownerID.String()), zap.Error(err))
		return nil, 0, fmt.Errorf("failed to search pets: %w", err)
	}
	return toPetDTOs(pets), total, nil
}

func (s *PetService) activePet(ctx context.Context, ownerID uuid.UUID, requested *uuid.UUID) (uuid.UUID, error) {
	if requested != nil {
		return *requested, nil
	}
	o, err := s.owners.FindByID(ctx, ownerID)
	if err != nil {
		var nf *domain.NotFoundError
		if errors.As(err, &nf) {
			return uuid.Nil, domain.NewValidationError("select a pet before searching")
		}
		return uuid.Nil, err
	}
	petID, ok := o.CurrentPet()
	if !ok {
		return uuid.Nil, domain.NewValidationError("select a pet before searching")
	}
	return petID, nil
}

// GetSearchCriteria returns the saved criteria of an owned pet.
func (s *PetService) GetSearchCriteria(ctx context.Context, ownerID, petID uuid.UUID) (*SearchCriteriaDTO, error) {
	if _, err := s.ownedPet(ctx, ownerID, petID); err != nil {
		return nil, err
	}
	sc, err := s.criteria.FindByPetID(ctx, petID)
	if err != nil {
		return nil, err
	}
	result := toSearchCriteriaDTO(sc)
	return &result, nil
}

// SaveSearchCriteria creates or replaces the saved criteria of an owned pet.
func (s *PetService) SaveSearchCriteria(ctx context.Context, ownerID, petID uuid.UUID, in CriteriaInput) (*SearchCriteriaDTO, error) {
	criteria, err := in.Criteria()
	if err != nil {
		return nil, err
	}
	if _, err := s.ownedPet(ctx, ownerID, petID); err != nil {
		return nil, err
	}

	sc, err := s.criteria.FindByPetID(ctx, petID)
	var nf *domain.NotFoundError
	switch {
	case err == nil:
		sc.Replace(criteria)
	case errors.As(err, &nf):
		sc = searchcriteria.New(petID, criteria)
	default:
		return nil, err
	}

	if err := s.criteria.Upsert(ctx, sc); err != nil {
		s.logger.Error("failed to save search criteria", zap.String("pet_id", petID.String()), zap.Error(err))
		return nil, fmt.Errorf("failed to save search criteria: %w", err)
	}

	s.logger.Info("search criteria saved", zap.String("pet_id", petID.String()))
	result := toSearchCriteriaDTO(sc)
	return &result, nil
}

func toSearchCriteriaDTO(sc *searchcriteria.SearchCriteria) SearchCriteriaDTO {
	c := sc.Criteria()
	dto := SearchCriteriaDTO{
		PetID:      sc.PetID(),
		BreedID:    c.BreedID,
		TradePups:  c.TradePups,
		TradeMoney: c.TradeMoney,
		Pedigree:   c.Pedigree,
		Province:   c.Province,
		Canton:     c.Canton,
		District:   c.District,
		UpdatedAt:  sc.UpdatedAt(),
	}
	if c.Objective != nil {
		dto.Objective = string(*c.Objective)
	}
	if c.PetType != nil {
		dto.PetType = string(*c.PetType)
	}
	if c.Sex != nil {
		dto.Sex = string(*c.Sex)
	}
	return dto
}

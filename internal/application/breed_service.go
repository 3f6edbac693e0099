package application

import (
	"context"
	"fmt"

	breedDomain "github.com/furrymatch/service-matching/internal/domain/breed"
	petDomain "github.com/furrymatch/service-matching/internal/domain/pet"
)

// BreedDTO is the API response representation of a breed.
type BreedDTO struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	PetType string `json:"pet_type"`
}

// BreedService reads the breed catalogue.
type BreedService struct {
	repo breedDomain.BreedRepository
}

// NewBreedService creates a new BreedService.
func NewBreedService(repo breedDomain.BreedRepository) *BreedService {
	return &BreedService{repo: repo}
}

// List returns every breed, or only those of petType when it is not empty.
func (s *BreedService) List(ctx context.Context, petType string) ([]BreedDTO, error) {
	var filter *petDomain.PetType
	if petType != "" {
		t, err := petDomain.ParsePetType(petType)
		if err != nil {
			return nil, err
		}
		filter = &t
	}
	breeds, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list breeds: %w", err)
	}
	dtos := make([]BreedDTO, len(breeds))
	for i, b := range breeds {
		dtos[i] = toBreedDTO(b)
	}
	return dtos, nil
}

// Get returns one breed.
func (s *BreedService) Get(ctx context.Context, id int64) (*BreedDTO, error) {
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	result := toBreedDTO(*b)
	return &result, nil
}

func toBreedDTO(b breedDomain.Breed) BreedDTO {
	return BreedDTO{ID: b.ID, Name: b.Name, PetType: string(b.PetType)}
}

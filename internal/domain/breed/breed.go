package breed

import (
	"context"

	"github.com/furrymatch/service-matching/internal/domain/pet"
)

// Breed is reference data seeded by migration.
type Breed struct {
	ID      int64
	Name    string
	PetType pet.PetType
}

// BreedRepository reads the breed catalogue.
type BreedRepository interface {
	List(ctx context.Context, petType *pet.PetType) ([]Breed, error)
	FindByID(ctx context.Context, id int64) (*Breed, error)
}

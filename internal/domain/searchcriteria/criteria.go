package searchcriteria

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/furrymatch/service-matching/internal/domain/pet"
)

// Criteria are the saved preferences of one pet. Every field is optional.
type Criteria struct {
	Objective  *Objective
	PetType    *pet.PetType
	Sex        *pet.Sex
	BreedID    *int64
	TradePups  *bool
	TradeMoney *bool
	Pedigree   *bool
	Province   string
	Canton     string
	District   string
}

// SearchCriteria is the Criteria stored for a pet.
type SearchCriteria struct {
	id        uuid.UUID
	petID     uuid.UUID
	criteria  Criteria
	updatedAt time.Time
}

// New creates the saved criteria for petID.
func New(petID uuid.UUID, c Criteria) *SearchCriteria {
	return &SearchCriteria{
		id:        uuid.New(),
		petID:     petID,
		criteria:  c,
		updatedAt: time.Now().UTC(),
	}
}

// Reconstruct rebuilds SearchCriteria from persistence.
func Reconstruct(id, petID uuid.UUID, c Criteria, updatedAt time.Time) *SearchCriteria {
	return &SearchCriteria{id: id, petID: petID, criteria: c, updatedAt: updatedAt}
}

func (s *SearchCriteria) ID() uuid.UUID        { return s.id }
func (s *SearchCriteria) PetID() uuid.UUID     { return s.petID }
func (s *SearchCriteria) Criteria() Criteria   { return s.criteria }
func (s *SearchCriteria) UpdatedAt() time.Time { return s.updatedAt }

// Replace overwrites the stored preferences.
func (s *SearchCriteria) Replace(c Criteria) {
	s.criteria = c
	s.updatedAt = time.Now().UTC()
}

// Repository persists saved criteria, one row per pet.
type Repository interface {
	FindByPetID(ctx context.Context, petID uuid.UUID) (*SearchCriteria, error)
	Upsert(ctx context.Context, sc *SearchCriteria) error
}

// PetSearcher runs a Filter against the pet catalogue.
type PetSearcher interface {
	Search(ctx context.Context, f Filter, page, limit int) ([]*pet.Pet, int64, error)
}

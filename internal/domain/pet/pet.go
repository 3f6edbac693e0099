package pet

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/furrymatch/service-matching/internal/platform/domain"
)

// Traits are the yes/no facts an owner declares about a pet.
type Traits struct {
	TradePups  bool
	TradeMoney bool
	Pedigree   bool
	Booklet    bool
}

// Pet is the aggregate root for a registered pet.
type Pet struct {
	id          uuid.UUID
	ownerID     uuid.UUID
	name        string
	petType     PetType
	sex         Sex
	breedID     *int64
	description string
	traits      Traits
	version     int64
	createdAt   time.Time
	updatedAt   time.Time
}

// NewPet creates a pet with validated fields.
func NewPet(
	ownerID uuid.UUID,
	name string,
	petType PetType,
	sex Sex,
	breedID *int64,
	description string,
	traits Traits,
) (*Pet, error) {
	if ownerID == uuid.Nil {
		return nil, domain.NewValidationError("owner ID is required")
	}
	if err := validate(name, petType, sex); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &Pet{
		id:          uuid.New(),
		ownerID:     ownerID,
		name:        strings.TrimSpace(name),
		petType:     petType,
		sex:         sex,
		breedID:     breedID,
		description: description,
		traits:      traits,
		version:     1,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// Reconstruct rebuilds a Pet from persistence data (no validation).
func Reconstruct(
	id, ownerID uuid.UUID,
	name string,
	petType PetType,
	sex Sex,
	breedID *int64,
	description string,
	traits Traits,
	version int64,
	createdAt, updatedAt time.Time,
) *Pet {
	return &Pet{
		id:          id,
		ownerID:     ownerID,
		name:        name,
		petType:     petType,
		sex:         sex,
		breedID:     breedID,
		description: description,
		traits:      traits,
		version:     version,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

// --- Getters ---

func (p *Pet) ID() uuid.UUID        { return p.id }
func (p *Pet) OwnerID() uuid.UUID   { return p.ownerID }
func (p *Pet) Name() string         { return p.name }
func (p *Pet) PetType() PetType     { return p.petType }
func (p *Pet) Sex() Sex             { return p.sex }
func (p *Pet) BreedID() *int64      { return p.breedID }
func (p *Pet) Description() string  { return p.description }
func (p *Pet) Traits() Traits       { return p.traits }
func (p *Pet) Version() int64       { return p.version }
func (p *Pet) CreatedAt() time.Time { return p.createdAt }
func (p *Pet) UpdatedAt() time.Time { return p.updatedAt }

// --- Behavior ---

// IsOwnedBy checks if the pet belongs to the given owner.
func (p *Pet) IsOwnedBy(ownerID uuid.UUID) bool {
	return p.ownerID == ownerID
}

// Update replaces the editable fields and bumps the version.
func (p *Pet) Update(
	name string,
	petType PetType,
	sex Sex,
	breedID *int64,
	description string,
	traits Traits,
) error {
	if err := validate(name, petType, sex); err != nil {
		return err
	}
	p.name = strings.TrimSpace(name)
	p.petType = petType
	p.sex = sex
	p.breedID = breedID
	p.description = description
	p.traits = traits
	p.version++
	p.updatedAt = time.Now().UTC()
	return nil
}

func validate(name string, petType PetType, sex Sex) error {
	if strings.TrimSpace(name) == "" {
		return domain.NewValidationError("pet name is required")
	}
	if !petType.IsValid() {
		return domain.NewValidationError("invalid pet type: " + string(petType))
	}
	if !sex.IsValid() {
		return domain.NewValidationError("invalid sex: " + string(sex))
	}
	return nil
}

package pet

import (
	"fmt"
	"strings"

	"github.com/furrymatch/service-matching/internal/platform/domain"
)

// PetType is the species of a pet.
type PetType string

const (
	PetTypeDog PetType = "DOG"
	PetTypeCat PetType = "CAT"
)

// IsValid returns true if the type is a recognized species.
func (t PetType) IsValid() bool {
	return t == PetTypeDog || t == PetTypeCat
}

func (t PetType) String() string { return string(t) }

// ParsePetType converts a case-insensitive string to a PetType.
func ParsePetType(s string) (PetType, error) {
	t := PetType(strings.ToUpper(strings.TrimSpace(s)))
	if !t.IsValid() {
		return "", domain.NewValidationError(fmt.Sprintf("invalid pet type: %q", s))
	}
	return t, nil
}

// Sex is the sex of a pet.
type Sex string

const (
	SexMale   Sex = "M"
	SexFemale Sex = "F"
)

// IsValid returns true if the sex is recognized.
func (s Sex) IsValid() bool {
	return s == SexMale || s == SexFemale
}

func (s Sex) String() string { return string(s) }

// ParseSex converts "M"/"F" (case-insensitive) to a Sex.
func ParseSex(s string) (Sex, error) {
	v := Sex(strings.ToUpper(strings.TrimSpace(s)))
	if !v.IsValid() {
		return "", domain.NewValidationError(fmt.Sprintf("invalid sex: %q", s))
	}
	return v, nil
}

package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"gorm.io/gorm"

	breedDomain "github.com/furrymatch/service-matching/internal/domain/breed"
	petDomain "github.com/furrymatch/service-matching/internal/domain/pet"
	"github.com/furrymatch/service-matching/internal/platform/domain"
)

// BreedModel is the GORM model for the breeds table.
type BreedModel struct {
	ID      int64  `gorm:"primaryKey"`
	Name    string `gorm:"size:100;not null"`
	PetType string `gorm:"size:10;not null"`
}

func (BreedModel) TableName() string { return "breeds" }

// GormBreedRepository reads the breed catalogue.
type GormBreedRepository struct {
	db *gorm.DB
}

func NewGormBreedRepository(db *gorm.DB) *GormBreedRepository {
	return &GormBreedRepository{db: db}
}

// List returns every breed, or only those of petType when given.
func (r *GormBreedRepository) List(ctx context.Context, petType *petDomain.PetType) ([]breedDomain.Breed, error) {
	q := conn(ctx, r.db).Order("pet_type, name")
	if petType != nil {
		q = q.Where("pet_type = ?", string(*petType))
	}
	var models []BreedModel
	if err := q.Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list breeds: %w", err)
	}
	breeds := make([]breedDomain.Breed, len(models))
	for i, m := range models {
		breeds[i] = toBreedDomain(m)
	}
	return breeds, nil
}

func (r *GormBreedRepository) FindByID(ctx context.Context, id int64) (*breedDomain.Breed, error) {
	var m BreedModel
	if err := conn(ctx, r.db).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Breed", strconv.FormatInt(id, 10))
		}
		return nil, fmt.Errorf("failed to find breed: %w", err)
	}
	b := toBreedDomain(m)
	return &b, nil
}

func toBreedDomain(m BreedModel) breedDomain.Breed {
	return breedDomain.Breed{ID: m.ID, Name: m.Name, PetType: petDomain.PetType(m.PetType)}
}

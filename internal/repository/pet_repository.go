package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	petDomain "github.com/furrymatch/service-matching/internal/domain/pet"
	"github.com/furrymatch/service-matching/internal/domain/searchcriteria"
	"github.com/furrymatch/service-matching/internal/platform/domain"
)

// PetModel is the GORM model for the pets table.
type PetModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	OwnerID     uuid.UUID `gorm:"type:uuid;not null;index"`
	Name        string    `gorm:"size:100;not null"`
	PetType     string    `gorm:"size:10;not null"`
	Sex         string    `gorm:"size:1;not null"`
	BreedID     *int64    `gorm:""`
	Description string    `gorm:"type:text;not null"`
	TradePups   bool      `gorm:"not null"`
	TradeMoney  bool      `gorm:"not null"`
	Pedigree    bool      `gorm:"not null"`
	Booklet     bool      `gorm:"not null"`
	Version     int64     `gorm:"not null;default:1"`
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null"`
}

func (PetModel) TableName() string { return "pets" }

// GormPetRepository implements PetRepository and PetSearcher using GORM.
type GormPetRepository struct {
	db *gorm.DB
}

func NewGormPetRepository(db *gorm.DB) *GormPetRepository {
	return &GormPetRepository{db: db}
}

func (r *GormPetRepository) FindByID(ctx context.Context, id uuid.UUID) (*petDomain.Pet, error) {
	var model PetModel
	if err := conn(ctx, r.db).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Pet", id.String())
		}
		return nil, fmt.Errorf("failed to find pet: %w", err)
	}
	return toPetDomain(&model), nil
}

func (r *GormPetRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*petDomain.Pet, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var models []PetModel
	if err := conn(ctx, r.db).Where("id IN ?", ids).Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find pets: %w", err)
	}
	return toPetDomains(models), nil
}

func (r *GormPetRepository) FindByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]*petDomain.Pet, error) {
	var models []PetModel
	if err := conn(ctx, r.db).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find owner pets: %w", err)
	}
	return toPetDomains(models), nil
}

func (r *GormPetRepository) List(ctx context.Context, page, limit int) ([]*petDomain.Pet, int64, error) {
	var total int64
	if err := conn(ctx, r.db).Model(&PetModel{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count pets: %w", err)
	}

	var models []PetModel
	if err := conn(ctx, r.db).
		Order(searchcriteria.OrderBy).
		Offset(domain.Offset(page, limit)).
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list pets: %w", err)
	}
	return toPetDomains(models), total, nil
}

// Search returns one page of pets matching f, newest first.
func (r *GormPetRepository) Search(ctx context.Context, f searchcriteria.Filter, page, limit int) ([]*petDomain.Pet, int64, error) {
	var total int64
	if err := searchQuery(conn(ctx, r.db), f).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count search results: %w", err)
	}

	var models []PetModel
	if err := searchPage(conn(ctx, r.db), f, page, limit).Find(&models).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to search pets: %w", err)
	}
	return toPetDomains(models), total, nil
}

func searchQuery(db *gorm.DB, f searchcriteria.Filter) *gorm.DB {
	q := db.Model(&PetModel{}).
		Joins("JOIN owners ON owners.id = pets.owner_id").
		Joins("LEFT JOIN search_criteria ON search_criteria.pet_id = pets.id")
	for _, c := range f.Conditions() {
		q = q.Where(c.Query, c.Args...)
	}
	return q
}

func searchPage(db *gorm.DB, f searchcriteria.Filter, page, limit int) *gorm.DB {
	return searchQuery(db, f).
		Select("pets.*").
		Order(searchcriteria.OrderBy).
		Offset(domain.Offset(page, limit)).
		Limit(limit)
}

func (r *GormPetRepository) Save(ctx context.Context, pet *petDomain.Pet) error {
	if err := conn(ctx, r.db).Create(toPetModel(pet)).Error; err != nil {
		return fmt.Errorf("failed to save pet: %w", err)
	}
	return nil
}

// Update writes the pet with optimistic locking on version.
func (r *GormPetRepository) Update(ctx context.Context, pet *petDomain.Pet) error {
	m := toPetModel(pet)
	previousVersion := pet.Version() - 1

	result := conn(ctx, r.db).
		Model(&PetModel{}).
		Where("id = ? AND version = ?", m.ID, previousVersion).
		Updates(map[string]interface{}{
			"name":        m.Name,
			"pet_type":    m.PetType,
			"sex":         m.Sex,
			"breed_id":    m.BreedID,
			"description": m.Description,
			"trade_pups":  m.TradePups,
			"trade_money": m.TradeMoney,
			"pedigree":    m.Pedigree,
			"booklet":     m.Booklet,
			"version":     m.Version,
			"updated_at":  m.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update pet: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewConflictError("pet was modified by another transaction")
	}
	return nil
}

// Delete removes the pet; likes, matches, chats, contracts and photos go with it.
func (r *GormPetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := conn(ctx, r.db).Where("id = ?", id).Delete(&PetModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete pet: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("Pet", id.String())
	}
	return nil
}

func (r *GormPetRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := conn(ctx, r.db).Model(&PetModel{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count pets: %w", err)
	}
	return n, nil
}

// --- Conversions ---

func toPetModel(p *petDomain.Pet) *PetModel {
	t := p.Traits()
	return &PetModel{
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
		Version:     p.Version(),
		CreatedAt:   p.CreatedAt(),
		UpdatedAt:   p.UpdatedAt(),
	}
}

func toPetDomain(m *PetModel) *petDomain.Pet {
	return petDomain.Reconstruct(
		m.ID, m.OwnerID,
		m.Name,
		petDomain.PetType(m.PetType),
		petDomain.Sex(m.Sex),
		m.BreedID,
		m.Description,
		petDomain.Traits{
			TradePups:  m.TradePups,
			TradeMoney: m.TradeMoney,
			Pedigree:   m.Pedigree,
			Booklet:    m.Booklet,
		},
		m.Version,
		m.CreatedAt, m.UpdatedAt,
	)
}

func toPetDomains(models []PetModel) []*petDomain.Pet {
	pets := make([]*petDomain.Pet, len(models))
	for i := range models {
		pets[i] = toPetDomain(&models[i])
	}
	return pets
}

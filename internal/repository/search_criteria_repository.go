package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	petDomain "github.com/furrymatch/service-matching/internal/domain/pet"
	"github.com/furrymatch/service-matching/internal/domain/searchcriteria"
	"github.com/furrymatch/service-matching/internal/platform/domain"
)

// SearchCriteriaModel is the GORM model for the search_criteria table.
type SearchCriteriaModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	PetID      uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	Objective  *string   `gorm:"size:20"`
	FilterType *string   `gorm:"size:10"`
	Sex        *string   `gorm:"size:1"`
	BreedID    *int64
	TradePups  *bool
	TradeMoney *bool
	Pedigree   *bool
	Province   *string `gorm:"size:60"`
	Canton     *string `gorm:"size:60"`
	District   *string `gorm:"size:60"`
	UpdatedAt  time.Time
}

func (SearchCriteriaModel) TableName() string { return "search_criteria" }

// GormSearchCriteriaRepository stores one criteria row per pet.
type GormSearchCriteriaRepository struct {
	db *gorm.DB
}

func NewGormSearchCriteriaRepository(db *gorm.DB) *GormSearchCriteriaRepository {
	return &GormSearchCriteriaRepository{db: db}
}

func (r *GormSearchCriteriaRepository) FindByPetID(ctx context.Context, petID uuid.UUID) (*searchcriteria.SearchCriteria, error) {
	var m SearchCriteriaModel
	if err := conn(ctx, r.db).Where("pet_id = ?", petID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("SearchCriteria", petID.String())
		}
		return nil, fmt.Errorf("failed to find search criteria: %w", err)
	}
	return toSearchCriteriaDomain(&m), nil
}

// Upsert inserts the criteria or replaces the row already stored for the pet.
func (r *GormSearchCriteriaRepository) Upsert(ctx context.Context, sc *searchcriteria.SearchCriteria) error {
	m := toSearchCriteriaModel(sc)
	err := conn(ctx, r.db).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "pet_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"objective", "filter_type", "sex", "breed_id",
			"trade_pups", "trade_money", "pedigree",
			"province", "canton", "district", "updated_at",
		}),
	}).Create(m).Error
	if err != nil {
		return fmt.Errorf("failed to save search criteria: %w", err)
	}
	return nil
}

func toSearchCriteriaModel(sc *searchcriteria.SearchCriteria) *SearchCriteriaModel {
	c := sc.Criteria()
	m := &SearchCriteriaModel{
		ID:         sc.ID(),
		PetID:      sc.PetID(),
		BreedID:    c.BreedID,
		TradePups:  c.TradePups,
		TradeMoney: c.TradeMoney,
		Pedigree:   c.Pedigree,
		Province:   nonEmpty(c.Province),
		Canton:     nonEmpty(c.Canton),
		District:   nonEmpty(c.District),
		UpdatedAt:  sc.UpdatedAt(),
	}
	if c.Objective != nil {
		m.Objective = stringPtr(string(*c.Objective))
	}
	if c.PetType != nil {
		m.FilterType = stringPtr(string(*c.PetType))
	}
	if c.Sex != nil {
		m.Sex = stringPtr(string(*c.Sex))
	}
	return m
}

func toSearchCriteriaDomain(m *SearchCriteriaModel) *searchcriteria.SearchCriteria {
	c := searchcriteria.Criteria{
		BreedID:    m.BreedID,
		TradePups:  m.TradePups,
		TradeMoney: m.TradeMoney,
		Pedigree:   m.Pedigree,
		Province:   deref(m.Province),
		Canton:     deref(m.Canton),
		District:   deref(m.District),
	}
	if m.Objective != nil {
		o := searchcriteria.Objective(*m.Objective)
		c.Objective = &o
	}
	if m.FilterType != nil {
		t := petDomain.PetType(*m.FilterType)
		c.PetType = &t
	}
	if m.Sex != nil {
		s := petDomain.Sex(*m.Sex)
		c.Sex = &s
	}
	return searchcriteria.Reconstruct(m.ID, m.PetID, c, m.UpdatedAt)
}

func stringPtr(s string) *string { return &s }

func nonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

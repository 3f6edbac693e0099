package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	matchDomain "github.com/furrymatch/service-matching/internal/domain/match"
	"github.com/furrymatch/service-matching/internal/platform/domain"
)

// MatchModel is the GORM model for the matches table.
type MatchModel struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey"`
	FirstLikedID  uuid.UUID  `gorm:"type:uuid;not null"`
	SecondLikedID uuid.UUID  `gorm:"type:uuid;not null"`
	FirstPetID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	SecondPetID   uuid.UUID  `gorm:"type:uuid;not null;index"`
	NotifyMatch   bool       `gorm:"not null;default:true"`
	MatchDate     time.Time  `gorm:"type:date;not null"`
	ContractID    *uuid.UUID `gorm:"type:uuid"`
	CreatedAt     time.Time  `gorm:"not null"`
}

func (MatchModel) TableName() string { return "matches" }

// GormMatchRepository implements MatchRepository using GORM.
type GormMatchRepository struct {
	db *gorm.DB
}

func NewGormMatchRepository(db *gorm.DB) *GormMatchRepository {
	return &GormMatchRepository{db: db}
}

func (r *GormMatchRepository) FindByID(ctx context.Context, id uuid.UUID) (*matchDomain.Match, error) {
	var m MatchModel
	if err := conn(ctx, r.db).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Match", id.String())
		}
		return nil, fmt.Errorf("failed to find match: %w", err)
	}
	return toMatchDomain(&m), nil
}

// Upsert relies on the unique index over the unordered pet pair. When the
// pair is already matched the existing row is returned with created=false.
func (r *GormMatchRepository) Upsert(ctx context.Context, m *matchDomain.Match) (*matchDomain.Match, bool, error) {
	result := conn(ctx, r.db).Clauses(clause.OnConflict{DoNothing: true}).Create(toMatchModel(m))
	if result.Error != nil {
		return nil, false, fmt.Errorf("failed to save match: %w", result.Error)
	}
	if result.RowsAffected > 0 {
		return m, true, nil
	}

	var existing MatchModel
	err := pairScope(conn(ctx, r.db), m.FirstPetID(), m.SecondPetID()).First(&existing).Error
	if err != nil {
		return nil, false, fmt.Errorf("failed to load existing match: %w", err)
	}
	return toMatchDomain(&existing), false, nil
}

func pairScope(db *gorm.DB, a, b uuid.UUID) *gorm.DB {
	return db.Where(
		"(first_pet_id = ? AND second_pet_id = ?) OR (first_pet_id = ? AND second_pet_id = ?)",
		a, b, b, a,
	)
}

// FindByPetID returns the matches of a pet, newest first.
func (r *GormMatchRepository) FindByPetID(ctx context.Context, petID uuid.UUID) ([]*matchDomain.Match, error) {
	var models []MatchModel
	if err := conn(ctx, r.db).
		Where("first_pet_id = ? OR second_pet_id = ?", petID, petID).
		Order("created_at DESC, id").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find pet matches: %w", err)
	}
	matches := make([]*matchDomain.Match, len(models))
	for i := range models {
		matches[i] = toMatchDomain(&models[i])
	}
	return matches, nil
}

func (r *GormMatchRepository) LatestForPet(ctx context.Context, petID uuid.UUID) (*matchDomain.Match, error) {
	var m MatchModel
	err := conn(ctx, r.db).
		Where("first_pet_id = ? OR second_pet_id = ?", petID, petID).
		Order("created_at DESC, id").
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Match for pet", petID.String())
		}
		return nil, fmt.Errorf("failed to find latest match: %w", err)
	}
	return toMatchDomain(&m), nil
}

// Acknowledge sets notify_match to false.
func (r *GormMatchRepository) Acknowledge(ctx context.Context, id uuid.UUID) error {
	return r.updateColumn(ctx, id, "notify_match", false)
}

// UpdateContractLink writes contract_id only, so it never races with an
// acknowledgement of the same match.
func (r *GormMatchRepository) UpdateContractLink(ctx context.Context, m *matchDomain.Match) error {
	return r.updateColumn(ctx, m.ID(), "contract_id", m.ContractID())
}

func (r *GormMatchRepository) updateColumn(ctx context.Context, id uuid.UUID, column string, value interface{}) error {
	result := matchColumnUpdate(conn(ctx, r.db), id, column, value)
	if result.Error != nil {
		return fmt.Errorf("failed to update match: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("Match", id.String())
	}
	return nil
}

func matchColumnUpdate(db *gorm.DB, id uuid.UUID, column string, value interface{}) *gorm.DB {
	return db.Model(&MatchModel{}).Where("id = ?", id).Update(column, value)
}

func (r *GormMatchRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := conn(ctx, r.db).Where("id = ?", id).Delete(&MatchModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete match: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("Match", id.String())
	}
	return nil
}

func (r *GormMatchRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := conn(ctx, r.db).Model(&MatchModel{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count matches: %w", err)
	}
	return n, nil
}

func toMatchModel(m *matchDomain.Match) *MatchModel {
	return &MatchModel{
		ID:            m.ID(),
		FirstLikedID:  m.FirstLikedID(),
		SecondLikedID: m.SecondLikedID(),
		FirstPetID:    m.FirstPetID(),
		SecondPetID:   m.SecondPetID(),
		NotifyMatch:   m.NotifyMatch(),
		MatchDate:     m.MatchDate(),
		ContractID:    m.ContractID(),
		CreatedAt:     m.CreatedAt(),
	}
}

func toMatchDomain(m *MatchModel) *matchDomain.Match {
	return matchDomain.Reconstruct(
		m.ID, m.FirstLikedID, m.SecondLikedID, m.FirstPetID, m.SecondPetID,
		m.NotifyMatch, m.MatchDate, m.ContractID, m.CreatedAt,
	)
}

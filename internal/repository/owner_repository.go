package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	ownerDomain "github.com/furrymatch/service-matching/internal/domain/owner"
	"github.com/furrymatch/service-matching/internal/platform/domain"
)

// OwnerModel is the GORM model for the owners table.
type OwnerModel struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey"`
	FirstName        string     `gorm:"size:100;not null"`
	LastName         string     `gorm:"size:100;not null"`
	Phone            string     `gorm:"size:30;not null"`
	PhotoURL         string     `gorm:"type:text;not null"`
	Province         string     `gorm:"size:60;not null"`
	Canton           string     `gorm:"size:60;not null"`
	District         string     `gorm:"size:60;not null"`
	SelectedPetID    *uuid.UUID `gorm:"type:uuid"`
	ActiveMatchID    *uuid.UUID `gorm:"type:uuid"`
	ActiveMatchPetID *uuid.UUID `gorm:"type:uuid"`
	CreatedAt        time.Time  `gorm:"not null"`
	UpdatedAt        time.Time  `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (OwnerModel) TableName() string { return "owners" }

// GormOwnerRepository implements OwnerRepository using GORM.
type GormOwnerRepository struct {
	db *gorm.DB
}

// NewGormOwnerRepository creates a new GormOwnerRepository.
func NewGormOwnerRepository(db *gorm.DB) *GormOwnerRepository {
	return &GormOwnerRepository{db: db}
}

// FindByID retrieves an owner profile.
func (r *GormOwnerRepository) FindByID(ctx context.Context, id uuid.UUID) (*ownerDomain.Owner, error) {
	var model OwnerModel
	if err := conn(ctx, r.db).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Owner", id.String())
		}
		return nil, fmt.Errorf("failed to find owner: %w", err)
	}
	return toOwnerDomain(&model), nil
}

// Save persists a new owner profile.
func (r *GormOwnerRepository) Save(ctx context.Context, o *ownerDomain.Owner) error {
	if err := conn(ctx, r.db).Create(toOwnerModel(o)).Error; err != nil {
		return fmt.Errorf("failed to save owner: %w", err)
	}
	return nil
}

// SaveIfAbsent inserts a blank profile row for a user seen for the first time.
func (r *GormOwnerRepository) SaveIfAbsent(ctx context.Context, o *ownerDomain.Owner) (bool, error) {
	result := insertOwnerIfAbsent(conn(ctx, r.db), o)
	if result.Error != nil {
		return false, fmt.Errorf("failed to save owner: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func insertOwnerIfAbsent(db *gorm.DB, o *ownerDomain.Owner) *gorm.DB {
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoNothing: true,
	}).Create(toOwnerModel(o))
}

// Update writes every column, including cleared references.
func (r *GormOwnerRepository) Update(ctx context.Context, o *ownerDomain.Owner) error {
	m := toOwnerModel(o)
	result := conn(ctx, r.db).
		Model(&OwnerModel{}).
		Where("id = ?", m.ID).
		Updates(map[string]interface{}{
			"first_name":          m.FirstName,
			"last_name":           m.LastName,
			"phone":               m.Phone,
			"photo_url":           m.PhotoURL,
			"province":            m.Province,
			"canton":              m.Canton,
			"district":            m.District,
			"selected_pet_id":     m.SelectedPetID,
			"active_match_id":     m.ActiveMatchID,
			"active_match_pet_id": m.ActiveMatchPetID,
			"updated_at":          m.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update owner: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("Owner", m.ID.String())
	}
	return nil
}

// Count returns the number of owner profiles.
func (r *GormOwnerRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := conn(ctx, r.db).Model(&OwnerModel{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count owners: %w", err)
	}
	return n, nil
}

func toOwnerModel(o *ownerDomain.Owner) *OwnerModel {
	p := o.Profile()
	return &OwnerModel{
		ID:               o.ID(),
		FirstName:        p.FirstName,
		LastName:         p.LastName,
		Phone:            p.Phone,
		PhotoURL:         p.PhotoURL,
		Province:         p.Province,
		Canton:           p.Canton,
		District:         p.District,
		SelectedPetID:    o.SelectedPetID(),
		ActiveMatchID:    o.ActiveMatchID(),
		ActiveMatchPetID: o.ActiveMatchPetID(),
		CreatedAt:        o.CreatedAt(),
		UpdatedAt:        o.UpdatedAt(),
	}
}

func toOwnerDomain(m *OwnerModel) *ownerDomain.Owner {
	return ownerDomain.Reconstruct(
		m.ID,
		ownerDomain.Profile{
			FirstName: m.FirstName,
			LastName:  m.LastName,
			Phone:     m.Phone,
			PhotoURL:  m.PhotoURL,
			Province:  m.Province,
			Canton:    m.Canton,
			District:  m.District,
		},
		m.SelectedPetID, m.ActiveMatchID, m.ActiveMatchPetID,
		m.CreatedAt, m.UpdatedAt,
	)
}

package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	photoDomain "github.com/furrymatch/service-matching/internal/domain/photo"
	"github.com/furrymatch/service-matching/internal/platform/domain"
)

// PetPhotoModel is the GORM model for the pet_photos table.
type PetPhotoModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	PetID     uuid.UUID `gorm:"type:uuid;not null;index"`
	ObjectKey string    `gorm:"type:text;not null"`
	Caption   string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name.
func (PetPhotoModel) TableName() string { return "pet_photos" }

// GormPhotoRepository implements PhotoRepository using GORM.
type GormPhotoRepository struct {
	db *gorm.DB
}

// NewGormPhotoRepository creates a new GormPhotoRepository.
func NewGormPhotoRepository(db *gorm.DB) *GormPhotoRepository {
	return &GormPhotoRepository{db: db}
}

// Save persists a new pet photo.
func (r *GormPhotoRepository) Save(ctx context.Context, p *photoDomain.PetPhoto) error {
	model := PetPhotoModel{
		ID:        p.ID(),
		PetID:     p.PetID(),
		ObjectKey: p.ObjectKey(),
		Caption:   p.Caption(),
		CreatedAt: p.CreatedAt(),
	}
	if err := conn(ctx, r.db).Create(&model).Error; err != nil {
		return fmt.Errorf("failed to save pet photo: %w", err)
	}
	return nil
}

// FindByPetID returns a pet's photos, oldest first.
func (r *GormPhotoRepository) FindByPetID(ctx context.Context, petID uuid.UUID) ([]*photoDomain.PetPhoto, error) {
	var models []PetPhotoModel
	if err := conn(ctx, r.db).Where("pet_id = ?", petID).Order("created_at ASC").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find pet photos: %w", err)
	}
	photos := make([]*photoDomain.PetPhoto, len(models))
	for i, m := range models {
		photos[i] = photoDomain.Reconstruct(m.ID, m.PetID, m.ObjectKey, m.Caption, m.CreatedAt)
	}
	return photos, nil
}

// FindByID returns a single photo.
func (r *GormPhotoRepository) FindByID(ctx context.Context, id uuid.UUID) (*photoDomain.PetPhoto, error) {
	var m PetPhotoModel
	if err := conn(ctx, r.db).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("PetPhoto", id.String())
		}
		return nil, fmt.Errorf("failed to find pet photo: %w", err)
	}
	return photoDomain.Reconstruct(m.ID, m.PetID, m.ObjectKey, m.Caption, m.CreatedAt), nil
}

// Delete removes a photo row. The stored object is left to a bucket lifecycle rule.
func (r *GormPhotoRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := conn(ctx, r.db).Where("id = ?", id).Delete(&PetPhotoModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete pet photo: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("PetPhoto", id.String())
	}
	return nil
}

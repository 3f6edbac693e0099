package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	likeeDomain "github.com/furrymatch/service-matching/internal/domain/likee"
	"github.com/furrymatch/service-matching/internal/platform/domain"
)

// LikeeModel is the GORM model for the likees table.
type LikeeModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	FirstPetID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:ux_likees_pair"`
	SecondPetID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:ux_likees_pair"`
	LikeState   bool      `gorm:"not null;default:true"`
	CreatedAt   time.Time `gorm:"not null"`
}

func (LikeeModel) TableName() string { return "likees" }

// GormLikeeRepository implements LikeeRepository using GORM.
type GormLikeeRepository struct {
	db *gorm.DB
}

func NewGormLikeeRepository(db *gorm.DB) *GormLikeeRepository {
	return &GormLikeeRepository{db: db}
}

func (r *GormLikeeRepository) FindByID(ctx context.Context, id uuid.UUID) (*likeeDomain.Likee, error) {
	var m LikeeModel
	if err := conn(ctx, r.db).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Likee", id.String())
		}
		return nil, fmt.Errorf("failed to find likee: %w", err)
	}
	return toLikeeDomain(&m), nil
}

func (r *GormLikeeRepository) FindByPair(ctx context.Context, firstPetID, secondPetID uuid.UUID) (*likeeDomain.Likee, error) {
	var m LikeeModel
	err := conn(ctx, r.db).
		Where("first_pet_id = ? AND second_pet_id = ?", firstPetID, secondPetID).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Likee", firstPetID.String()+"->"+secondPetID.String())
		}
		return nil, fmt.Errorf("failed to find likee pair: %w", err)
	}
	return toLikeeDomain(&m), nil
}

// SaveIfAbsent inserts the like unless the ordered pair exists, then returns
// the stored row.
func (r *GormLikeeRepository) SaveIfAbsent(ctx context.Context, l *likeeDomain.Likee) (*likeeDomain.Likee, error) {
	if err := insertLikeIfAbsent(conn(ctx, r.db), l).Error; err != nil {
		return nil, fmt.Errorf("failed to save likee: %w", err)
	}
	return r.FindByPair(ctx, l.FirstPetID(), l.SecondPetID())
}

func insertLikeIfAbsent(db *gorm.DB, l *likeeDomain.Likee) *gorm.DB {
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "first_pet_id"}, {Name: "second_pet_id"}},
		DoNothing: true,
	}).Create(toLikeeModel(l))
}

// LockPair serialises like/match work on an unordered pet pair until the
// surrounding transaction ends.
func (r *GormLikeeRepository) LockPair(ctx context.Context, a, b uuid.UUID) error {
	if err := conn(ctx, r.db).Exec("SELECT pg_advisory_xact_lock(hashtextextended(?, 0))", pairKey(a, b)).Error; err != nil {
		return fmt.Errorf("failed to lock pet pair: %w", err)
	}
	return nil
}

func pairKey(a, b uuid.UUID) string {
	x, y := a.String(), b.String()
	if y < x {
		x, y = y, x
	}
	return x + ":" + y
}

func (r *GormLikeeRepository) FindByFirstPetID(ctx context.Context, petID uuid.UUID, page, limit int) ([]*likeeDomain.Likee, int64, error) {
	var total int64
	if err := conn(ctx, r.db).Model(&LikeeModel{}).Where("first_pet_id = ?", petID).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count likees: %w", err)
	}

	var models []LikeeModel
	if err := conn(ctx, r.db).
		Where("first_pet_id = ?", petID).
		Order("created_at DESC, id").
		Offset(domain.Offset(page, limit)).
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list likees: %w", err)
	}

	likes := make([]*likeeDomain.Likee, len(models))
	for i := range models {
		likes[i] = toLikeeDomain(&models[i])
	}
	return likes, total, nil
}

func (r *GormLikeeRepository) UpdateState(ctx context.Context, l *likeeDomain.Likee) error {
	result := conn(ctx, r.db).Model(&LikeeModel{}).Where("id = ?", l.ID()).Update("like_state", l.LikeState())
	if result.Error != nil {
		return fmt.Errorf("failed to update likee: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("Likee", l.ID().String())
	}
	return nil
}

func (r *GormLikeeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := conn(ctx, r.db).Where("id = ?", id).Delete(&LikeeModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete likee: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("Likee", id.String())
	}
	return nil
}

func (r *GormLikeeRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := conn(ctx, r.db).Model(&LikeeModel{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count likees: %w", err)
	}
	return n, nil
}

func toLikeeModel(l *likeeDomain.Likee) *LikeeModel {
	return &LikeeModel{
		ID:          l.ID(),
		FirstPetID:  l.FirstPetID(),
		SecondPetID: l.SecondPetID(),
		LikeState:   l.LikeState(),
		CreatedAt:   l.CreatedAt(),
	}
}

func toLikeeDomain(m *LikeeModel) *likeeDomain.Likee {
	return likeeDomain.Reconstruct(m.ID, m.FirstPetID, m.SecondPetID, m.LikeState, m.CreatedAt)
}

package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	contractDomain "github.com/furrymatch/service-matching/internal/domain/contract"
	"github.com/furrymatch/service-matching/internal/platform/domain"
)

// ContractModel is the GORM model for the contracts table.
type ContractModel struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	MatchID   uuid.UUID  `gorm:"type:uuid;uniqueIndex;not null"`
	Terms     string     `gorm:"type:text;not null"`
	Notes     string     `gorm:"type:text;not null"`
	AuthorID  uuid.UUID  `gorm:"type:uuid;not null"`
	Status    string     `gorm:"size:10;not null;index"`
	SentBy    *uuid.UUID `gorm:"type:uuid"`
	SentAt    *time.Time
	Version   int64     `gorm:"not null;default:1"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (ContractModel) TableName() string { return "contracts" }

// GormContractRepository is the GORM-based implementation of ContractRepository.
type GormContractRepository struct {
	db *gorm.DB
}

// NewGormContractRepository creates a new GormContractRepository.
func NewGormContractRepository(db *gorm.DB) *GormContractRepository {
	return &GormContractRepository{db: db}
}

// FindByID retrieves a contract by its unique identifier.
func (r *GormContractRepository) FindByID(ctx context.Context, id uuid.UUID) (*contractDomain.Contract, error) {
	return r.findOne(ctx, "id = ?", id)
}

// FindByMatchID retrieves the contract of a match.
func (r *GormContractRepository) FindByMatchID(ctx context.Context, matchID uuid.UUID) (*contractDomain.Contract, error) {
	return r.findOne(ctx, "match_id = ?", matchID)
}

func (r *GormContractRepository) findOne(ctx context.Context, query string, id uuid.UUID) (*contractDomain.Contract, error) {
	var m ContractModel
	if err := conn(ctx, r.db).Where(query, id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Contract", id.String())
		}
		return nil, fmt.Errorf("failed to find contract: %w", err)
	}
	return toContractDomain(&m)
}

// FindByMatchIDs returns the contracts of the given matches keyed by match id.
func (r *GormContractRepository) FindByMatchIDs(ctx context.Context, matchIDs []uuid.UUID) (map[uuid.UUID]*contractDomain.Contract, error) {
	out := make(map[uuid.UUID]*contractDomain.Contract, len(matchIDs))
	if len(matchIDs) == 0 {
		return out, nil
	}
	var models []ContractModel
	if err := conn(ctx, r.db).Where("match_id IN ?", matchIDs).Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find contracts: %w", err)
	}
	for i := range models {
		c, err := toContractDomain(&models[i])
		if err != nil {
			return nil, err
		}
		out[c.MatchID()] = c
	}
	return out, nil
}

// Save persists a new contract. A second contract for the same match is a conflict.
func (r *GormContractRepository) Save(ctx context.Context, c *contractDomain.Contract) error {
	if err := conn(ctx, r.db).Create(toContractModel(c)).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.NewConflictError("match already has a contract")
		}
		return fmt.Errorf("failed to save contract: %w", err)
	}
	return nil
}

// Update persists changes with optimistic locking.
func (r *GormContractRepository) Update(ctx context.Context, c *contractDomain.Contract) error {
	m := toContractModel(c)
	expectedVersion := c.Version() - 1
	result := conn(ctx, r.db).
		Model(&ContractModel{}).
		Where("id = ? AND version = ?", m.ID, expectedVersion).
		Updates(map[string]interface{}{
			"terms":      m.Terms,
			"notes":      m.Notes,
			"status":     m.Status,
			"sent_by":    m.SentBy,
			"sent_at":    m.SentAt,
			"version":    m.Version,
			"updated_at": m.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update contract: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewConflictError("contract was modified by another transaction")
	}
	return nil
}

// Delete removes a contract.
func (r *GormContractRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := conn(ctx, r.db).Where("id = ?", id).Delete(&ContractModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete contract: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("Contract", id.String())
	}
	return nil
}

// CountByStatus returns contract counts grouped by status (admin).
func (r *GormContractRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	type statusCount struct {
		Status string
		Count  int64
	}
	var results []statusCount
	if err := conn(ctx, r.db).Model(&ContractModel{}).
		Select("status, count(*) as count").
		Group("status").
		Find(&results).Error; err != nil {
		return nil, fmt.Errorf("failed to count by status: %w", err)
	}

	counts := make(map[string]int64)
	for _, sc := range results {
		counts[sc.Status] = sc.Count
	}
	return counts, nil
}

func toContractModel(c *contractDomain.Contract) *ContractModel {
	return &ContractModel{
		ID:        c.ID(),
		MatchID:   c.MatchID(),
		Terms:     c.Terms(),
		Notes:     c.Notes(),
		AuthorID:  c.AuthorID(),
		Status:    string(c.Status()),
		SentBy:    c.SentBy(),
		SentAt:    c.SentAt(),
		Version:   c.Version(),
		CreatedAt: c.CreatedAt(),
		UpdatedAt: c.UpdatedAt(),
	}
}

func toContractDomain(m *ContractModel) (*contractDomain.Contract, error) {
	status, err := contractDomain.ParseStatus(m.Status)
	if err != nil {
		return nil, err
	}
	return contractDomain.Reconstruct(
		m.ID, m.MatchID,
		m.Terms, m.Notes,
		m.AuthorID,
		status,
		m.SentBy, m.SentAt,
		m.Version,
		m.CreatedAt, m.UpdatedAt,
	), nil
}

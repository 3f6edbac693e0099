package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	contractDomain "github.com/furrymatch/service-matching/internal/domain/contract"
	matchDomain "github.com/furrymatch/service-matching/internal/domain/match"
	petDomain "github.com/furrymatch/service-matching/internal/domain/pet"
	"github.com/furrymatch/service-matching/internal/platform/domain"
	"github.com/furrymatch/service-matching/internal/platform/metrics"
	"github.com/furrymatch/service-matching/internal/proto/events"
)

// CreateContractRequest drafts the contract of a match.
type CreateContractRequest struct {
	MatchID uuid.UUID `json:"match_id" binding:"required"`
	Terms   string    `json:"terms" binding:"required"`
	Notes   string    `json:"notes"`
}

// UpdateContractRequest revises a drafted contract.
type UpdateContractRequest struct {
	Terms string `json:"terms" binding:"required"`
	Notes string `json:"notes"`
}

// ContractDTO is the API response representation of a contract.
type ContractDTO struct {
	ID        uuid.UUID  `json:"id"`
	MatchID   uuid.UUID  `json:"match_id"`
	Terms     string     `json:"terms"`
	Notes     string     `json:"notes,omitempty"`
	AuthorID  uuid.UUID  `json:"author_id"`
	Status    string     `json:"status"`
	Step      int        `json:"step"`
	SentBy    *uuid.UUID `json:"sent_by,omitempty"`
	SentAt    *time.Time `json:"sent_at,omitempty"`
	Version   int64      `json:"version"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// MatchedPetDTO is one match of a pet with the counterpart pet and the
// contract, if any.
type MatchedPetDTO struct {
	MatchID     uuid.UUID    `json:"match_id"`
	MatchDate   time.Time    `json:"match_date"`
	Counterpart PetDTO       `json:"counterpart"`
	Contract    *ContractDTO `json:"contract,omitempty"`
}

// ContractService implements the contract workflow between matched owners.
type ContractService struct {
	contracts    contractDomain.ContractRepository
	matches      matchDomain.MatchRepository
	pets         petDomain.PetRepository
	participants *participantResolver
	tx           Transactor
	publisher    EventPublisher
	logger       *zap.Logger
	now          func() time.Time
}

// NewContractService creates a new ContractService.
func NewContractService(
	contracts contractDomain.ContractRepository,
	matches matchDomain.MatchRepository,
	pets petDomain.PetRepository,
	tx Transactor,
	publisher EventPublisher,
	logger *zap.Logger,
) *ContractService {
	return &ContractService{
		contracts:    contracts,
		matches:      matches,
		pets:         pets,
		participants: newParticipantResolver(matches, pets),
		tx:           tx,
		publisher:    publisher,
		logger:       logger,
		now:          time.Now,
	}
}

// Create drafts the contract of a match the caller participates in and links
// it to the match. A match holds at most one contract.
func (s *ContractService) Create(ctx context.Context, ownerID uuid.UUID, req CreateContractRequest) (*ContractDTO, error) {
	m, _, err := s.participants.ResolveFor(ctx, ownerID, req.MatchID)
	if err != nil {
		return nil, err
	}
	if m.ContractID() != nil {
		return nil, domain.NewConflictError("match already has a contract")
	}

	c, err := contractDomain.NewContract(req.MatchID, ownerID, req.Terms, req.Notes)
	if err != nil {
		return nil, err
	}

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.contracts.Save(ctx, c); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return domain.NewConflictError("match already has a contract")
			}
			return fmt.Errorf("failed to save contract: %w", err)
		}
		if err := m.LinkContract(c.ID()); err != nil {
			return err
		}
		if err := s.matches.UpdateContractLink(ctx, m); err != nil {
			return fmt.Errorf("failed to link contract: %w", err)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("failed to create contract", zap.String("match_id", req.MatchID.String()), zap.Error(err))
		return nil, err
	}

	metrics.ContractTransitions.WithLabelValues(c.Status().String()).Inc()
	s.logger.Info("contract created",
		zap.String("contract_id", c.ID().String()),
		zap.String("match_id", req.MatchID.String()),
	)
	publishEvent(ctx, s.publisher, s.logger, events.TopicContractEvents, events.ContractCreated, events.ContractCreatedEvent{
		ContractID: c.ID(),
		MatchID:    c.MatchID(),
		AuthorID:   ownerID,
		OccurredAt: c.CreatedAt(),
	})
	result := toContractDTO(c)
	return &result, nil
}

// Get returns a contract of a match the caller participates in.
func (s *ContractService) Get(ctx context.Context, ownerID, contractID uuid.UUID) (*ContractDTO, error) {
	c, _, err := s.load(ctx, ownerID, contractID)
	if err != nil {
		return nil, err
	}
	result := toContractDTO(c)
	return &result, nil
}

// Update revises the terms and notes of a drafted contract.
func (s *ContractService) Update(ctx context.Context, ownerID, contractID uuid.UUID, req UpdateContractRequest) (*ContractDTO, error) {
	c, _, err := s.load(ctx, ownerID, contractID)
	if err != nil {
		return nil, err
	}
	if err := c.Revise(req.Terms, req.Notes); err != nil {
		return nil, err
	}
	if err := s.contracts.Update(ctx, c); err != nil {
		s.logger.Error("failed to update contract", zap.String("contract_id", contractID.String()), zap.Error(err))
		return nil, fmt.Errorf("failed to update contract: %w", err)
	}
	s.logger.Info("contract revised", zap.String("contract_id", contractID.String()))
	result := toContractDTO(c)
	return &result, nil
}

// Send moves the contract to step 2 on behalf of the caller and notifies the
// counterpart. Sending again records the latest sender.
func (s *ContractService) Send(ctx context.Context, ownerID, contractID uuid.UUID) (*ContractDTO, error) {
	c, p, err := s.load(ctx, ownerID, contractID)
	if err != nil {
		return nil, err
	}
	if err := c.Send(ownerID, s.now()); err != nil {
		return nil, err
	}
	if err := s.contracts.Update(ctx, c); err != nil {
		s.logger.Error("failed to send contract", zap.String("contract_id", contractID.String()), zap.Error(err))
		return nil, fmt.Errorf("failed to send contract: %w", err)
	}

	metrics.ContractTransitions.WithLabelValues(c.Status().String()).Inc()
	s.logger.Info("contract sent",
		zap.String("contract_id", contractID.String()),
		zap.String("sent_by", ownerID.String()),
	)
	recipient, _ := p.CounterpartOf(ownerID)
	publishEvent(ctx, s.publisher, s.logger, events.TopicContractEvents, events.ContractSent, events.ContractSentEvent{
		ContractID:  c.ID(),
		MatchID:     c.MatchID(),
		SentBy:      ownerID,
		RecipientID: recipient.OwnerID,
		Step:        c.Status().Step(),
		OccurredAt:  *c.SentAt(),
	})
	result := toContractDTO(c)
	return &result, nil
}

// Delete removes a contract and unlinks it from its match.
func (s *ContractService) Delete(ctx context.Context, ownerID, contractID uuid.UUID) error {
	c, _, err := s.load(ctx, ownerID, contractID)
	if err != nil {
		return err
	}
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		m, err := s.matches.FindByID(ctx, c.MatchID())
		if err != nil {
			return err
		}
		m.UnlinkContract()
		if err := s.matches.UpdateContractLink(ctx, m); err != nil {
			return fmt.Errorf("failed to unlink contract: %w", err)
		}
		return s.contracts.Delete(ctx, contractID)
	})
	if err != nil {
		s.logger.Error("failed to delete contract", zap.String("contract_id", contractID.String()), zap.Error(err))
		return err
	}
	s.logger.Info("contract deleted", zap.String("contract_id", contractID.String()))
	return nil
}

// MatchedPets lists every match of one of the caller's pets with the
// counterpart pet and its contract.
func (s *ContractService) MatchedPets(ctx context.Context, ownerID, petID uuid.UUID) ([]MatchedPetDTO, error) {
	if err := requireOwnedPet(ctx, s.pets, ownerID, petID); err != nil {
		return nil, err
	}
	matches, err := s.matches.FindByPetID(ctx, petID)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	if len(matches) == 0 {
		return []MatchedPetDTO{}, nil
	}

	matchIDs := make([]uuid.UUID, len(matches))
	otherIDs := make([]uuid.UUID, len(matches))
	for i, m := range matches {
		matchIDs[i] = m.ID()
		otherIDs[i], _ = m.OtherPet(petID)
	}

	others, err := s.pets.FindByIDs(ctx, otherIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load matched pets: %w", err)
	}
	byID := make(map[uuid.UUID]*petDomain.Pet, len(others))
	for _, p := range others {
		byID[p.ID()] = p
	}
	contracts, err := s.contracts.FindByMatchIDs(ctx, matchIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load contracts: %w", err)
	}

	result := make([]MatchedPetDTO, 0, len(matches))
	for i, m := range matches {
		other, ok := byID[otherIDs[i]]
		if !ok {
			continue
		}
		item := MatchedPetDTO{
			MatchID:     m.ID(),
			MatchDate:   m.MatchDate(),
			Counterpart: toPetDTO(other),
		}
		if c, ok := contracts[m.ID()]; ok {
			dto := toContractDTO(c)
			item.Contract = &dto
		}
		result = append(result, item)
	}
	return result, nil
}

func (s *ContractService) load(ctx context.Context, ownerID, contractID uuid.UUID) (*contractDomain.Contract, matchDomain.Participants, error) {
	c, err := s.contracts.FindByID(ctx, contractID)
	if err != nil {
		return nil, matchDomain.Participants{}, err
	}
	_, p, err := s.participants.ResolveFor(ctx, ownerID, c.MatchID())
	if err != nil {
		return nil, p, err
	}
	return c, p, nil
}

func toContractDTO(c *contractDomain.Contract) ContractDTO {
	return ContractDTO{
		ID:        c.ID(),
		MatchID:   c.MatchID(),
		Terms:     c.Terms(),
		Notes:     c.Notes(),
		AuthorID:  c.AuthorID(),
		Status:    c.Status().String(),
		Step:      c.Status().Step(),
		SentBy:    c.SentBy(),
		SentAt:    c.SentAt(),
		Version:   c.Version(),
		CreatedAt: c.CreatedAt(),
		UpdatedAt: c.UpdatedAt(),
	}
}

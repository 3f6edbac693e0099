package contract

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/furrymatch/service-matching/internal/platform/domain"
)

// Contract is the breeding agreement drafted for a match.
type Contract struct {
	id        uuid.UUID
	matchID   uuid.UUID
	terms     string
	notes     string
	authorID  uuid.UUID
	status    Status
	sentBy    *uuid.UUID
	sentAt    *time.Time
	version   int64
	createdAt time.Time
	updatedAt time.Time
}

// NewContract drafts a contract for matchID.
func NewContract(matchID, authorID uuid.UUID, terms, notes string) (*Contract, error) {
	if matchID == uuid.Nil {
		return nil, domain.NewValidationError("match ID is required")
	}
	if authorID == uuid.Nil {
		return nil, domain.NewValidationError("author ID is required")
	}
	if strings.TrimSpace(terms) == "" {
		return nil, domain.NewValidationError("contract terms are required")
	}
	now := time.Now().UTC()
	return &Contract{
		id:        uuid.New(),
		matchID:   matchID,
		terms:     terms,
		notes:     notes,
		authorID:  authorID,
		status:    StatusDrafted,
		version:   1,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// Reconstruct rebuilds a Contract from persistence.
func Reconstruct(
	id, matchID uuid.UUID,
	terms, notes string,
	authorID uuid.UUID,
	status Status,
	sentBy *uuid.UUID,
	sentAt *time.Time,
	version int64,
	createdAt, updatedAt time.Time,
) *Contract {
	return &Contract{
		id:        id,
		matchID:   matchID,
		terms:     terms,
		notes:     notes,
		authorID:  authorID,
		status:    status,
		sentBy:    sentBy,
		sentAt:    sentAt,
		version:   version,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (c *Contract) ID() uuid.UUID        { return c.id }
func (c *Contract) MatchID() uuid.UUID   { return c.matchID }
func (c *Contract) Terms() string        { return c.terms }
func (c *Contract) Notes() string        { return c.notes }
func (c *Contract) AuthorID() uuid.UUID  { return c.authorID }
func (c *Contract) Status() Status       { return c.status }
func (c *Contract) SentBy() *uuid.UUID   { return c.sentBy }
func (c *Contract) SentAt() *time.Time   { return c.sentAt }
func (c *Contract) Version() int64       { return c.version }
func (c *Contract) CreatedAt() time.Time { return c.createdAt }
func (c *Contract) UpdatedAt() time.Time { return c.updatedAt }

// Revise replaces terms and notes while the contract is still a draft.
func (c *Contract) Revise(terms, notes string) error {
	if c.status != StatusDrafted {
		return domain.NewConflictError("only drafted contracts can be edited")
	}
	if strings.TrimSpace(terms) == "" {
		return domain.NewValidationError("contract terms are required")
	}
	c.terms = terms
	c.notes = notes
	c.bump()
	return nil
}

// Send moves the contract to SENT on behalf of ownerID. Sending again
// records the latest sender.
func (c *Contract) Send(ownerID uuid.UUID, at time.Time) error {
	if !c.status.CanTransitionTo(StatusSent) {
		return domain.NewConflictError("contract cannot be sent from status " + c.status.String())
	}
	at = at.UTC()
	c.status = StatusSent
	c.sentBy = &ownerID
	c.sentAt = &at
	c.bump()
	return nil
}

func (c *Contract) bump() {
	c.version++
	c.updatedAt = time.Now().UTC()
}

// ContractRepository defines persistence operations for contracts.
type ContractRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Contract, error)
	FindByMatchID(ctx context.Context, matchID uuid.UUID) (*Contract, error)
	FindByMatchIDs(ctx context.Context, matchIDs []uuid.UUID) (map[uuid.UUID]*Contract, error)
	Save(ctx context.Context, c *Contract) error
	Update(ctx context.Context, c *Contract) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountByStatus(ctx context.Context) (map[string]int64, error)
}

package application

import (
	"context"
	"fmt"

	chatDomain "github.com/furrymatch/service-matching/internal/domain/chat"
	contractDomain "github.com/furrymatch/service-matching/internal/domain/contract"
	likeeDomain "github.com/furrymatch/service-matching/internal/domain/likee"
	matchDomain "github.com/furrymatch/service-matching/internal/domain/match"
	ownerDomain "github.com/furrymatch/service-matching/internal/domain/owner"
	petDomain "github.com/furrymatch/service-matching/internal/domain/pet"
)

// StatsDTO holds platform-wide counters for the admin dashboard.
type StatsDTO struct {
	Owners    int64            `json:"owners"`
	Pets      int64            `json:"pets"`
	Likes     int64            `json:"likes"`
	Matches   int64            `json:"matches"`
	Messages  int64            `json:"messages"`
	Contracts map[string]int64 `json:"contracts"`
}

// AdminService aggregates counts across repositories.
type AdminService struct {
	owners    ownerDomain.OwnerRepository
	pets      petDomain.PetRepository
	likes     likeeDomain.LikeeRepository
	matches   matchDomain.MatchRepository
	messages  chatDomain.MessageRepository
	contracts contractDomain.ContractRepository
}

// NewAdminService creates a new AdminService.
func NewAdminService(
	owners ownerDomain.OwnerRepository,
	pets petDomain.PetRepository,
	likes likeeDomain.LikeeRepository,
	matches matchDomain.MatchRepository,
	messages chatDomain.MessageRepository,
	contracts contractDomain.ContractRepository,
) *AdminService {
	return &AdminService{
		owners:    owners,
		pets:      pets,
		likes:     likes,
		matches:   matches,
		messages:  messages,
		contracts: contracts,
	}
}

// Stats returns the current counters.
func (s *AdminService) Stats(ctx context.Context) (*StatsDTO, error) {
	var (
		stats StatsDTO
		err   error
	)
	if stats.Owners, err = s.owners.Count(ctx); err != nil {
		return nil, fmt.Errorf("failed to count owners: %w", err)
	}
	if stats.Pets, err = s.pets.Count(ctx); err != nil {
		return nil, fmt.Errorf("failed to count pets: %w", err)
	}
	if stats.Likes, err = s.likes.Count(ctx); err != nil {
		return nil, fmt.Errorf("failed to count likes: %w", err)
	}
	if stats.Matches, err = s.matches.Count(ctx); err != nil {
		return nil, fmt.Errorf("failed to count matches: %w", err)
	}
	if stats.Messages, err = s.messages.Count(ctx); err != nil {
		return nil, fmt.Errorf("failed to count messages: %w", err)
	}
	if stats.Contracts, err = s.contracts.CountByStatus(ctx); err != nil {
		return nil, fmt.Errorf("failed to count contracts: %w", err)
	}
	return &stats, nil
}

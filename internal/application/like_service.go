package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	likeeDomain "github.com/furrymatch/service-matching/internal/domain/likee"
	matchDomain "github.com/furrymatch/service-matching/internal/domain/match"
	petDomain "github.com/furrymatch/service-matching/internal/domain/pet"
	"github.com/furrymatch/service-matching/internal/platform/domain"
	"github.com/furrymatch/service-matching/internal/platform/metrics"
	"github.com/furrymatch/service-matching/internal/proto/events"
)

// RecordLikeRequest is a like from one of the caller's pets to another pet.
type RecordLikeRequest struct {
	FirstPetID  uuid.UUID `json:"first_pet_id" binding:"required"`
	SecondPetID uuid.UUID `json:"second_pet_id" binding:"required"`
}

// UpdateLikeStateRequest toggles the like-state flag.
type UpdateLikeStateRequest struct {
	LikeState *bool `json:"like_state" binding:"required"`
}

// LikeDTO is the API response representation of a like.
type LikeDTO struct {
	ID          uuid.UUID `json:"id"`
	FirstPetID  uuid.UUID `json:"first_pet_id"`
	SecondPetID uuid.UUID `json:"second_pet_id"`
	LikeState   bool      `json:"like_state"`
	CreatedAt   time.Time `json:"created_at"`
}

// LikeResultDTO is the outcome of RecordLike. Match is set when the like
// completed a mutual pair.
type LikeResultDTO struct {
	Like  LikeDTO   `json:"like"`
	Match *MatchDTO `json:"match,omitempty"`
}

// LikeService records likes and detects matches.
type LikeService struct {
	likes     likeeDomain.LikeeRepository
	matches   matchDomain.MatchRepository
	pets      petDomain.PetRepository
	tx        Transactor
	publisher EventPublisher
	logger    *zap.Logger
	now       func() time.Time
}

// NewLikeService creates a new LikeService.
func NewLikeService(
	likes likeeDomain.LikeeRepository,
	matches matchDomain.MatchRepository,
	pets petDomain.PetRepository,
	tx Transactor,
	publisher EventPublisher,
	logger *zap.Logger,
) *LikeService {
	return &LikeService{
		likes:     likes,
		matches:   matches,
		pets:      pets,
		tx:        tx,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

// RecordLike stores a like from FirstPetID to SecondPetID. When SecondPetID
// already liked FirstPetID, the pair is matched with the new like as
// firstLiked and the earlier reverse like as secondLiked. Repeating a call
// returns the same like and match.
func (s *LikeService) RecordLike(ctx context.Context, ownerID uuid.UUID, req RecordLikeRequest) (*LikeResultDTO, error) {
	like, err := likeeDomain.NewLikee(req.FirstPetID, req.SecondPetID)
	if err != nil {
		return nil, err
	}

	liker, err := s.pets.FindByID(ctx, req.FirstPetID)
	if err != nil {
		return nil, err
	}
	if !liker.IsOwnedBy(ownerID) {
		return nil, domain.NewForbiddenError("you do not own the liking pet")
	}
	target, err := s.pets.FindByID(ctx, req.SecondPetID)
	if err != nil {
		return nil, err
	}
	if target.IsOwnedBy(ownerID) {
		return nil, domain.NewValidationError("a pet cannot like a pet of the same owner")
	}

	var (
		stored  *likeeDomain.Likee
		match   *matchDomain.Match
		created bool
	)
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.likes.LockPair(ctx, req.FirstPetID, req.SecondPetID); err != nil {
			return fmt.Errorf("failed to lock pet pair: %w", err)
		}

		var err error
		stored, err = s.likes.SaveIfAbsent(ctx, like)
		if err != nil {
			return fmt.Errorf("failed to save like: %w", err)
		}

		reverse, err := s.likes.FindByPair(ctx, req.SecondPetID, req.FirstPetID)
		if err != nil {
			var nf *domain.NotFoundError
			if errors.As(err, &nf) {
				return nil
			}
			return fmt.Errorf("failed to look up reverse like: %w", err)
		}

		candidate, err := matchDomain.NewMatch(stored, reverse, s.now())
		if err != nil {
			return err
		}
		match, created, err = s.matches.Upsert(ctx, candidate)
		if err != nil {
			return fmt.Errorf("failed to save match: %w", err)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("failed to record like",
			zap.String("first_pet_id", req.FirstPetID.String()),
			zap.String("second_pet_id", req.SecondPetID.String()),
			zap.Error(err),
		)
		return nil, err
	}

	result := &LikeResultDTO{Like: toLikeDTO(stored)}
	if match == nil {
		metrics.LikesTotal.WithLabelValues("liked").Inc()
		s.logger.Info("like recorded",
			zap.String("like_id", stored.ID().String()),
			zap.String("owner_id", ownerID.String()),
		)
		return result, nil
	}

	dto := toMatchDTO(match)
	result.Match = &dto
	if !created {
		metrics.LikesTotal.WithLabelValues("repeat").Inc()
		return result, nil
	}

	metrics.LikesTotal.WithLabelValues("matched").Inc()
	metrics.MatchesTotal.Inc()
	s.logger.Info("match created",
		zap.String("match_id", match.ID().String()),
		zap.String("first_pet_id", match.FirstPetID().String()),
		zap.String("second_pet_id", match.SecondPetID().String()),
	)
	publishEvent(ctx, s.publisher, s.logger, events.TopicMatchEvents, events.MatchCreated, events.MatchCreatedEvent{
		MatchID:       match.ID(),
		FirstLikedID:  match.FirstLikedID(),
		SecondLikedID: match.SecondLikedID(),
		FirstPetID:    match.FirstPetID(),
		SecondPetID:   match.SecondPetID(),
		FirstOwnerID:  liker.OwnerID(),
		SecondOwnerID: target.OwnerID(),
		OccurredAt:    match.CreatedAt(),
	})
	return result, nil
}

// GetLike returns a like visible to the owner of either pet.
func (s *LikeService) GetLike(ctx context.Context, ownerID, likeID uuid.UUID) (*LikeDTO, error) {
	l, err := s.likes.FindByID(ctx, likeID)
	if err != nil {
		return nil, err
	}
	if err := s.requireEitherOwner(ctx, ownerID, l); err != nil {
		return nil, err
	}
	result := toLikeDTO(l)
	return &result, nil
}

// ListLikes returns the likes given by one of the caller's pets, newest first.
func (s *LikeService) ListLikes(ctx context.Context, ownerID, petID uuid.UUID, page, limit int) ([]LikeDTO, int64, error) {
	if err := requireOwnedPet(ctx, s.pets, ownerID, petID); err != nil {
		return nil, 0, err
	}
	likes, total, err := s.likes.FindByFirstPetID(ctx, petID, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list likes: %w", err)
	}
	dtos := make([]LikeDTO, len(likes))
	for i, l := range likes {
		dtos[i] = toLikeDTO(l)
	}
	return dtos, total, nil
}

// UpdateLikeState sets the like-state flag of a like given by the caller's pet.
func (s *LikeService) UpdateLikeState(ctx context.Context, ownerID, likeID uuid.UUID, req UpdateLikeStateRequest) (*LikeDTO, error) {
	if req.LikeState == nil {
		return nil, domain.NewValidationError("like_state is required")
	}
	l, err := s.likes.FindByID(ctx, likeID)
	if err != nil {
		return nil, err
	}
	if err := requireOwnedPet(ctx, s.pets, ownerID, l.FirstPetID()); err != nil {
		return nil, err
	}
	l.SetLikeState(*req.LikeState)
	if err := s.likes.UpdateState(ctx, l); err != nil {
		s.logger.Error("failed to update like", zap.String("like_id", likeID.String()), zap.Error(err))
		return nil, fmt.Errorf("failed to update like: %w", err)
	}
	s.logger.Info("like state updated",
		zap.String("like_id", likeID.String()),
		zap.Bool("like_state", *req.LikeState),
	)
	result := toLikeDTO(l)
	return &result, nil
}

// DeleteLike removes a like given by the caller's pet. A match built on it
// goes with it.
func (s *LikeService) DeleteLike(ctx context.Context, ownerID, likeID uuid.UUID) error {
	l, err := s.likes.FindByID(ctx, likeID)
	if err != nil {
		return err
	}
	if err := requireOwnedPet(ctx, s.pets, ownerID, l.FirstPetID()); err != nil {
		return err
	}
	if err := s.likes.Delete(ctx, likeID); err != nil {
		s.logger.Error("failed to delete like", zap.String("like_id", likeID.String()), zap.Error(err))
		return fmt.Errorf("failed to delete like: %w", err)
	}
	s.logger.Info("like deleted", zap.String("like_id", likeID.String()))
	return nil
}

func (s *LikeService) requireEitherOwner(ctx context.Context, ownerID uuid.UUID, l *likeeDomain.Likee) error {
	pets, err := s.pets.FindByIDs(ctx, []uuid.UUID{l.FirstPetID(), l.SecondPetID()})
	if err != nil {
		return fmt.Errorf("failed to load liked pets: %w", err)
	}
	for _, p := range pets {
		if p.IsOwnedBy(ownerID) {
			return nil
		}
	}
	return domain.NewForbiddenError("you do not own either pet of this like")
}

func toLikeDTO(l *likeeDomain.Likee) LikeDTO {
	return LikeDTO{
		ID:          l.ID(),
		FirstPetID:  l.FirstPetID(),
		SecondPetID: l.SecondPetID(),
		LikeState:   l.LikeState(),
		CreatedAt:   l.CreatedAt(),
	}
}

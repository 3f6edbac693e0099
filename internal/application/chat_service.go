package application

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	chatDomain "github.com/furrymatch/service-matching/internal/domain/chat"
	matchDomain "github.com/furrymatch/service-matching/internal/domain/match"
	petDomain "github.com/furrymatch/service-matching/internal/domain/pet"
	"github.com/furrymatch/service-matching/internal/platform/domain"
	"github.com/furrymatch/service-matching/internal/platform/metrics"
	"github.com/furrymatch/service-matching/internal/proto/events"
)

// Realtime frame types pushed to match rooms.
const (
	FrameMessage = "message"
	FrameRead    = "read"
)

// RealtimeFrame is the JSON envelope written to websocket clients.
type RealtimeFrame struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// SendMessageRequest is a chat message from the caller into a match.
type SendMessageRequest struct {
	MatchID uuid.UUID `json:"match_id" binding:"required"`
	Message string    `json:"message" binding:"required"`
}

// ChatDTO is the API response representation of a chat message.
type ChatDTO struct {
	ID          uuid.UUID  `json:"id"`
	MatchID     uuid.UUID  `json:"match_id"`
	SenderID    *uuid.UUID `json:"sender_id,omitempty"`
	RecipientID *uuid.UUID `json:"recipient_id,omitempty"`
	Message     string     `json:"message"`
	Status      string     `json:"status"`
	System      bool       `json:"system"`
	SentAt      time.Time  `json:"sent_at"`
	ReadAt      *time.Time `json:"read_at,omitempty"`
}

// ReadResultDTO reports how many messages a MarkRead call changed.
type ReadResultDTO struct {
	MatchID  uuid.UUID `json:"match_id"`
	SenderID uuid.UUID `json:"sender_id"`
	ReaderID uuid.UUID `json:"reader_id"`
	Count    int64     `json:"count"`
}

// ConversationDTO is one match of a pet with the time of its latest message.
type ConversationDTO struct {
	MatchID        uuid.UUID  `json:"match_id"`
	CounterpartPet uuid.UUID  `json:"counterpart_pet_id"`
	NotifyMatch    bool       `json:"notify_match"`
	MatchDate      time.Time  `json:"match_date"`
	LastMessageAt  *time.Time `json:"last_message_at,omitempty"`
}

// ChatService implements messaging between the owners of matched pets.
type ChatService struct {
	messages     chatDomain.MessageRepository
	matches      matchDomain.MatchRepository
	pets         petDomain.PetRepository
	participants *participantResolver
	publisher    EventPublisher
	broadcaster  Broadcaster
	logger       *zap.Logger
	now          func() time.Time
}

// NewChatService creates a new ChatService.
func NewChatService(
	messages chatDomain.MessageRepository,
	matches matchDomain.MatchRepository,
	pets petDomain.PetRepository,
	publisher EventPublisher,
	broadcaster Broadcaster,
	logger *zap.Logger,
) *ChatService {
	return &ChatService{
		messages:     messages,
		matches:      matches,
		pets:         pets,
		participants: newParticipantResolver(matches, pets),
		publisher:    publisher,
		broadcaster:  broadcaster,
		logger:       logger,
		now:          time.Now,
	}
}

// Send stores a message from the caller to the other owner of the match.
func (s *ChatService) Send(ctx context.Context, ownerID uuid.UUID, req SendMessageRequest) (*ChatDTO, error) {
	_, p, err := s.participants.ResolveFor(ctx, ownerID, req.MatchID)
	if err != nil {
		return nil, err
	}
	recipient, _ := p.CounterpartOf(ownerID)

	msg, err := chatDomain.NewMessage(req.MatchID, ownerID, recipient.OwnerID, req.Message)
	if err != nil {
		return nil, err
	}
	if err := s.messages.Save(ctx, msg); err != nil {
		s.logger.Error("failed to save message", zap.String("match_id", req.MatchID.String()), zap.Error(err))
		return nil, fmt.Errorf("failed to save message: %w", err)
	}

	metrics.MessagesTotal.WithLabelValues("owner").Inc()
	s.logger.Info("message sent",
		zap.String("message_id", msg.ID().String()),
		zap.String("match_id", req.MatchID.String()),
		zap.String("sender_id", ownerID.String()),
	)

	result := toChatDTO(msg)
	publishEvent(ctx, s.publisher, s.logger, events.TopicChatEvents, events.ChatMessageSent, events.ChatMessageSentEvent{
		MessageID:   msg.ID(),
		MatchID:     msg.MatchID(),
		SenderID:    ownerID,
		RecipientID: recipient.OwnerID,
		OccurredAt:  msg.SentAt(),
	})
	s.broadcaster.Broadcast(req.MatchID, RealtimeFrame{Type: FrameMessage, Data: result})
	return &result, nil
}

// OpenThread stores the greeting of a new match. Calling it again for the
// same match does nothing.
func (s *ChatService) OpenThread(ctx context.Context, matchID uuid.UUID) error {
	if _, err := s.matches.FindByID(ctx, matchID); err != nil {
		return err
	}
	greeting := chatDomain.NewGreeting(matchID)
	inserted, err := s.messages.SaveIfAbsent(ctx, greeting)
	if err != nil {
		s.logger.Error("failed to open thread", zap.String("match_id", matchID.String()), zap.Error(err))
		return fmt.Errorf("failed to open thread: %w", err)
	}
	if !inserted {
		return nil
	}

	metrics.MessagesTotal.WithLabelValues("system").Inc()
	s.logger.Info("thread opened", zap.String("match_id", matchID.String()))
	s.broadcaster.Broadcast(matchID, RealtimeFrame{Type: FrameMessage, Data: toChatDTO(greeting)})
	return nil
}

// ListByMatch returns the messages of a match, oldest first.
func (s *ChatService) ListByMatch(ctx context.Context, ownerID, matchID uuid.UUID) ([]ChatDTO, error) {
	if _, _, err := s.participants.ResolveFor(ctx, ownerID, matchID); err != nil {
		return nil, err
	}
	msgs, err := s.messages.FindByMatchID(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	return toChatDTOs(msgs), nil
}

// Unread returns the unread messages addressed to the caller.
func (s *ChatService) Unread(ctx context.Context, ownerID uuid.UUID) ([]ChatDTO, error) {
	msgs, err := s.messages.FindUnreadByRecipient(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list unread messages: %w", err)
	}
	return toChatDTOs(msgs), nil
}

// MarkRead moves the unread messages senderID sent in a match to read. Only
// the match counterpart of senderID may do this.
func (s *ChatService) MarkRead(ctx context.Context, readerID, matchID, senderID uuid.UUID) (*ReadResultDTO, error) {
	_, p, err := s.participants.ResolveFor(ctx, readerID, matchID)
	if err != nil {
		return nil, err
	}
	counterpart, ok := p.CounterpartOf(senderID)
	if !ok {
		return nil, domain.NewValidationError("sender is not a participant of this match")
	}
	if counterpart.OwnerID != readerID {
		return nil, domain.NewForbiddenError("only the recipient can mark these messages as read")
	}

	receipt := chatDomain.ReadReceipt{
		MatchID:     matchID,
		SenderID:    senderID,
		RecipientID: readerID,
		ReadAt:      s.now().UTC(),
	}
	count, err := s.messages.MarkRead(ctx, receipt)
	if err != nil {
		s.logger.Error("failed to mark messages read", zap.String("match_id", matchID.String()), zap.Error(err))
		return nil, fmt.Errorf("failed to mark messages read: %w", err)
	}

	result := &ReadResultDTO{MatchID: matchID, SenderID: senderID, ReaderID: readerID, Count: count}
	if count == 0 {
		return result, nil
	}

	s.logger.Info("messages read",
		zap.String("match_id", matchID.String()),
		zap.String("reader_id", readerID.String()),
		zap.Int64("count", count),
	)
	publishEvent(ctx, s.publisher, s.logger, events.TopicChatEvents, events.ChatRead, events.ChatReadEvent{
		MatchID:    matchID,
		SenderID:   senderID,
		ReaderID:   readerID,
		Count:      count,
		OccurredAt: receipt.ReadAt,
	})
	s.broadcaster.Broadcast(matchID, RealtimeFrame{Type: FrameRead, Data: result})
	return result, nil
}

// DeleteByMatch removes every message of a match the caller participates in.
func (s *ChatService) DeleteByMatch(ctx context.Context, ownerID, matchID uuid.UUID) (int64, error) {
	if _, _, err := s.participants.ResolveFor(ctx, ownerID, matchID); err != nil {
		return 0, err
	}
	n, err := s.messages.DeleteByMatchID(ctx, matchID)
	if err != nil {
		s.logger.Error("failed to delete messages", zap.String("match_id", matchID.String()), zap.Error(err))
		return 0, fmt.Errorf("failed to delete messages: %w", err)
	}
	s.logger.Info("messages deleted", zap.String("match_id", matchID.String()), zap.Int64("count", n))
	return n, nil
}

// Conversations returns the matches of one of the caller's pets, ordered by
// their latest message with silent matches ordered by match time.
func (s *ChatService) Conversations(ctx context.Context, ownerID, petID uuid.UUID) ([]ConversationDTO, error) {
	if err := requireOwnedPet(ctx, s.pets, ownerID, petID); err != nil {
		return nil, err
	}
	matches, err := s.matches.FindByPetID(ctx, petID)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	ids := make([]uuid.UUID, len(matches))
	for i, m := range matches {
		ids[i] = m.ID()
	}
	last, err := s.messages.LastSentAt(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load latest messages: %w", err)
	}

	convs := make([]ConversationDTO, 0, len(matches))
	activity := make(map[uuid.UUID]time.Time, len(matches))
	for _, m := range matches {
		other, _ := m.OtherPet(petID)
		c := ConversationDTO{
			MatchID:        m.ID(),
			CounterpartPet: other,
			NotifyMatch:    m.NotifyMatch(),
			MatchDate:      m.MatchDate(),
		}
		activity[m.ID()] = m.CreatedAt()
		if t, ok := last[m.ID()]; ok {
			c.LastMessageAt = &t
			activity[m.ID()] = t
		}
		convs = append(convs, c)
	}
	sort.SliceStable(convs, func(i, j int) bool {
		return activity[convs[i].MatchID].After(activity[convs[j].MatchID])
	})
	return convs, nil
}

func toChatDTO(m *chatDomain.Message) ChatDTO {
	return ChatDTO{
		ID:          m.ID(),
		MatchID:     m.MatchID(),
		SenderID:    m.SenderID(),
		RecipientID: m.RecipientID(),
		Message:     m.Text(),
		Status:      string(m.Status()),
		System:      m.System(),
		SentAt:      m.SentAt(),
		ReadAt:      m.ReadAt(),
	}
}

func toChatDTOs(msgs []*chatDomain.Message) []ChatDTO {
	dtos := make([]ChatDTO, len(msgs))
	for i, m := range msgs {
		dtos[i] = toChatDTO(m)
	}
	return dtos
}

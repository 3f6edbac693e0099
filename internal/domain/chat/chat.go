package chat

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/furrymatch/service-matching/internal/platform/domain"
)

// MaxMessageLength bounds a single chat message in runes.
const MaxMessageLength = 2000

// GreetingText opens every new conversation.
const GreetingText = "It's a match! Say hello to start the conversation."

// greetingNamespace derives a stable greeting id per match.
var greetingNamespace = uuid.MustParse("6f1d7a52-3f0e-4e43-9a61-2d3f5c0b8e11")

// Message is one chat line inside a match. System messages have no sender
// or recipient and are created already read.
type Message struct {
	id          uuid.UUID
	matchID     uuid.UUID
	senderID    *uuid.UUID
	recipientID *uuid.UUID
	text        string
	status      Status
	system      bool
	sentAt      time.Time
	readAt      *time.Time
}

// NewMessage creates an unread message from sender to recipient.
func NewMessage(matchID, senderID, recipientID uuid.UUID, text string) (*Message, error) {
	text = strings.TrimSpace(text)
	if matchID == uuid.Nil {
		return nil, domain.NewValidationError("match ID is required")
	}
	if senderID == uuid.Nil || recipientID == uuid.Nil {
		return nil, domain.NewValidationError("sender and recipient are required")
	}
	if senderID == recipientID {
		return nil, domain.NewValidationError("sender and recipient must differ")
	}
	if text == "" {
		return nil, domain.NewValidationError("message is required")
	}
	if utf8.RuneCountInString(text) > MaxMessageLength {
		return nil, domain.NewValidationError("message is too long")
	}
	return &Message{
		id:          uuid.New(),
		matchID:     matchID,
		senderID:    &senderID,
		recipientID: &recipientID,
		text:        text,
		status:      StatusUnread,
		sentAt:      time.Now().UTC(),
	}, nil
}

// NewGreeting creates the system message that opens a match's thread. Its id
// is derived from the match id so that it can be stored at most once.
func NewGreeting(matchID uuid.UUID) *Message {
	now := time.Now().UTC()
	return &Message{
		id:      GreetingID(matchID),
		matchID: matchID,
		text:    GreetingText,
		status:  StatusRead,
		system:  true,
		sentAt:  now,
		readAt:  &now,
	}
}

// GreetingID is the id of the greeting for matchID.
func GreetingID(matchID uuid.UUID) uuid.UUID {
	return uuid.NewSHA1(greetingNamespace, matchID[:])
}

// Reconstruct rebuilds a Message from persistence.
func Reconstruct(
	id, matchID uuid.UUID,
	senderID, recipientID *uuid.UUID,
	text string,
	status Status,
	system bool,
	sentAt time.Time,
	readAt *time.Time,
) *Message {
	return &Message{
		id:          id,
		matchID:     matchID,
		senderID:    senderID,
		recipientID: recipientID,
		text:        text,
		status:      status,
		system:      system,
		sentAt:      sentAt,
		readAt:      readAt,
	}
}

func (m *Message) ID() uuid.UUID           { return m.id }
func (m *Message) MatchID() uuid.UUID      { return m.matchID }
func (m *Message) SenderID() *uuid.UUID    { return m.senderID }
func (m *Message) RecipientID() *uuid.UUID { return m.recipientID }
func (m *Message) Text() string            { return m.text }
func (m *Message) Status() Status          { return m.status }
func (m *Message) System() bool            { return m.system }
func (m *Message) SentAt() time.Time       { return m.sentAt }
func (m *Message) ReadAt() *time.Time      { return m.readAt }

// ReadReceipt selects the unread messages one sender addressed to one
// recipient in a match. Applying it is the only way a message moves from
// unread to read, and read messages never change back.
type ReadReceipt struct {
	MatchID     uuid.UUID
	SenderID    uuid.UUID
	RecipientID uuid.UUID
	ReadAt      time.Time
}

// MessageRepository defines persistence operations for chat messages.
type MessageRepository interface {
	Save(ctx context.Context, m *Message) error
	// SaveIfAbsent inserts m unless a row with its id exists and reports
	// whether it was inserted.
	SaveIfAbsent(ctx context.Context, m *Message) (bool, error)
	FindByMatchID(ctx context.Context, matchID uuid.UUID) ([]*Message, error)
	FindUnreadByRecipient(ctx context.Context, recipientID uuid.UUID) ([]*Message, error)
	// MarkRead moves every unread message selected by r to read and returns
	// how many rows changed.
	MarkRead(ctx context.Context, r ReadReceipt) (int64, error)
	LastSentAt(ctx context.Context, matchIDs []uuid.UUID) (map[uuid.UUID]time.Time, error)
	DeleteByMatchID(ctx context.Context, matchID uuid.UUID) (int64, error)
	Count(ctx context.Context) (int64, error)
}

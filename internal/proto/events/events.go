// Package events holds the Kafka topics, event types and payloads the
// matching service publishes and consumes.
package events

import (
	"time"

	"github.com/google/uuid"
)

// Topics.
const (
	TopicMatchEvents    = "furrymatch.match.events"
	TopicChatEvents     = "furrymatch.chat.events"
	TopicContractEvents = "furrymatch.contract.events"
)

// Event types.
const (
	MatchCreated    = "furrymatch.match.created"
	ChatMessageSent = "furrymatch.chat.message_sent"
	ChatRead        = "furrymatch.chat.read"
	ContractCreated = "furrymatch.contract.created"
	ContractSent    = "furrymatch.contract.sent"
)

// Source is the CloudEvent source of everything this service publishes.
const Source = "service-matching"

// MatchCreatedEvent is published when two pets like each other.
type MatchCreatedEvent struct {
	MatchID       uuid.UUID `json:"match_id"`
	FirstLikedID  uuid.UUID `json:"first_liked_id"`
	SecondLikedID uuid.UUID `json:"second_liked_id"`
	FirstPetID    uuid.UUID `json:"first_pet_id"`
	SecondPetID   uuid.UUID `json:"second_pet_id"`
	FirstOwnerID  uuid.UUID `json:"first_owner_id"`
	SecondOwnerID uuid.UUID `json:"second_owner_id"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// ChatMessageSentEvent is published for every owner message.
type ChatMessageSentEvent struct {
	MessageID   uuid.UUID `json:"message_id"`
	MatchID     uuid.UUID `json:"match_id"`
	SenderID    uuid.UUID `json:"sender_id"`
	RecipientID uuid.UUID `json:"recipient_id"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// ChatReadEvent is published when a reader clears unread messages.
type ChatReadEvent struct {
	MatchID    uuid.UUID `json:"match_id"`
	SenderID   uuid.UUID `json:"sender_id"`
	ReaderID   uuid.UUID `json:"reader_id"`
	Count      int64     `json:"count"`
	OccurredAt time.Time `json:"occurred_at"`
}

// ContractCreatedEvent is published when a contract is drafted.
type ContractCreatedEvent struct {
	ContractID uuid.UUID `json:"contract_id"`
	MatchID    uuid.UUID `json:"match_id"`
	AuthorID   uuid.UUID `json:"author_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// ContractSentEvent is published when a participant sends the contract to
// the counterpart. Mail delivery consumes it.
type ContractSentEvent struct {
	ContractID  uuid.UUID `json:"contract_id"`
	MatchID     uuid.UUID `json:"match_id"`
	SentBy      uuid.UUID `json:"sent_by"`
	RecipientID uuid.UUID `json:"recipient_id"`
	Step        int       `json:"step"`
	OccurredAt  time.Time `json:"occurred_at"`
}

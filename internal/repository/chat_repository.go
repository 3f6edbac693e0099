package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	chatDomain "github.com/furrymatch/service-matching/internal/domain/chat"
)

// ChatModel is the GORM model for the chats table.
type ChatModel struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	MatchID     uuid.UUID  `gorm:"type:uuid;not null;index"`
	SenderID    *uuid.UUID `gorm:"type:uuid"`
	RecipientID *uuid.UUID `gorm:"type:uuid"`
	Message     string     `gorm:"type:text;not null"`
	Status      string     `gorm:"size:10;not null"`
	System      bool       `gorm:"not null;default:false"`
	SentAt      time.Time  `gorm:"not null"`
	ReadAt      *time.Time
}

func (ChatModel) TableName() string { return "chats" }

// GormChatRepository implements MessageRepository using GORM.
type GormChatRepository struct {
	db *gorm.DB
}

func NewGormChatRepository(db *gorm.DB) *GormChatRepository {
	return &GormChatRepository{db: db}
}

func (r *GormChatRepository) Save(ctx context.Context, m *chatDomain.Message) error {
	if err := conn(ctx, r.db).Create(toChatModel(m)).Error; err != nil {
		return fmt.Errorf("failed to save chat message: %w", err)
	}
	return nil
}

func (r *GormChatRepository) SaveIfAbsent(ctx context.Context, m *chatDomain.Message) (bool, error) {
	result := conn(ctx, r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoNothing: true,
	}).Create(toChatModel(m))
	if result.Error != nil {
		return false, fmt.Errorf("failed to save chat message: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// FindByMatchID returns the thread of a match, oldest first.
func (r *GormChatRepository) FindByMatchID(ctx context.Context, matchID uuid.UUID) ([]*chatDomain.Message, error) {
	var models []ChatModel
	if err := conn(ctx, r.db).
		Where("match_id = ?", matchID).
		Order("sent_at ASC, id").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find chat messages: %w", err)
	}
	return toChatDomains(models)
}

func (r *GormChatRepository) FindUnreadByRecipient(ctx context.Context, recipientID uuid.UUID) ([]*chatDomain.Message, error) {
	var models []ChatModel
	if err := conn(ctx, r.db).
		Where("recipient_id = ? AND status = ?", recipientID, string(chatDomain.StatusUnread)).
		Order("sent_at ASC, id").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find unread messages: %w", err)
	}
	return toChatDomains(models)
}

// MarkRead applies the unread to read transition to every matching row.
func (r *GormChatRepository) MarkRead(ctx context.Context, rr chatDomain.ReadReceipt) (int64, error) {
	result := conn(ctx, r.db).
		Model(&ChatModel{}).
		Where("match_id = ? AND sender_id = ? AND recipient_id = ? AND status = ?",
			rr.MatchID, rr.SenderID, rr.RecipientID, string(chatDomain.StatusUnread)).
		Updates(map[string]interface{}{
			"status":  string(chatDomain.StatusRead),
			"read_at": rr.ReadAt,
		})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to mark messages read: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// LastSentAt returns the time of the newest message per match.
func (r *GormChatRepository) LastSentAt(ctx context.Context, matchIDs []uuid.UUID) (map[uuid.UUID]time.Time, error) {
	out := make(map[uuid.UUID]time.Time, len(matchIDs))
	if len(matchIDs) == 0 {
		return out, nil
	}

	type row struct {
		MatchID    uuid.UUID
		LastSentAt time.Time
	}
	var rows []row
	if err := conn(ctx, r.db).Model(&ChatModel{}).
		Select("match_id, MAX(sent_at) AS last_sent_at").
		Where("match_id IN ?", matchIDs).
		Group("match_id").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load last message times: %w", err)
	}
	for _, rw := range rows {
		out[rw.MatchID] = rw.LastSentAt
	}
	return out, nil
}

func (r *GormChatRepository) DeleteByMatchID(ctx context.Context, matchID uuid.UUID) (int64, error) {
	result := conn(ctx, r.db).Where("match_id = ?", matchID).Delete(&ChatModel{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete chat messages: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (r *GormChatRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := conn(ctx, r.db).Model(&ChatModel{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count chat messages: %w", err)
	}
	return n, nil
}

func toChatModel(m *chatDomain.Message) *ChatModel {
	return &ChatModel{
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

func toChatDomains(models []ChatModel) ([]*chatDomain.Message, error) {
	out := make([]*chatDomain.Message, len(models))
	for i, m := range models {
		status, err := chatDomain.ParseStatus(m.Status)
		if err != nil {
			return nil, err
		}
		out[i] = chatDomain.Reconstruct(
			m.ID, m.MatchID, m.SenderID, m.RecipientID,
			m.Message, status, m.System, m.SentAt, m.ReadAt,
		)
	}
	return out, nil
}

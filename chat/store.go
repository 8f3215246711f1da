// Package chat owns conversation and message persistence: ordered
// append, read-state transitions, and unread counting. Unread counts
// are always computed from a viewer's perspective and never include the
// viewer's own messages.
package chat

import (
	"context"
	"errors"

	"github.com/oakmeet/meetup_backend/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrNotFound       = errors.New("conversation not found")
	ErrNotParticipant = errors.New("not a participant in this conversation")
)

// ConversationSummary pairs a conversation with the unread count seen
// by the listing user.
type ConversationSummary struct {
	Conversation models.Conversation
	UnreadCount  int64
}

// Store provides conversation and message operations on top of gorm.
type Store struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewStore(db *gorm.DB, log *zap.Logger) *Store {
	return &Store{db: db, log: log}
}

// GetOrCreateConversation returns the conversation between the two
// users, creating it if none exists. The unique pair key makes the
// operation idempotent under concurrent calls: the loser of a creation
// race re-reads the winner's row.
func (s *Store) GetOrCreateConversation(ctx context.Context, userA, userB uint) (*models.Conversation, error) {
	key := models.PairKeyFor(userA, userB)

	var conversation models.Conversation
	err := s.db.WithContext(ctx).Where("pair_key = ?", key).First(&conversation).Error
	if err == nil {
		return &conversation, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	conversation = models.Conversation{PairKey: key}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&conversation).Error; err != nil {
			return err
		}
		if conversation.ID == 0 {
			// Lost the race, pick up the existing row.
			if err := tx.Where("pair_key = ?", key).First(&conversation).Error; err != nil {
				return err
			}
			return nil
		}
		participants := []models.ConversationParticipant{
			{ConversationID: conversation.ID, UserID: userA},
			{ConversationID: conversation.ID, UserID: userB},
		}
		return tx.Create(&participants).Error
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("conversation created", zap.Uint("conversation_id", conversation.ID),
		zap.Uint("user_a", userA), zap.Uint("user_b", userB))
	return &conversation, nil
}

// IsParticipant reports whether userID belongs to the conversation.
func (s *Store) IsParticipant(ctx context.Context, conversationID, userID uint) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.ConversationParticipant{}).
		Where("conversation_id = ? AND user_id = ?", conversationID, userID).
		Count(&count).Error
	return count > 0, err
}

// AppendMessage adds a message to the conversation. Fails with
// ErrNotParticipant when the sender is not in the participant set; no
// row is created in that case. Messages are unread on creation and
// ordered by insertion.
func (s *Store) AppendMessage(ctx context.Context, conversationID, senderID uint, content string) (*models.Message, error) {
	var conversation models.Conversation
	if err := s.db.WithContext(ctx).First(&conversation, conversationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	member, err := s.IsParticipant(ctx, conversationID, senderID)
	if err != nil {
		return nil, err
	}
	if !member {
		return nil, ErrNotParticipant
	}

	message := models.Message{
		ConversationID: conversationID,
		SenderID:       senderID,
		Content:        content,
	}
	if err := s.db.WithContext(ctx).Create(&message).Error; err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Preload("Sender").First(&message, message.ID).Error; err != nil {
		s.log.Warn("failed to load sender for message", zap.Error(err))
	}
	return &message, nil
}

// MarkRead flips every unread message in the conversation that was not
// sent by readerID to read, and returns the number of messages flipped.
// Calling it again immediately yields zero.
func (s *Store) MarkRead(ctx context.Context, conversationID, readerID uint) (int64, error) {
	result := s.db.WithContext(ctx).Model(&models.Message{}).
		Where("conversation_id = ? AND is_read = ? AND sender_id <> ?", conversationID, false, readerID).
		Update("is_read", true)
	return result.RowsAffected, result.Error
}

// UnreadCount returns the number of unread messages in the conversation
// from the viewer's perspective. The viewer's own messages never count.
func (s *Store) UnreadCount(ctx context.Context, conversationID, viewerID uint) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Message{}).
		Where("conversation_id = ? AND is_read = ? AND sender_id <> ?", conversationID, false, viewerID).
		Count(&count).Error
	return count, err
}

// Messages returns up to limit most recent messages in append order.
// The viewer must be a participant.
func (s *Store) Messages(ctx context.Context, conversationID, viewerID uint, limit int) ([]models.Message, error) {
	member, err := s.IsParticipant(ctx, conversationID, viewerID)
	if err != nil {
		return nil, err
	}
	if !member {
		return nil, ErrNotParticipant
	}

	var messages []models.Message
	err = s.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Preload("Sender").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}

	// Query runs newest-first for the limit; flip back to append order.
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}

// ConversationsForUser lists the user's conversations with the unread
// count for each, from that user's perspective.
func (s *Store) ConversationsForUser(ctx context.Context, userID uint) ([]ConversationSummary, error) {
	var conversations []models.Conversation
	err := s.db.WithContext(ctx).
		Joins("JOIN conversation_participants cp ON cp.conversation_id = conversations.id").
		Where("cp.user_id = ?", userID).
		Preload("Participants").
		Order("conversations.updated_at DESC").
		Find(&conversations).Error
	if err != nil {
		return nil, err
	}

	summaries := make([]ConversationSummary, 0, len(conversations))
	for _, conversation := range conversations {
		count, err := s.UnreadCount(ctx, conversation.ID, userID)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, ConversationSummary{
			Conversation: conversation,
			UnreadCount:  count,
		})
	}
	return summaries, nil
}

// OtherParticipants returns the participant IDs of a conversation
// excluding the given user. Used to compute per-recipient unread counts
// for broadcast.
func (s *Store) OtherParticipants(ctx context.Context, conversationID, userID uint) ([]uint, error) {
	var ids []uint
	err := s.db.WithContext(ctx).Model(&models.ConversationParticipant{}).
		Where("conversation_id = ? AND user_id <> ?", conversationID, userID).
		Pluck("user_id", &ids).Error
	return ids, err
}

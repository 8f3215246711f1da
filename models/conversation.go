package models

import (
	"fmt"
	"time"
)

type Conversation struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	PairKey      string    `gorm:"size:64;not null;uniqueIndex" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Participants []User    `gorm:"many2many:conversation_participants;" json:"participants,omitempty"`
	Messages     []Message `json:"messages,omitempty"`
}

// ConversationParticipant is the join table backing Conversation.Participants.
type ConversationParticipant struct {
	ConversationID uint      `gorm:"primaryKey" json:"conversation_id"`
	UserID         uint      `gorm:"primaryKey" json:"user_id"`
	CreatedAt      time.Time `json:"created_at"`
}

func (ConversationParticipant) TableName() string {
	return "conversation_participants"
}

// PairKeyFor returns the canonical key for a two-user conversation. The
// unique index on it makes concurrent create calls for the same pair
// collapse onto one row.
func PairKeyFor(a, b uint) string {
	if a > b {
		a, b = b, a
	}
	return fmt.Sprintf("%d:%d", a, b)
}

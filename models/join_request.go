package models

import (
	"time"
)

// JoinRequest status values.
const (
	JoinRequestPending  = "PENDING"
	JoinRequestAccepted = "ACCEPTED"
	JoinRequestRejected = "REJECTED"
)

type JoinRequest struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"not null;uniqueIndex:idx_user_activity" json:"user_id"`
	User       User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	ActivityID uint      `gorm:"not null;uniqueIndex:idx_user_activity" json:"activity_id"`
	Activity   Activity  `gorm:"foreignKey:ActivityID" json:"activity,omitempty"`
	Status     string    `gorm:"size:10;default:'PENDING'" json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

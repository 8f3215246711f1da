package models

import (
	"time"
)

type Rating struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"not null;uniqueIndex:idx_rating_user_activity" json:"user_id"`
	User       User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	ActivityID uint      `gorm:"not null;uniqueIndex:idx_rating_user_activity" json:"activity_id"`
	Score      int       `gorm:"not null" json:"score"`
	ReviewText string    `gorm:"type:text" json:"review_text"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

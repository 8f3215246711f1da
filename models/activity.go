package models

import (
	"time"
)

type Activity struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	OwnerID         uint      `gorm:"not null;index" json:"owner_id"`
	Owner           User      `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Title           string    `gorm:"size:255;not null" json:"title"`
	Description     string    `gorm:"type:text" json:"description"`
	CategoryID      *uint     `json:"category_id"`
	Category        *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	DateTime        time.Time `json:"date_time"`
	Location        string    `gorm:"size:255" json:"location"`
	MaxParticipants int       `gorm:"not null" json:"max_participants"`
	Status          string    `gorm:"size:50;default:'active'" json:"status"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
	Participants    []User    `gorm:"many2many:activity_participants;" json:"participants,omitempty"`
}

// ActivityParticipant is the join table backing Activity.Participants.
// Declared explicitly so the coordinator can count and insert rows directly.
type ActivityParticipant struct {
	ActivityID uint      `gorm:"primaryKey" json:"activity_id"`
	UserID     uint      `gorm:"primaryKey" json:"user_id"`
	CreatedAt  time.Time `json:"created_at"`
}

func (ActivityParticipant) TableName() string {
	return "activity_participants"
}

package models

import (
	"time"
)

// Issue type codes accepted by the report endpoint.
const (
	IssueBugReport  = 1
	IssueFeedback   = 2
	IssueSuggestion = 3
	IssueOther      = 4
)

type IssueReport struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	IssueType int       `gorm:"not null" json:"issue_type"`
	Detail    string    `gorm:"type:text;not null" json:"detail"`
	CreatedAt time.Time `json:"created_at"`
}

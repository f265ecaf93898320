package model

import "time"

// FeedbackSession ties one token to its progress through the combo catalog.
// TotalCombos is frozen from the catalog length at creation time; later
// catalog edits never resize an in-progress session.
type FeedbackSession struct {
	ID              string    `gorm:"primaryKey;type:varchar(36)"        json:"id"`
	Token           string    `gorm:"uniqueIndex;not null;type:varchar(32)" json:"-"`
	TotalCombos     int       `gorm:"not null"                           json:"total_combos"`
	CompletedCombos int       `gorm:"not null;default:0"                 json:"completed_combos"`
	IsComplete      bool      `gorm:"not null;default:false"             json:"is_complete"`
	CreatedAt       time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName names the table.
func (FeedbackSession) TableName() string { return "feedback_sessions" }

package model

import (
	"encoding/json"
	"time"
)

// Goal is a user-defined career goal.
type Goal struct {
	ID          string          `json:"id" gorm:"primaryKey"`
	UserID      string          `json:"user_id" gorm:"not null;index"`
	Title       string          `json:"title" gorm:"not null"`
	Description string          `json:"description" gorm:"type:text"`
	Category    string          `json:"category"` // technical, career, learning, networking
	Priority    string          `json:"priority" gorm:"default:medium"` // low, medium, high
	Status      string          `json:"status" gorm:"default:active"`   // active, completed, abandoned
	TargetDate  *time.Time      `json:"target_date"`
	Milestones  json.RawMessage `json:"milestones" gorm:"type:text"` // JSON array of {title, done}
	CompletedAt *time.Time      `json:"completed_at"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// GoalMilestone is the element shape of Goal.Milestones.
type GoalMilestone struct {
	Title string `json:"title"`
	Done  bool   `json:"done"`
}

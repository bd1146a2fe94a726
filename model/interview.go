package model

import (
	"encoding/json"
	"time"
)

// InterviewSession is one mock-interview practice session. Rating is
// 0-5 and only set once the session completes.
type InterviewSession struct {
	ID          string          `json:"id" gorm:"primaryKey"`
	UserID      string          `json:"user_id" gorm:"not null;index"`
	SessionType string          `json:"session_type"` // behavioral, technical, system_design
	Role        string          `json:"role"`
	Rating      float64         `json:"rating" gorm:"default:0"`
	Duration    int             `json:"duration" gorm:"default:0"` // in minutes
	Questions   json.RawMessage `json:"questions" gorm:"type:text"`
	Notes       string          `json:"notes" gorm:"type:text"`
	CompletedAt *time.Time      `json:"completed_at"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

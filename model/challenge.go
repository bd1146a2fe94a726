package model

import "time"

// CodingChallenge is a catalog entry, seeded at deploy time.
type CodingChallenge struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	Slug        string    `json:"slug" gorm:"uniqueIndex;not null"`
	Title       string    `json:"title" gorm:"not null"`
	Difficulty  string    `json:"difficulty"` // easy, medium, hard
	Category    string    `json:"category"`   // arrays, graphs, dp, ...
	Description string    `json:"description" gorm:"type:text"`
	IsActive    bool      `json:"is_active" gorm:"default:true"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ChallengeSubmission records one attempt at a challenge. A user may
// submit many times; only the first solve awards XP.
type ChallengeSubmission struct {
	ID          string     `json:"id" gorm:"primaryKey"`
	UserID      string     `json:"user_id" gorm:"not null;index"`
	ChallengeID string     `json:"challenge_id" gorm:"not null;index"`
	Language    string     `json:"language"`
	Status      string     `json:"status" gorm:"not null"` // attempted, solved
	TimeSpent   int        `json:"time_spent" gorm:"default:0"` // in minutes
	SolvedAt    *time.Time `json:"solved_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	Challenge CodingChallenge `json:"challenge" gorm:"foreignKey:ChallengeID"`
}

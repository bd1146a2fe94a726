package dto

import "time"

type SubmitChallengeRequest struct {
	Language  string `json:"language" validate:"required,max=40" example:"go"`
	Status    string `json:"status" validate:"required,oneof=solved attempted" example:"solved"`
	TimeSpent int    `json:"time_spent" validate:"gte=0" example:"30"`
}

func (r SubmitChallengeRequest) Validate() error {
	return GetValidator().Struct(r)
}

type ChallengeResponse struct {
	ID          string `json:"id"`
	Slug        string `json:"slug"`
	Title       string `json:"title"`
	Difficulty  string `json:"difficulty"`
	Category    string `json:"category,omitempty"`
	Description string `json:"description,omitempty"`
}

type SubmissionResponse struct {
	ID          string     `json:"id"`
	ChallengeID string     `json:"challenge_id"`
	Language    string     `json:"language"`
	Status      string     `json:"status"`
	TimeSpent   int        `json:"time_spent"`
	SolvedAt    *time.Time `json:"solved_at,omitempty"`
	XPAwarded   int        `json:"xp_awarded"`
	CreatedAt   time.Time  `json:"created_at"`
}

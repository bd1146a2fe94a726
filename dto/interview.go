package dto

import "time"

type CompleteInterviewRequest struct {
	SessionType string   `json:"session_type" validate:"required,oneof=behavioral technical system_design mock" example:"technical"`
	Role        string   `json:"role" validate:"max=120" example:"Backend Engineer"`
	Rating      float64  `json:"rating" validate:"gte=0,lte=5" example:"4.5"`
	Duration    int      `json:"duration" validate:"gte=0" example:"45"`
	Questions   []string `json:"questions,omitempty"`
	Notes       string   `json:"notes" validate:"max=4000"`
}

func (r CompleteInterviewRequest) Validate() error {
	return GetValidator().Struct(r)
}

type InterviewSessionResponse struct {
	ID          string    `json:"id"`
	SessionType string    `json:"session_type"`
	Role        string    `json:"role,omitempty"`
	Rating      float64   `json:"rating"`
	Duration    int       `json:"duration"`
	Questions   []string  `json:"questions,omitempty"`
	Notes       string    `json:"notes,omitempty"`
	CompletedAt time.Time `json:"completed_at"`
	XPAwarded   int       `json:"xp_awarded"`
}

package dto

import "time"

type CreateGoalRequest struct {
	Title       string          `json:"title" validate:"required,min=1,max=160" example:"Land a backend role"`
	Description string          `json:"description" validate:"max=2000"`
	Category    string          `json:"category" validate:"max=60" example:"career"`
	Priority    string          `json:"priority" validate:"omitempty,oneof=low medium high" example:"high"`
	TargetDate  *time.Time      `json:"target_date,omitempty"`
	Milestones  []MilestoneItem `json:"milestones,omitempty" validate:"dive"`
}

func (r CreateGoalRequest) Validate() error {
	return GetValidator().Struct(r)
}

type UpdateGoalRequest struct {
	Title       *string         `json:"title,omitempty" validate:"omitempty,min=1,max=160"`
	Description *string         `json:"description,omitempty" validate:"omitempty,max=2000"`
	Category    *string         `json:"category,omitempty" validate:"omitempty,max=60"`
	Priority    *string         `json:"priority,omitempty" validate:"omitempty,oneof=low medium high"`
	Status      *string         `json:"status,omitempty" validate:"omitempty,oneof=active completed abandoned"`
	TargetDate  *time.Time      `json:"target_date,omitempty"`
	Milestones  []MilestoneItem `json:"milestones,omitempty" validate:"dive"`
}

func (r UpdateGoalRequest) Validate() error {
	return GetValidator().Struct(r)
}

type MilestoneItem struct {
	Title string `json:"title" validate:"required,max=160"`
	Done  bool   `json:"done"`
}

type GoalResponse struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	Category    string          `json:"category,omitempty"`
	Priority    string          `json:"priority"`
	Status      string          `json:"status"`
	TargetDate  *time.Time      `json:"target_date,omitempty"`
	Milestones  []MilestoneItem `json:"milestones,omitempty"`
	CompletedAt *time.Time      `json:"completed_at,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

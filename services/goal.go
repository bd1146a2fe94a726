package services

import (
	"encoding/json"
	"time"

	"github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"

	"github.com/ascent-labs/ascent_api/dto"
	"github.com/ascent-labs/ascent_api/model"
	"github.com/ascent-labs/ascent_api/shared"
)

type GoalService struct {
	context.DefaultService

	sqlSvc       *PostgresService
	analyticsSvc *AnalyticsService
}

const GOAL_SVC = "goal_svc"

func (svc GoalService) Id() string {
	return GOAL_SVC
}

func (svc *GoalService) Configure(ctx *context.Context) error {
	return svc.DefaultService.Configure(ctx)
}

func (svc *GoalService) Start() error {
	svc.sqlSvc = svc.Service(POSTGRES_SVC).(*PostgresService)
	svc.analyticsSvc = svc.Service(ANALYTICS_SVC).(*AnalyticsService)
	return nil
}

func (svc *GoalService) CreateGoal(userID string, req dto.CreateGoalRequest) (*dto.GoalResponse, error) {
	priority := req.Priority
	if priority == "" {
		priority = shared.PriorityMedium
	}

	goal := &model.Goal{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Priority:    priority,
		Status:      shared.GoalStatusActive,
		TargetDate:  req.TargetDate,
	}
	if len(req.Milestones) > 0 {
		raw, err := json.Marshal(req.Milestones)
		if err != nil {
			return nil, shared.NewBadRequestError(err, "Invalid milestones")
		}
		goal.Milestones = raw
	}

	if err := svc.sqlSvc.Goals().CreateGoal(goal); err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	svc.analyticsSvc.NoteGoalCreated(userID)

	return toGoalResponse(goal), nil
}

func (svc *GoalService) GetGoal(userID, goalID string) (*dto.GoalResponse, error) {
	goal, err := svc.sqlSvc.Goals().GetGoal(userID, goalID)
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}
	return toGoalResponse(goal), nil
}

func (svc *GoalService) ListGoals(userID, status string) ([]dto.GoalResponse, error) {
	goals, err := svc.sqlSvc.Goals().GetUserGoals(userID, status)
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	out := make([]dto.GoalResponse, 0, len(goals))
	for i := range goals {
		out = append(out, *toGoalResponse(&goals[i]))
	}
	return out, nil
}

func (svc *GoalService) UpdateGoal(userID, goalID string, req dto.UpdateGoalRequest) (*dto.GoalResponse, error) {
	goal, err := svc.sqlSvc.Goals().GetGoal(userID, goalID)
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	if req.Title != nil {
		goal.Title = *req.Title
	}
	if req.Description != nil {
		goal.Description = *req.Description
	}
	if req.Category != nil {
		goal.Category = *req.Category
	}
	if req.Priority != nil {
		goal.Priority = *req.Priority
	}
	if req.Status != nil && *req.Status != goal.Status {
		// completion XP only flows through CompleteGoal
		if *req.Status == shared.GoalStatusCompleted {
			return nil, shared.NewBadRequestError(nil, "Use the complete endpoint to finish a goal")
		}
		goal.Status = *req.Status
	}
	if req.TargetDate != nil {
		goal.TargetDate = req.TargetDate
	}
	if req.Milestones != nil {
		raw, err := json.Marshal(req.Milestones)
		if err != nil {
			return nil, shared.NewBadRequestError(err, "Invalid milestones")
		}
		goal.Milestones = raw
	}

	if err := svc.sqlSvc.Goals().UpdateGoal(goal); err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}
	return toGoalResponse(goal), nil
}

// CompleteGoal marks an active goal completed and pays out the
// priority-based XP reward as a goalTracking activity.
func (svc *GoalService) CompleteGoal(userID, goalID string) (*dto.GoalResponse, int, error) {
	goal, err := svc.sqlSvc.Goals().GetGoal(userID, goalID)
	if err != nil {
		return nil, 0, svc.sqlSvc.HandleError(err)
	}

	if goal.Status == shared.GoalStatusCompleted {
		return nil, 0, shared.NewConflictError(nil, "Goal is already completed")
	}

	now := time.Now()
	goal.Status = shared.GoalStatusCompleted
	goal.CompletedAt = &now

	if err := svc.sqlSvc.Goals().UpdateGoal(goal); err != nil {
		return nil, 0, svc.sqlSvc.HandleError(err)
	}

	xp, err := svc.analyticsSvc.RecordGoalCompletion(userID, goal.Priority)
	if err != nil {
		log.WithError(err).WithFields(log.Fields{
			"user_id": userID,
			"goal_id": goalID,
		}).Error("Goal completed but XP award failed")
	}

	return toGoalResponse(goal), xp, nil
}

// ToggleMilestone flips one milestone's done flag by index.
func (svc *GoalService) ToggleMilestone(userID, goalID string, index int) (*dto.GoalResponse, error) {
	goal, err := svc.sqlSvc.Goals().GetGoal(userID, goalID)
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	var milestones []dto.MilestoneItem
	if len(goal.Milestones) > 0 {
		if err := json.Unmarshal(goal.Milestones, &milestones); err != nil {
			return nil, shared.NewInternalError(err, "Corrupt milestone data")
		}
	}
	if index < 0 || index >= len(milestones) {
		return nil, shared.NewBadRequestError(nil, "Milestone index out of range")
	}

	milestones[index].Done = !milestones[index].Done
	raw, err := json.Marshal(milestones)
	if err != nil {
		return nil, shared.NewInternalError(err, "Failed to encode milestones")
	}
	goal.Milestones = raw

	if err := svc.sqlSvc.Goals().UpdateGoal(goal); err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}
	return toGoalResponse(goal), nil
}

func (svc *GoalService) DeleteGoal(userID, goalID string) error {
	if err := svc.sqlSvc.Goals().DeleteGoal(userID, goalID); err != nil {
		return svc.sqlSvc.HandleError(err)
	}
	return nil
}

func toGoalResponse(goal *model.Goal) *dto.GoalResponse {
	resp := &dto.GoalResponse{
		ID:          goal.ID,
		Title:       goal.Title,
		Description: goal.Description,
		Category:    goal.Category,
		Priority:    goal.Priority,
		Status:      goal.Status,
		TargetDate:  goal.TargetDate,
		CompletedAt: goal.CompletedAt,
		CreatedAt:   goal.CreatedAt,
		UpdatedAt:   goal.UpdatedAt,
	}
	if len(goal.Milestones) > 0 {
		if err := json.Unmarshal(goal.Milestones, &resp.Milestones); err != nil {
			log.WithError(err).WithField("goal_id", goal.ID).Warn("Failed to decode milestones")
		}
	}
	return resp
}

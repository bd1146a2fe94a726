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

type InterviewService struct {
	context.DefaultService

	sqlSvc       *PostgresService
	analyticsSvc *AnalyticsService
}

const INTERVIEW_SVC = "interview_svc"

func (svc InterviewService) Id() string {
	return INTERVIEW_SVC
}

func (svc *InterviewService) Configure(ctx *context.Context) error {
	return svc.DefaultService.Configure(ctx)
}

func (svc *InterviewService) Start() error {
	svc.sqlSvc = svc.Service(POSTGRES_SVC).(*PostgresService)
	svc.analyticsSvc = svc.Service(ANALYTICS_SVC).(*AnalyticsService)
	return nil
}

// CompleteSession stores a finished practice session and pays out
// rating-based XP as an interviewPractice activity.
func (svc *InterviewService) CompleteSession(userID string, req dto.CompleteInterviewRequest) (*dto.InterviewSessionResponse, error) {
	now := time.Now()
	session := &model.InterviewSession{
		UserID:      userID,
		SessionType: req.SessionType,
		Role:        req.Role,
		Rating:      req.Rating,
		Duration:    req.Duration,
		Notes:       req.Notes,
		CompletedAt: &now,
	}
	if len(req.Questions) > 0 {
		raw, err := json.Marshal(req.Questions)
		if err != nil {
			return nil, shared.NewBadRequestError(err, "Invalid questions")
		}
		session.Questions = raw
	}

	if err := svc.sqlSvc.Interviews().CreateSession(session); err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	xp, err := svc.analyticsSvc.RecordInterviewSession(userID, req.Rating, req.Duration)
	if err != nil {
		log.WithError(err).WithFields(log.Fields{
			"user_id":    userID,
			"session_id": session.ID,
		}).Error("Interview stored but XP award failed")
	}

	resp := toInterviewResponse(session)
	resp.XPAwarded = xp
	return resp, nil
}

func (svc *InterviewService) GetSession(userID, sessionID string) (*dto.InterviewSessionResponse, error) {
	session, err := svc.sqlSvc.Interviews().GetSession(userID, sessionID)
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}
	return toInterviewResponse(session), nil
}

func (svc *InterviewService) ListSessions(userID string, limit int) ([]dto.InterviewSessionResponse, error) {
	sessions, err := svc.sqlSvc.Interviews().GetUserSessions(userID, limit)
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	out := make([]dto.InterviewSessionResponse, 0, len(sessions))
	for i := range sessions {
		out = append(out, *toInterviewResponse(&sessions[i]))
	}
	return out, nil
}

func toInterviewResponse(session *model.InterviewSession) *dto.InterviewSessionResponse {
	resp := &dto.InterviewSessionResponse{
		ID:          session.ID,
		SessionType: session.SessionType,
		Role:        session.Role,
		Rating:      session.Rating,
		Duration:    session.Duration,
		Notes:       session.Notes,
	}
	if session.CompletedAt != nil {
		resp.CompletedAt = *session.CompletedAt
	}
	if len(session.Questions) > 0 {
		if err := json.Unmarshal(session.Questions, &resp.Questions); err != nil {
			log.WithError(err).WithField("session_id", session.ID).Warn("Failed to decode questions")
		}
	}
	return resp
}

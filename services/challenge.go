package services

import (
	"time"

	"github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"

	"github.com/ascent-labs/ascent_api/dto"
	"github.com/ascent-labs/ascent_api/model"
	"github.com/ascent-labs/ascent_api/shared"
)

type ChallengeService struct {
	context.DefaultService

	sqlSvc       *PostgresService
	analyticsSvc *AnalyticsService
}

const CHALLENGE_SVC = "challenge_svc"

func (svc ChallengeService) Id() string {
	return CHALLENGE_SVC
}

func (svc *ChallengeService) Configure(ctx *context.Context) error {
	return svc.DefaultService.Configure(ctx)
}

func (svc *ChallengeService) Start() error {
	svc.sqlSvc = svc.Service(POSTGRES_SVC).(*PostgresService)
	svc.analyticsSvc = svc.Service(ANALYTICS_SVC).(*AnalyticsService)
	return nil
}

func (svc *ChallengeService) ListChallenges(difficulty, category string) ([]dto.ChallengeResponse, error) {
	challenges, err := svc.sqlSvc.Challenges().ListChallenges(difficulty, category)
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	out := make([]dto.ChallengeResponse, 0, len(challenges))
	for _, c := range challenges {
		out = append(out, dto.ChallengeResponse{
			ID:         c.ID,
			Slug:       c.Slug,
			Title:      c.Title,
			Difficulty: c.Difficulty,
			Category:   c.Category,
		})
	}
	return out, nil
}

func (svc *ChallengeService) GetChallenge(slug string) (*dto.ChallengeResponse, error) {
	challenge, err := svc.sqlSvc.Challenges().GetChallengeBySlug(slug)
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	return &dto.ChallengeResponse{
		ID:          challenge.ID,
		Slug:        challenge.Slug,
		Title:       challenge.Title,
		Difficulty:  challenge.Difficulty,
		Category:    challenge.Category,
		Description: challenge.Description,
	}, nil
}

// Submit records an attempt. The first solve of a challenge pays out
// difficulty XP and counts a codingChallenges activity; repeat solves
// and plain attempts record practice time only.
func (svc *ChallengeService) Submit(userID, challengeID string, req dto.SubmitChallengeRequest) (*dto.SubmissionResponse, error) {
	challenge, err := svc.sqlSvc.Challenges().GetChallenge(challengeID)
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	alreadySolved, err := svc.sqlSvc.Challenges().HasSolved(userID, challenge.ID)
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	submission := &model.ChallengeSubmission{
		UserID:      userID,
		ChallengeID: challenge.ID,
		Language:    req.Language,
		Status:      req.Status,
		TimeSpent:   req.TimeSpent,
	}
	if req.Status == shared.SubmissionSolved {
		now := time.Now()
		submission.SolvedAt = &now
	}

	if err := svc.sqlSvc.Challenges().CreateSubmission(submission); err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	xp := 0
	if req.Status == shared.SubmissionSolved && !alreadySolved {
		xp, err = svc.analyticsSvc.RecordChallengeSolve(userID, challenge.Difficulty, req.TimeSpent)
	} else {
		err = svc.analyticsSvc.RecordChallengeAttempt(userID, req.TimeSpent)
	}
	if err != nil {
		log.WithError(err).WithFields(log.Fields{
			"user_id":       userID,
			"submission_id": submission.ID,
		}).Error("Submission stored but activity recording failed")
	}

	return &dto.SubmissionResponse{
		ID:          submission.ID,
		ChallengeID: submission.ChallengeID,
		Language:    submission.Language,
		Status:      submission.Status,
		TimeSpent:   req.TimeSpent,
		SolvedAt:    submission.SolvedAt,
		XPAwarded:   xp,
		CreatedAt:   submission.CreatedAt,
	}, nil
}

func (svc *ChallengeService) ListSubmissions(userID string, limit int) ([]dto.SubmissionResponse, error) {
	submissions, err := svc.sqlSvc.Challenges().GetUserSubmissions(userID, limit)
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	out := make([]dto.SubmissionResponse, 0, len(submissions))
	for _, s := range submissions {
		out = append(out, dto.SubmissionResponse{
			ID:          s.ID,
			ChallengeID: s.ChallengeID,
			Language:    s.Language,
			Status:      s.Status,
			TimeSpent:   s.TimeSpent,
			SolvedAt:    s.SolvedAt,
			CreatedAt:   s.CreatedAt,
		})
	}
	return out, nil
}

package handlers

import (
	"io"

	"github.com/ascent-labs/ascent_api/dto"
)

type AuthServiceInterface interface {
	Register(req dto.RegisterRequest) (*dto.RegisterResponse, error)
	Login(req dto.LoginRequest, clientIP string) (*dto.LoginResponse, error)
	RefreshToken(req dto.RefreshTokenRequest) (*dto.TokenPair, error)
	GetProfile(userID string) (*dto.UserProfileResponse, error)
	UpdateProfile(userID string, req dto.UpdateProfileRequest) (*dto.UserProfileResponse, error)
}

type AnalyticsServiceInterface interface {
	RecordActivity(userID string, req dto.RecordActivityRequest) (*dto.AnalyticsResponse, error)
	GetAnalytics(userID string) (*dto.AnalyticsResponse, error)
	GetDashboard(userID string) (*dto.DashboardResponse, error)
	GetLeaderboard(userID, sortBy string, limit int) (*dto.LeaderboardResponse, error)
	GetAchievements(userID string) ([]dto.AchievementResponse, error)
	GetGoalStats(userID string) (*dto.GoalStatsResponse, error)
	GetInterviewStats(userID string) (*dto.InterviewStatsResponse, error)
	GetCodingStats(userID string) (*dto.CodingStatsResponse, error)
	PracticeSkill(userID string, req dto.PracticeSkillRequest) (*dto.SkillProgressResponse, error)
	GetUserSkills(userID string) ([]dto.SkillProgressResponse, error)
}

type GoalServiceInterface interface {
	CreateGoal(userID string, req dto.CreateGoalRequest) (*dto.GoalResponse, error)
	GetGoal(userID, goalID string) (*dto.GoalResponse, error)
	ListGoals(userID, status string) ([]dto.GoalResponse, error)
	UpdateGoal(userID, goalID string, req dto.UpdateGoalRequest) (*dto.GoalResponse, error)
	CompleteGoal(userID, goalID string) (*dto.GoalResponse, int, error)
	ToggleMilestone(userID, goalID string, index int) (*dto.GoalResponse, error)
	DeleteGoal(userID, goalID string) error
}

type InterviewServiceInterface interface {
	CompleteSession(userID string, req dto.CompleteInterviewRequest) (*dto.InterviewSessionResponse, error)
	GetSession(userID, sessionID string) (*dto.InterviewSessionResponse, error)
	ListSessions(userID string, limit int) ([]dto.InterviewSessionResponse, error)
}

type ChallengeServiceInterface interface {
	ListChallenges(difficulty, category string) ([]dto.ChallengeResponse, error)
	GetChallenge(slug string) (*dto.ChallengeResponse, error)
	Submit(userID, challengeID string, req dto.SubmitChallengeRequest) (*dto.SubmissionResponse, error)
	ListSubmissions(userID string, limit int) ([]dto.SubmissionResponse, error)
}

type ResumeServiceInterface interface {
	Upload(userID, title, fileName, contentType string, size int64, reader io.Reader) (*dto.ResumeResponse, error)
	GetResume(userID, resumeID string) (*dto.ResumeResponse, error)
	ListResumes(userID string) ([]dto.ResumeResponse, error)
	DeleteResume(userID, resumeID string) error
	CompleteReportCard(resumeID string, score *float64, summary string, failed bool) error
}

type ChatServiceInterface interface {
	Chat(userID string, req dto.ChatRequest) (*dto.ChatResponse, error)
}

package services

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/alphabatem/common/context"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	fiberSwagger "github.com/gofiber/swagger"
	log "github.com/sirupsen/logrus"

	_ "github.com/ascent-labs/ascent_api/docs"
	"github.com/ascent-labs/ascent_api/services/handlers"
	"github.com/ascent-labs/ascent_api/shared"
)

// authProvider is what the http service needs from the auth
// middleware; resolved structurally to keep the packages decoupled.
type authProvider interface {
	RequiredAuth() fiber.Handler
}

type HttpService struct {
	context.DefaultService

	jwtSvc        *JWTService
	authSvc       *AuthService
	analyticsSvc  *AnalyticsService
	goalSvc       *GoalService
	interviewSvc  *InterviewService
	challengeSvc  *ChallengeService
	resumeSvc     *ResumeService
	chatSvc       *ChatService
	rateLimitSvc  *RateLimitService
	monitoringSvc *MonitoringService

	port        int
	internalKey string
	app         *fiber.App
}

const HTTP_SVC = "http_svc"

const authMiddlewareSvc = "auth_middleware_svc"

func (svc HttpService) Id() string {
	return HTTP_SVC
}

func (svc *HttpService) Configure(ctx *context.Context) error {
	if port := os.Getenv("HTTP_PORT"); port != "" {
		var err error
		if svc.port, err = strconv.Atoi(port); err != nil {
			return err
		}
	} else {
		svc.port = 8000
	}

	svc.internalKey = os.Getenv("INTERNAL_API_KEY")

	return svc.DefaultService.Configure(ctx)
}

func (svc *HttpService) Start() error {
	svc.jwtSvc = svc.Service(JWT_SVC).(*JWTService)
	svc.authSvc = svc.Service(AUTH_SVC).(*AuthService)
	svc.analyticsSvc = svc.Service(ANALYTICS_SVC).(*AnalyticsService)
	svc.goalSvc = svc.Service(GOAL_SVC).(*GoalService)
	svc.interviewSvc = svc.Service(INTERVIEW_SVC).(*InterviewService)
	svc.challengeSvc = svc.Service(CHALLENGE_SVC).(*ChallengeService)
	svc.resumeSvc = svc.Service(RESUME_SVC).(*ResumeService)
	svc.chatSvc = svc.Service(CHAT_SVC).(*ChatService)
	svc.rateLimitSvc = svc.Service(RATE_LIMIT_SVC).(*RateLimitService)
	svc.monitoringSvc = svc.Service(MONITORING_SVC).(*MonitoringService)

	auth := svc.Service(authMiddlewareSvc).(authProvider)

	app := fiber.New(fiber.Config{
		ErrorHandler: svc.handleError,
		BodyLimit:    12 << 20,
	})
	svc.app = app

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     os.Getenv("CORS_ORIGINS"),
		AllowCredentials: false,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(MonitoringMiddleware(svc.monitoringSvc))
	app.Use(svc.rateLimitSvc.IPRateLimit())

	app.Get("/ping", svc.ping)
	app.Get("/swagger/*", fiberSwagger.HandlerDefault)

	authHandler := handlers.NewAuthHandler(svc.authSvc)
	analyticsHandler := handlers.NewAnalyticsHandler(svc.analyticsSvc)
	goalHandler := handlers.NewGoalHandler(svc.goalSvc)
	interviewHandler := handlers.NewInterviewHandler(svc.interviewSvc)
	challengeHandler := handlers.NewChallengeHandler(svc.challengeSvc)
	resumeHandler := handlers.NewResumeHandler(svc.resumeSvc)
	chatHandler := handlers.NewChatHandler(svc.chatSvc)

	v1 := app.Group("/api/v1")

	v1.Get("/ping", svc.ping)

	// auth
	v1.Post("/register", svc.rateLimitSvc.RateLimit("register"), authHandler.Register)
	v1.Post("/login", svc.rateLimitSvc.RateLimit("login"), authHandler.Login)
	v1.Post("/refresh", svc.rateLimitSvc.RateLimit("refresh"), authHandler.RefreshToken)

	protected := v1.Group("", auth.RequiredAuth())

	protected.Get("/profile", authHandler.GetProfile)
	protected.Put("/profile", authHandler.UpdateProfile)

	// gamification core
	protected.Post("/activity", svc.rateLimitSvc.RateLimit("record_activity"), analyticsHandler.RecordActivity)
	protected.Get("/analytics", analyticsHandler.GetAnalytics)
	protected.Get("/dashboard", analyticsHandler.GetDashboard)
	protected.Get("/leaderboard", analyticsHandler.GetLeaderboard)
	protected.Get("/achievements", analyticsHandler.GetAchievements)
	protected.Get("/stats/goals", analyticsHandler.GetGoalStats)
	protected.Get("/stats/interviews", analyticsHandler.GetInterviewStats)
	protected.Get("/stats/coding", analyticsHandler.GetCodingStats)

	// skills
	protected.Get("/skills", analyticsHandler.GetSkills)
	protected.Post("/skills/practice", analyticsHandler.PracticeSkill)

	// goals
	protected.Post("/goals", goalHandler.CreateGoal)
	protected.Get("/goals", goalHandler.ListGoals)
	protected.Get("/goals/:goalId", goalHandler.GetGoal)
	protected.Put("/goals/:goalId", goalHandler.UpdateGoal)
	protected.Delete("/goals/:goalId", goalHandler.DeleteGoal)
	protected.Post("/goals/:goalId/complete", goalHandler.CompleteGoal)
	protected.Post("/goals/:goalId/milestones/:index", goalHandler.ToggleMilestone)

	// interviews
	protected.Post("/interviews", interviewHandler.CompleteSession)
	protected.Get("/interviews", interviewHandler.ListSessions)
	protected.Get("/interviews/:sessionId", interviewHandler.GetSession)

	// coding challenges
	protected.Get("/challenges", challengeHandler.ListChallenges)
	protected.Get("/challenges/:slug", challengeHandler.GetChallenge)
	protected.Post("/challenges/:challengeId/submit", challengeHandler.Submit)
	protected.Get("/submissions", challengeHandler.ListSubmissions)

	// resumes
	protected.Post("/resumes", svc.rateLimitSvc.RateLimit("resume_upload"), resumeHandler.Upload)
	protected.Get("/resumes", resumeHandler.ListResumes)
	protected.Get("/resumes/:resumeId", resumeHandler.GetResume)
	protected.Delete("/resumes/:resumeId", resumeHandler.DeleteResume)

	// assistant
	protected.Post("/chat", svc.rateLimitSvc.RateLimit("chat"), chatHandler.Chat)

	// internal callbacks
	internal := app.Group("/internal", svc.internalAuth)
	internal.Post("/resumes/:resumeId/report-card", resumeHandler.CompleteReportCard)

	app.Use(func(c *fiber.Ctx) error {
		return shared.ResponseJSON(c, fiber.StatusNotFound, "Not Found", "page not found")
	})

	log.Printf("HTTP server listening on :%d", svc.port)
	return app.Listen(fmt.Sprintf(":%v", svc.port))
}

func (svc *HttpService) Shutdown() {
	if svc.app != nil {
		_ = svc.app.Shutdown()
	}
}

func (svc *HttpService) internalAuth(c *fiber.Ctx) error {
	if svc.internalKey == "" || c.Get("X-Internal-Key") != svc.internalKey {
		return shared.ResponseJSON(c, fiber.StatusUnauthorized, "Unauthorized", "Invalid internal key")
	}
	return c.Next()
}

// @Summary Ping
// @Description This endpoint checks the health of the service
// @Tags health
// @Accept  json
// @Produce json
// @Success 200 {object} shared.Response{data=string}
// @Router /ping [get]
func (svc *HttpService) ping(c *fiber.Ctx) error {
	c.Set("Cache-Control", "max-age=10")
	return shared.ResponseJSON(c, fiber.StatusOK, "Success", "pong")
}

func (svc *HttpService) handleError(c *fiber.Ctx, err error) error {
	if err == nil {
		return nil
	}

	if appErr, ok := shared.GetAppError(err); ok {
		return shared.ResponseJSON(c, appErr.StatusCode, appErr.Message, appErr.Data)
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return shared.ResponseJSON(c, fiberErr.Code, fiberErr.Message, nil)
	}

	return shared.ResponseInternalError(c, err)
}

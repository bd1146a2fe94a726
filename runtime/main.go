package main

import (
	"github.com/alphabatem/common/context"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/ascent-labs/ascent_api/middleware"
	"github.com/ascent-labs/ascent_api/services"
)

// @title Ascent API
// @version 1.0
// @description Career development platform with gamified progress tracking
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := godotenv.Load(); err != nil {
		log.Warn().Err(err).Msg("No .env file found, using system environment")
	}

	ctx, err := context.NewCtx(
		&services.PostgresService{},
		&services.RedisService{},
		&services.MinIOService{},

		&services.JWTService{},
		&middleware.AuthMiddleware{},

		&services.AuthService{},
		&services.AnalyticsService{},
		&services.GoalService{},
		&services.InterviewService{},
		&services.ChallengeService{},
		&services.ResumeService{},
		&services.ChatService{},
		&services.RateLimitService{},

		&services.MonitoringService{},
		&services.HttpService{},
	)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build service context")
		return
	}

	if err := ctx.Run(); err != nil {
		log.Fatal().Err(err).Msg("service context exited")
		return
	}
}

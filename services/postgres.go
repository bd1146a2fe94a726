package services

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ascent-labs/ascent_api/model"
	"github.com/ascent-labs/ascent_api/services/repositories"
	"github.com/ascent-labs/ascent_api/shared"
)

type PostgresService struct {
	context.DefaultService
	db *gorm.DB

	database string

	users      *repositories.UserRepository
	analytics  *repositories.AnalyticsRepository
	goals      *repositories.GoalRepository
	interviews *repositories.InterviewRepository
	challenges *repositories.ChallengeRepository
	resumes    *repositories.ResumeRepository
}

const POSTGRES_SVC = "postgres_svc"

func (ds PostgresService) Id() string {
	return POSTGRES_SVC
}

func (ds *PostgresService) Db() *gorm.DB {
	return ds.db
}

func (ds *PostgresService) Users() *repositories.UserRepository {
	return ds.users
}

func (ds *PostgresService) Analytics() *repositories.AnalyticsRepository {
	return ds.analytics
}

func (ds *PostgresService) Goals() *repositories.GoalRepository {
	return ds.goals
}

func (ds *PostgresService) Interviews() *repositories.InterviewRepository {
	return ds.interviews
}

func (ds *PostgresService) Challenges() *repositories.ChallengeRepository {
	return ds.challenges
}

func (ds *PostgresService) Resumes() *repositories.ResumeRepository {
	return ds.resumes
}

func (ds *PostgresService) Configure(ctx *context.Context) error {
	ds.database = os.Getenv("DATABASE_URL")
	if ds.database == "" {
		// Fallback to individual environment variables
		host := os.Getenv("DB_HOST")
		if host == "" {
			host = "localhost"
		}
		port := os.Getenv("DB_PORT")
		if port == "" {
			port = "5432"
		}
		user := os.Getenv("DB_USER")
		if user == "" {
			user = "postgres"
		}
		password := os.Getenv("DB_PASSWORD")
		if password == "" {
			password = "postgres"
		}
		dbname := os.Getenv("DB_NAME")
		if dbname == "" {
			dbname = "ascent_api"
		}
		sslmode := os.Getenv("DB_SSLMODE")
		if sslmode == "" {
			sslmode = "disable"
		}

		ds.database = fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
			host, user, password, dbname, port, sslmode)
	}

	return ds.DefaultService.Configure(ctx)
}

func (ds *PostgresService) Start() (err error) {
	// Retry connection with exponential backoff
	maxRetries := 10
	retryDelay := time.Second

	for attempt := 1; attempt <= maxRetries; attempt++ {
		log.Printf("Attempting to connect to database (attempt %d/%d)...", attempt, maxRetries)

		ds.db, err = gorm.Open(postgres.Open(ds.database), &gorm.Config{
			Logger:         logger.Default.LogMode(logger.Error),
			TranslateError: true,
		})

		if err == nil {
			sqlDB, dbErr := ds.db.DB()
			if dbErr == nil {
				pingErr := sqlDB.Ping()
				if pingErr == nil {
					log.Println("Successfully connected to database")
					break
				}
				err = pingErr
			} else {
				err = dbErr
			}
		}

		if attempt == maxRetries {
			log.Printf("Failed to connect to database after %d attempts: %v", maxRetries, err)
			return err
		}

		log.Printf("Database connection failed: %v. Retrying in %v...", err, retryDelay)
		time.Sleep(retryDelay)

		retryDelay *= 2
		if retryDelay > 10*time.Second {
			retryDelay = 10 * time.Second
		}
	}

	models := []interface{}{
		&model.User{},
		&model.RateLimit{},

		// Gamification models
		&model.UserAnalytics{},
		&model.DailyActivity{},
		&model.SkillProgress{},
		&model.UserAchievement{},

		// Platform models
		&model.Goal{},
		&model.InterviewSession{},
		&model.CodingChallenge{},
		&model.ChallengeSubmission{},
		&model.Resume{},
	}

	err = ds.db.AutoMigrate(models...)
	if err != nil {
		log.Printf("Failed to migrate database: %v", err)
		return err
	}

	ds.users = repositories.NewUserRepository(ds.db)
	ds.analytics = repositories.NewAnalyticsRepository(ds.db)
	ds.goals = repositories.NewGoalRepository(ds.db)
	ds.interviews = repositories.NewInterviewRepository(ds.db)
	ds.challenges = repositories.NewChallengeRepository(ds.db)
	ds.resumes = repositories.NewResumeRepository(ds.db)

	// Keep roughly 13 months of daily buckets; everything the rollup
	// views read lives well inside that window.
	ticker := time.NewTicker(24 * time.Hour)
	go func() {
		for range ticker.C {
			cutoff := time.Now().UTC().AddDate(0, 0, -400)
			pruned, err := ds.analytics.PruneDailyActivities(cutoff)
			if err != nil {
				log.Printf("Failed to prune daily activity: %v", err)
				continue
			}
			if pruned > 0 {
				log.Printf("Pruned %d daily activity rows older than %s", pruned, cutoff.Format("2006-01-02"))
			}
		}
	}()

	log.Println("Database connected and migrated successfully")
	return nil
}

// HandleError maps storage errors onto transport-level app errors.
func (ds *PostgresService) HandleError(err error) error {
	if err == nil {
		return nil
	}

	var statusCode int
	var errorType string

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		statusCode = http.StatusNotFound
		errorType = "NOT_FOUND"
	case errors.Is(err, gorm.ErrDuplicatedKey):
		statusCode = http.StatusConflict
		errorType = "CONFLICT"
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		statusCode = http.StatusBadRequest
		errorType = "FOREIGN_KEY_VIOLATION"
	case errors.Is(err, gorm.ErrInvalidTransaction):
		statusCode = http.StatusInternalServerError
		errorType = "TRANSACTION_ERROR"
	default:
		if strings.Contains(err.Error(), "duplicate key value violates unique constraint") {
			statusCode = http.StatusConflict
			errorType = "UNIQUE_CONSTRAINT"
		} else if strings.Contains(err.Error(), "connection refused") {
			statusCode = http.StatusServiceUnavailable
			errorType = "DATABASE_CONNECTION_ERROR"
		} else {
			statusCode = http.StatusInternalServerError
			errorType = "INTERNAL_ERROR"
		}
	}

	log.WithFields(log.Fields{
		"status_code": statusCode,
		"error_type":  errorType,
	}).WithError(err).Error("Database operation failed")

	return &shared.AppError{
		StatusCode: statusCode,
		Message:    errorType,
		Err:        err,
	}
}

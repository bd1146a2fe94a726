package seeders

import (
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/ascent-labs/ascent_api/model"
)

// UserSeeder creates demo accounts for local development. It refuses
// to run outside dev unless SEED_DEMO_USERS is set.
type UserSeeder struct {
	db *gorm.DB
}

func NewUserSeeder(db *gorm.DB) *UserSeeder {
	return &UserSeeder{db: db}
}

func (s *UserSeeder) SeedUsers() error {
	if os.Getenv("APP_ENV") == "production" && os.Getenv("SEED_DEMO_USERS") == "" {
		log.Println("Skipping demo user seeding in production")
		return nil
	}

	if err := s.db.AutoMigrate(&model.User{}); err != nil {
		return err
	}

	demos := []struct {
		email      string
		username   string
		fullName   string
		targetRole string
	}{
		{"demo@ascent.dev", "demo", "Demo User", "Backend Engineer"},
		{"reviewer@ascent.dev", "reviewer", "Review Account", "Engineering Manager"},
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("DemoPass123!"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	for _, d := range demos {
		var existing model.User
		if err := s.db.Where("email = ?", d.email).First(&existing).Error; err == nil {
			log.Printf("User %s already exists, skipping", d.email)
			continue
		} else if err != gorm.ErrRecordNotFound {
			return err
		}

		user := model.User{
			ID:         uuid.New().String(),
			Email:      d.email,
			Username:   d.username,
			Password:   string(hashed),
			FullName:   d.fullName,
			TargetRole: d.targetRole,
			IsActive:   true,
			CreatedAt:  time.Now(),
			UpdatedAt:  time.Now(),
		}
		if err := s.db.Create(&user).Error; err != nil {
			log.Printf("Error creating user %s: %v", d.email, err)
			return err
		}
		log.Printf("Created demo user: %s (password: DemoPass123!)", d.email)
	}

	log.Println("User seeding completed successfully")
	return nil
}

package repositories

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ascent-labs/ascent_api/model"
)

type InterviewRepository struct {
	BaseRepository
}

func NewInterviewRepository(db *gorm.DB) *InterviewRepository {
	return &InterviewRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

func (ds *InterviewRepository) CreateSession(session *model.InterviewSession) error {
	if session.ID == "" {
		session.ID = uuid.New().String()
	}
	session.CreatedAt = time.Now()
	return ds.db.Create(session).Error
}

func (ds *InterviewRepository) GetSession(userID, sessionID string) (*model.InterviewSession, error) {
	var session model.InterviewSession
	if err := ds.db.Where("id = ? AND user_id = ?", sessionID, userID).First(&session).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

func (ds *InterviewRepository) GetUserSessions(userID string, limit int) ([]model.InterviewSession, error) {
	var sessions []model.InterviewSession
	q := ds.db.Where("user_id = ?", userID).Order("completed_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&sessions).Error
	return sessions, err
}

type interviewAggregates struct {
	Total        int64
	AvgRating    float64
	TotalMinutes int64
}

// GetAggregates computes session count, average rating and total
// practice minutes in one query.
func (ds *InterviewRepository) GetAggregates(userID string) (total int, avgRating float64, totalMinutes int, err error) {
	var agg interviewAggregates
	err = ds.db.Model(&model.InterviewSession{}).
		Select("count(*) as total, coalesce(avg(rating), 0) as avg_rating, coalesce(sum(duration), 0) as total_minutes").
		Where("user_id = ?", userID).
		Scan(&agg).Error
	if err != nil {
		return 0, 0, 0, err
	}
	return int(agg.Total), agg.AvgRating, int(agg.TotalMinutes), nil
}

func (ds *InterviewRepository) CountSessionsByType(userID string) (map[string]int, error) {
	var rows []labelCount
	err := ds.db.Model(&model.InterviewSession{}).
		Select("session_type as label, count(*) as count").
		Where("user_id = ?", userID).
		Group("session_type").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int, len(rows))
	for _, row := range rows {
		counts[row.Label] = int(row.Count)
	}
	return counts, nil
}

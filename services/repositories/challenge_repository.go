package repositories

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ascent-labs/ascent_api/model"
	"github.com/ascent-labs/ascent_api/shared"
)

type ChallengeRepository struct {
	BaseRepository
}

func NewChallengeRepository(db *gorm.DB) *ChallengeRepository {
	return &ChallengeRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

// ==================== CATALOG ====================

func (ds *ChallengeRepository) GetChallenge(challengeID string) (*model.CodingChallenge, error) {
	var challenge model.CodingChallenge
	if err := ds.db.Where("id = ? AND is_active = ?", challengeID, true).First(&challenge).Error; err != nil {
		return nil, err
	}
	return &challenge, nil
}

func (ds *ChallengeRepository) GetChallengeBySlug(slug string) (*model.CodingChallenge, error) {
	var challenge model.CodingChallenge
	if err := ds.db.Where("slug = ? AND is_active = ?", slug, true).First(&challenge).Error; err != nil {
		return nil, err
	}
	return &challenge, nil
}

func (ds *ChallengeRepository) ListChallenges(difficulty, category string) ([]model.CodingChallenge, error) {
	q := ds.db.Where("is_active = ?", true)
	if difficulty != "" {
		q = q.Where("difficulty = ?", difficulty)
	}
	if category != "" {
		q = q.Where("category = ?", category)
	}
	var challenges []model.CodingChallenge
	err := q.Order("difficulty ASC, title ASC").Find(&challenges).Error
	return challenges, err
}

func (ds *ChallengeRepository) CreateChallenge(challenge *model.CodingChallenge) error {
	if challenge.ID == "" {
		challenge.ID = uuid.New().String()
	}
	challenge.CreatedAt = time.Now()
	challenge.UpdatedAt = time.Now()
	return ds.db.Create(challenge).Error
}

func (ds *ChallengeRepository) CountChallenges() (int64, error) {
	var count int64
	err := ds.db.Model(&model.CodingChallenge{}).Count(&count).Error
	return count, err
}

// ==================== SUBMISSIONS ====================

func (ds *ChallengeRepository) CreateSubmission(submission *model.ChallengeSubmission) error {
	if submission.ID == "" {
		submission.ID = uuid.New().String()
	}
	submission.CreatedAt = time.Now()
	return ds.db.Create(submission).Error
}

func (ds *ChallengeRepository) GetUserSubmissions(userID string, limit int) ([]model.ChallengeSubmission, error) {
	var submissions []model.ChallengeSubmission
	q := ds.db.Preload("Challenge").Where("user_id = ?", userID).Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&submissions).Error
	return submissions, err
}

// HasSolved reports whether the user already has a solved submission
// for the challenge. First solves award XP, repeats do not.
func (ds *ChallengeRepository) HasSolved(userID, challengeID string) (bool, error) {
	var count int64
	err := ds.db.Model(&model.ChallengeSubmission{}).
		Where("user_id = ? AND challenge_id = ? AND status = ?", userID, challengeID, shared.SubmissionSolved).
		Count(&count).Error
	return count > 0, err
}

func (ds *ChallengeRepository) CountSubmissions(userID string) (total, solved int64, err error) {
	if err = ds.db.Model(&model.ChallengeSubmission{}).
		Where("user_id = ?", userID).
		Count(&total).Error; err != nil {
		return 0, 0, err
	}
	err = ds.db.Model(&model.ChallengeSubmission{}).
		Where("user_id = ? AND status = ?", userID, shared.SubmissionSolved).
		Count(&solved).Error
	return total, solved, err
}

// CountSolvedByDifficulty counts distinct solved challenges per
// difficulty, so re-solving never inflates the breakdown.
func (ds *ChallengeRepository) CountSolvedByDifficulty(userID string) (map[string]int, error) {
	return ds.countSolvedBy(userID, "coding_challenges.difficulty")
}

func (ds *ChallengeRepository) CountSolvedByCategory(userID string) (map[string]int, error) {
	return ds.countSolvedBy(userID, "coding_challenges.category")
}

func (ds *ChallengeRepository) countSolvedBy(userID, column string) (map[string]int, error) {
	var rows []labelCount
	err := ds.db.Model(&model.ChallengeSubmission{}).
		Select(column+" as label, count(distinct challenge_submissions.challenge_id) as count").
		Joins("JOIN coding_challenges ON coding_challenges.id = challenge_submissions.challenge_id").
		Where("challenge_submissions.user_id = ? AND challenge_submissions.status = ?", userID, shared.SubmissionSolved).
		Group(column).
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

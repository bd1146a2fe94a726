package repositories

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ascent-labs/ascent_api/model"
	"github.com/ascent-labs/ascent_api/shared"
)

func setupChallengeRepo(t *testing.T) (*ChallengeRepository, string) {
	t.Helper()

	db := setupTestDB(t)
	require.NoError(t, db.AutoMigrate(&model.CodingChallenge{}, &model.ChallengeSubmission{}))
	userID := createTestUser(t, db, "alice", true)
	return NewChallengeRepository(db), userID
}

func seedChallenge(t *testing.T, repo *ChallengeRepository, slug, difficulty, category string, active bool) *model.CodingChallenge {
	t.Helper()

	challenge := &model.CodingChallenge{
		ID:         uuid.New().String(),
		Slug:       slug,
		Title:      slug,
		Difficulty: difficulty,
		Category:   category,
		IsActive:   active,
	}
	require.NoError(t, repo.CreateChallenge(challenge))
	return challenge
}

func submit(t *testing.T, repo *ChallengeRepository, userID, challengeID, status string) {
	t.Helper()

	sub := &model.ChallengeSubmission{
		ID:          uuid.New().String(),
		UserID:      userID,
		ChallengeID: challengeID,
		Language:    "go",
		Status:      status,
	}
	if status == shared.SubmissionSolved {
		now := time.Now()
		sub.SolvedAt = &now
	}
	require.NoError(t, repo.CreateSubmission(sub))
}

func TestListChallengesFilters(t *testing.T) {
	repo, _ := setupChallengeRepo(t)

	seedChallenge(t, repo, "two-sum", shared.DifficultyEasy, "arrays", true)
	seedChallenge(t, repo, "three-sum", shared.DifficultyMedium, "arrays", true)
	seedChallenge(t, repo, "word-ladder", shared.DifficultyHard, "graphs", true)
	seedChallenge(t, repo, "retired", shared.DifficultyEasy, "arrays", false)

	all, err := repo.ListChallenges("", "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	easy, err := repo.ListChallenges(shared.DifficultyEasy, "")
	require.NoError(t, err)
	require.Len(t, easy, 1)
	assert.Equal(t, "two-sum", easy[0].Slug)

	arrays, err := repo.ListChallenges("", "arrays")
	require.NoError(t, err)
	assert.Len(t, arrays, 2)
}

func TestGetChallengeBySlugSkipsInactive(t *testing.T) {
	repo, _ := setupChallengeRepo(t)

	seedChallenge(t, repo, "retired", shared.DifficultyEasy, "arrays", false)

	_, err := repo.GetChallengeBySlug("retired")
	assert.Error(t, err)
}

func TestSubmissionCounts(t *testing.T) {
	repo, userID := setupChallengeRepo(t)

	twoSum := seedChallenge(t, repo, "two-sum", shared.DifficultyEasy, "arrays", true)
	threeSum := seedChallenge(t, repo, "three-sum", shared.DifficultyMedium, "arrays", true)
	ladder := seedChallenge(t, repo, "word-ladder", shared.DifficultyHard, "graphs", true)

	submit(t, repo, userID, twoSum.ID, shared.SubmissionAttempted)
	submit(t, repo, userID, twoSum.ID, shared.SubmissionSolved)
	submit(t, repo, userID, threeSum.ID, shared.SubmissionSolved)
	submit(t, repo, userID, ladder.ID, shared.SubmissionAttempted)

	solved, err := repo.HasSolved(userID, twoSum.ID)
	require.NoError(t, err)
	assert.True(t, solved)

	solved, err = repo.HasSolved(userID, ladder.ID)
	require.NoError(t, err)
	assert.False(t, solved)

	total, solvedCount, err := repo.CountSubmissions(userID)
	require.NoError(t, err)
	assert.Equal(t, int64(4), total)
	assert.Equal(t, int64(2), solvedCount)

	byDifficulty, err := repo.CountSolvedByDifficulty(userID)
	require.NoError(t, err)
	assert.Equal(t, 1, byDifficulty[shared.DifficultyEasy])
	assert.Equal(t, 1, byDifficulty[shared.DifficultyMedium])
	assert.Equal(t, 0, byDifficulty[shared.DifficultyHard])

	byCategory, err := repo.CountSolvedByCategory(userID)
	require.NoError(t, err)
	assert.Equal(t, 2, byCategory["arrays"])

	subs, err := repo.GetUserSubmissions(userID, 10)
	require.NoError(t, err)
	require.Len(t, subs, 4)
	assert.NotEmpty(t, subs[0].Challenge.Slug)
}

package repositories

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/ascent-labs/ascent_api/model"
	"github.com/ascent-labs/ascent_api/shared"
)

func setupGoalRepo(t *testing.T) (*GoalRepository, string) {
	t.Helper()

	db := setupTestDB(t)
	require.NoError(t, db.AutoMigrate(&model.Goal{}))
	userID := createTestUser(t, db, "alice", true)
	return NewGoalRepository(db), userID
}

func seedGoal(t *testing.T, repo *GoalRepository, userID, title, priority, status string) *model.Goal {
	t.Helper()

	goal := &model.Goal{
		ID:       uuid.New().String(),
		UserID:   userID,
		Title:    title,
		Category: "technical",
		Priority: priority,
		Status:   status,
	}
	if status == shared.GoalStatusCompleted {
		now := time.Now()
		goal.CompletedAt = &now
	}
	require.NoError(t, repo.CreateGoal(goal))
	return goal
}

func TestGoalCRUD(t *testing.T) {
	repo, userID := setupGoalRepo(t)

	goal := seedGoal(t, repo, userID, "Learn Go", shared.PriorityHigh, shared.GoalStatusActive)

	loaded, err := repo.GetGoal(userID, goal.ID)
	require.NoError(t, err)
	assert.Equal(t, "Learn Go", loaded.Title)

	// other users cannot see it
	_, err = repo.GetGoal("someone-else", goal.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	loaded.Title = "Master Go"
	require.NoError(t, repo.UpdateGoal(loaded))

	reloaded, err := repo.GetGoal(userID, goal.ID)
	require.NoError(t, err)
	assert.Equal(t, "Master Go", reloaded.Title)

	require.NoError(t, repo.DeleteGoal(userID, goal.ID))
	_, err = repo.GetGoal(userID, goal.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	err = repo.DeleteGoal(userID, goal.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestGetUserGoalsStatusFilter(t *testing.T) {
	repo, userID := setupGoalRepo(t)

	seedGoal(t, repo, userID, "Active one", shared.PriorityMedium, shared.GoalStatusActive)
	seedGoal(t, repo, userID, "Active two", shared.PriorityLow, shared.GoalStatusActive)
	seedGoal(t, repo, userID, "Done", shared.PriorityHigh, shared.GoalStatusCompleted)

	all, err := repo.GetUserGoals(userID, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	active, err := repo.GetUserGoals(userID, shared.GoalStatusActive)
	require.NoError(t, err)
	assert.Len(t, active, 2)

	completed, err := repo.GetUserGoals(userID, shared.GoalStatusCompleted)
	require.NoError(t, err)
	require.Len(t, completed, 1)
	assert.Equal(t, "Done", completed[0].Title)
}

func TestCountGoals(t *testing.T) {
	repo, userID := setupGoalRepo(t)

	seedGoal(t, repo, userID, "A", shared.PriorityHigh, shared.GoalStatusActive)
	seedGoal(t, repo, userID, "B", shared.PriorityHigh, shared.GoalStatusActive)
	seedGoal(t, repo, userID, "C", shared.PriorityLow, shared.GoalStatusCompleted)

	byStatus, err := repo.CountGoalsByStatus(userID)
	require.NoError(t, err)
	assert.Equal(t, 2, byStatus[shared.GoalStatusActive])
	assert.Equal(t, 1, byStatus[shared.GoalStatusCompleted])

	byPriority, err := repo.CountGoalsByPriority(userID)
	require.NoError(t, err)
	assert.Equal(t, 2, byPriority[shared.PriorityHigh])
	assert.Equal(t, 1, byPriority[shared.PriorityLow])
}

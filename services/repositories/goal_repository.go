package repositories

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ascent-labs/ascent_api/model"
)

type GoalRepository struct {
	BaseRepository
}

func NewGoalRepository(db *gorm.DB) *GoalRepository {
	return &GoalRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

func (ds *GoalRepository) CreateGoal(goal *model.Goal) error {
	if goal.ID == "" {
		goal.ID = uuid.New().String()
	}
	goal.CreatedAt = time.Now()
	goal.UpdatedAt = time.Now()
	return ds.db.Create(goal).Error
}

func (ds *GoalRepository) GetGoal(userID, goalID string) (*model.Goal, error) {
	var goal model.Goal
	if err := ds.db.Where("id = ? AND user_id = ?", goalID, userID).First(&goal).Error; err != nil {
		return nil, err
	}
	return &goal, nil
}

func (ds *GoalRepository) GetUserGoals(userID, status string) ([]model.Goal, error) {
	q := ds.db.Where("user_id = ?", userID)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var goals []model.Goal
	err := q.Order("created_at DESC").Find(&goals).Error
	return goals, err
}

func (ds *GoalRepository) UpdateGoal(goal *model.Goal) error {
	goal.UpdatedAt = time.Now()
	return ds.db.Save(goal).Error
}

func (ds *GoalRepository) DeleteGoal(userID, goalID string) error {
	res := ds.db.Where("id = ? AND user_id = ?", goalID, userID).Delete(&model.Goal{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

type statusCount struct {
	Status string
	Count  int64
}

// CountGoalsByStatus returns status -> count for the user's goals.
func (ds *GoalRepository) CountGoalsByStatus(userID string) (map[string]int, error) {
	var rows []statusCount
	err := ds.db.Model(&model.Goal{}).
		Select("status, count(*) as count").
		Where("user_id = ?", userID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int, len(rows))
	for _, row := range rows {
		counts[row.Status] = int(row.Count)
	}
	return counts, nil
}

type labelCount struct {
	Label string
	Count int64
}

func (ds *GoalRepository) CountGoalsByCategory(userID string) (map[string]int, error) {
	return ds.countGoalsBy(userID, "category")
}

func (ds *GoalRepository) CountGoalsByPriority(userID string) (map[string]int, error) {
	return ds.countGoalsBy(userID, "priority")
}

func (ds *GoalRepository) countGoalsBy(userID, column string) (map[string]int, error) {
	var rows []labelCount
	err := ds.db.Model(&model.Goal{}).
		Select(column+" as label, count(*) as count").
		Where("user_id = ?", userID).
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

package repositories

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ascent-labs/ascent_api/model"
)

type ResumeRepository struct {
	BaseRepository
}

func NewResumeRepository(db *gorm.DB) *ResumeRepository {
	return &ResumeRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

func (ds *ResumeRepository) CreateResume(resume *model.Resume) error {
	if resume.ID == "" {
		resume.ID = uuid.New().String()
	}
	resume.CreatedAt = time.Now()
	resume.UpdatedAt = time.Now()
	return ds.db.Create(resume).Error
}

func (ds *ResumeRepository) GetResume(userID, resumeID string) (*model.Resume, error) {
	var resume model.Resume
	if err := ds.db.Where("id = ? AND user_id = ?", resumeID, userID).First(&resume).Error; err != nil {
		return nil, err
	}
	return &resume, nil
}

func (ds *ResumeRepository) GetUserResumes(userID string) ([]model.Resume, error) {
	var resumes []model.Resume
	err := ds.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&resumes).Error
	return resumes, err
}

func (ds *ResumeRepository) UpdateResume(resume *model.Resume) error {
	resume.UpdatedAt = time.Now()
	return ds.db.Save(resume).Error
}

func (ds *ResumeRepository) UpdateReportCard(resumeID, status string, score *float64, summary string) error {
	return ds.db.Model(&model.Resume{}).Where("id = ?", resumeID).Updates(map[string]interface{}{
		"report_card_status":  status,
		"report_card_score":   score,
		"report_card_summary": summary,
		"updated_at":          time.Now(),
	}).Error
}

func (ds *ResumeRepository) DeleteResume(userID, resumeID string) error {
	res := ds.db.Where("id = ? AND user_id = ?", resumeID, userID).Delete(&model.Resume{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

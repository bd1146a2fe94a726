package services

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/alphabatem/common/context"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/ascent-labs/ascent_api/dto"
	"github.com/ascent-labs/ascent_api/model"
	"github.com/ascent-labs/ascent_api/shared"
)

// ResumeService stores uploaded resumes in object storage and tracks
// their report cards. Report cards are produced by an external
// reviewer that calls back with a score; uploads sit in pending until
// then.
type ResumeService struct {
	context.DefaultService

	sqlSvc       *PostgresService
	minioSvc     *MinIOService
	analyticsSvc *AnalyticsService
}

const RESUME_SVC = "resume_svc"

const (
	maxResumeSize  = 10 << 20 // 10 MiB
	resumeXPReward = 25
	downloadExpiry = 15 * time.Minute
)

var allowedResumeTypes = map[string]bool{
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
}

func (svc ResumeService) Id() string {
	return RESUME_SVC
}

func (svc *ResumeService) Configure(ctx *context.Context) error {
	return svc.DefaultService.Configure(ctx)
}

func (svc *ResumeService) Start() error {
	svc.sqlSvc = svc.Service(POSTGRES_SVC).(*PostgresService)
	svc.minioSvc = svc.Service(MINIO_SVC).(*MinIOService)
	svc.analyticsSvc = svc.Service(ANALYTICS_SVC).(*AnalyticsService)
	return nil
}

func (svc *ResumeService) Upload(userID, title, fileName, contentType string, size int64, reader io.Reader) (*dto.ResumeResponse, error) {
	if size <= 0 || size > maxResumeSize {
		return nil, shared.NewBadRequestError(nil, "File must be between 1 byte and 10 MiB")
	}
	if !allowedResumeTypes[contentType] {
		return nil, shared.NewBadRequestError(nil, "Only PDF and Word documents are accepted")
	}
	if title == "" {
		title = strings.TrimSuffix(fileName, filepath.Ext(fileName))
	}

	objectKey := fmt.Sprintf("resumes/%s/%s%s", userID, uuid.New().String(), filepath.Ext(fileName))

	if _, err := svc.minioSvc.UploadFile(objectKey, reader, size, contentType); err != nil {
		return nil, shared.NewInternalError(err, "Failed to store file")
	}

	resume := &model.Resume{
		UserID:           userID,
		Title:            title,
		ObjectKey:        objectKey,
		FileName:         fileName,
		FileSize:         size,
		ContentType:      contentType,
		ReportCardStatus: shared.ReportCardPending,
	}
	if err := svc.sqlSvc.Resumes().CreateResume(resume); err != nil {
		if delErr := svc.minioSvc.DeleteFile(objectKey); delErr != nil {
			log.WithError(delErr).WithField("object_key", objectKey).Warn("Failed to clean up orphaned upload")
		}
		return nil, svc.sqlSvc.HandleError(err)
	}

	if err := svc.analyticsSvc.RecordResumeActivity(userID, resumeXPReward); err != nil {
		log.WithError(err).WithField("user_id", userID).Error("Resume stored but activity recording failed")
	}

	return svc.toResponse(resume, false), nil
}

func (svc *ResumeService) GetResume(userID, resumeID string) (*dto.ResumeResponse, error) {
	resume, err := svc.sqlSvc.Resumes().GetResume(userID, resumeID)
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}
	return svc.toResponse(resume, true), nil
}

func (svc *ResumeService) ListResumes(userID string) ([]dto.ResumeResponse, error) {
	resumes, err := svc.sqlSvc.Resumes().GetUserResumes(userID)
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	out := make([]dto.ResumeResponse, 0, len(resumes))
	for i := range resumes {
		out = append(out, *svc.toResponse(&resumes[i], false))
	}
	return out, nil
}

func (svc *ResumeService) DeleteResume(userID, resumeID string) error {
	resume, err := svc.sqlSvc.Resumes().GetResume(userID, resumeID)
	if err != nil {
		return svc.sqlSvc.HandleError(err)
	}

	if err := svc.sqlSvc.Resumes().DeleteResume(userID, resumeID); err != nil {
		return svc.sqlSvc.HandleError(err)
	}

	if err := svc.minioSvc.DeleteFile(resume.ObjectKey); err != nil {
		log.WithError(err).WithField("object_key", resume.ObjectKey).Warn("Resume row deleted but object removal failed")
	}
	return nil
}

// CompleteReportCard is the internal callback the external reviewer
// hits once a resume has been scored.
func (svc *ResumeService) CompleteReportCard(resumeID string, score *float64, summary string, failed bool) error {
	status := shared.ReportCardCompleted
	if failed {
		status = shared.ReportCardFailed
	}

	if err := svc.sqlSvc.Resumes().UpdateReportCard(resumeID, status, score, summary); err != nil {
		return svc.sqlSvc.HandleError(err)
	}
	return nil
}

func (svc *ResumeService) toResponse(resume *model.Resume, withURL bool) *dto.ResumeResponse {
	resp := &dto.ResumeResponse{
		ID:                resume.ID,
		Title:             resume.Title,
		FileName:          resume.FileName,
		FileSize:          resume.FileSize,
		ContentType:       resume.ContentType,
		ReportCardStatus:  resume.ReportCardStatus,
		ReportCardScore:   resume.ReportCardScore,
		ReportCardSummary: resume.ReportCardSummary,
		CreatedAt:         resume.CreatedAt,
		UpdatedAt:         resume.UpdatedAt,
	}

	if withURL {
		url, err := svc.minioSvc.GetFileURL(resume.ObjectKey, downloadExpiry)
		if err != nil {
			log.WithError(err).WithField("resume_id", resume.ID).Warn("Failed to presign download URL")
		} else {
			resp.DownloadURL = url
		}
	}
	return resp
}

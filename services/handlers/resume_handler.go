package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/ascent-labs/ascent_api/shared"
)

type ResumeHandler struct {
	resumeSvc ResumeServiceInterface
}

func NewResumeHandler(resumeSvc ResumeServiceInterface) *ResumeHandler {
	return &ResumeHandler{resumeSvc: resumeSvc}
}

// @Summary Upload a resume
// @Description Multipart upload; the report card is produced asynchronously
// @Tags resumes
// @Accept multipart/form-data
// @Produce json
// @Security Bearer
// @Param file formData file true "Resume file (PDF or Word)"
// @Param title formData string false "Display title"
// @Success 201 {object} shared.Response{data=dto.ResumeResponse}
// @Router /api/v1/resumes [post]
func (h *ResumeHandler) Upload(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return shared.NewBadRequestError(err, "Missing file")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return shared.NewBadRequestError(err, "Unreadable file")
	}
	defer file.Close()

	resp, err := h.resumeSvc.Upload(
		userID,
		c.FormValue("title"),
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		fileHeader.Size,
		file,
	)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusCreated, "Resume uploaded", resp)
}

// @Summary List own resumes
// @Tags resumes
// @Produce json
// @Security Bearer
// @Success 200 {object} shared.Response{data=[]dto.ResumeResponse}
// @Router /api/v1/resumes [get]
func (h *ResumeHandler) ListResumes(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	resp, err := h.resumeSvc.ListResumes(userID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", resp)
}

// @Summary Get a resume with a download link
// @Tags resumes
// @Produce json
// @Security Bearer
// @Param resumeId path string true "Resume ID"
// @Success 200 {object} shared.Response{data=dto.ResumeResponse}
// @Router /api/v1/resumes/{resumeId} [get]
func (h *ResumeHandler) GetResume(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	resp, err := h.resumeSvc.GetResume(userID, c.Params("resumeId"))
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", resp)
}

// @Summary Delete a resume
// @Tags resumes
// @Produce json
// @Security Bearer
// @Param resumeId path string true "Resume ID"
// @Success 200 {object} shared.Response{data=nil}
// @Router /api/v1/resumes/{resumeId} [delete]
func (h *ResumeHandler) DeleteResume(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	if err := h.resumeSvc.DeleteResume(userID, c.Params("resumeId")); err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Resume deleted", nil)
}

type reportCardCallback struct {
	Score   *float64 `json:"score"`
	Summary string   `json:"summary"`
	Failed  bool     `json:"failed"`
}

// CompleteReportCard is the internal callback for the external resume
// reviewer. It is mounted behind the internal API key, not user auth.
func (h *ResumeHandler) CompleteReportCard(c *fiber.Ctx) error {
	var req reportCardCallback
	if err := c.BodyParser(&req); err != nil {
		return err
	}

	if err := h.resumeSvc.CompleteReportCard(c.Params("resumeId"), req.Score, req.Summary, req.Failed); err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Report card updated", nil)
}

package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/school-enrollment-api/internal/middleware"
	"github.com/noah-isme/school-enrollment-api/internal/models"
	"github.com/noah-isme/school-enrollment-api/internal/service"
	appErrors "github.com/noah-isme/school-enrollment-api/pkg/errors"
	"github.com/noah-isme/school-enrollment-api/pkg/response"
)

type studentService interface {
	Create(ctx context.Context, req service.CreateStudentRequest) (*models.Student, error)
	ListByGradeAndSection(ctx context.Context, gradeID int64, sectionID *int64) ([]models.Student, error)
}

type rosterService interface {
	Export(ctx context.Context, gradeID int64, sectionID *int64, format string) (*service.RosterFile, error)
}

// StudentHandler exposes student endpoints.
type StudentHandler struct {
	students studentService
	roster   rosterService
	metrics  *service.MetricsService
}

// NewStudentHandler constructs StudentHandler.
func NewStudentHandler(students studentService, roster rosterService, metrics *service.MetricsService) *StudentHandler {
	return &StudentHandler{students: students, roster: roster, metrics: metrics}
}

// Create godoc
// @Summary Enroll a student
// @Description Creates a student in a grade and section. Served on /estudiantes and /students.
// @Tags Students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body service.CreateStudentRequest true "Student payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /estudiantes [post]
func (h *StudentHandler) Create(c *gin.Context) {
	var req service.CreateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.metrics.RecordEnrollment(appErrors.ErrValidation.Code)
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid student payload"))
		return
	}
	student, err := h.students.Create(c.Request.Context(), req)
	if err != nil {
		h.metrics.RecordEnrollment(appErrors.FromError(err).Code)
		response.Error(c, err)
		return
	}
	h.metrics.RecordEnrollment("created")
	c.Set(middleware.AuditResourceIDKey, student.ID)
	response.Created(c, student)
}

// List godoc
// @Summary List students of a grade
// @Tags Students
// @Produce json
// @Security BearerAuth
// @Param gradeId query int true "Grade ID"
// @Param sectionId query int false "Section ID"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /estudiantes [get]
func (h *StudentHandler) List(c *gin.Context) {
	gradeID, err := parseID(c.Query("gradeId"), "gradeId")
	if err != nil {
		response.Error(c, err)
		return
	}
	sectionID, err := parseOptionalID(c.Query("sectionId"), "sectionId")
	if err != nil {
		response.Error(c, err)
		return
	}
	students, err := h.students.ListByGradeAndSection(c.Request.Context(), gradeID, sectionID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, students, map[string]interface{}{"total": len(students)})
}

// Export godoc
// @Summary Download the student roster of a grade
// @Tags Students
// @Produce text/csv
// @Produce application/pdf
// @Security BearerAuth
// @Param gradeId query int true "Grade ID"
// @Param sectionId query int false "Section ID"
// @Param format query string false "csv or pdf" default(csv)
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Router /estudiantes/export [get]
func (h *StudentHandler) Export(c *gin.Context) {
	gradeID, err := parseID(c.Query("gradeId"), "gradeId")
	if err != nil {
		response.Error(c, err)
		return
	}
	sectionID, err := parseOptionalID(c.Query("sectionId"), "sectionId")
	if err != nil {
		response.Error(c, err)
		return
	}
	file, err := h.roster.Export(c.Request.Context(), gradeID, sectionID, c.DefaultQuery("format", "csv"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.File(c, file.Filename, file.ContentType, file.Body)
}

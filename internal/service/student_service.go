package service

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/school-enrollment-api/internal/models"
	appErrors "github.com/noah-isme/school-enrollment-api/pkg/errors"
)

type studentRepository interface {
	Create(ctx context.Context, student *models.Student) error
	FindByGradeAndSection(ctx context.Context, gradeID int64, sectionID *int64) ([]models.Student, error)
}

// CreateStudentRequest holds payload for enrolling a student. Dates accept
// YYYY-MM-DD or RFC 3339.
type CreateStudentRequest struct {
	DPI            *string `json:"dpi" validate:"omitempty,max=20"`
	Name           string  `json:"name" validate:"required,max=200"`
	BirthDate      string  `json:"birthDate" validate:"required"`
	Gender         *string `json:"gender" validate:"omitempty,max=20"`
	Address        *string `json:"address"`
	Phone          *string `json:"phone" validate:"omitempty,max=30"`
	Email          *string `json:"email" validate:"omitempty,email"`
	AvatarURL      *string `json:"avatarUrl"`
	GradeID        int64   `json:"gradeId" validate:"required,gt=0"`
	SectionID      int64   `json:"sectionId" validate:"required,gt=0"`
	EnrollmentDate *string `json:"enrollmentDate"`
	Status         *string `json:"status" validate:"omitempty,oneof=activo inactivo retirado graduado"`
}

// StudentService handles student use-cases.
type StudentService struct {
	repo      studentRepository
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewStudentService constructs the student service.
func NewStudentService(repo studentRepository, validate *validator.Validate, logger *zap.Logger) *StudentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentService{repo: repo, validator: validate, logger: logger, now: time.Now}
}

// WithClock replaces the source of the default enrollment date.
func (s *StudentService) WithClock(now func() time.Time) *StudentService {
	if now != nil {
		s.now = now
	}
	return s
}

// Create validates and normalizes req and enrolls the student. Errors from the
// repository are returned as they are.
func (s *StudentService) Create(ctx context.Context, req CreateStudentRequest) (*models.Student, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.BirthDate = strings.TrimSpace(req.BirthDate)
	req.DPI = trimOptional(req.DPI)
	req.Gender = trimOptional(req.Gender)
	req.Address = trimOptional(req.Address)
	req.Phone = trimOptional(req.Phone)
	req.Email = trimOptional(req.Email)
	req.AvatarURL = trimOptional(req.AvatarURL)
	req.EnrollmentDate = trimOptional(req.EnrollmentDate)
	req.Status = trimOptional(req.Status)

	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid student payload")
	}

	birthDate, err := parseDate(req.BirthDate)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "birthDate must be YYYY-MM-DD or RFC 3339")
	}

	enrollmentDate := s.now()
	if req.EnrollmentDate != nil {
		enrollmentDate, err = parseDate(*req.EnrollmentDate)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "enrollmentDate must be YYYY-MM-DD or RFC 3339")
		}
	}

	status := models.StudentStatusActive
	if req.Status != nil {
		status = models.StudentStatus(*req.Status)
	}

	student := &models.Student{
		DPI:            req.DPI,
		Name:           req.Name,
		BirthDate:      birthDate,
		Gender:         req.Gender,
		Address:        req.Address,
		Phone:          req.Phone,
		Email:          req.Email,
		AvatarURL:      req.AvatarURL,
		GradeID:        req.GradeID,
		SectionID:      req.SectionID,
		EnrollmentDate: enrollmentDate,
		Status:         status,
	}
	if err := s.repo.Create(ctx, student); err != nil {
		return nil, err
	}

	s.logger.Info("student enrolled",
		zap.Int64("student_id", student.ID),
		zap.Int64("grade_id", student.GradeID),
		zap.Int64("section_id", student.SectionID),
	)
	return student, nil
}

// ListByGradeAndSection returns the students of a grade, optionally narrowed to a section.
func (s *StudentService) ListByGradeAndSection(ctx context.Context, gradeID int64, sectionID *int64) ([]models.Student, error) {
	if gradeID <= 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "gradeId must be a positive integer")
	}
	if sectionID != nil && *sectionID <= 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "sectionId must be a positive integer")
	}
	students, err := s.repo.FindByGradeAndSection(ctx, gradeID, sectionID)
	if err != nil {
		return nil, err
	}
	if students == nil {
		students = []models.Student{}
	}
	return students, nil
}

func trimOptional(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, raw)
}

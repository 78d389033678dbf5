package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/school-enrollment-api/internal/models"
	appErrors "github.com/noah-isme/school-enrollment-api/pkg/errors"
	"github.com/noah-isme/school-enrollment-api/pkg/export"
)

type rosterRenderer interface {
	ContentType() string
	Extension() string
	Render(data export.Dataset, title string) ([]byte, error)
}

// RosterFile is a rendered class list ready to be downloaded.
type RosterFile struct {
	Filename    string
	ContentType string
	Body        []byte
}

var rosterHeaders = []string{"ID", "DPI", "Nombre", "Fecha de nacimiento", "Género", "Teléfono", "Email", "Grado", "Sección", "Fecha de inscripción", "Estado"}

// RosterService renders the students of a grade as a downloadable document.
type RosterService struct {
	repo      studentRepository
	renderers map[string]rosterRenderer
	logger    *zap.Logger
}

// NewRosterService constructs the roster export use-case with CSV and PDF renderers.
func NewRosterService(repo studentRepository, logger *zap.Logger) *RosterService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RosterService{
		repo: repo,
		renderers: map[string]rosterRenderer{
			"csv": export.NewCSVExporter(),
			"pdf": export.NewPDFExporter(),
		},
		logger: logger,
	}
}

// Export renders the roster of gradeID (and sectionID when set) in format.
func (s *RosterService) Export(ctx context.Context, gradeID int64, sectionID *int64, format string) (*RosterFile, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = "csv"
	}
	renderer, ok := s.renderers[format]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}
	if gradeID <= 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "gradeId must be a positive integer")
	}

	students, err := s.repo.FindByGradeAndSection(ctx, gradeID, sectionID)
	if err != nil {
		return nil, err
	}

	name := fmt.Sprintf("grado-%d", gradeID)
	title := fmt.Sprintf("Listado de estudiantes - grado %d", gradeID)
	if sectionID != nil {
		name += fmt.Sprintf("-seccion-%d", *sectionID)
		title += fmt.Sprintf(", sección %d", *sectionID)
	}

	body, err := renderer.Render(rosterDataset(students), title)
	if err != nil {
		return nil, fmt.Errorf("render roster: %w", err)
	}
	s.logger.Debug("roster exported", zap.String("format", format), zap.Int("students", len(students)))

	return &RosterFile{
		Filename:    "estudiantes-" + name + "." + renderer.Extension(),
		ContentType: renderer.ContentType(),
		Body:        body,
	}, nil
}

func rosterDataset(students []models.Student) export.Dataset {
	rows := make([]map[string]string, 0, len(students))
	for _, st := range students {
		rows = append(rows, map[string]string{
			"ID":                   strconv.FormatInt(st.ID, 10),
			"DPI":                  deref(st.DPI),
			"Nombre":               st.Name,
			"Fecha de nacimiento":  st.BirthDate.Format("2006-01-02"),
			"Género":               deref(st.Gender),
			"Teléfono":             deref(st.Phone),
			"Email":                deref(st.Email),
			"Grado":                strconv.FormatInt(st.GradeID, 10),
			"Sección":              strconv.FormatInt(st.SectionID, 10),
			"Fecha de inscripción": st.EnrollmentDate.Format("2006-01-02"),
			"Estado":               string(st.Status),
		})
	}
	return export.Dataset{Headers: rosterHeaders, Rows: rows}
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

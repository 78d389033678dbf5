package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/school-enrollment-api/internal/models"
)

// SectionRepository reads the sections of a grade.
type SectionRepository struct {
	db *sqlx.DB
}

// NewSectionRepository creates a new section repository.
func NewSectionRepository(db *sqlx.DB) *SectionRepository {
	return &SectionRepository{db: db}
}

// FindByGradeID returns the sections of gradeID ordered by name. Unknown grades yield an empty slice.
func (r *SectionRepository) FindByGradeID(ctx context.Context, gradeID int64) ([]models.Section, error) {
	const query = `SELECT id, grado_id, nombre, capacidad, cantidad_estudiantes, activo, fecha_creacion
        FROM secciones
        WHERE grado_id = $1
        ORDER BY nombre`
	sections := []models.Section{}
	if err := r.db.SelectContext(ctx, &sections, query, gradeID); err != nil {
		return nil, fmt.Errorf("list sections for grade %d: %w", gradeID, err)
	}
	return sections, nil
}

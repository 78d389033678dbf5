package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/school-enrollment-api/internal/models"
)

// GradeRepository reads the grade catalog.
type GradeRepository struct {
	db *sqlx.DB
}

// NewGradeRepository creates a new grade repository.
func NewGradeRepository(db *sqlx.DB) *GradeRepository {
	return &GradeRepository{db: db}
}

// FindAll returns every grade ordered by id.
func (r *GradeRepository) FindAll(ctx context.Context) ([]models.Grade, error) {
	const query = `SELECT id, nombre, nivel_educativo_id, rango_edad, anio_academico, activo, fecha_creacion, fecha_actualizacion
        FROM grados
        ORDER BY id`
	grades := []models.Grade{}
	if err := r.db.SelectContext(ctx, &grades, query); err != nil {
		return nil, fmt.Errorf("list grades: %w", err)
	}
	return grades, nil
}

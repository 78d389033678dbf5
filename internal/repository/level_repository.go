package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/school-enrollment-api/internal/models"
)

type LevelRepository struct {
	db *sqlx.DB
}

func NewLevelRepository(db *sqlx.DB) *LevelRepository {
	return &LevelRepository{db: db}
}

// FindAll returns the educational levels ordered by id.
func (r *LevelRepository) FindAll(ctx context.Context) ([]models.EducationalLevel, error) {
	const query = `SELECT id, nombre, descripcion, activo, fecha_creacion FROM niveles_educativos ORDER BY id`
	levels := []models.EducationalLevel{}
	if err := r.db.SelectContext(ctx, &levels, query); err != nil {
		return nil, fmt.Errorf("list educational levels: %w", err)
	}
	return levels, nil
}

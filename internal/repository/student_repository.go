package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/noah-isme/school-enrollment-api/internal/models"
	appErrors "github.com/noah-isme/school-enrollment-api/pkg/errors"
)

const studentColumns = `id, dpi, nombre, fecha_nacimiento, genero, direccion, telefono, email, url_avatar,
        grado_id, seccion_id, fecha_inscripcion, estado, fecha_creacion, fecha_actualizacion`

// PostgreSQL error codes mapped to ErrConstraintViolation.
const (
	pqForeignKeyViolation = "23503"
	pqUniqueViolation     = "23505"
	pqCheckViolation      = "23514"
)

// StudentRepository manages persistence for enrollment records.
type StudentRepository struct {
	db *sqlx.DB
}

// NewStudentRepository constructs a StudentRepository.
func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

// Create enrolls the student in one transaction: the target section is locked,
// checked against the grade and its capacity, the record is inserted and the
// section counter incremented. ID and timestamps are assigned by the database.
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) (err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("create student: begin: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var section models.Section
	const lockQuery = `SELECT id, grado_id, nombre, capacidad, cantidad_estudiantes, activo, fecha_creacion FROM secciones WHERE id = $1 FOR UPDATE`
	if err = tx.GetContext(ctx, &section, lockQuery, student.SectionID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrSectionNotFound, fmt.Sprintf("section %d not found", student.SectionID))
		}
		return fmt.Errorf("create student: lock section: %w", err)
	}
	switch {
	case section.GradeID != student.GradeID:
		return appErrors.Clone(appErrors.ErrSectionGradeMismatch, fmt.Sprintf("section %d does not belong to grade %d", section.ID, student.GradeID))
	case !section.Active:
		return appErrors.Clone(appErrors.ErrSectionInactive, fmt.Sprintf("section %s is not active", section.Name))
	case !section.HasRoom():
		return appErrors.Clone(appErrors.ErrSectionFull, fmt.Sprintf("section %s is full (%d/%d)", section.Name, section.StudentCount, section.Capacity))
	}

	const insertQuery = `INSERT INTO estudiantes (
            dpi, nombre, fecha_nacimiento, genero, direccion, telefono, email, url_avatar,
            grado_id, seccion_id, fecha_inscripcion, estado, fecha_creacion, fecha_actualizacion
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW(), NOW())
        RETURNING id, fecha_creacion, fecha_actualizacion`
	row := tx.QueryRowxContext(ctx, insertQuery,
		student.DPI,
		student.Name,
		student.BirthDate,
		student.Gender,
		student.Address,
		student.Phone,
		student.Email,
		student.AvatarURL,
		student.GradeID,
		student.SectionID,
		student.EnrollmentDate,
		student.Status,
	)
	var (
		id                   int64
		createdAt, updatedAt time.Time
	)
	if err = row.Scan(&id, &createdAt, &updatedAt); err != nil {
		return translateStudentWriteError(err)
	}

	const bumpQuery = `UPDATE secciones SET cantidad_estudiantes = cantidad_estudiantes + 1 WHERE id = $1`
	if _, err = tx.ExecContext(ctx, bumpQuery, student.SectionID); err != nil {
		return translateStudentWriteError(err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("create student: commit: %w", err)
	}

	student.ID = id
	student.CreatedAt = createdAt
	student.UpdatedAt = updatedAt
	return nil
}

// FindByGradeAndSection lists the students of a grade, narrowed to one section
// when sectionID is set. An empty slice is returned when nothing matches.
func (r *StudentRepository) FindByGradeAndSection(ctx context.Context, gradeID int64, sectionID *int64) ([]models.Student, error) {
	query := "SELECT " + studentColumns + " FROM estudiantes WHERE grado_id = $1"
	args := []interface{}{gradeID}
	if sectionID != nil {
		query += fmt.Sprintf(" AND seccion_id = $%d", len(args)+1)
		args = append(args, *sectionID)
	}
	query += " ORDER BY id"

	students := []models.Student{}
	if err := r.db.SelectContext(ctx, &students, query, args...); err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	return students, nil
}

func translateStudentWriteError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case pqForeignKeyViolation, pqUniqueViolation, pqCheckViolation:
			return appErrors.Wrap(err, appErrors.ErrConstraintViolation.Code, appErrors.ErrConstraintViolation.Status,
				fmt.Sprintf("student violates constraint %s", pqErr.Constraint))
		}
	}
	return fmt.Errorf("create student: %w", err)
}

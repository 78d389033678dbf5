package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGradeRepositoryFindAll(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewGradeRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "nombre", "nivel_educativo_id", "rango_edad", "anio_academico", "activo", "fecha_creacion", "fecha_actualizacion"}).
		AddRow(1, "Primero Primaria", 2, "6-7", "2025", true, now, now).
		AddRow(2, "Segundo Primaria", 2, nil, nil, true, now, now)
	mock.ExpectQuery(`FROM grados\s+ORDER BY id`).WillReturnRows(rows)

	grades, err := repo.FindAll(context.Background())
	require.NoError(t, err)
	require.Len(t, grades, 2)
	assert.Equal(t, int64(1), grades[0].ID)
	require.NotNil(t, grades[0].AgeRange)
	assert.Equal(t, "6-7", *grades[0].AgeRange)
	assert.Nil(t, grades[1].AcademicYear)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGradeRepositoryFindAllWrapsError(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewGradeRepository(db)

	boom := errors.New("db down")
	mock.ExpectQuery("FROM grados").WillReturnError(boom)

	_, err := repo.FindAll(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestSectionRepositoryFindByGradeID(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewSectionRepository(db)

	rows := sqlmock.NewRows([]string{"id", "grado_id", "nombre", "capacidad", "cantidad_estudiantes", "activo", "fecha_creacion"}).
		AddRow(1, 3, "A", 30, 12, true, time.Now()).
		AddRow(2, 3, "B", 30, 30, true, time.Now())
	mock.ExpectQuery(`FROM secciones\s+WHERE grado_id = \$1\s+ORDER BY nombre`).
		WithArgs(int64(3)).
		WillReturnRows(rows)

	sections, err := repo.FindByGradeID(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, sections, 2)
	assert.True(t, sections[0].HasRoom())
	assert.False(t, sections[1].HasRoom())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSectionRepositoryUnknownGradeIsEmpty(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewSectionRepository(db)

	mock.ExpectQuery(`FROM secciones`).
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	sections, err := repo.FindByGradeID(context.Background(), 99)
	require.NoError(t, err)
	assert.NotNil(t, sections)
	assert.Empty(t, sections)
}

func TestLevelRepositoryFindAll(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewLevelRepository(db)

	rows := sqlmock.NewRows([]string{"id", "nombre", "descripcion", "activo", "fecha_creacion"}).
		AddRow(1, "Preprimaria", nil, true, time.Now()).
		AddRow(2, "Primaria", "Seis grados", true, time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, nombre, descripcion, activo, fecha_creacion FROM niveles_educativos ORDER BY id")).
		WillReturnRows(rows)

	levels, err := repo.FindAll(context.Background())
	require.NoError(t, err)
	require.Len(t, levels, 2)
	assert.Nil(t, levels[0].Description)
	assert.Equal(t, "Primaria", levels[1].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

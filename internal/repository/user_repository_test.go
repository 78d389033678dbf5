package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/school-enrollment-api/internal/models"
	appErrors "github.com/noah-isme/school-enrollment-api/pkg/errors"
)

func newMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	sqlxdb := sqlx.NewDb(db, "sqlmock")
	return sqlxdb, mock, func() {
		db.Close()
	}
}

var userRowColumns = []string{"id", "email", "password_hash", "nombre", "rol", "activo", "ultimo_acceso", "fecha_creacion", "fecha_actualizacion"}

func TestFindByEmail(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows(userRowColumns).
		AddRow(1, "secretaria@colegio.edu.gt", "hash", "María Pérez", string(models.RoleSecretary), true, nil, now, now)
	mock.ExpectQuery(regexp.QuoteMeta("FROM usuarios WHERE LOWER(email) = LOWER($1) LIMIT 1")).
		WithArgs("secretaria@colegio.edu.gt").
		WillReturnRows(rows)

	user, err := repo.FindByEmail(context.Background(), "secretaria@colegio.edu.gt")
	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)
	assert.Equal(t, models.RoleSecretary, user.Role)
	assert.Nil(t, user.LastLogin)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByEmailNotFound(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	mock.ExpectQuery("FROM usuarios").WithArgs("nadie@colegio.edu.gt").WillReturnRows(sqlmock.NewRows(userRowColumns))

	_, err := repo.FindByEmail(context.Background(), "nadie@colegio.edu.gt")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestUpdateLastLogin(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	ts := time.Date(2025, 2, 1, 9, 0, 0, 0, time.UTC)
	mock.ExpectExec(regexp.QuoteMeta("UPDATE usuarios SET ultimo_acceso = $2, fecha_actualizacion = $3 WHERE id = $1")).
		WithArgs(int64(7), ts, ts).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.UpdateLastLogin(context.Background(), 7, ts))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateUser(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	now := time.Now()
	mock.ExpectQuery("INSERT INTO usuarios").
		WithArgs("admin@colegio.edu.gt", "hash", "Admin", "ADMIN", true).
		WillReturnRows(sqlmock.NewRows([]string{"id", "fecha_creacion", "fecha_actualizacion"}).AddRow(int64(3), now, now))

	user := &models.User{Email: "admin@colegio.edu.gt", PasswordHash: "hash", FullName: "Admin", Role: models.RoleAdmin, Active: true}
	require.NoError(t, repo.Create(context.Background(), user))
	assert.Equal(t, int64(3), user.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	mock.ExpectQuery("INSERT INTO usuarios").WillReturnError(&pq.Error{Code: "23505"})

	err := repo.Create(context.Background(), &models.User{Email: "admin@colegio.edu.gt", Role: models.RoleAdmin})
	assert.ErrorIs(t, err, appErrors.ErrConflict)
}

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

const userColumns = `id, email, password_hash, nombre, rol, activo, ultimo_acceso, fecha_creacion, fecha_actualizacion`

// UserRepository provides database access for staff accounts.
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new instance of UserRepository.
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// FindByEmail returns a user by email address. sql.ErrNoRows is returned as is.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	query := "SELECT " + userColumns + " FROM usuarios WHERE LOWER(email) = LOWER($1) LIMIT 1"
	var user models.User
	if err := r.db.GetContext(ctx, &user, query, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return &user, nil
}

// UpdateLastLogin records a successful login.
func (r *UserRepository) UpdateLastLogin(ctx context.Context, id int64, ts time.Time) error {
	const query = `UPDATE usuarios SET ultimo_acceso = $2, fecha_actualizacion = $3 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, ts, ts); err != nil {
		return fmt.Errorf("update last login: %w", err)
	}
	return nil
}

// Create inserts a new account and fills in the generated id and timestamps.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	const query = `INSERT INTO usuarios (email, password_hash, nombre, rol, activo, fecha_creacion, fecha_actualizacion)
        VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
        RETURNING id, fecha_creacion, fecha_actualizacion`
	row := r.db.QueryRowxContext(ctx, query, user.Email, user.PasswordHash, user.FullName, user.Role, user.Active)
	if err := row.Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
			return appErrors.Wrap(err, appErrors.ErrConflict.Code, appErrors.ErrConflict.Status,
				fmt.Sprintf("user %s already exists", user.Email))
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/avollmer/userd/internal/model"
)

var _ model.UserStore = (*UserRepository)(nil)

const userColumns = `id, username, email, password_digest, first_name, last_name,
		is_active, is_verified, last_login_at, created_at, updated_at`

type UserRepository struct {
	db DB
}

func NewUserRepository(db DB) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

// Create inserts the user inside a single transaction. Uniqueness of username
// and email is enforced by the table constraints; a constraint violation is
// the only signal of a collision and is translated to model.ConflictError.
func (r *UserRepository) Create(ctx context.Context, user model.User) (model.User, error) {
	query := `INSERT INTO users (` + userColumns + `)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			  RETURNING ` + userColumns

	var saved model.User
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		return tx.QueryRow(ctx, query,
			user.ID, user.Username, user.Email, user.PasswordDigest,
			user.FirstName, user.LastName, user.IsActive, user.IsVerified,
			user.LastLoginAt, user.CreatedAt, user.UpdatedAt,
		).Scan(
			&saved.ID, &saved.Username, &saved.Email, &saved.PasswordDigest,
			&saved.FirstName, &saved.LastName, &saved.IsActive, &saved.IsVerified,
			&saved.LastLoginAt, &saved.CreatedAt, &saved.UpdatedAt,
		)
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return model.User{}, model.ConflictError{Field: conflictField(pgErr.ConstraintName)}
		}
		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	return saved, nil
}

// GetByIdentifier finds a user by exact username or by email. Email matching
// is case-insensitive because stored emails are lowercased.
func (r *UserRepository) GetByIdentifier(ctx context.Context, identifier string) (model.User, error) {
	query := `SELECT ` + userColumns + `
			  FROM users WHERE username = $1 OR email = lower($1)`

	return r.getOne(ctx, query, identifier)
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	query := `SELECT ` + userColumns + `
			  FROM users WHERE id = $1`

	return r.getOne(ctx, query, id)
}

// TouchLastLogin records a successful authentication. updated_at never moves
// backwards, so a retried call with a stale timestamp is harmless.
func (r *UserRepository) TouchLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	query := `UPDATE users
			  SET last_login_at = $2, updated_at = GREATEST(updated_at, $2)
			  WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, id, at)
	if err != nil {
		return fmt.Errorf("failed to touch last login: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

// Deactivate soft-removes the user. Records are never physically deleted.
func (r *UserRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE users
			  SET is_active = FALSE, updated_at = GREATEST(updated_at, $2)
			  WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, id, time.Now())
	if err != nil {
		return fmt.Errorf("failed to deactivate user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *UserRepository) getOne(ctx context.Context, query string, arg any) (model.User, error) {
	var user model.User
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&user.ID, &user.Username, &user.Email, &user.PasswordDigest,
		&user.FirstName, &user.LastName, &user.IsActive, &user.IsVerified,
		&user.LastLoginAt, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}

func conflictField(constraint string) string {
	if strings.Contains(constraint, "email") {
		return "email"
	}
	return "username"
}

// File: internal/infrastructure/database/postgres/database.go
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/lolmatina/coincash-back/internal/domain/errors"
	"github.com/lolmatina/coincash-back/internal/domain/models"
	"github.com/lolmatina/coincash-back/internal/domain/repository"
)

const userColumns = `id, name, lastname, email, password, profile_type,
	       email_verified_at, email_verification_code, email_verification_expires_at,
	       password_reset_token, password_reset_expires_at,
	       document_front_url, document_back_url, document_selfie_url,
	       documents_submitted_at, documents_verified_at, created_at, updated_at`

// Database implements repository.Database against PostgreSQL directly.
type Database struct {
	pool *pgxpool.Pool
}

// NewDatabase wraps an existing connection pool.
func NewDatabase(pool *pgxpool.Pool) *Database {
	return &Database{pool: pool}
}

func scanUser(row pgx.Row) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(
		&user.ID, &user.Name, &user.Lastname, &user.Email, &user.PasswordHash, &user.ProfileType,
		&user.EmailVerifiedAt, &user.EmailVerificationCode, &user.EmailVerificationExpiresAt,
		&user.PasswordResetToken, &user.PasswordResetExpiresAt,
		&user.DocumentFrontURL, &user.DocumentBackURL, &user.DocumentSelfieURL,
		&user.DocumentsSubmittedAt, &user.DocumentsVerifiedAt, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// CreateUser persists a new user. created_at and updated_at are set here so
// both backends produce identical rows.
func (d *Database) CreateUser(ctx context.Context, params models.CreateUserParams) (*models.User, error) {
	query := `
		INSERT INTO users (name, lastname, email, password, profile_type, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
		RETURNING ` + userColumns
	now := time.Now().UTC()
	user, err := scanUser(d.pool.QueryRow(ctx, query,
		params.Name, params.Lastname, params.Email, params.PasswordHash, params.ProfileType, now,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return nil, domainErrors.ErrEmailExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// FindUserByID retrieves a user by id.
func (d *Database) FindUserByID(ctx context.Context, id int64) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	user, err := scanUser(d.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user by id: %w", err)
	}
	return user, nil
}

// FindUserByEmail retrieves a user by email. The lookup is case sensitive,
// matching the stored value.
func (d *Database) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	user, err := scanUser(d.pool.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}
	return user, nil
}

// FindUserByResetToken retrieves a user by the live password reset token.
func (d *Database) FindUserByResetToken(ctx context.Context, token string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE password_reset_token = $1`
	user, err := scanUser(d.pool.QueryRow(ctx, query, token))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user by reset token: %w", err)
	}
	return user, nil
}

// UpdateUser applies a partial update, building the SET clause from only the
// provided columns and stamping updated_at. Unknown or immutable columns are
// rejected before the query is built.
func (d *Database) UpdateUser(ctx context.Context, id int64, update models.UserUpdate) (*models.User, error) {
	query, values, err := buildUserUpdate(id, update, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	user, err := scanUser(d.pool.QueryRow(ctx, query, values...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrUserNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domainErrors.ErrEmailExists
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

// ResetUserPassword sets the password hash and clears the reset token pair in
// one statement, so a crashed process never leaves a consumed token behind.
func (d *Database) ResetUserPassword(ctx context.Context, id int64, passwordHash string) error {
	query := `
		UPDATE users
		SET password = $1, password_reset_token = NULL, password_reset_expires_at = NULL, updated_at = $2
		WHERE id = $3`
	result, err := d.pool.Exec(ctx, query, passwordHash, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to reset password: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domainErrors.ErrUserNotFound
	}
	return nil
}

// DeleteUser removes a user row.
func (d *Database) DeleteUser(ctx context.Context, id int64) error {
	result, err := d.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domainErrors.ErrUserNotFound
	}
	return nil
}

// UnprocessedUsers returns the FIFO moderation queue: documents submitted,
// not yet verified, oldest first.
func (d *Database) UnprocessedUsers(ctx context.Context) ([]models.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE documents_submitted_at IS NOT NULL AND documents_verified_at IS NULL
		ORDER BY documents_submitted_at ASC`
	return d.queryUsers(ctx, query)
}

// UsersWithDocuments returns every user that has submitted documents.
func (d *Database) UsersWithDocuments(ctx context.Context) ([]models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE documents_submitted_at IS NOT NULL`
	return d.queryUsers(ctx, query)
}

func (d *Database) queryUsers(ctx context.Context, query string, args ...interface{}) ([]models.User, error) {
	rows, err := d.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, *user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}
	return users, nil
}

// Ping verifies database connectivity.
func (d *Database) Ping(ctx context.Context) error {
	return d.pool.Ping(ctx)
}

// Close releases the connection pool.
func (d *Database) Close() {
	d.pool.Close()
}

var _ repository.Database = (*Database)(nil)

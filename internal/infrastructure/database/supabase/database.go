// File: internal/infrastructure/database/supabase/database.go
package supabase

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	domainErrors "github.com/lolmatina/coincash-back/internal/domain/errors"
	"github.com/lolmatina/coincash-back/internal/domain/models"
	"github.com/lolmatina/coincash-back/internal/domain/repository"
)

// Database implements repository.Database against the Supabase table API.
type Database struct {
	client *Client
}

// NewDatabase creates the adapter from a configured client.
func NewDatabase(client *Client) *Database {
	return &Database{client: client}
}

// userRow mirrors the users table for JSON transport; models.User hides
// credential and token columns from JSON, so rows travel through this type.
type userRow struct {
	ID                         int64              `json:"id,omitempty"`
	Name                       string             `json:"name"`
	Lastname                   string             `json:"lastname"`
	Email                      string             `json:"email"`
	Password                   string             `json:"password"`
	ProfileType                models.ProfileType `json:"profile_type"`
	EmailVerifiedAt            *time.Time         `json:"email_verified_at"`
	EmailVerificationCode      *string            `json:"email_verification_code"`
	EmailVerificationExpiresAt *time.Time         `json:"email_verification_expires_at"`
	PasswordResetToken         *string            `json:"password_reset_token"`
	PasswordResetExpiresAt     *time.Time         `json:"password_reset_expires_at"`
	DocumentFrontURL           *string            `json:"document_front_url"`
	DocumentBackURL            *string            `json:"document_back_url"`
	DocumentSelfieURL          *string            `json:"document_selfie_url"`
	DocumentsSubmittedAt       *time.Time         `json:"documents_submitted_at"`
	DocumentsVerifiedAt        *time.Time         `json:"documents_verified_at"`
	CreatedAt                  time.Time          `json:"created_at,omitempty"`
	UpdatedAt                  time.Time          `json:"updated_at,omitempty"`
}

func (r *userRow) toModel() *models.User {
	return &models.User{
		ID:                         r.ID,
		Name:                       r.Name,
		Lastname:                   r.Lastname,
		Email:                      r.Email,
		PasswordHash:               r.Password,
		ProfileType:                r.ProfileType,
		EmailVerifiedAt:            r.EmailVerifiedAt,
		EmailVerificationCode:      r.EmailVerificationCode,
		EmailVerificationExpiresAt: r.EmailVerificationExpiresAt,
		PasswordResetToken:         r.PasswordResetToken,
		PasswordResetExpiresAt:     r.PasswordResetExpiresAt,
		DocumentFrontURL:           r.DocumentFrontURL,
		DocumentBackURL:            r.DocumentBackURL,
		DocumentSelfieURL:          r.DocumentSelfieURL,
		DocumentsSubmittedAt:       r.DocumentsSubmittedAt,
		DocumentsVerifiedAt:        r.DocumentsVerifiedAt,
		CreatedAt:                  r.CreatedAt,
		UpdatedAt:                  r.UpdatedAt,
	}
}

// CreateUser inserts a new user row.
func (d *Database) CreateUser(ctx context.Context, params models.CreateUserParams) (*models.User, error) {
	body := map[string]interface{}{
		"name":         params.Name,
		"lastname":     params.Lastname,
		"email":        params.Email,
		"password":     params.PasswordHash,
		"profile_type": params.ProfileType,
	}
	var row userRow
	if err := d.client.insertSingle(ctx, "/users", body, &row); err != nil {
		if errors.Is(err, domainErrors.ErrConflict) {
			return nil, domainErrors.ErrEmailExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return row.toModel(), nil
}

// FindUserByID retrieves a user by id.
func (d *Database) FindUserByID(ctx context.Context, id int64) (*models.User, error) {
	var row userRow
	err := d.client.getSingle(ctx, fmt.Sprintf("/users?id=eq.%d", id), &row)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, domainErrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user by id: %w", err)
	}
	return row.toModel(), nil
}

// FindUserByEmail retrieves a user by email.
func (d *Database) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var row userRow
	err := d.client.getSingle(ctx, "/users?email=eq."+url.QueryEscape(email), &row)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, domainErrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}
	return row.toModel(), nil
}

// FindUserByResetToken retrieves a user by the live reset token.
func (d *Database) FindUserByResetToken(ctx context.Context, token string) (*models.User, error) {
	var row userRow
	err := d.client.getSingle(ctx, "/users?password_reset_token=eq."+url.QueryEscape(token), &row)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, domainErrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user by reset token: %w", err)
	}
	return row.toModel(), nil
}

// UpdateUser applies a partial update. The table API only touches the keys
// present in the body; updated_at is stamped here to match the direct
// backend's behavior.
func (d *Database) UpdateUser(ctx context.Context, id int64, update models.UserUpdate) (*models.User, error) {
	if len(update) == 0 {
		return nil, fmt.Errorf("empty update: %w", domainErrors.ErrInvalidInput)
	}
	body := make(map[string]interface{}, len(update)+1)
	for column, value := range update {
		if _, ok := models.UserUpdatableColumns[column]; !ok {
			return nil, fmt.Errorf("column %q is not updatable: %w", column, domainErrors.ErrInvalidInput)
		}
		body[column] = value
	}
	body["updated_at"] = time.Now().UTC()

	var row userRow
	err := d.client.updateSingle(ctx, fmt.Sprintf("/users?id=eq.%d", id), body, &row)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, domainErrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return row.toModel(), nil
}

// ResetUserPassword calls the reset_user_password procedure, which updates
// the hash and clears the token pair atomically on the database side.
func (d *Database) ResetUserPassword(ctx context.Context, id int64, passwordHash string) error {
	args := map[string]interface{}{
		"user_id":           id,
		"new_password_hash": passwordHash,
	}
	if err := d.client.rpc(ctx, "reset_user_password", args); err != nil {
		return fmt.Errorf("failed to reset password: %w", err)
	}
	return nil
}

// DeleteUser removes a user row. The table API deletes zero rows without
// complaint, so the returned representation decides between hit and miss.
func (d *Database) DeleteUser(ctx context.Context, id int64) error {
	var rows []userRow
	if err := d.client.delete(ctx, fmt.Sprintf("/users?id=eq.%d", id), &rows); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if len(rows) == 0 {
		return domainErrors.ErrUserNotFound
	}
	return nil
}

// CreateManager registers a new manager.
func (d *Database) CreateManager(ctx context.Context, params models.CreateManagerParams) (*models.Manager, error) {
	body := map[string]interface{}{
		"name":             params.Name,
		"telegram_chat_id": params.TelegramChatID,
	}
	var m models.Manager
	if err := d.client.insertSingle(ctx, "/managers", body, &m); err != nil {
		if errors.Is(err, domainErrors.ErrConflict) {
			return nil, domainErrors.ErrTelegramIDExists
		}
		return nil, fmt.Errorf("failed to create manager: %w", err)
	}
	return &m, nil
}

// FindManagerByTelegramID retrieves a manager by Telegram chat id.
func (d *Database) FindManagerByTelegramID(ctx context.Context, telegramChatID string) (*models.Manager, error) {
	var m models.Manager
	err := d.client.getSingle(ctx, "/managers?telegram_chat_id=eq."+url.QueryEscape(telegramChatID), &m)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, domainErrors.ErrManagerNotFound
		}
		return nil, fmt.Errorf("failed to find manager by telegram id: %w", err)
	}
	return &m, nil
}

// AllManagers returns every registered manager.
func (d *Database) AllManagers(ctx context.Context) ([]models.Manager, error) {
	var managers []models.Manager
	if err := d.client.do(ctx, "GET", "/managers?select=*", nil, nil, &managers); err != nil {
		return nil, fmt.Errorf("failed to list managers: %w", err)
	}
	return managers, nil
}

// UnprocessedUsers returns the FIFO moderation queue.
func (d *Database) UnprocessedUsers(ctx context.Context) ([]models.User, error) {
	path := "/users?documents_submitted_at=not.is.null&documents_verified_at=is.null&order=documents_submitted_at.asc"
	var rows []userRow
	if err := d.client.do(ctx, "GET", path, nil, nil, &rows); err != nil {
		return nil, fmt.Errorf("failed to list unprocessed users: %w", err)
	}
	return rowsToModels(rows), nil
}

// UsersWithDocuments returns every user that has submitted documents.
func (d *Database) UsersWithDocuments(ctx context.Context) ([]models.User, error) {
	path := "/users?documents_submitted_at=not.is.null"
	var rows []userRow
	if err := d.client.do(ctx, "GET", path, nil, nil, &rows); err != nil {
		return nil, fmt.Errorf("failed to list users with documents: %w", err)
	}
	return rowsToModels(rows), nil
}

func rowsToModels(rows []userRow) []models.User {
	users := make([]models.User, 0, len(rows))
	for i := range rows {
		users = append(users, *rows[i].toModel())
	}
	return users
}

// Ping verifies the table API is reachable.
func (d *Database) Ping(ctx context.Context) error {
	var managers []models.Manager
	return d.client.do(ctx, "GET", "/managers?select=id&limit=1", nil, nil, &managers)
}

// Close is a no-op; the adapter holds no persistent connections.
func (d *Database) Close() {}

var _ repository.Database = (*Database)(nil)

// File: internal/domain/repository/database.go
package repository

import (
	"context"

	"github.com/lolmatina/coincash-back/internal/domain/models"
)

// Database is the persistence contract the services depend on. Two backends
// satisfy it: the direct PostgreSQL implementation and the Supabase table-API
// adapter. Business logic only ever sees this interface.
type Database interface {
	// User operations
	CreateUser(ctx context.Context, params models.CreateUserParams) (*models.User, error)
	FindUserByID(ctx context.Context, id int64) (*models.User, error)
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	FindUserByResetToken(ctx context.Context, token string) (*models.User, error)
	// UpdateUser applies a partial update, stamping updated_at. Columns not
	// present in the update are never touched; "id" and "created_at" are
	// rejected.
	UpdateUser(ctx context.Context, id int64, update models.UserUpdate) (*models.User, error)
	// ResetUserPassword sets the password hash and clears the reset token and
	// its expiry in a single statement.
	ResetUserPassword(ctx context.Context, id int64, passwordHash string) error
	DeleteUser(ctx context.Context, id int64) error

	// Manager operations
	CreateManager(ctx context.Context, params models.CreateManagerParams) (*models.Manager, error)
	FindManagerByTelegramID(ctx context.Context, telegramChatID string) (*models.Manager, error)
	AllManagers(ctx context.Context) ([]models.Manager, error)

	// Moderation queries
	// UnprocessedUsers returns users with documents submitted but not yet
	// verified, oldest submission first.
	UnprocessedUsers(ctx context.Context) ([]models.User, error)
	// UsersWithDocuments returns every user that has submitted documents,
	// regardless of verification state.
	UsersWithDocuments(ctx context.Context) ([]models.User, error)

	// Ping verifies connectivity for health checks.
	Ping(ctx context.Context) error
	Close()
}

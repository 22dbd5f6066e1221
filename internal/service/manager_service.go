// File: internal/service/manager_service.go
package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	domainErrors "github.com/lolmatina/coincash-back/internal/domain/errors"
	"github.com/lolmatina/coincash-back/internal/domain/interfaces"
	"github.com/lolmatina/coincash-back/internal/domain/models"
	"github.com/lolmatina/coincash-back/internal/domain/repository"
)

func nowUTC() time.Time { return time.Now().UTC() }

// ManagerService handles the manager registry and the document moderation
// queue.
type ManagerService struct {
	db     repository.Database
	mailer interfaces.Mailer
	logger *zap.Logger
}

func NewManagerService(db repository.Database, mailer interfaces.Mailer, logger *zap.Logger) *ManagerService {
	return &ManagerService{
		db:     db,
		mailer: mailer,
		logger: logger,
	}
}

// CreateManager registers a manager by Telegram chat id.
func (s *ManagerService) CreateManager(ctx context.Context, params models.CreateManagerParams) (*models.Manager, error) {
	return s.db.CreateManager(ctx, params)
}

// FindManagerByTelegramID looks a manager up by chat id.
func (s *ManagerService) FindManagerByTelegramID(ctx context.Context, chatID string) (*models.Manager, error) {
	return s.db.FindManagerByTelegramID(ctx, chatID)
}

// ListManagers returns all registered managers.
func (s *ManagerService) ListManagers(ctx context.Context) ([]models.Manager, error) {
	return s.db.AllManagers(ctx)
}

// ModerationQueue returns users awaiting document review, oldest submission
// first.
func (s *ManagerService) ModerationQueue(ctx context.Context) ([]models.UserResponse, error) {
	users, err := s.db.UnprocessedUsers(ctx)
	if err != nil {
		return nil, err
	}
	return toResponses(users), nil
}

// UsersWithDocuments returns every user that ever submitted documents.
func (s *ManagerService) UsersWithDocuments(ctx context.Context) ([]models.UserResponse, error) {
	users, err := s.db.UsersWithDocuments(ctx)
	if err != nil {
		return nil, err
	}
	return toResponses(users), nil
}

// ApproveDocuments marks the user's documents as verified and notifies them
// by email. The email is best effort.
func (s *ManagerService) ApproveDocuments(ctx context.Context, userID int64) (*models.UserResponse, error) {
	user, err := s.db.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.DocumentsSubmittedAt == nil {
		return nil, fmt.Errorf("no documents submitted: %w", domainErrors.ErrInvalidInput)
	}

	updated, err := s.db.UpdateUser(ctx, userID, models.UserUpdate{
		"documents_verified_at": nowUTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to approve documents: %w", err)
	}

	if err := s.mailer.SendDocumentApprovalEmail(ctx, updated.Email, updated.Name); err != nil {
		s.logger.Error("failed to send approval email",
			zap.Int64("user_id", userID),
			zap.Error(err))
	}

	s.logger.Info("documents approved", zap.Int64("user_id", userID))
	resp := updated.ToResponse()
	return &resp, nil
}

// DenyDocuments rejects the submission: the document fields are cleared so
// the user can submit again, and a denial email goes out best effort.
func (s *ManagerService) DenyDocuments(ctx context.Context, userID int64) (*models.UserResponse, error) {
	user, err := s.db.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.DocumentsSubmittedAt == nil {
		return nil, fmt.Errorf("no documents submitted: %w", domainErrors.ErrInvalidInput)
	}

	updated, err := s.db.UpdateUser(ctx, userID, models.UserUpdate{
		"document_front_url":     nil,
		"document_back_url":      nil,
		"document_selfie_url":    nil,
		"documents_submitted_at": nil,
		"documents_verified_at":  nil,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to deny documents: %w", err)
	}

	if err := s.mailer.SendDocumentDenialEmail(ctx, updated.Email, updated.Name); err != nil {
		s.logger.Error("failed to send denial email",
			zap.Int64("user_id", userID),
			zap.Error(err))
	}

	s.logger.Info("documents denied", zap.Int64("user_id", userID))
	resp := updated.ToResponse()
	return &resp, nil
}

func toResponses(users []models.User) []models.UserResponse {
	out := make([]models.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, users[i].ToResponse())
	}
	return out
}

// File: internal/service/user_service.go
package service

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	domainErrors "github.com/lolmatina/coincash-back/internal/domain/errors"
	"github.com/lolmatina/coincash-back/internal/domain/interfaces"
	"github.com/lolmatina/coincash-back/internal/domain/models"
	"github.com/lolmatina/coincash-back/internal/domain/repository"
)

// DocumentUpload carries one uploaded document file.
type DocumentUpload struct {
	Data        []byte
	ContentType string
	Filename    string
}

// UserService handles profile reads, partial updates and KYC document
// submission.
type UserService struct {
	db       repository.Database
	storage  repository.Storage
	telegram interfaces.TelegramNotifier
	bucket   string
	logger   *zap.Logger
}

func NewUserService(
	db repository.Database,
	storage repository.Storage,
	telegram interfaces.TelegramNotifier,
	bucket string,
	logger *zap.Logger,
) *UserService {
	return &UserService{
		db:       db,
		storage:  storage,
		telegram: telegram,
		bucket:   bucket,
		logger:   logger,
	}
}

// GetUser returns the user by id.
func (s *UserService) GetUser(ctx context.Context, id int64) (*models.UserResponse, error) {
	user, err := s.db.FindUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := user.ToResponse()
	return &resp, nil
}

// GetUserByEmail returns the user by email.
func (s *UserService) GetUserByEmail(ctx context.Context, email string) (*models.UserResponse, error) {
	user, err := s.db.FindUserByEmail(ctx, strings.ToLower(email))
	if err != nil {
		return nil, err
	}
	resp := user.ToResponse()
	return &resp, nil
}

// UpdateUser applies a partial profile update.
func (s *UserService) UpdateUser(ctx context.Context, id int64, update models.UserUpdate) (*models.UserResponse, error) {
	updated, err := s.db.UpdateUser(ctx, id, update)
	if err != nil {
		return nil, err
	}
	resp := updated.ToResponse()
	return &resp, nil
}

// DeleteUser removes the account.
func (s *UserService) DeleteUser(ctx context.Context, id int64) error {
	return s.db.DeleteUser(ctx, id)
}

// SubmitDocuments stores the three document photos, records the submission
// on the user row and broadcasts it to the managers. Resubmission is allowed
// until the documents are verified; new uploads replace the recorded URLs.
func (s *UserService) SubmitDocuments(ctx context.Context, email string, front, back, selfie DocumentUpload) (*models.UserResponse, error) {
	user, err := s.db.FindUserByEmail(ctx, strings.ToLower(email))
	if err != nil {
		return nil, err
	}
	if user.DocumentsVerifiedAt != nil {
		return nil, fmt.Errorf("documents already verified: %w", domainErrors.ErrConflict)
	}

	frontURL, err := s.uploadDocument(ctx, user.ID, "front", front)
	if err != nil {
		return nil, err
	}
	backURL, err := s.uploadDocument(ctx, user.ID, "back", back)
	if err != nil {
		return nil, err
	}
	selfieURL, err := s.uploadDocument(ctx, user.ID, "selfie", selfie)
	if err != nil {
		return nil, err
	}

	updated, err := s.db.UpdateUser(ctx, user.ID, models.UserUpdate{
		"document_front_url":     frontURL,
		"document_back_url":      backURL,
		"document_selfie_url":    selfieURL,
		"documents_submitted_at": nowUTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to record document submission: %w", err)
	}

	// Manager notification is best effort; the submission itself stands.
	sub := interfaces.DocumentSubmission{
		Email:     updated.Email,
		Name:      fmt.Sprintf("%s %s", updated.Name, updated.Lastname),
		FrontURL:  frontURL,
		BackURL:   backURL,
		SelfieURL: selfieURL,
	}
	if err := s.telegram.SendDocumentSubmission(ctx, sub); err != nil {
		s.logger.Error("failed to broadcast document submission",
			zap.Int64("user_id", user.ID),
			zap.Error(err))
	}

	s.logger.Info("documents submitted", zap.Int64("user_id", user.ID))
	resp := updated.ToResponse()
	return &resp, nil
}

func (s *UserService) uploadDocument(ctx context.Context, userID int64, kind string, doc DocumentUpload) (string, error) {
	if len(doc.Data) == 0 {
		return "", fmt.Errorf("empty %s document: %w", kind, domainErrors.ErrInvalidInput)
	}
	key := fmt.Sprintf("documents/%d/%s/%s%s", userID, kind, uuid.New().String(), path.Ext(doc.Filename))
	url, err := s.storage.UploadFile(ctx, s.bucket, key, doc.Data, doc.ContentType)
	if err != nil {
		return "", fmt.Errorf("failed to upload %s document: %w", kind, err)
	}
	return url, nil
}

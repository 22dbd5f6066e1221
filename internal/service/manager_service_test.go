// File: internal/service/manager_service_test.go
package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	domainErrors "github.com/lolmatina/coincash-back/internal/domain/errors"
	"github.com/lolmatina/coincash-back/internal/domain/models"
)

func TestApproveDocumentsSetsVerifiedAndEmails(t *testing.T) {
	db := &mockDatabase{}
	mailer := &mockMailer{}
	svc := NewManagerService(db, mailer, zap.NewNop())

	user := pendingUser("123456", testNow)
	user.DocumentsSubmittedAt = timePtr(testNow.Add(-time.Hour))
	approved := *user
	approved.DocumentsVerifiedAt = timePtr(testNow)

	db.On("FindUserByID", mock.Anything, int64(7)).Return(user, nil)
	db.On("UpdateUser", mock.Anything, int64(7), mock.MatchedBy(func(u models.UserUpdate) bool {
		_, ok := u["documents_verified_at"]
		return ok && len(u) == 1
	})).Return(&approved, nil)
	mailer.On("SendDocumentApprovalEmail", mock.Anything, "alice@example.com", "Alice").Return(nil)

	resp, err := svc.ApproveDocuments(context.Background(), 7)

	require.NoError(t, err)
	assert.NotNil(t, resp.DocumentsVerifiedAt)
	mailer.AssertExpectations(t)
}

func TestApproveDocumentsWithoutSubmission(t *testing.T) {
	db := &mockDatabase{}
	mailer := &mockMailer{}
	svc := NewManagerService(db, mailer, zap.NewNop())

	user := pendingUser("123456", testNow)
	db.On("FindUserByID", mock.Anything, int64(7)).Return(user, nil)

	_, err := svc.ApproveDocuments(context.Background(), 7)

	assert.ErrorIs(t, err, domainErrors.ErrInvalidInput)
	db.AssertNotCalled(t, "UpdateUser", mock.Anything, mock.Anything, mock.Anything)
}

func TestDenyDocumentsClearsSubmission(t *testing.T) {
	db := &mockDatabase{}
	mailer := &mockMailer{}
	svc := NewManagerService(db, mailer, zap.NewNop())

	user := pendingUser("123456", testNow)
	user.DocumentsSubmittedAt = timePtr(testNow.Add(-time.Hour))
	cleared := *user
	cleared.DocumentsSubmittedAt = nil

	db.On("FindUserByID", mock.Anything, int64(7)).Return(user, nil)
	db.On("UpdateUser", mock.Anything, int64(7), mock.MatchedBy(func(u models.UserUpdate) bool {
		// Denial clears every document field so the user can resubmit.
		for _, column := range []string{
			"document_front_url", "document_back_url", "document_selfie_url",
			"documents_submitted_at", "documents_verified_at",
		} {
			v, ok := u[column]
			if !ok || v != nil {
				return false
			}
		}
		return true
	})).Return(&cleared, nil)
	mailer.On("SendDocumentDenialEmail", mock.Anything, "alice@example.com", "Alice").Return(nil)

	_, err := svc.DenyDocuments(context.Background(), 7)

	require.NoError(t, err)
	mailer.AssertExpectations(t)
}

func TestModerationQueuePassthrough(t *testing.T) {
	db := &mockDatabase{}
	mailer := &mockMailer{}
	svc := NewManagerService(db, mailer, zap.NewNop())

	db.On("UnprocessedUsers", mock.Anything).Return([]models.User{
		{ID: 1, Email: "first@example.com"},
		{ID: 2, Email: "second@example.com"},
	}, nil)

	users, err := svc.ModerationQueue(context.Background())

	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, int64(1), users[0].ID)
}

// File: internal/handler/http/auth_handler_test.go
package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	domainErrors "github.com/lolmatina/coincash-back/internal/domain/errors"
	"github.com/lolmatina/coincash-back/internal/domain/interfaces"
	"github.com/lolmatina/coincash-back/internal/domain/models"
	"github.com/lolmatina/coincash-back/internal/service"
)

// fakeDatabase implements repository.Database with function fields so each
// test overrides only what it needs.
type fakeDatabase struct {
	findUserByEmail      func(ctx context.Context, email string) (*models.User, error)
	findUserByResetToken func(ctx context.Context, token string) (*models.User, error)
	updateUser           func(ctx context.Context, id int64, update models.UserUpdate) (*models.User, error)
	resetUserPassword    func(ctx context.Context, id int64, hash string) error
}

func (f *fakeDatabase) CreateUser(ctx context.Context, params models.CreateUserParams) (*models.User, error) {
	return nil, domainErrors.ErrInternal
}

func (f *fakeDatabase) FindUserByID(ctx context.Context, id int64) (*models.User, error) {
	return nil, domainErrors.ErrUserNotFound
}

func (f *fakeDatabase) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	if f.findUserByEmail == nil {
		return nil, domainErrors.ErrUserNotFound
	}
	return f.findUserByEmail(ctx, email)
}

func (f *fakeDatabase) FindUserByResetToken(ctx context.Context, token string) (*models.User, error) {
	if f.findUserByResetToken == nil {
		return nil, domainErrors.ErrUserNotFound
	}
	return f.findUserByResetToken(ctx, token)
}

func (f *fakeDatabase) UpdateUser(ctx context.Context, id int64, update models.UserUpdate) (*models.User, error) {
	if f.updateUser == nil {
		return nil, domainErrors.ErrUserNotFound
	}
	return f.updateUser(ctx, id, update)
}

func (f *fakeDatabase) ResetUserPassword(ctx context.Context, id int64, hash string) error {
	if f.resetUserPassword == nil {
		return domainErrors.ErrUserNotFound
	}
	return f.resetUserPassword(ctx, id, hash)
}

func (f *fakeDatabase) DeleteUser(ctx context.Context, id int64) error { return nil }

func (f *fakeDatabase) CreateManager(ctx context.Context, params models.CreateManagerParams) (*models.Manager, error) {
	return nil, domainErrors.ErrInternal
}

func (f *fakeDatabase) FindManagerByTelegramID(ctx context.Context, id string) (*models.Manager, error) {
	return nil, domainErrors.ErrManagerNotFound
}

func (f *fakeDatabase) AllManagers(ctx context.Context) ([]models.Manager, error) { return nil, nil }

func (f *fakeDatabase) UnprocessedUsers(ctx context.Context) ([]models.User, error) { return nil, nil }

func (f *fakeDatabase) UsersWithDocuments(ctx context.Context) ([]models.User, error) {
	return nil, nil
}

func (f *fakeDatabase) Ping(ctx context.Context) error { return nil }

func (f *fakeDatabase) Close() {}

type fakeMailer struct {
	sendResetErr error
}

func (f *fakeMailer) SendVerificationEmail(ctx context.Context, email, code string, ttl int) error {
	return nil
}

func (f *fakeMailer) SendPasswordResetEmail(ctx context.Context, email, token string) error {
	return f.sendResetErr
}

func (f *fakeMailer) SendPasswordResetConfirmationEmail(ctx context.Context, email string) error {
	return nil
}

func (f *fakeMailer) SendDocumentApprovalEmail(ctx context.Context, email, name string) error {
	return nil
}

func (f *fakeMailer) SendDocumentDenialEmail(ctx context.Context, email, name string) error {
	return nil
}

type fakeLimiter struct {
	result interfaces.RateLimitResult
}

func (f *fakeLimiter) Check(ctx context.Context, key string) (interfaces.RateLimitResult, error) {
	return f.result, nil
}

func (f *fakeLimiter) Increment(ctx context.Context, key string) (interfaces.RateLimitResult, error) {
	return f.result, nil
}

type fakePasswords struct{}

func (fakePasswords) HashPassword(p string) (string, error)       { return "$2a$10$hash", nil }
func (fakePasswords) CheckPasswordHash(p, h string) (bool, error) { return p == "secret", nil }

type fakeTokens struct{}

func (fakeTokens) GenerateToken(userID int64, email string) (string, error) { return "token", nil }

func newTestRouter(db *fakeDatabase, limiter interfaces.RateLimiter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()
	authService := service.NewAuthService(
		db, fakePasswords{}, &fakeMailer{}, limiter, fakeTokens{},
		30*time.Minute, 15*time.Minute, logger,
	)
	handler := NewAuthHandler(authService, logger)

	router := gin.New()
	router.POST("/api/v1/auth/password-reset/request", handler.RequestPasswordReset)
	router.POST("/api/v1/auth/password-reset/confirm", handler.ResetPassword)
	router.POST("/api/v1/auth", handler.Login)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestRequestPasswordResetRateLimitedResponse(t *testing.T) {
	limiter := &fakeLimiter{result: interfaces.RateLimitResult{
		Allowed:    false,
		RetryAfter: 10 * time.Minute,
	}}
	router := newTestRouter(&fakeDatabase{}, limiter)

	rec := doJSON(t, router, "/api/v1/auth/password-reset/request", gin.H{
		"email": "alice@example.com",
	})

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "600", rec.Header().Get("Retry-After"))

	var resp ResponseError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "rate_limited", resp.Code)
	assert.Contains(t, resp.Error, "10 minutes")
}

func TestRequestPasswordResetHappyPath(t *testing.T) {
	resetTime := time.Date(2025, 6, 1, 12, 15, 0, 0, time.UTC)
	limiter := &fakeLimiter{result: interfaces.RateLimitResult{
		Allowed:   true,
		Remaining: 2,
		ResetTime: resetTime,
	}}
	user := &models.User{ID: 7, Email: "alice@example.com"}
	db := &fakeDatabase{
		findUserByEmail: func(ctx context.Context, email string) (*models.User, error) {
			return user, nil
		},
		updateUser: func(ctx context.Context, id int64, update models.UserUpdate) (*models.User, error) {
			return user, nil
		},
	}
	router := newTestRouter(db, limiter)

	rec := doJSON(t, router, "/api/v1/auth/password-reset/request", gin.H{
		"email": "alice@example.com",
	})

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, float64(2), resp["remainingAttempts"])
}

func TestRequestPasswordResetUnknownEmail(t *testing.T) {
	limiter := &fakeLimiter{result: interfaces.RateLimitResult{Allowed: true, Remaining: 3}}
	router := newTestRouter(&fakeDatabase{}, limiter)

	rec := doJSON(t, router, "/api/v1/auth/password-reset/request", gin.H{
		"email": "ghost@example.com",
	})

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestResetPasswordMalformedTokenResponse(t *testing.T) {
	limiter := &fakeLimiter{result: interfaces.RateLimitResult{Allowed: true}}
	router := newTestRouter(&fakeDatabase{}, limiter)

	rec := doJSON(t, router, "/api/v1/auth/password-reset/confirm", gin.H{
		"token":       "deadbeef",
		"newPassword": "newsecret",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestResetPasswordSuccessResponse(t *testing.T) {
	token := strings.Repeat("ab", 32)
	expiry := time.Now().UTC().Add(5 * time.Minute)
	user := &models.User{
		ID:                     7,
		Email:                  "alice@example.com",
		PasswordResetToken:     &token,
		PasswordResetExpiresAt: &expiry,
	}
	db := &fakeDatabase{
		findUserByResetToken: func(ctx context.Context, got string) (*models.User, error) {
			if got == token {
				return user, nil
			}
			return nil, domainErrors.ErrUserNotFound
		},
		resetUserPassword: func(ctx context.Context, id int64, hash string) error { return nil },
	}
	router := newTestRouter(db, &fakeLimiter{result: interfaces.RateLimitResult{Allowed: true}})

	rec := doJSON(t, router, "/api/v1/auth/password-reset/confirm", gin.H{
		"token":       token,
		"newPassword": "newsecret",
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Password has been reset successfully")
}

func TestLoginInvalidCredentialsResponse(t *testing.T) {
	user := &models.User{ID: 7, Email: "alice@example.com", PasswordHash: "$2a$10$hash"}
	db := &fakeDatabase{
		findUserByEmail: func(ctx context.Context, email string) (*models.User, error) {
			return user, nil
		},
	}
	router := newTestRouter(db, &fakeLimiter{result: interfaces.RateLimitResult{Allowed: true}})

	rec := doJSON(t, router, "/api/v1/auth", gin.H{
		"email":    "alice@example.com",
		"password": "wrong",
	})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

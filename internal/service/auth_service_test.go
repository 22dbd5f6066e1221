// File: internal/service/auth_service_test.go
package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	domainErrors "github.com/lolmatina/coincash-back/internal/domain/errors"
	"github.com/lolmatina/coincash-back/internal/domain/interfaces"
	"github.com/lolmatina/coincash-back/internal/domain/models"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

type authFixture struct {
	db        *mockDatabase
	passwords *mockPasswordService
	mailer    *mockMailer
	limiter   *mockRateLimiter
	tokens    *mockTokenIssuer
	svc       *AuthService
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	f := &authFixture{
		db:        &mockDatabase{},
		passwords: &mockPasswordService{},
		mailer:    &mockMailer{},
		limiter:   &mockRateLimiter{},
		tokens:    &mockTokenIssuer{},
	}
	f.svc = NewAuthService(
		f.db, f.passwords, f.mailer, f.limiter, f.tokens,
		30*time.Minute, 15*time.Minute,
		zap.NewNop(),
	)
	f.svc.now = func() time.Time { return testNow }
	return f
}

func strPtr(s string) *string        { return &s }
func timePtr(t time.Time) *time.Time { return &t }

func pendingUser(code string, expiresAt time.Time) *models.User {
	return &models.User{
		ID:                         7,
		Name:                       "Alice",
		Lastname:                   "Smith",
		Email:                      "alice@example.com",
		PasswordHash:               "$2a$10$hash",
		ProfileType:                models.ProfileTypePersonal,
		EmailVerificationCode:      strPtr(code),
		EmailVerificationExpiresAt: timePtr(expiresAt),
	}
}

func TestAuthServiceLoginInvalidCredentials(t *testing.T) {
	f := newAuthFixture(t)
	f.db.On("FindUserByEmail", mock.Anything, "alice@example.com").
		Return(nil, domainErrors.ErrUserNotFound)

	_, _, err := f.svc.Login(context.Background(), models.LoginRequest{
		Email:    "Alice@Example.com",
		Password: "secret",
	})

	assert.ErrorIs(t, err, domainErrors.ErrInvalidCredentials)
}

func TestAuthServiceLoginWrongPassword(t *testing.T) {
	f := newAuthFixture(t)
	user := pendingUser("123456", testNow.Add(30*time.Minute))
	f.db.On("FindUserByEmail", mock.Anything, "alice@example.com").Return(user, nil)
	f.passwords.On("CheckPasswordHash", "wrong", user.PasswordHash).Return(false, nil)

	_, _, err := f.svc.Login(context.Background(), models.LoginRequest{
		Email:    "alice@example.com",
		Password: "wrong",
	})

	assert.ErrorIs(t, err, domainErrors.ErrInvalidCredentials)
	f.tokens.AssertNotCalled(t, "GenerateToken", mock.Anything, mock.Anything)
}

func TestAuthServiceLoginSuccess(t *testing.T) {
	f := newAuthFixture(t)
	user := pendingUser("123456", testNow.Add(30*time.Minute))
	f.db.On("FindUserByEmail", mock.Anything, "alice@example.com").Return(user, nil)
	f.passwords.On("CheckPasswordHash", "secret", user.PasswordHash).Return(true, nil)
	f.tokens.On("GenerateToken", int64(7), "alice@example.com").Return("signed-token", nil)

	token, resp, err := f.svc.Login(context.Background(), models.LoginRequest{
		Email:    "alice@example.com",
		Password: "secret",
	})

	require.NoError(t, err)
	assert.Equal(t, "signed-token", token)
	assert.Equal(t, int64(7), resp.ID)
}

func TestAuthServiceSendVerificationAlreadyVerified(t *testing.T) {
	f := newAuthFixture(t)
	user := pendingUser("123456", testNow.Add(30*time.Minute))
	user.EmailVerifiedAt = timePtr(testNow.Add(-time.Hour))
	f.db.On("FindUserByEmail", mock.Anything, "alice@example.com").Return(user, nil)

	err := f.svc.SendVerificationCode(context.Background(), "alice@example.com")

	assert.ErrorIs(t, err, domainErrors.ErrEmailAlreadyVerified)
	f.db.AssertNotCalled(t, "UpdateUser", mock.Anything, mock.Anything, mock.Anything)
}

func TestAuthServiceSendVerificationPersistsBeforeSend(t *testing.T) {
	f := newAuthFixture(t)
	user := pendingUser("123456", testNow.Add(30*time.Minute))
	user.EmailVerificationCode = nil
	user.EmailVerificationExpiresAt = nil
	f.db.On("FindUserByEmail", mock.Anything, "alice@example.com").Return(user, nil)

	var issuedCode string
	f.db.On("UpdateUser", mock.Anything, int64(7), mock.MatchedBy(func(u models.UserUpdate) bool {
		code, ok := u["email_verification_code"].(string)
		if !ok || len(code) != 6 {
			return false
		}
		expiry, ok := u["email_verification_expires_at"].(time.Time)
		if !ok || !expiry.Equal(testNow.Add(30*time.Minute)) {
			return false
		}
		issuedCode = code
		return true
	})).Return(user, nil)
	f.mailer.On("SendVerificationEmail", mock.Anything, "alice@example.com", mock.Anything, 30).Return(nil)

	err := f.svc.SendVerificationCode(context.Background(), "alice@example.com")

	require.NoError(t, err)
	f.mailer.AssertCalled(t, "SendVerificationEmail", mock.Anything, "alice@example.com", issuedCode, 30)
}

func TestAuthServiceVerifyEmailWrongCode(t *testing.T) {
	f := newAuthFixture(t)
	user := pendingUser("123456", testNow.Add(10*time.Minute))
	f.db.On("FindUserByEmail", mock.Anything, "alice@example.com").Return(user, nil)

	_, err := f.svc.VerifyEmail(context.Background(), "alice@example.com", "654321")

	assert.ErrorIs(t, err, domainErrors.ErrCodeInvalidOrExpired)
	f.db.AssertNotCalled(t, "UpdateUser", mock.Anything, mock.Anything, mock.Anything)
}

func TestAuthServiceVerifyEmailExpiredCode(t *testing.T) {
	f := newAuthFixture(t)
	user := pendingUser("123456", testNow.Add(-time.Second))
	f.db.On("FindUserByEmail", mock.Anything, "alice@example.com").Return(user, nil)

	_, err := f.svc.VerifyEmail(context.Background(), "alice@example.com", "123456")

	assert.ErrorIs(t, err, domainErrors.ErrCodeInvalidOrExpired)
}

func TestAuthServiceVerifyEmailNoPendingCode(t *testing.T) {
	f := newAuthFixture(t)
	user := pendingUser("123456", testNow)
	user.EmailVerificationCode = nil
	user.EmailVerificationExpiresAt = nil
	f.db.On("FindUserByEmail", mock.Anything, "alice@example.com").Return(user, nil)

	_, err := f.svc.VerifyEmail(context.Background(), "alice@example.com", "123456")

	assert.ErrorIs(t, err, domainErrors.ErrCodeInvalidOrExpired)
}

func TestAuthServiceVerifyEmailSingleUse(t *testing.T) {
	f := newAuthFixture(t)
	user := pendingUser("123456", testNow.Add(10*time.Minute))
	verified := *user
	verified.EmailVerifiedAt = timePtr(testNow)
	verified.EmailVerificationCode = nil
	verified.EmailVerificationExpiresAt = nil

	f.db.On("FindUserByEmail", mock.Anything, "alice@example.com").Return(user, nil)
	f.db.On("UpdateUser", mock.Anything, int64(7), mock.MatchedBy(func(u models.UserUpdate) bool {
		// The match must clear the code and its expiry together.
		code, hasCode := u["email_verification_code"]
		expiry, hasExpiry := u["email_verification_expires_at"]
		_, hasVerified := u["email_verified_at"]
		return hasCode && code == nil && hasExpiry && expiry == nil && hasVerified
	})).Return(&verified, nil)

	resp, err := f.svc.VerifyEmail(context.Background(), "alice@example.com", "123456")

	require.NoError(t, err)
	assert.NotNil(t, resp.EmailVerifiedAt)
}

func TestAuthServiceVerifyEmailAlreadyVerified(t *testing.T) {
	f := newAuthFixture(t)
	user := pendingUser("123456", testNow.Add(10*time.Minute))
	user.EmailVerifiedAt = timePtr(testNow.Add(-time.Hour))
	f.db.On("FindUserByEmail", mock.Anything, "alice@example.com").Return(user, nil)

	_, err := f.svc.VerifyEmail(context.Background(), "alice@example.com", "123456")

	assert.ErrorIs(t, err, domainErrors.ErrEmailAlreadyVerified)
}

func TestAuthServiceRequestPasswordResetRateLimited(t *testing.T) {
	f := newAuthFixture(t)
	f.limiter.On("Check", mock.Anything, "alice@example.com").Return(interfaces.RateLimitResult{
		Allowed:    false,
		RetryAfter: 14 * time.Minute,
	}, nil)

	_, err := f.svc.RequestPasswordReset(context.Background(), "Alice@Example.com")

	var rle *domainErrors.RateLimitError
	require.ErrorAs(t, err, &rle)
	assert.Equal(t, 14, rle.RetryAfterMinutes())
	f.db.AssertNotCalled(t, "FindUserByEmail", mock.Anything, mock.Anything)
	f.mailer.AssertNotCalled(t, "SendPasswordResetEmail", mock.Anything, mock.Anything, mock.Anything)
}

func TestAuthServiceRequestPasswordResetUnknownEmail(t *testing.T) {
	f := newAuthFixture(t)
	f.limiter.On("Check", mock.Anything, "ghost@example.com").Return(interfaces.RateLimitResult{
		Allowed:   true,
		Remaining: 3,
	}, nil)
	f.db.On("FindUserByEmail", mock.Anything, "ghost@example.com").
		Return(nil, domainErrors.ErrUserNotFound)

	_, err := f.svc.RequestPasswordReset(context.Background(), "ghost@example.com")

	assert.ErrorIs(t, err, domainErrors.ErrUserNotFound)
	f.limiter.AssertNotCalled(t, "Increment", mock.Anything, mock.Anything)
}

func TestAuthServiceRequestPasswordResetIncrementsAfterSend(t *testing.T) {
	f := newAuthFixture(t)
	user := pendingUser("123456", testNow.Add(30*time.Minute))
	resetTime := testNow.Add(15 * time.Minute)

	f.limiter.On("Check", mock.Anything, "alice@example.com").Return(interfaces.RateLimitResult{
		Allowed:   true,
		Remaining: 3,
		ResetTime: resetTime,
	}, nil)
	f.db.On("FindUserByEmail", mock.Anything, "alice@example.com").Return(user, nil)

	var issuedToken string
	f.db.On("UpdateUser", mock.Anything, int64(7), mock.MatchedBy(func(u models.UserUpdate) bool {
		token, ok := u["password_reset_token"].(string)
		if !ok || len(token) != 64 {
			return false
		}
		expiry, ok := u["password_reset_expires_at"].(time.Time)
		if !ok || !expiry.Equal(testNow.Add(15*time.Minute)) {
			return false
		}
		issuedToken = token
		return true
	})).Return(user, nil)
	f.mailer.On("SendPasswordResetEmail", mock.Anything, "alice@example.com", mock.Anything).Return(nil)
	f.limiter.On("Increment", mock.Anything, "alice@example.com").Return(interfaces.RateLimitResult{
		Allowed:   true,
		Remaining: 2,
		ResetTime: resetTime,
	}, nil)

	receipt, err := f.svc.RequestPasswordReset(context.Background(), "alice@example.com")

	require.NoError(t, err)
	assert.Equal(t, 2, receipt.RemainingAttempts)
	assert.Equal(t, resetTime, receipt.ResetTime)
	f.mailer.AssertCalled(t, "SendPasswordResetEmail", mock.Anything, "alice@example.com", issuedToken)
}

func TestAuthServiceRequestPasswordResetSendFailureKeepsBudget(t *testing.T) {
	f := newAuthFixture(t)
	user := pendingUser("123456", testNow.Add(30*time.Minute))

	f.limiter.On("Check", mock.Anything, "alice@example.com").Return(interfaces.RateLimitResult{
		Allowed:   true,
		Remaining: 3,
	}, nil)
	f.db.On("FindUserByEmail", mock.Anything, "alice@example.com").Return(user, nil)
	f.db.On("UpdateUser", mock.Anything, int64(7), mock.Anything).Return(user, nil)
	f.mailer.On("SendPasswordResetEmail", mock.Anything, "alice@example.com", mock.Anything).
		Return(assert.AnError)

	_, err := f.svc.RequestPasswordReset(context.Background(), "alice@example.com")

	require.Error(t, err)
	f.limiter.AssertNotCalled(t, "Increment", mock.Anything, mock.Anything)
}

func TestAuthServiceResetPasswordMalformedToken(t *testing.T) {
	f := newAuthFixture(t)

	err := f.svc.ResetPassword(context.Background(), "deadbeef", "newsecret")

	assert.ErrorIs(t, err, domainErrors.ErrTokenMalformed)
	f.db.AssertNotCalled(t, "FindUserByResetToken", mock.Anything, mock.Anything)
}

func TestAuthServiceResetPasswordUppercaseTokenRejected(t *testing.T) {
	f := newAuthFixture(t)
	token := strings.ToUpper(strings.Repeat("ab", 32))

	err := f.svc.ResetPassword(context.Background(), token, "newsecret")

	assert.ErrorIs(t, err, domainErrors.ErrTokenMalformed)
	f.db.AssertNotCalled(t, "FindUserByResetToken", mock.Anything, mock.Anything)
}

func TestAuthServiceResetPasswordUnknownToken(t *testing.T) {
	f := newAuthFixture(t)
	token := strings.Repeat("ab", 32)
	f.db.On("FindUserByResetToken", mock.Anything, token).
		Return(nil, domainErrors.ErrUserNotFound)

	err := f.svc.ResetPassword(context.Background(), token, "newsecret")

	assert.ErrorIs(t, err, domainErrors.ErrTokenInvalidOrExpired)
}

func TestAuthServiceResetPasswordExpiredToken(t *testing.T) {
	f := newAuthFixture(t)
	token := strings.Repeat("ab", 32)
	user := pendingUser("123456", testNow)
	user.PasswordResetToken = strPtr(token)
	user.PasswordResetExpiresAt = timePtr(testNow.Add(-time.Second))
	f.db.On("FindUserByResetToken", mock.Anything, token).Return(user, nil)

	err := f.svc.ResetPassword(context.Background(), token, "newsecret")

	// An expired token reads the same as an unknown one.
	assert.ErrorIs(t, err, domainErrors.ErrTokenInvalidOrExpired)
	f.db.AssertNotCalled(t, "ResetUserPassword", mock.Anything, mock.Anything, mock.Anything)
}

func TestAuthServiceResetPasswordSuccess(t *testing.T) {
	f := newAuthFixture(t)
	token := strings.Repeat("ab", 32)
	user := pendingUser("123456", testNow)
	user.PasswordResetToken = strPtr(token)
	user.PasswordResetExpiresAt = timePtr(testNow.Add(5 * time.Minute))

	f.db.On("FindUserByResetToken", mock.Anything, token).Return(user, nil)
	f.passwords.On("HashPassword", "newsecret").Return("$2a$10$newhash", nil)
	f.db.On("ResetUserPassword", mock.Anything, int64(7), "$2a$10$newhash").Return(nil)
	f.mailer.On("SendPasswordResetConfirmationEmail", mock.Anything, "alice@example.com").Return(nil)

	err := f.svc.ResetPassword(context.Background(), token, "newsecret")

	require.NoError(t, err)
	f.db.AssertExpectations(t)
}

func TestAuthServiceResetPasswordConfirmationFailureIgnored(t *testing.T) {
	f := newAuthFixture(t)
	token := strings.Repeat("ab", 32)
	user := pendingUser("123456", testNow)
	user.PasswordResetToken = strPtr(token)
	user.PasswordResetExpiresAt = timePtr(testNow.Add(5 * time.Minute))

	f.db.On("FindUserByResetToken", mock.Anything, token).Return(user, nil)
	f.passwords.On("HashPassword", "newsecret").Return("$2a$10$newhash", nil)
	f.db.On("ResetUserPassword", mock.Anything, int64(7), "$2a$10$newhash").Return(nil)
	f.mailer.On("SendPasswordResetConfirmationEmail", mock.Anything, "alice@example.com").
		Return(assert.AnError)

	err := f.svc.ResetPassword(context.Background(), token, "newsecret")

	assert.NoError(t, err)
}

func TestAuthServiceSignupDuplicateEmail(t *testing.T) {
	f := newAuthFixture(t)
	f.passwords.On("HashPassword", "secret").Return("$2a$10$hash", nil)
	f.db.On("CreateUser", mock.Anything, mock.Anything).Return(nil, domainErrors.ErrEmailExists)

	_, err := f.svc.Signup(context.Background(), models.SignupRequest{
		Name:        "Alice",
		Lastname:    "Smith",
		Email:       "alice@example.com",
		Password:    "secret",
		ProfileType: "personal",
	})

	assert.ErrorIs(t, err, domainErrors.ErrEmailExists)
}

func TestAuthServiceSignupFailsWhenVerificationSendFails(t *testing.T) {
	f := newAuthFixture(t)
	user := pendingUser("123456", testNow.Add(30*time.Minute))
	f.passwords.On("HashPassword", "secret").Return("$2a$10$hash", nil)
	f.db.On("CreateUser", mock.Anything, mock.Anything).Return(user, nil)
	f.db.On("UpdateUser", mock.Anything, int64(7), mock.Anything).Return(user, nil)
	f.mailer.On("SendVerificationEmail", mock.Anything, "alice@example.com", mock.Anything, 30).
		Return(assert.AnError)

	_, err := f.svc.Signup(context.Background(), models.SignupRequest{
		Name:        "Alice",
		Lastname:    "Smith",
		Email:       "alice@example.com",
		Password:    "secret",
		ProfileType: "personal",
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
	// The code was persisted before the send, so a resend can still use it.
	f.db.AssertCalled(t, "UpdateUser", mock.Anything, int64(7), mock.Anything)
}

func TestAuthServiceSignupLowercasesEmail(t *testing.T) {
	f := newAuthFixture(t)
	user := pendingUser("123456", testNow.Add(30*time.Minute))
	f.passwords.On("HashPassword", "secret").Return("$2a$10$hash", nil)
	f.db.On("CreateUser", mock.Anything, mock.MatchedBy(func(p models.CreateUserParams) bool {
		return p.Email == "alice@example.com" && p.PasswordHash == "$2a$10$hash"
	})).Return(user, nil)
	f.db.On("UpdateUser", mock.Anything, int64(7), mock.Anything).Return(user, nil)
	f.mailer.On("SendVerificationEmail", mock.Anything, "alice@example.com", mock.Anything, 30).Return(nil)

	resp, err := f.svc.Signup(context.Background(), models.SignupRequest{
		Name:        "Alice",
		Lastname:    "Smith",
		Email:       "Alice@EXAMPLE.com",
		Password:    "secret",
		ProfileType: "personal",
	})

	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", resp.Email)
}

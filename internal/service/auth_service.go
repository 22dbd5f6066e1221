// File: internal/service/auth_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	domainErrors "github.com/lolmatina/coincash-back/internal/domain/errors"
	"github.com/lolmatina/coincash-back/internal/domain/interfaces"
	"github.com/lolmatina/coincash-back/internal/domain/models"
	"github.com/lolmatina/coincash-back/internal/domain/repository"
	"github.com/lolmatina/coincash-back/internal/infrastructure/security"
	"github.com/lolmatina/coincash-back/internal/utils/metrics"
)

// TokenIssuer signs session tokens on successful login.
type TokenIssuer interface {
	GenerateToken(userID int64, email string) (string, error)
}

// AuthService owns the account lifecycle: signup, login, email verification
// and the password reset flow.
type AuthService struct {
	db        repository.Database
	passwords interfaces.PasswordService
	mailer    interfaces.Mailer
	limiter   interfaces.RateLimiter
	tokens    TokenIssuer
	logger    *zap.Logger

	verificationTTL time.Duration
	resetTokenTTL   time.Duration

	// now is a hook for tests.
	now func() time.Time
}

// NewAuthService wires the auth service dependencies.
func NewAuthService(
	db repository.Database,
	passwords interfaces.PasswordService,
	mailer interfaces.Mailer,
	limiter interfaces.RateLimiter,
	tokens TokenIssuer,
	verificationTTL, resetTokenTTL time.Duration,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		db:              db,
		passwords:       passwords,
		mailer:          mailer,
		limiter:         limiter,
		tokens:          tokens,
		logger:          logger,
		verificationTTL: verificationTTL,
		resetTokenTTL:   resetTokenTTL,
		now:             func() time.Time { return time.Now().UTC() },
	}
}

// Signup registers a new account and issues the first verification code. A
// failed verification send fails the signup call; the code persisted before
// the send stays valid, so a resend can still redeem it.
func (s *AuthService) Signup(ctx context.Context, req models.SignupRequest) (*models.UserResponse, error) {
	hash, err := s.passwords.HashPassword(req.Password)
	if err != nil {
		metrics.SignupsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.db.CreateUser(ctx, models.CreateUserParams{
		Name:         req.Name,
		Lastname:     req.Lastname,
		Email:        strings.ToLower(req.Email),
		PasswordHash: hash,
		ProfileType:  models.ProfileType(req.ProfileType),
	})
	if err != nil {
		if errors.Is(err, domainErrors.ErrEmailExists) {
			metrics.SignupsTotal.WithLabelValues("conflict").Inc()
		} else {
			metrics.SignupsTotal.WithLabelValues("error").Inc()
		}
		return nil, err
	}
	metrics.SignupsTotal.WithLabelValues("success").Inc()

	if err := s.issueVerificationCode(ctx, user); err != nil {
		return nil, err
	}

	resp := user.ToResponse()
	return &resp, nil
}

// Login verifies credentials and issues a session token.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (string, *models.UserResponse, error) {
	user, err := s.db.FindUserByEmail(ctx, strings.ToLower(req.Email))
	if err != nil {
		if errors.Is(err, domainErrors.ErrUserNotFound) {
			return "", nil, domainErrors.ErrInvalidCredentials
		}
		return "", nil, err
	}

	ok, err := s.passwords.CheckPasswordHash(req.Password, user.PasswordHash)
	if err != nil {
		return "", nil, fmt.Errorf("failed to verify password: %w", err)
	}
	if !ok {
		return "", nil, domainErrors.ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateToken(user.ID, user.Email)
	if err != nil {
		return "", nil, fmt.Errorf("failed to issue session token: %w", err)
	}

	resp := user.ToResponse()
	return token, &resp, nil
}

// SendVerificationCode (re)issues the 6-digit email verification code. A
// fresh code always overwrites any pending one.
func (s *AuthService) SendVerificationCode(ctx context.Context, email string) error {
	user, err := s.db.FindUserByEmail(ctx, strings.ToLower(email))
	if err != nil {
		return err
	}
	if user.EmailVerifiedAt != nil {
		return domainErrors.ErrEmailAlreadyVerified
	}
	return s.issueVerificationCode(ctx, user)
}

// issueVerificationCode persists a new code+expiry pair and emails it. The
// code is persisted before the send, so a delivery failure leaves a valid
// code behind and the caller may retry the send.
func (s *AuthService) issueVerificationCode(ctx context.Context, user *models.User) error {
	code, err := security.GenerateVerificationCode()
	if err != nil {
		return err
	}
	expiresAt := s.now().Add(s.verificationTTL)

	if _, err := s.db.UpdateUser(ctx, user.ID, models.UserUpdate{
		"email_verification_code":       code,
		"email_verification_expires_at": expiresAt,
	}); err != nil {
		return fmt.Errorf("failed to persist verification code: %w", err)
	}

	ttlMinutes := int(s.verificationTTL / time.Minute)
	if err := s.mailer.SendVerificationEmail(ctx, user.Email, code, ttlMinutes); err != nil {
		return fmt.Errorf("failed to send verification email: %w", err)
	}

	s.logger.Info("verification code issued", zap.Int64("user_id", user.ID))
	return nil
}

// VerifyEmail checks the submitted code against the pending one. The code is
// single use: a successful match clears it together with its expiry.
func (s *AuthService) VerifyEmail(ctx context.Context, email, code string) (*models.UserResponse, error) {
	user, err := s.db.FindUserByEmail(ctx, strings.ToLower(email))
	if err != nil {
		return nil, err
	}
	if user.EmailVerifiedAt != nil {
		return nil, domainErrors.ErrEmailAlreadyVerified
	}
	if user.EmailVerificationCode == nil || user.EmailVerificationExpiresAt == nil {
		metrics.EmailVerificationsTotal.WithLabelValues("invalid").Inc()
		return nil, domainErrors.ErrCodeInvalidOrExpired
	}
	if *user.EmailVerificationCode != code {
		metrics.EmailVerificationsTotal.WithLabelValues("invalid").Inc()
		return nil, domainErrors.ErrCodeInvalidOrExpired
	}
	if s.now().After(user.EmailVerificationExpiresAt.UTC()) {
		metrics.EmailVerificationsTotal.WithLabelValues("expired").Inc()
		return nil, domainErrors.ErrCodeInvalidOrExpired
	}

	updated, err := s.db.UpdateUser(ctx, user.ID, models.UserUpdate{
		"email_verified_at":             s.now(),
		"email_verification_code":       nil,
		"email_verification_expires_at": nil,
	})
	if err != nil {
		metrics.EmailVerificationsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("failed to mark email verified: %w", err)
	}
	metrics.EmailVerificationsTotal.WithLabelValues("success").Inc()

	s.logger.Info("email verified", zap.Int64("user_id", user.ID))
	resp := updated.ToResponse()
	return &resp, nil
}

// RequestPasswordReset issues a reset token and emails the reset link. The
// rate limit is checked up front but only consumed after a successful send,
// so delivery failures do not burn the caller's budget.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) (*models.PasswordResetReceipt, error) {
	key := strings.ToLower(email)

	check, err := s.limiter.Check(ctx, key)
	if err != nil {
		metrics.PasswordResetRequestsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("rate limit check failed: %w", err)
	}
	if !check.Allowed {
		metrics.PasswordResetRequestsTotal.WithLabelValues("rate_limited").Inc()
		return nil, &domainErrors.RateLimitError{RetryAfter: check.RetryAfter}
	}

	user, err := s.db.FindUserByEmail(ctx, key)
	if err != nil {
		if errors.Is(err, domainErrors.ErrUserNotFound) {
			metrics.PasswordResetRequestsTotal.WithLabelValues("not_found").Inc()
		} else {
			metrics.PasswordResetRequestsTotal.WithLabelValues("error").Inc()
		}
		return nil, err
	}

	token, err := security.GenerateResetToken()
	if err != nil {
		metrics.PasswordResetRequestsTotal.WithLabelValues("error").Inc()
		return nil, err
	}
	expiresAt := s.now().Add(s.resetTokenTTL)

	// Overwrites any live token; only the latest one can redeem.
	if _, err := s.db.UpdateUser(ctx, user.ID, models.UserUpdate{
		"password_reset_token":      token,
		"password_reset_expires_at": expiresAt,
	}); err != nil {
		metrics.PasswordResetRequestsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("failed to persist reset token: %w", err)
	}

	if err := s.mailer.SendPasswordResetEmail(ctx, user.Email, token); err != nil {
		metrics.PasswordResetRequestsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("failed to send password reset email: %w", err)
	}

	result, err := s.limiter.Increment(ctx, key)
	if err != nil {
		// The email is already out; report the request as served.
		s.logger.Error("failed to increment rate limit counter",
			zap.String("email", key),
			zap.Error(err))
		result = check
	}
	metrics.PasswordResetRequestsTotal.WithLabelValues("sent").Inc()

	s.logger.Info("password reset requested",
		zap.Int64("user_id", user.ID),
		zap.Int("remaining_attempts", result.Remaining))

	return &models.PasswordResetReceipt{
		RemainingAttempts: result.Remaining,
		ResetTime:         result.ResetTime,
	}, nil
}

// ResetPassword redeems a reset token. Malformed tokens are rejected before
// any lookup, and a missing token is indistinguishable from an expired one.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if !security.ValidResetTokenFormat(token) {
		metrics.PasswordResetsTotal.WithLabelValues("invalid_token").Inc()
		return domainErrors.ErrTokenMalformed
	}

	user, err := s.db.FindUserByResetToken(ctx, token)
	if err != nil {
		if errors.Is(err, domainErrors.ErrUserNotFound) {
			metrics.PasswordResetsTotal.WithLabelValues("invalid_token").Inc()
			return domainErrors.ErrTokenInvalidOrExpired
		}
		metrics.PasswordResetsTotal.WithLabelValues("error").Inc()
		return err
	}
	if user.PasswordResetExpiresAt == nil || s.now().After(user.PasswordResetExpiresAt.UTC()) {
		metrics.PasswordResetsTotal.WithLabelValues("invalid_token").Inc()
		return domainErrors.ErrTokenInvalidOrExpired
	}

	hash, err := s.passwords.HashPassword(newPassword)
	if err != nil {
		metrics.PasswordResetsTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("failed to hash password: %w", err)
	}

	// Single update: new hash in, token and expiry out.
	if err := s.db.ResetUserPassword(ctx, user.ID, hash); err != nil {
		metrics.PasswordResetsTotal.WithLabelValues("error").Inc()
		return err
	}
	metrics.PasswordResetsTotal.WithLabelValues("success").Inc()

	if err := s.mailer.SendPasswordResetConfirmationEmail(ctx, user.Email); err != nil {
		s.logger.Error("failed to send password reset confirmation",
			zap.String("email", user.Email),
			zap.Error(err))
	}

	s.logger.Info("password reset completed", zap.Int64("user_id", user.ID))
	return nil
}

// File: internal/domain/errors/errors.go
package errors

import (
	"errors"
	"fmt"
	"time"
)

var (
	// Generic errors
	ErrInternal     = errors.New("internal server error")
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("resource not found")
	ErrConflict     = errors.New("resource already exists")
	ErrUnauthorized = errors.New("unauthorized")
	ErrUnavailable  = errors.New("service unavailable")

	// User errors
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailExists        = errors.New("user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Verification and reset errors. Token lookup miss and token expiry share
	// one sentinel so the caller-facing message never reveals whether a token
	// ever existed.
	ErrEmailAlreadyVerified  = errors.New("email already verified")
	ErrCodeInvalidOrExpired  = errors.New("invalid or expired code")
	ErrTokenInvalidOrExpired = errors.New("invalid or expired token")
	ErrTokenMalformed        = errors.New("malformed reset token")

	// Manager errors
	ErrManagerNotFound  = errors.New("manager not found")
	ErrTelegramIDExists = errors.New("telegram chat id already registered")
)

// RateLimitError reports an exhausted password-reset window together with the
// cool-down the caller must wait out.
type RateLimitError struct {
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("too many password reset requests, try again in %d minutes", e.RetryAfterMinutes())
}

// RetryAfterMinutes rounds the cool-down up to whole minutes.
func (e *RateLimitError) RetryAfterMinutes() int {
	m := int((e.RetryAfter + time.Minute - 1) / time.Minute)
	if m < 1 {
		m = 1
	}
	return m
}

// IsRateLimited reports whether err carries a RateLimitError.
func IsRateLimited(err error) bool {
	var rle *RateLimitError
	return errors.As(err, &rle)
}

// IsNotFound checks whether the error is a "not found" class error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrManagerNotFound)
}

// IsConflict checks whether the error is a conflict class error.
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict) ||
		errors.Is(err, ErrEmailExists) ||
		errors.Is(err, ErrEmailAlreadyVerified) ||
		errors.Is(err, ErrTelegramIDExists)
}

// IsBadRequest checks whether the error is an invalid input class error.
func IsBadRequest(err error) bool {
	return errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrCodeInvalidOrExpired) ||
		errors.Is(err, ErrTokenInvalidOrExpired) ||
		errors.Is(err, ErrTokenMalformed)
}

// IsUnauthorized checks whether the error is an authorization failure.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized) ||
		errors.Is(err, ErrInvalidCredentials)
}

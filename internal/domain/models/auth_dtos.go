// File: internal/domain/models/auth_dtos.go
package models

import "time"

// SignupRequest is the payload for POST /api/v1/auth/signup.
type SignupRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=50"`
	Lastname    string `json:"lastname" binding:"required,min=1,max=50"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=6"`
	ProfileType string `json:"profile_type" binding:"required,oneof=personal company"`
}

// LoginRequest is the payload for POST /api/v1/auth.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// SendVerificationRequest asks for a (re)send of the email verification code.
type SendVerificationRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// VerifyEmailRequest carries the 6-digit code entered by the user.
type VerifyEmailRequest struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"code" binding:"required,len=6,numeric"`
}

// RequestPasswordResetRequest is the payload for POST /api/v1/auth/password-reset/request.
type RequestPasswordResetRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetPasswordRequest carries a reset token and the replacement password.
// The token format is validated again in the service before any lookup.
type ResetPasswordRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=6"`
}

// SubmitDocumentsRequest carries the uploaded document references.
type SubmitDocumentsRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// PasswordResetReceipt reports the remaining budget after a successful
// password reset request.
type PasswordResetReceipt struct {
	RemainingAttempts int       `json:"remainingAttempts"`
	ResetTime         time.Time `json:"resetTime"`
}

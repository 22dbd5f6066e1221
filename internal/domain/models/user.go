// File: internal/domain/models/user.go
package models

import (
	"time"
)

// ProfileType distinguishes personal and company accounts.
type ProfileType string

const (
	ProfileTypePersonal ProfileType = "personal"
	ProfileTypeCompany  ProfileType = "company"
)

// User represents a row of the users table. The verification and reset pairs
// (code+expiry, token+expiry) are always set and cleared together.
type User struct {
	ID                         int64       `json:"id" db:"id"`
	Name                       string      `json:"name" db:"name"`
	Lastname                   string      `json:"lastname" db:"lastname"`
	Email                      string      `json:"email" db:"email"`
	PasswordHash               string      `json:"-" db:"password"`
	ProfileType                ProfileType `json:"profile_type" db:"profile_type"`
	EmailVerifiedAt            *time.Time  `json:"email_verified_at,omitempty" db:"email_verified_at"`
	EmailVerificationCode      *string     `json:"-" db:"email_verification_code"`
	EmailVerificationExpiresAt *time.Time  `json:"-" db:"email_verification_expires_at"`
	PasswordResetToken         *string     `json:"-" db:"password_reset_token"`
	PasswordResetExpiresAt     *time.Time  `json:"-" db:"password_reset_expires_at"`
	DocumentFrontURL           *string     `json:"document_front_url,omitempty" db:"document_front_url"`
	DocumentBackURL            *string     `json:"document_back_url,omitempty" db:"document_back_url"`
	DocumentSelfieURL          *string     `json:"document_selfie_url,omitempty" db:"document_selfie_url"`
	DocumentsSubmittedAt       *time.Time  `json:"documents_submitted_at,omitempty" db:"documents_submitted_at"`
	DocumentsVerifiedAt        *time.Time  `json:"documents_verified_at,omitempty" db:"documents_verified_at"`
	CreatedAt                  time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt                  time.Time   `json:"updated_at" db:"updated_at"`
}

// CreateUserParams carries the fields needed to insert a new user.
// Password must already be hashed by the service layer.
type CreateUserParams struct {
	Name         string
	Lastname     string
	Email        string
	PasswordHash string
	ProfileType  ProfileType
}

// UserUpdate describes a partial update keyed by column name. Absent columns
// are left untouched; a nil value clears the column. Backends reject the
// immutable columns ("id", "created_at") and stamp updated_at themselves.
type UserUpdate map[string]interface{}

// UserUpdatableColumns lists every column a partial update may touch.
var UserUpdatableColumns = map[string]struct{}{
	"name":                          {},
	"lastname":                      {},
	"email":                         {},
	"password":                      {},
	"profile_type":                  {},
	"email_verified_at":             {},
	"email_verification_code":       {},
	"email_verification_expires_at": {},
	"password_reset_token":          {},
	"password_reset_expires_at":     {},
	"document_front_url":            {},
	"document_back_url":             {},
	"document_selfie_url":           {},
	"documents_submitted_at":        {},
	"documents_verified_at":         {},
}

// UserResponse is the user shape returned by API endpoints. Credential and
// token material never leaves the service.
type UserResponse struct {
	ID                   int64       `json:"id"`
	Name                 string      `json:"name"`
	Lastname             string      `json:"lastname"`
	Email                string      `json:"email"`
	ProfileType          ProfileType `json:"profile_type"`
	EmailVerifiedAt      *time.Time  `json:"email_verified_at"`
	DocumentsSubmittedAt *time.Time  `json:"documents_submitted_at"`
	DocumentsVerifiedAt  *time.Time  `json:"documents_verified_at"`
	CreatedAt            time.Time   `json:"created_at"`
	UpdatedAt            time.Time   `json:"updated_at"`
}

// ToResponse converts a User model to its API representation.
func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:                   u.ID,
		Name:                 u.Name,
		Lastname:             u.Lastname,
		Email:                u.Email,
		ProfileType:          u.ProfileType,
		EmailVerifiedAt:      u.EmailVerifiedAt,
		DocumentsSubmittedAt: u.DocumentsSubmittedAt,
		DocumentsVerifiedAt:  u.DocumentsVerifiedAt,
		CreatedAt:            u.CreatedAt,
		UpdatedAt:            u.UpdatedAt,
	}
}

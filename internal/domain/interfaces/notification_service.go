// File: internal/domain/interfaces/notification_service.go
package interfaces

import "context"

// Mailer delivers transactional email. Only the verification-code send is
// fatal to its caller; confirmation sends are best effort.
type Mailer interface {
	SendVerificationEmail(ctx context.Context, email, code string, ttlMinutes int) error
	SendPasswordResetEmail(ctx context.Context, email, token string) error
	SendPasswordResetConfirmationEmail(ctx context.Context, email string) error
	SendDocumentApprovalEmail(ctx context.Context, email, name string) error
	SendDocumentDenialEmail(ctx context.Context, email, name string) error
}

// DocumentSubmission is the payload broadcast to managers when a user
// submits KYC documents.
type DocumentSubmission struct {
	Email     string
	Name      string
	FrontURL  string
	BackURL   string
	SelfieURL string
}

// TelegramNotifier broadcasts moderation events to the registered managers.
type TelegramNotifier interface {
	SendDocumentSubmission(ctx context.Context, sub DocumentSubmission) error
}

// File: internal/domain/interfaces/password_service.go
package interfaces

// PasswordService hides the concrete one-way hash behind an interface so the
// work factor and algorithm stay a detail of the security package.
type PasswordService interface {
	HashPassword(password string) (string, error)
	// CheckPasswordHash performs a constant-time comparison.
	CheckPasswordHash(password, hash string) (bool, error)
}

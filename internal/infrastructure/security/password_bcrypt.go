// File: internal/infrastructure/security/password_bcrypt.go
package security

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/lolmatina/coincash-back/internal/domain/interfaces"
)

// bcryptCost is the fixed work factor for credential hashing.
const bcryptCost = 10

// bcryptPasswordService implements interfaces.PasswordService using bcrypt.
type bcryptPasswordService struct {
	cost int
}

// NewBcryptPasswordService creates a PasswordService with the standard cost.
func NewBcryptPasswordService() interfaces.PasswordService {
	return &bcryptPasswordService{cost: bcryptCost}
}

// HashPassword creates a bcrypt hash of the password.
func (s *bcryptPasswordService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPasswordHash verifies a password against a stored bcrypt hash.
// The comparison inside bcrypt is constant time.
func (s *bcryptPasswordService) CheckPasswordHash(password, hash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return false, nil
		}
		return false, fmt.Errorf("failed to compare password hash: %w", err)
	}
	return true, nil
}

var _ interfaces.PasswordService = (*bcryptPasswordService)(nil)

// File: internal/infrastructure/security/verification_utils.go
package security

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"math/big"
	"regexp"
)

// codeRange covers 100000..999999 inclusive.
var codeRange = big.NewInt(900000)

// resetTokenPattern matches a well-formed reset token: 64 lowercase hex chars.
var resetTokenPattern = regexp.MustCompile(`^[a-f0-9]{64}$`)

// GenerateVerificationCode returns a uniformly random 6-digit code as a
// string. The range starts at 100000, so the code itself has no leading
// zero, but it is stored and compared as a string throughout.
func GenerateVerificationCode() (string, error) {
	n, err := rand.Int(rand.Reader, codeRange)
	if err != nil {
		return "", fmt.Errorf("failed to generate verification code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

// GenerateResetToken returns 32 bytes of cryptographically secure randomness
// encoded as 64 lowercase hex characters.
func GenerateResetToken() (string, error) {
	b := make([]byte, 32)
	if _, err := io.ReadFull(rand.Reader, b); err != nil {
		return "", fmt.Errorf("failed to read random bytes for token: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// ValidResetTokenFormat reports whether token looks like an issued reset
// token. Callers must check this before any database lookup.
func ValidResetTokenFormat(token string) bool {
	return resetTokenPattern.MatchString(token)
}

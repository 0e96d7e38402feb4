// Package auth hashes and checks the confirmation codes that users
// exchange for access tokens.
package auth

import (
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// NewConfirmationCode returns a fresh random code.
func NewConfirmationCode() string {
	return uuid.NewString()
}

// HashCode creates a bcrypt hash from the given plaintext code.
func HashCode(code string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

// VerifyCode checks the provided plaintext code against the stored hash.
// An empty hash never matches.
func VerifyCode(hashedCode, providedCode string) error {
	if hashedCode == "" {
		return bcrypt.ErrMismatchedHashAndPassword
	}
	return bcrypt.CompareHashAndPassword([]byte(hashedCode), []byte(providedCode))
}

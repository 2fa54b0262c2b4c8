package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// bcrypt ignores everything past 72 bytes, so longer passwords would
// silently compare equal on their prefix. Reject them outright.
const maxPasswordLength = 72

// HashPassword creates a bcrypt hash of the password.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", errors.New("password cannot be empty")
	}
	if len(password) > maxPasswordLength {
		return "", errors.New("password exceeds maximum length")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	return string(hash), nil
}

// VerifyPassword checks a password against a bcrypt hash.
// A malformed hash reports false rather than leaking why.
func VerifyPassword(hash, password string) bool {
	if len(password) > maxPasswordLength {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// Package auth provides credential handling: password hashing, access
// tokens, and refresh token families.
package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// HashPassword hashes an account password with bcrypt at the default cost.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// CheckPassword compares a plain text password against a stored bcrypt
// hash. Returns nil on match.
func CheckPassword(password, hash string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

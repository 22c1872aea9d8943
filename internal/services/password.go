package services

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// bcryptCost matches the adaptive cost used for both passwords and OTP codes.
const bcryptCost = 10

func HashPassword(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword reports whether plaintext matches the stored hash. A mismatch
// is not an error; malformed hashes simply fail the check.
func CheckPassword(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}

package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// BcryptCost matches the cost the existing member credentials were
// hashed with; raising it invalidates no hashes but slows logins.
const BcryptCost = 10

var ErrInvalidCredentials = errors.New("invalid credentials")

// HashPassword hashes a plaintext password for storage.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword compares a stored hash against a plaintext candidate.
func VerifyPassword(hash, password string) error {
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return ErrInvalidCredentials
	}
	return nil
}

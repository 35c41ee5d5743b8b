package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/spec-kit/tenant-service/pkg/util"
)

// bcrypt only reads the first 72 bytes of input. Longer passwords are
// rejected outright instead of being silently truncated.
const maxPasswordBytes = 72

// ErrPasswordTooLong is returned when the plaintext exceeds what bcrypt
// can hash.
var ErrPasswordTooLong = errors.New("password exceeds 72 bytes")

// HashPassword hashes a plaintext password with the configured cost.
func HashPassword(password string, cost int) (string, error) {
	if len(password) > maxPasswordBytes {
		return "", ErrPasswordTooLong
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// VerifyPassword checks a plaintext password against its stored hash.
// Mismatches and corrupt hashes report false without an error. A hash
// written by a scheme this build cannot verify is a configuration
// problem, not a credential failure, and is surfaced as such.
func VerifyPassword(hashed, plain string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	var versionErr bcrypt.HashVersionTooNewError
	if errors.As(err, &versionErr) {
		return false, apperrors.NewConfiguration("unsupported password hash scheme")
	}
	return false, nil
}

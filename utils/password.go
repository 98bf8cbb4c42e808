package utils

import (
	"errors"
	"fmt"

	"github.com/matthewhartstonge/argon2"
)

// passwordHasher uses argon2id with the library defaults.
var passwordHasher = argon2.DefaultConfig()

// HashPassword returns the encoded argon2id hash of password.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", errors.New("password is empty")
	}
	encoded, err := passwordHasher.HashEncoded([]byte(password))
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(encoded), nil
}

// VerifyPassword reports whether password matches encodedHash. A hash that
// cannot be decoded is an error, not a mismatch.
func VerifyPassword(encodedHash, password string) (bool, error) {
	raw, err := argon2.Decode([]byte(encodedHash))
	if err != nil {
		return false, fmt.Errorf("decode password hash: %w", err)
	}
	return raw.Verify([]byte(password))
}

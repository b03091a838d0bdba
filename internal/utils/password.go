package utils

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
)

// PasswordAlphabet is the character set used by [GeneratePassword].
const PasswordAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*"

// DefaultPasswordLength is the length of a generated password when none is given.
const DefaultPasswordLength = 16

var ErrInvalidPasswordLength = errors.New("password length must be positive")

// GeneratePassword returns a uniformly random password of length n drawn
// from [PasswordAlphabet] using crypto/rand.
func GeneratePassword(n int) (string, error) {
	if n <= 0 {
		return "", ErrInvalidPasswordLength
	}

	max := big.NewInt(int64(len(PasswordAlphabet)))
	out := make([]byte, n)
	for i := range out {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("generate password: %w", err)
		}
		out[i] = PasswordAlphabet[idx.Int64()]
	}

	return string(out), nil
}

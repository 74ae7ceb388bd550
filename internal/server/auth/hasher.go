// Package auth implements the authentication core: password hashing, the
// signing-key store, and the JWT codec.
package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// bcrypt silently ignores input past 72 bytes; reject instead of truncating.
const maxPasswordLength = 72

var ErrPasswordTooLong = errors.New("password exceeds 72 bytes")

// PasswordHasher wraps bcrypt with a configured work factor. The salt is
// embedded in the produced hash, so Verify needs no side channel.
type PasswordHasher struct {
	cost int
}

func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &PasswordHasher{cost: cost}
}

// Hash produces a salted one-way hash of password. CPU-bound by design;
// callers should not hold transactions open across this call.
func (h *PasswordHasher) Hash(password string) (string, error) {
	if len(password) > maxPasswordLength {
		return "", ErrPasswordTooLong
	}
	b, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("hash error: %w", err)
	}
	return string(b), nil
}

// Verify reports whether password matches the stored hash.
func (h *PasswordHasher) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// dummyHash is a fixed bcrypt hash of an unguessable value. DummyVerify runs
// a comparison against it so the login path costs about the same whether or
// not the email exists.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

func (h *PasswordHasher) DummyVerify(password string) {
	_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(password))
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TaskNest Contributors

package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"

	"github.com/samber/oops"
	"golang.org/x/crypto/bcrypt"
)

// BcryptCost is the adaptive work factor for password hashing.
const BcryptCost = 12

// ErrEmptyPassword is returned when attempting to hash an empty password.
var ErrEmptyPassword = oops.Code("AUTH_EMPTY_PASSWORD").Errorf("password cannot be empty")

// PasswordHasher provides password hashing and verification.
type PasswordHasher interface {
	// Hash produces a salted hash of the password.
	Hash(password string) (string, error)

	// Verify checks if the password matches the hash.
	// Returns (true, nil) on match, (false, nil) on mismatch, or error on invalid hash.
	Verify(password, hash string) (bool, error)
}

// BcryptHasher implements PasswordHasher using bcrypt over a peppered
// pre-hash. The pepper is a server-wide secret appended to every password
// before hashing, distinct from bcrypt's per-record salt: a leaked database
// alone is not enough to attack the hashes offline.
type BcryptHasher struct {
	pepper []byte
	cost   int
}

// NewBcryptHasher creates a BcryptHasher. An unconfigured pepper is a
// deployment error and must prevent startup, so it fails construction.
func NewBcryptHasher(pepper string) (*BcryptHasher, error) {
	if pepper == "" {
		return nil, oops.Code("CONFIG_INVALID").Errorf("password pepper is not configured")
	}
	return &BcryptHasher{pepper: []byte(pepper), cost: BcryptCost}, nil
}

// prehash binds the pepper to the password with HMAC-SHA256 and encodes the
// result. bcrypt only reads the first 72 bytes of its input; hashing first
// keeps long passwords and an arbitrarily long pepper inside that limit.
// Base64 keeps NUL bytes out of the bcrypt input.
func (h *BcryptHasher) prehash(password string) []byte {
	mac := hmac.New(sha256.New, h.pepper)
	mac.Write([]byte(password))
	sum := mac.Sum(nil)

	encoded := make([]byte, base64.RawStdEncoding.EncodedLen(len(sum)))
	base64.RawStdEncoding.Encode(encoded, sum)
	return encoded
}

// Hash produces a bcrypt hash of the peppered password.
func (h *BcryptHasher) Hash(password string) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}

	hash, err := bcrypt.GenerateFromPassword(h.prehash(password), h.cost)
	if err != nil {
		return "", oops.Code("AUTH_HASH_FAILED").Wrap(err)
	}
	return string(hash), nil
}

// Verify checks if the password matches the hash. A mismatch is
// (false, nil); only a malformed stored hash produces an error.
func (h *BcryptHasher) Verify(password, hash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), h.prehash(password))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, oops.Code("AUTH_INVALID_HASH").Wrap(err)
}

// Compile-time interface check.
var _ PasswordHasher = (*BcryptHasher)(nil)

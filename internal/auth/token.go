// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TaskNest Contributors

package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
)

// TokenTTL is the lifetime of an issued session token.
const TokenTTL = 7 * 24 * time.Hour

// Identity is the decoded content of a verified session token.
type Identity struct {
	UserID ulid.ULID
	Email  string
}

// sessionClaims is the JWT payload for a session token. The user ID rides
// in the registered subject claim.
type sessionClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies stateless signed session tokens.
// Tokens are HMAC-SHA256 signed; validity is determined purely by the
// signature and expiry at verification time, nothing is persisted.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenService creates a TokenService. An unset signing secret is a
// deployment error and must prevent startup, so it fails construction.
func NewTokenService(secret string) (*TokenService, error) {
	if secret == "" {
		return nil, oops.Code("CONFIG_INVALID").Errorf("token signing secret is not configured")
	}
	return &TokenService{
		secret: []byte(secret),
		ttl:    TokenTTL,
		now:    time.Now,
	}, nil
}

// Issue creates a signed token embedding the user's identity.
func (s *TokenService) Issue(userID ulid.ULID, email string) (string, error) {
	if userID.Compare(ulid.ULID{}) == 0 {
		return "", oops.Code("TOKEN_ISSUE_FAILED").Errorf("user ID cannot be zero")
	}
	if email == "" {
		return "", oops.Code("TOKEN_ISSUE_FAILED").Errorf("email cannot be empty")
	}

	now := s.now()
	claims := sessionClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", oops.Code("TOKEN_ISSUE_FAILED").
			With("operation", "sign token").
			Wrap(err)
	}
	return token, nil
}

// Verify checks a token's signature and expiry and returns the embedded
// identity. Expired-but-well-formed tokens fail with TOKEN_EXPIRED;
// malformed or forged tokens fail with TOKEN_INVALID, since callers may
// respond differently.
func (s *TokenService) Verify(token string) (*Identity, error) {
	if token == "" {
		return nil, oops.Code("TOKEN_INVALID").Errorf("token cannot be empty")
	}

	claims := &sessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims,
		func(*jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, oops.Code("TOKEN_EXPIRED").Errorf("token has expired")
		}
		return nil, oops.Code("TOKEN_INVALID").Wrap(err)
	}
	if !parsed.Valid {
		return nil, oops.Code("TOKEN_INVALID").Errorf("token is not valid")
	}

	userID, err := ulid.Parse(claims.Subject)
	if err != nil {
		return nil, oops.Code("TOKEN_INVALID").
			With("operation", "parse subject").
			Wrap(err)
	}
	if claims.Email == "" {
		return nil, oops.Code("TOKEN_INVALID").Errorf("token is missing the email claim")
	}

	return &Identity{UserID: userID, Email: claims.Email}, nil
}

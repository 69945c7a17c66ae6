package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/localmart/merchant-platform/internal/core/domain"
)

// DefaultTokenTTL is the lifetime of issued tokens when none is configured.
const DefaultTokenTTL = 24 * time.Hour

// tokenClaims is the wire shape of an issued token.
type tokenClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// TokenCodec issues and validates HS256 tokens carrying identity claims.
//
// There is no key id: rotating the secret invalidates every token issued
// under the previous one.
type TokenCodec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenCodec builds a codec. An empty secret or a non-positive ttl is a
// configuration error.
func NewTokenCodec(secret string, ttl time.Duration) (*TokenCodec, error) {
	if secret == "" {
		return nil, errors.New("token codec: signing secret is required")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("token codec: invalid ttl %s", ttl)
	}
	return &TokenCodec{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// WithClock returns a copy of the codec reading time from now.
func (c *TokenCodec) WithClock(now func() time.Time) *TokenCodec {
	cp := *c
	cp.now = now
	return &cp
}

// Issue signs claims. IssuedAt and ExpiresAt on the input are ignored and
// replaced with the current time and current time + ttl.
func (c *TokenCodec) Issue(claims domain.IdentityClaims) (string, error) {
	if claims.UserID == "" || !claims.Role.Valid() {
		return "", fmt.Errorf("issue token: incomplete claims for user %q", claims.UserID)
	}

	iat := c.now().UTC().Truncate(time.Second)
	tc := tokenClaims{
		UserID: claims.UserID,
		Email:  claims.Email,
		Role:   string(claims.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   claims.UserID,
			IssuedAt:  jwt.NewNumericDate(iat),
			ExpiresAt: jwt.NewNumericDate(iat.Add(c.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, tc).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return signed, nil
}

// Validate verifies the signature, then the expiry. Forged or malformed
// tokens fail with domain.ErrInvalidToken; genuine tokens past their expiry
// fail with domain.ErrExpiredToken.
func (c *TokenCodec) Validate(token string) (*domain.IdentityClaims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithStrictDecoding(),
		jwt.WithTimeFunc(c.now),
	)

	var tc tokenClaims
	parsed, err := parser.ParseWithClaims(token, &tc, func(t *jwt.Token) (interface{}, error) {
		return c.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrExpiredToken
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidToken, err)
	}
	if !parsed.Valid {
		return nil, domain.ErrInvalidToken
	}

	role := domain.Role(tc.Role)
	if tc.UserID == "" || !role.Valid() || tc.IssuedAt == nil {
		return nil, fmt.Errorf("%w: missing required claims", domain.ErrInvalidToken)
	}

	return &domain.IdentityClaims{
		UserID:    tc.UserID,
		Email:     tc.Email,
		Role:      role,
		IssuedAt:  tc.IssuedAt.Time.UTC(),
		ExpiresAt: tc.ExpiresAt.Time.UTC(),
	}, nil
}

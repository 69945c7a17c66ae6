package service

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/localmart/merchant-platform/internal/core/domain"
)

var codecEpoch = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestCodec(t *testing.T, now *time.Time) *TokenCodec {
	t.Helper()
	codec, err := NewTokenCodec("test-signing-secret-0123456789", DefaultTokenTTL)
	if err != nil {
		t.Fatalf("NewTokenCodec: %v", err)
	}
	return codec.WithClock(func() time.Time { return *now })
}

func TestNewTokenCodec_Validation(t *testing.T) {
	if _, err := NewTokenCodec("", time.Hour); err == nil {
		t.Fatalf("expected error for empty secret")
	}
	if _, err := NewTokenCodec("secret", 0); err == nil {
		t.Fatalf("expected error for zero ttl")
	}
}

func TestTokenCodec_RoundTrip(t *testing.T) {
	now := codecEpoch
	codec := newTestCodec(t, &now)

	in := domain.IdentityClaims{UserID: "g-123", Email: "ana@example.com", Role: domain.RoleMerchant}
	token, err := codec.Issue(in)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	now = codecEpoch.Add(DefaultTokenTTL - time.Second)
	got, err := codec.Validate(token)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if got.UserID != in.UserID || got.Email != in.Email || got.Role != in.Role {
		t.Fatalf("claims mismatch: got %+v, want %+v", got, in)
	}
	if !got.IssuedAt.Equal(codecEpoch) {
		t.Fatalf("issued_at = %s, want %s", got.IssuedAt, codecEpoch)
	}
	if !got.ExpiresAt.Equal(codecEpoch.Add(DefaultTokenTTL)) {
		t.Fatalf("expires_at = %s, want %s", got.ExpiresAt, codecEpoch.Add(DefaultTokenTTL))
	}
}

func TestTokenCodec_DeterministicForSameInstant(t *testing.T) {
	now := codecEpoch
	codec := newTestCodec(t, &now)
	claims := domain.IdentityClaims{UserID: "g-1", Email: "a@example.com", Role: domain.RoleCustomer}

	a, _ := codec.Issue(claims)
	b, _ := codec.Issue(claims)
	if a != b {
		t.Fatalf("expected identical tokens for identical claims and time")
	}

	now = now.Add(time.Second)
	c, _ := codec.Issue(claims)
	if a == c {
		t.Fatalf("expected different token after the clock moved")
	}
}

func TestTokenCodec_ExpiredAtBoundary(t *testing.T) {
	now := codecEpoch
	codec := newTestCodec(t, &now)

	token, err := codec.Issue(domain.IdentityClaims{UserID: "g-1", Role: domain.RoleMerchant})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	for _, at := range []time.Time{codecEpoch.Add(DefaultTokenTTL), codecEpoch.Add(48 * time.Hour)} {
		now = at
		if _, err := codec.Validate(token); !errors.Is(err, domain.ErrExpiredToken) {
			t.Fatalf("at %s: expected ErrExpiredToken, got %v", at, err)
		}
	}
}

func TestTokenCodec_AnyByteMutationIsInvalid(t *testing.T) {
	now := codecEpoch
	codec := newTestCodec(t, &now)

	token, err := codec.Issue(domain.IdentityClaims{UserID: "g-42", Email: "x@example.com", Role: domain.RoleMerchant})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	for i := 0; i < len(token); i++ {
		mutated := []byte(token)
		if mutated[i] == 'A' {
			mutated[i] = 'B'
		} else {
			mutated[i] = 'A'
		}
		if _, err := codec.Validate(string(mutated)); !errors.Is(err, domain.ErrInvalidToken) {
			t.Fatalf("byte %d: expected ErrInvalidToken, got %v", i, err)
		}
	}
}

func TestTokenCodec_ForgedExpiredTokenIsInvalidNotExpired(t *testing.T) {
	now := codecEpoch
	codec := newTestCodec(t, &now)

	other, _ := NewTokenCodec("a-different-secret-0123456789", time.Hour)
	forged, err := other.WithClock(func() time.Time { return codecEpoch }).Issue(domain.IdentityClaims{UserID: "g-1", Role: domain.RoleAdmin})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	now = codecEpoch.Add(72 * time.Hour)
	if _, err := codec.Validate(forged); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for forged expired token, got %v", err)
	}
}

func TestTokenCodec_RejectsMalformedAndUnsigned(t *testing.T) {
	now := codecEpoch
	codec := newTestCodec(t, &now)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, tokenClaims{
		UserID: "g-1",
		Role:   string(domain.RoleAdmin),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(codecEpoch),
			ExpiresAt: jwt.NewNumericDate(codecEpoch.Add(time.Hour)),
		},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none: %v", err)
	}

	for name, token := range map[string]string{
		"empty":     "",
		"garbage":   "not-a-token",
		"two parts": "abc.def",
		"alg none":  unsigned,
	} {
		if _, err := codec.Validate(token); !errors.Is(err, domain.ErrInvalidToken) {
			t.Fatalf("%s: expected ErrInvalidToken, got %v", name, err)
		}
	}
}

func TestTokenCodec_RejectsMissingClaims(t *testing.T) {
	now := codecEpoch
	codec := newTestCodec(t, &now)
	secret := codec.secret

	cases := map[string]jwt.Claims{
		"no user_id": tokenClaims{
			Role: string(domain.RoleMerchant),
			RegisteredClaims: jwt.RegisteredClaims{
				IssuedAt:  jwt.NewNumericDate(codecEpoch),
				ExpiresAt: jwt.NewNumericDate(codecEpoch.Add(time.Hour)),
			},
		},
		"unknown role": tokenClaims{
			UserID: "g-1",
			Role:   "superuser",
			RegisteredClaims: jwt.RegisteredClaims{
				IssuedAt:  jwt.NewNumericDate(codecEpoch),
				ExpiresAt: jwt.NewNumericDate(codecEpoch.Add(time.Hour)),
			},
		},
		"no exp": jwt.MapClaims{
			"user_id": "g-1",
			"role":    string(domain.RoleMerchant),
			"iat":     codecEpoch.Unix(),
		},
	}

	for name, claims := range cases {
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
		if err != nil {
			t.Fatalf("%s: sign: %v", name, err)
		}
		if _, err := codec.Validate(token); !errors.Is(err, domain.ErrInvalidToken) {
			t.Fatalf("%s: expected ErrInvalidToken, got %v", name, err)
		}
	}
}

func TestTokenCodec_IssueRejectsIncompleteClaims(t *testing.T) {
	now := codecEpoch
	codec := newTestCodec(t, &now)

	if _, err := codec.Issue(domain.IdentityClaims{Role: domain.RoleMerchant}); err == nil {
		t.Fatalf("expected error for missing user id")
	}
	if _, err := codec.Issue(domain.IdentityClaims{UserID: "g-1", Role: "root"}); err == nil {
		t.Fatalf("expected error for unknown role")
	}
}

package ports

import (
	"context"

	"github.com/localmart/merchant-platform/internal/core/domain"
)

// CredentialVerifier exchanges a provider access token for a verified profile.
type CredentialVerifier interface {
	Verify(ctx context.Context, accessToken string) (*domain.ExternalProfile, error)
}

// LoginThrottle bounds login attempts per caller key (client IP).
type LoginThrottle interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// AuthService is the login use case.
type AuthService interface {
	// Login verifies the provider token, reconciles the user and issues a token.
	Login(ctx context.Context, accessToken string) (string, *domain.User, error)
	// CurrentUser returns the stored record of an authenticated principal.
	CurrentUser(ctx context.Context, id domain.AuthorizedIdentity) (*domain.User, error)
	// UpdateProfile edits the caller's display name or profile image.
	UpdateProfile(ctx context.Context, id domain.AuthorizedIdentity, update domain.ProfileUpdate) (*domain.User, error)
}

// AccessGuard authorizes a raw bearer token against a role rule.
type AccessGuard interface {
	Authorize(ctx context.Context, rawToken string, rule domain.RoleRule) (*domain.AuthorizedIdentity, error)
}

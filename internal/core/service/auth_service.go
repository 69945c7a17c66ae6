package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/localmart/merchant-platform/internal/core/domain"
	"github.com/localmart/merchant-platform/internal/core/ports"
)

// TokenIssuer signs identity claims.
type TokenIssuer interface {
	Issue(claims domain.IdentityClaims) (string, error)
}

// AuthService implements provider login.
type AuthService struct {
	verifier   ports.CredentialVerifier
	reconciler *Reconciler
	tokens     TokenIssuer
	users      ports.UserRepository
	loginRole  domain.Role
	log        zerolog.Logger
	now        func() time.Time
}

// NewAuthService builds the login use case. loginRole is the role requested
// for every login through this service; it is never taken from the caller.
func NewAuthService(
	verifier ports.CredentialVerifier,
	reconciler *Reconciler,
	tokens TokenIssuer,
	users ports.UserRepository,
	loginRole domain.Role,
	log zerolog.Logger,
) *AuthService {
	if !loginRole.Valid() {
		loginRole = domain.RoleMerchant
	}
	return &AuthService{
		verifier:   verifier,
		reconciler: reconciler,
		tokens:     tokens,
		users:      users,
		loginRole:  loginRole,
		log:        log,
		now:        time.Now,
	}
}

// Login verifies accessToken with the provider, reconciles the user and
// returns a freshly issued token with the stored user record.
func (s *AuthService) Login(ctx context.Context, accessToken string) (string, *domain.User, error) {
	if accessToken == "" {
		return "", nil, fmt.Errorf("%w: access token is required", domain.ErrInvalidRequest)
	}

	profile, err := s.verifier.Verify(ctx, accessToken)
	if err != nil {
		return "", nil, err
	}

	user, err := s.reconciler.Reconcile(ctx, *profile, s.loginRole)
	if err != nil {
		return "", nil, err
	}

	token, err := s.tokens.Issue(domain.IdentityClaims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
	})
	if err != nil {
		s.log.Error().Err(err).Str("user_id", user.ID).Str("role", string(user.Role)).Msg("failed to issue token")
		return "", nil, err
	}

	s.log.Info().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("login succeeded")
	return token, user, nil
}

// CurrentUser loads the user behind an authorized identity.
func (s *AuthService) CurrentUser(ctx context.Context, id domain.AuthorizedIdentity) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, id.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUnauthenticated
		}
		return nil, fmt.Errorf("current user: %w", err)
	}
	return user, nil
}

// UpdateProfile edits the caller's own profile. Role, email and activation
// are not editable here.
func (s *AuthService) UpdateProfile(ctx context.Context, id domain.AuthorizedIdentity, update domain.ProfileUpdate) (*domain.User, error) {
	if update.Empty() {
		return nil, fmt.Errorf("%w: no profile fields to update", domain.ErrInvalidRequest)
	}

	user, err := s.users.UpdateProfile(ctx, id.UserID, update, s.now().UTC())
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUnauthenticated
		}
		return nil, fmt.Errorf("update profile: %w", err)
	}

	s.log.Info().Str("user_id", user.ID).Msg("profile updated")
	return user, nil
}

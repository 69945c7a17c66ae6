package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/localmart/merchant-platform/internal/core/domain"
	"github.com/localmart/merchant-platform/internal/core/ports"
)

// TokenValidator validates a signed token and returns its claims.
type TokenValidator interface {
	Validate(token string) (*domain.IdentityClaims, error)
}

// Guard resolves a bearer token into an authorized identity.
type Guard struct {
	tokens TokenValidator
	users  ports.UserRepository
	log    zerolog.Logger
}

func NewGuard(tokens TokenValidator, users ports.UserRepository, log zerolog.Logger) *Guard {
	return &Guard{tokens: tokens, users: users, log: log}
}

// Authorize validates rawToken, loads the user it names and checks the
// user's current role against rule.
//
// Every credential problem, including an unknown or deactivated user, is
// reported as domain.ErrUnauthenticated (wrapping the cause). A role that
// fails rule is domain.ErrForbidden.
func (g *Guard) Authorize(ctx context.Context, rawToken string, rule domain.RoleRule) (*domain.AuthorizedIdentity, error) {
	if rawToken == "" {
		return nil, fmt.Errorf("%w: missing token", domain.ErrUnauthenticated)
	}

	claims, err := g.tokens.Validate(rawToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrUnauthenticated, err)
	}

	user, err := g.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, fmt.Errorf("%w: unknown principal", domain.ErrUnauthenticated)
		}
		return nil, fmt.Errorf("authorize: load user: %w", err)
	}
	if !user.IsActive {
		return nil, fmt.Errorf("%w: inactive principal", domain.ErrUnauthenticated)
	}

	if !rule.Allows(user.Role) {
		g.log.Debug().
			Str("user_id", user.ID).
			Str("role", string(user.Role)).
			Stringer("required", rule).
			Msg("role check failed")
		return nil, fmt.Errorf("%w: role %s, requires %s", domain.ErrForbidden, user.Role, rule)
	}

	return &domain.AuthorizedIdentity{UserID: user.ID, Email: user.Email, Role: user.Role}, nil
}

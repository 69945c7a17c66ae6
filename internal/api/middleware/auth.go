package middleware

import (
	"errors"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/localmart/merchant-platform/internal/core/domain"
	"github.com/localmart/merchant-platform/internal/core/ports"
	"github.com/localmart/merchant-platform/internal/pkg/metrics"
)

// IdentityKey is the echo context key holding the *domain.AuthorizedIdentity
// of an authorized request.
const IdentityKey = "identity"

// Auth authorizes the bearer token of every request against rule and injects
// the resulting identity into the context. Failures are returned to the
// HTTP error handler untouched.
func Auth(guard ports.AccessGuard, rule domain.RoleRule) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, err := guard.Authorize(c.Request().Context(), bearerToken(c), rule)
			if err != nil {
				metrics.GuardDecisionsTotal.WithLabelValues(outcome(err)).Inc()
				return err
			}
			metrics.GuardDecisionsTotal.WithLabelValues("allowed").Inc()

			c.Set(IdentityKey, id)
			return next(c)
		}
	}
}

// bearerToken returns the token of an "Authorization: Bearer <token>" header,
// or "" when the header is absent or uses another scheme.
func bearerToken(c echo.Context) string {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

func outcome(err error) string {
	switch {
	case errors.Is(err, domain.ErrUnauthenticated):
		return "unauthenticated"
	case errors.Is(err, domain.ErrForbidden):
		return "forbidden"
	default:
		return "error"
	}
}

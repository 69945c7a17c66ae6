package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/localmart/merchant-platform/internal/api/middleware"
	"github.com/localmart/merchant-platform/internal/core/domain"
)

// identityFrom returns the identity injected by the Auth middleware. A
// missing identity means the route was registered without the middleware.
func identityFrom(c echo.Context) (domain.AuthorizedIdentity, error) {
	id, ok := c.Get(middleware.IdentityKey).(*domain.AuthorizedIdentity)
	if !ok || id == nil || id.UserID == "" {
		return domain.AuthorizedIdentity{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return *id, nil
}

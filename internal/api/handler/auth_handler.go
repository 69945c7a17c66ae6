package handler

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/localmart/merchant-platform/internal/core/domain"
	"github.com/localmart/merchant-platform/internal/core/ports"
	"github.com/localmart/merchant-platform/internal/pkg/metrics"
)

// LoginURLBuilder builds the identity provider consent URL.
type LoginURLBuilder interface {
	LoginURL(state string) string
}

type AuthHandler struct {
	authService ports.AuthService
	throttle    ports.LoginThrottle
	urls        LoginURLBuilder
	log         zerolog.Logger
}

func NewAuthHandler(authService ports.AuthService, throttle ports.LoginThrottle, urls LoginURLBuilder, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, throttle: throttle, urls: urls, log: log}
}

type loginRequest struct {
	AccessToken string `json:"access_token"`
}

type updateProfileRequest struct {
	DisplayName  *string `json:"display_name"  validate:"omitempty,min=1,max=100"`
	ProfileImage *string `json:"profile_image" validate:"omitempty,url"`
}

type authResponse struct {
	Token string       `json:"token,omitempty"`
	User  *domain.User `json:"user,omitempty"`
}

type loginURLResponse struct {
	URL   string `json:"url"`
	State string `json:"state"`
}

// Login exchanges a Google access token for a platform token.
//
// @Summary      Login with Google
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Google OAuth access token"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      429   {object}  errorResponse
// @Failure      503   {object}  errorResponse
// @Router       /auth/google [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		metrics.LoginsTotal.WithLabelValues("invalid").Inc()
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	ctx := c.Request().Context()
	allowed, err := h.throttle.Allow(ctx, c.RealIP())
	if err != nil {
		h.log.Warn().Err(err).Msg("login throttle unavailable, allowing attempt")
		allowed = true
	}
	if !allowed {
		metrics.LoginsTotal.WithLabelValues("throttled").Inc()
		return domain.ErrTooManyAttempts
	}

	token, user, err := h.authService.Login(ctx, req.AccessToken)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues(loginResult(err)).Inc()
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, authResponse{Token: token, User: user})
}

// LoginURL returns the Google consent URL for the implicit flow.
//
// @Summary      Google consent URL
// @Tags         auth
// @Produce      json
// @Param        state  query     string  false  "Opaque state echoed back by Google"
// @Success      200    {object}  loginURLResponse
// @Router       /auth/google/login-url [get]
func (h *AuthHandler) LoginURL(c echo.Context) error {
	state := c.QueryParam("state")
	if state == "" {
		state = uuid.NewString()
	}
	return c.JSON(http.StatusOK, loginURLResponse{URL: h.urls.LoginURL(state), State: state})
}

// Me returns the caller's user record.
//
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.User
// @Failure      401  {object}  errorResponse
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	id, err := identityFrom(c)
	if err != nil {
		return err
	}

	user, err := h.authService.CurrentUser(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateProfile edits the caller's display name or profile image.
//
// @Summary      Update profile
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateProfileRequest  true  "Fields to change"
// @Success      200   {object}  domain.User
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /profile [put]
func (h *AuthHandler) UpdateProfile(c echo.Context) error {
	id, err := identityFrom(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	user, err := h.authService.UpdateProfile(c.Request().Context(), id, domain.ProfileUpdate{
		DisplayName:  req.DisplayName,
		ProfileImage: req.ProfileImage,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

func loginResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		return "invalid"
	case errors.Is(err, domain.ErrUnauthorized):
		return "rejected"
	case errors.Is(err, domain.ErrServiceUnavailable):
		return "unavailable"
	default:
		return "error"
	}
}

package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/localmart/merchant-platform/internal/api/middleware"
	"github.com/localmart/merchant-platform/internal/core/domain"
)

type stubAuthService struct {
	loginFn   func(ctx context.Context, accessToken string) (string, *domain.User, error)
	currentFn func(ctx context.Context, id domain.AuthorizedIdentity) (*domain.User, error)
	profileFn func(ctx context.Context, id domain.AuthorizedIdentity, u domain.ProfileUpdate) (*domain.User, error)
}

func (s *stubAuthService) Login(ctx context.Context, accessToken string) (string, *domain.User, error) {
	return s.loginFn(ctx, accessToken)
}

func (s *stubAuthService) CurrentUser(ctx context.Context, id domain.AuthorizedIdentity) (*domain.User, error) {
	return s.currentFn(ctx, id)
}

func (s *stubAuthService) UpdateProfile(ctx context.Context, id domain.AuthorizedIdentity, u domain.ProfileUpdate) (*domain.User, error) {
	return s.profileFn(ctx, id, u)
}

type allowAll struct{ calls int }

func (a *allowAll) Allow(context.Context, string) (bool, error) {
	a.calls++
	return true, nil
}

type denyAll struct{}

func (denyAll) Allow(context.Context, string) (bool, error) { return false, nil }

type staticURLs struct{}

func (staticURLs) LoginURL(state string) string { return "https://accounts.example.com/auth?state=" + state }

func newJSONContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Login_Success(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(_ context.Context, accessToken string) (string, *domain.User, error) {
			if accessToken != "ya29.good" {
				t.Fatalf("unexpected access token: %s", accessToken)
			}
			return "token123", &domain.User{ID: "108", Email: "ana@example.com", Role: domain.RoleMerchant, IsActive: true}, nil
		},
	}
	throttle := &allowAll{}
	h := NewAuthHandler(stub, throttle, staticURLs{}, zerolog.Nop())

	c, rec := newJSONContext(http.MethodPost, "/auth/google", `{"access_token":"ya29.good"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if throttle.calls != 1 {
		t.Fatalf("expected one throttle check, got %d", throttle.calls)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "token123" {
		t.Fatalf("expected token, got %v", resp["token"])
	}
	user, ok := resp["user"].(map[string]any)
	if !ok {
		t.Fatalf("expected user in response")
	}
	if user["user_id"] != "108" || user["role"] != "merchant" {
		t.Fatalf("unexpected user payload: %+v", user)
	}
}

func TestAuthHandler_Login_InvalidPayload(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(context.Context, string) (string, *domain.User, error) {
			t.Fatalf("should not be called")
			return "", nil, nil
		},
	}
	h := NewAuthHandler(stub, &allowAll{}, staticURLs{}, zerolog.Nop())

	c, _ := newJSONContext(http.MethodPost, "/auth/google", "not-json")
	err := h.Login(c)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestAuthHandler_Login_Throttled(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(context.Context, string) (string, *domain.User, error) {
			t.Fatalf("provider must not be called when throttled")
			return "", nil, nil
		},
	}
	h := NewAuthHandler(stub, denyAll{}, staticURLs{}, zerolog.Nop())

	c, _ := newJSONContext(http.MethodPost, "/auth/google", `{"access_token":"x"}`)
	if err := h.Login(c); !errors.Is(err, domain.ErrTooManyAttempts) {
		t.Fatalf("expected ErrTooManyAttempts, got %v", err)
	}
}

func TestAuthHandler_Login_ProviderErrorPassesThrough(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(context.Context, string) (string, *domain.User, error) {
			return "", nil, domain.ErrUnauthorized
		},
	}
	h := NewAuthHandler(stub, &allowAll{}, staticURLs{}, zerolog.Nop())

	c, rec := newJSONContext(http.MethodPost, "/auth/google", `{"access_token":"revoked"}`)
	if err := h.Login(c); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if rec.Body.Len() != 0 {
		t.Fatalf("handler must leave rendering to the error handler")
	}
}

func TestAuthHandler_LoginURL_GeneratesState(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{}, &allowAll{}, staticURLs{}, zerolog.Nop())

	c, rec := newJSONContext(http.MethodGet, "/auth/google/login-url", "")
	if err := h.LoginURL(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp loginURLResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.State == "" || !strings.HasSuffix(resp.URL, "state="+resp.State) {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestAuthHandler_Me(t *testing.T) {
	stub := &stubAuthService{
		currentFn: func(_ context.Context, id domain.AuthorizedIdentity) (*domain.User, error) {
			return &domain.User{ID: id.UserID, Role: id.Role}, nil
		},
	}
	h := NewAuthHandler(stub, &allowAll{}, staticURLs{}, zerolog.Nop())

	c, rec := newJSONContext(http.MethodGet, "/auth/me", "")
	c.Set(middleware.IdentityKey, &domain.AuthorizedIdentity{UserID: "c-1", Role: domain.RoleCustomer})
	if err := h.Me(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !strings.Contains(rec.Body.String(), `"user_id":"c-1"`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}

	c, _ = newJSONContext(http.MethodGet, "/auth/me", "")
	var he *echo.HTTPError
	if err := h.Me(c); !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without identity, got %v", err)
	}
}

func TestAuthHandler_UpdateProfile(t *testing.T) {
	stub := &stubAuthService{
		profileFn: func(_ context.Context, id domain.AuthorizedIdentity, u domain.ProfileUpdate) (*domain.User, error) {
			if id.UserID != "c-1" {
				t.Fatalf("unexpected caller %s", id.UserID)
			}
			if u.DisplayName == nil || *u.DisplayName != "Ana" || u.ProfileImage != nil {
				t.Fatalf("unexpected update: %+v", u)
			}
			return &domain.User{ID: id.UserID, DisplayName: *u.DisplayName, Role: id.Role}, nil
		},
	}
	h := NewAuthHandler(stub, &allowAll{}, staticURLs{}, zerolog.Nop())

	c, rec := newJSONContext(http.MethodPut, "/profile", `{"display_name":"Ana","role":"admin"}`)
	c.Set(middleware.IdentityKey, &domain.AuthorizedIdentity{UserID: "c-1", Role: domain.RoleCustomer})
	if err := h.UpdateProfile(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !strings.Contains(rec.Body.String(), `"display_name":"Ana"`) || !strings.Contains(rec.Body.String(), `"role":"customer"`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestAuthHandler_UpdateProfile_InvalidImage(t *testing.T) {
	stub := &stubAuthService{
		profileFn: func(context.Context, domain.AuthorizedIdentity, domain.ProfileUpdate) (*domain.User, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewAuthHandler(stub, &allowAll{}, staticURLs{}, zerolog.Nop())

	c, _ := newJSONContext(http.MethodPut, "/profile", `{"profile_image":"not a url"}`)
	c.Set(middleware.IdentityKey, &domain.AuthorizedIdentity{UserID: "c-1", Role: domain.RoleCustomer})

	var he *echo.HTTPError
	if err := h.UpdateProfile(c); !errors.As(err, &he) || he.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %v", err)
	}
}

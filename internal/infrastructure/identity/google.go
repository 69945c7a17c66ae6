// Package identity verifies third-party access tokens against the identity
// provider's userinfo endpoint.
package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/oauth2"

	"github.com/localmart/merchant-platform/internal/core/domain"
	"github.com/localmart/merchant-platform/internal/pkg/metrics"
)

const (
	DefaultUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"
	DefaultAuthURL     = "https://accounts.google.com/o/oauth2/auth"
	DefaultTokenURL    = "https://oauth2.googleapis.com/token"
	defaultTimeout     = 10 * time.Second
	maxProfileBytes    = 1 << 20
)

var defaultScopes = []string{"openid", "email", "profile"}

// GoogleConfig configures the Google verifier.
type GoogleConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	UserInfoURL  string
	AuthURL      string
	TokenURL     string
	Scopes       []string
	Timeout      time.Duration
}

// GoogleVerifier implements ports.CredentialVerifier against the Google
// OAuth2 userinfo endpoint.
type GoogleVerifier struct {
	oauth       *oauth2.Config
	userInfoURL string
	timeout     time.Duration
	base        *http.Client
	log         zerolog.Logger
}

// NewGoogleVerifier builds a verifier. Empty endpoints fall back to Google's
// public ones.
func NewGoogleVerifier(cfg GoogleConfig, log zerolog.Logger) *GoogleVerifier {
	endpoint := oauth2.Endpoint{AuthURL: DefaultAuthURL, TokenURL: DefaultTokenURL}
	if cfg.AuthURL != "" {
		endpoint.AuthURL = cfg.AuthURL
	}
	if cfg.TokenURL != "" {
		endpoint.TokenURL = cfg.TokenURL
	}
	scopes := cfg.Scopes
	if len(scopes) == 0 {
		scopes = defaultScopes
	}
	userInfoURL := cfg.UserInfoURL
	if userInfoURL == "" {
		userInfoURL = DefaultUserInfoURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &GoogleVerifier{
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Endpoint:     endpoint,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       scopes,
		},
		userInfoURL: userInfoURL,
		timeout:     timeout,
		base:        http.DefaultClient,
		log:         log,
	}
}

// WithHTTPClient returns a copy of the verifier sending requests through c.
func (v *GoogleVerifier) WithHTTPClient(c *http.Client) *GoogleVerifier {
	cp := *v
	cp.base = c
	return &cp
}

type userInfo struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// Verify makes exactly one userinfo request with accessToken as bearer.
// A non-200 answer or an unusable profile is domain.ErrUnauthorized; failing
// to reach the provider, or losing it before the profile is read, is
// domain.ErrServiceUnavailable.
func (v *GoogleVerifier) Verify(ctx context.Context, accessToken string) (*domain.ExternalProfile, error) {
	if accessToken == "" {
		return nil, fmt.Errorf("%w: access token is required", domain.ErrInvalidRequest)
	}

	ctx, cancel := context.WithTimeout(ctx, v.timeout)
	defer cancel()

	ctx = context.WithValue(ctx, oauth2.HTTPClient, v.base)
	client := oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: accessToken,
		TokenType:   "Bearer",
	}))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.userInfoURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build userinfo request: %w", err)
	}

	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		v.observe("unavailable", start)
		v.log.Error().Err(err).Msg("identity provider unreachable")
		return nil, fmt.Errorf("%w: %v", domain.ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		v.observe("rejected", start)
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxProfileBytes))
		v.log.Warn().Int("status", resp.StatusCode).Msg("identity provider rejected access token")
		return nil, fmt.Errorf("%w: provider answered %d", domain.ErrUnauthorized, resp.StatusCode)
	}

	var info userInfo
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxProfileBytes)).Decode(&info); err != nil {
		if transportFailure(ctx, err) {
			v.observe("unavailable", start)
			v.log.Error().Err(err).Msg("identity provider connection failed while reading profile")
			return nil, fmt.Errorf("%w: read profile: %v", domain.ErrServiceUnavailable, err)
		}
		v.observe("rejected", start)
		v.log.Warn().Err(err).Msg("identity provider returned an unreadable profile")
		return nil, fmt.Errorf("%w: decode profile: %v", domain.ErrUnauthorized, err)
	}
	if info.ID == "" || info.Email == "" {
		v.observe("rejected", start)
		return nil, fmt.Errorf("%w: profile is missing id or email", domain.ErrUnauthorized)
	}

	v.observe("ok", start)
	return &domain.ExternalProfile{
		ID:      info.ID,
		Email:   info.Email,
		Name:    info.Name,
		Picture: info.Picture,
	}, nil
}

// transportFailure reports whether a body read failed because of the
// connection or the request deadline rather than the payload itself.
func transportFailure(ctx context.Context, err error) bool {
	if ctx.Err() != nil || errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

// LoginURL returns the consent page URL a frontend redirects to in order to
// obtain an access token.
func (v *GoogleVerifier) LoginURL(state string) string {
	return v.oauth.AuthCodeURL(state, oauth2.SetAuthURLParam("response_type", "token"))
}

func (v *GoogleVerifier) observe(result string, start time.Time) {
	metrics.ProviderRequestDuration.WithLabelValues(result).Observe(time.Since(start).Seconds())
}

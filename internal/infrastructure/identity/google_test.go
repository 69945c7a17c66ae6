package identity

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/localmart/merchant-platform/internal/core/domain"
)

func newTestVerifier(t *testing.T, h http.HandlerFunc, timeout time.Duration) (*GoogleVerifier, *int32) {
	t.Helper()
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		h(w, r)
	}))
	t.Cleanup(srv.Close)

	v := NewGoogleVerifier(GoogleConfig{
		ClientID:    "client-id",
		UserInfoURL: srv.URL,
		Timeout:     timeout,
	}, zerolog.Nop()).WithHTTPClient(srv.Client())
	return v, &calls
}

func TestVerify_Success(t *testing.T) {
	v, calls := newTestVerifier(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "Bearer ya29.good", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"108","email":"ana@example.com","name":"Ana","picture":"https://example.com/a.png","verified_email":true}`))
	}, time.Second)

	profile, err := v.Verify(context.Background(), "ya29.good")
	require.NoError(t, err)
	assert.Equal(t, &domain.ExternalProfile{ID: "108", Email: "ana@example.com", Name: "Ana", Picture: "https://example.com/a.png"}, profile)
	assert.EqualValues(t, 1, atomic.LoadInt32(calls))
}

func TestVerify_Rejected(t *testing.T) {
	for _, status := range []int{http.StatusUnauthorized, http.StatusForbidden, http.StatusInternalServerError} {
		v, calls := newTestVerifier(t, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(status)
		}, time.Second)

		_, err := v.Verify(context.Background(), "ya29.revoked")
		assert.ErrorIs(t, err, domain.ErrUnauthorized, "status %d", status)
		assert.EqualValues(t, 1, atomic.LoadInt32(calls), "no retries")
	}
}

func TestVerify_UnusableProfile(t *testing.T) {
	bodies := []string{`not json`, `{"id":"108"}`, `{"email":"ana@example.com"}`}
	for _, body := range bodies {
		v, _ := newTestVerifier(t, func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(body))
		}, time.Second)

		_, err := v.Verify(context.Background(), "ya29.good")
		assert.ErrorIs(t, err, domain.ErrUnauthorized, "body %s", body)
	}
}

func TestVerify_Timeout(t *testing.T) {
	release := make(chan struct{})
	v, _ := newTestVerifier(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}, 50*time.Millisecond)
	defer close(release)

	_, err := v.Verify(context.Background(), "ya29.slow")
	assert.ErrorIs(t, err, domain.ErrServiceUnavailable)
}

func TestVerify_TimeoutWhileReadingBody(t *testing.T) {
	v, calls := newTestVerifier(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"id":"108","email":`))
		w.(http.Flusher).Flush()
		<-r.Context().Done()
	}, 50*time.Millisecond)

	_, err := v.Verify(context.Background(), "ya29.slow-body")
	assert.ErrorIs(t, err, domain.ErrServiceUnavailable)
	assert.NotErrorIs(t, err, domain.ErrUnauthorized)
	assert.EqualValues(t, 1, atomic.LoadInt32(calls))
}

func TestVerify_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	addr := srv.URL
	srv.Close()

	v := NewGoogleVerifier(GoogleConfig{UserInfoURL: addr, Timeout: time.Second}, zerolog.Nop())
	_, err := v.Verify(context.Background(), "ya29.good")
	assert.ErrorIs(t, err, domain.ErrServiceUnavailable)
}

func TestVerify_EmptyToken(t *testing.T) {
	v, calls := newTestVerifier(t, func(w http.ResponseWriter, _ *http.Request) {}, time.Second)

	_, err := v.Verify(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)
	assert.EqualValues(t, 0, atomic.LoadInt32(calls))
}

func TestLoginURL(t *testing.T) {
	v := NewGoogleVerifier(GoogleConfig{
		ClientID:    "client-id",
		RedirectURL: "https://app.example.com/callback",
		AuthURL:     "https://accounts.example.com/auth",
	}, zerolog.Nop())

	u, err := url.Parse(v.LoginURL("xyz"))
	require.NoError(t, err)
	assert.Equal(t, "accounts.example.com", u.Host)
	q := u.Query()
	assert.Equal(t, "client-id", q.Get("client_id"))
	assert.Equal(t, "xyz", q.Get("state"))
	assert.Equal(t, "token", q.Get("response_type"))
	assert.Equal(t, "https://app.example.com/callback", q.Get("redirect_uri"))
	assert.Contains(t, q.Get("scope"), "email")
}

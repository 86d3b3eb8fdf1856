package googleauth_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/jrsteele09/go-gmail-sender/googleauth"
	errs "github.com/jrsteele09/go-gmail-sender/internal/errors"
)

func newTestService(tokenURL, revocationURL string) *googleauth.Service {
	return googleauth.NewServiceWithEndpoints(&oauth2.Config{
		ClientID:     "test-client",
		ClientSecret: "test-secret",
		Endpoint: oauth2.Endpoint{
			AuthURL:  "https://provider.example/auth",
			TokenURL: tokenURL,
		},
		RedirectURL: "http://localhost:3000/redirect",
		Scopes:      []string{googleauth.ScopeGmailSend},
	}, revocationURL)
}

func TestAuthCodeURL(t *testing.T) {
	svc := newTestService("https://provider.example/token", "https://provider.example/revoke")

	authURL := svc.AuthCodeURL("my-state-token")
	parsed, err := url.Parse(authURL)
	require.NoError(t, err)

	q := parsed.Query()
	require.Equal(t, "my-state-token", q.Get("state"))
	require.Equal(t, "code", q.Get("response_type"))
	require.Equal(t, "offline", q.Get("access_type"))
	require.Equal(t, "true", q.Get("include_granted_scopes"))
	require.Equal(t, "test-client", q.Get("client_id"))
	require.Equal(t, "http://localhost:3000/redirect", q.Get("redirect_uri"))
	require.Equal(t, googleauth.ScopeGmailSend, q.Get("scope"))
}

func TestExchange(t *testing.T) {
	t.Run("valid code yields credential", func(t *testing.T) {
		provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, r.ParseForm())
			require.Equal(t, "good-code", r.FormValue("code"))
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"access_token":"at-123","refresh_token":"rt-456","token_type":"Bearer","expires_in":3600}`))
		}))
		defer provider.Close()

		svc := newTestService(provider.URL, provider.URL+"/revoke")
		token, err := svc.Exchange(context.Background(), "good-code")
		require.NoError(t, err)
		require.Equal(t, "at-123", token.AccessToken)
		require.Equal(t, "rt-456", token.RefreshToken)
	})

	t.Run("rejected code surfaces provider error", func(t *testing.T) {
		provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"invalid_grant"}`))
		}))
		defer provider.Close()

		svc := newTestService(provider.URL, provider.URL+"/revoke")
		token, err := svc.Exchange(context.Background(), "replayed-code")
		require.Error(t, err)
		require.Nil(t, token)
		require.Contains(t, err.Error(), "invalid_grant")
	})
}

func TestRevoke(t *testing.T) {
	t.Run("provider response confirms revocation", func(t *testing.T) {
		var gotToken string
		provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, r.ParseForm())
			gotToken = r.FormValue("token")
			w.WriteHeader(http.StatusOK)
		}))
		defer provider.Close()

		svc := newTestService(provider.URL+"/token", provider.URL)
		err := svc.Revoke(context.Background(), "at-123")
		require.NoError(t, err)
		require.Equal(t, "at-123", gotToken)
	})

	t.Run("provider-side rejection still counts as a response", func(t *testing.T) {
		provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
		}))
		defer provider.Close()

		svc := newTestService(provider.URL+"/token", provider.URL)
		require.NoError(t, svc.Revoke(context.Background(), "at-123"))
	})

	t.Run("transport failure is reported", func(t *testing.T) {
		provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		revocationURL := provider.URL
		provider.Close() // connection refused from here on

		svc := newTestService("https://provider.example/token", revocationURL)
		err := svc.Revoke(context.Background(), "at-123")
		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrRevocationTransport)
	})
}

// Package googleauth implements the client side of the OAuth2
// authorization-code flow against Google: building authorization URLs,
// redeeming authorization codes for credentials, and revoking them.
package googleauth

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"

	"github.com/jrsteele09/go-gmail-sender/internal/config"
	errs "github.com/jrsteele09/go-gmail-sender/internal/errors"
)

// ScopeGmailSend is the only scope ever requested. Least privilege: the
// credential can send mail on the user's behalf and nothing else.
const ScopeGmailSend = "https://www.googleapis.com/auth/gmail.send"

// Service drives the authorization-code flow against a single provider.
// The oauth2.Config held here is immutable after construction; obtained
// credentials are applied per request by callers, never attached to the
// Service. Safe for concurrent use.
type Service struct {
	oauthConfig        *oauth2.Config
	revocationEndpoint string
	httpClient         *http.Client
}

// NewService discovers the provider's endpoints from its issuer URL and
// builds a Service configured for the Gmail send scope. Discovery is
// metadata fetching only; no OIDC scopes are requested.
func NewService(ctx context.Context, cfg config.OAuthConfig) (*Service, error) {
	provider, err := oidc.NewProvider(ctx, cfg.GetIssuerURL())
	if err != nil {
		return nil, fmt.Errorf("[googleauth NewService] provider discovery: %w", err)
	}

	var discovery struct {
		RevocationEndpoint string `json:"revocation_endpoint"`
	}
	if err := provider.Claims(&discovery); err != nil {
		return nil, fmt.Errorf("[googleauth NewService] provider metadata: %w", err)
	}
	if discovery.RevocationEndpoint == "" {
		return nil, fmt.Errorf("[googleauth NewService] provider advertises no revocation endpoint")
	}

	oauthConfig := &oauth2.Config{
		ClientID:     cfg.GetClientID(),
		ClientSecret: cfg.GetClientSecret(),
		Endpoint:     provider.Endpoint(),
		RedirectURL:  cfg.GetRedirectURL(),
		Scopes:       []string{ScopeGmailSend},
	}

	return NewServiceWithEndpoints(oauthConfig, discovery.RevocationEndpoint), nil
}

// NewServiceWithEndpoints builds a Service against explicit endpoints,
// bypassing discovery.
func NewServiceWithEndpoints(oauthConfig *oauth2.Config, revocationEndpoint string) *Service {
	return &Service{
		oauthConfig:        oauthConfig,
		revocationEndpoint: revocationEndpoint,
		httpClient:         http.DefaultClient,
	}
}

// AuthCodeURL returns the provider authorization URL bound to state.
// access_type=offline requests a refresh token; include_granted_scopes
// enables incremental consent.
func (s *Service) AuthCodeURL(state string) string {
	return s.oauthConfig.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("include_granted_scopes", "true"),
	)
}

// Exchange redeems an authorization code for a credential. Codes are
// single-use by provider contract; a replayed code fails here with the
// provider's error.
func (s *Service) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	token, err := s.oauthConfig.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchange authorization code: %w", err)
	}
	return token, nil
}

// Revoke asks the provider to revoke accessToken. A nil return means the
// provider responded, whatever its status; callers may then discard
// local credential state. Only transport-level failures error, so local
// state survives them and the user is never told they are signed out
// while the provider still honours the token.
func (s *Service) Revoke(ctx context.Context, accessToken string) error {
	form := url.Values{"token": {accessToken}}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.revocationEndpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("build revocation request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", errs.ErrRevocationTransport, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	return nil
}

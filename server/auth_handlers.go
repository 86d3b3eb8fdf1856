package server

import (
	"html"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/jrsteele09/go-gmail-sender/googleauth"
	errs "github.com/jrsteele09/go-gmail-sender/internal/errors"
	"github.com/jrsteele09/go-gmail-sender/internal/metrics"
)

// GoogleLoginHandler starts the authorization flow (GET /auth/google):
// it binds a fresh state token to the session and redirects the browser
// to the provider's consent screen.
func (s *Server) GoogleLoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		sessionID := sessionIDFromContext(ctx)

		state, err := googleauth.GenerateStateToken()
		if err != nil {
			// No secure randomness means no flow; never fall back.
			log.Err(err).Msg("State token generation failed")
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		session, err := s.sessions.Get(ctx, sessionID)
		if err != nil && !errs.Is(err, errs.ErrSessionNotFound) {
			log.Err(err).Msg("Session load failed")
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}
		if session.CreatedAt.IsZero() {
			session.CreatedAt = time.Now()
		}

		// Overwrites any earlier pending value: only the most recent
		// authorization attempt is redeemable.
		session.PendingState = state
		if err := s.sessions.Upsert(ctx, sessionID, session); err != nil {
			log.Err(err).Msg("Session store failed")
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		s.collector.AuthFlowStarted()
		http.Redirect(w, r, s.auth.AuthCodeURL(state), http.StatusFound)
	}
}

// OAuthCallbackHandler receives the provider redirect (GET /redirect)
// and walks the redemption state machine: provider error, CSRF check,
// then code-for-credential exchange.
func (s *Server) OAuthCallbackHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		q := r.URL.Query()

		// Provider aborted the flow. The session is left untouched.
		if errorParam := q.Get("error"); errorParam != "" {
			log.Warn().Str("provider_error", errorParam).Msg("Authorization rejected by provider")
			s.collector.AuthCallbackCompleted(metrics.CallbackProviderError)
			writePage(w, "Authorization failed: "+html.EscapeString(errorParam))
			return
		}

		session, _ := s.loadSession(r)
		if !googleauth.StateTokensEqual(q.Get("state"), session.PendingState) {
			// Never proceed to redemption, however valid the code looks.
			log.Warn().Msg("State mismatch. Possible CSRF attack")
			s.collector.AuthCallbackCompleted(metrics.CallbackCSRFMismatch)
			writePage(w, "State mismatch. Possible CSRF attack")
			return
		}

		credential, err := s.auth.Exchange(ctx, q.Get("code"))
		if err != nil {
			// Codes are single-use; recovery needs a fresh /auth/google round.
			log.Err(err).Msg("Authorization code exchange failed")
			s.collector.AuthCallbackCompleted(metrics.CallbackExchangeFailed)
			writePage(w, "Error during authentication.")
			return
		}

		session.PendingState = "" // consumed
		session.Credential = credential
		if err := s.sessions.Upsert(ctx, sessionIDFromContext(ctx), session); err != nil {
			log.Err(err).Msg("Failed to store credential in session")
			s.collector.AuthCallbackCompleted(metrics.CallbackExchangeFailed)
			writePage(w, "Error during authentication.")
			return
		}

		// Presence only - the credential value never reaches the logs.
		log.Info().Msg("Credential stored in session")
		s.collector.AuthCallbackCompleted(metrics.CallbackSuccess)
		http.Redirect(w, r, RouteEmailForm, http.StatusFound)
	}
}

// RevokeHandler signs the user out (GET /revoke). Local credential state
// changes only after the provider has responded; a transport failure
// leaves the session authenticated so the user is not shown a false
// "logged out".
func (s *Server) RevokeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		session, ok := s.loadSession(r)
		if !ok || !session.Authenticated() {
			// Idempotent no-op; safe to call repeatedly.
			s.collector.RevocationCompleted(metrics.RevocationNoop)
			http.Redirect(w, r, RouteIndex, http.StatusFound)
			return
		}

		if err := s.auth.Revoke(ctx, session.Credential.AccessToken); err != nil {
			log.Err(err).Msg("Revocation transport failure")
			s.collector.RevocationCompleted(metrics.RevocationTransportFailure)
			writePage(w, "Error revoking token.")
			return
		}

		session.Credential = nil
		if err := s.sessions.Upsert(ctx, sessionIDFromContext(ctx), session); err != nil {
			log.Err(err).Msg("Failed to clear credential from session")
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		log.Info().Msg("Credential revoked and cleared from session")
		s.collector.RevocationCompleted(metrics.RevocationSuccess)
		http.Redirect(w, r, RouteIndex, http.StatusFound)
	}
}

package server

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/jrsteele09/go-gmail-sender/server/sessionstore"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

// ContextKeySessionID stores the verified browser session ID
const ContextKeySessionID ContextKey = "session_id"

// sessionCookieName is the cookie identifying the browser session
const sessionCookieName = "session_id"

// WithSession resolves the browser session for a request: a valid signed
// cookie yields the existing session ID, anything else gets a fresh one.
// The ID lands in the request context; session data stays server-side.
func (s *Server) WithSession() func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			var sessionID string
			if cookie, err := r.Cookie(sessionCookieName); err == nil {
				if id, ok := verifySessionCookie(cookie.Value, s.config.GetSessionSecret()); ok {
					sessionID = id
				}
			}
			if sessionID == "" {
				sessionID = uuid.NewString()
				s.setSessionCookie(w, r, sessionID)
			}

			ctx := context.WithValue(r.Context(), ContextKeySessionID, sessionID)
			next(w, r.WithContext(ctx))
		}
	}
}

// RequireCredential is the access gate: routes behind it are served only
// when the session holds a credential. Presence check only - a cleared
// credential locks the session out immediately.
func (s *Server) RequireCredential() func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			session, ok := s.loadSession(r)
			if !ok || !session.Authenticated() {
				http.Redirect(w, r, RouteIndex, http.StatusFound)
				return
			}
			next(w, r)
		}
	}
}

// loadSession fetches the request's session from the store. A missing
// session comes back as ok=false with a zero session.
func (s *Server) loadSession(r *http.Request) (sessionstore.Session, bool) {
	sessionID := sessionIDFromContext(r.Context())
	if sessionID == "" {
		return sessionstore.Session{}, false
	}
	session, err := s.sessions.Get(r.Context(), sessionID)
	if err != nil {
		return sessionstore.Session{}, false
	}
	return session, true
}

func sessionIDFromContext(ctx context.Context) string {
	sessionID, _ := ctx.Value(ContextKeySessionID).(string)
	return sessionID
}

func (s *Server) setSessionCookie(w http.ResponseWriter, r *http.Request, sessionID string) {
	isSecure := getScheme(r) == "https"

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    signSessionID(sessionID, s.config.GetSessionSecret()),
		Path:     "/",
		HttpOnly: true,
		Secure:   isSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(s.config.GetSessionTTL() / time.Second),
	})
}

// signSessionID appends an HMAC-SHA256 signature so a tampered cookie is
// treated as no cookie at all.
func signSessionID(sessionID, secret string) string {
	return sessionID + "." + cookieSignature(sessionID, secret)
}

func verifySessionCookie(value, secret string) (string, bool) {
	sessionID, signature, found := strings.Cut(value, ".")
	if !found || sessionID == "" {
		return "", false
	}
	if !hmac.Equal([]byte(signature), []byte(cookieSignature(sessionID, secret))) {
		log.Warn().Msg("Session cookie signature mismatch")
		return "", false
	}
	return sessionID, true
}

func cookieSignature(sessionID, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(sessionID))
	return hex.EncodeToString(mac.Sum(nil))
}

package sessionstore

import (
	"context"
	"time"

	"golang.org/x/oauth2"
)

// Session is the per-browser state bound to the session cookie.
// PendingState holds the CSRF token of the most recent authorization
// attempt; only that attempt is redeemable. Credential is set only by a
// state-matched redemption and cleared by a confirmed revocation.
type Session struct {
	PendingState string        `json:"pending_state,omitempty"`
	Credential   *oauth2.Token `json:"credential,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
}

// Authenticated reports whether the session carries a credential.
// Presence check only; expiry is not validated.
func (s Session) Authenticated() bool {
	return s.Credential != nil
}

// Repo stores browser sessions keyed by session ID. Read-modify-write
// across concurrent requests for the same session is not atomic; with a
// single-user session model the last write wins.
type Repo interface {
	Upsert(ctx context.Context, sessionID string, session Session) error
	Get(ctx context.Context, sessionID string) (Session, error)
	Delete(ctx context.Context, sessionID string) error
}

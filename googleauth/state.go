package googleauth

import (
	"crypto/hmac"
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// stateTokenBytes is the entropy of a state token. 32 bytes keeps the
// token unguessable across concurrent authorization flows.
const stateTokenBytes = 32

// GenerateStateToken produces a random URL-safe state token used to bind
// an authorization request to its callback. An error means the secure
// random source is unavailable and the flow must abort; there is no
// fallback to a weaker generator.
func GenerateStateToken() (string, error) {
	b := make([]byte, stateTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("read random state bytes: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// StateTokensEqual compares two state tokens in constant time over the
// full token. An empty token never matches anything, so a session with
// no pending authorization rejects every callback.
func StateTokensEqual(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return hmac.Equal([]byte(a), []byte(b))
}

package googleauth_test

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/go-gmail-sender/googleauth"
)

func TestGenerateStateToken(t *testing.T) {
	t.Run("token has 32 bytes of entropy", func(t *testing.T) {
		state, err := googleauth.GenerateStateToken()
		require.NoError(t, err)

		decoded, err := base64.RawURLEncoding.DecodeString(state)
		require.NoError(t, err)
		require.Len(t, decoded, 32)
	})

	t.Run("tokens are unique", func(t *testing.T) {
		seen := make(map[string]bool)
		for i := 0; i < 100; i++ {
			state, err := googleauth.GenerateStateToken()
			require.NoError(t, err)
			require.False(t, seen[state], "duplicate state token generated")
			seen[state] = true
		}
	})

	t.Run("token is URL-safe", func(t *testing.T) {
		state, err := googleauth.GenerateStateToken()
		require.NoError(t, err)
		require.NotContains(t, state, "+")
		require.NotContains(t, state, "/")
		require.NotContains(t, state, "=")
	})
}

func TestStateTokensEqual(t *testing.T) {
	t.Run("equal tokens match", func(t *testing.T) {
		require.True(t, googleauth.StateTokensEqual("abc123", "abc123"))
	})

	t.Run("different tokens do not match", func(t *testing.T) {
		require.False(t, googleauth.StateTokensEqual("abc123", "abc124"))
	})

	t.Run("prefix is not accepted", func(t *testing.T) {
		require.False(t, googleauth.StateTokensEqual("abc123", "abc"))
		require.False(t, googleauth.StateTokensEqual("abc", "abc123"))
	})

	t.Run("empty never matches", func(t *testing.T) {
		require.False(t, googleauth.StateTokensEqual("", ""))
		require.False(t, googleauth.StateTokensEqual("abc", ""))
		require.False(t, googleauth.StateTokensEqual("", "abc"))
	})
}

package server

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClientIP(t *testing.T) {
	newRequest := func(remoteAddr string, headers map[string]string) *http.Request {
		r := &http.Request{RemoteAddr: remoteAddr, Header: http.Header{}}
		for k, v := range headers {
			r.Header.Set(k, v)
		}
		return r
	}

	t.Run("no headers falls back to remote addr", func(t *testing.T) {
		r := newRequest("203.0.113.7:51234", nil)
		require.Equal(t, "203.0.113.7", clientIP(r))
	})

	t.Run("forwarded-for with spaces", func(t *testing.T) {
		r := newRequest("10.0.0.1:1234", map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.1"})
		require.Equal(t, "203.0.113.7", clientIP(r))
	})

	t.Run("forwarded-for without spaces", func(t *testing.T) {
		r := newRequest("10.0.0.1:1234", map[string]string{"X-Forwarded-For": "203.0.113.7,10.0.0.1"})
		require.Equal(t, "203.0.113.7", clientIP(r))
	})

	t.Run("local entries are skipped", func(t *testing.T) {
		r := newRequest("10.0.0.1:1234", map[string]string{"X-Forwarded-For": "192.168.1.5,203.0.113.7"})
		require.Equal(t, "203.0.113.7", clientIP(r))
	})

	t.Run("real-ip used when forwarded-for is all local", func(t *testing.T) {
		r := newRequest("10.0.0.1:1234", map[string]string{
			"X-Forwarded-For": "192.168.1.5",
			"X-Real-Ip":       "203.0.113.7",
		})
		require.Equal(t, "203.0.113.7", clientIP(r))
	})
}

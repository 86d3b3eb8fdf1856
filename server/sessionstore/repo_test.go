package sessionstore_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	errs "github.com/jrsteele09/go-gmail-sender/internal/errors"
	"github.com/jrsteele09/go-gmail-sender/server/sessionstore"
)

var (
	_ sessionstore.Repo = (*sessionstore.InMemoryRepo)(nil)
	_ sessionstore.Repo = (*sessionstore.RedisRepo)(nil)
)

func TestInMemoryRepo(t *testing.T) {
	ctx := context.Background()
	repo := sessionstore.NewInMemoryRepo()

	t.Run("get missing session", func(t *testing.T) {
		_, err := repo.Get(ctx, "nope")
		require.ErrorIs(t, err, errs.ErrSessionNotFound)
	})

	t.Run("upsert and get", func(t *testing.T) {
		session := sessionstore.Session{PendingState: "state-1", CreatedAt: time.Now()}
		require.NoError(t, repo.Upsert(ctx, "sid-1", session))

		got, err := repo.Get(ctx, "sid-1")
		require.NoError(t, err)
		require.Equal(t, "state-1", got.PendingState)
		require.False(t, got.Authenticated())
	})

	t.Run("upsert overwrites prior state", func(t *testing.T) {
		require.NoError(t, repo.Upsert(ctx, "sid-1", sessionstore.Session{PendingState: "state-2"}))

		got, err := repo.Get(ctx, "sid-1")
		require.NoError(t, err)
		require.Equal(t, "state-2", got.PendingState)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, "sid-1"))
		_, err := repo.Get(ctx, "sid-1")
		require.ErrorIs(t, err, errs.ErrSessionNotFound)
	})

	t.Run("empty sessionID rejected", func(t *testing.T) {
		require.Error(t, repo.Upsert(ctx, "", sessionstore.Session{}))
		_, err := repo.Get(ctx, "")
		require.Error(t, err)
		require.Error(t, repo.Delete(ctx, ""))
	})
}

func TestRedisRepo(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	repo := sessionstore.NewRedisRepo(client, time.Hour)

	t.Run("credential round-trips through JSON", func(t *testing.T) {
		session := sessionstore.Session{
			Credential: &oauth2.Token{
				AccessToken:  "at-123",
				RefreshToken: "rt-456",
				TokenType:    "Bearer",
				Expiry:       time.Now().Add(time.Hour).UTC().Truncate(time.Second),
			},
			CreatedAt: time.Now().UTC().Truncate(time.Second),
		}
		require.NoError(t, repo.Upsert(ctx, "sid-1", session))

		got, err := repo.Get(ctx, "sid-1")
		require.NoError(t, err)
		require.True(t, got.Authenticated())
		require.Equal(t, "at-123", got.Credential.AccessToken)
		require.Equal(t, "rt-456", got.Credential.RefreshToken)
	})

	t.Run("missing session", func(t *testing.T) {
		_, err := repo.Get(ctx, "nope")
		require.ErrorIs(t, err, errs.ErrSessionNotFound)
	})

	t.Run("session expires per store policy", func(t *testing.T) {
		require.NoError(t, repo.Upsert(ctx, "sid-ttl", sessionstore.Session{PendingState: "s"}))
		mr.FastForward(2 * time.Hour)

		_, err := repo.Get(ctx, "sid-ttl")
		require.ErrorIs(t, err, errs.ErrSessionNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, repo.Upsert(ctx, "sid-2", sessionstore.Session{PendingState: "s"}))
		require.NoError(t, repo.Delete(ctx, "sid-2"))
		_, err := repo.Get(ctx, "sid-2")
		require.ErrorIs(t, err, errs.ErrSessionNotFound)
	})
}

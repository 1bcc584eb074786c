package cache

import (
	"churn-shield/internal/domain/prediction"
	"churn-shield/internal/domain/session"
	"churn-shield/internal/pkg/apperrors"
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var logger = slog.New(slog.NewTextHandler(io.Discard, nil))

func setupRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestSessionStore(t *testing.T) {
	ctx := context.Background()
	mr, client := setupRedis(t)
	store := NewSessionStore(client, logger)

	_, err := store.Get(ctx, "missing")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	s := session.New("abc")
	require.NoError(t, s.Apply(session.EventLogIn, "alice"))
	require.NoError(t, store.Save(ctx, s, time.Hour))

	assert.True(t, mr.Exists(sessionKeyPrefix+"abc"))
	assert.Equal(t, time.Hour, mr.TTL(sessionKeyPrefix+"abc"))

	got, err := store.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, session.StateLoggedIn, got.State)
	assert.Equal(t, "alice", got.Username)

	mr.FastForward(2 * time.Hour)
	_, err = store.Get(ctx, "abc")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	require.NoError(t, store.Save(ctx, s, time.Hour))
	require.NoError(t, store.Delete(ctx, "abc"))
	assert.False(t, mr.Exists(sessionKeyPrefix+"abc"))

	assert.ErrorIs(t, store.Save(ctx, &session.Session{}, time.Hour), apperrors.ErrInvalidArgument)
}

func TestSessionStore_Unavailable(t *testing.T) {
	ctx := context.Background()
	mr, client := setupRedis(t)
	store := NewSessionStore(client, logger)
	mr.Close()

	_, err := store.Get(ctx, "abc")
	assert.ErrorIs(t, err, apperrors.ErrStoreUnavailable)
	assert.ErrorIs(t, store.Save(ctx, session.New("abc"), time.Hour), apperrors.ErrStoreUnavailable)
	assert.ErrorIs(t, store.Delete(ctx, "abc"), apperrors.ErrStoreUnavailable)
}

func TestResultStore(t *testing.T) {
	ctx := context.Background()
	mr, client := setupRedis(t)
	store := NewResultStore(client, logger)

	result := &prediction.BatchResult{
		ID:        "b1",
		Username:  "alice",
		CreatedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		Rows:      []prediction.Row{{CustomerID: "A", WillChurn: "Yes", Probability: "90.00%", Reason: "Low risk profile"}},
		Summary:   prediction.Summarize([]prediction.Row{{WillChurn: "Yes"}}),
	}
	require.NoError(t, store.Save(ctx, result, 30*time.Minute))

	got, err := store.Get(ctx, "b1")
	require.NoError(t, err)
	assert.Equal(t, result, got)

	mr.FastForward(time.Hour)
	_, err = store.Get(ctx, "b1")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestResultStore_CorruptValue(t *testing.T) {
	ctx := context.Background()
	mr, client := setupRedis(t)
	store := NewResultStore(client, logger)

	require.NoError(t, mr.Set(resultKeyPrefix+"bad", "not json"))

	_, err := store.Get(ctx, "bad")
	assert.ErrorContains(t, err, "failed to decode")
}

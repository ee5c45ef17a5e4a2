package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"

	"github.com/ZiadAdelEissa/BookingBackend/pkg/session"
)

func newTestStore(t *testing.T, ttl time.Duration) (*session.RedisStore, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis run failed: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return session.NewRedisStore(client, ttl), mr
}

func TestRedisStore_CreateAndGet(t *testing.T) {
	store, _ := newTestStore(t, session.DefaultTTL)
	ctx := context.Background()

	sess, err := store.Create(ctx, "acc123")
	assert.NoError(t, err)
	assert.Len(t, sess.ID, 32)
	assert.Equal(t, "acc123", sess.AccountID)
	assert.Equal(t, sess.CreatedAt.Add(session.DefaultTTL), sess.ExpiresAt)

	got, err := store.Get(ctx, sess.ID)
	assert.NoError(t, err)
	assert.Equal(t, sess.ID, got.ID)
	assert.Equal(t, sess.AccountID, got.AccountID)

	// distinct sessions per create
	second, err := store.Create(ctx, "acc123")
	assert.NoError(t, err)
	assert.NotEqual(t, sess.ID, second.ID)
}

func TestRedisStore_GetMissing(t *testing.T) {
	store, _ := newTestStore(t, session.DefaultTTL)

	_, err := store.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, session.ErrNotFound)
}

func TestRedisStore_Delete(t *testing.T) {
	store, _ := newTestStore(t, session.DefaultTTL)
	ctx := context.Background()

	sess, err := store.Create(ctx, "acc123")
	assert.NoError(t, err)

	assert.NoError(t, store.Delete(ctx, sess.ID))

	_, err = store.Get(ctx, sess.ID)
	assert.ErrorIs(t, err, session.ErrNotFound)

	// deleting again is not an error
	assert.NoError(t, store.Delete(ctx, sess.ID))
}

func TestRedisStore_TTLExpiry(t *testing.T) {
	store, mr := newTestStore(t, 14*24*time.Hour)
	ctx := context.Background()

	sess, err := store.Create(ctx, "acc123")
	assert.NoError(t, err)

	// still resolvable just before the TTL
	mr.FastForward(13 * 24 * time.Hour)
	got, err := store.Get(ctx, sess.ID)
	assert.NoError(t, err)
	assert.Equal(t, sess.ID, got.ID)

	// gone after it
	mr.FastForward(2 * 24 * time.Hour)
	_, err = store.Get(ctx, sess.ID)
	assert.ErrorIs(t, err, session.ErrNotFound)
}

func TestRedisStore_Unavailable(t *testing.T) {
	store, mr := newTestStore(t, session.DefaultTTL)
	ctx := context.Background()

	sess, err := store.Create(ctx, "acc123")
	assert.NoError(t, err)

	mr.Close()

	_, err = store.Get(ctx, sess.ID)
	assert.ErrorIs(t, err, session.ErrStoreUnavailable)

	_, err = store.Create(ctx, "acc456")
	assert.ErrorIs(t, err, session.ErrStoreUnavailable)

	err = store.Delete(ctx, sess.ID)
	assert.ErrorIs(t, err, session.ErrStoreUnavailable)
}

package userlock

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLocker(t *testing.T) *Locker {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return New(rdb)
}

func TestLocker_AcquireRelease(t *testing.T) {
	l := newTestLocker(t)
	ctx := context.Background()
	userID := uuid.New()

	release, err := l.Acquire(ctx, userID)
	require.NoError(t, err)

	// second acquire for the same user fails while held
	_, err = l.Acquire(ctx, userID)
	assert.ErrorIs(t, err, ErrLocked)

	// a different user is unaffected
	otherRelease, err := l.Acquire(ctx, uuid.New())
	require.NoError(t, err)
	otherRelease()

	release()

	// re-acquire succeeds after release
	release2, err := l.Acquire(ctx, userID)
	require.NoError(t, err)
	release2()
}

func TestLocker_ReleaseIsOwnerScoped(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	l := New(rdb)

	ctx := context.Background()
	userID := uuid.New()

	release, err := l.Acquire(ctx, userID)
	require.NoError(t, err)

	// simulate TTL expiry followed by another holder
	mr.FastForward(l.ttl * 2)
	release2, err := l.Acquire(ctx, userID)
	require.NoError(t, err)

	// the stale release must not free the new holder's lock
	release()
	_, err = l.Acquire(ctx, userID)
	assert.ErrorIs(t, err, ErrLocked)

	release2()
}

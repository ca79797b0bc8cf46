package userlock

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrLocked means another request holds the user's lock.
var ErrLocked = errors.New("user is locked by another operation")

const (
	keyPrefix  = "voyagevr:userlock:"
	defaultTTL = 5 * time.Second
)

// Locker serializes mutations per user. It narrows the check-then-insert race
// on the one-active-booking invariant across service instances; the partial
// unique index remains the backstop.
type Locker struct {
	rdb *redis.Client
	ttl time.Duration
}

func New(rdb *redis.Client) *Locker {
	return &Locker{rdb: rdb, ttl: defaultTTL}
}

// Acquire takes the per-user lock, returning a release func. Returns
// ErrLocked without blocking when the lock is already held.
func (l *Locker) Acquire(ctx context.Context, userID uuid.UUID) (release func(), err error) {
	key := keyPrefix + userID.String()
	token := uuid.NewString()

	ok, err := l.rdb.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrLocked
	}

	return func() {
		// Release only if we still own the lock; an expired lock may have
		// been re-acquired by someone else.
		const unlock = `if redis.call("GET", KEYS[1]) == ARGV[1] then return redis.call("DEL", KEYS[1]) else return 0 end`
		_ = l.rdb.Eval(context.Background(), unlock, []string{key}, token).Err()
	}, nil
}

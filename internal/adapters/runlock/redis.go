// Package runlock guards against two connector runs for the same target
// date appending into the warehouse table concurrently. The table's
// append-only disposition gives no protection of its own, so overlap
// protection has to happen before the pipeline starts.
package runlock

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrLockHeld is returned when another run already holds the lock for the
// same destination table and target date.
var ErrLockHeld = errors.New("another run is in flight for this target date")

// releaseScript deletes the lock only when it still carries this run's
// token, so a run that outlived its TTL cannot release a successor's lock.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// refreshScript extends the TTL only while this run still owns the lock.
var refreshScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("PEXPIRE", KEYS[1], ARGV[2])
end
return 0
`)

// Lock acquires per-date run locks in Redis.
type Lock struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// Held represents an acquired lock.
type Held struct {
	lock  *Lock
	key   string
	token string
}

// New constructs a Lock.
func New(client *redis.Client, ttl time.Duration, logger *slog.Logger) *Lock {
	if logger == nil {
		logger = slog.Default()
	}
	return &Lock{client: client, ttl: ttl, logger: logger}
}

// Key derives the lock key for a destination table and target date.
func Key(table, date string) string {
	return fmt.Sprintf("s1bq:runlock:%s:%s", table, date)
}

// Acquire takes the lock or fails with ErrLockHeld when a concurrent run
// owns it.
func (l *Lock) Acquire(ctx context.Context, key string) (*Held, error) {
	token := uuid.NewString()

	ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("acquire run lock: %w", err)
	}
	if !ok {
		return nil, ErrLockHeld
	}

	l.logger.InfoContext(ctx, "run lock acquired", "key", key, "ttl", l.ttl.String())
	return &Held{lock: l, key: key, token: token}, nil
}

// Release frees the lock if this run still owns it.
func (h *Held) Release(ctx context.Context) error {
	if err := releaseScript.Run(ctx, h.lock.client, []string{h.key}, h.token).Err(); err != nil {
		return fmt.Errorf("release run lock: %w", err)
	}
	h.lock.logger.InfoContext(ctx, "run lock released", "key", h.key)
	return nil
}

// KeepAlive refreshes the lock TTL periodically until ctx is cancelled or
// done is closed. A run that legitimately outlasts the TTL (a long polling
// window) keeps its lock; a crashed run lets it expire.
func (h *Held) KeepAlive(ctx context.Context, done <-chan struct{}) {
	interval := h.lock.ttl / 3
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-done:
			return
		case <-ticker.C:
			err := refreshScript.Run(ctx, h.lock.client, []string{h.key}, h.token, h.lock.ttl.Milliseconds()).Err()
			if err != nil && !errors.Is(err, context.Canceled) {
				h.lock.logger.WarnContext(ctx, "run lock refresh failed", "key", h.key, "error", err)
			}
		}
	}
}

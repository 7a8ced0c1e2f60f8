package runlock

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buyers-scofflaw/s1-bq-connector/internal/testutil"
)

func TestKey(t *testing.T) {
	assert.Equal(t, "s1bq:runlock:proj.ds.tbl:2024-05-01", Key("proj.ds.tbl", "2024-05-01"))
}

func TestAcquireAndRelease(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	ctx := context.Background()

	lock := New(client, time.Minute, nil)
	key := Key("proj.ds.tbl", "2024-05-01-acquire")
	t.Cleanup(func() { client.Del(ctx, key) })

	held, err := lock.Acquire(ctx, key)
	require.NoError(t, err)

	// Second acquisition for the same date must be refused.
	_, err = lock.Acquire(ctx, key)
	assert.ErrorIs(t, err, ErrLockHeld)

	require.NoError(t, held.Release(ctx))

	// Released lock can be taken again.
	held, err = lock.Acquire(ctx, key)
	require.NoError(t, err)
	require.NoError(t, held.Release(ctx))
}

func TestReleaseIsOwnershipChecked(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	ctx := context.Background()

	lock := New(client, time.Minute, nil)
	key := Key("proj.ds.tbl", "2024-05-01-ownership")
	t.Cleanup(func() { client.Del(ctx, key) })

	held, err := lock.Acquire(ctx, key)
	require.NoError(t, err)

	// Simulate TTL expiry and takeover by another run.
	require.NoError(t, client.Set(ctx, key, "someone-else", time.Minute).Err())

	// Releasing the stale handle must not free the new owner's lock.
	require.NoError(t, held.Release(ctx))
	val, err := client.Get(ctx, key).Result()
	require.NoError(t, err)
	assert.Equal(t, "someone-else", val)
}

func TestDistinctDatesDoNotContend(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	ctx := context.Background()

	lock := New(client, time.Minute, nil)
	first := Key("proj.ds.tbl", "2024-05-01-multi")
	second := Key("proj.ds.tbl", "2024-05-02-multi")
	t.Cleanup(func() { client.Del(ctx, first, second) })

	a, err := lock.Acquire(ctx, first)
	require.NoError(t, err)
	defer func() { _ = a.Release(ctx) }()

	b, err := lock.Acquire(ctx, second)
	require.NoError(t, err)
	defer func() { _ = b.Release(ctx) }()
}

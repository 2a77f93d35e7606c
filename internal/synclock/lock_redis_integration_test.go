//go:build integration

package synclock

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"checkinhub/pkg/testutil/containers"
)

func TestRedisLocker(t *testing.T) {
	ctx := context.Background()
	rc := containers.NewRedisContainer(t)
	locker := NewRedis(rc.Client)

	t.Run("mutual exclusion across lockers", func(t *testing.T) {
		require.NoError(t, rc.FlushAll(ctx))

		token, acquired, err := locker.TryAcquire(ctx, "evt-1", time.Minute)
		require.NoError(t, err)
		require.True(t, acquired)

		// A second replica sharing the same Redis must be fenced out.
		other := NewRedis(rc.Client)
		_, acquired, err = other.TryAcquire(ctx, "evt-1", time.Minute)
		require.NoError(t, err)
		assert.False(t, acquired)

		require.NoError(t, locker.Release(ctx, "evt-1", token))
		_, acquired, err = other.TryAcquire(ctx, "evt-1", time.Minute)
		require.NoError(t, err)
		assert.True(t, acquired)
	})

	t.Run("release with a stale token keeps the lock", func(t *testing.T) {
		require.NoError(t, rc.FlushAll(ctx))

		_, acquired, err := locker.TryAcquire(ctx, "evt-1", time.Minute)
		require.NoError(t, err)
		require.True(t, acquired)

		require.NoError(t, locker.Release(ctx, "evt-1", "stale-token"))

		_, acquired, err = locker.TryAcquire(ctx, "evt-1", time.Minute)
		require.NoError(t, err)
		assert.False(t, acquired)
	})

	t.Run("lease expires", func(t *testing.T) {
		require.NoError(t, rc.FlushAll(ctx))

		_, acquired, err := locker.TryAcquire(ctx, "evt-1", 100*time.Millisecond)
		require.NoError(t, err)
		require.True(t, acquired)

		assert.Eventually(t, func() bool {
			_, acquired, err := locker.TryAcquire(ctx, "evt-1", time.Minute)
			return err == nil && acquired
		}, 2*time.Second, 50*time.Millisecond)
	})
}

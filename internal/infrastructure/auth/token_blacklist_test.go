package auth_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/procure/backend/internal/infrastructure/auth"
)

var (
	_ auth.TokenBlacklist = (*auth.InMemoryTokenBlacklist)(nil)
	_ auth.TokenBlacklist = (*auth.RedisTokenBlacklist)(nil)
)

func TestInMemoryTokenBlacklist(t *testing.T) {
	ctx := context.Background()

	t.Run("blacklisted jti is reported, others are not", func(t *testing.T) {
		bl := auth.NewInMemoryTokenBlacklist()
		require.NoError(t, bl.AddToBlacklist(ctx, "jti-1", time.Hour))

		hit, err := bl.IsBlacklisted(ctx, "jti-1")
		require.NoError(t, err)
		assert.True(t, hit)

		miss, err := bl.IsBlacklisted(ctx, "jti-2")
		require.NoError(t, err)
		assert.False(t, miss)
	})

	t.Run("entries lapse with their ttl", func(t *testing.T) {
		bl := auth.NewInMemoryTokenBlacklist()
		require.NoError(t, bl.AddToBlacklist(ctx, "short-lived", time.Millisecond))

		time.Sleep(10 * time.Millisecond)

		hit, err := bl.IsBlacklisted(ctx, "short-lived")
		require.NoError(t, err)
		assert.False(t, hit)
	})

	t.Run("many independent entries", func(t *testing.T) {
		bl := auth.NewInMemoryTokenBlacklist()
		for i := 0; i < 10; i++ {
			require.NoError(t, bl.AddToBlacklist(ctx, fmt.Sprintf("jti-%d", i), time.Hour))
		}
		for i := 0; i < 10; i++ {
			hit, err := bl.IsBlacklisted(ctx, fmt.Sprintf("jti-%d", i))
			require.NoError(t, err)
			assert.True(t, hit, "jti-%d", i)
		}
	})
}

func TestInMemoryTokenBlacklistUserInvalidation(t *testing.T) {
	ctx := context.Background()
	bl := auth.NewInMemoryTokenBlacklist()

	issuedBefore := time.Now().Add(-time.Hour)

	invalid, err := bl.IsUserTokenInvalidated(ctx, "user-1", issuedBefore)
	require.NoError(t, err)
	assert.False(t, invalid, "nothing invalidated yet")

	require.NoError(t, bl.AddUserTokensToBlacklist(ctx, "user-1", time.Hour))

	invalid, err = bl.IsUserTokenInvalidated(ctx, "user-1", issuedBefore)
	require.NoError(t, err)
	assert.True(t, invalid, "tokens issued before the cutoff are dead")

	time.Sleep(2 * time.Millisecond)
	invalid, err = bl.IsUserTokenInvalidated(ctx, "user-1", time.Now().Add(time.Second))
	require.NoError(t, err)
	assert.False(t, invalid, "tokens issued after the cutoff survive")

	invalid, err = bl.IsUserTokenInvalidated(ctx, "user-2", issuedBefore)
	require.NoError(t, err)
	assert.False(t, invalid, "other users are untouched")
}

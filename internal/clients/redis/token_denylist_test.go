package redis

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/quizbank-backend/internal/platform/logger"
)

func TestTTLUntil(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Duration(0), ttlUntil(now, now.Add(-time.Minute)))
	assert.Equal(t, time.Second, ttlUntil(now, now.Add(10*time.Millisecond)))
	assert.Equal(t, time.Hour, ttlUntil(now, now.Add(time.Hour)))
}

func TestTokenDenylistAgainstRedis(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("set TEST_REDIS_ADDR to run redis integration tests")
	}
	d, err := NewTokenDenylist(logger.Nop(), Config{Addr: addr, KeyPrefix: "quizbank:test:" + uuid.NewString() + ":"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })

	ctx := context.Background()
	jti := uuid.NewString()

	revoked, err := d.IsRevoked(ctx, jti)
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, d.Revoke(ctx, jti, uuid.New(), time.Now().Add(time.Minute)))
	revoked, err = d.IsRevoked(ctx, jti)
	require.NoError(t, err)
	assert.True(t, revoked)
}

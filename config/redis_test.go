package config

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisOptions(t *testing.T) {
	t.Setenv("REDIS_URL", "")
	t.Setenv("REDIS_ADDR", "")
	_, err := NewRedisClient(context.Background())
	assert.ErrorIs(t, err, ErrRedisNotConfigured)

	t.Setenv("REDIS_ADDR", "cache:6379")
	t.Setenv("REDIS_PASS", "secret")
	opts, err := redisOptions()
	require.NoError(t, err)
	assert.Equal(t, "cache:6379", opts.Addr)
	assert.Equal(t, "secret", opts.Password)

	t.Setenv("REDIS_URL", "redis://:pw@results:6380/3")
	opts, err = redisOptions()
	require.NoError(t, err)
	assert.Equal(t, "results:6380", opts.Addr)
	assert.Equal(t, 3, opts.DB)

	t.Setenv("REDIS_URL", "http://nope")
	_, err = redisOptions()
	assert.ErrorContains(t, err, "parse REDIS_URL")
}

package main

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRevokeToken(t *testing.T) {
	mr := miniredis.RunT(t)
	t.Setenv("REDIS_URL", "redis://"+mr.Addr())

	require.NoError(t, revokeToken(context.Background(), "jti-1", time.Now().Add(time.Hour)))
	assert.True(t, mr.Exists("gamecontest:revoked:jti-1"))
}

func TestRevokeToken_RequiresRedis(t *testing.T) {
	t.Setenv("REDIS_URL", "")
	assert.Error(t, revokeToken(context.Background(), "jti-1", time.Now().Add(time.Hour)))
}

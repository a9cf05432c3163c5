package middleware

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRateLimiter_NonPositiveSettings(t *testing.T) {
	// A zero or negative configured rate must not divide by zero
	rl := NewRateLimiter(0, 0)
	require.NotNil(t, rl)
	assert.True(t, rl.GetLimiter("10.0.0.1").Allow(), "floor of one request per minute")

	rl = NewRateLimiter(-5, -1)
	require.NotNil(t, rl)
	assert.True(t, rl.GetLimiter("10.0.0.2").Allow())
}

func TestRateLimiter_PerClientBuckets(t *testing.T) {
	rl := NewRateLimiter(60, 1)

	// Burst of one: first request passes, the immediate second does not
	assert.True(t, rl.GetLimiter("10.0.0.1").Allow())
	assert.False(t, rl.GetLimiter("10.0.0.1").Allow())

	// A different client has its own bucket
	assert.True(t, rl.GetLimiter("10.0.0.2").Allow())
}

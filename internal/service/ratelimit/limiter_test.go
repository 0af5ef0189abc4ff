package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAllowConsumesCapacity(t *testing.T) {
	l := New()

	for i := 0; i < 3; i++ {
		assert.True(t, l.Allow("1.2.3.4", 3, 0))
	}
	assert.False(t, l.Allow("1.2.3.4", 3, 0))
}

func TestKeysHaveIndependentBuckets(t *testing.T) {
	l := New()

	assert.True(t, l.Allow("a", 1, 0))
	assert.False(t, l.Allow("a", 1, 0))
	assert.True(t, l.Allow("b", 1, 0))
}

func TestRefillRestoresTokens(t *testing.T) {
	l := New()

	assert.True(t, l.Allow("k", 1, 2))
	assert.False(t, l.Allow("k", 1, 2))

	// Backdate the bucket one second; at 2 tokens/sec that refills it.
	l.mu.Lock()
	l.m["k"].last = time.Now().Add(-time.Second)
	l.mu.Unlock()

	assert.True(t, l.Allow("k", 1, 2))
}

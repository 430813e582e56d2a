package ratelimiter

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBucketAllow(t *testing.T) {
	t.Run("allows requests within the rate limit", func(t *testing.T) {
		b := &bucket{
			tokens:     10,
			capacity:   10,
			rate:       1,
			lastRefill: time.Now(),
		}

		assert.True(t, b.allow())
		assert.Equal(t, 9.0, b.tokens)
	})

	t.Run("denies requests when tokens are depleted", func(t *testing.T) {
		b := &bucket{
			tokens:     0,
			capacity:   10,
			rate:       1,
			lastRefill: time.Now(),
		}

		assert.False(t, b.allow())
	})

	t.Run("refills tokens over time", func(t *testing.T) {
		b := &bucket{
			tokens:     0,
			capacity:   10,
			rate:       1,
			lastRefill: time.Now().Add(-2 * time.Second),
		}

		assert.True(t, b.allow())
		assert.InDelta(t, 0.0, b.tokens, 1.1) // Account for potential slight time discrepancies
	})

	t.Run("does not exceed capacity", func(t *testing.T) {
		b := &bucket{
			tokens:     9,
			capacity:   10,
			rate:       1,
			lastRefill: time.Now().Add(-2 * time.Second),
		}

		b.allow()
		assert.Equal(t, 9.0, b.tokens)
	})
}

func TestGetBucket(t *testing.T) {
	t.Run("creates a new bucket for a new identity", func(t *testing.T) {
		rl := New(1, 10, time.Minute)
		defer rl.Stop()
		b := rl.getBucket("priya@webknot.in")

		require.NotNil(t, b)
		assert.Equal(t, 10.0, b.tokens)
		assert.Equal(t, "priya@webknot.in", b.identity)
	})

	t.Run("returns the existing bucket for the same identity", func(t *testing.T) {
		rl := New(1, 10, time.Minute)
		defer rl.Stop()
		b1 := rl.getBucket("user_1")
		b2 := rl.getBucket("user_1")

		assert.Same(t, b1, b2)
	})

	t.Run("creates different buckets for different identities", func(t *testing.T) {
		rl := New(1, 10, time.Minute)
		defer rl.Stop()
		b1 := rl.getBucket("user_1")
		b2 := rl.getBucket("user_2")

		assert.NotSame(t, b1, b2)
	})

	t.Run("concurrent access for bucket creation", func(t *testing.T) {
		rl := New(1, 10, time.Minute)
		defer rl.Stop()

		var wg sync.WaitGroup
		buckets := make([]*bucket, 10)
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				buckets[i] = rl.getBucket("user_1")
			}(i)
		}
		wg.Wait()

		for i := 1; i < 10; i++ {
			assert.Same(t, buckets[0], buckets[i])
		}
	})
}

func TestAllow(t *testing.T) {
	t.Run("separate budgets per identity", func(t *testing.T) {
		rl := New(0, 1, time.Minute) // no refill, 1 token
		defer rl.Stop()

		assert.True(t, rl.Allow("a"))
		assert.False(t, rl.Allow("a"))
		assert.True(t, rl.Allow("b"))
	})

	t.Run("concurrent requests", func(t *testing.T) {
		rl := New(0, 10, time.Minute)
		defer rl.Stop()

		var wg sync.WaitGroup
		var mu sync.Mutex
		allowed := 0
		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if rl.Allow("user_1") {
					mu.Lock()
					allowed++
					mu.Unlock()
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, 10, allowed)
	})
}

func TestIdleExpiration(t *testing.T) {
	rl := New(0, 1, 50*time.Millisecond)
	defer rl.Stop()

	assert.True(t, rl.Allow("a"))
	assert.False(t, rl.Allow("a"))

	// The idle timer should evict the bucket, restoring the full budget.
	assert.Eventually(t, func() bool {
		rl.mu.RLock()
		_, exists := rl.buckets["a"]
		rl.mu.RUnlock()
		return !exists
	}, time.Second, 10*time.Millisecond)

	assert.True(t, rl.Allow("a"))
}

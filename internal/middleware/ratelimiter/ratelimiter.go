// Package ratelimiter implements per-identity token buckets with idle
// expiration, used to throttle the OTP-sending and login endpoints.
package ratelimiter

import (
	"sync"
	"time"
)

type bucket struct {
	tokens     float64
	capacity   float64
	rate       float64
	lastRefill time.Time
	mu         sync.Mutex
	timer      *time.Timer
	identity   string
	parent     *UserRateLimiter
}

// UserRateLimiter keeps one token bucket per identity (email, IP, or a
// fixed key for global limits). Idle buckets expire to bound memory.
type UserRateLimiter struct {
	buckets        map[string]*bucket
	mu             sync.RWMutex
	rate           float64
	capacity       float64
	expirationTime time.Duration
}

// New creates a limiter refilling rate tokens per second up to capacity.
func New(rate, capacity float64, expirationTime time.Duration) *UserRateLimiter {
	return &UserRateLimiter{
		buckets:        make(map[string]*bucket),
		rate:           rate,
		capacity:       capacity,
		expirationTime: expirationTime,
	}
}

func (l *UserRateLimiter) cleanup(identity string) {
	l.mu.Lock()
	delete(l.buckets, identity)
	l.mu.Unlock()
}

func (b *bucket) resetTimer() {
	if b.timer != nil {
		b.timer.Stop()
	}
	b.timer = time.AfterFunc(b.parent.expirationTime, func() {
		b.parent.cleanup(b.identity)
	})
}

func (l *UserRateLimiter) getBucket(identity string) *bucket {
	l.mu.RLock()
	b, exists := l.buckets[identity]
	l.mu.RUnlock()

	if exists {
		b.resetTimer()
		return b
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	// Double-check after acquiring the write lock.
	b, exists = l.buckets[identity]
	if exists {
		b.resetTimer()
		return b
	}

	b = &bucket{
		tokens:     l.capacity,
		capacity:   l.capacity,
		rate:       l.rate,
		lastRefill: time.Now(),
		identity:   identity,
		parent:     l,
	}
	l.buckets[identity] = b
	b.resetTimer()

	return b
}

func (b *bucket) allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := time.Now()
	elapsed := now.Sub(b.lastRefill).Seconds()

	b.tokens += elapsed * b.rate
	if b.tokens > b.capacity {
		b.tokens = b.capacity
	}
	b.lastRefill = now

	if b.tokens >= 1 {
		b.tokens--
		return true
	}
	return false
}

// Allow reports whether a request for identity may proceed now.
func (l *UserRateLimiter) Allow(identity string) bool {
	return l.getBucket(identity).allow()
}

// Stop cancels all expiration timers.
func (l *UserRateLimiter) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, b := range l.buckets {
		if b.timer != nil {
			b.timer.Stop()
		}
	}
}

func OnceInSecond() *UserRateLimiter {
	return New(1, 1, 1*time.Hour)
}

func Rps100() *UserRateLimiter {
	return New(100, 100, 1*time.Hour)
}

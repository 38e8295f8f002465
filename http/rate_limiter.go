package http

import (
	"sync"
	"time"
)

const (
	bucketIdleThreshold = 1 * time.Hour
	sweepInterval       = 30 * time.Minute
)

type bucket struct {
	tokens     int
	windowEnds time.Time
}

// RateLimiter hands each client a fixed number of requests per window.
type RateLimiter struct {
	mu       sync.Mutex
	capacity int
	window   time.Duration
	now      func() time.Time
	buckets  map[string]*bucket
	done     chan struct{}
	stopOnce sync.Once
}

func NewRateLimiter(capacity int, window time.Duration) *RateLimiter {
	rl := newRateLimiter(capacity, window, time.Now)
	go rl.sweepLoop()
	return rl
}

func newRateLimiter(capacity int, window time.Duration, now func() time.Time) *RateLimiter {
	if capacity <= 0 {
		capacity = 1
	}
	if window <= 0 {
		window = time.Minute
	}
	return &RateLimiter{
		capacity: capacity,
		window:   window,
		now:      now,
		buckets:  make(map[string]*bucket),
		done:     make(chan struct{}),
	}
}

func (rl *RateLimiter) sweepLoop() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.sweep()
		case <-rl.done:
			return
		}
	}
}

// sweep forgets clients that have been quiet for a while.
func (rl *RateLimiter) sweep() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	for key, b := range rl.buckets {
		if now.Sub(b.windowEnds) > bucketIdleThreshold {
			delete(rl.buckets, key)
		}
	}
}

func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.done) })
}

// Allow consumes one request for key. When the bucket is empty it reports how
// long until the window resets.
func (rl *RateLimiter) Allow(key string) (bool, time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	b, ok := rl.buckets[key]
	if !ok || !now.Before(b.windowEnds) {
		rl.buckets[key] = &bucket{tokens: rl.capacity - 1, windowEnds: now.Add(rl.window)}
		return true, 0
	}

	if b.tokens <= 0 {
		return false, b.windowEnds.Sub(now)
	}
	b.tokens--
	return true, 0
}

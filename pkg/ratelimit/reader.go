// Package ratelimit bounds the aggregate read bandwidth of the hashing
// workers with a shared token bucket.
package ratelimit

import (
	"io"
	"sync"
	"time"
)

// Limiter controls the rate of data read across multiple readers. A nil
// Limiter performs no limiting.
type Limiter struct {
	bytesPerSecond int64
	mu             sync.Mutex
	tokens         int64     // Available tokens (bytes)
	lastUpdate     time.Time // Last time tokens were updated
	bucketSize     int64     // Maximum tokens (burst size)
}

// NewLimiter creates a limiter for the given bytes-per-second budget.
// Returns nil (no limiting) when the budget is zero or negative.
func NewLimiter(bytesPerSecond int64) *Limiter {
	if bytesPerSecond <= 0 {
		return nil
	}

	// Bucket size is 1 second worth of data or 64KB minimum for smooth reads
	bucketSize := bytesPerSecond
	if bucketSize < 65536 {
		bucketSize = 65536
	}

	return &Limiter{
		bytesPerSecond: bytesPerSecond,
		tokens:         bucketSize, // Start with a full bucket
		lastUpdate:     time.Now(),
		bucketSize:     bucketSize,
	}
}

// Wrap returns a reader whose reads draw tokens from the limiter. All
// readers wrapped by the same limiter share one budget. A nil limiter
// returns the reader unchanged.
func (l *Limiter) Wrap(r io.Reader) io.Reader {
	if l == nil {
		return r
	}
	return &reader{r: r, limiter: l}
}

type reader struct {
	r       io.Reader
	limiter *Limiter
}

// Read implements io.Reader using the token bucket algorithm.
func (r *reader) Read(p []byte) (int, error) {
	toRead := int64(len(p))
	if toRead > r.limiter.bucketSize {
		toRead = r.limiter.bucketSize
	}

	r.limiter.waitForTokens(toRead)

	n, err := r.r.Read(p[:toRead])
	if n > 0 {
		r.limiter.consumeTokens(int64(n))
	}

	return n, err
}

// waitForTokens blocks until enough tokens are available
func (l *Limiter) waitForTokens(needed int64) {
	for {
		l.mu.Lock()
		l.refillTokens()

		if l.tokens >= needed {
			l.mu.Unlock()
			return
		}

		deficit := needed - l.tokens
		waitTime := time.Duration(float64(deficit) / float64(l.bytesPerSecond) * float64(time.Second))
		if waitTime < time.Millisecond {
			waitTime = time.Millisecond
		}
		l.mu.Unlock()

		time.Sleep(waitTime)
	}
}

// refillTokens adds tokens based on elapsed time (must be called with lock held)
func (l *Limiter) refillTokens() {
	now := time.Now()
	elapsed := now.Sub(l.lastUpdate)

	tokensToAdd := int64(float64(elapsed) / float64(time.Second) * float64(l.bytesPerSecond))
	if tokensToAdd > 0 {
		l.tokens += tokensToAdd
		if l.tokens > l.bucketSize {
			l.tokens = l.bucketSize
		}
		l.lastUpdate = now
	}
}

// consumeTokens removes tokens after a read (must be called after waitForTokens)
func (l *Limiter) consumeTokens(n int64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.tokens -= n
	if l.tokens < 0 {
		l.tokens = 0
	}
}

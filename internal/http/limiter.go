package http

import (
	"sync"

	"golang.org/x/time/rate"
)

// clickLimiter hands out one token bucket per game.
type clickLimiter struct {
	mu       sync.Mutex
	limit    rate.Limit
	burst    int
	limiters map[string]*rate.Limiter
}

func newClickLimiter(perSecond float64, burst int) *clickLimiter {
	return &clickLimiter{
		limit:    rate.Limit(perSecond),
		burst:    burst,
		limiters: make(map[string]*rate.Limiter),
	}
}

func (l *clickLimiter) allow(gameID string) bool {
	l.mu.Lock()
	limiter, exists := l.limiters[gameID]
	if !exists {
		limiter = rate.NewLimiter(l.limit, l.burst)
		l.limiters[gameID] = limiter
	}
	l.mu.Unlock()
	return limiter.Allow()
}

func (l *clickLimiter) forget(gameID string) {
	l.mu.Lock()
	delete(l.limiters, gameID)
	l.mu.Unlock()
}

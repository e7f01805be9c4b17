package mw

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// LoginGuard tracks failed login attempts per client IP and locks the
// client out for the configured window once the threshold is crossed.
// Counters expire on their own, so a quiet client is forgiven.
type LoginGuard struct {
	attempts *cache.Cache
	max      int
}

// NewLoginGuard creates a guard allowing max failures per window.
func NewLoginGuard(max int, window time.Duration) *LoginGuard {
	return &LoginGuard{
		attempts: cache.New(window, 2*window),
		max:      max,
	}
}

// Allow reports whether the client may attempt a login.
func (g *LoginGuard) Allow(ip string) bool {
	n, found := g.attempts.Get(ip)
	return !found || n.(int) < g.max
}

// RecordFailure counts one failed attempt for the client.
func (g *LoginGuard) RecordFailure(ip string) {
	if _, err := g.attempts.IncrementInt(ip, 1); err != nil {
		g.attempts.SetDefault(ip, 1)
	}
}

// Reset clears the client's counter after a successful login.
func (g *LoginGuard) Reset(ip string) {
	g.attempts.Delete(ip)
}

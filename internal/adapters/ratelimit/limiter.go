// Package ratelimit frena dobles clicks sobre los botones.
package ratelimit

import (
	"sync"
	"time"
)

type UserLimiter struct {
	mu   sync.Mutex
	next map[string]time.Time
	win  time.Duration
	now  func() time.Time
}

func NewUserLimiter(window time.Duration) *UserLimiter {
	return &UserLimiter{next: map[string]time.Time{}, win: window, now: time.Now}
}

// Allow deja pasar una acción por usuario por ventana.
func (l *UserLimiter) Allow(userID string) bool {
	now := l.now()
	l.mu.Lock()
	defer l.mu.Unlock()
	if until, ok := l.next[userID]; ok && now.Before(until) {
		return false
	}
	l.next[userID] = now.Add(l.win)
	return true
}

package middleware

import (
	"sync"
	"time"
)

type clientInfo struct {
	start time.Time
	count int
}

// memoryLimiter is the in-process fixed window used when Redis is not
// available.
type memoryLimiter struct {
	mu      sync.Mutex
	clients map[string]*clientInfo
	now     func() time.Time
}

func newMemoryLimiter() *memoryLimiter {
	return &memoryLimiter{clients: make(map[string]*clientInfo), now: time.Now}
}

// hit counts a request for key and returns the count in the current window.
func (m *memoryLimiter) hit(key string, window time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	ci, ok := m.clients[key]
	if !ok || now.Sub(ci.start) >= window {
		if len(m.clients) > 10000 {
			m.sweep(now, window)
		}
		m.clients[key] = &clientInfo{start: now, count: 1}
		return 1
	}
	ci.count++
	return ci.count
}

func (m *memoryLimiter) sweep(now time.Time, window time.Duration) {
	for k, ci := range m.clients {
		if now.Sub(ci.start) >= window {
			delete(m.clients, k)
		}
	}
}

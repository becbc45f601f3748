package app

import "sync"

// SubmitLimiter предотвращает два одновременных submit по одной записи:
// хранилище не проверяет версии, и проигравший молча затёр бы победителя.
type SubmitLimiter struct {
	mu    sync.Mutex
	byKey map[string]*sync.Mutex
}

func NewSubmitLimiter() *SubmitLimiter {
	return &SubmitLimiter{byKey: make(map[string]*sync.Mutex)}
}

func (l *SubmitLimiter) lock(key string) func() {
	l.mu.Lock()
	m, ok := l.byKey[key]
	if !ok {
		m = &sync.Mutex{}
		l.byKey[key] = m
	}
	l.mu.Unlock()

	m.Lock()
	return func() { m.Unlock() }
}

package dialog

import "sync"

// sessionLocker hands out one mutex per session identifier so concurrent
// requests on the same session cannot interleave state mutations. Locks are
// never removed; the session space is small and process-local.
type sessionLocker struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newSessionLocker() *sessionLocker {
	return &sessionLocker{locks: make(map[string]*sync.Mutex)}
}

// Acquire locks the session's mutex and returns the unlock function.
func (l *sessionLocker) Acquire(sessionID string) func() {
	l.mu.Lock()
	m, ok := l.locks[sessionID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[sessionID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}

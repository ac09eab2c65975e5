package ioc

import "sync"

// lockedRegistry serializes access to a registry so registrations can
// race with lookups. Lookups of a child take the child's lock first and
// the parent's lock afterwards, never the other way round.
type lockedRegistry struct {
	mu sync.RWMutex
	r  builderRegistry
}

func newLockedRegistry(r builderRegistry) *lockedRegistry {
	return &lockedRegistry{r: r}
}

func (l *lockedRegistry) set(key Key, s *service) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.set(key, s)
}

func (l *lockedRegistry) get(key Key, fromChild bool) (*service, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.r.get(key, fromChild)
}

func (l *lockedRegistry) keys() []Key {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.r.keys()
}

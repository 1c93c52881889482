package usecase

import "sync"

// aggregateLocks serializes validate-then-commit per custom product id.
// Two concurrent mutations of the same aggregate could otherwise both
// validate against a stale snapshot and both commit; different aggregates
// proceed in parallel.
type aggregateLocks struct {
	mu    sync.Mutex
	locks map[uint]*sync.Mutex
}

func newAggregateLocks() *aggregateLocks {
	return &aggregateLocks{locks: make(map[uint]*sync.Mutex)}
}

// acquire blocks until the aggregate's lock is held and returns the release
// function.
func (l *aggregateLocks) acquire(id uint) func() {
	l.mu.Lock()
	m, ok := l.locks[id]
	if !ok {
		m = &sync.Mutex{}
		l.locks[id] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}

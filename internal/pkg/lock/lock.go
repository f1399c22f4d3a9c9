// Package lock provides per-player locking. The ledger's transactions keep
// storage consistent on their own; the lock keeps a single instance from
// racing itself through the read-validate-write of an answer submission.
package lock

import "sync"

// playerMutex wraps a mutex kept in the lock table.
type playerMutex struct {
	mu sync.Mutex
}

// PlayerLock provides per-player mutual exclusion keyed by principal.
type PlayerLock struct {
	locks sync.Map // map[string]*playerMutex
	pool  sync.Pool
}

// NewPlayerLock creates a new PlayerLock instance.
func NewPlayerLock() *PlayerLock {
	return &PlayerLock{
		pool: sync.Pool{
			New: func() any {
				return &playerMutex{}
			},
		},
	}
}

// getLock retrieves or creates the mutex for a player.
func (pl *PlayerLock) getLock(player string) *playerMutex {
	if v, ok := pl.locks.Load(player); ok {
		return v.(*playerMutex)
	}

	newLock := pl.pool.Get().(*playerMutex)
	actual, loaded := pl.locks.LoadOrStore(player, newLock)
	if loaded {
		// Another goroutine won the race; return ours to the pool.
		pl.pool.Put(newLock)
	}
	return actual.(*playerMutex)
}

// Lock acquires the lock for a player.
func (pl *PlayerLock) Lock(player string) {
	pl.getLock(player).mu.Lock()
}

// Unlock releases the lock for a player.
func (pl *PlayerLock) Unlock(player string) {
	if v, ok := pl.locks.Load(player); ok {
		v.(*playerMutex).mu.Unlock()
	}
}

// TryLock attempts to acquire the lock without blocking.
func (pl *PlayerLock) TryLock(player string) bool {
	return pl.getLock(player).mu.TryLock()
}

// WithLock executes fn while holding the player's lock.
func (pl *PlayerLock) WithLock(player string, fn func() error) error {
	pl.Lock(player)
	defer pl.Unlock(player)
	return fn()
}

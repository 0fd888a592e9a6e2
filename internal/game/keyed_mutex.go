// internal/game/keyed_mutex.go
package game

import "sync"

// keyedMutex serializes operations per game id. Every engine operation
// is a read-modify-write cycle against the store with no optimistic
// check on the record, so two concurrent operations on the same game
// must never interleave.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[string]*sync.Mutex)}
}

// Lock acquires the mutex for key and returns its unlock func.
func (k *keyedMutex) Lock(key string) func() {
	k.mu.Lock()
	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	k.mu.Unlock()
	m.Lock()
	return m.Unlock
}

// Forget drops the mutex for a deleted game. Callers must not hold it.
func (k *keyedMutex) Forget(key string) {
	k.mu.Lock()
	delete(k.locks, key)
	k.mu.Unlock()
}

package booking

import "sync"

// keyedMutex serializes critical sections per key. Entries are reference
// counted and removed once the last waiter releases, so the table stays
// proportional to the number of screenings with in-flight bookings rather
// than growing forever.
type keyedMutex struct {
	mu      sync.Mutex
	entries map[string]*lockEntry
}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{
		entries: make(map[string]*lockEntry),
	}
}

func (k *keyedMutex) Lock(key string) {
	k.mu.Lock()
	entry, ok := k.entries[key]
	if !ok {
		entry = &lockEntry{}
		k.entries[key] = entry
	}
	entry.refs++
	k.mu.Unlock()

	entry.mu.Lock()
}

func (k *keyedMutex) Unlock(key string) {
	k.mu.Lock()
	entry, ok := k.entries[key]
	if !ok {
		k.mu.Unlock()
		panic("unlock of unheld key")
	}
	entry.refs--
	if entry.refs == 0 {
		delete(k.entries, key)
	}
	k.mu.Unlock()

	entry.mu.Unlock()
}

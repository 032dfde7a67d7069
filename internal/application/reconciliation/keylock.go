package reconciliation

import (
	"sort"
	"sync"
)

// KeyedMutex serializes work per string key. Acquiring multiple keys always
// happens in sorted order so two callers locking overlapping key sets cannot
// deadlock.
type KeyedMutex struct {
	mu      sync.Mutex
	entries map[string]*keyEntry
}

type keyEntry struct {
	mu   sync.Mutex
	refs int
}

// NewKeyedMutex creates an empty keyed mutex
func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{entries: make(map[string]*keyEntry)}
}

// Lock acquires every key in sorted order and returns the matching unlock
// function. Duplicate keys are collapsed; locking no keys is a no-op.
func (k *KeyedMutex) Lock(keys []string) func() {
	unique := make([]string, 0, len(keys))
	seen := make(map[string]struct{}, len(keys))
	for _, key := range keys {
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, key)
	}
	sort.Strings(unique)

	acquired := make([]*keyEntry, 0, len(unique))
	for _, key := range unique {
		entry := k.acquire(key)
		entry.mu.Lock()
		acquired = append(acquired, entry)
	}

	locked := unique
	return func() {
		for i := len(acquired) - 1; i >= 0; i-- {
			acquired[i].mu.Unlock()
			k.release(locked[i])
		}
	}
}

func (k *KeyedMutex) acquire(key string) *keyEntry {
	k.mu.Lock()
	defer k.mu.Unlock()
	entry, ok := k.entries[key]
	if !ok {
		entry = &keyEntry{}
		k.entries[key] = entry
	}
	entry.refs++
	return entry
}

func (k *KeyedMutex) release(key string) {
	k.mu.Lock()
	defer k.mu.Unlock()
	entry, ok := k.entries[key]
	if !ok {
		return
	}
	entry.refs--
	if entry.refs == 0 {
		delete(k.entries, key)
	}
}

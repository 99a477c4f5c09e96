// Package cache is the client-side data-consistency layer: a keyed,
// in-memory cache of server responses indexed by semantic query. It keeps
// independently-fetched views that overlap on the same underlying item in
// agreement across optimistic mutations, and drops stale in-flight reads
// that would otherwise clobber an optimistic write.
package cache

import (
	"strings"
	"sync"
)

// Key is a semantic cache identifier, e.g. "posts/feed" or
// "posts/detail/42". Keys form families by path prefix.
type Key string

// NewKey joins path segments into a Key
func NewKey(parts ...string) Key {
	return Key(strings.Join(parts, "/"))
}

// HasPrefix reports whether the key belongs to the given key family
func (k Key) HasPrefix(prefix Key) bool {
	if k == prefix {
		return true
	}
	return strings.HasPrefix(string(k), string(prefix)+"/")
}

type entry struct {
	value   any
	version uint64
	stale   bool
}

// Store is a mutex-guarded map of semantic keys to cached server
// responses. Every write bumps the entry's version; reads that began
// before a write commit with PutIfVersion and are silently dropped when
// the version moved, so the last request wins and in-flight reads never
// clobber an optimistic write.
type Store struct {
	mu      sync.RWMutex
	entries map[Key]*entry
}

// NewStore creates an empty cache store
func NewStore() *Store {
	return &Store{
		entries: make(map[Key]*entry),
	}
}

// Get returns the cached value for a key and whether it is present. Stale
// entries are still returned; callers that must refetch check IsStale.
func (s *Store) Get(key Key) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[key]
	if !ok {
		return nil, false
	}
	return e.value, true
}

// GetFresh returns the cached value only when it is present and not marked
// stale
func (s *Store) GetFresh(key Key) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[key]
	if !ok || e.stale {
		return nil, false
	}
	return e.value, true
}

// Version returns the current version of a key, 0 when absent. A fetch
// records the version before its network call and commits with
// PutIfVersion.
func (s *Store) Version(key Key) uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if e, ok := s.entries[key]; ok {
		return e.version
	}
	return 0
}

// Put stores a value unconditionally, bumping the version and clearing the
// stale mark
func (s *Store) Put(key Key, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.put(key, value)
}

func (s *Store) put(key Key, value any) {
	if e, ok := s.entries[key]; ok {
		e.value = value
		e.version++
		e.stale = false
		return
	}
	s.entries[key] = &entry{value: value, version: 1}
}

// PutIfVersion stores a value only when the key's version still matches
// the one observed before the fetch began. It returns false, leaving the
// entry untouched, when an intervening write (optimistic patch, restore,
// or a newer fetch) superseded the read.
func (s *Store) PutIfVersion(key Key, version uint64, value any) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		if version != 0 {
			return false
		}
		s.entries[key] = &entry{value: value, version: 1}
		return true
	}

	if e.version != version {
		return false
	}
	e.value = value
	e.version++
	e.stale = false
	return true
}

// UpdateIfVersion rewrites an entry in one critical section when the
// observed version still matches. The update function receives the current
// value (nil, false when absent) and returns the replacement. Used to
// append a fetched page to an existing pagination session.
func (s *Store) UpdateIfVersion(key Key, version uint64, update func(old any, ok bool) any) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		if version != 0 {
			return false
		}
		s.entries[key] = &entry{value: update(nil, false), version: 1}
		return true
	}

	if e.version != version {
		return false
	}
	e.value = update(e.value, true)
	e.version++
	e.stale = false
	return true
}

// Invalidate marks entries stale without discarding their values. The next
// read of a stale key reconciles with server truth.
func (s *Store) Invalidate(keys ...Key) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, key := range keys {
		if e, ok := s.entries[key]; ok {
			e.stale = true
		}
	}
}

// IsStale reports whether a key is present and marked stale
func (s *Store) IsStale(key Key) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[key]
	return ok && e.stale
}

// Remove deletes entries
func (s *Store) Remove(keys ...Key) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, key := range keys {
		delete(s.entries, key)
	}
}

// Clear discards every entry. Used on logout and session invalidation.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[Key]*entry)
}

// KeysWithPrefix returns every present key in the given key family
func (s *Store) KeysWithPrefix(prefix Key) []Key {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var keys []Key
	for key := range s.entries {
		if key.HasPrefix(prefix) {
			keys = append(keys, key)
		}
	}
	return keys
}

// Len returns the number of cached entries
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

package cache

import (
	"context"
)

// PatchFunc rewrites one cached entry to its intended post-mutation state.
// It must return a modified copy rather than mutate the value in place:
// the original value is retained as the rollback snapshot. Returning
// false leaves the entry untouched (the item is absent from that view).
type PatchFunc func(key Key, value any) (any, bool)

type snapshotEntry struct {
	value any
	stale bool
}

// Snapshot captures the pre-mutation state of the entries an optimistic
// patch touched
type Snapshot struct {
	entries map[Key]snapshotEntry
}

// Keys returns the keys captured by the snapshot
func (s *Snapshot) Keys() []Key {
	keys := make([]Key, 0, len(s.entries))
	for key := range s.entries {
		keys = append(keys, key)
	}
	return keys
}

// Len returns the number of captured entries
func (s *Snapshot) Len() int {
	return len(s.entries)
}

// PatchWithSnapshot applies patch to every candidate key in one critical
// section, snapshotting each entry the patch actually rewrote. Absent keys
// and entries the patch declines are untouched and not snapshotted.
// Readers never observe a partially-applied patch: the whole pass happens
// under the store's write lock. Every touched entry's version is bumped so
// in-flight reads of the same key are superseded.
func (s *Store) PatchWithSnapshot(keys []Key, patch PatchFunc) *Snapshot {
	snap := &Snapshot{entries: make(map[Key]snapshotEntry)}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, key := range keys {
		e, ok := s.entries[key]
		if !ok {
			continue
		}
		if _, seen := snap.entries[key]; seen {
			continue
		}

		patched, applied := patch(key, e.value)
		if !applied {
			continue
		}

		snap.entries[key] = snapshotEntry{value: e.value, stale: e.stale}
		e.value = patched
		e.version++
	}

	return snap
}

// Restore puts every snapshotted entry back verbatim in one critical
// section, discarding the optimistic rewrite. Versions are bumped again so
// fetches issued between patch and restore are also dropped.
func (s *Store) Restore(snap *Snapshot) {
	if snap == nil || len(snap.entries) == 0 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for key, prev := range snap.entries {
		e, ok := s.entries[key]
		if !ok {
			// Entry was removed while the call was in flight; recreate it
			// from the snapshot.
			s.entries[key] = &entry{value: prev.value, version: 1, stale: prev.stale}
			continue
		}
		e.value = prev.value
		e.stale = prev.stale
		e.version++
	}
}

// Mutation is one optimistic mutation: the candidate cache keys that could
// contain the affected item, the patch producing the intended
// post-mutation state, and the network call.
type Mutation struct {
	// Keys are the candidate container entries (feed-like views, the
	// item's detail key, per-author lists)
	Keys []Key
	// Patch rewrites a candidate entry, or declines when the item is not
	// in that view
	Patch PatchFunc
	// Call issues the mutation request. Once sent it always runs to
	// completion; only its outcome decides commit or revert.
	Call func(ctx context.Context) error
}

// Mutate runs the optimistic-update protocol: synchronously patch every
// candidate view, issue the call, then invalidate the touched keys on
// success or restore the snapshots verbatim on failure. The error from the
// call is returned as-is after rollback.
func Mutate(ctx context.Context, s *Store, m Mutation) error {
	snap := s.PatchWithSnapshot(m.Keys, m.Patch)

	if err := m.Call(ctx); err != nil {
		s.Restore(snap)
		return err
	}

	s.Invalidate(snap.Keys()...)
	return nil
}

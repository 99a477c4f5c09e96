package veracity

import (
	"github.com/tyulyukov/veracity-go/cache"
)

// cachePages records a fetched page under a list view's cache key. An
// empty cursor starts a fresh pagination session and replaces the cached
// page set; a non-empty cursor appends. The version observed before the
// fetch guards the write: when an optimistic patch or a newer session
// superseded the read, the page is dropped instead of clobbering the
// cache.
func cachePages[P any](store *cache.Store, key cache.Key, version uint64, reset bool, page P) {
	store.UpdateIfVersion(key, version, func(old any, ok bool) any {
		if !ok || reset {
			return []P{page}
		}
		pages, valid := old.([]P)
		if !valid {
			return []P{page}
		}
		next := make([]P, 0, len(pages)+1)
		next = append(next, pages...)
		next = append(next, page)
		return next
	})
}

// cacheItem records a fetched detail view under its key, guarded by the
// version observed before the fetch.
func cacheItem(store *cache.Store, key cache.Key, version uint64, item any) {
	store.PutIfVersion(key, version, item)
}

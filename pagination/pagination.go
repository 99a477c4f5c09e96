// Package pagination implements the cursor-based pagination contract shared
// by every list endpoint: a request carries an optional opaque cursor plus a
// limit, a response carries the page of items plus nextCursor, and a null
// nextCursor is the sole termination signal.
package pagination

import (
	"context"
	"net/url"
	"strconv"

	"github.com/tyulyukov/veracity-go/apperrors"
)

const (
	// DefaultLimit is used when a caller does not specify a page size
	DefaultLimit = 20
	// MaxLimit caps the page size sent to the server
	MaxLimit = 100
)

// Params are the common pagination query parameters
type Params struct {
	// Cursor is the opaque server-issued position token. Empty means the
	// first page.
	Cursor string
	// Limit is the requested page size
	Limit int
}

// Normalize clamps the limit into the allowed range, applying the default
// when unset
func (p Params) Normalize() Params {
	if p.Limit <= 0 || p.Limit > MaxLimit {
		p.Limit = DefaultLimit
	}
	return p
}

// Apply writes the pagination parameters into query values. The cursor is
// omitted when empty; the limit is always sent.
func (p Params) Apply(q url.Values) {
	p = p.Normalize()
	if p.Cursor != "" {
		q.Set("cursor", p.Cursor)
	}
	q.Set("limit", strconv.Itoa(p.Limit))
}

// Page is one page of a paginated collection
type Page[T any] struct {
	Items      []T
	NextCursor *string
}

// FetchFunc fetches a single page for the given parameters
type FetchFunc[T any] func(ctx context.Context, params Params) (Page[T], error)

// Pager walks a paginated collection one explicit page at a time. It never
// fetches ahead: each page is requested only when the caller asks for it,
// and traversal ends exactly when a page's nextCursor is null. Completion
// is never inferred from a short page.
type Pager[T any] struct {
	fetch   FetchFunc[T]
	limit   int
	cursor  string
	started bool
	done    bool
}

// NewPager creates a pager over a paginated collection
func NewPager[T any](limit int, fetch FetchFunc[T]) *Pager[T] {
	return &Pager[T]{
		fetch: fetch,
		limit: limit,
	}
}

// HasMore reports whether another page can be requested. It is true before
// the first fetch and turns false once a page returns a null nextCursor.
func (p *Pager[T]) HasMore() bool {
	return !p.done
}

// Next fetches the next page. Calling Next after the collection is
// exhausted returns apperrors.ErrPageExhausted. A failed fetch does not
// advance the cursor, so the same page can be retried.
func (p *Pager[T]) Next(ctx context.Context) ([]T, error) {
	if p.done {
		return nil, apperrors.ErrPageExhausted
	}

	page, err := p.fetch(ctx, Params{Cursor: p.cursor, Limit: p.limit})
	if err != nil {
		return nil, err
	}

	p.started = true
	if page.NextCursor == nil {
		p.done = true
	} else {
		p.cursor = *page.NextCursor
	}

	return page.Items, nil
}

// Reset returns the pager to the start of a fresh pagination session.
// Server-side ordering is only stable within one session, so callers
// re-sorting or refreshing must reset rather than continue.
func (p *Pager[T]) Reset() {
	p.cursor = ""
	p.started = false
	p.done = false
}

// Package cache holds the admin order-list page cache. Entries are keyed by
// the full filter combination plus page number; any filter change drops the
// whole cache, while status updates and deletions are patched into cached
// pages in place so totals stay consistent without a refetch.
package cache

import (
	"sync"

	"github.com/ZainJ5/tipuburger-server/internal/order"
)

// Key identifies one cached page. Two requests with the same Key are
// expected to converge to the same result.
type Key struct {
	DateFilter    string
	CustomDate    string
	TypeFilter    string
	StatusFilter  string
	PaymentFilter string
	BranchFilter  string
	Page          int
}

// Page is one cached list result.
type Page struct {
	Orders     []order.Order
	TotalCount int
	TotalPages int
}

type entry struct {
	page    Page
	version uint64
}

// PageCache is safe for concurrent use. Writes are version-guarded: a fetch
// started before an invalidation carries a stale version token and its late
// Put is discarded, so an old response can never overwrite newer state.
type PageCache struct {
	mu      sync.RWMutex
	entries map[Key]entry
	version uint64
}

func New() *PageCache {
	return &PageCache{entries: make(map[Key]entry)}
}

// Version returns the token a caller must hold through a fetch and hand back
// to Put.
func (c *PageCache) Version() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.version
}

func (c *PageCache) Get(key Key) (Page, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[key]
	if !ok {
		return Page{}, false
	}
	return e.page, true
}

// Put stores a page fetched under the given version token. Stale tokens are
// ignored.
func (c *PageCache) Put(key Key, version uint64, page Page) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if version != c.version {
		return false
	}
	c.entries[key] = entry{page: page, version: version}
	return true
}

// InvalidateAll drops every entry and bumps the version so in-flight fetches
// cannot repopulate stale data. Called on any filter dimension change.
func (c *PageCache) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[Key]entry)
	c.version++
}

// Invalidate drops a single page, forcing the next read through to the
// store. Used when a new-order notification arrives while page 1 of the
// current filter is displayed.
func (c *PageCache) Invalidate(key Key) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// InvalidateFirstPages drops the first page of every filter combination.
// A newly created order always lands on page 1 of whatever filter admits it,
// so the next page-1 read goes back to the store; deeper pages keep serving
// until their filter changes.
func (c *PageCache) InvalidateFirstPages() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.entries {
		if key.Page == 1 {
			delete(c.entries, key)
		}
	}
}

// Patch applies updater to the order in every cached page that contains it
// and reports whether anything matched. Totals are untouched: a patched
// order is still the same order.
func (c *PageCache) Patch(orderID int64, updater func(*order.Order)) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	patched := false
	for key, e := range c.entries {
		for i := range e.page.Orders {
			if e.page.Orders[i].ID != orderID {
				continue
			}
			updater(&e.page.Orders[i])
			c.entries[key] = e
			patched = true
		}
	}
	return patched
}

// Remove deletes the order from every cached page and decrements the cached
// totals.
func (c *PageCache) Remove(orderID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for key, e := range c.entries {
		kept := e.page.Orders[:0:0]
		removed := false
		for _, o := range e.page.Orders {
			if o.ID == orderID {
				removed = true
				continue
			}
			kept = append(kept, o)
		}
		if removed {
			e.page.Orders = kept
			if e.page.TotalCount > 0 {
				e.page.TotalCount--
			}
			c.entries[key] = e
		}
	}
}

// Len reports the number of cached pages, for logging.
func (c *PageCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

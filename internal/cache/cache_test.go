package cache

import (
	"testing"

	"github.com/ZainJ5/tipuburger-server/internal/order"
)

func pageWith(ids ...int64) Page {
	orders := make([]order.Order, 0, len(ids))
	for _, id := range ids {
		orders = append(orders, order.Order{ID: id, Status: order.StatusPending})
	}
	return Page{Orders: orders, TotalCount: len(orders), TotalPages: 1}
}

func TestPutAndGet(t *testing.T) {
	c := New()
	key := Key{StatusFilter: "active", Page: 1}

	if _, ok := c.Get(key); ok {
		t.Fatal("empty cache should miss")
	}

	if !c.Put(key, c.Version(), pageWith(1, 2)) {
		t.Fatal("put with current version should succeed")
	}

	page, ok := c.Get(key)
	if !ok || len(page.Orders) != 2 {
		t.Fatalf("expected cached page with 2 orders, got %+v", page)
	}
}

func TestInvalidateAllDiscardsStalePuts(t *testing.T) {
	c := New()
	key := Key{StatusFilter: "active", Page: 1}

	stale := c.Version()
	c.InvalidateAll()

	if c.Put(key, stale, pageWith(9)) {
		t.Fatal("a fetch started before invalidation must not repopulate the cache")
	}
	if _, ok := c.Get(key); ok {
		t.Fatal("stale page should not be visible")
	}

	if !c.Put(key, c.Version(), pageWith(9)) {
		t.Fatal("put with the fresh version should succeed")
	}
}

func TestInvalidateSinglePage(t *testing.T) {
	c := New()
	page1 := Key{Page: 1}
	page2 := Key{Page: 2}
	v := c.Version()
	c.Put(page1, v, pageWith(1))
	c.Put(page2, v, pageWith(2))

	c.Invalidate(page1)

	if _, ok := c.Get(page1); ok {
		t.Fatal("page 1 should be dropped")
	}
	if _, ok := c.Get(page2); !ok {
		t.Fatal("page 2 should survive a single-page invalidation")
	}
}

func TestPatchUpdatesEveryCachedPage(t *testing.T) {
	c := New()
	v := c.Version()
	c.Put(Key{Page: 1}, v, pageWith(1, 2))
	c.Put(Key{Page: 2, StatusFilter: "Pending"}, v, pageWith(2, 3))

	patched := c.Patch(2, func(o *order.Order) {
		o.Status = order.StatusDispatched
	})
	if !patched {
		t.Fatal("expected patch to find the order")
	}

	for _, key := range []Key{{Page: 1}, {Page: 2, StatusFilter: "Pending"}} {
		page, _ := c.Get(key)
		for _, o := range page.Orders {
			if o.ID == 2 && o.Status != order.StatusDispatched {
				t.Fatalf("order 2 not patched in %+v", key)
			}
			if o.ID != 2 && o.Status != order.StatusPending {
				t.Fatalf("unrelated order mutated in %+v", key)
			}
		}
	}

	if c.Patch(99, func(o *order.Order) {}) {
		t.Fatal("patching an uncached order should report false")
	}
}

func TestRemoveDropsOrderAndFixesTotals(t *testing.T) {
	c := New()
	v := c.Version()
	c.Put(Key{Page: 1}, v, pageWith(1, 2, 3))

	c.Remove(2)

	page, _ := c.Get(Key{Page: 1})
	if len(page.Orders) != 2 || page.TotalCount != 2 {
		t.Fatalf("expected 2 orders and totalCount 2, got %+v", page)
	}
	for _, o := range page.Orders {
		if o.ID == 2 {
			t.Fatal("order 2 should be gone")
		}
	}
}

func TestInvalidateFirstPages(t *testing.T) {
	c := New()
	v := c.Version()
	c.Put(Key{StatusFilter: "Pending", Page: 1}, v, pageWith(1))
	c.Put(Key{StatusFilter: "Complete", Page: 1}, v, pageWith(2))
	c.Put(Key{StatusFilter: "Pending", Page: 2}, v, pageWith(3))

	c.InvalidateFirstPages()

	if _, ok := c.Get(Key{StatusFilter: "Pending", Page: 1}); ok {
		t.Fatal("page 1 should be dropped for every filter")
	}
	if _, ok := c.Get(Key{StatusFilter: "Complete", Page: 1}); ok {
		t.Fatal("page 1 should be dropped for every filter")
	}
	if _, ok := c.Get(Key{StatusFilter: "Pending", Page: 2}); !ok {
		t.Fatal("deeper pages should survive a new-order invalidation")
	}
}

func TestDistinctFiltersAreDistinctKeys(t *testing.T) {
	c := New()
	v := c.Version()
	c.Put(Key{StatusFilter: "Pending", Page: 1}, v, pageWith(1))
	c.Put(Key{StatusFilter: "Complete", Page: 1}, v, pageWith(2))

	pending, _ := c.Get(Key{StatusFilter: "Pending", Page: 1})
	complete, _ := c.Get(Key{StatusFilter: "Complete", Page: 1})
	if pending.Orders[0].ID == complete.Orders[0].ID {
		t.Fatal("filter dimensions must partition the cache")
	}
}

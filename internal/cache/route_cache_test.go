package cache

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRouteCacheLoadStore(t *testing.T) {
	c := New()

	_, gen, ok := c.Load("/dashboard/invoices", "/dashboard/invoices?page=1")
	assert.False(t, ok)

	assert.True(t, c.Store("/dashboard/invoices", "/dashboard/invoices?page=1", gen, []byte("one")))

	body, _, ok := c.Load("/dashboard/invoices", "/dashboard/invoices?page=1")
	assert.True(t, ok)
	assert.Equal(t, "one", string(body))

	_, _, ok = c.Load("/dashboard/invoices", "/dashboard/invoices?page=2")
	assert.False(t, ok)
}

func TestRouteCacheInvalidate(t *testing.T) {
	c := New()
	_, gen, _ := c.Load("/dashboard/invoices", "a")
	c.Store("/dashboard/invoices", "a", gen, []byte("a"))
	c.Store("/dashboard/invoices", "b", gen, []byte("b"))
	_, otherGen, _ := c.Load("/dashboard/customers", "x")
	c.Store("/dashboard/customers", "x", otherGen, []byte("x"))

	c.Invalidate("/dashboard/invoices")

	_, _, ok := c.Load("/dashboard/invoices", "a")
	assert.False(t, ok)
	_, _, ok = c.Load("/dashboard/invoices", "b")
	assert.False(t, ok)
	_, _, ok = c.Load("/dashboard/customers", "x")
	assert.True(t, ok, "other routes are untouched")
}

func TestRouteCacheDropsStaleStore(t *testing.T) {
	c := New()
	_, gen, _ := c.Load("/dashboard/invoices", "a")

	// a mutation lands between the read and the store
	c.Invalidate("/dashboard/invoices")

	assert.False(t, c.Store("/dashboard/invoices", "a", gen, []byte("stale")))
	_, _, ok := c.Load("/dashboard/invoices", "a")
	assert.False(t, ok)
}

func TestRouteCacheConcurrent(t *testing.T) {
	c := New()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, gen, _ := c.Load("/r", "k")
			c.Store("/r", "k", gen, []byte("v"))
		}()
		go func() {
			defer wg.Done()
			c.Invalidate("/r")
		}()
	}
	wg.Wait()
}

func TestRouteCacheBoundsPagesPerRoute(t *testing.T) {
	c := New(WithMaxPages(2))
	_, gen, _ := c.Load("/dashboard/invoices", "a")
	c.Store("/dashboard/invoices", "a", gen, []byte("a"))
	c.Store("/dashboard/invoices", "b", gen, []byte("b"))

	// touch a so b is the least recently used
	_, _, ok := c.Load("/dashboard/invoices", "a")
	assert.True(t, ok)
	c.Store("/dashboard/invoices", "c", gen, []byte("c"))

	assert.Equal(t, 2, c.Len("/dashboard/invoices"))
	_, _, ok = c.Load("/dashboard/invoices", "b")
	assert.False(t, ok, "least recently used page evicted")
	_, _, ok = c.Load("/dashboard/invoices", "a")
	assert.True(t, ok)
}

func TestRouteCacheManyKeysStayBounded(t *testing.T) {
	c := New()
	_, gen, _ := c.Load("/r", "k0")
	for i := 0; i < 10*DefaultMaxPages; i++ {
		c.Store("/r", fmt.Sprintf("k%d", i), gen, []byte("body"))
	}
	assert.Equal(t, DefaultMaxPages, c.Len("/r"))
	assert.Zero(t, c.Len("/unknown"))
}

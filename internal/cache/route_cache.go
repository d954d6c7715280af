// Package cache keeps rendered responses per route so that mutations can mark
// a whole route stale in one call.
package cache

import (
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultMaxPages bounds how many bodies one route keeps. The least recently
// used body is evicted first.
const DefaultMaxPages = 256

type routeEntry struct {
	mu    sync.Mutex
	gen   uint64
	pages *lru.Cache[string, []byte]
}

// RouteCache maps a route path to the bodies rendered for it. Callers key
// bodies by whatever identifies a rendering of the route. It is safe for
// concurrent use.
type RouteCache struct {
	routes   sync.Map // route -> *routeEntry
	maxPages int
}

type Option func(*RouteCache)

// WithMaxPages overrides DefaultMaxPages. Values below 1 are ignored.
func WithMaxPages(n int) Option {
	return func(c *RouteCache) {
		if n > 0 {
			c.maxPages = n
		}
	}
}

func New(opts ...Option) *RouteCache {
	c := &RouteCache{maxPages: DefaultMaxPages}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *RouteCache) entry(route string) *routeEntry {
	if val, ok := c.routes.Load(route); ok {
		return val.(*routeEntry)
	}
	pages, err := lru.New[string, []byte](c.maxPages)
	if err != nil {
		// maxPages is always positive
		panic(err)
	}
	val, _ := c.routes.LoadOrStore(route, &routeEntry{pages: pages})
	return val.(*routeEntry)
}

// Load returns the cached body for key under route. The returned generation
// must be passed to Store when the caller renders a fresh body after a miss.
func (c *RouteCache) Load(route, key string) (body []byte, gen uint64, ok bool) {
	e := c.entry(route)
	e.mu.Lock()
	defer e.mu.Unlock()
	body, ok = e.pages.Get(key)
	return body, e.gen, ok
}

// Store caches body unless route was invalidated since gen was observed, in
// which case the body may be stale and is dropped.
func (c *RouteCache) Store(route, key string, gen uint64, body []byte) bool {
	e := c.entry(route)
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.gen != gen {
		return false
	}
	e.pages.Add(key, body)
	return true
}

// Invalidate marks everything cached for route stale.
func (c *RouteCache) Invalidate(route string) {
	e := c.entry(route)
	e.mu.Lock()
	e.gen++
	e.pages.Purge()
	e.mu.Unlock()
}

// Len reports how many bodies route currently holds.
func (c *RouteCache) Len(route string) int {
	val, ok := c.routes.Load(route)
	if !ok {
		return 0
	}
	e := val.(*routeEntry)
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pages.Len()
}

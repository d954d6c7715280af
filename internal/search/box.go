// Package search implements the debounced invoice search box: keystrokes
// settle for a quiet period before the listing URL is rewritten.
package search

import (
	"net/url"
	"sync"
	"time"
)

// DefaultDelay is the quiet period after the last keystroke.
const DefaultDelay = 300 * time.Millisecond

// Navigator moves to a new location without adding a history entry.
type Navigator interface {
	Replace(target string)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(target string)

func (f NavigatorFunc) Replace(target string) { f(target) }

type Option func(*Box)

// WithDelay overrides DefaultDelay.
func WithDelay(d time.Duration) Option {
	return func(b *Box) { b.delay = d }
}

// Box holds the search field state for one page. It is safe for concurrent
// use.
type Box struct {
	mu      sync.Mutex
	current *url.URL
	value   string
	nav     Navigator
	delay   time.Duration
	timer   *time.Timer
	seq     uint64
	pending bool
	wg      sync.WaitGroup
}

// NewBox seeds the field value from the query parameter of current.
func NewBox(current *url.URL, nav Navigator, opts ...Option) *Box {
	u := *current
	b := &Box{
		current: &u,
		value:   current.Query().Get("query"),
		nav:     nav,
		delay:   DefaultDelay,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Value is the text currently in the field.
func (b *Box) Value() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.value
}

// URL is the location the box last navigated to.
func (b *Box) URL() *url.URL {
	b.mu.Lock()
	defer b.mu.Unlock()
	u := *b.current
	return &u
}

// Type records a keystroke and restarts the quiet period.
func (b *Box) Type(term string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.value = term
	b.seq++
	seq := b.seq
	if b.timer != nil && b.timer.Stop() {
		b.wg.Done()
	}
	b.pending = true
	b.wg.Add(1)
	b.timer = time.AfterFunc(b.delay, func() {
		defer b.wg.Done()
		b.fire(seq)
	})
}

// fire commits the term typed as keystroke seq unless a later keystroke,
// Flush or Stop superseded it.
func (b *Box) fire(seq uint64) {
	b.mu.Lock()
	if seq != b.seq || !b.pending {
		b.mu.Unlock()
		return
	}
	target := b.commitLocked()
	b.mu.Unlock()

	b.nav.Replace(target)
}

func (b *Box) commitLocked() string {
	b.pending = false
	b.timer = nil
	u := Target(b.current, b.value)
	b.current = u
	return u.String()
}

// Flush commits a pending term now. It reports whether there was one.
func (b *Box) Flush() bool {
	b.mu.Lock()
	if !b.pending {
		b.mu.Unlock()
		return false
	}
	if b.timer.Stop() {
		b.wg.Done()
	}
	b.seq++
	target := b.commitLocked()
	b.mu.Unlock()

	b.nav.Replace(target)
	return true
}

// Stop drops a pending term and waits for any in-flight navigation.
func (b *Box) Stop() {
	b.mu.Lock()
	if b.pending {
		if b.timer.Stop() {
			b.wg.Done()
		}
		b.pending = false
		b.timer = nil
		b.seq++
	}
	b.mu.Unlock()

	b.wg.Wait()
}

// Target builds the location for term: the current path and parameters with
// page reset to 1 and query set, or removed when term is empty.
func Target(current *url.URL, term string) *url.URL {
	u := *current
	params := current.Query()
	params.Set("page", "1")
	if term != "" {
		params.Set("query", term)
	} else {
		params.Del("query")
	}
	u.RawQuery = params.Encode()
	u.Fragment = ""
	return &u
}

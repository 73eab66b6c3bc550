package assets

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Cache maps locators to load results. Concurrent requests for the same
// locator share one Loader call, and the result (success or failure) is kept
// until Reset.
type Cache struct {
	loader Loader

	mu      sync.Mutex
	results map[string]Result
	loads   int

	group singleflight.Group
}

// NewCache creates an empty Cache backed by loader.
func NewCache(loader Loader) *Cache {
	return &Cache{
		loader:  loader,
		results: make(map[string]Result),
	}
}

// Lookup returns the stored result for locator, if its load has finished.
func (c *Cache) Lookup(locator string) (Result, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	r, ok := c.results[locator]
	return r, ok
}

// Loads returns how many times the Loader has been called.
func (c *Cache) Loads() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loads
}

// Request asks for locator and returns immediately. done runs exactly once,
// through p, with the result. A finished result is posted without a new load.
func (c *Cache) Request(locator string, p Poster, done func(Result)) {
	if r, ok := c.Lookup(locator); ok {
		p.Post(func() { done(r) })
		return
	}
	go func() {
		v, _, _ := c.group.Do(locator, func() (any, error) {
			if r, ok := c.Lookup(locator); ok {
				return r, nil
			}
			return c.load(locator), nil
		})
		r := v.(Result)
		p.Post(func() { done(r) })
	}()
}

func (c *Cache) load(locator string) Result {
	c.mu.Lock()
	c.loads++
	c.mu.Unlock()

	a, err := c.loader.Load(context.Background(), locator)
	r := Result{Asset: a, Err: err}
	if err == nil && a == nil {
		r.Err = errNoAsset
	}

	c.mu.Lock()
	c.results[locator] = r
	c.mu.Unlock()
	return r
}

// Reset forgets every stored result. Loads already in flight still complete
// and store their results.
func (c *Cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.results = make(map[string]Result)
	c.loads = 0
}

var (
	sharedMu     sync.Mutex
	shared       *Cache
	sharedLoader Loader
)

// Shared returns the process-wide Cache, creating it on first use with the
// loader set by SetSharedLoader or DefaultLoader.
func Shared() *Cache {
	sharedMu.Lock()
	defer sharedMu.Unlock()
	if shared == nil {
		l := sharedLoader
		if l == nil {
			l = DefaultLoader("")
		}
		shared = NewCache(l)
	}
	return shared
}

// SetSharedLoader replaces the loader used by the process-wide Cache and
// drops the current one, so the next Shared call starts empty.
func SetSharedLoader(l Loader) {
	sharedMu.Lock()
	defer sharedMu.Unlock()
	sharedLoader = l
	shared = nil
}

// ResetShared clears the process-wide Cache.
func ResetShared() {
	sharedMu.Lock()
	c := shared
	sharedMu.Unlock()
	if c != nil {
		c.Reset()
	}
}

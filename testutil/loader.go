// Package testutil provides fakes shared by the package tests: an asset
// loader that counts and gates its calls, and a damage counter.
package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/comalice/regionfsm/assets"
)

// StubLoader serves fixed-size assets for known locators and fails for
// unknown ones. Calls block while the gate is closed.
type StubLoader struct {
	mu    sync.Mutex
	sizes map[string][2]int
	calls map[string]int
	gate  chan struct{}
}

// NewStubLoader creates an open StubLoader with no known locators.
func NewStubLoader() *StubLoader {
	return &StubLoader{
		sizes: make(map[string][2]int),
		calls: make(map[string]int),
	}
}

// Add makes locator load as a w×h asset.
func (l *StubLoader) Add(locator string, w, h int) *StubLoader {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sizes[locator] = [2]int{w, h}
	return l
}

// Hold makes subsequent loads block until Open is called.
func (l *StubLoader) Hold() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.gate = make(chan struct{})
}

// Open releases blocked loads.
func (l *StubLoader) Open() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.gate != nil {
		close(l.gate)
		l.gate = nil
	}
}

// Calls returns how many loads were issued for locator.
func (l *StubLoader) Calls(locator string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.calls[locator]
}

// Total returns how many loads were issued.
func (l *StubLoader) Total() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, c := range l.calls {
		n += c
	}
	return n
}

func (l *StubLoader) Load(ctx context.Context, locator string) (*assets.Asset, error) {
	l.mu.Lock()
	l.calls[locator]++
	gate := l.gate
	size, ok := l.sizes[locator]
	l.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if !ok {
		return nil, fmt.Errorf("stub: no asset %q", locator)
	}
	return &assets.Asset{Locator: locator, Width: size[0], Height: size[1]}, nil
}

// Cache returns a fresh cache backed by l.
func (l *StubLoader) Cache() *assets.Cache {
	return assets.NewCache(l)
}

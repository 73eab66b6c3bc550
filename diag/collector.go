package diag

import (
	"errors"
	"sync"
)

// Collector records every diagnostic it receives and optionally forwards
// it to another Reporter.
type Collector struct {
	mu      sync.Mutex
	next    Reporter
	entries []Diagnostic
}

// NewCollector creates a Collector forwarding to next, which may be nil.
func NewCollector(next Reporter) *Collector {
	return &Collector{next: next}
}

func (c *Collector) Report(d Diagnostic) {
	c.mu.Lock()
	c.entries = append(c.entries, d)
	c.mu.Unlock()
	if c.next != nil {
		c.next.Report(d)
	}
}

// Policy reports the forwarded reporter's policy, or Drop when there is none.
func (c *Collector) Policy() Policy {
	if c.next == nil {
		return Drop
	}
	return PolicyOf(c.next)
}

// Diagnostics returns a copy of the recorded diagnostics in arrival order.
func (c *Collector) Diagnostics() []Diagnostic {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Diagnostic(nil), c.entries...)
}

// Len returns the number of recorded diagnostics.
func (c *Collector) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Count returns how many recorded diagnostics have kind k.
func (c *Collector) Count(k Kind) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, d := range c.entries {
		if d.Kind == k {
			n++
		}
	}
	return n
}

// Err joins the recorded diagnostics into one error, or returns nil.
func (c *Collector) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Join(c.entries)
}

// Join turns diagnostics into a single error, or nil when ds is empty.
func Join(ds []Diagnostic) error {
	if len(ds) == 0 {
		return nil
	}
	errs := make([]error, len(ds))
	for i, d := range ds {
		errs[i] = d
	}
	return errors.Join(errs...)
}

package production

import (
	"sync"
	"sync/atomic"

	"github.com/comalice/regionfsm"
)

// ChannelPublisher forwards step records to a Go channel. Publish never
// blocks; records are dropped when the channel is full.
type ChannelPublisher struct {
	ch      chan<- regionfsm.StepRecord
	dropped atomic.Int64

	mu     sync.Mutex
	closed bool
}

// NewChannelPublisher creates a ChannelPublisher with the given output channel.
func NewChannelPublisher(ch chan<- regionfsm.StepRecord) *ChannelPublisher {
	return &ChannelPublisher{ch: ch}
}

func (p *ChannelPublisher) Publish(rec regionfsm.StepRecord) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	select {
	case p.ch <- rec:
	default:
		p.dropped.Add(1)
	}
}

// Dropped returns how many records were dropped on backpressure.
func (p *ChannelPublisher) Dropped() int64 {
	return p.dropped.Load()
}

// Close closes the output channel. Later publishes are ignored.
func (p *ChannelPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.closed {
		p.closed = true
		close(p.ch)
	}
	return nil
}

// MultiPublisher fans a record out to several publishers in order.
type MultiPublisher []regionfsm.Publisher

func (m MultiPublisher) Publish(rec regionfsm.StepRecord) {
	for _, p := range m {
		p.Publish(rec)
	}
}

package host

import (
	"context"
	"errors"
	"sync"
	"time"
)

// Source supplies pointer samples produced outside the root's goroutine.
type Source interface {
	Samples() <-chan Sample
}

// ChannelSource is a Source backed by a caller-owned channel.
type ChannelSource struct {
	ch chan Sample
}

// NewChannelSource wraps ch. Buffer it if producers must not block.
func NewChannelSource(ch chan Sample) *ChannelSource {
	return &ChannelSource{ch: ch}
}

func (s *ChannelSource) Samples() <-chan Sample {
	return s.ch
}

// ScriptSource replays a fixed list of samples, one per interval, and closes
// its channel after the last one or on Stop.
type ScriptSource struct {
	ch       chan Sample
	stop     chan struct{}
	stopOnce sync.Once
}

func NewScriptSource(samples []Sample, every time.Duration) *ScriptSource {
	s := &ScriptSource{
		ch:   make(chan Sample),
		stop: make(chan struct{}),
	}
	go s.run(samples, every)
	return s
}

func (s *ScriptSource) run(samples []Sample, every time.Duration) {
	defer close(s.ch)
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for _, smp := range samples {
		select {
		case <-ticker.C:
		case <-s.stop:
			return
		}
		select {
		case s.ch <- smp:
		case <-s.stop:
			return
		}
	}
}

func (s *ScriptSource) Samples() <-chan Sample {
	return s.ch
}

// Stop ends the replay early. It is safe to call more than once.
func (s *ScriptSource) Stop() {
	s.stopOnce.Do(func() { close(s.stop) })
}

// Pump forwards samples from src into r with Send until the source closes or
// ctx is done. Samples refused with ErrQueueFull are dropped and counted.
// The returned error is nil when the source closed.
func Pump(ctx context.Context, r *Root, src Source) (dropped int, err error) {
	samples := src.Samples()
	for {
		select {
		case <-ctx.Done():
			return dropped, ctx.Err()
		case s, ok := <-samples:
			if !ok {
				return dropped, nil
			}
			if err := r.Send(s); err != nil {
				if !errors.Is(err, ErrQueueFull) {
					return dropped, err
				}
				dropped++
				r.logger.Debug("sample dropped", "kind", s.Kind, "x", s.X, "y", s.Y)
			}
		}
	}
}

package host

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/comalice/regionfsm"
	"github.com/comalice/regionfsm/assets"
)

// ErrQueueFull is returned by Send when a tick's sample budget is used up.
var ErrQueueFull = errors.New("sample queue full")

// Canvas is the drawing surface a Root redraws.
type Canvas interface {
	// Clear erases the surface.
	Clear()
	// Draw paints one region at absolute bounds. Regions arrive back to
	// front.
	Draw(c *Component, r *regionfsm.Region, x, y, w, h float64)
	// Show presents the finished frame.
	Show()
}

// Sample is one pointer report handed over with Send.
type Sample struct {
	Kind regionfsm.RawKind
	X, Y float64

	// Pointer makes the sample a button-state report handled by
	// Root.Pointer; Kind is ignored and Down carries the button state.
	Pointer bool
	Down    bool
}

// Option configures a Root.
type Option func(*Root)

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Root) {
		r.logger = logger
	}
}

// WithQueue sets the continuation queue the root drains. The default is a
// new queue that wakes Run when something is posted.
func WithQueue(q *assets.Queue) Option {
	return func(r *Root) {
		r.queue = q
	}
}

// WithTickRate sets how often Run calls Tick. The default is 60 Hz.
func WithTickRate(d time.Duration) Option {
	return func(r *Root) {
		r.tickRate = d
	}
}

// WithMaxSamplesPerTick bounds how many samples Send queues between ticks.
// The default is 1000.
func WithMaxSamplesPerTick(n int) Option {
	return func(r *Root) {
		r.maxBatch = n
	}
}

// Root owns a canvas and the components drawn on it.
type Root struct {
	canvas   Canvas
	logger   *slog.Logger
	queue    *assets.Queue
	tickRate time.Duration
	maxBatch int

	comps   []*Component
	down    bool
	seen    bool
	px, py  float64
	inRound bool
	damaged bool
	redraws uint64

	batchMu sync.Mutex
	batch   []Sample
	tickNum uint64
	wake    chan struct{}
}

// New creates a Root drawing on canvas.
func New(canvas Canvas, opts ...Option) *Root {
	r := &Root{
		canvas:   canvas,
		tickRate: 16667 * time.Microsecond,
		maxBatch: 1000,
		wake:     make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	if r.queue == nil {
		r.queue = assets.NewQueue(r.notify)
	}
	return r
}

// Queue returns the continuation queue FSMs should post to, typically via
// regionfsm.WithPoster(root.Queue()).
func (r *Root) Queue() *assets.Queue { return r.queue }

// Components returns the components in drawing order.
func (r *Root) Components() []*Component { return r.comps }

// Redraws returns how many times the canvas was redrawn.
func (r *Root) Redraws() uint64 { return r.redraws }

// ButtonDown reports the tracked button state.
func (r *Root) ButtonDown() bool { return r.down }

// Add places m on the canvas at (x, y), above every earlier component, and
// registers the component as m's host.
func (r *Root) Add(m *regionfsm.FSM, x, y float64) *Component {
	c := &Component{root: r, fsm: m, disp: regionfsm.NewDispatcher(m), x: x, y: y}
	m.SetHost(c)
	r.comps = append(r.comps, c)
	r.logger.Debug("component added", "fsm", m.ID(), "x", x, "y", y)
	r.damage()
	return c
}

// Press dispatches a raw press at canvas coordinates.
func (r *Root) Press(x, y float64) { r.input(regionfsm.RawPress, x, y) }

// Move dispatches a raw move at canvas coordinates.
func (r *Root) Move(x, y float64) { r.input(regionfsm.RawMove, x, y) }

// Release dispatches a raw release at canvas coordinates.
func (r *Root) Release(x, y float64) { r.input(regionfsm.RawRelease, x, y) }

func (r *Root) input(kind regionfsm.RawKind, x, y float64) {
	r.round(func() { r.dispatch(kind, x, y) })
}

// Pointer translates a native pointer report, a position plus button state,
// into raw samples. A changed position is delivered as a move first. A
// button going down then yields a press, a button going up a release. A
// report with the button up while it was tracked as down is a release that
// happened off the surface; it is delivered as a release at (x, y).
func (r *Root) Pointer(x, y float64, down bool) {
	r.round(func() { r.pointer(x, y, down) })
}

func (r *Root) pointer(x, y float64, down bool) {
	if !r.seen || x != r.px || y != r.py {
		r.dispatch(regionfsm.RawMove, x, y)
	}
	switch {
	case down && !r.down:
		r.down = true
		r.dispatch(regionfsm.RawPress, x, y)
	case !down && r.down:
		r.down = false
		r.dispatch(regionfsm.RawRelease, x, y)
	}
}

// dispatch feeds a sample to every component, topmost first, in component
// coordinates.
func (r *Root) dispatch(kind regionfsm.RawKind, x, y float64) {
	if kind == regionfsm.RawMove {
		r.seen, r.px, r.py = true, x, y
	}
	for i := len(r.comps) - 1; i >= 0; i-- {
		c := r.comps[i]
		c.disp.Dispatch(kind, x-c.x, y-c.y)
	}
}

// Flush runs every pending asset continuation inside one round.
func (r *Root) Flush() int {
	var n int
	r.round(func() { n = r.drainAssets() })
	return n
}

func (r *Root) drainAssets() int {
	n := r.queue.Drain()
	for _, c := range r.comps {
		if q := c.fsm.AssetQueue(); q != nil && q != r.queue {
			n += q.Drain()
		}
	}
	return n
}

// Send queues a sample for the next Tick. It is safe to call from any
// goroutine.
func (r *Root) Send(s Sample) error {
	r.batchMu.Lock()
	defer r.batchMu.Unlock()
	if len(r.batch) >= r.maxBatch {
		return ErrQueueFull
	}
	r.batch = append(r.batch, s)
	return nil
}

// Tick processes every queued sample in arrival order and then every pending
// asset continuation, all in one round.
func (r *Root) Tick() {
	samples := r.collect()
	r.round(func() {
		for _, s := range samples {
			if s.Pointer {
				r.pointer(s.X, s.Y, s.Down)
			} else {
				r.dispatch(s.Kind, s.X, s.Y)
			}
		}
		r.drainAssets()
	})

	r.batchMu.Lock()
	r.tickNum++
	r.batchMu.Unlock()
}

// TickNumber returns how many ticks have completed.
func (r *Root) TickNumber() uint64 {
	r.batchMu.Lock()
	defer r.batchMu.Unlock()
	return r.tickNum
}

func (r *Root) collect() []Sample {
	r.batchMu.Lock()
	defer r.batchMu.Unlock()
	samples := r.batch
	r.batch = nil
	return samples
}

// Run calls Tick at the tick rate, and early when an asset continuation is
// posted to the default queue, until ctx is done. The goroutine calling Run
// becomes the root's owner.
func (r *Root) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.tickRate)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			r.Tick()
		case <-r.wake:
			r.Tick()
		}
	}
}

func (r *Root) notify() {
	select {
	case r.wake <- struct{}{}:
	default:
	}
}

// round runs fn with redraws deferred, then redraws once if anything was
// damaged. Nested rounds join the outer one.
func (r *Root) round(fn func()) {
	if r.inRound {
		fn()
		return
	}
	r.inRound = true
	defer func() {
		r.inRound = false
		if r.damaged {
			r.Redraw()
		}
	}()
	fn()
}

func (r *Root) damage() {
	r.damaged = true
	if !r.inRound {
		r.Redraw()
	}
}

// Redraw clears the canvas and paints every component's regions back to
// front: components in the order they were added, regions in declaration
// order. Damage raised while drawing is kept for the next round.
func (r *Root) Redraw() {
	if r.canvas == nil {
		r.damaged = false
		return
	}
	outer := r.inRound
	r.inRound = true
	r.damaged = false
	r.canvas.Clear()
	for _, c := range r.comps {
		for _, reg := range c.fsm.Regions() {
			x, y, w, h := reg.Bounds()
			r.canvas.Draw(c, reg, c.x+x, c.y+y, w, h)
		}
	}
	r.canvas.Show()
	r.inRound = outer
	r.redraws++
}

// Component is one FSM placed on a Root.
type Component struct {
	root *Root
	fsm  *regionfsm.FSM
	disp *regionfsm.Dispatcher
	x, y float64
}

func (c *Component) FSM() *regionfsm.FSM { return c.fsm }

func (c *Component) Dispatcher() *regionfsm.Dispatcher { return c.disp }

// Position returns the component's offset on the canvas.
func (c *Component) Position() (x, y float64) { return c.x, c.y }

// SetPosition moves the component.
func (c *Component) SetPosition(x, y float64) {
	if c.x == x && c.y == y {
		return
	}
	c.x, c.y = x, y
	c.root.damage()
}

// Damage implements regionfsm.Host.
func (c *Component) Damage() { c.root.damage() }

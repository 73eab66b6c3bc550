package regionfsm

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"

	"github.com/comalice/regionfsm/assets"
	"github.com/comalice/regionfsm/diag"
)

// Host receives damage notifications from an FSM. The host owns the canvas
// and decides when to redraw.
type Host interface {
	Damage()
}

// HostFunc adapts a function to Host.
type HostFunc func()

func (f HostFunc) Damage() { f() }

// StepRecord describes one fired transition.
type StepRecord struct {
	FSM        string
	From       string
	To         string
	Event      Event
	Transition *Transition
}

// Publisher observes fired transitions.
type Publisher interface {
	Publish(rec StepRecord)
}

// Option configures an FSM.
type Option func(*FSM)

// WithReporter sets the diagnostic reporter. The default is diag.Default().
func WithReporter(r diag.Reporter) Option {
	return func(m *FSM) {
		m.reporter = r
	}
}

// WithLogger sets the logger used for step tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(m *FSM) {
		m.logger = logger
	}
}

// WithAssetCache sets the asset cache. The default is assets.Shared().
func WithAssetCache(c *assets.Cache) Option {
	return func(m *FSM) {
		m.cache = c
	}
}

// WithPoster sets where asset continuations are posted. The default is a
// private queue reachable through FSM.AssetQueue.
func WithPoster(p assets.Poster) Option {
	return func(m *FSM) {
		m.poster = p
	}
}

// WithOutput sets where print and print_event actions write. The default is os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(m *FSM) {
		m.out = w
	}
}

// WithActionRunner replaces the action runner.
func WithActionRunner(r ActionRunner) Option {
	return func(m *FSM) {
		m.runner = r
	}
}

// WithPublisher registers a step observer.
func WithPublisher(p Publisher) Option {
	return func(m *FSM) {
		m.publisher = p
	}
}

// FSM owns regions and states and runs the step algorithm. It is not safe
// for concurrent use; every call, including asset continuations, must come
// from one goroutine.
type FSM struct {
	id string

	regions   []*Region
	regionIdx map[string]*Region
	states    []*State
	stateIdx  map[string]*State

	start   *State
	current *State

	diagnostics []diag.Diagnostic

	host      Host
	reporter  diag.Reporter
	logger    *slog.Logger
	cache     *assets.Cache
	poster    assets.Poster
	queue     *assets.Queue
	out       io.Writer
	runner    ActionRunner
	publisher Publisher
}

func newFSM(opts ...Option) *FSM {
	m := &FSM{
		id:        uuid.New().String(),
		regionIdx: make(map[string]*Region),
		stateIdx:  make(map[string]*State),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.reporter == nil {
		m.reporter = diag.Default()
	}
	if m.logger == nil {
		m.logger = slog.Default()
	}
	if m.cache == nil {
		m.cache = assets.Shared()
	}
	if m.poster == nil {
		m.queue = assets.NewQueue(nil)
		m.poster = m.queue
	}
	if m.out == nil {
		m.out = os.Stdout
	}
	if m.runner == nil {
		m.runner = DefaultActionRunner{}
	}
	return m
}

// ID is a unique instance id used in logs and step records.
func (m *FSM) ID() string { return m.id }

// Regions returns the regions in declaration (drawing) order.
func (m *FSM) Regions() []*Region { return m.regions }

// Region returns the region named name, or nil.
func (m *FSM) Region(name string) *Region { return m.regionIdx[name] }

// States returns the states in declaration order.
func (m *FSM) States() []*State { return m.states }

// State returns the state named name, or nil.
func (m *FSM) State(name string) *State { return m.stateIdx[name] }

// Start returns the first declared state, or nil when there are none.
func (m *FSM) Start() *State { return m.start }

// Current returns the current state, or nil when there are no states.
func (m *FSM) Current() *State { return m.current }

// Diagnostics returns the diagnostics raised while building the FSM.
func (m *FSM) Diagnostics() []diag.Diagnostic {
	return append([]diag.Diagnostic(nil), m.diagnostics...)
}

// AssetQueue returns the FSM's private continuation queue, or nil when a
// poster was supplied with WithPoster.
func (m *FSM) AssetQueue() *assets.Queue { return m.queue }

// SetHost registers the damage receiver.
func (m *FSM) SetHost(h Host) { m.host = h }

// Damage forwards a damage notification to the host.
func (m *FSM) Damage() {
	if m.host != nil {
		m.host.Damage()
	}
}

// Reset returns to the start state. Asset state is left alone.
func (m *FSM) Reset() {
	m.current = m.start
}

// Step delivers one event. The first transition of the current state whose
// EventSpec matches fires: its actions run in order, then the current state
// becomes its target when the target resolved. Step reports whether a
// transition fired.
func (m *FSM) Step(kind EventKind, r *Region) bool {
	if m.current == nil {
		return false
	}
	t := m.current.pick(kind, r)
	if t == nil {
		return false
	}

	ev := Event{Kind: kind, Region: r}
	for _, a := range t.actions {
		m.runner.Run(a, ev, m.out)
	}

	from := m.current
	if t.target != nil {
		m.current = t.target
	}

	if m.logger.Enabled(context.Background(), slog.LevelDebug) {
		m.logger.Debug("transition fired", "fsm", m.id, "from", from.name, "to", m.current.name, "event", ev.String())
	}
	if m.publisher != nil {
		m.publisher.Publish(StepRecord{
			FSM:        m.id,
			From:       from.name,
			To:         m.current.name,
			Event:      ev,
			Transition: t,
		})
	}
	return true
}

// Deliver is Step for an Event value.
func (m *FSM) Deliver(ev Event) bool {
	return m.Step(ev.Kind, ev.Region)
}

// LoadAssets requests the image of every region. Build calls it once after
// binding; it is idempotent.
func (m *FSM) LoadAssets() {
	for _, r := range m.regions {
		r.RequestAssetLoad()
	}
}

func (m *FSM) report(d diag.Diagnostic) {
	m.reporter.Report(d)
}

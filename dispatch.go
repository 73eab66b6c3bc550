package regionfsm

import (
	"fmt"
	"slices"
)

// RawKind is a raw pointer sample kind.
type RawKind int

const (
	RawPress RawKind = iota
	RawMove
	RawRelease
)

func (k RawKind) String() string {
	switch k {
	case RawPress:
		return "press"
	case RawMove:
		return "move"
	case RawRelease:
		return "release"
	}
	return fmt.Sprintf("RawKind(%d)", int(k))
}

// Dispatcher turns raw pointer samples into ordered high-level events for
// one FSM. It remembers which regions the pointer was inside after the last
// move sample.
type Dispatcher struct {
	fsm    *FSM
	inside []*Region
}

// NewDispatcher creates a Dispatcher feeding m.
func NewDispatcher(m *FSM) *Dispatcher {
	return &Dispatcher{fsm: m}
}

func (d *Dispatcher) FSM() *FSM { return d.fsm }

// Inside returns the regions the pointer was inside after the last move,
// topmost first.
func (d *Dispatcher) Inside() []*Region {
	return append([]*Region(nil), d.inside...)
}

// PickList returns every region containing (x, y), topmost (last declared)
// first.
func (d *Dispatcher) PickList(x, y float64) []*Region {
	var out []*Region
	regions := d.fsm.regions
	for i := len(regions) - 1; i >= 0; i-- {
		if regions[i].Pick(x, y) {
			out = append(out, regions[i])
		}
	}
	return out
}

// Translate computes the events for one raw sample, in delivery order, and
// updates the inside set for move samples. It does not deliver them.
//
// A move yields every exit, then every enter, then every move_inside, each
// group topmost first. A press yields a press per picked region. A release
// yields a release per picked region, or one release_none when nothing was
// picked.
func (d *Dispatcher) Translate(kind RawKind, x, y float64) []Event {
	picked := d.PickList(x, y)
	var evs []Event
	switch kind {
	case RawPress:
		for _, r := range picked {
			evs = append(evs, Event{Kind: Press, Region: r})
		}
	case RawRelease:
		if len(picked) == 0 {
			return []Event{{Kind: ReleaseNone}}
		}
		for _, r := range picked {
			evs = append(evs, Event{Kind: Release, Region: r})
		}
	case RawMove:
		for _, r := range d.inside {
			if !slices.Contains(picked, r) {
				evs = append(evs, Event{Kind: Exit, Region: r})
			}
		}
		for _, r := range picked {
			if !slices.Contains(d.inside, r) {
				evs = append(evs, Event{Kind: Enter, Region: r})
			}
		}
		for _, r := range picked {
			if slices.Contains(d.inside, r) {
				evs = append(evs, Event{Kind: MoveInside, Region: r})
			}
		}
		d.inside = picked
	}
	return evs
}

// Dispatch translates one raw sample and delivers the events to the FSM in
// order, returning them. Each event is stepped before the next is delivered.
func (d *Dispatcher) Dispatch(kind RawKind, x, y float64) []Event {
	evs := d.Translate(kind, x, y)
	for _, ev := range evs {
		d.fsm.Deliver(ev)
	}
	return evs
}

func (d *Dispatcher) Press(x, y float64) []Event { return d.Dispatch(RawPress, x, y) }
func (d *Dispatcher) Move(x, y float64) []Event { return d.Dispatch(RawMove, x, y) }
func (d *Dispatcher) Release(x, y float64) []Event { return d.Dispatch(RawRelease, x, y) }

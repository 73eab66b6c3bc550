package regionfsm

import "fmt"

// Transition pairs an EventSpec with a target state and ordered actions.
type Transition struct {
	targetName string
	target     *State
	event      EventSpec
	actions    []*Action
}

func (t *Transition) TargetName() string { return t.targetName }

// Target returns the resolved target state, or nil when the name did not resolve.
func (t *Transition) Target() *State { return t.target }

// Resolved reports whether the target state name resolved.
func (t *Transition) Resolved() bool { return t.target != nil }

func (t *Transition) Event() *EventSpec { return &t.event }

// Actions returns the actions in execution order.
func (t *Transition) Actions() []*Action { return t.actions }

// Match reports whether the transition's EventSpec matches.
func (t *Transition) Match(kind EventKind, r *Region) bool {
	return t.event.Match(kind, r)
}

func (t *Transition) String() string {
	return fmt.Sprintf("%s -> %s", &t.event, t.targetName)
}

// State is a named list of outgoing transitions. Transition order is match
// priority.
type State struct {
	name        string
	transitions []*Transition
}

func (s *State) Name() string { return s.name }

// Transitions returns the outgoing transitions in priority order.
func (s *State) Transitions() []*Transition { return s.transitions }

// pick returns the first transition matching the event, or nil.
func (s *State) pick(kind EventKind, r *Region) *Transition {
	for _, t := range s.transitions {
		if t.Match(kind, r) {
			return t
		}
	}
	return nil
}

func (s *State) String() string { return s.name }

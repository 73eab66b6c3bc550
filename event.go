package regionfsm

import "fmt"

// EventKind is the high-level event vocabulary the FSM consumes.
type EventKind int

const (
	NeverMatch EventKind = iota
	Press
	Release
	ReleaseNone
	Enter
	Exit
	MoveInside
	Any
)

var eventKindNames = [...]string{
	NeverMatch:  "nevermatch",
	Press:       "press",
	Release:     "release",
	ReleaseNone: "release_none",
	Enter:       "enter",
	Exit:        "exit",
	MoveInside:  "move_inside",
	Any:         "any",
}

func (k EventKind) String() string {
	if k >= 0 && int(k) < len(eventKindNames) {
		return eventKindNames[k]
	}
	return fmt.Sprintf("EventKind(%d)", int(k))
}

// ParseEventKind maps a document spelling to its EventKind.
func ParseEventKind(s string) (EventKind, bool) {
	for k, name := range eventKindNames {
		if name == s {
			return EventKind(k), true
		}
	}
	return NeverMatch, false
}

func (k EventKind) MarshalText() ([]byte, error) {
	if k < 0 || int(k) >= len(eventKindNames) {
		return nil, fmt.Errorf("invalid event kind %d", int(k))
	}
	return []byte(k.String()), nil
}

func (k *EventKind) UnmarshalText(b []byte) error {
	v, ok := ParseEventKind(string(b))
	if !ok {
		return fmt.Errorf("unknown event kind %q", b)
	}
	*k = v
	return nil
}

// needsRegion reports whether specs of this kind are bound to a region name.
func (k EventKind) needsRegion() bool {
	return k != NeverMatch && k != ReleaseNone
}

// Event is one high-level event delivered to an FSM. Region is nil for
// regionless events such as ReleaseNone.
type Event struct {
	Kind   EventKind
	Region *Region
}

func (e Event) String() string {
	if e.Region == nil {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s(%s)", e.Kind, e.Region.Name())
}

// Wildcard is the region name matching every region.
const Wildcard = "*"

func isWildcard(name string) bool {
	return name == "" || name == Wildcard
}

// Binding describes what an EventSpec's or Action's region name resolved to.
type Binding int

const (
	// Unbound means the kind takes no region.
	Unbound Binding = iota
	// BoundRegion means the name resolved to a live region.
	BoundRegion
	// BoundWildcard means the name was "" or "*".
	BoundWildcard
	// BindFailed means the name did not resolve; the owner is inert.
	BindFailed
)

func (b Binding) String() string {
	switch b {
	case Unbound:
		return "unbound"
	case BoundRegion:
		return "region"
	case BoundWildcard:
		return "wildcard"
	case BindFailed:
		return "failed"
	}
	return fmt.Sprintf("Binding(%d)", int(b))
}

// EventSpec matches incoming (kind, region) pairs.
type EventSpec struct {
	kind       EventKind
	regionName string
	binding    Binding
	region     *Region
}

func (s *EventSpec) Kind() EventKind { return s.kind }
func (s *EventSpec) RegionName() string { return s.regionName }
func (s *EventSpec) Binding() Binding { return s.binding }

// Region returns the bound region, or nil unless Binding is BoundRegion.
func (s *EventSpec) Region() *Region { return s.region }

// bind resolves the region name. It returns false when a required name did
// not resolve.
func (s *EventSpec) bind(lookup func(string) *Region) bool {
	s.region = nil
	switch {
	case !s.kind.needsRegion():
		s.binding = Unbound
	case isWildcard(s.regionName):
		s.binding = BoundWildcard
	default:
		if r := lookup(s.regionName); r != nil {
			s.binding = BoundRegion
			s.region = r
			return true
		}
		s.binding = BindFailed
		return false
	}
	return true
}

// Match reports whether an event of kind on region r satisfies the spec.
// It has no side effects.
func (s *EventSpec) Match(kind EventKind, r *Region) bool {
	if s.kind == NeverMatch || s.binding == BindFailed {
		return false
	}
	if s.kind == Any {
		if s.binding == BoundRegion {
			return r == s.region
		}
		return true
	}
	if s.kind != kind {
		return false
	}
	switch s.binding {
	case BoundRegion:
		return r == s.region
	case BoundWildcard:
		return r != nil
	default:
		return true
	}
}

func (s *EventSpec) String() string {
	if !s.kind.needsRegion() {
		return s.kind.String()
	}
	name := s.regionName
	if name == "" {
		name = Wildcard
	}
	return fmt.Sprintf("%s(%s)", s.kind, name)
}

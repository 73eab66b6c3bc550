package regionfsm

import (
	"fmt"
	"io"
)

// ActionKind is the fixed action vocabulary.
type ActionKind int

const (
	ActNone ActionKind = iota
	SetImage
	ClearImage
	Print
	PrintEvent
)

var actionKindNames = [...]string{
	ActNone:    "none",
	SetImage:   "set_image",
	ClearImage: "clear_image",
	Print:      "print",
	PrintEvent: "print_event",
}

func (k ActionKind) String() string {
	if k >= 0 && int(k) < len(actionKindNames) {
		return actionKindNames[k]
	}
	return fmt.Sprintf("ActionKind(%d)", int(k))
}

// ParseActionKind maps a document spelling to its ActionKind.
func ParseActionKind(s string) (ActionKind, bool) {
	for k, name := range actionKindNames {
		if name == s {
			return ActionKind(k), true
		}
	}
	return ActNone, false
}

func (k ActionKind) MarshalText() ([]byte, error) {
	if k < 0 || int(k) >= len(actionKindNames) {
		return nil, fmt.Errorf("invalid action kind %d", int(k))
	}
	return []byte(k.String()), nil
}

func (k *ActionKind) UnmarshalText(b []byte) error {
	v, ok := ParseActionKind(string(b))
	if !ok {
		return fmt.Errorf("unknown action kind %q", b)
	}
	*k = v
	return nil
}

func (k ActionKind) needsRegion() bool {
	return k == SetImage || k == ClearImage
}

// Action is one side effect of a firing transition.
type Action struct {
	kind       ActionKind
	regionName string
	param      string
	binding    Binding
	region     *Region
}

func (a *Action) Kind() ActionKind { return a.kind }
func (a *Action) RegionName() string { return a.regionName }
func (a *Action) Param() string { return a.param }
func (a *Action) Binding() Binding { return a.binding }

// Region returns the target region, or nil when the kind takes none or the
// name did not resolve.
func (a *Action) Region() *Region { return a.region }

// Inert reports whether firing the action does nothing.
func (a *Action) Inert() bool {
	return a.kind == ActNone || a.binding == BindFailed
}

func (a *Action) bind(lookup func(string) *Region) bool {
	a.region = nil
	if !a.kind.needsRegion() {
		a.binding = Unbound
		return true
	}
	if r := lookup(a.regionName); r != nil && !isWildcard(a.regionName) {
		a.binding = BoundRegion
		a.region = r
		return true
	}
	a.binding = BindFailed
	return false
}

// Execute performs the action for ev, writing print output to out.
func (a *Action) Execute(ev Event, out io.Writer) {
	if a.Inert() {
		return
	}
	switch a.kind {
	case SetImage:
		a.region.SetImageLoc(a.param)
	case ClearImage:
		a.region.SetImageLoc("")
	case Print:
		fmt.Fprintln(out, a.param)
	case PrintEvent:
		fmt.Fprintf(out, "%s %s\n", a.param, ev)
	}
}

func (a *Action) String() string {
	switch a.kind {
	case SetImage:
		return fmt.Sprintf("%s(%s, %q)", a.kind, a.regionName, a.param)
	case ClearImage:
		return fmt.Sprintf("%s(%s)", a.kind, a.regionName)
	case Print, PrintEvent:
		return fmt.Sprintf("%s(%q)", a.kind, a.param)
	}
	return a.kind.String()
}

// ActionRunner executes the actions of a firing transition.
type ActionRunner interface {
	Run(a *Action, ev Event, out io.Writer)
}

// ActionRunnerFunc adapts a function to ActionRunner.
type ActionRunnerFunc func(a *Action, ev Event, out io.Writer)

func (f ActionRunnerFunc) Run(a *Action, ev Event, out io.Writer) { f(a, ev, out) }

// DefaultActionRunner calls Action.Execute.
type DefaultActionRunner struct{}

func (DefaultActionRunner) Run(a *Action, ev Event, out io.Writer) { a.Execute(ev, out) }

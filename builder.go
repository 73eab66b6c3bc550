package regionfsm

import (
	"fmt"

	"github.com/comalice/regionfsm/diag"
	"github.com/comalice/regionfsm/internal/primitives"
)

// Build coerces a loosely typed document (as returned by Parse) and builds
// an FSM from it. See NewFSM.
func Build(loose any, opts ...Option) (*FSM, error) {
	m := newFSM(opts...)
	col := diag.NewCollector(m.reporter)
	m.assemble(Decode(loose, col), col)
	return m.finish(col)
}

// NewFSM builds and binds an FSM from a typed document.
//
// The returned FSM is always usable, possibly degraded: duplicate names are
// dropped, unresolved names leave their transition or action inert, and
// every problem is reported as a diagnostic. The error is non-nil only when
// the effective reporter's policy is diag.Escalate, and then joins every
// diagnostic raised while building.
func NewFSM(doc Document, opts ...Option) (*FSM, error) {
	m := newFSM(opts...)
	col := diag.NewCollector(m.reporter)
	m.assemble(doc, col)
	return m.finish(col)
}

func (m *FSM) finish(col *diag.Collector) (*FSM, error) {
	m.diagnostics = col.Diagnostics()
	m.LoadAssets()
	if diag.PolicyOf(m.reporter) == diag.Escalate {
		return m, col.Err()
	}
	return m, nil
}

// assemble creates regions and states from doc, then runs the binding pass.
func (m *FSM) assemble(doc Document, r diag.Reporter) {
	for i, rd := range doc.Regions {
		path := primitives.Key(primitives.Index("regions", i), "name")
		if rd.Name == "" {
			r.Report(diag.Diagnostic{Kind: diag.Schema, Path: path, Message: "empty region name"})
			continue
		}
		if _, dup := m.regionIdx[rd.Name]; dup {
			r.Report(diag.Diagnostic{Kind: diag.Duplicate, Path: path, Message: fmt.Sprintf("duplicate region %q dropped", rd.Name), Value: rd.Name})
			continue
		}
		reg := NewRegion(rd.Name, rd.X, rd.Y, rd.W, rd.H, rd.ImageLoc)
		reg.index = i
		m.regions = append(m.regions, reg)
		m.regionIdx[rd.Name] = reg
	}

	paths := make([]string, 0, len(doc.States))
	for i, sd := range doc.States {
		spath := primitives.Index("states", i)
		if sd.Name == "" {
			r.Report(diag.Diagnostic{Kind: diag.Schema, Path: primitives.Key(spath, "name"), Message: "empty state name"})
			continue
		}
		if _, dup := m.stateIdx[sd.Name]; dup {
			r.Report(diag.Diagnostic{Kind: diag.Duplicate, Path: primitives.Key(spath, "name"), Message: fmt.Sprintf("duplicate state %q dropped", sd.Name), Value: sd.Name})
			continue
		}
		s := &State{name: sd.Name}
		for _, td := range sd.Transitions {
			t := &Transition{
				targetName: td.Target,
				event:      EventSpec{kind: td.OnEvent.Type, regionName: td.OnEvent.Region},
				actions:    make([]*Action, 0, len(td.Actions)),
			}
			for _, ad := range td.Actions {
				t.actions = append(t.actions, &Action{kind: ad.Act, regionName: ad.Region, param: ad.Param})
			}
			s.transitions = append(s.transitions, t)
		}
		m.states = append(m.states, s)
		m.stateIdx[sd.Name] = s
		paths = append(paths, spath)
	}

	m.bind(paths, r)
}

// bind resolves every name reference once the full region and state
// collections exist, so forward references resolve.
func (m *FSM) bind(statePaths []string, r diag.Reporter) {
	for _, reg := range m.regions {
		reg.owner = m
	}

	if len(m.states) == 0 {
		r.Report(diag.Diagnostic{Kind: diag.Schema, Path: "states", Message: "no states declared"})
		return
	}

	for i, s := range m.states {
		for j, t := range s.transitions {
			tpath := primitives.Index(primitives.Key(statePaths[i], "transitions"), j)

			t.target = m.stateIdx[t.targetName]
			if t.target == nil {
				r.Report(diag.Diagnostic{Kind: diag.Reference, Path: primitives.Key(tpath, "target"), Message: fmt.Sprintf("unknown state %q", t.targetName), Value: t.targetName})
			}

			if !t.event.bind(m.Region) {
				r.Report(diag.Diagnostic{Kind: diag.Reference, Path: primitives.Key(tpath, "onEvent.region"), Message: fmt.Sprintf("unknown region %q", t.event.regionName), Value: t.event.regionName})
			}

			for k, a := range t.actions {
				if !a.bind(m.Region) {
					apath := primitives.Index(primitives.Key(tpath, "actions"), k)
					r.Report(diag.Diagnostic{Kind: diag.Reference, Path: primitives.Key(apath, "region"), Message: fmt.Sprintf("%s: unknown region %q", a.kind, a.regionName), Value: a.regionName})
				}
			}
		}
	}

	m.start = m.states[0]
	m.current = m.start
}

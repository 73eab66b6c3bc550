// Package production provides integrations around a running FSM: graph
// export, step publishing and action logging.
package production

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/comalice/regionfsm"
)

// DefaultVisualizer renders FSMs as Graphviz DOT.
type DefaultVisualizer struct{}

// ExportDOT generates Graphviz DOT source for m. States are nodes with the
// current state filled, transitions are edges labeled with their event spec,
// and regions are listed in a cluster with their bounds. Transitions whose
// target did not resolve point at a dashed node labeled "?name". Node IDs
// carry a "state:", "unresolved:" or "region:" prefix so the three kinds
// never collide whatever the names are.
func (v *DefaultVisualizer) ExportDOT(m *regionfsm.FSM) string {
	var buf bytes.Buffer
	buf.WriteString(`digraph RegionFSM {
  rankdir=LR;
  node [shape=box, fontsize=10, style=rounded];
  edge [fontsize=9];
`)

	renderRegions(&buf, m.Regions())

	for _, s := range m.States() {
		style := ""
		if s == m.Current() {
			style = ` style="rounded,filled" fillcolor=lightgreen`
		}
		if s == m.Start() {
			style += ` peripheries=2`
		}
		buf.WriteString(fmt.Sprintf("  %s [label=%s%s];\n", quote(stateID(s.Name())), quote(s.Name()), style))
	}

	unresolved := make(map[string]bool)
	for _, e := range collectEdges(m) {
		attrs := "label=" + quote(e.Label)
		to := stateID(e.To)
		if e.Dangling {
			to = "unresolved:" + e.To
			attrs += " style=dashed"
			if !unresolved[e.To] {
				unresolved[e.To] = true
				buf.WriteString(fmt.Sprintf("  %s [label=%s style=dashed color=red];\n", quote(to), quote("?"+e.To)))
			}
		}
		buf.WriteString(fmt.Sprintf("  %s -> %s [%s];\n", quote(stateID(e.From)), quote(to), attrs))
	}

	buf.WriteString("}\n")
	return buf.String()
}

// ExportJSON serializes a document in its canonical JSON form.
func (v *DefaultVisualizer) ExportJSON(doc regionfsm.Document) ([]byte, error) {
	return json.MarshalIndent(doc, "", "  ")
}

// Edge is one rendered transition between state names. A dangling edge's To
// is the unresolved target name.
type Edge struct {
	From     string
	To       string
	Label    string
	Dangling bool
}

func collectEdges(m *regionfsm.FSM) []Edge {
	var edges []Edge
	for _, s := range m.States() {
		for _, t := range s.Transitions() {
			e := Edge{From: s.Name(), Label: edgeLabel(t)}
			if t.Resolved() {
				e.To = t.Target().Name()
			} else {
				e.To = t.TargetName()
				e.Dangling = true
			}
			edges = append(edges, e)
		}
	}
	return edges
}

func stateID(name string) string { return "state:" + name }

func edgeLabel(t *regionfsm.Transition) string {
	label := t.Event().String()
	var acts []string
	for _, a := range t.Actions() {
		if a.Kind() != regionfsm.ActNone {
			acts = append(acts, a.String())
		}
	}
	if len(acts) > 0 {
		label += " / " + strings.Join(acts, "; ")
	}
	return label
}

func renderRegions(buf *bytes.Buffer, regions []*regionfsm.Region) {
	if len(regions) == 0 {
		return
	}
	buf.WriteString("  subgraph cluster_regions {\n")
	buf.WriteString(`    label="regions" style=dashed;` + "\n")
	for _, r := range regions {
		x, y, w, h := r.Bounds()
		label := fmt.Sprintf("%s\n%g,%g %gx%g", r.Name(), x, y, w, h)
		if loc := r.ImageLoc(); loc != "" {
			label += "\n" + loc
		}
		buf.WriteString(fmt.Sprintf("    %s [label=%s shape=note];\n", quote("region:"+r.Name()), quote(label)))
	}
	buf.WriteString("  }\n")
}

// quote renders s as a DOT string literal.
func quote(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`)
	return `"` + r.Replace(s) + `"`
}

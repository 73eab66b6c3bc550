// Package builder constructs regionfsm documents in code.
package builder

import (
	"github.com/comalice/regionfsm"
)

// Doc accumulates a regionfsm.Document.
type Doc struct {
	doc regionfsm.Document
}

// New starts an empty document.
func New() *Doc {
	return &Doc{}
}

// Region declares a fixed-size region.
func (d *Doc) Region(name string, x, y, w, h float64, imageLoc string) *Doc {
	d.doc.Regions = append(d.doc.Regions, regionfsm.RegionDoc{Name: name, X: x, Y: y, W: w, H: h, ImageLoc: imageLoc})
	return d
}

// AutoRegion declares a region sized by its image.
func (d *Doc) AutoRegion(name string, x, y float64, imageLoc string) *Doc {
	return d.Region(name, x, y, -1, -1, imageLoc)
}

// State declares a state. The first declared state is the start state.
func (d *Doc) State(name string, opts ...Option) *Doc {
	s := regionfsm.StateDoc{Name: name}
	for _, opt := range opts {
		opt(&s)
	}
	d.doc.States = append(d.doc.States, s)
	return d
}

// Document returns a copy of the accumulated document.
func (d *Doc) Document() regionfsm.Document {
	out := regionfsm.Document{
		Regions: append([]regionfsm.RegionDoc(nil), d.doc.Regions...),
		States:  make([]regionfsm.StateDoc, len(d.doc.States)),
	}
	for i, s := range d.doc.States {
		s.Transitions = append([]regionfsm.TransitionDoc(nil), s.Transitions...)
		out.States[i] = s
	}
	return out
}

// Build builds an FSM from the accumulated document.
func (d *Doc) Build(opts ...regionfsm.Option) (*regionfsm.FSM, error) {
	return regionfsm.NewFSM(d.Document(), opts...)
}

// Option configures a state.
type Option func(*regionfsm.StateDoc)

// On adds a transition to target, taken on kind over region ("" or "*" for
// any region), running actions in order.
func On(kind regionfsm.EventKind, region, target string, actions ...regionfsm.ActionDoc) Option {
	return func(s *regionfsm.StateDoc) {
		s.Transitions = append(s.Transitions, regionfsm.TransitionDoc{
			Target:  target,
			OnEvent: regionfsm.EventSpecDoc{Type: kind, Region: region},
			Actions: actions,
		})
	}
}

func SetImage(region, imageLoc string) regionfsm.ActionDoc {
	return regionfsm.ActionDoc{Act: regionfsm.SetImage, Region: region, Param: imageLoc}
}

func ClearImage(region string) regionfsm.ActionDoc {
	return regionfsm.ActionDoc{Act: regionfsm.ClearImage, Region: region}
}

func Print(msg string) regionfsm.ActionDoc {
	return regionfsm.ActionDoc{Act: regionfsm.Print, Param: msg}
}

func PrintEvent(msg string) regionfsm.ActionDoc {
	return regionfsm.ActionDoc{Act: regionfsm.PrintEvent, Param: msg}
}

func None() regionfsm.ActionDoc {
	return regionfsm.ActionDoc{Act: regionfsm.ActNone}
}

package regionfsm

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/comalice/regionfsm/diag"
	"github.com/comalice/regionfsm/internal/primitives"
)

// Document is the typed, immutable form of a declarative FSM description.
// Names are still unresolved strings; NewFSM binds them.
type Document struct {
	Regions []RegionDoc `json:"regions" yaml:"regions" msgpack:"regions"`
	States  []StateDoc  `json:"states" yaml:"states" msgpack:"states"`
}

// RegionDoc declares a region. A negative W or H means the size comes from
// the image.
type RegionDoc struct {
	Name     string  `json:"name" yaml:"name" msgpack:"name"`
	X        float64 `json:"x" yaml:"x" msgpack:"x"`
	Y        float64 `json:"y" yaml:"y" msgpack:"y"`
	W        float64 `json:"w" yaml:"w" msgpack:"w"`
	H        float64 `json:"h" yaml:"h" msgpack:"h"`
	ImageLoc string  `json:"imageLoc,omitempty" yaml:"imageLoc,omitempty" msgpack:"imageLoc,omitempty"`
}

type StateDoc struct {
	Name        string          `json:"name" yaml:"name" msgpack:"name"`
	Transitions []TransitionDoc `json:"transitions" yaml:"transitions" msgpack:"transitions"`
}

type TransitionDoc struct {
	Target  string       `json:"target" yaml:"target" msgpack:"target"`
	OnEvent EventSpecDoc `json:"onEvent" yaml:"onEvent" msgpack:"onEvent"`
	Actions []ActionDoc  `json:"actions,omitempty" yaml:"actions,omitempty" msgpack:"actions,omitempty"`
}

type EventSpecDoc struct {
	Type   EventKind `json:"evtType" yaml:"evtType" msgpack:"evtType"`
	Region string    `json:"region,omitempty" yaml:"region,omitempty" msgpack:"region,omitempty"`
}

type ActionDoc struct {
	Act    ActionKind `json:"act" yaml:"act" msgpack:"act"`
	Region string     `json:"region,omitempty" yaml:"region,omitempty" msgpack:"region,omitempty"`
	Param  string     `json:"param,omitempty" yaml:"param,omitempty" msgpack:"param,omitempty"`
}

// Format names a serialized document encoding.
type Format = primitives.Format

const (
	FormatYAML    = primitives.FormatYAML
	FormatJSON    = primitives.FormatJSON
	FormatMsgpack = primitives.FormatMsgpack
)

// ErrUnknownFormat is returned by Parse for formats it does not handle.
var ErrUnknownFormat = primitives.ErrUnknownFormat

// Parse decodes serialized text into the loosely typed values Build accepts.
func Parse(data []byte, format Format) (any, error) {
	return primitives.Decode(data, format)
}

// FormatFromPath picks a Format from a file extension, defaulting to YAML.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".msgpack", ".mpk":
		return FormatMsgpack
	}
	return FormatYAML
}

// ParseFile reads and decodes the document at path.
func ParseFile(path string) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data, FormatFromPath(path))
}

// Decode coerces loosely typed values into a Document. Every mismatch is
// reported to r and replaced with a safe default; Decode never fails.
func Decode(loose any, r diag.Reporter) Document {
	c := primitives.NewCoercer(r)
	var doc Document

	top, ok := primitives.Object(c, primitives.Field{Value: loose, Present: true, Path: "document"}, true)
	if !ok {
		return doc
	}

	for i, v := range primitives.Array(c, primitives.Get(top, "", "regions"), true) {
		path := primitives.Index("regions", i)
		obj, ok := primitives.Object(c, primitives.Field{Path: path, Value: v, Present: true}, true)
		if !ok {
			continue
		}
		doc.Regions = append(doc.Regions, RegionDoc{
			Name:     primitives.String(c, primitives.Get(obj, path, "name"), "", true),
			X:        primitives.Number(c, primitives.Get(obj, path, "x"), 0, false),
			Y:        primitives.Number(c, primitives.Get(obj, path, "y"), 0, false),
			W:        primitives.Number(c, primitives.Get(obj, path, "w"), -1, false),
			H:        primitives.Number(c, primitives.Get(obj, path, "h"), -1, false),
			ImageLoc: primitives.String(c, primitives.Get(obj, path, "imageLoc"), "", false),
		})
	}

	for i, v := range primitives.Array(c, primitives.Get(top, "", "states"), true) {
		path := primitives.Index("states", i)
		obj, ok := primitives.Object(c, primitives.Field{Path: path, Value: v, Present: true}, true)
		if !ok {
			continue
		}
		doc.States = append(doc.States, decodeState(c, obj, path))
	}
	return doc
}

func decodeState(c *primitives.Coercer, obj map[string]any, path string) StateDoc {
	s := StateDoc{
		Name: primitives.String(c, primitives.Get(obj, path, "name"), "", true),
	}
	tpath := primitives.Key(path, "transitions")
	for j, v := range primitives.Array(c, primitives.Get(obj, path, "transitions"), false) {
		p := primitives.Index(tpath, j)
		tobj, ok := primitives.Object(c, primitives.Field{Path: p, Value: v, Present: true}, true)
		if !ok {
			continue
		}
		s.Transitions = append(s.Transitions, decodeTransition(c, tobj, p))
	}
	return s
}

func decodeTransition(c *primitives.Coercer, obj map[string]any, path string) TransitionDoc {
	t := TransitionDoc{
		Target:  primitives.String(c, primitives.Get(obj, path, "target"), "", true),
		OnEvent: EventSpecDoc{Type: NeverMatch},
	}
	if ev, ok := primitives.Object(c, primitives.Get(obj, path, "onEvent"), true); ok {
		epath := primitives.Key(path, "onEvent")
		t.OnEvent = EventSpecDoc{
			Type:   primitives.Enum(c, primitives.Get(ev, epath, "evtType"), NeverMatch, true, ParseEventKind),
			Region: primitives.String(c, primitives.Get(ev, epath, "region"), "", false),
		}
	}
	apath := primitives.Key(path, "actions")
	for k, v := range primitives.Array(c, primitives.Get(obj, path, "actions"), false) {
		p := primitives.Index(apath, k)
		aobj, ok := primitives.Object(c, primitives.Field{Path: p, Value: v, Present: true}, true)
		if !ok {
			continue
		}
		t.Actions = append(t.Actions, ActionDoc{
			Act:    primitives.Enum(c, primitives.Get(aobj, p, "act"), ActNone, true, ParseActionKind),
			Region: primitives.String(c, primitives.Get(aobj, p, "region"), "", false),
			Param:  primitives.String(c, primitives.Get(aobj, p, "param"), "", false),
		})
	}
	return t
}

// Package primitives holds the Validator/Coercer: routines that turn the
// untyped values produced by a document decoder into the primitive and
// enumerated values the engine expects. A mismatch never fails; it reports a
// schema diagnostic and yields the caller's default.
package primitives

import (
	"encoding/json"
	"fmt"

	"github.com/comalice/regionfsm/diag"
)

// Coercer reports every substitution it makes to a diag.Reporter.
type Coercer struct {
	r diag.Reporter
}

// NewCoercer creates a Coercer. A nil r drops diagnostics.
func NewCoercer(r diag.Reporter) *Coercer {
	if r == nil {
		r = diag.ReporterFunc(func(diag.Diagnostic) {})
	}
	return &Coercer{r: r}
}

// Schemaf reports a schema diagnostic at path.
func (c *Coercer) Schemaf(path string, v any, format string, args ...any) {
	c.r.Report(diag.Diagnostic{Kind: diag.Schema, Path: path, Message: fmt.Sprintf(format, args...), Value: v})
}

// Key joins a parent path and a field name.
func Key(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

// Index joins a parent path and an array index.
func Index(path string, i int) string {
	return fmt.Sprintf("%s[%d]", path, i)
}

// Field is one looked-up member of a decoded object.
type Field struct {
	Path    string
	Value   any
	Present bool
}

// Get looks up key in obj.
func Get(obj map[string]any, path, key string) Field {
	v, ok := obj[key]
	return Field{Path: Key(path, key), Value: v, Present: ok}
}

// Coerce converts f with conv. An absent field yields def, with a diagnostic
// only when required. A present field conv rejects yields def with a
// diagnostic naming want.
func Coerce[T any](c *Coercer, f Field, want string, def T, required bool, conv func(any) (T, bool)) T {
	if !f.Present || f.Value == nil {
		if required {
			c.Schemaf(f.Path, nil, "missing %s", want)
		}
		return def
	}
	v, ok := conv(f.Value)
	if !ok {
		c.Schemaf(f.Path, f.Value, "expected %s, got %T", want, f.Value)
		return def
	}
	return v
}

// String coerces f to a string.
func String(c *Coercer, f Field, def string, required bool) string {
	return Coerce(c, f, "string", def, required, func(v any) (string, bool) {
		s, ok := v.(string)
		return s, ok
	})
}

// Number coerces f to a float64, accepting every numeric type the YAML, JSON
// and msgpack decoders produce.
func Number(c *Coercer, f Field, def float64, required bool) float64 {
	return Coerce(c, f, "number", def, required, toFloat)
}

// Enum coerces f to T through parse. A string parse rejects reports the
// unknown spelling and yields def.
func Enum[T any](c *Coercer, f Field, def T, required bool, parse func(string) (T, bool)) T {
	s := Coerce(c, f, "string", "", required, func(v any) (string, bool) {
		s, ok := v.(string)
		return s, ok
	})
	if !f.Present || f.Value == nil {
		return def
	}
	if _, isString := f.Value.(string); !isString {
		return def
	}
	v, ok := parse(s)
	if !ok {
		c.Schemaf(f.Path, s, "unknown value %q", s)
		return def
	}
	return v
}

// Array coerces f to a slice. Absent optional arrays yield nil silently.
func Array(c *Coercer, f Field, required bool) []any {
	return Coerce(c, f, "array", nil, required, func(v any) ([]any, bool) {
		a, ok := v.([]any)
		return a, ok
	})
}

// Object coerces f to a string-keyed map.
func Object(c *Coercer, f Field, required bool) (map[string]any, bool) {
	var ok bool
	m := Coerce(c, f, "object", nil, required, func(v any) (map[string]any, bool) {
		m, good := asObject(v)
		ok = good
		return m, good
	})
	return m, ok
}

func asObject(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			ks, ok := k.(string)
			if !ok {
				return nil, false
			}
			out[ks] = val
		}
		return out, true
	}
	return nil, false
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}

package primitives

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"
)

// Format names a serialized document encoding.
type Format string

const (
	FormatYAML    Format = "yaml"
	FormatJSON    Format = "json"
	FormatMsgpack Format = "msgpack"
)

// ErrUnknownFormat is returned by Decode for formats it does not handle.
var ErrUnknownFormat = errors.New("unknown document format")

// Decode parses data into loosely typed values: maps with string keys,
// []any, strings, numbers, bools and nil.
func Decode(data []byte, format Format) (any, error) {
	var v any
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &v); err != nil {
			return nil, fmt.Errorf("yaml unmarshal: %w", err)
		}
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&v); err != nil {
			return nil, fmt.Errorf("json unmarshal: %w", err)
		}
	case FormatMsgpack:
		if err := msgpack.Unmarshal(data, &v); err != nil {
			return nil, fmt.Errorf("msgpack unmarshal: %w", err)
		}
	default:
		return nil, fmt.Errorf("%q: %w", format, ErrUnknownFormat)
	}
	return normalize(v), nil
}

// normalize rewrites map[any]any nodes with string keys into map[string]any
// and msgpack bin values into strings. msgpack encodes TextMarshaler fields
// as bin.
func normalize(v any) any {
	switch n := v.(type) {
	case []byte:
		return string(n)
	case map[string]any:
		for k, val := range n {
			n[k] = normalize(val)
		}
		return n
	case map[any]any:
		m, ok := asObject(n)
		if !ok {
			return n
		}
		return normalize(m)
	case []any:
		for i, val := range n {
			n[i] = normalize(val)
		}
		return n
	}
	return v
}

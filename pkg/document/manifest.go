package document

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"slices"
)

// Manifest is a decoded JSON object such as composer.json or package.json.
// Accessors report absence, or a value of an unexpected type, as "not found";
// only malformed JSON is an error.
type Manifest struct {
	Path string
	data map[string]any
}

// ParseManifest decodes the content of a JSON manifest.
func ParseManifest(path string, content []byte) (*Manifest, error) {
	var v any
	if err := json.Unmarshal(content, &v); err != nil {
		return nil, fmt.Errorf("parse a manifest as JSON: %w", err)
	}
	data, ok := v.(map[string]any)
	if !ok {
		return nil, errors.New("parse a manifest: the top level must be a JSON object")
	}
	return &Manifest{
		Path: path,
		data: data,
	}, nil
}

// Lookup returns the value at a key path like ("config", "platform", "php").
func (m *Manifest) Lookup(keys ...string) (any, bool) {
	var cur any = m.data
	for _, key := range keys {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = obj[key]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// StringValue returns the string at a key path.
func (m *Manifest) StringValue(keys ...string) (string, bool) {
	v, ok := m.Lookup(keys...)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// StringMap returns the object at a key path, keeping only its string values.
// composer writes an empty object as [], which is accepted as an empty mapping.
func (m *Manifest) StringMap(keys ...string) (map[string]string, bool) {
	v, ok := m.Lookup(keys...)
	if !ok {
		return nil, false
	}
	switch obj := v.(type) {
	case map[string]any:
		ret := make(map[string]string, len(obj))
		for k, v := range obj {
			if s, ok := v.(string); ok {
				ret[k] = s
			}
		}
		return ret, true
	case []any:
		if len(obj) == 0 {
			return map[string]string{}, true
		}
	}
	return nil, false
}

// SortedKeys returns the keys of m in lexical order.
func SortedKeys[V any](m map[string]V) []string {
	return slices.Sorted(maps.Keys(m))
}

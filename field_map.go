package validation

import (
	"bytes"
	"encoding/json"
	"maps"
	"slices"
)

// ObjectKey is the FieldMap key for failures that name no property.
const ObjectKey = ""

// FieldMap maps property names to their error messages and remembers the
// order in which properties were first seen.
type FieldMap struct {
	keys   []string
	values map[string][]string
}

func (m *FieldMap) add(property, message string) {
	if m.values == nil {
		m.values = make(map[string][]string)
	}
	if _, ok := m.values[property]; !ok {
		m.keys = append(m.keys, property)
	}
	m.values[property] = append(m.values[property], message)
}

// Keys returns property names in first-seen order.
func (m FieldMap) Keys() []string {
	return slices.Clone(m.keys)
}

// Get returns the messages for property in failure order.
func (m FieldMap) Get(property string) []string {
	return slices.Clone(m.values[property])
}

func (m FieldMap) Has(property string) bool {
	_, ok := m.values[property]
	return ok
}

func (m FieldMap) Len() int {
	return len(m.keys)
}

// Map returns a plain map copy; key order is lost.
func (m FieldMap) Map() map[string][]string {
	out := make(map[string][]string, len(m.values))
	for k, v := range maps.All(m.values) {
		out[k] = slices.Clone(v)
	}
	return out
}

// MarshalJSON writes a JSON object whose keys follow first-seen order.
func (m FieldMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(m.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

package models

import (
	"bytes"
	"encoding/json"
	"sort"
	"strconv"
)

// Entry holds the one-or-many values collected under a mapping key.
type Entry struct {
	values []interface{}
}

// Values returns a copy of the entry values.
func (e *Entry) Values() []interface{} {
	out := make([]interface{}, len(e.values))
	copy(out, e.values)
	return out
}

// Len returns the number of values held.
func (e *Entry) Len() int {
	return len(e.values)
}

// IsMany reports whether the entry has been promoted to a sequence.
func (e *Entry) IsMany() bool {
	return len(e.values) > 1
}

// Scalar returns the first value.
func (e *Entry) Scalar() interface{} {
	if len(e.values) == 0 {
		return nil
	}
	return e.values[0]
}

// Strings renders every value as text.
func (e *Entry) Strings() []string {
	out := make([]string, len(e.values))
	for i, v := range e.values {
		out[i] = Text(v)
	}
	return out
}

// MarshalJSON writes a scalar for a single value and an array otherwise.
func (e *Entry) MarshalJSON() ([]byte, error) {
	if len(e.values) == 1 {
		return json.Marshal(e.values[0])
	}
	return json.Marshal(e.values)
}

// Mapping is a normalized sheet: keys mapped to one-or-many values.
// Keys iterate like object keys of a script runtime: array-index-like keys
// ascending first, then the rest in insertion order.
type Mapping struct {
	order   []string
	entries map[string]*Entry
}

// NewMapping returns an empty mapping.
func NewMapping() *Mapping {
	return &Mapping{entries: make(map[string]*Entry)}
}

// Set stores a single value under key, replacing anything already there.
func (m *Mapping) Set(key string, v interface{}) {
	if m.entries == nil {
		m.entries = make(map[string]*Entry)
	}
	if _, ok := m.entries[key]; !ok {
		m.order = append(m.order, key)
	}
	m.entries[key] = &Entry{values: []interface{}{v}}
}

// Add folds v into key: new keys hold a scalar, repeated keys grow a sequence.
func (m *Mapping) Add(key string, v interface{}) {
	e, ok := m.entries[key]
	if !ok {
		m.Set(key, v)
		return
	}
	e.values = append(e.values, v)
}

// Get returns the entry stored under key.
func (m *Mapping) Get(key string) (*Entry, bool) {
	if m == nil {
		return nil, false
	}
	e, ok := m.entries[key]
	return e, ok
}

// Len returns the number of keys.
func (m *Mapping) Len() int {
	if m == nil {
		return 0
	}
	return len(m.entries)
}

// Keys returns the keys in iteration order.
func (m *Mapping) Keys() []string {
	if m == nil {
		return nil
	}
	var index, named []string
	for _, k := range m.order {
		if isIndexKey(k) {
			index = append(index, k)
		} else {
			named = append(named, k)
		}
	}
	sort.SliceStable(index, func(i, j int) bool {
		a, _ := strconv.ParseUint(index[i], 10, 32)
		b, _ := strconv.ParseUint(index[j], 10, 32)
		return a < b
	})
	return append(index, named...)
}

// Entries returns the entries in key order.
func (m *Mapping) Entries() []*Entry {
	keys := m.Keys()
	out := make([]*Entry, len(keys))
	for i, k := range keys {
		out[i] = m.entries[k]
	}
	return out
}

// Rename moves entries to new keys; keys missing from aliases stay put.
func (m *Mapping) Rename(aliases map[string]string) *Mapping {
	out := NewMapping()
	for _, k := range m.Keys() {
		name := k
		if alias, ok := aliases[k]; ok && alias != "" {
			name = alias
		}
		for _, v := range m.entries[k].values {
			out.Add(name, v)
		}
	}
	return out
}

// MarshalJSON writes the mapping as an object in key order.
func (m *Mapping) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.Keys() {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := m.entries[k].MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// isIndexKey reports whether k is a canonical array index ("0", "12", not "012").
func isIndexKey(k string) bool {
	if k == "" || (len(k) > 1 && k[0] == '0') {
		return false
	}
	n, err := strconv.ParseUint(k, 10, 32)
	return err == nil && n < 1<<32-1
}

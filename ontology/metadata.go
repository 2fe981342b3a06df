package ontology

// Metadata is an ordered set of free-form key/value annotations.
//
// A key holds either a single value or a sequence of values. A key becomes
// multi-valued when a second value is added, or when it is set with SetValues.
// The zero value is ready to use.
type Metadata struct {
	keys   []string
	values map[string][]string
	multi  map[string]bool
}

func (m *Metadata) init() {
	if m.values == nil {
		m.values = make(map[string][]string)
		m.multi = make(map[string]bool)
	}
}

// Set stores a single value under key, replacing any previous values.
func (m *Metadata) Set(key, value string) {
	m.init()
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = []string{value}
	m.multi[key] = false
}

// SetValues stores a value sequence under key. The key is multi-valued even
// when the sequence has a single element.
func (m *Metadata) SetValues(key string, values []string) {
	m.init()
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = append([]string(nil), values...)
	m.multi[key] = true
}

// Add appends a value under key.
func (m *Metadata) Add(key, value string) {
	m.init()
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = append(m.values[key], value)
	if len(m.values[key]) > 1 {
		m.multi[key] = true
	}
}

// Get returns all values stored under key.
func (m Metadata) Get(key string) []string {
	return m.values[key]
}

// First returns the first value stored under key, or "".
func (m Metadata) First(key string) string {
	if v := m.values[key]; len(v) > 0 {
		return v[0]
	}
	return ""
}

// IsMulti reports whether key holds a value sequence.
func (m Metadata) IsMulti(key string) bool {
	return m.multi[key]
}

// Keys returns the keys in insertion order.
func (m Metadata) Keys() []string {
	keys := make([]string, len(m.keys))
	copy(keys, m.keys)
	return keys
}

// Len returns the number of keys.
func (m Metadata) Len() int {
	return len(m.keys)
}

// Map returns the metadata as plain values: a string for single-valued keys
// and a []string for multi-valued keys.
func (m Metadata) Map() map[string]any {
	out := make(map[string]any, len(m.keys))
	for _, k := range m.keys {
		if m.multi[k] {
			out[k] = append([]string(nil), m.values[k]...)
		} else {
			out[k] = m.First(k)
		}
	}
	return out
}

// Clone returns an independent copy.
func (m Metadata) Clone() Metadata {
	var c Metadata
	for _, k := range m.keys {
		if m.multi[k] {
			c.SetValues(k, m.values[k])
		} else {
			c.Set(k, m.First(k))
		}
	}
	return c
}

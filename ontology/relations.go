package ontology

import "github.com/c360studio/semonto/vocabulary/relation"

// Relations maps relation kinds to ordered endpoint lists.
// Kinds keep their declaration order. The zero value is ready to use.
type Relations struct {
	kinds []relation.Kind
	edges map[relation.Kind][]Endpoint
}

// Add appends endpoints under kind, declaring the kind if it is new.
func (r *Relations) Add(kind relation.Kind, endpoints ...Endpoint) {
	if r.edges == nil {
		r.edges = make(map[relation.Kind][]Endpoint)
	}
	if _, ok := r.edges[kind]; !ok {
		r.kinds = append(r.kinds, kind)
	}
	r.edges[kind] = append(r.edges[kind], endpoints...)
}

// Set replaces the endpoints under kind.
func (r *Relations) Set(kind relation.Kind, endpoints []Endpoint) {
	if r.edges == nil {
		r.edges = make(map[relation.Kind][]Endpoint)
	}
	if _, ok := r.edges[kind]; !ok {
		r.kinds = append(r.kinds, kind)
	}
	r.edges[kind] = endpoints
}

// Get returns the endpoints under kind. The slice must not be modified.
func (r Relations) Get(kind relation.Kind) []Endpoint {
	return r.edges[kind]
}

// Has reports whether kind has been declared.
func (r Relations) Has(kind relation.Kind) bool {
	_, ok := r.edges[kind]
	return ok
}

// Kinds returns the declared kinds in declaration order.
func (r Relations) Kinds() []relation.Kind {
	kinds := make([]relation.Kind, len(r.kinds))
	copy(kinds, r.kinds)
	return kinds
}

// Len returns the number of declared kinds.
func (r Relations) Len() int {
	return len(r.kinds)
}

// IDs returns the endpoint identifiers (or literal values) under kind.
func (r Relations) IDs(kind relation.Kind) []string {
	eps := r.edges[kind]
	ids := make([]string, len(eps))
	for i, ep := range eps {
		ids[i] = ep.Value()
	}
	return ids
}

// Clone returns a copy whose links are re-expressed as references, so the
// copy shares no *Term with the original.
func (r Relations) Clone() Relations {
	c := Relations{
		kinds: make([]relation.Kind, len(r.kinds)),
		edges: make(map[relation.Kind][]Endpoint, len(r.edges)),
	}
	copy(c.kinds, r.kinds)
	for k, eps := range r.edges {
		out := make([]Endpoint, len(eps))
		for i, ep := range eps {
			out[i] = ep.unlink()
		}
		c.edges[k] = out
	}
	return c
}

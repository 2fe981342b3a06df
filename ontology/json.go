package ontology

import "encoding/json"

// derefTerm is the JSON shape of a term. Relations hold identifiers only,
// which keeps cyclic graphs serializable.
type derefTerm struct {
	Description string              `json:"description"`
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Other       map[string]any      `json:"other"`
	Relations   map[string][]string `json:"relations"`
}

func (t *Term) deref() derefTerm {
	rels := make(map[string][]string, t.Relations.Len())
	for _, kind := range t.Relations.Kinds() {
		rels[string(kind)] = t.Relations.IDs(kind)
	}
	return derefTerm{
		Description: t.Description,
		ID:          t.id,
		Name:        t.Name,
		Other:       t.Other.Map(),
		Relations:   rels,
	}
}

// MarshalJSON encodes the term in its dereferenced form.
func (t *Term) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.deref())
}

// JSON serializes the ontology as an object keyed by identifier, with sorted
// keys and four-space indentation.
func (o *Ontology) JSON() ([]byte, error) {
	out := make(map[string]derefTerm, len(o.terms))
	for id, t := range o.terms {
		out[id] = t.deref()
	}
	return json.MarshalIndent(out, "", "    ")
}

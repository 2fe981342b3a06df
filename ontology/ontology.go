package ontology

import (
	"fmt"
	"iter"
	"log/slog"
	"sort"

	"github.com/c360studio/semonto/vocabulary/relation"
)

// Ontology owns a set of terms keyed by identifier.
type Ontology struct {
	// Path is the location the ontology was loaded from, if any.
	Path string

	// Meta holds ontology-level header annotations.
	Meta Metadata

	// Imports lists the locations of imported ontologies, as declared.
	Imports []string

	terms     map[string]*Term
	relations *relation.Table
	logger    *slog.Logger
	adopted   bool
}

// Option configures an Ontology.
type Option func(*Ontology)

// WithRelations sets the relation table used by adoption, traversal and
// serialization. Defaults to relation.Default().
func WithRelations(table *relation.Table) Option {
	return func(o *Ontology) {
		if table != nil {
			o.relations = table
		}
	}
}

// WithLogger sets the logger used to report pass statistics.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Ontology) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// New creates an empty ontology.
func New(opts ...Option) *Ontology {
	o := &Ontology{
		terms:     make(map[string]*Term),
		relations: defaultRelations,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// RelationTable returns the relation table in use.
func (o *Ontology) RelationTable() *relation.Table {
	return o.relations
}

// Ingest adds raw records as known terms, replacing terms with the same id.
func (o *Ontology) Ingest(records ...Record) {
	for _, r := range records {
		o.terms[r.ID] = &Term{
			id:          r.ID,
			Name:        r.Name,
			Description: r.Description,
			Relations:   r.Relations.Clone(),
			Other:       r.Other.Clone(),
			known:       true,
			relations:   o.relations,
		}
	}
}

// Add stores t under its identifier, replacing any previous term. The
// ontology takes ownership of t.
func (o *Ontology) Add(t *Term) {
	t.relations = o.relations
	o.terms[t.id] = t
}

// Get returns the term with the given identifier.
// Placeholders created during resolution are never returned.
func (o *Ontology) Get(id string) (*Term, error) {
	t, ok := o.terms[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return t, nil
}

// Contains reports whether the ontology holds a term. item must be an
// identifier string, a *Term or a Term.
func (o *Ontology) Contains(item any) (bool, error) {
	switch v := item.(type) {
	case string:
		_, ok := o.terms[v]
		return ok, nil
	case *Term:
		if v == nil {
			return false, fmt.Errorf("%w: contains requires a string or Term, not a nil *Term", ErrTypeMismatch)
		}
		_, ok := o.terms[v.id]
		return ok, nil
	case Term:
		_, ok := o.terms[v.id]
		return ok, nil
	default:
		return false, fmt.Errorf("%w: contains requires a string or Term, not %T", ErrTypeMismatch, item)
	}
}

// Len returns the number of terms.
func (o *Ontology) Len() int {
	return len(o.terms)
}

// IDs returns all identifiers in ascending order.
func (o *Ontology) IDs() []string {
	ids := make([]string, 0, len(o.terms))
	for id := range o.terms {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Terms returns all terms ordered by identifier.
func (o *Ontology) Terms() TermList {
	ids := o.IDs()
	out := make(TermList, len(ids))
	for i, id := range ids {
		out[i] = o.terms[id]
	}
	return out
}

// All iterates over all terms ordered by identifier.
func (o *Ontology) All() iter.Seq[*Term] {
	return func(yield func(*Term) bool) {
		for _, id := range o.IDs() {
			if !yield(o.terms[id]) {
				return
			}
		}
	}
}

package ontology

import (
	"log/slog"

	"github.com/c360studio/semonto/vocabulary/relation"
)

// inverseEdge is an edge adoption will add to parent.
type inverseEdge struct {
	parent string
	kind   relation.Kind
	child  string
}

// Adopt derives inverse edges from forward ones: for every edge
// (child, kind, parent) whose kind has an inverse in the relation table, a
// reference to child is appended to parent's list for the inverse kind.
//
// Edges are collected in identifier order, then per-term declaration order,
// before any is applied, so edges added here are never adopted again.
// Parents that are not in the ontology receive nothing; the forward edge
// later resolves to a placeholder.
//
// Adoption does not deduplicate and must run once per ontology. A second call
// returns ErrAlreadyAdopted and leaves the ontology untouched.
func (o *Ontology) Adopt() error {
	if o.adopted {
		return ErrAlreadyAdopted
	}
	o.adopted = true

	var edges []inverseEdge
	for _, t := range o.Terms() {
		for _, kind := range t.Relations.Kinds() {
			rel, ok := o.relations.Lookup(kind)
			if !ok || !rel.Forward() {
				continue
			}
			for _, ep := range t.Relations.Get(kind) {
				if ep.IsLiteral() {
					continue
				}
				edges = append(edges, inverseEdge{parent: ep.ID(), kind: rel.Inverse, child: t.id})
			}
		}
	}

	skipped := 0
	for _, e := range edges {
		parent, ok := o.terms[e.parent]
		if !ok {
			skipped++
			continue
		}
		parent.Relations.Add(e.kind, Ref(e.child))
	}

	o.logger.Debug("Adopted relationships",
		slog.String("ontology", o.Path),
		slog.Int("edges", len(edges)-skipped),
		slog.Int("missing_parents", skipped))
	return nil
}

// Adopted reports whether Adopt has run.
func (o *Ontology) Adopted() bool {
	return o.adopted
}

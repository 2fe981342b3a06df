package ontology

import (
	"fmt"
	"log/slog"
)

// Merge copies every term of other into o, then resolves references again.
//
// Terms of other replace terms of o with the same identifier. Copies share
// no *Term with other. Relation lists are not deduplicated, so merging
// overlapping sources repeatedly can accumulate duplicate edges.
func (o *Ontology) Merge(other *Ontology) error {
	if other == nil {
		return fmt.Errorf("%w: merge requires an Ontology, not nil", ErrTypeMismatch)
	}

	replaced := 0
	for _, t := range other.Terms() {
		c := t.clone()
		c.relations = o.relations
		if _, ok := o.terms[c.id]; ok {
			replaced++
		}
		o.terms[c.id] = c
	}

	o.logger.Debug("Merged ontology",
		slog.String("ontology", o.Path),
		slog.String("source", other.Path),
		slog.Int("terms", other.Len()),
		slog.Int("replaced", replaced))

	o.Resolve()
	return nil
}

package ontology

import "log/slog"

// ResolveStats summarizes a resolution pass.
type ResolveStats struct {
	// Linked counts endpoints pointing at terms of the ontology.
	Linked int

	// Placeholders counts placeholders synthesized for dangling references.
	Placeholders int
}

// Resolve turns every relation endpoint into a live link.
//
// For each endpoint: literals are kept; any reference or link whose
// identifier is in the ontology is pointed at that term; an unresolved
// reference to an unknown identifier becomes a link to a fresh placeholder;
// a link to an unknown identifier is kept. Running Resolve again is a no-op.
func (o *Ontology) Resolve() ResolveStats {
	var stats ResolveStats

	for _, t := range o.terms {
		for _, kind := range t.Relations.Kinds() {
			eps := t.Relations.Get(kind)
			out := make([]Endpoint, len(eps))
			for i, ep := range eps {
				switch {
				case ep.IsLiteral():
					out[i] = ep
				case o.terms[ep.ID()] != nil:
					out[i] = Link(o.terms[ep.ID()])
					stats.Linked++
				case ep.IsLinked():
					out[i] = ep
				default:
					out[i] = Link(newPlaceholder(ep.ID(), o.relations))
					stats.Placeholders++
				}
			}
			t.Relations.Set(kind, out)
		}
	}

	o.logger.Debug("Resolved references",
		slog.String("ontology", o.Path),
		slog.Int("linked", stats.Linked),
		slog.Int("placeholders", stats.Placeholders))
	return stats
}

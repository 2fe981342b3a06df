// Package ontology provides the term graph of an ontology.
//
// An Ontology owns a set of Terms keyed by identifier. Terms carry typed,
// ordered relations to other terms. Relations arrive from a parser as textual
// identifiers and are turned into live links by a fixed build pipeline:
//
//	ont := ontology.New(ontology.WithLogger(logger))
//	ont.Ingest(records...)   // raw parser output
//	ont.Adopt()              // derive can_be / has_part inverse edges
//	ont.Merge(imported)      // optional, once per imported ontology
//	ont.Resolve()            // identifiers -> *Term links
//
// Identifiers that never appear in the ontology are resolved to placeholder
// terms (Known() == false) instead of failing the build, so the graph stays
// navigable when imported vocabularies are missing.
//
// An Ontology is not safe for concurrent mutation. Once built it may be read
// from multiple goroutines.
package ontology

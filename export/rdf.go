// Package export serializes built ontologies to OBO, JSON and RDF.
//
// Terms become owl:Class resources. OBO-style identifiers map onto the OBO
// Foundry PURL space (GO:0000001 becomes
// http://purl.obolibrary.org/obo/GO_0000001) and relation kinds onto the IRIs
// registered in the ontology's relation table. Placeholders are only ever
// objects: they get an IRI but no description of their own.
package export

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/c360studio/semonto/ontology"
	"github.com/c360studio/semonto/vocabulary/relation"
)

// Format specifies the output serialization format.
type Format string

const (
	// FormatOBO produces OBO (.obo) output.
	FormatOBO Format = "obo"

	// FormatJSON produces dereferenced JSON (.json) output.
	FormatJSON Format = "json"

	// FormatTurtle produces Turtle (.ttl) output.
	FormatTurtle Format = "turtle"

	// FormatNTriples produces N-Triples (.nt) output.
	FormatNTriples Format = "ntriples"
)

// Namespaces used by the RDF output.
const (
	RDFType = "http://www.w3.org/1999/02/22-rdf-syntax-ns#type"

	// RDFSComment is rdfs:comment, used for the comment annotation.
	RDFSComment = "http://www.w3.org/2000/01/rdf-schema#comment"

	// OBOInOWL is the namespace of the remaining OBO annotations.
	OBOInOWL = "http://www.geneontology.org/formats/oboInOwl#"

	// TermNamespace holds terms whose identifier is not a CURIE.
	TermNamespace = "https://semonto.dev/term/"
)

// Triple is one RDF statement. Object is an IRI unless Literal is set.
type Triple struct {
	Subject   string
	Predicate string
	Object    string
	Literal   bool
}

// Exporter serializes ontologies under an export profile.
type Exporter struct {
	profile ProfileConfig
}

// NewExporter creates an exporter for the given profile.
func NewExporter(profile Profile) *Exporter {
	return &Exporter{profile: GetProfileConfig(profile)}
}

// defaultPrefixes returns the namespace prefixes declared in Turtle output.
func defaultPrefixes() map[string]string {
	return map[string]string{
		"rdf":      "http://www.w3.org/1999/02/22-rdf-syntax-ns#",
		"rdfs":     "http://www.w3.org/2000/01/rdf-schema#",
		"owl":      "http://www.w3.org/2002/07/owl#",
		"xsd":      "http://www.w3.org/2001/XMLSchema#",
		"obo":      relation.OBONamespace,
		"oboInOwl": OBOInOWL,
		"rel":      relation.Namespace,
	}
}

// Export serializes o in format. The profile applies to RDF formats; OBO
// always carries canonical relations and JSON always carries all of them.
func (e *Exporter) Export(o *ontology.Ontology, format Format) ([]byte, error) {
	switch format {
	case FormatOBO:
		return []byte(o.OBO()), nil
	case FormatJSON:
		return o.JSON()
	case FormatTurtle:
		return []byte(e.toTurtle(o)), nil
	case FormatNTriples:
		return []byte(e.toNTriples(o)), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// Triples returns the statements describing o, term by term in identifier
// order. Each term's rdf:type triple comes first.
func (e *Exporter) Triples(o *ontology.Ontology) []Triple {
	var triples []Triple
	for _, t := range o.Terms() {
		triples = append(triples, e.termTriples(o.RelationTable(), t)...)
	}
	return triples
}

func (e *Exporter) termTriples(table *relation.Table, t *ontology.Term) []Triple {
	subject := TermIRI(t.ID())
	out := []Triple{{Subject: subject, Predicate: RDFType, Object: relation.IRIClass}}

	literal := func(predicate, value string) {
		out = append(out, Triple{Subject: subject, Predicate: predicate, Object: value, Literal: true})
	}

	if t.Name != "" {
		literal(relation.IRILabel, t.Name)
	}
	if t.Description != "" {
		literal(relation.IRIDefinition, definitionText(t.Description))
	}

	for _, kind := range t.Relations.Kinds() {
		if !e.profile.includes(table, kind) {
			continue
		}
		predicate := table.IRIFor(kind)
		for _, ep := range t.Relations.Get(kind) {
			if ep.IsLiteral() {
				literal(predicate, unquote(ep.Value()))
				continue
			}
			out = append(out, Triple{Subject: subject, Predicate: predicate, Object: TermIRI(ep.ID())})
		}
	}

	if e.profile.Annotations {
		for _, key := range t.Other.Keys() {
			predicate := OBOInOWL + key
			if key == "comment" {
				predicate = RDFSComment
			}
			for _, v := range t.Other.Get(key) {
				literal(predicate, v)
			}
		}
	}
	return out
}

// toTurtle serializes to Turtle, one subject block per term.
func (e *Exporter) toTurtle(o *ontology.Ontology) string {
	w := NewTurtleWriter()
	w.WritePrefixes()

	for _, t := range o.Terms() {
		triples := e.termTriples(o.RelationTable(), t)
		w.WriteSubject(triples[0].Subject)
		w.WriteType(triples[0].Object, len(triples) == 1)
		for i, tr := range triples[1:] {
			w.WritePredicate(tr, i == len(triples)-2)
		}
		w.WriteBlank()
	}
	return w.String()
}

// toNTriples serializes to N-Triples.
func (e *Exporter) toNTriples(o *ontology.Ontology) string {
	w := NewNTriplesWriter()
	for _, tr := range e.Triples(o) {
		w.WriteTriple(tr)
	}
	return w.String()
}

// TermIRI maps a term identifier to an IRI. Absolute IRIs are kept, CURIEs
// such as GO:0000001 map into the OBO PURL space, and anything else goes
// under TermNamespace.
func TermIRI(id string) string {
	if strings.HasPrefix(id, "http://") || strings.HasPrefix(id, "https://") {
		return id
	}
	prefix, local, ok := strings.Cut(id, ":")
	if ok && isSimpleLocal(prefix) && local != "" && !strings.ContainsAny(local, " /:#") {
		return relation.OBONamespace + prefix + "_" + local
	}
	return TermNamespace + url.PathEscape(id)
}

// definitionText extracts the quoted text of an OBO def value, dropping the
// trailing cross-reference list. Other values are returned unchanged.
func definitionText(def string) string {
	if !strings.HasPrefix(def, `"`) {
		return def
	}
	escaped := false
	for i := 1; i < len(def); i++ {
		switch {
		case escaped:
			escaped = false
		case def[i] == '\\':
			escaped = true
		case def[i] == '"':
			return strings.ReplaceAll(def[1:i], `\"`, `"`)
		}
	}
	return def
}

// unquote strips one pair of surrounding double quotes.
func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}

// formatLiteral formats a plain string literal.
func formatLiteral(s string) string {
	return `"` + escapeString(s) + `"`
}

// escapeString escapes special characters in strings for RDF serialization.
func escapeString(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\"", "\\\"")
	s = strings.ReplaceAll(s, "\n", "\\n")
	s = strings.ReplaceAll(s, "\r", "\\r")
	s = strings.ReplaceAll(s, "\t", "\\t")
	return s
}

package relation

// OBONamespace is the base IRI of the OBO Foundry PURL space.
const OBONamespace = "http://purl.obolibrary.org/obo/"

// Namespace is the base IRI for relation kinds that have no standard mapping.
const Namespace = "https://semonto.dev/relation/"

// Standard IRIs used by the default vocabulary and the RDF exporter.
const (
	// IRISubClassOf is rdfs:subClassOf, the standard reading of is_a.
	IRISubClassOf = "http://www.w3.org/2000/01/rdf-schema#subClassOf"

	// IRILabel is rdfs:label.
	IRILabel = "http://www.w3.org/2000/01/rdf-schema#label"

	// IRIClass is owl:Class.
	IRIClass = "http://www.w3.org/2002/07/owl#Class"

	// IRIPartOf is BFO "part of".
	IRIPartOf = OBONamespace + "BFO_0000050"

	// IRIHasPart is BFO "has part".
	IRIHasPart = OBONamespace + "BFO_0000051"

	// IRIDefinition is IAO "definition".
	IRIDefinition = OBONamespace + "IAO_0000115"
)

// IRIFor returns the IRI registered for kind in the table, falling back to a
// Namespace IRI for kinds without a standard mapping.
func (t *Table) IRIFor(kind Kind) string {
	if rel, ok := t.Lookup(kind); ok && rel.IRI != "" {
		return rel.IRI
	}
	return Namespace + string(kind)
}

// Package relation provides the relationship vocabulary for ontology term graphs.
//
// A Table maps each relation kind to its inverse kind, its traversal role and
// whether it is canonical, meaning it is written when a term graph is
// serialized to OBO text. Derived inverse kinds such as can_be and has_part are
// never canonical: they are rebuilt from the forward edges on every load.
//
// # Default Vocabulary
//
//	Kind      Role    Inverse   Canonical  IRI
//	is_a      parent  can_be    yes        rdfs:subClassOf
//	is_part   parent  part_of   yes        -
//	part_of   parent  has_part  yes        obo:BFO_0000050
//	has_part  child   -         no         obo:BFO_0000051
//	can_be    child   -         no         -
//
// is_part is a legacy label kept distinct on the forward edge; adoption emits
// part_of as its inverse.
//
// # Usage
//
// Tables are plain configuration and can be extended before they are handed
// to an ontology:
//
//	table := relation.Default()
//	table.Register("develops_from",
//	    relation.WithRole(relation.RoleParent),
//	    relation.WithInverse("develops_into"),
//	    relation.WithCanonical(),
//	    relation.WithIRI(relation.OBONamespace+"RO_0002202"))
//	table.Register("develops_into", relation.WithRole(relation.RoleChild))
package relation

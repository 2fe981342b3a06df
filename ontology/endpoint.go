package ontology

type endpointKind uint8

const (
	refEndpoint endpointKind = iota
	linkEndpoint
	literalEndpoint
)

// Endpoint is the target of a relation edge.
//
// Before resolution an endpoint is a textual reference to a term identifier
// or a literal value. After resolution every reference becomes a link to a
// live *Term. Literals are never resolved.
type Endpoint struct {
	kind  endpointKind
	id    string
	term  *Term
	value string
}

// Ref creates an unresolved reference to a term identifier.
func Ref(id string) Endpoint {
	return Endpoint{kind: refEndpoint, id: id}
}

// Link creates an endpoint pointing at a live term.
func Link(t *Term) Endpoint {
	return Endpoint{kind: linkEndpoint, id: t.ID(), term: t}
}

// Literal creates an endpoint holding a non-graph value.
func Literal(value string) Endpoint {
	return Endpoint{kind: literalEndpoint, value: value}
}

// ID returns the referenced identifier, or "" for literals.
func (e Endpoint) ID() string {
	return e.id
}

// Term returns the linked term, or nil if the endpoint is not linked.
func (e Endpoint) Term() *Term {
	return e.term
}

// Value returns the literal value for literals and the identifier otherwise.
func (e Endpoint) Value() string {
	if e.kind == literalEndpoint {
		return e.value
	}
	return e.id
}

// IsLiteral reports whether the endpoint holds a literal value.
func (e Endpoint) IsLiteral() bool {
	return e.kind == literalEndpoint
}

// IsLinked reports whether the endpoint points at a live term.
func (e Endpoint) IsLinked() bool {
	return e.kind == linkEndpoint
}

// unlink re-expresses a link as a plain reference.
func (e Endpoint) unlink() Endpoint {
	if e.kind == linkEndpoint {
		return Ref(e.id)
	}
	return e
}

// String returns the identifier or literal value.
func (e Endpoint) String() string {
	return e.Value()
}

package ontology

import (
	"fmt"

	"github.com/c360studio/semonto/vocabulary/relation"
)

// defaultRelations backs terms that were created outside an ontology.
var defaultRelations = relation.Default()

// Record is a raw term as produced by a parser.
type Record struct {
	ID          string
	Name        string
	Description string
	Relations   Relations
	Other       Metadata
}

// Term is a single ontology concept.
type Term struct {
	id string

	// Name is the display label, possibly empty.
	Name string

	// Description is the free-text definition, possibly empty.
	Description string

	// Relations holds the outgoing typed edges.
	Relations Relations

	// Other holds the remaining annotations.
	Other Metadata

	known     bool
	relations *relation.Table
}

// NewTerm creates a known term.
func NewTerm(id, name, description string) *Term {
	return &Term{
		id:          id,
		Name:        name,
		Description: description,
		known:       true,
	}
}

// newPlaceholder creates a stub for an identifier that was referenced but
// never defined.
func newPlaceholder(id string, table *relation.Table) *Term {
	return &Term{id: id, relations: table}
}

// ID returns the term identifier.
func (t *Term) ID() string {
	return t.id
}

// Known reports whether the term was defined by a source, as opposed to a
// placeholder synthesized for a dangling reference.
func (t *Term) Known() bool {
	return t.known
}

// String returns "<id: name>".
func (t *Term) String() string {
	return fmt.Sprintf("<%s: %s>", t.id, t.Name)
}

func (t *Term) table() *relation.Table {
	if t.relations == nil {
		return defaultRelations
	}
	return t.relations
}

// Parents returns the linked endpoints of every parent-role kind, in table
// order. Unresolved references and literals are skipped, so the result is
// only complete once the owning ontology has been resolved. It is computed
// on every call.
func (t *Term) Parents() TermList {
	return t.linked(t.table().ParentKinds())
}

// Children returns the linked endpoints of every child-role kind, in table
// order. Like Parents, it skips unresolved references and is computed on
// every call.
func (t *Term) Children() TermList {
	return t.linked(t.table().ChildKinds())
}

func (t *Term) linked(kinds []relation.Kind) TermList {
	var out TermList
	for _, kind := range kinds {
		for _, ep := range t.Relations.Get(kind) {
			if ep.IsLinked() {
				out = append(out, ep.Term())
			}
		}
	}
	return out
}

// clone returns a deep copy that shares no *Term with t.
func (t *Term) clone() *Term {
	return &Term{
		id:          t.id,
		Name:        t.Name,
		Description: t.Description,
		Relations:   t.Relations.Clone(),
		Other:       t.Other.Clone(),
		known:       t.known,
		relations:   t.relations,
	}
}

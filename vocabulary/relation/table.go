package relation

import (
	"fmt"
	"strings"
	"sync"
)

// Kind labels a directed edge between two terms, e.g. "is_a".
type Kind string

// Default relation kinds.
const (
	// IsA links a term to a more general term.
	IsA Kind = "is_a"

	// IsPart is the legacy parthood label. Its adoption inverse is PartOf.
	IsPart Kind = "is_part"

	// PartOf links a term to the whole it belongs to.
	PartOf Kind = "part_of"

	// HasPart links a whole to one of its parts. Derived from PartOf.
	HasPart Kind = "has_part"

	// CanBe links a term to a specialization. Derived from IsA.
	CanBe Kind = "can_be"
)

// Role describes how a relation kind participates in hierarchy traversal.
type Role int

const (
	// RoleNone marks kinds that are neither parental nor filial.
	RoleNone Role = iota
	// RoleParent marks kinds whose endpoints are parents of the subject.
	RoleParent
	// RoleChild marks kinds whose endpoints are children of the subject.
	RoleChild
)

// String returns the string representation of the role
func (r Role) String() string {
	switch r {
	case RoleParent:
		return "parent"
	case RoleChild:
		return "child"
	default:
		return "none"
	}
}

// ParseRole parses a role name as used in configuration files.
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return RoleNone, nil
	case "parent":
		return RoleParent, nil
	case "child":
		return RoleChild, nil
	default:
		return RoleNone, fmt.Errorf("unknown relation role: %q", s)
	}
}

// Relation holds the metadata registered for a relation kind.
type Relation struct {
	// Kind is the relation label.
	Kind Kind

	// Inverse is the kind adoption emits on the parent, empty if none.
	Inverse Kind

	// Canonical kinds are written to OBO text.
	Canonical bool

	// Role places the kind in the parent/child hierarchy.
	Role Role

	// IRI is the standard RDF property for the kind, if any.
	IRI string

	// Description is a human-readable summary.
	Description string
}

// Forward reports whether adoption derives an inverse edge from this kind.
func (r Relation) Forward() bool {
	return r.Role == RoleParent && r.Inverse != ""
}

// Option is a functional option for configuring relation registration.
type Option func(*Relation)

// WithInverse sets the kind adoption emits on the parent of a forward edge.
func WithInverse(inverse Kind) Option {
	return func(r *Relation) {
		r.Inverse = inverse
	}
}

// WithCanonical marks the kind as written to OBO text.
func WithCanonical() Option {
	return func(r *Relation) {
		r.Canonical = true
	}
}

// WithRole sets the traversal role.
func WithRole(role Role) Option {
	return func(r *Relation) {
		r.Role = role
	}
}

// WithIRI sets the RDF property IRI used on export.
func WithIRI(iri string) Option {
	return func(r *Relation) {
		r.IRI = iri
	}
}

// WithDescription sets the human-readable description.
func WithDescription(desc string) Option {
	return func(r *Relation) {
		r.Description = desc
	}
}

// Table is an ordered registry of relation kinds.
// Registration order is the order in which Parents and Children concatenate
// their endpoints. A Table is safe for concurrent reads once populated.
type Table struct {
	mu        sync.RWMutex
	order     []Kind
	relations map[Kind]Relation
}

// NewTable creates an empty relation table.
func NewTable() *Table {
	return &Table{
		relations: make(map[Kind]Relation),
	}
}

// Default returns a fresh table holding the default OBO vocabulary.
func Default() *Table {
	t := NewTable()

	t.Register(IsA,
		WithDescription("Subsumption: the subject is a kind of the object"),
		WithRole(RoleParent),
		WithInverse(CanBe),
		WithCanonical(),
		WithIRI(IRISubClassOf))

	t.Register(IsPart,
		WithDescription("Legacy parthood label, adopted as part_of on the object"),
		WithRole(RoleParent),
		WithInverse(PartOf),
		WithCanonical())

	t.Register(PartOf,
		WithDescription("Parthood: the subject is part of the object"),
		WithRole(RoleParent),
		WithInverse(HasPart),
		WithCanonical(),
		WithIRI(IRIPartOf))

	t.Register(HasPart,
		WithDescription("Inverse parthood, derived from part_of"),
		WithRole(RoleChild),
		WithIRI(IRIHasPart))

	t.Register(CanBe,
		WithDescription("Inverse subsumption, derived from is_a"),
		WithRole(RoleChild))

	return t
}

// Register adds or replaces a relation kind.
// Replacing a kind keeps its original position in the table order.
func (t *Table) Register(kind Kind, opts ...Option) {
	rel := Relation{Kind: kind}
	for _, opt := range opts {
		opt(&rel)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if _, exists := t.relations[kind]; !exists {
		t.order = append(t.order, kind)
	}
	t.relations[kind] = rel
}

// Lookup returns the relation registered for kind.
func (t *Table) Lookup(kind Kind) (Relation, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	rel, ok := t.relations[kind]
	return rel, ok
}

// Inverse returns the inverse kind of a forward kind.
func (t *Table) Inverse(kind Kind) (Kind, bool) {
	rel, ok := t.Lookup(kind)
	if !ok || rel.Inverse == "" {
		return "", false
	}
	return rel.Inverse, true
}

// IsCanonical reports whether kind is written to OBO text.
// Unregistered kinds are not canonical.
func (t *Table) IsCanonical(kind Kind) bool {
	rel, ok := t.Lookup(kind)
	return ok && rel.Canonical
}

// Kinds returns all registered kinds in registration order.
func (t *Table) Kinds() []Kind {
	t.mu.RLock()
	defer t.mu.RUnlock()

	kinds := make([]Kind, len(t.order))
	copy(kinds, t.order)
	return kinds
}

// ParentKinds returns the kinds with RoleParent in registration order.
func (t *Table) ParentKinds() []Kind {
	return t.kindsWithRole(RoleParent)
}

// ChildKinds returns the kinds with RoleChild in registration order.
func (t *Table) ChildKinds() []Kind {
	return t.kindsWithRole(RoleChild)
}

// ForwardKinds returns the kinds adoption derives inverse edges from.
func (t *Table) ForwardKinds() []Kind {
	t.mu.RLock()
	defer t.mu.RUnlock()

	kinds := make([]Kind, 0, len(t.order))
	for _, k := range t.order {
		if t.relations[k].Forward() {
			kinds = append(kinds, k)
		}
	}
	return kinds
}

func (t *Table) kindsWithRole(role Role) []Kind {
	t.mu.RLock()
	defer t.mu.RUnlock()

	kinds := make([]Kind, 0, len(t.order))
	for _, k := range t.order {
		if t.relations[k].Role == role {
			kinds = append(kinds, k)
		}
	}
	return kinds
}

// Clone returns an independent copy of the table.
func (t *Table) Clone() *Table {
	t.mu.RLock()
	defer t.mu.RUnlock()

	c := &Table{
		order:     make([]Kind, len(t.order)),
		relations: make(map[Kind]Relation, len(t.relations)),
	}
	copy(c.order, t.order)
	for k, v := range t.relations {
		c.relations[k] = v
	}
	return c
}

// Validate checks that every inverse names a registered kind.
func (t *Table) Validate() error {
	t.mu.RLock()
	defer t.mu.RUnlock()

	for _, k := range t.order {
		rel := t.relations[k]
		if rel.Inverse == "" {
			continue
		}
		if _, ok := t.relations[rel.Inverse]; !ok {
			return fmt.Errorf("relation %s: inverse %s is not registered", k, rel.Inverse)
		}
	}
	return nil
}

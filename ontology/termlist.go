package ontology

import (
	"fmt"
	"sort"
	"strings"
)

// TermList is an ordered list of terms with projection shortcuts.
type TermList []*Term

// NewTermList builds a TermList, rejecting nil entries.
func NewTermList(terms ...*Term) (TermList, error) {
	for i, t := range terms {
		if t == nil {
			return nil, fmt.Errorf("%w: TermList entry %d is not a Term", ErrTypeMismatch, i)
		}
	}
	return append(TermList(nil), terms...), nil
}

// IDs returns the identifier of each term.
func (l TermList) IDs() []string {
	out := make([]string, len(l))
	for i, t := range l {
		out[i] = t.ID()
	}
	return out
}

// Names returns the name of each term.
func (l TermList) Names() []string {
	out := make([]string, len(l))
	for i, t := range l {
		out[i] = t.Name
	}
	return out
}

// Descriptions returns the description of each term.
func (l TermList) Descriptions() []string {
	out := make([]string, len(l))
	for i, t := range l {
		out[i] = t.Description
	}
	return out
}

// Others returns the metadata of each term.
func (l TermList) Others() []Metadata {
	out := make([]Metadata, len(l))
	for i, t := range l {
		out[i] = t.Other
	}
	return out
}

// Parents returns the concatenated parents of every term in the list.
func (l TermList) Parents() TermList {
	var out TermList
	for _, t := range l {
		out = append(out, t.Parents()...)
	}
	return out
}

// Children returns the concatenated children of every term in the list.
func (l TermList) Children() TermList {
	var out TermList
	for _, t := range l {
		out = append(out, t.Children()...)
	}
	return out
}

// Dedup returns the list without repeated identifiers, keeping the first
// occurrence of each.
func (l TermList) Dedup() TermList {
	seen := make(map[string]bool, len(l))
	out := make(TermList, 0, len(l))
	for _, t := range l {
		if seen[t.ID()] {
			continue
		}
		seen[t.ID()] = true
		out = append(out, t)
	}
	return out
}

// Contains reports whether a term with the given identifier is in the list.
func (l TermList) Contains(id string) bool {
	for _, t := range l {
		if t.ID() == id {
			return true
		}
	}
	return false
}

// Sorted returns a copy ordered by identifier.
func (l TermList) Sorted() TermList {
	out := append(TermList(nil), l...)
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out
}

// String returns the list as "[<id: name> <id: name>]".
func (l TermList) String() string {
	parts := make([]string, len(l))
	for i, t := range l {
		parts[i] = t.String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}

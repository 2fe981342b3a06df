package ontology

import (
	"strings"

	"github.com/c360studio/semonto/vocabulary/relation"
)

// OBO serializes the ontology as OBO text: one [Term] block per term in
// ascending identifier order, blocks separated by a blank line.
func (o *Ontology) OBO() string {
	var sb strings.Builder
	for i, t := range o.Terms() {
		if i > 0 {
			sb.WriteString("\n")
		}
		t.writeOBO(&sb)
	}
	return sb.String()
}

// OBO serializes a single term block.
func (t *Term) OBO() string {
	var sb strings.Builder
	t.writeOBO(&sb)
	return sb.String()
}

func (t *Term) writeOBO(sb *strings.Builder) {
	sb.WriteString("[Term]\n")
	sb.WriteString("id: " + t.id + "\n")
	sb.WriteString("name: " + t.Name + "\n")

	if t.Description != "" {
		sb.WriteString("def: " + t.Description + "\n")
	}

	for _, key := range t.Other.Keys() {
		for _, v := range t.Other.Get(key) {
			sb.WriteString(key + ": " + v + "\n")
		}
	}

	// Only canonical kinds; derived inverses are rebuilt on load
	table := t.table()
	for _, kind := range t.Relations.Kinds() {
		if !table.IsCanonical(kind) {
			continue
		}
		for _, ep := range t.Relations.Get(kind) {
			if kind != relation.IsA {
				sb.WriteString("relationship: ")
			}
			sb.WriteString(string(kind) + ": ")
			if ep.IsLinked() {
				sb.WriteString(ep.ID() + " ! " + ep.Term().Name)
			} else {
				sb.WriteString(ep.Value())
			}
			sb.WriteString("\n")
		}
	}
}

package ontology

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/c360studio/semonto/vocabulary/relation"
)

// rec builds a record whose relations are given as kind -> target ids.
func rec(id, name string, rels ...any) Record {
	r := Record{ID: id, Name: name}
	for i := 0; i+1 < len(rels); i += 2 {
		kind := rels[i].(relation.Kind)
		for _, target := range rels[i+1].([]string) {
			r.Relations.Add(kind, Ref(target))
		}
	}
	return r
}

// build ingests records, adopts and resolves.
func build(t *testing.T, records ...Record) *Ontology {
	t.Helper()
	o := New()
	o.Ingest(records...)
	require.NoError(t, o.Adopt())
	o.Resolve()
	return o
}

func mustGet(t *testing.T, o *Ontology, id string) *Term {
	t.Helper()
	term, err := o.Get(id)
	require.NoError(t, err)
	return term
}

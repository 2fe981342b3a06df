package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/semonto/ontology"
	"github.com/c360studio/semonto/vocabulary/relation"
)

const listLayout = `header:
  format-version: "1.2"
  remark: [one, two]
imports:
  - uo.yaml
terms:
  - id: MS:1000548
    name: sample attribute
  - id: MS:1000001
    name: sample number
    description: A reference number.
    relations:
      part_of: MS:1000548
      is_a: [MS:1000548, MS:0000000]
      has_units: ['"um"']
      has_order: 3
    other:
      synonym: [sample id]
      comment: single
`

func TestRecordParseListLayout(t *testing.T) {
	doc, err := NewRecordParser().Parse("ms.yaml", []byte(listLayout))
	require.NoError(t, err)

	assert.Equal(t, "1.2", doc.Header.First("format-version"))
	assert.Equal(t, []string{"one", "two"}, doc.Header.Get("remark"))
	assert.Equal(t, []string{"uo.yaml"}, doc.Imports)
	assert.False(t, doc.IncludesInverses)
	require.Len(t, doc.Records, 2)

	rec := doc.Records[1]
	assert.Equal(t, "MS:1000001", rec.ID)
	assert.Equal(t, "sample number", rec.Name)
	assert.Equal(t, "A reference number.", rec.Description)
	assert.Equal(t, []relation.Kind{relation.PartOf, relation.IsA, "has_units", "has_order"}, rec.Relations.Kinds(),
		"declaration order is kept")
	assert.Equal(t, []string{"MS:1000548", "MS:0000000"}, rec.Relations.IDs(relation.IsA))

	units := rec.Relations.Get("has_units")[0]
	assert.True(t, units.IsLiteral())
	assert.Equal(t, `"um"`, units.Value())

	order := rec.Relations.Get("has_order")[0]
	assert.True(t, order.IsLiteral(), "non-string scalars are literals")
	assert.Equal(t, "3", order.Value())

	assert.True(t, rec.Other.IsMulti("synonym"))
	assert.False(t, rec.Other.IsMulti("comment"))
	assert.Equal(t, "single", rec.Other.First("comment"))
}

func TestRecordParseKeyedJSON(t *testing.T) {
	o := ontology.New()
	o.Ingest(
		ontology.Record{ID: "A", Name: "alpha", Relations: relationsOf(relation.IsA, "B")},
		ontology.Record{ID: "B", Name: "beta", Description: "second"},
	)
	require.NoError(t, o.Adopt())
	o.Resolve()

	data, err := o.JSON()
	require.NoError(t, err)

	doc, err := NewRecordParser().Parse("dump.json", data)
	require.NoError(t, err)
	assert.True(t, doc.IncludesInverses)
	require.Len(t, doc.Records, 2)

	a, b := doc.Records[0], doc.Records[1]
	assert.Equal(t, "A", a.ID)
	assert.Equal(t, "alpha", a.Name)
	assert.Equal(t, []string{"B"}, a.Relations.IDs(relation.IsA))
	assert.Equal(t, "second", b.Description)
	assert.Equal(t, []string{"A"}, b.Relations.IDs(relation.CanBe))
}

func TestRecordParseKeyedFallbackID(t *testing.T) {
	doc, err := NewRecordParser().Parse("terms.yaml", []byte("X:1:\n  name: one\n"))
	require.NoError(t, err)
	require.Len(t, doc.Records, 1)
	assert.Equal(t, "X:1", doc.Records[0].ID)
}

func TestRecordParseEmpty(t *testing.T) {
	for _, input := range []string{"", "terms: []\n", "terms:\n"} {
		doc, err := NewRecordParser().Parse("empty.yaml", []byte(input))
		require.NoError(t, err, input)
		assert.Empty(t, doc.Records)
	}
}

func TestRecordParseErrors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantLine int
	}{
		{"not a mapping", "- a\n- b\n", 1},
		{"term without id", "terms:\n  - name: orphan\n", 2},
		{"unknown field", "terms:\n  - id: X\n    colour: red\n", 3},
		{"nested relation target", "terms:\n  - id: X\n    relations:\n      is_a: [{id: Y}]\n", 4},
		{"terms not a list", "terms: nope\n", 1},
		{"malformed yaml", "terms:\n\t- id: X\n", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRecordParser().Parse("bad.yaml", []byte(tt.input))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrSyntax)

			var synErr *SyntaxError
			require.ErrorAs(t, err, &synErr)
			assert.Equal(t, tt.wantLine, synErr.Line)
		})
	}
}

func relationsOf(kind relation.Kind, ids ...string) ontology.Relations {
	var rels ontology.Relations
	for _, id := range ids {
		rels.Add(kind, ontology.Ref(id))
	}
	return rels
}

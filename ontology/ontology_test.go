package ontology

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/semonto/vocabulary/relation"
)

func TestExampleScenario(t *testing.T) {
	o := New()
	o.Ingest(
		rec("A", "alpha", relation.IsA, []string{"B"}),
		rec("B", "beta"),
	)

	require.NoError(t, o.Adopt())
	b := mustGet(t, o, "B")
	assert.Equal(t, []string{"A"}, b.Relations.IDs(relation.CanBe))
	assert.False(t, b.Relations.Get(relation.CanBe)[0].IsLinked(), "adoption records identifiers only")

	o.Resolve()
	a := mustGet(t, o, "A")
	assert.Same(t, b, a.Relations.Get(relation.IsA)[0].Term())
	assert.Same(t, a, b.Relations.Get(relation.CanBe)[0].Term())
	assert.Equal(t, []string{"B"}, a.Parents().IDs())
	assert.Equal(t, []string{"A"}, b.Children().IDs())
}

func TestGet(t *testing.T) {
	o := build(t, rec("GO:1", "one", relation.IsA, []string{"GO:missing"}))

	term, err := o.Get("GO:1")
	require.NoError(t, err)
	assert.Equal(t, "one", term.Name)

	_, err = o.Get("GO:2")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = o.Get("GO:missing")
	assert.ErrorIs(t, err, ErrNotFound, "placeholders are not visible through Get")
}

func TestContains(t *testing.T) {
	o := build(t, rec("A", "alpha"))
	a := mustGet(t, o, "A")

	tests := []struct {
		name    string
		item    any
		want    bool
		wantErr bool
	}{
		{"identifier present", "A", true, false},
		{"identifier absent", "Z", false, false},
		{"term pointer", a, true, false},
		{"term value", *NewTerm("A", "", ""), true, false},
		{"foreign term", NewTerm("Z", "", ""), false, false},
		{"nil term", (*Term)(nil), false, true},
		{"integer", 42, false, true},
		{"nil", nil, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := o.Contains(tt.item)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrTypeMismatch)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSortedIteration(t *testing.T) {
	o := build(t, rec("C", "c"), rec("A", "a"), rec("B", "b"))

	assert.Equal(t, 3, o.Len())
	assert.Equal(t, []string{"A", "B", "C"}, o.IDs())
	assert.Equal(t, []string{"A", "B", "C"}, o.Terms().IDs())

	var seen []string
	for term := range o.All() {
		seen = append(seen, term.ID())
		if term.ID() == "B" {
			break
		}
	}
	assert.Equal(t, []string{"A", "B"}, seen)
}

func TestAddTakesOwnership(t *testing.T) {
	table := relation.Default()
	table.Register("develops_from", relation.WithRole(relation.RoleParent), relation.WithInverse(relation.CanBe))

	o := New(WithRelations(table))
	term := NewTerm("X", "x", "")
	term.Relations.Add("develops_from", Ref("Y"))
	o.Add(term)
	o.Add(NewTerm("Y", "y", ""))
	require.NoError(t, o.Adopt())
	o.Resolve()

	assert.Equal(t, []string{"Y"}, term.Parents().IDs(), "added terms use the ontology's table")
	assert.Same(t, table, o.RelationTable())
}

func TestTermString(t *testing.T) {
	assert.Equal(t, "<GO:0008150: biological_process>", NewTerm("GO:0008150", "biological_process", "").String())
}

func TestTermListProjections(t *testing.T) {
	o := build(t,
		rec("A", "alpha", relation.IsA, []string{"C"}),
		rec("B", "beta", relation.PartOf, []string{"C"}),
		rec("C", "gamma"),
		rec("D", "delta", relation.IsA, []string{"A"}),
	)
	o.terms["A"].Description = "first"
	o.terms["A"].Other.Set("comment", "hello")

	list, err := NewTermList(mustGet(t, o, "A"), mustGet(t, o, "B"))
	require.NoError(t, err)

	assert.Equal(t, []string{"A", "B"}, list.IDs())
	assert.Equal(t, []string{"alpha", "beta"}, list.Names())
	assert.Equal(t, []string{"first", ""}, list.Descriptions())
	assert.Equal(t, "hello", list.Others()[0].First("comment"))

	// fan-out, not reduction
	assert.Equal(t, []string{"C", "C"}, list.Parents().IDs())
	assert.Equal(t, []string{"C"}, list.Parents().Dedup().IDs())
	assert.Equal(t, []string{"D"}, list.Children().IDs())
	assert.True(t, list.Contains("B"))
	assert.False(t, list.Contains("C"))
	assert.Equal(t, "[<A: alpha> <B: beta>]", list.String())
}

func TestNewTermListRejectsNil(t *testing.T) {
	_, err := NewTermList(NewTerm("A", "", ""), nil)
	assert.ErrorIs(t, err, ErrTypeMismatch)
}

func TestDerivedPropertiesTrackMutation(t *testing.T) {
	o := build(t, rec("A", "alpha"), rec("B", "beta"))
	a := mustGet(t, o, "A")
	require.Empty(t, a.Children())

	o.terms["B"].Relations.Add(relation.IsA, Ref("A"))
	o.terms["A"].Relations.Add(relation.CanBe, Ref("B"))
	o.Resolve()

	assert.Equal(t, []string{"B"}, a.Children().IDs(), "children are recomputed after mutation")
}

func TestDerivedPropertiesNeedResolve(t *testing.T) {
	o := New()
	o.Ingest(rec("A", "alpha"), rec("B", "beta", relation.IsA, []string{"A"}))
	require.NoError(t, o.Adopt())

	a, b := mustGet(t, o, "A"), mustGet(t, o, "B")
	assert.Empty(t, b.Parents(), "references are not terms until resolved")
	assert.Empty(t, a.Children())

	o.Resolve()
	assert.Equal(t, []string{"A"}, b.Parents().IDs())
	assert.Equal(t, []string{"B"}, a.Children().IDs())
}

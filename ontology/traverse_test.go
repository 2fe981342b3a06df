package ontology

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/c360studio/semonto/vocabulary/relation"
)

// tree:
//
//	root
//	├── a (is_a)
//	│   ├── c (is_a)
//	│   └── d (part_of)
//	└── b (is_a)
//	    └── c (is_a)
func treeOntology(t *testing.T) *Ontology {
	return build(t,
		rec("root", ""),
		rec("a", "", relation.IsA, []string{"root"}),
		rec("b", "", relation.IsA, []string{"root"}),
		rec("c", "", relation.IsA, []string{"a", "b"}),
		rec("d", "", relation.PartOf, []string{"a"}),
	)
}

func TestRChildrenLevels(t *testing.T) {
	o := treeOntology(t)
	root := mustGet(t, o, "root")

	tests := []struct {
		name         string
		level        int
		intermediate bool
		want         []string
	}{
		{"level 0", 0, true, []string{}},
		{"level 0 frontier", 0, false, []string{}},
		{"direct children", 1, false, []string{"a", "b"}},
		{"direct children intermediate", 1, true, []string{"a", "b"}},
		{"second hop only", 2, false, []string{"c", "d"}},
		{"two hops", 2, true, []string{"a", "b", "c", "d"}},
		{"past the leaves", 5, false, []string{}},
		{"unbounded", -1, true, []string{"a", "b", "c", "d"}},
		{"unbounded frontier", -1, false, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := root.RChildren(tt.level, tt.intermediate)
			assert.Equal(t, tt.want, got.IDs())
		})
	}
}

func TestRChildrenDirectChildrenMatchChildren(t *testing.T) {
	o := treeOntology(t)
	for term := range o.All() {
		want := term.Children().Dedup().Sorted().IDs()
		assert.Equal(t, want, term.RChildren(1, false).IDs(), term.ID())
	}
}

func TestRChildrenCycle(t *testing.T) {
	// x part_of y, y part_of z, z part_of x
	o := build(t,
		rec("x", "", relation.PartOf, []string{"y"}),
		rec("y", "", relation.PartOf, []string{"z"}),
		rec("z", "", relation.PartOf, []string{"x"}),
	)
	x := mustGet(t, o, "x")

	got := x.RChildren(-1, true)
	assert.Equal(t, []string{"x", "y", "z"}, got.IDs(), "a term on a cycle is its own descendant")

	// x is reached again on the third hop but never expanded twice
	assert.Equal(t, []string{"z"}, x.RChildren(1, false).IDs())
	assert.Equal(t, []string{"y"}, x.RChildren(2, false).IDs())
	assert.Equal(t, []string{"x"}, x.RChildren(3, false).IDs())
	assert.Empty(t, x.RChildren(4, false))
	assert.Empty(t, x.RChildren(100, false))
}

func TestRChildrenHugeLevelOnCycle(t *testing.T) {
	o := build(t,
		rec("x", "", relation.PartOf, []string{"y"}),
		rec("y", "", relation.PartOf, []string{"x"}),
	)
	x := mustGet(t, o, "x")

	done := make(chan struct{})
	var frontier, closure TermList
	go func() {
		defer close(done)
		frontier = x.RChildren(math.MaxInt, false)
		closure = x.RChildren(math.MaxInt, true)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("RChildren did not stop on a cycle")
	}
	assert.Empty(t, frontier)
	assert.Equal(t, []string{"x", "y"}, closure.IDs())
}

func TestRChildrenSelfLoop(t *testing.T) {
	o := build(t, rec("s", "", relation.IsA, []string{"s"}))
	s := mustGet(t, o, "s")

	assert.Equal(t, []string{"s"}, s.RChildren(-1, true).IDs())
	assert.Equal(t, []string{"s"}, s.RChildren(1, false).IDs())
	assert.Empty(t, s.RChildren(10, false))
}

func TestRChildrenDedupByID(t *testing.T) {
	o := treeOntology(t)
	root := mustGet(t, o, "root")

	got := root.RChildren(-1, true)
	assert.Equal(t, got.IDs(), got.Dedup().IDs(), "c is reached through a and b but listed once")
}

func TestRChildrenLeaf(t *testing.T) {
	o := treeOntology(t)
	d := mustGet(t, o, "d")

	assert.Empty(t, d.RChildren(-1, true))
	assert.Empty(t, d.RChildren(1, false))
}

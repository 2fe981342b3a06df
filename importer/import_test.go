package importer

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/semonto/ontology"
	"github.com/c360studio/semonto/source"
	"github.com/c360studio/semonto/vocabulary/relation"
)

// fixture is an in-memory ontology source keyed by location.
type fixture struct {
	names   map[string]string   // location -> name of its X:shared term
	imports map[string][]string // location -> declared imports
	fail    map[string]error

	mu     sync.Mutex
	builds map[string]int
}

func newFixture() *fixture {
	return &fixture{
		names:   make(map[string]string),
		imports: make(map[string][]string),
		fail:    make(map[string]error),
		builds:  make(map[string]int),
	}
}

func (f *fixture) Build(_ context.Context, loc source.Location) (*ontology.Ontology, error) {
	key := loc.String()

	f.mu.Lock()
	f.builds[key]++
	f.mu.Unlock()

	if err := f.fail[key]; err != nil {
		return nil, err
	}

	o := ontology.New()
	o.Path = key
	o.Imports = f.imports[key]
	o.Ingest(
		ontology.Record{ID: "X:shared", Name: f.names[key]},
		ontology.Record{ID: "X:" + loc.Base(), Name: loc.Base()},
	)
	if err := o.Adopt(); err != nil {
		return nil, err
	}
	return o, nil
}

func mustLocation(t *testing.T, raw string) source.Location {
	t.Helper()
	loc, err := source.ParseLocation(raw)
	require.NoError(t, err)
	return loc
}

func rootOntology(imports ...string) *ontology.Ontology {
	o := ontology.New()
	o.Imports = imports
	var rels ontology.Relations
	rels.Add(relation.IsA, ontology.Ref("X:shared"))
	o.Ingest(ontology.Record{ID: "R:1", Name: "root term", Relations: rels})
	_ = o.Adopt()
	return o
}

func TestImportTransitive(t *testing.T) {
	fx := newFixture()
	fx.imports["/onts/a.obo"] = []string{"c.obo", "root.obo"}
	fx.imports["/onts/b.obo"] = []string{"c.obo"}
	fx.names["/onts/a.obo"] = "from a"
	fx.names["/onts/b.obo"] = "from b"
	fx.names["/onts/c.obo"] = "from c"

	root := rootOntology("a.obo", "b.obo")
	im := New(fx, NewExecutor(4))

	stats, err := im.Import(context.Background(), root, mustLocation(t, "/onts/root.obo"))
	require.NoError(t, err)

	assert.Equal(t, 3, stats.Imported)
	assert.Equal(t, 6, stats.Terms)
	require.Len(t, stats.Locations, 3)
	assert.Equal(t, []string{"/onts/a.obo", "/onts/b.obo", "/onts/c.obo"},
		[]string{stats.Locations[0].String(), stats.Locations[1].String(), stats.Locations[2].String()},
		"breadth-first declaration order")
	assert.Equal(t, map[string]int{"/onts/a.obo": 1, "/onts/b.obo": 1, "/onts/c.obo": 1}, fx.builds,
		"each location is built once and the cycle back to the root is ignored")

	shared, err := root.Get("X:shared")
	require.NoError(t, err)
	assert.Equal(t, "from c", shared.Name, "later imports win")

	for _, id := range []string{"R:1", "X:a.obo", "X:b.obo", "X:c.obo"} {
		ok, err := root.Contains(id)
		require.NoError(t, err)
		assert.True(t, ok, id)
	}

	term, err := root.Get("R:1")
	require.NoError(t, err)
	assert.Same(t, shared, term.Parents()[0], "references into imports are linked")
}

func TestImportNothingDeclared(t *testing.T) {
	fx := newFixture()
	root := rootOntology()

	stats, err := New(fx, NewExecutor(0)).Import(context.Background(), root, mustLocation(t, "/onts/root.obo"))
	require.NoError(t, err)
	assert.Zero(t, stats)
	assert.Empty(t, fx.builds)
}

func TestImportFailure(t *testing.T) {
	errBoom := errors.New("boom")
	fx := newFixture()
	fx.imports["/onts/a.obo"] = []string{"deep.obo"}
	fx.fail["/onts/b.obo"] = errBoom

	root := rootOntology("a.obo", "b.obo")
	_, err := New(fx, NewExecutor(2)).Import(context.Background(), root, mustLocation(t, "/onts/root.obo"))

	require.Error(t, err)
	assert.ErrorIs(t, err, errBoom)
	assert.Contains(t, err.Error(), "/onts/b.obo")
	assert.Equal(t, 1, root.Len(), "nothing is merged after a failure")
	assert.Zero(t, fx.builds["/onts/deep.obo"], "later levels are not fetched")
}

func TestImportSkip(t *testing.T) {
	errUnsupported := errors.New("unsupported")
	fx := newFixture()
	fx.fail["/onts/bfo.owl"] = errUnsupported

	reg := prometheus.NewRegistry()
	metrics := NewMetrics(reg)

	root := rootOntology("bfo.owl", "a.obo")
	im := New(fx, NewExecutor(2),
		WithMetrics(metrics),
		WithSkip(func(err error) bool { return errors.Is(err, errUnsupported) }))

	stats, err := im.Import(context.Background(), root, mustLocation(t, "/onts/root.obo"))
	require.NoError(t, err)

	assert.Equal(t, 1, stats.Imported)
	assert.Equal(t, 1, stats.Skipped)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.fetches.WithLabelValues(statusSkipped)))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.fetches.WithLabelValues(statusOK)))
	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.merged))
	assert.Equal(t, 4, testutil.CollectAndCount(reg), "fetch_total has two series plus the histogram and counter")
}

func TestImportConcurrencyLimit(t *testing.T) {
	var active, peak atomic.Int32
	builder := BuilderFunc(func(ctx context.Context, loc source.Location) (*ontology.Ontology, error) {
		n := active.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		active.Add(-1)
		return ontology.New(), nil
	})

	imports := make([]string, 12)
	for i := range imports {
		imports[i] = string(rune('a'+i)) + ".obo"
	}
	root := rootOntology(imports...)

	stats, err := New(builder, NewExecutor(3)).Import(context.Background(), root, mustLocation(t, "/onts/root.obo"))
	require.NoError(t, err)
	assert.Equal(t, 12, stats.Imported)
	assert.LessOrEqual(t, peak.Load(), int32(3))
}

func TestImportRemoteRelative(t *testing.T) {
	fx := newFixture()
	root := rootOntology("uo.obo", "http://other.org/pato.obo")

	_, err := New(fx, NewExecutor(2)).Import(context.Background(), root, mustLocation(t, "http://purl.example.org/obo/ms.obo"))
	require.NoError(t, err)

	assert.Contains(t, fx.builds, "http://purl.example.org/obo/uo.obo")
	assert.Contains(t, fx.builds, "http://other.org/pato.obo")
}

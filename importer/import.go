// Package importer resolves the transitive imports of an ontology.
//
// Imports are fetched level by level: every import declared by the root is
// built in parallel on the caller's Executor, then the imports those
// declare, and so on. A location is built at most once, which also breaks
// import cycles. Built ontologies are merged into the root one at a time,
// in breadth-first declaration order, so later imports win on conflicting
// identifiers.
package importer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/c360studio/semonto/ontology"
	"github.com/c360studio/semonto/source"
)

// Builder builds a single ontology without resolving its imports. The
// returned ontology has Imports set as declared.
type Builder interface {
	Build(ctx context.Context, loc source.Location) (*ontology.Ontology, error)
}

// BuilderFunc adapts a function to Builder.
type BuilderFunc func(ctx context.Context, loc source.Location) (*ontology.Ontology, error)

// Build calls f.
func (f BuilderFunc) Build(ctx context.Context, loc source.Location) (*ontology.Ontology, error) {
	return f(ctx, loc)
}

// Stats summarizes an import run.
type Stats struct {
	// Imported counts ontologies merged into the root.
	Imported int

	// Skipped counts imports dropped by the skip predicate.
	Skipped int

	// Terms counts terms merged, including replacements.
	Terms int

	// Locations lists the merged imports in merge order.
	Locations []source.Location
}

// Importer resolves and merges imports.
type Importer struct {
	builder Builder
	exec    Executor
	metrics *Metrics
	logger  *slog.Logger
	skip    func(error) bool
}

// Option configures an Importer.
type Option func(*Importer)

// WithMetrics records fetch and merge metrics.
func WithMetrics(m *Metrics) Option {
	return func(im *Importer) {
		if m != nil {
			im.metrics = m
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(im *Importer) {
		if l != nil {
			im.logger = l
		}
	}
}

// WithSkip sets a predicate for build errors that drop the import with a
// warning instead of failing the run.
func WithSkip(skip func(error) bool) Option {
	return func(im *Importer) {
		if skip != nil {
			im.skip = skip
		}
	}
}

// New creates an importer. exec bounds fetch concurrency and is reused
// across levels; it must not be shared with other work while Import runs.
func New(builder Builder, exec Executor, opts ...Option) *Importer {
	im := &Importer{
		builder: builder,
		exec:    exec,
		metrics: NewMetrics(nil),
		logger:  slog.Default(),
		skip:    func(error) bool { return false },
	}
	for _, opt := range opts {
		opt(im)
	}
	return im
}

// built is one fetched import.
type built struct {
	loc  source.Location
	ont  *ontology.Ontology
	skip bool
}

// Import fetches the transitive imports of root, which was loaded from
// rootLoc, and merges them into root. The first failing fetch cancels the
// others and is returned.
func (im *Importer) Import(ctx context.Context, root *ontology.Ontology, rootLoc source.Location) (Stats, error) {
	var stats Stats

	seen := map[string]bool{rootLoc.String(): true}
	level, err := im.pending(rootLoc, root.Imports, seen)
	if err != nil {
		return stats, err
	}

	var order []built
	for depth := 1; len(level) > 0; depth++ {
		im.logger.Debug("Fetching imports",
			slog.String("ontology", rootLoc.String()),
			slog.Int("depth", depth),
			slog.Int("count", len(level)))

		results, err := im.fetchLevel(ctx, level)
		if err != nil {
			return stats, err
		}

		var next []source.Location
		for _, b := range results {
			if b.skip {
				stats.Skipped++
				continue
			}
			order = append(order, b)
			more, err := im.pending(b.loc, b.ont.Imports, seen)
			if err != nil {
				return stats, err
			}
			next = append(next, more...)
		}
		level = next
	}

	for _, b := range order {
		if err := root.Merge(b.ont); err != nil {
			return stats, fmt.Errorf("merge %s: %w", b.loc, err)
		}
		stats.Imported++
		stats.Terms += b.ont.Len()
		stats.Locations = append(stats.Locations, b.loc)
		im.metrics.merged.Add(float64(b.ont.Len()))
	}

	if stats.Imported > 0 || stats.Skipped > 0 {
		im.logger.Info("Resolved imports",
			slog.String("ontology", rootLoc.String()),
			slog.Int("imported", stats.Imported),
			slog.Int("skipped", stats.Skipped),
			slog.Int("terms", stats.Terms))
	}
	return stats, nil
}

// pending resolves declared imports against base and returns those not yet
// seen, marking them seen.
func (im *Importer) pending(base source.Location, imports []string, seen map[string]bool) ([]source.Location, error) {
	var out []source.Location
	for _, ref := range imports {
		loc, err := base.Resolve(ref)
		if err != nil {
			return nil, fmt.Errorf("import %q of %s: %w", ref, base, err)
		}
		key := loc.String()
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, loc)
	}
	return out, nil
}

// fetchLevel builds every location of one level in parallel. Results keep
// the order of level.
func (im *Importer) fetchLevel(ctx context.Context, level []source.Location) ([]built, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	results := make([]built, len(level))
	for i, loc := range level {
		im.exec.Go(func() error {
			start := time.Now()
			ont, err := im.builder.Build(ctx, loc)
			im.metrics.duration.Observe(time.Since(start).Seconds())

			switch {
			case err == nil:
				im.metrics.fetches.WithLabelValues(statusOK).Inc()
				results[i] = built{loc: loc, ont: ont}
				return nil
			case im.skip(err):
				im.metrics.fetches.WithLabelValues(statusSkipped).Inc()
				im.logger.Warn("Skipping import",
					slog.String("location", loc.String()),
					slog.Any("error", err))
				results[i] = built{loc: loc, skip: true}
				return nil
			default:
				im.metrics.fetches.WithLabelValues(statusError).Inc()
				cancel()
				return fmt.Errorf("import %s: %w", loc, err)
			}
		})
	}

	if err := im.exec.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

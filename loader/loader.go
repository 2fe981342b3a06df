// Package loader builds ontologies from documents.
//
// Loading runs the full pipeline on a location: fetch, parse, ingest,
// adopt, fetch and merge the transitive imports, then resolve references.
// Every ontology built by one Loader shares its relation table, so relation
// kinds first seen in one document are known when another is merged in.
package loader

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/c360studio/semonto/config"
	"github.com/c360studio/semonto/importer"
	"github.com/c360studio/semonto/ontology"
	"github.com/c360studio/semonto/source"
	"github.com/c360studio/semonto/source/parser"
	"github.com/c360studio/semonto/vocabulary/relation"
)

// Loader builds ontologies from local or remote documents.
type Loader struct {
	fetcher         *source.Fetcher
	registry        *parser.Registry
	relations       *relation.Table
	imports         bool
	skipUnsupported bool
	concurrency     int
	metrics         *importer.Metrics
	logger          *slog.Logger
}

// Option configures a Loader.
type Option func(*Loader)

// WithFetcher sets the fetcher used to retrieve documents.
func WithFetcher(f *source.Fetcher) Option {
	return func(l *Loader) {
		if f != nil {
			l.fetcher = f
		}
	}
}

// WithRegistry sets the parser registry.
func WithRegistry(r *parser.Registry) Option {
	return func(l *Loader) {
		if r != nil {
			l.registry = r
		}
	}
}

// WithRelations sets the relation table. The loader works on a copy.
func WithRelations(t *relation.Table) Option {
	return func(l *Loader) {
		if t != nil {
			l.relations = t.Clone()
		}
	}
}

// WithImports enables or disables import resolution.
func WithImports(enabled bool) Option {
	return func(l *Loader) {
		l.imports = enabled
	}
}

// WithSkipUnsupported drops imports no parser can read instead of failing.
func WithSkipUnsupported(skip bool) Option {
	return func(l *Loader) {
		l.skipUnsupported = skip
	}
}

// WithConcurrency bounds parallel import fetches.
func WithConcurrency(n int) Option {
	return func(l *Loader) {
		l.concurrency = n
	}
}

// WithMetrics records import metrics.
func WithMetrics(m *importer.Metrics) Option {
	return func(l *Loader) {
		l.metrics = m
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// New creates a loader with default retrieval, the default parsers and the
// default relation table.
func New(opts ...Option) *Loader {
	l := &Loader{
		registry:        parser.DefaultRegistry,
		relations:       relation.Default(),
		imports:         true,
		skipUnsupported: true,
		concurrency:     importer.DefaultConcurrency,
		logger:          slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.fetcher == nil {
		l.fetcher = source.NewFetcher(source.WithLogger(l.logger))
	}
	return l
}

// FromConfig creates a loader from configuration. Import metrics are
// registered on reg when it is non-nil.
func FromConfig(cfg *config.Config, logger *slog.Logger, reg prometheus.Registerer) (*Loader, error) {
	if logger == nil {
		logger = slog.Default()
	}
	table, err := cfg.RelationTable()
	if err != nil {
		return nil, err
	}

	fetcher := source.NewFetcher(
		source.WithTimeout(cfg.Load.Timeout),
		source.WithMaxContentSize(cfg.Load.MaxContentSize),
		source.WithUserAgent(cfg.Load.UserAgent),
		source.WithFTPCredentials(cfg.Load.FTPUser, cfg.Load.FTPPassword),
		source.WithLogger(logger),
	)

	opts := []Option{
		WithFetcher(fetcher),
		WithRelations(table),
		WithImports(cfg.Load.ImportsEnabled()),
		WithSkipUnsupported(cfg.Load.SkipUnsupported()),
		WithConcurrency(cfg.Load.MaxConcurrentImports),
		WithLogger(logger),
	}
	if reg != nil {
		opts = append(opts, WithMetrics(importer.NewMetrics(reg)))
	}
	return New(opts...), nil
}

// RelationTable returns the table shared by every ontology the loader
// builds.
func (l *Loader) RelationTable() *relation.Table {
	return l.relations
}

// Result describes a completed load.
type Result struct {
	// Ontology is the built, resolved ontology.
	Ontology *ontology.Ontology

	// Sources lists the root location followed by every merged import.
	Sources []source.Location

	// Imports summarizes import resolution.
	Imports importer.Stats

	// Resolve summarizes the final reference resolution.
	Resolve ontology.ResolveStats
}

// Load builds the ontology at raw, merges its transitive imports when
// enabled, and resolves every reference.
func (l *Loader) Load(ctx context.Context, raw string) (*ontology.Ontology, error) {
	res, err := l.LoadResult(ctx, raw)
	if err != nil {
		return nil, err
	}
	return res.Ontology, nil
}

// LoadResult is Load, also reporting where the terms came from.
func (l *Loader) LoadResult(ctx context.Context, raw string) (*Result, error) {
	start := time.Now()

	loc, err := source.ParseLocation(raw)
	if err != nil {
		return nil, err
	}

	o, err := l.Build(ctx, loc)
	if err != nil {
		return nil, err
	}

	res := &Result{Ontology: o, Sources: []source.Location{loc}}
	if l.imports && len(o.Imports) > 0 {
		imp := importer.New(l, importer.NewExecutor(l.concurrency),
			importer.WithMetrics(l.metrics),
			importer.WithLogger(l.logger),
			importer.WithSkip(l.skippable))
		if res.Imports, err = imp.Import(ctx, o, loc); err != nil {
			return nil, err
		}
		res.Sources = append(res.Sources, res.Imports.Locations...)
	}

	res.Resolve = o.Resolve()

	l.logger.Info("Loaded ontology",
		slog.String("location", loc.String()),
		slog.Int("terms", o.Len()),
		slog.Int("imports", res.Imports.Imported),
		slog.Int("placeholders", res.Resolve.Placeholders),
		slog.Duration("elapsed", time.Since(start)))
	return res, nil
}

// Build fetches and parses the document at loc, then ingests and adopts its
// terms. References are left unresolved and imports are not followed.
func (l *Loader) Build(ctx context.Context, loc source.Location) (*ontology.Ontology, error) {
	res, err := l.fetcher.Fetch(ctx, loc)
	if err != nil {
		return nil, err
	}

	doc, err := l.registry.ParseContent(loc.Base(), res.ContentType, res.Body)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", loc, err)
	}

	records := doc.Records
	if doc.IncludesInverses {
		records = l.withoutDerived(records)
	}
	l.registerKinds(loc, records)

	o := ontology.New(ontology.WithRelations(l.relations), ontology.WithLogger(l.logger))
	o.Path = loc.String()
	o.Meta = doc.Header
	o.Imports = doc.Imports
	o.Ingest(records...)
	if err := o.Adopt(); err != nil {
		return nil, err
	}

	for stanza, n := range doc.Skipped {
		l.logger.Warn("Skipped stanzas",
			slog.String("location", loc.String()),
			slog.String("stanza", stanza),
			slog.Int("count", n))
	}
	l.logger.Debug("Built ontology",
		slog.String("location", loc.String()),
		slog.Int("terms", o.Len()),
		slog.Int("imports", len(o.Imports)))
	return o, nil
}

func (l *Loader) skippable(err error) bool {
	return l.skipUnsupported && errors.Is(err, parser.ErrUnsupportedFormat)
}

// withoutDerived drops child-role edges from records dumped after adoption,
// so that adopting them again does not duplicate those edges.
func (l *Loader) withoutDerived(records []ontology.Record) []ontology.Record {
	derived := make(map[relation.Kind]bool)
	for _, k := range l.relations.ChildKinds() {
		derived[k] = true
	}

	out := make([]ontology.Record, len(records))
	for i, r := range records {
		var rels ontology.Relations
		for _, k := range r.Relations.Kinds() {
			if !derived[k] {
				rels.Set(k, r.Relations.Get(k))
			}
		}
		r.Relations = rels
		out[i] = r
	}
	return out
}

// registerKinds adds relation kinds the table does not know as canonical
// kinds with no role, so they are written back out.
func (l *Loader) registerKinds(loc source.Location, records []ontology.Record) {
	for _, r := range records {
		for _, k := range r.Relations.Kinds() {
			if _, ok := l.relations.Lookup(k); ok {
				continue
			}
			l.relations.Register(k,
				relation.WithCanonical(),
				relation.WithDescription("Declared in "+loc.String()))
			l.logger.Debug("Registered relation kind",
				slog.String("kind", string(k)),
				slog.String("location", loc.String()))
		}
	}
}

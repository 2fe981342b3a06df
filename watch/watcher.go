// Package watch reports changes to the local files an ontology was loaded
// from.
//
// Directories holding the files are watched rather than the files
// themselves, so editors that save by renaming a temporary file over the
// original are still seen. Changes are debounced and compared by content
// hash; a save that leaves a file byte-identical produces no event.
package watch

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const defaultDebounce = 100 * time.Millisecond

// Config configures the file watcher
type Config struct {
	// Files are the paths to watch
	Files []string

	// DebounceDelay is how long to wait for more changes before reporting
	DebounceDelay time.Duration

	// Logger for logging events
	Logger *slog.Logger
}

// Event reports a batch of changed files
type Event struct {
	// Paths are the changed files, sorted
	Paths []string

	// Removed lists the changed files that no longer exist
	Removed []string
}

// Watcher watches ontology files and emits debounced change events
type Watcher struct {
	debounce time.Duration
	watcher  *fsnotify.Watcher
	logger   *slog.Logger

	mu     sync.Mutex
	files  map[string]bool
	dirs   map[string]bool
	hashes map[string]string // path → content hash

	// Debouncing: collect changes before reporting
	pendingMu sync.Mutex
	pending   map[string]fsnotify.Op // path → most recent operation

	events  chan Event
	done    chan struct{}
	started bool
}

// New creates a watcher for cfg.Files. Nothing is watched until Start.
func New(cfg Config) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	debounce := cfg.DebounceDelay
	if debounce <= 0 {
		debounce = defaultDebounce
	}

	w := &Watcher{
		debounce: debounce,
		watcher:  fsw,
		logger:   logger,
		files:    make(map[string]bool),
		dirs:     make(map[string]bool),
		hashes:   make(map[string]string),
		pending:  make(map[string]fsnotify.Op),
		events:   make(chan Event, 16),
		done:     make(chan struct{}),
	}
	if err := w.SetFiles(cfg.Files); err != nil {
		_ = fsw.Close()
		return nil, err
	}
	return w, nil
}

// Events returns the channel of change events. It is closed when the
// watcher stops.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Start begins processing file system events until ctx is done or Stop is
// called.
func (w *Watcher) Start(ctx context.Context) {
	w.mu.Lock()
	w.started = true
	w.mu.Unlock()

	go w.processEvents(ctx)

	w.logger.Info("File watcher started",
		slog.Int("files", len(w.Files())),
		slog.Duration("debounce", w.debounce))
}

// Stop stops the watcher and waits for the event loop to exit.
func (w *Watcher) Stop() error {
	err := w.watcher.Close()

	w.mu.Lock()
	started := w.started
	w.mu.Unlock()
	if started {
		<-w.done
	}
	return err
}

// Files returns the watched files, sorted.
func (w *Watcher) Files() []string {
	w.mu.Lock()
	defer w.mu.Unlock()

	files := make([]string, 0, len(w.files))
	for f := range w.files {
		files = append(files, f)
	}
	sort.Strings(files)
	return files
}

// SetFiles replaces the watched set, typically after a reload changed the
// imports. Known hashes of files still watched are kept.
func (w *Watcher) SetFiles(files []string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	next := make(map[string]bool, len(files))
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			return err
		}
		next[abs] = true

		dir := filepath.Dir(abs)
		if !w.dirs[dir] {
			if err := w.watcher.Add(dir); err != nil {
				return err
			}
			w.dirs[dir] = true
			w.logger.Debug("Watching directory", slog.String("path", dir))
		}
		if _, ok := w.hashes[abs]; !ok {
			if h, err := hashFile(abs); err == nil {
				w.hashes[abs] = h
			}
		}
	}

	for f := range w.hashes {
		if !next[f] {
			delete(w.hashes, f)
		}
	}
	w.files = next
	return nil
}

// processEvents handles fsnotify events with debouncing
func (w *Watcher) processEvents(ctx context.Context) {
	defer close(w.done)
	defer close(w.events)

	ticker := time.NewTicker(w.debounce)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleFSEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("Watcher error", slog.Any("error", err))

		case <-ticker.C:
			w.flushPending(ctx)
		}
	}
}

// handleFSEvent records a change to a watched file
func (w *Watcher) handleFSEvent(event fsnotify.Event) {
	path := filepath.Clean(event.Name)

	w.mu.Lock()
	watched := w.files[path]
	w.mu.Unlock()
	if !watched || event.Op == fsnotify.Chmod {
		return
	}

	w.pendingMu.Lock()
	w.pending[path] = event.Op
	w.pendingMu.Unlock()

	w.logger.Debug("File change detected",
		slog.String("path", path),
		slog.String("op", event.Op.String()))
}

// flushPending reports accumulated changes whose content differs
func (w *Watcher) flushPending(ctx context.Context) {
	w.pendingMu.Lock()
	if len(w.pending) == 0 {
		w.pendingMu.Unlock()
		return
	}
	toProcess := w.pending
	w.pending = make(map[string]fsnotify.Op)
	w.pendingMu.Unlock()

	var ev Event
	w.mu.Lock()
	for path := range toProcess {
		h, err := hashFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			delete(w.hashes, path)
			ev.Paths = append(ev.Paths, path)
			ev.Removed = append(ev.Removed, path)
			continue
		}
		if err != nil {
			w.logger.Warn("Failed to read changed file", slog.String("path", path), slog.Any("error", err))
			continue
		}
		if old, ok := w.hashes[path]; ok && old == h {
			continue
		}
		w.hashes[path] = h
		ev.Paths = append(ev.Paths, path)
	}
	w.mu.Unlock()

	if len(ev.Paths) == 0 {
		return
	}
	sort.Strings(ev.Paths)
	sort.Strings(ev.Removed)

	select {
	case w.events <- ev:
		w.logger.Debug("Sent watch event", slog.Int("files", len(ev.Paths)))
	case <-ctx.Done():
	default:
		w.logger.Warn("Event channel full, dropping event", slog.Any("paths", ev.Paths))
	}
}

func hashFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

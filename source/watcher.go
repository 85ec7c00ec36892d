package source

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// eventChannelBuffer is the size of the watch event channel.
const eventChannelBuffer = 256

// WatchEvent signals that a documentation file appeared or changed and
// should be re-ingested.
type WatchEvent struct {
	// Path is the absolute file path.
	Path string
}

// Watcher watches a documentation directory and emits an event when a
// watched file's content actually changes. Events are debounced and
// deduplicated by content hash, so editors that write multiple times per
// save trigger a single ingest.
type Watcher struct {
	dir        string
	watcher    *fsnotify.Watcher
	logger     *slog.Logger
	extensions map[string]bool
	debounce   time.Duration

	pendingMu sync.Mutex
	pending   map[string]struct{}

	hashMu sync.Mutex
	hashes map[string]string

	events chan WatchEvent
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithDebounce sets how long changes accumulate before events fire.
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		w.debounce = d
	}
}

// WithExtensions sets the watched file extensions (default .md, .txt, .html).
func WithExtensions(exts []string) WatcherOption {
	return func(w *Watcher) {
		w.extensions = make(map[string]bool, len(exts))
		for _, ext := range exts {
			if !strings.HasPrefix(ext, ".") {
				ext = "." + ext
			}
			w.extensions[strings.ToLower(ext)] = true
		}
	}
}

// WithWatcherLogger sets the logger.
func WithWatcherLogger(logger *slog.Logger) WatcherOption {
	return func(w *Watcher) {
		w.logger = logger
	}
}

// NewWatcher creates a watcher over dir and its subdirectories.
func NewWatcher(dir string, opts ...WatcherOption) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		dir:     dir,
		watcher: fsw,
		logger:  slog.Default(),
		extensions: map[string]bool{
			".md":   true,
			".txt":  true,
			".html": true,
		},
		debounce: 500 * time.Millisecond,
		pending:  make(map[string]struct{}),
		hashes:   make(map[string]string),
		events:   make(chan WatchEvent, eventChannelBuffer),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Events returns the channel of watch events. It is closed when the
// watcher stops.
func (w *Watcher) Events() <-chan WatchEvent {
	return w.events
}

// Start begins watching. It returns after registering the directory tree;
// event processing continues until ctx is cancelled or Stop is called.
func (w *Watcher) Start(ctx context.Context) error {
	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return err
	}
	if err := w.addWatchesRecursive(w.dir); err != nil {
		return err
	}

	go w.processEvents(ctx)

	w.logger.Info("Source watcher started",
		"dir", w.dir,
		"debounce", w.debounce)

	return nil
}

// Stop stops the watcher. The events channel is closed by the processing
// goroutine on exit.
func (w *Watcher) Stop() error {
	return w.watcher.Close()
}

func (w *Watcher) addWatchesRecursive(root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return nil
		}

		base := filepath.Base(path)
		if strings.HasPrefix(base, ".") && base != "." {
			return filepath.SkipDir
		}

		if err := w.watcher.Add(path); err != nil {
			w.logger.Warn("Failed to watch directory", "path", path, "error", err)
		}
		return nil
	})
}

func (w *Watcher) processEvents(ctx context.Context) {
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
			w.logger.Error("Watcher error", "error", err)

		case <-ticker.C:
			w.flushPending(ctx)
		}
	}
}

func (w *Watcher) handleFSEvent(event fsnotify.Event) {
	path := event.Name

	ext := strings.ToLower(filepath.Ext(path))
	if !w.extensions[ext] {
		// A new directory needs its own watch.
		if event.Has(fsnotify.Create) {
			if info, err := os.Stat(path); err == nil && info.IsDir() {
				if err := w.watcher.Add(path); err != nil {
					w.logger.Warn("Failed to watch new directory", "path", path, "error", err)
				}
			}
		}
		return
	}

	if event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
		w.hashMu.Lock()
		delete(w.hashes, path)
		w.hashMu.Unlock()
		return
	}

	w.pendingMu.Lock()
	w.pending[path] = struct{}{}
	w.pendingMu.Unlock()
}

func (w *Watcher) flushPending(ctx context.Context) {
	w.pendingMu.Lock()
	if len(w.pending) == 0 {
		w.pendingMu.Unlock()
		return
	}
	toProcess := w.pending
	w.pending = make(map[string]struct{})
	w.pendingMu.Unlock()

	for path := range toProcess {
		select {
		case <-ctx.Done():
			return
		default:
		}

		content, err := os.ReadFile(path)
		if err != nil {
			continue // deleted between event and flush
		}

		hash := contentHash(content)
		w.hashMu.Lock()
		unchanged := w.hashes[path] == hash
		w.hashes[path] = hash
		w.hashMu.Unlock()
		if unchanged {
			continue
		}

		select {
		case w.events <- WatchEvent{Path: path}:
		default:
			w.logger.Warn("Event channel full, dropping event", "path", path)
		}
	}
}

func contentHash(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

// Package watcher hosts the linter on a directory tree. Matching files are
// analyzed when first seen and re-analyzed when written; removing a file
// drops its annotations. Annotations are printed to a terminal.
package watcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/cenkalti/backoff/v5"
	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"

	"github.com/tinovyatkin/writegood/internal/config"
	"github.com/tinovyatkin/writegood/internal/document"
	"github.com/tinovyatkin/writegood/internal/host"
	"github.com/tinovyatkin/writegood/internal/store"
)

const hostName = "watch"

// DefaultPatterns selects the prose files watched when none are given.
var DefaultPatterns = []string{"**/*.{md,markdown,mdx,txt,text,rst,adoc}"}

// skipDirs are never descended into.
var skipDirs = []string{".git", ".hg", ".svn", "node_modules", "vendor"}

// Options configures a Watcher.
type Options struct {
	// Root is the watched directory, the working directory when empty.
	Root string
	// Patterns are doublestar globs relative to Root.
	Patterns []string
	// Config provides settings; its file is reloaded when it changes.
	Config *config.Source
	// Out receives printed annotations, os.Stdout when nil.
	Out io.Writer
	// Color enables styled output.
	Color  bool
	Logger logrus.FieldLogger
}

// Watcher is a host.Host driven by file system events.
type Watcher struct {
	root     string
	patterns []string
	config   *config.Source
	sink     *TerminalSink
	log      logrus.FieldLogger

	mu      sync.Mutex
	sources map[document.ID][]byte
}

var _ host.Host = (*Watcher)(nil)

// New creates a watcher for opts.Root.
func New(opts Options) (*Watcher, error) {
	if opts.Logger == nil {
		opts.Logger = logrus.StandardLogger()
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	root := opts.Root
	if root == "" {
		root = "."
	}
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve watch root: %w", err)
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("watch root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("watch root %s is not a directory", root)
	}

	patterns := opts.Patterns
	if len(patterns) == 0 {
		patterns = DefaultPatterns
	}
	for _, p := range patterns {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("invalid pattern %q", p)
		}
	}

	w := &Watcher{
		root:     root,
		patterns: patterns,
		config:   opts.Config,
		log:      opts.Logger.WithField("host", hostName),
		sources:  make(map[document.ID][]byte),
	}
	w.sink = NewTerminalSink(opts.Out, opts.Color, w.display, w.source)
	return w, nil
}

// Name implements host.Host.
func (w *Watcher) Name() string { return hostName }

// Config implements host.Host. It returns nil when the watcher has no
// configuration source.
func (w *Watcher) Config() config.Reader {
	if w.config == nil {
		return nil
	}
	return w.config
}

// Collection implements host.Host.
func (w *Watcher) Collection() store.Sink { return w.sink }

// Run implements host.Host. It returns when ctx is done.
func (w *Watcher) Run(ctx context.Context, h host.Handlers) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create file watcher: %w", err)
	}
	defer fsw.Close()

	if err := w.addRecursive(fsw, w.root); err != nil {
		return err
	}

	reload := make(chan struct{}, 1)
	if w.config != nil && w.config.Path() != "" {
		stop, err := w.config.WatchFile(func(err error) {
			if err != nil {
				w.log.WithError(err).Warn("watch: config reload failed")
				return
			}
			select {
			case reload <- struct{}{}:
			default:
			}
		})
		if err != nil {
			w.log.WithError(err).Warn("watch: cannot watch config file")
		} else {
			defer func() { _ = stop() }()
		}
	}

	open := make(map[document.ID]string)
	if err := w.scan(ctx, h, open); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-reload:
			w.log.Info("watch: configuration changed, re-analyzing")
			for _, id := range slices.Sorted(maps.Keys(open)) {
				w.openFile(ctx, h, open, open[id])
			}
		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			w.handleEvent(ctx, h, fsw, open, ev)
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.log.WithError(err).Warn("watch: file watcher error")
		}
	}
}

// scan opens every file matching the patterns.
func (w *Watcher) scan(ctx context.Context, h host.Handlers, open map[document.ID]string) error {
	fsys := os.DirFS(w.root)
	seen := make(map[string]struct{})
	var matches []string
	for _, p := range w.patterns {
		found, err := doublestar.Glob(fsys, p, doublestar.WithFilesOnly())
		if err != nil {
			return fmt.Errorf("glob %q: %w", p, err)
		}
		for _, m := range found {
			if _, dup := seen[m]; dup || w.skipped(m) {
				continue
			}
			seen[m] = struct{}{}
			matches = append(matches, m)
		}
	}
	slices.Sort(matches)

	for _, m := range matches {
		if ctx.Err() != nil {
			return nil
		}
		w.openFile(ctx, h, open, filepath.Join(w.root, filepath.FromSlash(m)))
	}
	w.log.WithField("files", len(matches)).Debug("watch: initial scan done")
	return nil
}

func (w *Watcher) handleEvent(ctx context.Context, h host.Handlers, fsw *fsnotify.Watcher, open map[document.ID]string, ev fsnotify.Event) {
	if ev.Has(fsnotify.Create) {
		if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
			if err := w.addRecursive(fsw, ev.Name); err != nil {
				w.log.WithError(err).WithField("dir", ev.Name).Warn("watch: cannot watch directory")
			}
			// Files created before the watch was added produce no events.
			w.openTree(ctx, h, open, ev.Name)
			return
		}
	}
	if !w.matches(ev.Name) {
		return
	}

	switch {
	case ev.Has(fsnotify.Remove), ev.Has(fsnotify.Rename):
		w.closeFile(ctx, h, open, ev.Name)
	case ev.Has(fsnotify.Create):
		w.openFile(ctx, h, open, ev.Name)
	case ev.Has(fsnotify.Write):
		if _, ok := open[document.FromPath(ev.Name)]; !ok {
			w.openFile(ctx, h, open, ev.Name)
			return
		}
		w.saveFile(ctx, h, open, ev.Name)
	}
}

func (w *Watcher) openTree(ctx context.Context, h host.Handlers, open map[document.ID]string, dir string) {
	_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if path != dir && skipDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if w.matches(path) {
			w.openFile(ctx, h, open, path)
		}
		return nil
	})
}

func (w *Watcher) openFile(ctx context.Context, h host.Handlers, open map[document.ID]string, path string) {
	doc, err := w.load(ctx, path)
	if errors.Is(err, fs.ErrNotExist) {
		return
	}
	if err != nil {
		w.log.WithError(err).WithField("file", path).Warn("watch: cannot read file")
		return
	}
	open[doc.ID] = path
	w.report("open", doc.ID, h.Open(ctx, doc))
}

func (w *Watcher) saveFile(ctx context.Context, h host.Handlers, open map[document.ID]string, path string) {
	doc, err := w.load(ctx, path)
	if errors.Is(err, fs.ErrNotExist) {
		w.closeFile(ctx, h, open, path)
		return
	}
	if err != nil {
		w.log.WithError(err).WithField("file", path).Warn("watch: cannot read file")
		return
	}
	w.report("save", doc.ID, h.Save(ctx, doc))
}

func (w *Watcher) closeFile(ctx context.Context, h host.Handlers, open map[document.ID]string, path string) {
	id := document.FromPath(path)
	if _, ok := open[id]; !ok {
		return
	}
	delete(open, id)
	w.mu.Lock()
	delete(w.sources, id)
	w.mu.Unlock()
	w.report("close", id, h.Close(ctx, id))
}

func (w *Watcher) report(event string, id document.ID, err error) {
	if err != nil {
		w.log.WithError(err).WithFields(logrus.Fields{"event": event, "document": id}).Error("watch: handler failed")
	}
}

// load reads path, retrying briefly while an editor is still writing it.
func (w *Watcher) load(ctx context.Context, path string) (document.Document, error) {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 20 * time.Millisecond
	b.MaxInterval = 200 * time.Millisecond

	content, err := backoff.Retry(ctx, func() ([]byte, error) {
		data, err := os.ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			return nil, backoff.Permanent(err)
		}
		return data, err
	}, backoff.WithBackOff(b), backoff.WithMaxTries(5))
	if err != nil {
		return document.Document{}, err
	}

	id := document.FromPath(path)
	w.mu.Lock()
	w.sources[id] = content
	w.mu.Unlock()
	return document.Document{ID: id, LanguageID: LanguageID(path), Text: string(content)}, nil
}

func (w *Watcher) addRecursive(fsw *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != w.root && skipDir(d.Name()) {
			return filepath.SkipDir
		}
		if err := fsw.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		return nil
	})
}

// matches reports whether an absolute path is selected by the patterns.
func (w *Watcher) matches(path string) bool {
	rel, err := filepath.Rel(w.root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return false
	}
	rel = filepath.ToSlash(rel)
	if w.skipped(rel) {
		return false
	}
	for _, p := range w.patterns {
		if doublestar.MatchUnvalidated(p, rel) {
			return true
		}
	}
	return false
}

// skipped reports whether a slash separated relative path lies in a
// skipped directory.
func (w *Watcher) skipped(rel string) bool {
	parts := strings.Split(rel, "/")
	for _, dir := range parts[:len(parts)-1] {
		if skipDir(dir) {
			return true
		}
	}
	return false
}

func skipDir(name string) bool {
	return slices.Contains(skipDirs, name) || (len(name) > 1 && strings.HasPrefix(name, "."))
}

// display renders an identity relative to the watched root.
func (w *Watcher) display(id document.ID) string {
	p, ok := id.Path()
	if !ok {
		return id.Display()
	}
	if rel, err := filepath.Rel(w.root, p); err == nil && !strings.HasPrefix(rel, "..") {
		return rel
	}
	return p
}

func (w *Watcher) source(id document.ID) []byte {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.sources[id]
}
